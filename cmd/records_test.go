//go:build !integration

package main

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sells-group/schooldata/pkg/schoolapi"
)

func setRecordFlags(t *testing.T, name, location string) {
	t.Helper()
	recordName, recordLocation = name, location
	t.Cleanup(func() { recordName, recordLocation = "", "" })
}

func TestRecordsCmd_AddUpdateDelete(t *testing.T) {
	testConfig(t)
	st := startService(t)
	ctx := context.Background()

	setRecordFlags(t, "Lincoln High", "Philadelphia")
	out, err := execute(t, recordsAddCmd)
	require.NoError(t, err)
	assert.Equal(t, "created record 1\n", out)

	out, err = execute(t, recordsGetCmd, "1")
	require.NoError(t, err)
	assert.Contains(t, out, "name:     Lincoln High")
	assert.Contains(t, out, "location: Philadelphia")

	setRecordFlags(t, "Lincoln HS", "Phila")
	out, err = execute(t, recordsUpdateCmd, "1")
	require.NoError(t, err)
	assert.Equal(t, "updated record 1\n", out)

	got, err := st.GetSchool(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, "Lincoln HS", got.SchoolName)
	assert.Equal(t, "Phila", got.Location)

	out, err = execute(t, recordsDeleteCmd, "1")
	require.NoError(t, err)
	assert.Equal(t, "deleted record 1\n", out)

	_, err = execute(t, recordsGetCmd, "1")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "get record 1")
	assert.Contains(t, err.Error(), "status 404")

	_, err = newAPIClient().GetRecord(ctx, 1)
	assert.True(t, schoolapi.IsNotFound(err))
}

func TestRecordsCmd_DeleteAll(t *testing.T) {
	testConfig(t)
	startService(t)

	setRecordFlags(t, "A", "")
	for range 3 {
		_, err := execute(t, recordsAddCmd)
		require.NoError(t, err)
	}

	out, err := execute(t, recordsDeleteCmd, "*")
	require.NoError(t, err)
	assert.Equal(t, "deleted 3 records\n", out)
}

func TestRecordsCmd_DeleteAllDisabled(t *testing.T) {
	testConfig(t)
	cfg.Server.AllowBulkDelete = false
	startService(t)

	_, err := execute(t, recordsDeleteCmd, "*")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "bulk delete is disabled")
}

func TestRecordsCmd_Validation(t *testing.T) {
	testConfig(t)
	startService(t)

	setRecordFlags(t, "   ", "")
	_, err := execute(t, recordsAddCmd)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "school_name is required")

	_, err = execute(t, recordsUpdateCmd, "abc")
	require.Error(t, err)
	assert.Contains(t, err.Error(), `record id must be an integer, got "abc"`)

	_, err = execute(t, recordsDeleteCmd, "1.5")
	require.Error(t, err)
}

func TestRecordsCmd_Args(t *testing.T) {
	assert.Error(t, recordsUpdateCmd.Args(recordsUpdateCmd, nil))
	assert.Error(t, recordsGetCmd.Args(recordsGetCmd, nil))
	assert.NoError(t, recordsDeleteCmd.Args(recordsDeleteCmd, []string{"*"}))
	assert.Error(t, recordsAddCmd.Args(recordsAddCmd, []string{"extra"}))
	require.NotNil(t, recordsAddCmd.Flags().Lookup("name"))
	require.NotNil(t, recordsUpdateCmd.Flags().Lookup("location"))
}
