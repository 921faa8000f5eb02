package main

import (
	"fmt"
	"strconv"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"

	"github.com/sells-group/schooldata/internal/model"
)

var (
	recordName     string
	recordLocation string
)

var recordsCmd = &cobra.Command{
	Use:   "records",
	Short: "Add, update or delete school records through the query service",
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		if err := rootCmd.PersistentPreRunE(cmd, args); err != nil {
			return err
		}
		return cfg.Validate("browse")
	},
}

var recordsAddCmd = &cobra.Command{
	Use:   "add",
	Short: "Create a school record",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		id, err := newAPIClient().CreateRecord(cmd.Context(), model.SchoolInput{
			SchoolName: recordName,
			Location:   recordLocation,
		})
		if err != nil {
			return eris.Wrap(err, "create record")
		}
		fmt.Fprintf(cmd.OutOrStdout(), "created record %d\n", id)
		return nil
	},
}

var recordsGetCmd = &cobra.Command{
	Use:   "get <id>",
	Short: "Show one school record",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := parseRecordID(args[0])
		if err != nil {
			return err
		}
		rec, err := newAPIClient().GetRecord(cmd.Context(), id)
		if err != nil {
			return eris.Wrapf(err, "get record %d", id)
		}
		fmt.Fprintf(cmd.OutOrStdout(), "id:       %d\nname:     %s\nlocation: %s\n", rec.ID, rec.SchoolName, rec.Location)
		return nil
	},
}

var recordsUpdateCmd = &cobra.Command{
	Use:   "update <id>",
	Short: "Replace the fields of a school record",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := parseRecordID(args[0])
		if err != nil {
			return err
		}
		err = newAPIClient().UpdateRecord(cmd.Context(), id, model.SchoolInput{
			SchoolName: recordName,
			Location:   recordLocation,
		})
		if err != nil {
			return eris.Wrapf(err, "update record %d", id)
		}
		fmt.Fprintf(cmd.OutOrStdout(), "updated record %d\n", id)
		return nil
	},
}

var recordsDeleteCmd = &cobra.Command{
	Use:   "delete <id|*>",
	Short: "Delete a school record, or every record with *",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		client := newAPIClient()
		if args[0] == "*" {
			n, err := client.DeleteAllRecords(cmd.Context())
			if err != nil {
				return eris.Wrap(err, "delete all records")
			}
			fmt.Fprintf(cmd.OutOrStdout(), "deleted %d records\n", n)
			return nil
		}

		id, err := parseRecordID(args[0])
		if err != nil {
			return err
		}
		if err := client.DeleteRecord(cmd.Context(), id); err != nil {
			return eris.Wrapf(err, "delete record %d", id)
		}
		fmt.Fprintf(cmd.OutOrStdout(), "deleted record %d\n", id)
		return nil
	},
}

func parseRecordID(s string) (int64, error) {
	id, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		return 0, eris.Errorf("record id must be an integer, got %q", s)
	}
	return id, nil
}

func init() {
	for _, c := range []*cobra.Command{recordsAddCmd, recordsUpdateCmd} {
		c.Flags().StringVar(&recordName, "name", "", "school name (required)")
		c.Flags().StringVar(&recordLocation, "location", "", "school location")
		_ = c.MarkFlagRequired("name")
	}

	recordsCmd.AddCommand(recordsAddCmd, recordsGetCmd, recordsUpdateCmd, recordsDeleteCmd)
	rootCmd.AddCommand(recordsCmd)
}
