package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseSortKey(t *testing.T) {
	assert.Equal(t, SortCity, ParseSortKey("city"))
	assert.Equal(t, SortEnrollment, ParseSortKey(" Enrollment "))
	assert.Equal(t, SortSchool, ParseSortKey(""))
	assert.Equal(t, SortSchool, ParseSortKey("school_name; DROP TABLE Schools"))
}

func TestGroupByCity(t *testing.T) {
	rows := []DemographicRecord{
		{SchoolName: "A", City: "Erie"},
		{SchoolName: "B", City: "Pittsburgh"},
		{SchoolName: "C", City: "Erie"},
		{SchoolName: "D"},
	}
	groups := GroupByCity(rows)

	assert.Len(t, groups, 3)
	assert.Equal(t, []string{"A", "C"}, []string{groups["Erie"][0].SchoolName, groups["Erie"][1].SchoolName})
	assert.Len(t, groups["Pittsburgh"], 1)
	assert.Len(t, groups[UnknownCity], 1)
}
