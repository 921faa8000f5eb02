package model

import "strings"

// SortKey names a column the school directory search can be ordered by.
type SortKey string

const (
	SortSchool     SortKey = "school"
	SortDistrict   SortKey = "district"
	SortCity       SortKey = "city"
	SortCounty     SortKey = "county"
	SortGrades     SortKey = "grades"
	SortEnrollment SortKey = "enrollment"
)

// SortKeys lists every accepted sort key.
var SortKeys = []SortKey{SortSchool, SortDistrict, SortCity, SortCounty, SortGrades, SortEnrollment}

// ParseSortKey resolves a client-supplied key. Unknown or empty values fall
// back to SortSchool.
func ParseSortKey(s string) SortKey {
	k := SortKey(strings.ToLower(strings.TrimSpace(s)))
	for _, known := range SortKeys {
		if k == known {
			return k
		}
	}
	return SortSchool
}
