// Package browse holds the presentation helpers shared by the browse
// commands: filtering, sorting and pagination of fetched rows.
package browse

import (
	"cmp"
	"slices"
	"strings"

	"golang.org/x/text/cases"

	"github.com/sells-group/schooldata/internal/model"
)

// MinSearchTerm is the shortest term sent to the directory search. Shorter
// terms yield no results without a request.
const MinSearchTerm = 2

// Field extracts one text field of an item for matching.
type Field[T any] func(T) string

// Filter returns the items for which any field contains term, compared with
// Unicode case folding. An empty term keeps every item. The input slice is
// not modified.
func Filter[T any](items []T, term string, fields ...Field[T]) []T {
	fold := cases.Fold()
	needle := fold.String(strings.TrimSpace(term))
	if needle == "" {
		return slices.Clone(items)
	}

	out := make([]T, 0, len(items))
	for _, it := range items {
		for _, f := range fields {
			if strings.Contains(fold.String(f(it)), needle) {
				out = append(out, it)
				break
			}
		}
	}
	return out
}

// Sort returns a copy of items stably ordered by key. Equal keys keep their
// input order in both directions.
func Sort[T any, K cmp.Ordered](items []T, key func(T) K, desc bool) []T {
	out := slices.Clone(items)
	slices.SortStableFunc(out, func(a, b T) int {
		c := cmp.Compare(key(a), key(b))
		if desc {
			return -c
		}
		return c
	})
	return out
}

// SchoolFields are the record fields matched by the records filter.
var SchoolFields = []Field[model.School]{
	func(s model.School) string { return s.SchoolName },
	func(s model.School) string { return s.Location },
}

// SortSchools orders records by "id", "name" or "location". Unknown keys
// sort by id.
func SortSchools(items []model.School, key string, desc bool) []model.School {
	switch strings.ToLower(key) {
	case "name":
		return Sort(items, func(s model.School) string { return strings.ToLower(s.SchoolName) }, desc)
	case "location":
		return Sort(items, func(s model.School) string { return strings.ToLower(s.Location) }, desc)
	default:
		return Sort(items, func(s model.School) int64 { return s.ID }, desc)
	}
}

// SortDirectory orders directory results by key. Missing enrollment or
// grades sort before any present value.
func SortDirectory(items []model.DirectoryResult, key model.SortKey, desc bool) []model.DirectoryResult {
	switch key {
	case model.SortDistrict:
		return Sort(items, func(r model.DirectoryResult) string { return r.DistrictName }, desc)
	case model.SortCity:
		return Sort(items, func(r model.DirectoryResult) string { return r.City }, desc)
	case model.SortCounty:
		return Sort(items, func(r model.DirectoryResult) string { return r.County }, desc)
	case model.SortGrades:
		return Sort(items, func(r model.DirectoryResult) string {
			if r.Grades == nil {
				return ""
			}
			return *r.Grades
		}, desc)
	case model.SortEnrollment:
		return Sort(items, func(r model.DirectoryResult) int64 {
			if r.TotalEnrollment == nil {
				return -1
			}
			return *r.TotalEnrollment
		}, desc)
	default:
		return Sort(items, func(r model.DirectoryResult) string { return r.SchoolName }, desc)
	}
}

// CityNames returns the group keys of groups whose city or any school name
// contains term, sorted alphabetically.
func CityNames(groups model.CityGroups, term string) []string {
	fold := cases.Fold()
	needle := fold.String(strings.TrimSpace(term))

	names := make([]string, 0, len(groups))
	for city, rows := range groups {
		if needle == "" || strings.Contains(fold.String(city), needle) {
			names = append(names, city)
			continue
		}
		for _, r := range rows {
			if strings.Contains(fold.String(r.SchoolName), needle) {
				names = append(names, city)
				break
			}
		}
	}
	slices.Sort(names)
	return names
}

// orLow maps a missing number below every present value.
func orLow[N int64 | float64](v *N) N {
	if v == nil {
		return -1
	}
	return *v
}

// FinancialFields are matched by the financial filter.
var FinancialFields = []Field[model.FinancialRecord]{
	func(r model.FinancialRecord) string { return r.AUN },
	func(r model.FinancialRecord) string { return r.DistrictName },
	func(r model.FinancialRecord) string { return r.County },
}

// SortFinancial orders districts by "district", "county", "instruction"
// (instruction percentage) or "total" (total expenditures). Unknown keys
// sort by district.
func SortFinancial(items []model.FinancialRecord, key string, desc bool) []model.FinancialRecord {
	switch strings.ToLower(key) {
	case "county":
		return Sort(items, func(r model.FinancialRecord) string { return r.County }, desc)
	case "instruction":
		return Sort(items, func(r model.FinancialRecord) float64 { return r.InstructionPercentage }, desc)
	case "total":
		return Sort(items, func(r model.FinancialRecord) float64 { return orLow(r.TotalExpenditures) }, desc)
	default:
		return Sort(items, func(r model.FinancialRecord) string { return r.DistrictName }, desc)
	}
}

// PerformanceFields are matched by the performance filter.
var PerformanceFields = []Field[model.PerformanceRecord]{
	func(r model.PerformanceRecord) string { return r.SchoolName },
	func(r model.PerformanceRecord) string { return r.City },
	func(r model.PerformanceRecord) string { return r.County },
	func(r model.PerformanceRecord) string {
		if r.ESSADesignation == nil {
			return ""
		}
		return *r.ESSADesignation
	},
}

// SortPerformance orders schools by "school", "city", "county" or
// "enrollment". Unknown keys sort by school.
func SortPerformance(items []model.PerformanceRecord, key string, desc bool) []model.PerformanceRecord {
	switch strings.ToLower(key) {
	case "city":
		return Sort(items, func(r model.PerformanceRecord) string { return r.City }, desc)
	case "county":
		return Sort(items, func(r model.PerformanceRecord) string { return r.County }, desc)
	case "enrollment":
		return Sort(items, func(r model.PerformanceRecord) int64 { return orLow(r.Enrollment) }, desc)
	default:
		return Sort(items, func(r model.PerformanceRecord) string { return r.SchoolName }, desc)
	}
}

// GraduationFields are matched by the graduation filter.
var GraduationFields = []Field[model.GraduationRecord]{
	func(r model.GraduationRecord) string { return r.AUN },
	func(r model.GraduationRecord) string { return r.DistrictName },
	func(r model.GraduationRecord) string { return r.County },
}

// SortGraduation orders districts by "district", "county" or "rate" (the
// four-year rate). Districts without a cohort sort lowest.
func SortGraduation(items []model.GraduationRecord, key string, desc bool) []model.GraduationRecord {
	switch strings.ToLower(key) {
	case "county":
		return Sort(items, func(r model.GraduationRecord) string { return r.County }, desc)
	case "rate":
		return Sort(items, func(r model.GraduationRecord) float64 { return orLow(r.FourYearRate) }, desc)
	default:
		return Sort(items, func(r model.GraduationRecord) string { return r.DistrictName }, desc)
	}
}

// DemographicFields are matched by the demographics filter.
var DemographicFields = []Field[model.DemographicRecord]{
	func(r model.DemographicRecord) string { return r.SchoolName },
	func(r model.DemographicRecord) string { return r.City },
}

// SortDemographics orders schools by "school", "city", "econ" (economically
// disadvantaged), "el" (English learner) or "sped" (special education).
func SortDemographics(items []model.DemographicRecord, key string, desc bool) []model.DemographicRecord {
	switch strings.ToLower(key) {
	case "city":
		return Sort(items, func(r model.DemographicRecord) string { return r.City }, desc)
	case "econ":
		return Sort(items, func(r model.DemographicRecord) float64 { return orLow(r.EconomicallyDisadvantaged) }, desc)
	case "el":
		return Sort(items, func(r model.DemographicRecord) float64 { return orLow(r.EnglishLearner) }, desc)
	case "sped":
		return Sort(items, func(r model.DemographicRecord) float64 { return orLow(r.SpecialEducation) }, desc)
	default:
		return Sort(items, func(r model.DemographicRecord) string { return r.SchoolName }, desc)
	}
}
