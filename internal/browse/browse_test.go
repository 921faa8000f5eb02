package browse

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/sells-group/schooldata/internal/model"
)

func schools() []model.School {
	return []model.School{
		{ID: 3, SchoolName: "Lincoln High", Location: "Philadelphia"},
		{ID: 1, SchoolName: "Erie Elementary", Location: "Erie"},
		{ID: 2, SchoolName: "ÉCOLE Straße", Location: "Pittsburgh"},
	}
}

func ids(items []model.School) []int64 {
	out := make([]int64, len(items))
	for i, s := range items {
		out[i] = s.ID
	}
	return out
}

func TestFilter(t *testing.T) {
	tests := []struct {
		name string
		term string
		want []int64
	}{
		{"empty keeps all", "", []int64{3, 1, 2}},
		{"blank keeps all", "   ", []int64{3, 1, 2}},
		{"case insensitive name", "LINCOLN", []int64{3}},
		{"matches location", "pitts", []int64{2}},
		{"matches either field", "erie", []int64{1}},
		{"unicode folding", "strasse", []int64{2}},
		{"accented upper", "école", []int64{2}},
		{"no match", "zzz", []int64{}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Filter(schools(), tt.term, SchoolFields...)
			assert.Equal(t, tt.want, ids(got))
		})
	}
}

func TestFilter_DoesNotAliasInput(t *testing.T) {
	in := schools()
	out := Filter(in, "")
	out[0].SchoolName = "changed"
	assert.Equal(t, "Lincoln High", in[0].SchoolName)
}

func TestSortSchools(t *testing.T) {
	assert.Equal(t, []int64{1, 2, 3}, ids(SortSchools(schools(), "id", false)))
	assert.Equal(t, []int64{3, 2, 1}, ids(SortSchools(schools(), "id", true)))
	assert.Equal(t, []int64{1, 3, 2}, ids(SortSchools(schools(), "name", false)))
	assert.Equal(t, []int64{1, 3, 2}, ids(SortSchools(schools(), "Location", false)))
	assert.Equal(t, []int64{1, 2, 3}, ids(SortSchools(schools(), "bogus", false)))
}

func TestSort_Stable(t *testing.T) {
	in := []model.School{
		{ID: 1, Location: "B"},
		{ID: 2, Location: "A"},
		{ID: 3, Location: "B"},
		{ID: 4, Location: "A"},
	}
	byLoc := func(s model.School) string { return s.Location }

	assert.Equal(t, []int64{2, 4, 1, 3}, ids(Sort(in, byLoc, false)))
	assert.Equal(t, []int64{1, 3, 2, 4}, ids(Sort(in, byLoc, true)))
	assert.Equal(t, []int64{1, 2, 3, 4}, ids(in), "input untouched")
}

func ptr[T any](v T) *T { return &v }

func TestSortDirectory(t *testing.T) {
	rows := []model.DirectoryResult{
		{SchoolID: "a", SchoolName: "Beta", DistrictName: "Z", City: "Erie", County: "Erie", TotalEnrollment: ptr(int64(300)), Grades: ptr("K-5")},
		{SchoolID: "b", SchoolName: "Alpha", DistrictName: "Y", City: "York", County: "Adams", TotalEnrollment: nil},
		{SchoolID: "c", SchoolName: "Gamma", DistrictName: "X", City: "Altoona", County: "Blair", TotalEnrollment: ptr(int64(50)), Grades: ptr("9-12")},
	}
	order := func(rs []model.DirectoryResult) []string {
		out := make([]string, len(rs))
		for i, r := range rs {
			out[i] = r.SchoolID
		}
		return out
	}

	assert.Equal(t, []string{"b", "a", "c"}, order(SortDirectory(rows, model.SortSchool, false)))
	assert.Equal(t, []string{"c", "b", "a"}, order(SortDirectory(rows, model.SortDistrict, false)))
	assert.Equal(t, []string{"c", "a", "b"}, order(SortDirectory(rows, model.SortCity, false)))
	assert.Equal(t, []string{"b", "c", "a"}, order(SortDirectory(rows, model.SortCounty, false)))
	assert.Equal(t, []string{"b", "c", "a"}, order(SortDirectory(rows, model.SortGrades, false)))
	assert.Equal(t, []string{"b", "c", "a"}, order(SortDirectory(rows, model.SortEnrollment, false)))
	assert.Equal(t, []string{"a", "c", "b"}, order(SortDirectory(rows, model.SortEnrollment, true)))
}

func TestCityNames(t *testing.T) {
	groups := model.CityGroups{
		"Erie":    {{SchoolName: "Lincoln High"}},
		"Altoona": {{SchoolName: "Roosevelt"}},
		"Unknown": {{SchoolName: "Nowhere Academy"}},
	}

	assert.Equal(t, []string{"Altoona", "Erie", "Unknown"}, CityNames(groups, ""))
	assert.Equal(t, []string{"Erie"}, CityNames(groups, "ERIE"))
	assert.Equal(t, []string{"Erie"}, CityNames(groups, "lincoln"))
	assert.Empty(t, CityNames(groups, "harrisburg"))
	assert.Empty(t, CityNames(model.CityGroups{}, ""))
}

func TestSortFinancial(t *testing.T) {
	rows := []model.FinancialRecord{
		{AUN: "1", DistrictName: "Erie City SD", County: "Erie", InstructionPercentage: 55, TotalExpenditures: ptr(900.0)},
		{AUN: "2", DistrictName: "Abington SD", County: "Montgomery", InstructionPercentage: 61},
		{AUN: "3", DistrictName: "Bald Eagle SD", County: "Centre", InstructionPercentage: 48, TotalExpenditures: ptr(100.0)},
	}
	aun := func(rs []model.FinancialRecord) []string {
		out := make([]string, len(rs))
		for i, r := range rs {
			out[i] = r.AUN
		}
		return out
	}

	assert.Equal(t, []string{"2", "3", "1"}, aun(SortFinancial(rows, "bogus", false)))
	assert.Equal(t, []string{"3", "1", "2"}, aun(SortFinancial(rows, "County", false)))
	assert.Equal(t, []string{"2", "1", "3"}, aun(SortFinancial(rows, "instruction", true)))
	assert.Equal(t, []string{"2", "3", "1"}, aun(SortFinancial(rows, "total", false)), "missing totals sort first")
	assert.Equal(t, []string{"3"}, aun(Filter(rows, "centre", FinancialFields...)))
}

func TestSortPerformance(t *testing.T) {
	rows := []model.PerformanceRecord{
		{SchoolID: "a", SchoolName: "Lincoln", City: "Erie", County: "Erie", Enrollment: ptr(int64(400)), ESSADesignation: ptr("CSI")},
		{SchoolID: "b", SchoolName: "Adams", City: "York", County: "York"},
		{SchoolID: "c", SchoolName: "Wilson", City: "Altoona", County: "Blair", Enrollment: ptr(int64(90))},
	}
	order := func(rs []model.PerformanceRecord) []string {
		out := make([]string, len(rs))
		for i, r := range rs {
			out[i] = r.SchoolID
		}
		return out
	}

	assert.Equal(t, []string{"b", "a", "c"}, order(SortPerformance(rows, "", false)))
	assert.Equal(t, []string{"c", "a", "b"}, order(SortPerformance(rows, "city", false)))
	assert.Equal(t, []string{"a", "c", "b"}, order(SortPerformance(rows, "enrollment", true)))
	assert.Equal(t, []string{"a"}, order(Filter(rows, "csi", PerformanceFields...)))
}

func TestSortGraduation(t *testing.T) {
	rows := []model.GraduationRecord{
		{AUN: "1", DistrictName: "Erie City SD", County: "Erie", FourYearRate: ptr(75.0)},
		{AUN: "2", DistrictName: "Abington SD", County: "Montgomery"},
		{AUN: "3", DistrictName: "Bald Eagle SD", County: "Centre", FourYearRate: ptr(92.5)},
	}
	aun := func(rs []model.GraduationRecord) []string {
		out := make([]string, len(rs))
		for i, r := range rs {
			out[i] = r.AUN
		}
		return out
	}

	assert.Equal(t, []string{"2", "3", "1"}, aun(SortGraduation(rows, "district", false)))
	assert.Equal(t, []string{"3", "1", "2"}, aun(SortGraduation(rows, "rate", true)))
	assert.Equal(t, []string{"1"}, aun(Filter(rows, "ERIE", GraduationFields...)))
}

func TestSortDemographics(t *testing.T) {
	rows := []model.DemographicRecord{
		{SchoolID: "a", SchoolName: "Lincoln", City: "Erie", EconomicallyDisadvantaged: ptr(70.0), EnglishLearner: ptr(3.0)},
		{SchoolID: "b", SchoolName: "Adams", City: "York", EconomicallyDisadvantaged: ptr(20.0), SpecialEducation: ptr(18.0)},
		{SchoolID: "c", SchoolName: "Wilson", City: "Altoona", EnglishLearner: ptr(11.0), SpecialEducation: ptr(9.0)},
	}
	order := func(rs []model.DemographicRecord) []string {
		out := make([]string, len(rs))
		for i, r := range rs {
			out[i] = r.SchoolID
		}
		return out
	}

	assert.Equal(t, []string{"b", "a", "c"}, order(SortDemographics(rows, "school", false)))
	assert.Equal(t, []string{"c", "a", "b"}, order(SortDemographics(rows, "city", false)))
	assert.Equal(t, []string{"a", "b", "c"}, order(SortDemographics(rows, "econ", true)))
	assert.Equal(t, []string{"b", "a", "c"}, order(SortDemographics(rows, "el", false)))
	assert.Equal(t, []string{"b", "c", "a"}, order(SortDemographics(rows, "sped", true)))
	assert.Equal(t, []string{"c"}, order(Filter(rows, "altoona", DemographicFields...)))
}
