package api

import (
	"net/http"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/sells-group/schooldata/internal/model"
)

func ptr[T any](v T) *T { return &v }

func TestDemographics(t *testing.T) {
	srv, st := newMockServer(t, defaultOptions())
	st.On("Demographics", mock.Anything).Return([]model.DemographicRecord{
		{SchoolID: "1", SchoolName: "Central High", City: "Erie", White: ptr(58.0), Year: 2023},
	}, nil)

	status, body := do(t, http.MethodGet, srv.URL+"/api/demographics", nil)
	require.Equal(t, http.StatusOK, status)
	rows := decode[[]model.DemographicRecord](t, body)
	require.Len(t, rows, 1)
	assert.Equal(t, 2023, rows[0].Year)
	assert.InDelta(t, 58.0, *rows[0].White, 0.001)
}

func TestAnalyticsEmptyResultsAreArrays(t *testing.T) {
	srv, st := newMockServer(t, defaultOptions())
	st.On("Demographics", mock.Anything).Return(nil, nil)
	st.On("GraduationRates", mock.Anything, "").Return(nil, nil)
	st.On("FinancialAnalysis", mock.Anything).Return(nil, nil)
	st.On("SchoolPerformance", mock.Anything).Return(nil, nil)
	st.On("SearchDirectory", mock.Anything, "zzz", model.SortSchool).Return(nil, nil)

	for _, path := range []string{
		"/api/demographics",
		"/api/graduation-rates",
		"/api/financial-analysis",
		"/api/school-performance",
		"/api/schools/search?term=zzz",
	} {
		status, body := do(t, http.MethodGet, srv.URL+path, nil)
		assert.Equal(t, http.StatusOK, status, path)
		assert.Equal(t, "[]", strings.TrimSpace(string(body)), path)
	}
}

func TestGraduationRates_ByDistrict(t *testing.T) {
	srv, st := newMockServer(t, defaultOptions())
	st.On("GraduationRates", mock.Anything, "101").Return([]model.GraduationRecord{
		{AUN: "101", DistrictName: "Erie City SD", FourYearGrads: ptr(int64(90)), FourYearCohort: ptr(int64(120)), FourYearRate: ptr(75.0)},
	}, nil)

	status, body := do(t, http.MethodGet, srv.URL+"/api/graduation-rates/101", nil)
	require.Equal(t, http.StatusOK, status)
	rows := decode[[]model.GraduationRecord](t, body)
	require.Len(t, rows, 1)
	assert.Equal(t, "Erie City SD", rows[0].DistrictName)
	assert.InDelta(t, 75.0, *rows[0].FourYearRate, 0.001)
	assert.Nil(t, rows[0].FiveYearRate)
	assert.Contains(t, string(body), `"five_year_rate":null`)
}

func TestGraduationRates_EscapedDistrict(t *testing.T) {
	srv, st := newMockServer(t, defaultOptions())
	st.On("GraduationRates", mock.Anything, "10/1").Return([]model.GraduationRecord{
		{AUN: "10/1", DistrictName: "Slash SD"},
	}, nil)

	status, body := do(t, http.MethodGet, srv.URL+"/api/graduation-rates/10%2F1", nil)
	require.Equal(t, http.StatusOK, status)
	rows := decode[[]model.GraduationRecord](t, body)
	require.Len(t, rows, 1)
	assert.Equal(t, "Slash SD", rows[0].DistrictName)
	st.AssertExpectations(t)
}

func TestFinancialAnalysis(t *testing.T) {
	srv, st := newMockServer(t, defaultOptions())
	st.On("FinancialAnalysis", mock.Anything).Return([]model.FinancialRecord{
		{AUN: "101", InstructionSpending: ptr(200.0), TotalExpenditures: ptr(300.0), InstructionPercentage: 66.67},
	}, nil)

	status, body := do(t, http.MethodGet, srv.URL+"/api/financial-analysis", nil)
	require.Equal(t, http.StatusOK, status)
	assert.Contains(t, string(body), `"instruction_percentage":66.67`)
}

func TestSchoolPerformance(t *testing.T) {
	srv, st := newMockServer(t, defaultOptions())
	st.On("SchoolPerformance", mock.Anything).Return([]model.PerformanceRecord{
		{SchoolID: "3", SchoolName: "Allderdice High", ESSADesignation: ptr("CSI")},
	}, nil)

	status, body := do(t, http.MethodGet, srv.URL+"/api/school-performance", nil)
	require.Equal(t, http.StatusOK, status)
	rows := decode[[]model.PerformanceRecord](t, body)
	require.Len(t, rows, 1)
	assert.Equal(t, "CSI", *rows[0].ESSADesignation)
}

func TestCities(t *testing.T) {
	srv, st := newMockServer(t, defaultOptions())
	st.On("Demographics", mock.Anything).Return([]model.DemographicRecord{
		{SchoolID: "1", City: "Erie"},
		{SchoolID: "2", City: "Erie"},
		{SchoolID: "3", City: "Pittsburgh"},
		{SchoolID: "4"},
	}, nil)

	status, body := do(t, http.MethodGet, srv.URL+"/api/cities", nil)
	require.Equal(t, http.StatusOK, status)
	groups := decode[map[string][]model.DemographicRecord](t, body)
	assert.Len(t, groups["Erie"], 2)
	assert.Len(t, groups["Pittsburgh"], 1)
	assert.Len(t, groups[model.UnknownCity], 1)
}

func TestCities_Empty(t *testing.T) {
	srv, st := newMockServer(t, defaultOptions())
	st.On("Demographics", mock.Anything).Return(nil, nil)

	status, body := do(t, http.MethodGet, srv.URL+"/api/cities", nil)
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, "{}", strings.TrimSpace(string(body)))
}

func TestSearchDirectory_SortKeys(t *testing.T) {
	tests := []struct {
		sortBy string
		want   model.SortKey
	}{
		{"", model.SortSchool},
		{"district", model.SortDistrict},
		{"Enrollment", model.SortEnrollment},
		{"school_name; DROP TABLE Schools", model.SortSchool},
	}
	for _, tt := range tests {
		t.Run(tt.sortBy, func(t *testing.T) {
			srv, st := newMockServer(t, defaultOptions())
			st.On("SearchDirectory", mock.Anything, "erie", tt.want).Return([]model.DirectoryResult{{SchoolID: "1"}}, nil)

			req, err := http.NewRequest(http.MethodGet, srv.URL+"/api/schools/search", nil)
			require.NoError(t, err)
			q := req.URL.Query()
			q.Set("term", " erie ")
			q.Set("sortBy", tt.sortBy)
			req.URL.RawQuery = q.Encode()

			status, _ := do(t, http.MethodGet, req.URL.String(), nil)
			assert.Equal(t, http.StatusOK, status)
		})
	}
}

func TestSearchDirectory_TermRequired(t *testing.T) {
	srv, _ := newMockServer(t, defaultOptions())

	status, body := do(t, http.MethodGet, srv.URL+"/api/schools/search?sortBy=city", nil)
	assert.Equal(t, http.StatusBadRequest, status)
	assert.Equal(t, "search term is required", errorMessage(t, body))
}

func TestAnalyticsStoreFailure(t *testing.T) {
	srv, st := newMockServer(t, defaultOptions())
	st.On("Demographics", mock.Anything).Return(nil, assert.AnError)
	st.On("GraduationRates", mock.Anything, "").Return(nil, assert.AnError)
	st.On("FinancialAnalysis", mock.Anything).Return(nil, assert.AnError)
	st.On("SchoolPerformance", mock.Anything).Return(nil, assert.AnError)
	st.On("SearchDirectory", mock.Anything, "x", model.SortSchool).Return(nil, assert.AnError)

	for _, path := range []string{
		"/api/demographics",
		"/api/cities",
		"/api/graduation-rates",
		"/api/financial-analysis",
		"/api/school-performance",
		"/api/schools/search?term=x",
	} {
		status, body := do(t, http.MethodGet, srv.URL+path, nil)
		assert.Equal(t, http.StatusInternalServerError, status, path)
		assert.Equal(t, assert.AnError.Error(), errorMessage(t, body), path)
	}
}
