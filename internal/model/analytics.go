package model

// DemographicRecord is one school's demographic breakdown for the latest
// FastFactsSchool year. Percentages are stored as published.
type DemographicRecord struct {
	SchoolID                  string   `json:"school_id"`
	SchoolName                string   `json:"school_name"`
	City                      string   `json:"city"`
	AmericanIndian            *float64 `json:"american_indian"`
	Asian                     *float64 `json:"asian"`
	NativeHawaiian            *float64 `json:"native_hawaiian"`
	Black                     *float64 `json:"black"`
	Hispanic                  *float64 `json:"hispanic"`
	White                     *float64 `json:"white"`
	TwoOrMoreRaces            *float64 `json:"two_or_more_races"`
	EconomicallyDisadvantaged *float64 `json:"economically_disadvantaged"`
	EnglishLearner            *float64 `json:"english_learner"`
	SpecialEducation          *float64 `json:"special_education"`
	Female                    *float64 `json:"female"`
	Male                      *float64 `json:"male"`
	Year                      int      `json:"year"`
}

// CityGroups maps a city name to the demographic rows of its schools.
type CityGroups map[string][]DemographicRecord

// UnknownCity is the group key for schools without a city.
const UnknownCity = "Unknown"

// GroupByCity buckets rows by city, preserving input order within a city.
func GroupByCity(rows []DemographicRecord) CityGroups {
	groups := make(CityGroups)
	for _, r := range rows {
		city := r.City
		if city == "" {
			city = UnknownCity
		}
		groups[city] = append(groups[city], r)
	}
	return groups
}

// GraduationRecord holds a district's 4/5/6-year cohort outcomes. Cohort
// fields are nil when the district has no cohort row for the latest year.
type GraduationRecord struct {
	AUN                       string   `json:"aun"`
	DistrictName              string   `json:"district_name"`
	County                    string   `json:"county"`
	Year                      *int     `json:"year"`
	FourYearGrads             *int64   `json:"four_year_grads"`
	FourYearCohort            *int64   `json:"four_year_cohort"`
	FourYearRate              *float64 `json:"four_year_rate"`
	FourYearWhiteRate         *float64 `json:"four_year_white_rate"`
	FourYearBlackRate         *float64 `json:"four_year_black_rate"`
	FourYearHispanicRate      *float64 `json:"four_year_hispanic_rate"`
	FourYearEconDisadvantaged *float64 `json:"four_year_econ_disadvantaged_rate"`
	FiveYearGrads             *int64   `json:"five_year_grads"`
	FiveYearCohort            *int64   `json:"five_year_cohort"`
	FiveYearRate              *float64 `json:"five_year_rate"`
	SixYearGrads              *int64   `json:"six_year_grads"`
	SixYearCohort             *int64   `json:"six_year_cohort"`
	SixYearRate               *float64 `json:"six_year_rate"`
}

// FillRates computes the cohort graduation rates from grads and cohort size.
// A rate stays nil when either count is missing.
func (g *GraduationRecord) FillRates() {
	g.FourYearRate = cohortRate(g.FourYearGrads, g.FourYearCohort)
	g.FiveYearRate = cohortRate(g.FiveYearGrads, g.FiveYearCohort)
	g.SixYearRate = cohortRate(g.SixYearGrads, g.SixYearCohort)
}

func cohortRate(grads, cohort *int64) *float64 {
	if grads == nil || cohort == nil {
		return nil
	}
	r := Percent(float64(*grads), float64(*cohort))
	return &r
}

// FinancialRecord is a district's revenue and expenditure profile for the
// latest AFR year.
type FinancialRecord struct {
	AUN                    string   `json:"aun"`
	DistrictName           string   `json:"district_name"`
	County                 string   `json:"county"`
	Year                   int      `json:"year"`
	LocalTaxes             *float64 `json:"local_taxes"`
	StateRevenue           *float64 `json:"state_revenue"`
	FederalRevenue         *float64 `json:"federal_revenue"`
	STEBMarketValue        *float64 `json:"steb_market_value"`
	InstructionSpending    *float64 `json:"instruction_spending"`
	SupportSpending        *float64 `json:"support_spending"`
	TransportationSpending *float64 `json:"transportation_spending"`
	TotalExpenditures      *float64 `json:"total_expenditures"`
	InstructionPercentage  float64  `json:"instruction_percentage"`
	MarketValueAidRatio    *float64 `json:"market_value_aid_ratio"`
}

// PerformanceRecord is a school's enrollment and designation snapshot.
type PerformanceRecord struct {
	SchoolID                   string   `json:"school_id"`
	SchoolName                 string   `json:"school_name"`
	City                       string   `json:"school_address_city"`
	County                     string   `json:"county"`
	Enrollment                 *int64   `json:"school_enrollment"`
	TitleISchool               *string  `json:"title_i_school"`
	EconomicallyDisadvantaged  *float64 `json:"economically_disadvantaged"`
	EnglishLearner             *float64 `json:"english_learner"`
	SpecialEducation           *float64 `json:"special_education"`
	ESSADesignation            *string  `json:"essa_school_designation"`
	CareerAndTechnicalPrograms *string  `json:"career_and_technical_programs"`
}

// DirectoryResult is a row of the multi-field school search.
type DirectoryResult struct {
	SchoolID                  string   `json:"school_id"`
	SchoolName                string   `json:"school_name"`
	City                      string   `json:"school_address_city"`
	DistrictName              string   `json:"district_name"`
	County                    string   `json:"county"`
	TotalEnrollment           *int64   `json:"total_enrollment"`
	Grades                    *string  `json:"grades"`
	TitleISchool              *string  `json:"title_i_school"`
	EconomicallyDisadvantaged *float64 `json:"economically_disadvantaged"`
	EnglishLearner            *float64 `json:"english_learner"`
	SpecialEducation          *float64 `json:"special_education"`
}
