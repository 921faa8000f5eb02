package store

import "github.com/sells-group/schooldata/internal/model"

type scannable interface {
	Scan(dest ...any) error
}

func scanSchool(row scannable) (model.School, error) {
	var s model.School
	err := row.Scan(&s.ID, &s.SchoolName, &s.Location)
	return s, err
}

func scanDemographic(row scannable) (model.DemographicRecord, error) {
	var d model.DemographicRecord
	err := row.Scan(
		&d.SchoolID, &d.SchoolName, &d.City,
		&d.AmericanIndian, &d.Asian, &d.NativeHawaiian, &d.Black, &d.Hispanic, &d.White, &d.TwoOrMoreRaces,
		&d.EconomicallyDisadvantaged, &d.EnglishLearner, &d.SpecialEducation,
		&d.Female, &d.Male, &d.Year,
	)
	return d, err
}

func scanGraduation(row scannable) (model.GraduationRecord, error) {
	var g model.GraduationRecord
	err := row.Scan(
		&g.AUN, &g.DistrictName, &g.County, &g.Year,
		&g.FourYearGrads, &g.FourYearCohort,
		&g.FourYearWhiteRate, &g.FourYearBlackRate, &g.FourYearHispanicRate, &g.FourYearEconDisadvantaged,
		&g.FiveYearGrads, &g.FiveYearCohort,
		&g.SixYearGrads, &g.SixYearCohort,
	)
	if err != nil {
		return g, err
	}
	g.FillRates()
	return g, nil
}

func scanFinancial(row scannable) (model.FinancialRecord, error) {
	var f model.FinancialRecord
	err := row.Scan(
		&f.AUN, &f.DistrictName, &f.County, &f.Year,
		&f.LocalTaxes, &f.StateRevenue, &f.FederalRevenue, &f.STEBMarketValue,
		&f.InstructionSpending, &f.SupportSpending, &f.TransportationSpending, &f.TotalExpenditures,
		&f.MarketValueAidRatio,
	)
	if err != nil {
		return f, err
	}
	f.InstructionPercentage = model.Percent(valueOrZero(f.InstructionSpending), valueOrZero(f.TotalExpenditures))
	return f, nil
}

func scanPerformance(row scannable) (model.PerformanceRecord, error) {
	var p model.PerformanceRecord
	err := row.Scan(
		&p.SchoolID, &p.SchoolName, &p.City, &p.County,
		&p.Enrollment, &p.TitleISchool,
		&p.EconomicallyDisadvantaged, &p.EnglishLearner, &p.SpecialEducation,
		&p.ESSADesignation, &p.CareerAndTechnicalPrograms,
	)
	return p, err
}

func scanDirectory(row scannable) (model.DirectoryResult, error) {
	var d model.DirectoryResult
	err := row.Scan(
		&d.SchoolID, &d.SchoolName, &d.City, &d.DistrictName, &d.County,
		&d.TotalEnrollment, &d.Grades, &d.TitleISchool,
		&d.EconomicallyDisadvantaged, &d.EnglishLearner, &d.SpecialEducation,
	)
	return d, err
}

func valueOrZero(v *float64) float64 {
	if v == nil {
		return 0
	}
	return *v
}
