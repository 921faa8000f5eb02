package store

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/sells-group/schooldata/internal/model"
)

// Queries are written once with ? placeholders and unquoted identifiers;
// the Postgres store rebinds them to $n.

const (
	listSchoolsSQL   = `SELECT id, school_name, COALESCE(location, '') FROM school_records ORDER BY id`
	getSchoolSQL     = `SELECT id, school_name, COALESCE(location, '') FROM school_records WHERE id = ?`
	searchSchoolsSQL = `SELECT id, school_name, COALESCE(location, '') FROM school_records WHERE LOWER(school_name) LIKE LOWER(?) ESCAPE '\' ORDER BY id`
	updateSchoolSQL  = `UPDATE school_records SET school_name = ?, location = ? WHERE id = ?`
	deleteSchoolSQL  = `DELETE FROM school_records WHERE id = ?`
	deleteAllSQL     = `DELETE FROM school_records`
)

const demographicsSQL = `
SELECT s.school_id,
       COALESCE(s.school_name, ''),
       COALESCE(s.school_address_city, ''),
       f.ai_an,
       f.asian,
       f.nh_pi,
       f.african_american,
       f.hispanic,
       f.white,
       f.multiracial,
       f.economically_disadvantaged,
       f.english_learner,
       f.special_education,
       f.female_school,
       f.male_school,
       f.year
FROM FastFactsSchool f
JOIN Schools s ON f.school_id = s.school_id
WHERE f.year = (SELECT MAX(year) FROM FastFactsSchool)
ORDER BY s.school_name, s.school_id`

const graduationSQL = `
SELECT l.aun,
       COALESCE(l.lea_name, ''),
       COALESCE(l.county, ''),
       c4.year,
       c4.total_grads,
       c4.total_cohort,
       c4.white_grad_rate,
       c4.african_american_grad_rate,
       c4.hispanic_grad_rate,
       c4.economically_disadvantaged_grad_rate,
       c5.total_grads,
       c5.total_cohort,
       c6.total_grads,
       c6.total_cohort
FROM LEAs l
LEFT JOIN CohortFourYear c4 ON l.aun = c4.aun AND c4.year = (SELECT MAX(year) FROM CohortFourYear)
LEFT JOIN CohortFiveYear c5 ON l.aun = c5.aun AND c5.year = (SELECT MAX(year) FROM CohortFourYear)
LEFT JOIN CohortSixYear c6 ON l.aun = c6.aun AND c6.year = (SELECT MAX(year) FROM CohortFourYear)`

const financialSQL = `
SELECT l.aun,
       COALESCE(l.lea_name, ''),
       COALESCE(l.county, ''),
       r.year,
       r.local_taxes,
       r.state_revenue,
       r.federal_revenue,
       r.steb_market_value,
       e.instruction,
       e.support_services,
       e.transportation,
       e.total_expenditures,
       a.mv_pi_aid_ratio
FROM LEAs l
JOIN AFRRevenue r ON l.aun = r.aun
JOIN AFRExpenditure e ON l.aun = e.aun AND e.year = r.year
JOIN AidRatios a ON l.aun = a.aun AND a.year = r.year
WHERE r.year = (SELECT MAX(year) FROM AFRRevenue)
ORDER BY l.lea_name, l.aun`

const performanceSQL = `
SELECT s.school_id,
       COALESCE(s.school_name, ''),
       COALESCE(s.school_address_city, ''),
       COALESCE(l.county, ''),
       f.school_enrollment,
       f.title_i_school,
       f.economically_disadvantaged,
       f.english_learner,
       f.special_education,
       f.essa_school_designation,
       f.career_and_technical_programs
FROM Schools s
JOIN LEAs l ON s.aun = l.aun
JOIN FastFactsSchool f ON s.school_id = f.school_id
WHERE f.year = (SELECT MAX(year) FROM FastFactsSchool)
ORDER BY l.county, s.school_address_city, s.school_name`

const directorySQL = `
SELECT s.school_id,
       COALESCE(s.school_name, ''),
       COALESCE(s.school_address_city, ''),
       COALESCE(l.lea_name, ''),
       COALESCE(l.county, ''),
       f.school_enrollment,
       f.grades_offered,
       f.title_i_school,
       f.economically_disadvantaged,
       f.english_learner,
       f.special_education
FROM Schools s
JOIN LEAs l ON s.aun = l.aun
JOIN FastFactsSchool f ON s.school_id = f.school_id
WHERE f.year = (SELECT MAX(year) FROM FastFactsSchool)
  AND (LOWER(s.school_name) LIKE LOWER(?) ESCAPE '\'
    OR LOWER(l.lea_name) LIKE LOWER(?) ESCAPE '\'
    OR LOWER(s.school_address_city) LIKE LOWER(?) ESCAPE '\'
    OR LOWER(l.county) LIKE LOWER(?) ESCAPE '\')
ORDER BY %s, s.school_id
LIMIT %d`

// sortColumns maps each logical sort key to the column it orders by. It is
// the only source of ORDER BY text in the directory search.
var sortColumns = map[model.SortKey]string{
	model.SortSchool:     "s.school_name",
	model.SortDistrict:   "l.lea_name",
	model.SortCity:       "s.school_address_city",
	model.SortCounty:     "l.county",
	model.SortGrades:     "f.grades_offered",
	model.SortEnrollment: "f.school_enrollment",
}

// sortColumn resolves key through sortColumns, defaulting to the school name.
func sortColumn(key model.SortKey) string {
	if col, ok := sortColumns[key]; ok {
		return col
	}
	return sortColumns[model.SortSchool]
}

func graduationQuery(aun string) (string, []any) {
	q := graduationSQL
	var args []any
	if aun != "" {
		q += "\nWHERE l.aun = ?"
		args = append(args, aun)
	}
	return q + "\nORDER BY l.lea_name, l.aun", args
}

func directoryQuery(term string, key model.SortKey) (string, []any) {
	pattern := containsPattern(term)
	return fmt.Sprintf(directorySQL, sortColumn(key), DirectoryLimit),
		[]any{pattern, pattern, pattern, pattern}
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// containsPattern builds a LIKE pattern matching term anywhere, with LIKE
// metacharacters in term matched literally.
func containsPattern(term string) string {
	return "%" + likeEscaper.Replace(term) + "%"
}

// rebind rewrites ? placeholders as $1, $2, ... for PostgreSQL.
func rebind(query string) string {
	var b strings.Builder
	b.Grow(len(query) + 8)
	n := 0
	for _, r := range query {
		if r == '?' {
			n++
			b.WriteByte('$')
			b.WriteString(strconv.Itoa(n))
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}
