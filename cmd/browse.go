package main

import (
	"context"
	"fmt"
	"io"
	"strconv"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"

	"github.com/sells-group/schooldata/internal/browse"
	"github.com/sells-group/schooldata/internal/model"
	"github.com/sells-group/schooldata/pkg/schoolapi"
)

var (
	browseTerm       string
	browseFilter     string
	browseQuery      string
	browseAUN        string
	searchSort       string
	recordsSort      string
	financialSort    string
	performanceSort  string
	graduationSort   string
	demographicsSort string
	browseDesc       bool
	browsePage       int
)

var browseCmd = &cobra.Command{
	Use:   "browse",
	Short: "Browse the query service from the terminal",
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		if err := rootCmd.PersistentPreRunE(cmd, args); err != nil {
			return err
		}
		return cfg.Validate("browse")
	},
}

var browseSearchCmd = &cobra.Command{
	Use:   "search",
	Short: "Search the school directory",
	RunE: func(cmd *cobra.Command, _ []string) error {
		w := cmd.OutOrStdout()
		if len([]rune(browseTerm)) < browse.MinSearchTerm {
			fmt.Fprintf(w, "enter at least %d characters to search\n", browse.MinSearchTerm)
			return nil
		}

		key := model.ParseSortKey(searchSort)
		results, err := newAPIClient().SearchSchools(cmd.Context(), browseTerm, key)
		if err != nil {
			return eris.Wrap(err, "search schools")
		}
		if browseDesc {
			results = browse.SortDirectory(results, key, true)
		}

		p := pagerAt(len(results), browsePage)
		tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
		fmt.Fprintln(tw, "ID\tSCHOOL\tDISTRICT\tCITY\tCOUNTY\tGRADES\tENROLLMENT")
		for _, r := range browse.Slice(p, results) {
			fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\t%s\t%s\n",
				r.SchoolID, r.SchoolName, r.DistrictName, r.City, r.County,
				stringOr(r.Grades), intOr(r.TotalEnrollment))
		}
		if err := tw.Flush(); err != nil {
			return eris.Wrap(err, "write results")
		}
		printPageFooter(w, p, len(results))
		return nil
	},
}

var browseRecordsCmd = &cobra.Command{
	Use:   "records",
	Short: "List school records",
	RunE: func(cmd *cobra.Command, _ []string) error {
		records, err := fetchRecords(cmd.Context(), newAPIClient(), browseQuery)
		if err != nil {
			return err
		}
		records = browse.Filter(records, browseFilter, browse.SchoolFields...)
		records = browse.SortSchools(records, recordsSort, browseDesc)

		w := cmd.OutOrStdout()
		p := pagerAt(len(records), browsePage)
		tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
		fmt.Fprintln(tw, "ID\tSCHOOL\tLOCATION")
		for _, r := range browse.Slice(p, records) {
			fmt.Fprintf(tw, "%d\t%s\t%s\n", r.ID, r.SchoolName, r.Location)
		}
		if err := tw.Flush(); err != nil {
			return eris.Wrap(err, "write records")
		}
		printPageFooter(w, p, len(records))
		return nil
	},
}

var browseCitiesCmd = &cobra.Command{
	Use:   "cities",
	Short: "List schools grouped by city",
	RunE: func(cmd *cobra.Command, _ []string) error {
		groups, err := newAPIClient().Cities(cmd.Context())
		if err != nil {
			return eris.Wrap(err, "list cities")
		}

		w := cmd.OutOrStdout()
		names := browse.CityNames(groups, browseFilter)
		if len(names) == 0 {
			fmt.Fprintln(w, "no cities found")
			return nil
		}
		for _, city := range names {
			rows := groups[city]
			fmt.Fprintf(w, "%s (%d)\n", city, len(rows))
			for _, r := range rows {
				fmt.Fprintf(w, "  %s\t%s\n", r.SchoolID, r.SchoolName)
			}
		}
		return nil
	},
}

var browseFinancialCmd = &cobra.Command{
	Use:   "financial",
	Short: "List district revenue and spending for the latest AFR year",
	RunE: func(cmd *cobra.Command, _ []string) error {
		rows, err := newAPIClient().FinancialAnalysis(cmd.Context())
		if err != nil {
			return eris.Wrap(err, "financial analysis")
		}
		rows = browse.Filter(rows, browseFilter, browse.FinancialFields...)
		rows = browse.SortFinancial(rows, financialSort, browseDesc)

		w := cmd.OutOrStdout()
		p := pagerAt(len(rows), browsePage)
		tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
		fmt.Fprintln(tw, "AUN\tDISTRICT\tCOUNTY\tYEAR\tINSTRUCTION\tTOTAL\tINSTRUCTION %")
		for _, r := range browse.Slice(p, rows) {
			fmt.Fprintf(tw, "%s\t%s\t%s\t%d\t%s\t%s\t%.1f\n",
				r.AUN, r.DistrictName, r.County, r.Year,
				floatOr(r.InstructionSpending, "%.0f"), floatOr(r.TotalExpenditures, "%.0f"),
				r.InstructionPercentage)
		}
		if err := tw.Flush(); err != nil {
			return eris.Wrap(err, "write financial analysis")
		}
		printPageFooter(w, p, len(rows))
		return nil
	},
}

var browsePerformanceCmd = &cobra.Command{
	Use:   "performance",
	Short: "List school enrollment and ESSA designations",
	RunE: func(cmd *cobra.Command, _ []string) error {
		rows, err := newAPIClient().SchoolPerformance(cmd.Context())
		if err != nil {
			return eris.Wrap(err, "school performance")
		}
		rows = browse.Filter(rows, browseFilter, browse.PerformanceFields...)
		rows = browse.SortPerformance(rows, performanceSort, browseDesc)

		w := cmd.OutOrStdout()
		p := pagerAt(len(rows), browsePage)
		tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
		fmt.Fprintln(tw, "ID\tSCHOOL\tCITY\tCOUNTY\tENROLLMENT\tTITLE I\tESSA")
		for _, r := range browse.Slice(p, rows) {
			fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\t%s\t%s\n",
				r.SchoolID, r.SchoolName, r.City, r.County,
				intOr(r.Enrollment), stringOr(r.TitleISchool), stringOr(r.ESSADesignation))
		}
		if err := tw.Flush(); err != nil {
			return eris.Wrap(err, "write school performance")
		}
		printPageFooter(w, p, len(rows))
		return nil
	},
}

var browseGraduationCmd = &cobra.Command{
	Use:   "graduation",
	Short: "List district cohort graduation rates",
	RunE: func(cmd *cobra.Command, _ []string) error {
		aun := strings.TrimSpace(browseAUN)
		rows, err := newAPIClient().GraduationRates(cmd.Context(), aun)
		if err != nil {
			return eris.Wrap(err, "graduation rates")
		}
		rows = browse.Filter(rows, browseFilter, browse.GraduationFields...)
		rows = browse.SortGraduation(rows, graduationSort, browseDesc)

		w := cmd.OutOrStdout()
		p := pagerAt(len(rows), browsePage)
		tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
		fmt.Fprintln(tw, "AUN\tDISTRICT\tCOUNTY\t4-YR\t5-YR\t6-YR")
		for _, r := range browse.Slice(p, rows) {
			fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\t%s\n",
				r.AUN, r.DistrictName, r.County,
				floatOr(r.FourYearRate, "%.1f"), floatOr(r.FiveYearRate, "%.1f"), floatOr(r.SixYearRate, "%.1f"))
		}
		if err := tw.Flush(); err != nil {
			return eris.Wrap(err, "write graduation rates")
		}
		printPageFooter(w, p, len(rows))
		return nil
	},
}

var browseDemographicsCmd = &cobra.Command{
	Use:   "demographics",
	Short: "List school demographics for the latest year",
	RunE: func(cmd *cobra.Command, _ []string) error {
		rows, err := newAPIClient().Demographics(cmd.Context())
		if err != nil {
			return eris.Wrap(err, "demographics")
		}
		rows = browse.Filter(rows, browseFilter, browse.DemographicFields...)
		rows = browse.SortDemographics(rows, demographicsSort, browseDesc)

		w := cmd.OutOrStdout()
		p := pagerAt(len(rows), browsePage)
		tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
		fmt.Fprintln(tw, "ID\tSCHOOL\tCITY\tECON DIS %\tEL %\tSPED %")
		for _, r := range browse.Slice(p, rows) {
			fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\t%s\n",
				r.SchoolID, r.SchoolName, r.City,
				floatOr(r.EconomicallyDisadvantaged, "%.1f"), floatOr(r.EnglishLearner, "%.1f"),
				floatOr(r.SpecialEducation, "%.1f"))
		}
		if err := tw.Flush(); err != nil {
			return eris.Wrap(err, "write demographics")
		}
		printPageFooter(w, p, len(rows))
		return nil
	},
}

var browseHealthCmd = &cobra.Command{
	Use:   "health",
	Short: "Check that the query service is reachable",
	RunE: func(cmd *cobra.Command, _ []string) error {
		if err := newAPIClient().Health(cmd.Context()); err != nil {
			return eris.Wrapf(err, "health check %s", cfg.Client.BaseURL)
		}
		fmt.Fprintf(cmd.OutOrStdout(), "query service at %s is healthy\n", cfg.Client.BaseURL)
		return nil
	},
}

// fetchRecords lists every record, or searches them server-side when q is set.
func fetchRecords(ctx context.Context, client schoolapi.Client, q string) ([]model.School, error) {
	if q = strings.TrimSpace(q); q != "" {
		records, err := client.SearchRecords(ctx, q)
		if err != nil {
			return nil, eris.Wrap(err, "search records")
		}
		return records, nil
	}
	records, err := client.ListRecords(ctx)
	if err != nil {
		return nil, eris.Wrap(err, "list records")
	}
	return records, nil
}

func newAPIClient() schoolapi.Client {
	return schoolapi.NewClient(cfg.Client.BaseURL,
		schoolapi.WithTimeout(time.Duration(cfg.Client.TimeoutSecs)*time.Second))
}

func pagerAt(total, page int) *browse.Pager {
	p := browse.NewPager(total, cfg.Client.PageSize)
	p.Goto(page)
	return p
}

func printPageFooter(w io.Writer, p *browse.Pager, total int) {
	if total == 0 {
		fmt.Fprintln(w, "no results")
		return
	}
	fmt.Fprintf(w, "page %d of %d (%d results)\n", p.Page(), p.Pages(), total)
}

func stringOr(s *string) string {
	if s == nil {
		return "-"
	}
	return *s
}

func floatOr(f *float64, format string) string {
	if f == nil {
		return "-"
	}
	return fmt.Sprintf(format, *f)
}

func intOr(n *int64) string {
	if n == nil {
		return "-"
	}
	return strconv.FormatInt(*n, 10)
}

func init() {
	browseSearchCmd.Flags().StringVar(&browseTerm, "term", "", "school, district, city or county to search for")
	tables := []*cobra.Command{
		browseSearchCmd, browseRecordsCmd, browseFinancialCmd,
		browsePerformanceCmd, browseGraduationCmd, browseDemographicsCmd,
	}
	for _, c := range tables {
		c.Flags().IntVar(&browsePage, "page", 1, "page to show")
		c.Flags().BoolVar(&browseDesc, "desc", false, "reverse the sort order")
	}
	for _, c := range tables[2:] {
		c.Flags().StringVar(&browseFilter, "filter", "", "keep rows whose names contain this")
	}
	browseSearchCmd.Flags().StringVar(&searchSort, "sort", string(model.SortSchool), "school, district, city, county, grades or enrollment")
	browseRecordsCmd.Flags().StringVar(&recordsSort, "sort", "id", "id, name or location")
	browseRecordsCmd.Flags().StringVar(&browseFilter, "filter", "", "keep records whose name or location contains this")
	browseRecordsCmd.Flags().StringVar(&browseQuery, "q", "", "search records on the server by name or location")
	browseFinancialCmd.Flags().StringVar(&financialSort, "sort", "district", "district, county, instruction or total")
	browsePerformanceCmd.Flags().StringVar(&performanceSort, "sort", "school", "school, city, county or enrollment")
	browseGraduationCmd.Flags().StringVar(&graduationSort, "sort", "district", "district, county or rate")
	browseGraduationCmd.Flags().StringVar(&browseAUN, "aun", "", "only this district")
	browseDemographicsCmd.Flags().StringVar(&demographicsSort, "sort", "school", "school, city, econ, el or sped")
	browseCitiesCmd.Flags().StringVar(&browseFilter, "filter", "", "keep cities whose name or schools contain this")

	browseCmd.AddCommand(browseSearchCmd, browseRecordsCmd, browseCitiesCmd,
		browseFinancialCmd, browsePerformanceCmd, browseGraduationCmd,
		browseDemographicsCmd, browseHealthCmd)
	rootCmd.AddCommand(browseCmd)
}
