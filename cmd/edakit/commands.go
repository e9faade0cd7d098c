package main

import (
	"fmt"
	"os"

	"edakit/app"
	"edakit/domain/dataset"

	"github.com/spf13/cobra"
)

// sourceFlags select where a frame comes from: a csv/xlsx file or a SQL query.
type sourceFlags struct {
	file  string
	sheet string
	query string
}

func (s *sourceFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVar(&s.file, "file", "", "CSV or XLSX file with a header row")
	cmd.Flags().StringVar(&s.sheet, "sheet", "", "XLSX worksheet (default: first)")
	cmd.Flags().StringVar(&s.query, "query", "", "SELECT to run against DATABASE_URL instead of --file")
}

func (s *sourceFlags) set() bool {
	return s.file != "" || s.query != ""
}

func newCompareCmd() *cobra.Command {
	var (
		src                  sourceFlags
		group, target, value string
		group1, group2       string
		format               string
	)

	cmd := &cobra.Command{
		Use:   "compare",
		Short: "Compare a numeric column between two groups",
		Long: `Compare a numeric variable between two groups, choosing the t-test
(equal or unequal variance) or Mann-Whitney U from assumption checks.

Examples:
  edakit compare --file stays.csv --group readmitted --target 1 --value length_of_stay
  edakit compare --group1 10,12,11,13,12 --group2 20,22,21,23,22`,
		RunE: func(cmd *cobra.Command, args []string) error {
			f, err := app.ParseFormat(format)
			if err != nil {
				return err
			}
			rt, err := setup()
			if err != nil {
				return err
			}

			if !src.set() {
				g1, g2, err := parsePair(group1, group2)
				if err != nil {
					return err
				}
				report, err := rt.engine.CompareSamples(g1, g2)
				if err != nil {
					return err
				}
				return app.RenderReport(os.Stdout, "Group 1 vs Group 2", report, f)
			}

			if group == "" || value == "" {
				return fmt.Errorf("--group and --value are required with a data source")
			}
			frame, err := loadFrame(cmd.Context(), rt, src)
			if err != nil {
				return err
			}
			report, err := rt.engine.CompareMeans(frame, group, target, value)
			if err != nil {
				return err
			}
			title := fmt.Sprintf("Comparing '%s' by Group '%s'", value, group)
			return app.RenderReport(os.Stdout, title, report, f)
		},
	}

	src.register(cmd)
	cmd.Flags().StringVar(&group, "group", "", "Column defining the groups")
	cmd.Flags().StringVar(&target, "target", "", "Group value forming group 1; every other row is group 2")
	cmd.Flags().StringVar(&value, "value", "", "Numeric column to compare")
	cmd.Flags().StringVar(&group1, "group1", "", "Inline sample, comma separated (NA for missing)")
	cmd.Flags().StringVar(&group2, "group2", "", "Inline sample, comma separated (NA for missing)")
	cmd.Flags().StringVar(&format, "format", "text", "Output format: text, markdown, html, json")
	return cmd
}

func newAssociateCmd() *cobra.Command {
	var (
		src      sourceFlags
		row, col string
		counts   string
		plain    bool
		format   string
	)

	cmd := &cobra.Command{
		Use:   "associate",
		Short: "Test two categorical variables for independence",
		Long: `Chi-square test of independence with Cramer's V. A 2x2 table with a
small expected count switches to Fisher's exact test.

Examples:
  edakit associate --file students.xlsx --row gender --col final_result
  edakit associate --counts "10,20;30,40"`,
		RunE: func(cmd *cobra.Command, args []string) error {
			f, err := app.ParseFormat(format)
			if err != nil {
				return err
			}
			rt, err := setup()
			if err != nil {
				return err
			}

			var (
				table dataset.ContingencyTable
				title string
			)
			if src.set() {
				if row == "" || col == "" {
					return fmt.Errorf("--row and --col are required with a data source")
				}
				frame, err := loadFrame(cmd.Context(), rt, src)
				if err != nil {
					return err
				}
				if table, err = dataset.CrossTab(frame, row, col); err != nil {
					return err
				}
				title = fmt.Sprintf("Association '%s' x '%s'", row, col)
			} else {
				parsed, err := parseCounts(counts)
				if err != nil {
					return fmt.Errorf("--counts: %w", err)
				}
				table = dataset.NewContingencyTable(parsed)
				title = "Categorical Association Test"
			}

			run := rt.engine.TestAssociation
			if plain {
				run = rt.engine.ChiSquareTest
			}
			report, err := run(table)
			if err != nil {
				return err
			}
			for _, w := range report.Warnings {
				rt.logger.Warn("%s", w)
			}
			return app.RenderReport(os.Stdout, title, report, f)
		},
	}

	src.register(cmd)
	cmd.Flags().StringVar(&row, "row", "", "Row variable")
	cmd.Flags().StringVar(&col, "col", "", "Column variable")
	cmd.Flags().StringVar(&counts, "counts", "", "Inline table: rows separated by ';', cells by ','")
	cmd.Flags().BoolVar(&plain, "plain", false, "Plain chi-square without the small-sample fallback")
	cmd.Flags().StringVar(&format, "format", "text", "Output format: text, markdown, html, json")
	return cmd
}

func newVarianceCmd() *cobra.Command {
	var group1, group2 string

	cmd := &cobra.Command{
		Use:   "variance",
		Short: "Levene's test for equal variances of two inline samples",
		RunE: func(cmd *cobra.Command, args []string) error {
			g1, g2, err := parsePair(group1, group2)
			if err != nil {
				return err
			}
			rt, err := setup()
			if err != nil {
				return err
			}
			res, err := rt.engine.CheckVariance(g1, g2)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Levene p-value: %.5f -> %s\n", *res.PValue, res.Reason)
			return nil
		},
	}
	cmd.Flags().StringVar(&group1, "group1", "", "First sample, comma separated")
	cmd.Flags().StringVar(&group2, "group2", "", "Second sample, comma separated")
	return cmd
}

func newWelchCmd() *cobra.Command {
	var group1, group2 string

	cmd := &cobra.Command{
		Use:   "welch",
		Short: "Welch's t-test on two inline samples",
		RunE: func(cmd *cobra.Command, args []string) error {
			g1, g2, err := parsePair(group1, group2)
			if err != nil {
				return err
			}
			rt, err := setup()
			if err != nil {
				return err
			}
			report, err := rt.engine.WelchTTest(g1, g2)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "T-test p-value: %.5f -> %s\n", report.PValue, report.Verdict)
			return nil
		},
	}
	cmd.Flags().StringVar(&group1, "group1", "", "First sample, comma separated")
	cmd.Flags().StringVar(&group2, "group2", "", "Second sample, comma separated")
	return cmd
}

func newSweepCmd() *cobra.Command {
	var (
		src      sourceFlags
		planPath string
		format   string
	)

	cmd := &cobra.Command{
		Use:   "sweep",
		Short: "Run every comparison and association of a YAML plan",
		Long: `Run a plan of comparisons and associations against one data source.

Example: edakit sweep --file stays.csv --plan plan.yaml --format markdown`,
		RunE: func(cmd *cobra.Command, args []string) error {
			f, err := app.ParseFormat(format)
			if err != nil {
				return err
			}
			if !src.set() {
				return fmt.Errorf("--file or --query is required")
			}
			plan, err := app.LoadPlan(planPath)
			if err != nil {
				return err
			}
			rt, err := setup()
			if err != nil {
				return err
			}
			frame, err := loadFrame(cmd.Context(), rt, src)
			if err != nil {
				return err
			}

			svc := app.NewSweepService(rt.engine, rt.cfg.Sweep.Concurrency, rt.logger)
			res, err := svc.Run(cmd.Context(), frame, plan)
			if err != nil {
				return err
			}
			return app.RenderSweep(os.Stdout, res, f)
		},
	}

	src.register(cmd)
	cmd.Flags().StringVar(&planPath, "plan", "plan.yaml", "YAML sweep plan")
	cmd.Flags().StringVar(&format, "format", "text", "Output format: text, markdown, html, json")
	return cmd
}
