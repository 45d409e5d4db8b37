package main

import (
	"fmt"
	"os"
	"runtime/debug"

	"github.com/planwise/taxgo/internal/audit"
	"github.com/planwise/taxgo/internal/calculation"
	"github.com/planwise/taxgo/internal/config"
	"github.com/planwise/taxgo/internal/domain"
	"github.com/planwise/taxgo/internal/forecast"
	"github.com/planwise/taxgo/internal/output"
	"github.com/planwise/taxgo/internal/projection"
	"github.com/planwise/taxgo/internal/simulate"
	"github.com/spf13/cobra"
)

var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

var (
	formatFlag string
	modFlags   []string
)

var rootCmd = &cobra.Command{
	Use:   "taxgo",
	Short: "Tax planning estimator CLI",
	Long:  "Deterministic tax position, scenario, projection and audit-risk estimator",
}

func versionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(os.Stdout, "taxgo %s (commit %s, built %s)\n", version, commit, date)
			if bi, ok := debug.ReadBuildInfo(); ok && bi != nil {
				fmt.Fprintln(os.Stdout, bi.Main.Path)
			}
		},
	}
}

// loadPlan parses the plan file argument shared by every subcommand.
func loadPlan(args []string) (*config.Plan, *calculation.Calculator, error) {
	plan, err := config.NewInputParser().LoadFromFile(args[0])
	if err != nil {
		return nil, nil, err
	}
	calc, err := calculation.NewForYear(plan.TaxYear)
	if err != nil {
		return nil, nil, err
	}
	return plan, calc, nil
}

// emit prints either the styled console report or JSON, per --format.
func emit(console string, v any) error {
	if formatFlag == "json" {
		jf := &output.JSONFormatter{Pretty: true}
		s, err := jf.Format(v)
		if err != nil {
			return err
		}
		fmt.Println(s)
		return nil
	}
	fmt.Print(console)
	return nil
}

var calculateCmd = &cobra.Command{
	Use:   "calculate [plan-file]",
	Short: "Compute the baseline tax position",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		plan, calc, err := loadPlan(args)
		if err != nil {
			return err
		}
		pos := calc.Compute(plan.Profile)
		cf := &output.ConsoleFormatter{}
		return emit(cf.Position(pos), pos)
	},
}

var simulateCmd = &cobra.Command{
	Use:   "simulate [plan-file]",
	Short: "Simulate one scenario modification",
	Long:  "Simulate a modification given as --mod 'name:key=value,...', e.g. --mod 'sell_asset:asset=stock,amount=50000,basis=10000,long_term=true'",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if len(modFlags) != 1 {
			return fmt.Errorf("simulate requires exactly one --mod flag")
		}
		plan, calc, err := loadPlan(args)
		if err != nil {
			return err
		}
		mod, err := simulate.NewRegistry().ParseSpec(modFlags[0])
		if err != nil {
			return err
		}
		result, err := simulate.NewSimulator(calc).Simulate(plan.Profile, mod)
		if err != nil {
			return err
		}
		cf := &output.ConsoleFormatter{}
		return emit(cf.Simulations([]domain.SimulationResult{result}), result)
	},
}

var compareCmd = &cobra.Command{
	Use:   "compare [plan-file]",
	Short: "Compare scenario modifications, most favorable first",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		plan, calc, err := loadPlan(args)
		if err != nil {
			return err
		}
		specs := plan.Scenarios
		if len(modFlags) > 0 {
			specs = modFlags
		}
		if len(specs) == 0 {
			return fmt.Errorf("no scenarios: provide --mod flags or a scenarios list in the plan")
		}
		registry := simulate.NewRegistry()
		mods := make([]simulate.Modification, 0, len(specs))
		for _, spec := range specs {
			mod, err := registry.ParseSpec(spec)
			if err != nil {
				return err
			}
			mods = append(mods, mod)
		}
		results, err := simulate.NewSimulator(calc).CompareScenarios(plan.Profile, mods)
		if err != nil {
			return err
		}
		cf := &output.ConsoleFormatter{}
		return emit(cf.Simulations(results), results)
	},
}

var projectCmd = &cobra.Command{
	Use:   "project [plan-file]",
	Short: "Project taxes across the configured year horizon",
	RunE: func(cmd *cobra.Command, args []string) error {
		plan, _, err := loadPlan(args)
		if err != nil {
			return err
		}
		projector := projection.NewProjector()
		rows, err := projector.Project(plan.Profile, plan.Projection)
		if err != nil {
			return err
		}
		if formatFlag == "csv" {
			csvf := &output.CSVFormatter{}
			s, err := csvf.FormatProjection(rows)
			if err != nil {
				return err
			}
			fmt.Print(s)
			return nil
		}
		shifts, err := projector.IncomeShiftScenarios(plan.Profile, plan.Projection)
		if err != nil {
			return err
		}
		cf := &output.ConsoleFormatter{}
		if err := emit(cf.Projection(rows), rows); err != nil {
			return err
		}
		if formatFlag != "json" && len(shifts) > 0 {
			best := shifts[0]
			fmt.Printf("\nBest income shift: %s (saves %s over both years)\n",
				best.Description, best.AggregateSavings.StringFixed(0))
		}
		return nil
	},
	Args: cobra.ExactArgs(1),
}

var auditCmd = &cobra.Command{
	Use:   "audit [plan-file]",
	Short: "Score audit risk against the IRS trigger rule set",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		plan, _, err := loadPlan(args)
		if err != nil {
			return err
		}
		risk := audit.NewScorer().Analyze(plan.Profile, plan.Evidence)
		cf := &output.ConsoleFormatter{}
		return emit(cf.AuditRisk(risk), risk)
	},
}

var forecastMonths int

var forecastCmd = &cobra.Command{
	Use:   "forecast [plan-file]",
	Short: "Forecast quarterly income from the plan's income history",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		plan, _, err := loadPlan(args)
		if err != nil {
			return err
		}
		pattern := forecast.AnalyzePattern(plan.IncomeHistory)
		quarters := forecast.ForecastQuarters(pattern, plan.SafeHarbor.AsOf, forecastMonths)
		if formatFlag == "json" {
			return emit("", map[string]any{"pattern": pattern, "quarters": quarters})
		}
		for _, q := range quarters {
			fmt.Printf("%d Q%d  %s  (%s confidence)\n", q.Year, q.Quarter, q.Income.StringFixed(0), q.Confidence)
		}
		return nil
	},
}

var safeharborCmd = &cobra.Command{
	Use:   "safeharbor [plan-file]",
	Short: "Compute quarterly safe-harbor payments and cash reserve",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		plan, calc, err := loadPlan(args)
		if err != nil {
			return err
		}
		input := plan.SafeHarbor
		if input.CurrentYearEstimate.IsZero() {
			input.CurrentYearEstimate = calc.Compute(plan.Profile).TotalTax
		}
		harbor := forecast.SafeHarbor(input)
		pattern := forecast.AnalyzePattern(plan.IncomeHistory)
		reserve := forecast.CashReserve(plan.MonthlyExpenses, harbor.RequiredAnnual, pattern.Irregular)
		cf := &output.ConsoleFormatter{}
		return emit(cf.SafeHarbor(harbor, reserve), map[string]any{
			"safeHarbor": harbor,
			"reserve":    reserve,
			"pattern":    pattern,
		})
	},
}

func main() {
	rootCmd.PersistentFlags().StringVar(&formatFlag, "format", "table", "output format: table, json or csv")
	rootCmd.PersistentFlags().StringArrayVar(&modFlags, "mod", nil, "scenario modification spec 'name:key=value,...'")

	rootCmd.AddCommand(calculateCmd)
	rootCmd.AddCommand(simulateCmd)
	rootCmd.AddCommand(compareCmd)
	rootCmd.AddCommand(projectCmd)
	rootCmd.AddCommand(auditCmd)
	forecastCmd.Flags().IntVar(&forecastMonths, "months", 12, "months of income to forecast")
	rootCmd.AddCommand(forecastCmd)
	rootCmd.AddCommand(safeharborCmd)
	rootCmd.AddCommand(versionCmd())

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
