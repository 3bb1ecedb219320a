package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/Tresillo2017/classlimit/core"
	"github.com/Tresillo2017/classlimit/util"
	"github.com/bytedance/sonic"
	"github.com/go-kit/log"
)

func main() {
	// Define command line flags
	dataDir := flag.String("data", "data", "Directory holding the settings file")
	list := flag.Bool("list", false, "List all subjects with their skip status")
	calc := flag.Bool("calc", false, "Recalculate and print the attendance budget")
	exportPath := flag.String("export", "", "Write the roster to an exchange document")
	importPath := flag.String("import", "", "Replace the roster with an exchange document")
	reset := flag.Bool("reset", false, "Remove all subjects and restore the default config")
	pretty := flag.Bool("pretty", false, "Print calculation results as JSON")
	flag.Parse()

	logger := log.NewLogfmtLogger(log.NewSyncWriter(os.Stderr))

	store, err := core.NewPersistentStore(*dataDir)
	if err != nil {
		fmt.Printf("Error creating store: %v\n", err)
		os.Exit(1)
	}
	defer store.Close()

	planner, err := core.NewPlanner(log.NewNopLogger(), store)
	if err != nil {
		fmt.Printf("Error loading roster: %v\n", err)
		os.Exit(1)
	}

	switch {
	case *importPath != "":
		err = util.TimeFunction(logger, "import", func() error {
			data, err := os.ReadFile(*importPath)
			if err != nil {
				return &core.ImportError{Reason: "unreadable file", Err: err}
			}
			return planner.Import(data)
		})
		exitOnError(err)
		printSubjects(planner)

	case *exportPath != "":
		err = util.TimeFunction(logger, "export", func() error {
			f, err := os.Create(*exportPath)
			if err != nil {
				return &core.ExportError{Err: err}
			}
			if err := planner.Export(f); err != nil {
				f.Close()
				return err
			}
			if err := f.Close(); err != nil {
				return &core.ExportError{Err: err}
			}
			return nil
		})
		exitOnError(err)
		fmt.Printf("Exported %d subjects to %s\n", len(planner.Subjects()), *exportPath)

	case *reset:
		exitOnError(planner.ResetAll())
		fmt.Println("Roster reset to defaults")

	case *calc:
		res, err := planner.Recalculate()
		exitOnError(err)
		if *pretty {
			data, err := sonic.ConfigStd.MarshalIndent(res, "", "  ")
			exitOnError(err)
			fmt.Println(string(data))
			return
		}
		printRecalculation(res)

	case *list:
		printSubjects(planner)

	default:
		// If no flags provided, show usage
		flag.Usage()
	}
}

func exitOnError(err error) {
	if err != nil {
		fmt.Printf("Error: %v\n", err)
		os.Exit(1)
	}
}

func printSubjects(planner *core.Planner) {
	cfg := planner.Config()
	fmt.Printf("Config: %d%% attendance required, %d weeks, %d h/session\n",
		cfg.RequiredAttendancePercent, cfg.TotalWeeks, cfg.SessionHours)

	subjects := planner.Subjects()
	if len(subjects) == 0 {
		fmt.Println("No subjects")
		return
	}

	fmt.Println("Subjects:")
	for i, rec := range subjects {
		fmt.Printf("%d. %s [%s]\n", i+1, rec.Name, rec.Severity)
		fmt.Printf("   %s\n", core.SubjectSubtitle(rec))
	}
}

func printRecalculation(res *core.Recalculation) {
	if res.Aggregate != nil {
		fmt.Println(core.AggregateSummary(*res.Aggregate))
		fmt.Println(core.AggregateDetail(*res.Aggregate))
		fmt.Println()
	}

	for _, r := range res.PerSubject {
		fmt.Printf("%s [%s]\n", r.Name, r.Severity)
		fmt.Printf("  %s\n", core.ResultDetail(r.CalculationResult))
		fmt.Printf("  %s\n", core.ResultSubtitle(r))
	}
}
