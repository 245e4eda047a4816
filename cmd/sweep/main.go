// Command sweep runs a model over a grid of parameter values and records
// the pattern each combination produces: spot count, length scale, and mass
// drift. Results go to CSV, an interactive HTML report, and optionally a
// sqlite database for cross-session comparison.
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/zwicker-group/tutorial-pattern-formation-in-cells/internal/config"
	"github.com/zwicker-group/tutorial-pattern-formation-in-cells/internal/field"
	"github.com/zwicker-group/tutorial-pattern-formation-in-cells/internal/rd/models"
	"github.com/zwicker-group/tutorial-pattern-formation-in-cells/internal/store"
	"github.com/zwicker-group/tutorial-pattern-formation-in-cells/internal/sweep"
	"github.com/zwicker-group/tutorial-pattern-formation-in-cells/internal/version"
)

// paramFlags collects repeated -param flags, each "name=min:max:step" or
// "name=v1,v2,v3".
type paramFlags []sweep.Param

func (p *paramFlags) String() string {
	names := make([]string, len(*p))
	for i, param := range *p {
		names[i] = param.Name
	}
	return strings.Join(names, ",")
}

func (p *paramFlags) Set(s string) error {
	name, spec, ok := strings.Cut(s, "=")
	if !ok {
		return fmt.Errorf("expected name=range, got %q", s)
	}

	var values []float64
	if strings.Contains(spec, ":") {
		r, err := sweep.ParseRangeSpec(spec)
		if err != nil {
			return err
		}
		values = r.Values()
		if len(values) == 0 {
			return fmt.Errorf("range %q produces no values", spec)
		}
	} else {
		var err error
		values, err = sweep.ParseCSVFloat64s(spec)
		if err != nil {
			return err
		}
		if len(values) == 0 {
			return fmt.Errorf("no values in %q", spec)
		}
	}

	*p = append(*p, sweep.Param{Name: name, Values: values})
	return nil
}

func main() {
	var params paramFlags
	configPath := flag.String("config", "", "Path to JSON run configuration (optional)")
	model := flag.String("model", "", "Model to sweep (overrides config): "+fmt.Sprint(models.Names()))
	flag.Var(&params, "param", "Swept parameter as name=min:max:step or name=v1,v2,... (repeatable)")
	csvPath := flag.String("csv", "", "Write results CSV to this path")
	reportPath := flag.String("report", "", "Write interactive HTML report to this path")
	dbPath := flag.String("db", "", "Persist results to this sqlite database (overrides config)")
	notes := flag.String("notes", "", "Free-form note stored with the run")
	showVersion := flag.Bool("version", false, "Print version and exit")
	flag.Parse()

	if *showVersion {
		fmt.Println(version.String())
		return
	}

	if err := run(*configPath, *model, params, *csvPath, *reportPath, *dbPath, *notes); err != nil {
		log.Fatalf("sweep: %v", err)
	}
}

func run(configPath, modelFlag string, params paramFlags, csvPath, reportPath, dbPath, notes string) error {
	cfg := &config.SimConfig{}
	if configPath != "" {
		loaded, err := config.Load(configPath)
		if err != nil {
			return err
		}
		cfg = loaded
	}

	modelName := cfg.GetModel()
	if modelFlag != "" {
		modelName = modelFlag
	}
	if dbPath == "" {
		dbPath = cfg.GetDBPath()
	}
	if len(params) == 0 {
		return fmt.Errorf("no -param flags given")
	}

	var grid field.Grid
	if cfg.GetNx() != 0 {
		var err error
		grid, err = field.NewGrid(cfg.GetNx(), cfg.GetNy(), cfg.GetLx(), cfg.GetLy())
		if err != nil {
			return err
		}
	}

	runner := &sweep.Runner{}
	if dbPath != "" {
		db, err := store.Open(dbPath)
		if err != nil {
			return err
		}
		defer db.Close()
		runner.DB = db
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	summary, err := runner.Run(ctx, sweep.Request{
		Model:            modelName,
		Params:           params,
		Grid:             grid,
		TEnd:             cfg.GetTEnd(),
		SnapshotInterval: cfg.GetSnapshotInterval(),
		WindowRadius:     cfg.GetWindowRadius(),
		Notes:            notes,
	})
	if err != nil {
		return err
	}
	log.Printf("sweep %s finished: %d combos", summary.RunID, len(summary.Results))

	if csvPath != "" {
		if err := writeFile(csvPath, func(f *os.File) error { return sweep.WriteSummaryCSV(f, summary) }); err != nil {
			return err
		}
		log.Printf("wrote CSV to %s", csvPath)
	}
	if reportPath != "" {
		if err := writeFile(reportPath, func(f *os.File) error { return sweep.WriteHTMLReport(f, summary) }); err != nil {
			return err
		}
		log.Printf("wrote report to %s", reportPath)
	}
	return nil
}

func writeFile(path string, write func(*os.File) error) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := write(f); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
