package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"time"

	"github.com/google/uuid"
	"github.com/urfave/cli"

	"github.com/xavieroyarzun/triage-sim/internal/domain/patient"
	"github.com/xavieroyarzun/triage-sim/internal/engine"
	"github.com/xavieroyarzun/triage-sim/internal/events"
	"github.com/xavieroyarzun/triage-sim/internal/generator"
	"github.com/xavieroyarzun/triage-sim/internal/infra/storage"
	"github.com/xavieroyarzun/triage-sim/internal/platform/config"
	"github.com/xavieroyarzun/triage-sim/internal/platform/logger"
	"github.com/xavieroyarzun/triage-sim/internal/platform/metrics"
	"github.com/xavieroyarzun/triage-sim/internal/report"
)

const (
	flagConfig   = "config"
	flagLogLevel = "log-level"
	flagAuditDB  = "audit-db"
	flagPatients = "patients"
	flagSeed     = "seed"
	flagStart    = "start"
	flagRunID    = "run-id"
	flagMetrics  = "metrics"
)

func buildApp(out io.Writer) *cli.App {
	app := cli.NewApp()
	app.Name = "triage-sim"
	app.Usage = "Emergency-room triage desk simulator"
	app.Writer = out

	app.Flags = []cli.Flag{
		cli.StringFlag{
			Name:   flagConfig,
			Usage:  "path to a YAML or JSON config file",
			EnvVar: "TRIAGE_CONFIG",
		},
		cli.StringFlag{
			Name:  flagLogLevel,
			Usage: "debug, info, warn or error",
		},
		cli.StringFlag{
			Name:  flagAuditDB,
			Usage: "SQLite file receiving the run's event trail",
		},
	}

	simulateFlags := []cli.Flag{
		cli.IntFlag{
			Name:  flagPatients,
			Usage: "patients arriving during the day",
		},
		cli.Int64Flag{
			Name:  flagSeed,
			Usage: "random seed for the patient generator",
		},
		cli.Int64Flag{
			Name:  flagStart,
			Usage: "unix timestamp of minute 0 (default: now)",
		},
		cli.StringFlag{
			Name:  flagRunID,
			Usage: "identifier of the run in the audit store (default: random)",
		},
		cli.BoolFlag{
			Name:  flagMetrics,
			Usage: "print run metrics after the report",
		},
	}

	app.Commands = []cli.Command{
		{
			Name:  "demo",
			Usage: "dispatch three hand-built patients and reassign one",
			Action: func(c *cli.Context) error {
				return withSetup(c, func(cfg *config.Config, log *logger.Logger) error {
					return runDemo(out, log, time.Now().Unix())
				})
			},
		},
		{
			Name:    "simulate",
			Aliases: []string{"sim"},
			Usage:   "simulate one 24-hour day and print the SLA report",
			Flags:   simulateFlags,
			Action: func(c *cli.Context) error {
				return withSetup(c, func(cfg *config.Config, log *logger.Logger) error {
					ctx, stop := interruptContext()
					defer stop()
					return runSimulation(ctx, out, cfg, log, c.Bool(flagMetrics))
				})
			},
		},
	}

	// Without a command: the demo, then a full day.
	app.Action = func(c *cli.Context) error {
		return withSetup(c, func(cfg *config.Config, log *logger.Logger) error {
			if err := runDemo(out, log, time.Now().Unix()); err != nil {
				return err
			}
			fmt.Fprintln(out, "\n24-hour simulation")
			ctx, stop := interruptContext()
			defer stop()
			return runSimulation(ctx, out, cfg, log, false)
		})
	}

	return app
}

// interruptContext is cancelled on Ctrl-C; the engine stops between ticks.
func interruptContext() (context.Context, context.CancelFunc) {
	return signal.NotifyContext(context.Background(), os.Interrupt)
}

// withSetup resolves the configuration and logger before running handler.
func withSetup(c *cli.Context, handler func(cfg *config.Config, log *logger.Logger) error) error {
	cfg, err := resolveConfig(c)
	if err != nil {
		return err
	}

	log, err := logger.New(cfg.LogLevel)
	if err != nil {
		return err
	}
	defer log.Sync()

	return handler(cfg, log)
}

// resolveConfig layers file, environment and flags, in that order.
func resolveConfig(c *cli.Context) (*config.Config, error) {
	cfg := config.DefaultConfig()
	if path := c.GlobalString(flagConfig); path != "" {
		loaded, err := config.LoadConfig(path)
		if err != nil {
			return nil, fmt.Errorf("load config %s: %w", path, err)
		}
		cfg = loaded
	}
	if err := cfg.ApplyEnv(); err != nil {
		return nil, err
	}

	if c.GlobalIsSet(flagLogLevel) {
		cfg.LogLevel = c.GlobalString(flagLogLevel)
	}
	if c.GlobalIsSet(flagAuditDB) {
		cfg.AuditDB = c.GlobalString(flagAuditDB)
	}
	if c.IsSet(flagPatients) {
		cfg.PatientsPerDay = c.Int(flagPatients)
	}
	if c.IsSet(flagSeed) {
		cfg.Seed = c.Int64(flagSeed)
	}
	if c.IsSet(flagStart) {
		cfg.StartTimestamp = c.Int64(flagStart)
	}
	if c.IsSet(flagRunID) {
		cfg.RunID = c.String(flagRunID)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// runDemo registers three patients, dispatches two, promotes the third
// from category 5 to 2 and dispatches it.
func runDemo(out io.Writer, log *logger.Logger, now int64) error {
	eng := engine.NewEngine(nil, log, nil)
	h := eng.Hospital()

	for _, p := range []*patient.Patient{
		patient.New("Juan", "Perez", "id-001", 1, now-300),
		patient.New("Maria", "Gomez", "id-002", 3, now-600),
		patient.New("Pedro", "Lopez", "id-003", 5, now-900),
	} {
		if err := h.Register(p); err != nil {
			return err
		}
	}

	fmt.Fprintln(out, "Dispatching patients:")
	printDispatch(out, h.DispatchNext())
	printDispatch(out, h.DispatchNext())

	eng.ReassignCategory("id-003", 2, 0, now)
	fmt.Fprintln(out, "\nAfter category reassignment:")
	printDispatch(out, h.DispatchNext())
	return nil
}

func printDispatch(out io.Writer, p *patient.Patient) {
	if p == nil {
		fmt.Fprintln(out, "no patients waiting")
		return
	}
	fmt.Fprintln(out, p.String())
}

// runSimulation generates a day of arrivals, runs it and renders the report.
// With an audit database configured, every event is written through to it.
func runSimulation(ctx context.Context, out io.Writer, cfg *config.Config, log *logger.Logger, printMetrics bool) error {
	start := cfg.StartTimestamp
	if start == 0 {
		start = time.Now().Unix()
	}

	var persister events.EventPersister
	var runs *storage.SQLiteRunRepository
	runID := cfg.RunID
	if cfg.AuditDB != "" {
		log.Info("Initializing SQLite audit database", "path", cfg.AuditDB)
		db, err := storage.InitSQLite(cfg.AuditDB)
		if err != nil {
			return err
		}
		defer db.Close()

		if runID == "" {
			runID = uuid.NewString()
		}
		runs = storage.NewSQLiteRunRepository(db)
		if err := runs.Create(ctx, storage.RunRecord{
			RunID:          runID,
			Seed:           cfg.Seed,
			Patients:       cfg.PatientsPerDay,
			StartTimestamp: start,
		}); err != nil {
			return err
		}
		persister = storage.NewEventLogPersister(storage.NewSQLiteEventRepository(db), runID)
	}

	collector := metrics.NewCollector()
	eventLog := events.NewEventLog(persister)
	eng := engine.NewEngine(eventLog, log, collector)

	population := generator.New(cfg.Seed).Generate(cfg.PatientsPerDay, start)
	stats, err := eng.Run(ctx, population, start)
	if err != nil {
		return err
	}

	if failures, lastErr := eventLog.Err(); failures > 0 {
		log.Warn("audit trail incomplete", "failed_writes", failures, "last_error", lastErr)
	}
	if runs != nil {
		if err := runs.Finish(ctx, runID, stats.TotalTreated, stats.ExceededCount()); err != nil {
			return fmt.Errorf("finish run %s: %w", runID, err)
		}
		log.Info("audit trail written", "run_id", runID, "events", eventLog.Len())
	}

	if err := report.FromStatistics(stats).Render(out); err != nil {
		return err
	}
	if printMetrics {
		fmt.Fprintln(out)
		return collector.WriteText(out)
	}
	return nil
}
