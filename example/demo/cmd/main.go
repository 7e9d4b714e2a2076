// Command demo runs a dining-table simulation and renders its event stream to
// the console. It is a plain observer: all coordination happens inside the
// tablesim package, the demo only drains the feed and prints snapshots.
//
// When TABLESIM_POSTGRES_DSN is set, the drained events are additionally
// journaled to Postgres through the journal/postgresengine package.
package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/jackc/pgx/v5/pgxpool"
	jsoniter "github.com/json-iterator/go"

	"github.com/forkring/dining-table-sim-go/events"
	"github.com/forkring/dining-table-sim-go/journal"
	"github.com/forkring/dining-table-sim-go/journal/postgresengine"
	"github.com/forkring/dining-table-sim-go/tablesim"
)

type demoConfig struct {
	Philosophers   int           `env:"TABLESIM_PHILOSOPHERS" envDefault:"5"`
	Servings       int           `env:"TABLESIM_SERVINGS" envDefault:"7"`
	ThinkMin       time.Duration `env:"TABLESIM_THINK_MIN" envDefault:"1s"`
	ThinkMax       time.Duration `env:"TABLESIM_THINK_MAX" envDefault:"4s"`
	DineMin        time.Duration `env:"TABLESIM_DINE_MIN" envDefault:"2s"`
	DineMax        time.Duration `env:"TABLESIM_DINE_MAX" envDefault:"4s"`
	AcquireTimeout time.Duration `env:"TABLESIM_ACQUIRE_TIMEOUT" envDefault:"1s"`
	RetryDelay     time.Duration `env:"TABLESIM_RETRY_DELAY" envDefault:"100ms"`
	LogLevel       slog.Level    `env:"TABLESIM_LOG_LEVEL" envDefault:"info"`
	PostgresDSN    string        `env:"TABLESIM_POSTGRES_DSN"`
}

// slogAdapter adapts log/slog to the tablesim.Logger interface.
type slogAdapter struct {
	logger *slog.Logger
}

func (l slogAdapter) Debug(msg string, args ...any) { l.logger.Debug(msg, args...) }
func (l slogAdapter) Info(msg string, args ...any)  { l.logger.Info(msg, args...) }
func (l slogAdapter) Warn(msg string, args ...any)  { l.logger.Warn(msg, args...) }
func (l slogAdapter) Error(msg string, args ...any) { l.logger.Error(msg, args...) }

func main() {
	if err := run(); err != nil {
		fmt.Fprintln(os.Stderr, "demo failed:", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := env.ParseAs[demoConfig]()
	if err != nil {
		return err
	}

	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: cfg.LogLevel}))

	table, err := tablesim.NewTable(
		tablesim.Config{
			Philosophers: cfg.Philosophers,
			Servings:     cfg.Servings,
			Timing: tablesim.Timing{
				ThinkMin:       cfg.ThinkMin,
				ThinkMax:       cfg.ThinkMax,
				DineMin:        cfg.DineMin,
				DineMax:        cfg.DineMax,
				AcquireTimeout: cfg.AcquireTimeout,
				RetryDelay:     cfg.RetryDelay,
			},
			PollInterval: 100 * time.Millisecond,
		},
		tablesim.WithLogger(slogAdapter{logger: logger}),
		tablesim.WithFeedCapacityHint(estimatedEventCount(cfg.Philosophers, cfg.Servings)),
	)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	runErr := make(chan error, 1)
	go func() {
		runErr <- table.Run(ctx)
	}()

	if drainErr := drainFeed(ctx, cfg, table, logger); drainErr != nil {
		return drainErr
	}

	renderTable(table)

	return <-runErr
}

// estimatedEventCount sizes the feed for a contention-free run: four fork
// events and two dining events per serving, plus one departure per
// philosopher. Contention retries push the real count above this.
func estimatedEventCount(philosophers int, servings int) int {
	return philosophers * (servings*6 + 1)
}

// drainFeed is the single feed consumer. Without a DSN it only renders;
// with one it pumps every event into the Postgres journal and renders from
// the journaled records.
func drainFeed(ctx context.Context, cfg demoConfig, table *tablesim.Table, logger *slog.Logger) error {
	if cfg.PostgresDSN == "" {
		renderEvents(ctx, table)
		return nil
	}

	pool, err := pgxpool.New(ctx, cfg.PostgresDSN)
	if err != nil {
		return err
	}
	defer pool.Close()

	journalStore, err := postgresengine.NewJournalFromPGXPool(pool,
		postgresengine.WithLogger(slogAdapter{logger: logger}))
	if err != nil {
		return err
	}

	return journal.Pump(ctx, table.Feed(), table.RunID(), renderingAppender{next: journalStore})
}

// renderingAppender prints each record before handing it to the journal, so
// journaled runs keep the console output of plain runs.
type renderingAppender struct {
	next journal.Appender
}

func (a renderingAppender) Append(ctx context.Context, record journal.Record) error {
	event, err := events.EventFromJSON(record.EventType, record.PayloadJSON)
	if err != nil {
		return err
	}

	var metadata journal.RunMetadata
	if err := jsoniter.ConfigFastest.Unmarshal(record.MetadataJSON, &metadata); err != nil {
		return err
	}

	renderEvent(metadata.Seq, event)

	return a.next.Append(ctx, record)
}

// renderEvents drains the feed until the run is over, printing one line per
// state change.
func renderEvents(ctx context.Context, table *tablesim.Table) {
	for {
		envelope, err := table.Feed().Next(ctx)
		if err != nil {
			return
		}

		renderEvent(envelope.Seq, envelope.Event)
	}
}

func renderEvent(seq uint64, domainEvent events.Event) {
	switch event := domainEvent.(type) {
	case events.ForkPickedUp:
		fmt.Printf("%6d  F%-2d picked up by P%d\n",
			seq, event.Payload.ForkID, event.Payload.PhilosopherID)
	case events.ForkPutDown:
		fmt.Printf("%6d  F%-2d put down by P%d\n",
			seq, event.Payload.ForkID, event.Payload.PhilosopherID)
	case events.PhilosopherStartedDining:
		fmt.Printf("%6d  P%-2d dining, %d servings left\n",
			seq, event.Payload.PhilosopherID, event.Payload.ServingsLeft)
	case events.PhilosopherStoppedDining:
		fmt.Printf("%6d  P%-2d done with a serving\n",
			seq, event.Payload.PhilosopherID)
	case events.PhilosopherLeftTable:
		fmt.Printf("%6d  P%-2d left the table\n",
			seq, event.Payload.PhilosopherID)
	}
}

// renderTable prints the final state of every philosopher and fork.
func renderTable(table *tablesim.Table) {
	for _, p := range table.PhilosopherSnapshots() {
		fmt.Printf("P%-2d  servings=%d  phase=%s\n", p.ID, p.ServingsLeft, p.Phase)
	}

	for _, f := range table.ForkSnapshots() {
		fmt.Printf("F%-2d  held=%t  owner=%d\n", f.ID, f.Held, f.Owner)
	}
}
