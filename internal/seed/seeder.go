package seed

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"time"

	"github.com/matthieukhl/telcodata/internal/config"
	"github.com/matthieukhl/telcodata/internal/database"
	"github.com/matthieukhl/telcodata/internal/generate"
	"github.com/matthieukhl/telcodata/internal/models"
)

// Seeder runs one generation batch against a database.
type Seeder struct {
	db  *database.DB
	log *slog.Logger

	// Progress, when set, receives one human readable line per step.
	Progress func(format string, args ...any)

	// Now is the reference clock for generated dates. Defaults to time.Now.
	Now func() time.Time
}

// Result reports what a committed run wrote.
type Result struct {
	Seed     uint64               `json:"seed"`
	Inserted database.TableCounts `json:"inserted"`
	Elapsed  time.Duration        `json:"elapsed"`
}

func NewSeeder(db *database.DB, log *slog.Logger) *Seeder {
	return &Seeder{db: db, log: log, Now: time.Now}
}

func (s *Seeder) progress(format string, args ...any) {
	if s.Progress != nil {
		s.Progress(format, args...)
	}
}

// Run creates the schema and writes a full dataset in a single transaction.
// A zero cfg.Seed is replaced by one derived from the clock; the seed used is
// reported in the Result. On any failure nothing from this run is committed.
func (s *Seeder) Run(ctx context.Context, cfg config.GenerateConfig) (*Result, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	start := time.Now()
	now := s.Now()
	if cfg.Seed == 0 {
		cfg.Seed = uint64(now.UnixNano())
	}
	src := generate.NewSource(cfg.Seed, now)

	log := s.log.With("customers", cfg.Customers, "calls", cfg.Calls, "usage_records", cfg.UsageRecords, "bills", cfg.Bills)
	log.Info("seed: starting run", "seed", cfg.Seed)

	if cfg.DropFirst {
		s.progress("🗑️  Dropping existing tables...")
		if err := s.db.DropSchema(ctx); err != nil {
			return nil, fmt.Errorf("failed to drop schema: %w", err)
		}
	}

	s.progress("📋 Creating schema...")
	if err := s.db.SetupSchema(ctx); err != nil {
		return nil, fmt.Errorf("failed to setup schema: %w", err)
	}

	var inserted database.TableCounts
	err := s.db.WithTx(ctx, func(tx *sql.Tx) error {
		var err error
		inserted, err = s.populate(ctx, database.NewStore(tx), cfg, src)
		return err
	})
	if err != nil {
		log.Error("seed: run rolled back", "error", err)
		return nil, fmt.Errorf("generation rolled back: %w", err)
	}

	result := &Result{Seed: cfg.Seed, Inserted: inserted, Elapsed: time.Since(start)}
	log.Info("seed: run committed", "rows", inserted.Total(), "elapsed", result.Elapsed)
	return result, nil
}

func (s *Seeder) populate(ctx context.Context, store *database.Store, cfg config.GenerateConfig, src *generate.Source) (database.TableCounts, error) {
	var counts database.TableCounts

	existing, err := store.PhoneNumbers(ctx)
	if err != nil {
		return counts, err
	}

	s.progress("   👥 Creating %d customers...", cfg.Customers)
	customers, err := generate.Customers(src, cfg.Customers, generate.NewPhoneSet(existing...))
	if err != nil {
		return counts, fmt.Errorf("generate customers: %w", err)
	}
	if err := store.InsertCustomers(ctx, customers); err != nil {
		return counts, err
	}
	counts.Customers = int64(len(customers))

	// Dependents only reference customers created by this run.
	pool := make([]models.CustomerRef, len(customers))
	for i, c := range customers {
		pool[i] = models.CustomerRef{ID: c.ID, MonthlyFee: c.MonthlyFee}
	}

	s.progress("   📞 Creating %d call records...", cfg.Calls)
	calls, err := generate.Calls(src, pool, cfg.Calls)
	if err != nil {
		return counts, fmt.Errorf("generate call records: %w", err)
	}
	if err := store.InsertCalls(ctx, calls); err != nil {
		return counts, err
	}
	counts.CallRecords = int64(len(calls))

	s.progress("   📶 Creating %d data usage records...", cfg.UsageRecords)
	usage, err := generate.Usage(src, pool, cfg.UsageRecords)
	if err != nil {
		return counts, fmt.Errorf("generate data usage: %w", err)
	}
	if err := store.InsertUsage(ctx, usage); err != nil {
		return counts, err
	}
	counts.DataUsage = int64(len(usage))

	s.progress("   🧾 Creating %d billing records...", cfg.Bills)
	bills, err := generate.Bills(src, pool, cfg.Bills)
	if err != nil {
		return counts, fmt.Errorf("generate billing: %w", err)
	}
	if err := store.InsertBills(ctx, bills); err != nil {
		return counts, err
	}
	counts.Billing = int64(len(bills))

	return counts, nil
}
