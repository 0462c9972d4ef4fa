package cmd

import (
	"errors"
	"fmt"
	"path/filepath"
	"testing"

	"github.com/matthieukhl/telcodata/internal/config"
	"github.com/matthieukhl/telcodata/internal/database"
	"github.com/matthieukhl/telcodata/internal/generate"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// resetFlags restores every flag in the command tree to its default.
func resetFlags(cmd *cobra.Command) {
	reset := func(f *pflag.Flag) {
		_ = f.Value.Set(f.DefValue)
		f.Changed = false
	}
	cmd.Flags().VisitAll(reset)
	cmd.PersistentFlags().VisitAll(reset)
	for _, sub := range cmd.Commands() {
		resetFlags(sub)
	}
}

func execute(t *testing.T, args ...string) error {
	t.Helper()
	resetFlags(rootCmd)
	rootCmd.SetArgs(args)
	return rootCmd.Execute()
}

func tableCounts(t *testing.T, dbPath string) database.TableCounts {
	t.Helper()
	db, err := database.NewConnection(&config.DBConfig{Driver: database.DriverSQLite, DSN: dbPath, MaxOpenConns: 1})
	require.NoError(t, err)
	defer db.Close()
	counts, err := database.NewStore(db).Counts(t.Context())
	require.NoError(t, err)
	return counts
}

func TestDescribe(t *testing.T) {
	tests := []struct {
		err  error
		want string
	}{
		{fmt.Errorf("generate call records: %w", generate.ErrPrecursorMissing), "precursor missing: "},
		{fmt.Errorf("customer 3: %w", generate.ErrUniquenessViolation), "uniqueness violation: "},
		{fmt.Errorf("%w: insert into billing: disk full", database.ErrPersistence), "persistence failure: "},
		{errors.New("plain"), "plain"},
	}
	for _, tt := range tests {
		assert.Contains(t, describe(tt.err), tt.want)
	}
}

func TestGenerateVerifyReport(t *testing.T) {
	t.Chdir(t.TempDir())
	dbPath := filepath.Join(t.TempDir(), "telecom.db")

	require.NoError(t, execute(t, "generate", "--db", dbPath, "--customers", "12", "--calls", "30",
		"--usage-records", "8", "--bills", "6", "--seed", "9", "--no-report", "--log-level", "error"))

	cfg, err := loadConfig()
	require.NoError(t, err)
	assert.Equal(t, dbPath, cfg.DB.DSN)
	assert.Equal(t, config.GenerateConfig{Customers: 12, Calls: 30, UsageRecords: 8, Bills: 6, Seed: 9}, cfg.Generate)

	require.NoError(t, execute(t, "verify", "--db", dbPath))
	require.NoError(t, execute(t, "report", "--db", dbPath, "--json"))

	assert.Equal(t, int64(56), tableCounts(t, dbPath).Total())
}

func TestGenerate_FlagsDoNotCarryOver(t *testing.T) {
	t.Chdir(t.TempDir())
	dbPath := filepath.Join(t.TempDir(), "telecom.db")

	require.NoError(t, execute(t, "generate", "--db", dbPath, "--schema-only", "--log-level", "error"))
	assert.Zero(t, tableCounts(t, dbPath).Total())

	require.NoError(t, execute(t, "generate", "--db", dbPath, "--customers", "4", "--calls", "5",
		"--usage-records", "3", "--bills", "2", "--seed", "11", "--no-report", "--log-level", "error"))
	assert.Equal(t, database.TableCounts{Customers: 4, CallRecords: 5, DataUsage: 3, Billing: 2}, tableCounts(t, dbPath))
}
