package cmd

import (
	"fmt"

	"github.com/gin-gonic/gin"
	"github.com/matthieukhl/telcodata/internal/server"
	"github.com/spf13/cobra"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the read-only HTTP API over the generated database",
	Long: `Start an HTTP server which provides:
- GET /api/health  database health
- GET /api/report  record counts and sample queries as JSON
- GET /api/verify  dataset invariant check`,
	RunE: runServer,
}

func init() {
	rootCmd.AddCommand(serveCmd)

	serveCmd.Flags().String("addr", "", "Listen address (default :8080)")
	_ = v.BindPFlag("server.addr", serveCmd.Flags().Lookup("addr"))
}

func runServer(cmd *cobra.Command, args []string) error {
	fmt.Println("🚀 Telcodata API starting...")

	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	log := newLogger(cfg.Log.Level)

	if cfg.Log.Level != "debug" {
		gin.SetMode(gin.ReleaseMode)
	}

	db, err := connect(cfg)
	if err != nil {
		return err
	}
	defer db.Close()

	fmt.Println("✅ Database connected successfully")

	srv := server.NewServer(db, log)

	fmt.Printf("🌐 Starting server on %s...\n", cfg.Server.Addr)
	if err := srv.Start(cfg.Server.Addr); err != nil {
		return fmt.Errorf("server failed: %w", err)
	}

	return nil
}
