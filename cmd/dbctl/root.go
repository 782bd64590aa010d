package main

import (
	"fmt"
	"os"

	"notetaking-be/internal/config"
	"notetaking-be/internal/pkg/logger"
	"notetaking-be/pkg/database"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"gorm.io/gorm"
)

var (
	seedUsername string
	seedPassword string
	logSQL       bool
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "dbctl",
	Short: "Database maintenance for the notes API",
	Long: `dbctl drops, migrates and seeds the database configured by DB_DRIVER and
DB_CONNECTION_STRING. "dbctl ci" runs all three in order.`,
	SilenceUsage: true,
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main().
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		color.Red("Error: %v", err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().BoolVar(&logSQL, "log-sql", false, "Print executed SQL")
	rootCmd.PersistentFlags().StringVar(&seedUsername, "username", "quinntyne", "Username of the seeded user")
	rootCmd.PersistentFlags().StringVar(&seedPassword, "password", "P@ssw0rd", "Password of the seeded user")
}

type env struct {
	cfg    *config.Config
	db     *gorm.DB
	logger logger.ILogger
}

func openEnv() (*env, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}

	db, err := database.NewGormDB(database.GormConfig{
		Driver: cfg.Database.Driver,
		DSN:    cfg.Database.Connection,
		LogSQL: logSQL || cfg.Database.LogSQL,
	})
	if err != nil {
		return nil, fmt.Errorf("connect database: %w", err)
	}

	return &env{
		cfg:    cfg,
		db:     db,
		logger: logger.NewZapLogger(cfg.App.LogFilePath, cfg.IsProduction()),
	}, nil
}
