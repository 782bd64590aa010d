package main

import (
	"context"

	"notetaking-be/internal/model"
	"notetaking-be/internal/repository/unitofwork"
	"notetaking-be/internal/seed"
	"notetaking-be/pkg/events"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

var dropCmd = &cobra.Command{
	Use:   "drop",
	Short: "Drop every application table",
	RunE: func(cmd *cobra.Command, args []string) error {
		e, err := openEnv()
		if err != nil {
			return err
		}
		return drop(e)
	},
}

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Create or update the schema",
	RunE: func(cmd *cobra.Command, args []string) error {
		e, err := openEnv()
		if err != nil {
			return err
		}
		return migrate(e)
	},
}

var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Insert the default user and starter tags",
	RunE: func(cmd *cobra.Command, args []string) error {
		e, err := openEnv()
		if err != nil {
			return err
		}
		return seedData(cmd.Context(), e)
	},
}

var ciCmd = &cobra.Command{
	Use:   "ci",
	Short: "Drop, migrate and seed in one go",
	RunE: func(cmd *cobra.Command, args []string) error {
		e, err := openEnv()
		if err != nil {
			return err
		}
		if err := drop(e); err != nil {
			return err
		}
		if err := migrate(e); err != nil {
			return err
		}
		return seedData(cmd.Context(), e)
	},
}

func init() {
	rootCmd.AddCommand(dropCmd, migrateCmd, seedCmd, ciCmd)
}

func drop(e *env) error {
	color.Yellow("Dropping tables...")
	models := model.All()
	// reverse order so link tables go first
	for i := len(models) - 1; i >= 0; i-- {
		if err := e.db.Migrator().DropTable(models[i]); err != nil {
			return err
		}
	}
	color.Green("✅ Tables dropped")
	return nil
}

func migrate(e *env) error {
	color.Yellow("Running AutoMigrate for %d tables...", len(model.All()))
	if err := e.db.AutoMigrate(model.All()...); err != nil {
		return err
	}
	color.Green("✅ Migration completed")
	return nil
}

func seedData(ctx context.Context, e *env) error {
	if ctx == nil {
		ctx = context.Background()
	}
	color.Yellow("Seeding data...")

	factory := unitofwork.NewRepositoryFactory(e.db, events.NewDispatcher(), e.logger)
	res, err := seed.NewSeeder(factory, e.logger).Seed(ctx, seed.Options{
		Username: seedUsername,
		Password: seedPassword,
	})
	if err != nil {
		return err
	}
	color.Green("✅ Seeded %d user(s), %d tag(s)", res.UsersCreated, res.TagsCreated)
	return nil
}
