package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"rentdesk/internal/adapters/http/middleware"
	"rentdesk/internal/adapters/http/routes"
	"rentdesk/internal/adapters/persistence/models"
	"rentdesk/internal/bootstrap"
	"rentdesk/internal/config"

	"github.com/gofiber/fiber/v2"
	"github.com/spf13/cobra"
	"gorm.io/gorm"
)

// connect loads configuration and opens the database
func connect() (*config.Config, *gorm.DB, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, nil, fmt.Errorf("failed to load configuration: %w", err)
	}

	db, err := config.ConnectDatabase(cfg)
	if err != nil {
		return nil, nil, err
	}
	return cfg, db, nil
}

func serveCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API and scheduled jobs",
		RunE: func(cmd *cobra.Command, args []string) error {
			skipMigrate, _ := cmd.Flags().GetBool("skip-migrate")

			cfg, db, err := connect()
			if err != nil {
				return err
			}
			defer config.CloseDatabase()

			// Auto migrate (creates tables if not exist)
			if !skipMigrate {
				if err := models.AutoMigrate(db); err != nil {
					return fmt.Errorf("failed to auto migrate: %w", err)
				}
				log.Println("✅ Database migration completed")
			}

			if err := config.NewSeeder(db, cfg.Admin).Run(); err != nil {
				log.Printf("⚠️ Warning: Failed to seed admin user: %v", err)
			}

			container := bootstrap.New(db, cfg)
			defer container.Close()

			if cfg.Cron.Enabled {
				if err := container.Cron.Start(); err != nil {
					return fmt.Errorf("failed to start cron: %w", err)
				}
				defer container.Cron.Stop()
			}

			// Create Fiber app
			app := fiber.New(fiber.Config{
				AppName:      "rentdesk API v1.0",
				ErrorHandler: middleware.CustomErrorHandler,
			})

			middleware.Setup(app, cfg)
			routes.Setup(app, container)

			// Graceful shutdown
			go gracefulShutdown(app)

			log.Printf("🚀 Server starting on port %s [MODE: %s]", cfg.Port, cfg.AppMode)
			if err := app.Listen(":" + cfg.Port); err != nil {
				return fmt.Errorf("failed to start server: %w", err)
			}
			return nil
		},
	}
	cmd.Flags().Bool("skip-migrate", false, "Do not run auto migration on startup")
	return cmd
}

func migrateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Create or update database tables",
		RunE: func(cmd *cobra.Command, args []string) error {
			_, db, err := connect()
			if err != nil {
				return err
			}
			defer config.CloseDatabase()

			if err := models.AutoMigrate(db); err != nil {
				return fmt.Errorf("failed to auto migrate: %w", err)
			}
			log.Println("✅ Database migration completed")
			return nil
		},
	}
}

func seedCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "seed",
		Short: "Seed the admin account, optionally with sample data",
		RunE: func(cmd *cobra.Command, args []string) error {
			sample, _ := cmd.Flags().GetBool("sample")

			cfg, db, err := connect()
			if err != nil {
				return err
			}
			defer config.CloseDatabase()

			if err := models.AutoMigrate(db); err != nil {
				return fmt.Errorf("failed to auto migrate: %w", err)
			}
			if err := config.NewSeeder(db, cfg.Admin).Run(); err != nil {
				return err
			}
			if sample {
				if err := config.SeedSampleData(db); err != nil {
					return err
				}
			}
			return nil
		},
	}
	cmd.Flags().Bool("sample", false, "Also insert sample buildings, rooms and guests")
	return cmd
}

func sweepCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "sweep",
		Short: "Recompute payment statuses once and exit",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, db, err := connect()
			if err != nil {
				return err
			}
			defer config.CloseDatabase()

			container := bootstrap.New(db, cfg)
			defer container.Close()

			ctx, cancel := context.WithTimeout(cmd.Context(), 5*time.Minute)
			defer cancel()

			changed, err := container.Cron.SweepPayments(ctx)
			if err != nil {
				return err
			}
			fmt.Printf("Payment sweep updated %d guest(s)\n", changed)
			return nil
		},
	}
}

// gracefulShutdown handles graceful shutdown
func gracefulShutdown(app *fiber.App) {
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("🛑 Shutting down server...")
	if err := app.Shutdown(); err != nil {
		log.Printf("❌ Error during shutdown: %v", err)
	}
	log.Println("✅ Server stopped gracefully")
}
