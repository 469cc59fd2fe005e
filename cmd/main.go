package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"medcare-portal/cmd/bootstrap"
	"medcare-portal/config"
	"medcare-portal/internal/infrastructure/database"
	"medcare-portal/internal/repository"
	"medcare-portal/pkg/jwt"

	"github.com/google/uuid"
	"github.com/spf13/cobra"
)

func main() {
	rootCmd := &cobra.Command{
		Use:           "medcare-portal",
		Short:         "Hospital dashboard API",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	rootCmd.AddCommand(serveCmd())
	rootCmd.AddCommand(migrateCmd())
	rootCmd.AddCommand(seedCmd())
	rootCmd.AddCommand(tokenCmd())

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func serveCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Start the HTTP server",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.LoadConfig()
			if err != nil {
				return err
			}

			// Initialize application with all dependencies
			app, err := bootstrap.New(cfg)
			if err != nil {
				return fmt.Errorf("failed to initialize application: %w", err)
			}

			return app.Run()
		},
	}
}

func migrateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "migrate",
		Short: "Run database migrations",
	}

	run := func(apply func(m *database.Migrator) error) func(cmd *cobra.Command, args []string) error {
		return func(cmd *cobra.Command, args []string) error {
			cfg, err := config.LoadConfig()
			if err != nil {
				return err
			}
			log := bootstrap.SetupLogger(cfg.App)

			migrator, err := database.NewMigrator(cfg.DB, log)
			if err != nil {
				return err
			}
			defer migrator.Close()

			return apply(migrator)
		}
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "up",
		Short: "Apply pending migrations",
		RunE:  run((*database.Migrator).Up),
	})
	cmd.AddCommand(&cobra.Command{
		Use:   "down",
		Short: "Roll back the last migration",
		RunE:  run((*database.Migrator).Down),
	})
	cmd.AddCommand(&cobra.Command{
		Use:   "version",
		Short: "Show the current schema version",
		RunE: run(func(m *database.Migrator) error {
			version, dirty, err := m.Version()
			if err != nil {
				return err
			}
			fmt.Printf("version=%d dirty=%t\n", version, dirty)
			return nil
		}),
	})

	return cmd
}

func seedCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "seed",
		Short: "Insert sample profiles, staff and appointments",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.LoadConfig()
			if err != nil {
				return err
			}
			log := bootstrap.SetupLogger(cfg.App)

			location, err := time.LoadLocation(cfg.App.Timezone)
			if err != nil {
				return fmt.Errorf("invalid timezone %q: %w", cfg.App.Timezone, err)
			}

			db, err := database.NewPostgresConnection(cfg.DB, cfg.App)
			if err != nil {
				return err
			}
			if sqlDB, err := db.DB(); err == nil {
				defer sqlDB.Close()
			}

			seeder := database.NewSeeder(db, log, database.SeedRepositories{
				Profile:      repository.NewProfileRepository(),
				Doctor:       repository.NewDoctorRepository(),
				Nurse:        repository.NewNurseRepository(),
				Appointment:  repository.NewAppointmentRepository(),
				Operation:    repository.NewOperationRepository(),
				DutySchedule: repository.NewDutyScheduleRepository(),
			}, location)

			result, err := seeder.Seed(context.Background())
			if err != nil {
				return fmt.Errorf("seed failed: %w", err)
			}

			fmt.Printf("%-38s %-15s %s\n", "PROFILE ID", "ROLE", "EMAIL")
			for _, p := range result.Profiles {
				fmt.Printf("%-38s %-15s %s\n", p.ID, p.Role, p.Email)
			}
			return nil
		},
	}
}

// tokenCmd mints a session token for local use. In production tokens come
// from the auth provider.
func tokenCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "token",
		Short: "Mint a development access token for a profile",
		RunE: func(cmd *cobra.Command, args []string) error {
			rawID, _ := cmd.Flags().GetString("profile")
			email, _ := cmd.Flags().GetString("email")

			profileID, err := uuid.Parse(rawID)
			if err != nil {
				return fmt.Errorf("--profile must be a profile id: %w", err)
			}

			cfg, err := config.LoadConfig()
			if err != nil {
				return err
			}
			if err := cfg.Validate(); err != nil {
				return err
			}

			token, _, err := jwt.NewJWTService(cfg.JWT).GenerateAccessToken(profileID, email)
			if err != nil {
				return err
			}

			fmt.Println(token)
			return nil
		},
	}
	cmd.Flags().String("profile", "", "Profile id to sign in as")
	cmd.Flags().String("email", "", "Email claim")
	cmd.MarkFlagRequired("profile")

	return cmd
}
