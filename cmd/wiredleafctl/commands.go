package main

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"wiredleaf-api/auth"
	"wiredleaf-api/config"
	"wiredleaf-api/db"
	"wiredleaf-api/logger"
	"wiredleaf-api/services"
	"wiredleaf-api/store"
)

// openStore loads config and connects; InitDB also applies migrations.
func openStore(ctx context.Context) (config.Config, *sql.DB, *store.Store, error) {
	cfg, err := config.LoadConfig()
	if err != nil {
		return cfg, nil, nil, err
	}
	logger.Default().SetLevel(logger.ParseLevel(cfg.LogLevel))
	conn, err := db.InitDB(ctx, cfg)
	if err != nil {
		return cfg, nil, nil, err
	}
	return cfg, conn, store.New(conn), nil
}

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Create any missing tables",
	RunE: func(cmd *cobra.Command, args []string) error {
		_, conn, _, err := openStore(cmd.Context())
		if err != nil {
			return err
		}
		defer conn.Close()
		fmt.Fprintln(cmd.OutOrStdout(), "schema up to date")
		return nil
	},
}

var (
	adminEmail    string
	adminName     string
	adminPassword string
)

var createAdminCmd = &cobra.Command{
	Use:   "create-admin",
	Short: "Seed an admin account for the dashboard",
	RunE: func(cmd *cobra.Command, args []string) error {
		if adminPassword == "" {
			adminPassword = os.Getenv("ADMIN_PASSWORD")
		}
		cfg, conn, st, err := openStore(cmd.Context())
		if err != nil {
			return err
		}
		defer conn.Close()

		svc := services.NewAuthService(st, auth.NewTokens(cfg.JWTSecret, cfg.TokenTTL), nil)
		a, err := svc.CreateAdmin(cmd.Context(), adminEmail, adminName, adminPassword)
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "created admin %s (%s)\n", a.Email, a.ID)
		return nil
	},
}

var (
	exportOut    string
	exportAfter  string
	exportBefore string
)

var exportCmd = &cobra.Command{
	Use:   "export-consultations",
	Short: "Write consultations to an xlsx workbook",
	RunE: func(cmd *cobra.Command, args []string) error {
		after, err := parseOptionalTime(exportAfter)
		if err != nil {
			return fmt.Errorf("--after: %w", err)
		}
		before, err := parseOptionalTime(exportBefore)
		if err != nil {
			return fmt.Errorf("--before: %w", err)
		}

		_, conn, st, err := openStore(cmd.Context())
		if err != nil {
			return err
		}
		defer conn.Close()

		f, err := os.Create(exportOut)
		if err != nil {
			return err
		}
		defer f.Close()

		svc := services.NewConsultationService(st, nil, nil, nil)
		if err := svc.Export(cmd.Context(), f, after, before); err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "wrote %s\n", exportOut)
		return f.Close()
	},
}

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Print dashboard stats and dead-letter counts as JSON",
	RunE: func(cmd *cobra.Command, args []string) error {
		_, conn, st, err := openStore(cmd.Context())
		if err != nil {
			return err
		}
		defer conn.Close()

		dash, err := services.NewDashboardService(st).Stats(cmd.Context())
		if err != nil {
			return err
		}
		dlq, err := services.NewDLQService(st, nil).Stats(cmd.Context())
		if err != nil {
			return err
		}

		enc := json.NewEncoder(cmd.OutOrStdout())
		enc.SetIndent("", "  ")
		return enc.Encode(map[string]interface{}{"dashboard": dash, "dlq": dlq})
	},
}

func parseOptionalTime(s string) (*time.Time, error) {
	if s == "" {
		return nil, nil
	}
	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		if d, derr := time.Parse(time.DateOnly, s); derr == nil {
			return &d, nil
		}
		return nil, err
	}
	return &t, nil
}

func init() {
	createAdminCmd.Flags().StringVar(&adminEmail, "email", "", "admin email (required)")
	createAdminCmd.Flags().StringVar(&adminName, "name", "Admin", "display name")
	createAdminCmd.Flags().StringVar(&adminPassword, "password", "", "password (defaults to $ADMIN_PASSWORD)")
	_ = createAdminCmd.MarkFlagRequired("email")

	exportCmd.Flags().StringVarP(&exportOut, "out", "o", "consultations.xlsx", "output file")
	exportCmd.Flags().StringVar(&exportAfter, "after", "", "only rows created at or after (RFC3339 or YYYY-MM-DD)")
	exportCmd.Flags().StringVar(&exportBefore, "before", "", "only rows created at or before (RFC3339 or YYYY-MM-DD)")
}
