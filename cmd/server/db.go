package main

import (
	"context"
	"fmt"
	"time"

	"elite/internal/database"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

const checkTimeout = 15 * time.Second

func newDBCheckCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "dbcheck",
		Short: "Connect to the database and print select now()",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}

			db, err := database.Connect(cfg.DB)
			if err != nil {
				return err
			}
			defer db.Close()

			out := cmd.OutOrStdout()
			fmt.Fprintln(out, "Connecting to:", cfg.DB.Redacted())

			ctx, cancel := context.WithTimeout(cmd.Context(), checkTimeout)
			defer cancel()

			now, err := db.Now(ctx)
			if err != nil {
				color.New(color.FgRed, color.Bold).Fprintln(out, "FAIL:", err)
				return fmt.Errorf("database check failed: %w", err)
			}
			color.New(color.FgGreen, color.Bold).Fprintln(out, "OK:", now.Format(time.RFC3339Nano))
			return nil
		},
	}
}

func newBootstrapCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "bootstrap",
		Short: "Create the tables of the active variant if they are missing",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}

			db, err := database.Connect(cfg.DB)
			if err != nil {
				return err
			}
			defer db.Close()

			ctx, cancel := context.WithTimeout(cmd.Context(), bootstrapTimeout)
			defer cancel()

			if err := db.Bootstrap(ctx, cfg.Variant); err != nil {
				color.New(color.FgRed, color.Bold).Fprintln(cmd.ErrOrStderr(), "FAIL:", err)
				return err
			}
			color.New(color.FgGreen).Fprintf(cmd.OutOrStdout(), "Schema ready for variant %q\n", cfg.Variant)
			return nil
		},
	}
}
