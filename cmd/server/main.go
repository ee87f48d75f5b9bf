package main

import (
	"context"
	"fmt"
	"log"

	"elite/internal/config"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

// loadConfig reads .env (if any) and then the environment. A missing or
// invalid required variable stops the command before anything is served.
func loadConfig() (*config.Config, error) {
	if err := godotenv.Load(); err != nil {
		log.Println("Error loading .env file:", err)
	}
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("configuration: %w", err)
	}
	return cfg, nil
}

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "server",
		Short:         "e-lite exercise log API",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServe(cmd.Context())
		},
	}

	root.AddCommand(newServeCmd(), newDBCheckCmd(), newBootstrapCmd())
	return root
}

func main() {
	if err := newRootCmd().ExecuteContext(context.Background()); err != nil {
		log.Fatal(err)
	}
}
