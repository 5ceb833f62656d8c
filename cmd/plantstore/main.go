package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"github.com/talkincode/plantstore/config"
	"github.com/talkincode/plantstore/internal/app"
	"github.com/talkincode/plantstore/internal/plantapi"
	"github.com/talkincode/plantstore/internal/webserver"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

var (
	// Global flags
	cfile string
	track bool
)

var rootCmd = &cobra.Command{
	Use:          "plantstore",
	Short:        "plantstore - plant catalog CRUD API",
	SilenceUsage: true,
	RunE:         runServe,
}

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the HTTP API (default command)",
	RunE:  runServe,
}

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Create or update the database schema",
	RunE: func(cmd *cobra.Command, args []string) error {
		application, err := loadApplication()
		if err != nil {
			return err
		}
		defer application.Release()
		// Init already migrated; run again with tracing when asked
		if track {
			return application.MigrateDB(true)
		}
		return nil
	},
}

var initdbCmd = &cobra.Command{
	Use:   "initdb",
	Short: "Drop and recreate all tables",
	RunE: func(cmd *cobra.Command, args []string) error {
		application, err := loadApplication()
		if err != nil {
			return err
		}
		defer application.Release()
		return application.InitDb()
	},
}

var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Insert the demo plants that are missing",
	RunE: func(cmd *cobra.Command, args []string) error {
		application, err := loadApplication()
		if err != nil {
			return err
		}
		defer application.Release()
		n, err := application.SeedPlants(cmd.Context())
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "seeded %d plants\n", n)
		return nil
	},
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Fprintln(cmd.OutOrStdout(), plantapi.Version)
	},
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&cfile, "config", "c", "", "config file (default plantstore.yml)")
	migrateCmd.Flags().BoolVar(&track, "track", false, "log the migration SQL")
	rootCmd.AddCommand(serveCmd, migrateCmd, initdbCmd, seedCmd, versionCmd)
}

func loadApplication() (*app.Application, error) {
	cfg, err := config.LoadConfig(cfile)
	if err != nil {
		return nil, err
	}
	application := app.NewApplication(cfg)
	if err := application.Init(); err != nil {
		application.Release()
		return nil, err
	}
	return application, nil
}

func runServe(cmd *cobra.Command, args []string) error {
	application, err := loadApplication()
	if err != nil {
		return err
	}
	defer application.Release()

	srv := webserver.NewServer(application)
	plantapi.RegisterRoutes(srv)

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	g, gctx := errgroup.WithContext(ctx)
	g.Go(srv.Listen)
	g.Go(func() error {
		<-gctx.Done()
		// the signal context is already cancelled, give shutdown its own deadline
		return srv.Shutdown(context.Background())
	})
	if err := g.Wait(); err != nil {
		zap.S().Errorf("server stopped: %v", err)
		return err
	}
	return nil
}

func main() {
	if err := rootCmd.ExecuteContext(context.Background()); err != nil {
		os.Exit(1)
	}
}
