package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/ochronus/goimgur/internal/actions"
	"github.com/ochronus/goimgur/internal/app"
	"github.com/ochronus/goimgur/internal/config"
	"github.com/ochronus/goimgur/internal/utils"
	"github.com/spf13/cobra"
)

const version = "0.3.0"

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var configPath string

	// Get default config path
	defaultConfigPath, err := config.DefaultConfigPath()
	if err != nil {
		defaultConfigPath = "./config.toml"
	}

	// Root command
	rootCmd := &cobra.Command{
		Use:           "goimgur",
		Short:         "Upload images to imgur and keep track of their delete keys",
		Long:          "Uploads images and albums to imgur, deletes them by delete key and keeps an upload history so everything can be cleared later.",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", defaultConfigPath, "Path to config file")

	// run wires up the container for commands that need one and turns
	// recorded warnings into a failing exit status.
	run := func(fn func(ctx context.Context, r *actions.Runner) error) func(*cobra.Command, []string) error {
		return func(cmd *cobra.Command, args []string) error {
			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			container, err := buildContainer(configPath)
			if err != nil {
				return err
			}
			runner := actions.NewRunner(container)
			if err := fn(ctx, runner); err != nil {
				return err
			}
			return runner.Result()
		}
	}

	configCmd := &cobra.Command{
		Use:   "config",
		Short: "Print the current APP_ID and APP_HISTORY",
		Args:  cobra.NoArgs,
		RunE: run(func(_ context.Context, r *actions.Runner) error {
			return r.ShowConfig()
		}),
	}

	var uploadOpts actions.UploadOptions
	uploadCmd := &cobra.Command{
		Use:   "upload <file|url|data-uri>...",
		Short: "Upload images, grouping several into a hidden album",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(func(ctx context.Context, r *actions.Runner) error {
				return r.Upload(ctx, args, uploadOpts)
			})(cmd, args)
		},
	}
	uploadCmd.Flags().BoolVar(&uploadOpts.Album, "album", true, "Group multiple images into a new hidden album")
	uploadCmd.Flags().StringVar(&uploadOpts.Title, "title", "", "Album title")

	deleteCmd := &cobra.Command{
		Use:   "delete <image:HASH|album:HASH>...",
		Short: "Delete uploads by delete key",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(func(ctx context.Context, r *actions.Runner) error {
				_, err := r.Delete(ctx, args)
				return err
			})(cmd, args)
		},
	}

	var clearOpts actions.ClearOptions
	clearCmd := &cobra.Command{
		Use:   "clear",
		Short: "Delete every upload in the history, then remove the history",
		Args:  cobra.NoArgs,
		RunE: run(func(ctx context.Context, r *actions.Runner) error {
			return r.Clear(ctx, clearOpts)
		}),
	}
	clearCmd.Flags().BoolVarP(&clearOpts.Yes, "yes", "y", false, "Do not ask for confirmation")

	statsCmd := &cobra.Command{
		Use:   "stats",
		Short: "Print account usage",
		Args:  cobra.NoArgs,
		RunE: run(func(ctx context.Context, r *actions.Runner) error {
			return r.Stats(ctx, time.Now())
		}),
	}

	// Init-config command
	initConfigCmd := &cobra.Command{
		Use:   "init-config",
		Short: "Generate a config file",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			defaults := config.DefaultConfig()
			return utils.GenerateConfig(configPath, defaults.ClientID, defaults.History, cmd.OutOrStdout())
		},
	}

	// Version command
	versionCmd := &cobra.Command{
		Use:   "version",
		Short: "Print the version number",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "goimgur version %s\n", version)
		},
	}

	rootCmd.AddCommand(configCmd, uploadCmd, deleteCmd, clearCmd, statsCmd, initConfigCmd, versionCmd)
	return rootCmd
}

func buildContainer(configPath string) (*app.Container, error) {
	// Load configuration
	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	if err := cfg.ApplyEnv(".env"); err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	// Validate configuration
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return app.NewContainer(cfg)
}
