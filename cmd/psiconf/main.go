package main

import (
	"fmt"
	"os"

	"github.com/ruminaider/psiconf/internal/config"
	"github.com/ruminaider/psiconf/internal/logging"
	"github.com/ruminaider/psiconf/internal/paths"
	"github.com/ruminaider/psiconf/internal/profiles"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var version = "0.1.0"

var (
	configPath  string
	profileFlag string

	cfg    config.Config
	logger = zap.NewNop()
)

var rootCmd = &cobra.Command{
	Use:          "psiconf",
	Short:        "Migrate and manage Psi client profiles",
	Long:         "psiconf converts legacy config.xml profiles into the hierarchical option store and manages the profile directories.",
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		var err error
		cfg, err = config.Load(configPath)
		if err != nil {
			return err
		}
		logger, err = logging.New(cfg.Log)
		if err != nil {
			return fmt.Errorf("setting up logging: %w", err)
		}
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		_ = logger.Sync()
	},
	RunE: runMainMenu,
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Show version",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("psiconf %s\n", version)
	},
}

func roots() profiles.Roots {
	return profiles.Roots{
		Config: cfg.Profiles.ConfigRoot,
		Data:   cfg.Profiles.DataRoot,
		Cache:  cfg.Profiles.CacheRoot,
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", paths.ConfigFile(), "path to psiconf.yaml")
	rootCmd.PersistentFlags().StringVarP(&profileFlag, "profile", "p", "", "profile to operate on (default: active profile)")

	rootCmd.AddCommand(versionCmd)
	rootCmd.AddCommand(migrateCmd)
	rootCmd.AddCommand(profileCmd)
	rootCmd.AddCommand(optionsCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
