package main

import (
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/ajramos/labelpanel/internal/config"
	"github.com/ajramos/labelpanel/internal/version"
)

var (
	configPathFlag string
	cfg            *config.Config
	logger         *log.Logger
	logFile        *os.File
)

var rootCmd = &cobra.Command{
	Use:   "labelpanel",
	Short: "Label panel toolkit for Gmail pages",
	Long: `labelpanel inspects captured Gmail pages and manages the label panel
override store: scanning the sidebar label catalog, resolving message
identities from rows, building grouped panel views, composing label
search queries, and applying labels through the Gmail API.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		var err error
		cfg, err = config.LoadConfig(getConfigPath(configPathFlag))
		if err != nil {
			return fmt.Errorf("load configuration: %w", err)
		}
		initLogger()
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		closeLogger()
	},
}

func main() {
	rootCmd.PersistentFlags().StringVar(&configPathFlag, "config", "", "Path to JSON configuration file (default: ~/.config/labelpanel/config.json)")

	rootCmd.AddCommand(newScanCmd())
	rootCmd.AddCommand(newSyncCmd())
	rootCmd.AddCommand(newResolveCmd())
	rootCmd.AddCommand(newPanelCmd())
	rootCmd.AddCommand(newQueryCmd())
	rootCmd.AddCommand(newGroupCmd())
	rootCmd.AddCommand(newRenameCmd())
	rootCmd.AddCommand(newHideCmd())
	rootCmd.AddCommand(newLabelsCmd())
	rootCmd.AddCommand(newApplyCmd())
	rootCmd.AddCommand(newVersionCmd())

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Show version information",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Println(version.GetDetailedVersionString())
		},
	}
}

// initLogger initializes a file logger under ~/.config/labelpanel if possible
func initLogger() {
	path := cfg.LogFile
	if path == "" {
		if dir := config.DefaultLogDir(); dir != "" {
			if err := os.MkdirAll(dir, 0o755); err == nil {
				path = filepath.Join(dir, "labelpanel.log")
			}
		}
	}
	if path == "" {
		return
	}
	if f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644); err == nil {
		logFile = f
		logger = log.New(f, "[labelpanel] ", log.LstdFlags|log.Lmicroseconds)
	}
}

// closeLogger closes the log file if opened
func closeLogger() {
	if logFile != nil {
		_ = logFile.Close()
		logFile = nil
	}
}

// getConfigPath returns the configuration file path using the following priority:
// 1. CLI flag
// 2. Environment variable LABELPANEL_CONFIG
// 3. Default path ~/.config/labelpanel/config.json
func getConfigPath(flagValue string) string {
	if flagValue != "" {
		return expandPath(flagValue)
	}
	return config.DefaultConfigPath()
}

// getCredentialsPath resolves the credentials path from flag, config, default.
func getCredentialsPath(flagValue string) string {
	if flagValue != "" {
		return expandPath(flagValue)
	}
	if cfg.Credentials != "" {
		return expandPath(cfg.Credentials)
	}
	credPath, _ := config.DefaultCredentialPaths()
	return credPath
}

// getTokenPath resolves the token path from config or default.
func getTokenPath() string {
	if cfg.Token != "" {
		return expandPath(cfg.Token)
	}
	_, tokenPath := config.DefaultCredentialPaths()
	return tokenPath
}

// getStorePath resolves the override database path from flag, config, default.
func getStorePath(flagValue string) string {
	if flagValue != "" {
		return expandPath(flagValue)
	}
	if cfg.StorePath != "" {
		return expandPath(cfg.StorePath)
	}
	return filepath.Join(config.DefaultStoreDir(), "overrides.sqlite3")
}

// expandPath expands ~ to the user's home directory
func expandPath(path string) string {
	if !strings.HasPrefix(path, "~") {
		return path
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return path
	}
	if path == "~" {
		return home
	}
	return filepath.Join(home, path[2:])
}
