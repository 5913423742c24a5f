package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/tabfuse/tabfuse/internal/cmd/globals"
	"github.com/tabfuse/tabfuse/internal/cmd/output"
	"github.com/tabfuse/tabfuse/internal/config"
	"github.com/tabfuse/tabfuse/pkg/constants"
	"github.com/tabfuse/tabfuse/pkg/logging"
)

var (
	configFile  string
	globalFlags *globals.Flags

	// Version information set by main.
	Version = "dev"
	// Commit is the git commit hash.
	Commit = "unknown"
	// Date is the build date.
	Date = "unknown"
	// BuiltBy is the build system identifier.
	BuiltBy = "unknown"
)

// rootCmd represents the base command when called without any subcommands.
var rootCmd = &cobra.Command{
	Use:   "tabfuse",
	Short: "Prioritized CSV merge tool",
	Long: `Tabfuse merges prioritized delimited files into a single output table.

Sources are read in the order the config lists them: the first source
seeds the output table and every later source only fills cells earlier
sources left empty, matched row-to-row on configured key columns.
Regular-expression rules can reject rows before the merge and flag
suspect values after it.`,
	PersistentPreRunE: setupCommand,
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute(version, commit, date, builtBy string) {
	// Set version information
	Version = version
	Commit = commit
	Date = date
	BuiltBy = builtBy

	// Set up context with signal handling for graceful shutdown
	ctx, cancel := signal.NotifyContext(context.Background(),
		syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	// Pass context to root command
	err := rootCmd.ExecuteContext(ctx)
	if err != nil {
		os.Exit(1)
	}
}

func init() {
	cobra.OnInitialize(initConfig)

	// Add command groups for better organization
	rootCmd.AddGroup(&cobra.Group{
		ID:    "core",
		Title: "Core Commands:",
	})

	rootCmd.AddGroup(&cobra.Group{
		ID:    "management",
		Title: "Management Commands:",
	})

	// Global flags
	rootCmd.PersistentFlags().StringVarP(&configFile, "config", "c", "",
		"config file (default is tabfuse.yaml)")
	globalFlags = globals.AddFlags(rootCmd.PersistentFlags())

	// Bind flags to viper
	if err := viper.BindPFlag("verbose", rootCmd.PersistentFlags().Lookup("verbose")); err != nil {
		panic(fmt.Sprintf("Failed to bind verbose flag: %v", err))
	}
	if err := viper.BindPFlag("quiet", rootCmd.PersistentFlags().Lookup("quiet")); err != nil {
		panic(fmt.Sprintf("Failed to bind quiet flag: %v", err))
	}
}

// initConfig sets up environment handling. The merge configuration
// itself is loaded per command through internal/config, not viper; viper
// only carries TABFUSE_* environment settings.
func initConfig() {
	// Load .env files first (before Viper env binding)
	loadEnvFiles()

	// Set up environment variable handling
	viper.SetEnvPrefix("TABFUSE")
	viper.AutomaticEnv() // Read in environment variables
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))

	// Configure logging based on flags and environment
	configureLogging()
}

// setupCommand is called before any command runs.
func setupCommand(_ *cobra.Command, _ []string) error {
	// Setup output format based on terminal detection
	if globalFlags.Format == "" {
		globalFlags.Format = string(output.DetectFormat(""))
	}

	return nil
}

// configureLogging sets up the logging system based on configuration.
func configureLogging() {
	// Determine log level
	level := zerolog.InfoLevel
	if globalFlags != nil && globalFlags.Verbose || viper.GetBool("verbose") {
		level = zerolog.DebugLevel
	}
	if globalFlags != nil && globalFlags.Quiet || viper.GetBool("quiet") {
		level = zerolog.WarnLevel
	}
	if envLevel := config.GetString(config.EnvLogLevel); envLevel != "" {
		if parsed, err := zerolog.ParseLevel(envLevel); err == nil {
			level = parsed
		}
	}
	// An explicit --log-level beats both the env and the verbosity flags
	if globalFlags != nil && globalFlags.LogLevel != "" {
		if parsed, err := zerolog.ParseLevel(globalFlags.LogLevel); err == nil {
			level = parsed
		}
	}

	// Configure the logger
	cfg := &logging.Config{
		Level:     level.String(),
		Format:    "auto",
		Output:    "stderr",
		AddCaller: level <= zerolog.DebugLevel,
	}
	if globalFlags != nil {
		if globalFlags.LogFormat != "" {
			cfg.Format = globalFlags.LogFormat
		}
		cfg.NoColor = cfg.NoColor || globalFlags.NoColor
	}

	logging.Configure(cfg)
}

// loadEnvFiles loads environment variables from .env files.
func loadEnvFiles() {
	// Try to load .env files in order of precedence
	// .env.local overrides .env
	envFiles := []string{
		".env",
		".env.local",
	}

	for _, envFile := range envFiles {
		loadEnvFile(envFile)
	}
}

// loadEnvFile loads a single .env file using godotenv.
func loadEnvFile(filename string) {
	// Use godotenv to load the file into the environment
	if err := godotenv.Load(filename); err == nil {
		// File loaded successfully
		if globalFlags != nil && globalFlags.Verbose {
			fmt.Fprintf(os.Stderr, "Loaded %s\n", filename)
		}
	}
}

// configPath resolves the config file for the current invocation: the
// --config flag first, then TABFUSE_CONFIG, then the default file.
func configPath() string {
	return config.ResolvePath(configFile, constants.DefaultConfigFile)
}
