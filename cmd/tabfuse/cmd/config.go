package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/tabfuse/tabfuse/internal/config"
	"github.com/tabfuse/tabfuse/pkg/constants"
)

var (
	configInitSources int
	configInitOutput  string
	configInitForce   bool
)

// configCmd represents the config command
var configCmd = &cobra.Command{
	Use:     "config",
	Short:   "Manage the merge configuration",
	GroupID: "management",
	Long: `Config manages the file that describes a merge run.

Use "config init" to write a commented starter file and "config
validate" to check an existing one before running a merge.`,
}

// configInitCmd represents the config init command
var configInitCmd = &cobra.Command{
	Use:   "init",
	Short: "Write a commented starter config file",
	Example: `  tabfuse config init
  tabfuse config init --sources 3
  tabfuse config init -o configs/staging.yaml --force`,
	RunE: runConfigInit,
}

// configValidateCmd represents the config validate command
var configValidateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Validate the config file and its source files",
	Example: `  tabfuse config validate
  tabfuse config validate -c configs/staging.yaml`,
	RunE: runConfigValidate,
}

func init() {
	rootCmd.AddCommand(configCmd)
	configCmd.AddCommand(configInitCmd)
	configCmd.AddCommand(configValidateCmd)

	configInitCmd.Flags().IntVar(&configInitSources, "sources", 2, "Number of source blocks to scaffold")
	configInitCmd.Flags().StringVarP(&configInitOutput, "output", "o", constants.DefaultConfigFile, "Where to write the starter config")
	configInitCmd.Flags().BoolVar(&configInitForce, "force", false, "Overwrite an existing file")
}

func runConfigInit(_ *cobra.Command, _ []string) error {
	if err := config.WriteScaffold(configInitOutput, configInitSources, configInitForce); err != nil {
		return err
	}
	fmt.Printf("Wrote starter config to %s\n", configInitOutput)
	fmt.Println("Edit the source paths and match_by columns, then run: tabfuse merge")
	return nil
}

func runConfigValidate(_ *cobra.Command, _ []string) error {
	path := configPath()
	cfg, err := config.Load(path)
	if err != nil {
		return err
	}
	if err := cfg.CheckFiles(); err != nil {
		return err
	}
	fmt.Printf("%s is valid: %d sources, output %s\n",
		path, len(cfg.Sources), outputDescription(cfg))
	return nil
}

// outputDescription names where a valid config would write.
func outputDescription(cfg *config.Config) string {
	path := cfg.Output.Path
	if path == "" {
		path = constants.DefaultOutputFile
	}
	dialect := cfg.Output.Dialect
	if dialect == "" {
		dialect = constants.DefaultDialect
	}
	return fmt.Sprintf("%s (%s dialect)", path, dialect)
}
