package cli

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"github.com/yildizm/sentimoji/internal/config"
	"github.com/yildizm/sentimoji/internal/emoji"
	"gopkg.in/yaml.v3"
)

// newConfigCommand creates the config command with subcommands
func newConfigCommand() *cobra.Command {
	configCmd := &cobra.Command{
		Use:   "config",
		Short: "Manage sentimoji configuration",
		Long: `Manage sentimoji configuration files and settings.

The config command provides subcommands for initializing, viewing,
validating, and locating configuration files.`,
		// Subcommands load configuration themselves so that validate can report failures
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			emoji.SetEmojiDisabled(noEmoji)
		},
	}

	configCmd.AddCommand(newConfigInitCommand())
	configCmd.AddCommand(newConfigShowCommand())
	configCmd.AddCommand(newConfigValidateCommand())
	configCmd.AddCommand(newConfigPathCommand())

	return configCmd
}

// newConfigInitCommand creates the config init subcommand
func newConfigInitCommand() *cobra.Command {
	var (
		outputPath string
		minimal    bool
		force      bool
	)

	initCmd := &cobra.Command{
		Use:   "init",
		Short: "Initialize a new configuration file",
		Long: `Initialize a new sentimoji configuration file with default values.

By default, creates a full configuration file with all options and comments.
Use --minimal for a compact configuration with only essential settings.`,
		Example: `  # Create full config in current directory
  sentimoji config init

  # Create minimal config
  sentimoji config init --minimal

  # Create config at specific path
  sentimoji config init --output ~/.config/sentimoji/config.yaml`,
		RunE: func(cmd *cobra.Command, args []string) error {
			if outputPath == "" {
				outputPath = ".sentimoji.yaml"
			}

			if !force && fileExists(outputPath) {
				return fmt.Errorf("config file already exists at %s (use --force to overwrite)", outputPath)
			}

			dir := filepath.Dir(outputPath)
			if dir != "." && dir != "/" {
				if err := os.MkdirAll(dir, 0o750); err != nil {
					return fmt.Errorf("failed to create directory %s: %w", dir, err)
				}
			}

			content := config.SampleConfig()
			if minimal {
				content = config.MinimalSampleConfig()
			}

			if err := os.WriteFile(outputPath, []byte(content), 0o600); err != nil {
				return fmt.Errorf("failed to write config file: %w", err)
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "%s Configuration file created at: %s\n", statusSymbol(true), outputPath)
			fmt.Fprintf(out, "Set %s (or add it to .env) to enable analysis\n", config.EnvToken)

			return nil
		},
	}

	initCmd.Flags().StringVarP(&outputPath, "output", "o", "", "output path for config file (default: .sentimoji.yaml)")
	initCmd.Flags().BoolVarP(&minimal, "minimal", "m", false, "create minimal configuration")
	initCmd.Flags().BoolVarP(&force, "force", "f", false, "overwrite existing config file")

	return initCmd
}

// newConfigShowCommand creates the config show subcommand
func newConfigShowCommand() *cobra.Command {
	var format string

	showCmd := &cobra.Command{
		Use:   "show",
		Short: "Display current configuration",
		Long: `Display the effective configuration after loading defaults, config
files, .env and environment overrides. The API key is masked.`,
		Example: `  # Show config in YAML format
  sentimoji config show

  # Show config in JSON format
  sentimoji config show --format json`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.NewLoader().LoadConfig(cfgFile)
			if err != nil {
				return fmt.Errorf("failed to load configuration: %w", err)
			}

			redacted := cfg.Redacted()
			out := cmd.OutOrStdout()

			switch format {
			case "json":
				data, err := json.MarshalIndent(redacted, "", "  ")
				if err != nil {
					return fmt.Errorf("failed to marshal config to JSON: %w", err)
				}
				fmt.Fprintln(out, string(data))
			case "yaml":
				data, err := yaml.Marshal(redacted)
				if err != nil {
					return fmt.Errorf("failed to marshal config to YAML: %w", err)
				}
				fmt.Fprint(out, string(data))
			default:
				return fmt.Errorf("unsupported format: %s (use json or yaml)", format)
			}

			return nil
		},
	}

	showCmd.Flags().StringVarP(&format, "format", "f", "yaml", "output format (yaml, json)")

	return showCmd
}

// newConfigValidateCommand creates the config validate subcommand
func newConfigValidateCommand() *cobra.Command {
	validateCmd := &cobra.Command{
		Use:   "validate",
		Short: "Validate configuration file",
		Long: `Validate the sentimoji configuration for syntax and semantic errors.

Checks YAML syntax, enum values, URLs and durations. A missing API key
is reported as a warning since it only fails at analysis time.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()

			cfg, err := config.NewLoader().LoadConfig(cfgFile)
			if err != nil {
				fmt.Fprintf(out, "%s Configuration validation failed:\n", statusSymbol(false))
				fmt.Fprintf(out, "   %v\n", err)
				return err
			}

			fmt.Fprintf(out, "%s Configuration is valid\n", statusSymbol(true))
			fmt.Fprintf(out, "   Version: %s\n", cfg.Version)
			fmt.Fprintf(out, "   AI Provider: %s\n", cfg.AI.Provider)
			fmt.Fprintf(out, "   Model: %s\n", cfg.AI.Model)
			fmt.Fprintf(out, "   Server: %s\n", cfg.Server.Addr)
			fmt.Fprintf(out, "   Output Format: %s\n", cfg.Output.DefaultFormat)
			if !cfg.AI.HasAPIKey() {
				fmt.Fprintf(out, "   Warning: no API key (set %s or %s)\n", config.EnvToken, config.EnvTokenFallback)
			}

			return nil
		},
	}

	return validateCmd
}

// newConfigPathCommand creates the config path subcommand
func newConfigPathCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "path",
		Short: "Show configuration file search paths",
		Long: `Display the list of paths sentimoji searches for configuration files.

Shows the search order and indicates which files exist.`,
		Run: func(cmd *cobra.Command, args []string) {
			out := cmd.OutOrStdout()
			fmt.Fprintln(out, "Configuration file search paths (in priority order):")
			fmt.Fprintln(out)

			priority := []string{"Highest", "Medium", "Lowest"}
			for i, path := range config.GetConfigPaths() {
				exists := " (not found)"
				if fileExists(path) {
					exists = " (exists)"
				}

				fmt.Fprintf(out, "  %d. %s%s\n", i+1, path, exists)
				if i < len(priority) {
					fmt.Fprintf(out, "     Priority: %s\n", priority[i])
				}
			}
			fmt.Fprintln(out)

			if currentConfig, found := config.FindConfigFile(); found {
				fmt.Fprintf(out, "Current config file: %s\n", currentConfig)
			} else {
				fmt.Fprintln(out, "No config file found, using defaults")
			}

			fmt.Fprintln(out)
			fmt.Fprintln(out, "Environment variables with SENTIMOJI_ prefix override file settings;")
			fmt.Fprintf(out, "the API key comes from %s or %s (.env is loaded too)\n", config.EnvToken, config.EnvTokenFallback)
		},
	}
}

func statusSymbol(ok bool) string {
	if ok {
		return GetEmoji("success")
	}
	return GetEmoji("error")
}

// Helper function to check if file exists
func fileExists(filename string) bool {
	_, err := os.Stat(filename)
	return err == nil
}
