package cli

import (
	"fmt"
	"runtime"

	"github.com/spf13/cobra"
	"github.com/yildizm/sentimoji/internal/config"
	"github.com/yildizm/sentimoji/internal/emoji"
	"github.com/yildizm/sentimoji/internal/ui"
)

var (
	cfgFile   string
	verbose   bool
	noColor   bool
	noEmoji   bool
	outputFmt string

	globalConfig *config.Config
)

// NewRootCommand creates the root command
func NewRootCommand(version, commit, date string) *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "sentimoji",
		Short: "Text sentiment as an emoji",
		Long: `sentimoji sends text to a hosted sentiment model and shows the
returned 1-5 star rating as an emoji, from 😢 (worst) to 😄 (best).

Use it as a one-shot command, a terminal form, or a small web page.
The Hugging Face token is read from SENTIMOJI_HF_TOKEN or HF_TOKEN
(a .env file in the working directory is loaded too).`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadGlobalConfig(cfgFile)
			if err != nil {
				return err
			}
			applyGlobalFlags(cmd, cfg)
			return nil
		},
	}

	rootCmd.PersistentFlags().StringVarP(&cfgFile, "config", "c", "", "config file path")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output")
	rootCmd.PersistentFlags().BoolVar(&noColor, "no-color", false, "disable colored output")
	rootCmd.PersistentFlags().BoolVar(&noEmoji, "no-emoji", false, "disable emoji output (useful for Windows terminals)")
	rootCmd.PersistentFlags().StringVarP(&outputFmt, "output", "o", "text", "output format (text, json)")

	rootCmd.AddCommand(newAnalyzeCommand())
	rootCmd.AddCommand(newServeCommand())
	rootCmd.AddCommand(newTUICommand())
	rootCmd.AddCommand(newLegendCommand())
	rootCmd.AddCommand(newConfigCommand())
	rootCmd.AddCommand(newVersionCommand(version, commit, date))

	return rootCmd
}

// applyGlobalFlags merges config file settings into flags the user left alone
func applyGlobalFlags(cmd *cobra.Command, cfg *config.Config) {
	if !flagChanged(cmd, "verbose") && cfg.Output.Verbose {
		verbose = true
	}
	if !flagChanged(cmd, "output") && cfg.Output.DefaultFormat != "" {
		outputFmt = cfg.Output.DefaultFormat
	}
	if !flagChanged(cmd, "no-color") && cfg.Output.ColorMode == "never" {
		noColor = true
	}
	if !flagChanged(cmd, "no-emoji") {
		switch {
		case cfg.Output.NoEmoji:
			noEmoji = true
		case runtime.GOOS == "windows":
			noEmoji = true
		}
	}

	emoji.SetEmojiDisabled(noEmoji)
	ui.SetThemeByName(cfg.UI.Theme)
}

func flagChanged(cmd *cobra.Command, name string) bool {
	f := cmd.Flag(name)
	return f != nil && f.Changed
}

func newVersionCommand(version, commit, date string) *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Show version information",
		Long:  "Display version number, build commit, date, and runtime information",
		PersistentPreRun: func(cmd *cobra.Command, args []string) {},
		Run: func(cmd *cobra.Command, args []string) {
			displayVersion := version
			displayCommit := commit
			displayDate := date

			if version == "dev" || version == "" {
				displayVersion = "development"
			}
			if commit == "none" || commit == "" {
				displayCommit = "local-build"
			}
			if date == "unknown" || date == "" {
				displayDate = "local-build"
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "sentimoji %s (%s) built on %s\n", displayVersion, displayCommit, displayDate)
			fmt.Fprintf(out, "Go version: %s\n", runtime.Version())
			fmt.Fprintf(out, "OS/Arch: %s/%s\n", runtime.GOOS, runtime.GOARCH)
		},
	}
}

// loadGlobalConfig loads the configuration once per process
func loadGlobalConfig(path string) (*config.Config, error) {
	cfg, err := config.NewLoader().LoadConfig(path)
	if err != nil {
		return nil, fmt.Errorf("failed to load configuration: %w", err)
	}
	globalConfig = cfg
	return cfg, nil
}

// GetGlobalConfig returns the loaded configuration, or defaults before loading
func GetGlobalConfig() *config.Config {
	if globalConfig == nil {
		return config.DefaultConfig()
	}
	return globalConfig
}

// Global helpers
func isVerbose() bool {
	return verbose
}

func getOutputFormat() string {
	return outputFmt
}

func isColorEnabled() bool {
	if noColor || ui.IsColorDisabled() {
		return false
	}
	return GetGlobalConfig().Output.ColorMode != "never"
}
