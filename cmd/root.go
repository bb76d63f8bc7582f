// Package cmd implements the typeahead command line interface: an
// interactive suggestion prompt and a one-shot fetch mode.
package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"gopkg.in/yaml.v3"

	"github.com/oakwood-commons/typeahead/internal/config"
	"github.com/oakwood-commons/typeahead/internal/fragment"
	"github.com/oakwood-commons/typeahead/internal/ui"
	"github.com/oakwood-commons/typeahead/internal/widget"
	"github.com/oakwood-commons/typeahead/pkg/logger"
	"github.com/oakwood-commons/typeahead/pkg/settings"
)

var (
	urlFlag         string
	queryParam      string
	minLength       int
	delayMS         int
	requireMatch    bool
	revealOnClick   bool
	revealOnFocus   bool
	revealOnKeyDown bool
	submitOnEnter   bool
	configFile      string
	oneShotQuery    string
	output          string
	noColor         bool
	debug           bool
	logLevel        int8
	widthFlag       int
	heightFlag      int

	rootCtx = context.Background()
)

var rootCmd = &cobra.Command{
	Use:   settings.CliBinaryName,
	Short: "Interactive type-ahead suggestion prompt",
	Long: `typeahead turns a suggestion endpoint into an interactive prompt:
typed input is debounced into queries, the endpoint's markup response is
parsed into options, and arrow keys, Tab, and Enter navigate and commit.

With --query it runs one fetch non-interactively and prints the parsed
options in the chosen output format.`,
	Example: "\n  typeahead --url https://example.com/complete\n  typeahead --url https://example.com/complete --query ada -o json\n  typeahead --config-file prompt.yaml\n",
	Args:    cobra.NoArgs,
	PersistentPreRun: func(cmd *cobra.Command, _ []string) {
		level := logLevel
		if debug {
			level = -1
		}
		lgr := logger.Get(level)
		lgr = logger.WithValues(lgr, "command", cmd.Name())
		rootCtx = logger.WithLogger(context.Background(), lgr)
	},
	RunE: func(cmd *cobra.Command, _ []string) error {
		cfg, err := resolveSettings(cmd)
		if err != nil {
			return err
		}

		if !cfg.FetchEnabled() {
			return fmt.Errorf("no suggestion endpoint configured, pass --url or set url in --config-file")
		}

		w := widget.New(cfg, widget.WithLogger(logger.FromContext(rootCtx)))
		defer w.Destroy()

		if oneShotQuery != "" {
			return runOneShot(rootCtx, cmd, w, oneShotQuery)
		}

		cmd.SilenceUsage = true
		return ui.RunModel(w, widthFlag, heightFlag, noColor)
	},
}

// resolveSettings layers the configuration: file values over defaults, then
// explicitly set flags over the file.
func resolveSettings(cmd *cobra.Command) (config.Settings, error) {
	cfg := config.DefaultSettings()
	if configFile != "" {
		loaded, err := config.Load(configFile)
		if err != nil {
			return config.Settings{}, err
		}
		cfg = loaded
	}

	flagOverrides := map[string]func(){
		"url":               func() { cfg.URL = urlFlag },
		"query-param":       func() { cfg.QueryParam = queryParam },
		"min-length":        func() { cfg.MinLength = minLength },
		"delay":             func() { cfg.DelayMS = delayMS },
		"require-match":     func() { cfg.RequireMatch = requireMatch },
		"reveal-on-click":   func() { cfg.RevealOnClick = revealOnClick },
		"reveal-on-focus":   func() { cfg.RevealOnFocus = revealOnFocus },
		"reveal-on-keydown": func() { cfg.RevealOnKeyDown = revealOnKeyDown },
		"submit-on-enter":   func() { cfg.SubmitOnEnter = submitOnEnter },
	}
	for name, apply := range flagOverrides {
		if flagChanged(cmd.Flags(), name) {
			apply()
		}
	}
	return cfg.Normalize(), nil
}

func flagChanged(fs *pflag.FlagSet, name string) bool {
	f := fs.Lookup(name)
	return f != nil && f.Changed
}

// runOneShot fetches suggestions for a fixed query and prints the parsed
// options.
func runOneShot(ctx context.Context, cmd *cobra.Command, w *widget.Widget, query string) error {
	w.OnInput(query)
	if err := w.Refresh(ctx); err != nil {
		return fmt.Errorf("fetch suggestions for %q: %w", query, err)
	}
	return printOptions(cmd, w.State().Options)
}

func printOptions(cmd *cobra.Command, options []fragment.Option) error {
	out := cmd.OutOrStdout()
	switch strings.ToLower(output) {
	case "", "text":
		tw := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
		for _, opt := range options {
			marker := ""
			if opt.Disabled {
				marker = "(disabled)"
			}
			fmt.Fprintf(tw, "%s\t%s\t%s\n", opt.Label, opt.Value, marker)
		}
		return tw.Flush()
	case "json":
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		return enc.Encode(options)
	case "yaml":
		enc := yaml.NewEncoder(out)
		defer enc.Close()
		return enc.Encode(options)
	default:
		return fmt.Errorf("unknown output format %q (expected text, json, or yaml)", output)
	}
}

func init() {
	rootCmd.Flags().StringVarP(&urlFlag, "url", "u", "", "suggestion endpoint URL")
	rootCmd.Flags().StringVar(&queryParam, "query-param", config.DefaultQueryParam, "query-string parameter carrying the typed text")
	rootCmd.Flags().IntVar(&minLength, "min-length", config.DefaultMinLength, "minimum query length (in runes) that triggers a fetch")
	rootCmd.Flags().IntVar(&delayMS, "delay", config.DefaultDelayMS, "debounce delay in milliseconds")
	rootCmd.Flags().BoolVar(&requireMatch, "require-match", true, "only fetched options may be committed")
	rootCmd.Flags().BoolVar(&revealOnClick, "reveal-on-click", false, "fetch suggestions when the input is clicked")
	rootCmd.Flags().BoolVar(&revealOnFocus, "reveal-on-focus", false, "fetch suggestions when the input gains focus")
	rootCmd.Flags().BoolVar(&revealOnKeyDown, "reveal-on-keydown", true, "fetch suggestions on ArrowDown while the list is closed")
	rootCmd.Flags().BoolVar(&submitOnEnter, "submit-on-enter", false, "let Enter submit after committing instead of being suppressed")
	rootCmd.Flags().StringVar(&configFile, "config-file", "", "path to a YAML or TOML settings file")
	rootCmd.Flags().StringVarP(&oneShotQuery, "query", "q", "", "run one fetch for this query and print the options")
	rootCmd.Flags().StringVarP(&output, "output", "o", "text", "one-shot output format: text|json|yaml")
	rootCmd.Flags().BoolVar(&noColor, "no-color", false, "disable color output")
	rootCmd.Flags().BoolVar(&debug, "debug", false, "enable debug logging")
	rootCmd.Flags().Int8Var(&logLevel, "log-level", 0, "zap log level (-1 debug, 0 info, 1 warn)")
	rootCmd.Flags().IntVar(&widthFlag, "width", 0, "terminal width override for the interactive prompt")
	rootCmd.Flags().IntVar(&heightFlag, "height", 0, "terminal height override for the interactive prompt")

	rootCmd.Version = fmt.Sprintf("%s (commit %s, built %s)",
		settings.VersionInformation.BuildVersion,
		settings.VersionInformation.Commit,
		settings.VersionInformation.BuildTime)
	rootCmd.SetVersionTemplate("{{.Version}}\n")
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}
