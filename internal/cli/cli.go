// Package cli implements the polaroid command-line interface.
package cli

import (
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/matzehuels/polaroid/internal/config"
	"github.com/matzehuels/polaroid/pkg/buildinfo"
	"github.com/matzehuels/polaroid/pkg/compose"
	"github.com/matzehuels/polaroid/pkg/fonts"
	"github.com/matzehuels/polaroid/pkg/pipeline"
)

// =============================================================================
// Constants
// =============================================================================

const (
	// appName is the application name used for directories and display.
	appName = "polaroid"

	// watchDebounce collapses the burst of events editors emit on save.
	watchDebounce = 250 * time.Millisecond
)

// Log levels exported for use in main.go.
const (
	LogDebug = log.DebugLevel
	LogInfo  = log.InfoLevel
)

// =============================================================================
// CLI - Central CLI State
// =============================================================================

// CLI holds shared state for all commands.
type CLI struct {
	Logger *log.Logger

	// ConfigPath overrides the default configuration file location.
	ConfigPath string
}

// New creates a new CLI instance with a default logger.
func New(w io.Writer, level log.Level) *CLI {
	return &CLI{Logger: newLogger(w, level)}
}

// SetLogLevel updates the logger's level.
func (c *CLI) SetLogLevel(level log.Level) {
	c.Logger.SetLevel(level)
}

// RootCommand creates the root cobra command with all subcommands registered.
func (c *CLI) RootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:   appName,
		Short: "Polaroid frames a photo with its camera settings",
		Long: `Polaroid composes a 1080x1920 portrait PNG: the photo on a white or black
paper frame with a caption built from its EXIF metadata (camera brand, body
and lens, exposure settings, photographer and shoot details).`,
		Version:      buildinfo.Version,
		SilenceUsage: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			cmd.SetContext(withLogger(cmd.Context(), c.Logger))
		},
	}

	root.SetVersionTemplate(buildinfo.Template())
	root.PersistentFlags().StringVar(&c.ConfigPath, "config", "", "config file (default $XDG_CONFIG_HOME/polaroid/config.toml)")

	root.AddCommand(c.exportCommand())
	root.AddCommand(c.inspectCommand())
	root.AddCommand(c.configCommand())
	root.AddCommand(c.completionCommand())

	return root
}

// =============================================================================
// Runner Factory
// =============================================================================

// loadConfig reads the config file selected by --config.
func (c *CLI) loadConfig() (config.Config, error) {
	return config.Load(c.ConfigPath)
}

// runnerOpts holds the flags shared by commands that build a session.
type runnerOpts struct {
	background  string
	font        string
	fontFile    string
	safeGutters bool
	hide        []string
	set         []string
	from        string
	debug       bool
	timeout     time.Duration
	logoDir     string
}

// register adds the session flags to cmd.
func (o *runnerOpts) register(cmd *cobra.Command) {
	f := cmd.Flags()
	f.StringVar(&o.background, "background", "", "frame colour: white (default), black")
	f.StringVar(&o.font, "font", "", "font family: "+familyList())
	f.StringVar(&o.fontFile, "font-file", "", "TrueType/OpenType file to use instead of --font")
	f.BoolVar(&o.safeGutters, "safe-gutters", false, "leave room for story overlays at the top and bottom")
	f.StringSliceVar(&o.hide, "hide", nil, "fields to hide (comma-separated)")
	f.StringArrayVar(&o.set, "set", nil, "override a field: key=value (repeatable)")
	f.StringVar(&o.from, "from", "", "apply overrides, hidden fields and style from a JSON document")
	f.BoolVar(&o.debug, "debug", false, "render through the inline preview and log its caption")
	f.DurationVar(&o.timeout, "timeout", 0, "per-image load timeout (default 10s)")
	f.StringVar(&o.logoDir, "logo-dir", "", "directory of brand logos named <brand>.png")

	_ = cmd.RegisterFlagCompletionFunc("hide", completeFields)
	_ = cmd.RegisterFlagCompletionFunc("set", completeAssignments)
	_ = cmd.RegisterFlagCompletionFunc("font", completeFonts)
	_ = cmd.RegisterFlagCompletionFunc("background", cobra.FixedCompletions(
		[]string{string(compose.White), string(compose.Black)}, cobra.ShellCompDirectiveNoFileComp))
}

// pipelineOptions merges cfg with the flags that were set on cmd.
// Flags win over the config file.
func (o *runnerOpts) pipelineOptions(cmd *cobra.Command, cfg config.Config, logger *log.Logger) (pipeline.Options, error) {
	timeout, err := cfg.ImageTimeout()
	if err != nil {
		return pipeline.Options{}, err
	}
	opts := pipeline.Options{
		Style:        cfg.Style,
		Hidden:       append([]string(nil), cfg.Display.Hidden...),
		Overrides:    cfg.Overrides,
		Debug:        o.debug,
		ImageTimeout: timeout,
		LogoDir:      cfg.Export.LogoDir,
		Logger:       logger,
	}

	flags := cmd.Flags()
	if flags.Changed("background") {
		bg, err := compose.ParseBackground(o.background)
		if err != nil {
			return pipeline.Options{}, err
		}
		opts.Style.Background = bg
	}
	if flags.Changed("font") {
		family, err := fonts.Parse(o.font)
		if err != nil {
			return pipeline.Options{}, err
		}
		opts.Style.Font = family
	}
	if flags.Changed("font-file") {
		opts.Style.FontFile = o.fontFile
	}
	if flags.Changed("safe-gutters") {
		opts.Style.SafeGutters = o.safeGutters
	}
	if flags.Changed("timeout") {
		opts.ImageTimeout = o.timeout
	}
	if flags.Changed("logo-dir") {
		opts.LogoDir = o.logoDir
	}
	opts.Hidden = append(opts.Hidden, o.hide...)
	return opts, nil
}

// newRunner creates a session for photo and applies --from and --set.
func (c *CLI) newRunner(cmd *cobra.Command, o *runnerOpts, photo string) (*pipeline.Runner, error) {
	cfg, err := c.loadConfig()
	if err != nil {
		return nil, err
	}
	opts, err := o.pipelineOptions(cmd, cfg, c.Logger)
	if err != nil {
		return nil, err
	}
	runner, err := pipeline.NewRunner(opts)
	if err != nil {
		return nil, err
	}
	if err := o.apply(cmd, runner, photo); err != nil {
		runner.Close()
		return nil, err
	}
	return runner, nil
}

// apply selects photo, then layers the JSON document and --set overrides on top.
func (o *runnerOpts) apply(cmd *cobra.Command, runner *pipeline.Runner, photo string) error {
	if _, err := runner.Select(cmd.Context(), photo); err != nil {
		return err
	}
	if o.from != "" {
		doc, err := importDocument(o.from)
		if err != nil {
			return err
		}
		if err := runner.Apply(doc); err != nil {
			return err
		}
	}
	for _, kv := range o.set {
		if err := runner.Set(kv); err != nil {
			return err
		}
	}
	return nil
}

// =============================================================================
// Paths
// =============================================================================

// outputPath returns where an export into dir lands.
func outputPath(dir, name string) string {
	if dir == "" {
		dir = "."
	}
	return filepath.Join(dir, name)
}

// fileExists reports whether path names an existing regular file.
func fileExists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && info.Mode().IsRegular()
}
