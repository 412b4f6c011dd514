// Package cli provides the Cobra command structure for mdtty.
package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"golang.org/x/term"

	"github.com/yaklabco/mdtty/internal/configloader"
	"github.com/yaklabco/mdtty/internal/logging"
	"github.com/yaklabco/mdtty/internal/ui/pretty"
	"github.com/yaklabco/mdtty/pkg/output"
	"github.com/yaklabco/mdtty/pkg/pipeline"
	"github.com/yaklabco/mdtty/pkg/render"
	"github.com/yaklabco/mdtty/pkg/resources"
)

// PagerInvocation is the binary name that turns pagination on by default.
const PagerInvocation = "mdless"

// BuildInfo holds build-time version information.
type BuildInfo struct {
	Version string
	Commit  string
	Date    string
}

type viewFlags struct {
	noColour    bool
	columns     int
	localOnly   bool
	failFast    bool
	detectOnly  bool
	ansiOnly    bool
	lineNumbers bool
	stats       bool
	paginate    bool
	noPager     bool
	completions string
}

// NewRootCommand creates the mdtty root command.
//
// invocation is the name the binary was called as; "mdless" flips the
// pagination default on, everything else leaves it off. Both invocations
// expose identical flags.
func NewRootCommand(info BuildInfo, invocation string) *cobra.Command {
	var debug bool
	var configPath string
	flags := &viewFlags{}

	name := filepath.Base(invocation)
	if name != PagerInvocation {
		name = "mdtty"
	}

	rootCmd := &cobra.Command{
		Use:     name + " [files...]",
		Short:   "Render markdown on the terminal",
		Version: fmt.Sprintf("%s (commit %s, built %s)", info.Version, info.Commit, info.Date),
		Long: `mdtty renders markdown files as styled text on the terminal.

Files are read in order; - reads from standard input. Install or link the
binary as mdless to paginate output by default.`,
		Args: cobra.ArbitraryArgs,
		PersistentPreRun: func(_ *cobra.Command, _ []string) {
			if debug {
				logging.SetLevel("debug")
			}
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return runView(cmd, args, info, flags, configPath, name == PagerInvocation)
		},
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	rootCmd.SetFlagErrorFunc(func(_ *cobra.Command, err error) error {
		return fmt.Errorf("%w: %s", ErrInvalidUsage, err)
	})

	rootCmd.PersistentFlags().BoolVar(&debug, "debug", false, "enable debug logging")
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "path to config file")

	addViewFlags(rootCmd, flags)

	return rootCmd
}

func addViewFlags(cmd *cobra.Command, flags *viewFlags) {
	cmd.Flags().BoolVarP(&flags.noColour, "no-colour", "c", false, "disable all colours and other styles")
	cmd.Flags().IntVar(&flags.columns, "columns", 0, "maximum number of columns to use for output (0 = terminal width)")
	cmd.Flags().BoolVarP(&flags.localOnly, "local", "l", false, "do not load remote resources like images")
	cmd.Flags().BoolVar(&flags.failFast, "fail", false, "exit immediately if any error occurs processing an input file")
	cmd.Flags().BoolVar(&flags.detectOnly, "detect-terminal", false, "print detected terminal name and exit")
	cmd.Flags().BoolVar(&flags.ansiOnly, "ansi", false, "skip terminal detection and only use ANSI formatting")
	cmd.Flags().BoolVar(&flags.lineNumbers, "line-numbers", false, "show line numbers in the output")
	cmd.Flags().BoolVar(&flags.stats, "stats", false, "display statistics about the document")
	cmd.Flags().BoolVarP(&flags.paginate, "paginate", "p", false, "paginate the output with a pager like less (default for mdless)")
	cmd.Flags().BoolVarP(&flags.noPager, "no-pager", "P", false, "do not paginate output (default for mdtty)")
	cmd.Flags().StringVar(&flags.completions, "completions", "", "generate completions for a shell (bash, zsh, fish, powershell) and exit")

	// --no-color and friends all mean --no-colour.
	cmd.Flags().SetNormalizeFunc(func(_ *pflag.FlagSet, name string) pflag.NormalizedName {
		switch name {
		case "no-color", "nocolor", "nocolour":
			name = "no-colour"
		}
		return pflag.NormalizedName(name)
	})

	cmd.MarkFlagsMutuallyExclusive("ansi", "no-colour")
	cmd.MarkFlagsMutuallyExclusive("paginate", "no-pager")
}

func runView(cmd *cobra.Command, args []string, info BuildInfo, flags *viewFlags,
	configPath string, paginateDefault bool,
) error {
	logger := logging.Default()

	if flags.completions != "" {
		return generateCompletions(cmd, flags.completions)
	}

	if flags.detectOnly {
		fmt.Fprintln(cmd.OutOrStdout(), DetectTerminal())
		return nil
	}

	workDir, err := os.Getwd()
	if err != nil {
		return fmt.Errorf("get working directory: %w", err)
	}

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	loadResult, err := configloader.Load(ctx, configloader.LoadOptions{
		WorkingDir:   workDir,
		ExplicitPath: configPath,
	})
	if err != nil {
		return fmt.Errorf("load configuration: %w", err)
	}
	if len(loadResult.LoadedFrom) > 0 {
		logger.Debug("loaded configuration from", logging.FieldFiles, loadResult.LoadedFrom)
	}

	cfg := applyFlagOverrides(cmd, loadResult.Config, flags)

	filenames := args
	if len(filenames) == 0 {
		filenames = []string{"-"}
	}

	paginate := resolvePaginate(cmd, flags, paginateDefault)

	settings := render.Settings{
		Columns:      resolveColumns(cfg.Columns),
		ColorEnabled: resolveColor(cfg.NoColour, flags.ansiOnly),
	}

	access := resources.AccessFor(cfg.LocalOnly)
	resolver := resources.ForAccess(access, resources.DefaultReadLimit, "mdtty/"+info.Version)

	logger.Debug("starting run",
		logging.FieldFiles, filenames,
		logging.FieldColumns, settings.Columns,
		logging.FieldLocalOnly, cfg.LocalOnly,
		logging.FieldPaginate, paginate,
	)

	sink, err := resolveSink(paginate, cfg.Pager)
	if err != nil {
		return err
	}

	p := pipeline.New(render.NewTerminalRenderer(), resolver, settings)

	opts := pipeline.Options{
		ShowLineNumbers: cfg.LineNumbers,
		ShowStats:       cfg.Stats,
	}

	// Files run strictly in order: one file is fully flushed before the
	// next begins, so outputs never interleave.
	var failed int
	for _, filename := range filenames {
		if err := p.ProcessFile(ctx, filename, sink.Writer(), opts); err != nil {
			failed++
			if flags.failFast {
				_ = sink.Close()
				return err
			}
		}
	}

	if err := sink.Close(); err != nil {
		return err
	}

	if failed > 0 {
		return ErrProcessingFailed
	}
	return nil
}

// applyFlagOverrides layers explicitly set CLI flags over file config.
func applyFlagOverrides(cmd *cobra.Command, cfg configloader.Config, flags *viewFlags) configloader.Config {
	if cmd.Flags().Changed("no-colour") {
		cfg.NoColour = flags.noColour
	}
	if cmd.Flags().Changed("columns") {
		cfg.Columns = flags.columns
	}
	if cmd.Flags().Changed("local") {
		cfg.LocalOnly = flags.localOnly
	}
	if cmd.Flags().Changed("line-numbers") {
		cfg.LineNumbers = flags.lineNumbers
	}
	if cmd.Flags().Changed("stats") {
		cfg.Stats = flags.stats
	}
	return cfg
}

// resolvePaginate derives the pagination decision from the two mutually
// exclusive flags, defaulting per invocation name.
func resolvePaginate(cmd *cobra.Command, flags *viewFlags, paginateDefault bool) bool {
	switch {
	case cmd.Flags().Changed("paginate"):
		return flags.paginate
	case cmd.Flags().Changed("no-pager"):
		return !flags.noPager
	default:
		return paginateDefault
	}
}

// resolveColumns falls back to the terminal width, then 80.
func resolveColumns(columns int) int {
	if columns > 0 {
		return columns
	}
	fd := int(os.Stdout.Fd())
	if term.IsTerminal(fd) {
		if w, _, err := term.GetSize(fd); err == nil && w > 0 {
			return w
		}
	}
	return 80
}

// resolveColor maps the styling flags onto a color decision for stdout.
func resolveColor(noColour, ansiOnly bool) bool {
	switch {
	case noColour:
		return false
	case ansiOnly:
		return true
	default:
		return pretty.IsColorEnabled("auto", os.Stdout)
	}
}

// resolveSink chooses between direct stdout and a pager subprocess.
func resolveSink(paginate bool, pagerCommand string) (*output.Output, error) {
	if !paginate {
		return output.Stdout(), nil
	}
	sink, err := output.Pager(pagerCommand)
	if err != nil {
		return nil, fmt.Errorf("start pager: %w", err)
	}
	return sink, nil
}

// generateCompletions writes shell completions to stdout.
func generateCompletions(cmd *cobra.Command, shell string) error {
	var w io.Writer = cmd.OutOrStdout()
	switch shell {
	case "bash":
		return cmd.Root().GenBashCompletionV2(w, true)
	case "zsh":
		return cmd.Root().GenZshCompletion(w)
	case "fish":
		return cmd.Root().GenFishCompletion(w, true)
	case "powershell":
		return cmd.Root().GenPowerShellCompletionWithDesc(w)
	default:
		return fmt.Errorf("%w: unsupported shell %q (want bash, zsh, fish, or powershell)", ErrInvalidUsage, shell)
	}
}
