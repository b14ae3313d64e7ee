package main

import (
	"fmt"
	"io"
	"os"

	"fotosort/internal/catalog"
	"fotosort/internal/config"
	"fotosort/internal/errors"
	"fotosort/internal/gui"
	"fotosort/internal/log"
	"fotosort/internal/transfer"
	"fotosort/internal/triage"
	"fotosort/internal/tui"
	"fotosort/internal/watch"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"
	"golang.org/x/term"
)

type options struct {
	cfgFile string
	move    bool
	dest    string
	tui     bool
	watch   bool
	debug   bool
}

var (
	titleStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("213"))
	doneStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("114"))
)

// NewRootCmd creates the root command
func NewRootCmd() *cobra.Command {
	return newRootCmd(&options{})
}

func newRootCmd(opts *options) *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "fotosort [flags] FILE...",
		Short: "Sort images into five folders from the keyboard",
		Long: titleStyle.Render("fotosort") + ` shows the given images one at a time.

  →/←        next / previous image (wraps around)
  R / L      rotate the preview clockwise / counter-clockwise
  1-5        send the image to slot folder fs1..fs5
  Shift+1-5  force a move, Ctrl+1-5 force a copy
  Del        delete the image after a y/n confirmation
  Q / Esc    quit

In the terminal front-end (--tui) use alt+1-5 to move and !@#$% to copy.`,
		Args:          cobra.MinimumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		Version:       version,
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(cmd, opts, args)
		},
	}

	rootCmd.Flags().StringVar(&opts.cfgFile, "config", "", "config file (default is $HOME/.config/fotosort/config.yaml)")
	rootCmd.Flags().BoolVarP(&opts.move, "move", "m", false, "move by default instead of copying")
	rootCmd.Flags().StringVar(&opts.dest, "dest", "", "folder that holds the slot folders")
	rootCmd.Flags().BoolVar(&opts.tui, "tui", false, "use the terminal front-end")
	rootCmd.Flags().BoolVar(&opts.watch, "watch", false, "drop images that other programs remove")
	rootCmd.Flags().BoolVar(&opts.debug, "debug", false, "enable debug logging")

	rootCmd.AddCommand(newVersionCmd())
	return rootCmd
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the version",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "fotosort %s\n", version)
		},
	}
}

// loadConfig reads the config file and applies the command line overrides.
func loadConfig(cmd *cobra.Command, opts *options) (*config.Config, error) {
	var cfg *config.Config
	var err error
	if opts.cfgFile != "" {
		cfg, err = config.LoadConfigFile(opts.cfgFile)
	} else {
		cfg, err = config.LoadConfig()
	}
	if err != nil {
		return nil, err
	}

	if cmd.Flags().Changed("move") {
		cfg.Settings.DefaultMode = config.ModeCopy
		if opts.move {
			cfg.Settings.DefaultMode = config.ModeMove
		}
	}
	if opts.dest != "" {
		cfg.Settings.DestinationRoot = opts.dest
	}
	if cmd.Flags().Changed("watch") {
		cfg.Settings.Watch = opts.watch
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return cfg, nil
}

// newSession catalogs the arguments and builds the session over them.
func newSession(cfg *config.Config, args []string) (*triage.Session, []string, error) {
	filter, err := catalog.NewFilter(cfg.Filter.Include, cfg.Filter.Exclude)
	if err != nil {
		return nil, nil, err
	}
	res, err := catalog.Load(args, filter)
	if err != nil {
		return nil, nil, err
	}
	if len(res.Dropped) > 0 {
		log.Debugf("Skipped %d of %d arguments", len(res.Dropped), len(args))
	}

	mode := triage.Copy
	if cfg.MoveByDefault() {
		mode = triage.Move
	}
	paths := res.Paths()
	return triage.New(paths, mode, transfer.New(cfg)), paths, nil
}

func run(cmd *cobra.Command, opts *options, args []string) error {
	log.SetDebug(opts.debug)

	cfg, err := loadConfig(cmd, opts)
	if err != nil {
		return err
	}

	session, paths, err := newSession(cfg, args)
	if err != nil {
		return err
	}

	useTUI := opts.tui || !gui.Available()
	if useTUI && !term.IsTerminal(int(os.Stdout.Fd())) {
		return errors.New("the terminal front-end needs an interactive terminal")
	}

	var vanished <-chan watch.Vanished
	if cfg.Settings.Watch {
		w, err := watch.New(paths)
		if err != nil {
			log.Warnf("Not watching for removed images: %v", err)
		} else if err := w.Start(); err != nil {
			log.Warnf("Not watching for removed images: %v", err)
		} else {
			defer w.Stop()
			vanished = w.Events()
		}
	}

	if useTUI {
		err = runTUI(session, cfg.Theme, vanished)
	} else {
		err = gui.Run(session, vanished)
	}
	if err != nil {
		return err
	}

	reportExit(cmd.OutOrStdout(), session)
	return nil
}

// runTUI keeps log lines off the screen while the terminal front-end draws.
func runTUI(session *triage.Session, theme config.Theme, vanished <-chan watch.Vanished) error {
	logFile, err := os.CreateTemp("", "fotosort-*.log")
	if err == nil {
		log.SetOutput(logFile)
		defer func() {
			log.SetOutput(os.Stdout)
			logFile.Close()
		}()
	}
	return tui.Run(session, theme, vanished)
}

func reportExit(out io.Writer, session *triage.Session) {
	switch session.ExitReason() {
	case triage.AllProcessed:
		fmt.Fprintln(out, doneStyle.Render("All images processed."))
	default:
		fmt.Fprintf(out, "Quit with %d image(s) left.\n", session.Len())
	}
}
