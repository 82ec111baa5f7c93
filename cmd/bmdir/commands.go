package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/nikbrunner/bmdir/internal/culler"
	"github.com/nikbrunner/bmdir/internal/exporter"
	"github.com/nikbrunner/bmdir/internal/handoff"
	"github.com/nikbrunner/bmdir/internal/importer"
	"github.com/nikbrunner/bmdir/internal/logger"
	"github.com/nikbrunner/bmdir/internal/model"
	"github.com/nikbrunner/bmdir/internal/picker"
	"github.com/nikbrunner/bmdir/internal/preview"
	"github.com/nikbrunner/bmdir/internal/search"
	"github.com/nikbrunner/bmdir/internal/storage"
	"github.com/nikbrunner/bmdir/internal/tui"
)

// errNotTerminal is returned when the picker is started without a terminal.
var errNotTerminal = errors.New("stdin is not a terminal")

// stdinIsTerminal is replaced in tests.
var stdinIsTerminal = func() bool {
	return term.IsTerminal(int(os.Stdin.Fd()))
}

// runProgram runs the bubbletea program and returns the final model.
// Replaced in tests.
var runProgram = func(app tui.App) (tea.Model, error) {
	return tea.NewProgram(app, tea.WithAltScreen()).Run()
}

// options holds the global command line flags.
type options struct {
	bookmarks  string
	out        string
	configPath string
	match      string
	debug      bool
}

func newRootCmd() *cobra.Command {
	opts := &options{}

	root := &cobra.Command{
		Use:   "bmdir",
		Short: "Pick a bookmarked directory and cd into it",
		Long: `bmdir - bookmark picker for directories

Filter the bookmark list by typing, press Esc to move with j/k,
and Enter to pick. The chosen path is written to a result file
that the shell function from "bmdir setup" reads to cd.`,
		Example:       "  eval \"$(bmdir setup bash)\"\n  bmdir add ~/code/project\n  bmdir --match fuzzy",
		Args:          cobra.NoArgs,
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runPicker(cmd, opts)
		},
	}

	flags := root.PersistentFlags()
	flags.StringVarP(&opts.bookmarks, "bookmarks", "b", "", "bookmark source (.txt, .json, .db); overrides the config file")
	flags.StringVar(&opts.configPath, "config", "", "config file (default ~/.config/bmdir/config.yaml)")
	flags.StringVar(&opts.match, "match", "", "filter mode: substring or fuzzy; overrides the config file")
	flags.BoolVar(&opts.debug, "debug", false, "write debug logs (default ~/.config/bmdir/debug.log)")
	root.Flags().StringVarP(&opts.out, "out", "o", "", "result file for the picked path (default: a temp file whose path is printed)")

	root.AddCommand(newAddCmd(opts))
	root.AddCommand(newListCmd(opts))
	root.AddCommand(newImportCmd(opts))
	root.AddCommand(newExportCmd(opts))
	root.AddCommand(newPruneCmd(opts))
	root.AddCommand(newSetupCmd())

	return root
}

func newAddCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "add [path]",
		Short: "Add a path to the bookmarks (default: current directory)",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(opts)
			if err != nil {
				return err
			}

			path, err := addTarget(args)
			if err != nil {
				return err
			}

			store, closeStore, err := openStore(resolveBookmarks(opts, cfg), true)
			if err != nil {
				return err
			}
			defer closeStore()

			list, err := loadOrCreate(store)
			if err != nil {
				return err
			}

			if list.Contains(path) {
				fmt.Fprintf(cmd.OutOrStdout(), "Already bookmarked: %s\n", path)
				return nil
			}

			if err := store.Save(list.Append(path)); err != nil {
				return fmt.Errorf("save bookmarks: %w", err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Added %s\n", path)
			return nil
		},
	}
}

func newListCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "Print the bookmarks, one per line",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := loadConfig(opts)
			if err != nil {
				return err
			}

			store, closeStore, err := openStore(resolveBookmarks(opts, cfg), false)
			if err != nil {
				return err
			}
			defer closeStore()

			list, err := storage.LoadNonEmpty(store)
			if err != nil {
				return err
			}
			return printList(cmd.OutOrStdout(), list)
		},
	}
}

func newSetupCmd() *cobra.Command {
	return &cobra.Command{
		Use:       "setup [shell]",
		Short:     "Print the shell function that cd's into the picked path",
		Long:      "Print a bmdir shell function for bash, zsh, fish or pwsh.\nAdd eval \"$(bmdir setup)\" to your shell rc file.",
		Args:      cobra.MaximumNArgs(1),
		ValidArgs: []string{"bash", "zsh", "fish", "pwsh"},
		RunE: func(cmd *cobra.Command, args []string) error {
			shell := ""
			if len(args) > 0 {
				shell = args[0]
			}
			return handoff.PrintSetup(cmd.OutOrStdout(), shell, handoff.SetupConfig{})
		},
	}
}

func newImportCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "import <file.html>",
		Short: "Import file:// links from a Netscape bookmark HTML file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(opts)
			if err != nil {
				return err
			}

			f, err := os.Open(storage.ExpandHome(args[0]))
			if err != nil {
				return fmt.Errorf("open import file: %w", err)
			}
			defer f.Close()

			sum, err := importer.ParseHTMLBookmarks(f)
			if err != nil {
				return fmt.Errorf("parse import file: %w", err)
			}

			store, closeStore, err := openStore(resolveBookmarks(opts, cfg), true)
			if err != nil {
				return err
			}
			defer closeStore()

			list, err := loadOrCreate(store)
			if err != nil {
				return err
			}

			added, existing := 0, 0
			for _, p := range sum.Paths() {
				if list.Contains(p) {
					existing++
					continue
				}
				list = list.Append(p)
				added++
			}

			if added > 0 {
				if err := store.Save(list); err != nil {
					return fmt.Errorf("save bookmarks: %w", err)
				}
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Imported %d, already bookmarked %d, skipped %d non-file links\n",
				added, existing, sum.Skipped)
			return nil
		},
	}
}

func newExportCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "export [file.html]",
		Short: "Export the bookmarks as Netscape bookmark HTML (default: ~/Downloads)",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(opts)
			if err != nil {
				return err
			}

			store, closeStore, err := openStore(resolveBookmarks(opts, cfg), false)
			if err != nil {
				return err
			}
			defer closeStore()

			list, err := storage.LoadNonEmpty(store)
			if err != nil {
				return err
			}

			var dest string
			if len(args) > 0 {
				dest = storage.ExpandHome(args[0])
			} else if dest, err = exporter.DefaultExportPath(); err != nil {
				return err
			}

			if err := os.MkdirAll(filepath.Dir(dest), 0755); err != nil {
				return fmt.Errorf("create export directory: %w", err)
			}
			if err := os.WriteFile(dest, []byte(exporter.ExportHTML(list, time.Now())), 0644); err != nil {
				return fmt.Errorf("write export file: %w", err)
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Exported %d bookmarks to %s\n", list.Len(), dest)
			return nil
		},
	}
}

func newPruneCmd(opts *options) *cobra.Command {
	var dryRun bool

	cmd := &cobra.Command{
		Use:   "prune",
		Short: "Remove bookmarks whose directory no longer exists",
		Long: `Check every bookmarked path. Paths that no longer exist are removed.
Paths that exist but cannot be entered are reported and kept.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := loadConfig(opts)
			if err != nil {
				return err
			}

			store, closeStore, err := openStore(resolveBookmarks(opts, cfg), false)
			if err != nil {
				return err
			}
			defer closeStore()

			list, err := storage.LoadNonEmpty(store)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			results := culler.CheckPaths(list, nil, nil)
			for _, r := range results {
				if r.Status != culler.Healthy {
					fmt.Fprintf(out, "%-11s %s (%s)\n", r.Status, r.Path, r.Error)
				}
			}

			dead := culler.DeadPaths(results)
			switch {
			case len(dead) == 0:
				fmt.Fprintln(out, "Nothing to prune")
				return nil
			case dryRun:
				fmt.Fprintf(out, "Would remove %d of %d bookmarks\n", len(dead), list.Len())
				return nil
			}

			if err := store.Save(list.Without(dead...)); err != nil {
				return fmt.Errorf("save bookmarks: %w", err)
			}
			fmt.Fprintf(out, "Removed %d of %d bookmarks\n", len(dead), list.Len())
			return nil
		},
	}

	cmd.Flags().BoolVarP(&dryRun, "dry-run", "n", false, "report dead bookmarks without removing them")
	return cmd
}

// runPicker loads the bookmarks, runs the interactive picker and writes the
// result file. Bookmark errors are reported before the terminal is touched.
func runPicker(cmd *cobra.Command, opts *options) error {
	cfg, err := loadConfig(opts)
	if err != nil {
		return err
	}

	log, err := newLogger(opts, cfg)
	if err != nil {
		return err
	}
	defer log.Close()
	ctx := logger.WithLogger(cmd.Context(), log.Logger)
	lgr := logger.FromContext(ctx)

	source := resolveBookmarks(opts, cfg)
	store, closeStore, err := openStore(source, false)
	if err != nil {
		return err
	}
	defer closeStore()

	list, err := storage.LoadNonEmpty(store)
	if err != nil {
		lgr.Error(err, "bookmark source unusable", "source", source)
		return err
	}

	match := search.ParseMode(cfg.Match)
	if opts.match != "" {
		match = search.ParseMode(opts.match)
	}

	state, err := picker.New(list, picker.Options{
		Previewer: preview.NewProvider(nil, cfg.PreviewMaxBytes),
		Match:     match,
	})
	if err != nil {
		return err
	}

	if !stdinIsTerminal() {
		return errNotTerminal
	}

	lgr.Info("picker started", "source", source, "bookmarks", list.Len(), "match", match.String())

	final, err := runProgram(tui.NewApp(tui.AppParams{State: state, Logger: lgr}))
	if err != nil {
		lgr.Error(err, "picker failed")
		return fmt.Errorf("run picker: %w", err)
	}

	selected, chosen := final.(tui.App).Result()
	resultFile := handoff.ResultPath(opts.out, cfg.ResultFile)
	dest, err := handoff.WriteResult(resultFile, selected, chosen)
	if err != nil {
		lgr.Error(err, "handoff failed", "file", resultFile)
		return err
	}

	lgr.Info("picker finished", "chosen", chosen, "dest", dest, "file", resultFile)

	// The default name holds our PID, so tell the caller where it went
	if opts.out == "" && cfg.ResultFile == "" {
		fmt.Fprintln(cmd.OutOrStdout(), resultFile)
	}
	return nil
}

// loadConfig reads the config file from --config or the default location.
func loadConfig(opts *options) (*storage.Config, error) {
	path := opts.configPath
	if path == "" {
		var err error
		path, err = storage.DefaultConfigFilePath()
		if err != nil {
			return nil, &configError{Path: "~/.config/bmdir/config.yaml", Err: err}
		}
	}

	cfg, err := storage.LoadConfig(storage.ExpandHome(path))
	if err != nil {
		return nil, &configError{Path: path, Err: err}
	}
	return cfg, nil
}

// newLogger builds the file logger. Logging is on when the config names a
// log file or --debug is set.
func newLogger(opts *options, cfg *storage.Config) (*logger.Logger, error) {
	path := cfg.LogFile
	if path == "" && opts.debug {
		var err error
		path, err = logger.DefaultPath()
		if err != nil {
			return nil, err
		}
	}
	return logger.New(logger.Options{Path: path, Debug: opts.debug, Version: version})
}

func resolveBookmarks(opts *options, cfg *storage.Config) string {
	if opts.bookmarks != "" {
		return storage.ExpandHome(opts.bookmarks)
	}
	return cfg.Bookmarks
}

// openStore opens the bookmark source and returns a function releasing it.
// Only commands that write pass create; the others never create a database.
func openStore(path string, create bool) (storage.Storage, func(), error) {
	open := storage.OpenExisting
	if create {
		open = storage.OpenStorage
	}

	store, err := open(path)
	if err != nil {
		return nil, nil, err
	}

	closeStore := func() {}
	if c, ok := store.(io.Closer); ok {
		closeStore = func() { _ = c.Close() }
	}
	return store, closeStore, nil
}

// loadOrCreate loads the bookmarks for an update. A missing source is
// treated as empty and created on save.
func loadOrCreate(store storage.Storage) (*model.BookmarkList, error) {
	list, err := store.Load()
	if err != nil {
		var loadErr *storage.LoadError
		if !errors.As(err, &loadErr) || !errors.Is(err, os.ErrNotExist) {
			return nil, err
		}
		return model.NewBookmarkList(nil), nil
	}
	return list, nil
}

// addTarget returns the absolute path to bookmark.
func addTarget(args []string) (string, error) {
	if len(args) == 0 || args[0] == "" {
		return os.Getwd()
	}
	return filepath.Abs(storage.ExpandHome(args[0]))
}

func printList(w io.Writer, list *model.BookmarkList) error {
	for _, p := range list.Paths() {
		if _, err := fmt.Fprintln(w, p); err != nil {
			return err
		}
	}
	return nil
}
