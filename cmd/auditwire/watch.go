package main

import (
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/auditwire/auditwire-go/internal/config"
	"github.com/auditwire/auditwire-go/internal/discover"
	"github.com/auditwire/auditwire-go/internal/linter"
)

// newWatchCmd creates the "watch" subcommand for auto-rebuilding on file changes.
func newWatchCmd() *cobra.Command {
	var (
		lintOnly     bool
		debounce     time.Duration
		outputFormat string
		outputFile   string
		configFile   string
	)

	cmd := &cobra.Command{
		Use:   "watch [packages...]",
		Short: "Auto-rebuild on source file changes",
		Long: `Watch monitors source files for changes and automatically rebuilds.

The watch command:
- Monitors the source directory for .go file changes
- Runs lint on each change
- Rebuilds if lint passes (unless --lint-only)
- Debounces rapid changes to avoid excessive rebuilds

Examples:
    auditwire watch
    auditwire watch --lint-only
    auditwire watch --debounce 1s -o template.json`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runWatch(args, watchOptions{
				lintOnly:     lintOnly,
				debounce:     debounce,
				outputFormat: outputFormat,
				outputFile:   outputFile,
				configFile:   configFile,
			})
		},
	}

	cmd.Flags().BoolVar(&lintOnly, "lint-only", false, "Only run lint, skip build")
	cmd.Flags().DurationVar(&debounce, "debounce", 500*time.Millisecond, "Debounce duration for rapid changes")
	cmd.Flags().StringVarP(&outputFormat, "format", "f", "", "Output format for build: json or yaml (default from config)")
	cmd.Flags().StringVarP(&outputFile, "output", "o", "", "Output file for build (default: stdout)")
	cmd.Flags().StringVarP(&configFile, "config", "c", "auditwire.yaml", "Config file with deployment inputs")

	return cmd
}

type watchOptions struct {
	lintOnly     bool
	debounce     time.Duration
	outputFormat string
	outputFile   string
	configFile   string
}

// runWatch monitors source files and runs lint/build on changes.
func runWatch(packages []string, opts watchOptions) error {
	if len(packages) == 0 {
		packages = []string{defaultStackPackage}
	}

	cfg, err := config.Load(opts.configFile)
	if err != nil {
		return err
	}
	if opts.outputFormat == "" {
		opts.outputFormat = cfg.Format
	}

	log := newWatchLogger(cfg.LogLevel)

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("failed to create watcher: %w", err)
	}
	defer func() {
		_ = watcher.Close()
	}()

	dirs, err := resolvePackageDirs(packages)
	if err != nil {
		return fmt.Errorf("failed to resolve packages: %w", err)
	}

	for _, dir := range dirs {
		if err := addDirRecursive(watcher, dir); err != nil {
			return fmt.Errorf("failed to watch %s: %w", dir, err)
		}
		log.Info().Str("dir", dir).Msg("watching")
	}

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	log.Info().Msg("running initial lint/build")
	runLintAndBuild(packages, cfg, opts, log)

	// Debounce timer
	var debounceTimer *time.Timer
	rebuildChan := make(chan struct{}, 1)

	log.Info().Msg("watching for changes (Ctrl+C to stop)")

	for {
		select {
		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}

			if !strings.HasSuffix(event.Name, ".go") {
				continue
			}

			if event.Op&(fsnotify.Write|fsnotify.Create) == 0 {
				continue
			}

			// Debounce: reset timer on each change
			if debounceTimer != nil {
				debounceTimer.Stop()
			}
			debounceTimer = time.AfterFunc(opts.debounce, func() {
				select {
				case rebuildChan <- struct{}{}:
				default:
				}
			})

		case <-rebuildChan:
			log.Info().Msg("change detected, rebuilding")
			runLintAndBuild(packages, cfg, opts, log)

		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			log.Error().Err(err).Msg("watch error")

		case <-sigChan:
			log.Info().Msg("stopping watch")
			return nil
		}
	}
}

func newWatchLogger(level string) zerolog.Logger {
	lvl, err := zerolog.ParseLevel(level)
	if err != nil {
		lvl = zerolog.InfoLevel
	}
	return zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: "15:04:05"}).
		Level(lvl).
		With().Timestamp().Logger()
}

// resolvePackageDirs converts package patterns to directory paths.
func resolvePackageDirs(packages []string) ([]string, error) {
	var dirs []string
	seen := make(map[string]bool)

	for _, pkg := range packages {
		// Handle ./... patterns
		pkg = strings.TrimSuffix(pkg, "/...")
		pkg = strings.TrimPrefix(pkg, "./")

		absPath, err := filepath.Abs(pkg)
		if err != nil {
			return nil, err
		}

		if !seen[absPath] {
			seen[absPath] = true
			dirs = append(dirs, absPath)
		}
	}

	return dirs, nil
}

// addDirRecursive adds a directory and all subdirectories to the watcher.
func addDirRecursive(watcher *fsnotify.Watcher, dir string) error {
	return filepath.Walk(dir, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}

		if info.IsDir() {
			// Skip hidden directories
			if strings.HasPrefix(filepath.Base(path), ".") && path != dir {
				return filepath.SkipDir
			}
			if filepath.Base(path) == "vendor" {
				return filepath.SkipDir
			}
			return watcher.Add(path)
		}
		return nil
	})
}

// runLintAndBuild runs lint and optionally build on the packages.
func runLintAndBuild(packages []string, cfg config.Settings, opts watchOptions, log zerolog.Logger) {
	if !runWatchLint(packages, log) {
		log.Warn().Msg("lint failed, skipping build")
		return
	}

	log.Info().Msg("lint passed")

	if opts.lintOnly {
		return
	}

	tmpl, buildErrs := buildStackTemplate(packages, cfg)
	if len(buildErrs) > 0 {
		for _, e := range buildErrs {
			log.Error().Msg(e.Error())
		}
		return
	}

	if err := outputTemplate(tmpl, opts.outputFormat, opts.outputFile); err != nil {
		log.Error().Err(err).Msg("build output failed")
		return
	}

	if opts.outputFile != "" {
		log.Info().Str("file", opts.outputFile).Msg("template written")
	}
}

// runWatchLint runs lint and returns true if successful.
func runWatchLint(packages []string, log zerolog.Logger) bool {
	discoverResult, err := discover.Discover(discover.Options{
		Packages: packages,
	})
	if err != nil {
		log.Error().Err(err).Msg("lint error")
		return false
	}

	if len(discoverResult.Errors) > 0 {
		for _, e := range discoverResult.Errors {
			log.Error().Msg(e.Error())
		}
		return false
	}

	hasIssues := false
	for _, pkg := range packages {
		lintResult, err := linter.LintPackage(pkg, linter.Options{})
		if err != nil {
			log.Warn().Str("pkg", pkg).Err(err).Msg("failed to lint")
			continue
		}

		for _, issue := range lintResult.Issues {
			if issue.Severity == linter.SeverityError {
				hasIssues = true
			}
			log.Warn().
				Str("rule", issue.Rule).
				Str("file", fmt.Sprintf("%s:%d", issue.File, issue.Line)).
				Msg(issue.Message)
		}
	}

	return !hasIssues
}
