package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"runtime"
	"syscall"

	"fyne.io/fyne/v2/app"
	"github.com/nicksnyder/go-i18n/v2/i18n"
	"github.com/spf13/cobra"
	"github.com/tartampluch/go-birthday-wish/internal/config"
	"github.com/tartampluch/go-birthday-wish/internal/engine"
	"github.com/tartampluch/go-birthday-wish/internal/locales"
	"github.com/tartampluch/go-birthday-wish/internal/tui"
	"github.com/tartampluch/go-birthday-wish/internal/ui"
)

// main is the application entry point.
// It delegates execution to runMain to ensure that deferred function calls
// (like closing log files) are executed before the process terminates.
func main() {
	os.Exit(runMain())
}

// runMain runs the command tree under a context cancelled by SIGINT or SIGTERM.
// Returns config.ExitCodeSuccess on success, config.ExitCodeError on failure.
func runMain() int {
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	if err := newRootCmd().ExecuteContext(ctx); err != nil {
		_, _ = fmt.Fprintln(os.Stderr, err)
		return config.ExitCodeError
	}
	return config.ExitCodeSuccess
}

// options holds the persistent flags shared by every subcommand.
type options struct {
	debug      bool
	configPath string
	lang       string
}

func newRootCmd() *cobra.Command {
	opts := &options{}

	root := &cobra.Command{
		Use:           config.CmdName,
		Short:         config.CmdShortRoot,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runGUI(cmd.Context(), opts)
		},
	}
	pf := root.PersistentFlags()
	pf.BoolVar(&opts.debug, config.FlagDebug, false, config.FlagDescDebug)
	pf.StringVar(&opts.configPath, config.FlagConfig, "", config.FlagDescConfig)
	pf.StringVar(&opts.lang, config.FlagLang, "", config.FlagDescLang)

	root.AddCommand(
		&cobra.Command{
			Use:   config.CmdUseGUI,
			Short: config.CmdShortGUI,
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, _ []string) error {
				return runGUI(cmd.Context(), opts)
			},
		},
		&cobra.Command{
			Use:   config.CmdUseTUI,
			Short: config.CmdShortTUI,
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, _ []string) error {
				return runTUI(cmd.Context(), opts)
			},
		},
		&cobra.Command{
			Use:   config.CmdUseVersion,
			Short: config.CmdShortVersion,
			Args:  cobra.NoArgs,
			Run: func(cmd *cobra.Command, _ []string) {
				printVersion(cmd.OutOrStdout())
			},
		},
	)
	return root
}

// prepare sets up logging and loads the settings. console may be nil when
// stdout belongs to the terminal UI. The returned closer may be nil.
func prepare(opts *options, console io.Writer) (config.Settings, io.Closer, error) {
	closer := setupLogging(opts.debug, console)
	logStartupInfo()

	settings, err := config.LoadSettings(opts.configPath)
	if err != nil {
		slog.Error(config.ErrAppFailed,
			config.LogKeyComponent, config.CompSettings,
			config.LogKeyError, err,
		)
		return settings, closer, err
	}
	if opts.lang != "" {
		settings.Language = opts.lang
	}
	slog.Debug(config.MsgSettingsLoaded,
		config.LogKeyComponent, config.CompSettings,
		config.LogKeyPath, opts.configPath,
		config.LogKeyLang, settings.Language,
	)
	return settings, closer, nil
}

// runGUI initializes the Fyne application and blocks in its UI loop.
func runGUI(ctx context.Context, opts *options) error {
	settings, closer, err := prepare(opts, os.Stdout)
	defer closeQuietly(closer)
	if err != nil {
		return err
	}

	a := app.NewWithID(config.AppID)

	// Record the version for potential migration logic in future updates.
	a.Preferences().SetString(config.PrefLastRun, config.Version)

	gui := ui.NewWishApp(a, ctx, settings, nil)

	// Lifecycle Bridge:
	// Watch for context cancellation to quit the UI gracefully.
	go func() {
		<-ctx.Done()
		slog.Info(config.MsgCtxCancel, config.LogKeyComponent, config.CompMain)
		a.Quit()
	}()

	// Blocks until the main window closes.
	gui.Run()
	gui.Teardown()

	slog.Info(config.MsgAppStop, config.LogKeyComponent, config.CompMain)
	return nil
}

// runTUI runs the card in the terminal. Logs go to the file only; stdout
// belongs to the alternate screen.
func runTUI(ctx context.Context, opts *options) error {
	settings, closer, err := prepare(opts, nil)
	defer closeQuietly(closer)
	if err != nil {
		return err
	}

	bundle, _, err := locales.NewBundle()
	if err != nil {
		return fmt.Errorf("%s: %w", config.ErrLocalesAccess, err)
	}
	lang := settings.Language
	if lang == "" {
		lang = config.DefaultLanguage
	}

	session := engine.NewSession(settings, nil)
	defer session.Close()

	if err := tui.Run(ctx, session, i18n.NewLocalizer(bundle, lang)); err != nil {
		return err
	}
	slog.Info(config.MsgAppStop, config.LogKeyComponent, config.CompMain)
	return nil
}

// printVersion outputs the build information.
func printVersion(w io.Writer) {
	_, _ = fmt.Fprintf(w, config.MsgVersionOutput,
		config.AppName,
		config.Version,
		runtime.GOOS,
		runtime.GOARCH,
	)
}

// logStartupInfo logs environment details useful for debugging.
func logStartupInfo() {
	slog.Info(config.MsgAppStarting,
		config.LogKeyComponent, config.CompMain,
		slog.Group(config.LogKeyBuild,
			slog.String(config.LogKeyApp, config.AppName),
			slog.String(config.LogKeyVersion, config.Version),
			slog.String(config.LogKeyGoVer, runtime.Version()),
		),
		slog.Group(config.LogKeyEnv,
			slog.String(config.LogKeyOS, runtime.GOOS),
			slog.String(config.LogKeyArch, runtime.GOARCH),
			slog.Int(config.LogKeyPID, os.Getpid()),
		),
	)
}

// setupLogging configures the default slog logger to write JSON to console
// (when not nil) and to a log file in the user's cache directory.
func setupLogging(debugMode bool, console io.Writer) io.Closer {
	var writers []io.Writer
	var logFile *os.File

	if console != nil {
		writers = append(writers, console)
	}

	if logPath, err := getLogFilePath(); err == nil {
		// O_TRUNC resets logs on restart to prevent indefinite growth.
		f, err := os.OpenFile(logPath, os.O_TRUNC|os.O_CREATE|os.O_WRONLY, config.FilePermUserRW)
		if err == nil {
			writers = append(writers, f)
			logFile = f
		} else {
			_, _ = fmt.Fprintf(os.Stderr, config.MsgLogWarning, config.ErrLogFile, logPath, err)
		}
	}

	if len(writers) == 0 {
		writers = append(writers, io.Discard)
	}

	level := slog.LevelInfo
	if debugMode {
		level = slog.LevelDebug
	}

	opts := &slog.HandlerOptions{
		Level:     level,
		AddSource: debugMode,
	}

	logger := slog.New(slog.NewJSONHandler(io.MultiWriter(writers...), opts))
	slog.SetDefault(logger)

	if logFile == nil {
		return nil
	}
	return logFile
}

// getLogFilePath determines the platform-specific cache directory for logs.
func getLogFilePath() (string, error) {
	cacheDir, err := os.UserCacheDir()
	if err != nil {
		return "", fmt.Errorf("%s: %w", config.ErrCacheDir, err)
	}

	appDir := filepath.Join(cacheDir, config.AppID)

	// Ensure the directory exists with restricted permissions (700).
	if err := os.MkdirAll(appDir, config.DirPermUserRWX); err != nil {
		return "", fmt.Errorf("%s: %w", config.ErrCreateDir, err)
	}

	return filepath.Join(appDir, config.LogFileName), nil
}

func closeQuietly(c io.Closer) {
	if c != nil {
		_ = c.Close() // Best effort close
	}
}
