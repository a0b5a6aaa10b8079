package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"runtime/debug"

	cli "github.com/urfave/cli/v3"
	"go.uber.org/multierr"
	"go.uber.org/zap"

	"gridder/config"
	"gridder/misc"
	"gridder/state"
)

// initializeAppContext runs after command line is parsed and before any
// subcommand: configuration, debug report and logs are prepared here.
func initializeAppContext(ctx context.Context, cmd *cli.Command) (context.Context, error) {
	if cmd.NArg() == 0 {
		// help will be shown
		return ctx, nil
	}
	env := state.EnvFromContext(ctx)
	if err := prepareEnv(env, cmd.String("config"), cmd.Bool("debug")); err != nil {
		return ctx, err
	}

	env.Log.Debug("Program started",
		zap.Strings("args", os.Args),
		zap.String("ver", misc.GetVersion()),
		zap.String("runtime", runtime.Version()),
		zap.String("hash", misc.GetGitHash()))
	if env.Rpt != nil {
		env.Log.Info("Creating debug report", zap.String("location", env.Rpt.Name()))
	}
	return ctx, nil
}

func prepareEnv(env *state.LocalEnv, configFile string, withReport bool) (err error) {
	if env.Cfg, err = config.LoadConfiguration(configFile); err != nil {
		return fmt.Errorf("unable to prepare configuration: %w", err)
	}
	if withReport {
		if env.Rpt, err = env.Cfg.Reporting.Prepare(); err != nil {
			return fmt.Errorf("unable to prepare debug report: %w", err)
		}
		if len(configFile) > 0 {
			// processed configuration, with defaults filled in
			if data, err := config.Dump(env.Cfg); err == nil {
				env.Rpt.StoreData("config/"+filepath.Base(configFile), data)
			}
		}
	}
	if env.Log, err = env.Cfg.Logging.Prepare(env.Rpt); err != nil {
		return fmt.Errorf("unable to prepare logs: %w", err)
	}
	env.Log = env.Log.With(zap.Stringer("run", env.RunID))
	env.RedirectStdLog()

	if len(configFile) == 0 {
		env.Log.Info("Using defaults (no configuration file)")
	}
	return nil
}

// destroyAppContext flushes logs and closes debug report. Logs are not
// available after that, problems are returned to be printed to stderr.
func destroyAppContext(ctx context.Context, cmd *cli.Command) (err error) {
	env := state.EnvFromContext(ctx)
	if env.Log != nil {
		env.Log.Debug("Program ended", zap.Duration("elapsed", env.Uptime()), zap.Strings("parsed args", cmd.Args().Slice()))
	}
	env.RestoreStdLog()

	if e := env.Rpt.Close(); e != nil {
		err = multierr.Append(err, fmt.Errorf("unable to close debug report: %w", e))
	}
	if env.Cfg != nil && len(env.Cfg.Logging.FileLogger.Destination) > 0 {
		err = multierr.Append(err, removeEmptyPanicLog(config.PanicLogName(env.Cfg.Logging.FileLogger.Destination)))
	}
	return err
}

// removeEmptyPanicLog stops crash output capture and removes its file when
// nothing crashed.
func removeEmptyPanicLog(fname string) error {
	debug.SetCrashOutput(nil, debug.CrashOptions{})
	fi, err := os.Stat(fname)
	if err != nil || fi.Size() != 0 {
		return nil
	}
	if err := os.Remove(fname); err != nil {
		return fmt.Errorf("unable to remove empty panic log file '%s': %w", fname, err)
	}
	return nil
}

// errWasHandled is set when the final error already went to the log, so main
// does not print it again.
var errWasHandled bool

func exitErrHandler(ctx context.Context, _ *cli.Command, err error) {
	if log := state.EnvFromContext(ctx).Log; log != nil {
		log.Error("Program ended with error", zap.Error(err))
		errWasHandled = true
	}
}

func usageErrorHandler(_ context.Context, _ *cli.Command, err error, _ bool) error {
	return err
}

func subcommandNotFoundHandler(ctx context.Context, _ *cli.Command, name string) {
	if log := state.EnvFromContext(ctx).Log; log != nil {
		log.Warn("Unknown command, nothing to do", zap.String("command", name))
	}
}
