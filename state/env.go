// Package state defines shared program state.
package state

import (
	"context"
	"io"
	"log"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"gridder/config"
	"gridder/grid"
)

type envKey struct{}

// LocalEnv keeps everything program needs in a single place.
type LocalEnv struct {
	Cfg *config.Config
	Rpt *config.Report
	Log *zap.Logger

	// RunID tags log entries and debug report of a single invocation
	RunID uuid.UUID

	// used by expand subcommand
	Overwrite bool
	Stdin     io.Reader
	Stdout    io.Writer

	start         time.Time
	restoreStdLog func()
}

func EnvFromContext(ctx context.Context) *LocalEnv {
	if env, ok := ctx.Value(envKey{}).(*LocalEnv); ok {
		return env
	}
	// this should never happen
	panic("localenv not found in context")
}

func ContextWithEnv(ctx context.Context) context.Context {
	return context.WithValue(ctx, envKey{}, newLocalEnv())
}

// GridConfig returns grid settings from loaded configuration, defaults when
// configuration was not loaded.
func (e *LocalEnv) GridConfig() grid.Config {
	if e.Cfg == nil {
		return grid.DefaultConfig()
	}
	return grid.Config{Columns: e.Cfg.Grid.Columns, Mode: e.Cfg.Grid.Mode}
}

func (e *LocalEnv) Uptime() time.Duration {
	return time.Since(e.start)
}

func (e *LocalEnv) RedirectStdLog() {
	if e.Log == nil {
		return
	}
	// zap restores standard logger output to stderr, keep whatever was there
	out := log.Writer()
	restore := zap.RedirectStdLog(e.Log)
	e.restoreStdLog = func() {
		restore()
		log.SetOutput(out)
	}
}

func (e *LocalEnv) RestoreStdLog() {
	if e.Log != nil {
		_ = e.Log.Sync()
	}
	if e.restoreStdLog != nil {
		e.restoreStdLog()
	}
}
