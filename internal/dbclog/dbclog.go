// Package dbclog is the logging collaborator named by spec.md §7
// ("Close/teardown errors are logged (via the logging collaborator) and
// swallowed"). It is a thin adapter over the teacher package's own
// logging dependency, github.com/gogf/gf/os/glog, so that every driver
// logs the way the rest of the pack does rather than reaching for
// log.Printf.
package dbclog

import (
	"context"

	"github.com/gogf/gf/os/glog"
)

var logger = glog.New()

// SetLogger swaps the package-level logger, e.g. to attach a file writer
// or change the log level/format.
func SetLogger(l *glog.Logger) {
	if l != nil {
		logger = l
	}
}

// Errorf logs a swallowed error at Error level. Used by Connection.Close/
// ReturnToPool teardown paths, which are contractually infallible from
// the caller's perspective (spec.md §7).
func Errorf(ctx context.Context, format string, args ...interface{}) {
	logger.Ctx(ctx).Errorf(format, args...)
}

// Debugf logs SQL tracing output at Debug level. The drivers' prepared
// statement execution paths call it unconditionally; whether anything is
// written depends only on the logger's configured level.
func Debugf(ctx context.Context, format string, args ...interface{}) {
	logger.Ctx(ctx).Debugf(format, args...)
}
