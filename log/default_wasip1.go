//go:build wasip1

package log

import "log/slog"

// init routes the default slog logger to the host inside a contract. Native
// builds, including hosts that import this package for ParseLogMessage, keep
// their own default.
func init() {
	slog.SetDefault(slog.New(NewHandler()))
}
