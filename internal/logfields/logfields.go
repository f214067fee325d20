package logfields

import "log/slog"

// Canonical log field name constants to avoid drift across packages.
const (
	KeyRunID      = "run_id"
	KeyTarget     = "target"
	KeyProfile    = "profile"
	KeyStage      = "stage"
	KeyPath       = "path"
	KeySource     = "source"
	KeyDest       = "dest"
	KeyFiles      = "files"
	KeyBytes      = "bytes"
	KeyCollection = "collection"
	KeyDurationMS = "duration_ms"
	KeyError      = "error"
)

// Simple helpers returning slog.Attr. Keeping each granular means callers can compose.
func RunID(id string) slog.Attr       { return slog.String(KeyRunID, id) }
func Target(t string) slog.Attr       { return slog.String(KeyTarget, t) }
func Profile(p string) slog.Attr      { return slog.String(KeyProfile, p) }
func Stage(name string) slog.Attr     { return slog.String(KeyStage, name) }
func Path(p string) slog.Attr         { return slog.String(KeyPath, p) }
func Source(p string) slog.Attr       { return slog.String(KeySource, p) }
func Dest(p string) slog.Attr         { return slog.String(KeyDest, p) }
func Files(n int) slog.Attr           { return slog.Int(KeyFiles, n) }
func Bytes(n int64) slog.Attr         { return slog.Int64(KeyBytes, n) }
func Collection(c string) slog.Attr   { return slog.String(KeyCollection, c) }
func DurationMS(ms float64) slog.Attr { return slog.Float64(KeyDurationMS, ms) }
func Error(err error) slog.Attr {
	if err == nil {
		return slog.String(KeyError, "")
	}
	return slog.String(KeyError, err.Error())
}
