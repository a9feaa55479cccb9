package logfields

import "log/slog"

// Canonical log field name constants to avoid drift across packages.
const (
	KeyPath     = "path"
	KeyFile     = "file"
	KeyRule     = "rule"
	KeySubject  = "subject"
	KeyFeature  = "feature"
	KeyOutput   = "output"
	KeyBuildID  = "build_id"
	KeyPages    = "pages"
	KeySkipped  = "skipped"
	KeyDuration = "duration_ms"
	KeyError    = "error"
)

// Simple helpers returning slog.Attr. Keeping each granular means callers can compose.
func Path(p string) slog.Attr         { return slog.String(KeyPath, p) }
func File(f string) slog.Attr         { return slog.String(KeyFile, f) }
func Rule(r string) slog.Attr         { return slog.String(KeyRule, r) }
func Subject(s string) slog.Attr      { return slog.String(KeySubject, s) }
func Feature(f string) slog.Attr      { return slog.String(KeyFeature, f) }
func Output(o string) slog.Attr       { return slog.String(KeyOutput, o) }
func BuildID(id string) slog.Attr     { return slog.String(KeyBuildID, id) }
func Pages(n int) slog.Attr           { return slog.Int(KeyPages, n) }
func Skipped(n int) slog.Attr         { return slog.Int(KeySkipped, n) }
func DurationMS(ms float64) slog.Attr { return slog.Float64(KeyDuration, ms) }

func Error(err error) slog.Attr {
	if err == nil {
		return slog.String(KeyError, "")
	}
	return slog.String(KeyError, err.Error())
}
