package snapshot

import (
	"errors"
	"io/fs"
	"log/slog"
	"os"

	"github.com/yndnr/redislite/internal/core/domain"
)

// Outcome classifies a restore attempt.
type Outcome string

const (
	// OutcomeLoaded means the snapshot was decoded and installed.
	OutcomeLoaded Outcome = "loaded"
	// OutcomeMissing means no snapshot file exists yet.
	OutcomeMissing Outcome = "missing"
	// OutcomeFailed means a file exists but could not be read or decoded.
	OutcomeFailed Outcome = "failed"
)

// Replacer receives the decoded entries.
type Replacer interface {
	Replace(entries map[string]domain.Value)
}

// Result describes what Restore did.
type Result struct {
	Path    string
	Outcome Outcome
	Version string
	Keys    int
	Err     error
}

// LoadFile reads and parses the snapshot at path.
func LoadFile(path string) (*File, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, domain.ErrIO.Wrap(err)
	}
	return Parse(data)
}

// Restore loads the snapshot at path into dst.
//
// It never fails: a missing file and a corrupt file both leave dst
// untouched (empty at startup). The two cases are logged at different
// levels and reported in the Result.
func Restore(dst Replacer, path string, logger *slog.Logger) Result {
	if logger == nil {
		logger = slog.Default()
	}

	res := Result{Path: path}

	f, err := LoadFile(path)
	switch {
	case err == nil:
	case errors.Is(err, fs.ErrNotExist):
		res.Outcome = OutcomeMissing
		logger.Info("no snapshot found, starting empty", "path", path)
		return res
	default:
		res.Outcome = OutcomeFailed
		res.Err = err
		logger.Warn("snapshot unreadable, starting empty",
			"path", path,
			"kind", domain.Kind(err),
			"error", err)
		return res
	}

	entries := f.Entries()
	dst.Replace(entries)

	res.Outcome = OutcomeLoaded
	res.Version = f.Version
	res.Keys = len(entries)
	logger.Info("snapshot loaded",
		"path", path,
		"version", f.Version,
		"keys", res.Keys,
		"records", len(f.Records))
	return res
}
