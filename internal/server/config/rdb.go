package config

import (
	"path/filepath"

	"github.com/yndnr/redislite/internal/core/domain"
)

// RDBParams is the read-only snapshot location shared with the server.
// It answers CONFIG GET with the values exactly as configured.
type RDBParams struct {
	Dir        string
	DBFilename string
}

// Params returns the snapshot parameters of the section.
func (s RDBSection) Params() RDBParams {
	return RDBParams{Dir: s.Dir, DBFilename: s.DBFilename}
}

// Path returns the snapshot file path, dir/dbfilename.
func (p RDBParams) Path() string {
	return filepath.Join(p.Dir, p.DBFilename)
}

// Lookup returns the value of a CONFIG GET parameter. Only "dir" and
// "dbfilename" exist; any other name is a validation error.
func (p RDBParams) Lookup(name string) (string, error) {
	switch name {
	case "dir":
		return p.Dir, nil
	case "dbfilename":
		return p.DBFilename, nil
	default:
		return "", domain.ErrValidation.Detailf("unknown config parameter '%s'", name)
	}
}
