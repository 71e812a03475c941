// Package loader reads catalog documents from disk into raw records.
package loader

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	"berrypedia/internal/logger"
	"berrypedia/internal/models"
)

// Loader errors.
var (
	ErrEmptyCatalog = errors.New("no catalog data loaded")
	ErrLoadFailed   = errors.New("input could not be loaded")
	ErrBadRecords   = errors.New("input contains malformed records")
)

// Status classifies the outcome of loading one file.
type Status int

// Load outcomes.
const (
	StatusLoaded Status = iota
	StatusMissing
	StatusInvalid
	StatusMalformed
)

func (s Status) String() string {
	switch s {
	case StatusLoaded:
		return "loaded"
	case StatusMissing:
		return "missing"
	case StatusInvalid:
		return "invalid"
	case StatusMalformed:
		return "malformed"
	default:
		return fmt.Sprintf("Status(%d)", int(s))
	}
}

// Result is the outcome of loading one file.
type Result struct {
	Err      error
	Catalog  *models.Catalog
	Path     string
	Warnings []string
	Status   Status
}

// OK reports whether the file was read and parsed.
func (r Result) OK() bool {
	return r.Status == StatusLoaded
}

// Loader reads catalog files.
type Loader struct {
	log    *logger.Logger
	strict bool
}

// NewLoader creates a loader. In strict mode any file that fails to load aborts the merge.
func NewLoader(log *logger.Logger, strict bool) *Loader {
	if log == nil {
		log = logger.Discard()
	}

	return &Loader{log: log, strict: strict}
}

// Load reads and decodes a single file. It never panics on bad input; the outcome is in the Result.
// A file whose records have the wrong shape is StatusMalformed.
func (l *Loader) Load(path string) Result {
	res := Result{Path: path}
	log := l.log.With("path", path)

	data, err := os.ReadFile(path)
	if err != nil {
		res.Err = err
		if errors.Is(err, fs.ErrNotExist) {
			res.Status = StatusMissing
			log.Warn("⚠️  input file not found")
		} else {
			res.Status = StatusInvalid
			log.Warn("⚠️  input file unreadable", "error", err)
		}

		return res
	}

	catalog, warnings, err := Decode(data)

	for _, w := range warnings {
		log.Debug("decode", "note", w)
	}

	res.Warnings = warnings

	if err != nil {
		res.Status = StatusInvalid
		if errors.Is(err, ErrMalformed) {
			res.Status = StatusMalformed
		}

		res.Err = fmt.Errorf("%s: %w", path, err)
		log.Warn("⚠️  input file could not be parsed", "error", err)

		return res
	}

	res.Status = StatusLoaded
	res.Catalog = catalog

	log.Info("📂 loaded input", "records", catalog.Len(), "bytes", len(data))

	return res
}

// LoadAll loads each path in order.
func (l *Loader) LoadAll(paths []string) []Result {
	results := make([]Result, 0, len(paths))
	for _, p := range paths {
		results = append(results, l.Load(p))
	}

	return results
}

// Merge combines loaded catalogs by category key; a later file's key replaces an earlier one's.
// Malformed records abort the merge even when not strict.
func (l *Loader) Merge(results []Result) (*models.Catalog, error) {
	merged := &models.Catalog{}

	for _, res := range results {
		if res.Status == StatusMalformed {
			return nil, fmt.Errorf("%w: %w", ErrBadRecords, res.Err)
		}
	}

	for _, res := range results {
		if !res.OK() {
			if l.strict {
				return nil, fmt.Errorf("%w: %s (%s): %w", ErrLoadFailed, res.Path, res.Status, res.Err)
			}

			continue
		}

		mergeInto(merged, res.Catalog)
	}

	if merged.Empty() {
		return nil, ErrEmptyCatalog
	}

	return merged, nil
}

// LoadCatalog loads and merges paths in one step.
func (l *Loader) LoadCatalog(paths []string) (*models.Catalog, []Result, error) {
	results := l.LoadAll(paths)

	catalog, err := l.Merge(results)

	return catalog, results, err
}

func mergeInto(dst, src *models.Catalog) {
	for _, key := range src.Keys {
		if !dst.Has(key) {
			dst.Keys = append(dst.Keys, key)
		}

		switch key {
		case models.KeyVarieties:
			dst.Varieties = src.Varieties
		case models.KeyPestDiseases:
			dst.PestDiseases = src.PestDiseases
		case models.KeyDeficiencies:
			dst.Deficiencies = src.Deficiencies
		}
	}
}
