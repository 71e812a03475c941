package normalizer

import (
	"errors"
	"fmt"
	"strings"

	"berrypedia/internal/models"
)

// Validation errors.
var (
	ErrNilCatalog   = errors.New("catalog is nil")
	ErrMissingName  = errors.New("record has no name")
	ErrDuplicateID  = errors.New("duplicate item id")
	ErrEmptyRecords = errors.New("catalog contains no records")
)

// RecordError ties a validation failure to a record position.
type RecordError struct {
	Err      error
	Category string
	Name     string
	Index    int
}

func (e *RecordError) Error() string {
	if e.Name != "" {
		return fmt.Sprintf("%s[%d] %q: %v", e.Category, e.Index, e.Name, e.Err)
	}

	return fmt.Sprintf("%s[%d]: %v", e.Category, e.Index, e.Err)
}

func (e *RecordError) Unwrap() error {
	return e.Err
}

// RecordErrors collects every record-level failure of a catalog.
type RecordErrors struct {
	Errors []error
}

func (e *RecordErrors) Error() string {
	if e == nil || len(e.Errors) == 0 {
		return "no record errors"
	}

	if len(e.Errors) == 1 {
		return e.Errors[0].Error()
	}

	msgs := make([]string, 0, len(e.Errors))
	for _, err := range e.Errors {
		msgs = append(msgs, err.Error())
	}

	return fmt.Sprintf("%d record errors: %s", len(e.Errors), strings.Join(msgs, "; "))
}

func (e *RecordErrors) Unwrap() []error {
	return e.Errors
}

// Validator checks raw records before they are transformed.
type Validator struct {
	// AllowEmpty accepts a catalog whose categories are present but hold no records.
	AllowEmpty bool
}

// NewValidator creates a new validator instance.
func NewValidator() *Validator {
	return &Validator{AllowEmpty: true}
}

// Validate checks required names and id uniqueness. All failures are reported together.
func (v *Validator) Validate(catalog *models.Catalog) error {
	if catalog == nil {
		return ErrNilCatalog
	}

	if !v.AllowEmpty && catalog.Len() == 0 {
		return ErrEmptyRecords
	}

	var errs []error

	seen := make(map[string]bool)

	check := func(key string, category models.Category, i int, name string) {
		if strings.TrimSpace(name) == "" {
			errs = append(errs, &RecordError{Category: key, Index: i, Err: ErrMissingName})
			return
		}

		id := itemID(category, name)
		if seen[id] {
			errs = append(errs, &RecordError{Category: key, Index: i, Name: name, Err: fmt.Errorf("%w: %s", ErrDuplicateID, id)})
			return
		}

		seen[id] = true
	}

	for i, rec := range catalog.Varieties {
		check(models.KeyVarieties, models.CategoryVariety, i, rec.Name)
	}

	for i, rec := range catalog.PestDiseases {
		check(models.KeyPestDiseases, models.CategoryPestDisease, i, rec.Name)
	}

	for i, rec := range catalog.Deficiencies {
		check(models.KeyDeficiencies, models.CategoryDeficiency, i, rec.Name)
	}

	if len(errs) > 0 {
		return &RecordErrors{Errors: errs}
	}

	return nil
}
