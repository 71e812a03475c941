// Package validator checks generated knowledge base documents.
package validator

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/tidwall/gjson"

	"berrypedia/internal/models"
	"berrypedia/internal/site"
	"berrypedia/pkg/metadata"
)

// Document validation errors.
var (
	ErrMissingDataSlot   = errors.New("data slot not found")
	ErrDuplicateDataSlot = errors.New("more than one data slot")
	ErrItemCount         = errors.New("item count does not match metadata")
	ErrEmptyID           = errors.New("id is required")
	ErrDuplicateID       = errors.New("duplicate id")
	ErrUnknownCategory   = errors.New("unknown category")
	ErrEmptyTitle        = errors.New("title is required")
	ErrIDPrefix          = errors.New("id prefix does not match category")
	ErrNegativeSugar     = errors.New("sugar must not be negative")
)

// ValidationError represents a single problem found in a document.
// Index is the item position in the data slot, or -1 for document level problems.
type ValidationError struct {
	Err     error
	Field   string
	Value   string
	Message string
	Index   int
}

func (e ValidationError) Error() string {
	return e.Message
}

func (e ValidationError) Unwrap() error {
	return e.Err
}

// ValidationResult contains the outcome of a document check.
type ValidationResult struct {
	Metadata *metadata.Metadata
	Errors   []ValidationError
	Warnings []string
	Stats    ValidationStats
	IsValid  bool
}

// ValidationStats summarizes the items found in the data slot.
type ValidationStats struct {
	ByCategory   map[models.Category]int
	TotalItems   int
	ValidItems   int
	InvalidItems int
}

// DocumentValidator validates generated HTML documents.
type DocumentValidator struct {
	// RequireMetadata turns a missing integrity block into an error instead of a warning.
	RequireMetadata bool
}

// NewDocumentValidator creates a validator that requires the integrity block.
func NewDocumentValidator() *DocumentValidator {
	return &DocumentValidator{RequireMetadata: true}
}

func newResult() *ValidationResult {
	return &ValidationResult{
		IsValid:  true,
		Errors:   []ValidationError{},
		Warnings: []string{},
		Stats:    ValidationStats{ByCategory: map[models.Category]int{}},
	}
}

func (r *ValidationResult) addError(index int, field, value string, err error, format string, args ...any) {
	r.IsValid = false
	r.Errors = append(r.Errors, ValidationError{
		Err:     err,
		Field:   field,
		Value:   value,
		Message: fmt.Sprintf(format, args...),
		Index:   index,
	})
}

// ValidateIntegrity checks the document against the hash in its metadata block.
func (v *DocumentValidator) ValidateIntegrity(content string) *ValidationResult {
	result := newResult()
	v.checkIntegrity(content, result)

	return result
}

func (v *DocumentValidator) checkIntegrity(content string, result *ValidationResult) {
	meta, err := metadata.Verify(content)
	result.Metadata = meta

	switch {
	case err == nil:
		if meta.Version != site.AssetVersion {
			result.Warnings = append(result.Warnings,
				fmt.Sprintf("document was built with application %s, current is %s", meta.Version, site.AssetVersion))
		}
	case errors.Is(err, metadata.ErrNoMetadataBlock) && !v.RequireMetadata:
		result.Warnings = append(result.Warnings, "document has no metadata block")
	default:
		result.addError(-1, "metadata", "", err, "integrity check failed: %v", err)
	}
}

// ValidateDocument checks the integrity block, the data slot and every item in it.
func (v *DocumentValidator) ValidateDocument(content string) *ValidationResult {
	result := newResult()
	v.checkIntegrity(content, result)

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(content))
	if err != nil {
		result.addError(-1, "document", "", err, "failed to parse document: %v", err)
		return result
	}

	slot := doc.Find("script#" + site.DataSlotID)

	switch slot.Length() {
	case 0:
		result.addError(-1, "data", "", ErrMissingDataSlot, "%v: #%s", ErrMissingDataSlot, site.DataSlotID)
		return result
	case 1:
	default:
		result.addError(-1, "data", "", ErrDuplicateDataSlot, "%v: found %d", ErrDuplicateDataSlot, slot.Length())
		return result
	}

	raw := slot.Text()
	if !gjson.Valid(raw) || !gjson.Parse(raw).IsArray() {
		result.addError(-1, "data", truncate(raw, 40), nil, "data slot is not a JSON array")
		return result
	}

	items, err := site.DecodeItems([]byte(raw))
	if err != nil {
		result.addError(-1, "data", "", err, "%v", err)
		return result
	}

	v.checkSettings(doc, result)

	result.Stats.TotalItems = len(items)

	if result.Metadata != nil && result.Metadata.Hash != "" && result.Metadata.Items != len(items) {
		result.addError(-1, "metadata", fmt.Sprint(result.Metadata.Items), ErrItemCount,
			"%v: metadata says %d, data slot has %d", ErrItemCount, result.Metadata.Items, len(items))
	}

	seen := make(map[string]int, len(items))

	for i, item := range items {
		before := len(result.Errors)
		v.checkItem(i, item, seen, result)

		if len(result.Errors) > before {
			result.Stats.InvalidItems++
		} else {
			result.Stats.ValidItems++
		}

		result.Stats.ByCategory[item.Category]++
	}

	if len(items) == 0 {
		result.Warnings = append(result.Warnings, "document contains no items")
	}

	return result
}

func (v *DocumentValidator) checkSettings(doc *goquery.Document, result *ValidationResult) {
	settings := doc.Find("script#" + site.SettingsSlotID)
	if settings.Length() == 0 {
		result.Warnings = append(result.Warnings, "settings slot not found, the page uses built-in defaults")
		return
	}

	if rangeMax := gjson.Get(settings.Text(), "rangeMax"); !rangeMax.Exists() || rangeMax.Float() <= 0 {
		result.Warnings = append(result.Warnings, "settings slot has no positive rangeMax")
	}
}

func (v *DocumentValidator) checkItem(i int, item models.Item, seen map[string]int, result *ValidationResult) {
	if item.ID == "" {
		result.addError(i, "id", "", ErrEmptyID, "item %d: %v", i, ErrEmptyID)
	} else if first, dup := seen[item.ID]; dup {
		result.addError(i, "id", item.ID, ErrDuplicateID, "item %d: %v (first seen at item %d)", i, ErrDuplicateID, first)
	} else {
		seen[item.ID] = i
	}

	if !item.Category.Valid() {
		result.addError(i, "category", string(item.Category), ErrUnknownCategory, "item %d: %v", i, ErrUnknownCategory)
	} else if item.ID != "" && !strings.HasPrefix(item.ID, item.Category.IDPrefix()) {
		result.addError(i, "id", item.ID, ErrIDPrefix, "item %d: %v, expected %s", i, ErrIDPrefix, item.Category.IDPrefix())
	}

	if strings.TrimSpace(item.Title) == "" {
		result.addError(i, "title", "", ErrEmptyTitle, "item %d: %v", i, ErrEmptyTitle)
	}

	if item.Sugar < 0 {
		result.addError(i, "sugar", fmt.Sprint(item.Sugar), ErrNegativeSugar, "item %d: %v", i, ErrNegativeSugar)
	} else if item.Sugar > 0 && item.Category != models.CategoryVariety {
		result.Warnings = append(result.Warnings, fmt.Sprintf("item %d (%s): sugar is only meaningful for varieties", i, item.ID))
	}

	for j, img := range item.Images {
		if strings.TrimSpace(img) == "" {
			result.Warnings = append(result.Warnings, fmt.Sprintf("item %d (%s): image %d is empty", i, item.ID, j))
		}
	}
}

func truncate(s string, maxLen int) string {
	if len([]rune(s)) <= maxLen {
		return s
	}

	return string([]rune(s)[:maxLen]) + "..."
}

// String returns string representation of validation result.
func (r *ValidationResult) String() string {
	status := "✅ VALID"
	if !r.IsValid {
		status = "❌ INVALID"
	}

	return fmt.Sprintf(
		"%s | Total: %d | Valid: %d | Invalid: %d | Warnings: %d",
		status,
		r.Stats.TotalItems,
		r.Stats.ValidItems,
		r.Stats.InvalidItems,
		len(r.Warnings),
	)
}

// PrintErrors prints validation errors in readable format.
func (r *ValidationResult) PrintErrors(w io.Writer) {
	if len(r.Errors) == 0 {
		return
	}

	fmt.Fprintln(w, "❌ Validation Errors:")

	for _, err := range r.Errors {
		if err.Index >= 0 {
			fmt.Fprintf(w, "  Item %d [%s]: %s\n", err.Index, err.Field, err.Message)

			if err.Value != "" {
				fmt.Fprintf(w, "    Found: %q\n", err.Value)
			}
		} else {
			fmt.Fprintf(w, "  %s\n", err.Message)
		}
	}
}

// PrintWarnings prints validation warnings.
func (r *ValidationResult) PrintWarnings(w io.Writer) {
	if len(r.Warnings) == 0 {
		return
	}

	fmt.Fprintln(w, "⚠️  Validation Warnings:")

	for _, warn := range r.Warnings {
		fmt.Fprintf(w, "  %s\n", warn)
	}
}

// HasError reports whether any error matches target.
func (r *ValidationResult) HasError(target error) bool {
	for _, e := range r.Errors {
		if errors.Is(e, target) {
			return true
		}
	}

	return false
}
