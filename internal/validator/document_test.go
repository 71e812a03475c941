package validator

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"berrypedia/internal/models"
	"berrypedia/internal/site"
	"berrypedia/pkg/metadata"
)

func validItems() []models.Item {
	return []models.Item{
		{ID: "var_香水", Category: models.CategoryVariety, Title: "香水", Sugar: 12, Tags: models.Tags{}},
		{ID: "pest_白粉病", Category: models.CategoryPestDisease, Title: "白粉病", Tags: models.Tags{}},
		{ID: "def_缺鉀", Category: models.CategoryDeficiency, Title: "缺鉀", Tags: models.Tags{{Key: "元素", Value: "鉀"}}},
	}
}

func renderDoc(t *testing.T, items []models.Item) string {
	t.Helper()

	out, err := site.Render(items, site.DefaultOptions())
	require.NoError(t, err)

	return string(out)
}

func TestValidateDocument_Valid(t *testing.T) {
	result := NewDocumentValidator().ValidateDocument(renderDoc(t, validItems()))

	assert.True(t, result.IsValid, "errors: %v", result.Errors)
	assert.Empty(t, result.Errors)
	assert.Empty(t, result.Warnings)
	assert.Equal(t, 3, result.Stats.TotalItems)
	assert.Equal(t, 3, result.Stats.ValidItems)
	assert.Equal(t, 1, result.Stats.ByCategory[models.CategoryPestDisease])
	require.NotNil(t, result.Metadata)
	assert.Equal(t, 3, result.Metadata.Items)
}

func TestValidateDocument_Empty(t *testing.T) {
	result := NewDocumentValidator().ValidateDocument(renderDoc(t, nil))

	assert.True(t, result.IsValid)
	assert.Contains(t, result.Warnings, "document contains no items")
}

func TestValidateDocument_Tampered(t *testing.T) {
	doc := strings.Replace(renderDoc(t, validItems()), "香水", "豐香", 1)

	result := NewDocumentValidator().ValidateDocument(doc)

	assert.False(t, result.IsValid)
	assert.True(t, result.HasError(metadata.ErrHashMismatch))
}

func TestValidateDocument_MissingMetadata(t *testing.T) {
	_, doc := metadata.Extract(renderDoc(t, validItems()))

	strict := NewDocumentValidator().ValidateDocument(doc)
	assert.False(t, strict.IsValid)
	assert.True(t, strict.HasError(metadata.ErrNoMetadataBlock))

	lenient := (&DocumentValidator{}).ValidateDocument(doc)
	assert.True(t, lenient.IsValid)
	assert.Contains(t, lenient.Warnings, "document has no metadata block")
}

func TestValidateDocument_ItemProblems(t *testing.T) {
	items := append(validItems(),
		models.Item{ID: "var_香水", Category: models.CategoryVariety, Title: "重複", Tags: models.Tags{}},
		models.Item{ID: "", Category: models.CategoryVariety, Title: "無ID", Tags: models.Tags{}},
		models.Item{ID: "x_1", Category: "水果", Title: "未知", Tags: models.Tags{}},
		models.Item{ID: "pest_錯", Category: models.CategoryVariety, Title: "前綴", Tags: models.Tags{}},
		models.Item{ID: "var_空", Category: models.CategoryVariety, Title: " ", Tags: models.Tags{}},
		models.Item{ID: "var_負", Category: models.CategoryVariety, Title: "負", Sugar: -1, Tags: models.Tags{}},
	)

	result := NewDocumentValidator().ValidateDocument(renderDoc(t, items))

	assert.False(t, result.IsValid)

	for _, want := range []error{ErrDuplicateID, ErrEmptyID, ErrUnknownCategory, ErrIDPrefix, ErrEmptyTitle, ErrNegativeSugar} {
		assert.True(t, result.HasError(want), "expected %v", want)
	}

	assert.False(t, result.HasError(metadata.ErrHashMismatch))
	assert.Equal(t, 9, result.Stats.TotalItems)
	assert.Equal(t, 3, result.Stats.ValidItems)
	assert.Equal(t, 6, result.Stats.InvalidItems)
}

func TestValidateDocument_Warnings(t *testing.T) {
	items := validItems()
	items[1].Sugar = 3
	items[2].Images = []string{"ok.jpg", " "}

	result := NewDocumentValidator().ValidateDocument(renderDoc(t, items))

	assert.True(t, result.IsValid)
	assert.Len(t, result.Warnings, 2)
}

func TestValidateDocument_ItemCountMismatch(t *testing.T) {
	_, clean := metadata.Extract(renderDoc(t, validItems()))
	doc := metadata.Sign(clean, metadata.Stamp{Version: site.AssetVersion, Items: 5})

	result := NewDocumentValidator().ValidateDocument(doc)

	assert.False(t, result.IsValid)
	assert.True(t, result.HasError(ErrItemCount))
}

func TestValidateDocument_SlotProblems(t *testing.T) {
	tests := []struct {
		name string
		body string
		want error
	}{
		{"missing slot", `<p>nothing</p>`, ErrMissingDataSlot},
		{"duplicate slot", `<script id="catalog-data" type="application/json">[]</script><script id="catalog-data" type="application/json">[]</script>`, ErrDuplicateDataSlot},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			doc := metadata.Sign("<!DOCTYPE html><html><head></head><body>"+tt.body+"</body></html>", metadata.Stamp{Version: site.AssetVersion})

			result := NewDocumentValidator().ValidateDocument(doc)
			assert.False(t, result.IsValid)
			assert.True(t, result.HasError(tt.want))
		})
	}
}

func TestValidateDocument_NotArray(t *testing.T) {
	doc := metadata.Sign(`<html><head><script id="catalog-data" type="application/json">{"a":1}</script></head></html>`,
		metadata.Stamp{Version: site.AssetVersion})

	result := NewDocumentValidator().ValidateDocument(doc)

	assert.False(t, result.IsValid)
	require.Len(t, result.Errors, 1)
	assert.Contains(t, result.Errors[0].Message, "not a JSON array")
}

func TestValidateIntegrity(t *testing.T) {
	v := NewDocumentValidator()

	assert.True(t, v.ValidateIntegrity(renderDoc(t, validItems())).IsValid)

	old := metadata.Sign("<html></html>", metadata.Stamp{Version: "0.0.1"})
	result := v.ValidateIntegrity(old)
	assert.True(t, result.IsValid)
	require.Len(t, result.Warnings, 1)
	assert.Contains(t, result.Warnings[0], "0.0.1")
}

func TestValidationResult_Print(t *testing.T) {
	items := append(validItems(), models.Item{ID: "var_香水", Category: models.CategoryVariety, Title: "重複", Tags: models.Tags{}})
	result := NewDocumentValidator().ValidateDocument(renderDoc(t, items))

	var buf bytes.Buffer
	result.PrintErrors(&buf)
	result.PrintWarnings(&buf)

	out := buf.String()
	assert.Contains(t, out, "Validation Errors")
	assert.Contains(t, out, "Item 3 [id]")
	assert.Contains(t, out, `Found: "var_香水"`)
	assert.NotContains(t, out, "Validation Warnings")

	assert.True(t, strings.HasPrefix(result.String(), "❌ INVALID"))
	assert.Contains(t, result.String(), "Total: 4")
}
