package formatter

import (
	"strings"
	"testing"

	"berrypedia/internal/models"
)

func TestCatalogSummary(t *testing.T) {
	items := []models.Item{
		{ID: "var_香水", Category: models.CategoryVariety, Title: "香水", Sugar: 12.5,
			Images: []string{"a.jpg", "b.jpg"}, Tags: models.Tags{{Key: "顏色", Value: "紅"}, {Key: "來源", Value: "台灣"}}},
		{ID: "pest_白粉病", Category: models.CategoryPestDisease, Title: "白粉病", Tags: models.Tags{}},
		{ID: "def_缺鉀", Category: models.CategoryDeficiency, Title: "缺鉀", Tags: models.Tags{{Key: "元素", Value: "鉀"}}},
	}

	got := CatalogSummary("草莓目錄", items)

	for _, want := range []string{
		"# 草莓目錄\n",
		"共 3 筆資料",
		"| 品種   | 1    |",
		"| 病蟲害 | 1    |",
		"| 缺素   | 1    |",
		"12.5",
		"顏色:紅, 來源:台灣",
		"元素:鉀",
	} {
		if !strings.Contains(got, want) {
			t.Errorf("Expected summary to contain %q, got:\n%s", want, got)
		}
	}

	// Variety row shows sugar and image count, the others show "-".
	lines := strings.Split(got, "\n")

	var pestRow string

	for _, l := range lines {
		if strings.HasPrefix(l, "| pest_白粉病") {
			pestRow = l
		}
	}

	if pestRow == "" {
		t.Fatal("Expected a row for pest_白粉病")
	}

	cells := strings.Split(pestRow, "|")
	if strings.TrimSpace(cells[4]) != "-" || strings.TrimSpace(cells[5]) != "0" {
		t.Errorf("Unexpected pest row cells: %q", pestRow)
	}
}

func TestCatalogSummary_Empty(t *testing.T) {
	got := CatalogSummary("空", nil)

	if !strings.Contains(got, "共 0 筆資料") {
		t.Errorf("Expected zero count, got:\n%s", got)
	}

	if strings.Contains(got, "| ID") {
		t.Errorf("Expected no item table for an empty catalog, got:\n%s", got)
	}
}

func TestCatalogSummary_RealignsUnchanged(t *testing.T) {
	got := CatalogSummary("目錄", []models.Item{
		{ID: "var_a", Category: models.CategoryVariety, Title: "甲", Sugar: 9, Tags: models.Tags{}},
	})

	if FormatMarkdown(got) != got {
		t.Error("Summary tables should already be aligned")
	}
}
