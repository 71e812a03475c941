package formatter

import (
	"fmt"
	"strconv"
	"strings"

	"berrypedia/internal/browse"
	"berrypedia/internal/models"
)

// CatalogSummary renders a markdown overview of the normalized catalog: counts per category
// and one row per item.
func CatalogSummary(title string, items []models.Item) string {
	var sb strings.Builder

	fmt.Fprintf(&sb, "# %s\n\n", title)
	fmt.Fprintf(&sb, "共 %d 筆資料\n\n", len(items))

	counts := browse.CountItems(items)

	countRows := make([][]string, 0, len(models.Categories))
	for _, c := range models.Categories {
		countRows = append(countRows, []string{string(c), strconv.Itoa(counts.Get(string(c)))})
	}

	writeLines(&sb, FormatTable([]string{"分類", "筆數"}, countRows))
	sb.WriteString("\n")

	if len(items) == 0 {
		return sb.String()
	}

	rows := make([][]string, 0, len(items))
	for _, item := range items {
		rows = append(rows, []string{
			item.ID,
			string(item.Category),
			item.Title,
			sugarCell(item.Sugar),
			strconv.Itoa(len(item.Images)),
			tagsCell(item.Tags),
		})
	}

	writeLines(&sb, FormatTable([]string{"ID", "分類", "名稱", "糖度", "圖片", "標籤"}, rows))

	return sb.String()
}

func writeLines(sb *strings.Builder, lines []string) {
	for _, l := range lines {
		sb.WriteString(l)
		sb.WriteString("\n")
	}
}

func sugarCell(v float64) string {
	if v <= 0 {
		return "-"
	}

	return strconv.FormatFloat(v, 'f', -1, 64)
}

func tagsCell(tags models.Tags) string {
	parts := make([]string, 0, len(tags))
	for _, t := range tags {
		parts = append(parts, t.Key+":"+t.Value)
	}

	return strings.Join(parts, ", ")
}
