package browse

import (
	"html"
	"regexp"
	"sort"
	"strings"

	"berrypedia/internal/models"

	"github.com/microcosm-cc/bluemonday"
	"golang.org/x/text/cases"
	"golang.org/x/text/collate"
	"golang.org/x/text/language"
)

// tagCollation orders tag chips the way the page does (zh-TW, zhuyin).
var tagCollation = language.MustParse("zh-TW-u-co-zhuyin")

var (
	textPolicy = bluemonday.StrictPolicy()
	lineBreaks = regexp.MustCompile(`(?i)<br\s*/?>`)
)

// SearchText reduces description HTML to the plain text a reader sees, so that queries never
// match markup or entity names.
func SearchText(description string) string {
	if description == "" {
		return ""
	}

	text := lineBreaks.ReplaceAllString(description, " ")

	return html.UnescapeString(textPolicy.Sanitize(text))
}

// FilteredItems returns the items visible under s, in their original order.
func FilteredItems(items []models.Item, s *State) []models.Item {
	fold := cases.Fold()
	query := fold.String(s.Query)
	lower, upper := s.Bounds()
	rangeOn := s.RangeApplies()

	out := make([]models.Item, 0, len(items))

	for _, item := range items {
		if s.Category != CategoryAll && string(item.Category) != s.Category {
			continue
		}

		if query != "" && !matchesQuery(fold, item, query) {
			continue
		}

		if !hasAllTags(item, s.Tags) {
			continue
		}

		if rangeOn && !inRange(item.Sugar, lower, upper) {
			continue
		}

		out = append(out, item)
	}

	return out
}

// AvailableTags lists the distinct tag values of items in the selected category, sorted.
func AvailableTags(items []models.Item, category string) []string {
	seen := make(map[string]bool)

	var tags []string

	for _, item := range items {
		if category != CategoryAll && string(item.Category) != category {
			continue
		}

		for _, v := range item.Tags.Values() {
			if v == "" || seen[v] {
				continue
			}

			seen[v] = true
			tags = append(tags, v)
		}
	}

	SortTags(tags)

	return tags
}

// SortTags sorts tag values in place with the zh-TW zhuyin collation.
func SortTags(tags []string) {
	c := collate.New(tagCollation)

	sort.SliceStable(tags, func(i, j int) bool {
		return c.CompareString(tags[i], tags[j]) < 0
	})
}

// Counts holds the number of items per category.
type Counts struct {
	ByCategory map[models.Category]int
	All        int
}

// Get returns the count for a category id, "all" included.
func (c Counts) Get(category string) int {
	if category == CategoryAll {
		return c.All
	}

	return c.ByCategory[models.Category(category)]
}

// CountItems counts items per category over the whole sequence.
func CountItems(items []models.Item) Counts {
	counts := Counts{ByCategory: make(map[models.Category]int, len(models.Categories)), All: len(items)}
	for _, item := range items {
		counts.ByCategory[item.Category]++
	}

	return counts
}

func matchesQuery(fold cases.Caser, item models.Item, query string) bool {
	if strings.Contains(fold.String(item.Title), query) {
		return true
	}

	if item.Description != "" && strings.Contains(fold.String(SearchText(item.Description)), query) {
		return true
	}

	for _, v := range item.Tags.Values() {
		if v != "" && strings.Contains(fold.String(v), query) {
			return true
		}
	}

	return false
}

func hasAllTags(item models.Item, tags []string) bool {
	if len(tags) == 0 {
		return true
	}

	values := item.Tags.Values()

	for _, want := range tags {
		found := false

		for _, v := range values {
			if v == want {
				found = true
				break
			}
		}

		if !found {
			return false
		}
	}

	return true
}

// inRange treats sugar 0 as "not applicable": such items only show while the lower bound is 0.
func inRange(sugar, lower, upper float64) bool {
	if sugar == 0 {
		return lower == 0
	}

	return sugar >= lower && sugar <= upper
}
