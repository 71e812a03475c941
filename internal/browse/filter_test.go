package browse

import (
	"testing"

	"berrypedia/internal/models"

	"github.com/google/go-cmp/cmp"
)

func fixtureItems() []models.Item {
	return []models.Item{
		{ID: "var_香水", Category: models.CategoryVariety, Title: "香水", Sugar: 12,
			Tags: models.Tags{{Key: "顏色", Value: "紅"}, {Key: "來源", Value: "台灣"}}},
		{ID: "var_White Jewel", Category: models.CategoryVariety, Title: "White Jewel", Sugar: 8,
			Description: "Pale <b>white</b> fruit", Tags: models.Tags{{Key: "顏色", Value: "白"}, {Key: "來源", Value: "日本"}}},
		{ID: "var_無糖", Category: models.CategoryVariety, Title: "無糖", Sugar: 0,
			Tags: models.Tags{{Key: "顏色", Value: "紅"}, {Key: "來源", Value: "日本"}}},
		{ID: "pest_蚜蟲", Category: models.CategoryPestDisease, Title: "蚜蟲",
			Tags: models.Tags{{Key: "類型", Value: "蟲害"}}},
		{ID: "def_缺氮", Category: models.CategoryDeficiency, Title: "缺氮",
			Tags: models.Tags{{Key: "元素", Value: "氮"}}},
	}
}

func ids(items []models.Item) []string {
	out := []string{}
	for _, it := range items {
		out = append(out, it.ID)
	}

	return out
}

func TestFilteredItems(t *testing.T) {
	items := fixtureItems()

	tests := []struct {
		name  string
		setup func(s *State)
		want  []string
	}{
		{
			name:  "Defaults show everything",
			setup: func(s *State) {},
			want:  []string{"var_香水", "var_White Jewel", "var_無糖", "pest_蚜蟲", "def_缺氮"},
		},
		{
			name:  "Category filter",
			setup: func(s *State) { s.SetCategory("病蟲害") },
			want:  []string{"pest_蚜蟲"},
		},
		{
			name:  "Search is case-insensitive over title",
			setup: func(s *State) { s.Query = "white JEWEL" },
			want:  []string{"var_White Jewel"},
		},
		{
			name:  "Search matches description",
			setup: func(s *State) { s.Query = "PALE" },
			want:  []string{"var_White Jewel"},
		},
		{
			name:  "Search matches tag values, not keys",
			setup: func(s *State) { s.Query = "日本" },
			want:  []string{"var_White Jewel", "var_無糖"},
		},
		{
			name:  "Tag key alone does not match",
			setup: func(s *State) { s.Query = "顏色" },
			want:  []string{},
		},
		{
			name: "Tags use AND semantics",
			setup: func(s *State) {
				s.ToggleTag("紅")
				s.ToggleTag("日本")
			},
			want: []string{"var_無糖"},
		},
		{
			name:  "Zero sugar shows when lower bound is 0",
			setup: func(s *State) { s.SetRange(0, 10) },
			want:  []string{"var_White Jewel", "var_無糖", "pest_蚜蟲", "def_缺氮"},
		},
		{
			name:  "Zero sugar hidden when lower bound is raised",
			setup: func(s *State) { s.SetRange(5, 20) },
			want:  []string{"var_香水", "var_White Jewel"},
		},
		{
			name: "Crossed thumbs are ordered",
			setup: func(s *State) {
				s.MinSugar = 13
				s.MaxSugar = 10
			},
			want: []string{"var_香水"},
		},
		{
			name: "Range ignored outside variety category",
			setup: func(s *State) {
				s.SetRange(5, 20)
				s.SetCategory("缺素")
			},
			want: []string{"def_缺氮"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := NewState(20)
			tt.setup(s)

			if diff := cmp.Diff(tt.want, ids(FilteredItems(items, s))); diff != "" {
				t.Errorf("FilteredItems mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestFilteredItems_Idempotent(t *testing.T) {
	items := fixtureItems()

	s := NewState(20)
	s.Query = "紅"
	s.SetRange(0, 15)

	once := FilteredItems(items, s)
	twice := FilteredItems(once, s)

	if diff := cmp.Diff(ids(once), ids(twice)); diff != "" {
		t.Errorf("filtering twice changed the result (-once +twice):\n%s", diff)
	}
}

func TestFilteredItems_RangeBoundary(t *testing.T) {
	zero := []models.Item{{ID: "pest_x", Category: models.CategoryPestDisease, Title: "x"}}

	s := NewState(20)
	if got := FilteredItems(zero, s); len(got) != 1 {
		t.Errorf("sugar 0 under [0,20]: got %d items, want 1", len(got))
	}

	s.SetRange(5, 20)
	if got := FilteredItems(zero, s); len(got) != 0 {
		t.Errorf("sugar 0 under [5,20]: got %d items, want 0", len(got))
	}
}

func TestAvailableTags(t *testing.T) {
	items := fixtureItems()

	got := AvailableTags(items, "病蟲害")
	if diff := cmp.Diff([]string{"蟲害"}, got); diff != "" {
		t.Errorf("AvailableTags mismatch (-want +got):\n%s", diff)
	}

	all := AvailableTags(items, CategoryAll)
	if len(all) != 6 {
		t.Errorf("AvailableTags(all) = %v, want 6 distinct values", all)
	}

	seen := map[string]bool{}
	for _, v := range all {
		if seen[v] {
			t.Errorf("duplicate tag %q", v)
		}

		seen[v] = true
	}
}

func TestSortTags_Latin(t *testing.T) {
	tags := []string{"banana", "Apple", "cherry", "apple"}
	SortTags(tags)

	if tags[len(tags)-1] != "cherry" || tags[len(tags)-2] != "banana" {
		t.Errorf("SortTags = %v", tags)
	}
}

func TestCountItems(t *testing.T) {
	counts := CountItems(fixtureItems())

	want := map[string]int{"all": 5, "品種": 3, "病蟲害": 1, "缺素": 1}
	for cat, n := range want {
		if got := counts.Get(cat); got != n {
			t.Errorf("Get(%q) = %d, want %d", cat, got, n)
		}
	}
}

func TestSearchText(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"Empty", "", ""},
		{"Inline markup", "Pale <b>white</b> fruit", "Pale white fruit"},
		{"Escaped entities", "溫度 &gt; 30 &amp; 濕度 &#34;高&#34;", `溫度 > 30 & 濕度 "高"`},
		{"Line breaks", "第一行<br>第二行", "第一行 第二行"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := SearchText(tt.in); got != tt.want {
				t.Errorf("SearchText(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestFilteredItems_SearchIgnoresMarkup(t *testing.T) {
	items := []models.Item{{
		ID: "pest_灰黴病", Category: models.CategoryPestDisease, Title: "灰黴病",
		Description: "溫度 &gt; 30 &amp; 濕度 &#34;高&#34;<br>葉片<i>褐化</i>",
	}}

	tests := []struct {
		query string
		want  int
	}{
		{"amp", 0},
		{"br", 0},
		{`"高"`, 1},
		{"> 30 &", 1},
		{"葉片褐化", 1},
	}

	for _, tt := range tests {
		t.Run(tt.query, func(t *testing.T) {
			s := NewState(20)
			s.Query = tt.query

			if got := len(FilteredItems(items, s)); got != tt.want {
				t.Errorf("query %q matched %d item(s), want %d", tt.query, got, tt.want)
			}
		})
	}
}
