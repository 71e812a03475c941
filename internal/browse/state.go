// Package browse models the state of the embedded browsing application and derives its views.
//
// The functions here mirror the client script shipped in the generated page, so the filtering
// rules can be exercised without a browser.
package browse

import (
	"berrypedia/internal/models"
)

// CategoryAll selects every category.
const CategoryAll = "all"

// Default sugar range of the slider, in degrees Brix.
const (
	DefaultMinSugar = 0
	DefaultMaxSugar = 20
)

// Theme preferences.
const (
	ThemeSystem = "system"
	ThemeLight  = "light"
	ThemeDark   = "dark"
)

// State is the mutable UI state. The item sequence itself is never modified.
type State struct {
	Carousel map[string]int
	Lightbox Lightbox
	Query    string
	Category string
	Theme    string
	Tags     []string
	MinSugar float64
	MaxSugar float64
	RangeMax float64
}

// NewState returns the initial state with a slider bounded by rangeMax (20 when not positive).
func NewState(rangeMax float64) *State {
	if rangeMax <= 0 {
		rangeMax = DefaultMaxSugar
	}

	return &State{
		Category: CategoryAll,
		MinSugar: DefaultMinSugar,
		MaxSugar: rangeMax,
		RangeMax: rangeMax,
		Theme:    ThemeSystem,
		Carousel: map[string]int{},
	}
}

// SetCategory selects a category filter; unknown values fall back to all.
func (s *State) SetCategory(category string) {
	if category == CategoryAll || models.Category(category).Valid() {
		s.Category = category
		return
	}

	s.Category = CategoryAll
}

// ToggleTag adds the tag to the active filters, or removes it when already active.
func (s *State) ToggleTag(tag string) {
	for i, t := range s.Tags {
		if t == tag {
			s.Tags = append(s.Tags[:i:i], s.Tags[i+1:]...)
			return
		}
	}

	s.Tags = append(s.Tags, tag)
}

// HasTag reports whether tag is an active filter.
func (s *State) HasTag(tag string) bool {
	for _, t := range s.Tags {
		if t == tag {
			return true
		}
	}

	return false
}

// SetRange sets both slider thumbs, clamped to [0, RangeMax], and orders them.
func (s *State) SetRange(lower, upper float64) {
	s.MinSugar = clamp(lower, 0, s.RangeMax)
	s.MaxSugar = clamp(upper, 0, s.RangeMax)
	s.ValidateRange()
}

// ValidateRange swaps the thumbs when they cross.
func (s *State) ValidateRange() {
	if s.MinSugar > s.MaxSugar {
		s.MinSugar, s.MaxSugar = s.MaxSugar, s.MinSugar
	}
}

// Bounds returns the effective inclusive range regardless of thumb order.
func (s *State) Bounds() (lower, upper float64) {
	return min(s.MinSugar, s.MaxSugar), max(s.MinSugar, s.MaxSugar)
}

// RangeApplies reports whether the sugar range takes part in filtering for the current category.
func (s *State) RangeApplies() bool {
	return s.Category == CategoryAll || s.Category == string(models.CategoryVariety)
}

// HasActiveFilters reports whether tags or a narrowed range are active. It drives the small reset link.
func (s *State) HasActiveFilters() bool {
	return len(s.Tags) > 0 || s.MinSugar > 0 || s.MaxSugar < s.RangeMax
}

// Reset clears search, category, tags and range back to their defaults.
func (s *State) Reset() {
	s.Query = ""
	s.Category = CategoryAll
	s.Tags = nil
	s.MinSugar = DefaultMinSugar
	s.MaxSugar = s.RangeMax
}

// SetTheme stores the theme preference; unknown values mean system.
func (s *State) SetTheme(theme string) {
	switch theme {
	case ThemeLight, ThemeDark:
		s.Theme = theme
	default:
		s.Theme = ThemeSystem
	}
}

// ImageIndex returns the carousel position of a card.
func (s *State) ImageIndex(itemID string) int {
	return s.Carousel[itemID]
}

// NextImage advances a card's carousel, wrapping around.
func (s *State) NextImage(item models.Item) int {
	return s.stepImage(item, 1)
}

// PrevImage moves a card's carousel back, wrapping around.
func (s *State) PrevImage(item models.Item) int {
	return s.stepImage(item, -1)
}

func (s *State) stepImage(item models.Item, delta int) int {
	n := len(item.Images)
	if n == 0 {
		return 0
	}

	if s.Carousel == nil {
		s.Carousel = map[string]int{}
	}

	idx := (s.Carousel[item.ID] + delta + n) % n
	s.Carousel[item.ID] = idx

	return idx
}

func clamp(v, lo, hi float64) float64 {
	return max(lo, min(v, hi))
}
