package models

// Category identifies the kind of a display item. The value is shown as the badge text.
type Category string

// Display categories.
const (
	CategoryVariety     Category = "品種"
	CategoryPestDisease Category = "病蟲害"
	CategoryDeficiency  Category = "缺素"
)

// Categories lists the display categories in output order.
var Categories = []Category{CategoryVariety, CategoryPestDisease, CategoryDeficiency}

// Valid reports whether c is one of the known categories.
func (c Category) Valid() bool {
	switch c {
	case CategoryVariety, CategoryPestDisease, CategoryDeficiency:
		return true
	default:
		return false
	}
}

// IDPrefix returns the prefix used to derive item ids.
func (c Category) IDPrefix() string {
	switch c {
	case CategoryVariety:
		return "var_"
	case CategoryPestDisease:
		return "pest_"
	case CategoryDeficiency:
		return "def_"
	default:
		return ""
	}
}

// Font Awesome icon classes used by details and fallbacks.
const (
	IconSeedling = "fa-solid fa-seedling"
	IconEye      = "fa-regular fa-eye"
	IconUtensils = "fa-solid fa-utensils"
	IconDroplet  = "fa-solid fa-droplet"
	IconShield   = "fa-solid fa-shield-virus"
	IconBug      = "fa-solid fa-bug"
	IconBacteria = "fa-solid fa-bacteria"
	IconFlask    = "fa-solid fa-flask"
	IconLeaf     = "fa-solid fa-leaf"
)

// Item is the normalized display entity consumed by the browsing application.
type Item struct {
	ID           string   `json:"id"`
	Category     Category `json:"category"`
	Title        string   `json:"title"`
	Description  string   `json:"description"`
	Tags         Tags     `json:"tags"`
	Sugar        float64  `json:"sugar"`
	Images       []string `json:"images"`
	Details      []Detail `json:"details"`
	Sources      []string `json:"sources"`
	IconFallback string   `json:"icon_fallback"`
}

// Detail is a labelled secondary fact shown in the card footer.
type Detail struct {
	Label string `json:"label"`
	Value string `json:"value"`
	Icon  string `json:"icon"`
}
