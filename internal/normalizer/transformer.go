package normalizer

import (
	"strconv"
	"strings"

	"berrypedia/internal/models"

	"github.com/microcosm-cc/bluemonday"
)

// Detail labels and fixed values shown by the browsing application.
const (
	LabelSugar      = "糖度"
	LabelAppearance = "外觀"
	LabelTexture    = "口感"
	LabelControl    = "防治重點"
	LabelElement    = "缺乏元素"

	TagType    = "類型"
	TagElement = "元素"

	// InsectMarker in a pest's 類型 tag selects the bug icon.
	InsectMarker   = "蟲"
	UnknownElement = "未知"
)

// Options controls the description conversion.
type Options struct {
	// SanitizeHTML strips unsafe markup from free-text fields before embedding.
	SanitizeHTML bool
}

// DefaultOptions returns the options used by the generate command.
func DefaultOptions() Options {
	return Options{SanitizeHTML: true}
}

// Transformer converts raw records into display items.
type Transformer struct {
	policy   *bluemonday.Policy
	newlines *strings.Replacer
}

// NewTransformer creates a new transformer instance.
func NewTransformer(opts Options) *Transformer {
	t := &Transformer{
		newlines: strings.NewReplacer("\r\n", "<br>", "\n", "<br>"),
	}

	if opts.SanitizeHTML {
		t.policy = bluemonday.UGCPolicy()
	}

	return t
}

// Transform maps every record. Varieties come first, then pests/diseases, then deficiencies.
func (t *Transformer) Transform(catalog *models.Catalog) []models.Item {
	items := make([]models.Item, 0, catalog.Len())

	for _, rec := range catalog.Varieties {
		items = append(items, t.Variety(rec))
	}

	for _, rec := range catalog.PestDiseases {
		items = append(items, t.PestDisease(rec))
	}

	for _, rec := range catalog.Deficiencies {
		items = append(items, t.Deficiency(rec))
	}

	return items
}

// Variety maps a cultivar. The sugar detail, when present, always leads.
func (t *Transformer) Variety(rec models.Variety) models.Item {
	sugar := 0.0
	if rec.Sugar != nil && *rec.Sugar > 0 {
		sugar = *rec.Sugar
	}

	details := []models.Detail{}

	if rec.Appearance != "" {
		details = append(details, models.Detail{Label: LabelAppearance, Value: rec.Appearance, Icon: models.IconEye})
	}

	if rec.Texture != "" {
		details = append(details, models.Detail{Label: LabelTexture, Value: rec.Texture, Icon: models.IconUtensils})
	}

	if sugar > 0 {
		details = append([]models.Detail{{
			Label: LabelSugar,
			Value: "約 " + FormatSugar(sugar) + " 度 (Brix)",
			Icon:  models.IconDroplet,
		}}, details...)
	}

	return models.Item{
		ID:           itemID(models.CategoryVariety, rec.Name),
		Category:     models.CategoryVariety,
		Title:        rec.Name,
		Description:  t.Description(rec.Nursery),
		Tags:         rec.Tags.Clone(),
		Sugar:        sugar,
		Images:       orEmpty(rec.Images),
		Details:      details,
		Sources:      orEmpty(rec.Sources),
		IconFallback: models.IconSeedling,
	}
}

// PestDisease maps a pest or disease record.
func (t *Transformer) PestDisease(rec models.PestDisease) models.Item {
	details := []models.Detail{}
	if rec.Control != "" {
		details = append(details, models.Detail{Label: LabelControl, Value: rec.Control, Icon: models.IconShield})
	}

	return models.Item{
		ID:           itemID(models.CategoryPestDisease, rec.Name),
		Category:     models.CategoryPestDisease,
		Title:        rec.Name,
		Description:  t.Description(rec.Symptoms),
		Tags:         rec.Tags.Clone(),
		Images:       orEmpty(rec.Images),
		Details:      details,
		Sources:      orEmpty(rec.Sources),
		IconFallback: PestIcon(rec.Tags),
	}
}

// Deficiency maps a deficiency record. Its tags hold only the deficient element.
func (t *Transformer) Deficiency(rec models.Deficiency) models.Item {
	element := UnknownElement
	if rec.Element != nil {
		element = *rec.Element
	}

	details := []models.Detail{}
	if rec.Element != nil && *rec.Element != "" {
		details = append(details, models.Detail{Label: LabelElement, Value: *rec.Element, Icon: models.IconFlask})
	}

	return models.Item{
		ID:           itemID(models.CategoryDeficiency, rec.Name),
		Category:     models.CategoryDeficiency,
		Title:        rec.Name,
		Description:  t.Description(rec.Symptoms),
		Tags:         models.Tags{{Key: TagElement, Value: element}},
		Images:       orEmpty(rec.Images),
		Details:      details,
		Sources:      orEmpty(rec.Sources),
		IconFallback: models.IconLeaf,
	}
}

// Description sanitizes free text (when enabled) and turns newlines into <br>.
func (t *Transformer) Description(text string) string {
	if text == "" {
		return ""
	}

	if t.policy != nil {
		text = t.policy.Sanitize(text)
	}

	return t.newlines.Replace(text)
}

// PestIcon picks the bug icon for insects and the bacteria icon otherwise.
func PestIcon(tags models.Tags) string {
	if kind, ok := tags.Get(TagType); ok && strings.Contains(kind, InsectMarker) {
		return models.IconBug
	}

	return models.IconBacteria
}

// FormatSugar renders a Brix value with the shortest exact decimal form.
func FormatSugar(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

func itemID(category models.Category, name string) string {
	return category.IDPrefix() + name
}

func orEmpty(s []string) []string {
	if s == nil {
		return []string{}
	}

	out := make([]string, len(s))
	copy(out, s)

	return out
}
