// Package models defines the raw catalog records and the normalized display items.
package models

// Source keys of the three categories in the input documents.
const (
	KeyVarieties    = "草莓品種"
	KeyPestDiseases = "病蟲害"
	KeyDeficiencies = "缺素"
)

// Variety is a strawberry cultivar record.
type Variety struct {
	Sugar      *float64 `json:"糖度,omitempty"`
	Name       string   `json:"名稱"`
	Appearance string   `json:"外形外觀,omitempty"`
	Texture    string   `json:"口味口感,omitempty"`
	Nursery    string   `json:"育苗簡介,omitempty"`
	Tags       Tags     `json:"tag"`
	Images     []string `json:"img"`
	Sources    []string `json:"資料來源"`
}

// PestDisease is a pest or disease record. The 類型 tag decides the fallback icon.
type PestDisease struct {
	Name     string   `json:"名稱"`
	Symptoms string   `json:"症狀,omitempty"`
	Control  string   `json:"防治方法,omitempty"`
	Tags     Tags     `json:"tag"`
	Images   []string `json:"img"`
	Sources  []string `json:"資料來源"`
}

// Deficiency is a nutrient deficiency record.
type Deficiency struct {
	Element  *string  `json:"缺哪種元素,omitempty"`
	Name     string   `json:"名稱"`
	Symptoms string   `json:"症狀,omitempty"`
	Images   []string `json:"img"`
	Sources  []string `json:"資料來源"`
}

// Catalog groups the raw records of every category.
type Catalog struct {
	// Keys lists the category keys present in the source, in document order.
	Keys         []string
	Varieties    []Variety
	PestDiseases []PestDisease
	Deficiencies []Deficiency
}

// Len returns the total number of records.
func (c *Catalog) Len() int {
	if c == nil {
		return 0
	}

	return len(c.Varieties) + len(c.PestDiseases) + len(c.Deficiencies)
}

// Has reports whether the category key was present in the source.
func (c *Catalog) Has(key string) bool {
	if c == nil {
		return false
	}

	for _, k := range c.Keys {
		if k == key {
			return true
		}
	}

	return false
}

// Empty reports whether no category key survived loading.
func (c *Catalog) Empty() bool {
	return c == nil || len(c.Keys) == 0
}
