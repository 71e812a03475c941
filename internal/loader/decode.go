package loader

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"

	"berrypedia/internal/models"

	"github.com/tidwall/gjson"
)

// Decode errors.
var (
	ErrInvalidJSON = errors.New("invalid JSON")
	ErrNotObject   = errors.New("top level is not an object")
	ErrMalformed   = errors.New("malformed records")
)

// MalformedError lists every record or category value with the wrong shape.
type MalformedError struct {
	Problems []string
}

func (e *MalformedError) Error() string {
	return fmt.Sprintf("%d malformed value(s): %s", len(e.Problems), strings.Join(e.Problems, "; "))
}

func (e *MalformedError) Unwrap() error {
	return ErrMalformed
}

// Raw field names of the source records.
const (
	fieldName       = "名稱"
	fieldSugar      = "糖度"
	fieldAppearance = "外形外觀"
	fieldTexture    = "口味口感"
	fieldNursery    = "育苗簡介"
	fieldSymptoms   = "症狀"
	fieldControl    = "防治方法"
	fieldElement    = "缺哪種元素"
	fieldTags       = "tag"
	fieldImages     = "img"
	fieldSources    = "資料來源"
)

// Decode parses a catalog document. Warnings describe values that were coerced or ignored.
// A category that is not an array, or a record that is not an object, fails the whole document
// with a *MalformedError.
func Decode(data []byte) (*models.Catalog, []string, error) {
	if !gjson.ValidBytes(data) {
		return nil, nil, ErrInvalidJSON
	}

	root := gjson.ParseBytes(data)
	if !root.IsObject() {
		return nil, nil, ErrNotObject
	}

	d := &decoder{catalog: &models.Catalog{}}

	root.ForEach(func(key, value gjson.Result) bool {
		d.category(key.String(), value)
		return true
	})

	if len(d.problems) > 0 {
		return nil, d.warnings, &MalformedError{Problems: d.problems}
	}

	return d.catalog, d.warnings, nil
}

type decoder struct {
	catalog  *models.Catalog
	warnings []string
	problems []string
}

func (d *decoder) failf(format string, args ...any) {
	d.problems = append(d.problems, fmt.Sprintf(format, args...))
}

func (d *decoder) warnf(format string, args ...any) {
	d.warnings = append(d.warnings, fmt.Sprintf(format, args...))
}

func (d *decoder) category(key string, value gjson.Result) {
	switch key {
	case models.KeyVarieties, models.KeyPestDiseases, models.KeyDeficiencies:
	default:
		d.warnf("ignoring unknown category %q", key)
		return
	}

	if !d.catalog.Has(key) {
		d.catalog.Keys = append(d.catalog.Keys, key)
	}

	if !value.IsArray() {
		d.failf("%s: expected an array of records, got %s", key, value.Type)
		return
	}

	var objects []map[string]gjson.Result

	for i, rec := range value.Array() {
		if !rec.IsObject() {
			d.failf("%s[%d]: record is not an object (%s)", key, i, rec.Type)
			continue
		}

		objects = append(objects, fields(rec))
	}

	// A repeated key replaces the earlier array, as a JSON object decoder would.
	switch key {
	case models.KeyVarieties:
		d.catalog.Varieties = make([]models.Variety, 0, len(objects))
		for _, f := range objects {
			d.catalog.Varieties = append(d.catalog.Varieties, d.variety(f))
		}
	case models.KeyPestDiseases:
		d.catalog.PestDiseases = make([]models.PestDisease, 0, len(objects))
		for _, f := range objects {
			d.catalog.PestDiseases = append(d.catalog.PestDiseases, d.pestDisease(f))
		}
	case models.KeyDeficiencies:
		d.catalog.Deficiencies = make([]models.Deficiency, 0, len(objects))
		for _, f := range objects {
			d.catalog.Deficiencies = append(d.catalog.Deficiencies, d.deficiency(f))
		}
	}
}

func (d *decoder) variety(f map[string]gjson.Result) models.Variety {
	name := text(f[fieldName])

	return models.Variety{
		Name:       name,
		Sugar:      d.sugar(name, f[fieldSugar]),
		Appearance: text(f[fieldAppearance]),
		Texture:    text(f[fieldTexture]),
		Nursery:    text(f[fieldNursery]),
		Tags:       tags(f[fieldTags]),
		Images:     list(f[fieldImages]),
		Sources:    list(f[fieldSources]),
	}
}

func (d *decoder) pestDisease(f map[string]gjson.Result) models.PestDisease {
	return models.PestDisease{
		Name:     text(f[fieldName]),
		Symptoms: text(f[fieldSymptoms]),
		Control:  text(f[fieldControl]),
		Tags:     tags(f[fieldTags]),
		Images:   list(f[fieldImages]),
		Sources:  list(f[fieldSources]),
	}
}

func (d *decoder) deficiency(f map[string]gjson.Result) models.Deficiency {
	var element *string

	if r, ok := f[fieldElement]; ok && r.Type != gjson.Null {
		v := text(r)
		element = &v
	}

	return models.Deficiency{
		Name:     text(f[fieldName]),
		Element:  element,
		Symptoms: text(f[fieldSymptoms]),
		Images:   list(f[fieldImages]),
		Sources:  list(f[fieldSources]),
	}
}

// sugar accepts finite numbers and numeric strings; anything else counts as absent.
func (d *decoder) sugar(name string, r gjson.Result) *float64 {
	switch r.Type {
	case gjson.Number:
		return d.finite(name, r.Raw, r.Float())
	case gjson.String:
		v, err := strconv.ParseFloat(strings.TrimSpace(r.Str), 64)
		if err != nil {
			d.warnf("%s: %s %q is not a number, ignored", name, fieldSugar, r.Str)
			return nil
		}

		return d.finite(name, r.Str, v)
	case gjson.Null:
		return nil
	default:
		if r.Exists() {
			d.warnf("%s: %s has unsupported type %s, ignored", name, fieldSugar, r.Type)
		}

		return nil
	}
}

func (d *decoder) finite(name, raw string, v float64) *float64 {
	if math.IsInf(v, 0) || math.IsNaN(v) {
		d.warnf("%s: %s %s is not a finite number, ignored", name, fieldSugar, raw)
		return nil
	}

	return &v
}

func fields(rec gjson.Result) map[string]gjson.Result {
	out := make(map[string]gjson.Result)

	rec.ForEach(func(key, value gjson.Result) bool {
		out[key.String()] = value
		return true
	})

	return out
}

// text returns scalar values as strings; objects, arrays and null read as empty.
func text(r gjson.Result) string {
	switch r.Type {
	case gjson.String:
		return r.Str
	case gjson.Number, gjson.True, gjson.False:
		return r.Raw
	default:
		return ""
	}
}

// list reads an array of scalars. A lone string is treated as a one-element list.
func list(r gjson.Result) []string {
	out := []string{}

	switch {
	case r.IsArray():
		for _, v := range r.Array() {
			if s := text(v); s != "" {
				out = append(out, s)
			}
		}
	case r.Type == gjson.String && r.Str != "":
		out = append(out, r.Str)
	}

	return out
}

// tags reads an object of scalar values in document order, dropping nulls and nested values.
func tags(r gjson.Result) models.Tags {
	out := models.Tags{}
	if !r.IsObject() {
		return out
	}

	r.ForEach(func(key, value gjson.Result) bool {
		switch value.Type {
		case gjson.String, gjson.Number, gjson.True, gjson.False:
			out = out.Set(key.String(), text(value))
		}

		return true
	})

	return out
}
