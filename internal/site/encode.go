package site

import (
	"bytes"
	"encoding/json"
	"fmt"

	"berrypedia/internal/models"
)

// Settings is written to the settings slot and read by the application at start-up.
type Settings struct {
	RangeMax float64 `json:"rangeMax"`
}

var scriptEscaper = []struct{ old, new []byte }{
	{[]byte("<!--"), []byte(`\u003c!--`)},
	{[]byte("</"), []byte(`<\/`)},
}

// EncodeItems serializes items for the data slot. Non-ASCII text is kept as is and an empty
// input becomes []. The result never contains "</" or "<!--", so it cannot end or confuse the
// script element that holds it.
func EncodeItems(items []models.Item) ([]byte, error) {
	if items == nil {
		items = []models.Item{}
	}

	return encodeSlot(items)
}

// EncodeSettings serializes settings for the settings slot.
func EncodeSettings(s Settings) ([]byte, error) {
	return encodeSlot(s)
}

func encodeSlot(v any) ([]byte, error) {
	var buf bytes.Buffer

	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)

	if err := enc.Encode(v); err != nil {
		return nil, fmt.Errorf("failed to encode data slot: %w", err)
	}

	out := bytes.TrimRight(buf.Bytes(), "\n")
	for _, r := range scriptEscaper {
		out = bytes.ReplaceAll(out, r.old, r.new)
	}

	return out, nil
}

// DecodeItems reads items back from a data slot.
func DecodeItems(data []byte) ([]models.Item, error) {
	var items []models.Item
	if err := json.Unmarshal(data, &items); err != nil {
		return nil, fmt.Errorf("failed to decode data slot: %w", err)
	}

	return items, nil
}
