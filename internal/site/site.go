// Package site renders the catalog into a single self-contained HTML document.
package site

import (
	"bytes"
	"fmt"
	"time"

	"berrypedia/internal/models"
	"berrypedia/pkg/metadata"
)

// AssetURLs are the CDN locations the page loads when opened.
type AssetURLs struct {
	Tailwind    string
	FontAwesome string
	Alpine      string
}

// Options controls the page shell around the application.
type Options struct {
	GeneratedAt    time.Time
	Assets         AssetURLs
	Title          string
	Brand          string
	BrandAccent    string
	Lang           string
	Description    string
	FooterMarkdown string
	SugarRangeMax  float64
}

// DefaultOptions returns the options of the stock knowledge base page.
func DefaultOptions() Options {
	return Options{
		Title:          "草莓知識百科資料庫",
		Brand:          "草莓知識",
		BrandAccent:    "百科",
		Lang:           "zh-TW",
		FooterMarkdown: "資料整理自政府開放資料及各大農業改良場公開資訊\n\n© 2025 草莓知識百科. By XPRAMT",
		SugarRangeMax:  20,
		Assets: AssetURLs{
			Tailwind:    "https://cdn.tailwindcss.com",
			FontAwesome: "https://cdnjs.cloudflare.com/ajax/libs/font-awesome/6.4.0/css/all.min.css",
			Alpine:      "https://cdn.jsdelivr.net/npm/alpinejs@3.x.x/dist/cdn.min.js",
		},
	}
}

// Render produces the signed HTML document for items. It does not touch the filesystem.
func Render(items []models.Item, opts Options) ([]byte, error) {
	data, err := EncodeItems(items)
	if err != nil {
		return nil, err
	}

	rangeMax := opts.SugarRangeMax
	if rangeMax <= 0 {
		rangeMax = DefaultOptions().SugarRangeMax
	}

	settings, err := EncodeSettings(Settings{RangeMax: rangeMax})
	if err != nil {
		return nil, err
	}

	var buf bytes.Buffer
	if err := PageLayout(opts, data, settings).Render(&buf); err != nil {
		return nil, fmt.Errorf("failed to render page: %w", err)
	}

	buf.WriteByte('\n')

	signed := metadata.Sign(buf.String(), metadata.Stamp{
		Version:     AssetVersion,
		Items:       len(items),
		GeneratedAt: opts.GeneratedAt,
	})

	return []byte(signed), nil
}
