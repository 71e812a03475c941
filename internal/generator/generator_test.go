package generator

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"berrypedia/internal/config"
	"berrypedia/internal/loader"
	"berrypedia/internal/validator"
	"berrypedia/pkg/metadata"
)

const fixtures = "../../test/fixtures"

func testConfig(t *testing.T, files ...string) *config.Config {
	t.Helper()

	cfg := config.Default()
	cfg.Input.Files = nil

	for _, f := range files {
		cfg.Input.Files = append(cfg.Input.Files, filepath.Join(fixtures, f))
	}

	cfg.Output.Path = filepath.Join(t.TempDir(), "out", "site.html")

	return cfg
}

func TestRun_WritesValidDocument(t *testing.T) {
	cfg := testConfig(t, "strawberry_varieties.json", "strawberry_disease.json")
	cfg.Output.SummaryPath = filepath.Join(filepath.Dir(cfg.Output.Path), "summary.md")

	g := New(cfg, nil)
	g.SetClock(func() time.Time { return time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC) })

	report, err := g.Run()
	require.NoError(t, err)

	assert.Len(t, report.Items, 7)
	assert.Len(t, report.Results, 2)
	assert.Equal(t, cfg.Output.Path, report.OutputPath)

	data, err := os.ReadFile(cfg.Output.Path)
	require.NoError(t, err)
	assert.Equal(t, report.Bytes, len(data))

	result := validator.NewDocumentValidator().ValidateDocument(string(data))
	assert.True(t, result.IsValid, "errors: %v", result.Errors)
	assert.Equal(t, 7, result.Stats.TotalItems)

	meta, err := metadata.Verify(string(data))
	require.NoError(t, err)
	assert.Equal(t, "2025-06-01T12:00:00Z", meta.LastModify.Format(time.RFC3339))

	summary, err := os.ReadFile(cfg.Output.SummaryPath)
	require.NoError(t, err)
	assert.Contains(t, string(summary), "共 7 筆資料")
	assert.Equal(t, cfg.Output.SummaryPath, report.SummaryPath)
}

func TestItems_Order(t *testing.T) {
	cfg := testConfig(t, "strawberry_disease.json", "strawberry_varieties.json")

	items, _, err := New(cfg, nil).Items()
	require.NoError(t, err)

	ids := make([]string, 0, len(items))
	for _, it := range items {
		ids = append(ids, it.ID)
	}

	assert.Equal(t, []string{
		"var_香水", "var_桃園一號", "var_白雪公主",
		"pest_二點葉蟎", "pest_炭疽病",
		"def_缺鉀", "def_生理障礙",
	}, ids)

	assert.NotContains(t, items[4].Description, "script")
}

func TestRun_MissingFileIsSkipped(t *testing.T) {
	cfg := testConfig(t, "strawberry_varieties.json", "nope.json")

	report, err := New(cfg, nil).Run()
	require.NoError(t, err)

	assert.Len(t, report.Items, 3)
	assert.Equal(t, loader.StatusMissing, report.Results[1].Status)
}

func TestRun_StrictFailsOnMissingFile(t *testing.T) {
	cfg := testConfig(t, "strawberry_varieties.json", "nope.json")
	cfg.Input.Strict = true

	_, err := New(cfg, nil).Run()
	require.Error(t, err)
	assert.True(t, errors.Is(err, loader.ErrLoadFailed))

	_, statErr := os.Stat(cfg.Output.Path)
	assert.True(t, os.IsNotExist(statErr), "nothing should be written")
}

func TestRun_EmptyCatalogWritesNothing(t *testing.T) {
	tests := []struct {
		name  string
		files []string
	}{
		{"empty object", []string{"empty.json"}},
		{"all missing", []string{"a.json", "b.json"}},
		{"broken", []string{"broken.json"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := testConfig(t, tt.files...)

			_, err := New(cfg, nil).Run()
			require.Error(t, err)
			assert.True(t, errors.Is(err, loader.ErrEmptyCatalog))

			_, statErr := os.Stat(cfg.Output.Path)
			assert.True(t, os.IsNotExist(statErr))
		})
	}
}

func TestRun_MalformedRecordsFailRun(t *testing.T) {
	cfg := testConfig(t, "strawberry_varieties.json", "malformed.json")

	report, err := New(cfg, nil).Run()
	require.Error(t, err)
	assert.ErrorIs(t, err, loader.ErrBadRecords)
	assert.Contains(t, err.Error(), "草莓品種[1]")
	assert.Contains(t, err.Error(), "病蟲害: expected an array")

	require.Len(t, report.Results, 2)
	assert.Equal(t, loader.StatusMalformed, report.Results[1].Status)

	_, statErr := os.Stat(cfg.Output.Path)
	assert.True(t, os.IsNotExist(statErr), "nothing should be written")
}

func TestSiteOptions(t *testing.T) {
	cfg := config.Default()
	cfg.Site.Title = "自訂標題"
	cfg.Render.SugarRangeMax = 30
	cfg.Site.Assets.Alpine = "alpine.js"

	opts := New(cfg, nil).SiteOptions()

	assert.Equal(t, "自訂標題", opts.Title)
	assert.Equal(t, 30.0, opts.SugarRangeMax)
	assert.Equal(t, "alpine.js", opts.Assets.Alpine)
	assert.False(t, opts.GeneratedAt.IsZero())
}

func TestWriteFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "nested", "file.html")

	require.NoError(t, WriteFile(path, []byte("one")))
	require.NoError(t, WriteFile(path, []byte("two")))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "two", string(data))

	entries, err := os.ReadDir(filepath.Dir(path))
	require.NoError(t, err)

	for _, e := range entries {
		assert.False(t, strings.HasPrefix(e.Name(), "."), "temp file left behind: %s", e.Name())
	}
}
