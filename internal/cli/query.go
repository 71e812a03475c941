package cli

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"berrypedia/internal/browse"
	"berrypedia/internal/formatter"
	"berrypedia/internal/generator"
	"berrypedia/internal/models"
)

// ErrUnknownCategory is returned for a --category value that is neither "all" nor a known category.
var ErrUnknownCategory = errors.New("unknown category")

type queryOptions struct {
	search   string
	category string
	tags     []string
	min      float64
	max      float64
	idsOnly  bool
}

func newQueryCmd(a *app) *cobra.Command {
	opts := &queryOptions{}

	cmd := &cobra.Command{
		Use:   "query",
		Short: "Filter the catalog from the command line, like the page does.",
		Long: `Applies the same search, category, tag and sugar range filters as the generated page and prints the
matching items. The sugar range only applies to "all" and 品種; an item without sugar matches only when
--min is 0.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if opts.category != browse.CategoryAll && !models.Category(opts.category).Valid() {
				return fmt.Errorf("%w: %q (use all, %s)", ErrUnknownCategory, opts.category, joinCategories())
			}

			items, _, err := generator.New(a.cfg, a.log).Items()
			if err != nil {
				return err
			}

			state := browse.NewState(a.cfg.Render.SugarRangeMax)
			state.Query = opts.search
			state.SetCategory(opts.category)

			for _, t := range opts.tags {
				if !state.HasTag(t) {
					state.ToggleTag(t)
				}
			}

			upper := state.RangeMax
			if cmd.Flags().Changed("max") {
				upper = opts.max
			}

			state.SetRange(opts.min, upper)

			matched := browse.FilteredItems(items, state)
			out := cmd.OutOrStdout()

			if opts.idsOnly {
				for _, it := range matched {
					fmt.Fprintln(out, it.ID)
				}

				return nil
			}

			counts := browse.CountItems(items)
			fmt.Fprintf(out, "🔍 %d / %d 筆符合 (品種 %d, 病蟲害 %d, 缺素 %d)\n",
				len(matched), counts.All,
				counts.Get(string(models.CategoryVariety)),
				counts.Get(string(models.CategoryPestDisease)),
				counts.Get(string(models.CategoryDeficiency)))

			if state.RangeApplies() {
				lower, upper := state.Bounds()
				fmt.Fprintf(out, "糖度篩選 (Brix): %s - %s 度\n", formatNumber(lower), formatNumber(upper))
			}

			if tags := browse.AvailableTags(items, state.Category); len(tags) > 0 {
				fmt.Fprintf(out, "特徵標籤: %s\n", strings.Join(tags, " "))
			}

			if len(matched) == 0 {
				fmt.Fprintln(out, "沒有找到相關結果")
				return nil
			}

			rows := make([][]string, 0, len(matched))
			for _, it := range matched {
				rows = append(rows, []string{it.ID, string(it.Category), it.Title, formatNumber(it.Sugar), strings.Join(it.Tags.Values(), ", ")})
			}

			fmt.Fprintln(out)

			for _, line := range formatter.FormatTable([]string{"ID", "分類", "名稱", "糖度", "標籤"}, rows) {
				fmt.Fprintln(out, line)
			}

			return nil
		},
	}

	cmd.Flags().StringVarP(&opts.search, "search", "s", "", "case-insensitive text in title, description or tag values")
	cmd.Flags().StringVarP(&opts.category, "category", "c", browse.CategoryAll, "all, "+joinCategories())
	cmd.Flags().StringSliceVarP(&opts.tags, "tag", "t", nil, "tag value that must be present, repeatable")
	cmd.Flags().Float64Var(&opts.min, "min", browse.DefaultMinSugar, "lower sugar bound (Brix)")
	cmd.Flags().Float64Var(&opts.max, "max", browse.DefaultMaxSugar, "upper sugar bound (Brix), defaults to render.sugar_range_max")
	cmd.Flags().BoolVar(&opts.idsOnly, "ids", false, "print only matching ids, one per line")

	return cmd
}

func joinCategories() string {
	names := make([]string, 0, len(models.Categories))
	for _, c := range models.Categories {
		names = append(names, string(c))
	}

	return strings.Join(names, ", ")
}

func formatNumber(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
