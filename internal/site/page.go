package site

import (
	"github.com/gomarkdown/markdown"
	"github.com/gomarkdown/markdown/parser"
	"github.com/microcosm-cc/bluemonday"
	g "maragu.dev/gomponents"
	. "maragu.dev/gomponents/html" // Using . import for convenience with html tags
)

// Slot element ids. The application reads both on start-up.
const (
	DataSlotID     = "catalog-data"
	SettingsSlotID = "catalog-settings"
)

// PageLayout builds the full document around the embedded application.
func PageLayout(opts Options, data, settings []byte) g.Node {
	return g.Group([]g.Node{
		g.Raw("<!DOCTYPE html>"),
		HTML(Lang(opts.Lang), Class("scroll-smooth"),
			Head(
				Meta(Charset("UTF-8")),
				Meta(Name("viewport"), Content("width=device-width, initial-scale=1.0")),
				g.If(opts.Description != "",
					Meta(Name("description"), Content(opts.Description)),
				),
				Meta(Name("generator"), Content("berrypedia "+AssetVersion)),
				TitleEl(g.Text(opts.Title)),
				Script(Src(opts.Assets.Tailwind)),
				Link(Rel("stylesheet"), Href(opts.Assets.FontAwesome)),
				Script(g.Raw(tailwindConfig)),
				StyleEl(g.Raw(stylesheet)),
				Script(ID(DataSlotID), Type("application/json"), g.Raw(string(data))),
				Script(ID(SettingsSlotID), Type("application/json"), g.Raw(string(settings))),
				Script(g.Raw(appScript)),
				Script(Defer(), Src(opts.Assets.Alpine)),
			),
			Body(Class("bg-gray-50 text-slate-900 dark:bg-black dark:text-gray-100 transition-colors duration-300 min-h-screen"),
				g.Attr("x-data", "appData()"),
				g.Attr("x-init", "initTheme()"),
				g.Attr("@keydown.window.escape", "closeLightbox()"),
				g.Attr("@keydown.window.arrow-right", "nextLightboxImage()"),
				g.Attr("@keydown.window.arrow-left", "prevLightboxImage()"),
				Navbar(opts),
				g.Raw(bodyMarkup),
				PageFooter(opts.FooterMarkdown),
			),
		),
	})
}

// Navbar renders the sticky top bar with the brand, search box and theme menu.
func Navbar(opts Options) g.Node {
	return Nav(Class("sticky top-0 z-50 bg-white/90 dark:bg-black/90 backdrop-blur-md border-b border-gray-200 dark:border-gray-800 shadow-sm"),
		Div(Class("max-w-7xl mx-auto px-4 sm:px-6 lg:px-8"),
			Div(Class("flex flex-col md:flex-row justify-between items-center h-auto md:h-16 py-3 md:py-0 gap-4 md:gap-0"),
				Div(Class("flex items-center gap-3 cursor-pointer"), g.Attr("@click", "resetFilters()"),
					Div(Class("bg-strawberry-100 dark:bg-strawberry-900 p-2 rounded-full"),
						I(Class("fa-solid fa-book-open text-strawberry-600 dark:text-strawberry-300 text-xl")),
					),
					Span(Class("font-bold text-xl tracking-tight"),
						g.Text(opts.Brand),
						g.If(opts.BrandAccent != "", Span(Class("text-strawberry-600"), g.Text(opts.BrandAccent))),
					),
				),
				Div(Class("flex items-center gap-4 w-full md:w-auto justify-end"),
					searchBox(),
					themeMenu(),
				),
			),
		),
	)
}

func searchBox() g.Node {
	return Div(Class("relative w-full md:w-64"),
		Input(Type("text"), g.Attr("x-model", "searchQuery"), Placeholder("搜尋..."),
			Class("w-full pl-10 pr-4 py-2 rounded-full bg-gray-100 dark:bg-gray-800 focus:ring-2 focus:ring-strawberry-500 focus:outline-none transition-all text-sm border border-transparent focus:bg-white dark:focus:bg-gray-900 border-gray-200 dark:border-gray-700"),
		),
		I(Class("fa-solid fa-search absolute left-3 top-2.5 text-gray-400")),
		Button(g.Attr("x-show", "searchQuery"), g.Attr("@click", "searchQuery = ''"),
			Class("absolute right-3 top-2.5 text-gray-400 hover:text-gray-600 dark:hover:text-gray-200"),
			I(Class("fa-solid fa-xmark")),
		),
	)
}

func themeMenu() g.Node {
	item := func(theme, icon, label string) g.Node {
		return Button(g.Attr("@click", "setTheme('"+theme+"')"),
			Class("block w-full text-left px-4 py-2 hover:bg-gray-100 dark:hover:bg-gray-800 flex items-center gap-2"),
			I(Class(icon)), g.Text(" "+label),
		)
	}

	return Div(Class("relative"), g.Attr("x-data", "{ open: false }"),
		Button(g.Attr("@click", "open = !open"), g.Attr("@click.outside", "open = false"),
			Class("p-2 rounded-full hover:bg-gray-200 dark:hover:bg-gray-800 transition"),
			I(Class("fa-solid"), g.Attr(":class", "themeIcon")),
		),
		Div(g.Attr("x-show", "open"), g.Attr("x-transition"),
			Class("absolute right-0 mt-2 w-32 bg-white dark:bg-gray-900 rounded-lg shadow-xl border border-gray-100 dark:border-gray-700 py-2 text-sm z-50"),
			item("light", "fa-regular fa-sun text-yellow-500", "亮色"),
			item("dark", "fa-regular fa-moon text-indigo-400", "暗色"),
			item("system", "fa-solid fa-desktop text-gray-500", "系統"),
		),
	)
}

// PageFooter renders the footer text from markdown.
func PageFooter(md string) g.Node {
	return Footer(Class("bg-white dark:bg-black border-t border-gray-200 dark:border-gray-800 py-8 mt-12"),
		Div(Class("max-w-7xl mx-auto px-4 text-center text-sm text-gray-500 dark:text-gray-400 space-y-2"),
			g.Raw(RenderMarkdown(md)),
		),
	)
}

// RenderMarkdown converts markdown to sanitized HTML.
func RenderMarkdown(md string) string {
	if md == "" {
		return ""
	}

	extensions := parser.CommonExtensions | parser.AutoHeadingIDs
	p := parser.NewWithExtensions(extensions)

	htmlOutput := markdown.ToHTML([]byte(md), p, nil)

	return string(bluemonday.UGCPolicy().SanitizeBytes(htmlOutput))
}
