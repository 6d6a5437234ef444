// Package templates renders the survey pages as templ components.
package templates

import (
	"context"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/a-h/templ"
)

// markup writes escaped HTML and keeps the first write error.
type markup struct {
	ctx context.Context
	w   io.Writer
	err error
}

func newMarkup(ctx context.Context, w io.Writer) *markup {
	return &markup{ctx: ctx, w: w}
}

// raw writes trusted markup.
func (m *markup) raw(parts ...string) {
	for _, part := range parts {
		if m.err != nil {
			return
		}
		_, m.err = io.WriteString(m.w, part)
	}
}

// text writes an escaped text node or attribute value.
func (m *markup) text(value string) {
	m.raw(templ.EscapeString(value))
}

func (m *markup) number(value int) {
	m.raw(strconv.Itoa(value))
}

// href writes a sanitized URL attribute value.
func (m *markup) href(value string) {
	m.text(string(templ.URL(value)))
}

func (m *markup) child(c templ.Component) {
	if m.err != nil || c == nil {
		return
	}
	m.err = c.Render(m.ctx, m.w)
}

// component adapts a markup body into a templ.Component.
func component(body func(m *markup)) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		m := newMarkup(ctx, w)
		body(m)
		return m.err
	})
}

func pct(value float64) string {
	return fmt.Sprintf("%.1f%%", value)
}

// Toast is a one-time notice rendered above the page body.
type Toast struct {
	Kind    string
	Message string
}

// LayoutOptions configures the page shell.
type LayoutOptions struct {
	Title       string
	Lang        string
	Loc         Localizer
	Toast       *Toast
	CurrentPath string
}

func (o LayoutOptions) pageTitle(appName string) string {
	switch title := strings.TrimSpace(o.Title); {
	case title == "":
		return appName
	case o.Loc == nil:
		return title
	default:
		return o.Loc.Sprintf("title.page", title)
	}
}

// Layout wraps the context children in the full page shell.
func Layout(opts LayoutOptions) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		appName := T(opts.Loc, "app.name")
		lang := strings.TrimSpace(opts.Lang)
		if lang == "" {
			lang = "en"
		}
		m := newMarkup(ctx, w)
		m.raw(`<!doctype html>`, "\n", `<html lang="`)
		m.text(lang)
		m.raw(`">`, "\n<head>\n", `<meta charset="utf-8">`, "\n",
			`<meta name="viewport" content="width=device-width, initial-scale=1">`, "\n",
			`<meta name="description" content="`)
		m.text(T(opts.Loc, "meta.description"))
		m.raw(`">`, "\n<title>")
		m.text(opts.pageTitle(appName))
		m.raw("</title>\n",
			`<link rel="stylesheet" href="/static/app.css">`, "\n",
			`<script src="https://unpkg.com/htmx.org@2.0.4" defer></script>`, "\n",
			`<script src="/static/app.js" defer></script>`, "\n</head>\n",
			`<body hx-boost="true">`, "\n",
			`<header class="site-header"><a href="/" class="brand">`)
		m.text(appName)
		m.raw("</a></header>\n")
		if toast := opts.Toast; toast != nil {
			m.raw(`<div id="app-toast" class="toast toast-`)
			m.text(toast.Kind)
			m.raw(`" role="status">`)
			m.text(toast.Message)
			m.raw("</div>")
		}
		m.raw("\n", `<main id="main" class="main">`)
		m.child(templ.GetChildren(ctx))
		m.raw("</main>\n</body>\n</html>\n")
		return m.err
	})
}

// MainContent renders the context children inside the main element, for
// HTMX swaps that replace only the page body.
func MainContent() templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		m := newMarkup(ctx, w)
		m.raw(`<main id="main" class="main">`)
		m.child(templ.GetChildren(ctx))
		m.raw(`</main>`)
		return m.err
	})
}
