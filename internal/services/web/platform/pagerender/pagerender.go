// Package pagerender centralizes module page rendering behavior.
package pagerender

import (
	"bytes"
	"context"
	"io"
	"net/http"
	"strings"

	"github.com/a-h/templ"

	flashnotice "github.com/direwen/dilemma-web/internal/services/web/platform/flash"
	"github.com/direwen/dilemma-web/internal/services/web/platform/httpx"
	webi18n "github.com/direwen/dilemma-web/internal/services/web/platform/i18n"
	webtemplates "github.com/direwen/dilemma-web/internal/services/web/templates"
)

// ModulePage describes a module page response for both full-page and HTMX flows.
type ModulePage struct {
	Title      string
	StatusCode int
	Fragment   templ.Component
	// Notice is shown on this render in place of any pending flash notice.
	Notice flashnotice.Notice
}

// PageFunc builds a page fragment once the request localizer is known.
type PageFunc func(loc webi18n.Localizer) ModulePage

type emptyComponent struct{}

func (emptyComponent) Render(context.Context, io.Writer) error {
	return nil
}

// WriteModulePage writes a module page inside the shared layout. HTMX
// requests receive only the main content and leave pending notices in place.
func WriteModulePage(w http.ResponseWriter, r *http.Request, build PageFunc) error {
	if w == nil {
		return nil
	}
	loc, lang := webi18n.ResolveLocalizer(w, r)
	page := ModulePage{}
	if build != nil {
		page = build(loc)
	}
	statusCode := page.StatusCode
	if statusCode <= 0 {
		statusCode = http.StatusOK
	}
	fragment := page.Fragment
	if fragment == nil {
		fragment = emptyComponent{}
	}

	ctx := templ.WithChildren(httpx.RequestContext(r), fragment)
	var buf bytes.Buffer
	if httpx.IsHTMXRequest(r) {
		if err := webtemplates.MainContent().Render(ctx, &buf); err != nil {
			return err
		}
	} else {
		layout := webtemplates.Layout(webtemplates.LayoutOptions{
			Title:       page.Title,
			Lang:        lang,
			Loc:         loc,
			Toast:       resolveToast(w, r, loc, page.Notice),
			CurrentPath: requestPath(r),
		})
		if err := layout.Render(ctx, &buf); err != nil {
			return err
		}
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(statusCode)
	_, _ = w.Write(buf.Bytes())
	return nil
}

func resolveToast(w http.ResponseWriter, r *http.Request, loc webi18n.Localizer, inline flashnotice.Notice) *webtemplates.Toast {
	notice, ok := flashnotice.ReadAndClear(w, r)
	if !inline.IsZero() {
		notice, ok = inline, true
	}
	if !ok {
		return nil
	}
	message := strings.TrimSpace(webi18n.Text(loc, notice.Key))
	if message == "" {
		return nil
	}
	return &webtemplates.Toast{
		Kind:    string(notice.Kind),
		Message: message,
	}
}

func requestPath(r *http.Request) string {
	if r == nil || r.URL == nil {
		return ""
	}
	return r.URL.Path
}
