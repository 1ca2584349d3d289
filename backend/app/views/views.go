// Package views renders the HTML pages. Templates ship embedded in the
// binary; a directory on disk can replace them and be reloaded while the
// server runs.
package views

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
	"io"
	"io/fs"
	"path"
	"strconv"
	"strings"
	"sync"
	"time"

	"wine-cellar/backend/app/models"
)

//go:embed templates/*.html
var embedded embed.FS

//go:embed static
var static embed.FS

const layoutFile = "layout.html"

// Page names.
const (
	Login   = "login"
	Index   = "index"
	Results = "results"
	Add     = "add"
	Edit    = "edit"
	Show    = "show"
)

// Page is the data every view receives. User is nil on the login page.
type Page struct {
	User  *models.User
	Wines []models.Wine
	Wine  *models.Wine
	Query string
}

// Templates returns the embedded template tree.
func Templates() fs.FS {
	sub, _ := fs.Sub(embedded, "templates")
	return sub
}

// Static returns the embedded stylesheet tree served under /public/.
func Static() fs.FS {
	sub, _ := fs.Sub(static, "static")
	return sub
}

type Renderer struct {
	fsys fs.FS

	mu    sync.RWMutex
	pages map[string]*template.Template
}

func New(fsys fs.FS) (*Renderer, error) {
	r := &Renderer{fsys: fsys}
	if err := r.Reload(); err != nil {
		return nil, err
	}
	return r, nil
}

// Reload parses every page again. On failure the previous pages stay live.
func (r *Renderer) Reload() error {
	pages, err := parse(r.fsys)
	if err != nil {
		return err
	}
	r.mu.Lock()
	r.pages = pages
	r.mu.Unlock()
	return nil
}

// Render executes page name with data into w. Nothing is written when the
// template fails.
func (r *Renderer) Render(w io.Writer, name string, data any) error {
	r.mu.RLock()
	t, ok := r.pages[name]
	r.mu.RUnlock()
	if !ok {
		return fmt.Errorf("view %q not found", name)
	}
	var buf bytes.Buffer
	if err := t.ExecuteTemplate(&buf, layoutFile, data); err != nil {
		return fmt.Errorf("render %s: %w", name, err)
	}
	_, err := buf.WriteTo(w)
	return err
}

func parse(fsys fs.FS) (map[string]*template.Template, error) {
	files, err := fs.Glob(fsys, "*.html")
	if err != nil {
		return nil, err
	}
	pages := make(map[string]*template.Template)
	for _, f := range files {
		if f == layoutFile {
			continue
		}
		name := strings.TrimSuffix(path.Base(f), ".html")
		t, err := template.New(name).Funcs(funcs).ParseFS(fsys, layoutFile, f)
		if err != nil {
			return nil, fmt.Errorf("parse %s: %w", f, err)
		}
		pages[name] = t
	}
	if len(pages) == 0 {
		return nil, fmt.Errorf("no templates found")
	}
	return pages, nil
}

var funcs = template.FuncMap{
	"qty": func(q *float64) string {
		if q == nil {
			return ""
		}
		return strconv.FormatFloat(*q, 'f', -1, 64)
	},
	"date": func(t time.Time) string {
		if t.IsZero() {
			return ""
		}
		return t.Local().Format("2006-01-02 15:04")
	},
}
