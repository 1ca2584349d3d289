package views

import (
	"bytes"
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"testing"
	"testing/fstest"
	"time"

	"wine-cellar/backend/app/models"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEmbeddedPagesRender(t *testing.T) {
	r, err := New(Templates())
	require.NoError(t, err)

	q := 6.0
	wine := models.Wine{ID: "abc", Name: "Malbec", Type: "Red", Location: "Rack 1", Quantity: &q, Rating: "4/5", Uploaded: time.Now()}
	user := &models.User{Username: "alice"}

	cases := map[string]Page{
		Login:   {},
		Index:   {User: user, Wines: []models.Wine{wine}},
		Results: {User: user, Wines: nil, Query: "Merlot"},
		Add:     {User: user},
		Edit:    {User: user, Wine: &wine},
		Show:    {User: user, Wine: &wine},
	}
	for name, page := range cases {
		var buf bytes.Buffer
		require.NoError(t, r.Render(&buf, name, page), name)
		assert.Contains(t, buf.String(), "<html", name)
	}
}

func TestRender_ListPagesShareTable(t *testing.T) {
	r, err := New(Templates())
	require.NoError(t, err)

	wines := []models.Wine{{ID: "abc", Name: "Malbec", Rating: "4/5"}}
	var index, results bytes.Buffer
	require.NoError(t, r.Render(&index, Index, Page{User: &models.User{}, Wines: wines}))
	require.NoError(t, r.Render(&results, Results, Page{User: &models.User{}, Wines: wines, Query: "Mal"}))

	row := `<td><a href="/inventory/abc">Malbec</a></td>`
	assert.Contains(t, index.String(), row)
	assert.Contains(t, results.String(), row)

	var empty bytes.Buffer
	require.NoError(t, r.Render(&empty, Index, Page{User: &models.User{}}))
	assert.Contains(t, empty.String(), "No wines.")
	assert.NotContains(t, empty.String(), "<table>")
}

func TestRender_EscapesValues(t *testing.T) {
	r, err := New(Templates())
	require.NoError(t, err)

	var buf bytes.Buffer
	w := models.Wine{ID: "abc", Name: "<script>x</script>"}
	require.NoError(t, r.Render(&buf, Show, Page{User: &models.User{}, Wine: &w}))
	assert.NotContains(t, buf.String(), "<script>x")
	assert.Contains(t, buf.String(), "&lt;script&gt;")
}

func TestRender_ShowAndEditCarryOverride(t *testing.T) {
	r, err := New(Templates())
	require.NoError(t, err)

	w := models.Wine{ID: "abc", Name: "Malbec"}
	var show, edit bytes.Buffer
	require.NoError(t, r.Render(&show, Show, Page{User: &models.User{}, Wine: &w}))
	require.NoError(t, r.Render(&edit, Edit, Page{User: &models.User{}, Wine: &w}))
	assert.Contains(t, show.String(), `value="DELETE"`)
	assert.Contains(t, edit.String(), `value="PUT"`)
	assert.Contains(t, edit.String(), `name="wine[name]" value="Malbec"`)
}

func TestRender_UnknownView(t *testing.T) {
	r, err := New(Templates())
	require.NoError(t, err)
	var buf bytes.Buffer
	assert.Error(t, r.Render(&buf, "nope", Page{}))
	assert.Zero(t, buf.Len())
}

func TestRender_FailureWritesNothing(t *testing.T) {
	fsys := fstest.MapFS{
		"layout.html": {Data: []byte(`<p>{{template "content" .}}</p>`)},
		"bad.html":    {Data: []byte(`{{define "content"}}{{.Missing.Field}}{{end}}`)},
	}
	r, err := New(fsys)
	require.NoError(t, err)

	var buf bytes.Buffer
	assert.Error(t, r.Render(&buf, "bad", Page{}))
	assert.Zero(t, buf.Len())
}

func TestNew_NoTemplates(t *testing.T) {
	_, err := New(fstest.MapFS{"layout.html": {Data: []byte("x")}})
	assert.Error(t, err)
}

func TestStaticHasStylesheet(t *testing.T) {
	_, err := fs.Stat(Static(), "style.css")
	assert.NoError(t, err)
}

func TestFuncs(t *testing.T) {
	qty := funcs["qty"].(func(*float64) string)
	q := 2.5
	assert.Equal(t, "2.5", qty(&q))
	assert.Equal(t, "", qty(nil))

	date := funcs["date"].(func(time.Time) string)
	assert.Equal(t, "", date(time.Time{}))
}

func copyTemplates(t *testing.T, dir string) {
	t.Helper()
	require.NoError(t, fs.WalkDir(Templates(), ".", func(p string, d fs.DirEntry, err error) error {
		if err != nil || d.IsDir() {
			return err
		}
		data, err := fs.ReadFile(Templates(), p)
		if err != nil {
			return err
		}
		return os.WriteFile(filepath.Join(dir, p), data, 0o644)
	}))
}

func TestWatcher_ReloadsOnChange(t *testing.T) {
	dir := t.TempDir()
	copyTemplates(t, dir)

	r, err := New(os.DirFS(dir))
	require.NoError(t, err)
	w, err := Watch(dir, r, zerolog.Nop())
	require.NoError(t, err)
	defer w.Close()

	page := `{{define "content"}}<h1>Changed login</h1>{{end}}`
	require.NoError(t, os.WriteFile(filepath.Join(dir, "login.html"), []byte(page), 0o644))

	select {
	case <-w.Reloaded():
	case <-time.After(5 * time.Second):
		t.Fatal("no reload after template change")
	}

	var buf bytes.Buffer
	require.NoError(t, r.Render(&buf, Login, Page{}))
	assert.Contains(t, buf.String(), "Changed login")
}

func TestWatch_RejectsMissingDir(t *testing.T) {
	r, err := New(Templates())
	require.NoError(t, err)
	_, err = Watch(filepath.Join(t.TempDir(), "missing"), r, zerolog.Nop())
	assert.True(t, errors.Is(err, fs.ErrNotExist))
}
