package httpx

import (
	"bytes"
	"net/http/httptest"
	"testing"
	"testing/fstest"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTemplateRenderer_DefinesEveryPage(t *testing.T) {
	tr := requireTemplateRenderer(t)

	for page, name := range ContentTemplateMap() {
		assert.NotNil(t, tr.t.Lookup(name), "page %q needs template %q", page, name)
	}
	for _, name := range []string{
		"layout", "content", "error-layout", "flash",
		"login-content", "signed-out-content", "login-form",
		"members-table", "finances-table", "files-table", "finance-total",
	} {
		assert.NotNil(t, tr.t.Lookup(name), name)
	}
}

func TestContentTemplateFor_FallsBackToOverview(t *testing.T) {
	assert.Equal(t, "members-content", ContentTemplateFor(PageMembers))
	assert.Equal(t, "overview-content", ContentTemplateFor("nope"))
}

func TestTemplateRenderer_RenderNamedSetsContentType(t *testing.T) {
	tr := requireTemplateRenderer(t)
	rec := httptest.NewRecorder()

	require.NoError(t, tr.RenderNamed(rec, "finance-total", map[string]any{"DisplayTotal": "12.00"}))
	assert.Equal(t, "text/html; charset=utf-8", rec.Header().Get("Content-Type"))
	assert.Equal(t, `<p class="total">Total: R12.00</p>`, rec.Body.String())
}

func TestTemplateRenderer_FailedRenderWritesNothing(t *testing.T) {
	tr := requireTemplateRenderer(t)
	rec := httptest.NewRecorder()

	err := tr.RenderNamed(rec, "no-such-template", nil)
	require.Error(t, err)
	assert.Empty(t, rec.Body.String())
	assert.Empty(t, rec.Header().Get("Content-Type"))
}

func TestTemplateRenderer_ExecuteTo(t *testing.T) {
	tr := requireTemplateRenderer(t)
	var buf bytes.Buffer

	require.NoError(t, tr.ExecuteTo(&buf, "flash", map[string]any{"Error": true, "ErrorMessage": "<b>nope</b>"}))
	assert.Contains(t, buf.String(), "&lt;b&gt;nope&lt;/b&gt;")
}

func TestNewTemplateRenderer_Errors(t *testing.T) {
	_, err := NewTemplateRenderer(TemplateRendererConfig{})
	require.Error(t, err)

	broken := fstest.MapFS{
		"layout.tmpl":     {Data: []byte(`{{define "layout"}}{{.Missing}{{end}}`)},
		"pages/x.tmpl":    {Data: []byte(`{{define "x"}}{{end}}`)},
		"partials/y.tmpl": {Data: []byte(`{{define "y"}}{{end}}`)},
	}
	_, err = NewTemplateRenderer(TemplateRendererConfig{TemplateFS: broken, Logger: quietLogger()})
	require.Error(t, err)
}
