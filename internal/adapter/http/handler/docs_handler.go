package handler

import (
	"crypto/sha256"
	"encoding/hex"
	"html/template"
	"net/http"

	"github.com/gin-gonic/gin"
)

var docsPage = template.Must(template.New("docs").Parse(`<!DOCTYPE html>
<html lang="en">
<head>
  <meta charset="UTF-8">
  <title>{{.Title}}</title>
  <link rel="stylesheet" href="https://cdn.jsdelivr.net/npm/swagger-ui-dist@5/swagger-ui.css">
</head>
<body>
  <div id="docs"></div>
  <script src="https://cdn.jsdelivr.net/npm/swagger-ui-dist@5/swagger-ui-bundle.js"></script>
  <script>
    SwaggerUIBundle({url: {{.SpecURL}}, dom_id: '#docs', deepLinking: true});
  </script>
</body>
</html>`))

// DocsHandler serves the OpenAPI document of the bridge and a viewer for it.
type DocsHandler struct {
	spec    []byte
	etag    string
	specURL string
}

// NewDocsHandler creates a DocsHandler. specURL is where the viewer fetches
// the document from. A nil spec answers 404 on both routes.
func NewDocsHandler(spec []byte, specURL string) *DocsHandler {
	h := &DocsHandler{spec: spec, specURL: specURL}
	if spec != nil {
		sum := sha256.Sum256(spec)
		h.etag = `"` + hex.EncodeToString(sum[:8]) + `"`
	}
	return h
}

// Spec handles GET /docs/openapi.yaml.
func (h *DocsHandler) Spec(c *gin.Context) {
	if h.spec == nil {
		c.String(http.StatusNotFound, "API document not loaded")
		return
	}
	c.Header("ETag", h.etag)
	if c.GetHeader("If-None-Match") == h.etag {
		c.Status(http.StatusNotModified)
		return
	}
	c.Data(http.StatusOK, "application/yaml", h.spec)
}

// Viewer handles GET /docs.
func (h *DocsHandler) Viewer(c *gin.Context) {
	if h.spec == nil {
		c.String(http.StatusNotFound, "API document not loaded")
		return
	}
	c.Header("Content-Type", "text/html; charset=utf-8")
	c.Status(http.StatusOK)
	_ = docsPage.Execute(c.Writer, struct{ Title, SpecURL string }{"Payment Webhook Bridge API", h.specURL})
}
