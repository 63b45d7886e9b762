package handler

import (
	"embed"
	"html/template"
	"net/http"
	"strings"

	"ainewsdaily/internal/segment"

	"github.com/gin-gonic/gin"
)

//go:embed templates/*.html
var templateFS embed.FS

const newspaperTemplate = "newspaper.html"

// LoadTemplates parses the embedded page templates for gin's HTML renderer.
func LoadTemplates() (*template.Template, error) {
	return template.New("").Funcs(template.FuncMap{
		"band": func(p segment.Priority) string {
			return "band-" + strings.ToLower(string(p))
		},
	}).ParseFS(templateFS, "templates/*.html")
}

type PageHandler struct {
	service NewspaperService
}

func NewPageHandler(service NewspaperService) *PageHandler {
	return &PageHandler{service: service}
}

// GetNewspaper renders the whole paper. An unreachable store renders the
// placeholder edition, never an error page.
func (h *PageHandler) GetNewspaper(c *gin.Context) {
	paper := h.service.Newspaper(c.Request.Context())
	c.HTML(http.StatusOK, newspaperTemplate, paper)
}
