package handlers

import (
	"errors"
	"net/http"
	"net/url"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/justsurfingit/xconsult/internal/dtos"
	"github.com/justsurfingit/xconsult/internal/models"
	"github.com/justsurfingit/xconsult/internal/services"
)

type HomeHandler struct {
	Catalog *services.CatalogService
}

func NewHomeHandler(catalog *services.CatalogService) *HomeHandler {
	return &HomeHandler{Catalog: catalog}
}

type serviceCard struct {
	Name  string
	Blurb string
	URL   string
}

func cardsFor(names []string) []serviceCard {
	cards := make([]serviceCard, 0, len(names))
	for _, name := range names {
		cards = append(cards, serviceCard{
			Name:  name,
			Blurb: "Connect with top consulting firms specializing in " + strings.ToLower(name),
			URL:   services.SelectURL(name),
		})
	}
	return cards
}

// Index is GET /: search box, suggestions and the category grid.
func (h *HomeHandler) Index(c *gin.Context) {
	var search dtos.SearchRequest
	var catalog dtos.CatalogRequest
	// Malformed parameters fall back to the zero values.
	_ = c.ShouldBindQuery(&search)
	_ = c.ShouldBindQuery(&catalog)

	c.HTML(http.StatusOK, "home.html", gin.H{
		"Title":       "xConsult - B2B Consulting Marketplace",
		"Query":       search.Query,
		"Suggestions": cardsFor(h.Catalog.Search(search.Query)),
		"Cards":       cardsFor(h.Catalog.Displayed(catalog.All)),
		"HasMore":     h.Catalog.HasMore(),
		"ShowAll":     catalog.All,
		"ToggleURL":   toggleURL(search.Query, !catalog.All),
	})
}

func toggleURL(query string, showAll bool) string {
	v := url.Values{}
	if query != "" {
		v.Set("q", query)
	}
	if showAll {
		v.Set("all", "1")
	}
	if len(v) == 0 {
		return "/"
	}
	return "/?" + v.Encode()
}

// Select is GET /select?service=X, the handoff from a suggestion or card.
func (h *HomeHandler) Select(c *gin.Context) {
	var req dtos.SelectRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		c.String(http.StatusBadRequest, "service is required")
		return
	}
	target, err := h.Catalog.Select(req.Service)
	if err != nil {
		c.String(selectStatus(err), err.Error())
		return
	}
	c.Redirect(http.StatusSeeOther, target)
}

func selectStatus(err error) int {
	if errors.Is(err, models.ErrUnknownService) {
		return http.StatusBadRequest
	}
	return http.StatusInternalServerError
}

// ComingSoon renders the placeholder for navigation targets that do not exist yet.
func ComingSoon(heading string) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.HTML(http.StatusNotImplemented, "coming_soon.html", gin.H{
			"Title":   heading + " - xConsult",
			"Heading": heading,
		})
	}
}
