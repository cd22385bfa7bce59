package services

import (
	"fmt"
	"net/url"
	"strings"

	"github.com/justsurfingit/xconsult/internal/models"
)

type CatalogService struct {
	services []string
}

func NewCatalogService(services []string) *CatalogService {
	return &CatalogService{services: append([]string(nil), services...)}
}

// All returns the full catalog in display order.
func (s *CatalogService) All() []string {
	return append([]string(nil), s.services...)
}

// Search returns the categories whose lowercase form contains the lowercase
// query, keeping catalog order. An empty query yields no suggestions.
func (s *CatalogService) Search(query string) []string {
	if query == "" {
		return []string{}
	}

	q := strings.ToLower(query)
	matches := []string{}
	for _, service := range s.services {
		if strings.Contains(strings.ToLower(service), q) {
			matches = append(matches, service)
		}
	}
	return matches
}

// Displayed returns the cards for the landing grid: the featured slice, or
// everything when showAll is set.
func (s *CatalogService) Displayed(showAll bool) []string {
	if showAll || len(s.services) <= models.FeaturedServiceCount {
		return s.All()
	}
	return append([]string(nil), s.services[:models.FeaturedServiceCount]...)
}

func (s *CatalogService) HasMore() bool {
	return len(s.services) > models.FeaturedServiceCount
}

func (s *CatalogService) Contains(service string) bool {
	for _, candidate := range s.services {
		if candidate == service {
			return true
		}
	}
	return false
}

// Select returns the post-job link for a catalog entry. Values outside the
// catalog fail with ErrUnknownService.
func (s *CatalogService) Select(service string) (string, error) {
	if !s.Contains(service) {
		return "", fmt.Errorf("%q: %w", service, models.ErrUnknownService)
	}
	return SelectURL(service), nil
}

// SelectURL is the post-job link that pre-fills service.
func SelectURL(service string) string {
	return "/post-job?service=" + encodeURIComponent(service)
}

// encodeURIComponent escapes like the browser function of the same name:
// spaces become %20 rather than '+'.
func encodeURIComponent(s string) string {
	escaped := url.QueryEscape(s)
	escaped = strings.ReplaceAll(escaped, "+", "%20")
	// QueryEscape escapes these, encodeURIComponent leaves them alone.
	for _, r := range []string{"!", "'", "(", ")", "*"} {
		escaped = strings.ReplaceAll(escaped, url.QueryEscape(r), r)
	}
	return escaped
}
