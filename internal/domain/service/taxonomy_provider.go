package service

import "context"

// TaxonomyResult is a single species hit from the plant taxonomy catalogue.
type TaxonomyResult struct {
	ID             int    `json:"id"`
	CommonName     string `json:"commonName"`
	ScientificName string `json:"scientificName"`
	Family         string `json:"family"`
	Slug           string `json:"slug"`
	ImageURL       string `json:"imageUrl"`
}

// TaxonomyProvider is the interface over the external plant-species lookup
// service. Search results are returned verbatim; no local state is kept.
type TaxonomyProvider interface {
	Search(ctx context.Context, query string) ([]TaxonomyResult, error)
}
