// Package jobsearch answers offer searches from a fixed in-memory catalogue.
package jobsearch

import (
	"context"
	"strings"

	"jobassist/internal/model"
)

// Query filters a search. Empty fields match everything.
type Query struct {
	Text         string
	Location     string
	ContractType string
}

// Source finds job offers.
type Source interface {
	Search(ctx context.Context, q Query) ([]model.SearchOffer, error)
}

// Catalogue is a Source over a static list of offers.
type Catalogue struct {
	offers []model.SearchOffer
}

var _ Source = (*Catalogue)(nil)

// NewCatalogue returns a Catalogue over offers, or over the built-in sample
// listings when offers is empty.
func NewCatalogue(offers ...model.SearchOffer) *Catalogue {
	if len(offers) == 0 {
		offers = sampleOffers
	}
	return &Catalogue{offers: offers}
}

// Search matches Text as a case-insensitive substring of title, description or
// company, Location as a substring of the location, and ContractType exactly
// ignoring case. Results keep catalogue order.
func (c *Catalogue) Search(ctx context.Context, q Query) ([]model.SearchOffer, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	text := strings.ToLower(q.Text)
	location := strings.ToLower(q.Location)

	out := make([]model.SearchOffer, 0, len(c.offers))
	for _, o := range c.offers {
		if text != "" &&
			!strings.Contains(strings.ToLower(o.Title), text) &&
			!strings.Contains(strings.ToLower(o.Description), text) &&
			!strings.Contains(strings.ToLower(o.Company), text) {
			continue
		}
		if location != "" && !strings.Contains(strings.ToLower(o.Location), location) {
			continue
		}
		if q.ContractType != "" && !strings.EqualFold(o.ContractType, q.ContractType) {
			continue
		}
		out = append(out, o)
	}
	return out, nil
}

var sampleOffers = []model.SearchOffer{
	{
		ID:           "1",
		Title:        "Développeur Fullstack (H/F) - CDI",
		Description:  "Nous recherchons un développeur Fullstack passionné par les nouvelles technologies (React, Node.js, PostgreSQL). Rejoignez notre équipe dynamique pour travailler sur des projets innovants.",
		Company:      "Tech Solutions",
		Location:     "Paris, France",
		ContractType: "CDI",
		URL:          "https://example.com/offer/1",
	},
	{
		ID:           "2",
		Title:        "Alternance Développeur Web Junior (H/F)",
		Description:  "Rejoignez notre agence digitale en tant qu'alternant développeur web. Vous travaillerez sur la création de sites e-commerce et applications mobiles.",
		Company:      "Digital Agency",
		Location:     "Lyon, France",
		ContractType: "Alternance",
		URL:          "https://example.com/offer/2",
	},
	{
		ID:           "3",
		Title:        "Chef de Projet IT (H/F)",
		Description:  "Leader en solutions logicielles, nous recherchons un Chef de Projet IT expérimenté pour piloter nos équipes de développement.",
		Company:      "Global Tech",
		Location:     "Marseille, France",
		ContractType: "CDI",
		URL:          "https://example.com/offer/3",
	},
	{
		ID:           "4",
		Title:        "Stage Marketing Digital (H/F)",
		Description:  "Immersion complète dans le monde du marketing digital. Participez à l'élaboration et au suivi de nos campagnes.",
		Company:      "Marketing Pro",
		Location:     "Bordeaux, France",
		ContractType: "Stage",
		URL:          "https://example.com/offer/4",
	},
}
