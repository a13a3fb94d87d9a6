package rpc

import "github.com/daniilsolovey/municipal-portal/internal/db"

type (
	HeroSlides    []HeroSlide
	NewsSummaries []NewsSummary
	FAQs          []FAQ
	Officials     []Official
	Documents     []Document
	Events        []Event
)

func NewHeroSlides(in []db.HeroSlide) HeroSlides {
	return mapSlice(in, NewHeroSlide)
}

func NewNewsSummaries(in []db.News) NewsSummaries {
	return mapSlice(in, NewNewsSummary)
}

func NewFAQs(in []db.FAQ) FAQs {
	return mapSlice(in, NewFAQ)
}

func NewOfficials(in []db.Official) Officials {
	return mapSlice(in, NewOfficial)
}

func NewDocuments(in []db.Document) Documents {
	return mapSlice(in, NewDocument)
}

func NewEvents(in []db.TourismListing) Events {
	return mapSlice(in, NewEvent)
}

func mapSlice[S, D any](in []S, convert func(S) D) []D {
	out := make([]D, len(in))
	for i := range in {
		out[i] = convert(in[i])
	}
	return out
}
