package rpc

import (
	"github.com/daniilsolovey/municipal-portal/internal/cms"
	"github.com/daniilsolovey/municipal-portal/internal/db"
)

func NewSettings(s db.SiteSettings) Settings {
	return Settings{
		SiteName:       s.SiteName,
		Tagline:        s.Tagline,
		LogoURL:        s.LogoURL,
		FaviconURL:     s.FaviconURL,
		PrimaryColor:   s.PrimaryColor,
		SecondaryColor: s.SecondaryColor,
		ContactEmail:   s.ContactEmail,
		ContactPhone:   s.ContactPhone,
		Address:        s.Address,
		FacebookURL:    s.FacebookURL,
	}
}

func NewHeroSlide(s db.HeroSlide) HeroSlide {
	return HeroSlide{
		HeroSlideID: s.ID,
		Title:       s.Title,
		Subtitle:    s.Subtitle,
		ImageURL:    s.ImageURL,
		LinkURL:     s.LinkURL,
	}
}

func NewNews(n db.News) News {
	return News{
		NewsID:      n.ID,
		Title:       n.Title,
		Slug:        n.Slug,
		Summary:     n.Summary,
		Content:     n.Content,
		ImageURL:    n.ImageURL,
		Author:      n.Author,
		Category:    n.Category,
		PublishedAt: n.PublishedAt,
	}
}

func NewNewsSummary(n db.News) NewsSummary {
	return NewsSummary{
		NewsID:      n.ID,
		Title:       n.Title,
		Slug:        n.Slug,
		Summary:     n.Summary,
		ImageURL:    n.ImageURL,
		Category:    n.Category,
		PublishedAt: n.PublishedAt,
	}
}

func NewFAQ(f db.FAQ) FAQ {
	return FAQ{
		FAQID:    f.ID,
		Question: f.Question,
		Answer:   f.Answer,
		Category: f.Category,
	}
}

func NewOfficial(o db.Official) Official {
	return Official{
		OfficialID:   o.ID,
		Name:         o.Name,
		Position:     o.Position,
		DepartmentID: o.DepartmentID,
		PhotoURL:     o.PhotoURL,
		Term:         o.Term,
	}
}

func NewDocument(d db.Document) Document {
	return Document{
		DocumentID:  d.ID,
		Kind:        d.Kind,
		Number:      d.Number,
		Title:       d.Title,
		Description: d.Description,
		FileURL:     d.FileURL,
		IssuedAt:    d.IssuedAt,
	}
}

func NewEvent(l db.TourismListing) Event {
	return Event{
		EventID:     l.ID,
		Name:        l.Name,
		Description: l.Description,
		Location:    l.Location,
		ImageURL:    l.ImageURL,
		StartsAt:    l.StartsAt,
		EndsAt:      l.EndsAt,
	}
}

func NewMenuItems(nodes []cms.MenuNode) []MenuItem {
	out := make([]MenuItem, len(nodes))
	for i, n := range nodes {
		out[i] = MenuItem{
			MenuItemID: n.ID,
			Label:      n.Label,
			Href:       n.Href,
			Children:   NewMenuItems(n.Children),
		}
	}

	return out
}

func NewHome(h *cms.Home) *Home {
	if h == nil {
		return nil
	}

	return &Home{
		Settings:   NewSettings(h.Settings),
		HeroSlides: NewHeroSlides(h.HeroSlides),
		News:       NewNewsSummaries(h.News),
		FAQs:       NewFAQs(h.FAQs),
		Officials:  NewOfficials(h.Officials),
		Events:     NewEvents(h.Events),
	}
}
