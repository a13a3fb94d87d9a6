package cms

import (
	"context"
	"fmt"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/daniilsolovey/municipal-portal/internal/db"
)

const (
	homeNewsLimit   = 6
	homeEventsLimit = 6
)

// Home is everything the public landing page renders.
type Home struct {
	Settings   db.SiteSettings     `json:"settings"`
	HeroSlides []db.HeroSlide      `json:"heroSlides"`
	News       []db.News           `json:"news"`
	FAQs       []db.FAQ            `json:"faqs"`
	Officials  []db.Official       `json:"officials"`
	Events     []db.TourismListing `json:"events"`
}

func (m *Manager) Home(ctx context.Context) (*Home, error) {
	out := &Home{}
	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() (err error) {
		out.Settings, err = m.Branding(gctx)
		return err
	})
	g.Go(func() error {
		page, err := m.HeroSlides.Published(gctx, db.ListQuery{})
		out.HeroSlides = page.Items
		return err
	})
	g.Go(func() error {
		page, err := m.News.Published(gctx, db.ListQuery{Limit: homeNewsLimit})
		out.News = page.Items
		return err
	})
	g.Go(func() error {
		page, err := m.FAQs.Published(gctx, db.ListQuery{})
		out.FAQs = page.Items
		return err
	})
	g.Go(func() error {
		page, err := m.Officials.Published(gctx, db.ListQuery{Limit: db.MaxLimit})
		out.Officials = page.Items
		return err
	})
	g.Go(func() (err error) {
		out.Events, err = m.UpcomingEvents(gctx, homeEventsLimit)
		return err
	})

	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("home: %w", err)
	}

	return out, nil
}

// UpcomingEvents returns up to limit published events that have not ended yet, in display
// order. Events without dates are kept.
func (m *Manager) UpcomingEvents(ctx context.Context, limit int) ([]db.TourismListing, error) {
	now := m.now()
	out := []db.TourismListing{}
	for offset := 0; len(out) < limit; offset += db.MaxLimit {
		page, err := m.TourismEvents.Published(ctx, db.ListQuery{Limit: db.MaxLimit, Offset: offset})
		if err != nil {
			return nil, fmt.Errorf("upcoming events: %w", err)
		}

		for _, e := range page.Items {
			if !ended(e, now) && len(out) < limit {
				out = append(out, e)
			}
		}
		if len(page.Items) == 0 || offset+len(page.Items) >= page.Total {
			break
		}
	}

	return out, nil
}

func ended(e db.TourismListing, now time.Time) bool {
	end := e.EndsAt
	if end == nil {
		end = e.StartsAt
	}
	return end != nil && end.Before(now)
}
