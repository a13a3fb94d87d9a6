package cms

import (
	"context"
	"fmt"

	"golang.org/x/sync/errgroup"

	"github.com/daniilsolovey/municipal-portal/internal/auth"
	"github.com/daniilsolovey/municipal-portal/internal/db"
)

const recentActivityLimit = 10

type CollectionStats struct {
	Name      string `json:"name"`
	Total     int    `json:"total"`
	Published int    `json:"published"`
}

type Dashboard struct {
	Collections    []CollectionStats `json:"collections"`
	Users          int               `json:"users"`
	RecentActivity []db.AuditLog     `json:"recentActivity"`
}

type statser interface {
	Stats(ctx context.Context) (CollectionStats, error)
}

func (m *Manager) statsers() []statser {
	return []statser{
		m.HeroSlides, m.News, m.FAQs, m.Officials, m.Departments, m.Barangays, m.ExecutiveOrders,
		m.Ordinances, m.Documents, m.History, m.VisionMission, m.Tourism, m.TourismEvents,
		m.Services, m.Menus,
	}
}

// Dashboard counts every collection concurrently. Any failing count fails the whole call.
func (m *Manager) Dashboard(ctx context.Context, actor Actor) (*Dashboard, error) {
	if err := requireRole(actor, auth.RoleViewer); err != nil {
		return nil, err
	}

	sources := m.statsers()
	out := &Dashboard{Collections: make([]CollectionStats, len(sources))}

	g, gctx := errgroup.WithContext(ctx)
	for i, s := range sources {
		g.Go(func() error {
			stats, err := s.Stats(gctx)
			if err != nil {
				return err
			}
			out.Collections[i] = stats
			return nil
		})
	}

	g.Go(func() error {
		_, total, err := m.store.Users(gctx, "", "", 1, 0)
		if err != nil {
			return fmt.Errorf("count users: %w", err)
		}
		out.Users = total
		return nil
	})

	g.Go(func() error {
		logs, _, err := m.store.AuditLogs(gctx, db.AuditFilter{Limit: recentActivityLimit})
		if err != nil {
			return fmt.Errorf("recent activity: %w", err)
		}
		out.RecentActivity = logs
		return nil
	})

	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("dashboard: %w", err)
	}

	return out, nil
}
