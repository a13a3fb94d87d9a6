package cms

import (
	"context"
	"fmt"
	"strings"

	"github.com/daniilsolovey/municipal-portal/internal/auth"
	"github.com/daniilsolovey/municipal-portal/internal/db"
)

// Branding returns the site settings. The value is cached until UpdateBranding saves new
// settings; callers get a copy.
func (m *Manager) Branding(ctx context.Context) (db.SiteSettings, error) {
	m.brandingMu.RLock()
	cached := m.branding
	m.brandingMu.RUnlock()
	if cached != nil {
		return *cached, nil
	}

	settings, err := m.store.SiteSettings(ctx)
	if err != nil {
		return db.SiteSettings{}, fmt.Errorf("load branding: %w", err)
	}

	m.brandingMu.Lock()
	m.branding = settings
	m.brandingMu.Unlock()

	return *settings, nil
}

func (m *Manager) UpdateBranding(ctx context.Context, actor Actor, s db.SiteSettings) (db.SiteSettings, error) {
	if err := requireRole(actor, auth.RoleAdmin); err != nil {
		return db.SiteSettings{}, err
	}

	s.SiteName = strings.TrimSpace(s.SiteName)
	s.PrimaryColor = strings.ToLower(s.PrimaryColor)
	s.SecondaryColor = strings.ToLower(s.SecondaryColor)
	if err := m.check(s); err != nil {
		return db.SiteSettings{}, err
	}

	now := m.now()
	s.UpdatedAt = &now
	if err := m.store.SaveSiteSettings(ctx, &s); err != nil {
		return db.SiteSettings{}, fmt.Errorf("save branding: %w", err)
	}

	saved := s
	m.brandingMu.Lock()
	m.branding = &saved
	m.brandingMu.Unlock()

	m.audit(ctx, actor, ActionUpdateSettings, "siteSettings", nil, map[string]string{"siteName": s.SiteName})
	m.reval.Revalidate("settings", "home")

	return s, nil
}
