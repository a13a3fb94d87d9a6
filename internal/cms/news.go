package cms

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"

	"github.com/daniilsolovey/municipal-portal/internal/db"
)

const (
	maxSlugLen      = 80
	maxSlugAttempts = 50
)

// Slugify turns a title into a lowercase ASCII slug. Accents are stripped, so "Año Nuevo"
// becomes "ano-nuevo".
func Slugify(title string) string {
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	folded, _, err := transform.String(t, title)
	if err != nil {
		folded = title
	}

	var b strings.Builder
	dash := false
	for _, r := range strings.ToLower(folded) {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			b.WriteRune(r)
			dash = false
		case b.Len() > 0 && !dash:
			b.WriteByte('-')
			dash = true
		}
		if b.Len() >= maxSlugLen {
			break
		}
	}

	return strings.Trim(b.String(), "-")
}

// prepareNews derives the slug from the title when none is usable and stamps publishedAt the
// first time an item is published without a date.
func (m *Manager) prepareNews(ctx context.Context, n *db.News, existing *db.News, now time.Time) error {
	n.Slug = Slugify(n.Slug)
	if n.Slug == "" && existing != nil {
		n.Slug = existing.Slug
	}
	if n.Slug == "" {
		slug, err := m.uniqueSlug(ctx, Slugify(n.Title), n.ID)
		if err != nil {
			return err
		}
		n.Slug = slug
	}

	if n.PublishedAt == nil && existing != nil {
		n.PublishedAt = existing.PublishedAt
	}
	if n.PublishedAt == nil && n.Status == db.StatusPublished {
		published := now
		n.PublishedAt = &published
	}

	return nil
}

func (m *Manager) uniqueSlug(ctx context.Context, base string, selfID int) (string, error) {
	if base == "" {
		base = "news"
	}

	slug := base
	for i := 2; i <= maxSlugAttempts; i++ {
		found, err := m.store.NewsBySlug(ctx, slug, false)
		if err != nil {
			return "", fmt.Errorf("check slug: %w", err)
		}
		if found == nil || found.ID == selfID {
			return slug, nil
		}
		slug = base + "-" + strconv.Itoa(i)
	}

	return "", fmt.Errorf("%w: slug %q", ErrConflict, base)
}

// NewsBySlug returns a published news item by its slug.
func (m *Manager) NewsBySlug(ctx context.Context, slug string) (*db.News, error) {
	n, err := m.store.NewsBySlug(ctx, slug, true)
	if err != nil {
		return nil, fmt.Errorf("get news by slug: %w", err)
	} else if n == nil {
		return nil, fmt.Errorf("%w: news %q", ErrNotFound, slug)
	}

	return n, nil
}
