package db

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/go-pg/pg/v10"
	"github.com/go-pg/pg/v10/orm"
)

const siteSettingsID = 1

// DefaultSiteSettings is returned until an administrator saves branding.
func DefaultSiteSettings() SiteSettings {
	return SiteSettings{
		ID:             siteSettingsID,
		SiteName:       "Municipal Government",
		Tagline:        "Serving the community",
		PrimaryColor:   "#1d4ed8",
		SecondaryColor: "#f59e0b",
	}
}

func (r *Repository) UserByEmail(ctx context.Context, email string) (*User, error) {
	user := &User{}
	err := r.db.ModelContext(ctx, user).
		Where(`"t"."email" = ?`, strings.ToLower(strings.TrimSpace(email))).
		Select()

	if errors.Is(err, pg.ErrNoRows) {
		return nil, nil
	} else if err != nil {
		return nil, fmt.Errorf("failed to get user by email: %w", err)
	}

	return user, nil
}

func (r *Repository) UserByID(ctx context.Context, userID int) (*User, error) {
	user := &User{}
	err := r.db.ModelContext(ctx, user).
		Where(`"t"."userId" = ?`, userID).
		Select()

	if errors.Is(err, pg.ErrNoRows) {
		return nil, nil
	} else if err != nil {
		return nil, fmt.Errorf("failed to get user by id: %w", err)
	}

	return user, nil
}

// Users returns users ordered by email, optionally filtered by a search term and role.
func (r *Repository) Users(ctx context.Context, search, role string, limit, offset int) ([]User, int, error) {
	users := []User{}
	query := r.db.ModelContext(ctx, &users)

	if role != "" {
		query = query.Where(`"t"."role" = ?`, role)
	}
	if search = strings.TrimSpace(search); search != "" {
		pattern := "%" + escapeLike(search) + "%"
		query = query.WhereGroup(func(q *orm.Query) (*orm.Query, error) {
			return q.WhereOr(`"t"."email" ILIKE ?`, pattern).
				WhereOr(`"t"."fullName" ILIKE ?`, pattern), nil
		})
	}

	count, err := query.
		OrderExpr(`"t"."email" ASC`).
		Limit(limit).
		Offset(offset).
		SelectAndCount()
	if err != nil {
		return nil, 0, fmt.Errorf("failed to query users: %w", err)
	}

	return users, count, nil
}

func (r *Repository) CountUsersByRole(ctx context.Context, role string) (int, error) {
	count, err := r.db.ModelContext(ctx, (*User)(nil)).
		Where(`"t"."role" = ?`, role).
		Count()
	if err != nil {
		return 0, fmt.Errorf("failed to count users: %w", err)
	}

	return count, nil
}

func (r *Repository) InsertUser(ctx context.Context, user *User) error {
	user.Email = strings.ToLower(strings.TrimSpace(user.Email))
	_, err := r.db.ModelContext(ctx, user).
		Returning("*").
		Insert()
	if err != nil {
		return fmt.Errorf("failed to insert user: %w", wrapConflict(err))
	}

	return nil
}

func (r *Repository) UpdateUser(ctx context.Context, user *User) (bool, error) {
	user.Email = strings.ToLower(strings.TrimSpace(user.Email))
	res, err := r.db.ModelContext(ctx, user).
		WherePK().
		ExcludeColumn(Columns.User.CreatedAt, Columns.User.LastSignInAt).
		Update()
	if err != nil {
		return false, fmt.Errorf("failed to update user: %w", wrapConflict(err))
	}

	return res.RowsAffected() > 0, nil
}

func (r *Repository) DeleteUser(ctx context.Context, userID int) (bool, error) {
	res, err := r.db.ModelContext(ctx, (*User)(nil)).
		Where(`"t"."userId" = ?`, userID).
		Delete()
	if err != nil {
		return false, fmt.Errorf("failed to delete user: %w", err)
	}

	return res.RowsAffected() > 0, nil
}

func (r *Repository) TouchSignIn(ctx context.Context, userID int, at time.Time) error {
	_, err := r.db.ModelContext(ctx, (*User)(nil)).
		Set(`"lastSignInAt" = ?`, at).
		Where(`"t"."userId" = ?`, userID).
		Update()
	if err != nil {
		return fmt.Errorf("failed to update last sign in: %w", err)
	}

	return nil
}

// AuditFilter narrows the audit log viewer.
type AuditFilter struct {
	Action string
	Entity string
	UserID *int
	Search string
	Limit  int
	Offset int
}

func (r *Repository) InsertAuditLog(ctx context.Context, entry *AuditLog) error {
	if entry.CreatedAt.IsZero() {
		entry.CreatedAt = time.Now()
	}

	_, err := r.db.ModelContext(ctx, entry).
		Returning("*").
		Insert()
	if err != nil {
		return fmt.Errorf("failed to insert audit log: %w", err)
	}

	return nil
}

// AuditLogs returns entries newest first.
func (r *Repository) AuditLogs(ctx context.Context, f AuditFilter) ([]AuditLog, int, error) {
	logs := []AuditLog{}
	query := r.db.ModelContext(ctx, &logs)

	if f.Action != "" {
		query = query.Where(`"t"."action" = ?`, f.Action)
	}
	if f.Entity != "" {
		query = query.Where(`"t"."entity" = ?`, f.Entity)
	}
	if f.UserID != nil {
		query = query.Where(`"t"."userId" = ?`, *f.UserID)
	}
	if search := strings.TrimSpace(f.Search); search != "" {
		pattern := "%" + escapeLike(search) + "%"
		query = query.WhereGroup(func(q *orm.Query) (*orm.Query, error) {
			return q.WhereOr(`"t"."userEmail" ILIKE ?`, pattern).
				WhereOr(`"t"."entity" ILIKE ?`, pattern).
				WhereOr(`"t"."details"::text ILIKE ?`, pattern), nil
		})
	}

	count, err := query.
		OrderExpr(`"t"."createdAt" DESC, "t"."auditLogId" DESC`).
		Limit(f.Limit).
		Offset(f.Offset).
		SelectAndCount()
	if err != nil {
		return nil, 0, fmt.Errorf("failed to query audit logs: %w", err)
	}

	return logs, count, nil
}

// SiteSettings returns the stored branding or the defaults when nothing is saved yet.
func (r *Repository) SiteSettings(ctx context.Context) (*SiteSettings, error) {
	settings := &SiteSettings{}
	err := r.db.ModelContext(ctx, settings).
		Where(`"t"."siteSettingsId" = ?`, siteSettingsID).
		Select()

	if errors.Is(err, pg.ErrNoRows) {
		defaults := DefaultSiteSettings()
		return &defaults, nil
	} else if err != nil {
		return nil, fmt.Errorf("failed to get site settings: %w", err)
	}

	return settings, nil
}

func (r *Repository) SaveSiteSettings(ctx context.Context, settings *SiteSettings) error {
	settings.ID = siteSettingsID
	_, err := r.db.ModelContext(ctx, settings).
		OnConflict(`("siteSettingsId") DO UPDATE`).
		Set(`"siteName" = EXCLUDED."siteName"`).
		Set(`"tagline" = EXCLUDED."tagline"`).
		Set(`"logoUrl" = EXCLUDED."logoUrl"`).
		Set(`"faviconUrl" = EXCLUDED."faviconUrl"`).
		Set(`"primaryColor" = EXCLUDED."primaryColor"`).
		Set(`"secondaryColor" = EXCLUDED."secondaryColor"`).
		Set(`"contactEmail" = EXCLUDED."contactEmail"`).
		Set(`"contactPhone" = EXCLUDED."contactPhone"`).
		Set(`"address" = EXCLUDED."address"`).
		Set(`"facebookUrl" = EXCLUDED."facebookUrl"`).
		Set(`"updatedAt" = EXCLUDED."updatedAt"`).
		Insert()
	if err != nil {
		return fmt.Errorf("failed to save site settings: %w", err)
	}

	return nil
}

func (r *Repository) NewsBySlug(ctx context.Context, slug string, publishedOnly bool) (*News, error) {
	news := &News{}
	query := r.db.ModelContext(ctx, news).
		Where(`"t"."slug" = ?`, slug)
	query = applyFilters(query, news, ListQuery{Published: publishedOnly}, time.Now())

	err := query.Select()
	if errors.Is(err, pg.ErrNoRows) {
		return nil, nil
	} else if err != nil {
		return nil, fmt.Errorf("failed to get news by slug: %w", err)
	}

	return news, nil
}
