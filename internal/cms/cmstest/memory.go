// Package cmstest provides in-memory stores for testing code built on the cms package.
package cmstest

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/daniilsolovey/municipal-portal/internal/db"
)

// Table is an in-memory content store with the filtering semantics of db.Table. Search is
// not supported.
type Table[T any, P db.ContentPtr[T]] struct {
	mu     sync.Mutex
	nextID int

	Rows []T
	Err  error
	// Now decides whether scheduled rows are due.
	Now time.Time
}

func (t *Table[T, P]) visible(p P, q db.ListQuery) bool {
	if q.Published {
		if p.GetStatus() != db.StatusPublished {
			return false
		}
		if s, ok := any(p).(db.Scheduled); ok {
			at := s.PublishedAtTime()
			if at == nil || at.After(t.Now) {
				return false
			}
		}
	} else if q.Status != "" && p.GetStatus() != q.Status {
		return false
	}
	if k, ok := any(p).(db.Kinded); ok && q.Kind != "" && k.GetKind() != q.Kind {
		return false
	}
	return true
}

func (t *Table[T, P]) List(_ context.Context, q db.ListQuery) ([]T, int, error) {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.Err != nil {
		return nil, 0, t.Err
	}

	out := []T{}
	for i := range t.Rows {
		if t.visible(P(&t.Rows[i]), q) {
			out = append(out, t.Rows[i])
		}
	}
	total := len(out)

	if q.Offset >= len(out) {
		return []T{}, total, nil
	}
	out = out[q.Offset:]
	if q.Limit > 0 && len(out) > q.Limit {
		out = out[:q.Limit]
	}
	return out, total, nil
}

func (t *Table[T, P]) ByID(_ context.Context, id int, publishedOnly bool) (*T, error) {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.Err != nil {
		return nil, t.Err
	}

	for i := range t.Rows {
		p := P(&t.Rows[i])
		if p.PK() == id && t.visible(p, db.ListQuery{Published: publishedOnly}) {
			row := t.Rows[i]
			return &row, nil
		}
	}
	return nil, nil
}

func (t *Table[T, P]) Insert(_ context.Context, row *T) error {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.Err != nil {
		return t.Err
	}

	t.nextID++
	P(row).SetPK(t.nextID)
	t.Rows = append(t.Rows, *row)
	return nil
}

func (t *Table[T, P]) Update(_ context.Context, row *T) (bool, error) {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.Err != nil {
		return false, t.Err
	}

	for i := range t.Rows {
		if P(&t.Rows[i]).PK() == P(row).PK() {
			t.Rows[i] = *row
			return true, nil
		}
	}
	return false, nil
}

func (t *Table[T, P]) Delete(_ context.Context, id int) (bool, error) {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.Err != nil {
		return false, t.Err
	}

	for i := range t.Rows {
		if P(&t.Rows[i]).PK() == id {
			t.Rows = append(t.Rows[:i], t.Rows[i+1:]...)
			return true, nil
		}
	}
	return false, nil
}

func (t *Table[T, P]) Count(_ context.Context, status, kind string) (int, error) {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.Err != nil {
		return 0, t.Err
	}

	n := 0
	for i := range t.Rows {
		if t.visible(P(&t.Rows[i]), db.ListQuery{Status: status, Kind: kind}) {
			n++
		}
	}
	return n, nil
}

// System is an in-memory store of users, audit logs, settings and news slugs.
type System struct {
	mu         sync.Mutex
	nextUserID int

	UserRows      []db.User
	Audit         []db.AuditLog
	Settings      *db.SiteSettings
	SettingsReads int
	News          *Table[db.News, *db.News]
	Err           error
}

func (s *System) UserByEmail(_ context.Context, email string) (*db.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Err != nil {
		return nil, s.Err
	}
	for _, u := range s.UserRows {
		if u.Email == strings.ToLower(email) {
			return &u, nil
		}
	}
	return nil, nil
}

func (s *System) UserByID(_ context.Context, id int) (*db.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Err != nil {
		return nil, s.Err
	}
	for _, u := range s.UserRows {
		if u.ID == id {
			return &u, nil
		}
	}
	return nil, nil
}

func (s *System) Users(_ context.Context, search, role string, limit, offset int) ([]db.User, int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Err != nil {
		return nil, 0, s.Err
	}
	out := []db.User{}
	for _, u := range s.UserRows {
		if (role == "" || u.Role == role) && strings.Contains(u.Email, search) {
			out = append(out, u)
		}
	}
	total := len(out)
	if offset >= len(out) {
		return []db.User{}, total, nil
	}
	out = out[offset:]
	if len(out) > limit {
		out = out[:limit]
	}
	return out, total, nil
}

func (s *System) CountUsersByRole(_ context.Context, role string) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	n := 0
	for _, u := range s.UserRows {
		if u.Role == role {
			n++
		}
	}
	return n, nil
}

func (s *System) InsertUser(_ context.Context, user *db.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, u := range s.UserRows {
		if u.Email == user.Email {
			return db.ErrConflict
		}
	}
	s.nextUserID++
	user.ID = s.nextUserID
	s.UserRows = append(s.UserRows, *user)
	return nil
}

func (s *System) UpdateUser(_ context.Context, user *db.User) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.UserRows {
		if s.UserRows[i].ID == user.ID {
			s.UserRows[i] = *user
			return true, nil
		}
	}
	return false, nil
}

func (s *System) DeleteUser(_ context.Context, id int) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.UserRows {
		if s.UserRows[i].ID == id {
			s.UserRows = append(s.UserRows[:i], s.UserRows[i+1:]...)
			return true, nil
		}
	}
	return false, nil
}

func (s *System) TouchSignIn(_ context.Context, id int, at time.Time) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.UserRows {
		if s.UserRows[i].ID == id {
			s.UserRows[i].LastSignInAt = &at
		}
	}
	return nil
}

func (s *System) InsertAuditLog(_ context.Context, entry *db.AuditLog) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	entry.ID = len(s.Audit) + 1
	s.Audit = append(s.Audit, *entry)
	return nil
}

func (s *System) AuditLogs(_ context.Context, f db.AuditFilter) ([]db.AuditLog, int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Err != nil {
		return nil, 0, s.Err
	}
	out := []db.AuditLog{}
	for i := len(s.Audit) - 1; i >= 0; i-- {
		if f.Action == "" || s.Audit[i].Action == f.Action {
			out = append(out, s.Audit[i])
		}
	}
	total := len(out)
	if f.Limit > 0 && len(out) > f.Limit {
		out = out[:f.Limit]
	}
	return out, total, nil
}

func (s *System) SiteSettings(context.Context) (*db.SiteSettings, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.SettingsReads++
	if s.Settings == nil {
		d := db.DefaultSiteSettings()
		return &d, nil
	}
	cp := *s.Settings
	return &cp, nil
}

func (s *System) SaveSiteSettings(_ context.Context, settings *db.SiteSettings) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	cp := *settings
	s.Settings = &cp
	return nil
}

func (s *System) NewsBySlug(_ context.Context, slug string, publishedOnly bool) (*db.News, error) {
	s.News.mu.Lock()
	defer s.News.mu.Unlock()
	for _, n := range s.News.Rows {
		if n.Slug == slug && (!publishedOnly || n.Status == db.StatusPublished) {
			return &n, nil
		}
	}
	return nil, nil
}

// Actions lists audit entries as "entity:action" in insertion order.
func (s *System) Actions() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]string, len(s.Audit))
	for i, a := range s.Audit {
		out[i] = a.Entity + ":" + a.Action
	}
	return out
}

// NewTable returns an empty table that treats rows scheduled after now as unpublished.
func NewTable[T any, P db.ContentPtr[T]](now time.Time) *Table[T, P] {
	return &Table[T, P]{Now: now}
}

// NewSystem returns an empty system store resolving news slugs against news.
func NewSystem(news *Table[db.News, *db.News]) *System {
	return &System{News: news}
}

// Revalidator records revalidated paths, sorted.
type Revalidator struct {
	mu    sync.Mutex
	paths []string
}

func (r *Revalidator) Revalidate(paths ...string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.paths = append(r.paths, paths...)
	sort.Strings(r.paths)
}

func (r *Revalidator) Paths() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]string(nil), r.paths...)
}
