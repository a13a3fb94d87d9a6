package cms

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/daniilsolovey/municipal-portal/internal/auth"
	"github.com/daniilsolovey/municipal-portal/internal/db"
)

// Collection exposes list, read and write actions for one content type. A scoped collection
// only sees rows whose kind equals its scope and forces that kind on writes.
type Collection[T any, P db.ContentPtr[T]] struct {
	m     *Manager
	name  string
	kind  string
	paths []string
	store ContentStore[T]

	beforeSave func(ctx context.Context, row *T, existing *T, now time.Time) error
}

func newCollection[T any, P db.ContentPtr[T]](m *Manager, name string, store ContentStore[T], kind string, paths ...string) *Collection[T, P] {
	return &Collection[T, P]{
		m:     m,
		name:  name,
		kind:  kind,
		paths: paths,
		store: store,
	}
}

func (c *Collection[T, P]) Name() string { return c.name }

// Kind returns the scope of the collection, empty when unscoped.
func (c *Collection[T, P]) Kind() string { return c.kind }

// List returns rows of any status for the back office.
func (c *Collection[T, P]) List(ctx context.Context, q db.ListQuery) (Page[T], error) {
	q.Published = false
	return c.list(ctx, q)
}

// Published returns only rows visible on the public site.
func (c *Collection[T, P]) Published(ctx context.Context, q db.ListQuery) (Page[T], error) {
	q.Published = true
	q.Status = ""
	return c.list(ctx, q)
}

func (c *Collection[T, P]) list(ctx context.Context, q db.ListQuery) (Page[T], error) {
	q, err := q.Normalize()
	if err != nil {
		return Page[T]{}, newValidationError("limit", err.Error())
	}
	if q.Status != "" && !validStatus(q.Status) {
		return Page[T]{}, newValidationError("status", "must be one of: draft, published, archived")
	}
	if c.kind != "" {
		q.Kind = c.kind
	} else if _, kinded := any(P(new(T))).(db.Kinded); q.Kind != "" && !kinded {
		return Page[T]{}, newValidationError("kind", fmt.Sprintf("is not supported by %s", c.name))
	}

	items, total, err := c.store.List(ctx, q)
	if err != nil {
		return Page[T]{}, fmt.Errorf("list %s: %w", c.name, err)
	}

	return Page[T]{Items: items, Total: total, Limit: q.Limit, Offset: q.Offset}, nil
}

func (c *Collection[T, P]) Get(ctx context.Context, id int) (*T, error) {
	return c.byID(ctx, id, false)
}

func (c *Collection[T, P]) PublishedByID(ctx context.Context, id int) (*T, error) {
	return c.byID(ctx, id, true)
}

func (c *Collection[T, P]) byID(ctx context.Context, id int, publishedOnly bool) (*T, error) {
	if id <= 0 {
		return nil, newValidationError("id", "must be positive")
	}

	row, err := c.store.ByID(ctx, id, publishedOnly)
	if err != nil {
		return nil, fmt.Errorf("get %s: %w", c.name, err)
	} else if row == nil || !c.inScope(row) {
		return nil, notFound(c.name, id)
	}

	return row, nil
}

func (c *Collection[T, P]) Create(ctx context.Context, actor Actor, row *T) (*T, error) {
	if err := requireRole(actor, auth.RoleEditor); err != nil {
		return nil, err
	}

	p := P(row)
	now := c.m.now()
	p.SetPK(0)
	if p.GetStatus() == "" {
		p.SetStatus(db.StatusDraft)
	}
	c.forceScope(row)
	p.Stamp(now, true)

	if c.beforeSave != nil {
		if err := c.beforeSave(ctx, row, nil, now); err != nil {
			return nil, err
		}
	}
	if err := c.m.check(row); err != nil {
		return nil, err
	}

	if err := c.store.Insert(ctx, row); err != nil {
		return nil, fmt.Errorf("create %s: %w", c.name, err)
	}

	c.m.audit(ctx, actor, ActionCreate, c.name, intPtr(p.PK()), map[string]string{"status": p.GetStatus()})
	c.m.reval.Revalidate(c.paths...)

	return row, nil
}

// Update replaces every editable field of row id. An empty status keeps the stored one.
func (c *Collection[T, P]) Update(ctx context.Context, actor Actor, id int, row *T) (*T, error) {
	if err := requireRole(actor, auth.RoleEditor); err != nil {
		return nil, err
	}

	existing, err := c.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	p, old := P(row), P(existing)
	now := c.m.now()
	p.SetPK(id)
	if p.GetStatus() == "" {
		p.SetStatus(old.GetStatus())
	}
	c.forceScope(row)
	p.Stamp(now, false)

	if c.beforeSave != nil {
		if err := c.beforeSave(ctx, row, existing, now); err != nil {
			return nil, err
		}
	}
	if err := c.m.check(row); err != nil {
		return nil, err
	}

	found, err := c.store.Update(ctx, row)
	if err != nil {
		return nil, fmt.Errorf("update %s: %w", c.name, err)
	} else if !found {
		return nil, notFound(c.name, id)
	}

	details := map[string]string{"status": p.GetStatus()}
	if old.GetStatus() != p.GetStatus() {
		details["previousStatus"] = old.GetStatus()
	}
	c.m.audit(ctx, actor, ActionUpdate, c.name, intPtr(id), details)
	c.m.reval.Revalidate(c.paths...)

	return row, nil
}

func (c *Collection[T, P]) Delete(ctx context.Context, actor Actor, id int) error {
	if err := requireRole(actor, auth.RoleEditor); err != nil {
		return err
	}

	if _, err := c.Get(ctx, id); err != nil {
		return err
	}

	found, err := c.store.Delete(ctx, id)
	if err != nil {
		return fmt.Errorf("delete %s: %w", c.name, err)
	} else if !found {
		return notFound(c.name, id)
	}

	c.m.audit(ctx, actor, ActionDelete, c.name, intPtr(id), map[string]string{"id": strconv.Itoa(id)})
	c.m.reval.Revalidate(c.paths...)

	return nil
}

// Stats counts all rows and published rows of the collection.
func (c *Collection[T, P]) Stats(ctx context.Context) (CollectionStats, error) {
	total, err := c.store.Count(ctx, "", c.kind)
	if err != nil {
		return CollectionStats{}, fmt.Errorf("count %s: %w", c.name, err)
	}

	published, err := c.store.Count(ctx, db.StatusPublished, c.kind)
	if err != nil {
		return CollectionStats{}, fmt.Errorf("count published %s: %w", c.name, err)
	}

	return CollectionStats{Name: c.name, Total: total, Published: published}, nil
}

func (c *Collection[T, P]) inScope(row *T) bool {
	if c.kind == "" {
		return true
	}
	k, ok := any(P(row)).(db.Kinded)
	return ok && k.GetKind() == c.kind
}

func (c *Collection[T, P]) forceScope(row *T) {
	if c.kind == "" {
		return
	}
	if k, ok := any(P(row)).(db.Kinded); ok {
		k.SetKind(c.kind)
	}
}

func validStatus(s string) bool {
	return s == db.StatusDraft || s == db.StatusPublished || s == db.StatusArchived
}

func intPtr(v int) *int { return &v }

// IsNotFound reports whether err means the requested row does not exist.
func IsNotFound(err error) bool {
	return errors.Is(err, ErrNotFound)
}
