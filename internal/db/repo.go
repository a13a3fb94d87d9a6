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

const (
	DefaultLimit = 20
	MaxLimit     = 100
)

var (
	ErrConflict    = errors.New("row conflicts with an existing record")
	ErrInvalidPage = errors.New("limit and offset must not be negative")
)

type Repository struct {
	db pg.DBI
}

func New(db pg.DBI) *Repository {
	return &Repository{
		db: db,
	}
}

func (r *Repository) Ping(ctx context.Context) error {
	if db, ok := r.db.(*pg.DB); ok {
		if err := db.Ping(ctx); err != nil {
			return err
		}
		return nil
	}

	return nil
}

func (r *Repository) Close() error {
	if db, ok := r.db.(*pg.DB); ok {
		if err := db.Close(); err != nil {
			return err
		}
		return nil
	}

	return nil
}

// ListQuery narrows a content listing. Zero values mean "no filter". Kind only applies to
// Kinded rows.
type ListQuery struct {
	Search    string
	Status    string
	Kind      string
	Published bool
	Limit     int
	Offset    int
}

// Normalize applies the default page size and clamps it to MaxLimit.
func (q ListQuery) Normalize() (ListQuery, error) {
	if q.Limit < 0 || q.Offset < 0 {
		return q, fmt.Errorf("%w: limit=%d, offset=%d", ErrInvalidPage, q.Limit, q.Offset)
	}
	if q.Limit == 0 {
		q.Limit = DefaultLimit
	}
	if q.Limit > MaxLimit {
		q.Limit = MaxLimit
	}
	q.Search = strings.TrimSpace(q.Search)

	return q, nil
}

// Table is a content store bound to one row type.
type Table[T any, P ContentPtr[T]] struct {
	repo *Repository
}

func NewTable[T any, P ContentPtr[T]](repo *Repository) *Table[T, P] {
	return &Table[T, P]{repo: repo}
}

// List returns one page of rows together with the total number of matching rows.
func (t *Table[T, P]) List(ctx context.Context, q ListQuery) ([]T, int, error) {
	q, err := q.Normalize()
	if err != nil {
		return nil, 0, err
	}

	var proto P = new(T)
	items := []T{}
	query := t.repo.db.ModelContext(ctx, &items)
	query = applyFilters(query, proto, q, time.Now())

	count, err := query.
		OrderExpr(proto.DefaultOrder()).
		Limit(q.Limit).
		Offset(q.Offset).
		SelectAndCount()
	if err != nil {
		return nil, 0, fmt.Errorf("failed to query %T: %w", proto, err)
	}

	return items, count, nil
}

// ByID returns nil without error when the row does not exist or is filtered out.
func (t *Table[T, P]) ByID(ctx context.Context, id int, publishedOnly bool) (*T, error) {
	row := new(T)
	query := t.repo.db.ModelContext(ctx, row).
		Where(`"t"."id" = ?`, id)
	query = applyFilters(query, P(row), ListQuery{Published: publishedOnly}, time.Now())

	err := query.Select()
	if errors.Is(err, pg.ErrNoRows) {
		return nil, nil
	} else if err != nil {
		return nil, fmt.Errorf("failed to get %T by id: %w", row, err)
	}

	return row, nil
}

func (t *Table[T, P]) Insert(ctx context.Context, row *T) error {
	_, err := t.repo.db.ModelContext(ctx, row).
		Returning("*").
		Insert()
	if err != nil {
		return fmt.Errorf("failed to insert %T: %w", row, wrapConflict(err))
	}

	return nil
}

// Update overwrites every column except createdAt. It reports false when no row matched.
func (t *Table[T, P]) Update(ctx context.Context, row *T) (bool, error) {
	res, err := t.repo.db.ModelContext(ctx, row).
		WherePK().
		ExcludeColumn(Columns.Base.CreatedAt).
		Returning("*").
		Update()
	if errors.Is(err, pg.ErrNoRows) {
		return false, nil
	} else if err != nil {
		return false, fmt.Errorf("failed to update %T: %w", row, wrapConflict(err))
	}

	return res.RowsAffected() > 0, nil
}

func (t *Table[T, P]) Delete(ctx context.Context, id int) (bool, error) {
	res, err := t.repo.db.ModelContext(ctx, (*T)(nil)).
		Where(`"t"."id" = ?`, id).
		Delete()
	if err != nil {
		return false, fmt.Errorf("failed to delete %T: %w", (*T)(nil), err)
	}

	return res.RowsAffected() > 0, nil
}

// Count returns the number of rows, optionally restricted to a status and kind.
func (t *Table[T, P]) Count(ctx context.Context, status, kind string) (int, error) {
	query := t.repo.db.ModelContext(ctx, (*T)(nil))
	if status != "" {
		query = query.Where(`"t"."status" = ?`, status)
	}
	if kind != "" {
		query = query.Where(`"t"."kind" = ?`, kind)
	}

	count, err := query.Count()
	if err != nil {
		return 0, fmt.Errorf("failed to count %T: %w", (*T)(nil), err)
	}

	return count, nil
}

func applyFilters(query *orm.Query, proto Content, q ListQuery, now time.Time) *orm.Query {
	if q.Published {
		query = query.Where(`"t"."status" = ?`, StatusPublished)
		if s, ok := proto.(Scheduled); ok {
			query = query.Where(`"t".? <= ?`, pg.Ident(s.PublishColumn()), now)
		}
	} else if q.Status != "" {
		query = query.Where(`"t"."status" = ?`, q.Status)
	}

	if _, ok := proto.(Kinded); ok && q.Kind != "" {
		query = query.Where(`"t"."kind" = ?`, q.Kind)
	}

	if q.Search != "" {
		pattern := "%" + escapeLike(q.Search) + "%"
		query = query.WhereGroup(func(q *orm.Query) (*orm.Query, error) {
			for _, col := range proto.SearchColumns() {
				q = q.WhereOr(`"t".? ILIKE ?`, pg.Ident(col), pattern)
			}
			return q, nil
		})
	}

	return query
}

func escapeLike(s string) string {
	return strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`).Replace(s)
}

func wrapConflict(err error) error {
	var pgErr pg.Error
	if errors.As(err, &pgErr) && pgErr.Field('C') == "23505" {
		return fmt.Errorf("%w: %s", ErrConflict, pgErr.Field('D'))
	}

	return err
}
