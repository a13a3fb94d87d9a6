package rpc

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/vmkteam/zenrpc/v2"

	"github.com/daniilsolovey/municipal-portal/internal/cms"
	"github.com/daniilsolovey/municipal-portal/internal/db"
)

//go:generate zenrpc

const defaultPageSize = 10

// PublicService exposes the published content of the portal.
type PublicService struct {
	zenrpc.Service
	m *cms.Manager
}

func NewPublicService(m *cms.Manager) *PublicService {
	return &PublicService{m: m}
}

// Home returns everything the landing page renders.
//
//zenrpc:return landing page content
//zenrpc:500 internal server error
func (s *PublicService) Home(ctx context.Context) (*Home, error) {
	home, err := s.m.Home(ctx)
	if err != nil {
		return nil, newError(err)
	}

	return NewHome(home), nil
}

// Settings returns the site branding.
//
//zenrpc:return site settings
//zenrpc:500 internal server error
func (s *PublicService) Settings(ctx context.Context) (*Settings, error) {
	settings, err := s.m.Branding(ctx)
	if err != nil {
		return nil, newError(err)
	}

	r := NewSettings(settings)
	return &r, nil
}

// Menu returns the navigation tree of a location.
//
//zenrpc:location header, footer or quick_links
//zenrpc:return menu tree
//zenrpc:400 unknown location
//zenrpc:500 internal server error
func (s *PublicService) Menu(ctx context.Context, location string) ([]MenuItem, error) {
	tree, err := s.m.Menu(ctx, location)
	if err != nil {
		return nil, newError(err)
	}

	return NewMenuItems(tree), nil
}

// News returns published news, newest first.
//
//zenrpc:filter search and pagination
//zenrpc:return page of news summaries
//zenrpc:400 invalid page or pageSize above 100
//zenrpc:500 internal server error
func (s *PublicService) News(ctx context.Context, filter ListFilter) (*NewsPage, error) {
	q, err := filter.query()
	if err != nil {
		return nil, err
	}

	page, err := s.m.News.Published(ctx, q)
	if err != nil {
		return nil, newError(err)
	}

	return &NewsPage{Items: NewNewsSummaries(page.Items), Total: page.Total}, nil
}

// NewsByID returns a published news item with full content.
//
//zenrpc:id news numeric ID
//zenrpc:return news with full content
//zenrpc:400 id must be positive
//zenrpc:404 news not found
//zenrpc:500 internal server error
func (s *PublicService) NewsByID(ctx context.Context, id int) (*News, error) {
	n, err := s.m.News.PublishedByID(ctx, id)
	if err != nil {
		return nil, newError(err)
	}

	r := NewNews(*n)
	return &r, nil
}

// NewsBySlug returns a published news item by its slug.
//
//zenrpc:slug news slug
//zenrpc:return news with full content
//zenrpc:404 news not found
//zenrpc:500 internal server error
func (s *PublicService) NewsBySlug(ctx context.Context, slug string) (*News, error) {
	n, err := s.m.NewsBySlug(ctx, slug)
	if err != nil {
		return nil, newError(err)
	}

	r := NewNews(*n)
	return &r, nil
}

// FAQs returns every published FAQ in display order.
//
//zenrpc:return list of FAQs
//zenrpc:500 internal server error
func (s *PublicService) FAQs(ctx context.Context) (FAQs, error) {
	page, err := s.m.FAQs.Published(ctx, db.ListQuery{Limit: db.MaxLimit})
	if err != nil {
		return nil, newError(err)
	}

	return NewFAQs(page.Items), nil
}

// Officials returns every published official in display order.
//
//zenrpc:return list of officials
//zenrpc:500 internal server error
func (s *PublicService) Officials(ctx context.Context) (Officials, error) {
	page, err := s.m.Officials.Published(ctx, db.ListQuery{Limit: db.MaxLimit})
	if err != nil {
		return nil, newError(err)
	}

	return NewOfficials(page.Items), nil
}

// Documents returns published legislative documents, optionally of one kind.
//
//zenrpc:kind optional document kind, e.g. ordinance
//zenrpc:filter search and pagination
//zenrpc:return page of documents
//zenrpc:400 invalid page or pageSize above 100
//zenrpc:500 internal server error
func (s *PublicService) Documents(ctx context.Context, kind *string, filter ListFilter) (*DocumentPage, error) {
	q, err := filter.query()
	if err != nil {
		return nil, err
	}
	if kind != nil {
		q.Kind = *kind
	}

	page, err := s.m.Documents.Published(ctx, q)
	if err != nil {
		return nil, newError(err)
	}

	return &DocumentPage{Items: NewDocuments(page.Items), Total: page.Total}, nil
}

// Events returns published tourism events that have not ended yet.
//
//zenrpc:return list of upcoming events
//zenrpc:500 internal server error
func (s *PublicService) Events(ctx context.Context) (Events, error) {
	events, err := s.m.UpcomingEvents(ctx, db.MaxLimit)
	if err != nil {
		return nil, newError(err)
	}

	return NewEvents(events), nil
}

func (f ListFilter) query() (db.ListQuery, error) {
	page, size := 1, defaultPageSize
	if f.Page != nil {
		page = *f.Page
	}
	if f.PageSize != nil {
		size = *f.PageSize
	}
	if page < 1 || size < 1 {
		return db.ListQuery{}, zenrpc.NewStringError(http.StatusBadRequest, "page and pageSize must be positive")
	}
	if size > db.MaxLimit {
		return db.ListQuery{}, zenrpc.NewStringError(http.StatusBadRequest, fmt.Sprintf("pageSize must not exceed %d", db.MaxLimit))
	}

	q := db.ListQuery{Limit: size, Offset: (page - 1) * size}
	if f.Search != nil {
		q.Search = *f.Search
	}

	return q, nil
}

// newError converts manager errors to JSON-RPC errors with HTTP-like codes.
func newError(err error) *zenrpc.Error {
	var verr *cms.ValidationError
	switch {
	case errors.As(err, &verr):
		return &zenrpc.Error{Code: http.StatusBadRequest, Message: cms.Message(err), Data: verr.Fields, Err: err}
	case errors.Is(err, cms.ErrNotFound):
		return zenrpc.NewError(http.StatusNotFound, err)
	}

	return zenrpc.NewError(http.StatusInternalServerError, err)
}
