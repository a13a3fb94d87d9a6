// Package cms implements the portal's server actions: every mutation validates its input,
// issues one repository call, records an audit entry and revalidates the affected public paths.
package cms

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/go-playground/validator/v10"

	"github.com/daniilsolovey/municipal-portal/internal/auth"
	"github.com/daniilsolovey/municipal-portal/internal/db"
	"github.com/daniilsolovey/municipal-portal/internal/storage"
)

// ContentStore is the persistence a Collection needs. *db.Table implements it.
type ContentStore[T any] interface {
	List(ctx context.Context, q db.ListQuery) ([]T, int, error)
	ByID(ctx context.Context, id int, publishedOnly bool) (*T, error)
	Insert(ctx context.Context, row *T) error
	Update(ctx context.Context, row *T) (bool, error)
	Delete(ctx context.Context, id int) (bool, error)
	Count(ctx context.Context, status, kind string) (int, error)
}

// SystemStore covers users, audit logs, site settings and slug lookups. *db.Repository
// implements it.
type SystemStore interface {
	UserByEmail(ctx context.Context, email string) (*db.User, error)
	UserByID(ctx context.Context, userID int) (*db.User, error)
	Users(ctx context.Context, search, role string, limit, offset int) ([]db.User, int, error)
	CountUsersByRole(ctx context.Context, role string) (int, error)
	InsertUser(ctx context.Context, user *db.User) error
	UpdateUser(ctx context.Context, user *db.User) (bool, error)
	DeleteUser(ctx context.Context, userID int) (bool, error)
	TouchSignIn(ctx context.Context, userID int, at time.Time) error

	InsertAuditLog(ctx context.Context, entry *db.AuditLog) error
	AuditLogs(ctx context.Context, f db.AuditFilter) ([]db.AuditLog, int, error)

	SiteSettings(ctx context.Context) (*db.SiteSettings, error)
	SaveSiteSettings(ctx context.Context, settings *db.SiteSettings) error

	NewsBySlug(ctx context.Context, slug string, publishedOnly bool) (*db.News, error)
}

// Revalidator drops cached public responses under the given paths.
type Revalidator interface {
	Revalidate(paths ...string)
}

type nopRevalidator struct{}

func (nopRevalidator) Revalidate(...string) {}

// Stores groups every store the Manager works on.
type Stores struct {
	System        SystemStore
	HeroSlides    ContentStore[db.HeroSlide]
	News          ContentStore[db.News]
	FAQs          ContentStore[db.FAQ]
	Officials     ContentStore[db.Official]
	Departments   ContentStore[db.Department]
	Barangays     ContentStore[db.Barangay]
	Documents     ContentStore[db.Document]
	History       ContentStore[db.HistoryEntry]
	VisionMission ContentStore[db.VisionMission]
	Tourism       ContentStore[db.TourismListing]
	Services      ContentStore[db.Service]
	Menus         ContentStore[db.MenuItem]
}

// NewStores binds every store to repo.
func NewStores(repo *db.Repository) Stores {
	return Stores{
		System:        repo,
		HeroSlides:    db.NewTable[db.HeroSlide](repo),
		News:          db.NewTable[db.News](repo),
		FAQs:          db.NewTable[db.FAQ](repo),
		Officials:     db.NewTable[db.Official](repo),
		Departments:   db.NewTable[db.Department](repo),
		Barangays:     db.NewTable[db.Barangay](repo),
		Documents:     db.NewTable[db.Document](repo),
		History:       db.NewTable[db.HistoryEntry](repo),
		VisionMission: db.NewTable[db.VisionMission](repo),
		Tourism:       db.NewTable[db.TourismListing](repo),
		Services:      db.NewTable[db.Service](repo),
		Menus:         db.NewTable[db.MenuItem](repo),
	}
}

type Options struct {
	Tokens      *auth.TokenService
	Files       storage.ObjectStorage
	Limits      storage.Limits
	Revalidator Revalidator
	Logger      *slog.Logger
	// Now overrides the clock, time.Now when nil.
	Now func() time.Time
}

type Manager struct {
	store    SystemStore
	tokens   *auth.TokenService
	files    storage.ObjectStorage
	limits   storage.Limits
	reval    Revalidator
	log      *slog.Logger
	validate *validator.Validate
	now      func() time.Time

	brandingMu sync.RWMutex
	branding   *db.SiteSettings

	HeroSlides      *Collection[db.HeroSlide, *db.HeroSlide]
	News            *Collection[db.News, *db.News]
	FAQs            *Collection[db.FAQ, *db.FAQ]
	Officials       *Collection[db.Official, *db.Official]
	Departments     *Collection[db.Department, *db.Department]
	Barangays       *Collection[db.Barangay, *db.Barangay]
	Documents       *Collection[db.Document, *db.Document]
	ExecutiveOrders *Collection[db.Document, *db.Document]
	Ordinances      *Collection[db.Document, *db.Document]
	History         *Collection[db.HistoryEntry, *db.HistoryEntry]
	VisionMission   *Collection[db.VisionMission, *db.VisionMission]
	Tourism         *Collection[db.TourismListing, *db.TourismListing]
	TourismEvents   *Collection[db.TourismListing, *db.TourismListing]
	Services        *Collection[db.Service, *db.Service]
	Menus           *Collection[db.MenuItem, *db.MenuItem]
}

func NewManager(stores Stores, opts Options) *Manager {
	m := &Manager{
		store:    stores.System,
		tokens:   opts.Tokens,
		files:    opts.Files,
		limits:   opts.Limits,
		reval:    opts.Revalidator,
		log:      opts.Logger,
		validate: newValidator(),
		now:      time.Now,
	}
	if m.reval == nil {
		m.reval = nopRevalidator{}
	}
	if m.log == nil {
		m.log = slog.Default()
	}
	if opts.Now != nil {
		m.now = opts.Now
	}

	m.HeroSlides = newCollection(m, "heroSlides", stores.HeroSlides, "", "hero-slides", "home")
	m.News = newCollection(m, "news", stores.News, "", "news", "home")
	m.News.beforeSave = m.prepareNews
	m.FAQs = newCollection(m, "faqs", stores.FAQs, "", "faqs", "home")
	m.Officials = newCollection(m, "officials", stores.Officials, "", "officials", "home")
	m.Departments = newCollection(m, "departments", stores.Departments, "", "departments", "officials")
	m.Barangays = newCollection(m, "barangays", stores.Barangays, "", "barangays")
	m.Documents = newCollection(m, "documents", stores.Documents, "", "documents")
	m.ExecutiveOrders = newCollection(m, "executiveOrders", stores.Documents, db.DocumentExecutiveOrder, "documents")
	m.Ordinances = newCollection(m, "ordinances", stores.Documents, db.DocumentOrdinance, "documents")
	m.History = newCollection(m, "history", stores.History, "", "history")
	m.VisionMission = newCollection(m, "visionMission", stores.VisionMission, "", "vision-mission")
	m.Tourism = newCollection(m, "tourism", stores.Tourism, "", "tourism", "home")
	m.TourismEvents = newCollection(m, "tourismEvents", stores.Tourism, db.TourismEvent, "tourism", "home")
	m.Services = newCollection(m, "services", stores.Services, "", "services")
	m.Menus = newCollection(m, "menus", stores.Menus, "", "menus")

	return m
}

// Actor is the signed-in user performing an action.
type Actor struct {
	UserID int
	Email  string
	Role   string
	IP     string
}

func ActorFromUser(u *db.User, ip string) Actor {
	return Actor{UserID: u.ID, Email: u.Email, Role: u.Role, IP: ip}
}

func requireRole(actor Actor, min string) error {
	if actor.UserID == 0 {
		return ErrUnauthorized
	}
	if !auth.RoleAtLeast(actor.Role, min) {
		return ErrForbidden
	}
	return nil
}

const (
	ActionCreate         = "create"
	ActionUpdate         = "update"
	ActionDelete         = "delete"
	ActionSignIn         = "sign_in"
	ActionSignOut        = "sign_out"
	ActionUpload         = "upload"
	ActionDeleteFile     = "delete_file"
	ActionUpdateSettings = "update_settings"
)

// audit records an entry. The mutation it describes has already happened, so a failure is
// logged and not returned.
func (m *Manager) audit(ctx context.Context, actor Actor, action, entity string, entityID *int, details map[string]string) {
	entry := &db.AuditLog{
		Action:    action,
		Entity:    entity,
		EntityID:  entityID,
		Details:   details,
		IP:        actor.IP,
		UserEmail: actor.Email,
		CreatedAt: m.now(),
	}
	if actor.UserID != 0 {
		uid := actor.UserID
		entry.UserID = &uid
	}

	if err := m.store.InsertAuditLog(ctx, entry); err != nil {
		m.log.ErrorContext(ctx, "failed to write audit log", "error", err, "action", action, "entity", entity)
	}
}

// Page is one page of a listing.
type Page[T any] struct {
	Items  []T `json:"items"`
	Total  int `json:"total"`
	Limit  int `json:"limit"`
	Offset int `json:"offset"`
}
