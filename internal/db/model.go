// nolint
//
//lint:file-ignore U1000 ignore unused code, it's generated
package db

import (
	"time"
)

var Columns = struct {
	Base struct {
		ID, Status, CreatedAt, UpdatedAt string
	}
	News struct {
		Slug, PublishedAt string
	}
	User struct {
		ID, Email, PasswordHash, FullName, Role, CreatedAt, UpdatedAt, LastSignInAt string
	}
	AuditLog struct {
		ID, UserID, UserEmail, Action, Entity, EntityID, Details, IP, CreatedAt string
	}
	SiteSettings struct {
		ID string
	}
	Kind string
}{
	Base: struct {
		ID, Status, CreatedAt, UpdatedAt string
	}{
		ID:        "id",
		Status:    "status",
		CreatedAt: "createdAt",
		UpdatedAt: "updatedAt",
	},
	News: struct {
		Slug, PublishedAt string
	}{
		Slug:        "slug",
		PublishedAt: "publishedAt",
	},
	User: struct {
		ID, Email, PasswordHash, FullName, Role, CreatedAt, UpdatedAt, LastSignInAt string
	}{
		ID:           "userId",
		Email:        "email",
		PasswordHash: "passwordHash",
		FullName:     "fullName",
		Role:         "role",
		CreatedAt:    "createdAt",
		UpdatedAt:    "updatedAt",
		LastSignInAt: "lastSignInAt",
	},
	AuditLog: struct {
		ID, UserID, UserEmail, Action, Entity, EntityID, Details, IP, CreatedAt string
	}{
		ID:        "auditLogId",
		UserID:    "userId",
		UserEmail: "userEmail",
		Action:    "action",
		Entity:    "entity",
		EntityID:  "entityId",
		Details:   "details",
		IP:        "ip",
		CreatedAt: "createdAt",
	},
	SiteSettings: struct {
		ID string
	}{
		ID: "siteSettingsId",
	},
	Kind: "kind",
}

var Tables = struct {
	HeroSlide, News, FAQ, Official, Department, Barangay, Document, HistoryEntry,
	VisionMission, TourismListing, Service, MenuItem, User, AuditLog, SiteSettings,
	GooseDbVersion struct {
		Name, Alias string
	}
}{
	HeroSlide:      struct{ Name, Alias string }{Name: "heroSlides", Alias: "t"},
	News:           struct{ Name, Alias string }{Name: "news", Alias: "t"},
	FAQ:            struct{ Name, Alias string }{Name: "faqs", Alias: "t"},
	Official:       struct{ Name, Alias string }{Name: "officials", Alias: "t"},
	Department:     struct{ Name, Alias string }{Name: "departments", Alias: "t"},
	Barangay:       struct{ Name, Alias string }{Name: "barangays", Alias: "t"},
	Document:       struct{ Name, Alias string }{Name: "documents", Alias: "t"},
	HistoryEntry:   struct{ Name, Alias string }{Name: "historyEntries", Alias: "t"},
	VisionMission:  struct{ Name, Alias string }{Name: "visionMission", Alias: "t"},
	TourismListing: struct{ Name, Alias string }{Name: "tourismListings", Alias: "t"},
	Service:        struct{ Name, Alias string }{Name: "services", Alias: "t"},
	MenuItem:       struct{ Name, Alias string }{Name: "menuItems", Alias: "t"},
	User:           struct{ Name, Alias string }{Name: "users", Alias: "t"},
	AuditLog:       struct{ Name, Alias string }{Name: "auditLogs", Alias: "t"},
	SiteSettings:   struct{ Name, Alias string }{Name: "siteSettings", Alias: "t"},
	GooseDbVersion: struct{ Name, Alias string }{Name: "goose_db_version", Alias: "t"},
}

// Base holds the columns shared by every content table.
type Base struct {
	ID        int        `pg:"id,pk" json:"id"`
	Status    string     `pg:"status,use_zero" json:"status" validate:"omitempty,oneof=draft published archived"`
	CreatedAt time.Time  `pg:"createdAt,use_zero" json:"createdAt"`
	UpdatedAt *time.Time `pg:"updatedAt" json:"updatedAt,omitempty"`
}

type HeroSlide struct {
	tableName struct{} `pg:"heroSlides,alias:t,discard_unknown_columns"`

	Base
	Title     string `pg:"title,use_zero" json:"title" validate:"required,max=200"`
	Subtitle  string `pg:"subtitle,use_zero" json:"subtitle" validate:"max=500"`
	ImageURL  string `pg:"imageUrl,use_zero" json:"imageUrl" validate:"required,max=1024"`
	LinkURL   string `pg:"linkUrl,use_zero" json:"linkUrl" validate:"max=1024"`
	SortOrder int    `pg:"sortOrder,use_zero" json:"sortOrder"`
}

type News struct {
	tableName struct{} `pg:"news,alias:t,discard_unknown_columns"`

	Base
	Title       string     `pg:"title,use_zero" json:"title" validate:"required,max=300"`
	Slug        string     `pg:"slug,use_zero" json:"slug" validate:"omitempty,max=320"`
	Summary     string     `pg:"summary,use_zero" json:"summary" validate:"max=1000"`
	Content     string     `pg:"content,use_zero" json:"content" validate:"required"`
	ImageURL    string     `pg:"imageUrl,use_zero" json:"imageUrl" validate:"max=1024"`
	Author      string     `pg:"author,use_zero" json:"author" validate:"max=200"`
	Category    string     `pg:"category,use_zero" json:"category" validate:"max=100"`
	PublishedAt *time.Time `pg:"publishedAt" json:"publishedAt,omitempty"`
}

type FAQ struct {
	tableName struct{} `pg:"faqs,alias:t,discard_unknown_columns"`

	Base
	Question  string `pg:"question,use_zero" json:"question" validate:"required,max=500"`
	Answer    string `pg:"answer,use_zero" json:"answer" validate:"required"`
	Category  string `pg:"category,use_zero" json:"category" validate:"max=100"`
	SortOrder int    `pg:"sortOrder,use_zero" json:"sortOrder"`
}

type Official struct {
	tableName struct{} `pg:"officials,alias:t,discard_unknown_columns"`

	Base
	Name         string `pg:"name,use_zero" json:"name" validate:"required,max=200"`
	Position     string `pg:"position,use_zero" json:"position" validate:"required,max=200"`
	DepartmentID *int   `pg:"departmentId" json:"departmentId,omitempty"`
	PhotoURL     string `pg:"photoUrl,use_zero" json:"photoUrl" validate:"max=1024"`
	Email        string `pg:"email,use_zero" json:"email" validate:"omitempty,email,max=200"`
	Phone        string `pg:"phone,use_zero" json:"phone" validate:"max=50"`
	Term         string `pg:"term,use_zero" json:"term" validate:"max=100"`
	SortOrder    int    `pg:"sortOrder,use_zero" json:"sortOrder"`
}

type Department struct {
	tableName struct{} `pg:"departments,alias:t,discard_unknown_columns"`

	Base
	Name        string `pg:"name,use_zero" json:"name" validate:"required,max=200"`
	Head        string `pg:"head,use_zero" json:"head" validate:"max=200"`
	Description string `pg:"description,use_zero" json:"description"`
	Email       string `pg:"email,use_zero" json:"email" validate:"omitempty,email,max=200"`
	Phone       string `pg:"phone,use_zero" json:"phone" validate:"max=50"`
	Location    string `pg:"location,use_zero" json:"location" validate:"max=300"`
	SortOrder   int    `pg:"sortOrder,use_zero" json:"sortOrder"`
}

type Barangay struct {
	tableName struct{} `pg:"barangays,alias:t,discard_unknown_columns"`

	Base
	Name        string  `pg:"name,use_zero" json:"name" validate:"required,max=200"`
	Captain     string  `pg:"captain,use_zero" json:"captain" validate:"max=200"`
	Population  int     `pg:"population,use_zero" json:"population" validate:"gte=0"`
	Area        float64 `pg:"area,use_zero" json:"area" validate:"gte=0"`
	Description string  `pg:"description,use_zero" json:"description"`
	ImageURL    string  `pg:"imageUrl,use_zero" json:"imageUrl" validate:"max=1024"`
}

const (
	DocumentExecutiveOrder = "executive_order"
	DocumentOrdinance      = "ordinance"
	DocumentResolution     = "resolution"
	DocumentMemorandum     = "memorandum"
	DocumentOther          = "other"
)

type Document struct {
	tableName struct{} `pg:"documents,alias:t,discard_unknown_columns"`

	Base
	Kind        string     `pg:"kind,use_zero" json:"kind" validate:"required,oneof=executive_order ordinance resolution memorandum other"`
	Number      string     `pg:"number,use_zero" json:"number" validate:"max=100"`
	Title       string     `pg:"title,use_zero" json:"title" validate:"required,max=300"`
	Description string     `pg:"description,use_zero" json:"description"`
	FileURL     string     `pg:"fileUrl,use_zero" json:"fileUrl" validate:"max=1024"`
	IssuedAt    *time.Time `pg:"issuedAt" json:"issuedAt,omitempty"`
}

type HistoryEntry struct {
	tableName struct{} `pg:"historyEntries,alias:t,discard_unknown_columns"`

	Base
	Title     string `pg:"title,use_zero" json:"title" validate:"required,max=300"`
	Period    string `pg:"period,use_zero" json:"period" validate:"max=100"`
	Content   string `pg:"content,use_zero" json:"content" validate:"required"`
	ImageURL  string `pg:"imageUrl,use_zero" json:"imageUrl" validate:"max=1024"`
	SortOrder int    `pg:"sortOrder,use_zero" json:"sortOrder"`
}

type VisionMission struct {
	tableName struct{} `pg:"visionMission,alias:t,discard_unknown_columns"`

	Base
	Kind      string `pg:"kind,use_zero" json:"kind" validate:"required,oneof=vision mission goal core_value"`
	Title     string `pg:"title,use_zero" json:"title" validate:"max=300"`
	Content   string `pg:"content,use_zero" json:"content" validate:"required"`
	SortOrder int    `pg:"sortOrder,use_zero" json:"sortOrder"`
}

const (
	TourismAttraction    = "attraction"
	TourismEvent         = "event"
	TourismAccommodation = "accommodation"
	TourismDelicacy      = "delicacy"
)

type TourismListing struct {
	tableName struct{} `pg:"tourismListings,alias:t,discard_unknown_columns"`

	Base
	Kind        string     `pg:"kind,use_zero" json:"kind" validate:"required,oneof=attraction event accommodation delicacy"`
	Name        string     `pg:"name,use_zero" json:"name" validate:"required,max=200"`
	Description string     `pg:"description,use_zero" json:"description"`
	Location    string     `pg:"location,use_zero" json:"location" validate:"max=300"`
	ImageURL    string     `pg:"imageUrl,use_zero" json:"imageUrl" validate:"max=1024"`
	StartsAt    *time.Time `pg:"startsAt" json:"startsAt,omitempty"`
	EndsAt      *time.Time `pg:"endsAt" json:"endsAt,omitempty" validate:"omitempty,gtefield=StartsAt"`
	SortOrder   int        `pg:"sortOrder,use_zero" json:"sortOrder"`
}

type Service struct {
	tableName struct{} `pg:"services,alias:t,discard_unknown_columns"`

	Base
	Title          string `pg:"title,use_zero" json:"title" validate:"required,max=300"`
	Category       string `pg:"category,use_zero" json:"category" validate:"max=100"`
	Description    string `pg:"description,use_zero" json:"description"`
	Requirements   string `pg:"requirements,use_zero" json:"requirements"`
	Fee            string `pg:"fee,use_zero" json:"fee" validate:"max=100"`
	ProcessingTime string `pg:"processingTime,use_zero" json:"processingTime" validate:"max=100"`
	Office         string `pg:"office,use_zero" json:"office" validate:"max=200"`
	SortOrder      int    `pg:"sortOrder,use_zero" json:"sortOrder"`
}

const (
	MenuHeader     = "header"
	MenuFooter     = "footer"
	MenuQuickLinks = "quick_links"
)

type MenuItem struct {
	tableName struct{} `pg:"menuItems,alias:t,discard_unknown_columns"`

	Base
	Kind      string `pg:"kind,use_zero" json:"location" validate:"required,oneof=header footer quick_links"`
	Label     string `pg:"label,use_zero" json:"label" validate:"required,max=100"`
	Href      string `pg:"href,use_zero" json:"href" validate:"required,max=1024"`
	ParentID  *int   `pg:"parentId" json:"parentId,omitempty"`
	SortOrder int    `pg:"sortOrder,use_zero" json:"sortOrder"`
}

type User struct {
	tableName struct{} `pg:"users,alias:t,discard_unknown_columns"`

	ID           int        `pg:"userId,pk" json:"id"`
	Email        string     `pg:"email,use_zero" json:"email"`
	PasswordHash string     `pg:"passwordHash,use_zero" json:"-"`
	FullName     string     `pg:"fullName,use_zero" json:"fullName"`
	Role         string     `pg:"role,use_zero" json:"role"`
	CreatedAt    time.Time  `pg:"createdAt,use_zero" json:"createdAt"`
	UpdatedAt    *time.Time `pg:"updatedAt" json:"updatedAt,omitempty"`
	LastSignInAt *time.Time `pg:"lastSignInAt" json:"lastSignInAt,omitempty"`
}

type AuditLog struct {
	tableName struct{} `pg:"auditLogs,alias:t,discard_unknown_columns"`

	ID        int               `pg:"auditLogId,pk" json:"id"`
	UserID    *int              `pg:"userId" json:"userId,omitempty"`
	UserEmail string            `pg:"userEmail,use_zero" json:"userEmail"`
	Action    string            `pg:"action,use_zero" json:"action"`
	Entity    string            `pg:"entity,use_zero" json:"entity"`
	EntityID  *int              `pg:"entityId" json:"entityId,omitempty"`
	Details   map[string]string `pg:"details,type:jsonb" json:"details,omitempty"`
	IP        string            `pg:"ip,use_zero" json:"ip"`
	CreatedAt time.Time         `pg:"createdAt,use_zero" json:"createdAt"`
}

type SiteSettings struct {
	tableName struct{} `pg:"siteSettings,alias:t,discard_unknown_columns"`

	ID             int        `pg:"siteSettingsId,pk" json:"-"`
	SiteName       string     `pg:"siteName,use_zero" json:"siteName" validate:"required,max=200"`
	Tagline        string     `pg:"tagline,use_zero" json:"tagline" validate:"max=300"`
	LogoURL        string     `pg:"logoUrl,use_zero" json:"logoUrl" validate:"max=1024"`
	FaviconURL     string     `pg:"faviconUrl,use_zero" json:"faviconUrl" validate:"max=1024"`
	PrimaryColor   string     `pg:"primaryColor,use_zero" json:"primaryColor" validate:"omitempty,rrggbb"`
	SecondaryColor string     `pg:"secondaryColor,use_zero" json:"secondaryColor" validate:"omitempty,rrggbb"`
	ContactEmail   string     `pg:"contactEmail,use_zero" json:"contactEmail" validate:"omitempty,email"`
	ContactPhone   string     `pg:"contactPhone,use_zero" json:"contactPhone" validate:"max=50"`
	Address        string     `pg:"address,use_zero" json:"address" validate:"max=500"`
	FacebookURL    string     `pg:"facebookUrl,use_zero" json:"facebookUrl" validate:"omitempty,url"`
	UpdatedAt      *time.Time `pg:"updatedAt" json:"updatedAt,omitempty"`
}

type GooseDbVersion struct {
	tableName struct{} `pg:"goose_db_version,alias:t,discard_unknown_columns"`

	ID        int       `pg:"id,pk"`
	VersionID int64     `pg:"version_id,use_zero"`
	IsApplied bool      `pg:"is_applied,use_zero"`
	Tstamp    time.Time `pg:"tstamp,use_zero"`
}
