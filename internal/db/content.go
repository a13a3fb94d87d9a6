package db

import "time"

const (
	StatusDraft     = "draft"
	StatusPublished = "published"
	StatusArchived  = "archived"
)

// Content is implemented by pointers to every content row.
type Content interface {
	PK() int
	SetPK(id int)
	GetStatus() string
	SetStatus(status string)
	Stamp(now time.Time, created bool)
	SearchColumns() []string
	DefaultOrder() string
}

// Kinded rows are split into sub-collections by their "kind" column.
type Kinded interface {
	GetKind() string
	SetKind(kind string)
}

// Scheduled rows are public only once their publish column is in the past.
type Scheduled interface {
	PublishColumn() string
	PublishedAtTime() *time.Time
}

// ContentPtr constrains a type parameter to a pointer to a content row.
type ContentPtr[T any] interface {
	*T
	Content
}

func (b *Base) PK() int                 { return b.ID }
func (b *Base) SetPK(id int)            { b.ID = id }
func (b *Base) GetStatus() string       { return b.Status }
func (b *Base) SetStatus(status string) { b.Status = status }

func (b *Base) Stamp(now time.Time, created bool) {
	if created {
		b.CreatedAt = now
		b.UpdatedAt = nil
		return
	}
	b.UpdatedAt = &now
}

func (HeroSlide) SearchColumns() []string { return []string{"title", "subtitle"} }
func (HeroSlide) DefaultOrder() string    { return `"t"."sortOrder" ASC, "t"."id" ASC` }

func (News) SearchColumns() []string { return []string{"title", "summary", "author", "category"} }
func (News) DefaultOrder() string {
	return `"t"."publishedAt" DESC NULLS LAST, "t"."id" DESC`
}
func (News) PublishColumn() string          { return Columns.News.PublishedAt }
func (n *News) PublishedAtTime() *time.Time { return n.PublishedAt }

func (FAQ) SearchColumns() []string { return []string{"question", "answer", "category"} }
func (FAQ) DefaultOrder() string    { return `"t"."sortOrder" ASC, "t"."id" ASC` }

func (Official) SearchColumns() []string { return []string{"name", "position"} }
func (Official) DefaultOrder() string    { return `"t"."sortOrder" ASC, "t"."id" ASC` }

func (Department) SearchColumns() []string { return []string{"name", "head"} }
func (Department) DefaultOrder() string    { return `"t"."sortOrder" ASC, "t"."id" ASC` }

func (Barangay) SearchColumns() []string { return []string{"name", "captain"} }
func (Barangay) DefaultOrder() string    { return `"t"."name" ASC` }

func (Document) SearchColumns() []string { return []string{"title", "number", "description"} }
func (Document) DefaultOrder() string {
	return `"t"."issuedAt" DESC NULLS LAST, "t"."id" DESC`
}
func (d *Document) GetKind() string     { return d.Kind }
func (d *Document) SetKind(kind string) { d.Kind = kind }

func (HistoryEntry) SearchColumns() []string { return []string{"title", "period", "content"} }
func (HistoryEntry) DefaultOrder() string    { return `"t"."sortOrder" ASC, "t"."id" ASC` }

func (VisionMission) SearchColumns() []string { return []string{"title", "content"} }
func (VisionMission) DefaultOrder() string    { return `"t"."sortOrder" ASC, "t"."id" ASC` }
func (v *VisionMission) GetKind() string      { return v.Kind }
func (v *VisionMission) SetKind(kind string)  { v.Kind = kind }

func (TourismListing) SearchColumns() []string { return []string{"name", "description", "location"} }
func (TourismListing) DefaultOrder() string    { return `"t"."sortOrder" ASC, "t"."id" ASC` }
func (l *TourismListing) GetKind() string      { return l.Kind }
func (l *TourismListing) SetKind(kind string)  { l.Kind = kind }

func (Service) SearchColumns() []string { return []string{"title", "category", "office"} }
func (Service) DefaultOrder() string    { return `"t"."sortOrder" ASC, "t"."id" ASC` }

func (MenuItem) SearchColumns() []string { return []string{"label", "href"} }
func (MenuItem) DefaultOrder() string    { return `"t"."kind" ASC, "t"."sortOrder" ASC, "t"."id" ASC` }
func (m *MenuItem) GetKind() string      { return m.Kind }
func (m *MenuItem) SetKind(kind string)  { m.Kind = kind }
