package rpc

import "time"

type ListFilter struct {
	//search optional text filter
	Search *string `json:"search,omitempty"`
	//page=1 page number (1-based)
	Page *int `json:"page,omitempty"`
	//pageSize=10 items per page
	PageSize *int `json:"pageSize,omitempty"`
}

type Settings struct {
	SiteName       string `json:"siteName"`
	Tagline        string `json:"tagline"`
	LogoURL        string `json:"logoUrl"`
	FaviconURL     string `json:"faviconUrl"`
	PrimaryColor   string `json:"primaryColor"`
	SecondaryColor string `json:"secondaryColor"`
	ContactEmail   string `json:"contactEmail"`
	ContactPhone   string `json:"contactPhone"`
	Address        string `json:"address"`
	FacebookURL    string `json:"facebookUrl"`
}

type HeroSlide struct {
	HeroSlideID int    `json:"heroSlideId"`
	Title       string `json:"title"`
	Subtitle    string `json:"subtitle"`
	ImageURL    string `json:"imageUrl"`
	LinkURL     string `json:"linkUrl"`
}

type News struct {
	NewsID      int        `json:"newsId"`
	Title       string     `json:"title"`
	Slug        string     `json:"slug"`
	Summary     string     `json:"summary"`
	Content     string     `json:"content"`
	ImageURL    string     `json:"imageUrl"`
	Author      string     `json:"author"`
	Category    string     `json:"category"`
	PublishedAt *time.Time `json:"publishedAt"`
}

type NewsSummary struct {
	NewsID      int        `json:"newsId"`
	Title       string     `json:"title"`
	Slug        string     `json:"slug"`
	Summary     string     `json:"summary"`
	ImageURL    string     `json:"imageUrl"`
	Category    string     `json:"category"`
	PublishedAt *time.Time `json:"publishedAt"`
}

type NewsPage struct {
	Items NewsSummaries `json:"items"`
	Total int           `json:"total"`
}

type FAQ struct {
	FAQID    int    `json:"faqId"`
	Question string `json:"question"`
	Answer   string `json:"answer"`
	Category string `json:"category"`
}

type Official struct {
	OfficialID   int    `json:"officialId"`
	Name         string `json:"name"`
	Position     string `json:"position"`
	DepartmentID *int   `json:"departmentId"`
	PhotoURL     string `json:"photoUrl"`
	Term         string `json:"term"`
}

type Document struct {
	DocumentID  int        `json:"documentId"`
	Kind        string     `json:"kind"`
	Number      string     `json:"number"`
	Title       string     `json:"title"`
	Description string     `json:"description"`
	FileURL     string     `json:"fileUrl"`
	IssuedAt    *time.Time `json:"issuedAt"`
}

type DocumentPage struct {
	Items Documents `json:"items"`
	Total int       `json:"total"`
}

type Event struct {
	EventID     int        `json:"eventId"`
	Name        string     `json:"name"`
	Description string     `json:"description"`
	Location    string     `json:"location"`
	ImageURL    string     `json:"imageUrl"`
	StartsAt    *time.Time `json:"startsAt"`
	EndsAt      *time.Time `json:"endsAt"`
}

type MenuItem struct {
	MenuItemID int        `json:"menuItemId"`
	Label      string     `json:"label"`
	Href       string     `json:"href"`
	Children   []MenuItem `json:"children"`
}

type Home struct {
	Settings   Settings      `json:"settings"`
	HeroSlides HeroSlides    `json:"heroSlides"`
	News       NewsSummaries `json:"news"`
	FAQs       FAQs          `json:"faqs"`
	Officials  Officials     `json:"officials"`
	Events     Events        `json:"events"`
}
