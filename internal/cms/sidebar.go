package cms

import "github.com/daniilsolovey/municipal-portal/internal/auth"

type SidebarLink struct {
	Label string `json:"label"`
	Href  string `json:"href"`
	Icon  string `json:"icon"`
}

type SidebarSection struct {
	Title string        `json:"title"`
	Links []SidebarLink `json:"links"`
}

var sidebarSections = []struct {
	section SidebarSection
	minRole string
}{
	{minRole: auth.RoleViewer, section: SidebarSection{Title: "Overview", Links: []SidebarLink{
		{Label: "Dashboard", Href: "/dashboard", Icon: "layout-dashboard"},
	}}},
	{minRole: auth.RoleEditor, section: SidebarSection{Title: "Homepage", Links: []SidebarLink{
		{Label: "Hero Slides", Href: "/dashboard/hero-slides", Icon: "images"},
		{Label: "News", Href: "/dashboard/news", Icon: "newspaper"},
		{Label: "FAQs", Href: "/dashboard/faqs", Icon: "circle-help"},
		{Label: "Menus", Href: "/dashboard/menus", Icon: "menu"},
	}}},
	{minRole: auth.RoleEditor, section: SidebarSection{Title: "Government", Links: []SidebarLink{
		{Label: "Officials", Href: "/dashboard/officials", Icon: "users"},
		{Label: "Departments", Href: "/dashboard/departments", Icon: "building"},
		{Label: "Barangays", Href: "/dashboard/barangays", Icon: "map"},
		{Label: "Executive Orders", Href: "/dashboard/executive-orders", Icon: "file-signature"},
		{Label: "Ordinances", Href: "/dashboard/ordinances", Icon: "scale"},
		{Label: "Documents", Href: "/dashboard/documents", Icon: "files"},
		{Label: "Services", Href: "/dashboard/services", Icon: "briefcase"},
	}}},
	{minRole: auth.RoleEditor, section: SidebarSection{Title: "About", Links: []SidebarLink{
		{Label: "History", Href: "/dashboard/history", Icon: "landmark"},
		{Label: "Vision & Mission", Href: "/dashboard/vision-mission", Icon: "target"},
		{Label: "Tourism", Href: "/dashboard/tourism", Icon: "palmtree"},
		{Label: "Events", Href: "/dashboard/tourism-events", Icon: "calendar"},
	}}},
	{minRole: auth.RoleAdmin, section: SidebarSection{Title: "System", Links: []SidebarLink{
		{Label: "Users", Href: "/dashboard/users", Icon: "user-cog"},
		{Label: "Audit Logs", Href: "/dashboard/audit-logs", Icon: "scroll-text"},
		{Label: "Settings", Href: "/dashboard/settings", Icon: "settings"},
	}}},
}

// Sidebar returns the back office navigation visible to role.
func Sidebar(role string) []SidebarSection {
	out := []SidebarSection{}
	for _, s := range sidebarSections {
		if auth.RoleAtLeast(role, s.minRole) {
			out = append(out, s.section)
		}
	}
	return out
}
