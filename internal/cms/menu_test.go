package cms

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/daniilsolovey/municipal-portal/internal/auth"
	"github.com/daniilsolovey/municipal-portal/internal/db"
)

func TestBuildMenuTree(t *testing.T) {
	items := []db.MenuItem{
		{Base: db.Base{ID: 1}, Label: "About"},
		{Base: db.Base{ID: 2}, Label: "History", ParentID: intPtr(1)},
		{Base: db.Base{ID: 3}, Label: "Officials", ParentID: intPtr(1)},
		{Base: db.Base{ID: 4}, Label: "News"},
		{Base: db.Base{ID: 5}, Label: "Orphan", ParentID: intPtr(42)},
		{Base: db.Base{ID: 6}, Label: "Term 2022", ParentID: intPtr(3)},
	}

	tree := buildMenuTree(items)
	require.Len(t, tree, 2)
	assert.Equal(t, "About", tree[0].Label)
	require.Len(t, tree[0].Children, 2)
	assert.Equal(t, "History", tree[0].Children[0].Label)
	require.Len(t, tree[0].Children[1].Children, 1)
	assert.Equal(t, "Term 2022", tree[0].Children[1].Children[0].Label)
	assert.Equal(t, "News", tree[1].Label)
	assert.Empty(t, tree[1].Children)
}

func TestBuildMenuTree_Cycle(t *testing.T) {
	items := []db.MenuItem{
		{Base: db.Base{ID: 1}, Label: "Root"},
		{Base: db.Base{ID: 2}, Label: "A", ParentID: intPtr(3)},
		{Base: db.Base{ID: 3}, Label: "B", ParentID: intPtr(2)},
	}

	tree := buildMenuTree(items)
	require.Len(t, tree, 1)
	assert.Empty(t, tree[0].Children)
}

func TestMenu(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)

	about, err := f.m.Menus.Create(ctx, editorActor, &db.MenuItem{Base: db.Base{Status: db.StatusPublished}, Kind: db.MenuHeader, Label: "About", Href: "/about"})
	require.NoError(t, err)
	_, err = f.m.Menus.Create(ctx, editorActor, &db.MenuItem{Base: db.Base{Status: db.StatusPublished}, Kind: db.MenuHeader, Label: "History", Href: "/about/history", ParentID: &about.ID})
	require.NoError(t, err)
	_, err = f.m.Menus.Create(ctx, editorActor, &db.MenuItem{Kind: db.MenuHeader, Label: "Draft", Href: "/draft"})
	require.NoError(t, err)
	_, err = f.m.Menus.Create(ctx, editorActor, &db.MenuItem{Base: db.Base{Status: db.StatusPublished}, Kind: db.MenuFooter, Label: "Contact", Href: "/contact"})
	require.NoError(t, err)

	header, err := f.m.Menu(ctx, db.MenuHeader)
	require.NoError(t, err)
	require.Len(t, header, 1)
	assert.Equal(t, "About", header[0].Label)
	require.Len(t, header[0].Children, 1)

	_, err = f.m.Menu(ctx, "sidebar")
	var verr *ValidationError
	assert.ErrorAs(t, err, &verr)
}

func TestSidebar(t *testing.T) {
	titles := func(sections []SidebarSection) []string {
		out := make([]string, len(sections))
		for i, s := range sections {
			out[i] = s.Title
		}
		return out
	}

	assert.Equal(t, []string{"Overview"}, titles(Sidebar(auth.RoleViewer)))
	assert.Equal(t, []string{"Overview", "Homepage", "Government", "About"}, titles(Sidebar(auth.RoleEditor)))
	assert.Equal(t, []string{"Overview", "Homepage", "Government", "About", "System"}, titles(Sidebar(auth.RoleAdmin)))
	assert.Empty(t, Sidebar("guest"))
}
