package cms

import (
	"context"

	"github.com/daniilsolovey/municipal-portal/internal/db"
)

// MenuNode is a published menu item with its published children.
type MenuNode struct {
	db.MenuItem
	Children []MenuNode `json:"children"`
}

// Menu builds the navigation tree for a location. Items whose parent is not published are
// dropped together with their subtree.
func (m *Manager) Menu(ctx context.Context, location string) ([]MenuNode, error) {
	switch location {
	case db.MenuHeader, db.MenuFooter, db.MenuQuickLinks:
	default:
		return nil, newValidationError("location", "must be one of: header, footer, quick_links")
	}

	page, err := m.Menus.Published(ctx, db.ListQuery{Kind: location, Limit: db.MaxLimit})
	if err != nil {
		return nil, err
	}

	return buildMenuTree(page.Items), nil
}

func buildMenuTree(items []db.MenuItem) []MenuNode {
	children := make(map[int][]db.MenuItem)
	var roots []db.MenuItem
	for _, it := range items {
		if it.ParentID == nil {
			roots = append(roots, it)
			continue
		}
		children[*it.ParentID] = append(children[*it.ParentID], it)
	}

	var build func(level []db.MenuItem, depth int) []MenuNode
	build = func(level []db.MenuItem, depth int) []MenuNode {
		nodes := make([]MenuNode, 0, len(level))
		for _, it := range level {
			node := MenuNode{MenuItem: it, Children: []MenuNode{}}
			// cycles in parentId cannot recurse forever
			if depth < len(items) {
				node.Children = build(children[it.ID], depth+1)
			}
			nodes = append(nodes, node)
		}
		return nodes
	}

	return build(roots, 0)
}
