package aurion

import (
	"fmt"
	"strings"
)

// Category nodes carry this prefix in their id. Anything else is a
// leaf that can be selected to reach a planning page.
const submenuPrefix = "submenu_"

// Node is a single entry of the portal's sidebar menu. Children are
// discovered lazily, one ajax round-trip per category node.
type Node struct {
	Id       string
	Name     string
	Children []*Node
	Parent   *Node
}

// IsCategory reports whether the node may hold children, which the id
// shape alone decides.
func (n *Node) IsCategory() bool {
	return strings.HasPrefix(n.Id, submenuPrefix)
}

// IsLeaf reports whether the node is a selectable planning entry.
func (n *Node) IsLeaf() bool {
	return !n.IsCategory() && len(n.Children) == 0
}

// IsLoaded is derived, never stored: a category counts as loaded once
// at least one child was discovered, a leaf is loaded by definition.
func (n *Node) IsLoaded() bool {
	return n.IsCategory() == (len(n.Children) > 0)
}

// Menu owns every discovered node in a flat index keyed by id. Parent
// and child pointers are plain references for traversal only.
type Menu struct {
	languageCode     int
	schoolingId      string
	userPlanningId   string
	groupsPlanningId string
	nodes            map[string]*Node
}

// NewMenu seeds the tree with the two well-known roots. Both start out
// unloaded.
func NewMenu(languageCode int, schoolingId, userPlanningId, groupsPlanningId string) *Menu {
	m := &Menu{
		languageCode:     languageCode,
		schoolingId:      schoolingId,
		userPlanningId:   userPlanningId,
		groupsPlanningId: groupsPlanningId,
		nodes:            map[string]*Node{},
	}
	m.Insert(&Node{Id: schoolingId, Name: "Schooling"})
	m.Insert(&Node{Id: groupsPlanningId, Name: "Groups"})
	return m
}

func (m *Menu) LanguageCode() int {
	return m.languageCode
}

func (m *Menu) SchoolingId() string {
	return m.schoolingId
}

func (m *Menu) UserPlanningId() string {
	return m.userPlanningId
}

func (m *Menu) GroupsPlanningId() string {
	return m.groupsPlanningId
}

// Node returns the node registered under id, or nil.
func (m *Menu) Node(id string) *Node {
	return m.nodes[id]
}

// Insert registers a node in the flat index, overwriting any previous
// entry with the same id.
func (m *Menu) Insert(node *Node) {
	m.nodes[node.Id] = node
}

// AddChild appends child under the parent id and registers it in the
// flat index. Re-adding an id that already sits under the parent is a
// no-op on the child list, so rediscovery cannot duplicate entries.
func (m *Menu) AddChild(parentId string, child *Node) error {
	parent := m.nodes[parentId]
	if parent == nil {
		return fmt.Errorf("%w: unknown parent node %q", ErrPrecondition, parentId)
	}

	for _, existing := range parent.Children {
		if existing.Id == child.Id {
			return nil
		}
	}
	child.Parent = parent
	m.Insert(child)
	parent.Children = append(parent.Children, child)
	return nil
}

// IsLoaded reports the derived load state of the node registered under
// id, false for ids never seen.
func (m *Menu) IsLoaded(id string) bool {
	node := m.nodes[id]
	if node == nil {
		return false
	}
	return node.IsLoaded()
}
