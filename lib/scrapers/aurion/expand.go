package aurion

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"aurion-client/lib/htmlutil"

	"github.com/PuerkitoBio/goquery"
	"go.opentelemetry.io/otel/codes"
)

// The partial-update fragment that carries rediscovered sidebar markup.
const (
	sidebarUpdateStart = `<update id="form:sidebar"><![CDATA[`
	sidebarUpdateEnd   = `]]></update>`
)

// The portal prefixes planning entries with this boilerplate.
var menuNameCleaner = strings.NewReplacer("Plannings", "", "Planning", "")

// ExpandNode asks the portal for the children of a category node and
// records them in the menu tree. The node must already be known.
// Re-expanding an already loaded node is safe (the child list comes
// back unchanged) but wasteful; callers should check Menu.IsLoaded
// first. Returns the node's full ordered child list.
func (c *Client) ExpandNode(ctx context.Context, menuId string) ([]*Node, error) {
	ctx, span := tracer.Start(ctx, "client:ExpandNode")
	defer span.End()

	node := c.Menu.Node(menuId)
	if node == nil {
		span.SetStatus(codes.Error, "unknown menu node")
		return nil, fmt.Errorf("%w: unknown menu node %q", ErrPrecondition, menuId)
	}
	if c.viewState == nil || c.formId == nil {
		span.SetStatus(codes.Error, "session tokens missing")
		return nil, fmt.Errorf("%w: cannot expand menu nodes", ErrMissingToken)
	}

	jIdt := fmt.Sprintf("form:j_idt%d", *c.formId)
	res, err := c.Http.R().
		SetContext(ctx).
		SetFormData(map[string]string{
			"javax.faces.partial.ajax":       "true",
			"javax.faces.source":             jIdt,
			"javax.faces.partial.execute":    jIdt,
			"javax.faces.partial.render":     "form:sidebar",
			jIdt:                             jIdt,
			"form":                           "form",
			"form:largeurDivCenter":          "",
			"form:sauvegarde":                "",
			"form:j_idt805:j_idt808_view":    "basicDay",
			"form:j_idt820_focus":            "",
			"form:j_idt820_input":            "",
			"javax.faces.ViewState":          *c.viewState,
			"webscolaapp.Sidebar.ID_SUBMENU": menuId,
		}).
		Post(mainMenuPath)
	if err != nil {
		span.SetStatus(codes.Error, "failed to make expand request")
		return nil, err
	}

	fragment, err := cutDelimited(res.String(), sidebarUpdateStart, sidebarUpdateEnd)
	if err != nil {
		span.SetStatus(codes.Error, "sidebar update fragment missing")
		return nil, fmt.Errorf("expand node %q: %w", menuId, err)
	}

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(fragment))
	if err != nil {
		span.SetStatus(codes.Error, "failed to parse sidebar fragment")
		return nil, err
	}

	var itemErr error
	doc.Find(fmt.Sprintf("li.%s > ul > li", menuId)).
		EachWithBreak(func(_ int, item *goquery.Selection) bool {
			child, err := parseMenuItem(item)
			if err != nil {
				itemErr = fmt.Errorf("expand node %q: %w", menuId, err)
				return false
			}
			itemErr = c.Menu.AddChild(menuId, child)
			return itemErr == nil
		})
	if itemErr != nil {
		span.SetStatus(codes.Error, "failed to parse menu items")
		return nil, itemErr
	}

	return node.Children, nil
}

// parseMenuItem decodes one <li> of the sidebar fragment. Category and
// leaf entries unfortunately encode their id in different places.
func parseMenuItem(item *goquery.Selection) (*Node, error) {
	name := htmlutil.CleanText(menuNameCleaner.Replace(
		item.Find("a span.ui-menuitem-text").First().Text(),
	))

	var id string
	if strings.Contains(item.AttrOr("class", ""), "ui-menu-parent") {
		// category: the id hides in a class token
		_, after, found := strings.Cut(item.AttrOr("class", ""), " "+submenuPrefix)
		if !found {
			return nil, fmt.Errorf("%w: category item has no submenu class token", ErrBadProtocol)
		}
		token, _, _ := strings.Cut(after, " ")
		id = submenuPrefix + token
	} else {
		// leaf: the id hides in the inline click handler
		onclick := item.Find("a").First().AttrOr("onclick", "")
		_, after, found := strings.Cut(onclick, "form:sidebar_menuid':'")
		if !found {
			return nil, fmt.Errorf("%w: leaf item carries no menu id", ErrBadProtocol)
		}
		var closed bool
		id, _, closed = strings.Cut(after, "'")
		if !closed {
			return nil, fmt.Errorf("%w: leaf menu id is unterminated", ErrBadProtocol)
		}
	}

	return &Node{Id: id, Name: name}, nil
}

// LoadNodes expands every listed node that isn't loaded yet.
func (c *Client) LoadNodes(ctx context.Context, menuIds []string) error {
	ctx, span := tracer.Start(ctx, "client:LoadNodes")
	defer span.End()

	for _, menuId := range menuIds {
		if c.Menu.IsLoaded(menuId) {
			slog.DebugContext(ctx, "node is already loaded", "id", menuId)
			continue
		}
		_, err := c.ExpandNode(ctx, menuId)
		if err != nil {
			span.SetStatus(codes.Error, "failed to expand node")
			return err
		}
	}

	return nil
}
