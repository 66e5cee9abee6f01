package aurion

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
	"time"

	"aurion-client/lib/htmlutil"

	"github.com/PuerkitoBio/goquery"
	"go.opentelemetry.io/otel/codes"
)

// The partial-update fragment that carries the schedule json.
const (
	scheduleUpdateStart = `<![CDATA[{"events" : `
	scheduleUpdateEnd   = `}]]></update>`
)

type ClassGroup struct {
	Id   int    `json:"id"`
	Name string `json:"name"`
}

// GetClassGroups lists the groups of a class designated by a loaded
// leaf node of the menu tree. Selecting the node redirects to the
// planning choice page, which carries the group table.
func (c *Client) GetClassGroups(ctx context.Context, menuId string) ([]ClassGroup, error) {
	ctx, span := tracer.Start(ctx, "client:GetClassGroups")
	defer span.End()

	node := c.Menu.Node(menuId)
	if node == nil {
		span.SetStatus(codes.Error, "unknown menu node")
		return nil, fmt.Errorf("%w: unknown menu node %q", ErrPrecondition, menuId)
	}
	if !node.IsLeaf() {
		span.SetStatus(codes.Error, "not a leaf node")
		return nil, fmt.Errorf("%w: node %q is not a leaf", ErrPrecondition, menuId)
	}
	if !node.IsLoaded() {
		span.SetStatus(codes.Error, "node not loaded")
		return nil, fmt.Errorf("%w: node %q is not loaded", ErrPrecondition, menuId)
	}

	err := c.selectMenuItem(ctx, menuId)
	if err != nil {
		span.SetStatus(codes.Error, "failed to select class node")
		return nil, fmt.Errorf("get class groups: %w", err)
	}

	res, err := c.Http.R().
		SetContext(ctx).
		Get(planningChoicePath)
	if err != nil {
		span.SetStatus(codes.Error, "failed to fetch planning choice page")
		return nil, err
	}
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(res.String()))
	if err != nil {
		span.SetStatus(codes.Error, "failed to parse planning choice page")
		return nil, err
	}

	var groups []ClassGroup
	var rowErr error
	doc.Find(`div#form\:dataTableFavori tbody tr`).
		EachWithBreak(func(_ int, row *goquery.Selection) bool {
			rk := row.AttrOr("data-rk", "")
			id, err := strconv.Atoi(rk)
			if err != nil {
				rowErr = fmt.Errorf("%w: group row key %q is not numeric", ErrBadProtocol, rk)
				return false
			}
			name := htmlutil.CleanText(row.Children().Last().Children().Last().Text())
			groups = append(groups, ClassGroup{Id: id, Name: name})
			return true
		})
	if rowErr != nil {
		span.SetStatus(codes.Error, "failed to parse group rows")
		return nil, rowErr
	}
	if len(groups) == 0 {
		span.SetStatus(codes.Error, "no group rows")
		return nil, fmt.Errorf("%w: planning choice page lists no groups", ErrBadProtocol)
	}

	return groups, nil
}

// selectMenuItem replays the sidebar click on a planning entry. The
// portal acknowledges with a redirect; anything else means the markup
// or flow changed.
func (c *Client) selectMenuItem(ctx context.Context, menuId string) error {
	payload, err := c.menuSelectPayload(menuId)
	if err != nil {
		return err
	}

	res, err := c.Http.R().
		SetContext(ctx).
		SetFormData(payload).
		Post(mainMenuPath)
	if err != nil {
		return err
	}
	if res.Header().Get("Location") == "" {
		return fmt.Errorf("%w: no redirect after selecting node %q", ErrBadProtocol, menuId)
	}
	return nil
}

// getSchedule fetches the planning currently selected for this session
// between start and end. The planning page hands out a fresh form id
// and view state on every load; the session-global tokens don't apply
// here.
func (c *Client) getSchedule(ctx context.Context, start, end time.Time) ([]Event, error) {
	ctx, span := tracer.Start(ctx, "client:getSchedule")
	defer span.End()

	if start.IsZero() {
		start = c.start
	}
	if end.IsZero() {
		end = c.end
	}

	res, err := c.Http.R().
		SetContext(ctx).
		Get(planningPath)
	if err != nil {
		span.SetStatus(codes.Error, "failed to fetch planning page")
		return nil, err
	}
	text := res.String()

	scheduleFormId, err := extractScheduleFormId(text)
	if err != nil {
		span.SetStatus(codes.Error, "schedule form id missing")
		return nil, err
	}
	viewState, err := extractViewState(text)
	if err != nil {
		span.SetStatus(codes.Error, "planning view state missing")
		return nil, err
	}

	jIdt := fmt.Sprintf("form:j_idt%d", scheduleFormId)
	res, err = c.Http.R().
		SetContext(ctx).
		SetFormData(map[string]string{
			"javax.faces.partial.ajax":    "true",
			"javax.faces.source":          jIdt,
			"javax.faces.partial.execute": jIdt,
			"javax.faces.partial.render":  jIdt,
			jIdt:                          jIdt,
			jIdt + "_start":               strconv.FormatInt(start.UnixMilli(), 10),
			jIdt + "_end":                 strconv.FormatInt(end.UnixMilli(), 10),
			"form":                        "form",
			"javax.faces.ViewState":       viewState,
		}).
		Post(planningPath)
	if err != nil {
		span.SetStatus(codes.Error, "failed to make schedule request")
		return nil, err
	}

	data, err := cutDelimited(res.String(), scheduleUpdateStart, scheduleUpdateEnd)
	if err != nil {
		span.SetStatus(codes.Error, "schedule fragment missing")
		return nil, fmt.Errorf("get schedule: %w", err)
	}

	var raw []RawEvent
	err = json.Unmarshal([]byte(data), &raw)
	if err != nil {
		span.SetStatus(codes.Error, "failed to decode schedule json")
		return nil, fmt.Errorf("%w: schedule json does not decode: %s", ErrBadProtocol, err)
	}

	// one bad record poisons the whole batch, partial schedules are
	// worse than loud failures
	events := make([]Event, 0, len(raw))
	for _, rawEvent := range raw {
		event, err := newEvent(rawEvent)
		if err != nil {
			span.SetStatus(codes.Error, "failed to convert raw event")
			return nil, fmt.Errorf("decode event %q: %w", rawEvent.Id, err)
		}
		events = append(events, event)
	}

	return events, nil
}

// GetUserSchedule fetches the logged-in user's own planning. Zero
// start/end values default to the configured school-year bounds.
func (c *Client) GetUserSchedule(ctx context.Context, start, end time.Time) ([]Event, error) {
	ctx, span := tracer.Start(ctx, "client:GetUserSchedule")
	defer span.End()

	// the user planning entry only becomes selectable once its parent
	// category was expanded
	err := c.LoadNodes(ctx, []string{c.Menu.SchoolingId()})
	if err != nil {
		span.SetStatus(codes.Error, "failed to load schooling node")
		return nil, err
	}

	err = c.selectMenuItem(ctx, c.Menu.UserPlanningId())
	if err != nil {
		span.SetStatus(codes.Error, "failed to select user planning")
		return nil, fmt.Errorf("get user schedule: %w", err)
	}

	return c.getSchedule(ctx, start, end)
}

// GetGroupSchedule fetches the planning behind a group planning leaf
// node, discovered by expanding the groups root. Zero start/end values
// default to the configured school-year bounds.
func (c *Client) GetGroupSchedule(ctx context.Context, menuId string, start, end time.Time) ([]Event, error) {
	ctx, span := tracer.Start(ctx, "client:GetGroupSchedule")
	defer span.End()

	err := c.LoadNodes(ctx, []string{c.Menu.GroupsPlanningId()})
	if err != nil {
		span.SetStatus(codes.Error, "failed to load groups node")
		return nil, err
	}

	node := c.Menu.Node(menuId)
	if node == nil {
		span.SetStatus(codes.Error, "unknown menu node")
		return nil, fmt.Errorf("%w: unknown menu node %q", ErrPrecondition, menuId)
	}
	if !node.IsLeaf() {
		span.SetStatus(codes.Error, "not a leaf node")
		return nil, fmt.Errorf("%w: node %q is not a leaf", ErrPrecondition, menuId)
	}

	err = c.selectMenuItem(ctx, menuId)
	if err != nil {
		span.SetStatus(codes.Error, "failed to select group planning")
		return nil, fmt.Errorf("get group schedule: %w", err)
	}

	return c.getSchedule(ctx, start, end)
}
