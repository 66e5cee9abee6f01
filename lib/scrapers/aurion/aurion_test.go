package aurion

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"aurion-client/lib/telemetry"

	"github.com/stretchr/testify/require"
)

const (
	testSchoolingId      = "submenu_291906"
	testUserPlanningId   = "1_3"
	testGroupsPlanningId = "submenu_299102"
	testGroupLeafId      = "3_1"
	testViewState        = "-8842984855476529169:-5240770177063012764"
)

const testMainPage = `<!DOCTYPE html><html><body>
<form id="form"><div id="form:sidebar"></div>
<input type="hidden" name="javax.faces.ViewState" id="j_id1:javax.faces.ViewState:0" value="` + testViewState + `" autocomplete="off" />
</form>
<script>chargerSousMenu = function() {PrimeFaces.ab({s:"form:j_idt52",f:"form",p:"form:sidebar",u:"form:sidebar"});};</script>
</body></html>`

const testSchoolingFragment = `<ul class="ui-menu-list">
<li class="ui-widget ui-menuitem ui-menu-parent ` + testSchoolingId + ` enfants">
<ul class="ui-menu-child">
<li class="ui-widget ui-menuitem ui-menu-parent submenu_300000 enfants"><a class="ui-menuitem-link"><span class="ui-menuitem-text">Plannings des promotions</span></a></li>
<li class="ui-widget ui-menuitem"><a class="ui-menuitem-link" onclick="PrimeFaces.addSubmitParam('form',{'form:sidebar_menuid':'` + testUserPlanningId + `'}).submit('form');return false;"><span class="ui-menuitem-text">Mon Planning</span></a></li>
</ul>
</li></ul>`

const testGroupsFragment = `<ul class="ui-menu-list">
<li class="ui-widget ui-menuitem ui-menu-parent ` + testGroupsPlanningId + ` enfants">
<ul class="ui-menu-child">
<li class="ui-widget ui-menuitem"><a class="ui-menuitem-link" onclick="PrimeFaces.addSubmitParam('form',{'form:sidebar_menuid':'` + testGroupLeafId + `'}).submit('form');return false;"><span class="ui-menuitem-text">Planning CIR 1</span></a></li>
</ul>
</li></ul>`

const testPlanningChoicePage = `<!DOCTYPE html><html><body>
<div id="form:dataTableFavori" class="ui-datatable">
<table><tbody>
<tr data-rk="42" class="ui-widget-content"><td><div class="ui-chkbox"></div></td><td><span class="ui-outputlabel"></span><span>CIR 1 Groupe A</span></td></tr>
<tr data-rk="43" class="ui-widget-content"><td><div class="ui-chkbox"></div></td><td><span class="ui-outputlabel"></span><span>CIR 1 Groupe B</span></td></tr>
</tbody></table>
</div>
</body></html>`

const testPlanningPage = `<!DOCTYPE html><html><body>
<form id="form">
<div id="form:j_idt118" class="schedule"></div>
<input type="hidden" name="javax.faces.ViewState" id="j_id1:javax.faces.ViewState:0" value="` + testViewState + `" autocomplete="off" />
</form>
</body></html>`

const testScheduleResponse = `<?xml version='1.0' encoding='UTF-8'?><partial-response><changes><update id="form:j_idt118"><![CDATA[{"events" : [
{"id":"101","title":"08h00 à 10h00 - A101 / A102 - X - Mathematics - Vectors - Dr. Smith / Dr. Jones","start":"2023-10-05T08:00:00Z","end":"2023-10-05T10:00:00Z","allDay":false,"editable":false,"className":"CM"},
{"id":"102","title":"10h00 à 12h00 - B204 - X - Physics - Dr. Brown","start":"2023-10-05T10:00:00Z","end":"2023-10-05T12:00:00Z","allDay":false,"editable":false,"className":"TD"}
], "other" : "ignored"}]]></update></partial-response>`

type fakePortal struct {
	// serve a main page without session tokens
	omitTokens bool
	// serve garbage instead of the schedule fragment
	breakSchedule bool
}

func (p fakePortal) start(t *testing.T) *httptest.Server {
	mux := http.NewServeMux()

	mux.HandleFunc("POST /login", func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, r.ParseForm())
		if r.PostFormValue("username") != "student" || r.PostFormValue("password") != "hunter2" {
			w.WriteHeader(http.StatusOK)
			return
		}
		w.Header().Set("Location", "/faces/MainMenuPage.xhtml")
		w.WriteHeader(http.StatusFound)
	})

	mux.HandleFunc("GET /", func(w http.ResponseWriter, r *http.Request) {
		if p.omitTokens {
			w.Write([]byte("<!DOCTYPE html><html><body>logged in</body></html>"))
			return
		}
		w.Write([]byte(testMainPage))
	})

	mux.HandleFunc("POST /faces/MainMenuPage.xhtml", func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, r.ParseForm())
		require.Equal(t, testViewState, r.PostFormValue("javax.faces.ViewState"))

		if r.PostFormValue("javax.faces.partial.ajax") == "true" {
			require.Equal(t, "form:j_idt52", r.PostFormValue("javax.faces.source"))
			fragment := ""
			switch r.PostFormValue("webscolaapp.Sidebar.ID_SUBMENU") {
			case testSchoolingId:
				fragment = testSchoolingFragment
			case testGroupsPlanningId:
				fragment = testGroupsFragment
			}
			w.Write([]byte(`<?xml version='1.0' encoding='UTF-8'?><partial-response><changes><update id="form:sidebar"><![CDATA[` + fragment + `]]></update></changes></partial-response>`))
			return
		}

		switch r.PostFormValue("form:sidebar_menuid") {
		case testUserPlanningId, testGroupLeafId:
			w.Header().Set("Location", "/faces/ChoixPlanning.xhtml")
			w.WriteHeader(http.StatusFound)
		default:
			w.WriteHeader(http.StatusOK)
		}
	})

	mux.HandleFunc("GET /faces/ChoixPlanning.xhtml", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(testPlanningChoicePage))
	})

	mux.HandleFunc("GET /faces/Planning.xhtml", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(testPlanningPage))
	})

	mux.HandleFunc("POST /faces/Planning.xhtml", func(w http.ResponseWriter, r *http.Request) {
		if p.breakSchedule {
			w.Write([]byte(`<?xml version='1.0' encoding='UTF-8'?><partial-response></partial-response>`))
			return
		}
		require.NoError(t, r.ParseForm())
		require.Equal(t, "form:j_idt118", r.PostFormValue("javax.faces.source"))
		require.NotEmpty(t, r.PostFormValue("form:j_idt118_start"))
		require.NotEmpty(t, r.PostFormValue("form:j_idt118_end"))
		w.Write([]byte(testScheduleResponse))
	})

	server := httptest.NewServer(mux)
	t.Cleanup(server.Close)
	return server
}

func (p fakePortal) login(t *testing.T, ctx context.Context) *Client {
	server := p.start(t)

	client, err := NewClient(ClientOptions{
		ServiceUrl:       server.URL,
		LanguageCode:     275805,
		SchoolingId:      testSchoolingId,
		UserPlanningId:   testUserPlanningId,
		GroupsPlanningId: testGroupsPlanningId,
	})
	require.NoError(t, err)

	err = client.Login(ctx, "student", "hunter2")
	require.NoError(t, err)
	return client
}

func TestLoginWrongCredentials(t *testing.T) {
	cleanup := telemetry.SetupForTesting(t, "test:scrapers/aurion")
	defer cleanup()
	server := fakePortal{}.start(t)

	client, err := NewClient(ClientOptions{
		ServiceUrl:       server.URL,
		SchoolingId:      testSchoolingId,
		UserPlanningId:   testUserPlanningId,
		GroupsPlanningId: testGroupsPlanningId,
	})
	require.NoError(t, err)

	err = client.Login(context.Background(), "student", "wrong")
	require.ErrorIs(t, err, ErrLoginFailed)
}

func TestLoginWithoutTokens(t *testing.T) {
	ctx := context.Background()
	client := fakePortal{omitTokens: true}.login(t, ctx)

	_, err := client.ExpandNode(ctx, testSchoolingId)
	require.ErrorIs(t, err, ErrMissingToken)
}

func TestExpandNode(t *testing.T) {
	ctx := context.Background()
	client := fakePortal{}.login(t, ctx)

	children, err := client.ExpandNode(ctx, testSchoolingId)
	require.NoError(t, err)
	require.Len(t, children, 2)

	category := children[0]
	require.Equal(t, "submenu_300000", category.Id)
	require.Equal(t, "des promotions", category.Name)
	require.True(t, category.IsCategory())
	require.False(t, category.IsLoaded())

	leaf := children[1]
	require.Equal(t, testUserPlanningId, leaf.Id)
	require.Equal(t, "Mon", leaf.Name)
	require.True(t, leaf.IsLeaf())
	require.True(t, leaf.IsLoaded())

	require.True(t, client.Menu.IsLoaded(testSchoolingId))
}

func TestExpandNodeIdempotent(t *testing.T) {
	ctx := context.Background()
	client := fakePortal{}.login(t, ctx)

	first, err := client.ExpandNode(ctx, testSchoolingId)
	require.NoError(t, err)
	second, err := client.ExpandNode(ctx, testSchoolingId)
	require.NoError(t, err)

	require.Equal(t, first, second)
	require.Len(t, client.Menu.Node(testSchoolingId).Children, 2)
}

func TestExpandUnknownNode(t *testing.T) {
	ctx := context.Background()
	client := fakePortal{}.login(t, ctx)

	_, err := client.ExpandNode(ctx, "submenu_404")
	require.ErrorIs(t, err, ErrPrecondition)
}

func TestGetClassGroups(t *testing.T) {
	ctx := context.Background()
	client := fakePortal{}.login(t, ctx)

	err := client.LoadNodes(ctx, []string{testGroupsPlanningId})
	require.NoError(t, err)

	groups, err := client.GetClassGroups(ctx, testGroupLeafId)
	require.NoError(t, err)
	require.Equal(t, []ClassGroup{
		{Id: 42, Name: "CIR 1 Groupe A"},
		{Id: 43, Name: "CIR 1 Groupe B"},
	}, groups)
}

func TestGetClassGroupsPreconditions(t *testing.T) {
	ctx := context.Background()
	client := fakePortal{}.login(t, ctx)

	// unknown node
	_, err := client.GetClassGroups(ctx, "9_9")
	require.ErrorIs(t, err, ErrPrecondition)

	// category node instead of a leaf
	_, err = client.GetClassGroups(ctx, testGroupsPlanningId)
	require.ErrorIs(t, err, ErrPrecondition)
}

func TestGetUserSchedule(t *testing.T) {
	cleanup := telemetry.SetupForTesting(t, "test:scrapers/aurion")
	defer cleanup()
	ctx := context.Background()
	client := fakePortal{}.login(t, ctx)

	events, err := client.GetUserSchedule(ctx, time.Time{}, time.Time{})
	require.NoError(t, err)
	require.Len(t, events, 2)

	require.Equal(t, Event{
		Id:           101,
		Kind:         KindCourse,
		Start:        time.Date(2023, 10, 5, 8, 0, 0, 0, time.UTC),
		End:          time.Date(2023, 10, 5, 10, 0, 0, 0, time.UTC),
		Rooms:        []string{"A101", "A102"},
		Subject:      "Mathematics",
		Chapter:      "Vectors",
		Participants: []string{"Dr. Smith", "Dr. Jones"},
	}, events[0])

	require.Equal(t, KindSupervisedWork, events[1].Kind)
	require.Equal(t, "Physics", events[1].Subject)
	require.Empty(t, events[1].Chapter)
}

func TestGetGroupSchedule(t *testing.T) {
	ctx := context.Background()
	client := fakePortal{}.login(t, ctx)

	events, err := client.GetGroupSchedule(ctx, testGroupLeafId, time.Time{}, time.Time{})
	require.NoError(t, err)
	require.Len(t, events, 2)
}

func TestGetScheduleMissingDelimiter(t *testing.T) {
	ctx := context.Background()
	client := fakePortal{breakSchedule: true}.login(t, ctx)

	events, err := client.GetUserSchedule(ctx, time.Time{}, time.Time{})
	require.ErrorIs(t, err, ErrBadProtocol)
	require.Nil(t, events)
}
