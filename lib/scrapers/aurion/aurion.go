package aurion

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"net/http/cookiejar"
	"time"

	"aurion-client/lib/telemetry"
	"aurion-client/lib/timezone"

	"github.com/go-resty/resty/v2"
	"go.opentelemetry.io/otel/codes"
)

// Form paths under the service url. The portal is a JSF application,
// every page lives under /faces.
const (
	loginPath          = "/login"
	mainMenuPath       = "/faces/MainMenuPage.xhtml"
	planningChoicePath = "/faces/ChoixPlanning.xhtml"
	planningPath       = "/faces/Planning.xhtml"
)

type ClientOptions struct {
	// ServiceUrl is the base of the portal deployment, e.g.
	// "https://web.isen-ouest.fr/webAurion".
	ServiceUrl   string
	LanguageCode int
	// The category node holding the user's own planning entry.
	SchoolingId string
	// The leaf node selecting the user's own planning.
	UserPlanningId string
	// The category node holding group plannings.
	GroupsPlanningId string
	// Optional explicit schedule bounds. Zero values default to the
	// current school year (Aug 1 through Jul 31).
	Start time.Time
	End   time.Time
}

// Client is one logical portal session: transport with its cookie jar,
// the two session tokens and the lazily discovered menu tree. Not safe
// for concurrent use; run one Client per concurrent unit of work.
type Client struct {
	Http *resty.Client
	Menu *Menu

	// Both tokens are extracted once after login. nil means extraction
	// failed and token-dependent calls will error instead of guessing.
	viewState *string
	formId    *int

	start time.Time
	end   time.Time
}

func NewClient(opts ClientOptions) (*Client, error) {
	client := resty.New()
	client.SetBaseURL(opts.ServiceUrl)
	jar, err := cookiejar.New(nil)
	if err != nil {
		return nil, err
	}
	client.SetCookieJar(jar)
	client.SetHeader("user-agent", "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/123.0.0.0 Safari/537.36")
	client.SetTimeout(time.Second * 30)

	// login success and menu selection are both signaled by redirects
	// that must be observed, never followed
	client.SetRedirectPolicy(resty.RedirectPolicyFunc(func(req *http.Request, via []*http.Request) error {
		return http.ErrUseLastResponse
	}))

	telemetry.InstrumentResty(client, "scrapers/aurion/http")

	start := opts.Start
	if start.IsZero() {
		start = timezone.SchoolYearStart(timezone.Now())
	}
	end := opts.End
	if end.IsZero() {
		end = timezone.SchoolYearEnd(timezone.Now())
	}

	return &Client{
		Http:  client,
		Menu:  NewMenu(opts.LanguageCode, opts.SchoolingId, opts.UserPlanningId, opts.GroupsPlanningId),
		start: start,
		end:   end,
	}, nil
}

// Login submits the credentials and primes the session tokens. The
// portal answers a successful credential POST with a redirect; its
// absence means the credentials were rejected. When token extraction
// fails the session stays usable only for calls that don't need them.
func (c *Client) Login(ctx context.Context, username, password string) error {
	ctx, span := tracer.Start(ctx, "client:Login")
	defer span.End()

	res, err := c.Http.R().
		SetContext(ctx).
		SetFormData(map[string]string{
			"username": username,
			"password": password,
		}).
		Post(loginPath)
	if err != nil {
		span.SetStatus(codes.Error, "failed to make login request")
		return err
	}

	if res.Header().Get("Location") == "" {
		span.SetStatus(codes.Error, "no redirect after credential post")
		return ErrLoginFailed
	}

	// a throwaway request to the service root carries both tokens in
	// its body
	res, err = c.Http.R().
		SetContext(ctx).
		Get("/")
	if err != nil {
		span.SetStatus(codes.Error, "failed to fetch main page after login")
		return err
	}
	text := res.String()

	viewState, err := extractViewState(text)
	if err != nil {
		slog.WarnContext(ctx, "could not extract view state", "err", err)
	} else {
		c.viewState = &viewState
	}

	formId, err := extractFormId(text)
	if err != nil {
		slog.WarnContext(ctx, "could not extract sidebar form id", "err", err)
	} else {
		c.formId = &formId
	}

	return nil
}

// menuSelectPayload is the generic "click a sidebar entry" form body.
// The j_idt element ids in here seem to be constant across
// deployments (805, 808, 820).
func (c *Client) menuSelectPayload(menuId string) (map[string]string, error) {
	if c.viewState == nil {
		return nil, fmt.Errorf("%w: view state was not extracted at login", ErrMissingToken)
	}
	return map[string]string{
		"form":                        "form",
		"form:sauvegarde":             "",
		"form:largeurDivCenter":       "",
		"form:j_idt820_focus":         "",
		"form:j_idt820_input":         "",
		"form:sidebar":                "form:sidebar",
		"form:j_idt805:j_idt808_view": "basicDay",
		"javax.faces.ViewState":       *c.viewState,
		"form:sidebar_menuid":         menuId,
	}, nil
}
