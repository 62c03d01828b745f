package fiberapi

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	gocommand "github.com/goliatone/go-command"
	"github.com/rs/zerolog"

	dashboard "github.com/goliatone/go-seller-dashboard/components/dashboard"
	"github.com/goliatone/go-seller-dashboard/components/dashboard/commands"
	"github.com/goliatone/go-seller-dashboard/components/dashboard/queries"
)

// SessionCookie names the cookie carrying the dashboard session id.
const SessionCookie = "sellerdash_session"

const localSession = "dashboard.session"

// SessionStore resolves viewer sessions.
type SessionStore interface {
	SessionOrNew(id string) (*dashboard.Session, bool)
}

// Handlers are the commands and queries behind the routes.
type Handlers struct {
	Select  gocommand.Commander[commands.SelectSellerInput]
	Refresh gocommand.Commander[commands.RefreshPageInput]
	Render  gocommand.Querier[queries.PageInput, queries.PageResult]
	State   gocommand.Querier[queries.PageInput, queries.PageResult]
	Sellers gocommand.Querier[queries.SellersInput, dashboard.SelectionState]
}

// Config wires dashboard handlers onto a fiber router.
type Config struct {
	Sessions     SessionStore
	Layout       *dashboard.Layout
	Handlers     Handlers
	Limiter      *RefreshLimiter
	Metrics      http.Handler
	Logger       *zerolog.Logger
	SecureCookie bool
}

type routes struct {
	cfg Config
	log zerolog.Logger
}

// Register mounts the dashboard HTML, JSON and form endpoints.
func Register(r fiber.Router, cfg Config) error {
	if r == nil {
		return errors.New("fiberapi: router is required")
	}
	if cfg.Sessions == nil {
		return errors.New("fiberapi: session store is required")
	}
	if cfg.Layout == nil || len(cfg.Layout.Pages) == 0 {
		return errors.New("fiberapi: layout with at least one page is required")
	}
	h := cfg.Handlers
	if h.Select == nil || h.Refresh == nil || h.Render == nil || h.State == nil || h.Sellers == nil {
		return errors.New("fiberapi: every handler is required")
	}
	log := zerolog.Nop()
	if cfg.Logger != nil {
		log = *cfg.Logger
	}
	rt := &routes{cfg: cfg, log: log.With().Str("component", "http").Logger()}

	r.Use(rt.requestLog)
	if cfg.Metrics != nil {
		r.Get("/metrics", adaptor.HTTPHandler(cfg.Metrics))
	}
	r.Get("/", rt.home)

	pages := r.Group("/dashboard", rt.session)
	pages.Get("/:page", rt.page)
	pages.Get("/:page/state", rt.state)
	pages.Post("/:page/select", rt.selectSeller)
	pages.Post("/:page/refresh", rt.refresh)

	api := r.Group("/api", rt.session)
	api.Get("/sellers", rt.sellers)
	return nil
}

func (rt *routes) home(c *fiber.Ctx) error {
	return c.Redirect("/dashboard/"+rt.cfg.Layout.Pages[0].Code, fiber.StatusFound)
}

func (rt *routes) page(c *fiber.Ctx) error {
	result, err := rt.cfg.Handlers.Render.Query(c.UserContext(), rt.pageInput(c))
	if err != nil {
		return rt.respondError(c, err)
	}
	c.Set(fiber.HeaderContentType, fiber.MIMETextHTMLCharsetUTF8)
	c.Set(fiber.HeaderCacheControl, "no-store")
	return c.SendString(result.HTML)
}

func (rt *routes) state(c *fiber.Ctx) error {
	result, err := rt.cfg.Handlers.State.Query(c.UserContext(), rt.pageInput(c))
	if err != nil {
		return rt.respondError(c, err)
	}
	return c.JSON(toPageDTO(result.View))
}

type selectPayload struct {
	SellerID string `json:"seller_id" form:"seller_id"`
}

func (rt *routes) selectSeller(c *fiber.Ctx) error {
	page := c.Params("page")
	if _, ok := rt.cfg.Layout.Page(page); !ok {
		return rt.respondError(c, dashboard.ErrUnknownPage)
	}
	var payload selectPayload
	if err := c.BodyParser(&payload); err != nil {
		return respond(c, fiber.StatusBadRequest, err.Error())
	}
	payload.SellerID = strings.TrimSpace(payload.SellerID)
	if payload.SellerID == "" {
		return respond(c, fiber.StatusBadRequest, "seller_id is required")
	}
	err := rt.cfg.Handlers.Select.Execute(c.UserContext(), commands.SelectSellerInput{
		SessionID: sessionID(c),
		SellerID:  payload.SellerID,
	})
	if err != nil {
		return rt.respondError(c, err)
	}
	return rt.done(c, page)
}

func (rt *routes) refresh(c *fiber.Ctx) error {
	page := c.Params("page")
	id := sessionID(c)
	if !rt.cfg.Limiter.Allow(id) {
		return respond(c, fiber.StatusTooManyRequests, "refresh rate exceeded")
	}
	err := rt.cfg.Handlers.Refresh.Execute(c.UserContext(), commands.RefreshPageInput{SessionID: id, Page: page})
	if err != nil {
		return rt.respondError(c, err)
	}
	return rt.done(c, page)
}

func (rt *routes) sellers(c *fiber.Ctx) error {
	state, err := rt.cfg.Handlers.Sellers.Query(c.UserContext(), queries.SellersInput{SessionID: sessionID(c)})
	if err != nil {
		return rt.respondError(c, err)
	}
	return c.JSON(toSelectionDTO(state))
}

// done answers a form post with a redirect back to the page and API
// clients with 204.
func (rt *routes) done(c *fiber.Ctx, page string) error {
	if wantsJSON(c) {
		return c.SendStatus(fiber.StatusNoContent)
	}
	return c.Redirect("/dashboard/"+page, fiber.StatusSeeOther)
}

func (rt *routes) pageInput(c *fiber.Ctx) queries.PageInput {
	return queries.PageInput{SessionID: sessionID(c), Page: c.Params("page")}
}

// session resolves the session cookie, issuing a new session when the
// cookie is missing or its session was evicted.
func (rt *routes) session(c *fiber.Ctx) error {
	sess, created := rt.cfg.Sessions.SessionOrNew(c.Cookies(SessionCookie))
	if created {
		c.Cookie(&fiber.Cookie{
			Name:     SessionCookie,
			Value:    sess.ID(),
			Path:     "/",
			HTTPOnly: true,
			Secure:   rt.cfg.SecureCookie,
			SameSite: fiber.CookieSameSiteLaxMode,
		})
	}
	c.Locals(localSession, sess.ID())
	return c.Next()
}

func (rt *routes) requestLog(c *fiber.Ctx) error {
	started := time.Now()
	err := c.Next()
	rt.log.Debug().
		Str("method", c.Method()).
		Str("path", c.Path()).
		Int("status", c.Response().StatusCode()).
		Dur("took", time.Since(started)).
		Msg("request")
	return err
}

func (rt *routes) respondError(c *fiber.Ctx, err error) error {
	status := statusFor(err)
	if status >= fiber.StatusInternalServerError {
		rt.log.Error().Err(err).Str("path", c.Path()).Msg("request failed")
	}
	return respond(c, status, err.Error())
}

func statusFor(err error) int {
	switch {
	case errors.Is(err, dashboard.ErrUnknownPage),
		errors.Is(err, dashboard.ErrSellerNotFound),
		errors.Is(err, dashboard.ErrSessionNotFound):
		return fiber.StatusNotFound
	case errors.Is(err, dashboard.ErrSelectionLoading):
		return fiber.StatusServiceUnavailable
	case dashboard.IsMissingParameter(err):
		return fiber.StatusBadRequest
	case dashboard.IsNetworkError(err):
		return fiber.StatusBadGateway
	default:
		return fiber.StatusInternalServerError
	}
}

func respond(c *fiber.Ctx, status int, message string) error {
	return c.Status(status).JSON(fiber.Map{"error": message})
}

func sessionID(c *fiber.Ctx) string {
	id, _ := c.Locals(localSession).(string)
	return id
}

func wantsJSON(c *fiber.Ctx) bool {
	return strings.Contains(c.Get(fiber.HeaderAccept), fiber.MIMEApplicationJSON)
}
