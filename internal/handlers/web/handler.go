// Package web serves the lookup widget page, its JSON API and the status
// websocket over gin
package web

import (
	"html/template"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"

	"github.com/KirkDiggler/pokedex-api/internal/entities/pokemon"
	"github.com/KirkDiggler/pokedex-api/internal/errors"
	"github.com/KirkDiggler/pokedex-api/internal/hub"
	"github.com/KirkDiggler/pokedex-api/internal/orchestrators/lookup"
	"github.com/KirkDiggler/pokedex-api/internal/render"
	lookupsession "github.com/KirkDiggler/pokedex-api/internal/repositories/lookup_session"
)

// SessionCookie holds the widget session id of a browser
const SessionCookie = "pokedex_session"

// Config holds the dependencies for the web handler
type Config struct {
	Service lookup.Service

	// Hub is optional; without it /ws is not served
	Hub *hub.Hub

	Logger       *slog.Logger
	CookieSecure bool

	// SessionTTL is the session cookie lifetime, lookup.DefaultSessionTTL if
	// zero. It should match the orchestrator's session TTL.
	SessionTTL time.Duration
}

// Validate ensures all required dependencies are provided
func (c *Config) Validate() error {
	if c == nil {
		return errors.InvalidArgument("config cannot be nil")
	}

	vb := errors.NewValidationBuilder()
	if c.Service == nil {
		vb.RequiredField("Service")
	}
	if c.SessionTTL < 0 {
		vb.InvalidField("SessionTTL", "must not be negative")
	}
	if c.SessionTTL == 0 {
		c.SessionTTL = lookup.DefaultSessionTTL
	}
	if c.Logger == nil {
		c.Logger = slog.Default()
	}
	return vb.Build()
}

// Handler implements the widget routes
type Handler struct {
	service      lookup.Service
	hub          *hub.Hub
	logger       *slog.Logger
	cookieSecure bool
	sessionTTL   time.Duration
	templates    *template.Template
	upgrader     websocket.Upgrader
}

// NewHandler creates a new web handler
func NewHandler(cfg *Config) (*Handler, error) {
	if err := cfg.Validate(); err != nil {
		return nil, errors.Wrap(err, "invalid config")
	}

	tmpl, err := render.Templates()
	if err != nil {
		return nil, err
	}

	return &Handler{
		service:      cfg.Service,
		hub:          cfg.Hub,
		logger:       cfg.Logger,
		cookieSecure: cfg.CookieSecure,
		sessionTTL:   cfg.SessionTTL,
		templates:    tmpl,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin: func(r *http.Request) bool {
				return true
			},
		},
	}, nil
}

// NewRouter returns a gin engine with recovery, request logging and the
// handler's routes
func NewRouter(h *Handler) *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery(), RequestLogger(h.logger))
	h.RegisterRoutes(router)
	return router
}

// RegisterRoutes mounts the widget routes on router
func (h *Handler) RegisterRoutes(router *gin.Engine) {
	router.SetHTMLTemplate(h.templates)

	router.GET("/", h.index)
	router.POST("/search", h.search)
	router.GET("/health", h.health)
	if h.hub != nil {
		router.GET("/ws", h.ws)
	}

	api := router.Group("/api/v1")
	api.GET("/pokemon/:identifier", h.getPokemon)
	api.POST("/sessions", h.createSession)
	api.GET("/sessions/:id", h.getSession)
	api.POST("/sessions/:id/search", h.searchSession)
	api.POST("/sessions/:id/default", h.loadDefault)
}

type searchRequest struct {
	Query string `json:"query"`
}

type errorResponse struct {
	Code    errors.Code `json:"code"`
	Message string      `json:"message"`
}

type sessionResponse struct {
	Session *lookupsession.Session `json:"session"`
	Card    *pokemon.Card          `json:"card"`
	Result  *pokemon.Pokemon       `json:"result,omitempty"`
	Stale   bool                   `json:"stale,omitempty"`
	Error   *errorResponse         `json:"error,omitempty"`
}

func newSessionResponse(session *lookupsession.Session) *sessionResponse {
	return &sessionResponse{Session: session, Card: session.Card()}
}

// index renders the widget, starting a session and loading the default
// record on the first visit
func (h *Handler) index(c *gin.Context) {
	ctx := c.Request.Context()

	session, ok := h.currentSession(c)
	if !ok {
		created, err := h.service.CreateSession(ctx, &lookup.CreateSessionInput{})
		if err != nil {
			h.writeError(c, err)
			return
		}
		h.setSessionCookie(c, created.Session.ID)

		loaded, err := h.service.LoadDefault(ctx, &lookup.LoadDefaultInput{SessionID: created.Session.ID})
		if err != nil {
			h.writeError(c, err)
			return
		}
		session = loaded.Session
	}

	c.HTML(http.StatusOK, render.PageTemplate, render.NewPage(session))
}

// search handles the widget form and redirects back to the page
func (h *Handler) search(c *gin.Context) {
	ctx := c.Request.Context()

	session, ok := h.currentSession(c)
	if !ok {
		created, err := h.service.CreateSession(ctx, &lookup.CreateSessionInput{})
		if err != nil {
			h.writeError(c, err)
			return
		}
		h.setSessionCookie(c, created.Session.ID)
		session = created.Session
	}

	if _, err := h.service.Search(ctx, &lookup.SearchInput{
		SessionID: session.ID,
		Query:     c.PostForm("query"),
	}); err != nil {
		h.writeError(c, err)
		return
	}

	c.Redirect(http.StatusSeeOther, "/")
}

func (h *Handler) health(c *gin.Context) {
	body := gin.H{"status": "ok"}
	if h.hub != nil {
		body["hub"] = h.hub.Stats()
	}
	c.JSON(http.StatusOK, body)
}

func (h *Handler) getPokemon(c *gin.Context) {
	out, err := h.service.Lookup(c.Request.Context(), &lookup.LookupInput{
		Identifier: c.Param("identifier"),
	})
	if err != nil {
		h.writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, out.Pokemon)
}

func (h *Handler) createSession(c *gin.Context) {
	out, err := h.service.CreateSession(c.Request.Context(), &lookup.CreateSessionInput{})
	if err != nil {
		h.writeError(c, err)
		return
	}

	c.JSON(http.StatusCreated, newSessionResponse(out.Session))
}

func (h *Handler) getSession(c *gin.Context) {
	out, err := h.service.GetSession(c.Request.Context(), &lookup.GetSessionInput{
		SessionID: c.Param("id"),
	})
	if err != nil {
		h.writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, newSessionResponse(out.Session))
}

func (h *Handler) searchSession(c *gin.Context) {
	var req searchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.writeError(c, errors.InvalidArgument("request body must be JSON with a query field"))
		return
	}

	out, err := h.service.Search(c.Request.Context(), &lookup.SearchInput{
		SessionID: c.Param("id"),
		Query:     req.Query,
	})
	if err != nil {
		h.writeError(c, err)
		return
	}

	h.writeOutcome(c, out.Session, out.Result, out.LookupError, out.Stale)
}

func (h *Handler) loadDefault(c *gin.Context) {
	out, err := h.service.LoadDefault(c.Request.Context(), &lookup.LoadDefaultInput{
		SessionID: c.Param("id"),
	})
	if err != nil {
		h.writeError(c, err)
		return
	}

	h.writeOutcome(c, out.Session, out.Result, out.LookupError, out.Stale)
}

// writeOutcome reports a lookup with the status of its failure, if any,
// and the session either way
func (h *Handler) writeOutcome(
	c *gin.Context,
	session *lookupsession.Session,
	result *pokemon.Pokemon,
	lookupErr error,
	stale bool,
) {
	resp := newSessionResponse(session)
	resp.Result = result
	resp.Stale = stale

	status := http.StatusOK
	if lookupErr != nil && !stale {
		code := errors.GetCode(lookupErr)
		status = code.HTTPStatus()
		resp.Error = &errorResponse{Code: code, Message: errors.GetMessage(lookupErr)}
	}

	c.JSON(status, resp)
}

func (h *Handler) writeError(c *gin.Context, err error) {
	code := errors.GetCode(err)
	if code == errors.CodeInternal || code == errors.CodeUnavailable {
		h.logger.Error("request failed",
			"path", c.FullPath(),
			"code", code,
			"error", err)
	}

	c.AbortWithStatusJSON(code.HTTPStatus(), &errorResponse{
		Code:    code,
		Message: errors.GetMessage(err),
	})
}

// currentSession resolves the cookie session, if it still exists
func (h *Handler) currentSession(c *gin.Context) (*lookupsession.Session, bool) {
	id, err := c.Cookie(SessionCookie)
	if err != nil || strings.TrimSpace(id) == "" {
		return nil, false
	}

	out, err := h.service.GetSession(c.Request.Context(), &lookup.GetSessionInput{SessionID: id})
	if err != nil {
		if !errors.IsNotFound(err) {
			h.logger.Warn("failed to resolve session cookie",
				"session_id", id,
				"error", err)
		}
		return nil, false
	}

	return out.Session, true
}

func (h *Handler) setSessionCookie(c *gin.Context, id string) {
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(SessionCookie, id, int(h.sessionTTL.Seconds()), "/", "", h.cookieSecure, true)
}
