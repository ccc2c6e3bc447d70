// Package lookup implements the widget flow: validate a query, look it up
// and move the widget session through loading, success and error states
package lookup

//go:generate mockgen -destination=mock/mock_service.go -package=lookupmock github.com/KirkDiggler/pokedex-api/internal/orchestrators/lookup Service

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"sync"
	"time"
	"unicode"
	"unicode/utf8"

	"github.com/KirkDiggler/pokedex-api/internal/clients/pokeapi"
	"github.com/KirkDiggler/pokedex-api/internal/entities/pokemon"
	"github.com/KirkDiggler/pokedex-api/internal/errors"
	"github.com/KirkDiggler/pokedex-api/internal/pkg/idgen"
	lookupsession "github.com/KirkDiggler/pokedex-api/internal/repositories/lookup_session"
)

// Service defines the interface for lookup operations
type Service interface {
	// Widget sessions
	CreateSession(ctx context.Context, input *CreateSessionInput) (*CreateSessionOutput, error)
	LoadDefault(ctx context.Context, input *LoadDefaultInput) (*LoadDefaultOutput, error)
	Search(ctx context.Context, input *SearchInput) (*SearchOutput, error)
	GetSession(ctx context.Context, input *GetSessionInput) (*GetSessionOutput, error)

	// Stateless lookup
	Lookup(ctx context.Context, input *LookupInput) (*LookupOutput, error)
}

// Publisher receives every session state transition
type Publisher interface {
	Publish(ctx context.Context, session *lookupsession.Session) error
}

type noopPublisher struct{}

func (noopPublisher) Publish(context.Context, *lookupsession.Session) error { return nil }

// Config holds the dependencies for the lookup orchestrator
type Config struct {
	Client      pokeapi.Client
	SessionRepo lookupsession.Repository
	IDGenerator idgen.Generator

	// Publisher is optional
	Publisher Publisher
	Logger    *slog.Logger

	// DefaultIdentifier is loaded by LoadDefault, "pikachu" if empty
	DefaultIdentifier string

	// NameOnly rejects purely numeric queries
	NameOnly bool

	// ErrorCard decides whether a failed lookup hides the card, "hide" if empty
	ErrorCard pokemon.ErrorCardPolicy

	SessionTTL time.Duration
}

// Validate ensures all required dependencies are provided and fills defaults
func (c *Config) Validate() error {
	if c == nil {
		return errors.InvalidArgument("config cannot be nil")
	}

	vb := errors.NewValidationBuilder()

	if c.Client == nil {
		vb.RequiredField("Client")
	}
	if c.SessionRepo == nil {
		vb.RequiredField("SessionRepo")
	}
	if c.IDGenerator == nil {
		vb.RequiredField("IDGenerator")
	}
	if c.ErrorCard == "" {
		c.ErrorCard = pokemon.ErrorCardHide
	}
	if !c.ErrorCard.IsValid() {
		vb.InvalidField("ErrorCard", fmt.Sprintf("unknown policy %q", c.ErrorCard))
	}
	if c.SessionTTL < 0 {
		vb.InvalidField("SessionTTL", "must not be negative")
	}

	if c.DefaultIdentifier = strings.TrimSpace(c.DefaultIdentifier); c.DefaultIdentifier == "" {
		c.DefaultIdentifier = pokemon.DefaultIdentifier
	}
	if c.SessionTTL == 0 {
		c.SessionTTL = DefaultSessionTTL
	}
	if c.Publisher == nil {
		c.Publisher = noopPublisher{}
	}
	if c.Logger == nil {
		c.Logger = slog.Default()
	}

	return vb.Build()
}

// flight is the lookup currently running on a session
type flight struct {
	seq    uint64
	cancel context.CancelFunc
}

// flow holds the texts that differ between the page-load and search lookups
type flow struct {
	name           string
	loadingMessage string
	failureMessage string
	failureTitle   string
	clearsQuery    bool
	successTitle   func(*pokemon.Pokemon) string
	successMessage func(*pokemon.Pokemon) string
}

var (
	searchFlow = flow{
		name:           "search",
		failureMessage: msgNotFound,
		failureTitle:   titleNotFound,
		clearsQuery:    true,
		successTitle:   func(*pokemon.Pokemon) string { return titleFound },
		successMessage: func(p *pokemon.Pokemon) string { return fmt.Sprintf(msgFoundFormat, p.Name) },
	}

	defaultFlow = flow{
		name:           "default",
		loadingMessage: msgDefaultLoading,
		failureMessage: msgDefaultFailed,
		failureTitle:   titleLoadError,
		successTitle: func(p *pokemon.Pokemon) string {
			return fmt.Sprintf(titleDefaultFormat, capitalize(p.Name))
		},
		successMessage: func(*pokemon.Pokemon) string { return "" },
	}
)

type orchestrator struct {
	client            pokeapi.Client
	sessionRepo       lookupsession.Repository
	idGen             idgen.Generator
	publisher         Publisher
	logger            *slog.Logger
	defaultIdentifier string
	nameOnly          bool
	errorCard         pokemon.ErrorCardPolicy
	sessionTTL        time.Duration

	// mu serializes session transitions; network calls happen outside it
	mu       sync.Mutex
	inflight map[string]*flight
}

// NewOrchestrator creates a new lookup orchestrator with the provided dependencies
func NewOrchestrator(cfg *Config) (Service, error) {
	if err := cfg.Validate(); err != nil {
		return nil, errors.Wrap(err, "invalid config")
	}

	return &orchestrator{
		client:            cfg.Client,
		sessionRepo:       cfg.SessionRepo,
		idGen:             cfg.IDGenerator,
		publisher:         cfg.Publisher,
		logger:            cfg.Logger,
		defaultIdentifier: cfg.DefaultIdentifier,
		nameOnly:          cfg.NameOnly,
		errorCard:         cfg.ErrorCard,
		sessionTTL:        cfg.SessionTTL,
		inflight:          make(map[string]*flight),
	}, nil
}

// CreateSession starts a widget session in the idle state with a hidden card
func (o *orchestrator) CreateSession(ctx context.Context, _ *CreateSessionInput) (*CreateSessionOutput, error) {
	out, err := o.sessionRepo.Create(ctx, &lookupsession.CreateInput{
		Session: &lookupsession.Session{
			ID:     o.idGen.Generate(),
			Status: pokemon.StatusIdle,
		},
		TTL: o.sessionTTL,
	})
	if err != nil {
		return nil, errors.Wrap(err, "failed to create session")
	}

	o.publish(ctx, out.Session)

	return &CreateSessionOutput{Session: out.Session}, nil
}

// GetSession returns the stored session
func (o *orchestrator) GetSession(ctx context.Context, input *GetSessionInput) (*GetSessionOutput, error) {
	if input == nil {
		return nil, errors.InvalidArgument("input is required")
	}
	if input.SessionID == "" {
		return nil, errors.InvalidArgument("session ID is required")
	}

	out, err := o.sessionRepo.Get(ctx, &lookupsession.GetInput{ID: input.SessionID})
	if err != nil {
		return nil, errors.Wrapf(err, "failed to get session %s", input.SessionID)
	}

	return &GetSessionOutput{Session: out.Session}, nil
}

// LoadDefault looks up the default identifier on a session
func (o *orchestrator) LoadDefault(ctx context.Context, input *LoadDefaultInput) (*LoadDefaultOutput, error) {
	if input == nil {
		return nil, errors.InvalidArgument("input is required")
	}
	if input.SessionID == "" {
		return nil, errors.InvalidArgument("session ID is required")
	}

	res, err := o.run(ctx, input.SessionID, o.defaultIdentifier, "", defaultFlow)
	if err != nil {
		return nil, err
	}

	return &LoadDefaultOutput{
		Session:     res.session,
		Result:      res.result,
		LookupError: res.lookupErr,
		Stale:       res.stale,
	}, nil
}

// Search validates the query and looks it up on a session. Validation and
// lookup failures are reported in the output, not as an error; the error
// return is reserved for session storage failures.
func (o *orchestrator) Search(ctx context.Context, input *SearchInput) (*SearchOutput, error) {
	if input == nil {
		return nil, errors.InvalidArgument("input is required")
	}
	if input.SessionID == "" {
		return nil, errors.InvalidArgument("session ID is required")
	}

	identifier, verr := validateQuery(input.Query, o.nameOnly)
	if verr != nil {
		session, err := o.reject(ctx, input.SessionID, input.Query, verr)
		if err != nil {
			return nil, err
		}
		o.publish(ctx, session)
		return &SearchOutput{Session: session, LookupError: verr}, nil
	}

	res, err := o.run(ctx, input.SessionID, identifier, input.Query, searchFlow)
	if err != nil {
		return nil, err
	}

	return &SearchOutput{
		Session:     res.session,
		Result:      res.result,
		LookupError: res.lookupErr,
		Stale:       res.stale,
	}, nil
}

// Lookup validates and fetches without touching any session
func (o *orchestrator) Lookup(ctx context.Context, input *LookupInput) (*LookupOutput, error) {
	if input == nil {
		return nil, errors.InvalidArgument("input is required")
	}

	identifier, err := validateQuery(input.Identifier, o.nameOnly)
	if err != nil {
		return nil, err
	}

	result, err := o.fetch(ctx, identifier, searchFlow)
	if err != nil {
		return nil, err
	}

	return &LookupOutput{Pokemon: result}, nil
}

type runResult struct {
	session   *lookupsession.Session
	result    *pokemon.Pokemon
	lookupErr error
	stale     bool
}

func (o *orchestrator) run(ctx context.Context, sessionID, identifier, query string, f flow) (*runResult, error) {
	fetchCtx, loading, err := o.begin(ctx, sessionID, query, f)
	if err != nil {
		return nil, err
	}
	o.publish(ctx, loading)

	result, lookupErr := o.fetch(fetchCtx, identifier, f)

	session, stale, err := o.complete(ctx, sessionID, loading.Seq, result, lookupErr, f)
	if err != nil {
		return nil, err
	}
	if stale {
		return &runResult{session: session, lookupErr: lookupErr, stale: true}, nil
	}
	o.publish(context.WithoutCancel(ctx), session)

	return &runResult{session: session, result: result, lookupErr: lookupErr}, nil
}

// begin moves the session into loading and registers a new flight,
// cancelling the one it replaces. Callers publish the returned snapshot
// once the lock is released.
func (o *orchestrator) begin(
	ctx context.Context,
	sessionID, query string,
	f flow,
) (context.Context, *lookupsession.Session, error) {
	o.mu.Lock()
	defer o.mu.Unlock()

	got, err := o.sessionRepo.Get(ctx, &lookupsession.GetInput{ID: sessionID})
	if err != nil {
		return nil, nil, errors.Wrapf(err, "failed to get session %s", sessionID)
	}
	session := got.Session

	if prev, ok := o.inflight[sessionID]; ok {
		o.logger.Debug("superseding in-flight lookup",
			"session_id", sessionID,
			"seq", prev.seq)
		prev.cancel()
	}

	session.Seq++
	session.Busy = true
	session.Status = pokemon.StatusLoading
	session.Title = titleSearching
	session.Message = f.loadingMessage
	session.Result = nil
	session.Placeholder = false
	session.CardVisible = true
	if f.clearsQuery {
		session.Query = query
	}

	updated, err := o.sessionRepo.Update(ctx, &lookupsession.UpdateInput{Session: session, TTL: o.sessionTTL})
	if err != nil {
		return nil, nil, errors.Wrapf(err, "failed to update session %s", sessionID)
	}

	fetchCtx, cancel := context.WithCancel(ctx)
	o.inflight[sessionID] = &flight{seq: session.Seq, cancel: cancel}

	return fetchCtx, updated.Session, nil
}

// complete applies the outcome of flight seq, unless a newer flight exists
func (o *orchestrator) complete(
	ctx context.Context,
	sessionID string,
	seq uint64,
	result *pokemon.Pokemon,
	lookupErr error,
	f flow,
) (*lookupsession.Session, bool, error) {
	// The outcome is stored even when the caller has gone away, so the
	// search control is never left disabled
	ctx = context.WithoutCancel(ctx)

	o.mu.Lock()
	defer o.mu.Unlock()

	if fl, ok := o.inflight[sessionID]; ok && fl.seq == seq {
		fl.cancel()
		delete(o.inflight, sessionID)
	}

	got, err := o.sessionRepo.Get(ctx, &lookupsession.GetInput{ID: sessionID})
	if err != nil {
		return nil, false, errors.Wrapf(err, "failed to get session %s", sessionID)
	}
	session := got.Session

	if session.Seq != seq {
		o.logger.Debug("discarding stale lookup",
			"session_id", sessionID,
			"seq", seq,
			"latest_seq", session.Seq)
		return session, true, nil
	}

	session.Busy = false
	if lookupErr == nil {
		session.Status = pokemon.StatusIdle
		session.Title = f.successTitle(result)
		session.Message = f.successMessage(result)
		session.Result = result
		session.CardVisible = true
		session.Placeholder = false
		if f.clearsQuery {
			session.Query = ""
		}
	} else {
		session.Status = pokemon.StatusError
		session.Message = errors.GetMessage(lookupErr)
		session.Result = nil
		switch o.errorCard {
		case pokemon.ErrorCardPlaceholder:
			session.Title = f.failureTitle
			session.CardVisible = true
			session.Placeholder = true
		default:
			session.Title = ""
			session.CardVisible = false
			session.Placeholder = false
		}
	}

	updated, err := o.sessionRepo.Update(ctx, &lookupsession.UpdateInput{Session: session, TTL: o.sessionTTL})
	if err != nil {
		return nil, false, errors.Wrapf(err, "failed to update session %s", sessionID)
	}

	return updated.Session, false, nil
}

// reject records a validation failure; the card and the search control are
// left as they are
func (o *orchestrator) reject(ctx context.Context, sessionID, query string, verr error) (*lookupsession.Session, error) {
	o.mu.Lock()
	defer o.mu.Unlock()

	got, err := o.sessionRepo.Get(ctx, &lookupsession.GetInput{ID: sessionID})
	if err != nil {
		return nil, errors.Wrapf(err, "failed to get session %s", sessionID)
	}
	session := got.Session

	session.Status = pokemon.StatusError
	session.Message = errors.GetMessage(verr)
	session.Query = query

	updated, err := o.sessionRepo.Update(ctx, &lookupsession.UpdateInput{Session: session, TTL: o.sessionTTL})
	if err != nil {
		return nil, errors.Wrapf(err, "failed to update session %s", sessionID)
	}

	return updated.Session, nil
}

// fetch calls the API once. Every client failure becomes the single
// user-facing lookup failure; the client code is kept in the metadata.
func (o *orchestrator) fetch(ctx context.Context, identifier string, f flow) (*pokemon.Pokemon, error) {
	result, err := o.client.GetPokemon(ctx, identifier)
	if err != nil {
		code := errors.GetCode(err)
		o.logger.Warn("pokemon lookup failed",
			"flow", f.name,
			"identifier", identifier,
			"code", code,
			"error", err)
		return nil, errors.WrapWithCode(err, errors.CodeNotFound, f.failureMessage).
			WithMeta("identifier", identifier).
			WithMeta("cause_code", code.String())
	}

	result.Identifier = identifier
	return result, nil
}

func (o *orchestrator) publish(ctx context.Context, session *lookupsession.Session) {
	if err := o.publisher.Publish(ctx, session); err != nil {
		o.logger.Warn("failed to publish session",
			"session_id", session.ID,
			"error", err)
	}
}

func capitalize(s string) string {
	r, size := utf8.DecodeRuneInString(s)
	if r == utf8.RuneError {
		return s
	}
	return string(unicode.ToUpper(r)) + s[size:]
}
