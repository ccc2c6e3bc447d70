package v1alpha1

import (
	"context"

	"google.golang.org/protobuf/types/known/structpb"

	"github.com/KirkDiggler/pokedex-api/internal/errors"
	"github.com/KirkDiggler/pokedex-api/internal/orchestrators/lookup"
	lookupsession "github.com/KirkDiggler/pokedex-api/internal/repositories/lookup_session"
)

// HandlerConfig holds dependencies for the handler
type HandlerConfig struct {
	LookupService lookup.Service
}

// Validate ensures all required dependencies are present
func (c *HandlerConfig) Validate() error {
	if c.LookupService == nil {
		return errors.InvalidArgument("lookup service is required")
	}
	return nil
}

// Handler implements the lookup gRPC service
type Handler struct {
	lookupService lookup.Service
}

// Ensure Handler implements LookupServiceServer
var _ LookupServiceServer = (*Handler)(nil)

// NewHandler creates a new handler with the given configuration
func NewHandler(cfg *HandlerConfig) (*Handler, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &Handler{
		lookupService: cfg.LookupService,
	}, nil
}

// CreateSession starts a widget session
func (h *Handler) CreateSession(ctx context.Context, _ *structpb.Struct) (*structpb.Struct, error) {
	output, err := h.lookupService.CreateSession(ctx, &lookup.CreateSessionInput{})
	if err != nil {
		return nil, errors.ToGRPCError(err)
	}

	return sessionResponse(output.Session, nil)
}

// LoadDefault runs the page-load lookup on a session
func (h *Handler) LoadDefault(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	sessionID := req.GetFields()[FieldSessionID].GetStringValue()
	if sessionID == "" {
		return nil, errors.ToGRPCError(errors.InvalidArgument("session_id is required"))
	}

	output, err := h.lookupService.LoadDefault(ctx, &lookup.LoadDefaultInput{SessionID: sessionID})
	if err != nil {
		return nil, errors.ToGRPCError(err)
	}

	return sessionResponse(output.Session, func(m map[string]any) {
		addOutcome(m, output.LookupError, output.Stale)
		if output.Result != nil {
			m[FieldResult] = pokemonToMap(output.Result)
		}
	})
}

// Search looks a query up on a session. Lookup failures are part of the
// response, alongside the session they left behind.
func (h *Handler) Search(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	fields := req.GetFields()
	sessionID := fields[FieldSessionID].GetStringValue()
	if sessionID == "" {
		return nil, errors.ToGRPCError(errors.InvalidArgument("session_id is required"))
	}

	output, err := h.lookupService.Search(ctx, &lookup.SearchInput{
		SessionID: sessionID,
		Query:     fields[FieldQuery].GetStringValue(),
	})
	if err != nil {
		return nil, errors.ToGRPCError(err)
	}

	return sessionResponse(output.Session, func(m map[string]any) {
		addOutcome(m, output.LookupError, output.Stale)
		if output.Result != nil {
			m[FieldResult] = pokemonToMap(output.Result)
		}
	})
}

// GetSession returns a stored session
func (h *Handler) GetSession(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	sessionID := req.GetFields()[FieldSessionID].GetStringValue()
	if sessionID == "" {
		return nil, errors.ToGRPCError(errors.InvalidArgument("session_id is required"))
	}

	output, err := h.lookupService.GetSession(ctx, &lookup.GetSessionInput{SessionID: sessionID})
	if err != nil {
		return nil, errors.ToGRPCError(err)
	}

	return sessionResponse(output.Session, nil)
}

// GetPokemon is a stateless lookup
func (h *Handler) GetPokemon(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	output, err := h.lookupService.Lookup(ctx, &lookup.LookupInput{
		Identifier: req.GetFields()[FieldIdentifier].GetStringValue(),
	})
	if err != nil {
		return nil, errors.ToGRPCError(err)
	}

	resp, err := structpb.NewStruct(map[string]any{
		FieldPokemon: pokemonToMap(output.Pokemon),
	})
	if err != nil {
		return nil, errors.ToGRPCError(errors.Wrap(err, "failed to encode pokemon"))
	}
	return resp, nil
}

func sessionResponse(session *lookupsession.Session, extra func(map[string]any)) (*structpb.Struct, error) {
	m := map[string]any{
		FieldSession: sessionToMap(session),
		FieldCard:    cardToMap(session.Card()),
	}
	if extra != nil {
		extra(m)
	}

	resp, err := structpb.NewStruct(m)
	if err != nil {
		return nil, errors.ToGRPCError(errors.Wrap(err, "failed to encode session"))
	}
	return resp, nil
}

func addOutcome(m map[string]any, lookupErr error, stale bool) {
	if stale {
		m[FieldStale] = true
		return
	}
	if lookupErr != nil {
		m[FieldError] = errorToMap(lookupErr)
	}
}
