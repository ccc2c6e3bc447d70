// Package errors provides the structured error type used across pokedex-api.
//
// Errors carry a Code, a user-facing Message, an optional Cause and free-form
// metadata. The same error travels from the PokeAPI client through the lookup
// orchestrator to whichever transport renders it:
//
//	if resp.IsError() {
//	    return nil, errors.NotFoundf("pokemon %q not found", identifier).
//	        WithMeta("status", resp.StatusCode())
//	}
//
// Wrapping keeps the original code unless a new one is asked for:
//
//	if err != nil {
//	    return errors.WrapWithCode(err, errors.CodeNotFound, msgNotFound)
//	}
//
// # Transports
//
// The gin handlers use Code.HTTPStatus and GetMessage to build JSON error
// bodies. The gRPC handlers use ToGRPCError, which carries Meta as a
// google.protobuf.Struct status detail; FromGRPCError reverses it on the
// client side.
//
// # Validation
//
// Config structs validate their dependencies with a ValidationBuilder:
//
//	vb := errors.NewValidationBuilder()
//	if c.Client == nil {
//	    vb.RequiredField("Client")
//	}
//	return vb.Build()
package errors
