package errors_test

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/suite"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"github.com/KirkDiggler/pokedex-api/internal/errors"
)

type ErrorsTestSuite struct {
	suite.Suite
}

func TestErrorsSuite(t *testing.T) {
	suite.Run(t, new(ErrorsTestSuite))
}

func (s *ErrorsTestSuite) TestNewError() {
	testCases := []struct {
		name     string
		code     errors.Code
		message  string
		expected string
	}{
		{
			name:     "not found error",
			code:     errors.CodeNotFound,
			message:  "pokemon not found",
			expected: "NOT_FOUND: pokemon not found",
		},
		{
			name:     "invalid argument error",
			code:     errors.CodeInvalidArgument,
			message:  "query is required",
			expected: "INVALID_ARGUMENT: query is required",
		},
	}

	for _, tc := range testCases {
		s.Run(tc.name, func() {
			err := errors.New(tc.code, tc.message)
			s.Equal(tc.expected, err.Error())
			s.Equal(tc.code, err.Code)
			s.Equal(tc.message, err.Message)
		})
	}
}

func (s *ErrorsTestSuite) TestErrorWithMeta() {
	err := errors.NotFound("pokemon not found").
		WithMeta("identifier", "missingno").
		WithMeta("status", 404)

	s.Equal("missingno", err.Meta["identifier"])
	s.Equal(404, err.Meta["status"])
}

func (s *ErrorsTestSuite) TestWrap() {
	baseErr := fmt.Errorf("dial tcp: connection refused")
	wrapped := errors.Wrap(baseErr, "failed to reach pokeapi")

	s.Equal(errors.CodeInternal, wrapped.Code)
	s.Equal("failed to reach pokeapi", wrapped.Message)
	s.Equal(baseErr, wrapped.Unwrap())
	s.Contains(wrapped.Error(), "connection refused")
}

func (s *ErrorsTestSuite) TestWrapPreservesCode() {
	baseErr := errors.NotFound("pokemon not found").WithMeta("status", 404)
	wrapped := errors.Wrapf(baseErr, "lookup of %s failed", "missingno")

	s.Equal(errors.CodeNotFound, wrapped.Code)
	s.Equal("lookup of missingno failed", wrapped.Message)
	s.Equal(404, wrapped.Meta["status"])
}

func (s *ErrorsTestSuite) TestWrapWithCodeCopiesMeta() {
	baseErr := errors.Unavailable("pokeapi unreachable").WithMeta("identifier", "pikachu")
	wrapped := errors.WrapWithCode(baseErr, errors.CodeNotFound, "Pokémon not found. Check the name or ID.")
	wrapped.WithMeta("extra", true)

	s.Equal(errors.CodeNotFound, wrapped.Code)
	s.Equal("pikachu", wrapped.Meta["identifier"])
	s.NotContains(baseErr.Meta, "extra")
	s.True(errors.IsUnavailable(wrapped.Unwrap()))
}

func (s *ErrorsTestSuite) TestWrapNil() {
	s.Nil(errors.Wrap(nil, "should be nil"))
	s.Nil(errors.WrapWithCode(nil, errors.CodeNotFound, "should be nil"))
}

func (s *ErrorsTestSuite) TestConstructorFunctions() {
	testCases := []struct {
		name        string
		constructor func() *errors.Error
		code        errors.Code
	}{
		{"NotFound", func() *errors.Error { return errors.NotFound("test") }, errors.CodeNotFound},
		{"InvalidArgument", func() *errors.Error { return errors.InvalidArgument("test") }, errors.CodeInvalidArgument},
		{"AlreadyExists", func() *errors.Error { return errors.AlreadyExists("test") }, errors.CodeAlreadyExists},
		{"FailedPrecondition", func() *errors.Error { return errors.FailedPrecondition("test") }, errors.CodeFailedPrecondition},
		{"Internal", func() *errors.Error { return errors.Internal("test") }, errors.CodeInternal},
		{"Unavailable", func() *errors.Error { return errors.Unavailable("test") }, errors.CodeUnavailable},
		{"Canceled", func() *errors.Error { return errors.Canceled("test") }, errors.CodeCanceled},
		{"Unimplemented", func() *errors.Error { return errors.Unimplemented("test") }, errors.CodeUnimplemented},
	}

	for _, tc := range testCases {
		s.Run(tc.name, func() {
			err := tc.constructor()
			s.Equal(tc.code, err.Code)
			s.Equal("test", err.Message)
		})
	}
}

func (s *ErrorsTestSuite) TestErrorIs() {
	s.True(errors.NotFound("a").Is(errors.NotFound("b")))
	s.False(errors.NotFound("a").Is(errors.InvalidArgument("a")))
	s.True(errors.Is(errors.Wrap(errors.NotFound("a"), "wrapped"), errors.NotFound("")))
}

func (s *ErrorsTestSuite) TestGetCode() {
	err := errors.NotFound("test")
	wrapped := errors.Wrap(err, "wrapped")

	s.Equal(errors.CodeNotFound, errors.GetCode(err))
	s.Equal(errors.CodeNotFound, errors.GetCode(wrapped))
	s.Equal(errors.CodeInternal, errors.GetCode(fmt.Errorf("standard error")))
	s.Equal(errors.CodeOK, errors.GetCode(nil))
}

func (s *ErrorsTestSuite) TestGetMessage() {
	err := errors.NotFound("Pokémon not found. Check the name or ID.")
	stdErr := fmt.Errorf("standard error")

	s.Equal("Pokémon not found. Check the name or ID.", errors.GetMessage(err))
	s.Equal("standard error", errors.GetMessage(stdErr))
	s.Equal("", errors.GetMessage(nil))
	s.Nil(errors.GetMeta(stdErr))
}

func (s *ErrorsTestSuite) TestHTTPStatus() {
	testCases := []struct {
		code     errors.Code
		expected int
	}{
		{errors.CodeOK, 200},
		{errors.CodeNotFound, 404},
		{errors.CodeInvalidArgument, 400},
		{errors.CodeAlreadyExists, 409},
		{errors.CodeInternal, 500},
		{errors.CodeUnavailable, 503},
		{errors.CodeDeadlineExceeded, 504},
		{errors.Code("SOMETHING_ELSE"), 500},
	}

	for _, tc := range testCases {
		s.Run(string(tc.code), func() {
			s.Equal(tc.expected, tc.code.HTTPStatus())
		})
	}
}

func (s *ErrorsTestSuite) TestGRPCRoundTrip() {
	err := errors.NotFound("Pokémon not found. Check the name or ID.").
		WithMeta("identifier", "missingno")

	grpcErr := errors.ToGRPCError(err)
	st, ok := status.FromError(grpcErr)
	s.Require().True(ok)
	s.Equal(codes.NotFound, st.Code())
	s.Equal("Pokémon not found. Check the name or ID.", st.Message())

	back := errors.FromGRPCError(grpcErr)
	s.True(errors.IsNotFound(back))
	s.Equal("missingno", errors.GetMeta(back)["identifier"])
}

func (s *ErrorsTestSuite) TestToGRPCErrorPassthrough() {
	s.Nil(errors.ToGRPCError(nil))

	already := status.Error(codes.Unavailable, "down")
	s.Equal(already, errors.ToGRPCError(already))

	st, ok := status.FromError(errors.ToGRPCError(fmt.Errorf("boom")))
	s.Require().True(ok)
	s.Equal(codes.Internal, st.Code())
}

func (s *ErrorsTestSuite) TestFromGRPCErrorPlainError() {
	plain := fmt.Errorf("not a status")
	s.Equal(plain, errors.FromGRPCError(plain))
	s.Nil(errors.FromGRPCError(nil))

	err := errors.FromGRPCError(status.Error(codes.InvalidArgument, "Please enter a name or ID."))
	s.True(errors.IsInvalidArgument(err))
	s.Equal("Please enter a name or ID.", errors.GetMessage(err))
}

func (s *ErrorsTestSuite) TestGRPCCodeMapping() {
	testCases := []struct {
		code     errors.Code
		expected codes.Code
	}{
		{errors.CodeNotFound, codes.NotFound},
		{errors.CodeInvalidArgument, codes.InvalidArgument},
		{errors.CodeAlreadyExists, codes.AlreadyExists},
		{errors.CodeInternal, codes.Internal},
		{errors.CodeUnavailable, codes.Unavailable},
		{errors.CodeCanceled, codes.Canceled},
	}

	for _, tc := range testCases {
		s.Run(string(tc.code), func() {
			s.Equal(tc.expected, tc.code.GRPCCode())
		})
	}
}
