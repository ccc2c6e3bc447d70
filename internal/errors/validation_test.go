package errors_test

import (
	"testing"

	"github.com/stretchr/testify/suite"

	"github.com/KirkDiggler/pokedex-api/internal/errors"
)

type ValidationTestSuite struct {
	suite.Suite
}

func TestValidationSuite(t *testing.T) {
	suite.Run(t, new(ValidationTestSuite))
}

func (s *ValidationTestSuite) TestValidationBuilder() {
	vb := errors.NewValidationBuilder()
	vb.RequiredField("Client").
		InvalidField("ErrorCard", "must be hide or placeholder").
		Fieldf("SessionTTL", "must be at least %s", "1m")

	s.True(vb.HasErrors())

	err := vb.Build()
	s.Require().Error(err)
	s.True(errors.IsInvalidArgument(err))
	s.Equal(
		"validation failed: Client: is required; ErrorCard: is invalid: must be hide or placeholder; SessionTTL: must be at least 1m",
		errors.GetMessage(err),
	)

	fields, ok := errors.GetMeta(err)["validation_errors"].(map[string][]string)
	s.Require().True(ok)
	s.Equal([]string{"is required"}, fields["Client"])
}

func (s *ValidationTestSuite) TestValidationBuilderNoErrors() {
	vb := errors.NewValidationBuilder()
	s.False(vb.HasErrors())
	s.NoError(vb.Build())
}

func (s *ValidationTestSuite) TestRepeatedField() {
	err := errors.NewValidationBuilder().
		Field("BaseURL", "is required").
		Field("BaseURL", "must be absolute").
		Build()

	s.Contains(err.Error(), "BaseURL: is required, must be absolute")
}
