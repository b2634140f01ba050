package errors_test

import (
	"testing"

	"github.com/stretchr/testify/suite"

	"github.com/KirkDiggler/rpg-items/internal/errors"
)

type ValidationTestSuite struct {
	suite.Suite
}

func TestValidationSuite(t *testing.T) {
	suite.Run(t, new(ValidationTestSuite))
}

func (s *ValidationTestSuite) TestValidationError() {
	ve := errors.NewValidationError()
	ve.AddFieldError("item_id", "is required")
	ve.AddFieldError("name", "is too long")

	s.Assert().True(ve.HasErrors())
	s.Assert().Equal("validation failed: item_id: is required; name: is too long", ve.Error())

	err := ve.ToError()
	s.Assert().Equal(errors.CodeInvalidArgument, err.Code)
	s.Assert().NotNil(err.Meta["validation_errors"])
}

func (s *ValidationTestSuite) TestBuilderNoErrors() {
	s.Assert().NoError(errors.NewValidationBuilder().Build())
	s.Assert().Nil(errors.NewValidationError().ToError())
}

func (s *ValidationTestSuite) TestValidateRequired() {
	testCases := []struct {
		name      string
		value     string
		shouldErr bool
	}{
		{"valid value", "item-1", false},
		{"empty string", "", true},
		{"whitespace only", "   ", true},
	}

	for _, tc := range testCases {
		s.Run(tc.name, func() {
			vb := errors.NewValidationBuilder()
			errors.ValidateRequired("item_id", tc.value, vb)
			err := vb.Build()
			if tc.shouldErr {
				s.Assert().True(errors.IsInvalidArgument(err))
			} else {
				s.Assert().NoError(err)
			}
		})
	}
}
