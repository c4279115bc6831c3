package validation

import (
	"testing"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/followjobs/followjobs/dto"
	"github.com/followjobs/followjobs/internal/enum"
	"github.com/followjobs/followjobs/internal/utils"
)

func validInput() dto.JobApplicationInput {
	return dto.JobApplicationInput{
		Company:  "Acme",
		Position: "Engineer",
		Portal:   "LinkedIn",
	}
}

func TestRegisterValidators_AcceptsValidInput(t *testing.T) {
	require.NoError(t, RegisterValidators())

	input := validInput()
	input.Status = utils.ToPtr(enum.ApplicationStatusInterview)
	assert.NoError(t, binding.Validator.ValidateStruct(&input))
}

func TestRegisterValidators_RejectsBlankFields(t *testing.T) {
	require.NoError(t, RegisterValidators())

	input := validInput()
	input.Company = "   "

	err := binding.Validator.ValidateStruct(&input)
	require.Error(t, err)

	var validationErrors validator.ValidationErrors
	require.ErrorAs(t, err, &validationErrors)
	require.Len(t, validationErrors, 1)
	assert.Equal(t, "company", validationErrors[0].Field())
	assert.Equal(t, "notblank", validationErrors[0].Tag())
}

func TestRegisterValidators_RejectsUnknownStatus(t *testing.T) {
	require.NoError(t, RegisterValidators())

	input := validInput()
	input.Status = utils.ToPtr(enum.ApplicationStatus("PENDING"))
	assert.Error(t, binding.Validator.ValidateStruct(&input))

	update := dto.UpdateStatus{Status: "sent"}
	assert.Error(t, binding.Validator.ValidateStruct(&update))

	update = dto.UpdateStatus{}
	assert.Error(t, binding.Validator.ValidateStruct(&update))

	update = dto.UpdateStatus{Status: enum.ApplicationStatusNoResponse}
	assert.NoError(t, binding.Validator.ValidateStruct(&update))
}
