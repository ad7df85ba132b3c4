package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestStepSequenceOrder(t *testing.T) {
	assert.Equal(t, []StepID{
		StepBasicDetails,
		StepProfessionalDetails,
		StepExperience,
		StepIdentityVerification,
		StepVerificationStatus,
	}, StepSequence)
	assert.Equal(t, StepBasicDetails, FirstStep())
}

func TestNextStep(t *testing.T) {
	t.Run("advances through the sequence", func(t *testing.T) {
		next, ok := NextStep(StepBasicDetails)
		assert.True(t, ok)
		assert.Equal(t, StepProfessionalDetails, next)
	})

	t.Run("terminal step has no successor", func(t *testing.T) {
		next, ok := NextStep(StepVerificationStatus)
		assert.False(t, ok)
		assert.Equal(t, StepVerificationStatus, next)
	})

	t.Run("unknown step has no successor", func(t *testing.T) {
		_, ok := NextStep(StepID("review"))
		assert.False(t, ok)
	})
}

func TestPrevStep(t *testing.T) {
	t.Run("first step has no predecessor", func(t *testing.T) {
		prev, ok := PrevStep(StepBasicDetails)
		assert.False(t, ok)
		assert.Equal(t, StepBasicDetails, prev)
	})

	t.Run("moves back one step", func(t *testing.T) {
		prev, ok := PrevStep(StepExperience)
		assert.True(t, ok)
		assert.Equal(t, StepProfessionalDetails, prev)
	})
}

func TestStepID_Terminal(t *testing.T) {
	assert.True(t, StepVerificationStatus.Terminal())
	assert.False(t, StepIdentityVerification.Terminal())
}

func TestStepID_Valid(t *testing.T) {
	assert.True(t, StepExperience.Valid())
	assert.False(t, StepID("payment").Valid())
}
