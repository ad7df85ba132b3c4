// Package flow is the wizard's step state machine. Forward motion is gated on
// the active step's validator; backward motion never validates. There is no
// jump-to-arbitrary-step operation: every transition targets an immediate
// neighbour of the current step.
package flow

import (
	"time"

	"vetform/internal/wizard/models"
	"vetform/internal/wizard/validate"
)

// Advance runs the active step's validator. On failure it records the step's
// error map on the state and stays in place, returning the map. On success it
// clears the step's prior errors, moves to the next step and sets the forward
// direction hint. Advancing from the terminal step is a no-op.
//
// Entering the terminal step stamps SubmittedAt: reaching verification-status
// means every gated step has passed.
func Advance(state *models.WizardState, now time.Time) models.ValidationErrors {
	if state.CurrentStep.Terminal() {
		return nil
	}

	if errs := validate.Step(state.CurrentStep, state.Data); len(errs) > 0 {
		if state.StepErrors == nil {
			state.StepErrors = make(map[models.StepID]models.ValidationErrors)
		}
		state.StepErrors[state.CurrentStep] = errs
		return errs
	}

	delete(state.StepErrors, state.CurrentStep)

	next, ok := models.NextStep(state.CurrentStep)
	if !ok {
		return nil
	}
	state.CurrentStep = next
	state.Direction = models.DirectionForward
	if next.Terminal() && state.SubmittedAt == nil {
		at := now
		state.SubmittedAt = &at
	}
	return nil
}

// Retreat moves to the previous step without validating and sets the backward
// direction hint. Retreating from the first step is a no-op. It reports
// whether the state changed.
func Retreat(state *models.WizardState) bool {
	prev, ok := models.PrevStep(state.CurrentStep)
	if !ok {
		return false
	}
	state.CurrentStep = prev
	state.Direction = models.DirectionBackward
	return true
}
