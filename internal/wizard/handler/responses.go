package handler

import (
	"time"

	"vetform/internal/wizard/models"
)

// stateResponse is the wire view of a wizard session.
type stateResponse struct {
	CurrentStep models.StepID                             `json:"current_step"`
	Direction   models.Direction                          `json:"direction"`
	Data        models.FormRecord                         `json:"data"`
	StepErrors  map[models.StepID]models.ValidationErrors `json:"step_errors,omitempty"`
	SubmittedAt *time.Time                                `json:"submitted_at,omitempty"`
}

func newStateResponse(state models.WizardState) stateResponse {
	resp := stateResponse{
		CurrentStep: state.CurrentStep,
		Direction:   state.Direction,
		Data:        state.Data,
		SubmittedAt: state.SubmittedAt,
	}
	if len(state.StepErrors) > 0 {
		resp.StepErrors = state.StepErrors
	}
	return resp
}

// advanceResponse reports the outcome of an advance attempt. Errors is
// populated when the current step blocked; State reflects the position either
// way.
type advanceResponse struct {
	Moved  bool                    `json:"moved"`
	Errors models.ValidationErrors `json:"errors,omitempty"`
	State  stateResponse           `json:"state"`
}

// documentResponse echoes the stored slot for an accepted upload.
type documentResponse struct {
	Document models.FileSlot `json:"document"`
}

// restoreResponse reports whether a draft existed and the resulting state.
type restoreResponse struct {
	Restored bool          `json:"restored"`
	State    stateResponse `json:"state"`
}
