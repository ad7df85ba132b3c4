package models

// StepID identifies one page of the intake wizard. The enumeration is closed
// and ordered; navigation only ever moves to an immediate neighbour.
type StepID string

const (
	StepBasicDetails         StepID = "basic-details"
	StepProfessionalDetails  StepID = "professional-details"
	StepExperience           StepID = "experience"
	StepIdentityVerification StepID = "identity-verification"
	StepVerificationStatus   StepID = "verification-status"
)

// StepSequence is the fixed wizard order. The last step is terminal and
// display-only: it has no validator and no outgoing transitions.
var StepSequence = []StepID{
	StepBasicDetails,
	StepProfessionalDetails,
	StepExperience,
	StepIdentityVerification,
	StepVerificationStatus,
}

// FirstStep returns the entry step of the wizard.
func FirstStep() StepID { return StepSequence[0] }

// Valid reports whether s is one of the known steps.
func (s StepID) Valid() bool {
	for _, step := range StepSequence {
		if step == s {
			return true
		}
	}
	return false
}

// Terminal reports whether s is the display-only final step.
func (s StepID) Terminal() bool { return s == StepVerificationStatus }

// Index returns the position of s in the sequence, or -1 for unknown steps.
func (s StepID) Index() int {
	for i, step := range StepSequence {
		if step == s {
			return i
		}
	}
	return -1
}

// NextStep returns the step after s. ok is false on the terminal step and for
// unknown steps.
func NextStep(s StepID) (StepID, bool) {
	i := s.Index()
	if i < 0 || i+1 >= len(StepSequence) {
		return s, false
	}
	return StepSequence[i+1], true
}

// PrevStep returns the step before s. ok is false on the first step and for
// unknown steps.
func PrevStep(s StepID) (StepID, bool) {
	i := s.Index()
	if i <= 0 {
		return s, false
	}
	return StepSequence[i-1], true
}

// Direction is a presentation hint recording which way the user last moved.
// It never participates in transition logic.
type Direction string

const (
	DirectionForward  Direction = "forward"
	DirectionBackward Direction = "backward"
)
