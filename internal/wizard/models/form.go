package models

import "time"

// SlotState tags the lifecycle of a document slot. The draft round-trip is
// lossy for file handles, so the distinction between a live selection and a
// restored preview is explicit in the type rather than hidden in nil checks.
type SlotState string

const (
	// SlotEmpty means no document was ever attached (or it was cleared).
	SlotEmpty SlotState = "empty"
	// SlotSelected means the document was uploaded in this session and its
	// bytes are reachable through FileRef.
	SlotSelected SlotState = "selected"
	// SlotRestored means the slot came back from a draft: the preview string
	// survived but the file itself did not.
	SlotRestored SlotState = "restored-preview"
)

// FileSlot holds a user-selected document plus its transient display preview.
// FileRef is an opaque handle into the session upload registry; it is never
// persisted. Preview is an ephemeral display reference minted at selection
// time; a persisted preview can be replayed as a display hint but cannot
// recreate the file.
type FileSlot struct {
	State    SlotState `json:"state"`
	FileRef  string    `json:"file_ref,omitempty"`
	FileName string    `json:"file_name,omitempty"`
	Preview  string    `json:"preview,omitempty"`
}

// EmptySlot returns a slot with no document attached.
func EmptySlot() FileSlot { return FileSlot{State: SlotEmpty} }

// SelectedSlot returns a slot holding a live upload.
func SelectedSlot(fileRef, fileName, preview string) FileSlot {
	return FileSlot{State: SlotSelected, FileRef: fileRef, FileName: fileName, Preview: preview}
}

// RestoredSlot returns a preview-only slot reconstructed from a draft.
func RestoredSlot(preview string) FileSlot {
	return FileSlot{State: SlotRestored, Preview: preview}
}

// HasFile reports whether the slot holds a live file handle. Restored
// preview-only slots do not count; validation requires a live upload.
func (s FileSlot) HasFile() bool { return s.State == SlotSelected && s.FileRef != "" }

// HasPreview reports whether the slot carries a display preview.
func (s FileSlot) HasPreview() bool { return s.Preview != "" }

// BasicDetails is the first step's payload.
type BasicDetails struct {
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Email     string `json:"email"`
	Phone     string `json:"phone,omitempty"`
}

// Qualification records the single academic qualification with its document.
type Qualification struct {
	DegreeType     string   `json:"degree_type"`
	Institution    string   `json:"institution"`
	GraduationYear string   `json:"graduation_year"`
	Document       FileSlot `json:"document"`
}

// Certification is one entry of the ordered certification list.
type Certification struct {
	Name        string   `json:"name"`
	IssuingBody string   `json:"issuing_body"`
	Date        string   `json:"date"`
	Document    FileSlot `json:"document"`
}

// BarRegistration records the professional licensing body registration.
type BarRegistration struct {
	Association    string   `json:"association"`
	LicenseNumber  string   `json:"license_number"`
	Jurisdiction   string   `json:"jurisdiction"`
	CompletionYear string   `json:"completion_year"`
	Document       FileSlot `json:"document"`
}

// ProfessionalDetails is the second step's payload: one qualification, at
// least one certification, one bar registration.
type ProfessionalDetails struct {
	Qualification   Qualification   `json:"qualification"`
	Certifications  []Certification `json:"certifications"`
	BarRegistration BarRegistration `json:"bar_registration"`
}

// Position is one work-experience entry. EndDate is optional; Current flags an
// ongoing engagement and does not invalidate a stray end date.
type Position struct {
	Title       string `json:"title"`
	Company     string `json:"company"`
	StartDate   string `json:"start_date"`
	EndDate     string `json:"end_date,omitempty"`
	Current     bool   `json:"current"`
	Description string `json:"description"`
}

// IdentityVerification is the fourth step's payload.
type IdentityVerification struct {
	IDType     string   `json:"id_type"`
	IDNumber   string   `json:"id_number"`
	ExpiryDate string   `json:"expiry_date"`
	Document   FileSlot `json:"document"`
}

// FormRecord aggregates all step payloads. It is owned by the session store
// and mutated only by whole-step sub-record replacement.
type FormRecord struct {
	BasicDetails BasicDetails         `json:"basic_details"`
	Professional ProfessionalDetails  `json:"professional_details"`
	Positions    []Position           `json:"positions"`
	Identity     IdentityVerification `json:"identity_verification"`
}

// NewFormRecord returns the all-empty default form: one blank certification
// and one blank position, matching the minimum list sizes the wizard renders.
func NewFormRecord() FormRecord {
	return FormRecord{
		Professional: ProfessionalDetails{
			Certifications: []Certification{{Document: EmptySlot()}},
			Qualification:  Qualification{Document: EmptySlot()},
			BarRegistration: BarRegistration{
				Document: EmptySlot(),
			},
		},
		Positions: []Position{{}},
		Identity:  IdentityVerification{Document: EmptySlot()},
	}
}

// Clone returns a deep copy; list sections get fresh backing arrays so callers
// can never alias store-owned state.
func (f FormRecord) Clone() FormRecord {
	out := f
	out.Professional.Certifications = append([]Certification(nil), f.Professional.Certifications...)
	out.Positions = append([]Position(nil), f.Positions...)
	return out
}

// ValidationErrors maps a dotted field path to a human-readable message.
// Absence of an entry means the field is valid.
type ValidationErrors map[string]string

// Add records a failure for the given field path.
func (v ValidationErrors) Add(path, message string) { v[path] = message }

// WizardState is the single source of truth for one intake session.
type WizardState struct {
	CurrentStep StepID                      `json:"current_step"`
	Direction   Direction                   `json:"direction"`
	Data        FormRecord                  `json:"data"`
	StepErrors  map[StepID]ValidationErrors `json:"step_errors,omitempty"`
	SubmittedAt *time.Time                  `json:"submitted_at,omitempty"`
}

// NewWizardState returns the wizard at its first step with empty defaults.
func NewWizardState() WizardState {
	return WizardState{
		CurrentStep: FirstStep(),
		Direction:   DirectionForward,
		Data:        NewFormRecord(),
		StepErrors:  make(map[StepID]ValidationErrors),
	}
}

// Clone deep-copies the state, including the error maps.
func (s WizardState) Clone() WizardState {
	out := s
	out.Data = s.Data.Clone()
	out.StepErrors = make(map[StepID]ValidationErrors, len(s.StepErrors))
	for step, errs := range s.StepErrors {
		copied := make(ValidationErrors, len(errs))
		for path, msg := range errs {
			copied[path] = msg
		}
		out.StepErrors[step] = copied
	}
	if s.SubmittedAt != nil {
		at := *s.SubmittedAt
		out.SubmittedAt = &at
	}
	return out
}
