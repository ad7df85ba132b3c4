// Package service orchestrates the intake wizard: step replacement, gated
// navigation, document intake and draft persistence. Handlers stay thin and
// delegate here.
package service

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"vetform/internal/device"
	"vetform/internal/notify"
	"vetform/internal/platform/metrics"
	"vetform/internal/wizard/draft"
	"vetform/internal/wizard/files"
	"vetform/internal/wizard/flow"
	"vetform/internal/wizard/models"
	"vetform/internal/wizard/store"
	"vetform/internal/wizard/validate"
	derrors "vetform/pkg/domain-errors"
)

// DocumentTarget names the slot an upload is destined for.
type DocumentTarget string

const (
	TargetQualification   DocumentTarget = "qualification"
	TargetCertification   DocumentTarget = "certification"
	TargetBarRegistration DocumentTarget = "bar_registration"
	TargetIdentity        DocumentTarget = "identity"
)

// Valid reports whether t names a known document slot.
func (t DocumentTarget) Valid() bool {
	switch t {
	case TargetQualification, TargetCertification, TargetBarRegistration, TargetIdentity:
		return true
	}
	return false
}

// StepStatus is one row of the verification-status summary.
type StepStatus struct {
	ID        models.StepID `json:"id"`
	Completed bool          `json:"completed"`
}

// Summary is the display-only payload for the terminal step.
type Summary struct {
	Steps       []StepStatus  `json:"steps"`
	CurrentStep models.StepID `json:"current_step"`
	SubmittedAt *time.Time    `json:"submitted_at,omitempty"`
}

// Service wires the wizard's collaborators together.
type Service struct {
	sessions *store.SessionStore
	drafts   *draft.Codec
	uploads  *files.Registry
	notifier notify.Notifier
	metrics  *metrics.Metrics
	logger   *slog.Logger
	now      func() time.Time
}

// New creates the wizard service.
func New(
	sessions *store.SessionStore,
	drafts *draft.Codec,
	uploads *files.Registry,
	notifier notify.Notifier,
	m *metrics.Metrics,
	logger *slog.Logger,
) *Service {
	return &Service{
		sessions: sessions,
		drafts:   drafts,
		uploads:  uploads,
		notifier: notifier,
		metrics:  m,
		logger:   logger,
		now:      time.Now,
	}
}

// State returns the session's wizard state, creating the default state for
// new sessions.
func (s *Service) State(_ context.Context, sessionID string) models.WizardState {
	return s.sessions.GetOrCreate(sessionID)
}

// ReplaceBasicDetails swaps the basic-details sub-record wholesale.
func (s *Service) ReplaceBasicDetails(_ context.Context, sessionID string, details models.BasicDetails) (models.WizardState, error) {
	return s.sessions.Update(sessionID, func(state *models.WizardState) error {
		state.Data.BasicDetails = details
		return nil
	})
}

// ReplaceProfessionalDetails swaps the professional-details sub-record.
// Document slots are not writable through this path: existing slots are
// carried over by position, and slots for removed certification entries are
// released along with their stored uploads.
func (s *Service) ReplaceProfessionalDetails(_ context.Context, sessionID string, details models.ProfessionalDetails) (models.WizardState, error) {
	return s.sessions.Update(sessionID, func(state *models.WizardState) error {
		prior := state.Data.Professional

		details.Qualification.Document = prior.Qualification.Document
		details.BarRegistration.Document = prior.BarRegistration.Document
		for i := range details.Certifications {
			if i < len(prior.Certifications) {
				details.Certifications[i].Document = prior.Certifications[i].Document
			} else {
				details.Certifications[i].Document = models.EmptySlot()
			}
		}
		for i := len(details.Certifications); i < len(prior.Certifications); i++ {
			s.uploads.Release(prior.Certifications[i].Document.FileRef)
		}

		state.Data.Professional = details
		return nil
	})
}

// ReplaceExperience swaps the position list wholesale.
func (s *Service) ReplaceExperience(_ context.Context, sessionID string, positions []models.Position) (models.WizardState, error) {
	return s.sessions.Update(sessionID, func(state *models.WizardState) error {
		state.Data.Positions = append([]models.Position(nil), positions...)
		return nil
	})
}

// ReplaceIdentity swaps the identity-verification sub-record, carrying over
// the document slot.
func (s *Service) ReplaceIdentity(_ context.Context, sessionID string, identity models.IdentityVerification) (models.WizardState, error) {
	return s.sessions.Update(sessionID, func(state *models.WizardState) error {
		identity.Document = state.Data.Identity.Document
		state.Data.Identity = identity
		return nil
	})
}

// AttachDocument validates an upload against the file policy and, when it
// passes, stores it and replaces the target slot wholesale. A rejected file
// never touches the slot: the prior value is preserved unchanged and the
// rejection is surfaced through the notifier.
func (s *Service) AttachDocument(ctx context.Context, sessionID string, target DocumentTarget, index int, up files.Upload) (models.FileSlot, error) {
	if !target.Valid() {
		return models.FileSlot{}, derrors.New(derrors.CodeBadRequest, fmt.Sprintf("unknown document target %q", target))
	}

	if !files.AllowedExtension(up.FileName) {
		s.rejectUpload(ctx, sessionID, "extension", files.MessageInvalidType)
		return models.FileSlot{}, derrors.New(derrors.CodeValidation, files.MessageInvalidType)
	}

	if result := files.Check(up.MIMEType, up.Size); !result.Valid {
		reason := "type"
		if result.Message == files.MessageTooLarge {
			reason = "size"
		}
		s.rejectUpload(ctx, sessionID, reason, result.Message)
		return models.FileSlot{}, derrors.New(derrors.CodeValidation, result.Message)
	}

	var slot models.FileSlot
	_, err := s.sessions.Update(sessionID, func(state *models.WizardState) error {
		prior, err := targetSlot(state, target, index)
		if err != nil {
			return err
		}

		entry := s.uploads.Add(sessionID, up)
		// Release the superseded selection so its bytes and preview
		// reference do not outlive the slot.
		s.uploads.Release(prior.FileRef)

		slot = models.SelectedSlot(entry.Ref, up.FileName, entry.Preview)
		return setTargetSlot(state, target, index, slot)
	})
	if err != nil {
		return models.FileSlot{}, err
	}

	s.metrics.FilesAccepted.Inc()
	return slot, nil
}

// Document returns a stored upload for download, scoped to the owning session.
// Restored preview-only slots have no document to fetch.
func (s *Service) Document(_ context.Context, sessionID, ref string) (*files.Entry, error) {
	entry, err := s.uploads.Get(sessionID, ref)
	if err != nil {
		return nil, derrors.Wrap(derrors.CodeNotFound, "document not found", err)
	}
	return entry, nil
}

func (s *Service) rejectUpload(ctx context.Context, sessionID, reason, message string) {
	s.metrics.FilesRejected.WithLabelValues(reason).Inc()
	s.notifier.Notify(ctx, sessionID, notify.Notification{
		Title:       "Invalid file",
		Description: message,
		Severity:    notify.SeverityError,
	})
}

func targetSlot(state *models.WizardState, target DocumentTarget, index int) (models.FileSlot, error) {
	switch target {
	case TargetQualification:
		return state.Data.Professional.Qualification.Document, nil
	case TargetBarRegistration:
		return state.Data.Professional.BarRegistration.Document, nil
	case TargetIdentity:
		return state.Data.Identity.Document, nil
	case TargetCertification:
		if index < 0 || index >= len(state.Data.Professional.Certifications) {
			return models.FileSlot{}, derrors.New(derrors.CodeBadRequest,
				fmt.Sprintf("certification index %d out of range", index))
		}
		return state.Data.Professional.Certifications[index].Document, nil
	}
	return models.FileSlot{}, derrors.New(derrors.CodeBadRequest, fmt.Sprintf("unknown document target %q", target))
}

func setTargetSlot(state *models.WizardState, target DocumentTarget, index int, slot models.FileSlot) error {
	switch target {
	case TargetQualification:
		state.Data.Professional.Qualification.Document = slot
	case TargetBarRegistration:
		state.Data.Professional.BarRegistration.Document = slot
	case TargetIdentity:
		state.Data.Identity.Document = slot
	case TargetCertification:
		state.Data.Professional.Certifications[index].Document = slot
	}
	return nil
}

// Advance validates the current step and moves forward on success. The
// returned error map is non-empty when the step blocked; the state always
// reflects the outcome, including the recorded error map.
func (s *Service) Advance(_ context.Context, sessionID string) (models.WizardState, models.ValidationErrors, error) {
	var errs models.ValidationErrors
	var from models.StepID
	state, err := s.sessions.Update(sessionID, func(state *models.WizardState) error {
		from = state.CurrentStep
		errs = flow.Advance(state, s.now())
		return nil
	})
	if err != nil {
		return models.WizardState{}, nil, err
	}

	if len(errs) > 0 {
		s.metrics.StepsBlocked.WithLabelValues(string(from)).Inc()
	} else if state.CurrentStep != from {
		s.metrics.StepsAdvanced.WithLabelValues(string(from)).Inc()
	}
	return state, errs, nil
}

// Retreat moves back one step without validating.
func (s *Service) Retreat(_ context.Context, sessionID string) (models.WizardState, error) {
	return s.sessions.Update(sessionID, func(state *models.WizardState) error {
		flow.Retreat(state)
		return nil
	})
}

// SaveDraft persists the session's current state through the draft codec and
// notifies the user.
func (s *Service) SaveDraft(ctx context.Context, sessionID, userAgent string) error {
	state := s.sessions.GetOrCreate(sessionID)
	meta := draft.Metadata{
		SavedAt: s.now().UTC(),
		Device:  device.ParseUserAgent(userAgent),
	}
	if err := s.drafts.Save(ctx, sessionID, state, meta); err != nil {
		s.logger.ErrorContext(ctx, "failed to save draft",
			"session_id", sessionID,
			"error", err.Error(),
		)
		return derrors.Wrap(derrors.CodeInternal, "failed to save draft", err)
	}

	s.metrics.DraftsSaved.Inc()
	s.notifier.Notify(ctx, sessionID, notify.Notification{
		Title:       "Draft saved",
		Description: "Your progress has been saved",
		Severity:    notify.SeveritySuccess,
	})
	return nil
}

// RestoreDraft loads the session's draft, if any, and replaces the session
// state with it. Restored document slots are preview-only; their steps will
// fail validation until the documents are re-uploaded.
func (s *Service) RestoreDraft(ctx context.Context, sessionID string) (models.WizardState, bool, error) {
	restored, err := s.drafts.Load(ctx, sessionID)
	if err != nil {
		s.logger.ErrorContext(ctx, "failed to load draft",
			"session_id", sessionID,
			"error", err.Error(),
		)
		return models.WizardState{}, false, derrors.Wrap(derrors.CodeInternal, "failed to load draft", err)
	}
	if restored == nil {
		return s.sessions.GetOrCreate(sessionID), false, nil
	}

	state := models.NewWizardState()
	state.Data = restored.Data
	state.CurrentStep = restored.CurrentStep
	// The replaced state may hold live uploads; free them so their bytes and
	// preview references do not outlive the slots that pointed at them.
	s.uploads.ReleaseSession(sessionID)
	s.sessions.Replace(sessionID, state)

	description := "Resuming where you left off"
	if restored.Metadata.Device != "" {
		description = fmt.Sprintf("Saved %s from %s",
			restored.Metadata.SavedAt.Format("Jan 2 15:04"), restored.Metadata.Device)
	}
	s.metrics.DraftsRestored.Inc()
	s.notifier.Notify(ctx, sessionID, notify.Notification{
		Title:       "Draft restored",
		Description: description,
		Severity:    notify.SeverityInfo,
	})

	return s.sessions.GetOrCreate(sessionID), true, nil
}

// DiscardDraft deletes the session's persisted draft. The in-progress session
// state is untouched.
func (s *Service) DiscardDraft(ctx context.Context, sessionID string) error {
	if err := s.drafts.Discard(ctx, sessionID); err != nil {
		return derrors.Wrap(derrors.CodeInternal, "failed to discard draft", err)
	}
	s.metrics.DraftsDiscarded.Inc()
	return nil
}

// Summary reports per-step completion for the verification-status screen.
// A step counts as completed when its validator passes against the current
// data; the terminal step itself is excluded.
func (s *Service) Summary(_ context.Context, sessionID string) Summary {
	state := s.sessions.GetOrCreate(sessionID)
	summary := Summary{
		CurrentStep: state.CurrentStep,
		SubmittedAt: state.SubmittedAt,
	}
	for _, step := range models.StepSequence {
		if step.Terminal() {
			continue
		}
		summary.Steps = append(summary.Steps, StepStatus{
			ID:        step,
			Completed: len(validate.Step(step, state.Data)) == 0,
		})
	}
	return summary
}
