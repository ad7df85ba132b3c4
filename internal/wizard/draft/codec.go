package draft

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"vetform/internal/wizard/models"
	"vetform/pkg/platform/sentinel"
)

const (
	dataKeyPrefix  = "vetform:draft:data:"
	filesKeyPrefix = "vetform:draft:files:"
)

// Metadata travels with the draft data document so a restore can say when and
// where the draft was written.
type Metadata struct {
	SavedAt time.Time `json:"saved_at"`
	Device  string    `json:"device,omitempty"`
}

// Restored is the result of loading a draft: reconstructed form data with
// preview-only document slots, plus the step the user was on and the metadata.
type Restored struct {
	Data        models.FormRecord
	CurrentStep models.StepID
	Metadata    Metadata
}

// dataDocument is the JSON document written under the data key. Every document
// slot inside Data is emptied before writing: file handles are not
// serializable and previews are persisted separately.
type dataDocument struct {
	Metadata
	CurrentStep models.StepID     `json:"current_step"`
	Data        models.FormRecord `json:"data"`
}

// previewRef is one slot's persisted display hint.
type previewRef struct {
	Preview string `json:"preview,omitempty"`
}

// filesDocument is the JSON document written under the files key. The
// certifications array is positional: entry i belongs to certification i of
// the data document at save time.
type filesDocument struct {
	Qualification   previewRef   `json:"qualifications"`
	BarRegistration previewRef   `json:"barRegistration"`
	Certifications  []previewRef `json:"certifications"`
	Identity        previewRef   `json:"identityVerification"`
}

// Codec serializes wizard state to the draft store and reconstructs it on
// load. It guarantees exact round-trip of all non-file field values; file
// binaries never round-trip, and previews only round-trip for slots that held
// one at save time.
type Codec struct {
	store  Store
	ttl    time.Duration
	logger *slog.Logger
}

// NewCodec builds a codec over the given storage port. ttl bounds draft
// retention; zero means drafts never expire.
func NewCodec(store Store, ttl time.Duration, logger *slog.Logger) *Codec {
	return &Codec{store: store, ttl: ttl, logger: logger}
}

// Save persists the state's form data and current step under the session's
// data key, and the document previews under the files key.
func (c *Codec) Save(ctx context.Context, sessionID string, state models.WizardState, meta Metadata) error {
	stripped := state.Data.Clone()
	refs := filesDocument{
		Qualification:   previewRef{Preview: stripped.Professional.Qualification.Document.Preview},
		BarRegistration: previewRef{Preview: stripped.Professional.BarRegistration.Document.Preview},
		Identity:        previewRef{Preview: stripped.Identity.Document.Preview},
		Certifications:  make([]previewRef, len(stripped.Professional.Certifications)),
	}
	for i, cert := range stripped.Professional.Certifications {
		refs.Certifications[i] = previewRef{Preview: cert.Document.Preview}
	}

	stripped.Professional.Qualification.Document = models.EmptySlot()
	stripped.Professional.BarRegistration.Document = models.EmptySlot()
	stripped.Identity.Document = models.EmptySlot()
	for i := range stripped.Professional.Certifications {
		stripped.Professional.Certifications[i].Document = models.EmptySlot()
	}

	dataDoc, err := json.Marshal(dataDocument{
		Metadata:    meta,
		CurrentStep: state.CurrentStep,
		Data:        stripped,
	})
	if err != nil {
		return fmt.Errorf("encode draft data: %w", err)
	}
	filesDoc, err := json.Marshal(refs)
	if err != nil {
		return fmt.Errorf("encode draft file references: %w", err)
	}

	if err := c.store.Set(ctx, dataKeyPrefix+sessionID, string(dataDoc), c.ttl); err != nil {
		return fmt.Errorf("write draft data: %w", err)
	}
	if err := c.store.Set(ctx, filesKeyPrefix+sessionID, string(filesDoc), c.ttl); err != nil {
		return fmt.Errorf("write draft file references: %w", err)
	}
	return nil
}

// Load reads both draft keys for the session. A missing data key means no
// draft: (nil, nil). Malformed stored content is logged and likewise treated
// as no draft; it must never take the wizard down. Previews from the files key
// are overlaid positionally; a preview whose index no longer exists in the
// restored list is dropped.
func (c *Codec) Load(ctx context.Context, sessionID string) (*Restored, error) {
	raw, err := c.store.Get(ctx, dataKeyPrefix+sessionID)
	if errors.Is(err, sentinel.ErrNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read draft data: %w", err)
	}

	var doc dataDocument
	if err := json.Unmarshal([]byte(raw), &doc); err != nil {
		c.logger.WarnContext(ctx, "discarding malformed draft",
			"session_id", sessionID,
			"error", err.Error(),
		)
		return nil, nil
	}

	restored := Restored{
		Data:        doc.Data,
		CurrentStep: doc.CurrentStep,
		Metadata:    doc.Metadata,
	}
	if !restored.CurrentStep.Valid() {
		restored.CurrentStep = models.FirstStep()
	}

	// Document slots come back empty regardless of what was stored; only the
	// files document can upgrade them to preview-only slots.
	restored.Data.Professional.Qualification.Document = models.EmptySlot()
	restored.Data.Professional.BarRegistration.Document = models.EmptySlot()
	restored.Data.Identity.Document = models.EmptySlot()
	for i := range restored.Data.Professional.Certifications {
		restored.Data.Professional.Certifications[i].Document = models.EmptySlot()
	}

	c.overlayPreviews(ctx, sessionID, &restored.Data)
	return &restored, nil
}

func (c *Codec) overlayPreviews(ctx context.Context, sessionID string, data *models.FormRecord) {
	raw, err := c.store.Get(ctx, filesKeyPrefix+sessionID)
	if errors.Is(err, sentinel.ErrNotFound) {
		return
	}
	if err != nil {
		c.logger.WarnContext(ctx, "reading draft file references failed",
			"session_id", sessionID,
			"error", err.Error(),
		)
		return
	}

	var refs filesDocument
	if err := json.Unmarshal([]byte(raw), &refs); err != nil {
		c.logger.WarnContext(ctx, "discarding malformed draft file references",
			"session_id", sessionID,
			"error", err.Error(),
		)
		return
	}

	if refs.Qualification.Preview != "" {
		data.Professional.Qualification.Document = models.RestoredSlot(refs.Qualification.Preview)
	}
	if refs.BarRegistration.Preview != "" {
		data.Professional.BarRegistration.Document = models.RestoredSlot(refs.BarRegistration.Preview)
	}
	if refs.Identity.Preview != "" {
		data.Identity.Document = models.RestoredSlot(refs.Identity.Preview)
	}
	for i, ref := range refs.Certifications {
		if i >= len(data.Professional.Certifications) {
			// The list shrank since the references were written; surplus
			// previews have no home and are dropped.
			break
		}
		if ref.Preview != "" {
			data.Professional.Certifications[i].Document = models.RestoredSlot(ref.Preview)
		}
	}
}

// Discard removes both draft keys for the session. Discarding a session with
// no draft is a no-op.
func (c *Codec) Discard(ctx context.Context, sessionID string) error {
	if err := c.store.Delete(ctx, dataKeyPrefix+sessionID); err != nil {
		return fmt.Errorf("delete draft data: %w", err)
	}
	if err := c.store.Delete(ctx, filesKeyPrefix+sessionID); err != nil {
		return fmt.Errorf("delete draft file references: %w", err)
	}
	return nil
}
