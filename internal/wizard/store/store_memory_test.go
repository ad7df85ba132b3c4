package store

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/suite"

	"vetform/internal/wizard/models"
	"vetform/pkg/platform/sentinel"
)

type SessionStoreSuite struct {
	suite.Suite
	store *SessionStore
}

func TestSessionStoreSuite(t *testing.T) {
	suite.Run(t, new(SessionStoreSuite))
}

func (s *SessionStoreSuite) SetupTest() {
	s.store = New()
}

func (s *SessionStoreSuite) TestGetOrCreate() {
	s.Run("new session starts at the first step with defaults", func() {
		state := s.store.GetOrCreate("sess-1")
		s.Equal(models.FirstStep(), state.CurrentStep)
		s.Len(state.Data.Positions, 1)
	})

	s.Run("existing session state is preserved", func() {
		_, err := s.store.Update("sess-2", func(st *models.WizardState) error {
			st.Data.BasicDetails.FirstName = "Jane"
			return nil
		})
		s.Require().NoError(err)

		state := s.store.GetOrCreate("sess-2")
		s.Equal("Jane", state.Data.BasicDetails.FirstName)
	})

	s.Run("returned state is a copy", func() {
		state := s.store.GetOrCreate("sess-3")
		state.Data.BasicDetails.FirstName = "mutated outside the store"

		again := s.store.GetOrCreate("sess-3")
		s.Empty(again.Data.BasicDetails.FirstName)
	})
}

func (s *SessionStoreSuite) TestGet() {
	s.Run("unknown session returns not found", func() {
		_, err := s.store.Get("nope")
		s.Require().ErrorIs(err, sentinel.ErrNotFound)
	})

	s.Run("known session returns a copy", func() {
		s.store.GetOrCreate("sess-1")
		state, err := s.store.Get("sess-1")
		s.Require().NoError(err)

		state.Data.Positions[0].Title = "mutated"
		again, err := s.store.Get("sess-1")
		s.Require().NoError(err)
		s.Empty(again.Data.Positions[0].Title)
	})
}

func (s *SessionStoreSuite) TestUpdate() {
	s.Run("publishes the mutation on success", func() {
		updated, err := s.store.Update("sess-1", func(st *models.WizardState) error {
			st.CurrentStep = models.StepExperience
			return nil
		})
		s.Require().NoError(err)
		s.Equal(models.StepExperience, updated.CurrentStep)

		state, err := s.store.Get("sess-1")
		s.Require().NoError(err)
		s.Equal(models.StepExperience, state.CurrentStep)
	})

	s.Run("a failed update publishes nothing", func() {
		s.store.GetOrCreate("sess-2")
		_, err := s.store.Update("sess-2", func(st *models.WizardState) error {
			st.Data.BasicDetails.FirstName = "partial"
			return errors.New("boom")
		})
		s.Require().Error(err)

		state, err := s.store.Get("sess-2")
		s.Require().NoError(err)
		s.Empty(state.Data.BasicDetails.FirstName)
	})
}

func (s *SessionStoreSuite) TestReplaceAndDelete() {
	s.Run("replace swaps the whole state", func() {
		replacement := models.NewWizardState()
		replacement.CurrentStep = models.StepIdentityVerification
		s.store.Replace("sess-1", replacement)

		state, err := s.store.Get("sess-1")
		s.Require().NoError(err)
		s.Equal(models.StepIdentityVerification, state.CurrentStep)
	})

	s.Run("delete forgets the session", func() {
		s.store.GetOrCreate("sess-2")
		s.store.Delete("sess-2")
		_, err := s.store.Get("sess-2")
		s.Require().ErrorIs(err, sentinel.ErrNotFound)

		// Deleting again is a no-op.
		s.store.Delete("sess-2")
	})
}
