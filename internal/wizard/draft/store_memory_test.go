package draft

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"

	"vetform/pkg/platform/sentinel"
)

type InMemoryStoreSuite struct {
	suite.Suite
	store *InMemoryStore
	ctx   context.Context
}

func TestInMemoryStoreSuite(t *testing.T) {
	suite.Run(t, new(InMemoryStoreSuite))
}

func (s *InMemoryStoreSuite) SetupTest() {
	s.store = NewInMemoryStore()
	s.ctx = context.Background()
}

func (s *InMemoryStoreSuite) TestGetSetDelete() {
	s.Run("missing key returns not found", func() {
		_, err := s.store.Get(s.ctx, "vetform:draft:data:missing")
		s.Require().ErrorIs(err, sentinel.ErrNotFound)
	})

	s.Run("set then get round-trips the value", func() {
		s.Require().NoError(s.store.Set(s.ctx, "k", `{"a":1}`, 0))
		got, err := s.store.Get(s.ctx, "k")
		s.Require().NoError(err)
		s.Equal(`{"a":1}`, got)
	})

	s.Run("set overwrites unconditionally", func() {
		s.Require().NoError(s.store.Set(s.ctx, "k", "v1", 0))
		s.Require().NoError(s.store.Set(s.ctx, "k", "v2", 0))
		got, err := s.store.Get(s.ctx, "k")
		s.Require().NoError(err)
		s.Equal("v2", got)
	})

	s.Run("delete removes the key and is idempotent", func() {
		s.Require().NoError(s.store.Set(s.ctx, "k", "v", 0))
		s.Require().NoError(s.store.Delete(s.ctx, "k"))
		_, err := s.store.Get(s.ctx, "k")
		s.Require().ErrorIs(err, sentinel.ErrNotFound)
		s.Require().NoError(s.store.Delete(s.ctx, "k"))
	})
}

func (s *InMemoryStoreSuite) TestTTL() {
	now := time.Now()
	s.store.now = func() time.Time { return now }

	s.Require().NoError(s.store.Set(s.ctx, "expiring", "v", time.Hour))

	s.Run("readable before expiry", func() {
		got, err := s.store.Get(s.ctx, "expiring")
		s.Require().NoError(err)
		s.Equal("v", got)
	})

	s.Run("expired key reads as not found", func() {
		now = now.Add(2 * time.Hour)
		_, err := s.store.Get(s.ctx, "expiring")
		s.Require().ErrorIs(err, sentinel.ErrNotFound)
	})

	s.Run("zero ttl never expires", func() {
		s.Require().NoError(s.store.Set(s.ctx, "pinned", "v", 0))
		now = now.Add(1000 * time.Hour)
		_, err := s.store.Get(s.ctx, "pinned")
		s.Require().NoError(err)
	})
}
