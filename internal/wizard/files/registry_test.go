package files

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"vetform/pkg/platform/sentinel"
)

func TestRegistry_AddAndGet(t *testing.T) {
	reg := NewRegistry()

	entry := reg.Add("sess-1", Upload{FileName: "degree.pdf", MIMEType: "application/pdf", Size: 1024})
	require.NotEmpty(t, entry.Ref)
	require.NotEmpty(t, entry.Preview)
	assert.Contains(t, entry.Preview, "blob:vetform/")

	got, err := reg.Get("sess-1", entry.Ref)
	require.NoError(t, err)
	assert.Equal(t, "degree.pdf", got.FileName)
}

func TestRegistry_MintsUniqueReferences(t *testing.T) {
	reg := NewRegistry()
	a := reg.Add("sess-1", Upload{FileName: "a.pdf"})
	b := reg.Add("sess-1", Upload{FileName: "b.pdf"})
	assert.NotEqual(t, a.Ref, b.Ref)
	assert.NotEqual(t, a.Preview, b.Preview)
}

func TestRegistry_GetScopedToSession(t *testing.T) {
	reg := NewRegistry()
	entry := reg.Add("sess-1", Upload{FileName: "a.pdf"})

	_, err := reg.Get("sess-2", entry.Ref)
	assert.ErrorIs(t, err, sentinel.ErrNotFound)
}

func TestRegistry_Release(t *testing.T) {
	reg := NewRegistry()
	entry := reg.Add("sess-1", Upload{FileName: "a.pdf"})

	reg.Release(entry.Ref)
	_, err := reg.Get("sess-1", entry.Ref)
	assert.ErrorIs(t, err, sentinel.ErrNotFound)

	// Releasing again (or an unknown ref) is a no-op.
	reg.Release(entry.Ref)
	reg.Release("")
}

func TestRegistry_ReleaseSession(t *testing.T) {
	reg := NewRegistry()
	reg.Add("sess-1", Upload{FileName: "a.pdf"})
	reg.Add("sess-1", Upload{FileName: "b.pdf"})
	keep := reg.Add("sess-2", Upload{FileName: "c.pdf"})

	reg.ReleaseSession("sess-1")

	assert.Equal(t, 1, reg.Len())
	_, err := reg.Get("sess-2", keep.Ref)
	assert.NoError(t, err)
}
