package uistate_test

import (
	"os"
	"path/filepath"
	"testing"

	"portfolio-web/internal/uistate"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDraftSurvivesReload(t *testing.T) {
	p := uistate.NewMemoryPersister()

	s, err := uistate.New(p)
	require.NoError(t, err)
	require.NoError(t, s.UpdateDraft(uistate.DraftPatch{Name: uistate.String("Jane"), Message: uistate.String("Hello there!")}))
	require.NoError(t, s.UpdateDraft(uistate.DraftPatch{Email: uistate.String("jane@example.com")}))
	s.SetSubmitting(true)
	s.MarkHeroAnimated()

	reloaded, err := uistate.New(p)
	require.NoError(t, err)

	assert.Equal(t, uistate.Draft{Name: "Jane", Email: "jane@example.com", Message: "Hello there!"}, reloaded.Draft())
	assert.False(t, reloaded.Submitting())
	assert.False(t, reloaded.AnimateHero())
	assert.JSONEq(t,
		`{"state":{"contactForm":{"name":"Jane","email":"jane@example.com","message":"Hello there!"}},"version":0}`,
		string(p.Raw()))
}

func TestResetDraftIsPersisted(t *testing.T) {
	p := uistate.NewMemoryPersister()
	s, err := uistate.New(p)
	require.NoError(t, err)
	require.NoError(t, s.UpdateDraft(uistate.DraftPatch{Name: uistate.String("Jane")}))
	require.NoError(t, s.ResetDraft())

	reloaded, err := uistate.New(p)
	require.NoError(t, err)
	assert.Equal(t, uistate.Draft{}, reloaded.Draft())
}

func TestFilePersister(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", uistate.StorageKey+".json")
	p := uistate.NewFilePersister(path)

	t.Run("Should start empty when no file exists", func(t *testing.T) {
		d, err := p.Load()
		require.NoError(t, err)
		assert.Equal(t, uistate.Draft{}, d)
	})

	t.Run("Should round-trip the draft", func(t *testing.T) {
		s, err := uistate.New(p)
		require.NoError(t, err)
		require.NoError(t, s.UpdateDraft(uistate.DraftPatch{Message: uistate.String("Ahoj")}))

		again, err := uistate.New(uistate.NewFilePersister(path))
		require.NoError(t, err)
		assert.Equal(t, "Ahoj", again.Draft().Message)
	})

	t.Run("Should report a corrupt file", func(t *testing.T) {
		require.NoError(t, os.WriteFile(path, []byte("{"), 0o600))
		_, err := uistate.New(p)
		assert.Error(t, err)
	})
}

func TestStoresAreIsolated(t *testing.T) {
	a, err := uistate.New(nil)
	require.NoError(t, err)
	b, err := uistate.New(nil)
	require.NoError(t, err)

	a.MarkHeroAnimated()
	require.NoError(t, a.UpdateDraft(uistate.DraftPatch{Name: uistate.String("A")}))

	assert.False(t, b.AnimateHero())
	assert.Empty(t, b.Draft().Name)
}

func TestHeroGateIsOneShot(t *testing.T) {
	s, err := uistate.New(nil)
	require.NoError(t, err)
	assert.False(t, s.AnimateHero())

	assert.True(t, s.MarkHeroAnimated())
	assert.True(t, s.AnimateHero())

	assert.False(t, s.MarkHeroAnimated())
	assert.True(t, s.AnimateHero())
}
