package headless_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/valerio/go-sfc/sfc"
	"github.com/valerio/go-sfc/sfc/backend"
	"github.com/valerio/go-sfc/sfc/backend/headless"
)

func TestHeadlessBackend(t *testing.T) {
	t.Run("normal operation", func(t *testing.T) {
		h := headless.New(3, 1)

		err := h.Init(backend.Config{Title: "Test"})
		assert.NoError(t, err)

		for i := 0; i < 3; i++ {
			actions, err := h.Update(sfc.Stats{Frames: uint64(i + 1)})
			assert.NoError(t, err)

			if i < 2 {
				assert.Empty(t, actions)
			} else {
				assert.Equal(t, []backend.Action{backend.Quit}, actions)
			}
		}
		assert.Equal(t, 3, h.Frames())

		assert.NoError(t, h.Cleanup())
	})

	t.Run("unlimited", func(t *testing.T) {
		h := headless.New(0, 0)
		assert.NoError(t, h.Init(backend.Config{}))

		for range 200 {
			actions, err := h.Update(sfc.Stats{})
			assert.NoError(t, err)
			assert.Empty(t, actions)
		}
	})

	t.Run("init restarts the count", func(t *testing.T) {
		h := headless.New(2, 0)
		assert.NoError(t, h.Init(backend.Config{}))
		_, _ = h.Update(sfc.Stats{})

		assert.NoError(t, h.Init(backend.Config{}))
		actions, _ := h.Update(sfc.Stats{})
		assert.Empty(t, actions)
	})
}

func TestHeadlessImplementsBackend(t *testing.T) {
	var _ backend.Backend = (*headless.Backend)(nil)
}
