package rod_test

import (
	"context"
	"testing"

	"github.com/fwojciec/parsel"
	"github.com/fwojciec/parsel/rod"
	"github.com/stretchr/testify/assert"
)

func TestRenderer_WithoutBrowser(t *testing.T) {
	t.Parallel()

	t.Run("fails to navigate before open", func(t *testing.T) {
		t.Parallel()

		_, err := rod.NewRenderer().Goto(context.Background(), "https://example.com")

		assert.Equal(t, parsel.EINTERNAL, parsel.ErrorCode(err))
	})

	t.Run("closes without having been opened", func(t *testing.T) {
		t.Parallel()

		r := rod.NewRenderer(rod.WithHeadless(false))

		assert.NoError(t, r.Close())
		assert.NoError(t, r.Close())
	})
}
