package apperror

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestReason(t *testing.T) {
	t.Run("Wrapped protocol errors keep their label", func(t *testing.T) {
		reason, ok := Reason(fmt.Errorf("%w: cell 12", ErrInvalidCell))

		assert.True(t, ok)
		assert.Equal(t, "invalid_cell", reason)
	})

	t.Run("Other errors are not protocol errors", func(t *testing.T) {
		reason, ok := Reason(errors.New("boom"))

		assert.False(t, ok)
		assert.Empty(t, reason)
	})
}
