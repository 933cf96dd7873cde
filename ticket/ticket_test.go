package ticket

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestApplyAdvancesCursor(t *testing.T) {
	tk := New()
	assert.Equal(t, 0, tk.EditState)
	assert.False(t, tk.Complete(2))

	tk.Apply("Topic", "Wifi down")
	assert.Equal(t, 1, tk.EditState)
	assert.False(t, tk.Complete(2))

	tk.Apply("Phone", "555-1234")
	assert.Equal(t, 2, tk.EditState)
	assert.True(t, tk.Complete(2))
}

func TestLines(t *testing.T) {
	tk := New()
	tk.Apply("Topic", "Wifi down")
	tk.Apply("Phone", "555-1234")

	assert.Equal(t, []string{"Topic: Wifi down", "Phone: 555-1234"}, tk.Lines())
}

func TestLinesEmpty(t *testing.T) {
	assert.Empty(t, New().Lines())
}
