package template

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultIsValid(t *testing.T) {
	require.NoError(t, Default().Validate())
}

func TestLoadJSON(t *testing.T) {
	data := []byte(`{
		"field_names": ["Topic", "Phone"],
		"title": "New request",
		"accept_label": "Take it"
	}`)

	s, err := Load(data, "template.json")
	require.NoError(t, err)

	assert.Equal(t, []string{"Topic", "Phone"}, s.FieldNames)
	assert.Equal(t, "New request", s.Title)
	assert.Equal(t, "Take it", s.AcceptLabel)
	// Unspecified strings keep their defaults.
	assert.Equal(t, "Заявка принята <user>", s.AcceptedTitle)
}

func TestLoadYAML(t *testing.T) {
	data := []byte("field_names:\n  - Topic\ntitle: New request\n")

	s, err := Load(data, "template.yaml")
	require.NoError(t, err)

	assert.Equal(t, []string{"Topic"}, s.FieldNames)
	assert.Equal(t, "New request", s.Title)
}

func TestLoadInvalidJSON(t *testing.T) {
	_, err := Load([]byte("{not json"), "template.json")
	require.Error(t, err)
}

func TestValidate(t *testing.T) {
	t.Run("no fields", func(t *testing.T) {
		s := Default()
		s.FieldNames = nil
		assert.ErrorIs(t, s.Validate(), ErrNoFields)
	})

	t.Run("blank field name", func(t *testing.T) {
		s := Default()
		s.FieldNames = []string{"Topic", "  "}
		assert.ErrorIs(t, s.Validate(), ErrNoFields)
	})

	t.Run("empty title", func(t *testing.T) {
		s := Default()
		s.DoneTitle = ""
		assert.ErrorIs(t, s.Validate(), ErrEmptyTitle)
	})

	t.Run("empty label", func(t *testing.T) {
		s := Default()
		s.DropLabel = ""
		assert.ErrorIs(t, s.Validate(), ErrEmptyLabel)
	})
}
