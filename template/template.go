// Package template holds the message template set that drives ticket
// rendering: the ordered field list, the title shown at each lifecycle
// stage, the history record appended at each transition, and the inline
// button labels. A template set is immutable once loaded; settings changes
// replace it wholesale.
package template

import (
	"encoding/json"
	"strings"

	"gopkg.in/yaml.v3"
)

// Set is the complete template set for one bot instance.
// Template strings may embed the <user> and <time> placeholders.
type Set struct {
	// FieldNames is the ordered list of fields a requester fills in.
	// The fill state machine prompts for them one by one in this order.
	FieldNames []string `json:"field_names" yaml:"field_names"`

	// Stage titles. The posted ticket message's first line is always
	// the title of its current stage.
	Title         string `json:"title" yaml:"title"`
	AcceptedTitle string `json:"accepted_title" yaml:"accepted_title"`
	DoneTitle     string `json:"done_title" yaml:"done_title"`
	DropTitle     string `json:"drop_title" yaml:"drop_title"`

	// History records appended as trailing lines at each transition.
	NewHistory      string `json:"new_history" yaml:"new_history"`
	AcceptedHistory string `json:"accepted_history" yaml:"accepted_history"`
	DoneHistory     string `json:"done_history" yaml:"done_history"`
	DropHistory     string `json:"drop_history" yaml:"drop_history"`

	// Inline button labels. Labels are user-visible; the button
	// monikers used for dispatch never change.
	AcceptLabel string `json:"accept_label" yaml:"accept_label"`
	DoneLabel   string `json:"done_label" yaml:"done_label"`
	DropLabel   string `json:"drop_label" yaml:"drop_label"`

	// CompletedMessage is the private acknowledgement sent to the
	// requester when the last field lands.
	CompletedMessage string `json:"completed_message" yaml:"completed_message"`
}

// Default returns the built-in template set.
func Default() *Set {
	return &Set{
		FieldNames:       []string{"Тема", "Телефон", "Адрес", "Время"},
		Title:            "Новая заявка",
		AcceptedTitle:    "Заявка принята <user>",
		DoneTitle:        "Выполнено <user>",
		DropTitle:        "Не выполнено <user>",
		NewHistory:       "Создана <user> <time>",
		AcceptedHistory:  "Принята <user> <time>",
		DoneHistory:      "Выполнена <user> <time>",
		DropHistory:      "Отклонена <user> <time>",
		AcceptLabel:      "Принять",
		DoneLabel:        "Выполнено",
		DropLabel:        "Не выполнено",
		CompletedMessage: "Заявка создана",
	}
}

// Load parses a template set from byte data.
// The path parameter is used to determine the file format (JSON or YAML).
func Load(data []byte, path string) (*Set, error) {
	s := Default()

	if strings.HasSuffix(path, ".json") {
		if err := json.Unmarshal(data, s); err != nil {
			return nil, err
		}
	} else {
		// Default to YAML parsing
		if err := yaml.Unmarshal(data, s); err != nil {
			return nil, err
		}
	}

	if err := s.Validate(); err != nil {
		return nil, err
	}
	return s, nil
}

// Validate checks that the template set can drive the ticket lifecycle.
func (s *Set) Validate() error {
	if len(s.FieldNames) == 0 {
		return ErrNoFields
	}
	for _, name := range s.FieldNames {
		if strings.TrimSpace(name) == "" {
			return ErrNoFields
		}
	}
	if s.Title == "" || s.AcceptedTitle == "" || s.DoneTitle == "" || s.DropTitle == "" {
		return ErrEmptyTitle
	}
	if s.AcceptLabel == "" || s.DoneLabel == "" || s.DropLabel == "" {
		return ErrEmptyLabel
	}
	return nil
}
