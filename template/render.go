// Package template provides placeholder substitution and message-text
// manipulation for posted ticket messages.
package template

import (
	"strings"
	"time"
)

// TimeLayout is the short local time representation substituted for <time>.
const TimeLayout = "15:04"

// Placeholder tokens recognized in template strings.
const (
	userToken = "<user>"
	timeToken = "<time>"
)

// Stage is one point in a ticket's lifecycle. It is never stored
// server-side: it is re-derived from the posted message's title line.
type Stage int

const (
	// StageUnknown means the text does not match any stage title.
	StageUnknown Stage = iota
	// StageNew is a freshly posted ticket awaiting acceptance.
	StageNew
	// StageAccepted is a ticket claimed by a holder.
	StageAccepted
	// StageDone is a completed ticket (terminal).
	StageDone
	// StageDropped is a rejected ticket (terminal).
	StageDropped
)

// String returns a human-readable stage name.
func (s Stage) String() string {
	switch s {
	case StageNew:
		return "new"
	case StageAccepted:
		return "accepted"
	case StageDone:
		return "done"
	case StageDropped:
		return "dropped"
	default:
		return "unknown"
	}
}

// Actor is the identity substituted for the <user> placeholder.
type Actor struct {
	Username  string
	FirstName string
	LastName  string
}

// Mention returns the normalized mention for the actor:
// "@username (First Last)", or the bare "@username" when both names
// are empty.
func (a Actor) Mention() string {
	full := strings.TrimSpace(strings.TrimSpace(a.FirstName) + " " + strings.TrimSpace(a.LastName))
	if full == "" {
		return "@" + a.Username
	}
	return "@" + a.Username + " (" + full + ")"
}

// FillTime replaces the <time> placeholder with the short local time.
func FillTime(s string, now time.Time) string {
	return strings.ReplaceAll(s, timeToken, now.Format(TimeLayout))
}

// Fill replaces both the <user> and <time> placeholders.
func Fill(s string, actor Actor, now time.Time) string {
	return strings.ReplaceAll(FillTime(s, now), userToken, actor.Mention())
}

// ChangeTitle replaces line 0 of a multi-line text with the new title,
// preserving all other lines.
func ChangeTitle(text, title string) string {
	lines := strings.Split(text, "\n")
	lines[0] = title
	return strings.Join(lines, "\n")
}

// AppendLine appends a new trailing line to the text.
func AppendLine(text, line string) string {
	return text + "\n" + line
}

// staticPrefix returns the part of a template string before its first
// placeholder. Used for stage matching against rendered titles.
func staticPrefix(tmpl string) string {
	if i := strings.IndexByte(tmpl, '<'); i >= 0 {
		return tmpl[:i]
	}
	return tmpl
}

// ParseStage recovers a posted message's lifecycle stage from its text.
// The first line is matched against the stage titles; titles containing
// placeholders match on their static prefix. Drop is checked before done
// so that one title being a prefix of another cannot misclassify.
func (s *Set) ParseStage(text string) Stage {
	title, _, _ := strings.Cut(text, "\n")

	switch {
	case matchTitle(title, s.DropTitle):
		return StageDropped
	case matchTitle(title, s.DoneTitle):
		return StageDone
	case matchTitle(title, s.AcceptedTitle):
		return StageAccepted
	case matchTitle(title, s.Title):
		return StageNew
	default:
		return StageUnknown
	}
}

// matchTitle reports whether a rendered title line came from the given
// title template.
func matchTitle(title, tmpl string) bool {
	prefix := staticPrefix(tmpl)
	if prefix == tmpl {
		return title == tmpl
	}
	return strings.HasPrefix(title, prefix)
}
