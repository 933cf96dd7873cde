// Package ticket provides the per-submission data record and its
// fill-progress state machine. A ticket exists only while its owner is
// answering field prompts; once the last field lands, its content is
// flattened into the broadcast message text and the ticket is discarded.
package ticket

// Field is one submitted field of a ticket.
type Field struct {
	Name  string // Field name from the template's ordered list
	Value string // Text the requester submitted for it
}

// Ticket is an in-progress submission.
// Fields holds exactly the values submitted so far, in template order;
// EditState indexes the next field awaiting a value.
type Ticket struct {
	Fields    []Field
	EditState int
}

// New creates an empty ticket awaiting its first field.
func New() *Ticket {
	return &Ticket{}
}

// Apply stores the value under the given field name and advances the
// edit cursor.
func (t *Ticket) Apply(name, value string) {
	t.Fields = append(t.Fields, Field{Name: name, Value: value})
	t.EditState++
}

// Complete reports whether all of the template's fieldCount fields
// have been filled.
func (t *Ticket) Complete(fieldCount int) bool {
	return t.EditState >= fieldCount
}

// Lines renders the submitted fields as "Name: Value" message lines.
func (t *Ticket) Lines() []string {
	lines := make([]string, 0, len(t.Fields))
	for _, f := range t.Fields {
		lines = append(lines, f.Name+": "+f.Value)
	}
	return lines
}
