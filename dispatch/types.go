// Package dispatch implements the trigger registry and the dispatch
// engine: it classifies inbound events, routes them to the registered
// handler, and returns the declarative actions for the transport to
// execute. The engine performs no network I/O itself.
package dispatch

// Chat identifies the chat an inbound event came from.
type Chat struct {
	ID        int64  // Telegram chat ID (user or group)
	IsPrivate bool   // True for a private chat with the sender
	Title     string // Chat title, empty for private chats
}

// User identifies the sender of an inbound event.
type User struct {
	ID        int64
	Username  string
	FirstName string
	LastName  string
}

// File is an uploaded document staged for persistence.
type File struct {
	Name    string
	Content []byte
}

// Request is one inbound event, normalized from the transport's update
// shapes. Exactly one of Button, File, or Text drives classification.
type Request struct {
	Chat      Chat
	User      User
	MessageID int

	// Text is the message text for plain messages and commands.
	Text string

	// Button is the callback payload of a button press, empty otherwise.
	Button string

	// MessageText is the current text of the message the pressed button
	// is attached to. Lifecycle state is re-derived from it.
	MessageText string

	// File is set for document uploads.
	File *File
}

// Button is one inline button attached to an outbound message:
// a dispatch payload plus a user-visible label.
type Button struct {
	Payload string
	Label   string
}

// Message is a "post new message" action.
type Message struct {
	ChatID  int64
	Text    string
	Buttons [][]Button // Ordered rows of buttons, nil for none
}

// Edit is an "edit existing message" action.
// A nil Buttons clears the message's button set.
type Edit struct {
	ChatID    int64
	MessageID int
	Text      string
	Buttons   [][]Button
}

// Response is the declarative result of handling one request.
// The zero value is the no-op response.
type Response struct {
	Posts       []Message
	Edits       []Edit
	FilesToSave []File
}

// Empty reports whether the response carries no actions.
func (r Response) Empty() bool {
	return len(r.Posts) == 0 && len(r.Edits) == 0 && len(r.FilesToSave) == 0
}

// PostedMessage is the transport's acknowledgement of a sent message.
type PostedMessage struct {
	ChatID    int64
	MessageID int
	Text      string
}

// Feedback is the post-send acknowledgement record delivered back to the
// engine after the transport executed a response.
type Feedback struct {
	Posted     []PostedMessage
	SavedFiles []string
}

// Identity is the bot's own identity, used for command addressing.
type Identity struct {
	ID       int64
	Username string
}
