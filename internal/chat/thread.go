package chat

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

type Status int

const (
	StatusNone Status = iota
	StatusDelivered
	StatusRead
)

func (s Status) String() string {
	switch s {
	case StatusDelivered:
		return "delivered"
	case StatusRead:
		return "read"
	default:
		return ""
	}
}

// ParseStatus maps a stored status name back to a Status. Unknown names map to StatusNone.
func ParseStatus(s string) Status {
	switch s {
	case "delivered":
		return StatusDelivered
	case "read":
		return StatusRead
	default:
		return StatusNone
	}
}

type Message struct {
	ID        string
	Text      string
	Sender    string
	IsSender  bool
	Timestamp string
	Status    Status
}

// Thread is the ordered message history of one conversation.
// It is owned by a single screen and is not safe for concurrent use.
type Thread struct {
	messages []Message
	sender   string
	clock    func() string
	newID    func() string
}

type Option func(*Thread)

// WithSender sets the label used as Sender on outgoing messages.
func WithSender(name string) Option {
	return func(t *Thread) {
		if name != "" {
			t.sender = name
		}
	}
}

// WithClock sets the function producing the timestamp label of outgoing messages.
func WithClock(clock func() string) Option {
	return func(t *Thread) {
		if clock != nil {
			t.clock = clock
		}
	}
}

// WithIDs sets the id generator for outgoing messages.
func WithIDs(newID func() string) Option {
	return func(t *Thread) {
		if newID != nil {
			t.newID = newID
		}
	}
}

func defaultClock() string {
	return time.Now().Format("3:04 PM")
}

func defaultID() string {
	id, err := uuid.NewV7()
	if err != nil {
		return uuid.NewString()
	}
	return id.String()
}

// NewThread builds a thread from an initial history in chronological order.
// Received messages never carry a delivery status.
func NewThread(initial []Message, opts ...Option) *Thread {
	t := &Thread{
		messages: make([]Message, len(initial)),
		sender:   "You",
		clock:    defaultClock,
		newID:    defaultID,
	}
	copy(t.messages, initial)
	for i := range t.messages {
		if !t.messages[i].IsSender {
			t.messages[i].Status = StatusNone
		}
	}

	for _, opt := range opts {
		opt(t)
	}

	return t
}

// Open promotes the most recent delivered outgoing message to read.
// It returns the promoted message, or false when nothing was eligible.
func (t *Thread) Open() (Message, bool) {
	for i := len(t.messages) - 1; i >= 0; i-- {
		msg := &t.messages[i]
		if msg.IsSender && msg.Status == StatusDelivered {
			msg.Status = StatusRead
			return *msg, true
		}
	}
	return Message{}, false
}

// Send appends a new outgoing message. Blank text is ignored and reports false.
func (t *Thread) Send(text string) (Message, bool) {
	if strings.TrimSpace(text) == "" {
		return Message{}, false
	}

	msg := Message{
		ID:        t.newID(),
		Text:      text,
		Sender:    t.sender,
		IsSender:  true,
		Timestamp: t.clock(),
		Status:    StatusDelivered,
	}
	t.messages = append(t.messages, msg)

	return msg, true
}

// Messages returns a copy of the history in chronological order.
func (t *Thread) Messages() []Message {
	out := make([]Message, len(t.messages))
	copy(out, t.messages)
	return out
}

func (t *Thread) Len() int {
	return len(t.messages)
}
