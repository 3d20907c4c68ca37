package notify

type Kind int

const (
	KindInfo Kind = iota
	KindSuccess
	KindError
)

func (k Kind) String() string {
	switch k {
	case KindSuccess:
		return "success"
	case KindError:
		return "error"
	default:
		return "info"
	}
}

// Event is a short piece of user feedback.
type Event struct {
	Kind    Kind
	Message string
}

func Info(msg string) Event    { return Event{Kind: KindInfo, Message: msg} }
func Success(msg string) Event { return Event{Kind: KindSuccess, Message: msg} }
func Error(msg string) Event   { return Event{Kind: KindError, Message: msg} }

// Notifier presents events to the user. Delivery is fire-and-forget.
type Notifier interface {
	Notify(Event)
}
