package events

// Kind classifies a reservation mutation.
type Kind string

const (
	KindCreated     Kind = "created"
	KindConfirmed   Kind = "confirmed"
	KindUnconfirmed Kind = "unconfirmed"
	KindDeleted     Kind = "deleted"
)

// Event is the change signal fanned out to connected viewers after a
// committed store mutation. It carries enough to decide whether a view
// needs refreshing; subscribers re-query, the event is not the payload.
type Event struct {
	Kind Kind   `json:"kind"`
	ID   string `json:"id"`
	Date string `json:"date"`
	Slot string `json:"slot"`
}

// Publisher is what the store mutates through; the hub implements it.
type Publisher interface {
	Publish(e Event)
}
