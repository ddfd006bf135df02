package models

// Intent is the classified purpose of a user message. The set is closed.
type Intent string

const (
	IntentBooking    Intent = "booking"
	IntentIssue      Intent = "issue"
	IntentDirections Intent = "directions"
	IntentAmbiguous  Intent = "ambiguous"
)

// Action names the handler operation a routed message asks for.
type Action string

const (
	ActionCheckAvailability Action = "check_availability"
	ActionReserve           Action = "reserve"
	ActionLookupBooking     Action = "lookup"
	ActionCancelBooking     Action = "cancel"
	ActionListRooms         Action = "list_rooms"

	ActionCreateTicket Action = "create_ticket"
	ActionViewTicket   Action = "view_status"
	ActionResolve      Action = "resolve"

	ActionRoute    Action = "route"
	ActionNearby   Action = "nearby"
	ActionLocation Action = "location"
)

// IntentActions lists the operations each intent may dispatch to.
var IntentActions = map[Intent][]Action{
	IntentBooking:    {ActionCheckAvailability, ActionReserve, ActionLookupBooking, ActionCancelBooking, ActionListRooms},
	IntentIssue:      {ActionCreateTicket, ActionViewTicket, ActionResolve},
	IntentDirections: {ActionRoute, ActionNearby, ActionLocation},
}

// Valid reports whether i belongs to the closed intent set.
func (i Intent) Valid() bool {
	if i == IntentAmbiguous {
		return true
	}
	_, ok := IntentActions[i]
	return ok
}

// Allows reports whether a belongs to the operations of intent i.
func (i Intent) Allows(a Action) bool {
	for _, candidate := range IntentActions[i] {
		if candidate == a {
			return true
		}
	}
	return false
}

// AIRequest is the payload of /api/hotel/sessions/:id/messages.
type AIRequest struct {
	Text string `json:"text" binding:"required"` // user's message (voice→text or typed)
}

// AIResponse is what the router relays to the user for one message.
type AIResponse struct {
	SessionID    string      `json:"session_id"`
	Intent       Intent      `json:"intent"`
	Action       Action      `json:"action,omitempty"`
	ResponseText string      `json:"response"`
	Status       string      `json:"status"`               // "success" or "error"
	ErrorCode    ErrorCode   `json:"error_code,omitempty"` // set when Status is "error"
	Retryable    bool        `json:"retryable,omitempty"`
	Booking      *Booking    `json:"booking,omitempty"`
	Room         *RoomInfo   `json:"room,omitempty"`
	Rooms        []RoomInfo  `json:"rooms,omitempty"`
	Ticket       *Ticket     `json:"ticket,omitempty"`
	Guide        *RouteGuide `json:"guide,omitempty"`
}
