package intelligence

import (
	"context"
	"regexp"
	"strings"

	"hotelsupport/models"
)

var (
	roomIDPattern    = regexp.MustCompile(`\broom_\d+\b`)
	shortIDPattern   = regexp.MustCompile(`\b[0-9a-f]{8}\b`)
	namePattern      = regexp.MustCompile(`(?i)\b(?:my name is|call me)\s+([\p{L}][\p{L}'-]*)`)
	selfIntroPattern = regexp.MustCompile(`(?i:\b(?:i am|i'm|this is))\s+(\p{Lu}[\p{Ll}'-]*)\b(\s*,)?`)
	originPattern    = regexp.MustCompile(`(?i)\bfrom\s+(.+?)[\s?.!]*$`)
	resolveNotesExpr = regexp.MustCompile(`(?i)\b(?:notes?|because)\s*:?\s+(.+)$`)
)

var (
	ticketWords    = []string{"ticket", "issue", "complaint", "problem"}
	resolveWords   = []string{"resolve", "resolved", "fixed", "close"}
	statusWords    = []string{"status", "update on", "what happened"}
	problemWords   = []string{"broken", "not working", "doesn't work", "does not work", "problem", "issue", "complain", "noisy", "dirty", "leak", "no hot water", "smell"}
	cancelWords    = []string{"cancel"}
	reserveWords   = []string{"book", "reserve", "reservation"}
	availableWords = []string{"available", "availability", "free"}
	listRoomsWords = []string{"rooms", "what rooms", "room list"}
	routeWords     = []string{"direction", "how do i get", "how to get", "how can i get", "route", "way to", "reach the hotel"}
	nearbyWords    = []string{"nearby", "near the hotel", "around the hotel", "landmark", "attraction", "close to the hotel"}
	locationWords  = []string{"where is", "where are you", "address", "location", "located"}
)

// notNames are capitalised words that follow "I am" without introducing a name.
var notNames = map[string]bool{
	"looking": true, "here": true, "trying": true, "having": true, "not": true,
	"in": true, "at": true, "on": true, "from": true, "staying": true, "sorry": true,
	"calling": true, "interested": true, "going": true, "writing": true, "a": true, "the": true,
	"ok": true, "okay": true, "fine": true, "good": true, "well": true, "cold": true,
	"hot": true, "hungry": true, "tired": true, "lost": true, "late": true, "new": true,
}

const clarifyReply = "Could you tell me whether you need help with a booking, want to report an issue, or need directions to the hotel?"

// LocalClassifier routes messages with keyword rules. It is used when no
// language model is configured.
type LocalClassifier struct{}

func NewLocalClassifier() *LocalClassifier {
	return &LocalClassifier{}
}

func (c *LocalClassifier) Classify(ctx context.Context, message string, snapshot *models.Session) (*Decision, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	lower := strings.ToLower(message)
	d := &Decision{Args: map[string]string{}}

	if name := guestName(message); name != "" {
		d.UserName = name
		d.Args[ArgName] = name
	}
	roomID := roomIDPattern.FindString(lower)
	shortID := shortIDPattern.FindString(lower)

	switch {
	case shortID != "" && containsAny(lower, ticketWords...) && containsAny(lower, resolveWords...):
		d.Intent, d.Action = models.IntentIssue, models.ActionResolve
		d.Args[ArgTicketID] = shortID
		if m := resolveNotesExpr.FindStringSubmatch(message); m != nil {
			d.Args[ArgNotes] = m[1]
		}
	case shortID != "" && containsAny(lower, ticketWords...):
		d.Intent, d.Action = models.IntentIssue, models.ActionViewTicket
		d.Args[ArgTicketID] = shortID
	case shortID != "" && containsAny(lower, cancelWords...):
		d.Intent, d.Action = models.IntentBooking, models.ActionCancelBooking
		d.Args[ArgBookingID] = shortID
	case shortID != "" && (containsAny(lower, reserveWords...) || containsAny(lower, statusWords...)):
		d.Intent, d.Action = models.IntentBooking, models.ActionLookupBooking
		d.Args[ArgBookingID] = shortID
	case roomID != "" && containsAny(lower, availableWords...) && !containsAny(lower, "book ", "reserve"):
		d.Intent, d.Action = models.IntentBooking, models.ActionCheckAvailability
		d.Args[ArgRoomID] = roomID
	case roomID != "" && containsAny(lower, reserveWords...):
		d.Intent, d.Action = models.IntentBooking, models.ActionReserve
		d.Args[ArgRoomID] = roomID
	case containsAny(lower, problemWords...):
		d.Intent, d.Action = models.IntentIssue, models.ActionCreateTicket
		d.Args[ArgDescription] = strings.TrimSpace(message)
	case containsAny(lower, routeWords...):
		d.Intent, d.Action = models.IntentDirections, models.ActionRoute
		if m := originPattern.FindStringSubmatch(message); m != nil {
			d.Args[ArgOrigin] = m[1]
		}
	case containsAny(lower, nearbyWords...):
		d.Intent, d.Action = models.IntentDirections, models.ActionNearby
	case containsAny(lower, locationWords...):
		d.Intent, d.Action = models.IntentDirections, models.ActionLocation
	case containsAny(lower, reserveWords...) || containsAny(lower, listRoomsWords...):
		d.Intent, d.Action = models.IntentBooking, models.ActionListRooms
	default:
		d.Intent = models.IntentAmbiguous
		if d.UserName == "" {
			d.Reply = clarifyReply
		}
	}
	return d, nil
}

// guestName finds a self-introduction. "My name is" and "call me" always
// introduce a name; "I am" only does with a capitalised word that does not
// lead into a comma clause.
func guestName(message string) string {
	if m := namePattern.FindStringSubmatch(message); m != nil {
		return m[1]
	}
	m := selfIntroPattern.FindStringSubmatch(message)
	if m == nil || m[2] != "" || notNames[strings.ToLower(m[1])] {
		return ""
	}
	return m[1]
}

func containsAny(s string, words ...string) bool {
	for _, w := range words {
		if strings.Contains(s, w) {
			return true
		}
	}
	return false
}
