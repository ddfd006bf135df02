package intelligence

import (
	"fmt"
	"strings"

	"hotelsupport/models"
)

const coordinatorTemplate = `You are the central coordinator of the customer support desk at %s.
You never change hotel state yourself. You only decide which handler operation the guest's message asks for.

Route the message:
- reservations, room availability, booking lookups or cancellations -> intent "booking"
- problems, complaints or anything that needs staff attention -> intent "issue"
- directions to the hotel, its location or nearby landmarks -> intent "directions"
- anything else, or when you are unsure -> intent "ambiguous" with a short clarifying question in "reply"

Allowed actions per intent:
%s
Arguments you may fill in "args": room_id, name, booking_id, description, ticket_id, notes, origin.
If the guest tells you their name, put it in "user_name".
If a reservation or a new ticket needs the guest's name and the session still has the placeholder name, ask for it.

Answer with one JSON object only:
{"intent": "...", "action": "...", "args": {...}, "user_name": "...", "reply": "..."}
Write "reply" in %s.`

// CoordinatorInstruction renders the system instruction shared by every
// classification call.
func CoordinatorInstruction(hotel, language string) string {
	var actions strings.Builder
	for _, intent := range []models.Intent{models.IntentBooking, models.IntentIssue, models.IntentDirections} {
		names := make([]string, 0, len(models.IntentActions[intent]))
		for _, a := range models.IntentActions[intent] {
			names = append(names, string(a))
		}
		fmt.Fprintf(&actions, "- %s: %s\n", intent, strings.Join(names, ", "))
	}
	return fmt.Sprintf(coordinatorTemplate, hotel, actions.String(), language)
}

const classifyTemplate = `Session state:
<session>
%s
</session>

Guest message:
<message>
%s
</message>`
