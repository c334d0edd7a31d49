package booking

import (
	"github.com/google/uuid"

	"github.com/eduqar/tutor-marketplace/internal/models"
)

const meetingBaseURL = "https://meet.eduqar.com/"

// AssignMeetingLink gives an online lesson its meeting room when it gets
// confirmed. Existing links are kept so reconfirmation via payment events
// never rotates a link already shared with the parent.
func AssignMeetingLink(b *models.Booking) {
	if b.SessionType == SessionOnline && b.MeetingLink == "" {
		b.MeetingLink = meetingBaseURL + uuid.NewString()
	}
}
