package dto

// ========== Google Calendar API payloads ==========

// GoogleEventDateTime is a timed event boundary.
type GoogleEventDateTime struct {
	DateTime string `json:"dateTime"` // RFC3339
	TimeZone string `json:"timeZone"`
}

// GoogleEventAttendee invites a guest to the event.
type GoogleEventAttendee struct {
	Email string `json:"email"`
}

// GoogleEventReminder overrides a default reminder.
type GoogleEventReminder struct {
	Method  string `json:"method"`
	Minutes int    `json:"minutes"`
}

// GoogleEventReminders configures event reminders.
type GoogleEventReminders struct {
	UseDefault bool                  `json:"useDefault"`
	Overrides  []GoogleEventReminder `json:"overrides,omitempty"`
}

// GoogleEvent is the insert payload for the Calendar v3 events API.
type GoogleEvent struct {
	Summary     string                `json:"summary"`
	Description string                `json:"description"`
	Start       GoogleEventDateTime   `json:"start"`
	End         GoogleEventDateTime   `json:"end"`
	Attendees   []GoogleEventAttendee `json:"attendees,omitempty"`
	Reminders   *GoogleEventReminders `json:"reminders,omitempty"`
	ColorID     string                `json:"colorId,omitempty"`
}

// GoogleEventCreated is the subset of the insert response we keep.
type GoogleEventCreated struct {
	ID string `json:"id"`
}
