package constants

import "time"

const (
	// DefaultTimeout bounds outbound calls (email, calendar) so a slow
	// third party cannot stall a request.
	DefaultTimeout = 10 * time.Second

	// AdminTokenTTL is the lifetime of an admin session token.
	AdminTokenTTL = 8 * time.Hour

	// AdminRole is the role claim carried by admin tokens.
	AdminRole = "admin"
)

// Salon scheduling defaults, mirroring the shop's posted hours: open
// 9h-18h, Saturday until 17h, closed Sunday.
const (
	DefaultOpeningHour         = 9
	DefaultClosingHour         = 18
	DefaultSaturdayClosingHour = 17
	DefaultSlotDuration        = 60 * time.Minute

	// AppointmentDuration is the length of the mirrored calendar event.
	AppointmentDuration = time.Hour

	DefaultTimezone = "Europe/Paris"
)
