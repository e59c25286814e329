package dto

// ContactMessage is a message from the public contact form, relayed to the
// salon owner by email.
type ContactMessage struct {
	Name      string
	Email     string
	Phone     string
	Dog       string
	Message   string
	Reference string
}
