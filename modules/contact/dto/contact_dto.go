package dto

// ContactRequest is the public contact-form payload.
type ContactRequest struct {
	Name    string `json:"name"`
	Email   string `json:"email"`
	Phone   string `json:"phone"`
	Dog     string `json:"dog,omitempty"`
	Message string `json:"message"`
}

// ContactResponse acknowledges a relayed message.
type ContactResponse struct {
	Reference string `json:"reference"`
}
