package dto

// SendEmailRequest hands a fully composed draft to the mail sender.
// AccessToken is the caller's Gmail OAuth token; the server never stores it.
type SendEmailRequest struct {
	To          string `json:"to"`
	Subject     string `json:"subject"`
	Body        string `json:"body"`
	SenderName  string `json:"senderName,omitempty"`
	AccessToken string `json:"accessToken"`
}

// ListFilter carries pagination values for the history endpoints.
type ListFilter struct {
	Page    int `query:"page"`
	PerPage int `query:"per_page"`
}
