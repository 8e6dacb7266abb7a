package entity

// Contact is an employee at the target company with a verified email
// address. Email is always non-empty for any contact surfaced to callers;
// prospects whose email could not be resolved are dropped upstream.
type Contact struct {
	FirstName  string `json:"firstName"`
	LastName   string `json:"lastName"`
	Position   string `json:"position"`
	Email      string `json:"email"`
	Phone      string `json:"phone,omitempty"`
	SourcePage string `json:"sourcePage,omitempty"`
}

// EmailDraft is a subject/body pair produced by the drafting agent.
// The body is salutation-agnostic; callers append greeting and signature.
type EmailDraft struct {
	Subject string `json:"subject"`
	Body    string `json:"body"`
}
