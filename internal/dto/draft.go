package dto

// DraftEmailRequest carries the optional context blocks handed to the
// drafting agent. Missing fields are substituted with explicit
// placeholders before prompting, never sent empty.
type DraftEmailRequest struct {
	CompanyBackground string `json:"companyBackground,omitempty"`
	PersonBackground  string `json:"personBackground,omitempty"`
	Qualifications    string `json:"qualifications,omitempty"`
	JobRequirements   string `json:"jobRequirements,omitempty"`
}

// ParseResumeRequest carries raw resume text for loose-schema extraction.
type ParseResumeRequest struct {
	RawText string `json:"rawText"`
}
