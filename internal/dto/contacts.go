package dto

// FindEmployeesRequest asks for advocate contacts at the given company.
type FindEmployeesRequest struct {
	Domain             string   `json:"domain"`
	JobTitle           string   `json:"jobTitle"`
	PotentialAdvocates []string `json:"potentialAdvocates,omitempty"`
}

// ResolveDomainRequest asks the provider for the most likely company domain.
type ResolveDomainRequest struct {
	CompanyNames []string `json:"companyNames"`
}

// ResolveDomainResponse carries the resolved domain.
type ResolveDomainResponse struct {
	Domain string `json:"domain"`
}
