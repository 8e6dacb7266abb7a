package entity

// JobInfo is the structured record extracted from a job posting page.
// CompanyDomain is a bare hostname with no scheme or www prefix.
type JobInfo struct {
	JobTitle           string   `json:"jobTitle"`
	CompanyName        string   `json:"companyName"`
	CompanyDomain      string   `json:"companyDomain"`
	CompanyBackground  string   `json:"companyBackground"`
	JobRequirements    string   `json:"jobRequirements"`
	PotentialAdvocates []string `json:"potentialAdvocates"`
}

// DomainHints carries auxiliary signals gathered from the page that help
// disambiguate the company's web domain. Gathered by the extension and
// passed through unmodified.
type DomainHints struct {
	Links           []string          `json:"links,omitempty"`
	Emails          []string          `json:"emails,omitempty"`
	MetaTags        map[string]string `json:"metaTags,omitempty"`
	SocialProfiles  []string          `json:"socialProfiles,omitempty"`
	HostingPlatform string            `json:"hostingPlatform,omitempty"`
}

// Empty reports whether the hints carry no usable signal.
func (h *DomainHints) Empty() bool {
	if h == nil {
		return true
	}
	return len(h.Links) == 0 && len(h.Emails) == 0 && len(h.MetaTags) == 0 &&
		len(h.SocialProfiles) == 0 && h.HostingPlatform == ""
}
