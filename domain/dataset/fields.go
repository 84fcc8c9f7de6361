package dataset

// Alias lists for logical fields, highest priority first
var (
	CompanyNameAliases = []string{"company_name", "name", "company"}
	WebsiteAliases     = []string{"website", "url"}
	DomainAliases      = []string{"domain"}
	RevenueAliases     = []string{"revenue", "annual_revenue"}
	CountryAliases     = []string{"country", "location", "hq"}
	IndustryAliases    = []string{"industry", "sector"}

	PersonNameAliases = []string{"person_name", "name", "full_name", "person"}
	JobTitleAliases   = []string{"job_title", "title", "role", "position"}
	EmailAliases      = []string{"email", "mail", "email_address"}
	PhoneAliases      = []string{"phone", "mobile", "cell"}
)
