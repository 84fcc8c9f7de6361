package validators

import (
	"fmt"
	"strings"

	"datasentry/domain/dataset"
	"datasentry/domain/quality"
)

func issue(field, text string, kind quality.IssueKind, severity quality.Severity, explanation, recommendation string) quality.Issue {
	return quality.Issue{
		Field:          field,
		Issue:          text,
		Kind:           kind,
		Severity:       severity,
		Explanation:    explanation,
		Recommendation: recommendation,
		Confidence:     1.0,
	}
}

// ValidateCompanyRecord checks a company row. Issues come back in check order
// without a row number; the caller stamps it.
func ValidateCompanyRecord(row *dataset.Row) []quality.Issue {
	var issues []quality.Issue

	nameKey, name := row.Lookup(dataset.CompanyNameAliases...)
	websiteKey, website := row.Lookup(dataset.WebsiteAliases...)
	domainKey, domain := row.Lookup(dataset.DomainAliases...)
	revenueKey, revenue := row.Lookup(dataset.RevenueAliases...)
	countryKey, country := row.Lookup(dataset.CountryAliases...)
	industryKey, industry := row.Lookup(dataset.IndustryAliases...)

	if name == "" {
		issues = append(issues, issue(nameKey, "Missing company name", quality.KindMissingData, quality.SeverityHigh,
			"The company name is mandatory for identification.",
			"Verify official company legal name."))
	}

	if website == "" {
		issues = append(issues, issue(websiteKey, "Missing website", quality.KindMissingData, quality.SeverityHigh,
			"Website is required for domain and legitimacy verification.",
			"Add company website."))
	} else if !ValidateURL(website) {
		issues = append(issues, issue(websiteKey, "Invalid website URL", quality.KindInvalidFormat, quality.SeverityMedium,
			"The website format is incorrect or inaccessible.",
			"Correct URL format (e.g., https://company.com)."))
	}

	if website != "" && domain != "" {
		// an unparseable website was already reported above
		if host, ok := WebsiteHost(website); ok {
			provided := strings.ToLower(domain)
			if host != provided && !strings.HasSuffix(host, "."+provided) {
				issues = append(issues, issue(domainKey, "Domain mismatch", quality.KindSchemaMismatch, quality.SeverityHigh,
					fmt.Sprintf("The domain field (%s) does not match the website host (%s).", provided, host),
					fmt.Sprintf("Update domain to match website: %s", host)))
			}
		}
	}

	if revenue != "" && !ValidateNumeric(revenue, nil, nil) {
		issues = append(issues, issue(revenueKey, "Revenue not numeric", quality.KindInvalidFormat, quality.SeverityMedium,
			"Revenue must be a numeric value for financial analysis.",
			"Remove currency symbols or text."))
	}

	if country == "" {
		issues = append(issues, issue(countryKey, "Missing country", quality.KindMissingData, quality.SeverityMedium,
			"Country data is required for geographical segmentation.",
			"Enter HQ country."))
	}

	if industry == "" {
		issues = append(issues, issue(industryKey, "Missing industry", quality.KindMissingData, quality.SeverityMedium,
			"Industry classification is required for B2B targeting.",
			"Map to standard industry."))
	}

	return issues
}

// ValidatePersonRecord checks a person row
func ValidatePersonRecord(row *dataset.Row) []quality.Issue {
	var issues []quality.Issue

	nameKey, name := row.Lookup(dataset.PersonNameAliases...)
	titleKey, title := row.Lookup(dataset.JobTitleAliases...)
	emailKey, email := row.Lookup(dataset.EmailAliases...)
	phoneKey, phone := row.Lookup(dataset.PhoneAliases...)

	if name == "" {
		issues = append(issues, issue(nameKey, "Missing name", quality.KindMissingData, quality.SeverityHigh,
			"A target contact must have an identifiable name.",
			"Extract name from email or database."))
	}

	if title == "" {
		issues = append(issues, issue(titleKey, "Missing job title", quality.KindMissingData, quality.SeverityHigh,
			"Job title is required for persona mapping.",
			"Assign standard title."))
	}

	if email == "" {
		issues = append(issues, issue(emailKey, "Missing email", quality.KindMissingData, quality.SeverityHigh,
			"Email is the primary communication channel.",
			"Verify contact email."))
	} else if !ValidateEmail(email) {
		issues = append(issues, issue(emailKey, "Invalid email format", quality.KindInvalidFormat, quality.SeverityHigh,
			"Email address does not follow standard RFC formats.",
			"Correct email syntax (e.g., user@domain.com)."))
	}

	if phone != "" && !ValidatePhone(phone) {
		issues = append(issues, issue(phoneKey, "Invalid phone format", quality.KindInvalidFormat, quality.SeverityMedium,
			"Phone number contains invalid characters or length.",
			"Standardize to E.164 format."))
	}

	return issues
}

// ValidateRecord dispatches on the dataset type. Unknown types produce no issues.
func ValidateRecord(t quality.DatasetType, row *dataset.Row) []quality.Issue {
	switch t {
	case quality.TypeCompanies:
		return ValidateCompanyRecord(row)
	case quality.TypePeople:
		return ValidatePersonRecord(row)
	default:
		return nil
	}
}
