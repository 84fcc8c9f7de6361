package validators

import (
	"testing"

	"datasentry/domain/dataset"
	"datasentry/domain/quality"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func row(pairs ...string) *dataset.Row {
	r := dataset.NewRow()
	for i := 0; i+1 < len(pairs); i += 2 {
		r.Set(pairs[i], pairs[i+1])
	}
	return r
}

func TestValidateCompanyRecordComplete(t *testing.T) {
	r := row("company_name", "Acme", "website", "https://www.acme.com", "domain", "acme.com",
		"revenue", "1000000", "country", "US", "industry", "Technology")
	assert.Empty(t, ValidateCompanyRecord(r))
}

func TestValidateCompanyRecordMissingCountryAndIndustry(t *testing.T) {
	r := row("name", "Acme", "website", "https://acme.com", "country", "", "industry", " ")

	issues := ValidateCompanyRecord(r)
	require.Len(t, issues, 2)
	for _, is := range issues {
		assert.Equal(t, quality.KindMissingData, is.Kind)
		assert.Equal(t, quality.SeverityMedium, is.Severity)
		assert.Equal(t, 1.0, is.Confidence)
	}
	assert.Equal(t, "Missing country", issues[0].Issue)
	assert.Equal(t, "Missing industry", issues[1].Issue)
}

func TestValidateCompanyRecordDomainMismatch(t *testing.T) {
	r := row("name", "Acme", "website", "https://shop.acme.com", "domain", "acme.com",
		"country", "US", "industry", "Retail")
	assert.Empty(t, ValidateCompanyRecord(r), "subdomain of the declared domain is accepted")

	r.Set("domain", "acme.org")
	issues := ValidateCompanyRecord(r)
	require.Len(t, issues, 1)
	assert.Equal(t, quality.KindSchemaMismatch, issues[0].Kind)
	assert.Equal(t, quality.SeverityHigh, issues[0].Severity)
	assert.Equal(t, "domain", issues[0].Field)
	assert.Equal(t, "Update domain to match website: shop.acme.com", issues[0].Recommendation)
}

func TestValidateCompanyRecordOrderAndFormats(t *testing.T) {
	r := row("website", "acme.com", "revenue", "$5M")

	issues := ValidateCompanyRecord(r)
	var labels []string
	for _, is := range issues {
		labels = append(labels, is.Issue)
	}
	assert.Equal(t, []string{
		"Missing company name",
		"Invalid website URL",
		"Revenue not numeric",
		"Missing country",
		"Missing industry",
	}, labels)
	assert.Equal(t, "company_name", issues[0].Field)
}

func TestValidatePersonRecord(t *testing.T) {
	ok := row("name", "Jane Doe", "title", "Engineer", "email", "jane@acme.com", "phone", "+1 555 123 4567")
	assert.Empty(t, ValidatePersonRecord(ok))

	bad := row("full_name", "", "email", "jane-at-acme", "mobile", "12")
	issues := ValidatePersonRecord(bad)
	require.Len(t, issues, 4)
	assert.Equal(t, "Missing name", issues[0].Issue)
	assert.Equal(t, "person_name", issues[0].Field)
	assert.Equal(t, "Missing job title", issues[1].Issue)
	assert.Equal(t, "Invalid email format", issues[2].Issue)
	assert.Equal(t, quality.SeverityHigh, issues[2].Severity)
	assert.Equal(t, "Invalid phone format", issues[3].Issue)
	assert.Equal(t, "mobile", issues[3].Field)
	assert.Equal(t, quality.SeverityMedium, issues[3].Severity)
}

func TestValidateRecordUnknownTypeIsSilent(t *testing.T) {
	assert.Nil(t, ValidateRecord(quality.TypeUnknown, row("foo", "")))
}
