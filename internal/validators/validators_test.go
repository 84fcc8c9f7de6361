package validators

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidateEmail(t *testing.T) {
	assert.True(t, ValidateEmail("a@b.com"))
	assert.True(t, ValidateEmail("first.last+tag@sub.example.co"))
	assert.False(t, ValidateEmail("not-an-email"))
	assert.False(t, ValidateEmail("a@b"))
	assert.False(t, ValidateEmail("a b@c.com"))
	assert.False(t, ValidateEmail(""))
}

func TestValidatePhone(t *testing.T) {
	tests := []struct {
		in   string
		want bool
	}{
		{"+1 (555) 123-4567", true},
		{"555.123.4567", true},
		{"+44 20 7946 0958", true},
		{"12345", false},
		{"0123456789", false},
		{"phone", false},
		{"+1234567890123456789", false},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, ValidatePhone(tt.in), "phone %q", tt.in)
	}
}

func TestValidateDate(t *testing.T) {
	assert.True(t, ValidateDate("2024-03-15"))
	assert.True(t, ValidateDate("03/15/2024"))
	assert.True(t, ValidateDate("2024-03-15T10:00:00Z"))
	assert.True(t, ValidateDate("March 5, 2021"))
	assert.False(t, ValidateDate("1850-01-01"))
	assert.False(t, ValidateDate("2100-01-01"))
	assert.False(t, ValidateDate("yesterday"))
	assert.False(t, ValidateDate(""))
}

func TestValidateURL(t *testing.T) {
	assert.True(t, ValidateURL("https://acme.com"))
	assert.True(t, ValidateURL("http://www.acme.com/about?x=1"))
	assert.False(t, ValidateURL("acme.com"))
	assert.False(t, ValidateURL("https://"))
	assert.False(t, ValidateURL("not a url"))
}

func TestValidatePostalCode(t *testing.T) {
	assert.True(t, ValidatePostalCode("94105", "US"))
	assert.True(t, ValidatePostalCode("94105-1234", "us"))
	assert.True(t, ValidatePostalCode("K1A 0B1", "CA"))
	assert.True(t, ValidatePostalCode("SW1A 1AA", "UK"))
	assert.False(t, ValidatePostalCode("SW1A 1AA", "US"))
	assert.True(t, ValidatePostalCode("12345", "FR"))
}

func TestValidateName(t *testing.T) {
	assert.True(t, ValidateName("Jane O'Neil-Smith"))
	assert.True(t, ValidateName("Dr. Who"))
	assert.False(t, ValidateName("J"))
	assert.False(t, ValidateName("R2D2"))
}

func TestValidateNumeric(t *testing.T) {
	assert.True(t, ValidateNumeric("12000", nil, nil))
	assert.True(t, ValidateNumeric(" -3.5 ", nil, nil))
	// separators and currency symbols must be cleaned first
	assert.False(t, ValidateNumeric("12,000", nil, nil))
	assert.False(t, ValidateNumeric("$5M", nil, nil))
	assert.False(t, ValidateNumeric("5", Bound(10), nil))
	assert.False(t, ValidateNumeric("50", nil, Bound(10)))
	assert.True(t, ValidateNumeric("10", Bound(10), Bound(10)))
}

func TestWebsiteHost(t *testing.T) {
	host, ok := WebsiteHost("https://WWW.Acme.com/path")
	assert.True(t, ok)
	assert.Equal(t, "acme.com", host)

	_, ok = WebsiteHost("acme.com")
	assert.False(t, ok)
}

func TestDetectFieldType(t *testing.T) {
	assert.Equal(t, FieldEmail, DetectFieldType("work_email"))
	assert.Equal(t, FieldPhone, DetectFieldType("mobile"))
	assert.Equal(t, FieldDate, DetectFieldType("created_at"))
	assert.Equal(t, FieldURL, DetectFieldType("domain"))
	assert.Equal(t, FieldNumeric, DetectFieldType("annual_revenue"))
	assert.Equal(t, FieldCountry, DetectFieldType("Country"))
	assert.Equal(t, FieldJobTitle, DetectFieldType("job_title"))
	assert.Equal(t, FieldName, DetectFieldType("First_Name"))
	assert.Equal(t, FieldName, DetectFieldType("contact_name"))
	assert.Equal(t, FieldText, DetectFieldType("company_name"))
	assert.Equal(t, FieldText, DetectFieldType("name"))
	assert.Equal(t, FieldText, DetectFieldType("notes"))
}

func TestDetectValueIssues(t *testing.T) {
	assert.Equal(t, []string{ValueMissing}, DetectValueIssues("  ", FieldText))
	assert.Equal(t, []string{ValuePlaceholder}, DetectValueIssues("TBD", FieldText))
	// the slash in N/A is also a suspicious character
	assert.Equal(t, []string{ValuePlaceholder, ValueSuspicious}, DetectValueIssues("N/A", FieldText))
	assert.Equal(t, []string{ValueSuspicious}, DetectValueIssues("<script>", FieldText))
	assert.Equal(t, []string{ValueInvalidFormat}, DetectValueIssues("nope", FieldEmail))
	assert.Empty(t, DetectValueIssues("a@b.com", FieldEmail))
	assert.Equal(t, []string{ValueInvalidFormat}, DetectValueIssues("R2D2", FieldName))
	assert.Empty(t, DetectValueIssues("Jane Doe", FieldName))
}

func TestConfidenceScore(t *testing.T) {
	assert.Equal(t, 0.0, ConfidenceScore("", FieldEmail))
	assert.Equal(t, 1.0, ConfidenceScore("a@b.com", FieldEmail))
	assert.Equal(t, 0.5, ConfidenceScore("nope", FieldEmail))
	assert.InDelta(t, 0.2, ConfidenceScore("tbd", FieldEmail), 1e-9)
}
