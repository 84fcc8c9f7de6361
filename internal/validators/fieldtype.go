package validators

import (
	"regexp"
	"strings"
)

// FieldType is the inferred semantic type of a column
type FieldType string

const (
	FieldEmail    FieldType = "email"
	FieldPhone    FieldType = "phone"
	FieldDate     FieldType = "date"
	FieldURL      FieldType = "url"
	FieldNumeric  FieldType = "numeric"
	FieldCountry  FieldType = "country"
	FieldJobTitle FieldType = "job_title"
	FieldName     FieldType = "name"
	FieldText     FieldType = "text"
)

// Value issue labels
const (
	ValueMissing       = "missing"
	ValuePlaceholder   = "placeholder"
	ValueTooLong       = "too_long"
	ValueSuspicious    = "suspicious_characters"
	ValueInvalidFormat = "invalid_format"
)

const maxValueLength = 255

var (
	suspiciousPattern = regexp.MustCompile(`[<>{}\[\]\\/|]`)

	placeholders = map[string]bool{
		"n/a": true, "null": true, "undefined": true, "tbd": true, "tba": true,
		"xxx": true, "---": true, "na": true, "none": true, "empty": true,
	}

	fieldTypeKeywords = []struct {
		fieldType FieldType
		keywords  []string
	}{
		{FieldEmail, []string{"email", "mail"}},
		{FieldPhone, []string{"phone", "tel", "mobile"}},
		{FieldDate, []string{"date", "time", "created", "updated"}},
		{FieldURL, []string{"url", "website", "link", "domain"}},
		{FieldNumeric, []string{"revenue", "price", "amount", "salary", "cost", "quantity", "size"}},
		{FieldCountry, []string{"country", "nation"}},
		{FieldJobTitle, []string{"title", "role"}},
		{FieldName, []string{"first_name", "last_name", "full_name", "contact_name"}},
	}
)

// DetectFieldType infers a column type from its header name
func DetectFieldType(header string) FieldType {
	h := strings.ToLower(header)
	for _, entry := range fieldTypeKeywords {
		for _, kw := range entry.keywords {
			if strings.Contains(h, kw) {
				return entry.fieldType
			}
		}
	}
	return FieldText
}

// IsPlaceholder reports whether a value is a known filler token
func IsPlaceholder(value string) bool {
	return placeholders[strings.ToLower(strings.TrimSpace(value))]
}

// DetectValueIssues lists generic and type-specific problems with a single value.
// An empty value yields only "missing".
func DetectValueIssues(value string, fieldType FieldType) []string {
	v := strings.TrimSpace(value)
	if v == "" {
		return []string{ValueMissing}
	}

	var issues []string
	if IsPlaceholder(v) {
		issues = append(issues, ValuePlaceholder)
	}
	if len([]rune(v)) > maxValueLength {
		issues = append(issues, ValueTooLong)
	}
	if suspiciousPattern.MatchString(v) {
		issues = append(issues, ValueSuspicious)
	}
	if !ValidateByType(fieldType, v) {
		issues = append(issues, ValueInvalidFormat)
	}
	return issues
}

// ValidateByType runs the predicate for a field type. Types without a predicate pass.
func ValidateByType(fieldType FieldType, value string) bool {
	switch fieldType {
	case FieldEmail:
		return ValidateEmail(value)
	case FieldPhone:
		return ValidatePhone(value)
	case FieldDate:
		return ValidateDate(value)
	case FieldURL:
		return ValidateURL(value)
	case FieldNumeric:
		return ValidateNumeric(value, nil, nil)
	case FieldName:
		return ValidateName(value)
	default:
		return true
	}
}

// ConfidenceScore rates how trustworthy a value looks for its type, in [0,1]
func ConfidenceScore(value string, fieldType FieldType) float64 {
	issues := DetectValueIssues(value, fieldType)
	score := 1.0
	for _, is := range issues {
		switch is {
		case ValueMissing:
			return 0
		case ValueInvalidFormat:
			score -= 0.5
		case ValuePlaceholder:
			score -= 0.3
		default:
			score -= 0.1
		}
	}
	if score < 0 {
		return 0
	}
	return score
}
