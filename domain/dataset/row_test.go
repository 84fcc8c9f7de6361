package dataset

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRowPreservesOrder(t *testing.T) {
	row := NewRowFromValues([]string{"name", "email", "phone"}, []string{"Jane", "jane@x.com"})

	assert.Equal(t, []string{"name", "email", "phone"}, row.Keys())
	v, ok := row.Get("phone")
	assert.True(t, ok)
	assert.Equal(t, "", v)

	row.Set("job_function", "Engineering")
	row.Set("name", "Janet")
	assert.Equal(t, []string{"name", "email", "phone", "job_function"}, row.Keys())
	assert.Equal(t, "Janet", row.Value("name"))
}

func TestRowJSONRoundTripKeepsOrder(t *testing.T) {
	row := NewRowFromValues([]string{"zeta", "alpha"}, []string{"1", " two "})

	raw, err := json.Marshal(row)
	require.NoError(t, err)
	assert.JSONEq(t, `{"zeta":"1","alpha":" two "}`, string(raw))
	assert.Equal(t, `{"zeta":"1","alpha":" two "}`, string(raw))

	var decoded Row
	require.NoError(t, json.Unmarshal([]byte(`{"b":"x","a":null,"c":12}`), &decoded))
	assert.Equal(t, []string{"b", "c"}, decoded.Keys())
	assert.Equal(t, "12", decoded.Value("c"))
	assert.False(t, decoded.Has("a"))
}

func TestRowLookupUsesAliasPriority(t *testing.T) {
	row := NewRowFromValues([]string{"name", "company_name"}, []string{"Acme Ltd", "  "})

	key, value := row.Lookup(CompanyNameAliases...)
	assert.Equal(t, "name", key)
	assert.Equal(t, "Acme Ltd", value)

	key, value = row.Lookup("Annual Revenue", "revenue")
	assert.Equal(t, "annual_revenue", key)
	assert.Equal(t, "", value)
}

func TestRowCloneIsIndependent(t *testing.T) {
	row := NewRowFromValues([]string{"a"}, []string{"1"})
	c := row.Clone()
	c.Set("a", "2")
	c.Set("b", "3")

	assert.Equal(t, "1", row.Value("a"))
	assert.False(t, row.Has("b"))
}

func TestRowIsBlank(t *testing.T) {
	assert.True(t, NewRowFromValues([]string{"a", "b"}, []string{" ", ""}).IsBlank())
	assert.False(t, NewRowFromValues([]string{"a", "b"}, []string{" ", "x"}).IsBlank())
}

func TestNormalizeHeaders(t *testing.T) {
	assert.Equal(t, "job_title", NormalizeHeader("  Job Title "))
	assert.Equal(t, "e_mail_address", NormalizeHeader("E-Mail  Address"))
	assert.Equal(t, "revenue_usd_", NormalizeHeader("Revenue (USD)"))

	got := NormalizeHeaders([]string{"Email", "email", "", "Name"})
	assert.Equal(t, []string{"email", "email_2", "column_3", "name"}, got)

	// a generated suffix never reuses a header that is already taken
	got = NormalizeHeaders([]string{"Email", "email", "email_2"})
	assert.Equal(t, []string{"email", "email_2", "email_2_2"}, got)
	got = NormalizeHeaders([]string{"a_2", "a", "A"})
	assert.Equal(t, []string{"a_2", "a", "a_3"}, got)

	row := NewRowFromValues(got, []string{"x", "y", "z"})
	assert.Equal(t, 3, row.Len())
	assert.Equal(t, "z", row.Value("a_3"))
}

func TestRowDelete(t *testing.T) {
	row := NewRowFromValues([]string{"name", "job_function", "email"}, []string{"Jane", "Engineering", "j@x.com"})

	row.Delete("job_function")
	assert.False(t, row.Has("job_function"))
	assert.Equal(t, []string{"name", "email"}, row.Keys())

	row.Delete("missing")
	assert.Equal(t, 2, row.Len())

	row.Set("job_function", "HR")
	assert.Equal(t, []string{"name", "email", "job_function"}, row.Keys())
}
