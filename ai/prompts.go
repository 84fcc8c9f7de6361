package ai

import (
	"fmt"
	"strings"
)

// JobFunctionPrompt asks for {"function","confidence","reason"}
func JobFunctionPrompt(title string) string {
	return fmt.Sprintf(`Map this job title to a standard function (Sales, Engineering, Marketing, Finance, HR, Operations, Legal, Executive, Product). Return JSON: {"function": "Function Name", "confidence": 0.8, "reason": "reason"}. Input: %q`, title)
}

// IndustryPrompt asks for {"normalized"}
func IndustryPrompt(industry string) string {
	return fmt.Sprintf(`Normalize this industry name to a standard SIC/NAICS category. Return JSON: {"normalized": "Industry Name"}. Input: %q`, industry)
}

// InsightsPrompt asks for a business reading of a quality report
func InsightsPrompt(req InsightRequest) string {
	var b strings.Builder
	b.WriteString("You are a business intelligence expert. Analyze this data quality report and provide business insights.\n\n")
	fmt.Fprintf(&b, "Dataset: %s\n", req.FileName)
	fmt.Fprintf(&b, "Quality Score: %d%%\n", req.QualityScore)
	fmt.Fprintf(&b, "Total Issues: %d\n", req.IssuesCount)
	fmt.Fprintf(&b, "Duplicate Records: %d\n", req.Duplicates)
	fmt.Fprintf(&b, "Data Fields: %s\n\n", strings.Join(req.Headers, ", "))
	b.WriteString("Return JSON with:\n")
	b.WriteString("- businessImpact: description of impact\n")
	b.WriteString("- recommendations: prioritized action items (array)\n")
	b.WriteString("- riskLevel: low/medium/high\n")
	b.WriteString("- roi: expected return on investment")
	return b.String()
}
