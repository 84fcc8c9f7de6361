package export

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"datasentry/domain/dataset"
	"datasentry/domain/quality"
	"datasentry/internal/errors"

	"github.com/gomarkdown/markdown"
	"github.com/gomarkdown/markdown/html"
	"github.com/gomarkdown/markdown/parser"
)

const (
	reportTitle   = "DATASENTRY AI - DIAGNOSTIC QA REPORT"
	topIssueLimit = 15
	rule          = "================================================================================"
	subRule       = "--------------------------------------------------------------------------------"
)

// Health status labels by score
const (
	HealthHealthy  = "HEALTHY"
	HealthAttend   = "OPTIMIZATION REQUIRED"
	HealthCritical = "CRITICAL ATTENTION NEEDED"
)

var (
	issueKindOrder      = []quality.IssueKind{quality.KindMissingData, quality.KindInvalidFormat, quality.KindSchemaMismatch, quality.KindDuplicates}
	correctionKindOrder = []quality.CorrectionKind{
		quality.CorrectionCleaning, quality.CorrectionFormatting, quality.CorrectionNormalization,
		quality.CorrectionMapping, quality.CorrectionRepair, quality.CorrectionAIPerfection,
	}
)

// KindCount is one line of a breakdown
type KindCount struct {
	Kind  string
	Count int
}

// Report is the fixed-structure diagnostic summary of one analysis
type Report struct {
	GeneratedAt       time.Time
	FileName          string
	TotalRows         int
	Dimensions        int
	Score             int
	IssuesCount       int
	FlaggedRecords    int
	CorrectionsCount  int
	HealthStatus      string
	Breakdown         []KindCount
	TopIssues         []quality.Issue
	MoreIssues        int
	JobMappings       int
	CorrectionsByKind []KindCount
	Profiles          []quality.ColumnProfile
	Recommendations   []string
}

// HealthStatus labels a score
func HealthStatus(score int) string {
	switch {
	case score >= 80:
		return HealthHealthy
	case score >= 60:
		return HealthAttend
	default:
		return HealthCritical
	}
}

// BuildReport projects a stored result into a report. A nil result is an
// ANALYSIS_NOT_FOUND error.
func BuildReport(ds *dataset.Dataset, result *quality.AnalysisResult, generatedAt time.Time) (*Report, error) {
	if result == nil {
		id := ""
		if ds != nil {
			id = ds.ID.String()
		}
		return nil, errors.AnalysisNotFound(id)
	}

	r := &Report{
		GeneratedAt:      generatedAt,
		FileName:         result.FileName,
		TotalRows:        result.TotalRecords,
		Dimensions:       result.TotalColumns,
		Score:            result.QualityScore,
		IssuesCount:      result.IssuesCount,
		FlaggedRecords:   result.FlaggedRecords,
		CorrectionsCount: result.TotalCorrections,
		HealthStatus:     HealthStatus(result.QualityScore),
		JobMappings:      result.JobMappings,
		Profiles:         result.ColumnProfiles,
	}
	if ds != nil {
		r.FileName = ds.OriginalName
		r.TotalRows = ds.RowCount
		r.Dimensions = len(ds.Headers)
	}
	if r.CorrectionsCount < len(result.Corrections) {
		r.CorrectionsCount = len(result.Corrections)
	}

	r.Breakdown = issueBreakdown(result.IssuesByKind)

	r.TopIssues = result.Issues
	if len(r.TopIssues) > topIssueLimit {
		r.TopIssues = r.TopIssues[:topIssueLimit]
	}
	total := result.TotalIssues
	if total < len(result.Issues) {
		total = len(result.Issues)
	}
	if total > topIssueLimit {
		r.MoreIssues = total - topIssueLimit
	}

	byKind := make(map[quality.CorrectionKind]int)
	for _, c := range result.Corrections {
		byKind[c.Kind]++
	}
	for _, k := range correctionKindOrder {
		if n := byKind[k]; n > 0 {
			r.CorrectionsByKind = append(r.CorrectionsByKind, KindCount{Kind: string(k), Count: n})
		}
	}

	review := result.IssuesCount
	if review > 10 {
		review = 10
	}
	r.Recommendations = []string{
		fmt.Sprintf("Review the Top %d high-confidence issues immediately.", review),
		`Export the "AI-Perfected" dataset to apply structural fixes.`,
	}
	if result.QualityScore < 80 {
		r.Recommendations = append(r.Recommendations, "Implement mandatory field validation for lower-confidence columns.")
	} else {
		r.Recommendations = append(r.Recommendations, "Data integrity is within acceptable thresholds for production use.")
	}
	return r, nil
}

// issueBreakdown lists the taxonomy kinds first, then any others by name
func issueBreakdown(byKind map[quality.IssueKind]int) []KindCount {
	var out []KindCount
	known := make(map[quality.IssueKind]bool, len(issueKindOrder))
	for _, k := range issueKindOrder {
		known[k] = true
		if n := byKind[k]; n > 0 {
			out = append(out, KindCount{Kind: string(k), Count: n})
		}
	}
	var extra []KindCount
	for k, n := range byKind {
		if !known[k] && n > 0 {
			extra = append(extra, KindCount{Kind: string(k), Count: n})
		}
	}
	sort.Slice(extra, func(i, j int) bool { return extra[i].Kind < extra[j].Kind })
	return append(out, extra...)
}

// Filename is QA_Report_<name up to the first dot>.<ext>
func (r *Report) Filename(ext string) string {
	base := r.FileName
	if i := strings.Index(base, "."); i >= 0 {
		base = base[:i]
	}
	if base == "" {
		base = "dataset"
	}
	return fmt.Sprintf("QA_Report_%s.%s", base, ext)
}

func issueLine(is quality.Issue) string {
	return fmt.Sprintf("- Row %d: %s -> %s (Confidence: %.0f%%)", is.Row, is.Field, is.Issue, is.Confidence*100)
}

func centered(s string) string {
	pad := (len(rule) - len(s)) / 2
	if pad < 0 {
		pad = 0
	}
	return strings.Repeat(" ", pad) + s
}

// Text renders the plain-text report
func (r *Report) Text() string {
	var b strings.Builder
	section := func(title string) {
		fmt.Fprintf(&b, "\n%s\n%s\n%s\n", subRule, title, subRule)
	}

	fmt.Fprintf(&b, "%s\n%s\n%s\n", rule, centered(reportTitle), rule)
	fmt.Fprintf(&b, "Report Date: %s\n", r.GeneratedAt.Format("2006-01-02 15:04:05"))
	fmt.Fprintf(&b, "Filename:    %s\n", r.FileName)
	fmt.Fprintf(&b, "Total Rows:  %d\n", r.TotalRows)
	fmt.Fprintf(&b, "Dimensions:  %d\n", r.Dimensions)

	section("1. EXECUTIVE SUMMARY")
	fmt.Fprintf(&b, "QUALITY INTEGRITY SCORE: %d%%\n", r.Score)
	fmt.Fprintf(&b, "TOTAL ISSUES IDENTIFIED: %d\n", r.IssuesCount)
	fmt.Fprintf(&b, "RECORDS REQUIRING FIXES: %d\n", r.FlaggedRecords)
	fmt.Fprintf(&b, "NEURAL CORRECTIONS APPLIED: %d\n", r.CorrectionsCount)
	fmt.Fprintf(&b, "\nHEALTH STATUS: %s\n", r.HealthStatus)

	section("2. DATA VULNERABILITY BREAKDOWN (BY TYPE)")
	if len(r.Breakdown) == 0 {
		b.WriteString("No critical structural issues identified.\n")
	}
	for _, kc := range r.Breakdown {
		fmt.Fprintf(&b, "- %s: %d\n", kc.Kind, kc.Count)
	}

	section("3. TOP STRUCTURAL ISSUES")
	if len(r.TopIssues) == 0 {
		b.WriteString("No critical structural issues identified.\n")
	}
	for _, is := range r.TopIssues {
		b.WriteString(issueLine(is) + "\n")
	}
	if r.MoreIssues > 0 {
		fmt.Fprintf(&b, "... and %d more issues.\n", r.MoreIssues)
	}

	section("4. AI TRANSFORMATION SUMMARY")
	fmt.Fprintf(&b, "- Job Functions Mapped: %d\n", r.JobMappings)
	for _, kc := range r.CorrectionsByKind {
		fmt.Fprintf(&b, "- Corrections (%s): %d\n", kc.Kind, kc.Count)
	}

	if len(r.Profiles) > 0 {
		section("5. COLUMN PROFILES")
		for _, p := range r.Profiles {
			fmt.Fprintf(&b, "- %s [%s]: fill %.0f%%, %d distinct, %d invalid, confidence %.2f\n",
				p.Name, p.InferredType, p.FillRate*100, p.DistinctCount, p.InvalidCount, p.MeanConfidence)
		}
	}

	section(fmt.Sprintf("%d. STRATEGIC RECOMMENDATIONS", r.recommendationSection()))
	for i, rec := range r.Recommendations {
		fmt.Fprintf(&b, "%d. %s\n", i+1, rec)
	}

	fmt.Fprintf(&b, "\n%s\n%s\n%s\n", rule, centered("END OF DIAGNOSTIC REPORT - GENERATED BY AI"), rule)
	return b.String()
}

func (r *Report) recommendationSection() int {
	if len(r.Profiles) > 0 {
		return 6
	}
	return 5
}

// Markdown renders the report as markdown
func (r *Report) Markdown() string {
	var b strings.Builder

	fmt.Fprintf(&b, "# %s\n\n", reportTitle)
	fmt.Fprintf(&b, "- **Report Date:** %s\n", r.GeneratedAt.Format("2006-01-02 15:04:05"))
	fmt.Fprintf(&b, "- **Filename:** %s\n", r.FileName)
	fmt.Fprintf(&b, "- **Total Rows:** %d\n", r.TotalRows)
	fmt.Fprintf(&b, "- **Dimensions:** %d\n\n", r.Dimensions)

	b.WriteString("## Executive Summary\n\n")
	b.WriteString("| Metric | Value |\n|---|---|\n")
	fmt.Fprintf(&b, "| Quality integrity score | %d%% |\n", r.Score)
	fmt.Fprintf(&b, "| Total issues identified | %d |\n", r.IssuesCount)
	fmt.Fprintf(&b, "| Records requiring fixes | %d |\n", r.FlaggedRecords)
	fmt.Fprintf(&b, "| Corrections proposed | %d |\n", r.CorrectionsCount)
	fmt.Fprintf(&b, "| Health status | **%s** |\n\n", r.HealthStatus)

	b.WriteString("## Issue Breakdown\n\n")
	if len(r.Breakdown) == 0 {
		b.WriteString("No critical structural issues identified.\n")
	}
	for _, kc := range r.Breakdown {
		fmt.Fprintf(&b, "- %s: %d\n", kc.Kind, kc.Count)
	}

	b.WriteString("\n## Top Structural Issues\n\n")
	if len(r.TopIssues) == 0 {
		b.WriteString("No critical structural issues identified.\n")
	}
	for _, is := range r.TopIssues {
		fmt.Fprintf(&b, "- Row %d: `%s` -> %s (Confidence: %.0f%%)\n", is.Row, is.Field, is.Issue, is.Confidence*100)
	}
	if r.MoreIssues > 0 {
		fmt.Fprintf(&b, "\n*... and %d more issues.*\n", r.MoreIssues)
	}

	b.WriteString("\n## AI Transformation Summary\n\n")
	fmt.Fprintf(&b, "- Job functions mapped: %d\n", r.JobMappings)
	for _, kc := range r.CorrectionsByKind {
		fmt.Fprintf(&b, "- Corrections (%s): %d\n", kc.Kind, kc.Count)
	}

	if len(r.Profiles) > 0 {
		b.WriteString("\n## Column Profiles\n\n")
		b.WriteString("| Column | Type | Fill | Distinct | Invalid | Mean length | Confidence |\n|---|---|---|---|---|---|---|\n")
		for _, p := range r.Profiles {
			fmt.Fprintf(&b, "| %s | %s | %.0f%% | %d | %d | %.2f | %.2f |\n",
				p.Name, p.InferredType, p.FillRate*100, p.DistinctCount, p.InvalidCount, p.MeanLength, p.MeanConfidence)
		}
	}

	b.WriteString("\n## Strategic Recommendations\n\n")
	for i, rec := range r.Recommendations {
		fmt.Fprintf(&b, "%d. %s\n", i+1, rec)
	}
	return b.String()
}

// HTML renders the markdown report to an HTML fragment
func (r *Report) HTML() string {
	p := parser.NewWithExtensions(parser.CommonExtensions)
	renderer := html.NewRenderer(html.RendererOptions{Flags: html.CommonFlags})
	return string(markdown.ToHTML([]byte(r.Markdown()), p, renderer))
}

// ReportFormat is a report rendering
type ReportFormat string

const (
	ReportText     ReportFormat = "text"
	ReportMarkdown ReportFormat = "markdown"
	ReportHTML     ReportFormat = "html"
)

// ParseReportFormat validates a report format name. An empty name is text.
func ParseReportFormat(s string) (ReportFormat, error) {
	switch f := ReportFormat(strings.ToLower(strings.TrimSpace(s))); f {
	case "":
		return ReportText, nil
	case ReportText, ReportMarkdown, ReportHTML:
		return f, nil
	case "md":
		return ReportMarkdown, nil
	default:
		return "", errors.UnsupportedFormat(s)
	}
}

// Render renders the report in the given format and returns the content,
// its MIME type and a suggested file name
func (r *Report) Render(format ReportFormat) (content, contentType, filename string) {
	switch format {
	case ReportMarkdown:
		return r.Markdown(), "text/markdown; charset=utf-8", r.Filename("md")
	case ReportHTML:
		return r.HTML(), "text/html; charset=utf-8", r.Filename("html")
	default:
		return r.Text(), "text/plain; charset=utf-8", r.Filename("txt")
	}
}
