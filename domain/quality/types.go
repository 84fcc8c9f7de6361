package quality

import (
	"time"

	"datasentry/domain/core"
)

// Severity of an issue
type Severity string

const (
	SeverityHigh   Severity = "high"
	SeverityMedium Severity = "medium"
	SeverityLow    Severity = "low"
)

// IssueKind is the issue taxonomy label
type IssueKind string

const (
	KindMissingData    IssueKind = "Missing Data"
	KindInvalidFormat  IssueKind = "Invalid Format"
	KindSchemaMismatch IssueKind = "Schema Mismatch"
	KindDuplicates     IssueKind = "Duplicates"
)

// CorrectionKind labels a proposed fix
type CorrectionKind string

const (
	CorrectionCleaning      CorrectionKind = "cleaning"
	CorrectionFormatting    CorrectionKind = "formatting"
	CorrectionNormalization CorrectionKind = "normalization"
	CorrectionMapping       CorrectionKind = "mapping"
	CorrectionRepair        CorrectionKind = "repair"
	CorrectionAIPerfection  CorrectionKind = "ai_perfection"
)

// DatasetType is the detected record shape
type DatasetType string

const (
	TypeAuto      DatasetType = "auto"
	TypeCompanies DatasetType = "companies"
	TypePeople    DatasetType = "people"
	TypeUnknown   DatasetType = "unknown"
)

// ParseDatasetType maps a caller hint to a DatasetType. Anything unrecognized is auto.
func ParseDatasetType(s string) DatasetType {
	switch DatasetType(s) {
	case TypeCompanies, TypePeople:
		return DatasetType(s)
	default:
		return TypeAuto
	}
}

// Pipeline limits
const (
	MaxIssues        = 1000
	MaxCorrections   = 10000
	AIEnrichmentRows = 10
)

// Issue is one detected defect
type Issue struct {
	Row            int       `json:"row"`
	Field          string    `json:"field"`
	Issue          string    `json:"issue"`
	Kind           IssueKind `json:"type"`
	Severity       Severity  `json:"severity"`
	Explanation    string    `json:"explanation"`
	Recommendation string    `json:"recommendation"`
	Confidence     float64   `json:"confidence"`
}

// Correction is one proposed fix
type Correction struct {
	Row            int            `json:"row"`
	Field          string         `json:"field"`
	Original       string         `json:"original"`
	Suggestion     string         `json:"suggestion"`
	Confidence     float64        `json:"confidence"`
	Kind           CorrectionKind `json:"type"`
	Explanation    string         `json:"explanation"`
	Recommendation string         `json:"recommendation,omitempty"`
}

// DuplicateGroup is a set of rows sharing an identity key
type DuplicateGroup struct {
	Key   string `json:"key"`
	Rows  []int  `json:"rows"`
	Count int    `json:"count"`
}

// JobMapping is the resolution of a job title to a job function
type JobMapping struct {
	Function   string  `json:"function"`
	Confidence float64 `json:"confidence"`
	Source     string  `json:"source"`
	Reason     string  `json:"reason,omitempty"`
}

// Job mapping sources and sentinel functions
const (
	SourceGroundTruth = "ground_truth"
	SourceAI          = "ai_ollama"
	SourceFailed      = "failed"
	SourceNone        = "none"

	FunctionUnknown  = "Unknown"
	FunctionUnmapped = "Unmapped"
)

// Resolved reports whether the mapping produced a usable function
func (m JobMapping) Resolved() bool {
	return m.Function != "" && m.Function != FunctionUnknown && m.Function != FunctionUnmapped
}

// ColumnProfile summarizes one column. Profiles are informational and do not
// contribute to the score.
type ColumnProfile struct {
	Name             string  `json:"name"`
	InferredType     string  `json:"inferred_type"`
	FillRate         float64 `json:"fill_rate"`
	DistinctCount    int     `json:"distinct_count"`
	InvalidCount     int     `json:"invalid_count"`
	PlaceholderCount int     `json:"placeholder_count"`
	TooLongCount     int     `json:"too_long_count"`
	SuspiciousCount  int     `json:"suspicious_count"`
	MeanLength       float64 `json:"mean_length"`
	MedianLength     float64 `json:"median_length"`
	P90Length        float64 `json:"p90_length"`
	MeanConfidence   float64 `json:"mean_confidence"`
}

// AnalysisResult is the aggregate output for one dataset
type AnalysisResult struct {
	DatasetID        core.ID           `json:"fileId"`
	FileName         string            `json:"fileName"`
	DatasetType      DatasetType       `json:"datasetType"`
	QualityScore     int               `json:"qualityScore"`
	TotalRecords     int               `json:"totalRecords"`
	TotalColumns     int               `json:"totalColumns"`
	IssuesCount      int               `json:"issuesCount"`
	IssuesByKind     map[IssueKind]int `json:"issuesByType"`
	MissingFields    int               `json:"missingFields"`
	InvalidFields    int               `json:"invalidFields"`
	Duplicates       int               `json:"duplicates"`
	DuplicateGroups  []DuplicateGroup  `json:"duplicateGroups"`
	FlaggedRecords   int               `json:"flaggedRecords"`
	Issues           []Issue           `json:"issues"`
	Corrections      []Correction      `json:"corrections"`
	TotalIssues      int               `json:"totalIssues"`
	TotalCorrections int               `json:"totalCorrections"`
	JobMappings      int               `json:"jobMappings"`
	ColumnProfiles   []ColumnProfile   `json:"columnProfiles,omitempty"`
	UploadedAt       time.Time         `json:"uploadedAt"`
	AnalyzedAt       time.Time         `json:"analyzedAt"`
}

// Summary is the denormalized listing view of a stored result
type Summary struct {
	DatasetID     core.ID   `json:"fileId" db:"dataset_id"`
	FileName      string    `json:"fileName" db:"file_name"`
	QualityScore  int       `json:"qualityScore" db:"quality_score"`
	TotalRecords  int       `json:"totalRecords" db:"total_records"`
	IssuesCount   int       `json:"issuesCount" db:"issues_count"`
	MissingFields int       `json:"missingFields" db:"missing_fields"`
	InvalidFields int       `json:"invalidFields" db:"invalid_fields"`
	UploadedAt    time.Time `json:"uploadedAt" db:"uploaded_at"`
	AnalyzedAt    time.Time `json:"analyzedAt" db:"analyzed_at"`
}

// Summary projects the listing view
func (r *AnalysisResult) Summary() Summary {
	return Summary{
		DatasetID:     r.DatasetID,
		FileName:      r.FileName,
		QualityScore:  r.QualityScore,
		TotalRecords:  r.TotalRecords,
		IssuesCount:   r.IssuesCount,
		MissingFields: r.MissingFields,
		InvalidFields: r.InvalidFields,
		UploadedAt:    r.UploadedAt,
		AnalyzedAt:    r.AnalyzedAt,
	}
}
