package excel

// FileType identifies a supported tabular format
type FileType string

const (
	FileTypeCSV  FileType = "csv"
	FileTypeXLSX FileType = "xlsx"
)

// RawTable is a header row plus data records exactly as read, untrimmed.
// Records may be ragged.
type RawTable struct {
	Headers []string
	Records [][]string
}
