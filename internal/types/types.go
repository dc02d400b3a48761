// Package types defines every cross-package data structure used by the repopack CLI.
package types

const (
	StylePlain = "plain"
	StyleXML   = "xml"
)

// SanitizedFile is one included file after sanitization. Content is never empty.
type SanitizedFile struct {
	Path    string `json:"path" xml:"path,attr"`
	Content string `json:"content" xml:",chardata"`
}

// PackResult summarizes one packing run for the reporting layer.
type PackResult struct {
	TotalFiles      int
	TotalCharacters int
	FileCharCounts  map[string]int
	// TotalTokens and FileTokenCounts are populated only when token counting is enabled.
	TotalTokens     int
	FileTokenCounts map[string]int
	OutputPath      string
	OutputBytes     int64
}

// FileCount pairs a path with a measured quantity such as characters or tokens.
type FileCount struct {
	Path  string
	Count int
}
