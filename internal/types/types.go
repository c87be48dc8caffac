// Package types defines every cross‑package data structure used by the fpr CLI.
package types

import "encoding/xml"

const (
	NodeTypeFile   = "file"
	NodeTypeBinary = "binary"

	FormatRaw  = "raw"
	FormatJSON = "json"
	FormatXML  = "xml"
)

// FileOutput represents one file rendered by the print pipeline.
type FileOutput struct {
	XMLName      xml.Name `json:"-" xml:"file"`
	Path         string   `json:"path" xml:"path,attr"`
	Type         string   `json:"type" xml:"type,attr"`
	Content      string   `json:"content" xml:"content"`
	Size         string   `json:"size,omitempty" xml:"size,attr,omitempty"`
	SizeBytes    int64    `json:"-" xml:"-"`
	LastModified string   `json:"lastModified,omitempty" xml:"lastModified,attr,omitempty"`
	MimeType     string   `json:"mimeType,omitempty" xml:"mimeType,attr,omitempty"`
	Tokens       int      `json:"tokens,omitempty" xml:"tokens,attr,omitempty"`
	Model        string   `json:"model,omitempty" xml:"model,attr,omitempty"`
}

// OutputSummary captures aggregate information about rendered files.
type OutputSummary struct {
	TotalFiles  int    `json:"totalFiles" xml:"totalFiles"`
	TotalSize   string `json:"totalSize" xml:"totalSize"`
	TotalTokens int    `json:"totalTokens,omitempty" xml:"totalTokens,omitempty"`
	Model       string `json:"model,omitempty" xml:"model,omitempty"`
}
