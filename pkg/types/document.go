// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

// ConversionStatus is the outcome of converting one image into a PDF page.
type ConversionStatus string

const (
	ConversionDone   ConversionStatus = "converted"
	ConversionFailed ConversionStatus = "failed"
)

// MergeStatus is the outcome of processing one child document.
type MergeStatus string

const (
	MergeDone      MergeStatus = "merged"
	MergeUnmatched MergeStatus = "unmatched"
	MergeFailed    MergeStatus = "failed"
)

// DocumentPair associates a child PDF with the parent PDF that has the same
// basename. The parent is the merge target.
type DocumentPair struct {
	// Name is the shared basename, extension included (e.g. "a.pdf").
	Name string `json:"name" yaml:"name"`

	// ChildPath is the document whose pages are appended.
	ChildPath string `json:"child_path" yaml:"child_path"`

	// ParentPath is the document that receives the pages and is replaced.
	ParentPath string `json:"parent_path" yaml:"parent_path"`
}
