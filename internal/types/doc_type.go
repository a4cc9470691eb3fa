package types

import "strings"

// DocType selects the export format for a project.
type DocType string

const (
	DocTypeDocx DocType = "docx"
	DocTypePptx DocType = "pptx"
)

var docTypes = []DocType{DocTypeDocx, DocTypePptx}

func DocTypes() []DocType {
	return append([]DocType{}, docTypes...)
}

func ParseDocType(raw string) (DocType, bool) {
	switch DocType(strings.ToLower(strings.TrimSpace(raw))) {
	case DocTypeDocx:
		return DocTypeDocx, true
	case DocTypePptx:
		return DocTypePptx, true
	}
	return "", false
}

func (d DocType) Valid() bool {
	_, ok := ParseDocType(string(d))
	return ok
}

// Extension returns the file extension without a leading dot.
func (d DocType) Extension() string {
	if d == DocTypePptx {
		return "pptx"
	}
	return "docx"
}

func (d DocType) Label() string {
	switch d {
	case DocTypePptx:
		return "PowerPoint Presentation (.pptx)"
	default:
		return "Word Document (.docx)"
	}
}

// Tag is the short uppercase badge shown next to a project.
func (d DocType) Tag() string {
	if d == "" {
		return "DOC"
	}
	return strings.ToUpper(string(d))
}

// Next cycles to the other format; used by the wizard's format toggle.
func (d DocType) Next() DocType {
	if d == DocTypeDocx {
		return DocTypePptx
	}
	return DocTypeDocx
}
