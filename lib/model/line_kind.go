package model

type LineKind int

const (
	CodeLine LineKind = iota
	CommentLine
	BlankLine
)

func (k LineKind) String() string {
	switch k {
	case CodeLine:
		return "code"
	case CommentLine:
		return "comment"
	case BlankLine:
		return "blank"
	default:
		return "unknown"
	}
}

// LineClassifier decides the kind of a single line of text.
type LineClassifier interface {
	Classify(line string) LineKind
}
