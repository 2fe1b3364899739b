package classify

import (
	"strings"

	"github.com/pescuma/siri/lib/model"
)

const DefaultCommentMarker = "//"

// MarkerClassifier recognizes single line comments by a fixed prefix.
type MarkerClassifier struct {
	marker string
}

func NewMarkerClassifier(marker string) *MarkerClassifier {
	if marker == "" {
		marker = DefaultCommentMarker
	}

	return &MarkerClassifier{
		marker: marker,
	}
}

func (c *MarkerClassifier) Marker() string {
	return c.marker
}

func (c *MarkerClassifier) Classify(line string) model.LineKind {
	line = strings.TrimSpace(line)

	switch {
	case line == "":
		return model.BlankLine
	case strings.HasPrefix(line, c.marker):
		return model.CommentLine
	default:
		return model.CodeLine
	}
}
