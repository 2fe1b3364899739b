package classify

import (
	"os"
	"path"
	"strings"

	"github.com/hhatto/gocloc"
	"github.com/pkg/errors"

	"github.com/pescuma/siri/lib/model"
)

// LanguageClassifier classifies whole files using the comment syntax of the
// language detected from the file name. Files in unknown languages are
// classified line by line with the fallback. It is safe for concurrent use.
type LanguageClassifier struct {
	fallback model.LineClassifier
}

func NewLanguageClassifier(fallback model.LineClassifier) *LanguageClassifier {
	return &LanguageClassifier{
		fallback: fallback,
	}
}

func (c *LanguageClassifier) ClassifyFile(name string, lines []string) ([]model.LineKind, error) {
	if len(lines) == 0 {
		return nil, nil
	}

	kinds, err := c.computeLOC(path.Base(name), strings.Join(lines, "\n")+"\n")
	if err != nil {
		return nil, err
	}

	// gocloc skips files it does not know
	if len(kinds) == 0 || len(kinds) > len(lines) {
		kinds = nil
	}

	for j := len(kinds); j < len(lines); j++ {
		kinds = append(kinds, c.fallback.Classify(lines[j]))
	}

	return kinds, nil
}

func (c *LanguageClassifier) computeLOC(name string, contents string) ([]model.LineKind, error) {
	tmp, err := os.CreateTemp("", "siri-*-"+name)
	if err != nil {
		return nil, errors.Wrapf(err, "error classifying lines of %v", name)
	}

	defer os.Remove(tmp.Name())

	{
		defer tmp.Close()

		_, err = tmp.WriteString(contents)
		if err != nil {
			return nil, errors.Wrapf(err, "error classifying lines of %v", name)
		}
	}

	options := gocloc.NewClocOptions()

	var result []model.LineKind
	options.OnCode = func(line string) {
		result = append(result, model.CodeLine)
	}
	options.OnComment = func(line string) {
		result = append(result, model.CommentLine)
	}
	options.OnBlank = func(line string) {
		result = append(result, model.BlankLine)
	}

	// Analyze accumulates totals inside the language definitions, so they can't be shared
	processor := gocloc.NewProcessor(gocloc.NewDefinedLanguages(), options)
	_, err = processor.Analyze([]string{tmp.Name()})
	if err != nil {
		return nil, errors.Wrapf(err, "error classifying lines of %v", name)
	}

	return result, nil
}
