package vcs

import (
	"bufio"
	"io"
	"strings"

	"github.com/pkg/errors"

	"github.com/pescuma/siri/lib/model"
)

// ParsePorcelain reads the output of git blame --porcelain.
func ParsePorcelain(reader io.Reader) ([]model.AttributionRecord, error) {
	authors := map[string]string{}
	commit := ""

	var result []model.AttributionRecord

	scanner := bufio.NewScanner(reader)
	scanner.Buffer(make([]byte, 0, 64*1024), 16*1024*1024)
	for scanner.Scan() {
		line := scanner.Text()

		switch {
		case strings.HasPrefix(line, "\t"):
			if commit == "" {
				return nil, errors.Errorf("invalid blame output: line without commit: %v", line)
			}

			result = appendLine(result, commit, authors[commit], line[1:])

		case strings.HasPrefix(line, "author-mail "):
			email := strings.TrimPrefix(line, "author-mail ")
			email = strings.TrimSuffix(strings.TrimPrefix(email, "<"), ">")
			authors[commit] = email

		default:
			fields := strings.Fields(line)
			if len(fields) >= 3 && isHash(fields[0]) {
				commit = fields[0]
			}
		}
	}

	err := scanner.Err()
	if err != nil {
		return nil, errors.Wrap(err, "error reading blame output")
	}

	return result, nil
}

func isHash(s string) bool {
	if len(s) != 40 && len(s) != 64 {
		return false
	}

	for _, c := range s {
		if !(c >= '0' && c <= '9' || c >= 'a' && c <= 'f') {
			return false
		}
	}

	return true
}
