package model

import (
	"sort"

	"github.com/hashicorp/go-set/v2"
)

// AuthorStats is ready to use as a zero value.
type AuthorStats struct {
	BlankLines int
	Comments   int
	Lines      int

	commits *set.Set[string]
}

func NewAuthorStats() *AuthorStats {
	return &AuthorStats{
		commits: set.New[string](10),
	}
}

func (s *AuthorStats) AddCommit(commit string) {
	if s.commits == nil {
		s.commits = set.New[string](10)
	}
	s.commits.Insert(commit)
}

func (s *AuthorStats) AddLines(classifier LineClassifier, lines []string) {
	for _, line := range lines {
		s.AddKind(classifier.Classify(line))
	}
}

func (s *AuthorStats) AddKind(kind LineKind) {
	switch kind {
	case BlankLine:
		s.BlankLines++
	case CommentLine:
		s.Comments++
	default:
		s.Lines++
	}
}

// Merge accumulates other into s. other is left untouched and nothing of it is
// retained by s.
func (s *AuthorStats) Merge(other *AuthorStats) {
	s.BlankLines += other.BlankLines
	s.Comments += other.Comments
	s.Lines += other.Lines

	for _, c := range other.ListCommits() {
		s.AddCommit(c)
	}
}

func (s *AuthorStats) Clone() *AuthorStats {
	result := NewAuthorStats()
	result.Merge(s)
	return result
}

func (s *AuthorStats) CommitCount() int {
	if s.commits == nil {
		return 0
	}
	return s.commits.Size()
}

func (s *AuthorStats) HasCommit(commit string) bool {
	return s.commits != nil && s.commits.Contains(commit)
}

func (s *AuthorStats) ListCommits() []string {
	if s.commits == nil {
		return nil
	}

	result := s.commits.Slice()
	sort.Strings(result)
	return result
}

func (s *AuthorStats) Total() int {
	return s.Lines + s.Comments + s.BlankLines
}
