package model

import (
	"sort"

	"github.com/samber/lo"
)

// FileStats holds the per author stats of a single file or of a group of
// merged files. It is not safe for concurrent use.
type FileStats struct {
	authors map[string]*AuthorStats
}

func NewFileStats() *FileStats {
	return &FileStats{
		authors: map[string]*AuthorStats{},
	}
}

// AddAuthor returns the stats of the author, creating them if needed. The
// returned value is owned by this FileStats.
func (s *FileStats) AddAuthor(author string) *AuthorStats {
	result, ok := s.authors[author]
	if !ok {
		result = NewAuthorStats()
		s.authors[author] = result
	}
	return result
}

func (s *FileStats) AddBlame(commit string, author string, lines []string, classifier LineClassifier) {
	a := s.AddAuthor(author)
	a.AddCommit(commit)
	a.AddLines(classifier, lines)
}

func (s *FileStats) AddRecord(record AttributionRecord, classifier LineClassifier) {
	s.AddBlame(record.Commit, record.Author, record.Lines, classifier)
}

// AddClassifiedBlame is AddBlame for lines whose kind is already known.
func (s *FileStats) AddClassifiedBlame(commit string, author string, kinds []LineKind) {
	a := s.AddAuthor(author)
	a.AddCommit(commit)
	for _, k := range kinds {
		a.AddKind(k)
	}
}

func (s *FileStats) Get(author string) *AuthorStats {
	return s.authors[author]
}

func (s *FileStats) Len() int {
	return len(s.authors)
}

func (s *FileStats) Aggregate() *AuthorStats {
	result := NewAuthorStats()
	for _, a := range s.authors {
		result.Merge(a)
	}
	return result
}

// AuthorsByActivity sorts by code lines, most active first. Ties are sorted
// by author.
func (s *FileStats) AuthorsByActivity() []string {
	result := lo.Keys(s.authors)
	sort.Slice(result, func(i, j int) bool {
		li := s.authors[result[i]].Lines
		lj := s.authors[result[j]].Lines
		if li != lj {
			return li > lj
		}
		return result[i] < result[j]
	})
	return result
}

func (s *FileStats) AuthorsByEmail() []string {
	result := lo.Keys(s.authors)
	sort.Strings(result)
	return result
}

func (s *FileStats) Merge(other *FileStats) {
	for author, stats := range other.authors {
		s.AddAuthor(author).Merge(stats)
	}
}
