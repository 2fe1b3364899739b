package report

import (
	"sort"

	"github.com/samber/lo"

	"github.com/pescuma/siri/lib/model"
)

// Weights maps an author to the fraction of its lines considered externally
// authored. Authors not present have weight 0.
type Weights map[string]float64

func (w Weights) Factor(author string) float64 {
	return w[author]
}

type Author struct {
	Identity   string
	BlankLines int
	Comments   int
	Commits    int
	Lines      int

	// Share is Lines / total code lines, 0 when there are no code lines
	Share float64
	// Bar is the share in the 0-100 range, rounded down
	Bar int
	// Weighted is Lines * the author weight
	Weighted float64
}

type Report struct {
	Caption string
	// Authors are sorted by activity
	Authors []*Author
	Total   *Author
	// NoCode is set when there are no code lines, and then Weighted is not computed
	NoCode bool
	// Weighted is the percentage of weighted code lines
	Weighted float64
}

func (r *Report) AuthorsByIdentity() []*Author {
	result := make([]*Author, len(r.Authors))
	copy(result, r.Authors)
	sort.Slice(result, func(i, j int) bool {
		return result[i].Identity < result[j].Identity
	})
	return result
}

type Builder struct {
	weights Weights
}

func NewBuilder(weights Weights) *Builder {
	if weights == nil {
		weights = Weights{}
	}

	return &Builder{
		weights: weights,
	}
}

func (b *Builder) Build(caption string, stats *model.FileStats) *Report {
	aggr := stats.Aggregate()

	result := &Report{
		Caption: caption,
		Total:   newAuthor("", aggr),
		NoCode:  aggr.Lines == 0,
	}

	for _, identity := range stats.AuthorsByActivity() {
		a := newAuthor(identity, stats.Get(identity))

		if !result.NoCode {
			a.Share = float64(a.Lines) / float64(aggr.Lines)
			a.Bar = 100 * a.Lines / aggr.Lines
			a.Weighted = float64(a.Lines) * b.weights.Factor(identity)
		}

		result.Authors = append(result.Authors, a)
	}

	if !result.NoCode {
		weighted := lo.SumBy(result.Authors, func(a *Author) float64 { return a.Weighted })
		result.Weighted = 100 * weighted / float64(aggr.Lines)
	}

	return result
}

func newAuthor(identity string, stats *model.AuthorStats) *Author {
	return &Author{
		Identity:   identity,
		BlankLines: stats.BlankLines,
		Comments:   stats.Comments,
		Commits:    stats.CommitCount(),
		Lines:      stats.Lines,
	}
}
