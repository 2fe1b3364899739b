package model

// AttributionRecord is a run of lines of a file that were last touched by the
// same commit, as of the analyzed revision.
type AttributionRecord struct {
	Commit string
	Author string
	Lines  []string
}
