package pipeline

// Status is the outcome of processing one source file
type Status int

const (
	StatusProcessed Status = iota
	StatusSkipped
	StatusFailed
)

func (s Status) String() string {
	switch s {
	case StatusProcessed:
		return "processed"
	case StatusSkipped:
		return "skipped"
	default:
		return "failed"
	}
}

// FileResult describes what happened to one source file in one pass.
type FileResult struct {
	Pass      int
	Source    string
	Status    Status
	Err       error
	BagGUID   string
	OutputDir string
	Cards     []string // file stems in manifest order
	Generated []string // identifiers assigned during this pass
	Dropped   int      // non-card children removed from the bag
}

// Summary collects the results of a run
type Summary struct {
	Passes  int
	Results []FileResult
}

// Count returns the number of results with the given status
func (s *Summary) Count(status Status) int {
	n := 0
	for _, r := range s.Results {
		if r.Status == status {
			n++
		}
	}
	return n
}

// CardsWritten returns the number of card files written across all passes
func (s *Summary) CardsWritten() int {
	n := 0
	for _, r := range s.Results {
		if r.Status == StatusProcessed {
			n += len(r.Cards)
		}
	}
	return n
}
