package reconcile

import (
	"fmt"
	"strings"
	"time"

	"github.com/arthur-debert/dotdot/pkg/errors"
)

// Outcome is the label of a per-repo result.
type Outcome string

const (
	OutcomeCloned     Outcome = "cloned"
	OutcomeCheckedOut Outcome = "checked-out"
	OutcomeSkipped    Outcome = "skipped"
	OutcomeFailed     Outcome = "failed"
	OutcomePulled     Outcome = "pulled"
	OutcomeUpdated    Outcome = "updated"
	OutcomeUnchanged  Outcome = "unchanged"
	OutcomeSuccess    Outcome = "success"
)

// String renders the label for humans.
func (o Outcome) String() string {
	return strings.ReplaceAll(string(o), "-", " ")
}

// Result is the outcome of one operation on one repo.
type Result struct {
	Name    string
	Outcome Outcome
	Message string
	// Err is set for OutcomeFailed.
	Err error
	// Revision is the revision the repo ends up at, when known.
	Revision string
	// Diverged marks a pulled repo whose HEAD no longer matches its pin.
	Diverged bool
	// DryRun marks a result that was planned, not performed.
	DryRun   bool
	Duration time.Duration
}

// Failed reports whether the result is a failure.
func (r Result) Failed() bool { return r.Outcome == OutcomeFailed }

func failed(name string, err error) Result {
	return Result{
		Name:    name,
		Outcome: OutcomeFailed,
		Message: errors.Summary(err),
		Err:     err,
	}
}

func skipped(name, message string) Result {
	return Result{Name: name, Outcome: OutcomeSkipped, Message: message}
}

// Count is one line of a Summary.
type Count struct {
	Outcome Outcome
	N       int
}

// Summary aggregates results per outcome in first-seen order.
type Summary struct {
	Counts   []Count
	Diverged int
	Total    int
}

// Summarize counts results by outcome.
func Summarize(results []Result) Summary {
	var s Summary
	index := map[Outcome]int{}
	for _, r := range results {
		s.Total++
		if r.Diverged {
			s.Diverged++
		}
		if i, ok := index[r.Outcome]; ok {
			s.Counts[i].N++
			continue
		}
		index[r.Outcome] = len(s.Counts)
		s.Counts = append(s.Counts, Count{Outcome: r.Outcome, N: 1})
	}
	return s
}

// Get returns the count for one outcome.
func (s Summary) Get(o Outcome) int {
	for _, c := range s.Counts {
		if c.Outcome == o {
			return c.N
		}
	}
	return 0
}

// String renders "2 cloned, 1 skipped". Diverged pulls are listed right
// after the pulled count.
func (s Summary) String() string {
	parts := make([]string, 0, len(s.Counts)+1)
	for _, c := range s.Counts {
		parts = append(parts, fmt.Sprintf("%d %s", c.N, c.Outcome))
		if c.Outcome == OutcomePulled && s.Diverged > 0 {
			parts = append(parts, fmt.Sprintf("%d diverged", s.Diverged))
		}
	}
	if len(parts) == 0 {
		return "nothing to do"
	}
	return strings.Join(parts, ", ")
}

// HasFailures reports whether any result failed.
func (s Summary) HasFailures() bool { return s.Get(OutcomeFailed) > 0 }

// ShortRev abbreviates a revision for display.
func ShortRev(rev string) string {
	if len(rev) > 7 {
		return rev[:7]
	}
	return rev
}

// RevisionMatches reports whether current satisfies the pinned revision.
// A pin may be an abbreviated hash, so a prefix match is enough.
func RevisionMatches(current, pinned string) bool {
	return strings.HasPrefix(current, pinned)
}
