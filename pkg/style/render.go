package style

import (
	"fmt"
	"strings"

	"github.com/arthur-debert/dotdot/pkg/errors"
	"github.com/arthur-debert/dotdot/pkg/links"
	"github.com/arthur-debert/dotdot/pkg/reconcile"
	"github.com/pterm/pterm"
)

// Status indicators
const (
	SuccessIndicator = "✓"
	ErrorIndicator   = "✗"
	SkippedIndicator = "○"
	WarningIndicator = "⚠"
	PendingIndicator = "→"
)

// Indicator returns the styled symbol for a result.
func Indicator(r reconcile.Result) string {
	switch {
	case r.Failed():
		return Render("Error", ErrorIndicator)
	case r.Diverged:
		return Render("Warning", WarningIndicator)
	case r.Outcome == reconcile.OutcomeSkipped || r.Outcome == reconcile.OutcomeUnchanged:
		return Render("Skipped", SkippedIndicator)
	case r.DryRun:
		return Render("Info", PendingIndicator)
	default:
		return Render("Success", SuccessIndicator)
	}
}

// RenderResult renders one per-repo line.
func RenderResult(r reconcile.Result) string {
	msg := r.Message
	if msg == "" {
		msg = r.Outcome.String()
	}
	msgStyle := "Muted"
	switch {
	case r.Failed():
		msgStyle = "Error"
	case r.Diverged:
		msgStyle = "Warning"
	}
	return fmt.Sprintf("  %s %s %s", Indicator(r), Render("Repo", r.Name), Render(msgStyle, msg))
}

// RenderSummary renders the closing "Done: ..." line.
func RenderSummary(summary string) string {
	return Render("Summary", "Done: "+summary)
}

// RenderTitle renders a section heading.
func RenderTitle(title string) string {
	return Render("Title", title)
}

// RenderError renders a fatal error without its code.
func RenderError(err error) string {
	return Render("Error", "Error: "+errors.Summary(err))
}

// RenderRepoStatusTable renders the status command as a table.
func RenderRepoStatusTable(repos []reconcile.RepoStatus) (string, error) {
	data := pterm.TableData{{"Repo", "Declared by", "State", "Branch", "Revision", "Pin"}}
	for _, st := range repos {
		data = append(data, []string{
			st.Name,
			st.Declared,
			repoState(st),
			st.Branch,
			reconcile.ShortRev(st.Revision),
			pinState(st),
		})
	}
	return pterm.DefaultTable.WithHasHeader().WithData(data).Srender()
}

func repoState(st reconcile.RepoStatus) string {
	switch {
	case st.Err != nil:
		return Render("Error", errors.Summary(st.Err))
	case !st.Exists:
		return Render("Warning", "missing")
	case !st.IsRepo:
		return Render("Error", "not a git repo")
	case st.Dirty:
		return Render("Warning", "dirty")
	default:
		return Render("Success", "clean")
	}
}

func pinState(st reconcile.RepoStatus) string {
	switch {
	case st.Pinned == "":
		return Render("Muted", "-")
	case !st.Exists || st.Revision == "":
		return reconcile.ShortRev(st.Pinned)
	case st.Matches:
		return Render("Success", reconcile.ShortRev(st.Pinned))
	default:
		return Render("Warning", reconcile.ShortRev(st.Pinned)+" (diverged)")
	}
}

// RenderLinkTable renders link status entries.
func RenderLinkTable(entries []links.Entry) (string, error) {
	data := pterm.TableData{{"Target", "Source", "Declared by", "State"}}
	for _, e := range entries {
		data = append(data, []string{
			e.Mapping.TargetName,
			Render("Path", e.Mapping.RelativeSource()),
			e.Mapping.DeclaredBy,
			linkState(e),
		})
	}
	return pterm.DefaultTable.WithHasHeader().WithData(data).Srender()
}

func linkState(e links.Entry) string {
	s := string(e.State)
	switch e.State {
	case links.StateLinked:
		return Render("Success", s)
	case links.StateNotLinked:
		return Render("Muted", s)
	case links.StateError:
		return Render("Error", s+": "+errors.Summary(e.Err))
	default:
		return Render("Warning", s)
	}
}

// RenderConflicts lists every conflicting target with its claimants.
func RenderConflicts(conflicts []links.Conflict) string {
	var b strings.Builder
	for _, c := range conflicts {
		fmt.Fprintf(&b, "  %s %s:\n", Render("Warning", WarningIndicator), Render("Repo", c.TargetName))
		for _, m := range c.Mappings {
			fmt.Fprintf(&b, "    - %s %s\n", Render("Path", m.RelativeSource()), Render("Muted", "(from "+m.DeclaredBy+")"))
		}
	}
	return strings.TrimRight(b.String(), "\n")
}

// RenderLinkItem renders one create/remove line.
func RenderLinkItem(item links.Item) string {
	var indicator, verb string
	switch item.Action {
	case links.ActionCreated:
		indicator, verb = Render("Success", SuccessIndicator), "created"
		if item.DryRun {
			indicator, verb = Render("Info", PendingIndicator), "would create"
		}
	case links.ActionRemoved:
		indicator, verb = Render("Success", SuccessIndicator), "removed"
		if item.DryRun {
			indicator, verb = Render("Info", PendingIndicator), "would remove"
		}
	case links.ActionFailed:
		indicator, verb = Render("Error", ErrorIndicator), "failed"
	default:
		indicator, verb = Render("Skipped", SkippedIndicator), "skipped"
	}

	line := fmt.Sprintf("  %s %s %s", indicator, Render("Repo", item.TargetName), verb)
	if item.Link != "" && item.Action == links.ActionCreated {
		line += " -> " + Render("Path", item.Link)
	}
	if item.Reason != "" {
		line += " " + Render("Muted", "("+item.Reason+")")
	}
	return line
}
