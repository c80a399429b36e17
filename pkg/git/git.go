package git

import (
	"bytes"
	"context"
	stderrors "errors"
	"os/exec"
	"path/filepath"
	"strings"

	"github.com/arthur-debert/dotdot/pkg/errors"
	"github.com/arthur-debert/dotdot/pkg/logging"
)

// DetachedHEAD is what CurrentBranch returns when HEAD is not on a branch.
const DetachedHEAD = "HEAD"

// DefaultBinary is the git executable looked up on PATH.
const DefaultBinary = "git"

// Git is the set of repository operations the engine needs.
type Git interface {
	Clone(ctx context.Context, url, dest string) error
	CurrentRev(ctx context.Context, dir string) (string, error)
	IsRepo(ctx context.Context, dir string) (bool, error)
	CurrentBranch(ctx context.Context, dir string) (string, error)
	IsDirty(ctx context.Context, dir string) (bool, error)
	Pull(ctx context.Context, dir string) error
	Checkout(ctx context.Context, dir, revision string) error
}

// CLI implements Git with the git binary.
type CLI struct {
	binary string
}

// NewCLI returns a CLI using binary, or DefaultBinary when empty.
func NewCLI(binary string) *CLI {
	if binary == "" {
		binary = DefaultBinary
	}
	return &CLI{binary: binary}
}

var _ Git = (*CLI)(nil)

// run executes git in dir and returns trimmed stdout. Stderr is captured
// and attached to the error.
func (g *CLI) run(ctx context.Context, dir string, args ...string) (string, error) {
	fullArgs := args
	if dir != "" {
		fullArgs = append([]string{"-C", dir}, args...)
	}

	logger := logging.GetLogger("git")
	logger.Trace().Strs("args", fullArgs).Msg("Running git")

	var stdout, stderr bytes.Buffer
	cmd := exec.CommandContext(ctx, g.binary, fullArgs...)
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		msg := strings.TrimSpace(stderr.String())
		if msg == "" {
			msg = err.Error()
		}
		return "", errors.Wrapf(err, errors.ErrGit, "git %s: %s", args[0], msg).
			WithDetail("args", strings.Join(args, " ")).
			WithDetail("dir", dir)
	}
	return strings.TrimSpace(stdout.String()), nil
}

// Clone clones url into dest. dest must not exist.
func (g *CLI) Clone(ctx context.Context, url, dest string) error {
	_, err := g.run(ctx, "", "clone", "--quiet", url, dest)
	return err
}

// CurrentRev returns the full commit hash of HEAD.
func (g *CLI) CurrentRev(ctx context.Context, dir string) (string, error) {
	return g.run(ctx, dir, "rev-parse", "HEAD")
}

// IsRepo reports whether dir is the top level of a git work tree. A plain
// directory nested inside some other repository is not a repo.
func (g *CLI) IsRepo(ctx context.Context, dir string) (bool, error) {
	top, err := g.run(ctx, dir, "rev-parse", "--show-toplevel")
	if err != nil {
		var exitErr *exec.ExitError
		if stderrors.As(err, &exitErr) {
			return false, nil
		}
		return false, err
	}
	return samePath(top, dir), nil
}

// CurrentBranch returns the checked out branch, or DetachedHEAD.
func (g *CLI) CurrentBranch(ctx context.Context, dir string) (string, error) {
	return g.run(ctx, dir, "rev-parse", "--abbrev-ref", "HEAD")
}

// IsDirty reports uncommitted changes, untracked files included.
func (g *CLI) IsDirty(ctx context.Context, dir string) (bool, error) {
	out, err := g.run(ctx, dir, "status", "--porcelain")
	if err != nil {
		return false, err
	}
	return out != "", nil
}

// Pull fast-forwards the current branch from its upstream.
func (g *CLI) Pull(ctx context.Context, dir string) error {
	_, err := g.run(ctx, dir, "pull", "--ff-only", "--quiet")
	return err
}

// Checkout detaches HEAD at revision.
func (g *CLI) Checkout(ctx context.Context, dir, revision string) error {
	_, err := g.run(ctx, dir, "checkout", "--quiet", revision)
	return err
}

// samePath compares two paths after resolving symlinks, so that /tmp vs
// /private/tmp style aliases compare equal.
func samePath(a, b string) bool {
	return normalize(a) == normalize(b)
}

func normalize(path string) string {
	path = filepath.FromSlash(path)
	if resolved, err := filepath.EvalSymlinks(path); err == nil {
		path = resolved
	}
	if abs, err := filepath.Abs(path); err == nil {
		path = abs
	}
	return filepath.Clean(path)
}
