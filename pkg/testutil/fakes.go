package testutil

import (
	"context"
	"strings"
	"sync"

	"github.com/arthur-debert/dotdot/pkg/errors"
	"github.com/arthur-debert/dotdot/pkg/git"
	"github.com/arthur-debert/dotdot/pkg/shell"
	"github.com/arthur-debert/dotdot/pkg/types"
)

// FakeRepo is the simulated state of one checkout.
type FakeRepo struct {
	URL    string
	Rev    string
	Branch string
	Dirty  bool
}

// Call is one recorded capability invocation.
type Call struct {
	Op   string
	Dir  string
	Args []string
}

// FakeGit implements git.Git over a map of checkouts. Clone creates the
// destination directory on FS so filesystem checks agree with it.
type FakeGit struct {
	FS types.FS
	// Remotes maps a URL to the revision its default branch points at.
	Remotes map[string]string
	// Repos maps an absolute directory to its checkout.
	Repos map[string]*FakeRepo
	// Errors maps "op" or "op:dir" to an error returned by that call.
	Errors map[string]error

	mu    sync.Mutex
	calls []Call
}

var _ git.Git = (*FakeGit)(nil)

// NewFakeGit returns an empty FakeGit bound to fs.
func NewFakeGit(fs types.FS) *FakeGit {
	return &FakeGit{
		FS:      fs,
		Remotes: map[string]string{},
		Repos:   map[string]*FakeRepo{},
		Errors:  map[string]error{},
	}
}

// Fail makes op fail for dir (or every dir when dir is empty).
func (g *FakeGit) Fail(op, dir, message string) {
	key := op
	if dir != "" {
		key = op + ":" + dir
	}
	g.Errors[key] = errors.New(errors.ErrGit, message)
}

// Calls returns the recorded calls, optionally filtered by op.
func (g *FakeGit) Calls(op ...string) []Call {
	g.mu.Lock()
	defer g.mu.Unlock()
	if len(op) == 0 {
		return append([]Call(nil), g.calls...)
	}
	var out []Call
	for _, c := range g.calls {
		for _, o := range op {
			if c.Op == o {
				out = append(out, c)
			}
		}
	}
	return out
}

// Mutations returns the calls that change a checkout.
func (g *FakeGit) Mutations() []Call {
	return g.Calls("clone", "pull", "checkout")
}

func (g *FakeGit) record(op, dir string, args ...string) error {
	g.mu.Lock()
	g.calls = append(g.calls, Call{Op: op, Dir: dir, Args: args})
	g.mu.Unlock()

	if err, ok := g.Errors[op+":"+dir]; ok {
		return err
	}
	return g.Errors[op]
}

func (g *FakeGit) repo(dir string) (*FakeRepo, error) {
	repo, ok := g.Repos[dir]
	if !ok {
		return nil, errors.Newf(errors.ErrGit, "not a git repository: %s", dir)
	}
	return repo, nil
}

func (g *FakeGit) Clone(_ context.Context, url, dest string) error {
	if err := g.record("clone", dest, url); err != nil {
		return err
	}
	if _, err := g.FS.Stat(dest); err == nil {
		return errors.Newf(errors.ErrGit, "destination path '%s' already exists", dest)
	}
	rev, ok := g.Remotes[url]
	if !ok {
		return errors.Newf(errors.ErrGit, "repository '%s' not found", url)
	}
	if err := g.FS.MkdirAll(dest, 0755); err != nil {
		return err
	}
	g.Repos[dest] = &FakeRepo{URL: url, Rev: rev, Branch: "main"}
	return nil
}

func (g *FakeGit) CurrentRev(_ context.Context, dir string) (string, error) {
	if err := g.record("rev", dir); err != nil {
		return "", err
	}
	repo, err := g.repo(dir)
	if err != nil {
		return "", err
	}
	return repo.Rev, nil
}

func (g *FakeGit) IsRepo(_ context.Context, dir string) (bool, error) {
	if err := g.record("is-repo", dir); err != nil {
		return false, err
	}
	_, ok := g.Repos[dir]
	return ok, nil
}

func (g *FakeGit) CurrentBranch(_ context.Context, dir string) (string, error) {
	if err := g.record("branch", dir); err != nil {
		return "", err
	}
	repo, err := g.repo(dir)
	if err != nil {
		return "", err
	}
	return repo.Branch, nil
}

func (g *FakeGit) IsDirty(_ context.Context, dir string) (bool, error) {
	if err := g.record("dirty", dir); err != nil {
		return false, err
	}
	repo, err := g.repo(dir)
	if err != nil {
		return false, err
	}
	return repo.Dirty, nil
}

// Pull moves the checkout to its remote's current revision.
func (g *FakeGit) Pull(_ context.Context, dir string) error {
	if err := g.record("pull", dir); err != nil {
		return err
	}
	repo, err := g.repo(dir)
	if err != nil {
		return err
	}
	if rev, ok := g.Remotes[repo.URL]; ok {
		repo.Rev = rev
	}
	return nil
}

// Checkout detaches HEAD. A revision prefix of the remote head expands to
// the full revision.
func (g *FakeGit) Checkout(_ context.Context, dir, revision string) error {
	if err := g.record("checkout", dir, revision); err != nil {
		return err
	}
	repo, err := g.repo(dir)
	if err != nil {
		return err
	}
	if head := g.Remotes[repo.URL]; strings.HasPrefix(head, revision) {
		revision = head
	}
	repo.Rev = revision
	repo.Branch = git.DetachedHEAD
	return nil
}

// FakeShell implements shell.Runner by recording commands.
type FakeShell struct {
	// Errors maps a directory to the error its commands return.
	Errors map[string]error

	mu    sync.Mutex
	calls []Call
}

var _ shell.Runner = (*FakeShell)(nil)

func (s *FakeShell) Run(_ context.Context, command, dir string) error {
	s.mu.Lock()
	s.calls = append(s.calls, Call{Op: "run", Dir: dir, Args: []string{command}})
	s.mu.Unlock()
	return s.Errors[dir]
}

// FailIn makes every command run in dir fail.
func (s *FakeShell) FailIn(dir, message string) {
	if s.Errors == nil {
		s.Errors = map[string]error{}
	}
	s.Errors[dir] = errors.New(errors.ErrShell, message)
}

// Calls returns the recorded commands.
func (s *FakeShell) Calls() []Call {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]Call(nil), s.calls...)
}
