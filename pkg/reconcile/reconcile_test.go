package reconcile_test

import (
	"context"
	"testing"

	"github.com/arthur-debert/dotdot/pkg/errors"
	"github.com/arthur-debert/dotdot/pkg/git"
	"github.com/arthur-debert/dotdot/pkg/reconcile"
	"github.com/arthur-debert/dotdot/pkg/testutil"
	"github.com/arthur-debert/dotdot/pkg/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	headRev = "1111111111aaaaaaaaaa"
	pinRev  = "2222222222bbbbbbbbbb"
)

func setup(t *testing.T, repos map[string]types.RepoConfig) (*testutil.TestEnvironment, *reconcile.Reconciler) {
	t.Helper()
	env := testutil.NewTestEnvironment(t, testutil.EnvMemoryOnly)
	env.WriteConfig("", testutil.Config(repos))
	return env, reconcile.New(env.FS, env.Git, env.Shell)
}

func declared(t *testing.T, env *testutil.TestEnvironment, name string) types.DeclaredRepo {
	t.Helper()
	for _, r := range env.Declared() {
		if r.Name == name {
			return r
		}
	}
	t.Fatalf("repo %s not declared", name)
	return types.DeclaredRepo{}
}

func TestRevisionMatches(t *testing.T) {
	assert.True(t, reconcile.RevisionMatches("abc123def", "abc123"))
	assert.True(t, reconcile.RevisionMatches("abc123def", "abc123def"))
	assert.False(t, reconcile.RevisionMatches("abc123def", "abd"))
	assert.False(t, reconcile.RevisionMatches("abc", "abc123"))
}

func TestRestore_ClonesMissingRepo(t *testing.T) {
	env, r := setup(t, map[string]types.RepoConfig{
		"lib": {URL: "u/lib", Install: "make"},
	})
	env.Git.Remotes["u/lib"] = headRev

	res := r.Restore(context.Background(), env.Root, declared(t, env, "lib"))

	assert.Equal(t, reconcile.OutcomeCloned, res.Outcome)
	assert.Equal(t, headRev, res.Revision)
	assert.Equal(t, "cloned at 1111111 (installed)", res.Message)
	require.Len(t, env.Shell.Calls(), 1)
	assert.Equal(t, env.Path("lib"), env.Shell.Calls()[0].Dir)
	assert.Empty(t, env.Git.Calls("checkout"))
}

func TestRestore_ClonesAndChecksOutPin(t *testing.T) {
	env, r := setup(t, map[string]types.RepoConfig{
		"lib": {URL: "u/lib", Revision: "2222222"},
	})
	env.Git.Remotes["u/lib"] = headRev

	res := r.Restore(context.Background(), env.Root, declared(t, env, "lib"))

	assert.Equal(t, reconcile.OutcomeCloned, res.Outcome)
	calls := env.Git.Calls("checkout")
	require.Len(t, calls, 1)
	assert.Equal(t, []string{"2222222"}, calls[0].Args)
	assert.Equal(t, "2222222", res.Revision)
}

func TestRestore_Idempotent(t *testing.T) {
	env, r := setup(t, map[string]types.RepoConfig{
		"lib":    {URL: "u/lib", Revision: "1111111"},
		"plain":  {URL: "u/plain"},
		"pinned": {URL: "u/pinned", Revision: pinRev},
	})
	env.Git.Remotes["u/lib"] = headRev
	env.Git.Remotes["u/plain"] = headRev
	env.Git.Remotes["u/pinned"] = pinRev
	ctx := context.Background()

	for _, repo := range env.Declared() {
		res := r.Restore(ctx, env.Root, repo)
		require.False(t, res.Failed(), res.Message)
	}
	before := len(env.Git.Mutations())

	for _, repo := range env.Declared() {
		res := r.Restore(ctx, env.Root, repo)
		assert.Equal(t, reconcile.OutcomeSkipped, res.Outcome, repo.Name)
		assert.Equal(t, "already exists", res.Message)
	}
	assert.Len(t, env.Git.Mutations(), before, "second restore must not mutate")
}

func TestRestore_PrefixPinIsSatisfied(t *testing.T) {
	env, r := setup(t, map[string]types.RepoConfig{
		"lib": {URL: "u/lib", Revision: "1111111"},
	})
	env.AddClone("lib", "u/lib", headRev)

	res := r.Restore(context.Background(), env.Root, declared(t, env, "lib"))

	assert.Equal(t, reconcile.OutcomeSkipped, res.Outcome)
	assert.Empty(t, env.Git.Mutations())
}

func TestRestore_ChecksOutMismatchedPin(t *testing.T) {
	env, r := setup(t, map[string]types.RepoConfig{
		"lib": {URL: "u/lib", Revision: pinRev},
	})
	repo := env.AddClone("lib", "u/lib", headRev)

	res := r.Restore(context.Background(), env.Root, declared(t, env, "lib"))

	assert.Equal(t, reconcile.OutcomeCheckedOut, res.Outcome)
	assert.Equal(t, "checked out 2222222", res.Message)
	assert.Equal(t, pinRev, repo.Rev)
	assert.Equal(t, git.DetachedHEAD, repo.Branch)
}

func TestRestore_ExistingNonRepoFails(t *testing.T) {
	env, r := setup(t, map[string]types.RepoConfig{"lib": {URL: "u/lib"}})
	env.Mkdir("lib")

	res := r.Restore(context.Background(), env.Root, declared(t, env, "lib"))

	assert.Equal(t, reconcile.OutcomeFailed, res.Outcome)
	assert.Contains(t, res.Message, "directory exists but is not a git repo")
	assert.Empty(t, env.Git.Mutations())
}

func TestRestore_CapabilityFailuresAreFolded(t *testing.T) {
	env, r := setup(t, map[string]types.RepoConfig{
		"lib":   {URL: "u/lib", Install: "make"},
		"other": {URL: "u/missing"},
	})
	env.Git.Remotes["u/lib"] = headRev
	env.Shell.FailIn(env.Path("lib"), "exit status 2")
	ctx := context.Background()

	res := r.Restore(ctx, env.Root, declared(t, env, "lib"))
	assert.True(t, res.Failed())
	assert.True(t, errors.IsErrorCode(res.Err, errors.ErrShell))
	assert.Contains(t, res.Message, "install failed")

	res = r.Restore(ctx, env.Root, declared(t, env, "other"))
	assert.True(t, res.Failed())
	assert.True(t, errors.IsErrorCode(res.Err, errors.ErrGit))
}

func TestPlanRestore_NoMutation(t *testing.T) {
	env, r := setup(t, map[string]types.RepoConfig{
		"missing":  {URL: "u/missing"},
		"pinned":   {URL: "u/pinned", Revision: pinRev},
		"existing": {URL: "u/existing"},
	})
	env.AddClone("pinned", "u/pinned", headRev)
	env.AddClone("existing", "u/existing", headRev)
	ctx := context.Background()

	got := map[string]reconcile.Outcome{}
	for _, repo := range env.Declared() {
		res := r.PlanRestore(ctx, env.Root, repo)
		assert.True(t, res.DryRun)
		got[repo.Name] = res.Outcome
	}

	assert.Equal(t, map[string]reconcile.Outcome{
		"missing":  reconcile.OutcomeCloned,
		"pinned":   reconcile.OutcomeCheckedOut,
		"existing": reconcile.OutcomeSkipped,
	}, got)
	assert.Empty(t, env.Git.Mutations())
	assert.Empty(t, env.Shell.Calls())
}

func TestPull_Safety(t *testing.T) {
	env, r := setup(t, map[string]types.RepoConfig{
		"missing":  {URL: "u/missing"},
		"plain":    {URL: "u/plain"},
		"detached": {URL: "u/detached"},
		"dirty":    {URL: "u/dirty"},
	})
	env.Mkdir("plain")
	env.AddClone("detached", "u/detached", headRev).Branch = git.DetachedHEAD
	env.AddClone("dirty", "u/dirty", headRev).Dirty = true
	ctx := context.Background()

	want := map[string]string{
		"missing":  "directory does not exist",
		"plain":    "not a git repo",
		"detached": "detached HEAD",
		"dirty":    "uncommitted changes",
	}
	for _, repo := range env.Declared() {
		res := r.Pull(ctx, env.Root, repo)
		assert.Equal(t, reconcile.OutcomeSkipped, res.Outcome, repo.Name)
		assert.Equal(t, want[repo.Name], res.Message, repo.Name)
	}
	assert.Empty(t, env.Git.Calls("pull"), "pull must never run on unsafe repos")
}

func TestPull_Diverged(t *testing.T) {
	env, r := setup(t, map[string]types.RepoConfig{
		"pinned":   {URL: "u/pinned", Revision: "1111111"},
		"unpinned": {URL: "u/unpinned"},
		"same":     {URL: "u/same", Revision: "1111111"},
	})
	env.AddClone("pinned", "u/pinned", headRev)
	env.AddClone("unpinned", "u/unpinned", headRev)
	env.AddClone("same", "u/same", headRev)
	env.Git.Remotes["u/pinned"] = pinRev
	env.Git.Remotes["u/unpinned"] = pinRev
	env.Git.Remotes["u/same"] = headRev
	ctx := context.Background()

	var results []reconcile.Result
	for _, repo := range env.Declared() {
		results = append(results, r.Pull(ctx, env.Root, repo))
	}

	byName := map[string]reconcile.Result{}
	for _, res := range results {
		assert.Equal(t, reconcile.OutcomePulled, res.Outcome, res.Name)
		byName[res.Name] = res
	}
	assert.True(t, byName["pinned"].Diverged)
	assert.False(t, byName["unpinned"].Diverged)
	assert.False(t, byName["same"].Diverged)

	assert.Equal(t, "3 pulled, 1 diverged", reconcile.Summarize(results).String())
}

func TestPull_FailureIsFolded(t *testing.T) {
	env, r := setup(t, map[string]types.RepoConfig{"lib": {URL: "u/lib"}})
	env.AddClone("lib", "u/lib", headRev)
	env.Git.Fail("pull", env.Path("lib"), "not possible to fast-forward")

	res := r.Pull(context.Background(), env.Root, declared(t, env, "lib"))
	assert.Equal(t, reconcile.OutcomeFailed, res.Outcome)
	assert.Contains(t, res.Message, "not possible to fast-forward")
}

func TestExec(t *testing.T) {
	env, r := setup(t, map[string]types.RepoConfig{
		"a":       {URL: "u/a"},
		"b":       {URL: "u/b"},
		"missing": {URL: "u/missing"},
	})
	env.AddClone("a", "u/a", headRev)
	env.AddClone("b", "u/b", headRev)
	env.Shell.FailIn(env.Path("b"), "exit status 1")
	ctx := context.Background()

	var results []reconcile.Result
	for _, repo := range env.Declared() {
		results = append(results, r.Exec(ctx, env.Root, repo, "git status"))
	}

	require.Len(t, results, 3)
	assert.Equal(t, reconcile.OutcomeSuccess, results[0].Outcome)
	assert.Equal(t, reconcile.OutcomeFailed, results[1].Outcome)
	assert.Equal(t, reconcile.OutcomeSkipped, results[2].Outcome)
	assert.Len(t, env.Shell.Calls(), 2)
}

func TestInspect(t *testing.T) {
	env, r := setup(t, map[string]types.RepoConfig{
		"clean":   {URL: "u/clean", Revision: "1111"},
		"drifted": {URL: "u/drifted", Revision: pinRev},
		"missing": {URL: "u/missing"},
	})
	env.AddClone("clean", "u/clean", headRev)
	env.AddClone("drifted", "u/drifted", headRev).Dirty = true
	ctx := context.Background()

	clean := r.Inspect(ctx, env.Root, declared(t, env, "clean"))
	assert.True(t, clean.Exists)
	assert.True(t, clean.IsRepo)
	assert.Equal(t, "main", clean.Branch)
	assert.True(t, clean.Matches)
	assert.Equal(t, "(root)", clean.Declared)

	drifted := r.Inspect(ctx, env.Root, declared(t, env, "drifted"))
	assert.True(t, drifted.Dirty)
	assert.False(t, drifted.Matches)

	missing := r.Inspect(ctx, env.Root, declared(t, env, "missing"))
	assert.False(t, missing.Exists)
	assert.NoError(t, missing.Err)

	assert.Empty(t, env.Git.Mutations())
}
