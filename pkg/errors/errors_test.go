package errors_test

import (
	stderrors "errors"
	"fmt"
	"os/exec"
	"testing"

	"github.com/arthur-debert/dotdot/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWorkspaceNotFound(t *testing.T) {
	err := errors.Newf(errors.ErrWorkspaceNotFound, "no %s found above %s", "dotdot.toml", "/home/me/src").
		WithDetail("start", "/home/me/src")

	assert.Equal(t, "[WORKSPACE_NOT_FOUND] no dotdot.toml found above /home/me/src", err.Error())
	assert.True(t, errors.IsErrorCode(err, errors.ErrWorkspaceNotFound))
	assert.Equal(t, errors.ErrWorkspaceNotFound, errors.GetErrorCode(err))
	assert.Equal(t, "/home/me/src", errors.GetErrorDetails(err)["start"])
	assert.Nil(t, err.Unwrap())
}

func TestConfigParseCarriesPath(t *testing.T) {
	cause := stderrors.New("toml: expected '=' after key")
	err := errors.Wrap(cause, errors.ErrConfigParse, "invalid config").
		WithDetail("path", "/ws/svc/dotdot.toml")

	assert.Equal(t, "[CONFIG_PARSE] invalid config: toml: expected '=' after key", err.Error())
	assert.ErrorIs(t, err, cause)
	assert.Equal(t, "/ws/svc/dotdot.toml", errors.GetErrorDetails(err)["path"])
}

func TestGitChainSummary(t *testing.T) {
	exitErr := &exec.ExitError{}
	gitErr := errors.Wrapf(exitErr, errors.ErrGit, "git %s: %s", "pull", "fatal: Not possible to fast-forward").
		WithDetail("args", "pull --ff-only --quiet")
	cmdErr := errors.Wrap(gitErr, errors.ErrInternal, "pull lib")

	// The outermost code decides, but a GIT error is still found in the chain.
	assert.Equal(t, errors.ErrInternal, errors.GetErrorCode(cmdErr))
	assert.False(t, errors.IsErrorCode(cmdErr, errors.ErrGit))
	assert.ErrorIs(t, cmdErr, errors.New(errors.ErrGit, ""))
	assert.NotErrorIs(t, cmdErr, errors.New(errors.ErrShell, ""))

	var target *exec.ExitError
	assert.ErrorAs(t, cmdErr, &target)

	assert.Equal(t, "pull lib: git pull: fatal: Not possible to fast-forward: "+exitErr.Error(),
		errors.Summary(cmdErr))
}

func TestSummary(t *testing.T) {
	assert.Equal(t, "", errors.Summary(nil))
	assert.Equal(t, "boom", errors.Summary(stderrors.New("boom")))
	assert.Equal(t, "install failed: exit status 2",
		errors.Summary(errors.Wrap(stderrors.New("exit status 2"), errors.ErrShell, "install failed")))

	// A plain wrapper around a coded error summarises the coded error.
	wrapped := fmt.Errorf("context: %w", errors.New(errors.ErrLink, "failed to create symlink"))
	assert.Equal(t, "failed to create symlink", errors.Summary(wrapped))
}

func TestWrapNil(t *testing.T) {
	assert.Nil(t, errors.Wrap(nil, errors.ErrGit, "never"))
	assert.Nil(t, errors.Wrapf(nil, errors.ErrShell, "never %d", 1))
}

func TestUncodedErrors(t *testing.T) {
	plain := stderrors.New("plain")
	assert.Equal(t, errors.ErrUnknown, errors.GetErrorCode(plain))
	assert.False(t, errors.IsErrorCode(plain, errors.ErrUnknown))
	assert.Nil(t, errors.GetErrorDetails(plain))
	assert.Nil(t, errors.GetErrorDetails(nil))
}

func TestWithDetailOnLiteral(t *testing.T) {
	err := &errors.DotdotError{Code: errors.ErrTargetExists, Message: "target directory 'lib' already exists"}
	err.WithDetail("path", "/ws/lib").WithDetail("name", "lib")

	require.Len(t, err.Details, 2)
	assert.Equal(t, "[TARGET_EXISTS] target directory 'lib' already exists", err.Error())
}
