package cli

// Short messages (one-liners)
const (
	// Command descriptions
	MsgRootShort       = "Reconcile a workspace of independently versioned git repos"
	MsgRootLong        = `dotdot manages a workspace of git repositories declared in dotdot.toml files.

The workspace root holds the root dotdot.toml. Repos cloned into the root may
carry their own dotdot.toml declaring further repos; declarations closer to
the root win. dotdot restores missing checkouts at their pinned revisions,
pulls, records new pins and exposes selected repo paths as symlinks at the
workspace root.`
	MsgInitShort       = "Create an empty dotdot.toml in the current directory"
	MsgStatusShort     = "Show the state of every declared repo"
	MsgRestoreShort    = "Clone missing repos and check out pinned revisions"
	MsgPullShort       = "Fast-forward every clean repo that is on a branch"
	MsgUpdateShort     = "Pin repos at their current revisions"
	MsgUpdateLong      = "Update records the current revision of each existing repo in the config that declared it. With no arguments every declared repo is updated."
	MsgCloneShort      = "Clone a repo into the workspace and declare it"
	MsgExecShort       = "Run a shell command in every existing repo"
	MsgLinkShort       = "Manage symlinks for exposed repo paths"
	MsgLinkStatusShort = "Show expose mappings, conflicts and link state"
	MsgLinkCreateShort = "Create symlinks for exposed paths"
	MsgLinkRemoveShort = "Remove symlinks for exposed paths"
	MsgVersionShort    = "Print version information"
	MsgCompletionShort = "Generate shell completion script"

	// Output
	MsgWorkspaceFormat     = "dotdot workspace: %s"
	MsgInitialized         = "Initialized dotdot workspace at %s"
	MsgAlreadyInitialized  = "Workspace already initialized (%s)"
	MsgDryRunNotice        = "Dry run - no changes will be made"
	MsgDivergedWarning     = "Warning: some repos are now diverged from their pinned revisions."
	MsgDivergedHint        = "Run 'dotdot update' to pin the new revisions."
	MsgClonedFormat        = "Cloned %s at %s"
	MsgDeclaredFormat      = "Declared %s in %s"
	MsgInstalledFormat     = "Ran install for %s"
	MsgNoExposes           = "No expose configurations found"
	MsgConflictsHeading    = "Conflicts:"
	MsgMappingsHeading     = "Expose mappings:"
	MsgForceHint           = "Use --force to overwrite with the first match"
	MsgCreatingLinks       = "Creating symlinks..."
	MsgRemovingLinks       = "Removing symlinks..."
	MsgCreateAbortedFormat = "Aborted: %d conflicting target(s), nothing was changed"

	// Flag descriptions
	MsgFlagVerbose = "Increase verbosity (-v INFO, -vv DEBUG, -vvv TRACE)"
	MsgFlagCwd     = "Run as if dotdot was started in this directory"
	MsgFlagColor   = "Colour output: auto, always or never"
	MsgFlagDryRun  = "Preview changes without executing them"
	MsgFlagForce   = "Replace existing targets and let the first mapping win conflicts"
	MsgFlagInstall = "Shell command to run in the new checkout and record as its install step"
)
