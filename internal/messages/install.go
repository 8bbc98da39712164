package messages

// Install engine messages.
const (
	// InstallRootRequired indicates the install root is required.
	InstallRootRequired    = "install root is required"
	InstallSystemRequired  = "install system is required"
	InstallArchiveRequired = "archive path is required"
	ServiceDepsRequired    = "release resolver and fetcher are required"

	InstallOpenArchiveFmt    = "open archive %s: %w"
	InstallResolveRootFmt    = "resolve install root %s: %w"
	InstallUnsafeEntryFmt    = "%w: %q resolves outside %s"
	InstallSymlinkEntryFmt   = "%w: %q passes through symlink %s"
	InstallStatFmt           = "failed to stat %s: %w"
	InstallCreateDirFmt      = "failed to create directory %s: %w"
	InstallRemoveExistingFmt = "failed to remove existing %s: %w"
	InstallOpenEntryFmt      = "failed to read archive entry %s: %w"
	InstallCreateFileFmt     = "failed to create %s: %w"
	InstallWriteFileFmt      = "failed to write %s: %w"
	InstallCloseFileFmt      = "failed to close %s: %w"
	InstallPartialCleanupFmt = "extraction failed and cleaning up the partial install also failed: %w"
	InstallRollbackRemoveFmt = "failed to remove %s: %w"
	InstallPreviewReadFmt    = "failed to read %s for preview: %w"
	InstallDiffTruncatedFmt  = "... (truncated to %d lines)"
)
