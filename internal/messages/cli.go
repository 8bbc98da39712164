package messages

// CLI messages for user-facing commands and prompts.
const (
	// RootUse is the CLI command name.
	RootUse = "modinst"
	// RootShort is the short description for the root command.
	RootShort       = "Install and cleanly remove game mods from GitHub releases"
	RootFlagConfig  = "Path to the config file (default ~/.modinst/config.toml)"
	RootFlagVerbose = "Log every step to stderr"
	RootFlagQuiet   = "Suppress non-error output"

	// VersionCommitFmt formats the commit hash for version display.
	VersionCommitFmt = "commit %s"
	VersionBuildFmt  = "built %s"
	VersionFullFmt   = "%s (%s)"
	VersionTemplate  = "{{.Version}}\n"

	// RateLimitHint follows a GitHub rate-limit error.
	RateLimitHint = "GitHub limits unauthenticated API requests per hour; wait a while and try again."

	FlagSteam = "Install into the Steam game directory"
	FlagEpic  = "Install into the Epic Games game directory"
	FlagDir   = "Install into this directory instead of the platform default"
	FlagYes   = "Skip the confirmation prompt"

	// InstallUse is the install command usage.
	InstallUse         = "install <mod|owner/repo>"
	InstallShort       = "Download the latest release of a mod and extract it into the game directory"
	InstallStartFmt    = "Installing %s (%s) into %s\n"
	InstallDoneFmt     = "Installed %d files (%d new directories) into %s\n"
	InstallReplacedFmt = "Replaced the previous install record from %s (%s); it can no longer be cleaned.\n"
	InstallWarning     = "Existing files with the same names are overwritten. Back up the game folder first."

	// PathUse is the path command usage.
	PathUse   = "path"
	PathShort = "Print the directory a mod would be installed into"

	// PlanUse is the plan command usage.
	PlanUse           = "plan <mod|owner/repo>"
	PlanShort         = "Preview which files an install would create or overwrite (dry-run)"
	PlanHeaderFmt     = "Install plan (dry-run) for %s into %s: no files were written.\n"
	PlanNewFmt        = "  + %s\n"
	PlanOverwriteFmt  = "  ~ %s\n"
	PlanSameFmt       = "  = %s\n"
	PlanDirFmt        = "  d %s/\n"
	PlanSummaryFmt    = "%d new, %d overwritten, %d unchanged, %d new directories\n"
	PlanFlagDiff      = "Show unified diffs for overwritten text files"
	PlanFlagDiffLines = "Maximum diff lines shown per file"

	// CleanUse is the clean command usage.
	CleanUse              = "clean"
	CleanShort            = "Remove everything the most recent install created"
	CleanNothingRecorded  = "Nothing to clean: no install has been recorded."
	CleanRequiresTerminal = "clean asks for confirmation; run it in an interactive terminal or pass --yes"
	CleanConfirmFmt       = "Remove %d installed files from %s?"
	CleanCancelled        = "Clean cancelled."
	CleanDoneFmt          = "Removed the install from %s\n"
	CleanRootUnknown      = "the install record does not say where it was installed; pass --steam, --epic or --dir"
	CleanRootMismatchFmt  = "the selected placement resolves to %s but the recorded install went to %s; re-run without placement flags to clean the recorded directory"
	CleanAffirmative      = "Remove"
	CleanNegative         = "Keep"
	CleanFilesHeader      = "Files recorded by the last install:"
	CleanFileLineFmt      = "  - %s\n"
	CleanMoreFilesFmt     = "  ... and %d more\n"
	CleanLeftoverDirsFmt  = "%d directories were left in place because they still contain other files.\n"
	StatusUse             = "status"
	StatusShort           = "Show the most recent install record"
	StatusNone            = "No install recorded."
	StatusRecordFmt       = "Last install %s\n  repo:      %s\n  platform:  %s\n  asset:     %s\n  root:      %s\n  installed: %s\n  files:     %d\n  new dirs:  %d\n"
	ModsUse               = "mods"
	ModsShort             = "List the configured mod presets"
	ModsLineFmt           = "  %-20s %-22s %s\n"
)
