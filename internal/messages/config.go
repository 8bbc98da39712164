package messages

// Config, state and logging messages.
const (
	ConfigMissingFileFmt      = "failed to read config %s: %w"
	ConfigInvalidConfigFmt    = "invalid config %s: %w"
	ConfigUnrecognizedKeysFmt = "config %s contains unrecognized keys: %v."
	ConfigValidationGuidance  = "Fix the config file or delete it to fall back to the defaults."
	ConfigResolveHomeFmt      = "resolve home dir: %w"
	ConfigExpandPathFmt       = "expand path %q: %w"

	ConfigTimeoutNegative    = "release.timeout_seconds must be zero or positive"
	ConfigModNameRequiredFmt = "mods[%d].name is required"
	ConfigModRepoInvalidFmt  = "mods[%d] (%s): %w"
	ConfigModDuplicateFmt    = "mods[%d]: duplicate mod name %q"
	ConfigLogSizeNegative    = "log.max_size_mb must be zero or positive"
	ConfigLogBackupsNegative = "log.max_backups must be zero or positive"
	ConfigUnknownModFmt      = "%w %q: use a preset name from `modinst mods` or an owner/repo"

	StateReadFmt   = "read install record %s: %w"
	StateDecodeFmt = "decode install record %s: %w"
	StateEncodeFmt = "encode install record: %w"
	StateWriteFmt  = "write install record %s: %w"
	StateRemoveFmt = "remove install record %s: %w"
	StateMkdirFmt  = "create state directory %s: %w"

	PlacementNoPlatform   = "no install platform selected"
	PlacementNoDefaultFmt = "%w: no default %s directory on %s; pass --dir"
)
