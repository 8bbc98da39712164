package messages

// Release resolution and download messages.
const (
	ReleaseRepoRequired        = "repository is required"
	ReleaseRepoInvalidFmt      = "repository %q must be in the form owner/name"
	ReleaseCreateRequestErrFmt = "create latest release request: %w"
	ReleaseFetchErrFmt         = "%w: fetch latest release of %s: %w"
	ReleaseStatusErrFmt        = "%w: fetch latest release of %s: unexpected status %s"
	ReleaseDecodeErrFmt        = "%w: decode latest release of %s: %w"
	ReleaseAssetNotFoundFmt    = "%w: no %s zip in the latest release of %s"
	ReleaseRateLimitFmt        = "github api rate limit exceeded (%s, remaining=%s)"

	FetchURLRequired       = "download url is required"
	FetchCreateTempFmt     = "create temp file for download: %w"
	FetchCloseTempFmt      = "close temp file for download: %w"
	FetchCreateRequestFmt  = "%w: create download request for %s: %w"
	FetchDownloadFailedFmt = "%w: download %s: %w"

	LockOpenFmt = "open lock %s: %w"
	LockBusyFmt = "%w: %s is held by another modinst process"
	LockFmt     = "lock %s: %w"
)
