// Package release resolves the download URL of a mod's latest GitHub release asset.
package release

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/project-echo/mod-installer/internal/messages"
	"github.com/project-echo/mod-installer/internal/placement"
)

// DefaultBaseURL is the GitHub REST API root.
const DefaultBaseURL = "https://api.github.com"

// DefaultUserAgent is sent with every API request; GitHub rejects requests without one.
const DefaultUserAgent = "Echo-Download-Assistant"

var (
	// ErrAssetNotFound is returned when the latest release has no zip for the platform.
	ErrAssetNotFound = errors.New("release asset not found")
	// ErrTransport wraps network failures and unexpected HTTP responses.
	ErrTransport = errors.New("release lookup failed")
)

// RateLimitError indicates GitHub's API rate limit was hit.
type RateLimitError struct {
	StatusCode int
	Status     string
	Remaining  *int
}

func (e *RateLimitError) Error() string {
	remainingText := "unknown"
	if e.Remaining != nil {
		remainingText = strconv.Itoa(*e.Remaining)
	}
	return fmt.Sprintf(messages.ReleaseRateLimitFmt, e.Status, remainingText)
}

// Unwrap makes a rate limit count as a transport failure.
func (e *RateLimitError) Unwrap() error {
	return ErrTransport
}

// IsRateLimitError reports whether err represents a GitHub API rate-limit condition.
func IsRateLimitError(err error) bool {
	var rl *RateLimitError
	return errors.As(err, &rl)
}

// Client looks up releases through the GitHub REST API.
// The zero value talks to DefaultBaseURL with http.DefaultClient.
type Client struct {
	BaseURL    string
	UserAgent  string
	HTTPClient *http.Client
}

// Asset is one downloadable file attached to a release.
type Asset struct {
	Name        string `json:"name"`
	DownloadURL string `json:"browser_download_url"`
}

type latestReleaseResponse struct {
	Assets []Asset `json:"assets"`
}

// LatestAssetURL returns the download URL of the first zip asset in repo's latest release
// whose name mentions platform. It does not retry.
func (c *Client) LatestAssetURL(ctx context.Context, repo string, platform placement.Platform) (string, error) {
	if platform.Keyword() == "" {
		return "", placement.ErrNoPlatformSelected
	}
	assets, err := c.latestAssets(ctx, repo)
	if err != nil {
		return "", err
	}
	asset, ok := PickAsset(assets, platform)
	if !ok {
		return "", fmt.Errorf(messages.ReleaseAssetNotFoundFmt, ErrAssetNotFound, platform.Keyword(), repo)
	}
	return asset.DownloadURL, nil
}

func (c *Client) latestAssets(ctx context.Context, repo string) ([]Asset, error) {
	if err := ValidateRepo(repo); err != nil {
		return nil, err
	}
	if ctx == nil {
		ctx = context.Background()
	}

	url := strings.TrimRight(c.baseURL(), "/") + "/repos/" + repo + "/releases/latest"
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf(messages.ReleaseCreateRequestErrFmt, err)
	}
	req.Header.Set("Accept", "application/vnd.github+json")
	req.Header.Set("User-Agent", c.userAgent())

	resp, err := c.httpClient().Do(req)
	if err != nil {
		return nil, fmt.Errorf(messages.ReleaseFetchErrFmt, ErrTransport, repo, err)
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	if resp.StatusCode != http.StatusOK {
		if rateLimitErr := rateLimitErrorFromResponse(resp); rateLimitErr != nil {
			return nil, rateLimitErr
		}
		return nil, fmt.Errorf(messages.ReleaseStatusErrFmt, ErrTransport, repo, resp.Status)
	}

	var payload latestReleaseResponse
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return nil, fmt.Errorf(messages.ReleaseDecodeErrFmt, ErrTransport, repo, err)
	}
	return payload.Assets, nil
}

// PickAsset returns the first asset whose name ends in ".zip" and contains the
// platform keyword, ignoring case.
func PickAsset(assets []Asset, platform placement.Platform) (Asset, bool) {
	keyword := platform.Keyword()
	if keyword == "" {
		return Asset{}, false
	}
	for _, asset := range assets {
		// The extension match is case-sensitive; only the keyword ignores case.
		if strings.HasSuffix(asset.Name, ".zip") && strings.Contains(strings.ToLower(asset.Name), keyword) && asset.DownloadURL != "" {
			return asset, true
		}
	}
	return Asset{}, false
}

// ValidateRepo checks that repo has the form owner/name.
func ValidateRepo(repo string) error {
	if strings.TrimSpace(repo) == "" {
		return errors.New(messages.ReleaseRepoRequired)
	}
	owner, name, ok := strings.Cut(repo, "/")
	if !ok || owner == "" || name == "" || strings.Contains(name, "/") ||
		strings.ContainsAny(repo, " \t\r\n?#") || owner == ".." || name == ".." {
		return fmt.Errorf(messages.ReleaseRepoInvalidFmt, repo)
	}
	return nil
}

func (c *Client) baseURL() string {
	if strings.TrimSpace(c.BaseURL) == "" {
		return DefaultBaseURL
	}
	return c.BaseURL
}

func (c *Client) userAgent() string {
	if strings.TrimSpace(c.UserAgent) == "" {
		return DefaultUserAgent
	}
	return c.UserAgent
}

func (c *Client) httpClient() *http.Client {
	if c.HTTPClient == nil {
		return http.DefaultClient
	}
	return c.HTTPClient
}

func rateLimitErrorFromResponse(resp *http.Response) *RateLimitError {
	if resp == nil {
		return nil
	}
	if resp.StatusCode == http.StatusTooManyRequests {
		return &RateLimitError{StatusCode: resp.StatusCode, Status: resp.Status}
	}
	// GitHub returns 403 Forbidden for unauthenticated exhaustion; confirm with rate-limit headers.
	if resp.StatusCode == http.StatusForbidden {
		remainingStr := strings.TrimSpace(resp.Header.Get("X-RateLimit-Remaining"))
		if remainingStr == "" {
			return nil
		}
		remaining, err := strconv.Atoi(remainingStr)
		if err != nil {
			return nil //nolint:nilerr // Malformed header means we cannot confirm rate limiting.
		}
		if remaining == 0 {
			return &RateLimitError{StatusCode: resp.StatusCode, Status: resp.Status, Remaining: &remaining}
		}
	}
	return nil
}
