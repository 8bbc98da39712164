// Package fetch downloads release archives to private temporary files.
package fetch

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/cavaliergopher/grab/v3"

	"github.com/project-echo/mod-installer/internal/messages"
)

// ErrTransport wraps every download failure.
var ErrTransport = errors.New("download failed")

// TempPattern names downloaded archives in the temp directory.
const TempPattern = "modinst-*.zip"

const progressInterval = 100 * time.Millisecond

// ProgressFunc receives the bytes written so far and the expected size, which is -1
// when the server does not send a length.
type ProgressFunc func(complete int64, total int64)

// Fetcher downloads URLs to fresh temporary files.
type Fetcher struct {
	// Client defaults to a new grab client when nil.
	Client    *grab.Client
	UserAgent string
	// TempDir defaults to os.TempDir when empty.
	TempDir string
	// Progress, when set, is called while a download runs and once when it ends.
	Progress ProgressFunc
}

// New returns a Fetcher that identifies itself with userAgent.
func New(userAgent string) *Fetcher {
	client := grab.NewClient()
	if strings.TrimSpace(userAgent) != "" {
		client.UserAgent = userAgent
	}
	return &Fetcher{Client: client, UserAgent: userAgent}
}

// ToTemp downloads url into a new temporary file and returns its path. Each call gets
// its own file, so concurrent installs never share scratch space. The caller removes
// the file; on failure it has already been removed.
func (f *Fetcher) ToTemp(ctx context.Context, url string) (string, error) {
	if strings.TrimSpace(url) == "" {
		return "", errors.New(messages.FetchURLRequired)
	}
	if ctx == nil {
		ctx = context.Background()
	}

	tempFile, err := os.CreateTemp(f.TempDir, TempPattern)
	if err != nil {
		return "", fmt.Errorf(messages.FetchCreateTempFmt, err)
	}
	tempPath := tempFile.Name()
	if err := tempFile.Close(); err != nil {
		_ = os.Remove(tempPath)
		return "", fmt.Errorf(messages.FetchCloseTempFmt, err)
	}

	if err := f.download(ctx, url, tempPath); err != nil {
		_ = os.Remove(tempPath)
		return "", err
	}
	return tempPath, nil
}

func (f *Fetcher) download(ctx context.Context, url string, dst string) error {
	req, err := grab.NewRequest(dst, url)
	if err != nil {
		return fmt.Errorf(messages.FetchCreateRequestFmt, ErrTransport, url, err)
	}
	req = req.WithContext(ctx)
	req.NoResume = true

	resp := f.client().Do(req)
	if f.Progress != nil {
		f.watch(resp)
	}
	if err := resp.Err(); err != nil {
		return fmt.Errorf(messages.FetchDownloadFailedFmt, ErrTransport, url, err)
	}
	return nil
}

// watch reports progress until resp completes.
func (f *Fetcher) watch(resp *grab.Response) {
	ticker := time.NewTicker(progressInterval)
	defer ticker.Stop()
	for {
		select {
		case <-ticker.C:
			f.Progress(resp.BytesComplete(), resp.Size())
		case <-resp.Done:
			f.Progress(resp.BytesComplete(), resp.Size())
			return
		}
	}
}

func (f *Fetcher) client() *grab.Client {
	if f.Client != nil {
		return f.Client
	}
	f.Client = grab.NewClient()
	if strings.TrimSpace(f.UserAgent) != "" {
		f.Client.UserAgent = f.UserAgent
	}
	return f.Client
}
