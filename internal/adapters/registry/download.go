package registry

import (
	"context"
	"io"
	"net/http"
	"os"
	"path/filepath"

	"go.trai.ch/ypms/internal/core/domain"
	"go.trai.ch/ypms/internal/core/ports"
	"go.trai.ch/zerr"
)

const downloadChunkSize = 64 * 1024

// Downloader implements ports.Downloader over HTTP.
type Downloader struct {
	userAgent  string
	httpClient *http.Client
}

// NewDownloader creates a downloader. The timeout bounds the wait for response headers only.
func NewDownloader(settings *domain.Settings) *Downloader {
	return &Downloader{
		userAgent:  settings.UserAgent,
		httpClient: &http.Client{Transport: newTransport(settings.HTTPTimeout)},
	}
}

// Download fetches url into dest, reporting progress after every chunk.
// The destination only appears once the body has been read completely.
func (d *Downloader) Download(ctx context.Context, url, dest string, progress ports.ProgressFunc) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, http.NoBody)
	if err != nil {
		return zerr.With(zerr.Wrap(err, domain.ErrDownloadFailed.Error()), "url", url)
	}
	req.Header.Set("User-Agent", d.userAgent)

	resp, err := d.httpClient.Do(req)
	if err != nil {
		return zerr.With(zerr.Wrap(err, domain.ErrDownloadFailed.Error()), "url", url)
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	if resp.StatusCode != http.StatusOK {
		statusErr := zerr.With(zerr.Wrap(domain.ErrDownloadFailed, "unexpected HTTP status"), "status_code", resp.StatusCode)
		return zerr.With(statusErr, "url", url)
	}

	dir := filepath.Dir(dest)
	if err := os.MkdirAll(dir, domain.DirPerm); err != nil {
		return zerr.With(zerr.Wrap(err, domain.ErrDownloadFailed.Error()), "path", dir)
	}

	tmpFile, err := os.CreateTemp(dir, ".ypms-download-*")
	if err != nil {
		return zerr.With(zerr.Wrap(err, domain.ErrDownloadFailed.Error()), "path", dest)
	}
	tmpName := tmpFile.Name()
	defer func() {
		if _, statErr := os.Stat(tmpName); statErr == nil {
			_ = os.Remove(tmpName)
		}
	}()

	if err := copyWithProgress(tmpFile, resp.Body, resp.ContentLength, progress); err != nil {
		_ = tmpFile.Close()
		return zerr.With(zerr.Wrap(err, domain.ErrDownloadFailed.Error()), "url", url)
	}
	if err := tmpFile.Close(); err != nil {
		return zerr.With(zerr.Wrap(err, domain.ErrDownloadFailed.Error()), "path", dest)
	}
	if err := os.Chmod(tmpName, domain.FilePerm); err != nil {
		return zerr.With(zerr.Wrap(err, domain.ErrDownloadFailed.Error()), "path", dest)
	}
	if err := os.Rename(tmpName, dest); err != nil {
		return zerr.With(zerr.Wrap(err, domain.ErrDownloadFailed.Error()), "path", dest)
	}
	return nil
}

// copyWithProgress copies src to dst in fixed chunks. total is -1 when unknown.
func copyWithProgress(dst io.Writer, src io.Reader, total int64, progress ports.ProgressFunc) error {
	buf := make([]byte, downloadChunkSize)
	var done int64
	for {
		n, readErr := src.Read(buf)
		if n > 0 {
			if _, err := dst.Write(buf[:n]); err != nil {
				return err
			}
			done += int64(n)
			if progress != nil {
				progress(done, total)
			}
		}
		if readErr == io.EOF {
			return nil
		}
		if readErr != nil {
			return readErr
		}
	}
}
