package ports

import "context"

// ProgressFunc reports bytes written so far and the expected total, or -1 when unknown.
type ProgressFunc func(done, total int64)

// Downloader fetches a URL into a local file.
//
//go:generate mockgen -source=downloader.go -destination=mocks/mock_downloader.go -package=mocks
type Downloader interface {
	Download(ctx context.Context, url, dest string, progress ProgressFunc) error
}
