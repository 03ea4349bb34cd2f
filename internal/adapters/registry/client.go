// Package registry implements the Registry port over the HTTP source layout served by ypms.json.
package registry

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"net"
	"net/http"
	"os"
	"path/filepath"
	"slices"
	"sync"
	"time"

	"github.com/cespare/xxhash/v2"
	"github.com/rs/dnscache"
	"go.trai.ch/ypms/internal/core/domain"
	"go.trai.ch/ypms/internal/core/ports"
	"go.trai.ch/zerr"
	"golang.org/x/sync/singleflight"
)

const dialTimeout = 10 * time.Second

// Client implements ports.Registry with an on-disk response cache.
type Client struct {
	settings   *domain.Settings
	sources    ports.SourceStore
	logger     ports.Logger
	httpClient *http.Client

	group   singleflight.Group
	mu      sync.Mutex
	configs map[string]*domain.SourceConfig
}

// NewClient creates a registry client using a DNS-caching transport.
func NewClient(settings *domain.Settings, sources ports.SourceStore, logger ports.Logger) *Client {
	return newClientWithHTTP(settings, sources, logger, &http.Client{
		Timeout:   settings.HTTPTimeout,
		Transport: newTransport(settings.HTTPTimeout),
	})
}

func newClientWithHTTP(
	settings *domain.Settings,
	sources ports.SourceStore,
	logger ports.Logger,
	client *http.Client,
) *Client {
	return &Client{
		settings:   settings,
		sources:    sources,
		logger:     logger,
		httpClient: client,
		configs:    make(map[string]*domain.SourceConfig),
	}
}

// newTransport returns a transport that resolves hosts through a shared DNS cache.
func newTransport(headerTimeout time.Duration) *http.Transport {
	resolver := &dnscache.Resolver{}
	dialer := &net.Dialer{
		Timeout:   dialTimeout,
		KeepAlive: 30 * time.Second,
	}
	return &http.Transport{
		Proxy: http.ProxyFromEnvironment,
		DialContext: func(ctx context.Context, network, addr string) (net.Conn, error) {
			host, port, err := net.SplitHostPort(addr)
			if err != nil {
				return nil, err
			}
			ips, err := resolver.LookupHost(ctx, host)
			if err != nil {
				return nil, err
			}
			var lastErr error
			for _, ip := range ips {
				conn, err := dialer.DialContext(ctx, network, net.JoinHostPort(ip, port))
				if err == nil {
					return conn, nil
				}
				lastErr = err
			}
			if lastErr == nil {
				lastErr = fmt.Errorf("no addresses for host %s", host)
			}
			return nil, lastErr
		},
		MaxIdleConns:          32,
		MaxIdleConnsPerHost:   8,
		IdleConnTimeout:       90 * time.Second,
		TLSHandshakeTimeout:   10 * time.Second,
		ResponseHeaderTimeout: headerTimeout,
	}
}

// ResolveSource returns the named source, or picks the default one when name is empty.
// The default is the configured default source, then "yopr", then the first name in order.
func (c *Client) ResolveSource(name string) (string, error) {
	srcs, err := c.sources.Sources()
	if err != nil {
		return "", err
	}

	if name != "" {
		if _, ok := srcs[name]; !ok {
			return "", zerr.With(zerr.Wrap(domain.ErrSourceNotFound, "unknown source"), "source", name)
		}
		return name, nil
	}

	if def := c.settings.DefaultSource; def != "" {
		if _, ok := srcs[def]; !ok {
			return "", zerr.With(zerr.Wrap(domain.ErrSourceNotFound, "unknown default source"), "source", def)
		}
		return def, nil
	}
	if _, ok := srcs[domain.DefaultSourceName]; ok {
		return domain.DefaultSourceName, nil
	}
	if len(srcs) == 0 {
		return "", domain.ErrNoSourcesConfigured
	}
	names := make([]string, 0, len(srcs))
	for n := range srcs {
		names = append(names, n)
	}
	slices.Sort(names)
	return names[0], nil
}

// FetchPackageInfo fetches the metadata of user/pkg from source.
func (c *Client) FetchPackageInfo(ctx context.Context, source, user, pkg string) (*domain.PackageInfo, error) {
	cfg, err := c.sourceConfig(ctx, source, false)
	if err != nil {
		return nil, err
	}

	var info domain.PackageInfo
	status, err := c.getJSON(ctx, cfg.PackageURL(user, pkg), false, &info)
	if err != nil {
		if status == http.StatusNotFound {
			notFound := zerr.With(zerr.Wrap(domain.ErrPackageNotFound, "unknown package"), "package", user+"/"+pkg)
			return nil, zerr.With(notFound, "source", source)
		}
		return nil, err
	}
	if info.ReleaseURL == "" {
		parseErr := zerr.With(zerr.Wrap(domain.ErrRegistryParseFailed, "missing package.release.url"), "package", user+"/"+pkg)
		return nil, zerr.With(parseErr, "source", source)
	}

	info.Source = source
	info.Ref = domain.PackageRef{User: user, Name: pkg}
	return &info, nil
}

// FetchReleaseInfo fetches the metadata of a concrete release.
func (c *Client) FetchReleaseInfo(ctx context.Context, info *domain.PackageInfo, version string) (*domain.Release, error) {
	version, err := info.ResolveTag(version)
	if err != nil {
		return nil, err
	}

	var rel domain.Release
	if _, err := c.getJSON(ctx, info.ReleaseURLFor(version), false, &rel); err != nil {
		return nil, zerr.With(zerr.With(err, "package", info.Ref.String()), "version", version)
	}
	rel.ID = version
	return &rel, nil
}

// ResolveReleaseTag maps a tag or alias onto a concrete release id.
// An empty tag selects the default release, then the "latest" alias, then the first listed release.
func (c *Client) ResolveReleaseTag(info *domain.PackageInfo, tag string) (string, error) {
	return info.ResolveTag(tag)
}

// FetchIndex fetches the package index of source.
func (c *Client) FetchIndex(ctx context.Context, source string) (*domain.PackageIndex, error) {
	return c.fetchIndex(ctx, source, false)
}

func (c *Client) fetchIndex(ctx context.Context, source string, force bool) (*domain.PackageIndex, error) {
	cfg, err := c.sourceConfig(ctx, source, force)
	if err != nil {
		return nil, err
	}
	var idx domain.PackageIndex
	if _, err := c.getJSON(ctx, cfg.IndexURL(), force, &idx); err != nil {
		return nil, zerr.With(err, "source", source)
	}
	idx.Source = source
	return &idx, nil
}

// Refresh clears the response cache and re-fetches every source's config and index.
func (c *Client) Refresh(ctx context.Context) error {
	if err := os.RemoveAll(c.settings.CacheDir); err != nil {
		return zerr.With(zerr.Wrap(err, "failed to clear registry cache"), "path", c.settings.CacheDir)
	}
	c.mu.Lock()
	c.configs = make(map[string]*domain.SourceConfig)
	c.mu.Unlock()

	srcs, err := c.sources.Sources()
	if err != nil {
		return err
	}
	names := make([]string, 0, len(srcs))
	for n := range srcs {
		names = append(names, n)
	}
	slices.Sort(names)

	for _, name := range names {
		c.logger.Debug("refreshing source", "source", name)
		if _, err := c.fetchIndex(ctx, name, true); err != nil {
			return err
		}
	}
	return nil
}

// sourceConfig returns the parsed ypms.json of a source, memoized per client.
func (c *Client) sourceConfig(ctx context.Context, name string, force bool) (*domain.SourceConfig, error) {
	c.mu.Lock()
	cfg, ok := c.configs[name]
	c.mu.Unlock()
	if ok && !force {
		return cfg, nil
	}

	srcs, err := c.sources.Sources()
	if err != nil {
		return nil, err
	}
	url, ok := srcs[name]
	if !ok {
		return nil, zerr.With(zerr.Wrap(domain.ErrSourceNotFound, "unknown source"), "source", name)
	}

	var loaded domain.SourceConfig
	if _, err := c.getJSON(ctx, url, force, &loaded); err != nil {
		return nil, zerr.With(err, "source", name)
	}
	if err := loaded.Validate(); err != nil {
		return nil, zerr.With(err, "source", name)
	}

	c.mu.Lock()
	c.configs[name] = &loaded
	c.mu.Unlock()
	return &loaded, nil
}

// getJSON decodes the document at url into out, serving it from the cache unless force is set.
// It returns the HTTP status of a failed request, or zero.
func (c *Client) getJSON(ctx context.Context, url string, force bool, out any) (int, error) {
	cachePath := c.cachePath(url)
	if !force {
		//nolint:gosec // Path is built from the cache directory and a hashed filename
		if data, err := os.ReadFile(cachePath); err == nil {
			if err := json.Unmarshal(data, out); err == nil {
				c.logger.Debug("registry cache hit", "url", url)
				return 0, nil
			}
			c.logger.Debug("discarding unreadable cache entry", "path", cachePath)
		} else if !errors.Is(err, fs.ErrNotExist) {
			c.logger.Debug("registry cache read failed", "path", cachePath, "error", err)
		}
	}

	v, err, _ := c.group.Do(url, func() (any, error) {
		return c.fetch(ctx, url)
	})
	res, _ := v.(fetchResult)
	if err != nil {
		return res.status, err
	}

	if err := json.Unmarshal(res.body, out); err != nil {
		return 0, zerr.With(zerr.Wrap(domain.ErrRegistryParseFailed, "invalid JSON"), "url", url)
	}

	if err := atomicWriteFile(cachePath, res.body); err != nil {
		c.logger.Debug("registry cache write failed", "path", cachePath, "error", err)
	}
	return 0, nil
}

type fetchResult struct {
	body   []byte
	status int
}

func (c *Client) fetch(ctx context.Context, url string) (fetchResult, error) {
	c.logger.Debug("GET", "url", url)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, http.NoBody)
	if err != nil {
		return fetchResult{}, zerr.With(zerr.Wrap(err, domain.ErrRegistryRequestFailed.Error()), "url", url)
	}
	req.Header.Set("User-Agent", c.settings.UserAgent)
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fetchResult{}, zerr.With(zerr.Wrap(err, domain.ErrRegistryRequestFailed.Error()), "url", url)
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	if resp.StatusCode != http.StatusOK {
		apiErr := zerr.With(zerr.Wrap(domain.ErrRegistryRequestFailed, "unexpected HTTP status"), "status_code", resp.StatusCode)
		return fetchResult{status: resp.StatusCode}, zerr.With(apiErr, "url", url)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return fetchResult{}, zerr.With(zerr.Wrap(err, domain.ErrRegistryRequestFailed.Error()), "url", url)
	}
	return fetchResult{body: body, status: resp.StatusCode}, nil
}

func (c *Client) cachePath(url string) string {
	return filepath.Join(c.settings.CacheDir, fmt.Sprintf("%016x.json", xxhash.Sum64String(url)))
}

// atomicWriteFile writes data to a file atomically by writing to a temp file and renaming it.
func atomicWriteFile(path string, data []byte) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, domain.DirPerm); err != nil {
		return err
	}

	tmpFile, err := os.CreateTemp(dir, "registry-cache-*.json")
	if err != nil {
		return err
	}
	tmpName := tmpFile.Name()

	defer func() {
		if _, statErr := os.Stat(tmpName); statErr == nil {
			_ = os.Remove(tmpName)
		}
	}()

	if _, err := tmpFile.Write(data); err != nil {
		_ = tmpFile.Close()
		return err
	}
	if err := tmpFile.Close(); err != nil {
		return err
	}
	if err := os.Chmod(tmpName, domain.FilePerm); err != nil {
		return err
	}
	return os.Rename(tmpName, path)
}
