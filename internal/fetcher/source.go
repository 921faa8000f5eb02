package fetcher

import (
	"context"
	"net/url"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/rotisserie/eris"
	"go.uber.org/zap"
)

// Resolver turns import sources (local paths, http(s) or ftp URLs) into
// local file paths. Each remote file lands in its own directory under
// TempDir and keeps its base name so the derived table name does not change.
type Resolver struct {
	HTTP    Fetcher
	FTP     Fetcher
	TempDir string
}

// NewResolver creates a Resolver backed by the default HTTP and FTP fetchers.
func NewResolver(tempDir string, httpOpts HTTPOptions) *Resolver {
	return &Resolver{
		HTTP:    NewHTTPFetcher(httpOpts),
		FTP:     NewFTPFetcher(FTPOptions{Timeout: httpOpts.Timeout}),
		TempDir: tempDir,
	}
}

// IsRemote reports whether source names an http(s) or ftp URL.
func IsRemote(source string) bool {
	switch scheme(source) {
	case "http", "https", "ftp":
		return true
	}
	return false
}

func scheme(source string) string {
	i := strings.Index(source, "://")
	if i <= 0 {
		return ""
	}
	return strings.ToLower(source[:i])
}

// Resolve returns a local path for source, downloading remote files into
// the resolver's temp dir.
func (r *Resolver) Resolve(ctx context.Context, source string) (string, error) {
	var f Fetcher
	switch scheme(source) {
	case "":
		if _, err := os.Stat(source); err != nil {
			return "", eris.Wrapf(err, "fetcher: source %s", source)
		}
		return source, nil
	case "file":
		u, err := url.Parse(source)
		if err != nil {
			return "", eris.Wrapf(err, "fetcher: parse %s", source)
		}
		return r.Resolve(ctx, u.Path)
	case "http", "https":
		f = r.HTTP
	case "ftp":
		f = r.FTP
	default:
		return "", eris.Errorf("fetcher: unsupported source scheme in %s", source)
	}

	u, err := url.Parse(source)
	if err != nil {
		return "", eris.Wrapf(err, "fetcher: parse %s", source)
	}
	name := path.Base(u.Path)
	if name == "." || name == "/" {
		return "", eris.Errorf("fetcher: no file name in %s", source)
	}

	if err := os.MkdirAll(r.TempDir, 0o755); err != nil {
		return "", eris.Wrapf(err, "fetcher: create temp dir %s", r.TempDir)
	}
	dir, err := os.MkdirTemp(r.TempDir, "src-*")
	if err != nil {
		return "", eris.Wrapf(err, "fetcher: create download dir in %s", r.TempDir)
	}
	dst := filepath.Join(dir, name)

	n, err := f.DownloadToFile(ctx, source, dst)
	if err != nil {
		os.RemoveAll(dir) //nolint:errcheck
		return "", eris.Wrapf(err, "fetcher: download %s", source)
	}
	zap.L().Info("fetcher: downloaded source",
		zap.String("source", source),
		zap.String("path", dst),
		zap.Int64("bytes", n),
	)
	return dst, nil
}
