// Package index implements the artifact source against a PyPI-style JSON
// index.
package index

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"go.trai.ch/zerr"

	"go.blast.dev/blast/internal/adapters/config"
	"go.blast.dev/blast/internal/core/domain"
	"go.blast.dev/blast/internal/core/ports"
)

// Client implements ports.ArtifactSource over a package index speaking the
// JSON API. Transient failures are retried with exponential backoff;
// not-found responses map to domain errors and are never retried.
type Client struct {
	baseURL  string
	cacheDir string
	retries  int
	backoff  time.Duration
	http     *http.Client
	logger   ports.Logger
}

// NewClient creates a new index client from the effective configuration.
func NewClient(cfg *config.Config, logger ports.Logger) *Client {
	return &Client{
		baseURL:  strings.TrimSuffix(cfg.IndexURL, "/"),
		cacheDir: cfg.CacheDir,
		retries:  cfg.FetchRetries,
		backoff:  cfg.FetchBackoff,
		http: &http.Client{
			Timeout: cfg.FetchTimeout,
		},
		logger: logger,
	}
}

// projectDocument is the JSON shape of the per-project endpoint.
type projectDocument struct {
	Releases map[string][]fileEntry `json:"releases"`
}

// releaseDocument is the JSON shape of the per-version endpoint.
type releaseDocument struct {
	Info struct {
		RequiresDist []string `json:"requires_dist"`
	} `json:"info"`
	URLs []fileEntry `json:"urls"`
}

type fileEntry struct {
	URL         string `json:"url"`
	PackageType string `json:"packagetype"`
	Digests     struct {
		SHA256 string `json:"sha256"`
	} `json:"digests"`
}

// ListVersions returns the available versions of a package, newest first.
// Release entries with no downloadable files are skipped, as are versions
// the version parser rejects.
func (c *Client) ListVersions(ctx context.Context, name domain.PackageName) ([]domain.Version, error) {
	var doc projectDocument
	endpoint := fmt.Sprintf("%s/%s/json", c.baseURL, url.PathEscape(name.String()))
	if err := c.getJSON(ctx, endpoint, &doc); err != nil {
		if errors.Is(err, errNotFound) {
			return nil, zerr.With(domain.ErrArtifactNotFound, "package", name.String())
		}
		return nil, err
	}

	versions := make([]domain.Version, 0, len(doc.Releases))
	for raw, files := range doc.Releases {
		if len(files) == 0 {
			continue
		}
		v, err := domain.ParseVersion(raw)
		if err != nil {
			continue
		}
		versions = append(versions, v)
	}
	sort.Slice(versions, func(i, j int) bool {
		return versions[i].Compare(versions[j]) > 0
	})
	return versions, nil
}

// FetchMetadata returns the dependencies a package declares at a version.
// Requirements carrying environment markers (extras, platform conditions)
// are skipped: blast installs the unconditional dependency set.
func (c *Client) FetchMetadata(ctx context.Context, name domain.PackageName, version domain.Version) ([]domain.PackageSpec, error) {
	doc, err := c.release(ctx, name, version)
	if err != nil {
		return nil, err
	}

	specs := make([]domain.PackageSpec, 0, len(doc.Info.RequiresDist))
	for _, raw := range doc.Info.RequiresDist {
		if strings.Contains(raw, ";") {
			continue
		}
		spec, err := domain.ParseSpec(normalizeRequirement(raw))
		if err != nil {
			return nil, zerr.With(zerr.Wrap(err, "failed to parse dependency"), "requirement", raw)
		}
		specs = append(specs, spec)
	}
	return specs, nil
}

// FetchArtifact downloads the package payload into the content-addressed
// cache and returns its local path with the index-declared checksum. A
// cached file whose digest matches is reused without a network round trip.
func (c *Client) FetchArtifact(ctx context.Context, name domain.PackageName, version domain.Version) (domain.Artifact, error) {
	doc, err := c.release(ctx, name, version)
	if err != nil {
		return domain.Artifact{}, err
	}

	file, err := pickFile(doc.URLs)
	if err != nil {
		return domain.Artifact{}, zerr.With(err, "package", name.String())
	}

	artifact := domain.Artifact{
		Name:     name,
		Version:  version,
		Checksum: file.Digests.SHA256,
	}

	cached := filepath.Join(c.cacheDir, file.Digests.SHA256)
	if ok, _ := digestMatches(cached, file.Digests.SHA256); ok {
		artifact.Path = cached
		return artifact, nil
	}

	if err := c.download(ctx, file.URL, cached); err != nil {
		return domain.Artifact{}, err
	}
	artifact.Path = cached
	return artifact, nil
}

// release fetches the per-version document, mapping a missing version to
// domain.ErrVersionNotFound.
func (c *Client) release(ctx context.Context, name domain.PackageName, version domain.Version) (*releaseDocument, error) {
	var doc releaseDocument
	endpoint := fmt.Sprintf("%s/%s/%s/json", c.baseURL, url.PathEscape(name.String()), url.PathEscape(version.String()))
	if err := c.getJSON(ctx, endpoint, &doc); err != nil {
		if errors.Is(err, errNotFound) {
			err = zerr.With(domain.ErrVersionNotFound, "package", name.String())
			return nil, zerr.With(err, "version", version.String())
		}
		return nil, err
	}
	return &doc, nil
}

// errNotFound is internal to the retry loop; callers translate it to the
// appropriate domain error.
var errNotFound = errors.New("not found")

// getJSON performs a GET with bounded retries and decodes the body into out.
func (c *Client) getJSON(ctx context.Context, endpoint string, out any) error {
	body, err := c.get(ctx, endpoint)
	if err != nil {
		return err
	}
	defer body.Close()

	if err := json.NewDecoder(body).Decode(out); err != nil {
		return zerr.With(zerr.Wrap(err, "failed to decode index response"), "url", endpoint)
	}
	return nil
}

// get issues the request, retrying transient failures. 4xx responses are
// terminal; 5xx and transport errors are retried up to the configured limit
// with doubling backoff.
func (c *Client) get(ctx context.Context, endpoint string) (io.ReadCloser, error) {
	var lastErr error
	backoff := c.backoff

	for attempt := 0; attempt <= c.retries; attempt++ {
		if attempt > 0 {
			c.logger.Warn(fmt.Sprintf("retrying %s (attempt %d/%d)", endpoint, attempt, c.retries))
			select {
			case <-ctx.Done():
				return nil, ctx.Err()
			case <-time.After(backoff):
			}
			backoff *= 2
		}

		req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
		if err != nil {
			return nil, zerr.Wrap(err, "failed to build index request")
		}
		req.Header.Set("Accept", "application/json")

		resp, err := c.http.Do(req)
		if err != nil {
			if ctx.Err() != nil {
				return nil, ctx.Err()
			}
			lastErr = err
			continue
		}

		switch {
		case resp.StatusCode == http.StatusOK:
			return resp.Body, nil
		case resp.StatusCode == http.StatusNotFound:
			resp.Body.Close()
			return nil, errNotFound
		case resp.StatusCode >= 500:
			resp.Body.Close()
			lastErr = fmt.Errorf("index returned %s", resp.Status)
			continue
		default:
			resp.Body.Close()
			return nil, zerr.With(zerr.New("index returned "+resp.Status), "url", endpoint)
		}
	}

	err := zerr.With(domain.ErrNetworkFailure, "url", endpoint)
	return nil, zerr.With(err, "cause", lastErr.Error())
}

// download streams the artifact to dest via a temp file in the cache
// directory, renamed into place only after the full body arrived.
func (c *Client) download(ctx context.Context, rawURL, dest string) error {
	if err := os.MkdirAll(filepath.Dir(dest), 0o755); err != nil {
		return zerr.Wrap(err, "failed to create cache directory")
	}

	body, err := c.get(ctx, rawURL)
	if err != nil {
		if errors.Is(err, errNotFound) {
			return zerr.With(domain.ErrArtifactNotFound, "url", rawURL)
		}
		return err
	}
	defer body.Close()

	tmp, err := os.CreateTemp(filepath.Dir(dest), ".download-*.tmp")
	if err != nil {
		return zerr.Wrap(err, "failed to create temp download file")
	}
	defer os.Remove(tmp.Name())

	if _, err := io.Copy(tmp, body); err != nil {
		tmp.Close()
		return zerr.Wrap(err, "failed to download artifact")
	}
	if err := tmp.Close(); err != nil {
		return zerr.Wrap(err, "failed to close downloaded artifact")
	}
	if err := os.Rename(tmp.Name(), dest); err != nil {
		return zerr.Wrap(err, "failed to move artifact into cache")
	}
	return nil
}

// pickFile chooses the artifact to install: wheels first, then sdists.
func pickFile(files []fileEntry) (fileEntry, error) {
	for _, f := range files {
		if f.PackageType == "bdist_wheel" {
			return f, nil
		}
	}
	for _, f := range files {
		if f.PackageType == "sdist" {
			return f, nil
		}
	}
	return fileEntry{}, zerr.Wrap(domain.ErrArtifactNotFound, "release has no installable files")
}

// digestMatches reports whether the file at path hashes to the hex digest.
func digestMatches(path, digest string) (bool, error) {
	f, err := os.Open(path)
	if err != nil {
		return false, err
	}
	defer f.Close()

	h := sha256.New()
	if _, err := io.Copy(h, f); err != nil {
		return false, err
	}
	return hex.EncodeToString(h.Sum(nil)) == digest, nil
}

// normalizeRequirement strips the parenthesized constraint form PyPI
// metadata sometimes uses, "foo (>=1.0)" becoming "foo>=1.0".
func normalizeRequirement(raw string) string {
	raw = strings.ReplaceAll(raw, "(", "")
	raw = strings.ReplaceAll(raw, ")", "")
	return strings.ReplaceAll(raw, " ", "")
}

var _ ports.ArtifactSource = (*Client)(nil)
