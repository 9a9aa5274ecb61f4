package fetch

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"io"
	"io/fs"
	"net/http"
	"net/url"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/spektral-labs/spektral-go/internal/branding"
	"github.com/vbauerster/mpb/v8"
	"github.com/vbauerster/mpb/v8/decor"
)

// tmpSuffix is appended to the destination during the staged download.
const tmpSuffix = ".tmp"

// Fetcher downloads dataset artifacts.
type Fetcher struct {
	httpClient *http.Client
	mirror     string
	out        io.Writer
	quiet      bool
}

// Option configures a Fetcher.
type Option func(*Fetcher)

// WithHTTPClient sets a custom HTTP client (useful for testing).
func WithHTTPClient(c *http.Client) Option {
	return func(f *Fetcher) { f.httpClient = c }
}

// WithMirror sets a mirror URL prefix. Downloads keep the original URL path
// but are served from the mirror host.
func WithMirror(mirror string) Option {
	return func(f *Fetcher) { f.mirror = mirror }
}

// WithOutput redirects progress output (default os.Stderr).
func WithOutput(w io.Writer) Option {
	return func(f *Fetcher) { f.out = w }
}

// WithQuiet disables progress output.
func WithQuiet() Option {
	return func(f *Fetcher) { f.quiet = true }
}

// New creates a Fetcher with the given options.
func New(opts ...Option) *Fetcher {
	f := &Fetcher{
		httpClient: http.DefaultClient,
		out:        os.Stderr,
	}
	for _, opt := range opts {
		opt(f)
	}
	return f
}

// Job describes one artifact to fetch. SHA256, when set, is the expected
// hex digest of the downloaded artifact (before extraction).
type Job struct {
	Name   string
	URL    string
	SHA256 string
	Dest   string
}

// Result describes a completed fetch.
type Result struct {
	SHA256 string // hex digest of the downloaded artifact
	Bytes  int64  // total size of the files under Dest
	Files  int    // number of files under Dest
}

// Fetch downloads the job's URL into a staging directory, verifies the
// checksum when one is given, unpacks zip / tar.gz / tgz artifacts, and
// promotes the staging directory to job.Dest with a rename. On any failure
// the staging directory is removed and Dest is left untouched.
func (f *Fetcher) Fetch(job Job) (*Result, error) {
	if job.URL == "" {
		return nil, fmt.Errorf("fetch %s: no source URL", job.Name)
	}
	if job.Dest == "" {
		return nil, fmt.Errorf("fetch %s: no destination", job.Name)
	}

	staging := job.Dest + tmpSuffix

	// Clean up any leftover staging dir from a previous failed attempt.
	_ = os.RemoveAll(staging)
	if err := os.MkdirAll(staging, 0755); err != nil {
		return nil, fmt.Errorf("creating staging directory: %w", err)
	}

	result, err := f.fetchInto(job, staging)
	if err != nil {
		_ = os.RemoveAll(staging)
		return nil, err
	}

	// Atomic promote: any prior Dest is replaced wholesale.
	if err := os.RemoveAll(job.Dest); err != nil {
		_ = os.RemoveAll(staging)
		return nil, fmt.Errorf("removing existing %s: %w", job.Dest, err)
	}
	if err := os.Rename(staging, job.Dest); err != nil {
		_ = os.RemoveAll(staging)
		return nil, fmt.Errorf("finalizing %s: %w", job.Dest, err)
	}

	return result, nil
}

// fetchInto performs the download/verify/extract steps inside the staging dir.
func (f *Fetcher) fetchInto(job Job, staging string) (*Result, error) {
	srcURL := job.URL
	if f.mirror != "" {
		srcURL = rewriteURL(f.mirror, job.URL)
	}

	req, err := http.NewRequest("GET", srcURL, nil)
	if err != nil {
		return nil, fmt.Errorf("creating download request: %w", err)
	}
	req.Header.Set("User-Agent", branding.UserAgent())

	resp, err := f.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("downloading %s: %w", job.Name, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("downloading %s: server returned status %d", job.Name, resp.StatusCode)
	}

	artifactPath := filepath.Join(staging, artifactName(srcURL, job.Name))
	sum, err := f.streamTo(artifactPath, resp, job.Name)
	if err != nil {
		return nil, err
	}

	if job.SHA256 != "" && sum != job.SHA256 {
		return nil, fmt.Errorf("checksum mismatch for %s: expected %s, got %s", job.Name, job.SHA256, sum)
	}

	if isArchive(artifactPath) {
		if err := extractArchive(artifactPath, staging); err != nil {
			return nil, fmt.Errorf("extracting %s: %w", job.Name, err)
		}
		if err := os.Remove(artifactPath); err != nil {
			return nil, fmt.Errorf("removing archive after extraction: %w", err)
		}
	}

	bytes, files, err := treeStats(staging)
	if err != nil {
		return nil, fmt.Errorf("sizing %s: %w", job.Name, err)
	}

	return &Result{SHA256: sum, Bytes: bytes, Files: files}, nil
}

// streamTo copies the response body to path, hashing as it goes, with a
// progress bar when the content length is known and output is enabled.
func (f *Fetcher) streamTo(path string, resp *http.Response, name string) (string, error) {
	out, err := os.Create(path)
	if err != nil {
		return "", fmt.Errorf("creating download file: %w", err)
	}
	defer out.Close()

	h := sha256.New()
	src := io.Reader(resp.Body)

	var progress *mpb.Progress
	var bar *mpb.Bar
	if !f.quiet && resp.ContentLength > 0 {
		progress = mpb.New(mpb.WithWidth(64), mpb.WithOutput(f.out))
		bar = progress.AddBar(resp.ContentLength,
			mpb.PrependDecorators(
				decor.Name(name+" "),
				decor.CountersKibiByte("% .1f / % .1f"),
			),
			mpb.AppendDecorators(decor.Percentage()),
		)
		proxy := bar.ProxyReader(resp.Body)
		defer proxy.Close()
		src = proxy
	}

	_, err = io.Copy(io.MultiWriter(out, h), src)
	if progress != nil {
		if err != nil {
			bar.Abort(true)
		}
		progress.Wait()
	}
	if err != nil {
		return "", fmt.Errorf("writing download: %w", err)
	}

	return hex.EncodeToString(h.Sum(nil)), nil
}

// rewriteURL keeps the original URL path but serves it from the mirror prefix.
func rewriteURL(mirror, rawURL string) string {
	u, err := url.Parse(rawURL)
	if err != nil {
		return rawURL
	}
	return strings.TrimSuffix(mirror, "/") + u.Path
}

// artifactName picks the staging filename for the downloaded artifact.
func artifactName(rawURL, jobName string) string {
	if u, err := url.Parse(rawURL); err == nil {
		if base := path.Base(u.Path); base != "" && base != "." && base != "/" {
			return base
		}
	}
	return jobName + ".download"
}

// treeStats returns the total byte size and file count under root.
func treeStats(root string) (int64, int, error) {
	var bytes int64
	var files int
	err := filepath.WalkDir(root, func(_ string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return nil
		}
		info, err := d.Info()
		if err != nil {
			return err
		}
		bytes += info.Size()
		files++
		return nil
	})
	return bytes, files, err
}
