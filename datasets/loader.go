package datasets

import (
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"sort"
	"sync"
	"time"

	"github.com/spektral-labs/spektral-go/data"
	"github.com/spektral-labs/spektral-go/internal/catalog"
	"github.com/spektral-labs/spektral-go/internal/config"
	"github.com/spektral-labs/spektral-go/internal/datadir"
	"github.com/spektral-labs/spektral-go/internal/fetch"
	"github.com/spektral-labs/spektral-go/internal/ledger"
)

// Loader loads named datasets from the storage root, fetching on miss.
type Loader struct {
	root       string
	cat        *catalog.Catalog
	catOnce    sync.Once
	catErr     error
	httpClient *http.Client
	mirror     string
	mirrorSet  bool
	out        io.Writer
	quiet      bool
	force      bool
}

// Option configures a Loader.
type Option func(*Loader)

// WithRoot overrides the storage root (default: the resolved dataset folder).
func WithRoot(root string) Option {
	return func(l *Loader) { l.root = root }
}

// WithCatalog overrides the catalog (default: builtin merged with
// ~/.spektral/catalog.d).
func WithCatalog(cat *catalog.Catalog) Option {
	return func(l *Loader) { l.cat = cat }
}

// WithHTTPClient sets a custom HTTP client for downloads.
func WithHTTPClient(c *http.Client) Option {
	return func(l *Loader) { l.httpClient = c }
}

// WithMirror sets the download mirror prefix, overriding the config value.
func WithMirror(mirror string) Option {
	return func(l *Loader) { l.mirror = mirror; l.mirrorSet = true }
}

// WithOutput redirects download progress output.
func WithOutput(w io.Writer) Option {
	return func(l *Loader) { l.out = w }
}

// WithQuiet disables download progress output.
func WithQuiet() Option {
	return func(l *Loader) { l.quiet = true }
}

// WithForce re-downloads even when the dataset is already cached.
func WithForce() Option {
	return func(l *Loader) { l.force = true }
}

// NewLoader creates a Loader with the given options.
func NewLoader(opts ...Option) *Loader {
	l := &Loader{
		out: os.Stderr,
	}
	for _, opt := range opts {
		opt(l)
	}
	if l.root == "" {
		l.root = datadir.Root()
	}
	if !l.mirrorSet {
		config.Load()
		l.mirror = config.Get(config.KeyMirror)
	}
	return l
}

// Concurrent Load calls for the same name share one download. There is no
// cross-process lock.
var (
	namesMu   sync.Mutex
	nameLocks = make(map[string]*sync.Mutex)
)

func lockName(name string) func() {
	namesMu.Lock()
	mu, ok := nameLocks[name]
	if !ok {
		mu = &sync.Mutex{}
		nameLocks[name] = mu
	}
	namesMu.Unlock()
	mu.Lock()
	return mu.Unlock
}

// Folder returns the storage root this loader reads from.
func (l *Loader) Folder() string {
	return l.root
}

// Path returns the on-disk location for a named dataset: root/name.
func (l *Loader) Path(name string) string {
	return filepath.Join(l.root, name)
}

// Cached returns the names of datasets present under the storage root,
// sorted. A missing root yields an empty list.
func (l *Loader) Cached() []string {
	entries, err := os.ReadDir(l.root)
	if err != nil {
		return nil
	}
	var names []string
	for _, e := range entries {
		if e.IsDir() && e.Name()[0] != '.' {
			names = append(names, e.Name())
		}
	}
	sort.Strings(names)
	return names
}

// lookup resolves a dataset name through the catalog. When no catalog was
// injected, the default one is loaded on first use; concurrent lookups share
// that single load.
func (l *Loader) lookup(name string) (catalog.Entry, error) {
	l.catOnce.Do(func() {
		if l.cat != nil {
			return
		}
		cat, _, err := catalog.Load(datadir.CatalogDir())
		if err != nil {
			l.catErr = err
			return
		}
		l.cat = cat
	})
	if l.catErr != nil {
		return catalog.Entry{}, l.catErr
	}
	ent, ok := l.cat.Lookup(name)
	if !ok {
		return catalog.Entry{}, fmt.Errorf("unknown dataset %q: not in the catalog", name)
	}
	return ent, nil
}

// Fetch ensures the named dataset is present under the storage root and
// returns its path. A cached dataset is not re-downloaded unless the loader
// was created WithForce.
func (l *Loader) Fetch(name string) (string, error) {
	ent, err := l.lookup(name)
	if err != nil {
		return "", err
	}

	unlock := lockName(name)
	defer unlock()

	path := l.Path(name)
	if !l.force && dirExists(path) {
		return path, nil
	}

	if err := os.MkdirAll(l.root, 0755); err != nil {
		return "", fmt.Errorf("creating dataset folder: %w", err)
	}

	opts := []fetch.Option{fetch.WithOutput(l.out)}
	if l.httpClient != nil {
		opts = append(opts, fetch.WithHTTPClient(l.httpClient))
	}
	if l.mirror != "" {
		opts = append(opts, fetch.WithMirror(l.mirror))
	}
	if l.quiet {
		opts = append(opts, fetch.WithQuiet())
	}

	result, err := fetch.New(opts...).Fetch(fetch.Job{
		Name:   name,
		URL:    ent.URL,
		SHA256: ent.SHA256,
		Dest:   path,
	})
	if err != nil {
		return "", err
	}

	l.recordFetch(ent, path, result)
	return path, nil
}

// recordFetch writes the ledger entry for a completed fetch. Bookkeeping is
// best-effort: failures here never fail the fetch itself.
func (l *Loader) recordFetch(ent catalog.Entry, path string, result *fetch.Result) {
	contentHash, err := ledger.HashTree(path)
	if err != nil {
		contentHash = ""
	}

	led, err := ledger.Open(filepath.Join(l.root, ledger.FileName))
	if err != nil {
		return
	}
	defer led.Close()

	_ = led.Put(ledger.Record{
		Name:        ent.Name,
		URL:         ent.URL,
		Version:     ent.Version,
		SHA256:      result.SHA256,
		ContentHash: contentHash,
		SizeBytes:   result.Bytes,
		Files:       result.Files,
		FetchedAt:   time.Now().UTC(),
	})
}

// Load returns the named dataset, downloading it first if it is not cached.
func (l *Loader) Load(name string) (*data.Dataset, error) {
	ent, err := l.lookup(name)
	if err != nil {
		return nil, err
	}

	path, err := l.Fetch(name)
	if err != nil {
		return nil, err
	}

	return readDataset(ent, path)
}

// readDataset parses the on-disk files for an entry according to its kind.
func readDataset(ent catalog.Entry, path string) (*data.Dataset, error) {
	switch ent.Kind {
	case catalog.KindTUD:
		dir, err := dataDir(ent, path, ent.Name+"_A.txt")
		if err != nil {
			return nil, err
		}
		graphs, err := readTUD(dir, ent.Name)
		if err != nil {
			return nil, fmt.Errorf("reading %s: %w", ent.Name, err)
		}
		return &data.Dataset{Name: ent.Name, Graphs: graphs}, nil

	case catalog.KindCitation:
		dir, err := dataDir(ent, path, ent.Name+".content")
		if err != nil {
			return nil, err
		}
		g, err := readCitation(dir, ent.Name)
		if err != nil {
			return nil, fmt.Errorf("reading %s: %w", ent.Name, err)
		}
		return &data.Dataset{Name: ent.Name, Graphs: []*data.Graph{g}}, nil

	default:
		return nil, fmt.Errorf("dataset %s has unknown kind %q", ent.Name, ent.Kind)
	}
}

// dataDir locates the directory holding the data files: the entry's subdir
// when set, otherwise the dataset path itself or the single directory an
// archive nested them in.
func dataDir(ent catalog.Entry, path, probeFile string) (string, error) {
	if ent.Subdir != "" {
		return filepath.Join(path, ent.Subdir), nil
	}
	if fileExists(filepath.Join(path, probeFile)) {
		return path, nil
	}
	entries, err := os.ReadDir(path)
	if err != nil {
		return "", fmt.Errorf("reading dataset directory: %w", err)
	}
	for _, e := range entries {
		if e.IsDir() && fileExists(filepath.Join(path, e.Name(), probeFile)) {
			return filepath.Join(path, e.Name()), nil
		}
	}
	return "", fmt.Errorf("dataset %s: %s not found under %s", ent.Name, probeFile, path)
}

func dirExists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && info.IsDir()
}

func fileExists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && !info.IsDir()
}
