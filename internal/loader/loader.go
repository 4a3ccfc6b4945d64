package loader

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"net/http"
	"time"

	"github.com/goliatone/go-pagesync/pkg/dataset"
)

// Loader implements dataset.Loader by delegating to file, fs.FS, or HTTP
// strategies.
type Loader struct {
	fs        fs.FS
	http      *http.Client
	allowHTTP bool
	timeout   time.Duration
}

var _ dataset.Loader = (*Loader)(nil)

// New constructs a Loader from pre-resolved options.
func New(options dataset.LoaderOptions) *Loader {
	timeout := options.RequestTimeout

	var httpClient *http.Client
	switch {
	case options.HTTPClient != nil:
		clone := *options.HTTPClient
		if timeout > 0 && clone.Timeout == 0 {
			clone.Timeout = timeout
		}
		httpClient = &clone
	case options.AllowHTTPFallback:
		httpClient = &http.Client{Timeout: timeout}
	}

	return &Loader{
		fs:        options.FileSystem,
		http:      httpClient,
		allowHTTP: httpClient != nil,
		timeout:   timeout,
	}
}

// Load fetches a payload from the provided source and decodes it into a
// Document. Errors carry the source location.
func (l *Loader) Load(ctx context.Context, src dataset.Source) (dataset.Document, error) {
	if src == nil {
		return dataset.Document{}, errors.New("loader: source is nil")
	}

	var (
		data []byte
		err  error
	)

	switch src.Kind() {
	case dataset.SourceKindFile:
		data, err = loadFile(ctx, src.Location())
	case dataset.SourceKindFS:
		data, err = loadFromFS(ctx, l.fs, src.Location())
	case dataset.SourceKindURL:
		if !l.allowHTTP {
			return dataset.Document{}, fmt.Errorf("loader: %s: http support disabled", src.Location())
		}
		data, err = loadHTTP(ctx, l.http, src.Location(), l.timeout)
	default:
		err = errors.New("unsupported source kind")
	}
	if err != nil {
		return dataset.Document{}, fmt.Errorf("loader: %s: %w", src.Location(), err)
	}

	doc, err := decode(src, data)
	if err != nil {
		if errors.Is(err, dataset.ErrEmptyDocument) {
			return dataset.Document{}, err
		}
		return dataset.Document{}, fmt.Errorf("loader: %s: %w", src.Location(), err)
	}
	return doc, nil
}
