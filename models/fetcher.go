package models

import (
	"context"
	"io"
	"net/http"
	"net/url"
	"os"
	"path/filepath"

	"github.com/pkg/errors"
)

// A Fetcher retrieves the raw bytes of a model asset.
type Fetcher interface {
	Fetch(ctx context.Context, key Key) ([]byte, error)
}

// FetcherFunc adapts a function to the Fetcher interface.
type FetcherFunc func(ctx context.Context, key Key) ([]byte, error)

// Fetch calls f.
func (f FetcherFunc) Fetch(ctx context.Context, key Key) ([]byte, error) {
	return f(ctx, key)
}

// AssetName is the file name a model is stored under, e.g. "freight500.glb".
func AssetName(key Key) string {
	return key.String() + ".glb"
}

type dirFetcher struct {
	dir string
}

// NewDirFetcher returns a Fetcher reading <dir>/<key>.glb.
func NewDirFetcher(dir string) Fetcher {
	return &dirFetcher{dir: dir}
}

func (f *dirFetcher) Fetch(ctx context.Context, key Key) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	data, err := os.ReadFile(filepath.Join(f.dir, AssetName(key)))
	if err != nil {
		return nil, errors.Wrapf(err, "unable to load %s model", key)
	}
	return data, nil
}

type httpFetcher struct {
	baseURL *url.URL
	client  *http.Client
}

// NewHTTPFetcher returns a Fetcher that GETs <baseURL>/<key>.glb. A nil client uses http.DefaultClient.
func NewHTTPFetcher(baseURL string, client *http.Client) (Fetcher, error) {
	u, err := url.Parse(baseURL)
	if err != nil {
		return nil, errors.Wrapf(err, "invalid model base url %q", baseURL)
	}
	if client == nil {
		client = http.DefaultClient
	}
	return &httpFetcher{baseURL: u, client: client}, nil
}

func (f *httpFetcher) Fetch(ctx context.Context, key Key) ([]byte, error) {
	target := f.baseURL.JoinPath(AssetName(key))
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, target.String(), nil)
	if err != nil {
		return nil, err
	}
	resp, err := f.client.Do(req)
	if err != nil {
		return nil, errors.Wrapf(err, "unable to load %s model", key)
	}
	defer func() {
		//nolint:errcheck
		resp.Body.Close()
	}()
	if resp.StatusCode != http.StatusOK {
		return nil, errors.Errorf("unable to load %s model: %d", key, resp.StatusCode)
	}
	return io.ReadAll(resp.Body)
}
