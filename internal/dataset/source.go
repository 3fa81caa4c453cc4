package dataset

import (
	"bytes"
	"context"
	_ "embed"
	"io"
	"net/http"
	"os"
	"strings"

	"github.com/fr4nk3nst1ner/salaryscenes/internal/client"
)

// EmbeddedName selects the bundled sample survey
const EmbeddedName = "embedded"

//go:embed fixtures/salaries.csv
var embeddedSalaries []byte

// Source opens the raw CSV. size is -1 when unknown.
type Source interface {
	Name() string
	Open(ctx context.Context) (rc io.ReadCloser, size int64, err error)
}

// FileSource reads a CSV from the local filesystem
type FileSource struct {
	Path string
}

func (s FileSource) Name() string { return s.Path }

func (s FileSource) Open(_ context.Context) (io.ReadCloser, int64, error) {
	f, err := os.Open(s.Path)
	if err != nil {
		return nil, 0, err
	}
	size := int64(-1)
	if st, err := f.Stat(); err == nil {
		size = st.Size()
	}
	return f, size, nil
}

// URLSource downloads a CSV over HTTP(S)
type URLSource struct {
	URL    string
	Client *http.Client
}

func (s URLSource) Name() string { return s.URL }

func (s URLSource) Open(ctx context.Context) (io.ReadCloser, int64, error) {
	httpClient := s.Client
	if httpClient == nil {
		httpClient = client.CreateHTTPClient("")
	}
	body, err := client.Fetch(ctx, httpClient, s.URL)
	if err != nil {
		return nil, 0, err
	}
	return io.NopCloser(bytes.NewReader(body)), int64(len(body)), nil
}

// StaticSource serves CSV bytes already in memory
type StaticSource struct {
	Label string
	Data  []byte
}

func (s StaticSource) Name() string { return s.Label }

func (s StaticSource) Open(_ context.Context) (io.ReadCloser, int64, error) {
	return io.NopCloser(bytes.NewReader(s.Data)), int64(len(s.Data)), nil
}

// Embedded returns the bundled sample survey
func Embedded() StaticSource {
	return StaticSource{Label: EmbeddedName, Data: embeddedSalaries}
}

// SourceFor picks a source from a configured location: "embedded" (or empty),
// an http(s) URL, or a file path.
func SourceFor(location, proxyURL string) Source {
	switch {
	case location == "" || location == EmbeddedName:
		return Embedded()
	case strings.HasPrefix(location, "http://") || strings.HasPrefix(location, "https://"):
		return URLSource{URL: location, Client: client.CreateHTTPClient(proxyURL)}
	default:
		return FileSource{Path: location}
	}
}
