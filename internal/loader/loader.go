// Package loader obtains a specification document from a remote URL or a
// local file and parses it into a canon.Document.
//
// Conventions:
//   - Exactly one source (URL or file) must be configured; misconfiguration
//     fails before any network or filesystem call.
//   - One I/O call per Load; retries are the caller's decision.
//   - Parsing is an ordered list of attempts: strict JSON first, then YAML.
//     A document is either fully valid or rejected (FormatError).
package loader

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"

	"gopkg.in/yaml.v3"

	"openapi-sync/internal/canon"
)

// Environment variables naming the two alternative specification sources.
const (
	EnvSpecURL  = "OPENAPI_SPEC_URL"
	EnvSpecFile = "OPENAPI_SPEC_FILE"
)

// Source names where the live specification comes from. Exactly one field
// must be non-empty.
type Source struct {
	URL  string
	File string
}

// Label returns the human-readable identity of the source for error messages.
func (s Source) Label() string {
	if s.URL != "" {
		return s.URL
	}
	return s.File
}

// FromEnv builds a Source from the two environment variables. It performs no
// validation; Load rejects empty or ambiguous sources.
func FromEnv() Source {
	return Source{
		URL:  os.Getenv(EnvSpecURL),
		File: os.Getenv(EnvSpecFile),
	}
}

// Loader fetches and parses specification documents.
type Loader struct {
	client *http.Client
}

// New returns a Loader that uses client for URL sources. A nil client falls
// back to http.DefaultClient.
func New(client *http.Client) *Loader {
	if client == nil {
		client = http.DefaultClient
	}
	return &Loader{client: client}
}

// Load reads the document named by src and parses it. The source is validated
// first: a ConfigError is returned without any I/O when src is empty or names
// both a URL and a file.
func (l *Loader) Load(ctx context.Context, src Source) (canon.Document, error) {
	switch {
	case src.URL == "" && src.File == "":
		return nil, &ConfigError{Missing: true}
	case src.URL != "" && src.File != "":
		return nil, &ConfigError{}
	}

	var data []byte
	var err error
	if src.URL != "" {
		data, err = l.fetch(ctx, src.URL)
	} else {
		data, err = os.ReadFile(src.File)
	}
	if err != nil {
		return nil, err
	}
	return Decode(data, src.Label())
}

// fetch performs a single HTTP GET and returns the response body. Non-2xx
// responses become a FetchError carrying the URL and status.
func (l *Loader) fetch(ctx context.Context, url string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("fetch %s: %w", url, err)
	}
	resp, err := l.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch %s: %w", url, err)
	}
	defer resp.Body.Close()
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, &FetchError{URL: url, StatusCode: resp.StatusCode, Status: resp.Status}
	}
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("fetch %s: read body: %w", url, err)
	}
	return body, nil
}

// Decode parses data with the ordered parser attempts, short-circuiting on the
// first success. source labels the input in the FormatError when both fail.
func Decode(data []byte, source string) (canon.Document, error) {
	errs := make(map[string]error, len(parsers))
	for _, p := range parsers {
		doc, err := p.parse(data)
		if err == nil {
			return doc, nil
		}
		errs[p.name] = err
	}
	return nil, &FormatError{Source: source, JSONErr: errs["json"], YAMLErr: errs["yaml"]}
}

// parsers is the attempt order: strict JSON first, YAML as the fallback.
var parsers = []struct {
	name  string
	parse func([]byte) (canon.Document, error)
}{
	{name: "json", parse: parseJSON},
	{name: "yaml", parse: parseYAML},
}

func parseJSON(data []byte) (canon.Document, error) {
	var doc canon.Document
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, err
	}
	return doc, nil
}

func parseYAML(data []byte) (canon.Document, error) {
	var doc canon.Document
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, err
	}
	return doc, nil
}
