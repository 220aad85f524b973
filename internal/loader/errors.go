package loader

import "fmt"

// ConfigError reports an unusable source configuration: neither of the two
// source inputs is set, or both are. It is returned before any I/O happens.
type ConfigError struct {
	Missing bool // true: nothing configured; false: both configured
}

func (e *ConfigError) Error() string {
	if e.Missing {
		return fmt.Sprintf("no specification source configured: set %s or %s", EnvSpecURL, EnvSpecFile)
	}
	return fmt.Sprintf("ambiguous specification source: set exactly one of %s and %s", EnvSpecURL, EnvSpecFile)
}

// FetchError reports a non-2xx HTTP response while fetching the live
// specification.
type FetchError struct {
	URL        string
	StatusCode int
	Status     string
}

func (e *FetchError) Error() string {
	return fmt.Sprintf("fetch %s: unexpected status %s", e.URL, e.Status)
}

// FormatError reports that a document parsed as neither JSON nor YAML.
// Source is the URL or path label so the operator knows which input is
// malformed.
type FormatError struct {
	Source  string
	JSONErr error
	YAMLErr error
}

func (e *FormatError) Error() string {
	return fmt.Sprintf("%s is neither valid JSON nor valid YAML (json: %v; yaml: %v)", e.Source, e.JSONErr, e.YAMLErr)
}
