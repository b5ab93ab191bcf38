package session

import (
	"net/url"
)

// URLProvider reports the host environment's current location. In a browser
// host this is the page URL, including any fragment.
type URLProvider interface {
	CurrentURL() (*url.URL, error)
}

// Navigator performs navigations in the host environment.
type Navigator interface {
	// Navigate performs a full-page navigation to rawURL. From this
	// process's perspective it is irreversible: in a real host, execution
	// does not resume in the same page instance after a successful Navigate.
	Navigate(rawURL string) error

	// ReplaceURL replaces the visible URL with rawURL without navigating:
	// no reload is triggered and no back-stack entry is added.
	ReplaceURL(rawURL string) error
}
