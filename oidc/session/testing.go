package session

import (
	"net/url"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"
)

// TestPage is an in-memory stand-in for the host page: it implements both
// URLProvider and Navigator and records every full navigation, so tests can
// drive the state machine without a real host.
type TestPage struct {
	mu          sync.Mutex
	current     *url.URL
	navigations []string
}

// NewTestPage creates a TestPage whose current URL is rawURL.
func NewTestPage(t *testing.T, rawURL string) *TestPage {
	t.Helper()
	require := require.New(t)
	u, err := url.Parse(rawURL)
	require.NoError(err)
	return &TestPage{current: u}
}

// CurrentURL implements URLProvider.
func (p *TestPage) CurrentURL() (*url.URL, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	u := *p.current
	return &u, nil
}

// Navigate implements Navigator, recording the navigation.
func (p *TestPage) Navigate(rawURL string) error {
	u, err := url.Parse(rawURL)
	if err != nil {
		return err
	}
	p.mu.Lock()
	defer p.mu.Unlock()
	p.navigations = append(p.navigations, rawURL)
	p.current = u
	return nil
}

// ReplaceURL implements Navigator. It updates the current URL without
// recording a navigation, mirroring a history replace.
func (p *TestPage) ReplaceURL(rawURL string) error {
	u, err := url.Parse(rawURL)
	if err != nil {
		return err
	}
	p.mu.Lock()
	defer p.mu.Unlock()
	p.current = u
	return nil
}

// Navigations returns the full navigations performed, oldest first.
func (p *TestPage) Navigations() []string {
	p.mu.Lock()
	defer p.mu.Unlock()
	out := make([]string, len(p.navigations))
	copy(out, p.navigations)
	return out
}
