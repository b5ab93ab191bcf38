package session

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jagatrajsingh2000/sso-test/oidc"
)

// staticExchanger returns a fixed token (or error) for any code, recording
// the codes it was handed.
type staticExchanger struct {
	token oidc.Token
	err   error
	codes []string
}

func (e *staticExchanger) Exchange(_ context.Context, code string) (oidc.Token, error) {
	e.codes = append(e.codes, code)
	if e.err != nil {
		return "", e.err
	}
	return e.token, nil
}

func TestManager_HandleCallback(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	priv := oidc.TestGenerateKey(t)
	valid := oidc.TestToken(t, priv, time.Hour, nil)

	t.Run("fragment-access-token", func(t *testing.T) {
		t.Parallel()
		assert, require := assert.New(t), require.New(t)
		page := NewTestPage(t, "https://portal.example.com/#access_token="+string(valid))
		m, store := testManager(t, testConfig(t), page)

		claims, handled, err := m.HandleCallback(ctx)
		require.NoError(err)
		require.True(handled)
		assert.Equal("Alice Example", claims.Name())

		got, ok := store.Load()
		require.True(ok)
		assert.Equal(valid, got)

		// fragment was scrubbed without a navigation
		current, err := page.CurrentURL()
		require.NoError(err)
		assert.Empty(current.Fragment)
		assert.Empty(page.Navigations())
	})

	t.Run("error-param-wins-over-token", func(t *testing.T) {
		t.Parallel()
		assert, require := assert.New(t), require.New(t)
		page := NewTestPage(t, "https://portal.example.com/?error=access_denied#access_token="+string(valid))
		m, store := testManager(t, testConfig(t), page)

		_, handled, err := m.HandleCallback(ctx)
		require.Error(err)
		assert.ErrorIs(err, ErrIdP)
		assert.Contains(err.Error(), "access_denied")
		assert.False(handled)
		_, ok := store.Load()
		assert.False(ok)
	})

	t.Run("fragment-beats-query-code", func(t *testing.T) {
		t.Parallel()
		assert, require := assert.New(t), require.New(t)
		page := NewTestPage(t, "https://portal.example.com/?code=abc123#access_token="+string(valid))
		exchanger := &staticExchanger{token: "unused"}
		m, store := testManager(t, testConfig(t), page, WithExchanger(exchanger))

		_, handled, err := m.HandleCallback(ctx)
		require.NoError(err)
		assert.True(handled)
		assert.Empty(exchanger.codes, "code must not be exchanged when a direct token is present")

		got, ok := store.Load()
		require.True(ok)
		assert.Equal(valid, got)
	})

	t.Run("fragment-access-token-beats-id-token", func(t *testing.T) {
		t.Parallel()
		assert, require := assert.New(t), require.New(t)
		other := oidc.TestToken(t, priv, time.Hour, map[string]interface{}{"name": "Other"})
		page := NewTestPage(t, "https://portal.example.com/#id_token="+string(other)+"&access_token="+string(valid))
		m, store := testManager(t, testConfig(t), page)

		_, handled, err := m.HandleCallback(ctx)
		require.NoError(err)
		assert.True(handled)
		got, ok := store.Load()
		require.True(ok)
		assert.Equal(valid, got)
	})

	t.Run("query-token-order", func(t *testing.T) {
		t.Parallel()
		for _, param := range []string{"access_token", "id_token", "token"} {
			param := param
			t.Run(param, func(t *testing.T) {
				t.Parallel()
				assert, require := assert.New(t), require.New(t)
				page := NewTestPage(t, "https://portal.example.com/?"+param+"="+string(valid))
				m, store := testManager(t, testConfig(t), page)

				_, handled, err := m.HandleCallback(ctx)
				require.NoError(err)
				assert.True(handled)
				got, ok := store.Load()
				require.True(ok)
				assert.Equal(valid, got)

				current, err := page.CurrentURL()
				require.NoError(err)
				assert.Empty(current.Query().Get(param))
			})
		}
	})

	t.Run("query-access-token-beats-token", func(t *testing.T) {
		t.Parallel()
		assert, require := assert.New(t), require.New(t)
		other := oidc.TestToken(t, priv, time.Hour, map[string]interface{}{"name": "Other"})
		page := NewTestPage(t, "https://portal.example.com/?token="+string(other)+"&access_token="+string(valid))
		m, store := testManager(t, testConfig(t), page)

		_, handled, err := m.HandleCallback(ctx)
		require.NoError(err)
		assert.True(handled)
		got, ok := store.Load()
		require.True(ok)
		assert.Equal(valid, got)
	})

	t.Run("fragment-token-beats-query-token", func(t *testing.T) {
		t.Parallel()
		assert, require := assert.New(t), require.New(t)
		other := oidc.TestToken(t, priv, time.Hour, map[string]interface{}{"name": "Other"})
		page := NewTestPage(t, "https://portal.example.com/?access_token="+string(other)+"#access_token="+string(valid))
		m, store := testManager(t, testConfig(t), page)

		_, handled, err := m.HandleCallback(ctx)
		require.NoError(err)
		assert.True(handled)
		got, ok := store.Load()
		require.True(ok)
		assert.Equal(valid, got)
	})

	t.Run("code-exchanged", func(t *testing.T) {
		t.Parallel()
		assert, require := assert.New(t), require.New(t)
		page := NewTestPage(t, "https://portal.example.com/?code=abc123&state=xyz")
		exchanger := &staticExchanger{token: valid}
		m, store := testManager(t, testConfig(t), page, WithExchanger(exchanger))

		claims, handled, err := m.HandleCallback(ctx)
		require.NoError(err)
		require.True(handled)
		assert.Equal("Alice Example", claims.Name())
		assert.Equal([]string{"abc123"}, exchanger.codes)

		got, ok := store.Load()
		require.True(ok)
		assert.Equal(valid, got)

		current, err := page.CurrentURL()
		require.NoError(err)
		assert.Empty(current.Query().Get("code"))
		assert.Empty(current.Query().Get("state"))
	})

	t.Run("exchange-failure-surfaces", func(t *testing.T) {
		t.Parallel()
		assert, require := assert.New(t), require.New(t)
		page := NewTestPage(t, "https://portal.example.com/?code=abc123")
		exchanger := &staticExchanger{err: fmt.Errorf("backend down: %w", ErrExchangeFailed)}
		m, store := testManager(t, testConfig(t), page, WithExchanger(exchanger))

		_, handled, err := m.HandleCallback(ctx)
		require.Error(err)
		assert.ErrorIs(err, ErrExchangeFailed)
		assert.False(handled)
		_, ok := store.Load()
		assert.False(ok)
	})

	t.Run("code-without-exchanger", func(t *testing.T) {
		t.Parallel()
		assert, require := assert.New(t), require.New(t)
		page := NewTestPage(t, "https://portal.example.com/?code=abc123")
		m, _ := testManager(t, testConfig(t), page)

		_, handled, err := m.HandleCallback(ctx)
		require.Error(err)
		assert.ErrorIs(err, ErrExchangeFailed)
		assert.Contains(err.Error(), "abc123")
		assert.False(handled)
	})

	t.Run("nothing-to-do", func(t *testing.T) {
		t.Parallel()
		assert, require := assert.New(t), require.New(t)
		page := NewTestPage(t, "https://portal.example.com/home?tab=overview")
		m, store := testManager(t, testConfig(t), page)

		claims, handled, err := m.HandleCallback(ctx)
		require.NoError(err)
		assert.False(handled)
		assert.Nil(claims)
		_, ok := store.Load()
		assert.False(ok)

		// unrelated parameters are left alone
		current, err := page.CurrentURL()
		require.NoError(err)
		assert.Equal("overview", current.Query().Get("tab"))
	})

	t.Run("undecodable-token-is-cleared", func(t *testing.T) {
		t.Parallel()
		assert, require := assert.New(t), require.New(t)
		page := NewTestPage(t, "https://portal.example.com/?access_token=gibberish")
		m, store := testManager(t, testConfig(t), page)

		claims, handled, err := m.HandleCallback(ctx)
		require.NoError(err)
		assert.False(handled)
		assert.Nil(claims)
		_, ok := store.Load()
		assert.False(ok)
	})

	t.Run("unrelated-params-survive-scrub", func(t *testing.T) {
		t.Parallel()
		assert, require := assert.New(t), require.New(t)
		page := NewTestPage(t, "https://portal.example.com/home?tab=overview&access_token="+string(valid))
		m, _ := testManager(t, testConfig(t), page)

		_, handled, err := m.HandleCallback(ctx)
		require.NoError(err)
		assert.True(handled)

		current, err := page.CurrentURL()
		require.NoError(err)
		assert.Equal("overview", current.Query().Get("tab"))
		assert.Empty(current.Query().Get("access_token"))
	})
}
