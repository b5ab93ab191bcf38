package oidc

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConfig_AuthURL(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name        string
		opt         []Option
		redirectURI string
		want        string
	}{
		{
			name:        "ordered-params",
			opt:         []Option{WithScope("openid profile email")},
			redirectURI: "http://localhost:3000",
			want:        "https://idp.example/as/authorization.oauth2?response_type=code&client_id=c1&redirect_uri=http://localhost:3000&scope=openid profile email",
		},
		{
			name:        "implicit-response-type",
			opt:         []Option{WithScope("openid"), WithResponseType("token")},
			redirectURI: "https://portal.example.com/app",
			want:        "https://idp.example/as/authorization.oauth2?response_type=token&client_id=c1&redirect_uri=https://portal.example.com/app&scope=openid",
		},
		{
			name:        "quirk-appends-one-trailing-slash",
			opt:         []Option{WithScope("openid"), WithRedirectQuirk(HostnameQuirk("legacy", "next"))},
			redirectURI: "https://portal-legacy.example.com/app",
			want:        "https://idp.example/as/authorization.oauth2?response_type=code&client_id=c1&redirect_uri=https://portal-legacy.example.com/app/&scope=openid",
		},
		{
			name:        "quirk-exclusion-suppresses-slash",
			opt:         []Option{WithScope("openid"), WithRedirectQuirk(HostnameQuirk("legacy", "next"))},
			redirectURI: "https://portal-legacy-next.example.com/app",
			want:        "https://idp.example/as/authorization.oauth2?response_type=code&client_id=c1&redirect_uri=https://portal-legacy-next.example.com/app&scope=openid",
		},
		{
			name:        "quirk-not-triggered",
			opt:         []Option{WithScope("openid"), WithRedirectQuirk(HostnameQuirk("legacy", "next"))},
			redirectURI: "https://portal.example.com/app",
			want:        "https://idp.example/as/authorization.oauth2?response_type=code&client_id=c1&redirect_uri=https://portal.example.com/app&scope=openid",
		},
	}
	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert, require := assert.New(t), require.New(t)
			c, err := NewConfig("https://idp.example/as/authorization.oauth2", "c1", tt.opt...)
			require.NoError(err)
			got := c.AuthURL(tt.redirectURI)
			assert.Equal(tt.want, got)

			// the output is deterministic
			assert.Equal(got, c.AuthURL(tt.redirectURI))
		})
	}
}

func TestConfig_AuthURL_slashCount(t *testing.T) {
	t.Parallel()
	assert, require := assert.New(t), require.New(t)
	c, err := NewConfig(
		"https://idp.example/as/authorization.oauth2",
		"c1",
		WithScope("openid"),
		WithRedirectQuirk(HostnameQuirk("legacy", "next")),
	)
	require.NoError(err)

	const redirectURI = "https://portal-legacy.example.com"
	got := c.AuthURL(redirectURI)
	redirect := got[strings.Index(got, "&redirect_uri=")+len("&redirect_uri="):]
	redirect = redirect[:strings.Index(redirect, "&scope=")]
	assert.Equal(redirectURI+"/", redirect)
}

func TestConfig_LogoutURL(t *testing.T) {
	t.Parallel()
	assert, require := assert.New(t), require.New(t)
	c, err := NewConfig(
		"https://idp.example/as/authorization.oauth2",
		"c1",
		WithScope("openid"),
		WithLogoutEndpoint("https://idp.example/idp/startSLO.ping"),
	)
	require.NoError(err)
	assert.Equal("https://idp.example/idp/startSLO.ping?PartnerSpId=c1", c.LogoutURL())
}

func TestHostnameQuirk(t *testing.T) {
	t.Parallel()
	assert := assert.New(t)
	quirk := HostnameQuirk("legacy", "next")
	assert.True(quirk("portal-legacy.example.com"))
	assert.False(quirk("portal-legacy-next.example.com"))
	assert.False(quirk("portal.example.com"))
	assert.False(quirk(""))
}
