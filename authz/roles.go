// Package authz derives coarse-grained role flags from a principal's group
// memberships and the current hostname. Roles come in three tiers evaluated
// in ascending order: admin implies developer, and developer implies project
// member. Which group names grant a tier depends on the region encoded in the
// hostname.
package authz

import (
	"strings"

	"github.com/jagatrajsingh2000/sso-test/internal/strutils"
)

// Region is a hostname-derived partition selecting which group-name table
// applies.
type Region string

const (
	RegionGlobal Region = "global"
	RegionAMEA   Region = "amea"
	RegionMEU    Region = "meu"
)

// regions is the recognized set, in the order hostnames are probed.
var regions = []Region{RegionGlobal, RegionAMEA, RegionMEU}

// Tier is one of the role tiers.
type Tier string

const (
	TierAdmin         Tier = "admin"
	TierDeveloper     Tier = "developer"
	TierProjectMember Tier = "projectMember"
)

// Table maps each region to the group names granting each tier. A tier may
// accept several equivalent group names; membership is an exact string match
// against the principal's groups, never case-insensitive or substring.
type Table map[Region]map[Tier][]string

// DefaultTable returns the observed production table. The global region
// accepts a legacy unsuffixed variant alongside the region-suffixed name for
// every tier.
func DefaultTable() Table {
	return Table{
		RegionGlobal: {
			TierAdmin:         {"APP-PORTAL-ADMINS", "APP-PORTAL-ADMINS-GLOBAL"},
			TierDeveloper:     {"APP-PORTAL-DEVELOPERS", "APP-PORTAL-DEVELOPERS-GLOBAL"},
			TierProjectMember: {"APP-PORTAL-USERS", "APP-PORTAL-USERS-GLOBAL"},
		},
		RegionAMEA: {
			TierAdmin:         {"APP-PORTAL-ADMINS-AMEA"},
			TierDeveloper:     {"APP-PORTAL-DEVELOPERS-AMEA"},
			TierProjectMember: {"APP-PORTAL-USERS-AMEA"},
		},
		RegionMEU: {
			TierAdmin:         {"APP-PORTAL-ADMINS-MEU"},
			TierDeveloper:     {"APP-PORTAL-DEVELOPERS-MEU"},
			TierProjectMember: {"APP-PORTAL-USERS-MEU"},
		},
	}
}

// DefaultLocalHostname is the local-development marker hostname that grants
// every tier regardless of group membership.
const DefaultLocalHostname = "localhost"

// Authorizer answers role-tier questions for (groups, hostname) pairs. Role
// flags are never persisted; callers recompute them from the current claims
// and hostname on each check.
type Authorizer struct {
	table         Table
	localHostname string
}

// New creates an Authorizer.
// Supported options: WithTable, WithLocalHostname
func New(opt ...Option) *Authorizer {
	opts := getAuthzOpts(opt...)
	return &Authorizer{
		table:         opts.withTable,
		localHostname: opts.withLocalHostname,
	}
}

// RegionFor resolves the region for a hostname by substring. Unrecognized
// hostnames resolve to no region, which denies every tier.
func (a *Authorizer) RegionFor(hostname string) (Region, bool) {
	for _, r := range regions {
		if strings.Contains(hostname, string(r)) {
			return r, true
		}
	}
	return "", false
}

// IsAdmin reports whether groups grant the admin tier for hostname.
func (a *Authorizer) IsAdmin(groups []string, hostname string) bool {
	return a.inTier(TierAdmin, groups, hostname)
}

// IsDeveloper reports whether groups grant the developer tier for hostname.
// Admin implies developer.
func (a *Authorizer) IsDeveloper(groups []string, hostname string) bool {
	if a.IsAdmin(groups, hostname) {
		return true
	}
	return a.inTier(TierDeveloper, groups, hostname)
}

// IsProjectMember reports whether groups grant the project-member tier for
// hostname. Developer (and so admin) implies project member.
func (a *Authorizer) IsProjectMember(groups []string, hostname string) bool {
	if a.IsDeveloper(groups, hostname) {
		return true
	}
	return a.inTier(TierProjectMember, groups, hostname)
}

func (a *Authorizer) inTier(tier Tier, groups []string, hostname string) bool {
	// local development bypasses group checks for every tier
	if hostname == a.localHostname {
		return true
	}
	region, ok := a.RegionFor(hostname)
	if !ok {
		return false
	}
	for _, name := range a.table[region][tier] {
		if strutils.StrListContains(groups, name) {
			return true
		}
	}
	return false
}

// Option defines a common functional options type
type Option func(interface{})

// ApplyOpts takes a pointer to the options struct as a set of default options
// and applies the slice of opts as overrides.
func ApplyOpts(opts interface{}, opt ...Option) {
	for _, o := range opt {
		if o == nil {
			continue
		}
		o(opts)
	}
}

// authzOptions is the set of available options
type authzOptions struct {
	withTable         Table
	withLocalHostname string
}

func authzDefaults() authzOptions {
	return authzOptions{
		withTable:         DefaultTable(),
		withLocalHostname: DefaultLocalHostname,
	}
}

func getAuthzOpts(opt ...Option) authzOptions {
	opts := authzDefaults()
	ApplyOpts(&opts, opt...)
	return opts
}

// WithTable overrides the default region/tier group-name table.
func WithTable(t Table) Option {
	return func(o interface{}) {
		if o, ok := o.(*authzOptions); ok {
			o.withTable = t
		}
	}
}

// WithLocalHostname overrides the local-development marker hostname.
func WithLocalHostname(hostname string) Option {
	return func(o interface{}) {
		if o, ok := o.(*authzOptions); ok {
			o.withLocalHostname = hostname
		}
	}
}
