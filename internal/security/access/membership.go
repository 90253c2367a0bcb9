// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package access

import (
	"errors"
	"log"
	"os"
	"sync"
)

// UserGroupsEnvVar names the environment variable read by EnvResolver.
const UserGroupsEnvVar = "SLASHDROP_USER_GROUPS"

// ErrNoGroups is returned by resolvers that have nothing to report.
var ErrNoGroups = errors.New("no group membership available")

// =============================================================================
// RESOLVERS
// =============================================================================

// Resolver looks up the current user's group memberships.
type Resolver interface {
	Resolve() (GroupSet, error)
}

// ResolverFunc adapts a function to Resolver.
type ResolverFunc func() (GroupSet, error)

// Resolve calls f.
func (f ResolverFunc) Resolve() (GroupSet, error) {
	return f()
}

// StaticResolver resolves to the groups in a delimited string, typically
// taken from configuration.
type StaticResolver string

// Resolve parses the configured string.
func (s StaticResolver) Resolve() (GroupSet, error) {
	return ParseGroupIDs(string(s)), nil
}

// EnvResolver reads the groups from SLASHDROP_USER_GROUPS.
type EnvResolver struct{}

// Resolve parses the environment variable.
func (EnvResolver) Resolve() (GroupSet, error) {
	raw, ok := os.LookupEnv(UserGroupsEnvVar)
	if !ok {
		return nil, ErrNoGroups
	}
	return ParseGroupIDs(raw), nil
}

// Chain tries each resolver in order and returns the first success.
func Chain(resolvers ...Resolver) Resolver {
	return ResolverFunc(func() (GroupSet, error) {
		for _, r := range resolvers {
			if r == nil {
				continue
			}
			if groups, err := r.Resolve(); err == nil {
				return groups, nil
			}
		}
		return nil, ErrNoGroups
	})
}

// =============================================================================
// MEMBERSHIP CACHE
// =============================================================================

// Membership resolves the user's groups once and caches them for the rest
// of the session. The cached set is never mutated.
type Membership struct {
	resolver Resolver
	once     sync.Once
	groups   GroupSet
}

// NewMembership creates a lazily-resolved membership.
func NewMembership(resolver Resolver) *Membership {
	return &Membership{resolver: resolver}
}

// Groups returns the cached group set, resolving it on first use. A failing
// resolver yields an empty set, which only passes unrestricted gates.
func (m *Membership) Groups() GroupSet {
	m.once.Do(func() {
		if m.resolver == nil {
			m.groups = GroupSet{}
			return
		}
		groups, err := m.resolver.Resolve()
		if err != nil {
			log.Printf("ACCESS: group resolution failed, continuing with no groups: %v", err)
			groups = GroupSet{}
		}
		if groups == nil {
			groups = GroupSet{}
		}
		m.groups = groups
	})
	return m.groups
}
