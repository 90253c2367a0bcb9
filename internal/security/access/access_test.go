// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package access

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

type fakeCommand struct {
	groups GroupSet
	set    bool
}

func (f fakeCommand) AllowList() (GroupSet, bool) { return f.groups, f.set }

// =============================================================================
// PARSING TESTS
// =============================================================================

func TestParseGroupIDs(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		want []int
	}{
		{"pipe delimited", "1|2|3", []int{1, 2, 3}},
		{"comma and spaces", " 4, 5 ,6 ", []int{4, 5, 6}},
		{"drops non numeric", "10|staff|11|1.5|", []int{10, 11}},
		{"negative ids kept", "-3|7", []int{-3, 7}},
		{"empty", "", []int{}},
		{"garbage only", "admins|mods", []int{}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ParseGroupIDs(tt.raw).Sorted())
		})
	}
}

func TestGroupsFromValues(t *testing.T) {
	got := GroupsFromValues([]any{float64(1), "2", "x", 3.5, true, nil, 4})
	assert.Equal(t, []int{1, 2, 4}, got.Sorted())
}

func TestGroupSetString(t *testing.T) {
	assert.Equal(t, "1|5|9", NewGroupSet(9, 1, 5).String())
}

// =============================================================================
// GATE TESTS
// =============================================================================

func TestIsGloballyAllowed(t *testing.T) {
	tests := []struct {
		name    string
		user    GroupSet
		allowed GroupSet
		want    bool
	}{
		{"empty allow-list is unrestricted", NewGroupSet(), NewGroupSet(), true},
		{"nil allow-list is unrestricted", NewGroupSet(1), nil, true},
		{"intersection", NewGroupSet(1, 2), NewGroupSet(2, 3), true},
		{"disjoint fails closed", NewGroupSet(1), NewGroupSet(2, 3), false},
		{"user without groups", NewGroupSet(), NewGroupSet(2), false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, IsGloballyAllowed(tt.user, tt.allowed))
		})
	}
}

func TestIsCommandAllowed(t *testing.T) {
	user := NewGroupSet(10, 11)

	assert.True(t, IsCommandAllowed(user, fakeCommand{}), "no allow-list")
	assert.True(t, IsCommandAllowed(user, fakeCommand{groups: GroupSet{}, set: true}), "empty allow-list")
	assert.True(t, IsCommandAllowed(user, fakeCommand{groups: NewGroupSet(11), set: true}))
	assert.False(t, IsCommandAllowed(user, fakeCommand{groups: NewGroupSet(12), set: true}))
	assert.False(t, IsCommandAllowed(user, nil))
}

// =============================================================================
// MEMBERSHIP TESTS
// =============================================================================

func TestMembershipResolvesOnce(t *testing.T) {
	calls := 0
	m := NewMembership(ResolverFunc(func() (GroupSet, error) {
		calls++
		return NewGroupSet(1, 2), nil
	}))

	for i := 0; i < 5; i++ {
		assert.Equal(t, []int{1, 2}, m.Groups().Sorted())
	}
	assert.Equal(t, 1, calls)
}

func TestMembershipResolverFailure(t *testing.T) {
	m := NewMembership(ResolverFunc(func() (GroupSet, error) {
		return nil, errors.New("service down")
	}))
	assert.Equal(t, 0, m.Groups().Len())
	assert.False(t, IsGloballyAllowed(m.Groups(), NewGroupSet(1)))
}

func TestStaticAndEnvResolvers(t *testing.T) {
	groups, err := StaticResolver("3|x|4").Resolve()
	assert.NoError(t, err)
	assert.Equal(t, []int{3, 4}, groups.Sorted())

	t.Setenv(UserGroupsEnvVar, "7,8")
	groups, err = EnvResolver{}.Resolve()
	assert.NoError(t, err)
	assert.Equal(t, []int{7, 8}, groups.Sorted())
}

func TestChainFallsThrough(t *testing.T) {
	failing := ResolverFunc(func() (GroupSet, error) { return nil, ErrNoGroups })
	r := Chain(nil, failing, StaticResolver("5"))
	groups, err := r.Resolve()
	assert.NoError(t, err)
	assert.True(t, groups.Has(5))

	_, err = Chain(failing).Resolve()
	assert.ErrorIs(t, err, ErrNoGroups)
}
