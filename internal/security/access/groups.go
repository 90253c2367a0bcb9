// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package access

import (
	"math"
	"sort"
	"strconv"
	"strings"
	"unicode"
)

// =============================================================================
// GROUP SETS
// =============================================================================

// GroupSet is a set of integer group identifiers.
type GroupSet map[int]struct{}

// NewGroupSet builds a set from the given identifiers.
func NewGroupSet(ids ...int) GroupSet {
	set := make(GroupSet, len(ids))
	for _, id := range ids {
		set[id] = struct{}{}
	}
	return set
}

// Has reports whether id is in the set.
func (s GroupSet) Has(id int) bool {
	_, ok := s[id]
	return ok
}

// Len returns the number of identifiers in the set.
func (s GroupSet) Len() int {
	return len(s)
}

// Intersects reports whether the two sets share at least one identifier.
func (s GroupSet) Intersects(other GroupSet) bool {
	small, large := s, other
	if len(small) > len(large) {
		small, large = large, small
	}
	for id := range small {
		if large.Has(id) {
			return true
		}
	}
	return false
}

// Sorted returns the identifiers in ascending order.
func (s GroupSet) Sorted() []int {
	ids := make([]int, 0, len(s))
	for id := range s {
		ids = append(ids, id)
	}
	sort.Ints(ids)
	return ids
}

// String renders the set in the same pipe-delimited form the host uses.
func (s GroupSet) String() string {
	ids := s.Sorted()
	parts := make([]string, len(ids))
	for i, id := range ids {
		parts[i] = strconv.Itoa(id)
	}
	return strings.Join(parts, "|")
}

// =============================================================================
// PARSING
// =============================================================================

// ParseGroupIDs parses a delimited list of group identifiers. Pipes, commas,
// semicolons and whitespace all separate tokens. Tokens that are not
// integers are dropped.
func ParseGroupIDs(raw string) GroupSet {
	set := make(GroupSet)
	tokens := strings.FieldsFunc(raw, func(r rune) bool {
		return r == '|' || r == ',' || r == ';' || unicode.IsSpace(r)
	})
	for _, tok := range tokens {
		if id, ok := parseID(tok); ok {
			set[id] = struct{}{}
		}
	}
	return set
}

// GroupsFromValues converts decoded JSON values into a set. Numbers must be
// integral; strings must parse as integers. Anything else is dropped.
func GroupsFromValues(values []any) GroupSet {
	set := make(GroupSet, len(values))
	for _, v := range values {
		switch val := v.(type) {
		case float64:
			if val == math.Trunc(val) && !math.IsInf(val, 0) && math.Abs(val) <= math.MaxInt32 {
				set[int(val)] = struct{}{}
			}
		case int:
			set[val] = struct{}{}
		case string:
			if id, ok := parseID(val); ok {
				set[id] = struct{}{}
			}
		}
	}
	return set
}

func parseID(tok string) (int, bool) {
	tok = strings.TrimSpace(tok)
	if tok == "" {
		return 0, false
	}
	id, err := strconv.Atoi(tok)
	if err != nil {
		return 0, false
	}
	return id, true
}
