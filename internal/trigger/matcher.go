// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package trigger detects a configured trigger string at the end of the
// current input.
//
// Triggers are literals. Every trigger is escaped before it is placed in the
// combined pattern, so "/t.*" only matches the four characters "/t.*".
//
// When two triggers overlap at the end of the text (one is a suffix of the
// other, e.g. "late" and "/template"), the one that starts earliest wins,
// which is the longer trigger. Alternatives starting at the same position
// are tried in configuration order.
package trigger

import (
	"regexp"
	"strings"
)

// Result describes a successful match.
type Result struct {
	// Trigger is the configured trigger literal that matched.
	Trigger string
	// Index is the trigger's position in the list passed to Match.
	Index int
	// Start is the byte offset where the trigger begins in the text.
	Start int
}

// =============================================================================
// MATCHING
// =============================================================================

// Match reports which trigger, if any, ends the text. Only whitespace may
// follow the trigger.
func Match(text string, triggers []string) (Result, bool) {
	re, groups := compile(triggers)
	if re == nil {
		return Result{}, false
	}

	loc := re.FindStringSubmatchIndex(text)
	if loc == nil {
		return Result{}, false
	}
	for g, idx := range groups {
		start := loc[2*(g+1)]
		if start >= 0 {
			return Result{Trigger: triggers[idx], Index: idx, Start: start}, true
		}
	}
	return Result{}, false
}

// Pattern returns the combined expression Match would use, or "" when no
// trigger is usable. Exposed for diagnostics.
func Pattern(triggers []string) string {
	re, _ := compile(triggers)
	if re == nil {
		return ""
	}
	return re.String()
}

// compile builds `(?:(t1)|(t2)|...)\s*$`. groups maps capture group number
// (minus one) to the index of its trigger in the input.
func compile(triggers []string) (*regexp.Regexp, []int) {
	var (
		alts   []string
		groups []int
	)
	for i, t := range triggers {
		if t == "" {
			continue
		}
		alts = append(alts, "("+regexp.QuoteMeta(t)+")")
		groups = append(groups, i)
	}
	if len(alts) == 0 {
		return nil, nil
	}
	re, err := regexp.Compile(`(?:` + strings.Join(alts, "|") + `)\s*$`)
	if err != nil {
		// Unreachable with quoted literals.
		return nil, nil
	}
	return re, groups
}

// =============================================================================
// REPLACEMENT
// =============================================================================

// StripTrailing removes the trailing occurrence of trigger and any
// whitespace after it. Content that does not end with the trigger is
// returned unchanged.
func StripTrailing(content, trigger string) string {
	if trigger == "" {
		return content
	}
	re := regexp.MustCompile(regexp.QuoteMeta(trigger) + `\s*$`)
	loc := re.FindStringIndex(content)
	if loc == nil {
		return content
	}
	return content[:loc[0]]
}

// Replace strips the trigger and appends text.
func Replace(content, trigger, text string) string {
	return StripTrailing(content, trigger) + text
}
