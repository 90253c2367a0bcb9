// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package binder hooks editable surfaces and runs the dropdown pipeline on
// every content-changing key:
//
//	settings -> trigger match -> global gate -> command gate -> caret -> menu
//
// Surfaces are hooked at most once per lifetime. The hook is recorded as a
// marker attribute on the surface itself, so announcing the same surface
// over and over is cheap and never stacks listeners.
//
// The four menu keys (up, down, enter, escape) never run the pipeline, so
// operating an open menu cannot reopen or reset it.
package binder
