// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package search filters a playbook snapshot by a free-text query.
//
// Matching is a case-insensitive substring test against each
// scenario's name and its kind label. A kind whose label matches keeps
// its whole group; otherwise a group keeps only the scenarios whose
// names match and disappears when none do. Order always follows the
// registry. ShouldHighlight marks exactly the rows whose own text
// matched, and the match span tells the UI which runes to highlight.
//
// The query is taken literally: a query of "  " searches for two
// spaces. Only a nil or empty query means "no filter".
package search
