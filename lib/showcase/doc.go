// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package showcase registers demonstration scenarios built from
// Playbook's own terminal components in lib/tui: the theme palette,
// scrollbars, the dropdown menu, modal overlays, the heat glow,
// markdown notes, and highlighted source. The playbook binary
// registers them so a fresh checkout has something to browse, and they
// double as fixtures for the catalog and gallery.
//
// Content styles itself with the renderer from [scenario.Context], so
// captures honor the pipeline's color profile and scheme.
package showcase
