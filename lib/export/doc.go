// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package export writes captured snapshots for review outside the
// terminal.
//
// [WriteFiles] lays shots out as one directory per kind with a .ans
// file (the styled frame, viewable with cat) and a .txt file (plain
// text, suitable for diffing) per scenario.
//
// [WriteBundle] packs every shot into a single stream: a short header
// followed by a compressed CBOR manifest. [ReadBundle] reverses it.
// Bundle bytes depend only on the frames, so identical captures yield
// identical bundles.
package export
