// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package codec provides playbook's CBOR encoding configuration.
//
// Snapshot bundles written by `playbook snapshot --bundle` carry a
// CBOR manifest. The encoder uses Core Deterministic Encoding (RFC 8949
// §4.2): sorted map keys, smallest integer encoding, no
// indefinite-length items. The same set of captured frames always
// produces identical bytes, so two bundles can be compared with cmp.
//
// For buffer-oriented operations:
//
//	data, err := codec.Marshal(value)
//	err = codec.Unmarshal(data, &value)
//
// For stream-oriented operations:
//
//	encoder := codec.NewEncoder(w)
//	decoder := codec.NewDecoder(r)
//
// Types serialized only as CBOR use `cbor` struct tags. Decoding into
// an any-typed target produces map[string]any, never
// map[any]any.
package codec
