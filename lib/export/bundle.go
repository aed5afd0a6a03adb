// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package export

import (
	"bufio"
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"math"
	"strings"

	"github.com/charmbracelet/x/ansi"

	"github.com/bureau-foundation/playbook/lib/codec"
	"github.com/bureau-foundation/playbook/lib/playbook"
	"github.com/bureau-foundation/playbook/lib/render"
	"github.com/bureau-foundation/playbook/lib/scenario"
)

// bundleMagic opens every bundle.
const bundleMagic = "PLBK"

// BundleVersion is the manifest format written by WriteBundle.
const BundleVersion = 1

// maxManifestSize bounds the uncompressed manifest ReadBundle accepts.
const maxManifestSize = 256 << 20

// Shot is one captured scenario.
type Shot struct {
	Kind    string   `cbor:"kind"`
	Name    string   `cbor:"name"`
	Ordinal int      `cbor:"ordinal,omitempty"`
	Layout  string   `cbor:"layout"`
	Width   int      `cbor:"width"`
	Height  int      `cbor:"height"`
	Scheme  string   `cbor:"scheme"`
	Profile string   `cbor:"profile"`
	Lines   []string `cbor:"lines"`
	Digest  [32]byte `cbor:"digest"`
}

// NewShot records image as the capture of the scenario at id.
func NewShot(id playbook.ID, layout scenario.Layout, image render.Image) Shot {
	return Shot{
		Kind:    string(id.Kind),
		Name:    string(id.Name),
		Ordinal: id.Ordinal,
		Layout:  layout.String(),
		Width:   image.Width,
		Height:  image.Height,
		Scheme:  image.Scheme.String(),
		Profile: render.ProfileName(image.Profile),
		Lines:   image.Lines,
		Digest:  image.Digest,
	}
}

// ID returns the scenario identity the shot was captured from.
func (shot Shot) ID() playbook.ID {
	return playbook.ID{Kind: scenario.Kind(shot.Kind), Name: scenario.Name(shot.Name), Ordinal: shot.Ordinal}
}

// Styled returns the frame with styling.
func (shot Shot) Styled() string { return strings.Join(shot.Lines, "\n") }

// Plain returns the frame with styling removed.
func (shot Shot) Plain() string { return ansi.Strip(shot.Styled()) }

// Manifest is the decoded content of a bundle.
type Manifest struct {
	Version int    `cbor:"version"`
	Name    string `cbor:"name"`
	Shots   []Shot `cbor:"shots"`
}

// Bundle header layout, after the 4-byte magic:
//
//	[1 byte version] [1 byte compression] [4 bytes uncompressed size]
//	[4 bytes payload size] [payload]
//
// Sizes are big-endian.
const headerSize = len(bundleMagic) + 1 + 1 + 4 + 4

// WriteBundle writes shots to w as a single bundle titled name. When
// compression would not shrink the manifest it is stored uncompressed.
// It returns the compression actually used.
func WriteBundle(w io.Writer, name string, shots []Shot, compression Compression) (Compression, error) {
	manifest, err := codec.Marshal(Manifest{Version: BundleVersion, Name: name, Shots: shots})
	if err != nil {
		return 0, fmt.Errorf("encoding manifest: %w", err)
	}
	if uint64(len(manifest)) > math.MaxUint32 {
		return 0, fmt.Errorf("manifest too large: %d bytes", len(manifest))
	}

	payload, err := compress(manifest, compression)
	if errors.Is(err, errIncompressible) {
		payload, compression = manifest, CompressionNone
	} else if err != nil {
		return 0, err
	}

	header := make([]byte, headerSize)
	copy(header, bundleMagic)
	header[4] = BundleVersion
	header[5] = byte(compression)
	binary.BigEndian.PutUint32(header[6:], uint32(len(manifest)))
	binary.BigEndian.PutUint32(header[10:], uint32(len(payload)))

	if _, err := w.Write(header); err != nil {
		return 0, fmt.Errorf("writing bundle header: %w", err)
	}
	if _, err := w.Write(payload); err != nil {
		return 0, fmt.Errorf("writing bundle payload: %w", err)
	}
	return compression, nil
}

// ReadBundle reads a bundle written by WriteBundle.
func ReadBundle(r io.Reader) (Manifest, error) {
	raw, compression, err := RawManifest(r)
	if err != nil {
		return Manifest{}, err
	}
	var manifest Manifest
	if err := codec.Unmarshal(raw, &manifest); err != nil {
		return Manifest{}, fmt.Errorf("decoding %s manifest: %w", compression, err)
	}
	if manifest.Version != BundleVersion {
		return Manifest{}, fmt.Errorf("unsupported manifest version %d", manifest.Version)
	}
	return manifest, nil
}

// RawManifest returns the decompressed CBOR manifest of a bundle and
// the compression it was stored with.
func RawManifest(r io.Reader) ([]byte, Compression, error) {
	reader := bufio.NewReader(r)
	header := make([]byte, headerSize)
	if _, err := io.ReadFull(reader, header); err != nil {
		return nil, 0, fmt.Errorf("reading bundle header: %w", err)
	}
	if string(header[:4]) != bundleMagic {
		return nil, 0, fmt.Errorf("not a playbook bundle (magic %q)", header[:4])
	}
	if header[4] != BundleVersion {
		return nil, 0, fmt.Errorf("unsupported bundle version %d", header[4])
	}
	compression := Compression(header[5])
	uncompressedSize := binary.BigEndian.Uint32(header[6:])
	payloadSize := binary.BigEndian.Uint32(header[10:])
	if uncompressedSize > maxManifestSize || payloadSize > maxManifestSize {
		return nil, 0, fmt.Errorf("bundle manifest too large: %d bytes", uncompressedSize)
	}

	payload := make([]byte, payloadSize)
	if _, err := io.ReadFull(reader, payload); err != nil {
		return nil, 0, fmt.Errorf("reading bundle payload: %w", err)
	}
	raw, err := decompress(payload, compression, int(uncompressedSize))
	if err != nil {
		return nil, 0, err
	}
	return raw, compression, nil
}
