// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package export

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// WriteFiles writes each shot under dir as <kind>/<name>.ans and
// <kind>/<name>.txt, creating directories as needed. Duplicate names
// get a numeric suffix. It returns the paths written, in order.
func WriteFiles(dir string, shots []Shot) ([]string, error) {
	var written []string
	for _, shot := range shots {
		base := fileName(shot.Name)
		if shot.Ordinal > 0 {
			base = fmt.Sprintf("%s-%d", base, shot.Ordinal+1)
		}
		kindDir := filepath.Join(dir, fileName(shot.Kind))
		if err := os.MkdirAll(kindDir, 0o755); err != nil {
			return written, fmt.Errorf("creating %s: %w", kindDir, err)
		}

		for _, file := range []struct {
			extension string
			content   string
		}{
			{".ans", shot.Styled() + "\n"},
			{".txt", shot.Plain() + "\n"},
		} {
			path := filepath.Join(kindDir, base+file.extension)
			if err := os.WriteFile(path, []byte(file.content), 0o644); err != nil {
				return written, fmt.Errorf("writing %s: %w", path, err)
			}
			written = append(written, path)
		}
	}
	return written, nil
}

// fileName maps a kind or scenario name to a single safe path element.
func fileName(name string) string {
	name = strings.TrimSpace(name)
	mapped := strings.Map(func(r rune) rune {
		switch {
		case r == '/' || r == '\\' || r == ':' || r == 0:
			return '_'
		case r < ' ':
			return -1
		}
		return r
	}, name)
	if mapped == "" || mapped == "." || mapped == ".." {
		return "_"
	}
	return mapped
}
