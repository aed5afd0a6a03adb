// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package tui

import (
	"encoding/base64"
	"io"
	"os"
	"strings"
)

// OSC52 returns the escape sequence that asks the terminal to place
// text on the system clipboard. BEL terminates the OSC so the sequence
// can be wrapped in a tmux passthrough without escaping ST.
func OSC52(text string) string {
	return "\x1b]52;c;" + base64.StdEncoding.EncodeToString([]byte(text)) + "\a"
}

// InTmux reports whether the terminal is tmux or screen, locally or
// forwarded through SSH.
func InTmux() bool {
	term := os.Getenv("TERM")
	return os.Getenv("TMUX") != "" ||
		strings.HasPrefix(term, "tmux") ||
		strings.HasPrefix(term, "screen")
}

// WriteClipboard writes the OSC 52 sequence for text to w. Under tmux
// the sequence is written twice: once inside a DCS passthrough
// (requires allow-passthrough) and once directly, which tmux forwards
// when set-clipboard is on.
func WriteClipboard(w io.Writer, text string, tmux bool) error {
	sequence := OSC52(text)
	if tmux {
		if _, err := io.WriteString(w, "\x1bPtmux;\x1b"+sequence+"\x1b\\"); err != nil {
			return err
		}
	}
	_, err := io.WriteString(w, sequence)
	return err
}

// CopyToClipboard writes text to the clipboard through the controlling
// terminal. The write goes to /dev/tty so it does not interleave with
// the program's frame output on stdout.
func CopyToClipboard(text string) error {
	tty, err := os.OpenFile("/dev/tty", os.O_WRONLY, 0)
	if err != nil {
		return err
	}
	defer tty.Close()
	return WriteClipboard(tty, text, InTmux())
}
