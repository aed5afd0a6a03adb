// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package tui

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"github.com/alecthomas/chroma/v2"
	"github.com/alecthomas/chroma/v2/formatters"
	"github.com/alecthomas/chroma/v2/lexers"
	"github.com/alecthomas/chroma/v2/styles"
	"github.com/muesli/termenv"
)

// chromaFormatter names the chroma formatter matching a color profile.
// Ascii has no formatter: code renders plain.
func chromaFormatter(profile termenv.Profile) string {
	switch profile {
	case termenv.TrueColor:
		return "terminal16m"
	case termenv.ANSI256:
		return "terminal256"
	case termenv.ANSI:
		return "terminal16"
	default:
		return ""
	}
}

// colorProfile returns the theme renderer's color profile.
func (theme Theme) colorProfile() termenv.Profile {
	if theme.renderer == nil {
		return termenv.ANSI256
	}
	return theme.renderer.ColorProfile()
}

// darkBackground reports whether the theme renders for a dark
// background.
func (theme Theme) darkBackground() bool {
	if theme.renderer == nil {
		return true
	}
	return theme.renderer.HasDarkBackground()
}

// HighlightCode syntax-highlights code with chroma. The lexer is
// chosen by language name, then by file name, then by content
// analysis. The formatter follows the theme's color profile and the
// chroma style follows its background. Returns FaintText-styled plain
// text when highlighting is unavailable.
func HighlightCode(theme Theme, code, language, filename string) string {
	plain := func() string {
		return theme.NewStyle().Foreground(theme.FaintText).Render(code)
	}

	var lexer chroma.Lexer
	if language != "" {
		lexer = lexers.Get(language)
	}
	if lexer == nil && filename != "" {
		lexer = lexers.Match(filename)
	}
	if lexer == nil && language == "" && filename == "" {
		lexer = lexers.Analyse(code)
	}
	formatterName := chromaFormatter(theme.colorProfile())
	if lexer == nil || formatterName == "" {
		return plain()
	}

	styleName := "github"
	if theme.darkBackground() {
		styleName = "monokai"
	}
	iterator, err := chroma.Coalesce(lexer).Tokenise(nil, code)
	if err != nil {
		return plain()
	}
	var buffer strings.Builder
	if err := formatters.Get(formatterName).Format(&buffer, styles.Get(styleName), iterator); err != nil {
		return plain()
	}
	return buffer.String()
}

// SourceExcerpt reads the lines of file around line (1-based), with up
// to context lines on either side, and returns them highlighted with a
// line-number gutter. The target line's gutter is marked with the
// accent color.
func SourceExcerpt(theme Theme, file string, line, context int) ([]string, error) {
	if line < 1 {
		return nil, fmt.Errorf("source line %d out of range", line)
	}
	handle, err := os.Open(file)
	if err != nil {
		return nil, fmt.Errorf("opening source: %w", err)
	}
	defer handle.Close()

	first := max(line-context, 1)
	last := line + context
	var excerpt []string
	scanner := bufio.NewScanner(handle)
	for number := 1; scanner.Scan(); number++ {
		if number < first {
			continue
		}
		if number > last {
			break
		}
		excerpt = append(excerpt, scanner.Text())
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("reading source: %w", err)
	}
	if line >= first+len(excerpt) {
		return nil, fmt.Errorf("source line %d past end of %s", line, file)
	}

	highlighted := strings.Split(HighlightCode(theme, strings.Join(excerpt, "\n"), "", file), "\n")
	gutterWidth := len(fmt.Sprint(last))
	gutter := theme.NewStyle().Foreground(theme.FaintText)
	marker := theme.NewStyle().Foreground(theme.Accent).Bold(true)
	reset := ""
	if chromaFormatter(theme.colorProfile()) != "" {
		reset = "\x1b[0m"
	}

	lines := make([]string, len(excerpt))
	for index := range excerpt {
		number := first + index
		label := fmt.Sprintf("%*d │ ", gutterWidth, number)
		style := gutter
		if number == line {
			style = marker
		}
		body := excerpt[index]
		if index < len(highlighted) {
			body = highlighted[index]
		}
		// Chroma tokens can span lines; reset so colors stay in the row.
		lines[index] = style.Render(label) + body + reset
	}
	return lines, nil
}
