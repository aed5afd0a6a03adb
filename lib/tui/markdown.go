// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package tui

import (
	"fmt"
	"strings"
	"sync"

	"github.com/charmbracelet/x/ansi"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/extension"
	extast "github.com/yuin/goldmark/extension/ast"
	"github.com/yuin/goldmark/text"
)

// The parser configuration never changes and goldmark parsers are safe
// to share; each Parse call creates its own state.
var (
	markdownParser     goldmark.Markdown
	markdownParserOnce sync.Once
)

func getMarkdownParser() goldmark.Markdown {
	markdownParserOnce.Do(func() {
		markdownParser = goldmark.New(goldmark.WithExtensions(extension.GFM))
	})
	return markdownParser
}

// RenderMarkdown renders scenario notes as styled terminal text wrapped
// to width. Soft line breaks become spaces so hard-wrapped notes reflow
// at any width. Fenced code blocks are highlighted with
// [HighlightCode].
func RenderMarkdown(theme Theme, input string, width int) string {
	if strings.TrimSpace(input) == "" {
		return ""
	}
	source := []byte(input)
	document := getMarkdownParser().Parser().Parse(text.NewReader(source))

	renderer := &markdownRenderer{
		source: source,
		theme:  theme,
		width:  width,
	}
	ast.Walk(document, renderer.walk)
	return strings.TrimRight(renderer.output.String(), "\n")
}

// markdownRenderer walks the goldmark AST directly. Inline content
// accumulates per block and is word-wrapped as a unit when the block
// closes, which goldmark's streaming renderer interface does not
// support.
type markdownRenderer struct {
	source []byte
	theme  Theme
	width  int

	output strings.Builder
	inline strings.Builder

	// Continuation prefix for nested blockquotes and list items, and
	// the one-shot bullet that replaces it on an item's first line.
	prefixes      []string
	pendingBullet string

	bold, italic, strike int

	lists []listState

	// Trailing newlines in output, for blank line management.
	trailing int
}

type listState struct {
	ordered bool
	counter int
	tight   bool
}

func (renderer *markdownRenderer) prefix() string {
	return strings.Join(renderer.prefixes, "")
}

func (renderer *markdownRenderer) contentWidth() int {
	return max(renderer.width-ansi.StringWidth(renderer.prefix()), 10)
}

func (renderer *markdownRenderer) tight() bool {
	return len(renderer.lists) > 0 && renderer.lists[len(renderer.lists)-1].tight
}

func (renderer *markdownRenderer) write(s string) {
	if s == "" {
		return
	}
	renderer.output.WriteString(s)
	trimmed := strings.TrimRight(s, "\n")
	count := len(s) - len(trimmed)
	if trimmed == "" {
		renderer.trailing += count
	} else {
		renderer.trailing = count
	}
}

func (renderer *markdownRenderer) newline() {
	if renderer.trailing < 1 {
		renderer.write("\n")
	}
}

func (renderer *markdownRenderer) blankLine() {
	if renderer.output.Len() == 0 {
		return
	}
	for renderer.trailing < 2 {
		renderer.write("\n")
	}
}

// emitLines writes content line by line with the current prefixes. The
// first line takes the pending bullet when one is set.
func (renderer *markdownRenderer) emitLines(content string) {
	prefix := renderer.prefix()
	for index, line := range strings.Split(content, "\n") {
		if index == 0 && renderer.pendingBullet != "" {
			renderer.write(renderer.pendingBullet + line)
			renderer.pendingBullet = ""
		} else {
			renderer.write(prefix + line)
		}
		renderer.write("\n")
	}
}

func (renderer *markdownRenderer) flushInline() {
	content := renderer.inline.String()
	renderer.inline.Reset()
	if content == "" {
		return
	}
	renderer.emitLines(ansi.Wrap(content, renderer.contentWidth(), " ,.;-+|"))
}

func (renderer *markdownRenderer) styled(content string) string {
	style := renderer.theme.NewStyle().Foreground(renderer.theme.NormalText)
	if renderer.bold > 0 {
		style = style.Bold(true)
	}
	if renderer.italic > 0 {
		style = style.Italic(true)
	}
	if renderer.strike > 0 {
		style = style.Strikethrough(true)
	}
	return style.Render(content)
}

func (renderer *markdownRenderer) faint(content string) string {
	return renderer.theme.NewStyle().Foreground(renderer.theme.FaintText).Render(content)
}

func (renderer *markdownRenderer) lines(node ast.Node) string {
	var builder strings.Builder
	segments := node.Lines()
	for index := range segments.Len() {
		segment := segments.At(index)
		builder.Write(segment.Value(renderer.source))
	}
	return builder.String()
}

func (renderer *markdownRenderer) walk(node ast.Node, entering bool) (ast.WalkStatus, error) {
	switch node := node.(type) {
	case *ast.Paragraph, *ast.TextBlock:
		if !entering {
			renderer.flushInline()
			if !renderer.tight() {
				renderer.blankLine()
			}
		}

	case *ast.Heading:
		if !entering {
			content := ansi.Strip(renderer.inline.String())
			renderer.inline.Reset()
			style := renderer.theme.NewStyle().Bold(true).Foreground(renderer.theme.NormalText)
			if node.Level <= 2 {
				style = style.Foreground(renderer.theme.HeaderForeground).Underline(true)
			}
			renderer.blankLine()
			renderer.emitLines(ansi.Wrap(style.Render(content), renderer.contentWidth(), " "))
			renderer.blankLine()
		}

	case *ast.FencedCodeBlock:
		if entering {
			code := strings.TrimRight(renderer.lines(node), "\n")
			language := string(node.Language(renderer.source))
			highlighted := renderer.faint(code)
			if language != "" {
				highlighted = HighlightCode(renderer.theme, code, language, "")
			}
			renderer.blankLine()
			renderer.emitLines(highlighted)
			renderer.blankLine()
		}
		return ast.WalkSkipChildren, nil

	case *ast.CodeBlock:
		if entering {
			renderer.blankLine()
			renderer.emitLines(renderer.faint(strings.TrimRight(renderer.lines(node), "\n")))
			renderer.blankLine()
		}
		return ast.WalkSkipChildren, nil

	case *ast.Blockquote:
		if entering {
			renderer.prefixes = append(renderer.prefixes, renderer.faint("│ "))
		} else {
			renderer.prefixes = renderer.prefixes[:len(renderer.prefixes)-1]
			renderer.blankLine()
		}

	case *ast.List:
		if entering {
			renderer.lists = append(renderer.lists, listState{
				ordered: node.IsOrdered(),
				counter: node.Start,
				tight:   node.IsTight,
			})
		} else {
			renderer.lists = renderer.lists[:len(renderer.lists)-1]
			if !renderer.tight() {
				renderer.blankLine()
			}
		}

	case *ast.ListItem:
		if len(renderer.lists) == 0 {
			break
		}
		if entering {
			top := &renderer.lists[len(renderer.lists)-1]
			bullet := "• "
			if top.ordered {
				bullet = fmt.Sprintf("%d. ", top.counter)
				top.counter++
			}
			renderer.pendingBullet = renderer.prefix() + bullet
			renderer.prefixes = append(renderer.prefixes, strings.Repeat(" ", ansi.StringWidth(bullet)))
		} else {
			renderer.prefixes = renderer.prefixes[:len(renderer.prefixes)-1]
			renderer.newline()
		}

	case *ast.ThematicBreak:
		if entering {
			rule := renderer.theme.NewStyle().Foreground(renderer.theme.BorderColor).
				Render(strings.Repeat("─", renderer.contentWidth()))
			renderer.blankLine()
			renderer.emitLines(rule)
			renderer.blankLine()
		}

	case *ast.Text:
		if entering {
			renderer.inline.WriteString(renderer.styled(string(node.Segment.Value(renderer.source))))
			switch {
			case node.HardLineBreak():
				renderer.inline.WriteString("\n")
			case node.SoftLineBreak():
				renderer.inline.WriteString(" ")
			}
		}

	case *ast.String:
		if entering {
			renderer.inline.WriteString(renderer.styled(string(node.Value)))
		}

	case *ast.Emphasis:
		delta := 1
		if !entering {
			delta = -1
		}
		if node.Level >= 2 {
			renderer.bold += delta
		} else {
			renderer.italic += delta
		}

	case *extast.Strikethrough:
		if entering {
			renderer.strike++
		} else {
			renderer.strike--
		}

	case *ast.CodeSpan:
		if entering {
			var code strings.Builder
			for child := node.FirstChild(); child != nil; child = child.NextSibling() {
				if textNode, ok := child.(*ast.Text); ok {
					code.Write(textNode.Segment.Value(renderer.source))
				}
			}
			renderer.inline.WriteString(renderer.theme.NewStyle().
				Foreground(renderer.theme.Accent).Render(code.String()))
		}
		return ast.WalkSkipChildren, nil

	case *ast.Link:
		if !entering {
			if destination := string(node.Destination); destination != "" {
				renderer.inline.WriteString(" " + renderer.faint("("+destination+")"))
			}
		}

	case *ast.AutoLink:
		if entering {
			renderer.inline.WriteString(renderer.faint(string(node.URL(renderer.source))))
		}

	case *ast.Image:
		if entering {
			renderer.inline.WriteString(renderer.faint("[image: " + string(node.Destination) + "]"))
		}
		return ast.WalkSkipChildren, nil

	case *extast.TaskCheckBox:
		if entering {
			if node.IsChecked {
				renderer.inline.WriteString(renderer.theme.NewStyle().
					Foreground(renderer.theme.Success).Render("[x]") + " ")
			} else {
				renderer.inline.WriteString(renderer.styled("[ ] "))
			}
		}

	case *ast.HTMLBlock, *ast.RawHTML:
		// Notes are terminal text; embedded HTML is dropped.
		return ast.WalkSkipChildren, nil
	}
	return ast.WalkContinue, nil
}
