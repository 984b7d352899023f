// Package preview flattens the backend's source-preview HTML for terminal
// display. The fragment is trusted backend output; this package only
// reshapes it for a text screen, it does not sanitize. Highlighted
// (<mark>) spans are styled through a caller-supplied wrap func and the
// line holding the first one is reported so the view can scroll it into
// sight.
package preview

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/x/ansi"
	"golang.org/x/net/html"
)

type Result struct {
	Text string
	// MarkLine is the zero-based line index of the first highlight mark,
	// -1 when the fragment contains none.
	MarkLine int
}

// Flatten renders the HTML fragment as plain text, soft-wrapped at width
// columns (width <= 0 disables wrapping). wrap styles highlighted spans;
// nil leaves them unstyled.
func Flatten(fragment string, width int, wrap func(string) string) (Result, error) {
	if wrap == nil {
		wrap = func(s string) string { return s }
	}

	node, err := html.Parse(strings.NewReader(fragment))
	if err != nil {
		return Result{}, fmt.Errorf("parse preview html: %w", err)
	}

	f := &flattener{wrap: wrap, width: width, markLine: -1}
	f.walk(node, false)
	return Result{Text: f.b.String(), MarkLine: f.markLine}, nil
}

type flattener struct {
	b    strings.Builder
	wrap func(string) string

	width     int
	line      int
	lineWidth int
	markLine  int

	pendingBreak bool
	wroteAny     bool
}

var skippedElements = map[string]struct{}{
	"script": {}, "style": {}, "head": {}, "title": {}, "meta": {}, "link": {}, "noscript": {},
}

var blockElements = map[string]struct{}{
	"p": {}, "div": {}, "section": {}, "article": {}, "pre": {}, "blockquote": {},
	"h1": {}, "h2": {}, "h3": {}, "h4": {}, "h5": {}, "h6": {},
	"table": {}, "thead": {}, "tbody": {}, "tr": {}, "ul": {}, "ol": {}, "li": {},
}

func (f *flattener) walk(n *html.Node, inMark bool) {
	if n.Type == html.ElementNode {
		if _, skip := skippedElements[n.Data]; skip {
			return
		}
		switch n.Data {
		case "mark":
			inMark = true
		case "br":
			f.pendingBreak = true
			return
		}
		_, block := blockElements[n.Data]
		if block {
			f.pendingBreak = true
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			f.walk(c, inMark)
		}
		if block {
			f.pendingBreak = true
		}
		return
	}

	if n.Type == html.TextNode {
		for _, word := range strings.Fields(n.Data) {
			f.writeWord(word, inMark)
		}
		return
	}

	for c := n.FirstChild; c != nil; c = c.NextSibling {
		f.walk(c, inMark)
	}
}

func (f *flattener) writeWord(word string, mark bool) {
	if f.pendingBreak && f.wroteAny {
		f.newline()
	}
	f.pendingBreak = false

	w := ansi.StringWidth(word)
	if f.lineWidth > 0 {
		if f.width > 0 && f.lineWidth+1+w > f.width {
			f.newline()
		} else {
			f.b.WriteByte(' ')
			f.lineWidth++
		}
	}

	if mark && f.markLine < 0 {
		f.markLine = f.line
	}
	if mark {
		word = f.wrap(word)
	}
	f.b.WriteString(word)
	f.lineWidth += w
	f.wroteAny = true
}

func (f *flattener) newline() {
	f.b.WriteByte('\n')
	f.line++
	f.lineWidth = 0
}
