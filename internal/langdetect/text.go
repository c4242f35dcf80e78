package langdetect

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
	"golang.org/x/net/html"
)

// VisibleText renders raw HTML down to the text a reader would see: script,
// style, noscript, iframe, svg and img subtrees are dropped entirely, anchor
// text is kept (link targets are attributes and never surface), and all
// whitespace is collapsed to single spaces. Pure: same HTML, same output.
func VisibleText(rawHTML string) string {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(rawHTML))
	if err != nil {
		return ""
	}
	doc.Find("script, style, noscript, iframe, svg, img").Remove()

	root := doc.Find("body")
	if root.Length() == 0 {
		root = doc.Selection
	}
	var b strings.Builder
	for _, n := range root.Nodes {
		collectText(n, &b)
	}
	return collapseWhitespace(b.String())
}

func collectText(n *html.Node, b *strings.Builder) {
	if n.Type == html.TextNode {
		b.WriteString(n.Data)
		b.WriteByte(' ')
		return
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		collectText(c, b)
	}
}

// collapseWhitespace joins all whitespace runs (including newlines) into
// single spaces; downstream analysis treats text as one undifferentiated
// sample, so structure is deliberately not preserved.
func collapseWhitespace(s string) string {
	return strings.Join(strings.Fields(s), " ")
}
