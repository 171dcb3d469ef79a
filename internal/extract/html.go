package extract

import (
	"strings"

	"golang.org/x/net/html"
)

// StripMarkup reduces page markup to plain text: script and style subtrees
// are dropped, every text node contributes its trimmed content, and all
// whitespace runs (including line breaks) collapse to single spaces.
func StripMarkup(markup string) string {
	doc, err := html.Parse(strings.NewReader(markup))
	if err != nil {
		// html.Parse almost never fails; fall back to collapsing the raw text
		return collapseWhitespace(markup)
	}

	var builder strings.Builder
	walkText(doc, false, &builder)
	return collapseWhitespace(builder.String())
}

func walkText(node *html.Node, skip bool, out *strings.Builder) {
	if node == nil {
		return
	}
	if node.Type == html.ElementNode {
		switch strings.ToLower(node.Data) {
		case "script", "style":
			skip = true
		}
	}
	if node.Type == html.TextNode && !skip {
		trimmed := strings.TrimSpace(node.Data)
		if trimmed != "" {
			out.WriteString(trimmed)
			out.WriteByte(' ')
		}
	}
	for child := node.FirstChild; child != nil; child = child.NextSibling {
		walkText(child, skip, out)
	}
}

func collapseWhitespace(text string) string {
	return strings.Join(strings.Fields(text), " ")
}
