// Package html extracts visible text from HTML contract exhibits.
package html

import (
	"strings"

	"golang.org/x/net/html"
)

// ExtractText parses markup and returns its visible text with script and
// style subtrees dropped and whitespace collapsed. Malformed markup is not an
// error: the parser recovers and the text of whatever was parseable comes
// back. An empty result means the document had no visible text.
func ExtractText(content []byte) string {
	doc, err := html.Parse(strings.NewReader(string(content)))
	if err != nil {
		return ""
	}

	var chunks []string
	var walk func(n *html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.ElementNode {
			switch n.Data {
			case "script", "style":
				return
			}
		}
		if n.Type == html.TextNode {
			if t := strings.TrimSpace(n.Data); t != "" {
				chunks = append(chunks, strings.Join(strings.Fields(t), " "))
			}
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(doc)

	return strings.Join(chunks, " ")
}
