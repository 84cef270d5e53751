package assistant

import (
	"regexp"
	"strings"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/text"
)

var (
	reMarkdownLink = regexp.MustCompile(`\[([^\]]*)\]\([^)]*\)`)
	reBareURL      = regexp.MustCompile(`https?://\S+`)
	reSpaces       = regexp.MustCompile(`[ \t]{2,}`)
)

var linkParser = goldmark.New(goldmark.WithExtensions(extension.Linkify))

// SanitizeAnswer removes hyperlinks from a model answer before it reaches
// the client: markdown links collapse to their link text, bare and
// autolinked URLs disappear, and the leftover whitespace is tightened.
func SanitizeAnswer(answer string) string {
	out := answer

	// Walk the parsed document so links inside larger markdown structures
	// are found even when the regex would miss them.
	source := []byte(answer)
	doc := linkParser.Parser().Parse(text.NewReader(source))
	_ = ast.Walk(doc, func(n ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering {
			return ast.WalkContinue, nil
		}
		switch link := n.(type) {
		case *ast.Link:
			label := string(nodeText(link, source))
			full := "[" + label + "](" + string(link.Destination) + ")"
			out = strings.ReplaceAll(out, full, label)
		case *ast.AutoLink:
			out = strings.ReplaceAll(out, string(link.URL(source)), "")
		}
		return ast.WalkContinue, nil
	})

	out = reMarkdownLink.ReplaceAllString(out, "$1")
	out = reBareURL.ReplaceAllString(out, "")
	out = reSpaces.ReplaceAllString(out, " ")

	var lines []string
	for _, line := range strings.Split(out, "\n") {
		lines = append(lines, strings.TrimRight(line, " \t"))
	}
	return strings.TrimSpace(strings.Join(lines, "\n"))
}

func nodeText(n ast.Node, source []byte) []byte {
	var buf []byte
	for c := n.FirstChild(); c != nil; c = c.NextSibling() {
		if t, ok := c.(*ast.Text); ok {
			buf = append(buf, t.Segment.Value(source)...)
		} else {
			buf = append(buf, nodeText(c, source)...)
		}
	}
	return buf
}
