package render

import (
	"fmt"
	"html"
	"regexp"
	"strings"

	"github.com/gosimple/slug"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/util"
)

var (
	tocPattern = regexp.MustCompile(`(?s)<div class="toc">\s*<ul>(.*)</ul>\s*</div>`)
	// dropped before slugging; slug.Make would otherwise spell "&" as "and"
	slugPunctuation = regexp.MustCompile(`[^\p{L}\p{N}\s_-]+`)
)

// assignHeadingIDs gives every heading without an explicit {#id} an anchor
// slugged from its text. Explicit ids are collected first so an automatic
// anchor never takes one of them; repeats get a numeric suffix: intro,
// intro-1, intro-2.
func assignHeadingIDs(doc ast.Node, src []byte) {
	var auto []*ast.Heading
	used := make(map[string]struct{})
	_ = ast.Walk(doc, func(n ast.Node, entering bool) (ast.WalkStatus, error) {
		h, ok := n.(*ast.Heading)
		if !ok || !entering {
			return ast.WalkContinue, nil
		}
		if id := headingID(h); id != "" {
			used[id] = struct{}{}
		} else {
			auto = append(auto, h)
		}
		return ast.WalkSkipChildren, nil
	})

	for _, h := range auto {
		base := slug.Make(slugPunctuation.ReplaceAllString(plainText(h, src), ""))
		if base == "" {
			base = "section"
		}

		id := base
		for i := 1; ; i++ {
			if _, taken := used[id]; !taken {
				break
			}
			id = fmt.Sprintf("%s-%d", base, i)
		}
		used[id] = struct{}{}
		h.SetAttributeString("id", []byte(id))
	}
}

func headingID(h *ast.Heading) string {
	v, found := h.AttributeString("id")
	if !found {
		return ""
	}
	switch v := v.(type) {
	case []byte:
		return string(v)
	case string:
		return v
	}
	return ""
}

type heading struct {
	level int
	id    string
	title string
}

type tocEntry struct {
	heading
	children []*tocEntry
}

func collectHeadings(doc ast.Node, src []byte) []heading {
	var headings []heading
	_ = ast.Walk(doc, func(n ast.Node, entering bool) (ast.WalkStatus, error) {
		h, ok := n.(*ast.Heading)
		if !ok || !entering {
			return ast.WalkContinue, nil
		}
		headings = append(headings, heading{level: h.Level, id: headingID(h), title: plainText(h, src)})
		return ast.WalkSkipChildren, nil
	})
	return headings
}

// plainText returns the text a heading renders to, with backslash escapes
// and entity references resolved.
func plainText(n ast.Node, src []byte) string {
	var b strings.Builder
	_ = ast.Walk(n, func(c ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering {
			return ast.WalkContinue, nil
		}
		switch t := c.(type) {
		case *ast.CodeSpan:
			for child := t.FirstChild(); child != nil; child = child.NextSibling() {
				if txt, ok := child.(*ast.Text); ok {
					b.Write(txt.Segment.Value(src))
				}
			}
			return ast.WalkSkipChildren, nil
		case *ast.AutoLink:
			b.Write(t.Label(src))
			return ast.WalkSkipChildren, nil
		case *ast.Text:
			value := util.UnescapePunctuations(t.Segment.Value(src))
			value = util.ResolveNumericReferences(value)
			b.Write(util.ResolveEntityNames(value))
		case *ast.String:
			b.Write(t.Value)
		case *ast.RawHTML:
			return ast.WalkSkipChildren, nil
		}
		return ast.WalkContinue, nil
	})
	return strings.TrimSpace(b.String())
}

// buildOutline nests headings under the closest preceding heading of a
// lower level.
func buildOutline(headings []heading) []*tocEntry {
	var roots, stack []*tocEntry
	for _, h := range headings {
		entry := &tocEntry{heading: h}
		for len(stack) > 0 && stack[len(stack)-1].level >= h.level {
			stack = stack[:len(stack)-1]
		}
		if len(stack) == 0 {
			roots = append(roots, entry)
		} else {
			parent := stack[len(stack)-1]
			parent.children = append(parent.children, entry)
		}
		stack = append(stack, entry)
	}
	return roots
}

func tocContainer(entries []*tocEntry) string {
	var b strings.Builder
	b.WriteString("<div class=\"toc\">\n")
	if len(entries) > 0 {
		writeList(&b, entries)
	}
	b.WriteString("</div>\n")
	return b.String()
}

func writeList(b *strings.Builder, entries []*tocEntry) {
	b.WriteString("<ul>\n")
	for _, e := range entries {
		fmt.Fprintf(b, "<li><a href=\"#%s\">%s</a>", html.EscapeString(e.id), html.EscapeString(e.title))
		if len(e.children) > 0 {
			writeList(b, e.children)
		}
		b.WriteString("</li>\n")
	}
	b.WriteString("</ul>\n")
}

// extractTOC returns what sits between the outermost <ul> and </ul> of the
// toc container, or "" when there is no list.
func extractTOC(container string) string {
	m := tocPattern.FindStringSubmatch(container)
	if m == nil {
		return ""
	}
	return m[1]
}
