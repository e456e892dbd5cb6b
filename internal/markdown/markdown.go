// Package markdown converts card documents to and from markdown text.
//
// Markdown is the editing and export surface: `cvd edit` round-trips a
// card's body through $EDITOR as markdown, and board export/import uses it
// for whole-tree interchange. Mentions are written as [[card-id|label]]
// literals (see cardlink); bold text as **strong**; code blocks as fences.
package markdown

import (
	"strings"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	gmtext "github.com/yuin/goldmark/text"

	"github.com/aidanlsb/corvid/internal/cardlink"
	"github.com/aidanlsb/corvid/internal/model"
)

// Parse converts markdown source into a card document. Paragraphs and
// fenced/indented code blocks map to blocks; strong emphasis maps to bold
// leaves; [[...]] literals inside text map to mention inlines. The document
// model is a subset of markdown, so everything else degrades to plain text
// rather than failing.
func Parse(src string) model.Document {
	src = strings.ReplaceAll(src, "\r\n", "\n")
	if strings.TrimSpace(src) == "" {
		return model.DefaultDocument()
	}

	source := []byte(src)
	md := goldmark.New()
	root := md.Parser().Parse(gmtext.NewReader(source))

	var doc model.Document
	for n := root.FirstChild(); n != nil; n = n.NextSibling() {
		switch b := n.(type) {
		case *ast.FencedCodeBlock:
			doc = append(doc, model.CodeBlock(blockLines(b, source)))
		case *ast.CodeBlock:
			doc = append(doc, model.CodeBlock(blockLines(b, source)))
		default:
			inlines := collectInlines(n, source, false)
			if len(inlines) > 0 {
				doc = append(doc, model.Block{Kind: model.BlockParagraph, Children: inlines})
			}
		}
	}

	if len(doc) == 0 {
		return model.DefaultDocument()
	}
	return doc
}

// blockLines joins a code block's source lines, without the trailing fence
// newline.
func blockLines(n ast.Node, source []byte) string {
	var sb strings.Builder
	lines := n.Lines()
	for i := 0; i < lines.Len(); i++ {
		seg := lines.At(i)
		sb.Write(seg.Value(source))
	}
	return strings.TrimRight(sb.String(), "\n")
}

// collectInlines flattens an inline tree to text/mention leaves. bold is
// inherited downward so nested emphasis keeps its weight.
func collectInlines(n ast.Node, source []byte, bold bool) []model.Inline {
	var out []model.Inline
	for child := n.FirstChild(); child != nil; child = child.NextSibling() {
		switch c := child.(type) {
		case *ast.Text:
			out = append(out, textLeaves(string(c.Segment.Value(source)), bold)...)
			if c.SoftLineBreak() || c.HardLineBreak() {
				out = append(out, model.Inline{Kind: model.InlineText, Text: " ", Bold: bold})
			}
		case *ast.Emphasis:
			out = append(out, collectInlines(c, source, bold || c.Level >= 2)...)
		case *ast.CodeSpan:
			out = append(out, textLeaves(string(c.Text(source)), bold)...)
		default:
			out = append(out, collectInlines(child, source, bold)...)
		}
	}
	return mergeLeaves(out)
}

// textLeaves splits a text run around [[...]] mention literals.
func textLeaves(text string, bold bool) []model.Inline {
	matches := cardlink.FindAll(text)
	if len(matches) == 0 {
		if text == "" {
			return nil
		}
		return []model.Inline{{Kind: model.InlineText, Text: text, Bold: bold}}
	}

	var out []model.Inline
	pos := 0
	for _, m := range matches {
		if m.Start > pos {
			out = append(out, model.Inline{Kind: model.InlineText, Text: text[pos:m.Start], Bold: bold})
		}
		out = append(out, model.Mention(m.CardID, m.Label))
		pos = m.End
	}
	if pos < len(text) {
		out = append(out, model.Inline{Kind: model.InlineText, Text: text[pos:], Bold: bold})
	}
	return out
}

// mergeLeaves collapses adjacent text leaves with the same weight so the
// parsed document is stable across render/parse cycles.
func mergeLeaves(in []model.Inline) []model.Inline {
	var out []model.Inline
	for _, leaf := range in {
		if len(out) > 0 {
			last := &out[len(out)-1]
			if last.Kind == model.InlineText && leaf.Kind == model.InlineText && last.Bold == leaf.Bold {
				last.Text += leaf.Text
				continue
			}
		}
		out = append(out, leaf)
	}
	return out
}

// Render converts a card document to markdown, the inverse of Parse for
// documents expressible in both forms.
func Render(doc model.Document) string {
	var blocks []string
	for _, b := range doc {
		switch b.Kind {
		case model.BlockCode:
			var sb strings.Builder
			for _, in := range b.Children {
				sb.WriteString(in.Text)
			}
			blocks = append(blocks, "```\n"+sb.String()+"\n```")
		default:
			line := renderInlines(b.Children)
			if strings.TrimSpace(line) != "" {
				blocks = append(blocks, line)
			}
		}
	}
	if len(blocks) == 0 {
		return ""
	}
	return strings.Join(blocks, "\n\n") + "\n"
}

func renderInlines(children []model.Inline) string {
	var sb strings.Builder
	for _, in := range children {
		switch {
		case in.Kind == model.InlineMention:
			sb.WriteString(cardlink.Literal(in.CardID, in.Label))
		case in.Bold && strings.TrimSpace(in.Text) != "":
			sb.WriteString("**" + in.Text + "**")
		default:
			sb.WriteString(in.Text)
		}
	}
	return sb.String()
}
