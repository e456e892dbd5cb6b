package model

import (
	"encoding/json"
	"strings"
)

// BlockKind discriminates block-level content nodes.
type BlockKind string

// InlineKind discriminates inline content nodes.
type InlineKind string

const (
	// BlockParagraph is ordinary flowing text.
	BlockParagraph BlockKind = "paragraph"
	// BlockCode is a preformatted code block.
	BlockCode BlockKind = "code"

	// InlineText is a text leaf, optionally bold.
	InlineText InlineKind = "text"
	// InlineMention is a reference to another card by id.
	InlineMention InlineKind = "mention"
)

// Document is a card's rich-text body: an ordered sequence of blocks.
// It is a typed tree rather than an opaque blob so text extraction for
// indexing never needs to guess at the payload's shape.
type Document []Block

// Block is a block-level node. Kind selects the variant; unknown kinds
// decode as paragraphs rather than failing.
type Block struct {
	Kind     BlockKind
	Children []Inline
}

// Inline is an inline node: either a text leaf or a mention of another card.
type Inline struct {
	Kind InlineKind

	// Text leaf fields.
	Text string
	Bold bool

	// Mention fields. CardID is the target card; Label is the display text
	// captured when the mention was committed (usually the target's title).
	CardID string
	Label  string
}

// DefaultDocument returns the body assigned to new cards: a single empty
// paragraph.
func DefaultDocument() Document {
	return Document{{Kind: BlockParagraph, Children: []Inline{{Kind: InlineText}}}}
}

// Clone returns a deep copy of the document.
func (d Document) Clone() Document {
	if d == nil {
		return nil
	}
	out := make(Document, len(d))
	for i, b := range d {
		nb := b
		if b.Children != nil {
			nb.Children = append([]Inline(nil), b.Children...)
		}
		out[i] = nb
	}
	return out
}

// PlainText flattens every text-bearing node into a single string, blocks
// separated by newlines. Mention labels count as text so mentions remain
// searchable.
func (d Document) PlainText() string {
	var blocks []string
	for _, b := range d {
		var sb strings.Builder
		for _, in := range b.Children {
			switch in.Kind {
			case InlineMention:
				sb.WriteString(in.Label)
			default:
				sb.WriteString(in.Text)
			}
		}
		if s := sb.String(); s != "" {
			blocks = append(blocks, s)
		}
	}
	return strings.Join(blocks, "\n")
}

// Mentions returns the ids of every card mentioned in the document, in
// document order. Duplicates are preserved.
func (d Document) Mentions() []Inline {
	var out []Inline
	for _, b := range d {
		for _, in := range b.Children {
			if in.Kind == InlineMention && in.CardID != "" {
				out = append(out, in)
			}
		}
	}
	return out
}

// IsEmpty reports whether the document carries no text and no mentions.
func (d Document) IsEmpty() bool {
	for _, b := range d {
		for _, in := range b.Children {
			if in.Kind == InlineMention && in.CardID != "" {
				return false
			}
			if in.Text != "" {
				return false
			}
		}
	}
	return true
}

type blockJSON struct {
	Type     string            `json:"type"`
	Children []json.RawMessage `json:"children"`
}

type inlineJSON struct {
	Type  string `json:"type,omitempty"`
	Text  string `json:"text,omitempty"`
	Bold  bool   `json:"bold,omitempty"`
	Card  string `json:"card,omitempty"`
	Label string `json:"label,omitempty"`
}

// MarshalJSON encodes the block as a tagged object.
func (b Block) MarshalJSON() ([]byte, error) {
	kind := b.Kind
	if kind == "" {
		kind = BlockParagraph
	}
	children := make([]json.RawMessage, 0, len(b.Children))
	for _, in := range b.Children {
		raw, err := json.Marshal(in)
		if err != nil {
			return nil, err
		}
		children = append(children, raw)
	}
	return json.Marshal(blockJSON{Type: string(kind), Children: children})
}

// UnmarshalJSON decodes a tagged block object. Unknown block kinds fall back
// to paragraph so stale snapshots still load.
func (b *Block) UnmarshalJSON(data []byte) error {
	var raw blockJSON
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	switch BlockKind(raw.Type) {
	case BlockCode:
		b.Kind = BlockCode
	default:
		b.Kind = BlockParagraph
	}
	b.Children = make([]Inline, 0, len(raw.Children))
	for _, rc := range raw.Children {
		var in Inline
		if err := json.Unmarshal(rc, &in); err != nil {
			return err
		}
		b.Children = append(b.Children, in)
	}
	return nil
}

// MarshalJSON encodes the inline as either a text leaf or a mention object.
func (in Inline) MarshalJSON() ([]byte, error) {
	if in.Kind == InlineMention {
		return json.Marshal(inlineJSON{Type: string(InlineMention), Card: in.CardID, Label: in.Label})
	}
	return json.Marshal(inlineJSON{Text: in.Text, Bold: in.Bold})
}

// UnmarshalJSON decodes an inline node. Objects tagged "mention" become
// mentions; everything else is treated as a text leaf.
func (in *Inline) UnmarshalJSON(data []byte) error {
	var raw inlineJSON
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	if InlineKind(raw.Type) == InlineMention {
		*in = Inline{Kind: InlineMention, CardID: raw.Card, Label: raw.Label}
		return nil
	}
	*in = Inline{Kind: InlineText, Text: raw.Text, Bold: raw.Bold}
	return nil
}

// Text is a convenience constructor for a plain text leaf.
func Text(s string) Inline { return Inline{Kind: InlineText, Text: s} }

// BoldText is a convenience constructor for a bold text leaf.
func BoldText(s string) Inline { return Inline{Kind: InlineText, Text: s, Bold: true} }

// Mention is a convenience constructor for a mention inline.
func Mention(cardID, label string) Inline {
	return Inline{Kind: InlineMention, CardID: cardID, Label: label}
}

// Paragraph is a convenience constructor for a paragraph block.
func Paragraph(children ...Inline) Block {
	return Block{Kind: BlockParagraph, Children: children}
}

// CodeBlock is a convenience constructor for a code block.
func CodeBlock(text string) Block {
	return Block{Kind: BlockCode, Children: []Inline{{Kind: InlineText, Text: text}}}
}

// PlainDocument builds a document of plain paragraphs, one per string.
func PlainDocument(paragraphs ...string) Document {
	d := make(Document, 0, len(paragraphs))
	for _, p := range paragraphs {
		d = append(d, Paragraph(Text(p)))
	}
	return d
}
