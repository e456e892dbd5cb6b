package model

import (
	"encoding/json"
	"reflect"
	"testing"
)

func TestDocumentJSONRoundTrip(t *testing.T) {
	tests := []struct {
		name string
		doc  Document
	}{
		{
			name: "default document",
			doc:  DefaultDocument(),
		},
		{
			name: "paragraphs with bold",
			doc: Document{
				Paragraph(Text("plain "), BoldText("loud")),
				Paragraph(Text("second")),
			},
		},
		{
			name: "code block",
			doc: Document{
				CodeBlock("fmt.Println(\"hi\")"),
			},
		},
		{
			name: "mention inline",
			doc: Document{
				Paragraph(Text("see "), Mention("c-abc123", "Garden Notes"), Text(" for more")),
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			data, err := json.Marshal(tt.doc)
			if err != nil {
				t.Fatalf("marshal: %v", err)
			}
			var got Document
			if err := json.Unmarshal(data, &got); err != nil {
				t.Fatalf("unmarshal: %v", err)
			}
			if !reflect.DeepEqual(got, tt.doc) {
				t.Errorf("round trip mismatch:\n got  %+v\n want %+v", got, tt.doc)
			}
		})
	}
}

func TestDocumentUnknownKindsDegrade(t *testing.T) {
	raw := `[
		{"type":"callout","children":[{"text":"odd block"}]},
		{"type":"paragraph","children":[{"type":"footnote","text":"odd inline"}]}
	]`
	var doc Document
	if err := json.Unmarshal([]byte(raw), &doc); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if doc[0].Kind != BlockParagraph {
		t.Errorf("unknown block kind = %q, want paragraph", doc[0].Kind)
	}
	if doc[1].Children[0].Kind != InlineText {
		t.Errorf("unknown inline kind = %q, want text", doc[1].Children[0].Kind)
	}
	if got := doc[1].Children[0].Text; got != "odd inline" {
		t.Errorf("text = %q, want %q", got, "odd inline")
	}
}

func TestPlainText(t *testing.T) {
	doc := Document{
		Paragraph(Text("garden "), BoldText("notes")),
		CodeBlock("x := 1"),
		Paragraph(Text("planting "), Mention("c-xyz", "Seeds"), Text(" soon")),
		Paragraph(), // empty blocks are skipped
	}
	want := "garden notes\nx := 1\nplanting Seeds soon"
	if got := doc.PlainText(); got != want {
		t.Errorf("PlainText = %q, want %q", got, want)
	}
}

func TestMentions(t *testing.T) {
	doc := Document{
		Paragraph(Mention("c-a", "A"), Text(" and "), Mention("c-b", "B")),
		Paragraph(Mention("c-a", "A again")),
		Paragraph(Inline{Kind: InlineMention}), // empty target is skipped
	}
	got := doc.Mentions()
	ids := make([]string, len(got))
	for i, m := range got {
		ids[i] = m.CardID
	}
	want := []string{"c-a", "c-b", "c-a"}
	if !reflect.DeepEqual(ids, want) {
		t.Errorf("Mentions ids = %v, want %v", ids, want)
	}
}

func TestCloneIsolation(t *testing.T) {
	doc := Document{Paragraph(Text("original"))}
	card := Card{ID: "c-1", Children: []string{"c-2"}, Content: doc}

	clone := card.Clone()
	clone.Children[0] = "c-other"
	clone.Content[0].Children[0].Text = "mutated"

	if card.Children[0] != "c-2" {
		t.Errorf("clone mutated original children: %v", card.Children)
	}
	if card.Content[0].Children[0].Text != "original" {
		t.Errorf("clone mutated original content: %v", card.Content)
	}
}

func TestIsEmpty(t *testing.T) {
	if !DefaultDocument().IsEmpty() {
		t.Error("default document should be empty")
	}
	if (Document{Paragraph(Mention("c-a", ""))}).IsEmpty() {
		t.Error("document with a mention is not empty")
	}
	if (Document{Paragraph(Text("x"))}).IsEmpty() {
		t.Error("document with text is not empty")
	}
}
