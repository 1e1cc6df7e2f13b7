package markdown_test

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/goliatone/go-sitecms/internal/markdown"
	"github.com/goliatone/go-sitecms/richtext"
)

func TestConvertMixedDocument(t *testing.T) {
	source := strings.Join([]string{
		"# Getting Started",
		"",
		"Hello **world** and [docs](https://example.com/docs).",
		"",
		"- first item",
		"1. numbered item",
		"",
		"### Details",
	}, "\n")

	doc := markdown.Convert(source)
	if len(doc) != 5 {
		t.Fatalf("expected 5 blocks, got %d", len(doc))
	}

	for i, block := range doc {
		if block.Type != richtext.TypeBlock {
			t.Fatalf("block %d: expected block type, got %q", i, block.Type)
		}
		if block.Key != richtext.BlockKey(i) {
			t.Fatalf("block %d: expected key %q, got %q", i, richtext.BlockKey(i), block.Key)
		}
		if block.MarkDefs == nil {
			t.Fatalf("block %d: markDefs must never be nil", i)
		}
	}

	if doc[0].Style != richtext.StyleH2 || doc[0].Text() != "Getting Started" {
		t.Fatalf("unexpected heading block: %+v", doc[0])
	}

	para := doc[1]
	if para.Style != richtext.StyleNormal {
		t.Fatalf("expected normal paragraph, got %q", para.Style)
	}
	wantTexts := []string{"Hello ", "world", " and ", "docs", "."}
	if len(para.Children) != len(wantTexts) {
		t.Fatalf("expected %d spans, got %+v", len(wantTexts), para.Children)
	}
	for i, want := range wantTexts {
		span := para.Children[i]
		if span.Text != want {
			t.Fatalf("span %d: expected %q, got %q", i, want, span.Text)
		}
		if span.Key != richtext.SpanKey(i) {
			t.Fatalf("span %d: expected key %q, got %q", i, richtext.SpanKey(i), span.Key)
		}
	}
	if len(para.Children[1].Marks) != 1 || para.Children[1].Marks[0] != richtext.MarkStrong {
		t.Fatalf("expected strong mark, got %v", para.Children[1].Marks)
	}
	if len(para.MarkDefs) != 1 || para.MarkDefs[0].Key != "link-0" || para.MarkDefs[0].Href != "https://example.com/docs" {
		t.Fatalf("unexpected mark defs: %+v", para.MarkDefs)
	}
	if para.Children[3].Marks[0] != "link-0" {
		t.Fatalf("expected link mark on docs span, got %v", para.Children[3].Marks)
	}

	if doc[2].ListItem != richtext.ListBullet || doc[2].Level != 1 || doc[2].Text() != "first item" {
		t.Fatalf("unexpected bullet block: %+v", doc[2])
	}
	if doc[3].ListItem != richtext.ListNumber || doc[3].Level != 1 || doc[3].Text() != "numbered item" {
		t.Fatalf("unexpected number block: %+v", doc[3])
	}
	if doc[4].Style != richtext.StyleH3 {
		t.Fatalf("expected h3 for level three heading, got %q", doc[4].Style)
	}

	if err := richtext.Validate(doc); err != nil {
		t.Fatalf("converted document should validate: %v", err)
	}
	if err := richtext.ValidateSchema(doc); err != nil {
		t.Fatalf("converted document should match schema: %v", err)
	}
}

func TestConvertJoinsParagraphLines(t *testing.T) {
	doc := markdown.Convert("  line one  \nline two\n\nline three")
	if len(doc) != 2 {
		t.Fatalf("expected 2 blocks, got %d", len(doc))
	}
	if got := doc[0].Text(); got != "line one line two" {
		t.Fatalf("expected joined paragraph, got %q", got)
	}
	if got := doc[1].Text(); got != "line three" {
		t.Fatalf("unexpected second paragraph %q", got)
	}
}

func TestConvertStripsImages(t *testing.T) {
	doc := markdown.Convert("Before ![diagram](https://example.com/a.png) after\n\n![only](b.png)")
	if len(doc) != 1 {
		t.Fatalf("expected image-only line to produce no block, got %d blocks", len(doc))
	}
	text := doc[0].Text()
	if strings.Contains(text, "diagram") || strings.Contains(text, "a.png") || strings.Contains(text, "!") {
		t.Fatalf("expected image markup to be removed, got %q", text)
	}
	if !strings.HasPrefix(text, "Before") || !strings.HasSuffix(text, "after") {
		t.Fatalf("expected surrounding text to survive, got %q", text)
	}
}

func TestConvertHeadingLevels(t *testing.T) {
	doc := markdown.Convert("# One\n## Two\n### Three\n###### Six")
	want := []string{richtext.StyleH2, richtext.StyleH2, richtext.StyleH3, richtext.StyleH3}
	if len(doc) != len(want) {
		t.Fatalf("expected %d blocks, got %d", len(want), len(doc))
	}
	for i, style := range want {
		if doc[i].Style != style {
			t.Fatalf("block %d: expected %q, got %q", i, style, doc[i].Style)
		}
	}
}

func TestConvertIgnoresHashLinesThatAreNotHeadings(t *testing.T) {
	doc := markdown.Convert("first part\n#hashtag\nsecond part\n#######")
	if len(doc) != 2 {
		t.Fatalf("expected 2 paragraphs, got %d", len(doc))
	}
	if doc[0].Text() != "first part" || doc[1].Text() != "second part" {
		t.Fatalf("unexpected paragraphs: %q / %q", doc[0].Text(), doc[1].Text())
	}
}

func TestConvertHeadingDropsLinkDefinitions(t *testing.T) {
	doc := markdown.Convert("## Read [the guide](https://example.com/guide) first")
	if len(doc) != 1 {
		t.Fatalf("expected 1 block, got %d", len(doc))
	}
	heading := doc[0]
	if len(heading.MarkDefs) != 0 {
		t.Fatalf("expected heading without mark defs, got %+v", heading.MarkDefs)
	}
	for _, span := range heading.Children {
		if len(span.Marks) != 0 {
			t.Fatalf("expected link marks to be removed, got %v on %q", span.Marks, span.Text)
		}
	}
	if got := heading.Text(); got != "Read the guide first" {
		t.Fatalf("expected link text to remain, got %q", got)
	}
	if err := richtext.Validate(doc); err != nil {
		t.Fatalf("heading document should validate: %v", err)
	}
}

func TestConvertListItemLinksKeepDefinitions(t *testing.T) {
	doc := markdown.Convert("- see [a](https://a.test) and [b](https://b.test)")
	if len(doc) != 1 {
		t.Fatalf("expected 1 block, got %d", len(doc))
	}
	defs := doc[0].MarkDefs
	if len(defs) != 2 || defs[0].Key != "link-0" || defs[1].Key != "link-1" {
		t.Fatalf("unexpected list item mark defs: %+v", defs)
	}
	if err := richtext.Validate(doc); err != nil {
		t.Fatalf("list document should validate: %v", err)
	}
}

func TestConvertEmptyInput(t *testing.T) {
	for _, input := range []string{"", "   ", "\n\n\n"} {
		doc := markdown.Convert(input)
		if doc == nil || len(doc) != 0 {
			t.Fatalf("expected empty non-nil document for %q, got %#v", input, doc)
		}
		data, err := json.Marshal(doc)
		if err != nil {
			t.Fatalf("marshal: %v", err)
		}
		if string(data) != "[]" {
			t.Fatalf("expected [] for empty document, got %s", data)
		}
	}
}

func TestConvertIsDeterministic(t *testing.T) {
	source := "# Title\n\nSome **bold** text with [a link](https://example.com).\n\n- one\n- two"
	first, _ := json.Marshal(markdown.Convert(source))
	second, _ := json.Marshal(markdown.Convert(source))
	if string(first) != string(second) {
		t.Fatalf("expected identical output across runs")
	}
}

func TestConverterMethodMatchesPackageFunction(t *testing.T) {
	source := "Plain paragraph."
	viaPackage, _ := json.Marshal(markdown.Convert(source))
	viaMethod, _ := json.Marshal(markdown.NewConverter().Convert(source))
	if string(viaPackage) != string(viaMethod) {
		t.Fatalf("expected converter instance to match package function")
	}
}

func TestExtractTitle(t *testing.T) {
	title, body, ok := markdown.ExtractTitle("Intro line\n## The Title\n\nBody text")
	if !ok {
		t.Fatalf("expected title to be found")
	}
	if title != "The Title" {
		t.Fatalf("unexpected title %q", title)
	}
	if strings.Contains(body, "The Title") || !strings.Contains(body, "Body text") || !strings.HasPrefix(body, "Intro line") {
		t.Fatalf("unexpected body %q", body)
	}

	_, untouched, ok := markdown.ExtractTitle("no heading here")
	if ok || untouched != "no heading here" {
		t.Fatalf("expected no title, got ok=%v body=%q", ok, untouched)
	}
}
