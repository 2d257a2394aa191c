package odt_test

import (
	"context"
	"path/filepath"
	"strings"
	"testing"

	"github.com/lpenaud/odtmerge/pkg/markup"
	"github.com/lpenaud/odtmerge/pkg/odt"
)

func newTestDocument(t *testing.T, content string) *odt.Document {
	t.Helper()

	doc, err := odt.NewDocument(openPackage(t, content))
	if err != nil {
		t.Fatalf("NewDocument: %v", err)
	}
	return doc
}

func TestDocumentFind(t *testing.T) {
	t.Parallel()

	doc := newTestDocument(t,
		`<office:text><text:p text:style-name="P1">hi</text:p></office:text>`)

	node, ok := doc.Find(odt.Locator{Name: "text:p"})
	if !ok {
		t.Fatal("expected a match")
	}
	if got := node.Text(doc.Content()); got != `<text:p text:style-name="P1">hi</text:p>` {
		t.Errorf("span = %q", got)
	}

	if _, ok := doc.Find(odt.Locator{Name: "table:table"}); ok {
		t.Error("expected not-found for absent element")
	}
}

func TestDocumentReplaceNode(t *testing.T) {
	t.Parallel()

	doc := newTestDocument(t, `<office:text><text:p>old</text:p></office:text>`)

	node, ok := doc.Find(odt.Locator{Name: "text:p"})
	if !ok {
		t.Fatal("expected a match")
	}

	before := len(doc.Content())
	replacement := `<text:p>replaced</text:p>`
	if err := doc.ReplaceNode(node, replacement); err != nil {
		t.Fatalf("ReplaceNode: %v", err)
	}

	if !strings.Contains(doc.Content(), "replaced") {
		t.Errorf("content = %q", doc.Content())
	}
	wantLen := before + len(replacement) - node.Len()
	if len(doc.Content()) != wantLen {
		t.Errorf("content length = %d, want %d", len(doc.Content()), wantLen)
	}

	// Re-scan shows the new content in place.
	again, ok := doc.Find(odt.Locator{Name: "text:p"})
	if !ok || again.Text(doc.Content()) != replacement {
		t.Errorf("re-scan span = %q", again.Text(doc.Content()))
	}
}

func TestDocumentStaleOffsetsRejected(t *testing.T) {
	t.Parallel()

	doc := newTestDocument(t, `<office:text><text:p>one</text:p><text:p>two</text:p></office:text>`)

	nodes := doc.FindAll(odt.Locator{Name: "text:p"})
	if len(nodes) != 2 {
		t.Fatalf("got %d nodes", len(nodes))
	}

	// Shrink the buffer so the second node's offsets dangle past the end.
	if err := doc.ReplaceNode(nodes[0], ""); err != nil {
		t.Fatalf("first replace: %v", err)
	}
	stale := markup.Node{Name: nodes[1].Name, Start: len(doc.Content()) + 1, End: len(doc.Content()) + 10}
	if err := doc.ReplaceNode(stale, "x"); err == nil {
		t.Error("expected validation error for stale offsets")
	}
}

func TestDocumentReplaceBetween(t *testing.T) {
	t.Parallel()

	content := `<office:text>` +
		`<table:table-column table:style-name="T.A"/>` +
		`<table:table-row>1</table:table-row>` +
		`<table:table-row>2</table:table-row>` +
		`</office:text>`

	t.Run("first through last", func(t *testing.T) {
		t.Parallel()

		doc := newTestDocument(t, content)
		last := odt.Locator{Name: "table:table-row"}
		applied, err := doc.ReplaceBetween(odt.Locator{Name: "table:table-column"}, &last, "<!replaced>")
		if err != nil {
			t.Fatalf("ReplaceBetween: %v", err)
		}
		if !applied {
			t.Fatal("expected replacement to apply")
		}
		if doc.Content() != `<office:text><!replaced></office:text>` {
			t.Errorf("content = %q", doc.Content())
		}
	})

	t.Run("degrades to first span when last misses", func(t *testing.T) {
		t.Parallel()

		doc := newTestDocument(t, content)
		last := odt.Locator{Name: "table:covered-table-cell"}
		applied, err := doc.ReplaceBetween(odt.Locator{Name: "table:table-column"}, &last, "<!col>")
		if err != nil {
			t.Fatalf("ReplaceBetween: %v", err)
		}
		if !applied {
			t.Fatal("expected replacement to apply")
		}
		want := `<office:text><!col>` +
			`<table:table-row>1</table:table-row>` +
			`<table:table-row>2</table:table-row>` +
			`</office:text>`
		if doc.Content() != want {
			t.Errorf("content = %q", doc.Content())
		}
	})

	t.Run("missing first is a logged no-op", func(t *testing.T) {
		t.Parallel()

		doc := newTestDocument(t, content)
		applied, err := doc.ReplaceBetween(odt.Locator{Name: "table:table"}, nil, "x")
		if err != nil {
			t.Fatalf("ReplaceBetween: %v", err)
		}
		if applied {
			t.Error("expected no-op for missing first element")
		}
		if doc.Content() != content {
			t.Error("buffer changed on a miss")
		}
	})
}

func TestDocumentSetVariable(t *testing.T) {
	t.Parallel()

	content := `<office:text>` +
		`<text:variable-set text:name="title" office:value-type="string">old</text:variable-set>` +
		`<text:p><text:variable-get text:name="title">old</text:variable-get></text:p>` +
		`<text:variable-set text:name="other">keep</text:variable-set>` +
		`</office:text>`

	doc := newTestDocument(t, content)

	n, err := doc.SetVariable("title", `5% & "up"`)
	if err != nil {
		t.Fatalf("SetVariable: %v", err)
	}
	if n != 2 {
		t.Errorf("rewrote %d elements, want 2", n)
	}

	want := `<text:variable-set text:name="title" office:value-type="string">` +
		`5% &amp; &quot;up&quot;</text:variable-set>`
	if !strings.Contains(doc.Content(), want) {
		t.Errorf("content = %q, want it to contain %q", doc.Content(), want)
	}
	if !strings.Contains(doc.Content(), `<text:variable-get text:name="title">5% &amp; &quot;up&quot;</text:variable-get>`) {
		t.Errorf("variable-get not rewritten: %q", doc.Content())
	}
	if !strings.Contains(doc.Content(), `<text:variable-set text:name="other">keep</text:variable-set>`) {
		t.Error("unrelated variable was touched")
	}
}

func TestDocumentSetVariableSelfClosing(t *testing.T) {
	t.Parallel()

	doc := newTestDocument(t,
		`<office:text><text:variable-get text:name="v"/></office:text>`)

	n, err := doc.SetVariable("v", "value")
	if err != nil {
		t.Fatalf("SetVariable: %v", err)
	}
	if n != 1 {
		t.Errorf("rewrote %d elements, want 1", n)
	}
	if !strings.Contains(doc.Content(), `<text:variable-get text:name="v">value</text:variable-get>`) {
		t.Errorf("content = %q", doc.Content())
	}
}

func TestDocumentSetVariableNotFound(t *testing.T) {
	t.Parallel()

	content := `<office:text><text:p>no variables</text:p></office:text>`
	doc := newTestDocument(t, content)

	n, err := doc.SetVariable("missing", "x")
	if err != nil {
		t.Fatalf("SetVariable: %v", err)
	}
	if n != 0 {
		t.Errorf("rewrote %d elements, want 0", n)
	}
	if doc.Content() != content {
		t.Error("buffer changed on a miss")
	}
}

func TestDocumentSetVariables(t *testing.T) {
	t.Parallel()

	doc := newTestDocument(t, `<office:text>`+
		`<text:variable-set text:name="a">1</text:variable-set>`+
		`<text:variable-set text:name="b">2</text:variable-set>`+
		`</office:text>`)

	n, err := doc.SetVariables(map[string]string{"a": "one", "b": "two"})
	if err != nil {
		t.Fatalf("SetVariables: %v", err)
	}
	if n != 2 {
		t.Errorf("rewrote %d elements, want 2", n)
	}
	if !strings.Contains(doc.Content(), ">one<") || !strings.Contains(doc.Content(), ">two<") {
		t.Errorf("content = %q", doc.Content())
	}
}

func TestDocumentSaveRoundTrip(t *testing.T) {
	t.Parallel()

	doc := newTestDocument(t,
		`<office:text><text:variable-set text:name="v">old</text:variable-set></office:text>`)

	if _, err := doc.SetVariable("v", "new"); err != nil {
		t.Fatalf("SetVariable: %v", err)
	}

	path := filepath.Join(t.TempDir(), "out.odt")
	if err := doc.Save(context.Background(), path); err != nil {
		t.Fatalf("Save: %v", err)
	}

	reopened, err := odt.Open(path)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	if !strings.Contains(reopened.Content(), ">new<") {
		t.Errorf("reopened content = %q", reopened.Content())
	}
}
