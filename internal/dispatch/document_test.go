package dispatch

import (
	"strings"
	"testing"
)

const testNS = "http://example.com/demo"

func TestParse(t *testing.T) {
	t.Run("ResolvesPrefixes", func(t *testing.T) {
		// Same document, three spellings of the namespace binding.
		docs := []string{
			`<getUserRequest xmlns="http://example.com/demo"><id>7</id></getUserRequest>`,
			`<d:getUserRequest xmlns:d="http://example.com/demo"><d:id>7</d:id></d:getUserRequest>`,
			`<ns2:getUserRequest xmlns:ns2="http://example.com/demo"><ns2:id> 7 </ns2:id></ns2:getUserRequest>`,
		}

		for _, doc := range docs {
			root, err := Parse(strings.NewReader(doc))
			if err != nil {
				t.Fatalf("failed to parse %q: %v", doc, err)
			}

			if root.Space != testNS || root.Local != "getUserRequest" {
				t.Errorf("expected {%s}getUserRequest, got {%s}%s", testNS, root.Space, root.Local)
			}

			field := root.Find(testNS, "id")
			if field == nil {
				t.Fatal("id field should be found regardless of prefix spelling")
			}
			if strings.TrimSpace(field.Text) != "7" {
				t.Errorf("expected id text 7, got %q", field.Text)
			}
		}
	})

	t.Run("NestedChildren", func(t *testing.T) {
		doc := `<a xmlns="x"><b><c>deep</c></b><b2>flat</b2></a>`
		root, err := Parse(strings.NewReader(doc))
		if err != nil {
			t.Fatalf("failed to parse: %v", err)
		}

		if len(root.Children) != 2 {
			t.Fatalf("expected 2 children, got %d", len(root.Children))
		}
		if c := root.Find("x", "c"); c == nil || c.Text != "deep" {
			t.Errorf("expected to find c with text deep, got %+v", c)
		}
		if root.Depth() != 3 {
			t.Errorf("expected depth 3, got %d", root.Depth())
		}
	})

	t.Run("EmptyInput", func(t *testing.T) {
		if _, err := Parse(strings.NewReader("")); err == nil {
			t.Error("expected error for empty input")
		}
	})

	t.Run("MalformedInput", func(t *testing.T) {
		if _, err := Parse(strings.NewReader(`<a><b></a>`)); err == nil {
			t.Error("expected error for mismatched tags")
		}
	})
}

func TestMarshal(t *testing.T) {
	t.Run("DeclaresNamespaceOnce", func(t *testing.T) {
		doc := NewElement(testNS, "getAllUsersResponse").Append(
			NewElement(testNS, "users").Append(
				TextElement(testNS, "id", "1"),
				TextElement(testNS, "name", "Ana"),
			),
		)

		out, err := Marshal(doc)
		if err != nil {
			t.Fatalf("failed to marshal: %v", err)
		}

		text := string(out)
		if n := strings.Count(text, `xmlns=`); n != 1 {
			t.Errorf("expected exactly one xmlns declaration, got %d in %s", n, text)
		}
		if !strings.Contains(text, `<getAllUsersResponse xmlns="http://example.com/demo">`) {
			t.Errorf("unexpected root element: %s", text)
		}
	})

	t.Run("EmptyLeafStaysPresent", func(t *testing.T) {
		doc := NewElement(testNS, "users").Append(TextElement(testNS, "age", ""))

		out, err := Marshal(doc)
		if err != nil {
			t.Fatalf("failed to marshal: %v", err)
		}

		if !strings.Contains(string(out), "<age>") {
			t.Errorf("empty leaf should still be emitted: %s", out)
		}
	})

	t.Run("RoundTrip", func(t *testing.T) {
		doc := NewElement(testNS, "getPlaylistSongsResponse").Append(
			NewElement(testNS, "songs").Append(
				TextElement(testNS, "id", "3"),
				TextElement(testNS, "title", "Aurora"),
				TextElement(testNS, "artist", "V-Squared"),
			),
		)

		out, err := Marshal(doc)
		if err != nil {
			t.Fatalf("failed to marshal: %v", err)
		}

		parsed, err := ParseBytes(out)
		if err != nil {
			t.Fatalf("failed to parse own output: %v", err)
		}

		if parsed.Local != doc.Local || parsed.Space != doc.Space {
			t.Errorf("root changed across round trip: {%s}%s", parsed.Space, parsed.Local)
		}
		title := parsed.Find(testNS, "title")
		if title == nil || title.Text != "Aurora" {
			t.Errorf("expected title Aurora, got %+v", title)
		}
	})
}

func TestFind(t *testing.T) {
	root := NewElement(testNS, "root").Append(
		NewElement(testNS, "a").Append(TextElement(testNS, "x", "first")),
		TextElement(testNS, "x", "second"),
	)

	t.Run("DocumentOrder", func(t *testing.T) {
		found := root.Find(testNS, "x")
		if found == nil || found.Text != "first" {
			t.Errorf("expected first x in document order, got %+v", found)
		}
	})

	t.Run("NamespaceMismatch", func(t *testing.T) {
		if found := root.Find("http://other", "x"); found != nil {
			t.Errorf("expected nil for wrong namespace, got %+v", found)
		}
	})

	t.Run("NilReceiver", func(t *testing.T) {
		var el *Element
		if found := el.Find(testNS, "x"); found != nil {
			t.Errorf("expected nil for nil receiver, got %+v", found)
		}
	})
}
