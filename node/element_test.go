package node_test

import (
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/lestrrat-go/svgo/node"
	"github.com/stretchr/testify/require"
)

func TestElement(t *testing.T) {
	t.Run("CreateElement", func(t *testing.T) {
		doc := node.NewDocument()
		e := doc.CreateElement("test")
		require.NotNil(t, e)
	})

	t.Run("TreeOperations", func(t *testing.T) {
		t.Run("AddChild", func(t *testing.T) {
			doc := node.NewDocument()
			parent := doc.CreateElement("parent")
			child := doc.CreateElement("child")

			err := parent.AddChild(child)
			require.NoError(t, err)
			require.Equal(t, child, parent.FirstChild())
			require.Equal(t, child, parent.LastChild())
			require.Equal(t, parent, child.Parent())
		})

		t.Run("AddMultipleChildren", func(t *testing.T) {
			doc := node.NewDocument()
			parent := doc.CreateElement("parent")
			child1 := doc.CreateElement("child1")
			child2 := doc.CreateElement("child2")

			err := parent.AddChild(child1)
			require.NoError(t, err)
			err = parent.AddChild(child2)
			require.NoError(t, err)

			require.Equal(t, child1, parent.FirstChild())
			require.Equal(t, child2, parent.LastChild())
			require.Equal(t, child2, child1.NextSibling())
			require.Equal(t, child1, child2.PrevSibling())
		})

		t.Run("AddSibling", func(t *testing.T) {
			doc := node.NewDocument()
			parent := doc.CreateElement("parent")
			first := doc.CreateElement("first")
			sibling := doc.CreateElement("sibling")

			err := parent.AddChild(first)
			require.NoError(t, err)
			err = first.AddSibling(sibling)
			require.NoError(t, err)

			require.Equal(t, first, parent.FirstChild())
			require.Equal(t, sibling, parent.LastChild())
			require.Equal(t, sibling, first.NextSibling())
			require.Equal(t, first, sibling.PrevSibling())
			require.Equal(t, parent, sibling.Parent())
		})

		t.Run("Replace", func(t *testing.T) {
			doc := node.NewDocument()
			parent := doc.CreateElement("parent")
			old := doc.CreateElement("old")
			replacement := doc.CreateElement("replacement")

			err := parent.AddChild(old)
			require.NoError(t, err)
			require.NoError(t, old.Replace(replacement))
			require.Nil(t, old.Parent())

			require.Equal(t, replacement, parent.FirstChild())
			require.Equal(t, replacement, parent.LastChild())
			require.Equal(t, parent, replacement.Parent())
		})

		t.Run("ReplaceInMiddle", func(t *testing.T) {
			doc := node.NewDocument()
			parent := doc.CreateElement("parent")
			first := doc.CreateElement("first")
			middle := doc.CreateElement("middle")
			last := doc.CreateElement("last")
			replacement := doc.CreateElement("replacement")

			err := parent.AddChild(first)
			require.NoError(t, err)
			err = parent.AddChild(middle)
			require.NoError(t, err)
			err = parent.AddChild(last)
			require.NoError(t, err)

			require.NoError(t, middle.Replace(replacement))

			require.Equal(t, first, parent.FirstChild())
			require.Equal(t, last, parent.LastChild())
			require.Equal(t, replacement, first.NextSibling())
			require.Equal(t, last, replacement.NextSibling())
			require.Equal(t, first, replacement.PrevSibling())
			require.Equal(t, replacement, last.PrevSibling())
			require.Equal(t, parent, replacement.Parent())
		})

		t.Run("ParentChildRelationships", func(t *testing.T) {
			doc := node.NewDocument()
			root := doc.CreateElement("root")
			child1 := doc.CreateElement("child1")
			child2 := doc.CreateElement("child2")
			grandchild := doc.CreateElement("grandchild")

			err := root.AddChild(child1)
			require.NoError(t, err)
			err = root.AddChild(child2)
			require.NoError(t, err)
			err = child1.AddChild(grandchild)
			require.NoError(t, err)

			require.Equal(t, root, child1.Parent())
			require.Equal(t, root, child2.Parent())
			require.Equal(t, child1, grandchild.Parent())
			require.Equal(t, child1, root.FirstChild())
			require.Equal(t, child2, root.LastChild())
			require.Equal(t, grandchild, child1.FirstChild())
			require.Equal(t, grandchild, child1.LastChild())
		})
	})
}

func TestElementTree(t *testing.T) {
	doc := node.NewDocument()

	e1 := doc.CreateElement("root")
	e2 := doc.CreateElement("e2")
	e3 := doc.CreateElement("e3")
	e4 := doc.CreateElement("e4")
	e2.SetAttribute("id", "e2")
	e3.SetAttribute("id", "e3")
	e4.SetAttribute("id", "e4")

	require.NoError(t, e1.AddChild(e2), "e1.AddChild(e2) succeeds")
	require.NoError(t, e1.AddChild(e3), "e1.AddChild(e3) succeeds")
	require.NoError(t, e1.AddChild(e4), "e1.AddChild(e4) succeeds")

	require.Equal(t, e2, e1.FirstChild(), "e1.FirstChild is e2")
	require.Equal(t, e4, e1.LastChild(), "e1.LastChild is e4")

	require.Equal(t, e3, e2.NextSibling(), "e2.NextSibling is e3")
	require.Equal(t, e4, e3.NextSibling(), "e3.NextSibling is e4")
	require.Equal(t, nil, e4.NextSibling(), "e4.NextSibling is nil")

	require.Equal(t, e3, e4.PrevSibling(), "e4.PrevSibling is e3")
	require.Equal(t, e2, e3.PrevSibling(), "e3.PrevSibling is e2")
	require.Equal(t, nil, e2.PrevSibling(), "e2.PrevSibling is nil")

	require.NoError(t, e2.AddContent([]byte("e2")), "e2.AddContent succeeds")

	buf, err := e2.Content(nil)
	require.NoError(t, err, "e2.Content succeeds")
	require.Equal(t, []byte("e2"), buf, "e2.Content matches")

	for _, e := range []node.Node{e2, e3, e4} {
		require.Equal(t, e1, e.Parent(), "%s.Parent is e1", e.LocalName())
	}
}

func TestElementContent(t *testing.T) {
	doc := node.NewDocument()
	e := doc.CreateElement("root")
	for _, chunk := range [][]byte{[]byte("Hello "), []byte("World!")} {
		require.NoError(t, e.AddContent(chunk), "AddContent succeeds")
	}

	require.IsType(t, (*node.Text)(nil), e.LastChild(), "LastChild is a Text node")

	buf, err := e.Content(nil)
	require.NoError(t, err, "Content succeeds")
	require.Equal(t, []byte("Hello World!"), buf, "Content matches")

	e = doc.CreateElement("root")
	for _, chunk := range [][]byte{[]byte("Hello "), []byte("World!")} {
		require.NoError(t, e.AddChild(doc.CreateText(chunk)), "AddChild succeeds")
	}

	require.IsType(t, (*node.Text)(nil), e.LastChild(), "LastChild is a Text node")

	buf, err = e.Content(nil)
	require.NoError(t, err, "Content succeeds")
	require.Equal(t, []byte("Hello World!"), buf, "Content matches")

}

func TestElementAttributes(t *testing.T) {
	doc := node.NewDocument()

	t.Run("AddAttribute rejects duplicates", func(t *testing.T) {
		e := doc.CreateElement("rect")
		require.NoError(t, e.AddAttribute("fill", "red"))
		require.ErrorIs(t, e.AddAttribute("fill", "blue"), node.ErrDuplicateAttribute)
		v, ok := e.Attribute("fill")
		require.True(t, ok)
		require.Equal(t, "red", v)
	})

	t.Run("SetAttribute keeps position", func(t *testing.T) {
		e := doc.CreateElement("rect")
		e.SetAttribute("x", "1")
		e.SetAttribute("y", "2")
		e.SetAttribute("x", "3")
		require.Equal(t, []string{"x", "y"}, e.AttributeNames())
		require.Equal(t, "3", e.AttributeValue("x"))
	})

	t.Run("RemoveAttribute and RenameAttribute", func(t *testing.T) {
		e := doc.CreateElement("image")
		e.SetAttribute("xlink:href", "a.png")
		e.SetAttribute("width", "10")
		require.NoError(t, e.RenameAttribute("xlink:href", "href"))
		require.Equal(t, []string{"href", "width"}, e.AttributeNames())
		require.ErrorIs(t, e.RenameAttribute("missing", "x"), node.ErrAttributeNotFound)
		require.ErrorIs(t, e.RenameAttribute("href", "width"), node.ErrDuplicateAttribute)
		require.True(t, e.RemoveAttribute("width"))
		require.False(t, e.HasAttribute("width"))
		require.Equal(t, 1, e.AttributeCount())
	})

	t.Run("Attributes", func(t *testing.T) {
		e := doc.CreateElement("path")
		e.SetAttribute("d", "M0 0")
		e.SetAttribute("inkscape:label", "x")

		type pair struct{ Name, Prefix, Local, Value string }
		var got []pair
		for _, a := range e.Attributes(nil) {
			got = append(got, pair{a.Name(), a.Prefix(), a.LocalName(), a.Value()})
		}
		want := []pair{
			{"d", "", "d", "M0 0"},
			{"inkscape:label", "inkscape", "label", "x"},
		}
		if diff := cmp.Diff(want, got); diff != "" {
			t.Errorf("attributes mismatch (-want +got):\n%s", diff)
		}
	})

	t.Run("SortAttributes", func(t *testing.T) {
		e := doc.CreateElement("path")
		e.SetAttribute("d", "M0 0")
		e.SetAttribute("fill", "red")
		e.SetAttribute("id", "a")
		e.SortAttributes(strings.Compare)
		require.Equal(t, []string{"d", "fill", "id"}, e.AttributeNames())
		require.Equal(t, "a", e.AttributeValue("id"))
	})

	t.Run("SetName", func(t *testing.T) {
		e := doc.CreateElement("svg:rect")
		e.SetAttribute("fill", "red")
		e.SetName("svg:path")
		require.Equal(t, "path", e.LocalName())
		require.Equal(t, "svg", e.Prefix())
		require.Equal(t, "red", e.AttributeValue("fill"))
	})
}

func TestElementNamespaces(t *testing.T) {
	doc := node.NewDocument()
	root := doc.CreateElement("svg")
	root.SetAttribute("xmlns", node.SVGNamespace)
	root.SetAttribute("xmlns:inkscape", "http://www.inkscape.org/namespaces/inkscape")
	require.NoError(t, doc.SetDocumentElement(root))

	g := doc.CreateElement("inkscape:layer")
	require.NoError(t, root.AddChild(g))
	inner := doc.CreateElement("g")
	inner.SetAttribute("xmlns:inkscape", "urn:shadowed")
	require.NoError(t, g.AddChild(inner))

	require.Equal(t, node.SVGNamespace, root.URI())
	require.Equal(t, "inkscape", g.Prefix())
	require.Equal(t, "layer", g.LocalName())
	require.Equal(t, "http://www.inkscape.org/namespaces/inkscape", g.URI())

	uri, ok := inner.LookupNamespaceURI("inkscape")
	require.True(t, ok)
	require.Equal(t, "urn:shadowed", uri)

	uri, ok = inner.LookupNamespaceURI("xml")
	require.True(t, ok)
	require.Equal(t, node.XMLNamespace, uri)

	_, ok = inner.LookupNamespaceURI("sodipodi")
	require.False(t, ok)
}

func TestUnlinkAndInsertBefore(t *testing.T) {
	doc := node.NewDocument()
	parent := doc.CreateElement("g")
	a := doc.CreateElement("a")
	b := doc.CreateElement("b")
	c := doc.CreateElement("c")
	for _, e := range []*node.Element{a, b, c} {
		require.NoError(t, parent.AddChild(e))
	}

	t.Run("AddChild refuses attached nodes", func(t *testing.T) {
		other := doc.CreateElement("other")
		require.ErrorIs(t, other.AddChild(b), node.ErrNodeHasParent)
	})

	node.Unlink(b)
	require.Nil(t, b.Parent())
	require.Equal(t, c, a.NextSibling())
	require.Equal(t, a, c.PrevSibling())

	node.Unlink(a)
	require.Equal(t, c, parent.FirstChild())
	node.Unlink(c)
	require.Nil(t, parent.FirstChild())
	require.Nil(t, parent.LastChild())

	require.NoError(t, parent.AddChild(c))
	require.NoError(t, node.InsertBefore(c, a))
	require.NoError(t, node.InsertBefore(c, b))
	var names []string
	for e := range parent.ChildElements() {
		names = append(names, e.Name())
	}
	require.Equal(t, []string{"a", "b", "c"}, names)
	require.Equal(t, parent, b.Parent())
}

func TestWalk(t *testing.T) {
	doc := node.NewDocument()
	root := doc.CreateElement("svg")
	require.NoError(t, doc.AddChild(doc.CreateComment([]byte("c"))))
	require.NoError(t, doc.AddChild(root))
	g := doc.CreateElement("g")
	require.NoError(t, root.AddChild(g))
	require.NoError(t, g.AddChild(doc.CreateElement("path")))
	require.NoError(t, root.AddChild(doc.CreateElement("rect")))

	t.Run("document order", func(t *testing.T) {
		var visited []string
		require.NoError(t, node.Walk(doc, func(n node.Node) (node.WalkResult, error) {
			visited = append(visited, n.LocalName())
			return node.WalkContinue, nil
		}))
		require.Equal(t, []string{"#document", "#comment", "svg", "g", "path", "rect"}, visited)
	})

	t.Run("skip after unlink", func(t *testing.T) {
		var visited []string
		require.NoError(t, node.Walk(doc, func(n node.Node) (node.WalkResult, error) {
			visited = append(visited, n.LocalName())
			if n.LocalName() == "g" {
				node.Unlink(n)
				return node.WalkSkip, nil
			}
			return node.WalkContinue, nil
		}))
		require.Equal(t, []string{"#document", "#comment", "svg", "g", "rect"}, visited)
		require.False(t, node.IsAttached(g))
	})

	t.Run("Elements", func(t *testing.T) {
		var names []string
		for e := range node.Elements(doc) {
			names = append(names, e.Name())
		}
		require.Equal(t, []string{"svg", "rect"}, names)
	})
}
