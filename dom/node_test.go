package dom

import (
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mustAppend(t *testing.T, parent, child *Node) *Node {
	t.Helper()
	n, err := parent.AppendChild(child)
	require.NoError(t, err)
	return n
}

// buildTree returns #document > html > body > (nav#menu > a#home, p#text).
func buildTree(t *testing.T) *Document {
	t.Helper()
	doc := NewDocument()
	html := mustAppend(t, doc.Node, NewElement("html", nil))
	body := mustAppend(t, html, NewElement("body", nil))
	nav := mustAppend(t, body, NewElement("nav", map[string]string{"id": "menu"}))
	mustAppend(t, nav, NewElement("a", map[string]string{"id": "home", "HREF": "/home"}))
	mustAppend(t, body, NewElement("p", map[string]string{"id": "text"}))
	return doc
}

func TestSerialize(t *testing.T) {
	doc := buildTree(t)
	expected := `#document
| <html>
|   <body>
|     <nav>
|       id="menu"
|       <a>
|         href="/home"
|         id="home"
|     <p>
|       id="text"`
	assert.Equal(t, expected, doc.String())
}

func TestPath(t *testing.T) {
	doc := buildTree(t)
	a := doc.GetElementByID("home")
	require.NotNil(t, a)

	var names []string
	for _, n := range a.Path() {
		names = append(names, n.NodeName)
	}
	assert.Equal(t, []string{"#document", "html", "body", "nav", "a"}, names)

	detached := NewElement("div", nil)
	assert.Equal(t, NodeList{detached}, detached.Path())
}

func TestSiblingLinks(t *testing.T) {
	parent := NewElement("ul", nil)
	first := mustAppend(t, parent, NewElement("li", map[string]string{"id": "1"}))
	third := mustAppend(t, parent, NewElement("li", map[string]string{"id": "3"}))
	second, err := parent.InsertBefore(NewElement("li", map[string]string{"id": "2"}), third)
	require.NoError(t, err)

	assert.Equal(t, NodeList{first, second, third}, parent.ChildNodes)
	assert.Equal(t, first, parent.FirstChild)
	assert.Equal(t, third, parent.LastChild)
	assert.Equal(t, second, first.NextSibling)
	assert.Equal(t, first, second.PreviousSibling)
	assert.Equal(t, third, second.NextSibling)
	assert.Equal(t, second, third.PreviousSibling)

	zero, err := parent.InsertBefore(NewElement("li", nil), first)
	require.NoError(t, err)
	assert.Equal(t, zero, parent.FirstChild)
	assert.Nil(t, zero.PreviousSibling)

	assert.Equal(t, second, parent.RemoveChild(second))
	assert.Nil(t, second.ParentNode)
	assert.Equal(t, third, first.NextSibling)
	assert.Equal(t, first, third.PreviousSibling)
	assert.Nil(t, parent.RemoveChild(second))

	assert.Equal(t, third, parent.RemoveChild(third))
	assert.Equal(t, first, parent.LastChild)
	assert.Nil(t, first.NextSibling)
}

func TestAppendMovesNode(t *testing.T) {
	a := NewElement("div", nil)
	b := NewElement("div", nil)
	child := mustAppend(t, a, NewElement("span", nil))
	mustAppend(t, b, child)

	assert.False(t, a.HasChildNodes())
	assert.Nil(t, a.FirstChild)
	assert.Equal(t, b, child.ParentNode)
}

func TestHierarchyRequest(t *testing.T) {
	doc := buildTree(t)
	html := doc.DocumentElement()
	body := html.FirstChild

	_, err := body.AppendChild(html)
	assert.Equal(t, ErrHierarchyRequest, errors.Cause(err))

	_, err = body.AppendChild(body)
	assert.Equal(t, ErrHierarchyRequest, errors.Cause(err))

	_, err = body.AppendChild(NewDocument().Node)
	assert.Equal(t, ErrHierarchyRequest, errors.Cause(err))

	_, err = body.InsertBefore(NewElement("div", nil), html)
	assert.Equal(t, ErrNotFound, errors.Cause(err))
}

func TestDocumentLookups(t *testing.T) {
	doc := buildTree(t)

	assert.True(t, doc.Contains(doc.GetElementByID("text")))
	assert.False(t, doc.Contains(NewElement("div", nil)))
	assert.False(t, doc.Contains(nil))
	assert.Nil(t, doc.GetElementByID("missing"))
	assert.Nil(t, doc.GetElementByID(""))
	assert.Len(t, doc.GetElementsByTagName("a"), 1)
	assert.Len(t, doc.GetElementsByTagName("*"), 5)

	a := doc.GetElementByID("home")
	assert.Equal(t, "nav", a.Closest("NAV").NodeName)
	assert.Nil(t, a.Closest("form"))
	assert.Equal(t, "a#home", a.Label())
	assert.Equal(t, "body", a.ParentNode.ParentNode.Label())
}

func TestAttributes(t *testing.T) {
	n := NewElement("INPUT", map[string]string{"Type": "text"})
	assert.Equal(t, "input", n.NodeName)

	v, ok := n.GetAttribute("type")
	assert.True(t, ok)
	assert.Equal(t, "text", v)

	n.SetAttribute("Value", "hello")
	assert.True(t, n.HasAttribute("value"))
	assert.Equal(t, []string{"type", "value"}, n.GetAttributeNames())

	n.RemoveAttribute("TYPE")
	assert.False(t, n.HasAttribute("type"))
}

func TestIterators(t *testing.T) {
	nl := NodeList{NewElement("a", nil), NewElement("b", nil), NewElement("c", nil)}

	var forward []string
	for it := NewNodeIterator(nl).WithEnd(2); it.Next(); {
		forward = append(forward, it.Node().NodeName)
	}
	assert.Equal(t, []string{"a", "b"}, forward)

	var backward []string
	for rw := NewNodeRewinder(nl).WithStart(1); rw.Prev(); {
		backward = append(backward, rw.Node().NodeName)
	}
	assert.Equal(t, []string{"b", "a"}, backward)

	assert.False(t, NewNodeRewinder(NodeList{}).Prev())

	assert.Equal(t, 1, nl.Contains(nl[1]))
	assert.Equal(t, "b", nl.Remove(1).NodeName)
	nl.WedgeIn(1, NewElement("d", nil))
	assert.Equal(t, "d", nl[1].NodeName)
	assert.Len(t, nl, 3)
}
