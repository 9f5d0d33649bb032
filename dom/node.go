package dom

import (
	"iter"
	"sort"
	"strings"

	"github.com/google/uuid"
	"github.com/pkg/errors"
)

// ErrHierarchyRequest is returned when an insertion would make a node its own ancestor.
// https://dom.spec.whatwg.org/#concept-node-ensure-pre-insertion-validity
var ErrHierarchyRequest = errors.New("hierarchy request error")

// ErrNotFound is returned when the reference child is not a child of the node.
var ErrNotFound = errors.New("node not found")

type NodeType uint16

const (
	ElementNode NodeType = iota + 1
	AttrNode
	TextNode
	CDATASectionNode
	ProcessingInstructionNode
	CommentNode
	DocumentNode
	DocumentTypeNode
	DocumentFragmentNode
)

// https://dom.spec.whatwg.org/#node
type Node struct {
	ID                                                              uuid.UUID
	NodeType                                                        NodeType
	NodeName                                                        string
	ParentNode, FirstChild, LastChild, PreviousSibling, NextSibling *Node
	ChildNodes                                                      NodeList

	attributes map[string]string
}

// NewElement returns a detached element node. Attribute names are lower-cased the way
// an HTML document stores them.
func NewElement(name string, attrs map[string]string) *Node {
	n := &Node{
		ID:         uuid.New(),
		NodeType:   ElementNode,
		NodeName:   strings.ToLower(name),
		attributes: make(map[string]string, len(attrs)),
	}
	for k, v := range attrs {
		n.attributes[strings.ToLower(k)] = v
	}
	return n
}

func newDocumentNode() *Node {
	return &Node{
		ID:       uuid.New(),
		NodeType: DocumentNode,
		NodeName: "#document",
	}
}

func (n *Node) HasChildNodes() bool {
	return len(n.ChildNodes) > 0
}

// GetAttribute returns the value of the named attribute and whether it was present.
func (n *Node) GetAttribute(name string) (string, bool) {
	v, ok := n.attributes[strings.ToLower(name)]
	return v, ok
}

func (n *Node) HasAttribute(name string) bool {
	_, ok := n.GetAttribute(name)
	return ok
}

func (n *Node) SetAttribute(name, value string) {
	if n.attributes == nil {
		n.attributes = map[string]string{}
	}
	n.attributes[strings.ToLower(name)] = value
}

func (n *Node) RemoveAttribute(name string) {
	delete(n.attributes, strings.ToLower(name))
}

// GetAttributeNames returns the attribute names in sorted order.
func (n *Node) GetAttributeNames() []string {
	names := make([]string, 0, len(n.attributes))
	for name := range n.attributes {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// https://dom.spec.whatwg.org/#dom-node-getrootnode
func (n *Node) GetRootNode() *Node {
	var prev *Node
	for i := n; i != nil; i = i.ParentNode {
		prev = i
	}

	return prev
}

// Contains reports whether on is an inclusive descendant of n.
// https://dom.spec.whatwg.org/#dom-node-contains
func (n *Node) Contains(on *Node) bool {
	for i := on; i != nil; i = i.ParentNode {
		if i == n {
			return true
		}
	}
	return false
}

// Path returns the nodes from the root of n's tree down to n inclusive. It is built by
// following parent links upward and reversing the result.
func (n *Node) Path() NodeList {
	var path NodeList
	for i := n; i != nil; i = i.ParentNode {
		path = append(path, i)
	}
	for l, r := 0, len(path)-1; l < r; l, r = l+1, r-1 {
		path[l], path[r] = path[r], path[l]
	}
	return path
}

// Descendants yields n and every node below it in tree order.
func (n *Node) Descendants() iter.Seq[*Node] {
	return func(yield func(*Node) bool) {
		n.walk(yield)
	}
}

func (n *Node) walk(yield func(*Node) bool) bool {
	if !yield(n) {
		return false
	}
	for _, child := range n.ChildNodes {
		if !child.walk(yield) {
			return false
		}
	}
	return true
}

// Closest returns the nearest inclusive ancestor element with the given name.
// https://dom.spec.whatwg.org/#dom-element-closest
func (n *Node) Closest(name string) *Node {
	name = strings.ToLower(name)
	for i := n; i != nil; i = i.ParentNode {
		if i.NodeType == ElementNode && i.NodeName == name {
			return i
		}
	}
	return nil
}

func (n *Node) ensurePreInsertionValidity(on *Node) error {
	if on == nil {
		return errors.Wrap(ErrHierarchyRequest, "cannot insert nil node")
	}
	if on.NodeType == DocumentNode {
		return errors.Wrap(ErrHierarchyRequest, "cannot insert a document")
	}
	if on.Contains(n) {
		return errors.Wrapf(ErrHierarchyRequest, "%s is an inclusive ancestor of %s", on.NodeName, n.NodeName)
	}
	return nil
}

// https://dom.spec.whatwg.org/#concept-node-append
func (n *Node) AppendChild(on *Node) (*Node, error) {
	if err := n.ensurePreInsertionValidity(on); err != nil {
		return nil, err
	}
	if on.ParentNode != nil {
		on.ParentNode.RemoveChild(on)
	}
	if n.LastChild != nil {
		on.PreviousSibling = n.LastChild
		n.LastChild.NextSibling = on
	} else {
		n.FirstChild = on
	}
	on.ParentNode = n
	n.LastChild = on
	n.ChildNodes = append(n.ChildNodes, on)

	return on, nil
}

// https://dom.spec.whatwg.org/#dom-node-insertbefore
func (n *Node) InsertBefore(on, child *Node) (*Node, error) {
	if child == nil {
		return n.AppendChild(on)
	}
	if err := n.ensurePreInsertionValidity(on); err != nil {
		return nil, err
	}
	if child.ParentNode != n {
		return nil, errors.Wrapf(ErrNotFound, "%s is not a child of %s", child.NodeName, n.NodeName)
	}
	if on == child {
		return on, nil
	}
	if on.ParentNode != nil {
		on.ParentNode.RemoveChild(on)
	}

	i := n.ChildNodes.Contains(child)
	n.ChildNodes.WedgeIn(i, on)
	on.ParentNode = n
	on.NextSibling = child
	on.PreviousSibling = child.PreviousSibling
	if child.PreviousSibling != nil {
		child.PreviousSibling.NextSibling = on
	} else {
		n.FirstChild = on
	}
	child.PreviousSibling = on
	return on, nil
}

// RemoveChild detaches child from n. It returns nil when child is not one of n's children.
func (n *Node) RemoveChild(child *Node) *Node {
	node := n.ChildNodes.Remove(n.ChildNodes.Contains(child))
	if node == nil {
		return nil
	}
	if node.PreviousSibling != nil {
		node.PreviousSibling.NextSibling = node.NextSibling
	}
	if node.NextSibling != nil {
		node.NextSibling.PreviousSibling = node.PreviousSibling
	}
	if n.FirstChild == node {
		n.FirstChild = node.NextSibling
	}
	if n.LastChild == node {
		n.LastChild = node.PreviousSibling
	}
	node.ParentNode, node.PreviousSibling, node.NextSibling = nil, nil, nil
	return node
}

func serializeNodeType(node *Node, ident int) string {
	switch node.NodeType {
	case ElementNode:
		e := "<" + node.NodeName + ">"
		spaces := "| "
		for i := 1; i < ident; i++ {
			spaces += "  "
		}
		for _, name := range node.GetAttributeNames() {
			e += "\n" + spaces + name + "=\"" + node.attributes[name] + "\""
		}
		return e
	case DocumentNode:
		return "#document"
	default:
		return node.NodeName
	}
}

func (node *Node) serialize(ident int) string {
	ser := serializeNodeType(node, ident+1) + "\n"
	if node.NodeType != DocumentNode {
		spaces := "| "
		for i := 1; i < ident; i++ {
			spaces += "  "
		}
		ser = spaces + ser
	}
	for _, child := range node.ChildNodes {
		ser += child.serialize(ident + 1)
	}

	return ser
}

// String serializes the subtree in the html5lib tree-construction test format.
func (node *Node) String() string {
	return strings.TrimRight(node.serialize(0), "\n")
}

// Label is a short human readable name such as `a#home` used in logs and traces.
func (n *Node) Label() string {
	if n == nil {
		return "<nil>"
	}
	if id, ok := n.GetAttribute("id"); ok && id != "" {
		return n.NodeName + "#" + id
	}
	return n.NodeName
}
