package dom

// Document owns a node tree. Entities that are not reachable from its root are not part of it.
// https://dom.spec.whatwg.org/#interface-document
type Document struct {
	URL string

	*Node
}

func NewDocument() *Document {
	return &Document{Node: newDocumentNode()}
}

// Contains reports whether n is attached to this document's tree.
func (d *Document) Contains(n *Node) bool {
	return n != nil && n.GetRootNode() == d.Node
}

// https://dom.spec.whatwg.org/#dom-document-documentelement
func (d *Document) DocumentElement() *Node {
	for _, child := range d.ChildNodes {
		if child.NodeType == ElementNode {
			return child
		}
	}
	return nil
}

// https://dom.spec.whatwg.org/#dom-nonelementparentnode-getelementbyid
func (d *Document) GetElementByID(id string) *Node {
	if id == "" {
		return nil
	}
	for n := range d.Descendants() {
		if n.NodeType != ElementNode {
			continue
		}
		if v, ok := n.GetAttribute("id"); ok && v == id {
			return n
		}
	}
	return nil
}

// https://dom.spec.whatwg.org/#dom-document-getelementsbytagname
func (d *Document) GetElementsByTagName(name string) NodeList {
	var nl NodeList
	for n := range d.Descendants() {
		if n.NodeType == ElementNode && (name == "*" || n.NodeName == name) {
			nl = append(nl, n)
		}
	}
	return nl
}
