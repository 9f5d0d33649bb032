package dom

// https://dom.spec.whatwg.org/#nodelist
type NodeList []*Node

// NodeRewinder walks a NodeList from the end towards the start.
type NodeRewinder struct {
	nodeList NodeList
	i        int
}

func (n *NodeRewinder) Prev() bool {
	return n.i >= 0 && n.i < len(n.nodeList)
}

func (n *NodeRewinder) Node() *Node {
	if n.i >= 0 && n.i < len(n.nodeList) {
		node := n.nodeList[n.i]
		n.i--
		return node
	}
	return nil
}

func NewNodeRewinder(nl NodeList) *NodeRewinder {
	return &NodeRewinder{
		nodeList: nl,
		i:        len(nl) - 1,
	}
}

func (n *NodeRewinder) WithStart(i int) *NodeRewinder {
	n.i = i
	return n
}

// NodeIterator walks a NodeList from the start towards the end.
type NodeIterator struct {
	nodeList NodeList
	i        int
	end      int
}

func (n *NodeIterator) Next() bool {
	return n.i >= 0 && n.i < n.end
}

func (n *NodeIterator) Node() *Node {
	if n.Next() {
		node := n.nodeList[n.i]
		n.i++
		return node
	}
	return nil
}

func NewNodeIterator(nl NodeList) *NodeIterator {
	return &NodeIterator{
		nodeList: nl,
		i:        0,
		end:      len(nl),
	}
}

// WithEnd stops the iterator before index i.
func (n *NodeIterator) WithEnd(i int) *NodeIterator {
	if i >= 0 && i <= len(n.nodeList) {
		n.end = i
	}
	return n
}

func (h *NodeList) Contains(n *Node) int {
	for i := range *h {
		if n == (*h)[i] {
			return i
		}
	}
	return -1
}

func (h *NodeList) Remove(i int) *Node {
	if i < 0 {
		return nil
	}
	if i >= len(*h) {
		return nil
	}
	node := (*h)[i]
	*h = append((*h)[:i], (*h)[i+1:]...)
	return node
}

func (h *NodeList) WedgeIn(i int, n *Node) {
	if i < 0 {
		return
	}
	if i >= len(*h) {
		*h = append(*h, n)
		return
	}
	*h = append((*h)[:i+1], (*h)[i:]...)
	(*h)[i] = n
}
