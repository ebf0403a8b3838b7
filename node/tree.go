package node

import (
	"errors"
)

// treeNode is the part of a Node that handles the tree structure.
type treeNode struct {
	firstChild Node
	lastChild  Node
	parent     Node
	next       Node
	prev       Node
	doc        *Document
}

func (n *treeNode) getTreeNode() *treeNode {
	return n
}

func (n *treeNode) OwnerDocument() *Document {
	return n.doc
}

func (n *treeNode) FirstChild() Node {
	return n.firstChild
}

func (n *treeNode) LastChild() Node {
	return n.lastChild
}

func (n *treeNode) Parent() Node {
	return n.parent
}

func (n *treeNode) NextSibling() Node {
	return n.next
}

func (n *treeNode) PrevSibling() Node {
	return n.prev
}

func (n *treeNode) Content(dst []byte) ([]byte, error) {
	result := dst
	for e := n.firstChild; e != nil; e = e.NextSibling() {
		var err error
		result, err = e.Content(result)
		if err != nil {
			return result, err
		}
	}
	return result, nil
}

func (n *treeNode) SetOwnerDocument(doc *Document) error {
	if n == nil {
		return errors.New("cannot set owner document to nil node")
	}
	if doc == nil {
		return errors.New("cannot set nil document")
	}

	n.doc = doc
	return nil
}

func addSibling(n, sibling Node) error {
	if n == nil {
		return errors.New("cannot add sibling to nil node")
	}
	if sibling == nil {
		return errors.New("cannot add nil sibling")
	}

	st := sibling.getTreeNode()
	if st.parent != nil || st.prev != nil || st.next != nil {
		return ErrNodeHasParent
	}

	l := n
	lt := n.getTreeNode()
	for lt.next != nil {
		l = lt.next
		lt = l.getTreeNode()
	}

	lt.next = sibling
	st.prev = l
	if lt.parent != nil {
		st.parent = lt.parent
		lt.parent.getTreeNode().lastChild = sibling
	}
	return nil
}

func addChild(parent, child Node) error {
	if child == nil {
		return ErrNilNode
	}

	pt := parent.getTreeNode()
	ct := child.getTreeNode()
	if ct.parent != nil || ct.prev != nil || ct.next != nil {
		return ErrNodeHasParent
	}

	l := pt.lastChild
	if l == nil { // No children, set firstChild to cur, and bail out
		pt.firstChild = child
		pt.lastChild = child
		ct.parent = parent
		return nil
	}

	// addSibling handles setting the parent, and the
	// lastChild pointer
	return addSibling(l, child)
}

// InsertBefore links n into the tree right before ref. n must be
// detached.
func InsertBefore(ref, n Node) error {
	if ref == nil || n == nil {
		return ErrNilNode
	}

	nt := n.getTreeNode()
	if nt.parent != nil || nt.prev != nil || nt.next != nil {
		return ErrNodeHasParent
	}

	rt := ref.getTreeNode()
	nt.next = ref
	nt.prev = rt.prev
	nt.parent = rt.parent
	if rt.prev != nil {
		rt.prev.getTreeNode().next = n
	} else if rt.parent != nil {
		rt.parent.getTreeNode().firstChild = n
	}
	rt.prev = n
	return nil
}

// Unlink detaches n from its parent and siblings. The children of n
// stay attached to n.
func Unlink(n Node) {
	if n == nil {
		return
	}

	t := n.getTreeNode()
	if t.prev != nil {
		t.prev.getTreeNode().next = t.next
	} else if t.parent != nil {
		t.parent.getTreeNode().firstChild = t.next
	}

	if t.next != nil {
		t.next.getTreeNode().prev = t.prev
	} else if t.parent != nil {
		t.parent.getTreeNode().lastChild = t.prev
	}

	t.parent = nil
	t.next = nil
	t.prev = nil
}

// replaceNode puts cur where n was. n ends up detached.
func replaceNode(n Node, cur Node) error {
	if cur == nil {
		return ErrNilNode
	}

	ct := cur.getTreeNode()
	if ct.parent != nil || ct.prev != nil || ct.next != nil {
		return ErrNodeHasParent
	}

	nt := n.getTreeNode()
	if next := nt.next; next != nil {
		ct.next = next                // cur.next = n.next
		next.getTreeNode().prev = cur // n.next.prev = cur
	}

	if prev := nt.prev; prev != nil {
		ct.prev = prev                // cur.prev = n.prev
		prev.getTreeNode().next = cur // n.prev.next = cur
	}

	if parent := nt.parent; parent != nil {
		pt := parent.getTreeNode()
		if pt.firstChild == n {
			pt.firstChild = cur // parent.firstChild = cur
		}
		if pt.lastChild == n {
			pt.lastChild = cur // parent.lastChild = cur
		}
		ct.parent = parent
	}

	nt.parent = nil
	nt.next = nil
	nt.prev = nil
	return nil
}

// MoveChildren reattaches every child of from to the end of to.
func MoveChildren(from, to Node) error {
	for c := from.FirstChild(); c != nil; {
		next := c.NextSibling()
		Unlink(c)
		if err := to.AddChild(c); err != nil {
			return err
		}
		c = next
	}
	return nil
}
