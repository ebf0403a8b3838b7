package node

import "iter"

// WalkResult tells Walk how to proceed after visiting a node.
type WalkResult int

const (
	// WalkContinue descends into the children of the visited node.
	WalkContinue WalkResult = iota
	// WalkSkip does not descend into the children of the visited node.
	// Return it after detaching the node.
	WalkSkip
	// WalkStop ends the traversal.
	WalkStop
)

// Walk visits n and its descendants in document order. The next
// sibling of a node is read before the node is visited, so fn may
// detach the node it was given as long as it returns WalkSkip.
func Walk(n Node, fn func(Node) (WalkResult, error)) error {
	_, err := walk(n, fn)
	return err
}

func walk(n Node, fn func(Node) (WalkResult, error)) (bool, error) {
	res, err := fn(n)
	if err != nil {
		return false, err
	}
	switch res {
	case WalkStop:
		return false, nil
	case WalkSkip:
		return true, nil
	}

	for c := n.FirstChild(); c != nil; {
		next := c.NextSibling()
		cont, err := walk(c, fn)
		if err != nil || !cont {
			return cont, err
		}
		c = next
	}
	return true, nil
}

// Elements iterates over the elements under n (n included when it
// is an element) in document order. The set of elements is fixed
// before the first yield.
func Elements(n Node) iter.Seq[*Element] {
	var list []*Element
	_ = Walk(n, func(cur Node) (WalkResult, error) {
		if e, ok := cur.(*Element); ok {
			list = append(list, e)
		}
		return WalkContinue, nil
	})
	return func(yield func(*Element) bool) {
		for _, e := range list {
			if !yield(e) {
				return
			}
		}
	}
}

// IsAttached reports whether n is still reachable from a Document.
func IsAttached(n Node) bool {
	for cur := n; cur != nil; cur = cur.Parent() {
		if cur.Type() == DocumentNodeType {
			return true
		}
	}
	return false
}
