package node

import (
	"errors"
)

// NodeType represents the type of a node in the document tree
type NodeType int

const (
	ElementNodeType NodeType = iota + 1
	TextNodeType
	ProcessingInstructionNodeType
	CommentNodeType
	DocumentNodeType
	DocumentTypeNodeType
)

func (t NodeType) String() string {
	switch t {
	case ElementNodeType:
		return "element"
	case TextNodeType:
		return "text"
	case ProcessingInstructionNodeType:
		return "processing-instruction"
	case CommentNodeType:
		return "comment"
	case DocumentNodeType:
		return "document"
	case DocumentTypeNodeType:
		return "doctype"
	}
	return "unknown"
}

var (
	ErrInvalidOperation = errors.New("invalid operation")
	ErrNilNode          = errors.New("nil node")
	ErrNodeHasParent    = errors.New("node is already attached to a parent")
	ErrNotAChild        = errors.New("reference node is not a child of this node")
)

// Node interface defines the common functionality for all node types
type Node interface {
	// returns the treeNode (the part of the Node that handles the tree structure)
	getTreeNode() *treeNode

	AddChild(Node) error
	AddSibling(Node) error

	Type() NodeType
	// Content appends the content of the node to the provided byte slice and returns the result.
	// If dst is nil, a new slice is allocated.
	Content(dst []byte) ([]byte, error)

	FirstChild() Node
	LastChild() Node

	// LocalName returns the local name of the node.
	LocalName() string

	NextSibling() Node
	OwnerDocument() *Document
	Parent() Node
	PrevSibling() Node

	Replace(Node) error

	SetOwnerDocument(doc *Document) error
}
