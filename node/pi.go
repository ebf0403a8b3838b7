package node

import "strings"

// ProcessingInstruction represents a processing instruction node.
// The XML declaration is kept as a processing instruction whose
// target is "xml".
type ProcessingInstruction struct {
	treeNode
	target string
	data   string
}

var _ Node = (*ProcessingInstruction)(nil)

// NewProcessingInstruction creates a new ProcessingInstruction
func NewProcessingInstruction(target, data string) *ProcessingInstruction {
	return &ProcessingInstruction{
		target: target,
		data:   data,
	}
}

func (pi *ProcessingInstruction) Type() NodeType {
	return ProcessingInstructionNodeType
}

func (pi *ProcessingInstruction) LocalName() string {
	return pi.target
}

func (pi *ProcessingInstruction) Content(dst []byte) ([]byte, error) {
	return append(dst, pi.data...), nil
}

func (pi *ProcessingInstruction) AddChild(cur Node) error {
	return ErrInvalidOperation
}

func (pi *ProcessingInstruction) AddSibling(cur Node) error {
	return addSibling(pi, cur)
}

func (pi *ProcessingInstruction) Replace(cur Node) error {
	return replaceNode(pi, cur)
}

func (pi *ProcessingInstruction) Target() string {
	return pi.target
}

func (pi *ProcessingInstruction) Data() string {
	return pi.data
}

// PseudoAttributes parses the data of the instruction as a list of
// name="value" pairs. Parsing stops at the first malformed pair.
func (pi *ProcessingInstruction) PseudoAttributes() []*Attribute {
	var attrs []*Attribute
	s := pi.data
	for {
		s = strings.TrimLeft(s, " \t\r\n")
		eq := strings.IndexByte(s, '=')
		if eq <= 0 {
			return attrs
		}
		name := strings.TrimSpace(s[:eq])
		s = strings.TrimLeft(s[eq+1:], " \t\r\n")
		if s == "" || (s[0] != '"' && s[0] != '\'') {
			return attrs
		}
		end := strings.IndexByte(s[1:], s[0])
		if end < 0 {
			return attrs
		}
		attrs = append(attrs, newAttribute(name, s[1:end+1]))
		s = s[end+2:]
	}
}
