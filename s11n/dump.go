package s11n

import (
	"bytes"
	"io"
	"strings"

	"github.com/lestrrat-go/svgo/node"
)

// Dumper writes a document tree back out as XML text. The zero value
// produces compact output: no whitespace is added between nodes.
type Dumper struct {
	// Indent, when non-empty, puts every element that has no text
	// children on its own line, indented by Indent per level.
	Indent string
}

// dumpWriter remembers the first write error so that the dump
// routines can write unconditionally and check once.
type dumpWriter struct {
	out io.Writer
	err error
}

func (w *dumpWriter) Write(b []byte) (int, error) {
	if w.err != nil {
		return 0, w.err
	}
	n, err := w.out.Write(b)
	w.err = err
	return n, err
}

func (w *dumpWriter) writeString(s string) {
	if w.err != nil {
		return
	}
	_, w.err = io.WriteString(w.out, s)
}

func (d *Dumper) DumpDoc(out io.Writer, doc *node.Document) error {
	w := &dumpWriter{out: out}
	first := true
	for e := doc.FirstChild(); e != nil; e = e.NextSibling() {
		if !first && d.Indent != "" {
			w.writeString("\n")
		}
		first = false
		d.dumpNode(w, e, 0)
	}
	if d.Indent != "" && !first {
		w.writeString("\n")
	}
	return w.err
}

func (d *Dumper) DumpNode(out io.Writer, n node.Node) error {
	w := &dumpWriter{out: out}
	if doc, ok := n.(*node.Document); ok {
		return d.DumpDoc(out, doc)
	}
	d.dumpNode(w, n, 0)
	return w.err
}

func (d *Dumper) dumpNode(w *dumpWriter, n node.Node, level int) {
	switch n := n.(type) {
	case *node.Comment:
		c, _ := n.Content(nil)
		w.writeString("<!--")
		_, _ = w.Write(c)
		w.writeString("-->")
	case *node.ProcessingInstruction:
		w.writeString("<?")
		w.writeString(n.Target())
		if data := n.Data(); data != "" {
			w.writeString(" ")
			w.writeString(data)
		}
		w.writeString("?>")
	case *node.Doctype:
		c, _ := n.Content(nil)
		w.writeString("<!DOCTYPE")
		_, _ = w.Write(c)
		w.writeString(">")
	case *node.Text:
		c, _ := n.Content(nil)
		if err := EscapeText(w, c, false); err != nil && w.err == nil {
			w.err = err
		}
	case *node.Element:
		d.dumpElement(w, n, level)
	}
}

func (d *Dumper) dumpElement(w *dumpWriter, e *node.Element, level int) {
	name := e.Name()
	w.writeString("<")
	w.writeString(name)
	for _, attr := range e.Attributes(nil) {
		w.writeString(" ")
		w.writeString(attr.Name())
		w.writeString(`="`)
		if err := EscapeAttrValue(w, []byte(attr.Value())); err != nil && w.err == nil {
			w.err = err
		}
		w.writeString(`"`)
	}

	if e.FirstChild() == nil {
		w.writeString("/>")
		return
	}
	w.writeString(">")

	raw := isRawTextElement(e)
	pretty := d.Indent != "" && !hasTextChild(e)
	for child := e.FirstChild(); child != nil; child = child.NextSibling() {
		if pretty {
			w.writeString("\n")
			w.writeString(strings.Repeat(d.Indent, level+1))
		}
		if t, ok := child.(*node.Text); ok && raw {
			dumpRawText(w, t)
			continue
		}
		d.dumpNode(w, child, level+1)
	}
	if pretty {
		w.writeString("\n")
		w.writeString(strings.Repeat(d.Indent, level))
	}

	w.writeString("</")
	w.writeString(name)
	w.writeString(">")
}

// Text inside <style> and <script> is written as CDATA when it
// contains markup characters.
func isRawTextElement(e *node.Element) bool {
	switch e.LocalName() {
	case "style", "script":
		return true
	}
	return false
}

func dumpRawText(w *dumpWriter, t *node.Text) {
	c, _ := t.Content(nil)
	if bytes.ContainsAny(c, "<&") && !bytes.Contains(c, []byte("]]>")) {
		w.writeString("<![CDATA[")
		_, _ = w.Write(c)
		w.writeString("]]>")
		return
	}
	if err := EscapeText(w, c, false); err != nil && w.err == nil {
		w.err = err
	}
}

func hasTextChild(e *node.Element) bool {
	for c := e.FirstChild(); c != nil; c = c.NextSibling() {
		if c.Type() == node.TextNodeType {
			return true
		}
	}
	return false
}
