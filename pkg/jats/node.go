package jats

import (
	"strings"
)

type nodeKind uint8

const (
	elementNode nodeKind = iota
	textNode
	rawNode
	procInstNode
)

// Attr is one attribute of an element. Order of Attrs is the output order.
type Attr struct {
	Name  string
	Value string
}

// Node is one node of the document tree.
// Node 文档树节点：元素、转义文本、原样片段或处理指令
type Node struct {
	kind     nodeKind
	Name     string
	Attrs    []Attr
	Children []*Node
	value    string
}

// El creates an element. nil children are dropped, which is how optional
// elements disappear from the output.
func El(name string, children ...*Node) *Node {
	n := &Node{kind: elementNode, Name: name}
	return n.Append(children...)
}

// Text creates a text node; the value is escaped at render time.
func Text(s string) *Node {
	return &Node{kind: textNode, value: s}
}

// Raw creates a node whose value is written verbatim.
func Raw(s string) *Node {
	return &Node{kind: rawNode, value: s}
}

// ProcInst creates a processing instruction <?target data?>.
func ProcInst(target, data string) *Node {
	return &Node{kind: procInstNode, Name: target, value: data}
}

// Attr appends an attribute and returns n for chaining.
func (n *Node) Attr(name, value string) *Node {
	n.Attrs = append(n.Attrs, Attr{Name: name, Value: value})
	return n
}

// Append adds the non-nil children to n.
func (n *Node) Append(children ...*Node) *Node {
	for _, c := range children {
		if c != nil {
			n.Children = append(n.Children, c)
		}
	}
	return n
}

// Empty reports whether the element has no children.
func (n *Node) Empty() bool {
	return n == nil || len(n.Children) == 0
}

// String renders the subtree.
func (n *Node) String() string {
	var b strings.Builder
	n.render(&b, 0)
	return b.String()
}

// elementsOnly reports whether every child is an element, in which case the
// children are laid out one per line. Mixed content stays on one line so no
// whitespace leaks into text.
func (n *Node) elementsOnly() bool {
	for _, c := range n.Children {
		if c.kind == textNode || c.kind == rawNode {
			return false
		}
	}
	return true
}

func (n *Node) render(b *strings.Builder, depth int) {
	switch n.kind {
	case textNode:
		b.WriteString(EscapeText(n.value))
		return
	case rawNode:
		b.WriteString(n.value)
		return
	case procInstNode:
		b.WriteString("<?")
		b.WriteString(n.Name)
		if n.value != "" {
			b.WriteByte(' ')
			b.WriteString(n.value)
		}
		b.WriteString("?>")
		return
	}

	b.WriteByte('<')
	b.WriteString(n.Name)
	for _, a := range n.Attrs {
		b.WriteByte(' ')
		b.WriteString(a.Name)
		b.WriteString(`="`)
		b.WriteString(EscapeAttr(a.Value))
		b.WriteByte('"')
	}
	if len(n.Children) == 0 {
		b.WriteString("/>")
		return
	}
	b.WriteByte('>')

	if n.elementsOnly() {
		for _, c := range n.Children {
			newline(b, depth+1)
			c.render(b, depth+1)
		}
		newline(b, depth)
	} else {
		for _, c := range n.Children {
			c.render(b, depth+1)
		}
	}

	b.WriteString("</")
	b.WriteString(n.Name)
	b.WriteByte('>')
}

func newline(b *strings.Builder, depth int) {
	b.WriteByte('\n')
	for i := 0; i < depth; i++ {
		b.WriteByte('\t')
	}
}
