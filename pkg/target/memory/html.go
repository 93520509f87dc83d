package memory

import (
	"fmt"
	"sort"
	"strconv"
	"strings"
)

// HTMLOptions configures serialization.
type HTMLOptions struct {
	// NodeIDs adds a data-lw-id attribute to elements that have listeners,
	// so a remote client can address them.
	NodeIDs bool
}

// voidElements are elements serialized without a closing tag.
var voidElements = map[string]bool{
	"area":   true,
	"base":   true,
	"br":     true,
	"col":    true,
	"embed":  true,
	"hr":     true,
	"img":    true,
	"input":  true,
	"link":   true,
	"meta":   true,
	"source": true,
	"track":  true,
	"wbr":    true,
}

// InnerHTML serializes the children of n.
func InnerHTML(n *Node, opts ...HTMLOptions) string {
	if n == nil {
		return ""
	}
	var o HTMLOptions
	if len(opts) > 0 {
		o = opts[0]
	}
	var b strings.Builder
	for _, c := range n.Children {
		writeNode(&b, c, o)
	}
	return b.String()
}

// OuterHTML serializes n itself.
func OuterHTML(n *Node, opts ...HTMLOptions) string {
	if n == nil {
		return ""
	}
	var o HTMLOptions
	if len(opts) > 0 {
		o = opts[0]
	}
	var b strings.Builder
	writeNode(&b, n, o)
	return b.String()
}

func writeNode(b *strings.Builder, n *Node, o HTMLOptions) {
	if n.Type == TextNode {
		b.WriteString(escapeHTML(n.Text))
		return
	}

	b.WriteByte('<')
	b.WriteString(n.Tag)
	writeAttributes(b, n, o)
	b.WriteByte('>')
	if voidElements[n.Tag] {
		return
	}
	for _, c := range n.Children {
		writeNode(b, c, o)
	}
	fmt.Fprintf(b, "</%s>", n.Tag)
}

// writeAttributes writes class, style, node ID and then the remaining
// attributes sorted by name so output is deterministic.
func writeAttributes(b *strings.Builder, n *Node, o HTMLOptions) {
	if len(n.Classes) > 0 {
		fmt.Fprintf(b, ` class="%s"`, escapeAttr(strings.Join(n.Classes, " ")))
	}
	if len(n.Style) > 0 {
		names := make([]string, 0, len(n.Style))
		for name := range n.Style {
			names = append(names, name)
		}
		sort.Strings(names)
		parts := make([]string, 0, len(names))
		for _, name := range names {
			parts = append(parts, kebab(name)+": "+n.Style[name])
		}
		fmt.Fprintf(b, ` style="%s;"`, escapeAttr(strings.Join(parts, "; ")))
	}
	if o.NodeIDs && n.HasListeners() {
		fmt.Fprintf(b, ` data-lw-id="%d"`, n.ID)
	}

	names := make([]string, 0, len(n.Attrs))
	for name := range n.Attrs {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		value := n.Attrs[name]
		if value == "" {
			fmt.Fprintf(b, " %s", name)
			continue
		}
		fmt.Fprintf(b, ` %s="%s"`, name, escapeAttr(value))
	}
}

// kebab converts a camelCase style property to its CSS name.
func kebab(name string) string {
	if strings.Contains(name, "-") {
		return name
	}
	var b strings.Builder
	for _, r := range name {
		if r >= 'A' && r <= 'Z' {
			b.WriteByte('-')
			b.WriteRune(r + ('a' - 'A'))
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}

// escapeHTML escapes text for safe inclusion in HTML content.
func escapeHTML(s string) string {
	var buf strings.Builder
	buf.Grow(len(s))

	for _, r := range s {
		switch r {
		case '&':
			buf.WriteString("&amp;")
		case '<':
			buf.WriteString("&lt;")
		case '>':
			buf.WriteString("&gt;")
		case '"':
			buf.WriteString("&quot;")
		case '\'':
			buf.WriteString("&#39;")
		default:
			buf.WriteRune(r)
		}
	}

	return buf.String()
}

// escapeAttr escapes text for attribute values, including whitespace that
// would break attribute parsing.
func escapeAttr(s string) string {
	var buf strings.Builder
	buf.Grow(len(s))

	for _, r := range s {
		switch r {
		case '\n':
			buf.WriteString("&#10;")
		case '\r':
			buf.WriteString("&#13;")
		case '\t':
			buf.WriteString("&#9;")
		default:
			buf.WriteString(escapeHTML(string(r)))
		}
	}
	return buf.String()
}

// stringify converts an attribute value to its serialized form.
func stringify(v any) string {
	switch val := v.(type) {
	case string:
		return val
	case int:
		return strconv.Itoa(val)
	case int64:
		return strconv.FormatInt(val, 10)
	case float64:
		return strconv.FormatFloat(val, 'f', -1, 64)
	case fmt.Stringer:
		return val.String()
	default:
		return fmt.Sprintf("%v", v)
	}
}
