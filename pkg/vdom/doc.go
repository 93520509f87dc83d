// Package vdom provides the virtual tree model for laiweb.
//
// A virtual tree is a description of what the render target should look
// like. The runtime package mounts it, diffs it against the previous tree
// and applies the minimal set of mutations.
//
// # Core Types
//
// VNode is a tagged union over four kinds: Text, Element, Fragment and
// Component. Props holds attributes, the reserved "on" event map and the
// reserved "key". Component nodes reference a ComponentType; they are
// placeholders until mounted.
//
// # Construction
//
//	Element("ul", Props{"class": "list"},
//	    Element("li", Key(1), "first"),
//	    Element("li", Key(2), "second"),
//	    nil, // dropped
//	)
//
// Primitive children (strings, numbers, booleans) become text nodes and
// nil children are dropped.
//
// # Identity
//
// NodesEqual is the identity oracle used by reconciliation: same kind and,
// for elements and components, same tag or component type. KeyedEqual also
// compares "key" props. Fragments never take part in identity checks;
// ExtractChildren flattens them away before children are diffed.
package vdom
