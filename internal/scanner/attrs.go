package scanner

import (
	"strings"

	sitter "github.com/tree-sitter/go-tree-sitter"
)

// Attribute helpers for the tree-sitter Rust grammar. Attributes are not
// children of the item they decorate: each #[...] parses as a standalone
// attribute_item sibling immediately preceding the item, possibly with
// comments interleaved.

// outerAttributes collects the attribute_item siblings preceding an item,
// skipping over comments. The walk stops at the first sibling that is
// neither an attribute nor a comment.
func outerAttributes(item *sitter.Node) []*sitter.Node {
	var attrs []*sitter.Node
	for prev := item.PrevNamedSibling(); prev != nil; prev = prev.PrevNamedSibling() {
		switch prev.Kind() {
		case "attribute_item":
			attrs = append(attrs, prev)
		case "line_comment", "block_comment":
			continue
		default:
			return attrs
		}
	}
	return attrs
}

// innerAttributes collects the #![...] items declared directly inside a
// module body.
func innerAttributes(body *sitter.Node) []*sitter.Node {
	if body == nil {
		return nil
	}
	var attrs []*sitter.Node
	for i := uint(0); i < body.NamedChildCount(); i++ {
		child := body.NamedChild(i)
		if child != nil && child.Kind() == "inner_attribute_item" {
			attrs = append(attrs, child)
		}
	}
	return attrs
}

// attributeName returns the path of an attribute, e.g. "derive" for
// #[derive(Component)] or "cfg" for #![cfg(test)].
func attributeName(item *sitter.Node, source []byte) string {
	attr := findChildByKind(item, "attribute")
	if attr == nil {
		return ""
	}
	return nodeText(attr.NamedChild(0), source)
}

// attributeArguments returns the token_tree holding an attribute's argument
// list, or nil for bare attributes like #[test].
func attributeArguments(item *sitter.Node) *sitter.Node {
	attr := findChildByKind(item, "attribute")
	if attr == nil {
		return nil
	}
	return attr.ChildByFieldName("arguments")
}

// attributeHasArg reports whether an attribute is named name and carries
// ident as a top-level argument, as in #[derive(Reflect, Component)] or
// #[reflect(Component)]. Identifiers inside nested token trees do not
// count.
func attributeHasArg(item *sitter.Node, source []byte, name, ident string) bool {
	if attributeName(item, source) != name {
		return false
	}
	args := attributeArguments(item)
	if args == nil {
		return false
	}
	for i := uint(0); i < args.NamedChildCount(); i++ {
		child := args.NamedChild(i)
		if child != nil && child.Kind() == "identifier" && nodeText(child, source) == ident {
			return true
		}
	}
	return false
}

// hasCfgTest reports whether any of the attributes is a cfg guard mentioning
// test. Matching is by substring of the argument text, so cfg(test),
// cfg(all(test, unix)) and cfg(feature = "testing") all count.
func hasCfgTest(attrs []*sitter.Node, source []byte) bool {
	for _, item := range attrs {
		if attributeName(item, source) != "cfg" {
			continue
		}
		if args := attributeArguments(item); args != nil && strings.Contains(nodeText(args, source), "test") {
			return true
		}
	}
	return false
}

// missingReflectComponent is the check at the heart of the tool: a type
// deriving both Reflect and Component needs #[reflect(Component)] so that
// the reflected type registers its component data. It reports true when the
// two derives are present and the registration is not.
func missingReflectComponent(attrs []*sitter.Node, source []byte) bool {
	var reflect, component, registered bool
	for _, item := range attrs {
		if attributeHasArg(item, source, "derive", "Reflect") {
			reflect = true
		}
		if attributeHasArg(item, source, "derive", "Component") {
			component = true
		}
		if attributeHasArg(item, source, "reflect", "Component") {
			registered = true
		}
	}
	return reflect && component && !registered
}

// isPublic reports whether an item carries a bare pub modifier. Restricted
// forms such as pub(crate) or pub(super) are not visible outside the crate
// and do not count.
func isPublic(item *sitter.Node, source []byte) bool {
	vis := findChildByKind(item, "visibility_modifier")
	return vis != nil && nodeText(vis, source) == "pub"
}
