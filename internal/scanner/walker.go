package scanner

import (
	sitter "github.com/tree-sitter/go-tree-sitter"
)

// CollectFindings walks the items of one parsed source file and returns the
// type definitions that derive Reflect and Component without registering the
// component via #[reflect(Component)].
//
// modPath is the fully qualified module path of the file itself; inline mod
// blocks extend it segment by segment. When publicOnly is set, a finding is
// only emitted for items that are pub all the way up the module tree:
// visibility propagates down by conjunction, so a public struct inside a
// private mod stays private. Modules guarded by #[cfg(test)] (outer or
// inner form) are skipped regardless of the flag.
func CollectFindings(root *sitter.Node, source []byte, file, modPath string, publicOnly bool) []Finding {
	return collectItems(root, source, file, modPath, publicOnly, true)
}

func collectItems(node *sitter.Node, source []byte, file, modPath string, publicOnly, parentPublic bool) []Finding {
	var findings []Finding
	for i := uint(0); i < node.NamedChildCount(); i++ {
		item := node.NamedChild(i)
		if item == nil {
			continue
		}
		switch item.Kind() {
		case "struct_item", "enum_item":
			if !missingReflectComponent(outerAttributes(item), source) {
				continue
			}
			if publicOnly && !(parentPublic && isPublic(item, source)) {
				continue
			}
			kind := "struct"
			if item.Kind() == "enum_item" {
				kind = "enum"
			}
			findings = append(findings, Finding{
				Module: modPath,
				Name:   nodeText(item.ChildByFieldName("name"), source),
				Kind:   kind,
				File:   file,
				Line:   nodeLine(item),
			})
		case "mod_item":
			body := item.ChildByFieldName("body")
			if body == nil {
				// mod foo; declaration, the real content lives in its own
				// file and is discovered there.
				continue
			}
			if hasCfgTest(outerAttributes(item), source) || hasCfgTest(innerAttributes(body), source) {
				continue
			}
			childPath := modPath + "::" + nodeText(item.ChildByFieldName("name"), source)
			childPublic := parentPublic && isPublic(item, source)
			findings = append(findings, collectItems(body, source, file, childPath, publicOnly, childPublic)...)
		}
	}
	return findings
}
