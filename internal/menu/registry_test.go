package menu

import "testing"

func TestBuildRegistryWiresRootChildren(t *testing.T) {
	registry := BuildRegistry()
	root := registry.Root()
	if root == nil {
		t.Fatalf("expected root node")
	}
	for _, item := range RootItems() {
		if _, ok := root.Children[item.ID]; !ok {
			t.Fatalf("root child %q missing", item.ID)
		}
	}
}

func TestBuildRegistryNestedNodes(t *testing.T) {
	registry := BuildRegistry()
	node, ok := registry.Find("pending:images")
	if !ok {
		t.Fatalf("pending:images not registered")
	}
	if node.Loader == nil || node.Action == nil {
		t.Fatalf("pending:images should carry loader and action")
	}
	if _, ok := registry.Child("pending", "images"); !ok {
		t.Fatalf("pending should parent images")
	}
	if _, ok := registry.Child("chat", "clear"); !ok {
		t.Fatalf("chat should parent clear")
	}
}

func TestBuildRegistryComposeIsActionOnly(t *testing.T) {
	registry := BuildRegistry()
	node, ok := registry.Find("compose")
	if !ok {
		t.Fatalf("compose not registered")
	}
	if node.Loader != nil {
		t.Fatalf("compose should not carry a loader")
	}
	if node.Action == nil {
		t.Fatalf("compose should carry an action")
	}
}

func TestBuildRegistryMarksAssetsMultiSelect(t *testing.T) {
	registry := BuildRegistry()
	node, ok := registry.Find("assets")
	if !ok {
		t.Fatalf("assets not registered")
	}
	if !node.MultiSelect {
		t.Fatalf("assets should allow multi-select")
	}
}

func TestParentKeySplitsOnLastColon(t *testing.T) {
	parent, key := parentKey("pending:images")
	if parent != "pending" || key != "images" {
		t.Fatalf("unexpected split: %s %s", parent, key)
	}
	parent, key = parentKey("mode")
	if parent != "root" || key != "mode" {
		t.Fatalf("unexpected root split: %s %s", parent, key)
	}
}
