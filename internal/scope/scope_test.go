package scope

import "github.com/cwbudde/funcity/internal/value"
import "testing"

func TestLookupWalksToRoot(t *testing.T) {
	vars := value.NewVariableMap()
	vars.Set("x", value.Int(1))
	root := NewRoot(vars)
	child := root.NewChild()
	grandchild := child.NewChild()

	v, ok := grandchild.Lookup("x")
	if !ok || v.Int() != 1 {
		t.Fatalf("Lookup(x) = %v, %v", v, ok)
	}
}

func TestWriteAffectsOnlyInnermostScope(t *testing.T) {
	root := NewRoot(value.NewVariableMap())
	parent := root.NewChild()
	parent.Write("x", value.Int(1))
	child := parent.NewChild()
	child.Write("x", value.Int(2))

	pv, _ := parent.Lookup("x")
	if pv.Int() != 1 {
		t.Fatalf("parent sees child's write: %v", pv)
	}
	cv, _ := child.Lookup("x")
	if cv.Int() != 2 {
		t.Fatalf("child lookup = %v, want 2", cv)
	}
}

func TestChildSeesParentWriteAfterItOccurs(t *testing.T) {
	root := NewRoot(value.NewVariableMap())
	parent := root.NewChild()
	child := parent.NewChild()

	if _, ok := child.Lookup("x"); ok {
		t.Fatal("x should not exist yet")
	}
	parent.Write("x", value.Int(5))
	v, ok := child.Lookup("x")
	if !ok || v.Int() != 5 {
		t.Fatalf("child should see parent write made before this lookup: %v, %v", v, ok)
	}
}

func TestRootWriteIsNoOp(t *testing.T) {
	vars := value.NewVariableMap()
	vars.Set("x", value.Int(1))
	root := NewRoot(vars)
	root.Write("x", value.Int(99))

	v, _ := root.Lookup("x")
	if v.Int() != 1 {
		t.Fatalf("root scope must stay read-only, got %v", v)
	}
}
