package audio

import (
	"reflect"
	"testing"
)

// These four cases are direct analogues of the teacher's own
// difference() unit tests (lib.rs): identical, disjoint, subset, and one
// side empty.

func TestDiffSortedIdentical(t *testing.T) {
	a := []int{1, 2, 3}
	b := []int{1, 2, 3}
	entered, left := diffSorted(a, b)
	if len(entered) != 0 || len(left) != 0 {
		t.Fatalf("identical slices should produce no diff, got entered=%v left=%v", entered, left)
	}
}

func TestDiffSortedCompletelyDifferent(t *testing.T) {
	a := []int{1, 2, 3}
	b := []int{4, 5, 6}
	entered, left := diffSorted(a, b)
	if !reflect.DeepEqual(entered, []int{4, 5, 6}) {
		t.Fatalf("expected all of b to have entered, got %v", entered)
	}
	if !reflect.DeepEqual(left, []int{1, 2, 3}) {
		t.Fatalf("expected all of a to have left, got %v", left)
	}
}

func TestDiffSortedSubset(t *testing.T) {
	a := []int{1, 2, 3, 4}
	b := []int{2, 3}
	entered, left := diffSorted(a, b)
	if len(entered) != 0 {
		t.Fatalf("expected nothing new to enter, got %v", entered)
	}
	if !reflect.DeepEqual(left, []int{1, 4}) {
		t.Fatalf("expected 1 and 4 to have left, got %v", left)
	}
}

func TestDiffSortedOneEmpty(t *testing.T) {
	entered, left := diffSorted([]int{}, []int{1, 2, 3})
	if !reflect.DeepEqual(entered, []int{1, 2, 3}) {
		t.Fatalf("expected everything in b to enter, got %v", entered)
	}
	if len(left) != 0 {
		t.Fatalf("expected nothing to leave an empty prior set, got %v", left)
	}

	entered, left = diffSorted([]int{1, 2, 3}, []int{})
	if len(entered) != 0 {
		t.Fatalf("expected nothing to enter an empty next set, got %v", entered)
	}
	if !reflect.DeepEqual(left, []int{1, 2, 3}) {
		t.Fatalf("expected everything in a to have left, got %v", left)
	}
}

func TestEmitterTreeWithinRadius(t *testing.T) {
	tree := BuildEmitterTree([]emitterNode{
		NewEmitterNode(1, Vec3{X: 0, Y: 0, Z: 0}, 0),
		NewEmitterNode(2, Vec3{X: 3, Y: 0, Z: 0}, 0),
		NewEmitterNode(3, Vec3{X: 50, Y: 0, Z: 0}, 0),
	})
	found := tree.EmittersWithin(Vec3{X: 0, Y: 0, Z: 0})
	if !reflect.DeepEqual(found, []EmitterID{1, 2}) {
		t.Fatalf("expected emitters 1 and 2 within probe radius, got %v", found)
	}
}

func TestEmitterTreeActivatesLargeDistantSphere(t *testing.T) {
	// Emitter 4 sits 50 units away but has a 45-unit audibility sphere,
	// so its sphere still overlaps the listener's 10-unit probe sphere
	// (50 <= 10 + 45) even though its center is far outside it.
	tree := BuildEmitterTree([]emitterNode{
		NewEmitterNode(1, Vec3{X: 0, Y: 0, Z: 0}, 0),
		NewEmitterNode(4, Vec3{X: 50, Y: 0, Z: 0}, 45),
	})
	found := tree.EmittersWithin(Vec3{X: 0, Y: 0, Z: 0})
	if !reflect.DeepEqual(found, []EmitterID{1, 4}) {
		t.Fatalf("expected the large-radius distant emitter to activate, got %v", found)
	}
}
