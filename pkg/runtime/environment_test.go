package runtime

import (
	"reflect"
	"testing"
)

func TestDefineAndGet(t *testing.T) {
	env := NewEnvironment(nil)
	env.Define("x", NumberValue{Val: 1})

	val, ok := env.Get("x")
	if !ok {
		t.Fatalf("expected binding for x")
	}
	if num, ok := val.(NumberValue); !ok || num.Val != 1 {
		t.Fatalf("unexpected value %#v", val)
	}
	if _, ok := env.Get("y"); ok {
		t.Fatalf("did not expect binding for y")
	}
}

func TestGetSearchesParentChain(t *testing.T) {
	global := NewEnvironment(nil)
	global.Define("x", StringValue{Val: "outer"})
	inner := global.Extend().Extend()

	val, ok := inner.Get("x")
	if !ok {
		t.Fatalf("expected lookup to reach the global scope")
	}
	if str := val.(StringValue); str.Val != "outer" {
		t.Fatalf("unexpected value %#v", val)
	}
}

func TestDefineShadowsParent(t *testing.T) {
	global := NewEnvironment(nil)
	global.Define("x", NumberValue{Val: 1})
	inner := global.Extend()
	inner.Define("x", NumberValue{Val: 2})

	val, _ := inner.Get("x")
	if num := val.(NumberValue); num.Val != 2 {
		t.Fatalf("inner lookup got %v, want 2", num.Val)
	}
	val, _ = global.Get("x")
	if num := val.(NumberValue); num.Val != 1 {
		t.Fatalf("outer binding changed to %v", num.Val)
	}
}

func TestAssignUpdatesNearestFrame(t *testing.T) {
	global := NewEnvironment(nil)
	global.Define("count", NumberValue{Val: 0})
	inner := global.Extend()

	if err := inner.Assign("count", NumberValue{Val: 5}); err != nil {
		t.Fatalf("assign failed: %v", err)
	}
	val, _ := global.Get("count")
	if num := val.(NumberValue); num.Val != 5 {
		t.Fatalf("global count is %v, want 5", num.Val)
	}
}

func TestAssignUnknownNameFails(t *testing.T) {
	env := NewEnvironment(nil)
	if err := env.Assign("missing", NilValue{}); err == nil {
		t.Fatalf("expected error assigning to unknown name")
	}
}

func TestSetFallsBackToLocalDefine(t *testing.T) {
	global := NewEnvironment(nil)
	inner := global.Extend()

	inner.Set("fresh", BoolValue{Val: true})
	if _, ok := inner.Snapshot()["fresh"]; !ok {
		t.Fatalf("expected local binding in inner scope")
	}
	if _, ok := global.Get("fresh"); ok {
		t.Fatalf("binding leaked to the global scope")
	}

	global.Define("shared", NumberValue{Val: 1})
	inner.Set("shared", NumberValue{Val: 2})
	val, _ := global.Get("shared")
	if num := val.(NumberValue); num.Val != 2 {
		t.Fatalf("expected Set to update the defining frame, got %v", num.Val)
	}
}

func TestKeysAreSorted(t *testing.T) {
	env := NewEnvironment(nil)
	env.Define("zeta", NilValue{})
	env.Define("alpha", NilValue{})
	env.Define("mid", NilValue{})

	want := []string{"alpha", "mid", "zeta"}
	if got := env.Keys(); !reflect.DeepEqual(got, want) {
		t.Fatalf("keys %v, want %v", got, want)
	}
}

func TestAllKeysMergesScopes(t *testing.T) {
	global := NewEnvironment(nil)
	global.Define("a", NilValue{})
	global.Define("b", NilValue{})
	inner := global.Extend()
	inner.Define("b", NilValue{})
	inner.Define("c", NilValue{})

	want := []string{"a", "b", "c"}
	if got := inner.AllKeys(); !reflect.DeepEqual(got, want) {
		t.Fatalf("all keys %v, want %v", got, want)
	}
}
