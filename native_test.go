package vine

import (
	"errors"
	"math"
	"testing"
)

func TestPromotionOrderAndDedupe(t *testing.T) {
	root := NewValue(0)
	a := mustInterp(t, root, Config{InputRange: []float64{0, 1}, Output: Numbers(0, 10)})
	b := mustInterp(t, root, Config{InputRange: []float64{0, 1}, Output: Numbers(10, 0)})
	node := mustInterp(t, root, Config{
		InputRange: []float64{0, 1},
		Output:     NodeRange(a, b),
	})
	a.Attach()
	b.Attach()
	node.Attach()

	c := NewCoordinator()
	if err := node.MakeNative(c); err != nil {
		t.Fatalf("MakeNative: %v", err)
	}

	// Root, both range entries, and the node itself: four registrations,
	// even though a and b share the root as a common ancestor.
	if got := c.NumNodes(); got != 4 {
		t.Fatalf("NumNodes = %d, want 4", got)
	}

	// Tags are issued in promotion order: dependencies strictly before the
	// nodes that reference them.
	rootTag, ok := root.NativeTag()
	if !ok {
		t.Fatal("root should be promoted")
	}
	aTag, _ := a.NativeTag()
	bTag, _ := b.NativeTag()
	nodeTag, _ := node.NativeTag()
	if !(rootTag < aTag && aTag < bTag && bTag < nodeTag) {
		t.Errorf("promotion order violated: root=%d a=%d b=%d node=%d", rootTag, aTag, bTag, nodeTag)
	}

	// Promotion is idempotent: nothing new registers, tags are stable.
	if err := node.MakeNative(c); err != nil {
		t.Fatalf("second MakeNative: %v", err)
	}
	if got := c.NumNodes(); got != 4 {
		t.Errorf("NumNodes after re-promotion = %d, want 4", got)
	}
	if tag, _ := root.NativeTag(); tag != rootTag {
		t.Errorf("root tag changed on re-promotion: %d -> %d", rootTag, tag)
	}
}

func TestPromoteToSecondCoordinatorFails(t *testing.T) {
	root := NewValue(0)
	node := mustInterp(t, root, Config{InputRange: []float64{0, 1}, Output: Numbers(0, 1)})
	node.Attach()

	if err := node.MakeNative(NewCoordinator()); err != nil {
		t.Fatalf("MakeNative: %v", err)
	}
	if err := node.MakeNative(NewCoordinator()); !errors.Is(err, ErrConsistency) {
		t.Errorf("cross-coordinator promotion error = %v, want ErrConsistency", err)
	}
}

func TestExportAngleStringsAsRadians(t *testing.T) {
	root := NewValue(0)
	node := mustInterp(t, root, Config{
		InputRange: []float64{0, 1},
		Output:     Strings("0deg", "90deg"),
	})
	node.Attach()

	c := NewCoordinator()
	if err := node.MakeNative(c); err != nil {
		t.Fatalf("MakeNative: %v", err)
	}
	cfg, err := node.ExportConfig()
	if err != nil {
		t.Fatalf("ExportConfig: %v", err)
	}

	if len(cfg.OutputRange) != 2 {
		t.Fatalf("len(OutputRange) = %d, want 2", len(cfg.OutputRange))
	}
	assertNear(t, "0deg", cfg.OutputRange[0], 0)
	assertNear(t, "90deg", cfg.OutputRange[1], 1.5707963267948966)
	if cfg.IsOutputRangeAnimations {
		t.Error("string range must not export as animations")
	}
	if cfg.Type != KindInterpolation {
		t.Errorf("Type = %q, want %q", cfg.Type, KindInterpolation)
	}
}

func TestExportNodeRangeAsTags(t *testing.T) {
	root := NewValue(0)
	a := NewValue(1)
	b := NewValue(2)
	node := mustInterp(t, root, Config{
		InputRange:  []float64{0, 1},
		Output:      NodeRange(a, b),
		Extrapolate: ExtrapolateClamp,
	})
	node.Attach()

	c := NewCoordinator()
	if err := node.MakeNative(c); err != nil {
		t.Fatalf("MakeNative: %v", err)
	}
	cfg, err := node.ExportConfig()
	if err != nil {
		t.Fatalf("ExportConfig: %v", err)
	}

	if !cfg.IsOutputRangeAnimations {
		t.Error("node range must export as animations")
	}
	aTag, _ := a.NativeTag()
	bTag, _ := b.NativeTag()
	if uint32(cfg.OutputRange[0]) != aTag || uint32(cfg.OutputRange[1]) != bTag {
		t.Errorf("OutputRange = %v, want tags [%d %d]", cfg.OutputRange, aTag, bTag)
	}
	if cfg.ExtrapolateLeft != "clamp" || cfg.ExtrapolateRight != "clamp" {
		t.Errorf("extrapolation = %q/%q, want clamp/clamp", cfg.ExtrapolateLeft, cfg.ExtrapolateRight)
	}
}

func TestExportRequiresPromotedDependencies(t *testing.T) {
	root := NewValue(0)
	node := mustInterp(t, root, Config{InputRange: []float64{0, 1}, Output: Numbers(0, 1)})
	node.Attach()

	if _, err := node.ExportConfig(); !errors.Is(err, ErrConsistency) {
		t.Errorf("ExportConfig error = %v, want ErrConsistency", err)
	}
}

func TestSetValueForwardsToNative(t *testing.T) {
	root := NewValue(0)
	node := mustInterp(t, root, Config{InputRange: []float64{0, 1}, Output: Numbers(0, 100)})
	node.Attach()

	c := NewCoordinator()
	if err := node.MakeNative(c); err != nil {
		t.Fatalf("MakeNative: %v", err)
	}
	if err := root.SetValue(0.5); err != nil {
		t.Fatalf("SetValue: %v", err)
	}

	tag, _ := node.NativeTag()
	got, err := c.GetNodeValue(tag)
	if err != nil {
		t.Fatalf("GetNodeValue: %v", err)
	}
	assertNear(t, "native value", got, 50)
}

func TestCrossTierConsistencyNumeric(t *testing.T) {
	root := NewValue(0)
	node := mustInterp(t, root, Config{
		InputRange:       []float64{-1, 0, 1, 1, 2},
		Output:           Numbers(-10, 0, 10, 20, 40),
		ExtrapolateLeft:  ExtrapolateClamp,
		ExtrapolateRight: ExtrapolateExtend,
	})
	node.Attach()

	c := NewCoordinator()
	if err := node.MakeNative(c); err != nil {
		t.Fatalf("MakeNative: %v", err)
	}
	tag, _ := node.NativeTag()

	for x := -2.0; x <= 3.0; x += 0.01 {
		if err := root.SetValue(x); err != nil {
			t.Fatalf("SetValue(%v): %v", x, err)
		}
		want, err := node.Value()
		if err != nil {
			t.Fatalf("scripting tier at %v: %v", x, err)
		}
		got, err := c.GetNodeValue(tag)
		if err != nil {
			t.Fatalf("native tier at %v: %v", x, err)
		}
		if math.Abs(got-want) > epsilon {
			t.Fatalf("tiers disagree at %v: scripting %v, native %v", x, want, got)
		}
	}
}

func TestCrossTierConsistencyNodeRange(t *testing.T) {
	root := NewValue(0)
	lo := NewValue(-5)
	hi := NewValue(5)
	node := mustInterp(t, root, Config{
		InputRange: []float64{0, 1},
		Output:     NodeRange(lo, hi),
	})
	node.Attach()

	c := NewCoordinator()
	if err := node.MakeNative(c); err != nil {
		t.Fatalf("MakeNative: %v", err)
	}
	tag, _ := node.NativeTag()

	for x := -0.5; x <= 1.5; x += 0.05 {
		if err := root.SetValue(x); err != nil {
			t.Fatalf("SetValue: %v", err)
		}
		want, _ := node.Value()
		got, err := c.GetNodeValue(tag)
		if err != nil {
			t.Fatalf("native tier at %v: %v", x, err)
		}
		if math.Abs(got-want) > epsilon {
			t.Fatalf("tiers disagree at %v: scripting %v, native %v", x, want, got)
		}
	}

	// Endpoint updates propagate through SetValue forwarding.
	if err := lo.SetValue(100); err != nil {
		t.Fatalf("SetValue: %v", err)
	}
	root.SetValue(0)
	want, _ := node.Value()
	got, _ := c.GetNodeValue(tag)
	assertNear(t, "after endpoint update", got, want)
}

func TestNativeDegreeStringsEvaluateInRadians(t *testing.T) {
	root := NewValue(0.5)
	node := mustInterp(t, root, Config{
		InputRange: []float64{0, 1},
		Output:     Strings("0deg", "180deg"),
	})
	node.Attach()

	c := NewCoordinator()
	if err := node.MakeNative(c); err != nil {
		t.Fatalf("MakeNative: %v", err)
	}
	tag, _ := node.NativeTag()
	got, err := c.GetNodeValue(tag)
	if err != nil {
		t.Fatalf("GetNodeValue: %v", err)
	}
	assertNear(t, "half turn", got, math.Pi/2)
}

// --- registry errors ---

func TestRegistryLookupErrors(t *testing.T) {
	c := NewCoordinator()

	if _, err := c.GetNodeValue(99); !errors.Is(err, ErrConsistency) {
		t.Errorf("missing id error = %v, want ErrConsistency", err)
	}
	if err := c.UnregisterNode(99); !errors.Is(err, ErrConsistency) {
		t.Errorf("unregister missing error = %v, want ErrConsistency", err)
	}
	if err := c.SetNodeValue(99, 1); !errors.Is(err, ErrConsistency) {
		t.Errorf("set missing error = %v, want ErrConsistency", err)
	}
}

func TestRegistryDuplicateAndKindErrors(t *testing.T) {
	c := NewCoordinator()
	if err := c.RegisterNode(1, KindValue, NativeConfig{Type: KindValue, Value: 3}); err != nil {
		t.Fatalf("RegisterNode: %v", err)
	}
	if err := c.RegisterNode(1, KindValue, NativeConfig{Type: KindValue}); !errors.Is(err, ErrConsistency) {
		t.Errorf("duplicate register error = %v, want ErrConsistency", err)
	}
	if err := c.RegisterNode(2, "spring", NativeConfig{}); !errors.Is(err, ErrConsistency) {
		t.Errorf("unknown kind error = %v, want ErrConsistency", err)
	}
	if err := c.RegisterNode(3, KindValue, NativeConfig{Type: KindInterpolation}); !errors.Is(err, ErrConsistency) {
		t.Errorf("kind mismatch error = %v, want ErrConsistency", err)
	}

	// Writing a derived node is a kind error.
	if err := c.RegisterNode(4, KindInterpolation, NativeConfig{
		Type:             KindInterpolation,
		Parent:           1,
		InputRange:       []float64{0, 1},
		OutputRange:      []float64{0, 1},
		ExtrapolateLeft:  "extend",
		ExtrapolateRight: "extend",
	}); err != nil {
		t.Fatalf("RegisterNode interpolation: %v", err)
	}
	if err := c.SetNodeValue(4, 1); !errors.Is(err, ErrConsistency) {
		t.Errorf("set on interpolation error = %v, want ErrConsistency", err)
	}
}

func TestRegistryBadNodeReferences(t *testing.T) {
	c := NewCoordinator()
	if err := c.RegisterNode(1, KindValue, NativeConfig{Type: KindValue, Value: 0.5}); err != nil {
		t.Fatalf("RegisterNode: %v", err)
	}
	// outputRange references a tag that was never registered.
	if err := c.RegisterNode(2, KindInterpolation, NativeConfig{
		Type:                    KindInterpolation,
		Parent:                  1,
		InputRange:              []float64{0, 1},
		OutputRange:             []float64{1, 77},
		IsOutputRangeAnimations: true,
		ExtrapolateLeft:         "extend",
		ExtrapolateRight:        "extend",
	}); err != nil {
		t.Fatalf("RegisterNode: %v", err)
	}
	if _, err := c.GetNodeValue(2); !errors.Is(err, ErrConsistency) {
		t.Errorf("dangling reference error = %v, want ErrConsistency", err)
	}

	// A malformed config is rejected at registration, not evaluation.
	if err := c.RegisterNode(3, KindInterpolation, NativeConfig{
		Type:        KindInterpolation,
		Parent:      1,
		InputRange:  []float64{0},
		OutputRange: []float64{0},
	}); !errors.Is(err, ErrConfig) {
		t.Errorf("malformed config error = %v, want ErrConfig", err)
	}
}
