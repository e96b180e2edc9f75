package sublayout

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestFlatten_Order(t *testing.T) {
	root, red, button, label, blue, image := tv("root"), tv("red"), tv("button"), tv("label"), tv("blue"), tv("image")

	layout := Of(root).Sublayout(
		Of(red).Sublayout(
			Of(button),
			Of(label),
			Of(blue).Sublayout(Of(image)),
		),
	)

	got, err := Flatten(layout, nil)
	if err != nil {
		t.Fatalf("Flatten() error = %v", err)
	}

	want := []flat{
		{View: "root", Superview: "", Arranged: true},
		{View: "red", Superview: "root", Arranged: true},
		{View: "button", Superview: "red", Arranged: true},
		{View: "label", Superview: "red", Arranged: true},
		{View: "blue", Superview: "red", Arranged: true},
		{View: "image", Superview: "blue", Arranged: true},
	}
	if diff := cmp.Diff(want, summarize(got)); diff != "" {
		t.Errorf("Flatten() mismatch (-want +got):\n%s", diff)
	}
}

func TestFlatten_ViewlessPassthrough(t *testing.T) {
	stack, a, b, c, d := tv("stack"), tv("a"), tv("b"), tv("c"), tv("d")

	layout := Of(stack).Sublayout(
		GroupWithOption(GroupNotArranged,
			Of(a).Sublayout(Of(b)),
			Of(nil).Sublayout(Of(c)),
		),
		Group(Of(d)),
	)

	got, err := Flatten(layout, nil)
	if err != nil {
		t.Fatalf("Flatten() error = %v", err)
	}

	want := []flat{
		{View: "stack", Superview: "", Arranged: true},
		{View: "a", Superview: "stack", Arranged: false},
		{View: "b", Superview: "a", Arranged: true},
		{View: "c", Superview: "stack", Arranged: false},
		{View: "d", Superview: "stack", Arranged: true},
	}
	if diff := cmp.Diff(want, summarize(got)); diff != "" {
		t.Errorf("Flatten() mismatch (-want +got):\n%s", diff)
	}
}

func TestFlatten_ResolvesAnchors(t *testing.T) {
	window, root, title := tv("window"), tv("root"), tv("title")

	layout := Of(root).
		Anchors(Anchor(AttributeTop, AttributeBottom).EqualToSuper()).
		Sublayout(
			Of(title).Anchors(
				Anchor(AttributeLeading).EqualToSuper().Constant(16),
				Anchor(AttributeTop).EqualTo(root).Attribute(AttributeCenterY),
				Anchor(AttributeHeight).EqualToConstant(20),
			),
		)

	got, err := Flatten(layout, window)
	if err != nil {
		t.Fatalf("Flatten() error = %v", err)
	}

	want := []flat{
		{View: "root", Superview: "window", Arranged: true, Anchors: []string{
			"root.top == window.top",
			"root.bottom == window.bottom",
		}},
		{View: "title", Superview: "root", Arranged: true, Anchors: []string{
			"title.leading == root.leading + 16",
			"title.top == root.centerY",
			"title.height == 20",
		}},
	}
	if diff := cmp.Diff(want, summarize(got)); diff != "" {
		t.Errorf("Flatten() mismatch (-want +got):\n%s", diff)
	}
}

func TestFlatten_Errors(t *testing.T) {
	root, a, stranger := tv("root"), tv("a"), tv("stranger")

	type tc struct {
		layout Layout
		super  View
		code   Code
	}

	tests := map[string]tc{
		"anchors without view": {
			layout: Of(root).Sublayout(Of(nil).Anchors(Anchor(AttributeTop))),
			code:   ErrCodeAnchorsWithoutView,
		},
		"dangling target": {
			layout: Of(root).Sublayout(Of(a).Anchors(Anchor(AttributeTop).EqualTo(stranger))),
			code:   ErrCodeDanglingAnchor,
		},
		"dangling item": {
			layout: Of(root).Sublayout(Of(a).AnchorDescriptors(Descriptor{
				Item: stranger, Attribute: AttributeWidth, Multiplier: 1, Priority: PriorityRequired,
			})),
			code: ErrCodeDanglingAnchor,
		},
		"superview anchor on root": {
			layout: Of(root).Anchors(Anchor(AttributeTop).EqualToSuper()),
			code:   ErrCodeMissingSuperview,
		},
		"duplicate view": {
			layout: Of(root).Sublayout(Of(a), Of(a)),
			code:   ErrCodeDuplicateView,
		},
		"two superviews across roots": {
			layout: Layouts(Of(root).Sublayout(Of(a)), Of(stranger).Sublayout(Of(a))),
			code:   ErrCodeDuplicateView,
		},
		"cycle across roots": {
			layout: Layouts(Of(root).Sublayout(Of(a)), Of(a).Sublayout(Of(root))),
			code:   ErrCodeCycle,
		},
		"view reused as root superview": {
			layout: Of(root).Sublayout(Of(a)),
			super:  a,
			code:   ErrCodeDuplicateView,
		},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			_, err := Flatten(tt.layout, tt.super)
			if err == nil {
				t.Fatal("Flatten() should fail")
			}
			if !Is(err, tt.code) {
				t.Errorf("Flatten() error = %v, want code %s", err, tt.code)
			}
			if !IsConfiguration(err) {
				t.Errorf("IsConfiguration(%v) = false", err)
			}
		})
	}
}

func TestFlatten_MergesSeparatedRoots(t *testing.T) {
	root, child, button, label := tv("root"), tv("child"), tv("button"), tv("label")

	var configured []string
	layout := Layouts(
		Of(root).Sublayout(
			Of(child).
				Anchors(Anchor(AttributeTop).EqualToSuper()).
				Config(func(View) { configured = append(configured, "first") }),
		),
		Of(child).
			Anchors(Anchor(AttributeHeight).EqualToConstant(44)).
			Config(func(View) { configured = append(configured, "second") }).
			Sublayout(Of(button), Of(label)),
	)

	got, err := Flatten(layout, nil)
	if err != nil {
		t.Fatalf("Flatten() error = %v", err)
	}

	want := []flat{
		{View: "root", Superview: "", Arranged: true},
		{View: "child", Superview: "root", Arranged: true, Anchors: []string{
			"child.top == root.top",
			"child.height == 44",
		}},
		{View: "button", Superview: "child", Arranged: true},
		{View: "label", Superview: "child", Arranged: true},
	}
	if diff := cmp.Diff(want, summarize(got)); diff != "" {
		t.Errorf("Flatten() mismatch (-want +got):\n%s", diff)
	}

	got[1].Config(child)
	if diff := cmp.Diff([]string{"second"}, configured); diff != "" {
		t.Errorf("last config should win (-want +got):\n%s", diff)
	}
}

func TestFlatten_RootSuperviewCountsAsPresent(t *testing.T) {
	window, root := tv("window"), tv("root")

	layout := Of(root).Anchors(Anchor(AttributeWidth).EqualTo(window).Multiplier(0.5))
	if _, err := Flatten(layout, window); err != nil {
		t.Fatalf("Flatten() error = %v", err)
	}
}

func TestFlatten_Empty(t *testing.T) {
	got, err := Flatten(Empty(), nil)
	if err != nil {
		t.Fatalf("Flatten() error = %v", err)
	}
	if len(got) != 0 {
		t.Errorf("Flatten(Empty()) = %d components, want 0", len(got))
	}

	got, err = Flatten(nil, nil)
	if err != nil || len(got) != 0 {
		t.Errorf("Flatten(nil) = %v, %v", got, err)
	}
}
