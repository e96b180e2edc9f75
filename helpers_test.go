package sublayout

// testView is a minimal View for tests that don't need a host.
type testView struct {
	name string
}

func (v *testView) Identifier() string {
	return v.name
}

func tv(name string) *testView {
	return &testView{name: name}
}

// flat is a comparable summary of a Component.
type flat struct {
	View      string
	Superview string
	Arranged  bool
	Anchors   []string
}

func summarize(components []Component) []flat {
	out := make([]flat, 0, len(components))
	for _, c := range components {
		f := flat{
			View:      c.View.Identifier(),
			Superview: viewName(c.Superview, ""),
			Arranged:  c.Arranged,
		}
		for _, d := range c.Anchors {
			f.Anchors = append(f.Anchors, d.String())
		}
		out = append(out, f)
	}
	return out
}
