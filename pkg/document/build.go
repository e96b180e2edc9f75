package document

import (
	"fmt"
	"reflect"
	"strings"

	"github.com/expr-lang/expr"
	"github.com/expr-lang/expr/vm"
	"github.com/pkg/errors"

	"github.com/grindlemire/go-sublayout"
	"github.com/grindlemire/go-sublayout/pkg/scene"
)

// Builder turns documents into layouts over one scene. Compiled
// expressions are cached across builds, so a Builder reused for every
// update only compiles each expression once.
type Builder struct {
	scene    *scene.Scene
	programs map[string]*vm.Program
}

// NewBuilder creates a Builder whose views live in sc.
func NewBuilder(sc *scene.Scene) *Builder {
	return &Builder{scene: sc, programs: make(map[string]*vm.Program)}
}

// Build is a one-shot NewBuilder(sc).Build(doc, vars).
func Build(doc *Document, sc *scene.Scene, vars map[string]any) (sublayout.Layout, error) {
	return NewBuilder(sc).Build(doc, vars)
}

// Build expands doc into a layout. vars override the document's own
// variables. Views are looked up in the scene by id and created on first use.
func (b *Builder) Build(doc *Document, vars map[string]any) (sublayout.Layout, error) {
	env := make(map[string]any, len(doc.Vars)+len(vars))
	for k, v := range doc.Vars {
		env[k] = v
	}
	for k, v := range vars {
		env[k] = v
	}

	var out []sublayout.Layout
	for i, n := range doc.Layout {
		ls, err := b.node(n, fmt.Sprintf("layout[%d]", i), env)
		if err != nil {
			return nil, err
		}
		out = append(out, ls...)
	}
	return sublayout.Layouts(out...), nil
}

func (b *Builder) node(n Node, path string, env map[string]any) ([]sublayout.Layout, error) {
	if n.Each == "" {
		l, err := b.single(n, path, env)
		if err != nil || l == nil {
			return nil, err
		}
		return []sublayout.Layout{l}, nil
	}

	items, err := b.items(n.Each, env)
	if err != nil {
		return nil, errors.Wrapf(err, "%s.each", path)
	}
	var out []sublayout.Layout
	for i, item := range items {
		scope := make(map[string]any, len(env)+2)
		for k, v := range env {
			scope[k] = v
		}
		scope["item"], scope["index"] = item, i

		l, err := b.single(n, fmt.Sprintf("%s[%d]", path, i), scope)
		if err != nil {
			return nil, err
		}
		if l != nil {
			out = append(out, l)
		}
	}
	return out, nil
}

func (b *Builder) single(n Node, path string, env map[string]any) (sublayout.Layout, error) {
	if n.When != "" {
		ok, err := b.cond(n.When, env)
		if err != nil {
			return nil, errors.Wrapf(err, "%s.when", path)
		}
		if !ok {
			return nil, nil
		}
	}

	// The node's own view exists before its children and anchors so that
	// references to it resolve to the same view with its options applied.
	var v *scene.View
	if n.View != "" {
		v = b.scene.View(expand(n.View, env))
		if n.Stack && !v.IsStack() {
			v.SetStack(true)
		}
	}

	var children []sublayout.Layout
	for i, c := range n.Children {
		ls, err := b.node(c, fmt.Sprintf("%s.children[%d]", path, i), env)
		if err != nil {
			return nil, err
		}
		children = append(children, ls...)
	}

	var descriptors []sublayout.Descriptor
	for i, a := range n.Anchors {
		ds, err := b.descriptors(a, env)
		if err != nil {
			return nil, errors.Wrapf(err, "%s.anchors[%d]", path, i)
		}
		descriptors = append(descriptors, ds...)
	}

	if v == nil {
		if len(descriptors) > 0 {
			// Flatten reports anchors on a viewless node.
			return sublayout.Of(nil).AnchorDescriptors(descriptors...).Sublayout(children...), nil
		}
		opt := sublayout.GroupArranged
		if n.NotArranged {
			opt = sublayout.GroupNotArranged
		}
		return sublayout.GroupWithOption(opt, children...), nil
	}

	node := sublayout.Of(v).AnchorDescriptors(descriptors...).Sublayout(children...)
	if cfg := config(n, env); cfg != nil {
		node.Config(cfg)
	}
	return node, nil
}

func (b *Builder) descriptors(a Anchor, env map[string]any) ([]sublayout.Descriptor, error) {
	if len(a.Attrs) == 0 {
		return nil, errors.New("anchor has no attributes")
	}
	rel, ok := sublayout.ParseRelation(a.Relation)
	if !ok {
		return nil, errors.Errorf("unknown relation %q", a.Relation)
	}
	var toAttr sublayout.Attribute
	if a.ToAttr != "" {
		if toAttr, ok = sublayout.ParseAttribute(a.ToAttr); !ok {
			return nil, errors.Errorf("unknown attribute %q", a.ToAttr)
		}
	}

	var target sublayout.View
	if a.To != "" && a.To != "superview" {
		target = b.scene.View(expand(a.To, env))
	}

	multiplier, priority := 1.0, sublayout.PriorityRequired
	if a.Multiplier != nil {
		multiplier = *a.Multiplier
	}
	if a.Priority != nil {
		priority = sublayout.Priority(*a.Priority)
	}

	out := make([]sublayout.Descriptor, 0, len(a.Attrs))
	for _, name := range a.Attrs {
		attr, ok := sublayout.ParseAttribute(name)
		if !ok || attr == sublayout.NotAnAttribute {
			return nil, errors.Errorf("unknown attribute %q", name)
		}
		d := sublayout.Descriptor{
			Attribute:  attr,
			Relation:   rel,
			Constant:   a.Constant,
			Multiplier: multiplier,
			Priority:   priority,
		}
		if a.Value != nil {
			d.Constant = *a.Value
		} else {
			d.ToItem = target
			d.ToAttribute = attr
			if toAttr != sublayout.NotAnAttribute {
				d.ToAttribute = toAttr
			}
		}
		out = append(out, d)
	}
	return out, nil
}

func config(n Node, env map[string]any) sublayout.ConfigFunc {
	if n.Background == "" && n.Text == "" && n.Hidden == nil {
		return nil
	}
	background, text, hidden := expand(n.Background, env), expand(n.Text, env), n.Hidden
	return sublayout.Configure(func(v *scene.View) {
		if background != "" {
			v.SetBackground(background)
		}
		if text != "" {
			v.SetText(text)
		}
		if hidden != nil {
			v.SetHidden(*hidden)
		}
	})
}

// expand substitutes {{item}} and {{index}} inside a loop.
func expand(s string, env map[string]any) string {
	item, ok := env["item"]
	if !ok || !strings.Contains(s, "{{") {
		return s
	}
	return strings.NewReplacer(
		"{{item}}", fmt.Sprint(item),
		"{{index}}", fmt.Sprint(env["index"]),
	).Replace(s)
}

func (b *Builder) program(src string, asBool bool) (*vm.Program, error) {
	key := src
	opts := []expr.Option{expr.AllowUndefinedVariables()}
	if asBool {
		key = "bool:" + src
		opts = append(opts, expr.AsBool())
	}
	if p, ok := b.programs[key]; ok {
		return p, nil
	}
	p, err := expr.Compile(src, opts...)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to compile %q", src)
	}
	b.programs[key] = p
	return p, nil
}

func (b *Builder) cond(src string, env map[string]any) (bool, error) {
	p, err := b.program(src, true)
	if err != nil {
		return false, err
	}
	out, err := expr.Run(p, env)
	if err != nil {
		return false, errors.Wrapf(err, "failed to evaluate %q", src)
	}
	if out == nil {
		return false, nil
	}
	ok, isBool := out.(bool)
	if !isBool {
		return false, errors.Errorf("%q evaluated to %T, want bool", src, out)
	}
	return ok, nil
}

// items evaluates src to a list. An integer n yields 0..n-1.
func (b *Builder) items(src string, env map[string]any) ([]any, error) {
	p, err := b.program(src, false)
	if err != nil {
		return nil, err
	}
	out, err := expr.Run(p, env)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to evaluate %q", src)
	}
	if out == nil {
		return nil, nil
	}

	rv := reflect.ValueOf(out)
	switch rv.Kind() {
	case reflect.Slice, reflect.Array:
		items := make([]any, rv.Len())
		for i := range items {
			items[i] = rv.Index(i).Interface()
		}
		return items, nil
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		if rv.Int() < 0 {
			return nil, errors.Errorf("%q evaluated to %d, want a non-negative count", src, rv.Int())
		}
		items := make([]any, rv.Int())
		for i := range items {
			items[i] = i
		}
		return items, nil
	}
	return nil, errors.Errorf("%q evaluated to %T, want a list or count", src, out)
}
