package sublayout

import (
	"fmt"
	"strconv"
	"strings"
)

// Attribute names an edge, dimension or center line of a view.
type Attribute int

const (
	// NotAnAttribute marks the target side of a constant-only relation.
	NotAnAttribute Attribute = iota
	AttributeLeft
	AttributeRight
	AttributeTop
	AttributeBottom
	AttributeLeading
	AttributeTrailing
	AttributeWidth
	AttributeHeight
	AttributeCenterX
	AttributeCenterY
	AttributeFirstBaseline
	AttributeLastBaseline
)

var attributeNames = map[Attribute]string{
	NotAnAttribute:         "notAnAttribute",
	AttributeLeft:          "left",
	AttributeRight:         "right",
	AttributeTop:           "top",
	AttributeBottom:        "bottom",
	AttributeLeading:       "leading",
	AttributeTrailing:      "trailing",
	AttributeWidth:         "width",
	AttributeHeight:        "height",
	AttributeCenterX:       "centerX",
	AttributeCenterY:       "centerY",
	AttributeFirstBaseline: "firstBaseline",
	AttributeLastBaseline:  "lastBaseline",
}

func (a Attribute) String() string {
	if name, ok := attributeNames[a]; ok {
		return name
	}
	return "Attribute(" + strconv.Itoa(int(a)) + ")"
}

// ParseAttribute returns the attribute with the given name.
func ParseAttribute(name string) (Attribute, bool) {
	for attr, n := range attributeNames {
		if n == name {
			return attr, true
		}
	}
	return NotAnAttribute, false
}

// Relation is the comparison a constraint enforces.
type Relation int

const (
	RelationEqual Relation = iota
	RelationGreaterThanOrEqual
	RelationLessThanOrEqual
)

func (r Relation) String() string {
	switch r {
	case RelationEqual:
		return "=="
	case RelationGreaterThanOrEqual:
		return ">="
	case RelationLessThanOrEqual:
		return "<="
	default:
		return "Relation(" + strconv.Itoa(int(r)) + ")"
	}
}

// ParseRelation accepts the symbolic form ("==", ">=", "<=") or the
// words "equal", "greaterThanOrEqual" and "lessThanOrEqual".
func ParseRelation(s string) (Relation, bool) {
	switch s {
	case "", "==", "equal":
		return RelationEqual, true
	case ">=", "greaterThanOrEqual":
		return RelationGreaterThanOrEqual, true
	case "<=", "lessThanOrEqual":
		return RelationLessThanOrEqual, true
	}
	return RelationEqual, false
}

// Priority orders constraints when they conflict. Higher wins.
type Priority float64

const (
	PriorityRequired    Priority = 1000
	PriorityDefaultHigh Priority = 750
	PriorityDefaultLow  Priority = 250
)

// Descriptor declares a constraint between two anchor points:
//
//	Item.Attribute Relation ToItem.ToAttribute * Multiplier + Constant
//
// Before flattening, a nil Item means the node's own view and a nil ToItem
// with a ToAttribute means the node's resolved superview.
type Descriptor struct {
	Item        View
	Attribute   Attribute
	Relation    Relation
	ToItem      View
	ToAttribute Attribute
	Constant    float64
	Multiplier  float64
	Priority    Priority
}

// Equal reports whether d and o describe the same constraint.
// Views are compared by identity.
func (d Descriptor) Equal(o Descriptor) bool {
	return sameView(d.Item, o.Item) &&
		d.Attribute == o.Attribute &&
		d.Relation == o.Relation &&
		sameView(d.ToItem, o.ToItem) &&
		d.ToAttribute == o.ToAttribute &&
		d.Constant == o.Constant &&
		d.Multiplier == o.Multiplier &&
		d.Priority == o.Priority
}

func (d Descriptor) String() string {
	var b strings.Builder
	b.WriteString(viewName(d.Item, "self"))
	b.WriteString(".")
	b.WriteString(d.Attribute.String())
	b.WriteString(" ")
	b.WriteString(d.Relation.String())
	b.WriteString(" ")

	if d.ToAttribute == NotAnAttribute {
		b.WriteString(formatFloat(d.Constant))
	} else {
		b.WriteString(viewName(d.ToItem, "superview"))
		b.WriteString(".")
		b.WriteString(d.ToAttribute.String())
		if d.Multiplier != 1 {
			b.WriteString(" * ")
			b.WriteString(formatFloat(d.Multiplier))
		}
		switch {
		case d.Constant > 0:
			b.WriteString(" + ")
			b.WriteString(formatFloat(d.Constant))
		case d.Constant < 0:
			b.WriteString(" - ")
			b.WriteString(formatFloat(-d.Constant))
		}
	}

	if d.Priority != PriorityRequired {
		fmt.Fprintf(&b, " @%s", formatFloat(float64(d.Priority)))
	}
	return b.String()
}

func viewName(v View, fallback string) string {
	if isNil(v) {
		return fallback
	}
	return v.Identifier()
}

func formatFloat(f float64) string {
	return strconv.FormatFloat(f, 'f', -1, 64)
}

// AnchorExpr is a fluent description of one or more anchors sharing a
// relation and target. Methods return modified copies.
//
//	Anchor(AttributeTop, AttributeLeading).EqualToSuper().Constant(8)
//	Anchor(AttributeWidth).EqualToConstant(44)
type AnchorExpr struct {
	attrs      []Attribute
	relation   Relation
	toItem     View
	toAttr     Attribute
	toAttrSet  bool
	constOnly  bool
	constant   float64
	multiplier float64
	priority   Priority
}

// Anchor starts an expression for attrs. By default each attribute is
// pinned equal to the same attribute of the superview.
func Anchor(attrs ...Attribute) AnchorExpr {
	return AnchorExpr{
		attrs:      attrs,
		relation:   RelationEqual,
		multiplier: 1,
		priority:   PriorityRequired,
	}
}

// EqualToSuper relates the anchors to the superview.
func (a AnchorExpr) EqualToSuper() AnchorExpr {
	return a.to(nil, RelationEqual)
}

// GreaterThanOrEqualToSuper relates the anchors to the superview with >=.
func (a AnchorExpr) GreaterThanOrEqualToSuper() AnchorExpr {
	return a.to(nil, RelationGreaterThanOrEqual)
}

// LessThanOrEqualToSuper relates the anchors to the superview with <=.
func (a AnchorExpr) LessThanOrEqualToSuper() AnchorExpr {
	return a.to(nil, RelationLessThanOrEqual)
}

// EqualTo relates the anchors to v.
func (a AnchorExpr) EqualTo(v View) AnchorExpr {
	return a.to(v, RelationEqual)
}

// GreaterThanOrEqualTo relates the anchors to v with >=.
func (a AnchorExpr) GreaterThanOrEqualTo(v View) AnchorExpr {
	return a.to(v, RelationGreaterThanOrEqual)
}

// LessThanOrEqualTo relates the anchors to v with <=.
func (a AnchorExpr) LessThanOrEqualTo(v View) AnchorExpr {
	return a.to(v, RelationLessThanOrEqual)
}

// EqualToConstant fixes the anchors to a constant, typically a dimension.
func (a AnchorExpr) EqualToConstant(c float64) AnchorExpr {
	a.relation = RelationEqual
	a.toItem = nil
	a.constOnly = true
	a.constant = c
	return a
}

// Attribute sets the target attribute when it differs from the source.
func (a AnchorExpr) Attribute(attr Attribute) AnchorExpr {
	a.toAttr = attr
	a.toAttrSet = true
	return a
}

// Constant sets the offset added to the target.
func (a AnchorExpr) Constant(c float64) AnchorExpr {
	a.constant = c
	return a
}

// Multiplier sets the factor applied to the target.
func (a AnchorExpr) Multiplier(m float64) AnchorExpr {
	a.multiplier = m
	return a
}

// Priority sets the constraint priority.
func (a AnchorExpr) Priority(p Priority) AnchorExpr {
	a.priority = p
	return a
}

func (a AnchorExpr) to(v View, rel Relation) AnchorExpr {
	a.toItem = v
	a.relation = rel
	a.constOnly = false
	return a
}

// Descriptors expands the expression into one unresolved descriptor per attribute.
func (a AnchorExpr) Descriptors() []Descriptor {
	out := make([]Descriptor, 0, len(a.attrs))
	for _, attr := range a.attrs {
		d := Descriptor{
			Attribute:  attr,
			Relation:   a.relation,
			Constant:   a.constant,
			Multiplier: a.multiplier,
			Priority:   a.priority,
		}
		if !a.constOnly {
			d.ToItem = a.toItem
			d.ToAttribute = attr
			if a.toAttrSet {
				d.ToAttribute = a.toAttr
			}
		}
		out = append(out, d)
	}
	return out
}

// EqualityPolicy decides whether a view's new descriptors match the ones
// already live, in which case the live constraints are kept.
type EqualityPolicy func(prev, next []Descriptor) bool

// StrictEquality requires every field of every descriptor to match, in order.
func StrictEquality(prev, next []Descriptor) bool {
	if len(prev) != len(next) {
		return false
	}
	for i := range prev {
		if !prev[i].Equal(next[i]) {
			return false
		}
	}
	return true
}

// IgnoringPriority matches descriptors that differ only in priority.
func IgnoringPriority(prev, next []Descriptor) bool {
	if len(prev) != len(next) {
		return false
	}
	for i := range prev {
		p, n := prev[i], next[i]
		p.Priority, n.Priority = 0, 0
		if !p.Equal(n) {
			return false
		}
	}
	return true
}
