package document

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/grindlemire/go-sublayout"
	"github.com/grindlemire/go-sublayout/pkg/scene"
)

func loadPanel(t *testing.T) *Document {
	t.Helper()
	doc, err := Load(filepath.Join("testdata", "panel.yaml"))
	require.NoError(t, err)
	return doc
}

func TestBuild_Tree(t *testing.T) {
	doc := loadPanel(t)

	l, err := Build(doc, scene.New(), nil)
	require.NoError(t, err)

	want := []string{
		"root",
		"├─ header",
		"├─ list",
		"│  ├─ Group(notArranged)",
		"│  │  └─ list-bg",
		"│  ├─ row-a",
		"│  └─ row-b",
		"└─ footer",
	}
	assert.Equal(t, want, sublayout.RenderTree(l, false))
}

func TestBuild_Anchors(t *testing.T) {
	doc := loadPanel(t)

	l, err := Build(doc, scene.New(), nil)
	require.NoError(t, err)
	components, err := sublayout.Flatten(l, nil)
	require.NoError(t, err)

	anchors := map[string][]string{}
	for _, c := range components {
		for _, d := range c.Anchors {
			anchors[c.View.Identifier()] = append(anchors[c.View.Identifier()], d.String())
		}
	}
	assert.Equal(t, map[string][]string{
		"header": {
			"header.top == root.top",
			"header.leading == root.leading",
			"header.trailing == root.trailing",
			"header.height == 44",
		},
		"list":   {"list.top == header.bottom + 8"},
		"footer": {"footer.bottom >= root.bottom @750"},
	}, anchors)
}

func TestBuild_Vars(t *testing.T) {
	doc := loadPanel(t)
	sc := scene.New()

	l, err := Build(doc, sc, map[string]any{"showFooter": false, "rows": []any{"x", "y", "z"}})
	require.NoError(t, err)

	lines := sublayout.RenderTree(l, false)
	assert.NotContains(t, lines, "└─ footer")
	assert.Contains(t, lines, "   └─ row-z")

	_, ok := sc.Lookup("footer")
	assert.False(t, ok, "views of skipped nodes are not created")
}

func TestBuild_AppliesConfig(t *testing.T) {
	doc := loadPanel(t)
	sc := scene.New()

	l, err := Build(doc, sc, nil)
	require.NoError(t, err)
	a, err := sublayout.NewReconciler(sc).Activate(l)
	require.NoError(t, err)
	defer a.Deactive()

	header, _ := sc.Lookup("header")
	rowB, _ := sc.Lookup("row-b")
	list, _ := sc.Lookup("list")
	assert.Equal(t, "blue", header.Background())
	assert.Equal(t, "Row 1", rowB.Text())
	assert.True(t, list.IsStack())

	var arranged []string
	for _, v := range list.Arranged() {
		arranged = append(arranged, v.Identifier())
	}
	assert.Equal(t, []string{"row-a", "row-b"}, arranged)
}

func TestBuilder_Update(t *testing.T) {
	doc := loadPanel(t)
	sc := scene.New()
	b := NewBuilder(sc)
	r := sublayout.NewReconciler(sc)

	l, err := b.Build(doc, nil)
	require.NoError(t, err)
	a, err := r.Activate(l)
	require.NoError(t, err)

	l, err = b.Build(doc, map[string]any{"rows": []any{"b"}, "showFooter": false})
	require.NoError(t, err)
	a, err = r.Update(l, a)
	require.NoError(t, err)

	rowA, _ := sc.Lookup("row-a")
	footer, _ := sc.Lookup("footer")
	assert.Nil(t, rowA.Parent())
	assert.Nil(t, footer.Parent())
	assert.Equal(t, 2, a.Stats().Detached)
	assert.Zero(t, a.Stats().Attached)
}

func TestBuild_Errors(t *testing.T) {
	type tc struct {
		doc  string
		vars map[string]any
		want string
	}

	tests := map[string]tc{
		"unknown attribute": {
			doc:  "layout:\n  - view: a\n    anchors:\n      - attrs: [middle]\n",
			want: `layout[0].anchors[0]: unknown attribute "middle"`,
		},
		"unknown relation": {
			doc:  "layout:\n  - view: a\n    anchors:\n      - attrs: [top]\n        relation: \"~\"\n",
			want: `unknown relation "~"`,
		},
		"empty attrs": {
			doc:  "layout:\n  - view: a\n    anchors:\n      - to: b\n",
			want: "anchor has no attributes",
		},
		"bad condition": {
			doc:  "layout:\n  - view: a\n    children:\n      - view: b\n        when: \"1 +\"\n",
			want: "layout[0].children[0].when",
		},
		"non-bool condition": {
			doc:  "layout:\n  - view: a\n    when: \"'yes'\"\n",
			want: "layout[0].when",
		},
		"bad loop": {
			doc:  "layout:\n  - view: a\n    each: \"'abc'\"\n",
			want: "want a list or count",
		},
		"negative count literal": {
			doc:  "layout:\n  - view: a\n    each: \"-2\"\n",
			want: "layout[0].each: \"-2\" evaluated to -2, want a non-negative count",
		},
		"negative count from vars": {
			doc:  "layout:\n  - view: a\n    each: n\n",
			vars: map[string]any{"n": -1},
			want: "want a non-negative count",
		},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			doc, err := Parse([]byte(tt.doc), FormatYAML)
			require.NoError(t, err)
			_, err = Build(doc, scene.New(), tt.vars)
			assert.ErrorContains(t, err, tt.want)
		})
	}
}

func TestBuild_CountLoopAndMissingVars(t *testing.T) {
	doc, err := Parse([]byte(`
layout:
  - view: root
    children:
      - view: "cell-{{index}}"
        each: "3"
      - view: ghost
        when: undefinedFlag
`), FormatYAML)
	require.NoError(t, err)

	l, err := Build(doc, scene.New(), nil)
	require.NoError(t, err)
	assert.Equal(t, []string{
		"root",
		"├─ cell-0",
		"├─ cell-1",
		"└─ cell-2",
	}, sublayout.RenderTree(l, false))
}

func TestBuild_ViewlessAnchorsReported(t *testing.T) {
	doc, err := Parse([]byte("layout:\n  - view: root\n    children:\n      - anchors:\n          - attrs: [top]\n"), FormatYAML)
	require.NoError(t, err)

	l, err := Build(doc, scene.New(), nil)
	require.NoError(t, err)
	_, err = sublayout.Flatten(l, nil)
	assert.True(t, sublayout.Is(err, sublayout.ErrCodeAnchorsWithoutView))
}

func TestBuild_StackViewReferencedEarly(t *testing.T) {
	tests := map[string]string{
		"child anchors to its stack parent": `
layout:
  - view: root
    children:
      - view: list
        stack: true
        children:
          - view: a
            anchors:
              - attrs: [top, leading]
                to: list
          - view: b
`,
		"earlier sibling anchors to the stack": `
layout:
  - view: root
    children:
      - view: header
        anchors:
          - attrs: [bottom]
            to: list
            toAttr: top
      - view: list
        stack: true
        children:
          - view: a
          - view: b
`,
	}

	for name, src := range tests {
		t.Run(name, func(t *testing.T) {
			doc, err := Parse([]byte(src), FormatYAML)
			require.NoError(t, err)
			sc := scene.New()

			l, err := Build(doc, sc, nil)
			require.NoError(t, err)
			a, err := sublayout.NewReconciler(sc).Activate(l)
			require.NoError(t, err)
			defer a.Deactive()

			list, ok := sc.Lookup("list")
			require.True(t, ok)
			assert.True(t, list.IsStack())

			var arranged []string
			for _, v := range list.Arranged() {
				arranged = append(arranged, v.Identifier())
			}
			assert.Equal(t, []string{"a", "b"}, arranged)
		})
	}
}

func TestBuild_LoopExpandsBackground(t *testing.T) {
	doc, err := Parse([]byte(`
layout:
  - view: root
    children:
      - view: "swatch-{{index}}"
        each: colors
        background: "{{item}}"
`), FormatYAML)
	require.NoError(t, err)
	sc := scene.New()

	l, err := Build(doc, sc, map[string]any{"colors": []any{"red", "green"}})
	require.NoError(t, err)
	a, err := sublayout.NewReconciler(sc).Activate(l)
	require.NoError(t, err)
	defer a.Deactive()

	for id, want := range map[string]string{"swatch-0": "red", "swatch-1": "green"} {
		v, ok := sc.Lookup(id)
		require.True(t, ok, id)
		assert.Equal(t, want, v.Background(), id)
	}
}
