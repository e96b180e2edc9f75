// Package document loads layout trees from YAML or TOML files and builds
// them into sublayout layouts over a scene.
//
// A document names views by id. Nodes may be repeated with an "each"
// expression and guarded with a "when" expression, both evaluated with
// expr-lang against the document variables:
//
//	vars:
//	  showFooter: true
//	  rows: [a, b, c]
//	layout:
//	  - view: root
//	    children:
//	      - view: "row-{{item}}"
//	        each: rows
//	        anchors:
//	          - attrs: [leading, trailing]
//	          - attrs: [height]
//	            value: 44
//	      - view: footer
//	        when: showFooter
package document
