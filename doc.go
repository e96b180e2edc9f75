// Package sublayout reconciles declarative view hierarchies against a live
// host scene graph.
//
// Users import this single package to build layout trees, flatten them and
// keep a host in sync with them across updates:
//
//	layout := sublayout.Of(root).Sublayout(
//		sublayout.Of(red).Anchors(sublayout.Anchor(sublayout.AttributeTop).EqualToSuper()).Sublayout(
//			sublayout.Of(button),
//			sublayout.If(showLabel, sublayout.Of(label)),
//		),
//	)
//
//	r := sublayout.NewReconciler(host)
//	activation, err := r.Activate(layout)
//	...
//	activation, err = r.Update(nextLayout, activation)
//	...
//	activation.Deactive()
//
// Each pass attaches, detaches and reorders only what changed, and keeps the
// constraints of views whose anchors are unchanged. The host is reached only
// through the Host interface; package scene provides an in-memory one.
package sublayout
