// Package scene is an in-memory host toolkit for sublayout.
//
// A Scene owns a registry of Views, tracks their parent/child containment,
// arranged lists of stack views and constraint handles, and records every
// mutation so tests and tools can check exactly which host calls a
// reconciliation issued.
package scene
