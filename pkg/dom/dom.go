// Package dom defines the contract between the swipe navigation core and the
// host document it runs against.
//
// The host's document tree is owned by a third party and rebuilt at will:
// panels re-render, nodes detach and re-attach, shadow roots come and go.
// The resolver and gesture engine therefore never hold host objects directly;
// they work exclusively through the interfaces here, which a host adapter
// implements once.
//
// # Identity
//
// Hosts must return the same Element value for the same underlying node every
// time it is looked up. The engine compares Element values with == to detect
// boundaries during composed-path walks, and observer registration would leak
// if a node could surface as two distinct values.
//
// # Threading
//
// The contract is single-threaded: all lookups, mutations, listener dispatch
// and observer callbacks happen on the host's event loop. Hosts whose timers
// fire elsewhere serialize them before touching the document.
package dom

// Element is one node of the host document.
type Element interface {
	Scope

	// TagName returns the lower-case tag name.
	TagName() string

	// ID returns the id attribute, or "".
	ID() string

	// HasClass reports whether the class attribute contains name.
	HasClass(name string) bool

	// Matches reports whether the element matches a CSS selector group.
	// Invalid selectors match nothing.
	Matches(selector string) bool

	// ShadowRoot returns the element's shadow-internal root, or nil.
	ShadowRoot() ShadowRoot

	// Parent returns the light-DOM parent element, or nil at a tree root.
	Parent() Element

	// Children returns the element children in document order.
	Children() []Element

	// IsConnected reports whether the element is reachable from the
	// document, crossing shadow boundaries through host elements.
	IsConnected() bool

	// Style returns the inline style value for a property, or "".
	Style(prop string) string

	// SetStyle sets an inline style property. An empty value clears it.
	SetStyle(prop, value string)

	// ComputedStyle returns the effective value of a property. At minimum
	// "display" (inline value, "none" for hidden elements, else a per-tag
	// default) and "direction" (inherited through parents and shadow hosts,
	// default "ltr") are supported.
	ComputedStyle(prop string) string

	// AddListener registers an event listener and returns its removal
	// func. Removal is idempotent; removing during dispatch takes effect
	// for the next dispatch.
	AddListener(t EventType, fn Listener, opts ListenerOptions) (remove func())

	// DispatchEvent delivers an event to this element's own listeners
	// without bubbling. It reports whether default handling may proceed
	// (false if a listener called PreventDefault).
	DispatchEvent(ev *Event) bool
}

// ShadowRoot is the shadow-internal root of an element.
type ShadowRoot interface {
	Scope

	// Host returns the element this root is attached to.
	Host() Element
}

// Document is the root context resolvers and the gesture engine are built
// against.
type Document interface {
	Scope

	// InnerWidth returns the viewport width in pixels.
	InnerWidth() float64
}

// Scope is any context selectors can be evaluated against: the document, an
// element's light DOM, or a shadow root.
type Scope interface {
	// QuerySelector returns the first descendant matching a CSS selector
	// group, or nil. The context node itself is never returned. Invalid
	// selectors yield nil.
	QuerySelector(selector string) Element

	// WatchChildren registers an observer of this context's direct
	// child-list mutations. Observers fire once per batch of changes,
	// after the mutation completes. The returned stop func is idempotent.
	WatchChildren(fn func()) (stop func())
}
