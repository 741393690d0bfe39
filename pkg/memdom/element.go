package memdom

import (
	"strings"

	"golang.org/x/net/html"

	"github.com/MarkGodwin/hass-swipe-navigation/pkg/dom"
)

// Element is one node of an in-memory document.
type Element struct {
	watcherSet

	doc *Document
	n   *html.Node

	shadow    *ShadowRoot
	styles    map[string]string
	listeners map[dom.EventType][]*listenerEntry
}

type listenerEntry struct {
	fn      dom.Listener
	passive bool
	removed bool
}

// TagName returns the lower-case tag name.
func (e *Element) TagName() string { return e.n.Data }

// ID returns the id attribute, or "".
func (e *Element) ID() string { return e.Attr("id") }

// Attr returns the named attribute value, or "".
func (e *Element) Attr(name string) string {
	for _, a := range e.n.Attr {
		if a.Key == name {
			return a.Val
		}
	}
	return ""
}

func (e *Element) hasAttr(name string) bool {
	for _, a := range e.n.Attr {
		if a.Key == name {
			return true
		}
	}
	return false
}

// SetAttr sets an attribute, replacing any existing value.
func (e *Element) SetAttr(name, value string) {
	for i, a := range e.n.Attr {
		if a.Key == name {
			e.n.Attr[i].Val = value
			return
		}
	}
	e.n.Attr = append(e.n.Attr, html.Attribute{Key: name, Val: value})
}

// RemoveAttr deletes an attribute.
func (e *Element) RemoveAttr(name string) {
	for i, a := range e.n.Attr {
		if a.Key == name {
			e.n.Attr = append(e.n.Attr[:i], e.n.Attr[i+1:]...)
			return
		}
	}
}

// HasClass reports whether the class attribute contains name.
func (e *Element) HasClass(name string) bool {
	for _, c := range strings.Fields(e.Attr("class")) {
		if c == name {
			return true
		}
	}
	return false
}

// AddClass adds a class if not already present.
func (e *Element) AddClass(name string) {
	if e.HasClass(name) {
		return
	}
	classes := append(strings.Fields(e.Attr("class")), name)
	e.SetAttr("class", strings.Join(classes, " "))
}

// RemoveClass removes a class if present.
func (e *Element) RemoveClass(name string) {
	classes := strings.Fields(e.Attr("class"))
	kept := classes[:0]
	for _, c := range classes {
		if c != name {
			kept = append(kept, c)
		}
	}
	e.SetAttr("class", strings.Join(kept, " "))
}

// Matches reports whether the element matches a CSS selector group.
func (e *Element) Matches(selector string) bool {
	g := e.doc.compile(selector)
	return g != nil && g.Match(e.n)
}

// QuerySelector returns the first light-DOM descendant matching the selector
// group, or nil.
func (e *Element) QuerySelector(selector string) dom.Element {
	g := e.doc.compile(selector)
	if g == nil {
		return nil
	}
	if m := e.doc.queryIn(e.n, g); m != nil {
		return m
	}
	return nil
}

// ShadowRoot returns the element's shadow root, or nil.
func (e *Element) ShadowRoot() dom.ShadowRoot {
	if e.shadow == nil {
		return nil
	}
	return e.shadow
}

// AttachShadow creates the element's shadow root, returning the existing one
// on repeat calls.
func (e *Element) AttachShadow() *ShadowRoot {
	if e.shadow == nil {
		root := &html.Node{Type: html.DocumentNode}
		e.shadow = &ShadowRoot{doc: e.doc, host: e, root: root}
		e.doc.shadows[root] = e.shadow
	}
	return e.shadow
}

// Parent returns the light-DOM parent element, or nil.
func (e *Element) Parent() dom.Element {
	p := e.n.Parent
	if p == nil || p.Type != html.ElementNode {
		return nil
	}
	return e.doc.wrap(p)
}

// parentOrHost returns the next element outward, hopping from a shadow tree
// to its host element.
func (e *Element) parentOrHost() *Element {
	for p := e.n.Parent; p != nil; p = p.Parent {
		if sh, ok := e.doc.shadows[p]; ok {
			return sh.host
		}
		if p.Type == html.ElementNode {
			return e.doc.wrap(p)
		}
	}
	return nil
}

// Children returns the element children in document order.
func (e *Element) Children() []dom.Element {
	var out []dom.Element
	for c := e.n.FirstChild; c != nil; c = c.NextSibling {
		if c.Type == html.ElementNode {
			out = append(out, e.doc.wrap(c))
		}
	}
	return out
}

// IsConnected reports whether the element is reachable from the document,
// crossing shadow boundaries through host elements.
func (e *Element) IsConnected() bool {
	root := e.doc.treeRoot(e.n)
	if root == e.doc.root {
		return true
	}
	if sh, ok := e.doc.shadows[root]; ok {
		return sh.host.IsConnected()
	}
	return false
}

// AppendChild attaches child as the last child, detaching it from any
// previous parent first.
func (e *Element) AppendChild(child *Element) {
	e.doc.Batch(func() {
		detachNotify(child)
		e.n.AppendChild(child.n)
		e.doc.childrenChanged(e, e.n)
	})
}

// RemoveChild detaches child if it is a child of e.
func (e *Element) RemoveChild(child *Element) {
	if child.n.Parent != e.n {
		return
	}
	e.n.RemoveChild(child.n)
	e.doc.childrenChanged(e, e.n)
}

// Remove detaches the element from its parent context.
func (e *Element) Remove() {
	detachNotify(e)
}

// ReplaceChildren removes all children and appends the given ones, notifying
// observers once.
func (e *Element) ReplaceChildren(children ...*Element) {
	e.doc.Batch(func() {
		e.clearChildren()
		for _, child := range children {
			detachNotify(child)
			e.n.AppendChild(child.n)
		}
		e.doc.childrenChanged(e, e.n)
	})
}

// SetText replaces the element's content with a single text node.
func (e *Element) SetText(s string) {
	e.doc.Batch(func() {
		e.clearChildren()
		e.n.AppendChild(&html.Node{Type: html.TextNode, Data: s})
		e.doc.childrenChanged(e, e.n)
	})
}

// Text returns the concatenated light-DOM text content.
func (e *Element) Text() string {
	var b strings.Builder
	var walk func(n *html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.TextNode {
			b.WriteString(n.Data)
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(e.n)
	return b.String()
}

func (e *Element) clearChildren() {
	for c := e.n.FirstChild; c != nil; {
		next := c.NextSibling
		e.n.RemoveChild(c)
		c = next
	}
}

// detachNotify removes el from its parent and notifies the old context.
func detachNotify(el *Element) {
	p := el.n.Parent
	if p == nil {
		return
	}
	owner := el.doc.ownerOf(p)
	p.RemoveChild(el.n)
	el.doc.childrenChanged(owner, p)
}

// Style returns the inline style value for a property, or "".
func (e *Element) Style(prop string) string { return e.styles[prop] }

// SetStyle sets an inline style property. An empty value clears it.
func (e *Element) SetStyle(prop, value string) {
	if value == "" {
		delete(e.styles, prop)
		return
	}
	if e.styles == nil {
		e.styles = make(map[string]string)
	}
	e.styles[prop] = value
}

// ComputedStyle returns the effective value of a property. Display honors
// the hidden attribute; direction inherits through parents and shadow hosts.
func (e *Element) ComputedStyle(prop string) string {
	switch prop {
	case "display":
		if v := e.styles["display"]; v != "" {
			return v
		}
		if e.hasAttr("hidden") {
			return "none"
		}
		return "block"
	case "direction":
		for el := e; el != nil; el = el.parentOrHost() {
			if v := el.styles["direction"]; v != "" {
				return v
			}
			if v := el.Attr("dir"); v != "" {
				return v
			}
		}
		return "ltr"
	default:
		return e.styles[prop]
	}
}

// WatchChildren registers an observer of the element's direct child-list
// mutations.
func (e *Element) WatchChildren(fn func()) (stop func()) {
	return e.watcherSet.add(fn)
}

// AddListener registers an event listener and returns its removal func.
func (e *Element) AddListener(t dom.EventType, fn dom.Listener, opts dom.ListenerOptions) (remove func()) {
	if e.listeners == nil {
		e.listeners = make(map[dom.EventType][]*listenerEntry)
	}
	entry := &listenerEntry{fn: fn, passive: opts.Passive}
	e.listeners[t] = append(e.listeners[t], entry)
	return func() {
		entry.removed = true
	}
}

// DispatchEvent delivers ev to this element's own listeners without
// bubbling. It reports whether default handling may proceed.
func (e *Element) DispatchEvent(ev *dom.Event) bool {
	ev.Target = e
	ev.Path = e.doc.composedPath(e)
	e.invoke(ev)
	return !ev.DefaultPrevented()
}

// invoke calls the element's listeners for ev's type against a snapshot, so
// removals during dispatch take effect on the next dispatch.
func (e *Element) invoke(ev *dom.Event) {
	entries := e.listeners[ev.Type]
	if len(entries) == 0 {
		return
	}
	live := make([]*listenerEntry, 0, len(entries))
	for _, entry := range entries {
		if !entry.removed {
			live = append(live, entry)
		}
	}
	e.listeners[ev.Type] = live
	for _, entry := range live {
		ev.Passive = entry.passive
		entry.fn(ev)
	}
	ev.Passive = false
}
