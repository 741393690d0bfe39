package memdom

import (
	"golang.org/x/net/html"

	"github.com/MarkGodwin/hass-swipe-navigation/pkg/dom"
)

// ShadowRoot is the shadow-internal root of an element. Its subtree is a
// separate node tree reachable only through the host element, so light-DOM
// queries never see it.
type ShadowRoot struct {
	watcherSet

	doc  *Document
	host *Element
	root *html.Node
}

// Host returns the element this root is attached to.
func (s *ShadowRoot) Host() dom.Element { return s.host }

// QuerySelector returns the first descendant of the shadow tree matching the
// selector group, or nil.
func (s *ShadowRoot) QuerySelector(selector string) dom.Element {
	g := s.doc.compile(selector)
	if g == nil {
		return nil
	}
	if m := s.doc.queryIn(s.root, g); m != nil {
		return m
	}
	return nil
}

// WatchChildren registers an observer of the shadow root's direct child-list
// mutations.
func (s *ShadowRoot) WatchChildren(fn func()) (stop func()) {
	return s.watcherSet.add(fn)
}

// Children returns the shadow root's element children in document order.
func (s *ShadowRoot) Children() []dom.Element {
	var out []dom.Element
	for c := s.root.FirstChild; c != nil; c = c.NextSibling {
		if c.Type == html.ElementNode {
			out = append(out, s.doc.wrap(c))
		}
	}
	return out
}

// AppendChild attaches child as the shadow root's last child, detaching it
// from any previous parent first.
func (s *ShadowRoot) AppendChild(child *Element) {
	s.doc.Batch(func() {
		detachNotify(child)
		s.root.AppendChild(child.n)
		s.doc.childrenChanged(s, s.root)
	})
}

// RemoveChild detaches child if it is a direct child of the shadow root.
func (s *ShadowRoot) RemoveChild(child *Element) {
	if child.n.Parent != s.root {
		return
	}
	s.root.RemoveChild(child.n)
	s.doc.childrenChanged(s, s.root)
}

// ReplaceChildren removes all children and appends the given ones, notifying
// observers once.
func (s *ShadowRoot) ReplaceChildren(children ...*Element) {
	s.doc.Batch(func() {
		for c := s.root.FirstChild; c != nil; {
			next := c.NextSibling
			s.root.RemoveChild(c)
			c = next
		}
		for _, child := range children {
			detachNotify(child)
			s.root.AppendChild(child.n)
		}
		s.doc.childrenChanged(s, s.root)
	})
}
