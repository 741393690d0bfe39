// Package memdom is an in-memory host document implementing the dom
// contract. It backs the test suite and the scenario simulator; production
// hosts supply their own adapter.
//
// Nodes are golang.org/x/net/html trees wrapped with side structures for
// styles, listeners, observers and shadow roots. Selector matching uses
// cascadia. The package is not safe for concurrent use; hosts drive it from
// one goroutine.
//
// # Identity
//
// Each underlying html node wraps to exactly one Element for the lifetime of
// the document, so listener and observer registrations survive repeated
// lookups and Element values compare meaningfully with ==.
//
// # Shadow trees
//
// AttachShadow creates a detached node tree addressable only through the host
// element's ShadowRoot. Light-DOM queries never descend into shadow trees;
// connectivity and composed paths cross shadow boundaries through the host
// element.
//
// # Mutation batching
//
// Child-list observers fire once per mutating call, after the mutation
// completes. Batch groups several mutations into a single notification per
// observed context, which is how a host's bulk re-render looks to observers.
// Document-level observers fire for child-list changes anywhere in the light
// tree (not inside shadow trees), matching a subtree-scoped document
// observer.
package memdom

import (
	"slices"
	"strings"

	"github.com/andybalholm/cascadia"
	"github.com/rs/zerolog"
	"golang.org/x/net/html"

	"github.com/MarkGodwin/hass-swipe-navigation/pkg/dom"
)

// Document is an in-memory host document.
type Document struct {
	watcherSet

	root  *html.Node
	body  *Element
	width float64
	log   zerolog.Logger

	elems     map[*html.Node]*Element
	shadows   map[*html.Node]*ShadowRoot
	selectors map[string]cascadia.SelectorGroup

	batching int
	flushing bool
	dirty    []notifier
	dirtySet map[notifier]struct{}
}

// notifier is a context whose child-list observers can be notified.
type notifier interface {
	notify()
}

// NewDocument returns an empty document with an html/body skeleton.
func NewDocument() *Document {
	root := &html.Node{Type: html.DocumentNode}
	htmlNode := &html.Node{Type: html.ElementNode, Data: "html"}
	head := &html.Node{Type: html.ElementNode, Data: "head"}
	body := &html.Node{Type: html.ElementNode, Data: "body"}
	root.AppendChild(htmlNode)
	htmlNode.AppendChild(head)
	htmlNode.AppendChild(body)

	d := newDocument(root)
	d.body = d.wrap(body)
	return d
}

// Parse builds a document from markup.
func Parse(markup string) (*Document, error) {
	root, err := html.Parse(strings.NewReader(markup))
	if err != nil {
		return nil, err
	}
	d := newDocument(root)
	if body := find(root, "body"); body != nil {
		d.body = d.wrap(body)
	}
	return d, nil
}

func newDocument(root *html.Node) *Document {
	return &Document{
		root:      root,
		width:     1920,
		log:       zerolog.Nop(),
		elems:     make(map[*html.Node]*Element),
		shadows:   make(map[*html.Node]*ShadowRoot),
		selectors: make(map[string]cascadia.SelectorGroup),
		dirtySet:  make(map[notifier]struct{}),
	}
}

func find(n *html.Node, tag string) *html.Node {
	if n.Type == html.ElementNode && n.Data == tag {
		return n
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if m := find(c, tag); m != nil {
			return m
		}
	}
	return nil
}

// SetLogger routes selector and dispatch diagnostics to log.
func (d *Document) SetLogger(log zerolog.Logger) { d.log = log }

// Body returns the document body element.
func (d *Document) Body() *Element { return d.body }

// InnerWidth returns the viewport width in pixels.
func (d *Document) InnerWidth() float64 { return d.width }

// SetInnerWidth changes the viewport width reported to the gesture engine.
func (d *Document) SetInnerWidth(w float64) { d.width = w }

// SetDirection sets the document text direction by writing the dir
// attribute on body; an empty value restores the ltr default.
func (d *Document) SetDirection(dir string) {
	if dir == "" {
		d.body.RemoveAttr("dir")
		return
	}
	d.body.SetAttr("dir", dir)
}

// QuerySelector returns the first element in the light tree matching the
// selector group, or nil.
func (d *Document) QuerySelector(selector string) dom.Element {
	g := d.compile(selector)
	if g == nil {
		return nil
	}
	if n := d.queryIn(d.root, g); n != nil {
		return n
	}
	return nil
}

// WatchChildren registers an observer of child-list mutations anywhere in
// the document's light tree.
func (d *Document) WatchChildren(fn func()) (stop func()) {
	return d.watcherSet.add(fn)
}

// CreateElement returns a new detached element.
func (d *Document) CreateElement(tag string) *Element {
	n := &html.Node{Type: html.ElementNode, Data: tag}
	return d.wrap(n)
}

// Batch runs fn, coalescing child-list notifications so every observed
// context fires at most once for the whole group.
func (d *Document) Batch(fn func()) {
	d.batching++
	fn()
	d.batching--
	if d.batching == 0 && !d.flushing {
		d.flush()
	}
}

// DispatchPointer delivers a pointer event targeted at el, invoking
// listeners along the composed path from the target outward. It returns the
// event so callers can inspect DefaultPrevented.
func (d *Document) DispatchPointer(target *Element, t dom.EventType, x, y float64, touches int) *dom.Event {
	ev := &dom.Event{
		Type:    t,
		X:       x,
		Y:       y,
		Touches: touches,
		Target:  target,
		Path:    d.composedPath(target),
	}
	for _, el := range ev.Path {
		el.(*Element).invoke(ev)
	}
	return ev
}

// composedPath walks from target to the outermost element, hopping from
// shadow trees to their hosts.
func (d *Document) composedPath(target *Element) []dom.Element {
	var path []dom.Element
	for el := target; el != nil; el = el.parentOrHost() {
		path = append(path, el)
	}
	return path
}

// wrap returns the canonical Element for a node.
func (d *Document) wrap(n *html.Node) *Element {
	if e, ok := d.elems[n]; ok {
		return e
	}
	e := &Element{doc: d, n: n}
	d.elems[n] = e
	return e
}

// compile parses a selector group, caching the result. Invalid selectors are
// logged once and match nothing.
func (d *Document) compile(selector string) cascadia.SelectorGroup {
	if g, ok := d.selectors[selector]; ok {
		return g
	}
	g, err := cascadia.ParseGroup(selector)
	if err != nil {
		d.log.Error().Err(err).Str("selector", selector).Msg("invalid selector")
		g = nil
	}
	d.selectors[selector] = g
	return g
}

// queryIn returns the first descendant of root matching g, in document
// order. Shadow trees hang off side structures, so the walk never enters
// them.
func (d *Document) queryIn(root *html.Node, g cascadia.SelectorGroup) *Element {
	for c := root.FirstChild; c != nil; c = c.NextSibling {
		if c.Type == html.ElementNode && g.Match(c) {
			return d.wrap(c)
		}
		if m := d.queryIn(c, g); m != nil {
			return m
		}
	}
	return nil
}

// ownerOf returns the observed context a parent node belongs to.
func (d *Document) ownerOf(parent *html.Node) notifier {
	if sh, ok := d.shadows[parent]; ok {
		return sh
	}
	if parent.Type == html.ElementNode {
		return d.wrap(parent)
	}
	return d
}

// treeRoot returns the topmost node of n's physical tree.
func (d *Document) treeRoot(n *html.Node) *html.Node {
	for n.Parent != nil {
		n = n.Parent
	}
	return n
}

// childrenChanged queues notifications after a child-list mutation of owner.
// Mutations in the light tree additionally notify document-level observers.
func (d *Document) childrenChanged(owner notifier, node *html.Node) {
	d.enqueue(owner)
	if d.treeRoot(node) == d.root && owner != notifier(d) {
		d.enqueue(d)
	}
	if d.batching == 0 && !d.flushing {
		d.flush()
	}
}

func (d *Document) enqueue(n notifier) {
	if _, ok := d.dirtySet[n]; ok {
		return
	}
	d.dirtySet[n] = struct{}{}
	d.dirty = append(d.dirty, n)
}

func (d *Document) flush() {
	d.flushing = true
	defer func() { d.flushing = false }()
	for len(d.dirty) > 0 {
		next := d.dirty[0]
		d.dirty = d.dirty[1:]
		delete(d.dirtySet, next)
		next.notify()
	}
}

// watcherSet holds child-list observers for one observed context.
type watcherSet struct {
	watchers map[int]func()
	nextID   int
}

func (w *watcherSet) add(fn func()) (stop func()) {
	if w.watchers == nil {
		w.watchers = make(map[int]func())
	}
	id := w.nextID
	w.nextID++
	w.watchers[id] = fn
	return func() {
		delete(w.watchers, id)
	}
}

// notify invokes a snapshot of the registered observers in registration
// order, so observers may register or remove watches while being notified.
func (w *watcherSet) notify() {
	if len(w.watchers) == 0 {
		return
	}
	ids := make([]int, 0, len(w.watchers))
	for id := range w.watchers {
		ids = append(ids, id)
	}
	slices.Sort(ids)
	for _, id := range ids {
		if fn, ok := w.watchers[id]; ok {
			fn()
		}
	}
}
