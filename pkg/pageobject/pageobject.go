// Package pageobject implements resilient, self-healing lookups of host
// DOM nodes.
//
// A PageObject resolves one element through an ordered list of CSS
// selectors, evaluated against its parent resolver's node (or against the
// parent's shadow root, for shadow-encapsulated boundaries). The host
// application rebuilds its tree at will, so a resolved node can go stale at
// any time: every lookup re-checks connectivity and transparently
// re-resolves when the cached node has been detached.
//
// # Keep-alive
//
// A resolver that has callbacks registered through WatchChanges is kept
// alive: each ancestor watches the child-list of the context its child
// resolves in, and re-resolves the child eagerly when that list changes.
// Watches are torn down when the hosting node goes stale and re-attached
// on the next successful resolution, so they survive arbitrarily many
// host-driven replacements without caller intervention.
//
// Keep-alive edges are observation only. Ownership stays with the registry
// tree; tearing down a watch never invalidates a child's cached node.
package pageobject

import (
	"strings"

	"github.com/rs/zerolog"

	"github.com/MarkGodwin/hass-swipe-navigation/pkg/dom"
	"github.com/MarkGodwin/hass-swipe-navigation/pkg/errors"
)

// Callbacks are invoked as a resolver's node churns. OnRefreshed fires
// after every successful resolution, OnRemoved as soon as a stale node is
// discarded. Either may be nil.
type Callbacks struct {
	OnRefreshed func()
	OnRemoved   func()
}

// PageObject is a cached lookup of a single host DOM node. The zero value
// is not usable; construct with New or NewRoot.
type PageObject struct {
	parent    *PageObject
	root      dom.Scope
	selectors []string
	inShadow  bool
	log       zerolog.Logger

	node      dom.Element
	callbacks Callbacks
	watching  bool
	resolving bool

	// watched maps keep-alive children to the stop func of the child-list
	// watch currently attached for them. A nil value keeps the child
	// registered while this resolver's own node is unresolved.
	watched   map[*PageObject]func()
	rootWatch func()
}

// New creates a resolver nested under parent. inShadow selects whether the
// selectors are evaluated against the parent node's shadow root instead of
// its light DOM.
func New(parent *PageObject, selectors []string, inShadow bool, log zerolog.Logger) *PageObject {
	return &PageObject{
		parent:    parent,
		selectors: selectors,
		inShadow:  inShadow,
		log:       log,
	}
}

// NewRoot creates a top-level resolver whose selectors are evaluated
// against the document itself.
func NewRoot(root dom.Scope, selectors []string, log zerolog.Logger) *PageObject {
	return &PageObject{
		root:      root,
		selectors: selectors,
		log:       log,
	}
}

func (p *PageObject) String() string {
	return strings.Join(p.selectors, ", ")
}

// Node returns the resolved element, or nil while the host structure is
// missing. A cached node that has been detached from the document is torn
// down first, firing OnRemoved, and then resolved afresh.
func (p *PageObject) Node() dom.Element {
	if p.node != nil && !p.node.IsConnected() {
		p.log.Debug().Str("node", p.String()).Msg("cached node is stale")
		p.invalidate()
	}
	if p.node == nil {
		p.resolve()
	}
	return p.node
}

// WatchChanges registers callbacks and marks this resolver keep-alive,
// replacing any previous registration. The keep-alive mark propagates up
// the parent chain: every ancestor must itself survive host churn for a
// descendant watch to be meaningful.
func (p *PageObject) WatchChanges(cb Callbacks) {
	p.callbacks = cb
	p.watching = true
	p.ensureWatched()
}

// StopWatching clears the callbacks and detaches the watch an ancestor
// holds for this resolver. Watches among the ancestors themselves are left
// in place.
func (p *PageObject) StopWatching() {
	p.callbacks = Callbacks{}
	p.watching = false
	switch {
	case p.parent != nil:
		p.parent.dropWatch(p)
	case p.rootWatch != nil:
		p.rootWatch()
		p.rootWatch = nil
	}
}

// resolve looks the node up in the parent context and, on success,
// re-attaches keep-alive watches and fires OnRefreshed. The resolving
// guard breaks cycles: revalidation cascades can re-enter a resolver
// whose own resolution is still on the stack.
func (p *PageObject) resolve() {
	if p.resolving {
		return
	}
	p.resolving = true
	defer func() { p.resolving = false }()

	scope := p.scope()
	if scope == nil {
		return
	}
	for _, sel := range p.selectors {
		if n := scope.QuerySelector(sel); n != nil {
			p.node = n
			p.log.Debug().Str("node", p.String()).Str("selector", sel).Msg("node resolved")
			p.afterResolve()
			return
		}
	}
}

// scope computes the context this resolver's selectors are evaluated in:
// the document for top-level resolvers, otherwise the parent's node or its
// shadow root.
func (p *PageObject) scope() dom.Scope {
	if p.parent == nil {
		return p.root
	}
	if p.parent.Node() == nil {
		return nil
	}
	return p.parent.childScope(p.inShadow)
}

// childScope returns the context a child resolves in relative to this
// resolver's current node. Returns nil, with an error log, when a shadow
// root is expected but missing.
func (p *PageObject) childScope(inShadow bool) dom.Scope {
	if p.node == nil {
		return nil
	}
	if !inShadow {
		return p.node
	}
	sr := p.node.ShadowRoot()
	if sr == nil {
		err := errors.Errorf("pageobject.resolve", errors.KindResolve,
			"no shadow root under %s", p.node.TagName())
		p.log.Error().Err(err).Str("node", p.String()).Msg("expected shadow root is missing")
		return nil
	}
	return sr
}

// afterResolve re-attaches watches for keep-alive children and revalidates
// them immediately: mutations that happened while this resolver's node was
// stale went unobserved, so waiting for the next mutation would leave
// descendants stale indefinitely.
func (p *PageObject) afterResolve() {
	for child := range p.watched {
		p.attachWatch(child)
		child.revalidate()
	}
	if p.callbacks.OnRefreshed != nil {
		p.callbacks.OnRefreshed()
	}
}

// invalidate discards the cached node, disconnecting every structural
// watch hosted here, and fires OnRemoved. The watched children stay
// registered so the watches come back on the next resolution.
func (p *PageObject) invalidate() {
	for child, stop := range p.watched {
		if stop != nil {
			stop()
			p.watched[child] = nil
		}
	}
	p.node = nil
	if p.callbacks.OnRemoved != nil {
		p.callbacks.OnRemoved()
	}
}

// ensureWatched asks the parent chain to keep this resolver alive.
func (p *PageObject) ensureWatched() {
	if p.parent != nil {
		p.parent.adoptWatch(p)
		return
	}
	if p.rootWatch == nil {
		p.rootWatch = p.root.WatchChildren(func() { p.revalidate() })
	}
}

// adoptWatch registers child as keep-alive under this resolver and
// propagates the mark upward. The actual watch attaches now if this
// resolver's node is available, otherwise on its next resolution.
func (p *PageObject) adoptWatch(child *PageObject) {
	if p.watched == nil {
		p.watched = make(map[*PageObject]func())
	}
	if _, ok := p.watched[child]; !ok {
		p.watched[child] = nil
	}
	p.ensureWatched()
	p.attachWatch(child)
}

func (p *PageObject) attachWatch(child *PageObject) {
	if p.watched[child] != nil || p.node == nil {
		return
	}
	ctx := p.childScope(child.inShadow)
	if ctx == nil {
		return
	}
	p.watched[child] = ctx.WatchChildren(func() { child.revalidate() })
}

func (p *PageObject) dropWatch(child *PageObject) {
	if stop := p.watched[child]; stop != nil {
		stop()
	}
	delete(p.watched, child)
}

// revalidate re-resolves eagerly after a child-list mutation in this
// resolver's context, so keep-alive consumers reconnect promptly instead
// of waiting for the next external lookup.
func (p *PageObject) revalidate() {
	p.Node()
}
