package swipetest

// ScriptedSource is a configuration source whose value and readiness the
// test controls. It starts unready, the way the host's configuration
// container looks before the dashboard finishes loading. Not safe for
// concurrent use.
type ScriptedSource struct {
	raw    any
	ready  bool
	reads  int
	subs   []scriptedSub
	nextID int
}

type scriptedSub struct {
	id int
	fn func()
}

func NewScriptedSource() *ScriptedSource {
	return &ScriptedSource{}
}

func (s *ScriptedSource) Raw() (any, bool) {
	s.reads++
	return s.raw, s.ready
}

func (s *ScriptedSource) Subscribe(fn func()) (cancel func()) {
	id := s.nextID
	s.nextID++
	s.subs = append(s.subs, scriptedSub{id: id, fn: fn})
	return func() {
		for i, sub := range s.subs {
			if sub.id == id {
				s.subs = append(s.subs[:i], s.subs[i+1:]...)
				return
			}
		}
	}
}

// SetRaw stores a new settings value, marks the source ready and signals a
// refresh, the way the host announces a rebuilt configuration tree.
func (s *ScriptedSource) SetRaw(raw any) {
	s.raw = raw
	s.ready = true
	s.signal()
}

// SetUnready makes subsequent reads fail without signaling, so polling
// behavior can be exercised.
func (s *ScriptedSource) SetUnready() {
	s.raw = nil
	s.ready = false
}

// Signal fires the refresh subscribers without changing the value.
func (s *ScriptedSource) Signal() {
	s.signal()
}

// Reads reports how many times Raw has been called.
func (s *ScriptedSource) Reads() int {
	return s.reads
}

func (s *ScriptedSource) signal() {
	subs := make([]scriptedSub, len(s.subs))
	copy(subs, s.subs)
	for _, sub := range subs {
		sub.fn()
	}
}
