package state

import "github.com/gogpu/g3d/shader"

// Applier receives the calls a Tracker issues. Graphics contexts implement
// it by translating each call into graphics-API calls.
type Applier interface {
	// ApplyState sets a state.
	ApplyState(rs RenderState)

	// ResetState restores kind k to Default(k).
	ResetState(k Kind)

	// Enable switches a capability on.
	Enable(c Capability)

	// Disable switches a capability off.
	Disable(c Capability)
}

// Changes counts the calls issued by Tracker.Apply.
type Changes struct {
	Applied  int
	Reset    int
	Enabled  int
	Disabled int
}

// Total returns the number of calls.
func (c Changes) Total() int {
	return c.Applied + c.Reset + c.Enabled + c.Disabled
}

// Add returns the sum of c and o.
func (c Changes) Add(o Changes) Changes {
	return Changes{
		Applied:  c.Applied + o.Applied,
		Reset:    c.Reset + o.Reset,
		Enabled:  c.Enabled + o.Enabled,
		Disabled: c.Disabled + o.Disabled,
	}
}

// Tracker is the snapshot of the states and capabilities currently applied
// to one graphics context. It is not safe for concurrent use; a context and
// its tracker belong to one goroutine.
type Tracker struct {
	current [NumKinds]RenderState
	enables EnableSet
	valid   bool
	totals  Changes
}

// NewTracker returns a tracker with no snapshot. The first Apply performs a
// full reapply.
func NewTracker() *Tracker {
	return &Tracker{}
}

// Apply brings the context to enables and set, issuing only the calls that
// differ from the snapshot:
//
//   - capabilities in enables but not applied are enabled, applied ones not
//     in enables are disabled;
//   - states of set that differ from the snapshot are applied, in set order;
//   - kinds absent from set whose applied state is not the default are
//     reset.
//
// A nil set is treated as empty.
func (t *Tracker) Apply(a Applier, enables EnableSet, set *Set) Changes {
	var ch Changes
	if !t.valid {
		ch = t.reapply(a, enables, set)
	} else {
		ch = t.diff(a, enables, set)
	}
	t.totals = t.totals.Add(ch)
	return ch
}

func (t *Tracker) diff(a Applier, enables EnableSet, set *Set) Changes {
	var ch Changes
	if added := enables &^ t.enables; added != 0 {
		for c := range added.All() {
			a.Enable(c)
			ch.Enabled++
		}
	}
	if removed := t.enables &^ enables; removed != 0 {
		for c := range removed.All() {
			a.Disable(c)
			ch.Disabled++
		}
	}
	t.enables = enables

	for _, rs := range set.States() {
		k := rs.Kind()
		if rs.Equal(t.current[k]) {
			continue
		}
		a.ApplyState(rs)
		t.current[k] = rs
		ch.Applied++
	}
	for k := range Kind(NumKinds) {
		if set.Has(k) || t.current[k].Equal(defaults[k]) {
			continue
		}
		a.ResetState(k)
		t.current[k] = defaults[k]
		ch.Reset++
	}
	return ch
}

func (t *Tracker) reapply(a Applier, enables EnableSet, set *Set) Changes {
	var ch Changes
	for i := range NumCapabilities {
		c := Capability(1) << i
		if enables.Has(c) {
			a.Enable(c)
			ch.Enabled++
		} else {
			a.Disable(c)
			ch.Disabled++
		}
	}
	t.enables = enables

	for _, rs := range set.States() {
		a.ApplyState(rs)
		t.current[rs.Kind()] = rs
		ch.Applied++
	}
	for k := range Kind(NumKinds) {
		if set.Has(k) {
			continue
		}
		a.ResetState(k)
		t.current[k] = defaults[k]
		ch.Reset++
	}
	t.valid = true
	return ch
}

// Invalidate forgets the snapshot. Call it when the context state is
// unknown, for example after the context was lost or external code issued
// graphics-API calls.
func (t *Tracker) Invalidate() {
	t.current = [NumKinds]RenderState{}
	t.enables = 0
	t.valid = false
}

// Valid reports whether the tracker holds a snapshot.
func (t *Tracker) Valid() bool { return t.valid }

// Current returns the applied state of kind k. The boolean is false when
// the tracker has no snapshot.
func (t *Tracker) Current(k Kind) (RenderState, bool) {
	if !t.valid || !k.Valid() {
		return nil, false
	}
	return t.current[k], true
}

// Enables returns the applied capabilities.
func (t *Tracker) Enables() EnableSet { return t.enables }

// Program returns the applied program, nil when none or unknown.
func (t *Tracker) Program() *shader.Program {
	if p, ok := t.current[KindProgram].(UseProgram); ok {
		return p.Program
	}
	return nil
}

// Totals returns the calls issued since the tracker was created.
func (t *Tracker) Totals() Changes { return t.totals }
