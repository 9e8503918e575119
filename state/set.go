package state

import "github.com/gogpu/g3d/shader"

// Set is an ordered collection of render states holding at most one state
// per Kind. The zero value is an empty set ready to use.
type Set struct {
	states []RenderState

	// pos[k] is the position of kind k in states plus one, 0 when absent.
	pos [NumKinds]uint8

	program *shader.Program
}

// NewSet returns a set holding states, later states replacing earlier ones
// of the same kind.
func NewSet(states ...RenderState) *Set {
	s := &Set{}
	for _, rs := range states {
		s.SetRenderState(rs)
	}
	return s
}

// SetRenderState inserts rs, replacing the state of the same kind if one is
// present. A replaced state keeps its position. Nil and states of unknown
// kinds are ignored.
func (s *Set) SetRenderState(rs RenderState) {
	if rs == nil {
		return
	}
	k := rs.Kind()
	if !k.Valid() {
		return
	}
	if p := s.pos[k]; p != 0 {
		s.states[p-1] = rs
	} else {
		s.states = append(s.states, rs)
		s.pos[k] = uint8(len(s.states))
	}
	if k == KindProgram {
		s.program = rs.(UseProgram).Program
	}
}

// RenderState returns the state of kind k.
func (s *Set) RenderState(k Kind) (RenderState, bool) {
	if s == nil || !k.Valid() || s.pos[k] == 0 {
		return nil, false
	}
	return s.states[s.pos[k]-1], true
}

// Has reports whether the set holds a state of kind k.
func (s *Set) Has(k Kind) bool {
	return s != nil && k.Valid() && s.pos[k] != 0
}

// EraseRenderState removes the state of kind k and reports whether one was
// present. The order of the remaining states is kept.
func (s *Set) EraseRenderState(k Kind) bool {
	if s == nil || !k.Valid() || s.pos[k] == 0 {
		return false
	}
	i := int(s.pos[k]) - 1
	s.states = append(s.states[:i], s.states[i+1:]...)
	s.pos[k] = 0
	for j := i; j < len(s.states); j++ {
		s.pos[s.states[j].Kind()] = uint8(j + 1)
	}
	if k == KindProgram {
		s.program = nil
	}
	return true
}

// Program returns the program of the Program state without a lookup, or
// nil when the set has none.
func (s *Set) Program() *shader.Program {
	if s == nil {
		return nil
	}
	return s.program
}

// SetProgram is shorthand for SetRenderState(UseProgram{Program: p}).
func (s *Set) SetProgram(p *shader.Program) {
	s.SetRenderState(UseProgram{Program: p})
}

// Len returns the number of states.
func (s *Set) Len() int {
	if s == nil {
		return 0
	}
	return len(s.states)
}

// States returns the states in insertion order. The slice must not be
// modified.
func (s *Set) States() []RenderState {
	if s == nil {
		return nil
	}
	return s.states
}

// Clear removes every state.
func (s *Set) Clear() {
	clear(s.states)
	s.states = s.states[:0]
	s.pos = [NumKinds]uint8{}
	s.program = nil
}

// Clone returns an independent copy of the set.
func (s *Set) Clone() *Set {
	if s == nil {
		return &Set{}
	}
	c := *s
	c.states = append([]RenderState(nil), s.states...)
	return &c
}
