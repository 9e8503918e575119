// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package render

import (
	"github.com/go-gl/mathgl/mgl32"

	"github.com/gogpu/g3d/scene"
	"github.com/gogpu/g3d/shader"
)

// Token is one entry of a render queue: an actor drawn with one pass of its
// effect. Tokens are built every frame and hold no references past it.
type Token struct {
	Actor  *scene.Actor
	Shader *scene.Shader
	Pass   int

	// World is the actor's world matrix when the token was built.
	World mgl32.Mat4

	// Depth is the camera-space depth of the actor's bounds center,
	// positive in front of the camera.
	Depth float32

	ActorRank   int
	Block       int
	EffectRank  int
	Translucent bool

	// Seq is the insertion order, the last sort criterion.
	Seq int

	// EffectSeq numbers effects in order of first appearance so that tokens
	// sharing an effect can be grouped.
	EffectSeq int
}

// Program returns the program of the token's pass, or nil.
func (t *Token) Program() *shader.Program {
	if t.Shader == nil {
		return nil
	}
	return t.Shader.Program()
}

// programID returns the program id, 0 for none.
func (t *Token) programID() uint64 {
	if p := t.Program(); p != nil {
		return p.ID()
	}
	return 0
}

// Queue is the per-frame list of tokens. Reset discards the tokens and
// keeps the storage.
type Queue struct {
	tokens  []Token
	effects map[*scene.Effect]int
}

// NewQueue returns an empty queue.
func NewQueue() *Queue {
	return &Queue{effects: make(map[*scene.Effect]int)}
}

// Add appends a token, assigning its Seq.
func (q *Queue) Add(t Token) {
	t.Seq = len(q.tokens)
	q.tokens = append(q.tokens, t)
}

// AddActor appends one token per pass of the actor's effect. Depth is
// measured through cam; a nil camera leaves it zero.
func (q *Queue) AddActor(a *scene.Actor, cam *scene.Camera) {
	e := a.Effect
	if e == nil {
		return
	}
	if q.effects == nil {
		q.effects = make(map[*scene.Effect]int)
	}
	es, ok := q.effects[e]
	if !ok {
		es = len(q.effects)
		q.effects[e] = es
	}

	world := a.World()
	var depth float32
	if cam != nil {
		center := world.Col(3).Vec3()
		if b := a.WorldBounds(); !b.IsEmpty() {
			center = b.Center()
		}
		depth = cam.Depth(center)
	}
	for i, s := range e.Passes {
		if s == nil {
			continue
		}
		q.Add(Token{
			Actor:       a,
			Shader:      s,
			Pass:        i,
			World:       world,
			Depth:       depth,
			ActorRank:   a.RenderRank,
			Block:       a.RenderBlock,
			EffectRank:  e.RenderRank,
			Translucent: s.Translucent(),
			EffectSeq:   es,
		})
	}
}

// Tokens returns the tokens in queue order. Sorters reorder the slice in
// place.
func (q *Queue) Tokens() []Token { return q.tokens }

// Len returns the number of tokens.
func (q *Queue) Len() int { return len(q.tokens) }

// Reset discards every token.
func (q *Queue) Reset() {
	clear(q.tokens)
	q.tokens = q.tokens[:0]
	clear(q.effects)
}
