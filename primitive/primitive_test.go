package primitive

import (
	"errors"
	"slices"
	"testing"

	"github.com/gogpu/gputypes"

	"github.com/gogpu/g3d/internal/assert"
)

type drawCall struct {
	kind       string
	topology   Topology
	first      int
	count      int
	instances  int
	baseVertex int
	start, end int
}

type mockDrawer struct {
	calls []drawCall
}

func (m *mockDrawer) DrawArrays(t Topology, first, count, instances int) error {
	m.calls = append(m.calls, drawCall{kind: "arrays", topology: t, first: first, count: count, instances: instances})
	return nil
}

func (m *mockDrawer) DrawElements(t Topology, _ IndexData, first, count, instances, baseVertex int) error {
	m.calls = append(m.calls, drawCall{kind: "elements", topology: t, first: first, count: count, instances: instances, baseVertex: baseVertex})
	return nil
}

type mockRangeDrawer struct {
	mockDrawer
}

func (m *mockRangeDrawer) DrawRangeElements(t Topology, _ IndexData, start, end, first, count, instances, baseVertex int) error {
	m.calls = append(m.calls, drawCall{kind: "range", topology: t, first: first, count: count, instances: instances, baseVertex: baseVertex, start: start, end: end})
	return nil
}

func TestTopologyString(t *testing.T) {
	tests := []struct {
		t    Topology
		want string
	}{
		{Points, "Points"},
		{LineLoop, "LineLoop"},
		{TriangleFan, "TriangleFan"},
		{QuadStrip, "QuadStrip"},
		{Polygon, "Polygon"},
		{Topology(200), "Unknown"},
	}
	for _, tt := range tests {
		if got := tt.t.String(); got != tt.want {
			t.Errorf("Topology(%d).String() = %q, want %q", tt.t, got, tt.want)
		}
	}
}

func TestTopologyGPU(t *testing.T) {
	if g, ok := TriangleStrip.GPU(); !ok || g != gputypes.PrimitiveTopologyTriangleStrip {
		t.Errorf("TriangleStrip.GPU() = %v, %v", g, ok)
	}
	for _, top := range []Topology{LineLoop, TriangleFan, Quads, QuadStrip, Polygon} {
		if _, ok := top.GPU(); ok {
			t.Errorf("%v.GPU() should not be native", top)
		}
	}
	if Quads.Native() || !TriangleFan.Native() {
		t.Error("Native() mismatch for Quads/TriangleFan")
	}
}

func TestCounts(t *testing.T) {
	tests := []struct {
		t                        Topology
		n                        int
		triangles, lines, points int
	}{
		{Triangles, 4, 1, -1, -1},
		{Triangles, 9, 3, -1, -1},
		{TriangleStrip, 1, 0, -1, -1},
		{TriangleStrip, 5, 3, -1, -1},
		{TriangleFan, 6, 4, -1, -1},
		{Polygon, 2, 0, -1, -1},
		{Quads, 8, 4, -1, -1},
		{Quads, 7, 2, -1, -1},
		{QuadStrip, 6, 4, -1, -1},
		{QuadStrip, 3, 0, -1, -1},
		{Lines, 5, -1, 2, -1},
		{LineStrip, 0, -1, 0, -1},
		{LineStrip, 4, -1, 3, -1},
		{LineLoop, 1, -1, 0, -1},
		{LineLoop, 4, -1, 4, -1},
		{Points, 7, -1, -1, 7},
	}
	for _, tt := range tests {
		s := NewDrawArrays(tt.t, 0, tt.n)
		if got := s.TriangleCount(); got != tt.triangles {
			t.Errorf("%v n=%d TriangleCount() = %d, want %d", tt.t, tt.n, got, tt.triangles)
		}
		if got := s.LineCount(); got != tt.lines {
			t.Errorf("%v n=%d LineCount() = %d, want %d", tt.t, tt.n, got, tt.lines)
		}
		if got := s.PointCount(); got != tt.points {
			t.Errorf("%v n=%d PointCount() = %d, want %d", tt.t, tt.n, got, tt.points)
		}
	}
}

func TestTriangleExamples(t *testing.T) {
	tests := []struct {
		name    string
		t       Topology
		indices []uint32
		want    []Triangle
	}{
		{"Triangles", Triangles, []uint32{0, 1, 2, 3}, []Triangle{{0, 1, 2}}},
		{"TriangleStrip", TriangleStrip, []uint32{0, 1, 2, 3}, []Triangle{{0, 2, 1}, {1, 2, 3}}},
		{"Quads", Quads, []uint32{0, 1, 2, 3, 4, 5, 6, 7}, []Triangle{{0, 1, 2}, {2, 3, 0}, {4, 5, 6}, {6, 7, 4}}},
		{"TriangleFan", TriangleFan, []uint32{0, 1, 2, 3, 4}, []Triangle{{0, 1, 2}, {0, 2, 3}, {0, 3, 4}}},
		{"Polygon", Polygon, []uint32{9, 8, 7, 6}, []Triangle{{9, 8, 7}, {9, 7, 6}}},
		{"QuadStrip", QuadStrip, []uint32{0, 1, 2, 3, 4, 5}, []Triangle{{0, 2, 1}, {1, 2, 3}, {2, 4, 3}, {3, 4, 5}}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := NewDrawElements(tt.t, tt.indices)
			if got := s.TriangleCount(); got != len(tt.want) {
				t.Fatalf("TriangleCount() = %d, want %d", got, len(tt.want))
			}
			for i, want := range tt.want {
				got, ok := s.Triangle(i)
				if !ok || got != want {
					t.Errorf("Triangle(%d) = %v, %v; want %v, true", i, got, ok, want)
				}
			}
			if got, ok := s.Triangle(len(tt.want)); ok || got != NoTriangle {
				t.Errorf("Triangle(%d) past end = %v, %v; want NoTriangle, false", len(tt.want), got, ok)
			}
		})
	}
}

func TestTriangleFullyDefined(t *testing.T) {
	for _, top := range []Topology{Triangles, TriangleStrip, TriangleFan, Polygon, Quads, QuadStrip} {
		for n := 0; n <= 16; n++ {
			s := NewDrawArrays(top, 0, n)
			count := s.TriangleCount()
			for i := range count {
				tri, ok := s.Triangle(i)
				if !ok {
					t.Fatalf("%v n=%d Triangle(%d) failed", top, n, i)
				}
				for _, v := range tri {
					if v < 0 || v >= n {
						t.Fatalf("%v n=%d Triangle(%d) = %v out of range", top, n, i, tri)
					}
				}
			}
			for _, i := range []int{-1, count, count + 5} {
				if tri, ok := s.Triangle(i); ok || tri != NoTriangle {
					t.Errorf("%v n=%d Triangle(%d) = %v, %v; want sentinel", top, n, i, tri, ok)
				}
			}
		}
	}
}

func TestTriangleUnsupportedTopology(t *testing.T) {
	for _, top := range []Topology{Points, Lines, LineStrip, LineLoop} {
		s := NewDrawArrays(top, 0, 6)
		if tri, ok := s.Triangle(0); ok || tri != NoTriangle {
			t.Errorf("%v Triangle(0) = %v, %v; want sentinel", top, tri, ok)
		}
		out := []int{5, 5, 5}
		if s.TriangleTo(0, out) {
			t.Errorf("%v TriangleTo should fail", top)
		}
		if !slices.Equal(out, []int{-1, -1, -1}) {
			t.Errorf("%v TriangleTo out = %v, want sentinel", top, out)
		}
	}
}

// trappedTriangleTo calls TriangleTo and reports whether it tripped a
// debug assertion.
func trappedTriangleTo(s Set, i int, out []int) (ok, trapped bool) {
	defer func() {
		if recover() != nil {
			trapped = true
		}
	}()
	return s.TriangleTo(i, out), false
}

func TestTriangleTo(t *testing.T) {
	s := NewDrawArrays(TriangleStrip, 10, 4)

	out := make([]int, 3)
	if !s.TriangleTo(1, out) || !slices.Equal(out, []int{11, 12, 13}) {
		t.Errorf("TriangleTo(1) = %v, want [11 12 13]", out)
	}

	tests := []struct {
		name string
		i    int
		out  []int
		want []int
	}{
		{"nil buffer", 0, nil, nil},
		{"short buffer", 0, []int{7, 7}, []int{-1, -1}},
		{"past end", 2, []int{1, 2, 3, 99}, []int{-1, -1, -1, 99}},
		{"negative", -1, []int{1, 2, 3}, []int{-1, -1, -1}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ok, trapped := trappedTriangleTo(s, tt.i, tt.out)
			if trapped != assert.Enabled {
				t.Errorf("TriangleTo(%d) trapped = %v, want %v", tt.i, trapped, assert.Enabled)
			}
			if trapped {
				return
			}
			if ok {
				t.Errorf("TriangleTo(%d) should fail", tt.i)
			}
			if !slices.Equal(tt.out, tt.want) {
				t.Errorf("out = %v, want %v", tt.out, tt.want)
			}
		})
	}
}

func TestDrawArraysRender(t *testing.T) {
	s := NewDrawArrays(Triangles, 3, 6)
	s.SetInstances(4)

	var d mockDrawer
	if err := s.Render(&d); err != nil {
		t.Fatalf("Render() error = %v", err)
	}
	want := []drawCall{{kind: "arrays", topology: Triangles, first: 3, count: 6, instances: 4}}
	if !slices.Equal(d.calls, want) {
		t.Errorf("calls = %v, want %v", d.calls, want)
	}

	s.SetEnabled(false)
	d.calls = nil
	_ = s.Render(&d)
	if len(d.calls) != 0 {
		t.Errorf("disabled set issued %d calls", len(d.calls))
	}

	s.SetEnabled(true)
	s.SetRange(0, 0)
	_ = s.Render(&d)
	if len(d.calls) != 0 {
		t.Errorf("empty set issued %d calls", len(d.calls))
	}
}

func TestInstancesClamp(t *testing.T) {
	s := NewDrawArrays(Points, 0, 1)
	if s.Instances() != 1 {
		t.Errorf("default Instances() = %d, want 1", s.Instances())
	}
	s.SetInstances(-3)
	if s.Instances() != 1 {
		t.Errorf("Instances() after negative = %d, want 1", s.Instances())
	}
}

func TestDrawElementsBaseVertex(t *testing.T) {
	s := NewDrawElements(Triangles, []uint16{0, 1, 2})
	s.SetBaseVertex(100)
	if got, _ := s.Triangle(0); got != (Triangle{100, 101, 102}) {
		t.Errorf("Triangle(0) = %v, want [100 101 102]", got)
	}

	var d mockDrawer
	_ = s.Render(&d)
	if len(d.calls) != 1 || d.calls[0].baseVertex != 100 || d.calls[0].count != 3 {
		t.Errorf("calls = %v", d.calls)
	}
}

func TestDrawElementsRestart(t *testing.T) {
	s := NewDrawElements(TriangleStrip, []uint16{0, 1, 2, 0xFFFF, 3, 4, 5, 6})
	if got := s.TriangleCount(); got != 6 {
		t.Errorf("TriangleCount() without restart = %d, want 6", got)
	}

	v := s.Buffer().Version()
	s.SetRestart(true, 0xFFFF)
	if s.Buffer().Version() == v {
		t.Error("SetRestart should bump the buffer version")
	}
	if idx, on := s.IndexData().RestartIndex(); !on || idx != 0xFFFF {
		t.Errorf("RestartIndex() = %d, %v", idx, on)
	}

	if got := s.TriangleCount(); got != 3 {
		t.Fatalf("TriangleCount() with restart = %d, want 3", got)
	}
	want := []Triangle{{0, 2, 1}, {3, 5, 4}, {4, 5, 6}}
	for i, w := range want {
		if got, ok := s.Triangle(i); !ok || got != w {
			t.Errorf("Triangle(%d) = %v, %v; want %v", i, got, ok, w)
		}
	}
	if _, ok := s.Triangle(3); ok {
		t.Error("Triangle(3) should fail")
	}

	// The run table follows index updates.
	s.SetIndices([]uint16{0, 1, 2, 3, 0xFFFF, 4, 5, 6})
	if got := s.TriangleCount(); got != 3 {
		t.Errorf("TriangleCount() after update = %d, want 3", got)
	}
	if got, _ := s.Triangle(2); got != (Triangle{4, 6, 5}) {
		t.Errorf("Triangle(2) after update = %v, want [4 6 5]", got)
	}

	s.SetTopology(Lines)
	if got := s.LineCount(); got != 3 {
		t.Errorf("LineCount() = %d, want 3", got)
	}
	if got := s.TriangleCount(); got != -1 {
		t.Errorf("TriangleCount() for Lines = %d, want -1", got)
	}
}

func TestDefaultRestartIndex(t *testing.T) {
	s := NewDrawElements(Triangles, []uint8{0, 1, 2})
	if on, idx := s.Restart(); on || idx != 0xFF {
		t.Errorf("Restart() = %v, %d; want false, 255", on, idx)
	}
}

func TestSortTriangles(t *testing.T) {
	s := NewDrawElements(Triangles, []uint32{5, 3, 4, 2, 0, 1, 1, 2, 0, 9})
	v := s.Buffer().Version()
	if err := s.SortTriangles(); err != nil {
		t.Fatalf("SortTriangles() error = %v", err)
	}
	want := []uint32{0, 1, 2, 0, 1, 2, 3, 4, 5, 9}
	if !slices.Equal(s.Indices(), want) {
		t.Errorf("Indices() = %v, want %v", s.Indices(), want)
	}
	if s.Buffer().Version() == v {
		t.Error("SortTriangles should bump the buffer version")
	}
}

func TestSortTrianglesErrors(t *testing.T) {
	strip := NewDrawElements(TriangleStrip, []uint16{0, 1, 2, 3})
	if err := strip.SortTriangles(); !errors.Is(err, ErrUnsupportedTopology) {
		t.Errorf("strip SortTriangles() = %v, want ErrUnsupportedTopology", err)
	}

	restart := NewDrawElements(Triangles, []uint16{0, 1, 2})
	restart.SetRestart(true, 0xFFFF)
	if err := restart.SortTriangles(); !errors.Is(err, ErrPrimitiveRestart) {
		t.Errorf("restart SortTriangles() = %v, want ErrPrimitiveRestart", err)
	}
}

func TestIndexBytes(t *testing.T) {
	s := NewDrawElements(Triangles, []uint16{1, 0x0203})
	idx := s.IndexData()
	if idx.Type() != IndexUint16 || idx.Type().Size() != 2 {
		t.Errorf("Type() = %v", idx.Type())
	}
	if got := idx.Bytes(); !slices.Equal(got, []byte{1, 0, 3, 2}) {
		t.Errorf("Bytes() = %v", got)
	}

	s.SetIndices([]uint16{7})
	if got := idx.Bytes(); !slices.Equal(got, []byte{7, 0}) {
		t.Errorf("Bytes() after SetIndices = %v", got)
	}

	u8 := NewDrawElements(Points, []uint8{4, 5})
	if u8.IndexData().Type() != IndexUint8 {
		t.Errorf("uint8 Type() = %v", u8.IndexData().Type())
	}
	if _, ok := IndexUint8.GPU(); ok {
		t.Error("IndexUint8 should have no WebGPU format")
	}
	if f, ok := IndexUint32.GPU(); !ok || f != gputypes.IndexFormatUint32 {
		t.Errorf("IndexUint32.GPU() = %v, %v", f, ok)
	}
}

func TestBufferInvalidate(t *testing.T) {
	var a, b Buffer
	if a.ID() == b.ID() {
		t.Error("buffers should have distinct IDs")
	}
	k := a.Key()
	a.Invalidate()
	if a.Key() == k {
		t.Error("Invalidate should change the key")
	}
	if a.Key().ID != k.ID {
		t.Error("Invalidate should keep the ID")
	}
}

func TestDrawRangeElements(t *testing.T) {
	s := NewDrawRangeElements(Triangles, []uint16{4, 5, 6}, 4, 6)
	if err := s.Validate(); err != nil {
		t.Errorf("Validate() error = %v", err)
	}
	s.SetRange(4, 5)
	if err := s.Validate(); !errors.Is(err, ErrIndexOutOfRange) {
		t.Errorf("Validate() = %v, want ErrIndexOutOfRange", err)
	}
	s.SetRange(6, 4)
	if err := s.Validate(); !errors.Is(err, ErrIndexOutOfRange) {
		t.Errorf("Validate() inverted range = %v, want ErrIndexOutOfRange", err)
	}
	s.SetRange(4, 6)

	var rd mockRangeDrawer
	_ = s.Render(&rd)
	if len(rd.calls) != 1 || rd.calls[0].kind != "range" || rd.calls[0].start != 4 || rd.calls[0].end != 6 {
		t.Errorf("range drawer calls = %v", rd.calls)
	}

	var d mockDrawer
	_ = s.Render(&d)
	if len(d.calls) != 1 || d.calls[0].kind != "elements" {
		t.Errorf("plain drawer calls = %v", d.calls)
	}

	if got, ok := s.Triangle(0); !ok || got != (Triangle{4, 5, 6}) {
		t.Errorf("Triangle(0) = %v, %v", got, ok)
	}
}

func TestMultiDrawElements(t *testing.T) {
	s := NewMultiDrawElements(Triangles, []uint32{0, 1, 2, 0, 1, 2, 3}, []int{3, 4}, []int{0, 10})
	if got := s.IndexCount(); got != 7 {
		t.Errorf("IndexCount() = %d, want 7", got)
	}
	if got := s.TriangleCount(); got != 2 {
		t.Errorf("TriangleCount() = %d, want 2", got)
	}
	if got := s.Index(3); got != 10 {
		t.Errorf("Index(3) = %d, want 10", got)
	}
	if got, ok := s.Triangle(1); !ok || got != (Triangle{10, 11, 12}) {
		t.Errorf("Triangle(1) = %v, %v", got, ok)
	}

	var d mockDrawer
	if err := s.Render(&d); err != nil {
		t.Fatal(err)
	}
	want := []drawCall{
		{kind: "elements", topology: Triangles, first: 0, count: 3, instances: 1},
		{kind: "elements", topology: Triangles, first: 3, count: 4, instances: 1, baseVertex: 10},
	}
	if !slices.Equal(d.calls, want) {
		t.Errorf("calls = %v, want %v", d.calls, want)
	}

	s.SetTopology(TriangleStrip)
	if got := s.TriangleCount(); got != 3 {
		t.Errorf("strip TriangleCount() = %d, want 3", got)
	}
	if got, _ := s.Triangle(2); got != (Triangle{11, 12, 13}) {
		t.Errorf("strip Triangle(2) = %v, want [11 12 13]", got)
	}

	s.SetTopology(Points)
	if got := s.TriangleCount(); got != -1 {
		t.Errorf("points TriangleCount() = %d, want -1", got)
	}
	if got := s.PointCount(); got != 7 {
		t.Errorf("PointCount() = %d, want 7", got)
	}
}

func TestMultiDrawElementsTruncates(t *testing.T) {
	s := NewMultiDrawElements(Points, []uint16{0, 1, 2}, []int{2, 5}, nil)
	if first, count, bv := s.Draw(1); first != 2 || count != 1 || bv != 0 {
		t.Errorf("Draw(1) = %d, %d, %d; want 2, 1, 0", first, count, bv)
	}
}

func TestTrianglesIterator(t *testing.T) {
	s := NewDrawArrays(TriangleFan, 0, 5)
	var got []Triangle
	for i, tri := range AllTriangles(s) {
		if i != len(got) {
			t.Fatalf("index %d out of order", i)
		}
		got = append(got, tri)
	}
	want := []Triangle{{0, 1, 2}, {0, 2, 3}, {0, 3, 4}}
	if !slices.Equal(got, want) {
		t.Errorf("AllTriangles() = %v, want %v", got, want)
	}

	flat := AppendTriangles(nil, s)
	if !slices.Equal(flat, []uint32{0, 1, 2, 0, 2, 3, 0, 3, 4}) {
		t.Errorf("AppendTriangles() = %v", flat)
	}

	if n := len(AppendTriangles(nil, NewDrawArrays(Lines, 0, 4))); n != 0 {
		t.Errorf("AppendTriangles(Lines) produced %d indices", n)
	}
}

func TestAppendLines(t *testing.T) {
	tests := []struct {
		t    Topology
		n    int
		want []uint32
	}{
		{Lines, 5, []uint32{0, 1, 2, 3}},
		{LineStrip, 3, []uint32{0, 1, 1, 2}},
		{LineLoop, 3, []uint32{0, 1, 1, 2, 2, 0}},
		{LineLoop, 1, nil},
	}
	for _, tt := range tests {
		got := AppendLines(nil, NewDrawArrays(tt.t, 0, tt.n))
		if !slices.Equal(got, tt.want) {
			t.Errorf("AppendLines(%v, %d) = %v, want %v", tt.t, tt.n, got, tt.want)
		}
	}
}
