package shader

import "github.com/go-gl/mathgl/mgl32"

// UniformType is the value type of a uniform.
type UniformType uint8

const (
	Float UniformType = iota
	Int
	Vec2
	Vec3
	Vec4
	Mat4
)

// String returns the string representation of a UniformType.
func (t UniformType) String() string {
	switch t {
	case Float:
		return "Float"
	case Int:
		return "Int"
	case Vec2:
		return "Vec2"
	case Vec3:
		return "Vec3"
	case Vec4:
		return "Vec4"
	case Mat4:
		return "Mat4"
	}
	return "Unknown"
}

// Components returns the number of scalar components of the type.
func (t UniformType) Components() int {
	switch t {
	case Float, Int:
		return 1
	case Vec2:
		return 2
	case Vec3:
		return 3
	case Vec4:
		return 4
	case Mat4:
		return 16
	}
	return 0
}

// Uniform is one named value. Floats, vectors and matrices live in F,
// Int in I.
type Uniform struct {
	Name string
	Type UniformType
	F    [16]float32
	I    int32
}

// Float32 returns the first float component.
func (u Uniform) Float32() float32 { return u.F[0] }

// Vec3 returns the first three float components.
func (u Uniform) Vec3() mgl32.Vec3 { return mgl32.Vec3{u.F[0], u.F[1], u.F[2]} }

// Vec4 returns the first four float components.
func (u Uniform) Vec4() mgl32.Vec4 { return mgl32.Vec4{u.F[0], u.F[1], u.F[2], u.F[3]} }

// Mat4 returns the value as a column-major matrix.
func (u Uniform) Mat4() mgl32.Mat4 { return mgl32.Mat4(u.F) }

// Uniforms is an ordered collection of named uniform values. Setting a name
// that exists replaces its value and type in place.
type Uniforms struct {
	values  []Uniform
	index   map[string]int
	version uint64
}

// NewUniforms creates an empty collection.
func NewUniforms() *Uniforms {
	return &Uniforms{index: make(map[string]int)}
}

func (u *Uniforms) put(v Uniform) {
	if u.index == nil {
		u.index = make(map[string]int)
	}
	if i, ok := u.index[v.Name]; ok {
		u.values[i] = v
	} else {
		u.index[v.Name] = len(u.values)
		u.values = append(u.values, v)
	}
	u.version++
}

// Set stores a uniform value as is.
func (u *Uniforms) Set(v Uniform) { u.put(v) }

// SetFloat sets a float uniform.
func (u *Uniforms) SetFloat(name string, v float32) {
	x := Uniform{Name: name, Type: Float}
	x.F[0] = v
	u.put(x)
}

// SetInt sets an integer uniform.
func (u *Uniforms) SetInt(name string, v int32) {
	u.put(Uniform{Name: name, Type: Int, I: v})
}

// SetVec2 sets a two-component uniform.
func (u *Uniforms) SetVec2(name string, v mgl32.Vec2) {
	x := Uniform{Name: name, Type: Vec2}
	copy(x.F[:], v[:])
	u.put(x)
}

// SetVec3 sets a three-component uniform.
func (u *Uniforms) SetVec3(name string, v mgl32.Vec3) {
	x := Uniform{Name: name, Type: Vec3}
	copy(x.F[:], v[:])
	u.put(x)
}

// SetVec4 sets a four-component uniform.
func (u *Uniforms) SetVec4(name string, v mgl32.Vec4) {
	x := Uniform{Name: name, Type: Vec4}
	copy(x.F[:], v[:])
	u.put(x)
}

// SetMat4 sets a matrix uniform.
func (u *Uniforms) SetMat4(name string, m mgl32.Mat4) {
	u.put(Uniform{Name: name, Type: Mat4, F: [16]float32(m)})
}

// Get returns the uniform with the given name.
func (u *Uniforms) Get(name string) (Uniform, bool) {
	if u == nil {
		return Uniform{}, false
	}
	i, ok := u.index[name]
	if !ok {
		return Uniform{}, false
	}
	return u.values[i], true
}

// Remove deletes the named uniform, keeping the order of the rest.
func (u *Uniforms) Remove(name string) bool {
	i, ok := u.index[name]
	if !ok {
		return false
	}
	u.values = append(u.values[:i], u.values[i+1:]...)
	delete(u.index, name)
	for j := i; j < len(u.values); j++ {
		u.index[u.values[j].Name] = j
	}
	u.version++
	return true
}

// Len returns the number of uniforms.
func (u *Uniforms) Len() int {
	if u == nil {
		return 0
	}
	return len(u.values)
}

// Values returns the uniforms in insertion order. The slice must not be
// modified.
func (u *Uniforms) Values() []Uniform {
	if u == nil {
		return nil
	}
	return u.values
}

// Version changes every time a value is set or removed.
func (u *Uniforms) Version() uint64 { return u.version }

// Pack appends the values to dst in std140-like layout: every scalar and
// vector occupies one 16-byte slot, a matrix occupies four. Integers are
// converted to float.
func (u *Uniforms) Pack(dst []float32) []float32 {
	for _, v := range u.Values() {
		switch v.Type {
		case Mat4:
			dst = append(dst, v.F[:]...)
		case Int:
			dst = append(dst, float32(v.I), 0, 0, 0)
		default:
			dst = append(dst, v.F[0], v.F[1], v.F[2], v.F[3])
		}
	}
	return dst
}
