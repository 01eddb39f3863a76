package material

import "fmt"

// Deg is an angle in degrees.
type Deg float32

// Rad is an angle in radians.
type Rad float32

// Float vector types, one float32 per component.
type (
	Vector2 [2]float32
	Vector3 [3]float32
	Vector4 [4]float32
)

// Unsigned integer vector types.
type (
	Vector2ui [2]uint32
	Vector3ui [3]uint32
	Vector4ui [4]uint32
)

// Signed integer vector types.
type (
	Vector2i [2]int32
	Vector3i [3]int32
	Vector4i [4]int32
)

// Float matrix types, stored flat in column-major order. MatrixCxR has C
// columns and R rows. A full 4x4 matrix is intentionally not representable:
// its 64-byte payload alone would fill a whole attribute record, leaving no
// room for the type tag or the name.
type (
	Matrix2x2 [4]float32
	Matrix2x3 [6]float32
	Matrix2x4 [8]float32
	Matrix3x2 [6]float32
	Matrix3x3 [9]float32
	Matrix3x4 [12]float32
	Matrix4x2 [8]float32
	Matrix4x3 [12]float32
)

// IdentityMatrix3x3 returns the 3x3 identity matrix, the default texture
// transform.
func IdentityMatrix3x3() Matrix3x3 {
	return Matrix3x3{1, 0, 0, 0, 1, 0, 0, 0, 1}
}

// Pointer is an opaque address-sized handle to caller-owned immutable data.
// The store preserves the value bit-for-bit and never dereferences it; what
// the address points to, and keeping it alive, is entirely the caller's
// business.
type Pointer uintptr

// MutablePointer is an opaque address-sized handle to caller-owned mutable
// data. It is a distinct attribute type from Pointer and the two are not
// interchangeable on retrieval.
type MutablePointer uintptr

// TextureSwizzle describes which channels of a texture, in what order,
// supply a value. The constants pack the channel letters into the low bytes
// so the numeric value reads as the channel string.
type TextureSwizzle uint32

const (
	SwizzleR TextureSwizzle = 'R'
	SwizzleG TextureSwizzle = 'G'
	SwizzleB TextureSwizzle = 'B'
	SwizzleA TextureSwizzle = 'A'

	SwizzleRG TextureSwizzle = 'R' | 'G'<<8
	SwizzleGB TextureSwizzle = 'G' | 'B'<<8
	SwizzleBA TextureSwizzle = 'B' | 'A'<<8
	SwizzleRA TextureSwizzle = 'R' | 'A'<<8
	SwizzleGA TextureSwizzle = 'G' | 'A'<<8

	SwizzleRGB TextureSwizzle = 'R' | 'G'<<8 | 'B'<<16
	SwizzleGBA TextureSwizzle = 'G' | 'B'<<8 | 'A'<<16

	SwizzleRGBA TextureSwizzle = 'R' | 'G'<<8 | 'B'<<16 | 'A'<<24
)

func (s TextureSwizzle) String() string {
	buf := make([]byte, 0, 4)
	for v := uint32(s); v != 0; v >>= 8 {
		buf = append(buf, byte(v))
	}
	if len(buf) == 0 {
		return fmt.Sprintf("TextureSwizzle(0x%x)", uint32(s))
	}
	for _, c := range buf {
		switch c {
		case 'R', 'G', 'B', 'A':
		default:
			return fmt.Sprintf("TextureSwizzle(0x%x)", uint32(s))
		}
	}
	return string(buf)
}

// ParseTextureSwizzle converts a channel string such as "RG" back to the
// packed representation.
func ParseTextureSwizzle(s string) (TextureSwizzle, bool) {
	if len(s) == 0 || len(s) > 4 {
		return 0, false
	}
	var v uint32
	for i := len(s) - 1; i >= 0; i-- {
		switch s[i] {
		case 'R', 'G', 'B', 'A':
			v = v<<8 | uint32(s[i])
		default:
			return 0, false
		}
	}
	return TextureSwizzle(v), true
}
