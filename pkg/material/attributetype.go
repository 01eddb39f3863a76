package material

import "fmt"

// AttributeType is the 1-byte discriminant identifying an attribute's value
// type. The zero value is reserved for the "unset" record sentinel.
type AttributeType uint8

const (
	// TypeBool is a boolean, 1 byte.
	TypeBool AttributeType = iota + 1
	// TypeFloat is a 32-bit float.
	TypeFloat
	// TypeDeg is an angle in degrees, stored as a 32-bit float.
	TypeDeg
	// TypeRad is an angle in radians, stored as a 32-bit float.
	TypeRad
	// TypeUnsignedInt is a 32-bit unsigned integer.
	TypeUnsignedInt
	// TypeInt is a 32-bit signed integer.
	TypeInt
	// TypeUnsignedLong is a 64-bit unsigned integer.
	TypeUnsignedLong
	// TypeLong is a 64-bit signed integer.
	TypeLong

	TypeVector2
	TypeVector2ui
	TypeVector2i
	TypeVector3
	TypeVector3ui
	TypeVector3i
	TypeVector4
	TypeVector4ui
	TypeVector4i

	TypeMatrix2x2
	TypeMatrix2x3
	TypeMatrix2x4
	TypeMatrix3x2
	TypeMatrix3x3
	TypeMatrix3x4
	TypeMatrix4x2
	TypeMatrix4x3

	// TypePointer is an opaque address-sized handle to immutable data.
	TypePointer
	// TypeMutablePointer is an opaque address-sized handle to mutable data.
	TypeMutablePointer

	// TypeString is an inline null-terminated string. Its payload size is
	// data-dependent, not type-dependent.
	TypeString
	// TypeBuffer is an inline opaque byte buffer. Its payload size is
	// data-dependent, not type-dependent.
	TypeBuffer

	// TypeTextureSwizzle is a packed texture channel descriptor, 4 bytes.
	TypeTextureSwizzle
)

func (t AttributeType) String() string {
	switch t {
	case TypeBool:
		return "Bool"
	case TypeFloat:
		return "Float"
	case TypeDeg:
		return "Deg"
	case TypeRad:
		return "Rad"
	case TypeUnsignedInt:
		return "UnsignedInt"
	case TypeInt:
		return "Int"
	case TypeUnsignedLong:
		return "UnsignedLong"
	case TypeLong:
		return "Long"
	case TypeVector2:
		return "Vector2"
	case TypeVector2ui:
		return "Vector2ui"
	case TypeVector2i:
		return "Vector2i"
	case TypeVector3:
		return "Vector3"
	case TypeVector3ui:
		return "Vector3ui"
	case TypeVector3i:
		return "Vector3i"
	case TypeVector4:
		return "Vector4"
	case TypeVector4ui:
		return "Vector4ui"
	case TypeVector4i:
		return "Vector4i"
	case TypeMatrix2x2:
		return "Matrix2x2"
	case TypeMatrix2x3:
		return "Matrix2x3"
	case TypeMatrix2x4:
		return "Matrix2x4"
	case TypeMatrix3x2:
		return "Matrix3x2"
	case TypeMatrix3x3:
		return "Matrix3x3"
	case TypeMatrix3x4:
		return "Matrix3x4"
	case TypeMatrix4x2:
		return "Matrix4x2"
	case TypeMatrix4x3:
		return "Matrix4x3"
	case TypePointer:
		return "Pointer"
	case TypeMutablePointer:
		return "MutablePointer"
	case TypeString:
		return "String"
	case TypeBuffer:
		return "Buffer"
	case TypeTextureSwizzle:
		return "TextureSwizzle"
	default:
		return fmt.Sprintf("AttributeType(%d)", uint8(t))
	}
}

// Size returns the payload byte footprint of a fixed-size type. It fails for
// String and Buffer, whose size is a property of the data, and for tags
// outside the closed set.
func (t AttributeType) Size() (int, error) {
	switch t {
	case TypeBool:
		return 1, nil
	case TypeFloat, TypeDeg, TypeRad, TypeUnsignedInt, TypeInt, TypeTextureSwizzle:
		return 4, nil
	case TypeUnsignedLong, TypeLong, TypePointer, TypeMutablePointer:
		return 8, nil
	case TypeVector2, TypeVector2ui, TypeVector2i:
		return 8, nil
	case TypeVector3, TypeVector3ui, TypeVector3i:
		return 12, nil
	case TypeVector4, TypeVector4ui, TypeVector4i, TypeMatrix2x2:
		return 16, nil
	case TypeMatrix2x3, TypeMatrix3x2:
		return 24, nil
	case TypeMatrix2x4, TypeMatrix4x2:
		return 32, nil
	case TypeMatrix3x3:
		return 36, nil
	case TypeMatrix3x4, TypeMatrix4x3:
		return 48, nil
	case TypeString, TypeBuffer:
		return 0, fmt.Errorf("%w: %v size is data-dependent", ErrUnsupportedType, t)
	default:
		return 0, fmt.Errorf("%w: %v", ErrUnsupportedType, t)
	}
}

// ParseAttributeType converts a tag name as produced by String back to the
// tag. Used by the description codec and inspection tooling.
func ParseAttributeType(s string) (AttributeType, bool) {
	for t := TypeBool; t <= TypeTextureSwizzle; t++ {
		if t.String() == s {
			return t, true
		}
	}
	return 0, false
}
