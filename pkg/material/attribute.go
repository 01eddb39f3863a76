package material

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"math"
)

// RecordSize is the fixed encoded size of one attribute record: the 1-byte
// type tag, the null-terminated name and the value payload together never
// exceed it.
const RecordSize = 64

// Attribute is one fixed-size named, typed value. The zero value is the
// "unset" sentinel and is rejected by Material construction.
//
// Record layout, native little-endian:
//
//	byte 0        type tag
//	bytes 1..N    name, null-terminated
//	tail          value payload, right-aligned to byte 63
//
// String values store [bytes][NUL][1-byte length] at the tail; Buffer values
// store the 1-byte length right after the name's null terminator and the
// bytes right-aligned at the tail.
type Attribute struct {
	data [RecordSize]byte
}

// NewAttribute constructs an attribute, inferring the type tag from the
// dynamic type of value. A string value produces a String attribute, a
// []byte value a Buffer attribute.
func NewAttribute(name string, value any) (Attribute, error) {
	switch v := value.(type) {
	case string:
		return newStringAttribute(name, v)
	case []byte:
		return newBufferAttribute(name, v)
	default:
		typ, payload, ok := encodeValue(value)
		if !ok {
			return Attribute{}, fmt.Errorf("material: %w: %T", ErrUnsupportedType, value)
		}
		return newAttribute(name, typ, payload)
	}
}

// NewAttributeOf constructs an attribute under a builtin name, validating
// that the value's type matches the type documented for that name.
func NewAttributeOf(attr Attr, value any) (Attribute, error) {
	if !attr.valid() {
		return Attribute{}, fmt.Errorf("material: invalid attribute name %v", attr)
	}
	want := attr.AttributeType()
	var got AttributeType
	switch value.(type) {
	case string:
		got = TypeString
	case []byte:
		got = TypeBuffer
	default:
		var ok bool
		got, ok = attributeTypeFor(value)
		if !ok {
			return Attribute{}, fmt.Errorf("material: %w: %T", ErrUnsupportedType, value)
		}
	}
	if got != want {
		return Attribute{}, fmt.Errorf("material: %w: expected %v for %v but got %v", ErrTypeMismatch, want, attr, got)
	}
	return NewAttribute(attr.String(), value)
}

// NewAttributeRaw constructs an attribute from a type tag and raw payload
// bytes. The payload is checked for size only; its interpretation is the
// caller's responsibility. For String the payload is taken as the string
// bytes, for Buffer as the buffer content.
func NewAttributeRaw(name string, typ AttributeType, payload []byte) (Attribute, error) {
	switch typ {
	case TypeString:
		return newStringAttribute(name, string(payload))
	case TypeBuffer:
		return newBufferAttribute(name, payload)
	}
	size, err := typ.Size()
	if err != nil {
		return Attribute{}, fmt.Errorf("material: %w", err)
	}
	if len(payload) != size {
		return Attribute{}, fmt.Errorf("material: %w: expected %d bytes for %v but got %d", ErrInvalidSize, size, typ, len(payload))
	}
	return newAttribute(name, typ, payload)
}

func newAttribute(name string, typ AttributeType, payload []byte) (Attribute, error) {
	if name == "" {
		return Attribute{}, fmt.Errorf("material: %w", ErrEmptyName)
	}
	// The 2 extra bytes are the type tag and the name's null terminator.
	if len(name)+len(payload)+2 > RecordSize {
		return Attribute{}, fmt.Errorf("material: %w: name %q, expected at most %d bytes for %v but got %d",
			ErrTooLong, name, RecordSize-len(payload)-2, typ, len(name))
	}
	var a Attribute
	a.data[0] = byte(typ)
	copy(a.data[1:], name)
	copy(a.data[RecordSize-len(payload):], payload)
	return a, nil
}

func newStringAttribute(name, value string) (Attribute, error) {
	if name == "" {
		return Attribute{}, fmt.Errorf("material: %w", ErrEmptyName)
	}
	// The 4 extra bytes are the type tag, two null terminators and the
	// length byte at the tail.
	if len(name)+len(value)+4 > RecordSize {
		return Attribute{}, fmt.Errorf("material: %w: name %q and value %q, expected at most %d bytes in total but got %d",
			ErrTooLong, name, value, RecordSize-4, len(name)+len(value))
	}
	var a Attribute
	a.data[0] = byte(TypeString)
	copy(a.data[1:], name)
	copy(a.data[RecordSize-2-len(value):], value)
	a.data[RecordSize-1] = byte(len(value))
	return a, nil
}

func newBufferAttribute(name string, value []byte) (Attribute, error) {
	if name == "" {
		return Attribute{}, fmt.Errorf("material: %w", ErrEmptyName)
	}
	// The 3 extra bytes are the type tag, the name's null terminator and the
	// length byte. The buffer itself has no terminator.
	if len(name)+len(value)+3 > RecordSize {
		return Attribute{}, fmt.Errorf("material: %w: name %q and %d-byte value, expected at most %d bytes in total but got %d",
			ErrTooLong, name, len(value), RecordSize-3, len(name)+len(value))
	}
	var a Attribute
	a.data[0] = byte(TypeBuffer)
	copy(a.data[1:], name)
	a.data[2+len(name)] = byte(len(value))
	copy(a.data[RecordSize-len(value):], value)
	return a, nil
}

// Name returns the attribute name. Empty only for the zero record.
func (a *Attribute) Name() string {
	end := bytes.IndexByte(a.data[1:], 0)
	return string(a.data[1 : 1+end])
}

// Type returns the attribute's type tag.
func (a *Attribute) Type() AttributeType {
	return AttributeType(a.data[0])
}

func (a *Attribute) isEmpty() bool {
	return a.data[0] == 0
}

// Raw returns a copy of the encoded 64-byte record.
func (a *Attribute) Raw() [RecordSize]byte {
	return a.data
}

// payload returns the value byte region for fixed-size types.
func (a *Attribute) payload() []byte {
	size, err := a.Type().Size()
	if err != nil {
		panic(fmt.Sprintf("material: %v", err))
	}
	return a.data[RecordSize-size:]
}

func (a *Attribute) stringPayload() []byte {
	n := int(a.data[RecordSize-1])
	return a.data[RecordSize-2-n : RecordSize-2]
}

func (a *Attribute) bufferPayload() []byte {
	nameLen := bytes.IndexByte(a.data[1:], 0)
	n := int(a.data[2+nameLen])
	return a.data[RecordSize-n:]
}

// Value returns the attribute value type-erased. String and Buffer payloads
// are truncated at the first embedded null byte; use Get for exact-length
// retrieval. Returns nil for the zero record.
func (a *Attribute) Value() any {
	switch a.Type() {
	case AttributeType(0):
		return nil
	case TypeString:
		s := a.stringPayload()
		if i := bytes.IndexByte(s, 0); i >= 0 {
			s = s[:i]
		}
		return string(s)
	case TypeBuffer:
		b := a.bufferPayload()
		if i := bytes.IndexByte(b, 0); i >= 0 {
			b = b[:i]
		}
		return append([]byte(nil), b...)
	default:
		return decodeValue(a.Type(), a.payload())
	}
}

// typed returns the exact value, preserving embedded nulls in String and
// Buffer payloads.
func (a *Attribute) typed() any {
	switch a.Type() {
	case TypeString:
		return string(a.stringPayload())
	case TypeBuffer:
		return append([]byte(nil), a.bufferPayload()...)
	default:
		return decodeValue(a.Type(), a.payload())
	}
}

// SetValue overwrites the attribute value in place. The new value must carry
// the same type tag and, for String and Buffer, the same encoded length;
// the record layout never changes.
func (a *Attribute) SetValue(value any) error {
	switch v := value.(type) {
	case string:
		if a.Type() != TypeString {
			return fmt.Errorf("material: %w: expected %v but got String", ErrTypeMismatch, a.Type())
		}
		if len(v) != len(a.stringPayload()) {
			return fmt.Errorf("material: %w: can't change String size from %d to %d", ErrInvalidSize, len(a.stringPayload()), len(v))
		}
		copy(a.stringPayload(), v)
		return nil
	case []byte:
		if a.Type() != TypeBuffer {
			return fmt.Errorf("material: %w: expected %v but got Buffer", ErrTypeMismatch, a.Type())
		}
		if len(v) != len(a.bufferPayload()) {
			return fmt.Errorf("material: %w: can't change Buffer size from %d to %d", ErrInvalidSize, len(a.bufferPayload()), len(v))
		}
		copy(a.bufferPayload(), v)
		return nil
	default:
		typ, payload, ok := encodeValue(value)
		if !ok {
			return fmt.Errorf("material: %w: %T", ErrUnsupportedType, value)
		}
		if typ != a.Type() {
			return fmt.Errorf("material: %w: expected %v but got %v", ErrTypeMismatch, a.Type(), typ)
		}
		copy(a.payload(), payload)
		return nil
	}
}

// Typed is the closed set of Go types an attribute value can have. Pointer
// and MutablePointer are opaque handles: their tags are distinguished on
// retrieval but what they address is never checked.
type Typed interface {
	bool | float32 | Deg | Rad | uint32 | int32 | uint64 | int64 |
		Vector2 | Vector2ui | Vector2i |
		Vector3 | Vector3ui | Vector3i |
		Vector4 | Vector4ui | Vector4i |
		Matrix2x2 | Matrix2x3 | Matrix2x4 |
		Matrix3x2 | Matrix3x3 | Matrix3x4 |
		Matrix4x2 | Matrix4x3 |
		Pointer | MutablePointer |
		string | []byte | TextureSwizzle
}

// Get retrieves the attribute value as T. It panics when the attribute's tag
// doesn't correspond to T. String and Buffer values come back with their
// exact stored length, embedded nulls included.
func Get[T Typed](a Attribute) T {
	want := typeTagOf[T]()
	if a.Type() != want {
		panic(fmt.Sprintf("material: improper type %v requested for %s of %v", want, a.Name(), a.Type()))
	}
	return a.typed().(T)
}

func typeTagOf[T Typed]() AttributeType {
	var zero T
	switch any(zero).(type) {
	case string:
		return TypeString
	case []byte:
		return TypeBuffer
	default:
		t, ok := attributeTypeFor(any(zero))
		if !ok {
			panic(fmt.Sprintf("material: %v: %T", ErrUnsupportedType, zero))
		}
		return t
	}
}

// attributeTypeFor maps a fixed-size Go value to its type tag.
func attributeTypeFor(v any) (AttributeType, bool) {
	switch v.(type) {
	case bool:
		return TypeBool, true
	case float32:
		return TypeFloat, true
	case Deg:
		return TypeDeg, true
	case Rad:
		return TypeRad, true
	case uint32:
		return TypeUnsignedInt, true
	case int32:
		return TypeInt, true
	case uint64:
		return TypeUnsignedLong, true
	case int64:
		return TypeLong, true
	case Vector2:
		return TypeVector2, true
	case Vector2ui:
		return TypeVector2ui, true
	case Vector2i:
		return TypeVector2i, true
	case Vector3:
		return TypeVector3, true
	case Vector3ui:
		return TypeVector3ui, true
	case Vector3i:
		return TypeVector3i, true
	case Vector4:
		return TypeVector4, true
	case Vector4ui:
		return TypeVector4ui, true
	case Vector4i:
		return TypeVector4i, true
	case Matrix2x2:
		return TypeMatrix2x2, true
	case Matrix2x3:
		return TypeMatrix2x3, true
	case Matrix2x4:
		return TypeMatrix2x4, true
	case Matrix3x2:
		return TypeMatrix3x2, true
	case Matrix3x3:
		return TypeMatrix3x3, true
	case Matrix3x4:
		return TypeMatrix3x4, true
	case Matrix4x2:
		return TypeMatrix4x2, true
	case Matrix4x3:
		return TypeMatrix4x3, true
	case Pointer:
		return TypePointer, true
	case MutablePointer:
		return TypeMutablePointer, true
	case TextureSwizzle:
		return TypeTextureSwizzle, true
	default:
		return 0, false
	}
}

func encodeValue(v any) (AttributeType, []byte, bool) {
	switch x := v.(type) {
	case bool:
		b := []byte{0}
		if x {
			b[0] = 1
		}
		return TypeBool, b, true
	case float32:
		return TypeFloat, f32bytes(x), true
	case Deg:
		return TypeDeg, f32bytes(float32(x)), true
	case Rad:
		return TypeRad, f32bytes(float32(x)), true
	case uint32:
		return TypeUnsignedInt, u32bytes(x), true
	case int32:
		return TypeInt, u32bytes(uint32(x)), true
	case uint64:
		return TypeUnsignedLong, u64bytes(x), true
	case int64:
		return TypeLong, u64bytes(uint64(x)), true
	case Vector2:
		return TypeVector2, f32bytes(x[:]...), true
	case Vector2ui:
		return TypeVector2ui, u32bytes(x[:]...), true
	case Vector2i:
		return TypeVector2i, i32bytes(x[:]...), true
	case Vector3:
		return TypeVector3, f32bytes(x[:]...), true
	case Vector3ui:
		return TypeVector3ui, u32bytes(x[:]...), true
	case Vector3i:
		return TypeVector3i, i32bytes(x[:]...), true
	case Vector4:
		return TypeVector4, f32bytes(x[:]...), true
	case Vector4ui:
		return TypeVector4ui, u32bytes(x[:]...), true
	case Vector4i:
		return TypeVector4i, i32bytes(x[:]...), true
	case Matrix2x2:
		return TypeMatrix2x2, f32bytes(x[:]...), true
	case Matrix2x3:
		return TypeMatrix2x3, f32bytes(x[:]...), true
	case Matrix2x4:
		return TypeMatrix2x4, f32bytes(x[:]...), true
	case Matrix3x2:
		return TypeMatrix3x2, f32bytes(x[:]...), true
	case Matrix3x3:
		return TypeMatrix3x3, f32bytes(x[:]...), true
	case Matrix3x4:
		return TypeMatrix3x4, f32bytes(x[:]...), true
	case Matrix4x2:
		return TypeMatrix4x2, f32bytes(x[:]...), true
	case Matrix4x3:
		return TypeMatrix4x3, f32bytes(x[:]...), true
	case Pointer:
		return TypePointer, u64bytes(uint64(x)), true
	case MutablePointer:
		return TypeMutablePointer, u64bytes(uint64(x)), true
	case TextureSwizzle:
		return TypeTextureSwizzle, u32bytes(uint32(x)), true
	default:
		return 0, nil, false
	}
}

func decodeValue(t AttributeType, b []byte) any {
	switch t {
	case TypeBool:
		return b[0] != 0
	case TypeFloat:
		return f32at(b, 0)
	case TypeDeg:
		return Deg(f32at(b, 0))
	case TypeRad:
		return Rad(f32at(b, 0))
	case TypeUnsignedInt:
		return binary.LittleEndian.Uint32(b)
	case TypeInt:
		return int32(binary.LittleEndian.Uint32(b))
	case TypeUnsignedLong:
		return binary.LittleEndian.Uint64(b)
	case TypeLong:
		return int64(binary.LittleEndian.Uint64(b))
	case TypeVector2:
		return Vector2(f32array(b, 2))
	case TypeVector2ui:
		return Vector2ui(u32array(b, 2))
	case TypeVector2i:
		return Vector2i(i32array(b, 2))
	case TypeVector3:
		return Vector3(f32array(b, 3))
	case TypeVector3ui:
		return Vector3ui(u32array(b, 3))
	case TypeVector3i:
		return Vector3i(i32array(b, 3))
	case TypeVector4:
		return Vector4(f32array(b, 4))
	case TypeVector4ui:
		return Vector4ui(u32array(b, 4))
	case TypeVector4i:
		return Vector4i(i32array(b, 4))
	case TypeMatrix2x2:
		return Matrix2x2(f32array(b, 4))
	case TypeMatrix2x3:
		return Matrix2x3(f32array(b, 6))
	case TypeMatrix2x4:
		return Matrix2x4(f32array(b, 8))
	case TypeMatrix3x2:
		return Matrix3x2(f32array(b, 6))
	case TypeMatrix3x3:
		return Matrix3x3(f32array(b, 9))
	case TypeMatrix3x4:
		return Matrix3x4(f32array(b, 12))
	case TypeMatrix4x2:
		return Matrix4x2(f32array(b, 8))
	case TypeMatrix4x3:
		return Matrix4x3(f32array(b, 12))
	case TypePointer:
		return Pointer(binary.LittleEndian.Uint64(b))
	case TypeMutablePointer:
		return MutablePointer(binary.LittleEndian.Uint64(b))
	case TypeTextureSwizzle:
		return TextureSwizzle(binary.LittleEndian.Uint32(b))
	default:
		panic(fmt.Sprintf("material: %v: %v", ErrUnsupportedType, t))
	}
}

func f32bytes(vals ...float32) []byte {
	out := make([]byte, 4*len(vals))
	for i, v := range vals {
		binary.LittleEndian.PutUint32(out[4*i:], math.Float32bits(v))
	}
	return out
}

func u32bytes(vals ...uint32) []byte {
	out := make([]byte, 4*len(vals))
	for i, v := range vals {
		binary.LittleEndian.PutUint32(out[4*i:], v)
	}
	return out
}

func i32bytes(vals ...int32) []byte {
	out := make([]byte, 4*len(vals))
	for i, v := range vals {
		binary.LittleEndian.PutUint32(out[4*i:], uint32(v))
	}
	return out
}

func u64bytes(v uint64) []byte {
	out := make([]byte, 8)
	binary.LittleEndian.PutUint64(out, v)
	return out
}

func f32at(b []byte, i int) float32 {
	return math.Float32frombits(binary.LittleEndian.Uint32(b[4*i:]))
}

func f32array(b []byte, n int) []float32 {
	out := make([]float32, n)
	for i := range out {
		out[i] = f32at(b, i)
	}
	return out
}

func u32array(b []byte, n int) []uint32 {
	out := make([]uint32, n)
	for i := range out {
		out[i] = binary.LittleEndian.Uint32(b[4*i:])
	}
	return out
}

func i32array(b []byte, n int) []int32 {
	out := make([]int32, n)
	for i := range out {
		out[i] = int32(binary.LittleEndian.Uint32(b[4*i:]))
	}
	return out
}
