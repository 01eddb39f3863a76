// Package matdesc converts materials to and from a human-authored
// description document, serializable as JSON or YAML. The document carries
// attribute values in editor-friendly form: angles and scalars as numbers,
// vectors and matrices as flat number lists, swizzles as channel strings and
// buffers as base64. Pointer attributes address process memory and have no
// serialized form.
package matdesc

import (
	"encoding/base64"
	"errors"
	"fmt"

	json "github.com/goccy/go-json"
	"gopkg.in/yaml.v3"

	"github.com/samcharles93/patina/pkg/material"
)

var (
	ErrUnsupportedValue = errors.New("matdesc: value not serializable")
	ErrUnknownType      = errors.New("matdesc: unknown type name")
	ErrBadValue         = errors.New("matdesc: malformed value")
)

// Document is the serialized form of one material.
type Document struct {
	Types  []string `json:"types,omitempty" yaml:"types,omitempty"`
	Layers []Layer  `json:"layers" yaml:"layers"`
}

// Layer is one layer of a document. The base material is layer 0; its Name
// is always empty. For the other layers the name is carried here instead of
// as a LayerName attribute.
type Layer struct {
	Name       string      `json:"name,omitempty" yaml:"name,omitempty"`
	Attributes []Attribute `json:"attributes" yaml:"attributes"`
}

// Attribute is one named, typed value in editor-friendly form.
type Attribute struct {
	Name  string `json:"name" yaml:"name"`
	Type  string `json:"type" yaml:"type"`
	Value any    `json:"value" yaml:"value"`
}

// DecodeJSON parses a JSON description document.
func DecodeJSON(data []byte) (*Document, error) {
	var d Document
	if err := json.Unmarshal(data, &d); err != nil {
		return nil, fmt.Errorf("matdesc: decode json: %w", err)
	}
	return &d, nil
}

// EncodeJSON serializes a description document as indented JSON.
func EncodeJSON(d *Document) ([]byte, error) {
	data, err := json.MarshalIndent(d, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("matdesc: encode json: %w", err)
	}
	return data, nil
}

// DecodeYAML parses a YAML description document.
func DecodeYAML(data []byte) (*Document, error) {
	var d Document
	if err := yaml.Unmarshal(data, &d); err != nil {
		return nil, fmt.Errorf("matdesc: decode yaml: %w", err)
	}
	return &d, nil
}

// EncodeYAML serializes a description document as YAML.
func EncodeYAML(d *Document) ([]byte, error) {
	data, err := yaml.Marshal(d)
	if err != nil {
		return nil, fmt.Errorf("matdesc: encode yaml: %w", err)
	}
	return data, nil
}

// FromMaterial converts a material to its description document. Fails on
// Pointer and MutablePointer attributes, which have no serialized form.
func FromMaterial(m *material.Material) (*Document, error) {
	d := &Document{}
	if m.Types() != 0 {
		d.Types = splitTypes(m.Types())
	}
	layerNameAttr := material.AttrLayerName.String()
	for layer := 0; layer < m.LayerCount(); layer++ {
		name := m.LayerName(layer)
		ld := Layer{Name: name}
		for i := 0; i < m.AttributeCount(layer); i++ {
			a := m.AttributeAt(layer, i)
			// The layer name moves into the Name field, except in the base
			// material where it is an ordinary attribute.
			if layer > 0 && a.Name() == layerNameAttr {
				continue
			}
			v, err := encodeAttrValue(a)
			if err != nil {
				return nil, fmt.Errorf("%w: %s in layer %d is a %v", err, a.Name(), layer, a.Type())
			}
			ld.Attributes = append(ld.Attributes, Attribute{
				Name:  a.Name(),
				Type:  a.Type().String(),
				Value: v,
			})
		}
		d.Layers = append(d.Layers, ld)
	}
	return d, nil
}

// Material converts the document back to a material.
func (d *Document) Material() (*material.Material, error) {
	var types material.MaterialTypes
	for _, name := range d.Types {
		bit, ok := material.ParseMaterialType(name)
		if !ok {
			return nil, fmt.Errorf("matdesc: unknown material type %q", name)
		}
		types |= bit
	}

	var (
		attrs   []material.Attribute
		offsets []uint32
	)
	for i, layer := range d.Layers {
		if i == 0 && layer.Name != "" {
			return nil, fmt.Errorf("matdesc: the base material can't be named (got %q)", layer.Name)
		}
		if i > 0 && layer.Name != "" {
			a, err := material.NewAttributeOf(material.AttrLayerName, layer.Name)
			if err != nil {
				return nil, fmt.Errorf("matdesc: layer %d name: %w", i, err)
			}
			attrs = append(attrs, a)
		}
		for _, desc := range layer.Attributes {
			a, err := decodeAttr(desc)
			if err != nil {
				return nil, fmt.Errorf("matdesc: layer %d attribute %q: %w", i, desc.Name, err)
			}
			attrs = append(attrs, a)
		}
		offsets = append(offsets, uint32(len(attrs)))
	}
	if len(d.Layers) <= 1 {
		offsets = nil
	}
	return material.NewLayered(types, attrs, offsets)
}

// DecodeValue converts an editor-friendly value to the Go value for the
// given attribute type, accepting the number representations the JSON and
// YAML decoders produce.
func DecodeValue(typ material.AttributeType, v any) (any, error) {
	return decodeAttrValue(typ, v)
}

func splitTypes(t material.MaterialTypes) []string {
	var out []string
	for bit := material.MaterialTypes(1); bit != 0 && bit <= t; bit <<= 1 {
		if t&bit != 0 {
			out = append(out, bit.String())
		}
	}
	return out
}

func encodeAttrValue(a material.Attribute) (any, error) {
	switch a.Type() {
	case material.TypeBool:
		return material.Get[bool](a), nil
	case material.TypeFloat:
		return float64(material.Get[float32](a)), nil
	case material.TypeDeg:
		return float64(material.Get[material.Deg](a)), nil
	case material.TypeRad:
		return float64(material.Get[material.Rad](a)), nil
	case material.TypeUnsignedInt:
		return uint64(material.Get[uint32](a)), nil
	case material.TypeInt:
		return int64(material.Get[int32](a)), nil
	case material.TypeUnsignedLong:
		return material.Get[uint64](a), nil
	case material.TypeLong:
		return material.Get[int64](a), nil
	case material.TypeVector2:
		v := material.Get[material.Vector2](a)
		return floats(v[:]), nil
	case material.TypeVector3:
		v := material.Get[material.Vector3](a)
		return floats(v[:]), nil
	case material.TypeVector4:
		v := material.Get[material.Vector4](a)
		return floats(v[:]), nil
	case material.TypeVector2ui:
		v := material.Get[material.Vector2ui](a)
		return uints(v[:]), nil
	case material.TypeVector3ui:
		v := material.Get[material.Vector3ui](a)
		return uints(v[:]), nil
	case material.TypeVector4ui:
		v := material.Get[material.Vector4ui](a)
		return uints(v[:]), nil
	case material.TypeVector2i:
		v := material.Get[material.Vector2i](a)
		return ints(v[:]), nil
	case material.TypeVector3i:
		v := material.Get[material.Vector3i](a)
		return ints(v[:]), nil
	case material.TypeVector4i:
		v := material.Get[material.Vector4i](a)
		return ints(v[:]), nil
	case material.TypeMatrix2x2:
		v := material.Get[material.Matrix2x2](a)
		return floats(v[:]), nil
	case material.TypeMatrix2x3:
		v := material.Get[material.Matrix2x3](a)
		return floats(v[:]), nil
	case material.TypeMatrix2x4:
		v := material.Get[material.Matrix2x4](a)
		return floats(v[:]), nil
	case material.TypeMatrix3x2:
		v := material.Get[material.Matrix3x2](a)
		return floats(v[:]), nil
	case material.TypeMatrix3x3:
		v := material.Get[material.Matrix3x3](a)
		return floats(v[:]), nil
	case material.TypeMatrix3x4:
		v := material.Get[material.Matrix3x4](a)
		return floats(v[:]), nil
	case material.TypeMatrix4x2:
		v := material.Get[material.Matrix4x2](a)
		return floats(v[:]), nil
	case material.TypeMatrix4x3:
		v := material.Get[material.Matrix4x3](a)
		return floats(v[:]), nil
	case material.TypeString:
		return material.Get[string](a), nil
	case material.TypeBuffer:
		return base64.StdEncoding.EncodeToString(material.Get[[]byte](a)), nil
	case material.TypeTextureSwizzle:
		return material.Get[material.TextureSwizzle](a).String(), nil
	case material.TypePointer, material.TypeMutablePointer:
		return nil, ErrUnsupportedValue
	default:
		return nil, fmt.Errorf("%w: %v", ErrUnknownType, a.Type())
	}
}

func decodeAttr(desc Attribute) (material.Attribute, error) {
	typ, ok := material.ParseAttributeType(desc.Type)
	if !ok {
		return material.Attribute{}, fmt.Errorf("%w: %q", ErrUnknownType, desc.Type)
	}
	value, err := decodeAttrValue(typ, desc.Value)
	if err != nil {
		return material.Attribute{}, err
	}
	return material.NewAttribute(desc.Name, value)
}

func decodeAttrValue(typ material.AttributeType, v any) (any, error) {
	switch typ {
	case material.TypeBool:
		b, ok := v.(bool)
		if !ok {
			return nil, fmt.Errorf("%w: expected bool, got %T", ErrBadValue, v)
		}
		return b, nil
	case material.TypeFloat:
		f, err := toFloat(v)
		return float32(f), err
	case material.TypeDeg:
		f, err := toFloat(v)
		return material.Deg(f), err
	case material.TypeRad:
		f, err := toFloat(v)
		return material.Rad(f), err
	case material.TypeUnsignedInt:
		u, err := toUint(v)
		return uint32(u), err
	case material.TypeInt:
		i, err := toInt(v)
		return int32(i), err
	case material.TypeUnsignedLong:
		return toUint(v)
	case material.TypeLong:
		return toInt(v)
	case material.TypeVector2:
		fs, err := toFloat32s(v, 2)
		return material.Vector2(fs), err
	case material.TypeVector3:
		fs, err := toFloat32s(v, 3)
		return material.Vector3(fs), err
	case material.TypeVector4:
		fs, err := toFloat32s(v, 4)
		return material.Vector4(fs), err
	case material.TypeVector2ui:
		us, err := toUint32s(v, 2)
		return material.Vector2ui(us), err
	case material.TypeVector3ui:
		us, err := toUint32s(v, 3)
		return material.Vector3ui(us), err
	case material.TypeVector4ui:
		us, err := toUint32s(v, 4)
		return material.Vector4ui(us), err
	case material.TypeVector2i:
		is, err := toInt32s(v, 2)
		return material.Vector2i(is), err
	case material.TypeVector3i:
		is, err := toInt32s(v, 3)
		return material.Vector3i(is), err
	case material.TypeVector4i:
		is, err := toInt32s(v, 4)
		return material.Vector4i(is), err
	case material.TypeMatrix2x2:
		fs, err := toFloat32s(v, 4)
		return material.Matrix2x2(fs), err
	case material.TypeMatrix2x3:
		fs, err := toFloat32s(v, 6)
		return material.Matrix2x3(fs), err
	case material.TypeMatrix2x4:
		fs, err := toFloat32s(v, 8)
		return material.Matrix2x4(fs), err
	case material.TypeMatrix3x2:
		fs, err := toFloat32s(v, 6)
		return material.Matrix3x2(fs), err
	case material.TypeMatrix3x3:
		fs, err := toFloat32s(v, 9)
		return material.Matrix3x3(fs), err
	case material.TypeMatrix3x4:
		fs, err := toFloat32s(v, 12)
		return material.Matrix3x4(fs), err
	case material.TypeMatrix4x2:
		fs, err := toFloat32s(v, 8)
		return material.Matrix4x2(fs), err
	case material.TypeMatrix4x3:
		fs, err := toFloat32s(v, 12)
		return material.Matrix4x3(fs), err
	case material.TypeString:
		s, ok := v.(string)
		if !ok {
			return nil, fmt.Errorf("%w: expected string, got %T", ErrBadValue, v)
		}
		return s, nil
	case material.TypeBuffer:
		s, ok := v.(string)
		if !ok {
			return nil, fmt.Errorf("%w: expected base64 string, got %T", ErrBadValue, v)
		}
		raw, err := base64.StdEncoding.DecodeString(s)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrBadValue, err)
		}
		return raw, nil
	case material.TypeTextureSwizzle:
		s, ok := v.(string)
		if !ok {
			return nil, fmt.Errorf("%w: expected channel string, got %T", ErrBadValue, v)
		}
		sw, ok := material.ParseTextureSwizzle(s)
		if !ok {
			return nil, fmt.Errorf("%w: invalid swizzle %q", ErrBadValue, s)
		}
		return sw, nil
	case material.TypePointer, material.TypeMutablePointer:
		return nil, ErrUnsupportedValue
	default:
		return nil, fmt.Errorf("%w: %v", ErrUnknownType, typ)
	}
}

func floats(vals []float32) []float64 {
	out := make([]float64, len(vals))
	for i, v := range vals {
		out[i] = float64(v)
	}
	return out
}

func uints(vals []uint32) []uint64 {
	out := make([]uint64, len(vals))
	for i, v := range vals {
		out[i] = uint64(v)
	}
	return out
}

func ints(vals []int32) []int64 {
	out := make([]int64, len(vals))
	for i, v := range vals {
		out[i] = int64(v)
	}
	return out
}

// toFloat accepts the number representations the JSON and YAML decoders
// produce for an untyped field.
func toFloat(v any) (float64, error) {
	switch x := v.(type) {
	case float64:
		return x, nil
	case float32:
		return float64(x), nil
	case int:
		return float64(x), nil
	case int64:
		return float64(x), nil
	case uint64:
		return float64(x), nil
	default:
		return 0, fmt.Errorf("%w: expected number, got %T", ErrBadValue, v)
	}
}

func toUint(v any) (uint64, error) {
	switch x := v.(type) {
	case uint64:
		return x, nil
	case int:
		if x < 0 {
			return 0, fmt.Errorf("%w: expected unsigned number, got %d", ErrBadValue, x)
		}
		return uint64(x), nil
	case int64:
		if x < 0 {
			return 0, fmt.Errorf("%w: expected unsigned number, got %d", ErrBadValue, x)
		}
		return uint64(x), nil
	case float64:
		if x < 0 || x != float64(uint64(x)) {
			return 0, fmt.Errorf("%w: expected unsigned integer, got %v", ErrBadValue, x)
		}
		return uint64(x), nil
	default:
		return 0, fmt.Errorf("%w: expected number, got %T", ErrBadValue, v)
	}
}

func toInt(v any) (int64, error) {
	switch x := v.(type) {
	case int:
		return int64(x), nil
	case int64:
		return x, nil
	case uint64:
		return int64(x), nil
	case float64:
		if x != float64(int64(x)) {
			return 0, fmt.Errorf("%w: expected integer, got %v", ErrBadValue, x)
		}
		return int64(x), nil
	default:
		return 0, fmt.Errorf("%w: expected number, got %T", ErrBadValue, v)
	}
}

func toFloat32s(v any, n int) ([]float32, error) {
	list, ok := v.([]any)
	if !ok {
		return make([]float32, n), fmt.Errorf("%w: expected list of %d numbers, got %T", ErrBadValue, n, v)
	}
	if len(list) != n {
		return make([]float32, n), fmt.Errorf("%w: expected %d components, got %d", ErrBadValue, n, len(list))
	}
	out := make([]float32, n)
	for i, item := range list {
		f, err := toFloat(item)
		if err != nil {
			return make([]float32, n), err
		}
		out[i] = float32(f)
	}
	return out, nil
}

func toUint32s(v any, n int) ([]uint32, error) {
	list, ok := v.([]any)
	if !ok {
		return make([]uint32, n), fmt.Errorf("%w: expected list of %d numbers, got %T", ErrBadValue, n, v)
	}
	if len(list) != n {
		return make([]uint32, n), fmt.Errorf("%w: expected %d components, got %d", ErrBadValue, n, len(list))
	}
	out := make([]uint32, n)
	for i, item := range list {
		u, err := toUint(item)
		if err != nil {
			return make([]uint32, n), err
		}
		out[i] = uint32(u)
	}
	return out, nil
}

func toInt32s(v any, n int) ([]int32, error) {
	list, ok := v.([]any)
	if !ok {
		return make([]int32, n), fmt.Errorf("%w: expected list of %d numbers, got %T", ErrBadValue, n, v)
	}
	if len(list) != n {
		return make([]int32, n), fmt.Errorf("%w: expected %d components, got %d", ErrBadValue, n, len(list))
	}
	out := make([]int32, n)
	for i, item := range list {
		x, err := toInt(item)
		if err != nil {
			return make([]int32, n), err
		}
		out[i] = int32(x)
	}
	return out, nil
}
