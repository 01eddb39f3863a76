package material

import (
	"fmt"
	"slices"
	"strings"
)

// DataFlags describes ownership and mutability of one backing array. The
// attribute array and the layer offset array carry independent flags since a
// caller might own one but not the other.
type DataFlags uint8

const (
	// DataOwned means the Material owns the backing array. Implied by the
	// owning constructors and rejected by NewBorrowed.
	DataOwned DataFlags = 1 << iota
	// DataMutable permits in-place overwrite of attribute values. Without it
	// every mutable accessor panics.
	DataMutable
)

func (f DataFlags) String() string {
	if f == 0 {
		return "none"
	}
	var parts []string
	if f&DataOwned != 0 {
		parts = append(parts, "Owned")
	}
	if f&DataMutable != 0 {
		parts = append(parts, "Mutable")
	}
	if rest := f &^ (DataOwned | DataMutable); rest != 0 {
		parts = append(parts, fmt.Sprintf("DataFlags(0x%x)", uint8(rest)))
	}
	return strings.Join(parts, "|")
}

// MaterialTypes is an advisory set of material type bits. It is purely
// informational and never validated against the actual attributes present.
type MaterialTypes uint32

const (
	MaterialFlat MaterialTypes = 1 << iota
	MaterialPhong
	MaterialPbrMetallicRoughness
	MaterialPbrSpecularGlossiness
	MaterialPbrClearCoat
)

func (t MaterialTypes) String() string {
	if t == 0 {
		return "none"
	}
	var parts []string
	for _, it := range []struct {
		bit  MaterialTypes
		name string
	}{
		{MaterialFlat, "Flat"},
		{MaterialPhong, "Phong"},
		{MaterialPbrMetallicRoughness, "PbrMetallicRoughness"},
		{MaterialPbrSpecularGlossiness, "PbrSpecularGlossiness"},
		{MaterialPbrClearCoat, "PbrClearCoat"},
	} {
		if t&it.bit != 0 {
			parts = append(parts, it.name)
			t &^= it.bit
		}
	}
	if t != 0 {
		parts = append(parts, fmt.Sprintf("MaterialTypes(0x%x)", uint32(t)))
	}
	return strings.Join(parts, "|")
}

// ParseMaterialType resolves a single type name as produced by String.
func ParseMaterialType(s string) (MaterialTypes, bool) {
	switch s {
	case "Flat":
		return MaterialFlat, true
	case "Phong":
		return MaterialPhong, true
	case "PbrMetallicRoughness":
		return MaterialPbrMetallicRoughness, true
	case "PbrSpecularGlossiness":
		return MaterialPbrSpecularGlossiness, true
	case "PbrClearCoat":
		return MaterialPbrClearCoat, true
	default:
		return 0, false
	}
}

// Material is the attribute store: a flat array of records partitioned into
// layers by an array of end offsets, each partition sorted by attribute name.
// The set of attributes, their names, types and the layer boundaries are
// immutable after construction; values may be overwritten in place when the
// attribute array is mutable.
type Material struct {
	types          MaterialTypes
	attributes     []Attribute
	layerOffsets   []uint32
	attributeFlags DataFlags
	layerFlags     DataFlags
	importerState  any
}

// New constructs a single-layer material, taking ownership of the attribute
// slice. Attributes may arrive in any order; they are sorted by name and
// validated for duplicates.
func New(types MaterialTypes, attributes []Attribute) (*Material, error) {
	return NewLayered(types, attributes, nil)
}

// NewLayered constructs a layered material, taking ownership of both slices.
// Entry i of layerOffsets is the exclusive end of layer i in the attribute
// array; an empty offsets slice means a single base layer spanning
// everything. Each layer partition is sorted independently and validated for
// duplicates.
func NewLayered(types MaterialTypes, attributes []Attribute, layerOffsets []uint32) (*Material, error) {
	m := &Material{
		types:          types,
		attributes:     attributes,
		layerOffsets:   layerOffsets,
		attributeFlags: DataOwned | DataMutable,
		layerFlags:     DataOwned | DataMutable,
	}
	if err := validateLayerOffsets(layerOffsets, len(attributes)); err != nil {
		return nil, err
	}
	// Checked before sorting so the reported index matches the input order.
	for i := range attributes {
		if attributes[i].isEmpty() {
			return nil, fmt.Errorf("material: %w: attribute %d doesn't specify anything", ErrEmptyAttribute, i)
		}
	}
	for layer := 0; layer < m.LayerCount(); layer++ {
		part := m.attributes[m.layerBegin(layer):m.layerEnd(layer)]
		slices.SortStableFunc(part, func(a, b Attribute) int {
			return strings.Compare(a.Name(), b.Name())
		})
		for i := 1; i < len(part); i++ {
			if part[i-1].Name() == part[i].Name() {
				return nil, fmt.Errorf("material: %w: %s in layer %d", ErrDuplicate, part[i].Name(), layer)
			}
		}
	}
	return m, nil
}

// NewBorrowed constructs a material over caller-owned storage. The Material
// holds non-owning views and must not outlive them; that contract is the
// caller's to keep. Attributes must already be sorted by name within each
// layer — sortedness and duplicates are always validated, but nothing is
// reordered. Neither flags value may contain DataOwned.
func NewBorrowed(attributeFlags DataFlags, attributes []Attribute, layerFlags DataFlags, layerOffsets []uint32, types MaterialTypes) (*Material, error) {
	if attributeFlags&DataOwned != 0 || layerFlags&DataOwned != 0 {
		return nil, fmt.Errorf("material: %w", ErrOwnedFlag)
	}
	m := &Material{
		types:          types,
		attributes:     attributes,
		layerOffsets:   layerOffsets,
		attributeFlags: attributeFlags,
		layerFlags:     layerFlags,
	}
	if err := validateLayerOffsets(layerOffsets, len(attributes)); err != nil {
		return nil, err
	}
	for i := range attributes {
		if attributes[i].isEmpty() {
			return nil, fmt.Errorf("material: %w: attribute %d doesn't specify anything", ErrEmptyAttribute, i)
		}
	}
	for layer := 0; layer < m.LayerCount(); layer++ {
		part := m.attributes[m.layerBegin(layer):m.layerEnd(layer)]
		for i := 1; i < len(part); i++ {
			switch strings.Compare(part[i-1].Name(), part[i].Name()) {
			case 0:
				return nil, fmt.Errorf("material: %w: %s in layer %d", ErrDuplicate, part[i].Name(), layer)
			case 1:
				return nil, fmt.Errorf("material: %w: %s has to be sorted before %s in layer %d",
					ErrUnsorted, part[i].Name(), part[i-1].Name(), layer)
			}
		}
	}
	return m, nil
}

func validateLayerOffsets(offsets []uint32, total int) error {
	var prev uint32
	for i, off := range offsets {
		if off < prev {
			return fmt.Errorf("material: %w: offset %d for layer %d can't be less than %d",
				ErrInvalidOffsets, off, i, prev)
		}
		if int(off) > total {
			return fmt.Errorf("material: %w: offset %d for layer %d out of range for %d attributes",
				ErrInvalidOffsets, off, i, total)
		}
		prev = off
	}
	if len(offsets) != 0 && int(offsets[len(offsets)-1]) != total {
		return fmt.Errorf("material: %w: last offset %d doesn't cover all %d attributes",
			ErrInvalidOffsets, offsets[len(offsets)-1], total)
	}
	return nil
}

// Types returns the advisory material type bits.
func (m *Material) Types() MaterialTypes { return m.types }

// AttributeDataFlags returns ownership/mutability of the attribute array.
func (m *Material) AttributeDataFlags() DataFlags { return m.attributeFlags }

// LayerDataFlags returns ownership/mutability of the layer offset array.
func (m *Material) LayerDataFlags() DataFlags { return m.layerFlags }

// ImporterState returns the opaque importer-provided value, if any.
func (m *Material) ImporterState() any { return m.importerState }

// SetImporterState attaches an opaque importer-provided value. The state is
// purely informational; the store never looks at it.
func (m *Material) SetImporterState(state any) { m.importerState = state }

// LayerCount returns the number of layers. Always at least 1: layer 0 is the
// base material.
func (m *Material) LayerCount() int {
	if len(m.layerOffsets) == 0 {
		return 1
	}
	return len(m.layerOffsets)
}

func (m *Material) layerBegin(layer int) int {
	if layer == 0 {
		return 0
	}
	return int(m.layerOffsets[layer-1])
}

func (m *Material) layerEnd(layer int) int {
	if len(m.layerOffsets) == 0 {
		return len(m.attributes)
	}
	return int(m.layerOffsets[layer])
}

func (m *Material) checkLayer(layer int) {
	if layer < 0 || layer >= m.LayerCount() {
		panic(fmt.Sprintf("material: index %d out of range for %d layers", layer, m.LayerCount()))
	}
}

// AttributeDataOffset returns the offset at which the given layer starts in
// the flat attribute array. The layer index may be equal to LayerCount, in
// which case the total attribute count is returned.
func (m *Material) AttributeDataOffset(layer int) int {
	if layer < 0 || layer > m.LayerCount() {
		panic(fmt.Sprintf("material: index %d out of range for %d layers", layer, m.LayerCount()))
	}
	if layer == m.LayerCount() {
		return len(m.attributes)
	}
	return m.layerBegin(layer)
}

// AttributeCount returns the number of attributes in the given layer.
func (m *Material) AttributeCount(layer int) int {
	m.checkLayer(layer)
	return m.layerEnd(layer) - m.layerBegin(layer)
}

// TotalAttributeCount returns the number of attributes across all layers.
func (m *Material) TotalAttributeCount() int { return len(m.attributes) }

// LayerName returns the name of the given layer, or an empty string when the
// layer is unnamed. Layer 0 is always unnamed: a LayerName attribute in the
// base material is ignored so it can't masquerade as a named layer.
func (m *Material) LayerName(layer int) string {
	m.checkLayer(layer)
	if layer == 0 {
		return ""
	}
	v, _ := FindAttributeValue[string](m, layer, AttrLayerName.String())
	return v
}

// FindLayerID resolves a layer name to its index. Layers are scanned in
// order starting at 1; layer order is caller-significant and preserved, so
// the first match wins.
func (m *Material) FindLayerID(name string) (int, bool) {
	for layer := 1; layer < m.LayerCount(); layer++ {
		if m.LayerName(layer) == name {
			return layer, true
		}
	}
	return 0, false
}

// HasLayer reports whether a layer with the given name exists.
func (m *Material) HasLayer(name string) bool {
	_, ok := m.FindLayerID(name)
	return ok
}

// LayerID resolves a layer name to its index, panicking when absent.
func (m *Material) LayerID(name string) int {
	id, ok := m.FindLayerID(name)
	if !ok {
		panic(fmt.Sprintf("material: layer %s not found", name))
	}
	return id
}

// findAttribute resolves a name within a layer partition by binary search.
// Returns the index relative to the layer, or -1.
func (m *Material) findAttribute(layer int, name string) int {
	part := m.attributes[m.layerBegin(layer):m.layerEnd(layer)]
	id, ok := slices.BinarySearchFunc(part, name, func(a Attribute, n string) int {
		return strings.Compare(a.Name(), n)
	})
	if !ok {
		return -1
	}
	return id
}

// HasAttribute reports whether the layer contains an attribute of the given
// name.
func (m *Material) HasAttribute(layer int, name string) bool {
	m.checkLayer(layer)
	return m.findAttribute(layer, name) != -1
}

// FindAttributeID resolves an attribute name to its index within the layer.
func (m *Material) FindAttributeID(layer int, name string) (int, bool) {
	m.checkLayer(layer)
	id := m.findAttribute(layer, name)
	if id == -1 {
		return 0, false
	}
	return id, true
}

// AttributeID resolves an attribute name to its index within the layer,
// panicking when absent.
func (m *Material) AttributeID(layer int, name string) int {
	m.checkLayer(layer)
	id := m.findAttribute(layer, name)
	if id == -1 {
		panic(fmt.Sprintf("material: attribute %s not found in layer %d", name, layer))
	}
	return id
}

func (m *Material) checkAttributeIndex(layer, id int) {
	if id < 0 || id >= m.AttributeCount(layer) {
		panic(fmt.Sprintf("material: index %d out of range for %d attributes in layer %d",
			id, m.AttributeCount(layer), layer))
	}
}

// AttributeName returns the name of the attribute at the given index within
// the layer.
func (m *Material) AttributeName(layer, id int) string {
	m.checkAttributeIndex(layer, id)
	return m.attributes[m.layerBegin(layer)+id].Name()
}

// AttributeTypeAt returns the type tag of the attribute at the given index
// within the layer.
func (m *Material) AttributeTypeAt(layer, id int) AttributeType {
	m.checkAttributeIndex(layer, id)
	return m.attributes[m.layerBegin(layer)+id].Type()
}

// AttributeTypeOf returns the type tag of the named attribute, panicking
// when absent.
func (m *Material) AttributeTypeOf(layer int, name string) AttributeType {
	m.checkLayer(layer)
	id := m.findAttribute(layer, name)
	if id == -1 {
		panic(fmt.Sprintf("material: attribute %s not found in layer %d", name, layer))
	}
	return m.attributes[m.layerBegin(layer)+id].Type()
}

// AttributeAt returns a copy of the record at the given index within the
// layer.
func (m *Material) AttributeAt(layer, id int) Attribute {
	m.checkAttributeIndex(layer, id)
	return m.attributes[m.layerBegin(layer)+id]
}

// Attribute returns a copy of the named record, panicking when absent.
func (m *Material) Attribute(layer int, name string) Attribute {
	m.checkLayer(layer)
	id := m.findAttribute(layer, name)
	if id == -1 {
		panic(fmt.Sprintf("material: attribute %s not found in layer %d", name, layer))
	}
	return m.attributes[m.layerBegin(layer)+id]
}

// FindAttribute returns a copy of the named record.
func (m *Material) FindAttribute(layer int, name string) (Attribute, bool) {
	m.checkLayer(layer)
	id := m.findAttribute(layer, name)
	if id == -1 {
		return Attribute{}, false
	}
	return m.attributes[m.layerBegin(layer)+id], true
}

func (m *Material) checkMutable() {
	if m.attributeFlags&DataMutable == 0 {
		panic("material: attribute data not mutable")
	}
}

// MutableAttributeAt returns the record at the given index within the layer
// for in-place value overwrite. Panics when the attribute array is not
// mutable.
func (m *Material) MutableAttributeAt(layer, id int) *Attribute {
	m.checkMutable()
	m.checkAttributeIndex(layer, id)
	return &m.attributes[m.layerBegin(layer)+id]
}

// MutableAttribute returns the named record for in-place value overwrite.
// Panics when absent or when the attribute array is not mutable.
func (m *Material) MutableAttribute(layer int, name string) *Attribute {
	m.checkMutable()
	m.checkLayer(layer)
	id := m.findAttribute(layer, name)
	if id == -1 {
		panic(fmt.Sprintf("material: attribute %s not found in layer %d", name, layer))
	}
	return &m.attributes[m.layerBegin(layer)+id]
}

// ReleaseAttributeData hands the attribute array to the caller. This is a
// terminal operation: any further layer or attribute query on the Material
// is undefined. Decoupled from ReleaseLayerOffsetData so one array can be
// detached without the other.
func (m *Material) ReleaseAttributeData() []Attribute {
	data := m.attributes
	m.attributes = nil
	return data
}

// ReleaseLayerOffsetData hands the layer offset array to the caller. Same
// terminal contract as ReleaseAttributeData.
func (m *Material) ReleaseLayerOffsetData() []uint32 {
	data := m.layerOffsets
	m.layerOffsets = nil
	return data
}

// AttributeValue retrieves the named attribute's value as T, panicking on a
// missing attribute or a tag mismatch.
func AttributeValue[T Typed](m *Material, layer int, name string) T {
	return Get[T](m.Attribute(layer, name))
}

// FindAttributeValue retrieves the named attribute's value as T. A missing
// attribute reports false; a present attribute with a mismatched tag still
// panics, since that is a programmer error rather than missing data.
func FindAttributeValue[T Typed](m *Material, layer int, name string) (T, bool) {
	a, ok := m.FindAttribute(layer, name)
	if !ok {
		var zero T
		return zero, false
	}
	return Get[T](a), true
}

// AttributeValueOr retrieves the named attribute's value as T, substituting
// def when the attribute is absent. A tag mismatch panics and is never
// silently defaulted.
func AttributeValueOr[T Typed](m *Material, layer int, name string, def T) T {
	v, ok := FindAttributeValue[T](m, layer, name)
	if !ok {
		return def
	}
	return v
}

// SetAttributeValue overwrites the named attribute's value in place. Panics
// when the attribute array is not mutable, the attribute is absent, the tag
// doesn't match T, or a String/Buffer payload would change length.
func SetAttributeValue[T Typed](m *Material, layer int, name string, value T) {
	a := m.MutableAttribute(layer, name)
	if want := typeTagOf[T](); a.Type() != want {
		panic(fmt.Sprintf("material: improper type %v requested for %s of %v", want, a.Name(), a.Type()))
	}
	if err := a.SetValue(any(value)); err != nil {
		panic(err.Error())
	}
}
