package material

import "fmt"

// LayerFactor returns how strongly the given layer's effect is applied.
// Defaults to 1 when the layer doesn't specify a factor.
func (m *Material) LayerFactor(layer int) float32 {
	m.checkLayer(layer)
	return AttributeValueOr[float32](m, layer, AttrLayerFactor.String(), 1)
}

// HasLayerFactorTexture reports whether the layer references a texture
// providing a per-pixel factor.
func (m *Material) HasLayerFactorTexture(layer int) bool {
	m.checkLayer(layer)
	return m.HasAttribute(layer, AttrLayerFactorTexture.String())
}

func (m *Material) requireFactorTexture(layer int) {
	m.checkLayer(layer)
	if !m.HasAttribute(layer, AttrLayerFactorTexture.String()) {
		panic(fmt.Sprintf("material: layer %d doesn't have a factor texture", layer))
	}
}

// LayerFactorTexture returns the ID of the texture providing the layer's
// per-pixel factor, panicking when the layer has none. Use
// HasLayerFactorTexture to tell "texture absent, nothing to transform" apart
// from "texture present, using default transform".
func (m *Material) LayerFactorTexture(layer int) uint32 {
	m.requireFactorTexture(layer)
	return AttributeValue[uint32](m, layer, AttrLayerFactorTexture.String())
}

// LayerFactorTextureSwizzle returns which channel of the factor texture
// supplies the factor. Defaults to R. Panics when the layer has no factor
// texture.
func (m *Material) LayerFactorTextureSwizzle(layer int) TextureSwizzle {
	m.requireFactorTexture(layer)
	return AttributeValueOr[TextureSwizzle](m, layer, AttrLayerFactorTextureSwizzle.String(), SwizzleR)
}

// LayerFactorTextureMatrix returns the effective coordinate transform for
// the layer's factor texture, resolved through the precedence chain: a
// layer-local LayerFactorTextureMatrix wins over a layer-local
// TextureMatrix, which wins over the base material's TextureMatrix, which
// wins over the identity. Panics when the layer has no factor texture.
func (m *Material) LayerFactorTextureMatrix(layer int) Matrix3x3 {
	m.requireFactorTexture(layer)
	if v, ok := FindAttributeValue[Matrix3x3](m, layer, AttrLayerFactorTextureMatrix.String()); ok {
		return v
	}
	if v, ok := FindAttributeValue[Matrix3x3](m, layer, AttrTextureMatrix.String()); ok {
		return v
	}
	if v, ok := FindAttributeValue[Matrix3x3](m, 0, AttrTextureMatrix.String()); ok {
		return v
	}
	return IdentityMatrix3x3()
}

// LayerFactorTextureCoordinates returns the effective texture coordinate
// set for the layer's factor texture, resolved through the same precedence
// chain as LayerFactorTextureMatrix. Defaults to set 0. Panics when the
// layer has no factor texture.
func (m *Material) LayerFactorTextureCoordinates(layer int) uint32 {
	m.requireFactorTexture(layer)
	if v, ok := FindAttributeValue[uint32](m, layer, AttrLayerFactorTextureCoordinates.String()); ok {
		return v
	}
	if v, ok := FindAttributeValue[uint32](m, layer, AttrTextureCoordinates.String()); ok {
		return v
	}
	if v, ok := FindAttributeValue[uint32](m, 0, AttrTextureCoordinates.String()); ok {
		return v
	}
	return 0
}

// LayerFactorTextureLayer returns the effective texture array layer for the
// layer's factor texture, resolved through the same precedence chain as
// LayerFactorTextureMatrix. Defaults to array layer 0. Panics when the
// layer has no factor texture.
func (m *Material) LayerFactorTextureLayer(layer int) uint32 {
	m.requireFactorTexture(layer)
	if v, ok := FindAttributeValue[uint32](m, layer, AttrLayerFactorTextureLayer.String()); ok {
		return v
	}
	if v, ok := FindAttributeValue[uint32](m, layer, AttrTextureLayer.String()); ok {
		return v
	}
	if v, ok := FindAttributeValue[uint32](m, 0, AttrTextureLayer.String()); ok {
		return v
	}
	return 0
}

// Layer is a thin view of one layer of a Material: a material reference and
// a fixed layer index, forwarding the layer-scoped operations.
type Layer struct {
	m     *Material
	index int
}

// Base returns a view of layer 0, the base material.
func (m *Material) Base() Layer {
	return Layer{m: m, index: 0}
}

// Layer returns a view of the given layer, panicking on an out-of-range
// index.
func (m *Material) Layer(layer int) Layer {
	m.checkLayer(layer)
	return Layer{m: m, index: layer}
}

// LayerByName returns a view of the first layer with the given name.
func (m *Material) LayerByName(name string) (Layer, bool) {
	id, ok := m.FindLayerID(name)
	if !ok {
		return Layer{}, false
	}
	return Layer{m: m, index: id}, true
}

// Material returns the underlying material.
func (l Layer) Material() *Material { return l.m }

// Index returns the layer index within the material.
func (l Layer) Index() int { return l.index }

// Name returns the layer name, empty for layer 0 and unnamed layers.
func (l Layer) Name() string { return l.m.LayerName(l.index) }

// AttributeCount returns the number of attributes in this layer.
func (l Layer) AttributeCount() int { return l.m.AttributeCount(l.index) }

// HasAttribute reports whether this layer contains the named attribute.
func (l Layer) HasAttribute(name string) bool { return l.m.HasAttribute(l.index, name) }

// FindAttributeID resolves an attribute name to its index within this layer.
func (l Layer) FindAttributeID(name string) (int, bool) { return l.m.FindAttributeID(l.index, name) }

// AttributeID resolves an attribute name to its index within this layer,
// panicking when absent.
func (l Layer) AttributeID(name string) int { return l.m.AttributeID(l.index, name) }

// AttributeName returns the name of the attribute at the given index.
func (l Layer) AttributeName(id int) string { return l.m.AttributeName(l.index, id) }

// Attribute returns a copy of the named record, panicking when absent.
func (l Layer) Attribute(name string) Attribute { return l.m.Attribute(l.index, name) }

// AttributeAt returns a copy of the record at the given index.
func (l Layer) AttributeAt(id int) Attribute { return l.m.AttributeAt(l.index, id) }

// FindAttribute returns a copy of the named record.
func (l Layer) FindAttribute(name string) (Attribute, bool) { return l.m.FindAttribute(l.index, name) }

// Factor returns how strongly this layer's effect is applied.
func (l Layer) Factor() float32 { return l.m.LayerFactor(l.index) }

// HasFactorTexture reports whether this layer has a per-pixel factor
// texture.
func (l Layer) HasFactorTexture() bool { return l.m.HasLayerFactorTexture(l.index) }

// FactorTexture returns the factor texture ID, panicking when absent.
func (l Layer) FactorTexture() uint32 { return l.m.LayerFactorTexture(l.index) }

// FactorTextureSwizzle returns the factor texture channel selection.
func (l Layer) FactorTextureSwizzle() TextureSwizzle { return l.m.LayerFactorTextureSwizzle(l.index) }

// FactorTextureMatrix returns the effective factor texture transform.
func (l Layer) FactorTextureMatrix() Matrix3x3 { return l.m.LayerFactorTextureMatrix(l.index) }

// FactorTextureCoordinates returns the effective factor texture coordinate
// set.
func (l Layer) FactorTextureCoordinates() uint32 { return l.m.LayerFactorTextureCoordinates(l.index) }

// FactorTextureLayer returns the effective factor texture array layer.
func (l Layer) FactorTextureLayer() uint32 { return l.m.LayerFactorTextureLayer(l.index) }
