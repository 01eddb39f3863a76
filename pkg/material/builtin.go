package material

import "fmt"

// Attr names a well-known material attribute. The zero value is invalid.
// Every Attr has a canonical string name and a documented attribute type,
// both driven by a single static table that the name→enum and enum→name
// directions share.
type Attr uint16

const (
	// AttrLayerName is the name of a material layer. Only meaningful for
	// layer index 1 and above; a LayerName attribute stored in the base
	// material is ignored by layer-name lookups.
	AttrLayerName Attr = iota + 1

	AttrAlphaMask
	AttrAlphaBlend
	AttrDoubleSided

	AttrAmbientColor
	AttrAmbientTexture
	AttrAmbientTextureMatrix
	AttrAmbientTextureCoordinates
	AttrAmbientTextureLayer

	AttrDiffuseColor
	AttrDiffuseTexture
	AttrDiffuseTextureMatrix
	AttrDiffuseTextureCoordinates
	AttrDiffuseTextureLayer

	AttrSpecularColor
	AttrSpecularTexture
	AttrSpecularTextureSwizzle
	AttrSpecularTextureMatrix
	AttrSpecularTextureCoordinates
	AttrSpecularTextureLayer

	AttrShininess

	AttrBaseColor
	AttrBaseColorTexture
	AttrBaseColorTextureMatrix
	AttrBaseColorTextureCoordinates
	AttrBaseColorTextureLayer

	AttrMetalness
	AttrMetalnessTexture
	AttrMetalnessTextureSwizzle
	AttrMetalnessTextureMatrix
	AttrMetalnessTextureCoordinates
	AttrMetalnessTextureLayer

	AttrRoughness
	AttrRoughnessTexture
	AttrRoughnessTextureSwizzle
	AttrRoughnessTextureMatrix
	AttrRoughnessTextureCoordinates
	AttrRoughnessTextureLayer

	AttrNoneRoughnessMetallicTexture

	AttrNormalTexture
	AttrNormalTextureScale
	AttrNormalTextureSwizzle
	AttrNormalTextureMatrix
	AttrNormalTextureCoordinates
	AttrNormalTextureLayer

	AttrOcclusionTexture
	AttrOcclusionTextureStrength
	AttrOcclusionTextureSwizzle
	AttrOcclusionTextureMatrix
	AttrOcclusionTextureCoordinates
	AttrOcclusionTextureLayer

	AttrEmissiveColor
	AttrEmissiveTexture
	AttrEmissiveTextureMatrix
	AttrEmissiveTextureCoordinates
	AttrEmissiveTextureLayer

	// AttrTextureMatrix, AttrTextureCoordinates and AttrTextureLayer apply
	// uniformly to all textures referenced by the layer they appear in, and
	// from the base material act as a global fallback.
	AttrTextureMatrix
	AttrTextureCoordinates
	AttrTextureLayer

	AttrLayerFactor
	AttrLayerFactorTexture
	AttrLayerFactorTextureSwizzle
	AttrLayerFactorTextureMatrix
	AttrLayerFactorTextureCoordinates
	AttrLayerFactorTextureLayer
)

type attrInfo struct {
	name string
	typ  AttributeType
}

// attrTable is indexed by Attr-1. Its order must match the constant block
// above.
var attrTable = [...]attrInfo{
	{"LayerName", TypeString},

	{"AlphaMask", TypeFloat},
	{"AlphaBlend", TypeBool},
	{"DoubleSided", TypeBool},

	{"AmbientColor", TypeVector4},
	{"AmbientTexture", TypeUnsignedInt},
	{"AmbientTextureMatrix", TypeMatrix3x3},
	{"AmbientTextureCoordinates", TypeUnsignedInt},
	{"AmbientTextureLayer", TypeUnsignedInt},

	{"DiffuseColor", TypeVector4},
	{"DiffuseTexture", TypeUnsignedInt},
	{"DiffuseTextureMatrix", TypeMatrix3x3},
	{"DiffuseTextureCoordinates", TypeUnsignedInt},
	{"DiffuseTextureLayer", TypeUnsignedInt},

	{"SpecularColor", TypeVector4},
	{"SpecularTexture", TypeUnsignedInt},
	{"SpecularTextureSwizzle", TypeTextureSwizzle},
	{"SpecularTextureMatrix", TypeMatrix3x3},
	{"SpecularTextureCoordinates", TypeUnsignedInt},
	{"SpecularTextureLayer", TypeUnsignedInt},

	{"Shininess", TypeFloat},

	{"BaseColor", TypeVector4},
	{"BaseColorTexture", TypeUnsignedInt},
	{"BaseColorTextureMatrix", TypeMatrix3x3},
	{"BaseColorTextureCoordinates", TypeUnsignedInt},
	{"BaseColorTextureLayer", TypeUnsignedInt},

	{"Metalness", TypeFloat},
	{"MetalnessTexture", TypeUnsignedInt},
	{"MetalnessTextureSwizzle", TypeTextureSwizzle},
	{"MetalnessTextureMatrix", TypeMatrix3x3},
	{"MetalnessTextureCoordinates", TypeUnsignedInt},
	{"MetalnessTextureLayer", TypeUnsignedInt},

	{"Roughness", TypeFloat},
	{"RoughnessTexture", TypeUnsignedInt},
	{"RoughnessTextureSwizzle", TypeTextureSwizzle},
	{"RoughnessTextureMatrix", TypeMatrix3x3},
	{"RoughnessTextureCoordinates", TypeUnsignedInt},
	{"RoughnessTextureLayer", TypeUnsignedInt},

	{"NoneRoughnessMetallicTexture", TypeUnsignedInt},

	{"NormalTexture", TypeUnsignedInt},
	{"NormalTextureScale", TypeFloat},
	{"NormalTextureSwizzle", TypeTextureSwizzle},
	{"NormalTextureMatrix", TypeMatrix3x3},
	{"NormalTextureCoordinates", TypeUnsignedInt},
	{"NormalTextureLayer", TypeUnsignedInt},

	{"OcclusionTexture", TypeUnsignedInt},
	{"OcclusionTextureStrength", TypeFloat},
	{"OcclusionTextureSwizzle", TypeTextureSwizzle},
	{"OcclusionTextureMatrix", TypeMatrix3x3},
	{"OcclusionTextureCoordinates", TypeUnsignedInt},
	{"OcclusionTextureLayer", TypeUnsignedInt},

	{"EmissiveColor", TypeVector3},
	{"EmissiveTexture", TypeUnsignedInt},
	{"EmissiveTextureMatrix", TypeMatrix3x3},
	{"EmissiveTextureCoordinates", TypeUnsignedInt},
	{"EmissiveTextureLayer", TypeUnsignedInt},

	{"TextureMatrix", TypeMatrix3x3},
	{"TextureCoordinates", TypeUnsignedInt},
	{"TextureLayer", TypeUnsignedInt},

	{"LayerFactor", TypeFloat},
	{"LayerFactorTexture", TypeUnsignedInt},
	{"LayerFactorTextureSwizzle", TypeTextureSwizzle},
	{"LayerFactorTextureMatrix", TypeMatrix3x3},
	{"LayerFactorTextureCoordinates", TypeUnsignedInt},
	{"LayerFactorTextureLayer", TypeUnsignedInt},
}

var attrByName = func() map[string]Attr {
	m := make(map[string]Attr, len(attrTable))
	for i, info := range attrTable {
		m[info.name] = Attr(i + 1)
	}
	return m
}()

func (a Attr) valid() bool {
	return a >= 1 && int(a) <= len(attrTable)
}

// String returns the canonical attribute name.
func (a Attr) String() string {
	if !a.valid() {
		return fmt.Sprintf("Attr(%d)", uint16(a))
	}
	return attrTable[a-1].name
}

// AttributeType returns the documented value type for the attribute. Panics
// for an invalid Attr.
func (a Attr) AttributeType() AttributeType {
	if !a.valid() {
		panic(fmt.Sprintf("material: invalid attribute name Attr(%d)", uint16(a)))
	}
	return attrTable[a-1].typ
}

// AttrFor resolves a canonical attribute name back to its Attr.
func AttrFor(name string) (Attr, bool) {
	a, ok := attrByName[name]
	return a, ok
}
