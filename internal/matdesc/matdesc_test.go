package matdesc

import (
	"errors"
	"strings"
	"testing"

	"github.com/samcharles93/patina/pkg/material"
)

func mustAttr(t *testing.T, name string, value any) material.Attribute {
	t.Helper()
	a, err := material.NewAttribute(name, value)
	if err != nil {
		t.Fatalf("attribute %q: %v", name, err)
	}
	return a
}

func clearCoatMaterial(t *testing.T) *material.Material {
	t.Helper()
	m, err := material.NewLayered(
		material.MaterialPbrMetallicRoughness|material.MaterialPbrClearCoat,
		[]material.Attribute{
			mustAttr(t, "AlphaBlend", true),
			mustAttr(t, "BaseColor", material.Vector4{0.2, 0.4, 0.6, 1.0}),
			mustAttr(t, "BaseColorTextureSwizzle", material.SwizzleRGB),
			mustAttr(t, "TextureMatrix", material.Matrix3x3{2, 0, 0, 0, 2, 0, 0, 0, 1}),
			mustAttr(t, "LayerName", "ClearCoat"),
			mustAttr(t, "LayerFactor", float32(0.35)),
			mustAttr(t, "Roughness", float32(0.125)),
		},
		[]uint32{4, 7},
	)
	if err != nil {
		t.Fatalf("layered material: %v", err)
	}
	return m
}

func assertRoundTrip(t *testing.T, in, out *material.Material) {
	t.Helper()
	if out.Types() != in.Types() {
		t.Fatalf("types: got %v want %v", out.Types(), in.Types())
	}
	if out.LayerCount() != in.LayerCount() {
		t.Fatalf("layer count: got %d want %d", out.LayerCount(), in.LayerCount())
	}
	for layer := 0; layer < in.LayerCount(); layer++ {
		if out.LayerName(layer) != in.LayerName(layer) {
			t.Fatalf("layer %d name: got %q want %q", layer, out.LayerName(layer), in.LayerName(layer))
		}
		if out.AttributeCount(layer) != in.AttributeCount(layer) {
			t.Fatalf("layer %d count: got %d want %d", layer, out.AttributeCount(layer), in.AttributeCount(layer))
		}
		for i := 0; i < in.AttributeCount(layer); i++ {
			want := in.AttributeAt(layer, i)
			got := out.AttributeAt(layer, i)
			if got.Raw() != want.Raw() {
				t.Fatalf("layer %d attribute %s: records differ", layer, want.Name())
			}
		}
	}
}

func TestJSONRoundTrip(t *testing.T) {
	t.Parallel()

	in := clearCoatMaterial(t)
	doc, err := FromMaterial(in)
	if err != nil {
		t.Fatalf("to document: %v", err)
	}
	data, err := EncodeJSON(doc)
	if err != nil {
		t.Fatalf("encode: %v", err)
	}
	if !strings.Contains(string(data), `"name": "ClearCoat"`) {
		t.Fatalf("layer name not serialized as a field: %s", data)
	}
	if strings.Contains(string(data), "LayerName") {
		t.Fatalf("LayerName attribute leaked into the document: %s", data)
	}

	back, err := DecodeJSON(data)
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	out, err := back.Material()
	if err != nil {
		t.Fatalf("to material: %v", err)
	}
	assertRoundTrip(t, in, out)
}

func TestYAMLRoundTrip(t *testing.T) {
	t.Parallel()

	in := clearCoatMaterial(t)
	doc, err := FromMaterial(in)
	if err != nil {
		t.Fatalf("to document: %v", err)
	}
	data, err := EncodeYAML(doc)
	if err != nil {
		t.Fatalf("encode: %v", err)
	}
	back, err := DecodeYAML(data)
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	out, err := back.Material()
	if err != nil {
		t.Fatalf("to material: %v", err)
	}
	assertRoundTrip(t, in, out)
}

func TestBufferAndIntegerAttributes(t *testing.T) {
	t.Parallel()

	in, err := material.New(0, []material.Attribute{
		mustAttr(t, "Blob", []byte{0x01, 0x00, 0xfe}),
		mustAttr(t, "Count", uint32(7)),
		mustAttr(t, "Offset", int32(-3)),
		mustAttr(t, "Steps", material.Vector2i{-1, 2}),
	})
	if err != nil {
		t.Fatalf("material: %v", err)
	}
	doc, err := FromMaterial(in)
	if err != nil {
		t.Fatalf("to document: %v", err)
	}
	data, err := EncodeJSON(doc)
	if err != nil {
		t.Fatalf("encode: %v", err)
	}
	back, err := DecodeJSON(data)
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	out, err := back.Material()
	if err != nil {
		t.Fatalf("to material: %v", err)
	}
	assertRoundTrip(t, in, out)
	// An embedded zero byte survives the base64 detour.
	if got := material.AttributeValue[[]byte](out, 0, "Blob"); len(got) != 3 || got[1] != 0 {
		t.Fatalf("buffer payload: %v", got)
	}
}

func TestPointerAttributesNotSerializable(t *testing.T) {
	t.Parallel()

	m, err := material.New(0, []material.Attribute{
		mustAttr(t, "Handle", material.Pointer(0xdead)),
	})
	if err != nil {
		t.Fatalf("material: %v", err)
	}
	if _, err := FromMaterial(m); !errors.Is(err, ErrUnsupportedValue) {
		t.Fatalf("expected ErrUnsupportedValue, got %v", err)
	}
}

func TestDecodeErrors(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name string
		doc  string
		want string
	}{
		{
			name: "unknown type",
			doc:  `{"layers":[{"attributes":[{"name":"A","type":"Matrix4x4","value":[]}]}]}`,
			want: "unknown type name",
		},
		{
			name: "wrong component count",
			doc:  `{"layers":[{"attributes":[{"name":"A","type":"Vector3","value":[1,2]}]}]}`,
			want: "expected 3 components",
		},
		{
			name: "bad swizzle",
			doc:  `{"layers":[{"attributes":[{"name":"A","type":"TextureSwizzle","value":"RX"}]}]}`,
			want: "invalid swizzle",
		},
		{
			name: "bad base64",
			doc:  `{"layers":[{"attributes":[{"name":"A","type":"Buffer","value":"!!"}]}]}`,
			want: "malformed value",
		},
		{
			name: "named base layer",
			doc:  `{"layers":[{"name":"Oops","attributes":[]}]}`,
			want: "base material can't be named",
		},
		{
			name: "duplicate in layer",
			doc:  `{"layers":[{"attributes":[{"name":"A","type":"Float","value":1},{"name":"A","type":"Float","value":2}]}]}`,
			want: "duplicate attribute",
		},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			doc, err := DecodeJSON([]byte(tc.doc))
			if err != nil {
				t.Fatalf("decode: %v", err)
			}
			_, err = doc.Material()
			if err == nil || !strings.Contains(err.Error(), tc.want) {
				t.Fatalf("expected error containing %q, got %v", tc.want, err)
			}
		})
	}
}

func TestSingleLayerHasNoOffsets(t *testing.T) {
	t.Parallel()

	doc := &Document{Layers: []Layer{{
		Attributes: []Attribute{{Name: "Roughness", Type: "Float", Value: 0.5}},
	}}}
	m, err := doc.Material()
	if err != nil {
		t.Fatalf("to material: %v", err)
	}
	if m.LayerCount() != 1 {
		t.Fatalf("layer count: %d", m.LayerCount())
	}
	if got := m.ReleaseLayerOffsetData(); got != nil {
		t.Fatalf("single-layer document must produce no offset array, got %v", got)
	}
}
