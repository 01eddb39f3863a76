package material

import (
	"errors"
	"strings"
	"testing"
)

func permutations(n int) [][]int {
	if n == 1 {
		return [][]int{{0}}
	}
	var out [][]int
	for _, sub := range permutations(n - 1) {
		for pos := 0; pos <= len(sub); pos++ {
			perm := make([]int, 0, n)
			perm = append(perm, sub[:pos]...)
			perm = append(perm, n-1)
			perm = append(perm, sub[pos:]...)
			out = append(out, perm)
		}
	}
	return out
}

func TestNewSortsAttributes(t *testing.T) {
	t.Parallel()

	m, err := New(MaterialPhong, []Attribute{
		mustAttr(t, "Shininess", float32(80)),
		mustAttr(t, "DiffuseColor", Vector4{1, 1, 1, 1}),
		mustAttr(t, "AlphaBlend", true),
	})
	if err != nil {
		t.Fatalf("new material: %v", err)
	}
	want := []string{"AlphaBlend", "DiffuseColor", "Shininess"}
	for i, name := range want {
		if got := m.AttributeName(0, i); got != name {
			t.Fatalf("attribute %d: got %q want %q", i, got, name)
		}
	}
	for _, name := range want {
		if !m.HasAttribute(0, name) {
			t.Fatalf("binary search misses %q", name)
		}
	}
	if m.HasAttribute(0, "Metalness") {
		t.Fatalf("binary search finds a name that was never inserted")
	}
	if m.Types() != MaterialPhong {
		t.Fatalf("types: %v", m.Types())
	}
}

func TestDuplicateRejectedInAnyOrder(t *testing.T) {
	t.Parallel()

	attrs := []Attribute{
		mustAttr(t, "Roughness", float32(0.1)),
		mustAttr(t, "Metalness", float32(0.9)),
		mustAttr(t, "Roughness", float32(0.2)),
	}
	for _, perm := range permutations(len(attrs)) {
		input := make([]Attribute, len(attrs))
		for i, j := range perm {
			input[i] = attrs[j]
		}
		_, err := New(0, input)
		if !errors.Is(err, ErrDuplicate) {
			t.Fatalf("permutation %v: expected ErrDuplicate, got %v", perm, err)
		}
		if !strings.Contains(err.Error(), "Roughness in layer 0") {
			t.Fatalf("error doesn't name the duplicate: %v", err)
		}
	}
}

func TestDuplicateAllowedAcrossLayers(t *testing.T) {
	t.Parallel()

	m, err := NewLayered(0, []Attribute{
		mustAttr(t, "Roughness", float32(0.5)),
		mustAttr(t, "Roughness", float32(0.1)),
	}, []uint32{1, 2})
	if err != nil {
		t.Fatalf("same name in different layers must be fine: %v", err)
	}
	if got := AttributeValue[float32](m, 0, "Roughness"); got != 0.5 {
		t.Fatalf("base roughness: %v", got)
	}
	if got := AttributeValue[float32](m, 1, "Roughness"); got != 0.1 {
		t.Fatalf("layer roughness: %v", got)
	}
}

func TestLayerOffsetValidation(t *testing.T) {
	t.Parallel()

	attrs := func() []Attribute {
		return []Attribute{
			mustAttr(t, "A", float32(1)),
			mustAttr(t, "B", float32(2)),
			mustAttr(t, "C", float32(3)),
		}
	}

	_, err := NewLayered(0, attrs(), []uint32{2, 1, 3})
	if !errors.Is(err, ErrInvalidOffsets) {
		t.Fatalf("decreasing offsets: expected ErrInvalidOffsets, got %v", err)
	}
	if !strings.Contains(err.Error(), "offset 1 for layer 1 can't be less than 2") {
		t.Fatalf("error doesn't name the offending pair: %v", err)
	}

	_, err = NewLayered(0, attrs(), []uint32{2, 7})
	if !errors.Is(err, ErrInvalidOffsets) {
		t.Fatalf("offset past the end: expected ErrInvalidOffsets, got %v", err)
	}

	_, err = NewLayered(0, attrs(), []uint32{2})
	if !errors.Is(err, ErrInvalidOffsets) {
		t.Fatalf("last offset short of the total: expected ErrInvalidOffsets, got %v", err)
	}

	if _, err := NewLayered(0, attrs(), []uint32{2, 2, 3}); err != nil {
		t.Fatalf("empty middle layer must be fine: %v", err)
	}
}

func TestEmptyAttributeRejected(t *testing.T) {
	t.Parallel()

	_, err := New(0, []Attribute{
		mustAttr(t, "A", float32(1)),
		{},
	})
	if !errors.Is(err, ErrEmptyAttribute) {
		t.Fatalf("expected ErrEmptyAttribute, got %v", err)
	}
	if !strings.Contains(err.Error(), "attribute 1 doesn't specify anything") {
		t.Fatalf("error doesn't report the input index: %v", err)
	}
}

func TestBorrowedValidation(t *testing.T) {
	t.Parallel()

	sorted := []Attribute{
		mustAttr(t, "AlphaBlend", true),
		mustAttr(t, "BaseColor", Vector4{1, 1, 1, 1}),
	}
	if _, err := NewBorrowed(0, sorted, 0, nil, 0); err != nil {
		t.Fatalf("sorted borrowed data: %v", err)
	}

	unsorted := []Attribute{sorted[1], sorted[0]}
	_, err := NewBorrowed(0, unsorted, 0, nil, 0)
	if !errors.Is(err, ErrUnsorted) {
		t.Fatalf("expected ErrUnsorted, got %v", err)
	}
	if !strings.Contains(err.Error(), "AlphaBlend has to be sorted before BaseColor") {
		t.Fatalf("error doesn't name the violating pair: %v", err)
	}

	dup := []Attribute{sorted[0], sorted[0]}
	if _, err := NewBorrowed(0, dup, 0, nil, 0); !errors.Is(err, ErrDuplicate) {
		t.Fatalf("expected ErrDuplicate, got %v", err)
	}

	if _, err := NewBorrowed(DataOwned, sorted, 0, nil, 0); !errors.Is(err, ErrOwnedFlag) {
		t.Fatalf("expected ErrOwnedFlag for attribute flags, got %v", err)
	}
	if _, err := NewBorrowed(0, sorted, DataOwned|DataMutable, nil, 0); !errors.Is(err, ErrOwnedFlag) {
		t.Fatalf("expected ErrOwnedFlag for layer flags, got %v", err)
	}
}

func TestMutabilityGating(t *testing.T) {
	t.Parallel()

	attrs := []Attribute{mustAttr(t, "Roughness", float32(0.5))}
	m, err := NewBorrowed(0, attrs, 0, nil, 0)
	if err != nil {
		t.Fatalf("borrowed material: %v", err)
	}
	// Read access works on immutable data,
	if got := AttributeValue[float32](m, 0, "Roughness"); got != 0.5 {
		t.Fatalf("read on immutable data: %v", got)
	}
	// mutation doesn't.
	expectPanic(t, "attribute data not mutable", func() {
		m.MutableAttribute(0, "Roughness")
	})
	expectPanic(t, "attribute data not mutable", func() {
		SetAttributeValue(m, 0, "Roughness", float32(0.1))
	})

	// Borrowed but externally mutable storage is allowed to mutate.
	mm, err := NewBorrowed(DataMutable, attrs, 0, nil, 0)
	if err != nil {
		t.Fatalf("mutable borrowed material: %v", err)
	}
	SetAttributeValue(mm, 0, "Roughness", float32(0.25))
	if got := AttributeValue[float32](mm, 0, "Roughness"); got != 0.25 {
		t.Fatalf("after mutation: %v", got)
	}
}

func TestSetAttributeValue(t *testing.T) {
	t.Parallel()

	m, err := New(0, []Attribute{
		mustAttr(t, "Roughness", float32(0.5)),
		mustAttr(t, "LayerName", "coat"),
	})
	if err != nil {
		t.Fatalf("new material: %v", err)
	}
	SetAttributeValue(m, 0, "Roughness", float32(0.75))
	if got := AttributeValue[float32](m, 0, "Roughness"); got != 0.75 {
		t.Fatalf("after set: %v", got)
	}
	// Same-length string overwrite keeps the layout.
	SetAttributeValue(m, 0, "LayerName", "gold")
	if got := AttributeValue[string](m, 0, "LayerName"); got != "gold" {
		t.Fatalf("after string set: %q", got)
	}
	expectPanic(t, "improper type Int requested for Roughness of Float", func() {
		SetAttributeValue(m, 0, "Roughness", int32(1))
	})
	expectPanic(t, "can't change String size", func() {
		SetAttributeValue(m, 0, "LayerName", "lacquer")
	})
	// The set of attributes is fixed: no setter exists for a missing name.
	expectPanic(t, "attribute Metalness not found in layer 0", func() {
		SetAttributeValue(m, 0, "Metalness", float32(1))
	})
}

func TestLayerPartitionInvariant(t *testing.T) {
	t.Parallel()

	m, err := NewLayered(0, []Attribute{
		mustAttr(t, "BaseColor", Vector4{1, 1, 1, 1}),
		mustAttr(t, "LayerName", "a"),
		mustAttr(t, "Roughness", float32(0.5)),
		mustAttr(t, "LayerName", "b"),
	}, []uint32{1, 3, 4})
	if err != nil {
		t.Fatalf("layered material: %v", err)
	}
	if m.LayerCount() != 3 {
		t.Fatalf("layer count: %d", m.LayerCount())
	}
	sum := 0
	for layer := 0; layer < m.LayerCount(); layer++ {
		sum += m.AttributeCount(layer)
	}
	if sum != m.TotalAttributeCount() {
		t.Fatalf("partition sum %d != total %d", sum, m.TotalAttributeCount())
	}
	if got := m.AttributeDataOffset(m.LayerCount()); got != m.TotalAttributeCount() {
		t.Fatalf("end offset: %d", got)
	}
	if got := m.AttributeDataOffset(0); got != 0 {
		t.Fatalf("base offset: %d", got)
	}
	if got := m.AttributeDataOffset(2); got != 3 {
		t.Fatalf("layer 2 offset: %d", got)
	}
}

func TestLayerNameIgnoredInBaseMaterial(t *testing.T) {
	t.Parallel()

	m, err := New(0, []Attribute{
		mustAttr(t, "LayerName", "Sneaky"),
	})
	if err != nil {
		t.Fatalf("new material: %v", err)
	}
	if m.HasLayer("Sneaky") {
		t.Fatalf("base material must not masquerade as a named layer")
	}
	if got := m.LayerName(0); got != "" {
		t.Fatalf("layer 0 name: %q", got)
	}
	// The attribute itself is still present and readable.
	if got := AttributeValue[string](m, 0, "LayerName"); got != "Sneaky" {
		t.Fatalf("attribute access: %q", got)
	}
}

func TestLayerLookupByName(t *testing.T) {
	t.Parallel()

	m, err := NewLayered(0, []Attribute{
		mustAttr(t, "LayerName", "ClearCoat"),
		mustAttr(t, "LayerName", "ClearCoat"),
	}, []uint32{0, 1, 2})
	if err != nil {
		t.Fatalf("layered material: %v", err)
	}
	// Layer order is significant: the first match wins.
	if id, ok := m.FindLayerID("ClearCoat"); !ok || id != 1 {
		t.Fatalf("find layer: %d, %v", id, ok)
	}
	if m.LayerID("ClearCoat") != 1 {
		t.Fatalf("layer id lookup")
	}
	if _, ok := m.FindLayerID("Missing"); ok {
		t.Fatalf("missing layer reported present")
	}
	expectPanic(t, "layer Missing not found", func() {
		m.LayerID("Missing")
	})
}

func TestOutOfRangeAccessPanics(t *testing.T) {
	t.Parallel()

	m, err := New(0, []Attribute{mustAttr(t, "A", float32(1))})
	if err != nil {
		t.Fatalf("new material: %v", err)
	}
	expectPanic(t, "index 1 out of range for 1 layers", func() {
		m.AttributeCount(1)
	})
	expectPanic(t, "index 2 out of range for 1 layers", func() {
		m.AttributeDataOffset(2)
	})
	expectPanic(t, "index 1 out of range for 1 attributes in layer 0", func() {
		m.AttributeName(0, 1)
	})
	expectPanic(t, "attribute B not found in layer 0", func() {
		m.Attribute(0, "B")
	})
	expectPanic(t, "attribute B not found in layer 0", func() {
		m.AttributeID(0, "B")
	})
}

func TestRelease(t *testing.T) {
	t.Parallel()

	m, err := NewLayered(0, []Attribute{
		mustAttr(t, "A", float32(1)),
		mustAttr(t, "B", float32(2)),
	}, []uint32{1, 2})
	if err != nil {
		t.Fatalf("layered material: %v", err)
	}
	attrs := m.ReleaseAttributeData()
	if len(attrs) != 2 {
		t.Fatalf("released %d attributes", len(attrs))
	}
	offsets := m.ReleaseLayerOffsetData()
	if len(offsets) != 2 || offsets[1] != 2 {
		t.Fatalf("released offsets: %v", offsets)
	}
}

func TestConcreteScenario(t *testing.T) {
	t.Parallel()

	m, err := NewLayered(MaterialPbrMetallicRoughness|MaterialPbrClearCoat, []Attribute{
		mustAttr(t, "AlphaBlend", true),
		mustAttr(t, "BaseColor", Vector4{0.2, 0.4, 0.6, 1.0}),
		mustAttr(t, "LayerName", "ClearCoat"),
		mustAttr(t, "LayerFactor", float32(0.35)),
		mustAttr(t, "Roughness", float32(0.1)),
	}, []uint32{2, 5})
	if err != nil {
		t.Fatalf("layered material: %v", err)
	}

	if m.LayerCount() != 2 {
		t.Fatalf("layer count: %d", m.LayerCount())
	}
	if got := m.LayerName(1); got != "ClearCoat" {
		t.Fatalf("layer name: %q", got)
	}
	if got := m.LayerFactor(1); got != 0.35 {
		t.Fatalf("layer factor: %v", got)
	}
	if m.AttributeCount(0) != 2 {
		t.Fatalf("base attribute count: %d", m.AttributeCount(0))
	}
	// LayerName is itself an attribute, so the layer holds three.
	if m.AttributeCount(1) != 3 {
		t.Fatalf("layer attribute count: %d", m.AttributeCount(1))
	}
	if got := AttributeValue[bool](m, 0, "AlphaBlend"); !got {
		t.Fatalf("alpha blend: %v", got)
	}
	if got := AttributeValue[float32](m, 1, "Roughness"); got != 0.1 {
		t.Fatalf("roughness: %v", got)
	}
	if _, ok := m.FindAttributeID(1, "Metalness"); ok {
		t.Fatalf("metalness reported present")
	}
	expectPanic(t, "attribute Metalness not found in layer 1", func() {
		m.AttributeID(1, "Metalness")
	})
}

func TestAttributeValueOr(t *testing.T) {
	t.Parallel()

	m, err := New(0, []Attribute{mustAttr(t, "Roughness", float32(0.5))})
	if err != nil {
		t.Fatalf("new material: %v", err)
	}
	if got := AttributeValueOr(m, 0, "Metalness", float32(0.25)); got != 0.25 {
		t.Fatalf("default substitution: %v", got)
	}
	if got := AttributeValueOr(m, 0, "Roughness", float32(0.25)); got != 0.5 {
		t.Fatalf("present value: %v", got)
	}
	// A type mismatch is a programmer error, never silently defaulted.
	expectPanic(t, "improper type Int requested for Roughness of Float", func() {
		AttributeValueOr(m, 0, "Roughness", int32(7))
	})
}

func TestImporterState(t *testing.T) {
	t.Parallel()

	m, err := New(0, []Attribute{mustAttr(t, "A", float32(1))})
	if err != nil {
		t.Fatalf("new material: %v", err)
	}
	if m.ImporterState() != nil {
		t.Fatalf("fresh importer state: %v", m.ImporterState())
	}
	state := &struct{ tag string }{"gltf"}
	m.SetImporterState(state)
	if m.ImporterState() != any(state) {
		t.Fatalf("importer state identity lost")
	}
}
