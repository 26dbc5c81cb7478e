package scene

// Material is a node's appearance. A node owns its material exclusively;
// share appearances only through Clone.
type Material struct {
	Name              string
	Color             [3]float32
	Emissive          [3]float32
	EmissiveIntensity float32
	Opacity           float32
	Metalness         float32
	Roughness         float32
	Map               string // texture name, empty when untextured
}

// DefaultMaterial returns the neutral grey used when a scene file omits one.
func DefaultMaterial() *Material {
	return &Material{
		Color:     [3]float32{0.8, 0.8, 0.8},
		Opacity:   1,
		Roughness: 0.6,
	}
}

// Clone returns an independent copy.
func (m *Material) Clone() *Material {
	if m == nil {
		return nil
	}
	c := *m
	return &c
}

// Equal reports whether two materials match field for field.
func (m *Material) Equal(other *Material) bool {
	if m == nil || other == nil {
		return m == other
	}
	return *m == *other
}
