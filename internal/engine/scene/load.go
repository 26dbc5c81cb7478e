package scene

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/Faultbox/teardown/pkg/math"
)

// fileScene mirrors the YAML scene description.
type fileScene struct {
	Name   string     `yaml:"name"`
	Camera fileCamera `yaml:"camera"`
	Nodes  []fileNode `yaml:"nodes"`
}

type fileCamera struct {
	Position *[3]float32 `yaml:"position"`
	Target   *[3]float32 `yaml:"target"`
}

type fileBounds struct {
	Min [3]float32 `yaml:"min"`
	Max [3]float32 `yaml:"max"`
}

type fileMaterial struct {
	Name      string      `yaml:"name"`
	Color     *[3]float32 `yaml:"color"`
	Opacity   *float32    `yaml:"opacity"`
	Metalness float32     `yaml:"metalness"`
	Roughness *float32    `yaml:"roughness"`
	Map       string      `yaml:"map"`
}

type fileNode struct {
	Name     string        `yaml:"name"`
	Bounds   *fileBounds   `yaml:"bounds"`
	Position [3]float32    `yaml:"position"`
	Rotation [3]float32    `yaml:"rotation"`
	Scale    *[3]float32   `yaml:"scale"`
	Material *fileMaterial `yaml:"material"`
	Children []fileNode    `yaml:"children"`
}

// DefaultCamera is the viewpoint used when a scene file declares none.
var DefaultCamera = CameraSpec{
	Position: math.Vec3{X: 5, Y: 5, Z: 5},
}

// Load reads a YAML scene description from disk.
func Load(path string) (*Scene, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading scene %s: %w", path, err)
	}
	s, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("loading scene %s: %w", path, err)
	}
	return s, nil
}

// Parse builds a scene from YAML. Every node receives a fresh identity, so
// parsing the same document twice yields two unrelated scenes.
func Parse(data []byte) (*Scene, error) {
	var f fileScene
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, err
	}

	s := New(f.Name)
	s.HomeCamera = DefaultCamera
	if f.Camera.Position != nil {
		s.HomeCamera.Position = math.V3(*f.Camera.Position)
	}
	if f.Camera.Target != nil {
		s.HomeCamera.Target = math.V3(*f.Camera.Target)
	}

	for i := range f.Nodes {
		n, err := buildNode(&f.Nodes[i])
		if err != nil {
			return nil, err
		}
		s.Add(n)
	}

	if len(s.Meshes()) == 0 {
		return nil, ErrNoMeshes
	}
	return s, nil
}

func buildNode(fn *fileNode) (*Node, error) {
	var n *Node
	if fn.Bounds != nil {
		b := math.AABB{Min: math.V3(fn.Bounds.Min), Max: math.V3(fn.Bounds.Max)}
		if !b.Min.IsFinite() || !b.Max.IsFinite() {
			return nil, fmt.Errorf("node %q: non-finite bounds", fn.Name)
		}
		n = NewMesh(fn.Name, b, buildMaterial(fn.Material))
	} else {
		n = NewNode(fn.Name)
	}

	n.Transform.Position = math.V3(fn.Position)
	n.Transform.Rotation = math.V3(fn.Rotation)
	if fn.Scale != nil {
		n.Transform.Scale = math.V3(*fn.Scale)
	}

	for i := range fn.Children {
		c, err := buildNode(&fn.Children[i])
		if err != nil {
			return nil, err
		}
		n.AddChild(c)
	}
	return n, nil
}

func buildMaterial(fm *fileMaterial) *Material {
	m := DefaultMaterial()
	if fm == nil {
		return m
	}
	m.Name = fm.Name
	m.Metalness = fm.Metalness
	m.Map = fm.Map
	if fm.Color != nil {
		m.Color = *fm.Color
	}
	if fm.Opacity != nil {
		m.Opacity = *fm.Opacity
	}
	if fm.Roughness != nil {
		m.Roughness = *fm.Roughness
	}
	return m
}
