package msb

import "github.com/Grimrukh/msb-go/stream"

// ShapeType tags the kind of geometry a Region carries.
type ShapeType uint32

const (
	ShapeNone      ShapeType = 0xFFFFFFFF
	ShapePoint     ShapeType = 0
	ShapeCircle    ShapeType = 1
	ShapeSphere    ShapeType = 2
	ShapeCylinder  ShapeType = 3
	ShapeRectangle ShapeType = 4
	ShapeBox       ShapeType = 5
	ShapeComposite ShapeType = 6
)

var shapeTypeNames = map[ShapeType]string{
	ShapePoint:     "Point",
	ShapeCircle:    "Circle",
	ShapeSphere:    "Sphere",
	ShapeCylinder:  "Cylinder",
	ShapeRectangle: "Rectangle",
	ShapeBox:       "Box",
	ShapeComposite: "Composite",
}

// String returns the shape's type name, matching GetShapeTypeName.
func (t ShapeType) String() string {
	if name, ok := shapeTypeNames[t]; ok {
		return name
	}
	return "NoShape"
}

// Shape is the per-Region geometry payload. Exactly one of the typed fields
// is meaningful, selected by Type; this mirrors the tagged-union approach
// used for Entry subtypes rather than a Shape interface with one
// implementation per kind, since none of Circle/Sphere/Cylinder/
// Rectangle/Box carry more than three float32 fields.
type Shape struct {
	Type ShapeType

	Radius float32 // Circle, Sphere, Cylinder
	Height float32 // Cylinder, Box
	Width  float32 // Rectangle, Box
	Depth  float32 // Rectangle, Box
}

// HasShapeData reports whether Type's on-disk representation carries a
// shape-data payload. Point has none; Composite's 16 ints are stored on the
// owning Region as CompositeChildren, not here, but the on-disk
// layout still reserves the slot, so HasShapeData is true for it too.
func (s Shape) HasShapeData() bool {
	return s.Type != ShapeNone && s.Type != ShapePoint
}

// DeserializeShapeData reads the shape-data payload (if any) for s.Type.
// Composite's payload is read by the caller (Region), since it resolves to
// Region references rather than fields on Shape itself.
func (s *Shape) DeserializeShapeData(r *stream.Reader) error {
	switch s.Type {
	case ShapeNone, ShapePoint, ShapeComposite:
		return nil
	case ShapeCircle, ShapeSphere:
		v, err := r.Float32()
		if err != nil {
			return err
		}
		s.Radius = v
		return nil
	case ShapeCylinder:
		radius, err := r.Float32()
		if err != nil {
			return err
		}
		height, err := r.Float32()
		if err != nil {
			return err
		}
		s.Radius, s.Height = radius, height
		return nil
	case ShapeRectangle:
		width, err := r.Float32()
		if err != nil {
			return err
		}
		depth, err := r.Float32()
		if err != nil {
			return err
		}
		s.Width, s.Depth = width, depth
		return nil
	case ShapeBox:
		width, err := r.Float32()
		if err != nil {
			return err
		}
		depth, err := r.Float32()
		if err != nil {
			return err
		}
		height, err := r.Float32()
		if err != nil {
			return err
		}
		s.Width, s.Depth, s.Height = width, depth, height
		return nil
	default:
		return &FormatError{Field: "ShapeType", Reason: "unrecognized shape type"}
	}
}

// SerializeShapeData writes the shape-data payload (if any) for s.Type.
func (s Shape) SerializeShapeData(w *stream.Writer) {
	switch s.Type {
	case ShapeNone, ShapePoint, ShapeComposite:
		return
	case ShapeCircle, ShapeSphere:
		w.WriteFloat32(s.Radius)
	case ShapeCylinder:
		w.WriteFloat32(s.Radius)
		w.WriteFloat32(s.Height)
	case ShapeRectangle:
		w.WriteFloat32(s.Width)
		w.WriteFloat32(s.Depth)
	case ShapeBox:
		w.WriteFloat32(s.Width)
		w.WriteFloat32(s.Depth)
		w.WriteFloat32(s.Height)
	}
}

// CompositeChildRef is one of Composite's up to 8 (region-index, unk04)
// pairs, resolved at the MSB level since it refers to sibling Regions.
type CompositeChildRef struct {
	Region RegionReference
	Unk04  int32

	regionIndex int32 // staged during deserialize, resolved by MSB
}
