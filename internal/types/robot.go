package types

// Robot is the in-memory form of a URDF document. Links and joints keep the
// order in which they appear in the source so that emitted output is stable.
type Robot struct {
	Name   string
	Links  []Link
	Joints []Joint
}

type Link struct {
	Name   string
	Visual *Visual
}

type Visual struct {
	Origin   *Origin
	Geometry Geometry
}

type Geometry struct {
	Kind     GeometryKind
	Filename string
	Scale    [3]float64
	Size     [3]float64
	Radius   float64
	Length   float64
}

// Joint references its parent and child links by name. An empty name means
// the reference was absent in the source document.
type Joint struct {
	Name   string
	Type   JointType
	Parent string
	Child  string
	Origin *Origin
}

// Origin is a URDF pose: translation plus fixed-axis roll, pitch, yaw.
type Origin struct {
	XYZ [3]float64
	RPY [3]float64
}

type Frame struct {
	Kind FrameKind
	Name string
}

func LinkFrame(name string) Frame {
	return Frame{Kind: FrameKindLink, Name: name}
}

func JointFrame(name string) Frame {
	return Frame{Kind: FrameKindJoint, Name: name}
}

func (f Frame) IsLink() bool {
	return f.Kind == FrameKindLink
}

func (f Frame) IsJoint() bool {
	return f.Kind == FrameKindJoint
}

func (f Frame) String() string {
	return string(f.Kind) + ":" + f.Name
}
