package types

type JointType string

const (
	JointTypeRevolute   JointType = "revolute"
	JointTypeContinuous JointType = "continuous"
	JointTypePrismatic  JointType = "prismatic"
	JointTypeFixed      JointType = "fixed"
	JointTypeFloating   JointType = "floating"
	JointTypePlanar     JointType = "planar"
)

type GeometryKind string

const (
	GeometryKindMesh     GeometryKind = "mesh"
	GeometryKindBox      GeometryKind = "box"
	GeometryKindCylinder GeometryKind = "cylinder"
	GeometryKindSphere   GeometryKind = "sphere"
)

// ConvertMode selects how transformations are anchored: every frame against
// the root link, or every frame against its immediate parent frame.
type ConvertMode string

const (
	ConvertModeAbsolute ConvertMode = "absolute"
	ConvertModeRelative ConvertMode = "relative"
)

type OutputFormat string

const (
	OutputFormatOWL      OutputFormat = "owl"
	OutputFormatNTriples OutputFormat = "nt"
)

type FrameKind string

const (
	FrameKindLink  FrameKind = "link"
	FrameKindJoint FrameKind = "joint"
)

type StatementKind string

const (
	StatementKindType      StatementKind = "type"
	StatementKindReference StatementKind = "reference"
	StatementKindLiteral   StatementKind = "literal"
)

type LiteralDatatype string

const (
	LiteralDatatypeNone    LiteralDatatype = ""
	LiteralDatatypeString  LiteralDatatype = "string"
	LiteralDatatypeBoolean LiteralDatatype = "boolean"
)
