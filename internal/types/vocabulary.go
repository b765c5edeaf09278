package types

// Namespace prefixes understood by the ontology writers. Class and property
// names below are CURIEs over these prefixes.
var Namespaces = []NamespaceBinding{
	{Prefix: "rdf", URI: "http://www.w3.org/1999/02/22-rdf-syntax-ns#"},
	{Prefix: "rdfs", URI: "http://www.w3.org/2000/01/rdf-schema#"},
	{Prefix: "owl", URI: "http://www.w3.org/2002/07/owl#"},
	{Prefix: "xsd", URI: "http://www.w3.org/2001/XMLSchema#"},
	{Prefix: "owl2xml", URI: "http://www.w3.org/2006/12/owl2-xml#"},
	{Prefix: "knowrob", URI: "http://knowrob.org/kb/knowrob.owl#"},
	{Prefix: "srdl2", URI: "http://knowrob.org/kb/srdl2.owl#"},
	{Prefix: "srdl2-comp", URI: "http://knowrob.org/kb/srdl2-comp.owl#"},
	{Prefix: "srdl2-cap", URI: "http://knowrob.org/kb/srdl2-cap.owl#"},
	{Prefix: "qudt-unit", URI: "http://qudt.org/vocab/unit#"},
}

type NamespaceBinding struct {
	Prefix string
	URI    string
}

var DefaultImports = []string{
	"package://knowrob_srdl/owl/srdl2-comp.owl",
	"package://knowrob_common/owl/knowrob.owl",
}

const DefaultNamespaceBase = "http://knowrob.org/kb/"

const (
	ClassSemanticEnvironmentMap = "knowrob:SemanticEnvironmentMap"
	ClassTimePoint              = "knowrob:TimePoint"
	ClassSemanticMapPerception  = "knowrob:SemanticMapPerception"
	ClassTransformation         = "knowrob:Transformation"
	ClassUrdfLink               = "srdl2-comp:UrdfLink"

	PropURDFName         = "srdl2-comp:urdfName"
	PropDescribedInMap   = "knowrob:describedInMap"
	PropSucceedingJoint  = "srdl2-comp:succeedingJoint"
	PropSucceedingLink   = "srdl2-comp:succeedingLink"
	PropHasVisual        = "knowrob:hasVisual"
	PropPathToCadModel   = "knowrob:pathToCadModel"
	PropMeshScale        = "srdl2-comp:mesh_scale"
	PropDepthOfObject    = "knowrob:depthOfObject"
	PropWidthOfObject    = "knowrob:widthOfObject"
	PropHeightOfObject   = "knowrob:heightOfObject"
	PropEventOccursAt    = "knowrob:eventOccursAt"
	PropStartTime        = "knowrob:startTime"
	PropObjectActedOn    = "knowrob:objectActedOn"
	PropRelativeTo       = "knowrob:relativeTo"
	PropTranslation      = "knowrob:translation"
	PropQuaternion       = "knowrob:quaternion"
	TimePointID          = "timepoint_0000000001"
	PerceptionIDPrefix   = "SemanticMapPerception_"
	TransformationPrefix = "Transformation_"
)

// NamespaceURI returns the URI bound to prefix, or "" if unknown.
func NamespaceURI(prefix string) string {
	for _, binding := range Namespaces {
		if binding.Prefix == prefix {
			return binding.URI
		}
	}
	return ""
}
