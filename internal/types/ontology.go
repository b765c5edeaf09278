package types

// Statement is one assertion about an individual. Object holds the target
// individual id for type and reference statements and the lexical value for
// literals.
type Statement struct {
	Kind      StatementKind
	Predicate string
	Object    string
	Datatype  LiteralDatatype
}

type Individual struct {
	ID         string
	Statements []Statement
}

// Document is the ordered result of one conversion. IDs are local names in
// the map namespace; Namespace is the entity/prefix name bound to MapURI.
type Document struct {
	Namespace   string
	MapURIBase  string
	MapName     string
	Imports     []string
	Individuals []Individual
}

func (d Document) MapURI() string {
	return d.MapURIBase + "#"
}

// Transform is the externally visible result of pose composition.
// Quaternion is scalar first: w, x, y, z.
type Transform struct {
	Translation [3]float64
	Quaternion  [4]float64
}

type ConversionSummary struct {
	RobotName       string
	MapName         string
	RootLink        string
	Links           int
	Joints          int
	Transformations int
}
