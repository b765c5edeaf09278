package ports

// GeometryResolverPort turns a logical geometry reference such as
// package://pkg/meshes/base.dae into a concrete path or URI.
type GeometryResolverPort interface {
	Resolve(logical string) (string, error)
}
