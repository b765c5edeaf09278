package ports

// PackageXMLPort reads ROS package manifests.
type PackageXMLPort interface {
	// ParsePackageNames returns the <name> element from each package.xml,
	// in input order. Manifests without a name yield an empty string so the
	// result lines up with paths.
	ParsePackageNames(paths []string) ([]string, error)
}

// WorkspacePort discovers package.xml files within workspace roots.
type WorkspacePort interface {
	FindPackageXML(root string) ([]string, error)
}
