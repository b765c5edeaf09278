package app

import (
	"time"

	"urdf2sem/internal/adapters"
	"urdf2sem/internal/ports"
)

type Service struct {
	Robots     ports.RobotDescriptionPort
	Workspace  ports.WorkspacePort
	PackageXML ports.PackageXMLPort
	Writer     ports.OntologyWriterPort
	Manifests  ports.BatchManifestPort
	Watcher    ports.FileWatcherPort
	OpenKB     func(dir string, clock func() time.Time) (ports.KnowledgeBasePort, error)
	Clock      func() time.Time
}

func NewService() Service {
	return Service{
		Robots:     adapters.NewURDFFileAdapter(),
		Workspace:  adapters.NewWorkspaceAdapter(),
		PackageXML: adapters.NewPackageXMLAdapter(),
		Writer:     adapters.NewOntologyFileAdapter(),
		Manifests:  adapters.NewBatchManifestAdapter(),
		Watcher:    adapters.NewFSNotifyWatcher(),
		OpenKB: func(dir string, clock func() time.Time) (ports.KnowledgeBasePort, error) {
			kb, err := adapters.OpenBadgerKnowledgeBase(dir)
			if err != nil {
				return nil, err
			}
			if clock != nil {
				kb.Clock = clock
			}
			return kb, nil
		},
		Clock: time.Now,
	}
}
