package ports

import "urdf2sem/internal/types"

type BatchManifestPort interface {
	Load(path string) (types.BatchManifest, error)
}
