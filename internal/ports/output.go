package ports

import "urdf2sem/internal/types"

type OntologyWriterPort interface {
	Write(path string, doc types.Document, format types.OutputFormat, overwrite bool) error
	Render(doc types.Document, format types.OutputFormat) ([]byte, error)
}
