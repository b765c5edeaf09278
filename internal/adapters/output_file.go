package adapters

import (
	"bytes"
	"encoding/xml"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"text/template"

	"github.com/ZanzyTHEbar/errbuilder-go"
	"github.com/rs/zerolog/log"

	"urdf2sem/internal/ports"
	"urdf2sem/internal/types"
)

type OntologyFileAdapter struct{}

func NewOntologyFileAdapter() OntologyFileAdapter {
	return OntologyFileAdapter{}
}

const owlTemplate = `<?xml version="1.0"?>

<!-- =============================================== -->
<!-- | This file was autogenerated by urdf2sem     | -->
<!-- =============================================== -->

<!DOCTYPE rdf:RDF [
{{- range .Namespaces}}
<!ENTITY {{.Prefix}} "{{xml .URI}}">
{{- end}}
]>

<rdf:RDF xml:base="{{xml .Doc.MapURIBase}}"
         xmlns="{{xml .Doc.MapURI}}"
{{- range .Namespaces}}
         xmlns:{{.Prefix}}="{{xml .URI}}"
{{- end}}>

    <owl:Ontology rdf:about="{{xml .Doc.MapURIBase}}">
{{- range .Doc.Imports}}
      <owl:imports rdf:resource="{{xml .}}"/>
{{- end}}
    </owl:Ontology>
{{range .Doc.Individuals}}
    <owl:NamedIndividual rdf:about="&{{$.Doc.Namespace}};{{xml .ID}}">
{{- range .Statements}}
{{- if eq .Kind "type"}}
        <rdf:type rdf:resource="{{entity .Object}}"/>
{{- else if eq .Kind "reference"}}
        <{{.Predicate}} rdf:resource="&{{$.Doc.Namespace}};{{xml .Object}}"/>
{{- else if .Datatype}}
        <{{.Predicate}} rdf:datatype="&xsd;{{.Datatype}}">{{xml .Object}}</{{.Predicate}}>
{{- else}}
        <{{.Predicate}}>{{xml .Object}}</{{.Predicate}}>
{{- end}}
{{- end}}
    </owl:NamedIndividual>
{{end}}
</rdf:RDF>
`

var owlDocument = template.Must(template.New("owl").Funcs(template.FuncMap{
	"xml":    escapeXML,
	"entity": curieEntity,
}).Parse(owlTemplate))

type owlView struct {
	Doc        types.Document
	Namespaces []types.NamespaceBinding
}

func (a OntologyFileAdapter) Render(doc types.Document, format types.OutputFormat) ([]byte, error) {
	if strings.TrimSpace(doc.Namespace) == "" || strings.TrimSpace(doc.MapURIBase) == "" {
		return nil, errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg("document namespace and map uri are required")
	}
	switch format {
	case types.OutputFormatOWL, "":
		return renderOWL(doc)
	case types.OutputFormatNTriples:
		return renderNTriples(doc)
	default:
		return nil, errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg(fmt.Sprintf("unknown output format: %s", format))
	}
}

// Write renders doc and replaces path atomically. An existing file is only
// replaced when overwrite is set.
func (a OntologyFileAdapter) Write(path string, doc types.Document, format types.OutputFormat, overwrite bool) error {
	if strings.TrimSpace(path) == "" {
		return errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg("output path is empty")
	}
	if !overwrite {
		if _, err := os.Stat(path); err == nil {
			return errbuilder.New().
				WithCode(errbuilder.CodeAlreadyExists).
				WithMsg(fmt.Sprintf("output already exists: %s", path))
		}
	}
	content, err := a.Render(doc, format)
	if err != nil {
		return err
	}
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return errbuilder.New().
			WithCode(errbuilder.CodeInternal).
			WithMsg("failed to create output directory").
			WithCause(err)
	}
	tmp, err := os.CreateTemp(dir, ".urdf2sem-*")
	if err != nil {
		return errbuilder.New().
			WithCode(errbuilder.CodeInternal).
			WithMsg("failed to create temporary output").
			WithCause(err)
	}
	tmpName := tmp.Name()
	_, writeErr := tmp.Write(content)
	closeErr := tmp.Close()
	if err := errors.Join(writeErr, closeErr); err != nil {
		_ = os.Remove(tmpName)
		return errbuilder.New().
			WithCode(errbuilder.CodeInternal).
			WithMsg("failed to write output").
			WithCause(err)
	}
	if err := os.Chmod(tmpName, 0644); err != nil {
		_ = os.Remove(tmpName)
		return errbuilder.New().
			WithCode(errbuilder.CodeInternal).
			WithMsg("failed to set output permissions").
			WithCause(err)
	}
	if err := os.Rename(tmpName, path); err != nil {
		_ = os.Remove(tmpName)
		return errbuilder.New().
			WithCode(errbuilder.CodeInternal).
			WithMsg("failed to move output into place").
			WithCause(err)
	}
	log.Debug().Str("path", path).Str("format", string(format)).Int("bytes", len(content)).Msg("ontology written")
	return nil
}

func renderOWL(doc types.Document) ([]byte, error) {
	namespaces := append([]types.NamespaceBinding(nil), types.Namespaces...)
	namespaces = append(namespaces, types.NamespaceBinding{Prefix: doc.Namespace, URI: doc.MapURI()})
	var buf bytes.Buffer
	if err := owlDocument.Execute(&buf, owlView{Doc: doc, Namespaces: namespaces}); err != nil {
		return nil, errbuilder.New().
			WithCode(errbuilder.CodeInternal).
			WithMsg("failed to render owl document").
			WithCause(err)
	}
	return buf.Bytes(), nil
}

func renderNTriples(doc types.Document) ([]byte, error) {
	var buf bytes.Buffer
	ontology := iri(doc.MapURIBase)
	triple(&buf, ontology, iri(expandCURIE("rdf:type")), iri(expandCURIE("owl:Ontology")))
	for _, imp := range doc.Imports {
		triple(&buf, ontology, iri(expandCURIE("owl:imports")), iri(imp))
	}
	for _, individual := range doc.Individuals {
		subject := iri(doc.MapURI() + individual.ID)
		triple(&buf, subject, iri(expandCURIE("rdf:type")), iri(expandCURIE("owl:NamedIndividual")))
		for _, statement := range individual.Statements {
			predicate := iri(expandCURIE(statement.Predicate))
			var object string
			switch statement.Kind {
			case types.StatementKindType:
				object = iri(expandCURIE(statement.Object))
			case types.StatementKindReference:
				object = iri(doc.MapURI() + statement.Object)
			case types.StatementKindLiteral:
				object = ntLiteral(statement.Object, statement.Datatype)
			default:
				return nil, errbuilder.New().
					WithCode(errbuilder.CodeInternal).
					WithMsg(fmt.Sprintf("unknown statement kind %q on %s", statement.Kind, individual.ID))
			}
			triple(&buf, subject, predicate, object)
		}
	}
	return buf.Bytes(), nil
}

func triple(buf *bytes.Buffer, subject string, predicate string, object string) {
	fmt.Fprintf(buf, "%s %s %s .\n", subject, predicate, object)
}

// iri percent-encodes the characters N-Triples forbids inside an IRIREF,
// so link names with spaces or angle brackets stay one term.
func iri(value string) string {
	var b strings.Builder
	b.WriteByte('<')
	for i := 0; i < len(value); i++ {
		c := value[i]
		if c <= ' ' || strings.IndexByte(`<>"{}|^`+"`"+`\`, c) >= 0 {
			fmt.Fprintf(&b, "%%%02X", c)
			continue
		}
		b.WriteByte(c)
	}
	b.WriteByte('>')
	return b.String()
}

func ntLiteral(value string, datatype types.LiteralDatatype) string {
	replacer := strings.NewReplacer(`\`, `\\`, `"`, `\"`, "\n", `\n`, "\r", `\r`)
	escaped := `"` + replacer.Replace(value) + `"`
	if datatype == types.LiteralDatatypeNone {
		return escaped
	}
	return escaped + "^^" + iri(types.NamespaceURI("xsd")+string(datatype))
}

// expandCURIE turns prefix:local into a full IRI. Unknown prefixes are
// returned unchanged.
func expandCURIE(curie string) string {
	prefix, local, ok := strings.Cut(curie, ":")
	if !ok {
		return curie
	}
	uri := types.NamespaceURI(prefix)
	if uri == "" {
		return curie
	}
	return uri + local
}

func curieEntity(curie string) string {
	prefix, local, ok := strings.Cut(curie, ":")
	if !ok || types.NamespaceURI(prefix) == "" {
		return escapeXML(curie)
	}
	return "&" + prefix + ";" + escapeXML(local)
}

func escapeXML(value string) string {
	var buf bytes.Buffer
	_ = xml.EscapeText(&buf, []byte(value))
	return buf.String()
}

var _ ports.OntologyWriterPort = OntologyFileAdapter{}
