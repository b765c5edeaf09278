package adapters

import (
	"encoding/xml"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/ZanzyTHEbar/errbuilder-go"
	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"urdf2sem/internal/types"
)

func sampleDocument() types.Document {
	return types.Document{
		Namespace:  "box",
		MapURIBase: "http://knowrob.org/kb/box.owl",
		MapName:    "box_abc12345",
		Imports:    []string{"package://knowrob_common/owl/knowrob.owl"},
		Individuals: []types.Individual{
			{ID: "box_abc12345", Statements: []types.Statement{
				{Kind: types.StatementKindType, Predicate: "rdf:type", Object: types.ClassSemanticEnvironmentMap},
			}},
			{ID: "box_abc12345_base", Statements: []types.Statement{
				{Kind: types.StatementKindType, Predicate: "rdf:type", Object: types.ClassUrdfLink},
				{Kind: types.StatementKindLiteral, Predicate: types.PropURDFName, Object: "base<&>"},
				{Kind: types.StatementKindReference, Predicate: types.PropDescribedInMap, Object: "box_abc12345"},
				{Kind: types.StatementKindLiteral, Predicate: types.PropHasVisual, Object: "false", Datatype: types.LiteralDatatypeBoolean},
			}},
		},
	}
}

func TestOntologyRenderOWL(t *testing.T) {
	content, err := NewOntologyFileAdapter().Render(sampleDocument(), types.OutputFormatOWL)
	require.NoError(t, err)
	text := string(content)

	containsChecks := []string{
		`<!ENTITY box "http://knowrob.org/kb/box.owl#">`,
		`<!ENTITY knowrob "http://knowrob.org/kb/knowrob.owl#">`,
		`<rdf:RDF xml:base="http://knowrob.org/kb/box.owl"`,
		`<owl:imports rdf:resource="package://knowrob_common/owl/knowrob.owl"/>`,
		`<owl:NamedIndividual rdf:about="&box;box_abc12345_base">`,
		`<rdf:type rdf:resource="&srdl2-comp;UrdfLink"/>`,
		`<srdl2-comp:urdfName>base&lt;&amp;&gt;</srdl2-comp:urdfName>`,
		`<knowrob:describedInMap rdf:resource="&box;box_abc12345"/>`,
		`<knowrob:hasVisual rdf:datatype="&xsd;boolean">false</knowrob:hasVisual>`,
	}
	for _, want := range containsChecks {
		assert.Contains(t, text, want)
	}

	decoder := xml.NewDecoder(strings.NewReader(text))
	decoder.Strict = false
	for {
		_, err := decoder.Token()
		if err != nil {
			require.ErrorIs(t, err, io.EOF)
			break
		}
	}
}

func TestOntologyRenderNTriples(t *testing.T) {
	content, err := NewOntologyFileAdapter().Render(sampleDocument(), types.OutputFormatNTriples)
	require.NoError(t, err)

	lines := strings.Split(strings.TrimSpace(string(content)), "\n")
	want := []string{
		`<http://knowrob.org/kb/box.owl> <http://www.w3.org/1999/02/22-rdf-syntax-ns#type> <http://www.w3.org/2002/07/owl#Ontology> .`,
		`<http://knowrob.org/kb/box.owl> <http://www.w3.org/2002/07/owl#imports> <package://knowrob_common/owl/knowrob.owl> .`,
		`<http://knowrob.org/kb/box.owl#box_abc12345> <http://www.w3.org/1999/02/22-rdf-syntax-ns#type> <http://www.w3.org/2002/07/owl#NamedIndividual> .`,
		`<http://knowrob.org/kb/box.owl#box_abc12345> <http://www.w3.org/1999/02/22-rdf-syntax-ns#type> <http://knowrob.org/kb/knowrob.owl#SemanticEnvironmentMap> .`,
		`<http://knowrob.org/kb/box.owl#box_abc12345_base> <http://www.w3.org/1999/02/22-rdf-syntax-ns#type> <http://www.w3.org/2002/07/owl#NamedIndividual> .`,
		`<http://knowrob.org/kb/box.owl#box_abc12345_base> <http://www.w3.org/1999/02/22-rdf-syntax-ns#type> <http://knowrob.org/kb/srdl2-comp.owl#UrdfLink> .`,
		`<http://knowrob.org/kb/box.owl#box_abc12345_base> <http://knowrob.org/kb/srdl2-comp.owl#urdfName> "base<&>" .`,
		`<http://knowrob.org/kb/box.owl#box_abc12345_base> <http://knowrob.org/kb/knowrob.owl#describedInMap> <http://knowrob.org/kb/box.owl#box_abc12345> .`,
		`<http://knowrob.org/kb/box.owl#box_abc12345_base> <http://knowrob.org/kb/knowrob.owl#hasVisual> "false"^^<http://www.w3.org/2001/XMLSchema#boolean> .`,
	}
	if diff := cmp.Diff(want, lines); diff != "" {
		t.Fatalf("unexpected n-triples (-want +got):\n%s", diff)
	}
}

func TestOntologyRenderNTriplesEscapesIRIs(t *testing.T) {
	doc := types.Document{
		Namespace:  "m",
		MapURIBase: "http://knowrob.org/kb/m.owl",
		MapName:    "r_x",
		Individuals: []types.Individual{
			{ID: "r_x_left wheel>", Statements: []types.Statement{
				{Kind: types.StatementKindReference, Predicate: "knowrob:describedInMap", Object: `r_x_{a|b}^"c"`},
			}},
		},
	}
	content, err := NewOntologyFileAdapter().Render(doc, types.OutputFormatNTriples)
	require.NoError(t, err)
	text := string(content)
	assert.Contains(t, text, "<http://knowrob.org/kb/m.owl#r_x_left%20wheel%3E> <http://knowrob.org/kb/knowrob.owl#describedInMap> <http://knowrob.org/kb/m.owl#r_x_%7Ba%7Cb%7D%5E%22c%22> .")
	for _, line := range strings.Split(strings.TrimSpace(text), "\n") {
		assert.Len(t, strings.Fields(line), 4, line)
	}
}

func TestOntologyRenderRejectsUnknownFormat(t *testing.T) {
	_, err := NewOntologyFileAdapter().Render(sampleDocument(), types.OutputFormat("turtle"))
	require.Error(t, err)
	assert.Equal(t, errbuilder.CodeInvalidArgument, errbuilder.CodeOf(err))
}

func TestOntologyWriteRefusesOverwrite(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "box.owl")
	require.NoError(t, os.WriteFile(path, []byte("keep"), 0644))

	adapter := NewOntologyFileAdapter()
	err := adapter.Write(path, sampleDocument(), types.OutputFormatOWL, false)
	require.Error(t, err)
	assert.Equal(t, errbuilder.CodeAlreadyExists, errbuilder.CodeOf(err))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "keep", string(data))

	require.NoError(t, adapter.Write(path, sampleDocument(), types.OutputFormatOWL, true))
	data, err = os.ReadFile(path)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(string(data), `<?xml version="1.0"?>`))
}

func TestOntologyWriteCreatesDirectoryWithoutLeftovers(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "nested", "out.nt")

	require.NoError(t, NewOntologyFileAdapter().Write(path, sampleDocument(), types.OutputFormatNTriples, false))

	entries, err := os.ReadDir(filepath.Dir(path))
	require.NoError(t, err)
	var names []string
	for _, entry := range entries {
		names = append(names, entry.Name())
	}
	if diff := cmp.Diff([]string{"out.nt"}, names); diff != "" {
		t.Fatalf("unexpected directory content (-want +got):\n%s", diff)
	}
}
