package core

import (
	"context"
	"fmt"
	"strings"

	assert "github.com/ZanzyTHEbar/assert-lib"
	"github.com/ZanzyTHEbar/errbuilder-go"
	"github.com/rs/zerolog/log"

	"urdf2sem/internal/ports"
	"urdf2sem/internal/types"
)

type EmitOptions struct {
	Mode       types.ConvertMode
	Namespace  string
	MapURIBase string
	Imports    []string
}

// GraphEmitter turns a kinematic tree into an ordered ontology document.
// Each Emit call owns its own transformation record; the identifier
// generator is owned by the caller and must not be shared between
// concurrent conversions.
type GraphEmitter struct {
	tree     *KinematicTree
	composer PoseComposer
	ids      *IDGenerator
	resolver ports.GeometryResolverPort
	opts     EmitOptions
}

func NewGraphEmitter(tree *KinematicTree, resolver ports.GeometryResolverPort, ids *IDGenerator, opts EmitOptions) GraphEmitter {
	return GraphEmitter{
		tree:     tree,
		composer: NewPoseComposer(tree),
		ids:      ids,
		resolver: resolver,
		opts:     opts,
	}
}

type emitRun struct {
	GraphEmitter
	ctx         context.Context
	mapName     string
	prefix      string
	record      map[types.Frame]string
	individuals []types.Individual
	transforms  int
}

func (e GraphEmitter) Emit(ctx context.Context) (types.Document, types.ConversionSummary, error) {
	assert.NotEmpty(ctx, e.opts.Namespace, "map namespace must be set")
	assert.NotEmpty(ctx, e.opts.MapURIBase, "map uri must be set")
	mode := e.opts.Mode
	if mode == "" {
		mode = types.ConvertModeAbsolute
	}
	if mode != types.ConvertModeAbsolute && mode != types.ConvertModeRelative {
		return types.Document{}, types.ConversionSummary{}, errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg(fmt.Sprintf("unknown conversion mode: %s", mode))
	}
	e.opts.Mode = mode

	mapName := e.tree.Name() + "_" + e.ids.Next()
	run := &emitRun{
		GraphEmitter: e,
		ctx:          ctx,
		mapName:      mapName,
		prefix:       mapName + "_",
		record:       map[types.Frame]string{},
	}
	run.add(mapName, typeOf(types.ClassSemanticEnvironmentMap))
	run.add(types.TimePointID, typeOf(types.ClassTimePoint))

	if err := run.walk(); err != nil {
		return types.Document{}, types.ConversionSummary{}, err
	}

	doc := types.Document{
		Namespace:   e.opts.Namespace,
		MapURIBase:  e.opts.MapURIBase,
		MapName:     mapName,
		Imports:     append([]string(nil), e.opts.Imports...),
		Individuals: run.individuals,
	}
	summary := types.ConversionSummary{
		RobotName:       e.tree.Name(),
		MapName:         mapName,
		RootLink:        e.tree.Root(),
		Links:           e.tree.LinkCount(),
		Joints:          e.tree.JointCount(),
		Transformations: run.transforms,
	}
	log.Ctx(ctx).Debug().
		Str("map", mapName).
		Str("mode", string(mode)).
		Int("individuals", len(doc.Individuals)).
		Msg("ontology graph emitted")
	return doc, summary, nil
}

// walk visits links depth first with an explicit stack. A link is followed
// by its own transformation and then by all of its outgoing joints before
// any child link is entered.
func (r *emitRun) walk() error {
	stack := []string{r.tree.Root()}
	for len(stack) > 0 {
		linkName := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		if err := r.emitLink(linkName); err != nil {
			return err
		}
		if err := r.emitTransformation(types.LinkFrame(linkName)); err != nil {
			return err
		}
		jointNames := r.tree.ChildJoints(linkName)
		for _, jointName := range jointNames {
			r.emitJoint(jointName)
			if err := r.emitTransformation(types.JointFrame(jointName)); err != nil {
				return err
			}
		}
		for i := len(jointNames) - 1; i >= 0; i-- {
			joint, _ := r.tree.Joint(jointNames[i])
			stack = append(stack, joint.Child)
		}
	}
	return nil
}

func (r *emitRun) emitLink(name string) error {
	link, _ := r.tree.Link(name)
	statements := []types.Statement{
		typeOf(types.ClassUrdfLink),
		literal(types.PropURDFName, name, types.LiteralDatatypeNone),
		reference(types.PropDescribedInMap, r.mapName),
	}
	for _, jointName := range r.tree.ChildJoints(name) {
		statements = append(statements, reference(types.PropSucceedingJoint, r.prefix+jointName))
	}
	visual, err := r.visualStatements(link)
	if err != nil {
		return err
	}
	statements = append(statements, visual...)
	r.add(r.prefix+name, statements...)
	return nil
}

func (r *emitRun) visualStatements(link types.Link) ([]types.Statement, error) {
	if link.Visual == nil {
		return []types.Statement{literal(types.PropHasVisual, "false", types.LiteralDatatypeBoolean)}, nil
	}
	geometry := link.Visual.Geometry
	if geometry.Kind == types.GeometryKindMesh {
		if strings.TrimSpace(geometry.Filename) == "" {
			return []types.Statement{literal(types.PropHasVisual, "false", types.LiteralDatatypeBoolean)}, nil
		}
		path, err := r.resolver.Resolve(geometry.Filename)
		if err != nil {
			return nil, err
		}
		scale := geometry.Scale
		return []types.Statement{
			literal(types.PropPathToCadModel, path, types.LiteralDatatypeString),
			literal(types.PropMeshScale, fmt.Sprintf("%f %f %f", scale[0], scale[1], scale[2]), types.LiteralDatatypeString),
		}, nil
	}
	extent, ok, err := GeometryExtent(geometry)
	if err != nil {
		return nil, err
	}
	if !ok {
		return []types.Statement{literal(types.PropHasVisual, "false", types.LiteralDatatypeBoolean)}, nil
	}
	return []types.Statement{
		literal(types.PropDepthOfObject, fmt.Sprintf("%f", extent.Depth), types.LiteralDatatypeString),
		literal(types.PropWidthOfObject, fmt.Sprintf("%f", extent.Width), types.LiteralDatatypeString),
		literal(types.PropHeightOfObject, fmt.Sprintf("%f", extent.Height), types.LiteralDatatypeString),
	}, nil
}

func (r *emitRun) emitJoint(name string) {
	joint, _ := r.tree.Joint(name)
	r.add(r.prefix+name,
		typeOf("srdl2-comp:"+JointClass(joint.Type)),
		literal(types.PropURDFName, name, types.LiteralDatatypeNone),
		reference(types.PropDescribedInMap, r.mapName),
		reference(types.PropSucceedingLink, r.prefix+joint.Child),
	)
}

// emitTransformation writes the perception/transformation pair for frame
// and records the transformation id so descendants can chain to it.
func (r *emitRun) emitTransformation(frame types.Frame) error {
	parent, hasParent := r.tree.Parent(frame)
	if frame.IsLink() && !hasParent {
		return nil
	}
	anchor := types.LinkFrame(r.tree.Root())
	relativeTo := ""
	if r.opts.Mode == types.ConvertModeRelative {
		anchor = parent
		relativeTo = r.record[parent]
	}
	transform, err := r.composer.Compose(frame, anchor)
	if err != nil {
		return err
	}

	perception := types.PerceptionIDPrefix + r.ids.Next()
	transformation := types.TransformationPrefix + r.ids.Next()
	r.add(perception,
		typeOf(types.ClassSemanticMapPerception),
		reference(types.PropEventOccursAt, transformation),
		reference(types.PropStartTime, types.TimePointID),
		reference(types.PropObjectActedOn, r.prefix+frame.Name),
	)

	statements := []types.Statement{typeOf(types.ClassTransformation)}
	if relativeTo != "" {
		statements = append(statements, reference(types.PropRelativeTo, relativeTo))
	}
	t, q := transform.Translation, transform.Quaternion
	statements = append(statements,
		literal(types.PropTranslation, fmt.Sprintf("%f %f %f", t[0], t[1], t[2]), types.LiteralDatatypeString),
		literal(types.PropQuaternion, fmt.Sprintf("%f %f %f %f", q[0], q[1], q[2], q[3]), types.LiteralDatatypeString),
	)
	r.add(transformation, statements...)
	r.record[frame] = transformation
	r.transforms++
	log.Ctx(r.ctx).Debug().
		Str("frame", frame.String()).
		Str("transformation", transformation).
		Str("relative_to", relativeTo).
		Msg("transformation emitted")
	return nil
}

func (r *emitRun) add(id string, statements ...types.Statement) {
	r.individuals = append(r.individuals, types.Individual{ID: id, Statements: statements})
}

// JointClass maps a URDF joint type to its srdl2-comp class local name,
// e.g. revolute -> RevoluteUrdfJoint.
func JointClass(jointType types.JointType) string {
	name := strings.ToLower(string(jointType))
	if name == "" {
		return "UrdfJoint"
	}
	return strings.ToUpper(name[:1]) + name[1:] + "UrdfJoint"
}

func typeOf(class string) types.Statement {
	return types.Statement{Kind: types.StatementKindType, Predicate: "rdf:type", Object: class}
}

func reference(predicate string, id string) types.Statement {
	return types.Statement{Kind: types.StatementKindReference, Predicate: predicate, Object: id}
}

func literal(predicate string, value string, datatype types.LiteralDatatype) types.Statement {
	return types.Statement{Kind: types.StatementKindLiteral, Predicate: predicate, Object: value, Datatype: datatype}
}
