package adapters

import (
	"encoding/xml"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/ZanzyTHEbar/errbuilder-go"
	"github.com/rs/zerolog/log"

	"urdf2sem/internal/ports"
	"urdf2sem/internal/types"
)

type URDFFileAdapter struct{}

func NewURDFFileAdapter() URDFFileAdapter {
	return URDFFileAdapter{}
}

type urdfRobot struct {
	XMLName xml.Name    `xml:"robot"`
	Name    string      `xml:"name,attr"`
	Links   []urdfLink  `xml:"link"`
	Joints  []urdfJoint `xml:"joint"`
}

type urdfLink struct {
	Name    string       `xml:"name,attr"`
	Visuals []urdfVisual `xml:"visual"`
}

type urdfVisual struct {
	Origin   *urdfOrigin   `xml:"origin"`
	Geometry *urdfGeometry `xml:"geometry"`
}

type urdfGeometry struct {
	Mesh     *urdfMesh     `xml:"mesh"`
	Box      *urdfBox      `xml:"box"`
	Cylinder *urdfCylinder `xml:"cylinder"`
	Sphere   *urdfSphere   `xml:"sphere"`
}

type urdfMesh struct {
	Filename string `xml:"filename,attr"`
	Scale    string `xml:"scale,attr"`
}

type urdfBox struct {
	Size string `xml:"size,attr"`
}

type urdfCylinder struct {
	Radius string `xml:"radius,attr"`
	Length string `xml:"length,attr"`
}

type urdfSphere struct {
	Radius string `xml:"radius,attr"`
}

type urdfOrigin struct {
	XYZ string `xml:"xyz,attr"`
	RPY string `xml:"rpy,attr"`
}

type urdfLinkRef struct {
	Link string `xml:"link,attr"`
}

type urdfJoint struct {
	Name   string       `xml:"name,attr"`
	Type   string       `xml:"type,attr"`
	Parent *urdfLinkRef `xml:"parent"`
	Child  *urdfLinkRef `xml:"child"`
	Origin *urdfOrigin  `xml:"origin"`
}

func (a URDFFileAdapter) Load(path string) (types.Robot, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return types.Robot{}, errbuilder.New().
			WithCode(errbuilder.CodeNotFound).
			WithMsg("failed to read robot description").
			WithCause(err)
	}
	return a.Parse(content)
}

// Parse decodes URDF content. Only the first visual of a link is kept.
func (a URDFFileAdapter) Parse(content []byte) (types.Robot, error) {
	var doc urdfRobot
	if err := xml.Unmarshal(content, &doc); err != nil {
		return types.Robot{}, errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg("failed to parse robot description").
			WithCause(err)
	}
	robot := types.Robot{Name: strings.TrimSpace(doc.Name)}
	if robot.Name == "" {
		return types.Robot{}, errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg("robot element has no name")
	}

	for _, raw := range doc.Links {
		link, err := convertLink(raw)
		if err != nil {
			return types.Robot{}, err
		}
		robot.Links = append(robot.Links, link)
	}
	for _, raw := range doc.Joints {
		joint, err := convertJoint(raw)
		if err != nil {
			return types.Robot{}, err
		}
		robot.Joints = append(robot.Joints, joint)
	}
	log.Debug().
		Str("robot", robot.Name).
		Int("links", len(robot.Links)).
		Int("joints", len(robot.Joints)).
		Msg("robot description parsed")
	return robot, nil
}

func convertLink(raw urdfLink) (types.Link, error) {
	name := strings.TrimSpace(raw.Name)
	if name == "" {
		return types.Link{}, errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg("link element has no name")
	}
	link := types.Link{Name: name}
	if len(raw.Visuals) == 0 {
		return link, nil
	}
	if len(raw.Visuals) > 1 {
		log.Debug().Str("link", name).Int("visuals", len(raw.Visuals)).Msg("using first visual only")
	}
	visual := raw.Visuals[0]
	origin, err := convertOrigin(visual.Origin)
	if err != nil {
		return types.Link{}, wrapAttrError(err, "link", name)
	}
	geometry, err := convertGeometry(visual.Geometry)
	if err != nil {
		return types.Link{}, wrapAttrError(err, "link", name)
	}
	link.Visual = &types.Visual{Origin: origin, Geometry: geometry}
	return link, nil
}

func convertGeometry(raw *urdfGeometry) (types.Geometry, error) {
	if raw == nil {
		return types.Geometry{}, nil
	}
	switch {
	case raw.Mesh != nil:
		scale := [3]float64{1, 1, 1}
		if strings.TrimSpace(raw.Mesh.Scale) != "" {
			parsed, err := parseVector3(raw.Mesh.Scale)
			if err != nil {
				return types.Geometry{}, err
			}
			scale = parsed
		}
		return types.Geometry{
			Kind:     types.GeometryKindMesh,
			Filename: strings.TrimSpace(raw.Mesh.Filename),
			Scale:    scale,
		}, nil
	case raw.Box != nil:
		size, err := parseVector3(raw.Box.Size)
		if err != nil {
			return types.Geometry{}, err
		}
		return types.Geometry{Kind: types.GeometryKindBox, Size: size}, nil
	case raw.Cylinder != nil:
		radius, err := parseScalar(raw.Cylinder.Radius)
		if err != nil {
			return types.Geometry{}, err
		}
		length, err := parseScalar(raw.Cylinder.Length)
		if err != nil {
			return types.Geometry{}, err
		}
		return types.Geometry{Kind: types.GeometryKindCylinder, Radius: radius, Length: length}, nil
	case raw.Sphere != nil:
		radius, err := parseScalar(raw.Sphere.Radius)
		if err != nil {
			return types.Geometry{}, err
		}
		return types.Geometry{Kind: types.GeometryKindSphere, Radius: radius}, nil
	default:
		return types.Geometry{}, nil
	}
}

func convertJoint(raw urdfJoint) (types.Joint, error) {
	name := strings.TrimSpace(raw.Name)
	if name == "" {
		return types.Joint{}, errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg("joint element has no name")
	}
	joint := types.Joint{
		Name: name,
		Type: types.JointType(strings.ToLower(strings.TrimSpace(raw.Type))),
	}
	if raw.Parent != nil {
		joint.Parent = strings.TrimSpace(raw.Parent.Link)
	}
	if raw.Child != nil {
		joint.Child = strings.TrimSpace(raw.Child.Link)
	}
	origin, err := convertOrigin(raw.Origin)
	if err != nil {
		return types.Joint{}, wrapAttrError(err, "joint", name)
	}
	joint.Origin = origin
	return joint, nil
}

func convertOrigin(raw *urdfOrigin) (*types.Origin, error) {
	if raw == nil {
		return nil, nil
	}
	origin := &types.Origin{}
	if strings.TrimSpace(raw.XYZ) != "" {
		xyz, err := parseVector3(raw.XYZ)
		if err != nil {
			return nil, err
		}
		origin.XYZ = xyz
	}
	if strings.TrimSpace(raw.RPY) != "" {
		rpy, err := parseVector3(raw.RPY)
		if err != nil {
			return nil, err
		}
		origin.RPY = rpy
	}
	return origin, nil
}

func parseVector3(value string) ([3]float64, error) {
	fields := strings.Fields(value)
	if len(fields) != 3 {
		return [3]float64{}, fmt.Errorf("expected 3 numbers, got %q", value)
	}
	var out [3]float64
	for i, field := range fields {
		parsed, err := strconv.ParseFloat(field, 64)
		if err != nil {
			return [3]float64{}, fmt.Errorf("invalid number %q: %w", field, err)
		}
		out[i] = parsed
	}
	return out, nil
}

func parseScalar(value string) (float64, error) {
	parsed, err := strconv.ParseFloat(strings.TrimSpace(value), 64)
	if err != nil {
		return 0, fmt.Errorf("invalid number %q: %w", value, err)
	}
	return parsed, nil
}

func wrapAttrError(err error, element string, name string) error {
	return errbuilder.New().
		WithCode(errbuilder.CodeInvalidArgument).
		WithMsg(fmt.Sprintf("invalid attribute in %s %s", element, name)).
		WithCause(err)
}

var _ ports.RobotDescriptionPort = URDFFileAdapter{}
