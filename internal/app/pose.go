package app

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/ZanzyTHEbar/errbuilder-go"
	"github.com/rs/zerolog/log"

	"urdf2sem/internal/core"
	"urdf2sem/internal/types"
)

// Pose composes the transform of one frame relative to another without
// writing anything. Frame names may be qualified as link:<name> or
// joint:<name>; bare names are looked up as links first.
func (s Service) Pose(ctx context.Context, req PoseRequest) (PoseResult, error) {
	input := strings.TrimSpace(req.Input)
	if input == "" {
		return PoseResult{}, errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg("input path is required")
	}
	if strings.TrimSpace(req.Target) == "" {
		return PoseResult{}, errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg("target frame is required")
	}
	if _, err := os.Stat(input); err != nil {
		return PoseResult{}, errbuilder.New().
			WithCode(errbuilder.CodeNotFound).
			WithMsg(fmt.Sprintf("input not found: %s", input)).
			WithCause(err)
	}
	robot, err := s.Robots.Load(input)
	if err != nil {
		return PoseResult{}, err
	}
	tree, err := core.NewKinematicTree(robot)
	if err != nil {
		return PoseResult{}, wrapTopologyError(err)
	}

	target, err := lookupFrame(tree, req.Target)
	if err != nil {
		return PoseResult{}, err
	}
	reference := types.LinkFrame(tree.Root())
	if strings.TrimSpace(req.RelativeTo) != "" {
		reference, err = lookupFrame(tree, req.RelativeTo)
		if err != nil {
			return PoseResult{}, err
		}
	}
	transform, err := core.NewPoseComposer(tree).Compose(target, reference)
	if err != nil {
		return PoseResult{}, err
	}
	log.Ctx(ctx).Debug().
		Str("target", target.String()).
		Str("reference", reference.String()).
		Msg("pose composed")
	return PoseResult{
		Robot:      robot.Name,
		Target:     target,
		RelativeTo: reference,
		Transform:  transform,
	}, nil
}

func lookupFrame(tree *core.KinematicTree, name string) (types.Frame, error) {
	name = strings.TrimSpace(name)
	if kind, bare, ok := strings.Cut(name, ":"); ok {
		frame := types.Frame{Kind: types.FrameKind(kind), Name: bare}
		if (frame.IsLink() || frame.IsJoint()) && tree.HasFrame(frame) {
			return frame, nil
		}
		if frame.IsLink() || frame.IsJoint() {
			return types.Frame{}, errbuilder.New().
				WithCode(errbuilder.CodeNotFound).
				WithMsg(fmt.Sprintf("unknown frame %s", name))
		}
	}
	return tree.Frame(name)
}
