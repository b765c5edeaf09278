package core

import (
	"fmt"

	"github.com/ZanzyTHEbar/errbuilder-go"

	"urdf2sem/internal/types"
)

// PoseComposer folds the joint origins and link visual origins along a
// kinematic chain into one relative transform.
//
// Every frame on the chain except the reference contributes its own
// element: a joint its origin, a link the origin of its visual. A joint
// target therefore includes its own origin but not its child link's visual,
// and a joint reference is never counted twice.
type PoseComposer struct {
	tree *KinematicTree
}

func NewPoseComposer(tree *KinematicTree) PoseComposer {
	return PoseComposer{tree: tree}
}

// Compose returns target expressed in reference.
func (c PoseComposer) Compose(target types.Frame, reference types.Frame) (types.Transform, error) {
	pose, err := c.Pose(target, reference)
	if err != nil {
		return types.Transform{}, err
	}
	return pose.Transform(), nil
}

// ComposeGlobal returns target expressed in the root link frame.
func (c PoseComposer) ComposeGlobal(target types.Frame) (types.Transform, error) {
	return c.Compose(target, types.LinkFrame(c.tree.Root()))
}

func (c PoseComposer) Pose(target types.Frame, reference types.Frame) (Pose, error) {
	for _, frame := range []types.Frame{target, reference} {
		if !c.tree.HasFrame(frame) {
			return Pose{}, errbuilder.New().
				WithCode(errbuilder.CodeNotFound).
				WithMsg(fmt.Sprintf("unknown frame %s", frame))
		}
	}
	path := c.tree.Chain(reference, target)
	pose := IdentityPose()
	for i := 1; i < len(path); i++ {
		prev, next := path[i-1], path[i]
		if parent, ok := c.tree.Parent(prev); ok && parent == next {
			pose = pose.Mul(c.element(prev).Inverse())
			continue
		}
		pose = pose.Mul(c.element(next))
	}
	return pose, nil
}

func (c PoseComposer) element(frame types.Frame) Pose {
	switch frame.Kind {
	case types.FrameKindJoint:
		joint, ok := c.tree.Joint(frame.Name)
		if ok && joint.Origin != nil {
			return PoseFromOrigin(*joint.Origin)
		}
	case types.FrameKindLink:
		link, ok := c.tree.Link(frame.Name)
		if ok && link.Visual != nil && link.Visual.Origin != nil {
			return PoseFromOrigin(*link.Visual.Origin)
		}
	}
	return IdentityPose()
}
