package core

import (
	"fmt"

	"github.com/ZanzyTHEbar/errbuilder-go"

	"urdf2sem/internal/types"
)

// KinematicTree is a validated, read-only view of a robot description with
// the adjacency needed for chain walks.
type KinematicTree struct {
	name      string
	root      string
	linkOrder []string
	links     map[string]types.Link
	joints    map[string]types.Joint
	children  map[string][]string
	parents   map[string]string
}

func NewKinematicTree(robot types.Robot) (*KinematicTree, error) {
	tree := &KinematicTree{
		name:    robot.Name,
		links:   make(map[string]types.Link, len(robot.Links)),
		joints:  make(map[string]types.Joint, len(robot.Joints)),
		parents: map[string]string{},
	}
	for _, link := range robot.Links {
		if _, dup := tree.links[link.Name]; dup {
			return nil, errbuilder.New().
				WithCode(errbuilder.CodeInvalidArgument).
				WithMsg(fmt.Sprintf("duplicate link name: %s", link.Name))
		}
		tree.links[link.Name] = link
		tree.linkOrder = append(tree.linkOrder, link.Name)
	}

	joints := robot.Joints
	if len(robot.Links) == 1 {
		joints = nil
	}
	for _, joint := range joints {
		if _, dup := tree.joints[joint.Name]; dup {
			return nil, errbuilder.New().
				WithCode(errbuilder.CodeInvalidArgument).
				WithMsg(fmt.Sprintf("duplicate joint name: %s", joint.Name))
		}
		if _, clash := tree.links[joint.Name]; clash {
			return nil, errbuilder.New().
				WithCode(errbuilder.CodeInvalidArgument).
				WithMsg(fmt.Sprintf("joint %s has the same name as a link", joint.Name))
		}
		tree.joints[joint.Name] = joint
	}

	root, children, err := ResolveRoot(tree.linkOrder, joints)
	if err != nil {
		return nil, err
	}
	tree.root = root
	tree.children = children
	for _, joint := range joints {
		tree.parents[joint.Child] = joint.Name
	}
	if err := tree.checkReachable(); err != nil {
		return nil, err
	}
	return tree, nil
}

// checkReachable rejects detached cycles, which leave a single root
// candidate but are never visited from it.
func (t *KinematicTree) checkReachable() error {
	seen := map[string]struct{}{t.root: {}}
	stack := []string{t.root}
	for len(stack) > 0 {
		link := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		for _, jointName := range t.children[link] {
			child := t.joints[jointName].Child
			if _, ok := seen[child]; ok {
				continue
			}
			seen[child] = struct{}{}
			stack = append(stack, child)
		}
	}
	if len(seen) == len(t.linkOrder) {
		return nil
	}
	var detached []string
	for _, name := range t.linkOrder {
		if _, ok := seen[name]; !ok {
			detached = append(detached, name)
		}
	}
	return topologyError(InvalidLink, "links not reachable from root "+t.root, detached...)
}

func (t *KinematicTree) Name() string {
	return t.name
}

func (t *KinematicTree) Root() string {
	return t.root
}

func (t *KinematicTree) Links() []string {
	return append([]string(nil), t.linkOrder...)
}

func (t *KinematicTree) LinkCount() int {
	return len(t.links)
}

func (t *KinematicTree) JointCount() int {
	return len(t.joints)
}

func (t *KinematicTree) Link(name string) (types.Link, bool) {
	link, ok := t.links[name]
	return link, ok
}

func (t *KinematicTree) Joint(name string) (types.Joint, bool) {
	joint, ok := t.joints[name]
	return joint, ok
}

// ChildJoints returns the joints leaving link in document order.
func (t *KinematicTree) ChildJoints(link string) []string {
	return t.children[link]
}

func (t *KinematicTree) ParentJoint(link string) (string, bool) {
	joint, ok := t.parents[link]
	return joint, ok
}

// Frame resolves a bare name, trying links before joints.
func (t *KinematicTree) Frame(name string) (types.Frame, error) {
	if _, ok := t.links[name]; ok {
		return types.LinkFrame(name), nil
	}
	if _, ok := t.joints[name]; ok {
		return types.JointFrame(name), nil
	}
	return types.Frame{}, errbuilder.New().
		WithCode(errbuilder.CodeNotFound).
		WithMsg(fmt.Sprintf("no link or joint named %s", name))
}

func (t *KinematicTree) HasFrame(frame types.Frame) bool {
	switch frame.Kind {
	case types.FrameKindLink:
		_, ok := t.links[frame.Name]
		return ok
	case types.FrameKindJoint:
		_, ok := t.joints[frame.Name]
		return ok
	default:
		return false
	}
}

// Parent returns the frame one step closer to the root: the parent joint of
// a link, or the parent link of a joint. The root link has no parent.
func (t *KinematicTree) Parent(frame types.Frame) (types.Frame, bool) {
	switch frame.Kind {
	case types.FrameKindLink:
		joint, ok := t.parents[frame.Name]
		if !ok {
			return types.Frame{}, false
		}
		return types.JointFrame(joint), true
	case types.FrameKindJoint:
		joint, ok := t.joints[frame.Name]
		if !ok {
			return types.Frame{}, false
		}
		return types.LinkFrame(joint.Parent), true
	default:
		return types.Frame{}, false
	}
}

// Chain returns the unique path between two frames, both ends included. The
// path climbs from `from` to the lowest common ancestor and then descends to
// `to`, alternating links and joints.
func (t *KinematicTree) Chain(from, to types.Frame) []types.Frame {
	up := t.ancestors(from)
	index := make(map[types.Frame]int, len(up))
	for i, frame := range up {
		index[frame] = i
	}
	down := t.ancestors(to)
	for i, frame := range down {
		j, ok := index[frame]
		if !ok {
			continue
		}
		path := append([]types.Frame(nil), up[:j+1]...)
		for k := i - 1; k >= 0; k-- {
			path = append(path, down[k])
		}
		return path
	}
	return nil
}

// ancestors lists frame and every frame above it, ending at the root link.
func (t *KinematicTree) ancestors(frame types.Frame) []types.Frame {
	out := []types.Frame{frame}
	for {
		parent, ok := t.Parent(frame)
		if !ok {
			return out
		}
		out = append(out, parent)
		frame = parent
	}
}
