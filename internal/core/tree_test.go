package core

import (
	"math"
	"testing"

	"github.com/ZanzyTHEbar/errbuilder-go"
	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"urdf2sem/internal/types"
)

// chainRobot is A -joint1-> B -joint2-> C with joint1 lifting by 1 and
// turning a quarter around z, and joint2 sliding 0.5 along x.
func chainRobot() types.Robot {
	return types.Robot{
		Name:  "chain",
		Links: []types.Link{{Name: "A"}, {Name: "B"}, {Name: "C"}},
		Joints: []types.Joint{
			{
				Name: "joint1", Type: types.JointTypeRevolute, Parent: "A", Child: "B",
				Origin: &types.Origin{XYZ: [3]float64{0, 0, 1}, RPY: [3]float64{0, 0, math.Pi / 2}},
			},
			{
				Name: "joint2", Type: types.JointTypePrismatic, Parent: "B", Child: "C",
				Origin: &types.Origin{XYZ: [3]float64{0.5, 0, 0}},
			},
		},
	}
}

// forkRobot has two branches below base, one of them two joints deep.
func forkRobot() types.Robot {
	return types.Robot{
		Name: "fork",
		Links: []types.Link{
			{Name: "base"}, {Name: "left"}, {Name: "right"}, {Name: "right_tip"},
		},
		Joints: []types.Joint{
			{Name: "base_left", Type: types.JointTypeFixed, Parent: "base", Child: "left",
				Origin: &types.Origin{XYZ: [3]float64{0, 1, 0}}},
			{Name: "base_right", Type: types.JointTypeContinuous, Parent: "base", Child: "right",
				Origin: &types.Origin{XYZ: [3]float64{0, -1, 0}}},
			{Name: "right_tip_joint", Type: types.JointTypeFixed, Parent: "right", Child: "right_tip",
				Origin: &types.Origin{XYZ: [3]float64{0, 0, 2}}},
		},
	}
}

func mustTree(t *testing.T, robot types.Robot) *KinematicTree {
	t.Helper()
	tree, err := NewKinematicTree(robot)
	require.NoError(t, err)
	return tree
}

func TestKinematicTreeBasics(t *testing.T) {
	tree := mustTree(t, chainRobot())
	assert.Equal(t, "chain", tree.Name())
	assert.Equal(t, "A", tree.Root())
	assert.Equal(t, []string{"A", "B", "C"}, tree.Links())
	assert.Equal(t, 3, tree.LinkCount())
	assert.Equal(t, 2, tree.JointCount())
	assert.Equal(t, []string{"joint1"}, tree.ChildJoints("A"))
	assert.Empty(t, tree.ChildJoints("C"))

	joint, ok := tree.ParentJoint("C")
	require.True(t, ok)
	assert.Equal(t, "joint2", joint)
	_, ok = tree.ParentJoint("A")
	assert.False(t, ok)
}

func TestKinematicTreeSingleLinkDropsJoints(t *testing.T) {
	tree := mustTree(t, types.Robot{
		Name:   "box",
		Links:  []types.Link{{Name: "box_link"}},
		Joints: []types.Joint{{Name: "weird", Parent: "box_link", Child: "box_link"}},
	})
	assert.Equal(t, "box_link", tree.Root())
	assert.Equal(t, 0, tree.JointCount())
}

func TestKinematicTreeDuplicateNames(t *testing.T) {
	_, err := NewKinematicTree(types.Robot{
		Name:  "dup",
		Links: []types.Link{{Name: "a"}, {Name: "a"}},
	})
	require.Error(t, err)
	assert.Equal(t, errbuilder.CodeInvalidArgument, errbuilder.CodeOf(err))

	robot := chainRobot()
	robot.Joints[1].Name = "joint1"
	_, err = NewKinematicTree(robot)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "duplicate joint name")
}

func TestKinematicTreeLinkJointNameClash(t *testing.T) {
	_, err := NewKinematicTree(types.Robot{
		Name:   "clash",
		Links:  []types.Link{{Name: "base"}, {Name: "arm"}},
		Joints: []types.Joint{{Name: "arm", Type: types.JointTypeFixed, Parent: "base", Child: "arm"}},
	})
	require.Error(t, err)
	assert.Equal(t, errbuilder.CodeInvalidArgument, errbuilder.CodeOf(err))
	assert.Contains(t, err.Error(), "joint arm has the same name as a link")
}

func TestKinematicTreeDetachedCycle(t *testing.T) {
	_, err := NewKinematicTree(types.Robot{
		Name:  "loop",
		Links: []types.Link{{Name: "root"}, {Name: "a"}, {Name: "b"}},
		Joints: []types.Joint{
			{Name: "a_b", Parent: "a", Child: "b"},
			{Name: "b_a", Parent: "b", Child: "a"},
		},
	})
	require.Error(t, err)
	var topo *TopologyError
	require.ErrorAs(t, err, &topo)
	assert.Equal(t, InvalidLink, topo.Kind)
	assert.Equal(t, []string{"a", "b"}, topo.Names)
}

func TestKinematicTreeFrameLookup(t *testing.T) {
	tree := mustTree(t, chainRobot())

	frame, err := tree.Frame("B")
	require.NoError(t, err)
	assert.Equal(t, types.LinkFrame("B"), frame)

	frame, err = tree.Frame("joint2")
	require.NoError(t, err)
	assert.Equal(t, types.JointFrame("joint2"), frame)

	_, err = tree.Frame("nope")
	require.Error(t, err)
	assert.Equal(t, errbuilder.CodeNotFound, errbuilder.CodeOf(err))

	assert.True(t, tree.HasFrame(types.JointFrame("joint1")))
	assert.False(t, tree.HasFrame(types.JointFrame("A")))
	assert.False(t, tree.HasFrame(types.Frame{Kind: "axis", Name: "A"}))
}

func TestKinematicTreeParent(t *testing.T) {
	tree := mustTree(t, chainRobot())

	parent, ok := tree.Parent(types.LinkFrame("B"))
	require.True(t, ok)
	assert.Equal(t, types.JointFrame("joint1"), parent)

	parent, ok = tree.Parent(types.JointFrame("joint1"))
	require.True(t, ok)
	assert.Equal(t, types.LinkFrame("A"), parent)

	_, ok = tree.Parent(types.LinkFrame("A"))
	assert.False(t, ok)
}

func TestKinematicTreeChain(t *testing.T) {
	tree := mustTree(t, forkRobot())
	tests := []struct {
		name     string
		from, to types.Frame
		want     []types.Frame
	}{
		{
			name: "same frame",
			from: types.LinkFrame("left"),
			to:   types.LinkFrame("left"),
			want: []types.Frame{types.LinkFrame("left")},
		},
		{
			name: "root downwards",
			from: types.LinkFrame("base"),
			to:   types.LinkFrame("right_tip"),
			want: []types.Frame{
				types.LinkFrame("base"), types.JointFrame("base_right"), types.LinkFrame("right"),
				types.JointFrame("right_tip_joint"), types.LinkFrame("right_tip"),
			},
		},
		{
			name: "across branches",
			from: types.LinkFrame("left"),
			to:   types.JointFrame("right_tip_joint"),
			want: []types.Frame{
				types.LinkFrame("left"), types.JointFrame("base_left"), types.LinkFrame("base"),
				types.JointFrame("base_right"), types.LinkFrame("right"), types.JointFrame("right_tip_joint"),
			},
		},
		{
			name: "upwards",
			from: types.LinkFrame("right_tip"),
			to:   types.JointFrame("base_right"),
			want: []types.Frame{
				types.LinkFrame("right_tip"), types.JointFrame("right_tip_joint"),
				types.LinkFrame("right"), types.JointFrame("base_right"),
			},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if diff := cmp.Diff(tt.want, tree.Chain(tt.from, tt.to)); diff != "" {
				t.Fatalf("chain mismatch (-want +got):\n%s", diff)
			}
		})
	}
}
