package shared

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDefaultOutputPath(t *testing.T) {
	assert.Equal(t, "robots/arm.owl", DefaultOutputPath("robots/arm.urdf", "owl"))
	assert.Equal(t, "robots/arm.nt", DefaultOutputPath("robots/arm", "nt"))
}

func TestSplitPathList(t *testing.T) {
	got := SplitPathList("/opt/ros/share::/ws/src", "/ws/src:/extra")
	assert.Equal(t, []string{"/opt/ros/share", "/ws/src", "/extra"}, got)
	assert.Nil(t, SplitPathList(""))
}

func TestNamespaceFromOutput(t *testing.T) {
	tests := map[string]string{
		"out/box.owl":        "box",
		"my robot.owl":       "my_robot",
		"2link.owl":          "_link",
		"arm-v2.description": "arm-v2",
		".owl":               "map",
	}
	for input, want := range tests {
		assert.Equal(t, want, NamespaceFromOutput(input), input)
	}
}
