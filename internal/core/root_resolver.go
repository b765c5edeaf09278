package core

import (
	"fmt"

	"urdf2sem/internal/types"
)

// ResolveRoot finds the unique link that is nobody's child and returns it
// together with the parent link -> outgoing joint names map. Joints keep
// their input order within each parent.
//
// A single link is the root regardless of the joints supplied.
func ResolveRoot(links []string, joints []types.Joint) (string, map[string][]string, error) {
	children := map[string][]string{}
	switch len(links) {
	case 0:
		return "", nil, topologyError(NoLinkFound, "robot description has no links")
	case 1:
		return links[0], children, nil
	}
	if len(joints) == 0 {
		return "", nil, topologyError(NoJointFound,
			fmt.Sprintf("%d links found but no joint connects them", len(links)))
	}

	candidates := make(map[string]bool, len(links))
	for _, name := range links {
		candidates[name] = true
	}
	known := make(map[string]struct{}, len(links))
	for _, name := range links {
		known[name] = struct{}{}
	}

	for _, joint := range joints {
		if joint.Parent == "" {
			return "", nil, topologyError(InvalidJoint, "joint has no parent link", joint.Name)
		}
		if joint.Child == "" {
			return "", nil, topologyError(InvalidJoint, "joint has no child link", joint.Name)
		}
		if _, ok := known[joint.Parent]; !ok {
			return "", nil, topologyError(InvalidJoint,
				fmt.Sprintf("parent link %q does not exist", joint.Parent), joint.Name)
		}
		if _, ok := known[joint.Child]; !ok {
			return "", nil, topologyError(InvalidJoint,
				fmt.Sprintf("child link %q does not exist", joint.Child), joint.Name)
		}
		if !candidates[joint.Child] {
			return "", nil, topologyError(InvalidJoint,
				fmt.Sprintf("link %q already has a parent joint", joint.Child), joint.Name)
		}
		children[joint.Parent] = append(children[joint.Parent], joint.Name)
		candidates[joint.Child] = false
	}

	var remaining []string
	for _, name := range links {
		if candidates[name] {
			remaining = append(remaining, name)
		}
	}
	if len(remaining) != 1 {
		if len(remaining) == 0 {
			return "", nil, topologyError(InvalidLink, "no root link found (cyclic structure)")
		}
		return "", nil, topologyError(InvalidLink, "more than one root link", remaining...)
	}
	return remaining[0], children, nil
}
