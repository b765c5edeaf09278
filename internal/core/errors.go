package core

import (
	"errors"
	"fmt"
	"strings"
)

type TopologyErrorKind string

const (
	NoLinkFound  TopologyErrorKind = "NoLinkFound"
	NoJointFound TopologyErrorKind = "NoJointFound"
	InvalidJoint TopologyErrorKind = "InvalidJoint"
	InvalidLink  TopologyErrorKind = "InvalidLink"
)

// TopologyError reports a kinematic structure that cannot be turned into a
// tree. Names holds the offending joint for InvalidJoint and the surviving
// root candidates for InvalidLink.
type TopologyError struct {
	Kind   TopologyErrorKind
	Names  []string
	Detail string
}

func (e *TopologyError) Error() string {
	msg := string(e.Kind)
	if e.Detail != "" {
		msg += ": " + e.Detail
	}
	if len(e.Names) > 0 {
		msg += fmt.Sprintf(" [%s]", strings.Join(e.Names, ", "))
	}
	return msg
}

// IsTopologyError reports whether err carries a TopologyError of the given kind.
func IsTopologyError(err error, kind TopologyErrorKind) bool {
	var topo *TopologyError
	if !errors.As(err, &topo) {
		return false
	}
	return topo.Kind == kind
}

func topologyError(kind TopologyErrorKind, detail string, names ...string) *TopologyError {
	return &TopologyError{Kind: kind, Names: names, Detail: detail}
}
