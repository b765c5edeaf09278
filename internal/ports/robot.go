package ports

import "urdf2sem/internal/types"

// RobotDescriptionPort loads a robot description document.
type RobotDescriptionPort interface {
	Load(path string) (types.Robot, error)
}
