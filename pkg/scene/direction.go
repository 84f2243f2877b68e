package scene

import "errors"

// Direction of a pan or orbit step
type Direction int

const (
	DirectionNone Direction = iota
	DirectionLeft
	DirectionRight
	DirectionUp
	DirectionDown
)

// ErrInvalidDirection is returned for direction values outside the enum.
// It signals a caller bug.
var ErrInvalidDirection = errors.New("invalid direction")

func (d Direction) String() string {
	switch d {
	case DirectionNone:
		return "none"
	case DirectionLeft:
		return "left"
	case DirectionRight:
		return "right"
	case DirectionUp:
		return "up"
	case DirectionDown:
		return "down"
	default:
		return "invalid"
	}
}

// ParseDirection converts a name produced by String back to a Direction
func ParseDirection(s string) (Direction, error) {
	for d := DirectionNone; d <= DirectionDown; d++ {
		if d.String() == s {
			return d, nil
		}
	}
	return DirectionNone, ErrInvalidDirection
}
