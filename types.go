package adventure

import "image"

// Color represents an RGBA color with components in [0, 1]. Not premultiplied.
// Premultiplication occurs at render submission time.
type Color struct {
	R, G, B, A float64
}

// ColorWhite is the default tint (no color modification).
var ColorWhite = Color{1, 1, 1, 1}

// ColorBlack is the clear color used between frames.
var ColorBlack = Color{0, 0, 0, 1}

// Point is an integer position in world pixels. The origin is the top-left
// corner of the map with Y increasing downward.
type Point struct {
	X, Y int
}

// Add returns p translated by (dx, dy).
func (p Point) Add(dx, dy int) Point {
	return Point{p.X + dx, p.Y + dy}
}

// Rect is an axis-aligned integer rectangle, top-left anchored.
type Rect struct {
	X, Y, Width, Height int
}

// Contains reports whether the point (x, y) lies inside the rectangle.
// Points on the edge are considered inside.
func (r Rect) Contains(x, y int) bool {
	return x >= r.X && x <= r.X+r.Width &&
		y >= r.Y && y <= r.Y+r.Height
}

// Intersects reports whether r and other overlap.
// Adjacent rectangles (sharing only an edge) are considered intersecting.
func (r Rect) Intersects(other Rect) bool {
	return r.X <= other.X+other.Width &&
		r.X+r.Width >= other.X &&
		r.Y <= other.Y+other.Height &&
		r.Y+r.Height >= other.Y
}

// Center returns the integer center of the rectangle.
func (r Rect) Center() Point {
	return Point{r.X + r.Width/2, r.Y + r.Height/2}
}

// Empty reports whether the rectangle has no area.
func (r Rect) Empty() bool {
	return r.Width <= 0 || r.Height <= 0
}

// image converts the rectangle to an image.Rectangle for SubImage calls.
func (r Rect) image() image.Rectangle {
	return image.Rect(r.X, r.Y, r.X+r.Width, r.Y+r.Height)
}

// Direction is the player's facing.
type Direction uint8

const (
	DirectionDown Direction = iota // facing the bottom of the screen (default)
	DirectionUp                    // facing the top of the screen
	DirectionLeft                  // facing left
	DirectionRight                 // facing right
)

func (d Direction) String() string {
	switch d {
	case DirectionUp:
		return "Up"
	case DirectionLeft:
		return "Left"
	case DirectionRight:
		return "Right"
	default:
		return "Down"
	}
}

// PlayerState is the player's behavioral state.
type PlayerState uint8

const (
	PlayerIdle     PlayerState = iota // standing still
	PlayerMove                        // moving this frame
	PlayerAttack                      // attacking this frame
	PlayerGameOver                    // dead; terminal
)

func (s PlayerState) String() string {
	switch s {
	case PlayerMove:
		return "Move"
	case PlayerAttack:
		return "Attack"
	case PlayerGameOver:
		return "GameOver"
	default:
		return "Idle"
	}
}

// MouseButton identifies a mouse button.
type MouseButton uint8

const (
	MouseButtonLeft   MouseButton = iota // primary (left) mouse button
	MouseButtonRight                     // secondary (right) mouse button
	MouseButtonMiddle                    // middle mouse button (scroll wheel click)
)

// Action is a level-triggered gameplay input.
type Action uint8

const (
	ActionUp     Action = iota // move up
	ActionDown                 // move down
	ActionLeft                 // move left
	ActionRight                // move right
	ActionAttack               // swing at hazards in front of the player
	ActionBomb                 // drop a hazard at the player's feet
	actionCount
)

var actionNames = [actionCount]string{"up", "down", "left", "right", "attack", "bomb"}

func (a Action) String() string {
	if a < actionCount {
		return actionNames[a]
	}
	return "unknown"
}

// ParseAction returns the Action with the given name ("up", "attack", ...).
func ParseAction(name string) (Action, bool) {
	for i, n := range actionNames {
		if n == name {
			return Action(i), true
		}
	}
	return 0, false
}

// Fixed logical hit-box sizes used for every overlap test. They are not
// derived from sprite sizes.
const (
	PlayerSize = 48
	EffectSize = 48
	PickupSize = 16
)
