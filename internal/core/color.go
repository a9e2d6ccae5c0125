package core

// Color names what a screen cell shows rather than a terminal color.
// The platform layer decides how each one is drawn.
type Color uint8

// Palette of map elements.
const (
	ColorDefault Color = iota
	ColorWall
	ColorGround
	ColorRail
	ColorIntersection
	ColorCart
	ColorElf
	ColorGoblin
	ColorWounded
	ColorCrash
	ColorFrame
)
