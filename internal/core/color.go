package core

// Color is a semantic palette role for a screen cell. The platform layer
// maps each role to a concrete terminal color from the active theme.
type Color uint8

const (
	ColorDefault Color = iota
	ColorGrid
	ColorSnakeHead
	ColorSnakeBody
	ColorObstacle
	ColorFood
	ColorPowerUp
	ColorText
	ColorAccent
	ColorSelected
)
