package models

// Player is a tournament participant. Players are keyed by name; creation
// happens in the game flow, the admin surface only lists and removes them.
type Player struct {
	Name string
}
