package core

// RuntimeConfig is what a front end hands a game on every reset.
type RuntimeConfig struct {
	ScreenW  int   // columns available to the game
	ScreenH  int   // rows available to the game
	TickRate int   // Step calls per second
	Seed     int64 // 0 draws a fresh seed from entropy
}

// DefaultConfig returns the config of a standard 80x24 terminal at 60 ticks.
func DefaultConfig() RuntimeConfig {
	return RuntimeConfig{
		ScreenW:  80,
		ScreenH:  24,
		TickRate: 60,
	}
}

// GameState is the summary a front end needs each tick.
type GameState struct {
	Score    int
	GameOver bool // no move can change the board, or the engine failed
	Paused   bool // paused by the player or by a too-small screen
}

// StepResult is returned by Game.Step after each tick.
type StepResult struct {
	State GameState
}
