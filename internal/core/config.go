package core

// RuntimeConfig is what the front end needs to know about the terminal and
// the run before the first frame.
type RuntimeConfig struct {
	ScreenW  int   // terminal columns
	ScreenH  int   // terminal rows
	TickRate int   // frames per second
	Seed     int64 // 0 picks a time-based seed
}
