package app

import "flag"

// Config holds the command line options of the graphical shell.
type Config struct {
	Level  string
	Width  int
	Height int
	Seed   int64
	Scale  int
	TPS    int
}

// NewConfig returns the default options.
func NewConfig() *Config {
	return &Config{
		Width:  240,
		Height: 135,
		Seed:   1337,
		Scale:  4,
		TPS:    60,
	}
}

// Bind registers the options on the provided flag set.
func (c *Config) Bind(fs *flag.FlagSet) {
	fs.StringVar(&c.Level, "level", c.Level, "level file to load; generated from seed when empty")
	fs.IntVar(&c.Width, "w", c.Width, "generated level width in cells")
	fs.IntVar(&c.Height, "h", c.Height, "generated level height in cells")
	fs.Int64Var(&c.Seed, "seed", c.Seed, "generator and simulation seed")
	fs.IntVar(&c.Scale, "scale", c.Scale, "screen pixels per cell")
	fs.IntVar(&c.TPS, "tps", c.TPS, "simulation ticks per second")
}
