// Package level defines the persisted level structure and its round trip to
// disk. Only persistent materials survive a save: transient stand-ins and
// effects are mapped out on snapshot, and unknown codes are coerced to empty
// on load instead of failing, tolerating drift between save formats.
package level

import (
	"fmt"
	"os"

	"github.com/charmbracelet/log"
	"github.com/vmihailenco/msgpack/v5"

	"sandtrap/internal/terrain"
)

// Level is the serializable shape of one hole: dimensions, a row-indexed
// array of material codes, and the tee position.
type Level struct {
	Width  int     `msgpack:"width"`
	Height int     `msgpack:"height"`
	Cells  []uint8 `msgpack:"cells"`
	BallX  int     `msgpack:"ball_x"`
	BallY  int     `msgpack:"ball_y"`
}

// Validate checks structural consistency.
func (l *Level) Validate() error {
	if l.Width <= 0 || l.Height <= 0 {
		return fmt.Errorf("level: invalid dimensions %dx%d", l.Width, l.Height)
	}
	if len(l.Cells) != l.Width*l.Height {
		return fmt.Errorf("level: have %d cells, want %d", len(l.Cells), l.Width*l.Height)
	}
	return nil
}

// Apply writes the level's cells into the grid. Codes this build does not
// recognize, and codes for materials that only exist in a running
// simulation, are coerced to Empty and counted.
func (l *Level) Apply(g *terrain.Grid) {
	coerced := 0
	for y := 0; y < l.Height; y++ {
		for x := 0; x < l.Width; x++ {
			code := l.Cells[y*l.Width+x]
			m, ok := terrain.MaterialFromCode(code)
			if !ok || (m != terrain.Empty && !m.Persistent()) {
				coerced++
				m = terrain.Empty
			}
			g.SetMaterial(x, y, m)
		}
	}
	if coerced > 0 {
		log.Warn("coerced unknown level codes to empty", "count", coerced)
	}
}

// Snapshot captures the grid as a level, mapping transient materials to
// their persistent equivalents. The resulting level round-trips exactly.
func Snapshot(g *terrain.Grid, ballX, ballY int) *Level {
	size := g.Size()
	l := &Level{
		Width:  size.W,
		Height: size.H,
		Cells:  make([]uint8, size.W*size.H),
		BallX:  ballX,
		BallY:  ballY,
	}
	for y := 0; y < size.H; y++ {
		for x := 0; x < size.W; x++ {
			l.Cells[y*size.W+x] = g.MaterialAt(x, y).PersistCode()
		}
	}
	return l
}

// Encode serializes the level.
func (l *Level) Encode() ([]byte, error) {
	return msgpack.Marshal(l)
}

// Decode parses and validates a serialized level.
func Decode(data []byte) (*Level, error) {
	var l Level
	if err := msgpack.Unmarshal(data, &l); err != nil {
		return nil, fmt.Errorf("level: decode: %w", err)
	}
	if err := l.Validate(); err != nil {
		return nil, err
	}
	return &l, nil
}

// WriteFile saves the level to path.
func (l *Level) WriteFile(path string) error {
	data, err := l.Encode()
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o644)
}

// ReadFile loads a level from path.
func ReadFile(path string) (*Level, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return Decode(data)
}
