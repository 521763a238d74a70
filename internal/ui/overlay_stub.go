//go:build !ebiten

package ui

// Overlay is a placeholder for headless builds.
type Overlay struct{}

// NewOverlay returns an inert overlay.
func NewOverlay() *Overlay { return &Overlay{} }

// SetStatus is a no-op placeholder.
func (o *Overlay) SetStatus(int, bool, bool, bool, int) {}

// Update is a no-op placeholder.
func (o *Overlay) Update() {}

// Draw is a no-op placeholder.
func (o *Overlay) Draw(any) {}
