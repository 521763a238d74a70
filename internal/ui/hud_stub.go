//go:build !ebiten

package ui

import "sandtrap/internal/core"

// HUD is a placeholder for headless builds.
type HUD struct{}

// NewHUD returns an inert HUD.
func NewHUD(core.Sim) *HUD { return &HUD{} }

// Update is a no-op placeholder.
func (h *HUD) Update() {}

// Draw is a no-op placeholder.
func (h *HUD) Draw(any) {}
