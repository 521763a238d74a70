//go:build ebiten

package ui

import (
	"fmt"
	"strconv"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/inpututil"

	"sandtrap/internal/core"
)

type parameterProvider interface {
	Parameters() core.ParameterSnapshot
}

// HUD shows the simulation tunables and lets the keyboard adjust them: Tab
// cycles the selection, +/- nudge the value by the control's step.
type HUD struct {
	sim      core.Sim
	controls []core.ParameterControl
	selected int

	intSetter   core.IntParameterSetter
	floatSetter core.FloatParameterSetter
	snapshot    core.ParameterSnapshot
}

// NewHUD constructs a HUD for the provided simulation.
func NewHUD(sim core.Sim) *HUD {
	h := &HUD{sim: sim}
	if provider, ok := sim.(core.ParameterControlsProvider); ok {
		h.controls = provider.ParameterControls()
	}
	if setter, ok := sim.(core.IntParameterSetter); ok {
		h.intSetter = setter
	}
	if setter, ok := sim.(core.FloatParameterSetter); ok {
		h.floatSetter = setter
	}
	return h
}

// Update refreshes the parameter snapshot and handles adjustment input.
func (h *HUD) Update() {
	if h == nil || len(h.controls) == 0 {
		return
	}
	if provider, ok := h.sim.(parameterProvider); ok {
		h.snapshot = provider.Parameters()
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyTab) {
		h.selected = (h.selected + 1) % len(h.controls)
	}
	dir := 0
	if inpututil.IsKeyJustPressed(ebiten.KeyEqual) || inpututil.IsKeyJustPressed(ebiten.KeyKPAdd) {
		dir = 1
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyMinus) || inpututil.IsKeyJustPressed(ebiten.KeyKPSubtract) {
		dir = -1
	}
	if dir != 0 {
		h.adjust(h.controls[h.selected], dir)
	}
}

func (h *HUD) adjust(ctrl core.ParameterControl, dir int) {
	current, ok := h.currentValue(ctrl.Key)
	if !ok {
		return
	}
	next := current + float64(dir)*ctrl.Step
	if ctrl.HasMin && next < ctrl.Min {
		next = ctrl.Min
	}
	if ctrl.HasMax && next > ctrl.Max {
		next = ctrl.Max
	}
	switch ctrl.Type {
	case core.ParamTypeInt:
		if h.intSetter != nil {
			h.intSetter.SetIntParameter(ctrl.Key, int(next))
		}
	case core.ParamTypeFloat:
		if h.floatSetter != nil {
			h.floatSetter.SetFloatParameter(ctrl.Key, next)
		}
	}
}

func (h *HUD) currentValue(key string) (float64, bool) {
	for _, p := range h.snapshot.Params {
		if p.Key != key {
			continue
		}
		v, err := strconv.ParseFloat(p.Value, 64)
		return v, err == nil
	}
	return 0, false
}

// Draw paints the parameter list in the lower-left corner.
func (h *HUD) Draw(screen *ebiten.Image) {
	if h == nil || len(h.controls) == 0 {
		return
	}
	baseY := screen.Bounds().Dy() - 16*len(h.controls) - 4
	values := map[string]string{}
	for _, p := range h.snapshot.Params {
		values[p.Key] = p.Value
	}
	for i, ctrl := range h.controls {
		marker := "  "
		if i == h.selected {
			marker = "> "
		}
		line := fmt.Sprintf("%s%s: %s", marker, ctrl.Label, values[ctrl.Key])
		ebitenutil.DebugPrintAt(screen, line, 0, baseY+16*i)
	}
}
