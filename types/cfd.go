package types

import (
	"fmt"
	"strings"
)

type BCFLAG uint8

const (
	BC_None BCFLAG = iota
	BC_Periodic
	BC_SupersonicInlet
	BC_SupersonicOutlet
	BC_Wall
	BC_SubsonicInlet
	BC_SubsonicOutlet
	BC_Smart
	BC_Upwind
	BC_Extrapolation
)

var BCNameMap = map[string]BCFLAG{
	"periodic":          BC_Periodic,
	"supersonic_inlet":  BC_SupersonicInlet,
	"supersonicinlet":   BC_SupersonicInlet,
	"supersonic_outlet": BC_SupersonicOutlet,
	"supersonicoutlet":  BC_SupersonicOutlet,
	"wall":              BC_Wall,
	"slip":              BC_Wall,
	"subsonic_inlet":    BC_SubsonicInlet,
	"inflow":            BC_SubsonicInlet,
	"in":                BC_SubsonicInlet,
	"subsonic_outlet":   BC_SubsonicOutlet,
	"outflow":           BC_SubsonicOutlet,
	"out":               BC_SubsonicOutlet,
	"smart":             BC_Smart,
	"far":               BC_Smart,
	"upwind":            BC_Upwind,
	"dirichlet":         BC_Upwind,
	"extrapolation":     BC_Extrapolation,
	"neuman":            BC_Extrapolation,
}

func (bc BCFLAG) String() string {
	switch bc {
	case BC_Periodic:
		return "Periodic"
	case BC_SupersonicInlet:
		return "SupersonicInlet"
	case BC_SupersonicOutlet:
		return "SupersonicOutlet"
	case BC_Wall:
		return "Wall"
	case BC_SubsonicInlet:
		return "SubsonicInlet"
	case BC_SubsonicOutlet:
		return "SubsonicOutlet"
	case BC_Smart:
		return "Smart"
	case BC_Upwind:
		return "Upwind"
	case BC_Extrapolation:
		return "Extrapolation"
	}
	return "None"
}

// NeedsGivenState is true for conditions that read an outside state.
func (bc BCFLAG) NeedsGivenState() bool {
	switch bc {
	case BC_SupersonicInlet, BC_SubsonicInlet, BC_SubsonicOutlet, BC_Smart, BC_Upwind:
		return true
	}
	return false
}

// ParseBCName is case-insensitive and trims whitespace.
func ParseBCName(name string) (bc BCFLAG, err error) {
	var ok bool
	if bc, ok = BCNameMap[strings.ToLower(strings.TrimSpace(name))]; !ok {
		err = fmt.Errorf("unknown boundary condition %q", name)
	}
	return
}
