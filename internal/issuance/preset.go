package issuance

import "fmt"

// Preset is a named set of capability flags applied in one step.
type Preset string

const (
	// PresetRecommended enables the upgradeable, manageable token defaults.
	PresetRecommended Preset = "recommended"
	// PresetFixed disables every capability: a fixed-supply, immutable token.
	PresetFixed Preset = "fixed"
	// PresetFull enables every capability.
	PresetFull Preset = "full"
)

// Presets lists the presets in display order.
var Presets = []Preset{PresetRecommended, PresetFixed, PresetFull}

// ParsePreset maps a name to a Preset.
func ParsePreset(s string) (Preset, error) {
	for _, p := range Presets {
		if string(p) == s {
			return p, nil
		}
	}
	return "", fmt.Errorf("unknown preset %q (want recommended, fixed or full)", s)
}

// ApplyPreset overwrites every capability flag. It never touches the text
// fields or the terms acknowledgment.
func (f *Form) ApplyPreset(p Preset) {
	switch p {
	case PresetFixed:
		f.setCapabilities(false, false, false, false, false, false, false, false)
	case PresetFull:
		f.setCapabilities(true, true, true, true, true, true, true, true)
	default:
		f.setCapabilities(true, true, false, false, false, true, true, true)
	}
	f.normalizeCapabilities()
}

func (f *Form) setCapabilities(mint, burn, freeze, wipe, pause, changeOwner, upgrade, addRoles bool) {
	f.CanMint = mint
	f.CanBurn = burn
	f.CanFreeze = freeze
	f.CanWipe = wipe
	f.CanPause = pause
	f.CanChangeOwner = changeOwner
	f.CanUpgrade = upgrade
	f.CanAddSpecialRoles = addRoles
}

// MatchPreset reports which preset the current flags equal, if any.
func (f Form) MatchPreset() (Preset, bool) {
	for _, p := range Presets {
		candidate := f
		candidate.ApplyPreset(p)
		if candidate == f {
			return p, true
		}
	}
	return "", false
}
