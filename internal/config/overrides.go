package config

// Overrides contains CLI flag values that can override user config.
// Zero values indicate the flag was not set and the user config default
// should be used.
type Overrides struct {
	// ASCIIOnly uses ASCII characters instead of Nerd Font icons.
	ASCIIOnly bool

	// StripPosition overrides the tab strip position.
	StripPosition string

	// NoAnimations disables snapback/preview animations.
	NoAnimations bool
}

// ApplyOverrides applies CLI flag overrides to global config, falling back to
// user config defaults. If userConfig is nil, only set CLI flag values are
// applied.
func ApplyOverrides(overrides Overrides, userConfig *UserConfig) {
	if overrides.ASCIIOnly {
		UseASCIIOnly = true
	} else if userConfig != nil && userConfig.Appearance.ASCIIOnly {
		UseASCIIOnly = true
	}

	if overrides.StripPosition != "" {
		StripPosition = overrides.StripPosition
	} else if userConfig != nil && userConfig.Appearance.StripPosition != "" {
		StripPosition = userConfig.Appearance.StripPosition
	}

	if overrides.NoAnimations {
		AnimationsEnabled = false
	} else if userConfig != nil && userConfig.Appearance.AnimationsEnabled != nil {
		AnimationsEnabled = *userConfig.Appearance.AnimationsEnabled
	}
}
