// Package tabflow provides a reusable tab drag demo that can be embedded
// in other Bubble Tea applications or used as a standalone TUI.
//
// tabflow renders a small multi-window workspace where every window has a
// draggable tab strip: tabs reorder within a strip, tear out into new
// windows, and transfer between windows along with their unsaved document
// state.
//
// # Basic Usage
//
// Create a new tabflow instance with default options:
//
//	model := tabflow.New()
//	p := tea.NewProgram(model)
//	if _, err := p.Run(); err != nil {
//		log.Fatal(err)
//	}
//
// # Custom Configuration
//
// Use options to customize behavior:
//
//	model := tabflow.New(
//		tabflow.WithTheme("dracula"),
//		tabflow.WithStripPosition("bottom"),
//		tabflow.WithAnimations(false),
//	)
package tabflow

import (
	tea "charm.land/bubbletea/v2"

	"github.com/tabflow/tabflow/internal/app"
	"github.com/tabflow/tabflow/internal/config"
	"github.com/tabflow/tabflow/internal/input"
	"github.com/tabflow/tabflow/internal/theme"
)

// Model is the main tabflow model that implements tea.Model.
// It wraps the internal Workspace struct and provides a clean public API.
type Model = app.Workspace

// Options configures a tabflow instance.
type Options struct {
	// Theme is the color theme name (e.g., "dracula", "nord", "tokyonight").
	// Leave empty to use standard terminal colors.
	Theme string

	// StripPosition is where each window docks its tab strip.
	// Valid values: "top", "bottom"
	StripPosition string

	// Animations enables/disables snapback and preview animations.
	Animations bool

	// ASCIIOnly uses ASCII characters instead of decorative glyphs.
	ASCIIOnly bool

	// Seed populates the workspace with the demo windows and documents.
	// When false the caller builds its own windows.
	Seed bool

	// Width is the initial width (set automatically if 0).
	Width int

	// Height is the initial height (set automatically if 0).
	Height int

	// UserConfig is a custom user configuration. If nil, the config file is
	// loaded, falling back to defaults.
	UserConfig *config.UserConfig
}

// Option is a functional option for configuring tabflow.
type Option func(*Options)

// WithTheme sets the color theme.
func WithTheme(name string) Option {
	return func(o *Options) {
		o.Theme = name
	}
}

// WithStripPosition sets where each window docks its tab strip.
func WithStripPosition(position string) Option {
	return func(o *Options) {
		o.StripPosition = position
	}
}

// WithAnimations enables or disables snapback and preview animations.
func WithAnimations(enabled bool) Option {
	return func(o *Options) {
		o.Animations = enabled
	}
}

// WithASCIIOnly enables ASCII-only mode (no decorative glyphs).
func WithASCIIOnly(enabled bool) Option {
	return func(o *Options) {
		o.ASCIIOnly = enabled
	}
}

// WithoutSeed skips the demo documents so the embedding application can
// build its own windows.
func WithoutSeed() Option {
	return func(o *Options) {
		o.Seed = false
	}
}

// WithSize sets the initial terminal size.
func WithSize(width, height int) Option {
	return func(o *Options) {
		o.Width = width
		o.Height = height
	}
}

// WithUserConfig sets a custom user configuration.
func WithUserConfig(cfg *config.UserConfig) Option {
	return func(o *Options) {
		o.UserConfig = cfg
	}
}

// DefaultOptions returns the default options.
func DefaultOptions() Options {
	return Options{
		Animations: true,
		Seed:       true,
	}
}

// New creates a new tabflow model with the given options.
// This is the main entry point for using tabflow as a library.
func New(opts ...Option) *Model {
	options := DefaultOptions()
	for _, opt := range opts {
		opt(&options)
	}
	return newModel(options)
}

// PTY describes the terminal a session is attached to.
type PTY interface {
	Width() int
	Height() int
}

// NewForPTY creates a new tabflow model for a PTY session with the given
// options. This is useful when embedding tabflow in web terminals or SSH
// servers.
func NewForPTY(pty PTY, opts ...Option) *Model {
	options := DefaultOptions()
	for _, opt := range opts {
		opt(&options)
	}
	options.Width = pty.Width()
	options.Height = pty.Height()
	return newModel(options)
}

// newModel creates the internal model with applied options.
func newModel(options Options) *Model {
	app.SetInputHandler(input.HandleInput)

	if options.ASCIIOnly {
		config.UseASCIIOnly = true
	}
	if options.StripPosition != "" {
		config.StripPosition = options.StripPosition
	}
	if !options.Animations {
		config.AnimationsEnabled = false
	}

	if options.Theme != "" {
		_ = theme.Initialize(options.Theme)
	}

	var userConfig *config.UserConfig
	if options.UserConfig != nil {
		userConfig = options.UserConfig
	} else {
		var err error
		userConfig, err = config.LoadUserConfig()
		if err != nil {
			userConfig = config.DefaultConfig()
		}
	}

	m := app.NewWorkspace(userConfig)
	m.AutoSeed = options.Seed
	if options.Seed && options.Width > 0 && options.Height > 0 {
		m.SeedDemo(options.Width, options.Height)
	}
	return m
}

// ProgramOptions returns recommended tea.ProgramOption values for running
// tabflow:
//
//	model := tabflow.New()
//	p := tea.NewProgram(model, tabflow.ProgramOptions()...)
func ProgramOptions() []tea.ProgramOption {
	return []tea.ProgramOption{
		tea.WithFPS(config.NormalFPS),
		tea.WithFilter(FilterMouseMotion),
	}
}

// FilterMouseMotion is a tea.WithFilter function that reduces CPU usage by
// dropping mouse motion events outside of a live drag gesture.
func FilterMouseMotion(model tea.Model, msg tea.Msg) tea.Msg {
	if _, ok := msg.(tea.MouseMotionMsg); !ok {
		return msg
	}
	m, ok := model.(*Model)
	if !ok {
		return msg
	}
	if m.Machine != nil && m.Machine.Active() {
		return msg
	}
	return nil
}
