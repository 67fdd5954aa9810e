package main

import (
	"fmt"
	"os"

	"github.com/phanxgames/morsetree"
	"github.com/phanxgames/morsetree/sonify"
	"github.com/phanxgames/morsetree/view"
	"gopkg.in/yaml.v3"
)

// appConfig is the YAML file accepted by --config. Every block is optional;
// missing keys keep their defaults.
type appConfig struct {
	Growth morsetree.Config `yaml:"growth"`
	Root   rootConfig       `yaml:"root"`
	Window windowConfig     `yaml:"window"`
	Audio  sonify.Options   `yaml:"audio"`
}

type rootConfig struct {
	X      float64 `yaml:"x"`
	Y      float64 `yaml:"y"`
	Angle  float64 `yaml:"angle"`
	Length float64 `yaml:"length"`
	Width  float64 `yaml:"width"`
}

type windowConfig struct {
	Title  string `yaml:"title"`
	Width  int    `yaml:"width"`
	Height int    `yaml:"height"`
	TPS    int    `yaml:"tps"`
}

func defaultAppConfig() appConfig {
	rc := view.DefaultRunConfig()
	return appConfig{
		Growth: morsetree.DefaultConfig(),
		Root:   rootConfig{X: 350, Y: 500, Angle: -90, Length: 120, Width: 6},
		Window: windowConfig{Title: rc.Title, Width: rc.Width, Height: rc.Height, TPS: rc.TPS},
		Audio:  sonify.DefaultOptions(),
	}
}

func parseAppConfig(data []byte) (appConfig, error) {
	cfg := defaultAppConfig()
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return appConfig{}, fmt.Errorf("parse config: %w", err)
	}
	if err := cfg.Growth.Validate(); err != nil {
		return appConfig{}, err
	}
	if cfg.Root.Length <= 0 || cfg.Root.Width <= 0 {
		return appConfig{}, fmt.Errorf("root length and width must be positive, got %v and %v", cfg.Root.Length, cfg.Root.Width)
	}
	if cfg.Window.Width <= 0 || cfg.Window.Height <= 0 {
		return appConfig{}, fmt.Errorf("window size must be positive, got %dx%d", cfg.Window.Width, cfg.Window.Height)
	}
	return cfg, nil
}

// loadAppConfig reads path, or returns the defaults when path is empty.
func loadAppConfig(path string) (appConfig, error) {
	if path == "" {
		return defaultAppConfig(), nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return appConfig{}, fmt.Errorf("read config: %w", err)
	}
	return parseAppConfig(data)
}

func (c appConfig) rootBranch() morsetree.Branch {
	return morsetree.NewRootBranch(morsetree.Vec2{X: c.Root.X, Y: c.Root.Y}, c.Root.Angle, c.Root.Length, c.Root.Width)
}

func (c appConfig) runConfig() view.RunConfig {
	rc := view.DefaultRunConfig()
	rc.Title = c.Window.Title
	rc.Width = c.Window.Width
	rc.Height = c.Window.Height
	rc.TPS = c.Window.TPS
	return rc
}

// newAutomaton builds an automaton from the loaded config, with the core
// debug trace enabled when the CLI runs at debug level.
func newAutomaton() *morsetree.Automaton {
	a := morsetree.New(app.cfg.Growth, app.cfg.rootBranch())
	if app.debug {
		a.SetDebugMode(true)
	}
	return a
}
