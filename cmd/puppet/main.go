// Copyright 2022 Gustavo C. Viegas. All rights reserved.

// Command puppet renders an articulated puppet in a
// window.
//
// Usage:
//
//	puppet [flags] <scene-file>
//
// The scene file is a YAML puppet description or a glTF
// model. Meshes are Wavefront OBJ files whose base names
// are the mesh IDs that the scene refers to.
//
// Keys: Tab selects the next mesh node, Space clears the
// selection, arrows rotate the joint above the selection,
// G toggles the trackball circle, O toggles the frame
// rate display, Esc or Q quits. Dragging with the left
// button rotates the puppet.
package main

import (
	"errors"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/gviegas/puppet"
	"github.com/gviegas/puppet/engine"
	"github.com/gviegas/puppet/wsi"
)

func main() {
	if err := newCommand(run).Execute(); err != nil {
		os.Exit(1)
	}
}

type flags struct {
	config  string
	width   int
	height  int
	assets  string
	meshes  []string
	level   string
	gizmo   bool
	overlay bool
}

// newCommand creates the root command, which calls run
// with the effective configuration.
func newCommand(run func(*Config) error) *cobra.Command {
	var f flags
	cmd := &cobra.Command{
		Use:           "puppet [flags] [scene-file]",
		Short:         "Render an articulated puppet",
		Args:          cobra.MaximumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := configure(cmd, &f, args)
			if err != nil {
				slog.Error("invalid configuration", "err", err)
				return err
			}
			if err := run(&cfg); err != nil {
				slog.Error("fatal", "err", err)
				return err
			}
			return nil
		},
	}
	fl := cmd.Flags()
	fl.StringVarP(&f.config, "config", "c", "puppet.toml", "configuration file")
	fl.IntVar(&f.width, "width", 0, "window width")
	fl.IntVar(&f.height, "height", 0, "window height")
	fl.StringVar(&f.assets, "assets", "", "directory of mesh files")
	fl.StringSliceVarP(&f.meshes, "mesh", "m", nil, "mesh file (repeatable)")
	fl.StringVar(&f.level, "log-level", "", "log level (debug, info, warn, error)")
	fl.BoolVar(&f.gizmo, "gizmo", true, "show the trackball circle")
	fl.BoolVar(&f.overlay, "overlay", false, "show the frame rate")
	return cmd
}

// configure loads the configuration file and applies
// the flags that were set explicitly. It also installs
// the default logger.
func configure(cmd *cobra.Command, f *flags, args []string) (Config, error) {
	cfg, err := LoadConfig(f.config)
	if err != nil {
		return cfg, err
	}
	fl := cmd.Flags()
	if fl.Changed("width") {
		cfg.Window.Width = f.width
	}
	if fl.Changed("height") {
		cfg.Window.Height = f.height
	}
	if fl.Changed("assets") {
		cfg.Assets.Dir = f.assets
	}
	if fl.Changed("mesh") {
		cfg.Assets.Meshes = f.meshes
	}
	if fl.Changed("log-level") {
		cfg.LogLevel = f.level
	}
	if fl.Changed("gizmo") {
		cfg.Render.ShowGizmo = f.gizmo
	}
	if fl.Changed("overlay") {
		cfg.Render.ShowOverlay = f.overlay
	}
	if len(args) > 0 {
		cfg.Scene = args[0]
	}
	if err := cfg.Validate(); err != nil {
		return cfg, err
	}
	if cfg.Scene == "" {
		return cfg, errors.New("no scene file given")
	}
	level, _ := cfg.Level()
	h := slog.NewTextHandler(cmd.ErrOrStderr(), &slog.HandlerOptions{Level: level})
	slog.SetDefault(slog.New(h))
	return cfg, nil
}

func run(cfg *Config) error {
	ecfg := cfg.Engine()
	engine.Configure(&ecfg)

	paths, err := cfg.MeshPaths()
	if err != nil {
		return err
	}
	scn, err := puppet.Open(cfg.Scene, paths...)
	if err != nil {
		return err
	}

	defer wsi.Terminate()
	wsi.SetAppName("puppet")
	win, err := wsi.NewWindow(cfg.Window.Width, cfg.Window.Height, cfg.Window.Title)
	if err != nil {
		return err
	}
	defer win.Close()
	rend, err := engine.NewOnscreen(win, scn.Meshes)
	if err != nil {
		return err
	}
	defer rend.Destroy()
	if err := win.Map(); err != nil {
		return err
	}

	a := &app{
		win:   win,
		rend:  rend,
		scene: scn,
		state: cfg.FrameState(),
		title: cfg.Window.Title,
	}
	return a.run()
}
