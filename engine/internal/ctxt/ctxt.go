// Copyright 2023 Gustavo C. Viegas. All rights reserved.

// Package ctxt provides the GPU driver used in the engine.
//
// Unlike drivers that own their device, OpenGL requires
// a current context before it can be opened, so loading
// is deferred until a window exists.
package ctxt

import (
	"errors"
	"log/slog"
	"strings"

	"github.com/gviegas/puppet/driver"
)

var (
	drv driver.Driver
	gpu driver.GPU
)

var errNoDriver = errors.New("ctxt: driver not found")

// Load attempts to load any driver whose name contains
// the name string. It is case insensitive.
// If name is the empty string, then all registered
// drivers are considered.
// A previously loaded driver is closed first.
func Load(name string) error {
	Unload()
	drivers := driver.Drivers()
	err := errNoDriver
	name = strings.ToLower(name)
	for i := range drivers {
		if !strings.Contains(strings.ToLower(drivers[i].Name()), name) {
			continue
		}
		var u driver.GPU
		if u, err = drivers[i].Open(); err != nil {
			slog.Warn("driver failed to open", "name", drivers[i].Name(), "err", err)
			continue
		}
		drv = drivers[i]
		gpu = u
		slog.Info("driver loaded", "name", drv.Name())
		return nil
	}
	return err
}

// Unload closes the loaded driver, if any.
func Unload() {
	if drv != nil {
		drv.Close()
		drv = nil
		gpu = nil
	}
}

// Driver returns the driver.Driver.
// It is nil if no driver is loaded.
func Driver() driver.Driver { return drv }

// GPU returns the driver.GPU.
// It is nil if no driver is loaded.
func GPU() driver.GPU { return gpu }
