// SPDX-License-Identifier: MIT
//
// Copyright © 2019 Kent Gibson <warthog618@gmail.com>.

// Package periph provides I2C device access via the periph.io host drivers.
//
// This is an alternative to the i2c package for hosts and bus bridges
// supported by periph.io but not exposed as /dev/i2c-N.
package periph

import (
	"periph.io/x/conn/v3/i2c"
	"periph.io/x/conn/v3/i2c/i2creg"
	"periph.io/x/conn/v3/physic"
	"periph.io/x/host/v3"
)

// Dev is a slave device on a periph.io I2C bus.
type Dev struct {
	dev i2c.Dev
	// closer is set only if the bus was opened by Open.
	closer i2c.BusCloser
}

// Open initialises the periph.io host drivers and opens the named bus.
// An empty name selects the first available bus.
func Open(name string, addr uint16) (*Dev, error) {
	if _, err := host.Init(); err != nil {
		return nil, err
	}
	bus, err := i2creg.Open(name)
	if err != nil {
		return nil, err
	}
	d := New(bus, addr)
	d.closer = bus
	return d, nil
}

// New creates a Dev for the device at addr on an already open bus.
// The bus remains owned by the caller.
func New(bus i2c.Bus, addr uint16) *Dev {
	return &Dev{dev: i2c.Dev{Bus: bus, Addr: addr}}
}

// Close releases the bus if it was opened by Open.
func (d *Dev) Close() error {
	if d.closer == nil {
		return nil
	}
	return d.closer.Close()
}

// Write writes p to the device in a single transaction.
func (d *Dev) Write(p []byte) error {
	return d.dev.Tx(p, nil)
}

// Read fills p from the device in a single transaction.
func (d *Dev) Read(p []byte) error {
	return d.dev.Tx(nil, p)
}

// WriteWord writes v to register reg, most significant byte first.
func (d *Dev) WriteWord(reg uint8, v uint16) error {
	return d.dev.Tx([]byte{reg, byte(v >> 8), byte(v)}, nil)
}

// Potential converts a reading in volts to a physic.ElectricPotential.
func Potential(v float32) physic.ElectricPotential {
	return physic.ElectricPotential(float64(v) * float64(physic.Volt))
}
