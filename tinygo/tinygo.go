// SPDX-License-Identifier: MIT
//
// Copyright © 2019 Kent Gibson <warthog618@gmail.com>.

// Package tinygo provides I2C device access via a TinyGo drivers.I2C bus,
// such as a machine.I2C on a microcontroller.
package tinygo

import (
	"tinygo.org/x/drivers"
)

// Device is a slave device on a drivers.I2C bus.
type Device struct {
	bus  drivers.I2C
	addr uint16
	w    [3]byte
}

// New creates a Device for the device at addr on bus.
func New(bus drivers.I2C, addr uint16) *Device {
	return &Device{bus: bus, addr: addr}
}

// Addr returns the slave address of the device.
func (d *Device) Addr() uint16 {
	return d.addr
}

// Write writes p to the device in a single transaction.
func (d *Device) Write(p []byte) error {
	return d.bus.Tx(d.addr, p, nil)
}

// Read fills p from the device in a single transaction.
func (d *Device) Read(p []byte) error {
	return d.bus.Tx(d.addr, nil, p)
}

// WriteWord writes v to register reg, most significant byte first.
func (d *Device) WriteWord(reg uint8, v uint16) error {
	d.w[0] = reg
	d.w[1] = byte(v >> 8)
	d.w[2] = byte(v)
	return d.bus.Tx(d.addr, d.w[:], nil)
}
