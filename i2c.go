// SPDX-License-Identifier: MIT
//
// Copyright © 2019 Kent Gibson <warthog618@gmail.com>.

//
//
// Package i2c provides access to devices on Linux I2C buses via the i2c-dev
// interface (/dev/i2c-N).
//
// Each Device is bound to a single slave address, and supports the plain
// read and write transactions, and the register word writes, required by
// simple register based devices such as the ADS1115 in the ads111x package.
//
// Example of use:
//
// 	dev, err := i2c.Open(i2c.DefaultBus, 0x48)
// 	if err != nil {
// 		return err
// 	}
// 	defer dev.Close()
// 	err = dev.WriteWord(0x01, 0x4180)
//
// The i2c-dev kernel module must be loaded, and on the Raspberry Pi the I2C
// interface enabled, for the device nodes to be present.
//
package i2c

import (
	"errors"
	"fmt"
	"strconv"
)

const (
	// DefaultBus is the bus exposed on the J8 header of the Raspberry Pi.
	DefaultBus = 1

	// MaxAddr is the largest 7-bit slave address.
	MaxAddr = 0x7f
)

var (
	// ErrClosed indicates the device has been closed.
	ErrClosed = errors.New("device closed")

	// ErrShortRead indicates a read returned fewer bytes than requested.
	ErrShortRead = errors.New("short read")

	// ErrShortWrite indicates a write transferred fewer bytes than requested.
	ErrShortWrite = errors.New("short write")

	// ErrInvalidAddr indicates the slave address is outside the 7-bit range.
	ErrInvalidAddr = errors.New("invalid address")
)

// ParseAddr parses a 7-bit slave address, in decimal or with a 0x prefix
// for hex.
func ParseAddr(s string) (uint16, error) {
	a, err := strconv.ParseUint(s, 0, 16)
	if err != nil {
		return 0, fmt.Errorf("can't parse address '%s'", s)
	}
	if a > MaxAddr {
		return 0, fmt.Errorf("address '%s': %w", s, ErrInvalidAddr)
	}
	return uint16(a), nil
}
