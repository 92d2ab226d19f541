// SPDX-License-Identifier: MIT
//
// Copyright © 2019 Kent Gibson <warthog618@gmail.com>.

//go:build linux
// +build linux

package i2c

import (
	"encoding/binary"
	"fmt"
	"os"
	"sync"

	"golang.org/x/sys/unix"
)

// i2cSlave is the i2c-dev ioctl that binds the file to a slave address.
const i2cSlave = 0x0703

// Device is a slave device on an I2C bus.
type Device struct {
	// The mu covers the file so Close can't race a transaction.
	// It does not make a sequence of transactions atomic.
	mu   sync.Mutex
	f    *os.File
	path string
	addr uint16
}

// Open opens the I2C bus /dev/i2c-<bus> and binds it to the device at addr.
func Open(bus int, addr uint16) (*Device, error) {
	return OpenPath(fmt.Sprintf("/dev/i2c-%d", bus), addr)
}

// OpenPath opens the I2C bus device node at path and binds it to the device
// at addr.
func OpenPath(path string, addr uint16) (*Device, error) {
	if addr > MaxAddr {
		return nil, fmt.Errorf("%s: 0x%02x: %w", path, addr, ErrInvalidAddr)
	}
	f, err := os.OpenFile(path, os.O_RDWR, 0)
	if err != nil {
		return nil, err
	}
	err = unix.IoctlSetInt(int(f.Fd()), i2cSlave, int(addr))
	if err != nil {
		f.Close()
		return nil, fmt.Errorf("%s: set slave address 0x%02x: %w", path, addr, err)
	}
	return &Device{f: f, path: path, addr: addr}, nil
}

// Addr returns the slave address of the device.
func (d *Device) Addr() uint16 {
	return d.addr
}

// Close releases the bus.
func (d *Device) Close() error {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.f == nil {
		return ErrClosed
	}
	err := d.f.Close()
	d.f = nil
	return err
}

// Write writes p to the device in a single transaction.
func (d *Device) Write(p []byte) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.f == nil {
		return ErrClosed
	}
	n, err := d.f.Write(p)
	if err != nil {
		return fmt.Errorf("%s: write 0x%02x: %w", d.path, d.addr, err)
	}
	if n != len(p) {
		return fmt.Errorf("%s: write 0x%02x: %w", d.path, d.addr, ErrShortWrite)
	}
	return nil
}

// Read fills p from the device in a single transaction.
func (d *Device) Read(p []byte) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.f == nil {
		return ErrClosed
	}
	n, err := d.f.Read(p)
	if err != nil {
		return fmt.Errorf("%s: read 0x%02x: %w", d.path, d.addr, err)
	}
	if n != len(p) {
		return fmt.Errorf("%s: read 0x%02x: %w", d.path, d.addr, ErrShortRead)
	}
	return nil
}

// WriteWord writes v to register reg, most significant byte first.
//
// This is the byte order of the TI ADCs and is the reverse of the SMBus
// write word protocol.
func (d *Device) WriteWord(reg uint8, v uint16) error {
	var buf [3]byte
	buf[0] = reg
	binary.BigEndian.PutUint16(buf[1:], v)
	return d.Write(buf[:])
}

// ReadWord reads register reg, most significant byte first.
func (d *Device) ReadWord(reg uint8) (uint16, error) {
	if err := d.Write([]byte{reg}); err != nil {
		return 0, err
	}
	var buf [2]byte
	if err := d.Read(buf[:]); err != nil {
		return 0, err
	}
	return binary.BigEndian.Uint16(buf[:]), nil
}
