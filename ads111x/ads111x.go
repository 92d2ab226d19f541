// SPDX-License-Identifier: MIT
//
// Copyright © 2019 Kent Gibson <warthog618@gmail.com>.

// Package ads111x provides a device driver for the ADS1114/ADS1115 I2C ADCs.
//
// The driver packs a Config into the device configuration register on
// construction and returns readings scaled to volts.
//
// Example of use:
//
// 	dev, err := i2c.Open(i2c.DefaultBus, ads111x.DefaultAddress)
// 	if err != nil {
// 		return err
// 	}
// 	defer dev.Close()
// 	adc, err := ads111x.New(dev, ads111x.Config{
// 		Mux:  ads111x.AIN0_GND,
// 		Gain: ads111x.FS_6_144V,
// 		Mode: ads111x.SingleShot,
// 		Rate: ads111x.DR_128SPS,
// 	})
// 	if err != nil {
// 		return err
// 	}
// 	v, err := adc.ReadVoltage()
//
package ads111x

import (
	"encoding/binary"
	"errors"
)

// I2C addresses, selected by the connection of the ADDR pin.
const (
	DefaultAddress uint16 = 0x48 // ADDR tied to GND
	AddressVDD     uint16 = 0x49
	AddressSDA     uint16 = 0x4a
	AddressSCL     uint16 = 0x4b
)

// Register pointers.
const (
	ConversionRegister uint8 = 0x00
	ConfigRegister     uint8 = 0x01
)

// Bit positions of the fields within the configuration register.
const (
	muxShift  = 12
	gainShift = 9
	modeShift = 8
	rateShift = 5
)

// maxCode is the largest positive conversion result.
const maxCode = 32767.0

// Bus is the transport to a single device on an I2C bus.
type Bus interface {
	// Write writes p to the device in a single transaction.
	Write(p []byte) error
	// Read fills p from the device in a single transaction.
	Read(p []byte) error
	// WriteWord writes v to register reg, most significant byte first.
	WriteWord(reg uint8, v uint16) error
}

// Config is the device configuration applied on construction.
type Config struct {
	Mux  Mux
	Gain Gain
	Mode Mode
	Rate DataRate
}

// Validate checks that each field of the config is a known setting.
func (c Config) Validate() error {
	if int(c.Mux) >= len(muxNames) ||
		int(c.Gain) >= len(gainNames) ||
		int(c.Mode) >= len(modeNames) ||
		int(c.Rate) >= len(rateNames) {
		return ErrInvalidConfig
	}
	return nil
}

// Encode returns the configuration register word for the config, whether
// the config selects continuous conversion, and the volts per conversion
// code for the selected gain.
//
// The OS bit (15) and the comparator bits (4-0) are left clear.
// Encode does not validate the config. Unknown settings are masked to their
// field width and an unknown gain results in a zero gain factor.
func (c Config) Encode() (word uint16, continuous bool, gain float32) {
	word = c.Mux.Code()<<muxShift |
		c.Gain.Code()<<gainShift |
		c.Mode.Code()<<modeShift |
		c.Rate.Code()<<rateShift
	continuous = c.Mode == ContinuousConversion
	gain = c.Gain.FullScale() / maxCode
	return
}

// ADS111X reads voltages from a connected ADS1114 or ADS1115.
//
// An ADS111X is not safe for concurrent use, and assumes exclusive use of
// the Bus.
type ADS111X struct {
	bus        Bus
	config     uint16
	continuous bool
	gain       float32
}

// New creates an ADS111X and writes the config to the device.
func New(bus Bus, cfg Config) (*ADS111X, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	word, continuous, gain := cfg.Encode()
	adc := &ADS111X{
		bus:        bus,
		config:     word,
		continuous: continuous,
		gain:       gain,
	}
	if err := adc.writeConfig(); err != nil {
		return nil, err
	}
	return adc, nil
}

// ConfigWord returns the value written to the configuration register.
func (adc *ADS111X) ConfigWord() uint16 {
	return adc.config
}

// Continuous returns true if the device is in continuous conversion mode.
func (adc *ADS111X) Continuous() bool {
	return adc.continuous
}

// GainFactor returns the volts per conversion code.
func (adc *ADS111X) GainFactor() float32 {
	return adc.gain
}

// ReadRaw returns the conversion code from the device.
//
// In single-shot mode the config is rewritten to trigger a conversion.
// The conversion register is read immediately after the trigger, without
// waiting for the conversion to complete, so the result may be from the
// previous conversion.
func (adc *ADS111X) ReadRaw() (int16, error) {
	if !adc.continuous {
		if err := adc.writeConfig(); err != nil {
			return 0, err
		}
	}
	return adc.readConversion()
}

// ReadVoltage returns the voltage read from the device.
//
// The result is not clamped to the full-scale range.
func (adc *ADS111X) ReadVoltage() (float32, error) {
	raw, err := adc.ReadRaw()
	if err != nil {
		return 0, err
	}
	return float32(raw) * adc.gain, nil
}

func (adc *ADS111X) writeConfig() error {
	return adc.bus.WriteWord(ConfigRegister, adc.config)
}

func (adc *ADS111X) readConversion() (int16, error) {
	if err := adc.bus.Write([]byte{ConversionRegister}); err != nil {
		return 0, err
	}
	var buf [2]byte
	if err := adc.bus.Read(buf[:]); err != nil {
		return 0, err
	}
	return int16(binary.BigEndian.Uint16(buf[:])), nil
}

var (
	// ErrInvalidConfig indicates a Config field holds an unknown setting.
	ErrInvalidConfig = errors.New("invalid config")
)
