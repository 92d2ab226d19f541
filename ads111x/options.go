// SPDX-License-Identifier: MIT
//
// Copyright © 2019 Kent Gibson <warthog618@gmail.com>.

package ads111x

import (
	"fmt"
	"strconv"
	"strings"
)

// Mux selects the analog inputs routed to the converter.
// Only functional on the ADS1115.
type Mux uint8

// Gain selects the full-scale range of the programmable gain amplifier.
type Gain uint8

// Mode is the operating mode of the converter.
type Mode uint8

// DataRate is the conversion rate of the converter.
type DataRate uint8

// Multiplexer settings - positive input then negative input.
const (
	AIN0_AIN1 Mux = iota
	AIN0_AIN3
	AIN1_AIN3
	AIN2_AIN3
	AIN0_GND
	AIN1_GND
	AIN2_GND
	AIN3_GND
)

// Gain settings, named by full-scale voltage.
const (
	FS_6_144V Gain = iota
	FS_4_096V
	FS_2_048V
	FS_1_024V
	FS_0_512V
	FS_0_256V
)

// Operating modes.
const (
	ContinuousConversion Mode = iota
	SingleShot
)

// Data rates in samples per second.
const (
	DR_8SPS DataRate = iota
	DR_16SPS
	DR_32SPS
	DR_64SPS
	DR_128SPS
	DR_250SPS
	DR_475SPS
	DR_860SPS
)

var muxNames = [...]string{
	"AIN0_AIN1",
	"AIN0_AIN3",
	"AIN1_AIN3",
	"AIN2_AIN3",
	"AIN0_GND",
	"AIN1_GND",
	"AIN2_GND",
	"AIN3_GND",
}

var gainNames = [...]string{
	"FS_6_144V",
	"FS_4_096V",
	"FS_2_048V",
	"FS_1_024V",
	"FS_0_512V",
	"FS_0_256V",
}

// full-scale voltage for each gain setting.
var fullScale = [...]float32{6.144, 4.096, 2.048, 1.024, 0.512, 0.256}

var modeNames = [...]string{
	"ContinuousConversion",
	"SingleShot",
}

var rateNames = [...]string{
	"DR_8SPS",
	"DR_16SPS",
	"DR_32SPS",
	"DR_64SPS",
	"DR_128SPS",
	"DR_250SPS",
	"DR_475SPS",
	"DR_860SPS",
}

var rateSPS = [...]int{8, 16, 32, 64, 128, 250, 475, 860}

// Code returns the bit pattern of the setting, masked to the field width.
func (m Mux) Code() uint16 {
	return uint16(m) & 0x7
}

func (m Mux) String() string {
	if int(m) < len(muxNames) {
		return muxNames[m]
	}
	return fmt.Sprintf("Mux(%d)", uint8(m))
}

// Code returns the bit pattern of the setting, masked to the field width.
func (g Gain) Code() uint16 {
	return uint16(g) & 0x7
}

// FullScale returns the full-scale input voltage for the gain.
// Returns 0 for an unknown gain.
func (g Gain) FullScale() float32 {
	if int(g) < len(fullScale) {
		return fullScale[g]
	}
	return 0
}

func (g Gain) String() string {
	if int(g) < len(gainNames) {
		return gainNames[g]
	}
	return fmt.Sprintf("Gain(%d)", uint8(g))
}

// Code returns the bit pattern of the setting, masked to the field width.
func (m Mode) Code() uint16 {
	return uint16(m) & 0x1
}

func (m Mode) String() string {
	if int(m) < len(modeNames) {
		return modeNames[m]
	}
	return fmt.Sprintf("Mode(%d)", uint8(m))
}

// Code returns the bit pattern of the setting, masked to the field width.
func (r DataRate) Code() uint16 {
	return uint16(r) & 0x7
}

// SPS returns the nominal samples per second for the rate.
// Returns 0 for an unknown rate.
func (r DataRate) SPS() int {
	if int(r) < len(rateSPS) {
		return rateSPS[r]
	}
	return 0
}

func (r DataRate) String() string {
	if int(r) < len(rateNames) {
		return rateNames[r]
	}
	return fmt.Sprintf("DataRate(%d)", uint8(r))
}

// ParseMux returns the Mux with the given name, e.g. "AIN0_GND".
// Names are case insensitive.
func ParseMux(s string) (Mux, error) {
	i, ok := lookup(muxNames[:], s)
	if !ok {
		return 0, fmt.Errorf("unknown mux '%s'", s)
	}
	return Mux(i), nil
}

// ParseGain returns the Gain with the given name, e.g. "FS_4_096V".
func ParseGain(s string) (Gain, error) {
	i, ok := lookup(gainNames[:], s)
	if !ok {
		return 0, fmt.Errorf("unknown gain '%s'", s)
	}
	return Gain(i), nil
}

// ParseMode returns the Mode with the given name.
// "continuous" and "single" are accepted as short forms.
func ParseMode(s string) (Mode, error) {
	switch strings.ToLower(s) {
	case "continuous":
		return ContinuousConversion, nil
	case "single":
		return SingleShot, nil
	}
	i, ok := lookup(modeNames[:], s)
	if !ok {
		return 0, fmt.Errorf("unknown mode '%s'", s)
	}
	return Mode(i), nil
}

// ParseDataRate returns the DataRate with the given name, e.g. "DR_128SPS",
// or with the given samples per second, e.g. "128".
func ParseDataRate(s string) (DataRate, error) {
	for i, sps := range rateSPS {
		if strconv.Itoa(sps) == s {
			return DataRate(i), nil
		}
	}
	i, ok := lookup(rateNames[:], s)
	if !ok {
		return 0, fmt.Errorf("unknown data rate '%s'", s)
	}
	return DataRate(i), nil
}

func lookup(names []string, s string) (int, bool) {
	for i, n := range names {
		if strings.EqualFold(n, s) {
			return i, true
		}
	}
	return 0, false
}
