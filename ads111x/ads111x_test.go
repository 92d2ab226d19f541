// SPDX-License-Identifier: MIT
//
// Copyright © 2019 Kent Gibson <warthog618@gmail.com>.

package ads111x_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/warthog618/i2c/ads111x"
)

type op struct {
	kind string // "write", "read" or "word"
	reg  uint8
	data []byte
	word uint16
}

// mockBus records bus transactions and returns canned conversion results.
type mockBus struct {
	ops     []op
	conv    []byte
	failOn  string
	failErr error
}

func (b *mockBus) Write(p []byte) error {
	if b.failOn == "write" {
		return b.failErr
	}
	b.ops = append(b.ops, op{kind: "write", data: append([]byte(nil), p...)})
	return nil
}

func (b *mockBus) Read(p []byte) error {
	if b.failOn == "read" {
		return b.failErr
	}
	copy(p, b.conv)
	b.ops = append(b.ops, op{kind: "read", data: append([]byte(nil), p...)})
	return nil
}

func (b *mockBus) WriteWord(reg uint8, v uint16) error {
	if b.failOn == "word" {
		return b.failErr
	}
	b.ops = append(b.ops, op{kind: "word", reg: reg, word: v})
	return nil
}

var (
	singleShot = ads111x.Config{
		Mux:  ads111x.AIN0_GND,
		Gain: ads111x.FS_6_144V,
		Mode: ads111x.SingleShot,
		Rate: ads111x.DR_128SPS,
	}
	continuous = ads111x.Config{
		Mux:  ads111x.AIN0_AIN1,
		Gain: ads111x.FS_4_096V,
		Mode: ads111x.ContinuousConversion,
		Rate: ads111x.DR_860SPS,
	}
)

func TestEncode(t *testing.T) {
	patterns := []struct {
		name       string
		cfg        ads111x.Config
		word       uint16
		continuous bool
	}{
		{"single shot", singleShot, 0x4180, false},
		{"continuous", continuous, 0x02e0, true},
		{"zero", ads111x.Config{}, 0x0000, true},
		{"all ones", ads111x.Config{
			Mux:  ads111x.AIN3_GND,
			Gain: ads111x.FS_0_256V,
			Mode: ads111x.SingleShot,
			Rate: ads111x.DR_860SPS}, 0x7be0, false},
	}
	for _, p := range patterns {
		tf := func(t *testing.T) {
			word, cont, _ := p.cfg.Encode()
			assert.Equal(t, p.word, word)
			assert.Equal(t, p.continuous, cont)
		}
		t.Run(p.name, tf)
	}
}

func TestEncodeFields(t *testing.T) {
	for m := ads111x.AIN0_AIN1; m <= ads111x.AIN3_GND; m++ {
		for g := ads111x.FS_6_144V; g <= ads111x.FS_0_256V; g++ {
			for md := ads111x.ContinuousConversion; md <= ads111x.SingleShot; md++ {
				for r := ads111x.DR_8SPS; r <= ads111x.DR_860SPS; r++ {
					cfg := ads111x.Config{Mux: m, Gain: g, Mode: md, Rate: r}
					word, cont, gain := cfg.Encode()
					expected := uint16(m)<<12 | uint16(g)<<9 | uint16(md)<<8 | uint16(r)<<5
					assert.Equal(t, expected, word, cfg)
					assert.Zero(t, word&0x801f, cfg)
					assert.Equal(t, md == ads111x.ContinuousConversion, cont, cfg)
					assert.Equal(t, g.FullScale()/32767.0, gain, cfg)
				}
			}
		}
	}
}

func TestGainFactor(t *testing.T) {
	patterns := []struct {
		gain ads111x.Gain
		fs   float32
	}{
		{ads111x.FS_6_144V, 6.144},
		{ads111x.FS_4_096V, 4.096},
		{ads111x.FS_2_048V, 2.048},
		{ads111x.FS_1_024V, 1.024},
		{ads111x.FS_0_512V, 0.512},
		{ads111x.FS_0_256V, 0.256},
	}
	for _, p := range patterns {
		cfg := singleShot
		cfg.Gain = p.gain
		_, _, gain := cfg.Encode()
		assert.Equal(t, p.fs/32767.0, gain, p.gain.String())
	}
	cfg := singleShot
	cfg.Gain = ads111x.FS_4_096V
	_, _, gain := cfg.Encode()
	assert.InDelta(t, 1.25e-4, gain, 1e-8)
}

func TestValidate(t *testing.T) {
	assert.Nil(t, singleShot.Validate())
	assert.Nil(t, continuous.Validate())
	bad := []ads111x.Config{
		{Mux: 8},
		{Gain: 6},
		{Mode: 2},
		{Rate: 8},
	}
	for _, cfg := range bad {
		assert.Equal(t, ads111x.ErrInvalidConfig, cfg.Validate(), cfg)
	}
}

func TestNew(t *testing.T) {
	bus := &mockBus{}
	adc, err := ads111x.New(bus, singleShot)
	require.Nil(t, err)
	require.NotNil(t, adc)
	assert.Equal(t, uint16(0x4180), adc.ConfigWord())
	assert.False(t, adc.Continuous())
	assert.InDelta(t, 6.144/32767.0, adc.GainFactor(), 1e-9)
	assert.Equal(t, []op{{kind: "word", reg: 0x01, word: 0x4180}}, bus.ops)
}

func TestNewInvalid(t *testing.T) {
	bus := &mockBus{}
	adc, err := ads111x.New(bus, ads111x.Config{Gain: 7})
	assert.Equal(t, ads111x.ErrInvalidConfig, err)
	assert.Nil(t, adc)
	assert.Empty(t, bus.ops)
}

func TestNewBusError(t *testing.T) {
	busErr := errors.New("remote I/O error")
	bus := &mockBus{failOn: "word", failErr: busErr}
	adc, err := ads111x.New(bus, singleShot)
	assert.Equal(t, busErr, err)
	assert.Nil(t, adc)
}

func TestReadVoltageSingleShot(t *testing.T) {
	bus := &mockBus{conv: []byte{0x7f, 0xff}}
	adc, err := ads111x.New(bus, singleShot)
	require.Nil(t, err)
	bus.ops = nil
	v, err := adc.ReadVoltage()
	require.Nil(t, err)
	assert.InDelta(t, 6.144, v, 1e-5)
	expected := []op{
		{kind: "word", reg: 0x01, word: 0x4180},
		{kind: "write", data: []byte{0x00}},
		{kind: "read", data: []byte{0x7f, 0xff}},
	}
	assert.Equal(t, expected, bus.ops)

	// each read retriggers with the same word
	bus.ops = nil
	_, err = adc.ReadVoltage()
	require.Nil(t, err)
	assert.Equal(t, expected, bus.ops)
}

func TestReadVoltageContinuous(t *testing.T) {
	bus := &mockBus{conv: []byte{0x40, 0x00}}
	adc, err := ads111x.New(bus, continuous)
	require.Nil(t, err)
	assert.True(t, adc.Continuous())
	bus.ops = nil
	v, err := adc.ReadVoltage()
	require.Nil(t, err)
	assert.InDelta(t, 16384*4.096/32767.0, v, 1e-5)
	expected := []op{
		{kind: "write", data: []byte{0x00}},
		{kind: "read", data: []byte{0x40, 0x00}},
	}
	assert.Equal(t, expected, bus.ops)
}

func TestReadVoltageScaling(t *testing.T) {
	patterns := []struct {
		name string
		conv []byte
		v    float32
	}{
		{"zero", []byte{0x00, 0x00}, 0},
		{"full positive", []byte{0x7f, 0xff}, 6.144},
		{"one code", []byte{0x00, 0x01}, 6.144 / 32767.0},
		{"minus one code", []byte{0xff, 0xff}, -6.144 / 32767.0},
		{"full negative", []byte{0x80, 0x00}, -32768 * 6.144 / 32767.0},
	}
	for _, p := range patterns {
		tf := func(t *testing.T) {
			bus := &mockBus{conv: p.conv}
			adc, err := ads111x.New(bus, singleShot)
			require.Nil(t, err)
			v, err := adc.ReadVoltage()
			require.Nil(t, err)
			assert.InDelta(t, p.v, v, 1e-5)
		}
		t.Run(p.name, tf)
	}
}

func TestReadRaw(t *testing.T) {
	bus := &mockBus{conv: []byte{0x80, 0x00}}
	adc, err := ads111x.New(bus, singleShot)
	require.Nil(t, err)
	raw, err := adc.ReadRaw()
	require.Nil(t, err)
	assert.Equal(t, int16(-32768), raw)
}

func TestReadVoltageBusError(t *testing.T) {
	busErr := errors.New("transfer failed")
	for _, failOn := range []string{"word", "write", "read"} {
		tf := func(t *testing.T) {
			bus := &mockBus{conv: []byte{0x12, 0x34}}
			adc, err := ads111x.New(bus, singleShot)
			require.Nil(t, err)
			bus.failOn = failOn
			bus.failErr = busErr
			v, err := adc.ReadVoltage()
			assert.Equal(t, busErr, err)
			assert.Zero(t, v)
		}
		t.Run(failOn, tf)
	}
}

func TestReadVoltageContinuousSkipsConfig(t *testing.T) {
	// a failing config write is never reached in continuous mode
	bus := &mockBus{conv: []byte{0x00, 0x10}}
	adc, err := ads111x.New(bus, continuous)
	require.Nil(t, err)
	bus.failOn = "word"
	bus.failErr = errors.New("unexpected config write")
	_, err = adc.ReadVoltage()
	assert.Nil(t, err)
}

func TestEncodeUnknownSettings(t *testing.T) {
	// unknown settings never spill into the OS or comparator bits
	cfg := ads111x.Config{Mux: 8, Gain: 0xff, Mode: 2, Rate: 0xff}
	word, _, gain := cfg.Encode()
	assert.Zero(t, word&0x801f)
	assert.Equal(t, uint16(0x0ee0), word)
	assert.Zero(t, gain)
}
