// SPDX-License-Identifier: MIT
//
// Copyright © 2019 Kent Gibson <warthog618@gmail.com>.

//go:build linux
// +build linux

package main

import (
	"fmt"
	"os"
	"time"

	"github.com/warthog618/config"
	"github.com/warthog618/config/blob"
	"github.com/warthog618/config/blob/decoder/json"
	"github.com/warthog618/config/dict"
	"github.com/warthog618/config/env"
	"github.com/warthog618/config/pflag"
	"github.com/warthog618/i2c"
	"github.com/warthog618/i2c/ads111x"
)

// This example continuously reads the voltage on AIN0 of an ADS1115 connected
// to I2C bus 1 at the default address. The default settings are defined in
// loadConfig, but can be altered via configuration (env, flag or config file).
func main() {
	if err := run(loadConfig()); err != nil {
		fmt.Fprintf(os.Stderr, "ads1115: %s\n", err)
		os.Exit(1)
	}
}

func run(cfg *config.Config) error {
	s, err := loadSettings(cfg)
	if err != nil {
		return err
	}
	dev, err := i2c.Open(s.bus, s.addr)
	if err != nil {
		return err
	}
	defer dev.Close()
	adc, err := ads111x.New(dev, s.adc)
	if err != nil {
		return err
	}
	for {
		v, err := adc.ReadVoltage()
		if err != nil {
			return err
		}
		fmt.Printf("voltage: %g\n", v)
		time.Sleep(s.period)
	}
}

type settings struct {
	bus    int
	addr   uint16
	period time.Duration
	adc    ads111x.Config
}

func loadSettings(cfg *config.Config) (s settings, err error) {
	s.bus = cfg.MustGet("bus").Int()
	s.period = cfg.MustGet("period").Duration()
	if s.addr, err = i2c.ParseAddr(cfg.MustGet("address").String()); err != nil {
		return
	}
	if s.adc.Mux, err = ads111x.ParseMux(cfg.MustGet("mux").String()); err != nil {
		return
	}
	if s.adc.Gain, err = ads111x.ParseGain(cfg.MustGet("gain").String()); err != nil {
		return
	}
	if s.adc.Mode, err = ads111x.ParseMode(cfg.MustGet("mode").String()); err != nil {
		return
	}
	s.adc.Rate, err = ads111x.ParseDataRate(cfg.MustGet("rate").String())
	return
}

func loadConfig() *config.Config {
	defaultConfig := map[string]interface{}{
		"bus":     i2c.DefaultBus,
		"address": "0x48",
		"period":  "100ms",
		"mux":     "AIN0_GND",
		"gain":    "FS_6_144V",
		"mode":    "SingleShot",
		"rate":    "DR_128SPS",
	}
	def := dict.New(dict.WithMap(defaultConfig))
	flags := []pflag.Flag{
		{Short: 'c', Name: "config-file"},
	}
	cfg := config.New(
		pflag.New(pflag.WithFlags(flags)),
		env.New(env.WithEnvPrefix("ADS1115_")),
		config.WithDefault(def))
	cfg.Append(
		blob.NewConfigFile(cfg, "config.file", "ads1115.json", json.NewDecoder()))
	cfg = cfg.GetConfig("", config.WithMust)
	return cfg
}
