// SPDX-License-Identifier: MIT
//
// Copyright © 2019 Kent Gibson <warthog618@gmail.com>.

//go:build linux
// +build linux

package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/warthog618/i2c/ads111x"
)

var rootCmd = &cobra.Command{
	Use:   "adsread",
	Short: "adsread is a utility to read voltages from ADS1114/ADS1115 ADCs",
	Run: func(cmd *cobra.Command, args []string) {
		cmd.Help()
	},
	Version:       version,
	SilenceErrors: true,
	SilenceUsage:  true,
}

func main() {
	if cmd, err := rootCmd.ExecuteC(); err != nil {
		logErr(cmd, err)
		os.Exit(1)
	}
}

func logErr(cmd *cobra.Command, err error) {
	fmt.Fprintf(os.Stderr, "adsread %s: %s\n", cmd.Name(), err)
}

// configOpts are the device settings common to commands.
type configOpts struct {
	Mux  string
	Gain string
	Mode string
	Rate string
}

func addConfigFlags(cmd *cobra.Command, opts *configOpts) {
	cmd.Flags().StringVarP(&opts.Mux, "mux", "m", "AIN0_GND", "input multiplexer setting")
	cmd.Flags().StringVarP(&opts.Gain, "gain", "g", "FS_6_144V", "full-scale range")
	cmd.Flags().StringVar(&opts.Mode, "mode", "SingleShot", "operating mode [SingleShot|ContinuousConversion]")
	cmd.Flags().StringVarP(&opts.Rate, "rate", "r", "DR_128SPS", "data rate, by name or samples per second")
	cmd.SetHelpTemplate(cmd.HelpTemplate() + extendedConfigHelp)
}

var extendedConfigHelp = `
Mux:
  AIN0_AIN1 AIN0_AIN3 AIN1_AIN3 AIN2_AIN3 AIN0_GND AIN1_GND AIN2_GND AIN3_GND

Gain:
  FS_6_144V FS_4_096V FS_2_048V FS_1_024V FS_0_512V FS_0_256V

Rate:
  8 16 32 64 128 250 475 860 (or DR_<n>SPS)

Settings are case insensitive.
`

func parseConfig(opts configOpts) (cfg ads111x.Config, err error) {
	if cfg.Mux, err = ads111x.ParseMux(opts.Mux); err != nil {
		return
	}
	if cfg.Gain, err = ads111x.ParseGain(opts.Gain); err != nil {
		return
	}
	if cfg.Mode, err = ads111x.ParseMode(opts.Mode); err != nil {
		return
	}
	cfg.Rate, err = ads111x.ParseDataRate(opts.Rate)
	return
}
