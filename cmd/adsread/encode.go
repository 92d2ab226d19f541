// SPDX-License-Identifier: MIT
//
// Copyright © 2019 Kent Gibson <warthog618@gmail.com>.

//go:build linux
// +build linux

package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

func init() {
	addConfigFlags(encodeCmd, &encodeOpts)
	rootCmd.AddCommand(encodeCmd)
}

var (
	encodeCmd = &cobra.Command{
		Use:     "encode",
		Short:   "Display the config register value for a set of settings",
		Long:    `Encode the device settings without accessing the device.`,
		Args:    cobra.NoArgs,
		RunE:    encode,
		Example: "  adsread encode -m AIN1_GND -g FS_2_048V --mode continuous -r 860",
	}
	encodeOpts = configOpts{}
)

func encode(cmd *cobra.Command, args []string) error {
	cfg, err := parseConfig(encodeOpts)
	if err != nil {
		return err
	}
	word, continuous, gain := cfg.Encode()
	fmt.Printf("config:     0x%04x\n", word)
	fmt.Printf("continuous: %t\n", continuous)
	fmt.Printf("gain:       %g V/code\n", gain)
	return nil
}
