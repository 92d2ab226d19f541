// SPDX-License-Identifier: MIT
//
// Copyright © 2019 Kent Gibson <warthog618@gmail.com>.

//go:build linux
// +build linux

package main

import (
	"fmt"
	"io"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"github.com/warthog618/i2c"
	"github.com/warthog618/i2c/ads111x"
	"github.com/warthog618/i2c/periph"
)

func init() {
	readCmd.Flags().IntVarP(&readOpts.Bus, "bus", "b", i2c.DefaultBus, "the I2C bus number")
	readCmd.Flags().StringVarP(&readOpts.Address, "address", "a", "0x48", "the device address")
	readCmd.Flags().StringVar(&readOpts.Backend, "backend", "dev", "bus access [dev|periph]")
	readCmd.Flags().DurationVarP(&readOpts.Interval, "interval", "i", 100*time.Millisecond, "time between samples")
	readCmd.Flags().UintVarP(&readOpts.NumSamples, "num-samples", "n", 0, "exit after n samples")
	readCmd.Flags().BoolVar(&readOpts.Raw, "raw", false, "display the raw conversion code")
	addConfigFlags(readCmd, &readOpts.configOpts)
	rootCmd.AddCommand(readCmd)
}

var (
	readCmd = &cobra.Command{
		Use:     "read",
		Short:   "Read the voltage from an ADC",
		Long:    `Periodically read the voltage from an ADS1114/ADS1115 and print it to standard output.`,
		Args:    cobra.NoArgs,
		RunE:    read,
		Example: "  adsread read -b 1 -a 0x49 -g FS_4_096V -n 10",
	}
	readOpts = struct {
		configOpts
		Bus        int
		Address    string
		Backend    string
		Interval   time.Duration
		NumSamples uint
		Raw        bool
	}{}
)

// closingBus is a Bus that must be released after use.
type closingBus interface {
	ads111x.Bus
	Close() error
}

func openBus(backend string, bus int, addr uint16) (closingBus, error) {
	switch backend {
	case "dev":
		return i2c.Open(bus, addr)
	case "periph":
		return periph.Open(strconv.Itoa(bus), addr)
	}
	return nil, fmt.Errorf("unknown backend '%s'", backend)
}

func read(cmd *cobra.Command, args []string) error {
	cfg, err := parseConfig(readOpts.configOpts)
	if err != nil {
		return err
	}
	addr, err := i2c.ParseAddr(readOpts.Address)
	if err != nil {
		return err
	}
	bus, err := openBus(readOpts.Backend, readOpts.Bus, addr)
	if err != nil {
		return err
	}
	defer bus.Close()
	adc, err := ads111x.New(bus, cfg)
	if err != nil {
		return err
	}
	return readLoop(cmd.OutOrStdout(), adc)
}

// readLoop writes samples from adc to w until the sample count is reached or
// the process is signalled.
func readLoop(w io.Writer, adc *ads111x.ADS111X) error {
	sigdone := make(chan os.Signal, 1)
	signal.Notify(sigdone, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(sigdone)
	ticker := time.NewTicker(readOpts.Interval)
	defer ticker.Stop()
	count := uint(0)
	for {
		if readOpts.Raw {
			raw, err := adc.ReadRaw()
			if err != nil {
				return err
			}
			fmt.Fprintf(w, "raw: %d\n", raw)
		} else {
			v, err := adc.ReadVoltage()
			if err != nil {
				return err
			}
			fmt.Fprintf(w, "voltage: %g\n", v)
		}
		count++
		if readOpts.NumSamples > 0 && count >= readOpts.NumSamples {
			return nil
		}
		select {
		case <-ticker.C:
		case <-sigdone:
			return nil
		}
	}
}
