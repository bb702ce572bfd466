/*
 * GCDAPB - Simulator configuration options.
 *
 * Copyright 2024, Richard Cornwell
 *
 * Permission is hereby granted, free of charge, to any person obtaining a copy
 * of this software and associated documentation files (the "Software"), to deal
 * in the Software without restriction, including without limitation the rights
 * to use, copy, modify, merge, publish, distribute, sublicense, and/or sell
 * copies of the Software, and to permit persons to whom the Software is
 * furnished to do so, subject to the following conditions:
 *
 * The above copyright notice and this permission notice shall be included in
 * all copies or substantial portions of the Software.
 *
 * THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
 * IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
 * FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE
 * AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER
 * LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM,
 * OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN THE
 * SOFTWARE.
 *
 */

package simconfig

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	config "github.com/rcornwell/GCDAPB/config/configparser"
	"github.com/rcornwell/GCDAPB/emu/apb"
	D "github.com/rcornwell/GCDAPB/emu/device"
	"github.com/rcornwell/GCDAPB/emu/driver"
	"github.com/rcornwell/GCDAPB/emu/timer"
)

// Settings collected from configuration file.
type Settings struct {
	Base      uint32 // Peripheral base address.
	AddrWidth int    // Address bits decoded by peripheral.
	Control   uint32 // Control value used by driver.
	Clock     int    // Clock pulses per second when running.
	Poll      int    // Cycles between status polls.
	Timeout   int    // Cycles before driver gives up.
	Monitor   string // Monitor port, empty for none.
}

// Current settings.
var Config = Default()

// Settings used when not configured.
func Default() Settings {
	return Settings{
		AddrWidth: apb.DefaultAddrWidth,
		Control:   apb.CtrlEnable | apb.CtrlIntrEnable,
		Clock:     timer.DefaultRate,
		Poll:      driver.DefaultPoll,
		Timeout:   driver.DefaultTimeout,
	}
}

// register options on initialize.
func init() {
	config.RegisterModel("GCD", config.TypeModel, createGCD)
	config.RegisterOption("CLOCK", setNumber(&Config.Clock))
	config.RegisterOption("POLL", setNumber(&Config.Poll))
	config.RegisterOption("TIMEOUT", setNumber(&Config.Timeout))
	config.RegisterOption("MONITOR", setMonitor)
}

// Configure peripheral.
func createGCD(addr uint32, _ string, options []config.Option) error {
	if addr == D.NoAddr {
		return errors.New("gcd requires base address")
	}
	if (addr & 3) != 0 {
		return fmt.Errorf("gcd base address %x not word aligned", addr)
	}
	Config.Base = addr
	for _, opt := range options {
		switch strings.ToUpper(opt.Name) {
		case "ADDRWIDTH":
			width, err := strconv.ParseUint(opt.EqualOpt, 10, 8)
			if err != nil || width < 4 || width > 32 {
				return errors.New("gcd addrwidth must be 4 to 32: " + opt.EqualOpt)
			}
			Config.AddrWidth = int(width)
		case "CONTROL":
			ctl, err := strconv.ParseUint(opt.EqualOpt, 16, 32)
			if err != nil {
				return errors.New("gcd control must be hex: " + opt.EqualOpt)
			}
			Config.Control = uint32(ctl)
		case "LEVEL":
			Config.Control &^= apb.CtrlIntrEdge
			Config.Control |= apb.CtrlIntrEnable
		case "EDGE":
			Config.Control |= apb.CtrlIntrEdge | apb.CtrlIntrEnable
		case "POLLED":
			Config.Control &^= apb.CtrlIntrEnable | apb.CtrlIntrEdge
		default:
			return errors.New("gcd invalid option: " + opt.Name)
		}
	}
	return nil
}

// Return creator setting a positive decimal number.
func setNumber(value *int) func(uint32, string, []config.Option) error {
	return func(_ uint32, str string, _ []config.Option) error {
		num, err := strconv.Atoi(str)
		if err != nil || num <= 0 {
			return errors.New("value must be positive number: " + str)
		}
		*value = num
		return nil
	}
}

// Set monitor port.
func setMonitor(_ uint32, port string, _ []config.Option) error {
	num, err := strconv.ParseUint(port, 10, 16)
	if err != nil || num == 0 {
		return errors.New("monitor port invalid: " + port)
	}
	Config.Monitor = port
	return nil
}
