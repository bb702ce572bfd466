/*
 * GCDAPB - Main process.
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

package main

import (
	"log/slog"
	"os"

	getopt "github.com/pborman/getopt/v2"
	reader "github.com/rcornwell/GCDAPB/command/reader"
	config "github.com/rcornwell/GCDAPB/config/configparser"
	"github.com/rcornwell/GCDAPB/config/simconfig"
	core "github.com/rcornwell/GCDAPB/emu/core"
	master "github.com/rcornwell/GCDAPB/emu/master"
	monitor "github.com/rcornwell/GCDAPB/monitor"
	logger "github.com/rcornwell/GCDAPB/util/logger"

	_ "github.com/rcornwell/GCDAPB/config/debugconfig"
	_ "github.com/rcornwell/GCDAPB/util/debug"
)

func main() {
	optConfig := getopt.StringLong("config", 'c', "", "Configuration file")
	optLogFile := getopt.StringLong("log", 'l', "", "Log file")
	optDebug := getopt.BoolLong("debug", 'd', "Log debug to console")
	optHelp := getopt.BoolLong("help", 'h', "Help")
	getopt.Parse()

	if *optHelp {
		getopt.Usage()
		os.Exit(0)
	}

	var handler *logger.LogHandler
	programLevel := new(slog.LevelVar)
	programLevel.Set(slog.LevelDebug)
	opts := &slog.HandlerOptions{Level: programLevel, AddSource: false}
	if *optLogFile != "" {
		file, err := os.Create(*optLogFile)
		if err != nil {
			slog.Error("unable to create log file: " + err.Error())
			os.Exit(1)
		}
		defer file.Close()
		handler = logger.NewHandler(file, opts, optDebug)
	} else {
		handler = logger.NewHandler(nil, opts, optDebug)
	}
	Logger := slog.New(handler)
	slog.SetDefault(Logger)

	Logger.Info("GCDAPB Started")
	if *optConfig != "" {
		_, err := os.Stat(*optConfig)
		if os.IsNotExist(err) {
			Logger.Error("Configuration file " + *optConfig + " can't be found")
			os.Exit(1)
		}

		err = config.LoadConfigFile(*optConfig)
		if err != nil {
			Logger.Error(err.Error())
			os.Exit(1)
		}
	}

	cfg := simconfig.Config
	Logger.Info("Peripheral configured", "base", cfg.Base, "addrwidth", cfg.AddrWidth, "control", cfg.Control)

	masterChannel := make(chan master.Packet)
	sim := core.NewCore(masterChannel, cfg)
	go sim.Start()

	var mon *monitor.Server
	if cfg.Monitor != "" {
		var err error
		mon, err = monitor.Start(":"+cfg.Monitor, sim)
		if err != nil {
			Logger.Error(err.Error())
			sim.Stop()
			os.Exit(1)
		}
	}

	reader.ConsoleReader(sim)

	if mon != nil {
		mon.Stop()
	}
	sim.Stop()
	Logger.Info("Simulator stopped.")
}
