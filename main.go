/*
 * CellPPU - Main process.
 *
 * Copyright 2026, The OpenCell Authors
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

	"github.com/opencell-emu/ppu/command/reader"
	"github.com/opencell-emu/ppu/config"
	"github.com/opencell-emu/ppu/emu/core"
	"github.com/opencell-emu/ppu/util/debug"
	"github.com/opencell-emu/ppu/util/logger"
)

func main() {
	optConfig := getopt.StringLong("config", 'c', "", "Configuration file")
	optLogFile := getopt.StringLong("log", 'l', "", "Log file")
	optDebug := getopt.BoolLong("debug", 'd', "Log debug to console")
	optMemory := getopt.IntLong("memory", 'm', 64, "Memory size in K")
	optHelp := getopt.BoolLong("help", 'h', "Help")
	getopt.Parse()

	if *optHelp {
		getopt.Usage()
		os.Exit(0)
	}

	var file *os.File
	if *optLogFile != "" {
		file, _ = os.Create(*optLogFile)
	}
	programLevel := new(slog.LevelVar)
	programLevel.Set(slog.LevelDebug)
	log := slog.New(logger.NewHandler(file,
		&slog.HandlerOptions{Level: programLevel}, *optDebug))
	slog.SetDefault(log)

	log.Info("CellPPU started")

	var cfg *config.Config
	if *optConfig != "" {
		var err error
		cfg, err = config.Load(*optConfig)
		if err != nil {
			log.Error(err.Error())
			os.Exit(1)
		}
	}

	memoryK := *optMemory
	if cfg != nil && cfg.MemoryK != 0 {
		memoryK = cfg.MemoryK
	}
	machine := core.New(memoryK)

	if cfg != nil {
		if cfg.DebugFile != "" {
			if err := debug.Open(cfg.DebugFile); err != nil {
				log.Error(err.Error())
				os.Exit(1)
			}
			defer debug.Close()
		}
		if err := config.Apply(cfg, machine); err != nil {
			log.Error(err.Error())
			os.Exit(1)
		}
	}

	machine.Thread.Start()
	reader.ConsoleReader(machine)
	machine.Thread.Stop()
	log.Info("CellPPU stopped")
}
