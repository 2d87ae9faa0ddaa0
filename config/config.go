/*
 * CellPPU - Machine configuration file.
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

// Package config reads the YAML machine description: memory size,
// initial PC and stack, trace settings and any breakpoints to arm
// before the first instruction runs.
package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"gopkg.in/yaml.v2"

	"github.com/opencell-emu/ppu/emu/core"
	"github.com/opencell-emu/ppu/util/debug"
)

// BreakSpec is one breakpoint line. Kind defaults to an unconditional
// breakpoint; "gpr" needs Reg and Value, "count" needs Count.
type BreakSpec struct {
	Addr  string `yaml:"addr"`
	Kind  string `yaml:"kind,omitempty"`
	Reg   int    `yaml:"reg,omitempty"`
	Value string `yaml:"value,omitempty"`
	Count uint64 `yaml:"count,omitempty"`
}

// Config is the whole file.
type Config struct {
	MemoryK   int         `yaml:"memory"`    // Memory size in K.
	Entry     string      `yaml:"entry"`     // Initial PC, hex.
	Stack     string      `yaml:"stack"`     // Initial r1, hex.
	StackSize string      `yaml:"stacksize"` // Stack extent, hex.
	LogFile   string      `yaml:"logfile"`
	DebugFile string      `yaml:"debugfile"`
	Debug     []string    `yaml:"debug"` // Trace categories.
	Breaks    []BreakSpec `yaml:"breakpoints"`
}

// parseNum accepts decimal or 0x hex.
func parseNum(s string) (uint64, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, nil
	}
	if strings.HasPrefix(s, "0x") || strings.HasPrefix(s, "0X") {
		return strconv.ParseUint(s[2:], 16, 64)
	}
	return strconv.ParseUint(s, 10, 64)
}

// Load reads and parses the file at path.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}
	cfg := &Config{MemoryK: 64}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("config %s: %w", path, err)
	}
	return cfg, nil
}

// Apply stamps the configuration onto a machine: entry point, stack,
// trace mask and initial breakpoints. The caller builds the core with
// cfg.MemoryK first.
func Apply(cfg *Config, c *core.Core) error {
	entry, err := parseNum(cfg.Entry)
	if err != nil {
		return fmt.Errorf("config: bad entry %q: %w", cfg.Entry, err)
	}
	c.Thread.SetPC(entry)

	stack, err := parseNum(cfg.Stack)
	if err != nil {
		return fmt.Errorf("config: bad stack %q: %w", cfg.Stack, err)
	}
	if stack != 0 {
		c.Thread.SetGPR(1, stack)
		c.Thread.StackAddr = uint32(stack)
	}
	if cfg.StackSize != "" {
		size, err := parseNum(cfg.StackSize)
		if err != nil {
			return fmt.Errorf("config: bad stacksize %q: %w", cfg.StackSize, err)
		}
		c.Thread.StackSize = uint32(size)
	}

	if len(cfg.Debug) != 0 {
		mask, err := debug.ParseMask(cfg.Debug)
		if err != nil {
			return fmt.Errorf("config: %w", err)
		}
		c.Interp.SetDebug(mask)
	}

	for _, b := range cfg.Breaks {
		addr, err := parseNum(b.Addr)
		if err != nil {
			return fmt.Errorf("config: bad breakpoint addr %q: %w", b.Addr, err)
		}
		switch strings.ToLower(b.Kind) {
		case "", "exec":
			c.Breaks.Add(addr)
		case "gpr":
			value, err := parseNum(b.Value)
			if err != nil {
				return fmt.Errorf("config: bad breakpoint value %q: %w", b.Value, err)
			}
			if b.Reg < 0 || b.Reg > 31 {
				return fmt.Errorf("config: bad breakpoint register %d", b.Reg)
			}
			c.Breaks.AddGprEquals(addr, b.Reg, value)
		case "count":
			c.Breaks.AddInstrCount(addr, b.Count)
		default:
			return fmt.Errorf("config: unknown breakpoint kind %q", b.Kind)
		}
	}
	return nil
}
