/*
 * LindyGo - UCI chess engine in GO for learning purposes
 *
 * MIT License
 *
 * Copyright (c) 2018-2020 Frank Kopp
 *
 * Permission is hereby granted, free of charge, to any person obtaining a copy
 * of this software and associated documentation files (the "Software"), to deal
 * in the Software without restriction, including without limitation the rights
 * to use, copy, modify, merge, publish, distribute, sublicense, and/or sell
 * copies of the Software, and to permit persons to whom the Software is
 * furnished to do so, subject to the following conditions:
 *
 * The above copyright notice and this permission notice shall be included in all
 * copies or substantial portions of the Software.
 *
 * THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
 * IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
 * FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE
 * AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER
 * LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM,
 * OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN THE
 * SOFTWARE.
 */

// Package config holds the global configuration of the engine.
// Defaults are set in the init functions of the sub configurations
// and can be overwritten by a TOML configuration file and by
// command line options.
package config

import (
	"fmt"

	"github.com/BurntSushi/toml"
	"github.com/op/go-logging"
)

// globally available config values
var (
	// ConfFile is the path to the configuration file.
	// Can be set before Setup() is called - otherwise the default is used.
	ConfFile = "./config.toml"

	// LogLevel defines the general log level set by default or given
	// by the command line arguments
	LogLevel = int(logging.INFO)

	// SearchLogLevel defines the search log level set by default or
	// given by the command line arguments
	SearchLogLevel = int(logging.INFO)

	// TestLogLevel defines the log level used in unit tests
	TestLogLevel = int(logging.INFO)

	// Settings is the global configuration read in from file
	Settings conf

	initialized = false
)

// LogLevels maps log level names used in the configuration file and
// on the command line to go-logging levels
var LogLevels = map[string]int{
	"critical": int(logging.CRITICAL),
	"error":    int(logging.ERROR),
	"warning":  int(logging.WARNING),
	"notice":   int(logging.NOTICE),
	"info":     int(logging.INFO),
	"debug":    int(logging.DEBUG),
}

type conf struct {
	Log    logConfiguration
	Search searchConfiguration
	Eval   evalConfiguration
}

// Setup reads the configuration file and sets the log levels.
// Keeps an initialized flag to avoid multiple executions.
func Setup() {
	if initialized {
		return
	}

	// read configuration file - missing file is not an error as all
	// settings have defaults
	if _, err := toml.DecodeFile(ConfFile, &Settings); err != nil {
		fmt.Printf("config file %s not read: %v - using defaults\n", ConfFile, err)
	}

	setupLogLvl()

	initialized = true
}

func setupLogLvl() {
	if lvl, found := LogLevels[Settings.Log.LogLvl]; found {
		LogLevel = lvl
	}
	if lvl, found := LogLevels[Settings.Log.SearchLogLvl]; found {
		SearchLogLevel = lvl
	}
}
