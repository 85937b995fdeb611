//
// Krusty - UCI chess engine in GO
//
// MIT License
//
// Copyright (c) 2022 Billy Levin
//
// Permission is hereby granted, free of charge, to any person obtaining a copy
// of this software and associated documentation files (the "Software"), to deal
// in the Software without restriction, including without limitation the rights
// to use, copy, modify, merge, publish, distribute, sublicense, and/or sell
// copies of the Software, and to permit persons to whom the Software is
// furnished to do so, subject to the following conditions:
//
// The above copyright notice and this permission notice shall be included in all
// copies or substantial portions of the Software.
//
// THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
// IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
// FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE
// AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER
// LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM,
// OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN THE
// SOFTWARE.
//

// Krusty is a UCI chess engine. Without arguments it starts the UCI
// protocol loop on stdin/stdout. The interactive shell, perft runs
// and perft suites are available through command line options.
package main

import (
	"flag"
	"fmt"
	"os"
	"runtime"

	"github.com/pkg/profile"

	"github.com/BillyLevin/krusty/internal/config"
	"github.com/BillyLevin/krusty/internal/logging"
	"github.com/BillyLevin/krusty/internal/movegen"
	"github.com/BillyLevin/krusty/internal/position"
	"github.com/BillyLevin/krusty/internal/shell"
	"github.com/BillyLevin/krusty/internal/testsuite"
	"github.com/BillyLevin/krusty/internal/uci"
	"github.com/BillyLevin/krusty/internal/version"
)

func main() {
	versionInfo := flag.Bool("version", false, "prints version and exits")
	configFile := flag.String("config", "./config.toml", "path to configuration settings file")
	logLvl := flag.String("loglvl", "", "standard log level\n(off|critical|error|warning|notice|info|debug)")
	searchLogLvl := flag.String("searchloglvl", "", "search log level\n(off|critical|error|warning|notice|info|debug)")
	interactive := flag.Bool("shell", false, "starts the interactive command shell instead of the UCI loop")
	perftDepth := flag.Int("perft", 0, "runs perft on the given position to the given depth and exits")
	fen := flag.String("fen", position.StartFen, "fen for the -perft option")
	suite := flag.String("suite", "", "runs the perft test suite file and exits")
	cpuProfile := flag.Bool("cpuprofile", false, "writes a cpu profile to the current directory")
	flag.Parse()

	if *versionInfo {
		printVersionInfo()
		return
	}

	if *cpuProfile {
		defer profile.Start(profile.CPUProfile, profile.ProfilePath(".")).Stop()
	}

	// this needs to be set before config.Setup() is called,
	// otherwise the default will be used
	config.ConfFile = *configFile
	config.Setup()

	// cmd line options overwrite config file and defaults
	if lvl, found := config.LogLevels[*logLvl]; found {
		config.LogLevel = lvl
	}
	if lvl, found := config.LogLevels[*searchLogLvl]; found {
		config.SearchLogLevel = lvl
	}
	logging.GetLog()

	switch {
	case *perftDepth > 0:
		perft := movegen.NewPerft(128)
		for depth := 1; depth <= *perftDepth; depth++ {
			perft.StartPerft(*fen, depth, false)
		}

	case *suite != "":
		ts, err := testsuite.NewTestSuite(*suite)
		if err != nil {
			fmt.Println(err)
			os.Exit(1)
		}
		if !ts.RunTests() {
			os.Exit(1)
		}

	case *interactive:
		shell.NewShell().Loop()

	default:
		// starting the uci handler and waiting for communication
		// with the UCI user interface
		u := uci.NewUciHandler()
		u.Loop()
	}
}

func printVersionInfo() {
	fmt.Printf("Krusty %s\n", version.Version())
	fmt.Printf("  GO version %s, %s/%s\n", runtime.Version(), runtime.GOOS, runtime.GOARCH)
}
