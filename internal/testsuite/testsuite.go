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

// Package testsuite runs perft test suites against the move
// generator. A suite file contains one position per line with
// semicolon separated fields:
//
//	<FEN> ;D1 <nodes> ;D2 <nodes> ; ...
package testsuite

import (
	"bufio"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/fatih/color"

	"github.com/BillyLevin/krusty/internal/logging"
	"github.com/BillyLevin/krusty/internal/movegen"
)

// Test is one depth/node count expectation of a suite position
type Test struct {
	Depth         int
	ExpectedNodes uint64
}

// SuitePosition is one line of a suite file
type SuitePosition struct {
	Fen   string
	Tests []Test
}

// TestSuite holds all positions of a suite file.
// Create with NewTestSuite.
type TestSuite struct {
	FilePath  string
	Positions []SuitePosition
}

var (
	passColor = color.New(color.FgGreen)
	failColor = color.New(color.FgRed)
)

// NewTestSuite reads and parses a suite file
func NewTestSuite(filePath string) (*TestSuite, error) {
	file, err := os.Open(filePath)
	if err != nil {
		return nil, err
	}
	defer func() { _ = file.Close() }()

	ts := &TestSuite{FilePath: filePath}
	scanner := bufio.NewScanner(file)
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		pos, err := parseSuiteLine(line)
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", lineNo, err)
		}
		ts.Positions = append(ts.Positions, pos)
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	return ts, nil
}

// RunTests runs all perft tests of the suite and reports the results.
// Returns true when every expectation matched.
func (ts *TestSuite) RunTests() bool {
	log := logging.GetTestLog()
	startTime := time.Now()

	perft := movegen.NewPerft(128)
	passCount := 0
	failCount := 0

	for i, p := range ts.Positions {
		fmt.Printf("[%d/%d] FEN: %s\n", i+1, len(ts.Positions), p.Fen)
		for _, test := range p.Tests {
			nodes := perft.StartPerft(p.Fen, test.Depth, false)
			if nodes == test.ExpectedNodes {
				passCount++
				_, _ = passColor.Printf("\tdepth: %d, nodes: %d ok\n", test.Depth, nodes)
			} else {
				failCount++
				_, _ = failColor.Printf("\tdepth: %d, expected: %d, got: %d FAIL\n",
					test.Depth, test.ExpectedNodes, nodes)
			}
		}
	}

	elapsed := time.Since(startTime)
	log.Infof("Suite %s: %d passed, %d failed, %d total in %d ms",
		ts.FilePath, passCount, failCount, passCount+failCount, elapsed.Milliseconds())
	return failCount == 0
}

// parseSuiteLine parses "<fen> ;D1 20 ;D2 400 ..."
func parseSuiteLine(line string) (SuitePosition, error) {
	parts := strings.Split(line, ";")
	if len(parts) < 2 {
		return SuitePosition{}, fmt.Errorf("no tests in suite line %q", line)
	}
	pos := SuitePosition{Fen: strings.TrimSpace(parts[0])}
	for _, part := range parts[1:] {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		if part[0] != 'D' {
			return SuitePosition{}, fmt.Errorf("invalid depth field %q", part)
		}
		fields := strings.Fields(part[1:])
		if len(fields) != 2 {
			return SuitePosition{}, fmt.Errorf("invalid test field %q", part)
		}
		depth, err := strconv.Atoi(fields[0])
		if err != nil {
			return SuitePosition{}, fmt.Errorf("invalid depth in %q", part)
		}
		nodes, err := strconv.ParseUint(fields[1], 10, 64)
		if err != nil {
			return SuitePosition{}, fmt.Errorf("invalid node count in %q", part)
		}
		pos.Tests = append(pos.Tests, Test{Depth: depth, ExpectedNodes: nodes})
	}
	return pos, nil
}
