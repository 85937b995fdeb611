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

package search

import (
	"time"

	"github.com/BillyLevin/krusty/internal/util"
	. "github.com/BillyLevin/krusty/internal/types"
)

// nodesBetweenTimeChecks - elapsed time is only checked every this
// many visited nodes to keep the check off the hot path
const nodesBetweenTimeChecks = 2048

// searchTimer controls the duration of a time controlled search.
// The stopped flag is shared with the protocol layer ("stop" command)
// and checked cooperatively by the search.
type searchTimer struct {
	startTime       time.Time
	allowedDuration time.Duration
	timeControlled  bool
	stopped         *util.Bool
}

func newSearchTimer() *searchTimer {
	return &searchTimer{stopped: util.NewBool(false)}
}

// initialize computes the target duration for the move from the
// remaining time, the increment and the number of moves to go
// (defaults to 30):  remaining/movesToGo + increment - 50ms
func (st *searchTimer) initialize(remaining time.Duration, increment time.Duration, movesToGo int) {
	if movesToGo <= 0 {
		movesToGo = 30
	}
	duration := remaining/time.Duration(movesToGo) + increment - 50*time.Millisecond
	if duration < 0 {
		duration = 0
	}
	st.allowedDuration = duration
	st.timeControlled = true
}

// start begins the monotonic measurement
func (st *searchTimer) start() {
	st.startTime = time.Now()
	st.stopped.Store(false)
}

// checkTime sets the stopped flag when the allowed duration has
// elapsed. Called every nodesBetweenTimeChecks nodes.
func (st *searchTimer) checkTime(nodes uint64) {
	if !st.timeControlled || nodes%nodesBetweenTimeChecks != 0 {
		return
	}
	if time.Since(st.startTime) >= st.allowedDuration {
		st.stopped.Store(true)
	}
}

// isStopped reports whether the search shall unwind
func (st *searchTimer) isStopped() bool {
	return st.stopped.Load()
}

// stop forces the stopped flag (uci "stop" command)
func (st *searchTimer) stop() {
	st.stopped.Store(true)
}

// reset clears the timer state for a new search
func (st *searchTimer) reset() {
	st.timeControlled = false
	st.allowedDuration = 0
	st.stopped.Store(false)
}

// sentinel score returned by all recursive calls after the timer
// expired. Results carrying it are discarded.
const valueStopped = ValueZero
