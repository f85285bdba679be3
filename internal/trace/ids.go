package trace

import (
	"runtime"
	"strconv"
	"strings"
	"sync/atomic"
)

var (
	seqCounter  atomic.Uint64
	spanCounter atomic.Uint64
)

// NextSeq numbers events process-wide; sinks assign it when Seq is 0.
func NextSeq() uint64 { return seqCounter.Add(1) }

func nextSpanID() uint64 { return spanCounter.Add(1) }

// goroutineID reads the current goroutine number from the first line of
// runtime.Stack: "goroutine 17 [running]:". Returns 0 if it cannot.
func goroutineID() uint64 {
	var buf [64]byte
	line := string(buf[:runtime.Stack(buf[:], false)])
	line, ok := strings.CutPrefix(line, "goroutine ")
	if !ok {
		return 0
	}
	num, _, _ := strings.Cut(line, " ")
	gid, err := strconv.ParseUint(num, 10, 64)
	if err != nil {
		return 0
	}
	return gid
}
