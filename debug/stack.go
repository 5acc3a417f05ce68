package debug

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"time"

	"github.com/shirou/gopsutil/mem"
)

const maxDepth = 32

type MemStats struct {
	Total       uint64
	Alloc       uint64
	TotalAlloc  uint64
	Mallocs     uint64
	HeapAlloc   uint64
	HeapObjects uint64
}

type Stack struct {
	Message  string
	Time     int64
	Frames   []StackFrame
	MemStats MemStats
	Total    int
}

type StackFrame struct {
	Function string
	File     string
	Line     int
}

type stackOptions struct {
	strip    bool
	maxDepth int
	calls    int
}

// Hash identifies the call site so repeated drops can be deduplicated.
func (s *Stack) Hash(extra ...string) string {
	var builder strings.Builder

	builder.WriteString(s.Message)

	for i := range extra {
		builder.WriteString(extra[i])
	}

	for _, frame := range s.Frames {
		builder.WriteString(frame.Function)
		builder.WriteString(frame.File)
		builder.WriteString(fmt.Sprint(frame.Line))
	}

	sum := sha256.Sum256([]byte(builder.String()))
	return hex.EncodeToString(sum[:])
}

func stripPath(frameFile string) string {
	cwd, err := os.Getwd()
	if err != nil {
		return frameFile
	}

	rel, err := filepath.Rel(cwd, frameFile)
	if err != nil {
		return frameFile
	}

	return filepath.ToSlash(rel)
}

func frames(skip int, options stackOptions) (stack []StackFrame) {
	pc := make([]uintptr, options.maxDepth)
	n := runtime.Callers(skip, pc)
	frames := runtime.CallersFrames(pc[:n])

	for {
		frame, more := frames.Next()
		if !strings.HasPrefix(frame.Function, "runtime.") {
			file := frame.File

			if options.strip {
				file = stripPath(file)
			}

			stack = append(stack, StackFrame{
				Function: frame.Function,
				File:     file,
				Line:     frame.Line,
			})
		}
		if !more {
			return stack
		}
	}
}

func memStats() MemStats {
	var total uint64
	var stats runtime.MemStats

	runtime.ReadMemStats(&stats)

	if memory, _ := mem.VirtualMemory(); memory != nil {
		total = memory.Total
	}

	return MemStats{
		Total:       total,
		Alloc:       stats.Alloc,
		TotalAlloc:  stats.TotalAlloc,
		Mallocs:     stats.Mallocs,
		HeapAlloc:   stats.HeapAlloc,
		HeapObjects: stats.HeapObjects,
	}
}

func makeStack(msg string, skip int, options stackOptions) Stack {
	return Stack{
		Message:  msg,
		Time:     time.Now().UnixMilli(),
		Frames:   frames(skip, options),
		MemStats: memStats(),
		Total:    options.calls,
	}
}
