package errors

import (
	"fmt"
	"runtime"
	"strings"
	"sync/atomic"
	"time"
)

type handlerRef struct{ h ErrorHandler }

var current atomic.Pointer[handlerRef]

func init() {
	current.Store(&handlerRef{h: &LogHandler{}})
}

// SetHandler replaces the process-wide handler. Nil restores a LogHandler
// writing to stderr.
func SetHandler(h ErrorHandler) {
	if h == nil {
		h = &LogHandler{}
	}
	current.Store(&handlerRef{h: h})
}

// Handler returns the process-wide handler.
func Handler() ErrorHandler {
	return current.Load().h
}

// Report hands err to the current handler, stamping it if needed.
func Report(err *Error) {
	if err == nil {
		return
	}
	if err.Timestamp.IsZero() {
		err.Timestamp = time.Now()
	}
	Handler().HandleError(err)
}

// ReportPanic hands a recovered panic to the current handler.
func ReportPanic(err *PanicError) {
	if err == nil {
		return
	}
	Handler().HandlePanic(err)
}

// Recover reports a panic in the calling goroutine and lets it continue.
// It must be deferred directly:
//
//	defer errors.Recover("dispatch.Handle")
func Recover(op string) {
	if r := recover(); r != nil {
		reportRecovered(op, r)
	}
}

// RecoverWithCallback is Recover followed by callback(r) for the recovered
// value.
func RecoverWithCallback(op string, callback func(r any)) {
	if r := recover(); r != nil {
		reportRecovered(op, r)
		if callback != nil {
			callback(r)
		}
	}
}

func reportRecovered(op string, r any) {
	ReportPanic(&PanicError{
		Op:         op,
		Value:      r,
		StackTrace: CaptureStack(),
		Timestamp:  time.Now(),
	})
}

// stackDepth bounds the frames kept by CaptureStack.
const stackDepth = 32

// CaptureStack formats the stack of its caller's caller, one function and
// file:line pair per frame.
func CaptureStack() string {
	var pcs [stackDepth]uintptr
	n := runtime.Callers(3, pcs[:])
	if n == 0 {
		return ""
	}
	var sb strings.Builder
	frames := runtime.CallersFrames(pcs[:n])
	for more := true; more; {
		var f runtime.Frame
		f, more = frames.Next()
		fmt.Fprintf(&sb, "%s\n\t%s:%d\n", f.Function, f.File, f.Line)
	}
	return sb.String()
}
