package core

import (
	"path/filepath"
	"runtime"
)

// Location is the source position of a log call site.
type Location struct {
	File string // base name only
	Line int
}

// Caller returns the location skip frames above its caller. A failed
// lookup yields "???" and line 1, the same placeholder glog prints.
func Caller(skip int) Location {
	_, file, line, ok := runtime.Caller(skip + 1)
	if !ok {
		return Location{File: "???", Line: 1}
	}
	return Location{File: filepath.Base(file), Line: line}
}
