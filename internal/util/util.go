package util

import (
	"fmt"
	"runtime"
	"strings"
)

// GetTrace produces the string representation of a stack trace
func GetTrace() string {
	var name, file string
	var line int
	var pc [16]uintptr
	var res strings.Builder
	n := runtime.Callers(3, pc[:])
	for _, pc := range pc[:n] {
		fn := runtime.FuncForPC(pc)
		if fn == nil {
			continue
		}
		file, line = fn.FileLine(pc)
		name = fn.Name()
		if !strings.HasPrefix(name, "runtime.") {
			fmt.Fprintf(&res, "%s\n\t%s:%d\n", name, file, line)
		}
	}
	return res.String()
}

// FormatMultiError formats multierrors for logging, and is the ErrorFormat
// of the multierrors returned by Tables, configs and operations
func FormatMultiError(merrs []error) string {
	if len(merrs) == 1 {
		return merrs[0].Error()
	}
	var msg = fmt.Sprintf("%d errors occurred:\n", len(merrs))
	for i := 0; i < len(merrs); i++ {
		msg += fmt.Sprintf("\t* %+v\n", merrs[i])
	}
	return msg
}
