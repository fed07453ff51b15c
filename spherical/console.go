package spherical

import "fmt"

// Console receives human-readable progress, warning and error lines, one
// call per line. It is a plain sink, not a logging framework; structured
// operational logging goes through logrus separately. A nil Console
// discards everything.
type Console func(message string)

// Emit formats a line and hands it to the sink. Safe on a nil Console.
func (c Console) Emit(format string, args ...interface{}) {
	if c == nil {
		return
	}
	c(fmt.Sprintf(format, args...))
}
