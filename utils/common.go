package utils

import (
	"fmt"
	"time"
)

// TimeTrack logs how long an operation took, in the teacher's own
// debugging idiom: `defer utils.TimeTrack(time.Now(), "solve")`.
func TimeTrack(start time.Time, name string) {
	fmt.Printf("%s took %s\n", name, time.Since(start))
}

// VerbosePrint prints only when -verbose was passed.
func VerbosePrint(format string, a ...interface{}) (n int, err error) {
	if Opts().Verbose() {
		return fmt.Printf(format, a...)
	}
	return 0, nil
}
