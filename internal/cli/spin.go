package cli

import (
	"fmt"
	"io"
	"time"

	"github.com/briandowns/spinner"
)

var nonTTYTickInterval = 30 * time.Second

// Spin shows a spinner with message until the returned stop function is
// called. Without a TTY it prints the message once and ticks dots instead.
func Spin(message string, tty bool, out io.Writer) func() {
	if tty {
		indicator := spinner.New(spinner.CharSets[11], 100*time.Millisecond, spinner.WithWriter(out))
		indicator.Suffix = " " + message
		indicator.Start()
		return indicator.Stop
	} else {
		ticker := time.NewTicker(nonTTYTickInterval)
		fmt.Fprintln(out, message)
		go func() {
			for range ticker.C {
				fmt.Fprintf(out, ".")
			}
		}()

		return func() {
			ticker.Stop()
			fmt.Fprintln(out)
		}
	}
}
