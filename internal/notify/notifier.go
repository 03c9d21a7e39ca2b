package notify

import (
	"io"
	"os"

	"github.com/fatih/color"
	"golang.org/x/term"
)

// Notifier writes the bootstrap success banner to an operational console
// or log sink.
type Notifier struct {
	out          io.Writer
	databaseName string
	userName     string
	success      *color.Color
}

// NewNotifier constructs a Notifier writing to out. With colour disabled
// the emitted bytes are exactly the Banner text, which keeps output
// deterministic for log sinks and tests.
func NewNotifier(out io.Writer, databaseName, userName string, colorEnabled bool) *Notifier {
	success := color.New(color.FgGreen, color.Bold)

	if colorEnabled {
		success.EnableColor()
	} else {
		success.DisableColor()
	}

	return &Notifier{
		out:          out,
		databaseName: databaseName,
		userName:     userName,
		success:      success,
	}
}

// NotifyReady emits the success banner and returns the emitted text.
// Sink write failures are infrastructure concerns, not bootstrap logic,
// and are not reported.
func (n *Notifier) NotifyReady() string {
	message := Banner(n.databaseName, n.userName)
	n.success.Fprint(n.out, message) //nolint:errcheck // log-sink failures are out of scope

	return message
}

// ColorEnabled reports whether coloured output should be used for f,
// honouring the NO_COLOR convention.
func ColorEnabled(f *os.File) bool {
	return term.IsTerminal(int(f.Fd())) && os.Getenv("NO_COLOR") == ""
}
