// Package notify delivers user-facing alerts (the "please install a wallet" kind).
package notify

import (
	"bufio"
	"fmt"
	"io"
	"os"

	"golang.org/x/term"

	"github.com/AlexZinkM/nft-marketplace/internal/logger"
)

// TerminalNotifier shows the alert on the terminal and blocks until Enter is pressed.
// When stdin is not a terminal it only logs the alert.
type TerminalNotifier struct {
	in  *os.File
	out io.Writer
}

// NewTerminalNotifier returns a notifier bound to stdin/stderr
func NewTerminalNotifier() *TerminalNotifier {
	return &TerminalNotifier{in: os.Stdin, out: os.Stderr}
}

// Alert displays message and waits for acknowledgement
func (n *TerminalNotifier) Alert(message string) {
	if n.in == nil || !term.IsTerminal(int(n.in.Fd())) {
		logger.Warn("%s", message)
		return
	}

	fmt.Fprintf(n.out, "%s [press Enter to continue] ", message)
	_, _ = bufio.NewReader(n.in).ReadString('\n')
}

// LogNotifier reports alerts through the logger; used by the HTTP server,
// which surfaces the same condition to the page as an error response.
type LogNotifier struct{}

// Alert logs message at warn level
func (LogNotifier) Alert(message string) {
	logger.Warn("%s", message)
}
