package ollamalink

import (
	"fmt"
	"io"
	"strings"
	"sync"
	"time"

	"github.com/charmbracelet/lipgloss"
)

var (
	debugTagStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
	infoTagStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("75"))
	successTagStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("42")).Bold(true)
	warnTagStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("214")).Bold(true)
	errorTagStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("196")).Bold(true)
	timeStyle       = lipgloss.NewStyle().Foreground(lipgloss.Color("245"))
	keyStyle        = lipgloss.NewStyle().Foreground(lipgloss.Color("245"))
)

// consoleLogger renders timestamped, severity-tagged lines for terminal use.
// It implements Logger and the success severity extension.
type consoleLogger struct {
	// mu serializes writes so interleaved lines stay whole.
	mu sync.Mutex

	// w is the output stream, normally stderr.
	w io.Writer

	// verbose enables debug output.
	verbose bool

	// quiet suppresses info and success output. Warnings and errors are
	// always emitted.
	quiet bool
}

// NewConsoleLogger creates a Logger that writes colored, timestamped lines
// to w. Debug output requires verbose; quiet suppresses info and success.
func NewConsoleLogger(w io.Writer, verbose, quiet bool) Logger {
	return &consoleLogger{w: w, verbose: verbose, quiet: quiet}
}

func (c *consoleLogger) log(tag string, style lipgloss.Style, msg string, keysAndValues ...any) {
	var b strings.Builder
	b.WriteString(timeStyle.Render(time.Now().Format("15:04:05")))
	b.WriteString(" ")
	b.WriteString(style.Render(fmt.Sprintf("%-7s", tag)))
	b.WriteString(" ")
	b.WriteString(msg)
	for i := 0; i+1 < len(keysAndValues); i += 2 {
		b.WriteString(" ")
		b.WriteString(keyStyle.Render(fmt.Sprintf("%v=", keysAndValues[i])))
		b.WriteString(fmt.Sprintf("%v", keysAndValues[i+1]))
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	fmt.Fprintln(c.w, b.String())
}

func (c *consoleLogger) Debug(msg string, keysAndValues ...any) {
	if !c.verbose {
		return
	}
	c.log("DEBUG", debugTagStyle, msg, keysAndValues...)
}

func (c *consoleLogger) Info(msg string, keysAndValues ...any) {
	if c.quiet {
		return
	}
	c.log("INFO", infoTagStyle, msg, keysAndValues...)
}

func (c *consoleLogger) Success(msg string, keysAndValues ...any) {
	if c.quiet {
		return
	}
	c.log("SUCCESS", successTagStyle, msg, keysAndValues...)
}

func (c *consoleLogger) Warn(msg string, keysAndValues ...any) {
	c.log("WARN", warnTagStyle, msg, keysAndValues...)
}

func (c *consoleLogger) Error(msg string, keysAndValues ...any) {
	c.log("ERROR", errorTagStyle, msg, keysAndValues...)
}
