// Package launcher hands finished documents to the desktop: the default PDF viewer, the print
// spooler, and the clipboard for review text.
package launcher

import (
	"errors"
	"fmt"
	"os/exec"
	"runtime"
	"strings"
)

// LauncherError is returned when no utility for the requested action is available
type LauncherError struct {
	OS      string
	Action  string
	Message string
}

func (e *LauncherError) Error() string {
	return e.Message
}

func newLauncherError(goos, action string) *LauncherError {
	var msg string
	switch {
	case goos == "linux" && action == "print":
		msg = "no print utility found. Install CUPS (lp/lpr):\n" +
			"  • Ubuntu/Debian: sudo apt install cups-client\n" +
			"  • Fedora/RHEL: sudo dnf install cups-client\n" +
			"  • Arch: sudo pacman -S cups"
	case goos == "linux" && action == "open":
		msg = "no desktop opener found. Install xdg-utils"
	case goos == "linux" && action == "copy":
		msg = "no clipboard utility found. Install xclip, xsel, or wl-clipboard"
	default:
		msg = fmt.Sprintf("%s is not supported on %s", action, goos)
	}
	return &LauncherError{OS: goos, Action: action, Message: msg}
}

type command struct {
	name string
	args []string
}

// Launcher runs the per-OS commands. The zero value is not usable; call New.
type Launcher struct {
	goos     string
	lookPath func(string) (string, error)
	run      func(stdin string, name string, args ...string) error
}

// New returns a launcher for the running system
func New() *Launcher {
	return &Launcher{
		goos:     runtime.GOOS,
		lookPath: exec.LookPath,
		run:      runCommand,
	}
}

func runCommand(stdin string, name string, args ...string) error {
	cmd := exec.Command(name, args...)
	if stdin != "" {
		cmd.Stdin = strings.NewReader(stdin)
	}
	if out, err := cmd.CombinedOutput(); err != nil {
		if msg := strings.TrimSpace(string(out)); msg != "" {
			return fmt.Errorf("%s failed: %w: %s", name, err, msg)
		}
		return fmt.Errorf("%s failed: %w", name, err)
	}
	return nil
}

// Open shows the file in the default viewer
func (l *Launcher) Open(path string) error {
	var candidates []command
	switch l.goos {
	case "darwin":
		candidates = []command{{"open", []string{path}}}
	case "linux", "freebsd", "openbsd":
		candidates = []command{{"xdg-open", []string{path}}, {"gio", []string{"open", path}}}
	case "windows":
		candidates = []command{{"rundll32", []string{"url.dll,FileProtocolHandler", path}}}
	}
	return l.first("open", "", candidates)
}

// Print sends the file to the default printer
func (l *Launcher) Print(path string) error {
	var candidates []command
	switch l.goos {
	case "darwin":
		candidates = []command{{"lp", []string{path}}, {"lpr", []string{path}}, {"open", []string{"-a", "Preview", path}}}
	case "linux", "freebsd", "openbsd":
		candidates = []command{{"lp", []string{path}}, {"lpr", []string{path}}}
	case "windows":
		candidates = []command{{"powershell", []string{"-NoProfile", "-Command",
			fmt.Sprintf("Start-Process -FilePath '%s' -Verb Print", strings.ReplaceAll(path, "'", "''"))}}}
	}
	return l.first("print", "", candidates)
}

// Copy puts text on the system clipboard
func (l *Launcher) Copy(text string) error {
	var candidates []command
	switch l.goos {
	case "darwin":
		candidates = []command{{"pbcopy", nil}}
	case "linux", "freebsd", "openbsd":
		candidates = []command{
			{"xclip", []string{"-selection", "clipboard"}},
			{"xsel", []string{"--clipboard", "--input"}},
			{"wl-copy", nil},
		}
	case "windows":
		candidates = []command{{"clip", nil}}
	}
	return l.first("copy", text, candidates)
}

// first runs the first available candidate, falling back to the next one when it fails
func (l *Launcher) first(action, stdin string, candidates []command) error {
	var lastErr error
	for _, c := range candidates {
		if _, err := l.lookPath(c.name); err != nil {
			continue
		}
		if err := l.run(stdin, c.name, c.args...); err != nil {
			lastErr = err
			continue
		}
		return nil
	}

	if lastErr != nil {
		return fmt.Errorf("%s utilities available but failed: %w", action, lastErr)
	}
	return newLauncherError(l.goos, action)
}

// IsUnavailable reports whether err means the action has no utility on this system
func IsUnavailable(err error) bool {
	var launcherErr *LauncherError
	return errors.As(err, &launcherErr)
}
