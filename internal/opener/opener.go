// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package opener hands a file to the platform's default viewer. Each
// platform has an ordered list of launcher commands; the first one present
// on PATH is selected once at startup.
package opener

import (
	"fmt"
	"os/exec"
	"runtime"
	"strings"
)

// Opener opens files with the desktop's default application.
type Opener interface {
	// Name returns the launcher binary (e.g. "xdg-open").
	Name() string

	// Available reports whether the launcher binary exists on PATH.
	Available() bool

	// Open launches the default application for path and waits for the
	// launcher to return.
	Open(path string) error
}

// executor abstracts command execution for testing.
type executor interface {
	LookPath(file string) (string, error)
	Run(name string, args ...string) error
}

// osExecutor is the production executor backed by os/exec.
type osExecutor struct{}

func (o *osExecutor) LookPath(file string) (string, error) {
	return exec.LookPath(file)
}

func (o *osExecutor) Run(name string, args ...string) error {
	return exec.Command(name, args...).Run()
}

// launcher implements Opener for one command line. Platforms differ only in
// the binary and the arguments placed before the file path.
type launcher struct {
	bin  string
	args []string
	exec executor
}

func (l *launcher) Name() string { return l.bin }

func (l *launcher) Available() bool {
	_, err := l.exec.LookPath(l.bin)
	return err == nil
}

func (l *launcher) Open(path string) error {
	args := make([]string, 0, len(l.args)+1)
	args = append(args, l.args...)
	args = append(args, path)

	if err := l.exec.Run(l.bin, args...); err != nil {
		return fmt.Errorf("opening %s with %s: %w", path, l.bin, err)
	}
	return nil
}

// launchers returns the candidate launchers for goos in preference order.
func launchers(goos string, exec executor) []*launcher {
	switch goos {
	case "darwin":
		return []*launcher{{bin: "open", exec: exec}}
	case "windows":
		return []*launcher{{bin: "rundll32", args: []string{"url.dll,FileProtocolHandler"}, exec: exec}}
	default:
		return []*launcher{
			{bin: "xdg-open", exec: exec},
			{bin: "gio", args: []string{"open"}, exec: exec},
		}
	}
}

var defaultExec = &osExecutor{}

// Detect selects the launcher for the running platform. It returns an error
// if none of the platform's launchers is installed.
func Detect() (Opener, error) {
	return detect(runtime.GOOS, defaultExec)
}

func detect(goos string, exec executor) (Opener, error) {
	candidates := launchers(goos, exec)
	names := make([]string, len(candidates))
	for i, l := range candidates {
		if l.Available() {
			return l, nil
		}
		names[i] = l.bin
	}
	return nil, fmt.Errorf("no file launcher available on %s: tried %s", goos, strings.Join(names, ", "))
}
