// Package shell is the interactive command interpreter: a fixed built-in
// set over the file store, plus the nano line editor.
package shell

import (
	"fmt"
	"io"
	"strings"

	"minios/internal/buildinfo"
	"minios/kernel"
	"minios/ramfs"
)

// LineSource yields completed input lines. The kernel's line reader is the
// production implementation.
type LineSource interface {
	ReadLine(max int) string
}

// Terminal is the shell's output surface.
type Terminal interface {
	io.Writer
	Clear()
}

// Shell dispatches lines to built-ins. Its loop never returns; no command
// terminates the process.
type Shell struct {
	in  LineSource
	out Terminal
	fs  *ramfs.Store
	reg *registry
}

// New wires the shell to its input, display, and file store.
func New(in LineSource, out Terminal, fs *ramfs.Store) (*Shell, error) {
	s := &Shell{in: in, out: out, fs: fs}
	s.reg = newRegistry()
	if err := registerBuiltins(s.reg); err != nil {
		return nil, err
	}
	return s, nil
}

// Run prints the banner and services commands forever.
func (s *Shell) Run() {
	fmt.Fprintf(s.out, "MiniOS %s - terminal + tiny FS\n", buildinfo.Short())
	fmt.Fprint(s.out, "Type 'help' for commands.\n\n")

	for {
		fmt.Fprint(s.out, "mini> ")
		line := s.in.ReadLine(kernel.InputLineMax)
		if line == "" {
			continue
		}
		s.runLine(line)
	}
}

// runLine parses and dispatches one input line.
func (s *Shell) runLine(line string) {
	rest := strings.TrimLeft(line, " ")
	if rest == "" {
		return
	}

	name := rest
	arg := ""
	if i := strings.IndexByte(rest, ' '); i >= 0 {
		name = rest[:i]
		arg = strings.TrimLeft(rest[i+1:], " ")
	}

	cmd, ok := s.reg.resolve(name)
	if !ok {
		fmt.Fprintf(s.out, "Unknown command: %s\n", rest)
		return
	}
	if err := cmd.Run(s, arg); err != nil {
		fmt.Fprintf(s.out, "%s\n", err)
	}
}
