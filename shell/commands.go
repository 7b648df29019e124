package shell

import (
	"errors"
	"fmt"
	"strings"

	"minios/internal/buildinfo"
)

func registerBuiltins(r *registry) error {
	for _, cmd := range []command{
		{Name: "help", Usage: "help", Desc: "Show available commands.", Run: cmdHelp},
		{Name: "clear", Usage: "clear", Desc: "Clear the screen.", Run: cmdClear},
		{Name: "version", Usage: "version", Desc: "Show kernel version.", Run: cmdVersion},
		{Name: "echo", Usage: "echo <text>", Desc: "Echo text.", Run: cmdEcho},
		{Name: "ls", Usage: "ls", Desc: "List files.", Run: cmdLs},
		{Name: "cat", Usage: "cat <file>", Desc: "Show file contents.", Run: cmdCat},
		{Name: "touch", Usage: "touch <file>", Desc: "Create empty file.", Run: cmdTouch},
		{Name: "rm", Usage: "rm <file>", Desc: "Remove file.", Run: cmdRm},
		{Name: "write", Usage: "write <file> <text>", Desc: "Write text to file (overwrite).", Run: cmdWrite},
		{Name: "nano", Usage: "nano <file>", Desc: "Edit/create a file with simple editor.", Run: cmdNano},
	} {
		if err := r.register(cmd); err != nil {
			return err
		}
	}
	return nil
}

func cmdHelp(s *Shell, _ string) error {
	fmt.Fprint(s.out, "Available commands:\n")
	for _, name := range s.reg.names() {
		cmd, ok := s.reg.resolve(name)
		if !ok {
			continue
		}
		fmt.Fprintf(s.out, "  %-20s - %s\n", cmd.Usage, cmd.Desc)
	}
	return nil
}

func cmdClear(s *Shell, _ string) error {
	s.out.Clear()
	return nil
}

func cmdVersion(s *Shell, _ string) error {
	fmt.Fprintf(s.out, "MiniOS version %s\n", buildinfo.Short())
	return nil
}

func cmdEcho(s *Shell, arg string) error {
	fmt.Fprintf(s.out, "%s\n", arg)
	return nil
}

func cmdLs(s *Shell, _ string) error {
	fmt.Fprint(s.out, "Files:\n")
	for _, info := range s.fs.List() {
		fmt.Fprintf(s.out, "  %s (%d bytes)\n", info.Name, info.Size)
	}
	return nil
}

func cmdCat(s *Shell, arg string) error {
	if arg == "" {
		return errors.New("Usage: cat <file>")
	}
	if _, err := s.fs.ReadTo(arg, s.out); err != nil {
		fmt.Fprintf(s.out, "No such file: %s\n", arg)
		return nil
	}
	fmt.Fprint(s.out, "\n")
	return nil
}

func cmdTouch(s *Shell, arg string) error {
	if arg == "" {
		return errors.New("Usage: touch <file>")
	}
	if err := s.fs.Create(arg); err != nil {
		fmt.Fprintf(s.out, "Cannot create %s: %s\n", arg, err)
	}
	return nil
}

func cmdRm(s *Shell, arg string) error {
	if arg == "" {
		return errors.New("Usage: rm <file>")
	}
	if err := s.fs.Remove(arg); err != nil {
		fmt.Fprintf(s.out, "No such file: %s\n", arg)
	}
	return nil
}

func cmdWrite(s *Shell, arg string) error {
	if arg == "" {
		return errors.New("Usage: write <file> <text>")
	}

	name := arg
	text := ""
	if i := strings.IndexByte(arg, ' '); i >= 0 {
		name = arg[:i]
		text = strings.TrimLeft(arg[i+1:], " ")
	}
	if name == "" {
		fmt.Fprint(s.out, "Invalid file name\n")
		return nil
	}
	if text == "" {
		fmt.Fprint(s.out, "No text provided\n")
		return nil
	}

	n, err := s.fs.Write(name, []byte(text))
	if err != nil {
		fmt.Fprint(s.out, "Failed to write file\n")
		return nil
	}
	if n < len(text) {
		fmt.Fprintf(s.out, "Wrote %d bytes to %s (truncated)\n", n, name)
		return nil
	}
	fmt.Fprintf(s.out, "Wrote %d bytes to %s\n", n, name)
	return nil
}

func cmdNano(s *Shell, arg string) error {
	if arg == "" {
		return errors.New("Usage: nano <file>")
	}
	s.nano(arg)
	return nil
}
