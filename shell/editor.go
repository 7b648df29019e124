package shell

import (
	"bytes"
	"fmt"
	"strings"

	"minios/kernel"
	"minios/ramfs"
)

// The editor is a three-state machine: Load copies the target file into the
// working buffer, Editing consumes one line per step, Exit returns to the
// shell. Dot-lines are commands; anything else is content to append.
type editorState uint8

const (
	stateEditing editorState = iota
	stateExit
)

type editorCmdKind uint8

const (
	edNone editorCmdKind = iota
	edHelp
	edSave
	edWriteQuit
	edQuit
	edAppend
	edUnknown
)

type editorCmd struct {
	kind editorCmdKind
	text string
}

// parseEditorLine classifies one input line. A bare "." and the empty line
// are ignored.
func parseEditorLine(line string) editorCmd {
	if line == "" || line == "." {
		return editorCmd{kind: edNone}
	}
	if !strings.HasPrefix(line, ".") {
		return editorCmd{kind: edAppend, text: line}
	}
	switch line {
	case ".help":
		return editorCmd{kind: edHelp}
	case ".save":
		return editorCmd{kind: edSave}
	case ".wq":
		return editorCmd{kind: edWriteQuit}
	case ".quit":
		return editorCmd{kind: edQuit}
	}
	return editorCmd{kind: edUnknown, text: line}
}

type editor struct {
	name string
	fs   *ramfs.Store
	out  Terminal
	buf  []byte
}

// nano runs the append-only editor until write-quit or quit.
func (s *Shell) nano(name string) {
	e := &editor{name: name, fs: s.fs, out: s.out}
	e.load()

	state := stateEditing
	for state != stateExit {
		fmt.Fprint(s.out, "edit> ")
		line := s.in.ReadLine(kernel.InputLineMax)
		state = e.apply(parseEditorLine(line))
	}
	fmt.Fprint(s.out, "Exiting editor\n")
}

// load seeds the working buffer from the store and shows the current
// contents.
func (e *editor) load() {
	if e.fs.Exists(e.name) {
		var b bytes.Buffer
		if _, err := e.fs.ReadTo(e.name, &b); err == nil {
			e.buf = b.Bytes()
			if len(e.buf) > ramfs.MaxFileSize {
				e.buf = e.buf[:ramfs.MaxFileSize]
			}
		}
	}

	fmt.Fprintf(e.out, "--- nano: editing %s (max %d bytes) ---\n", e.name, ramfs.MaxFileSize)
	fmt.Fprint(e.out, "Commands: .help .save .wq .quit\n")
	if len(e.buf) > 0 {
		fmt.Fprint(e.out, "--- current contents ---\n")
		e.out.Write(e.buf)
		fmt.Fprint(e.out, "--- end ---\n")
	}
}

// apply is the state-transition function for one editing step.
func (e *editor) apply(cmd editorCmd) editorState {
	switch cmd.kind {
	case edHelp:
		fmt.Fprint(e.out, "Editor commands:\n")
		fmt.Fprint(e.out, "  .help - show this message\n")
		fmt.Fprint(e.out, "  .save - save to file\n")
		fmt.Fprint(e.out, "  .wq   - write and quit\n")
		fmt.Fprint(e.out, "  .quit - quit without saving\n")
	case edSave:
		e.save()
	case edWriteQuit:
		e.save()
		return stateExit
	case edQuit:
		fmt.Fprint(e.out, "Quit without saving\n")
		return stateExit
	case edAppend:
		e.appendLine(cmd.text)
	case edUnknown:
		fmt.Fprintf(e.out, "Unknown editor command: %s\n", cmd.text)
	}
	return stateEditing
}

// appendLine adds one line plus a newline to the working buffer, dropping
// whatever does not fit.
func (e *editor) appendLine(text string) {
	for i := 0; i < len(text); i++ {
		if len(e.buf) >= ramfs.MaxFileSize {
			fmt.Fprint(e.out, "Buffer full\n")
			break
		}
		e.buf = append(e.buf, text[i])
	}
	if len(e.buf) < ramfs.MaxFileSize {
		e.buf = append(e.buf, '\n')
	} else {
		fmt.Fprint(e.out, "Buffer full, no newline\n")
	}
}

// save writes the working buffer back to the store under the target name.
func (e *editor) save() {
	n, err := e.fs.Write(e.name, e.buf)
	if err != nil {
		fmt.Fprint(e.out, "Save failed\n")
		return
	}
	fmt.Fprintf(e.out, "Saved %d bytes\n", n)
}
