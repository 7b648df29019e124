package shell

import (
	"fmt"
	"sort"
	"strings"
)

// cmdFunc runs one built-in. arg is the raw remainder of the line after the
// command token, leading spaces stripped, interior spacing preserved.
type cmdFunc func(s *Shell, arg string) error

type command struct {
	Name  string
	Usage string
	Desc  string
	Run   cmdFunc
}

type registry struct {
	cmds map[string]command
}

func newRegistry() *registry {
	return &registry{cmds: make(map[string]command)}
}

func (r *registry) register(cmd command) error {
	cmd.Name = strings.TrimSpace(cmd.Name)
	if cmd.Name == "" {
		return fmt.Errorf("shell registry: empty command name")
	}
	if cmd.Run == nil {
		return fmt.Errorf("shell registry: %q has no handler", cmd.Name)
	}
	if _, ok := r.cmds[cmd.Name]; ok {
		return fmt.Errorf("shell registry: duplicate command %q", cmd.Name)
	}
	r.cmds[cmd.Name] = cmd
	return nil
}

func (r *registry) resolve(name string) (command, bool) {
	cmd, ok := r.cmds[name]
	return cmd, ok
}

func (r *registry) names() []string {
	out := make([]string, 0, len(r.cmds))
	for name := range r.cmds {
		out = append(out, name)
	}
	sort.Strings(out)
	return out
}
