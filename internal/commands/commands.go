// ABOUTME: Slash command registry and dispatch for interactive mode
// ABOUTME: Commands: attach, clear, help, quit, status, upload; fuzzy "did you mean" for typos

package commands

import (
	"fmt"
	"sort"
	"strings"

	"github.com/sahilm/fuzzy"
)

// Command represents a slash command.
type Command struct {
	Name        string
	Description string
	Execute     func(ctx *CommandContext, args string) (string, error)
}

// CommandContext provides access to app state for commands.
// Callbacks are nilable; commands report "not available" when nil.
type CommandContext struct {
	Version string
	BaseURL string

	Status       func() string
	Attach       func(path string) error
	OpenPicker   func()
	Upload       func() error
	ClearHistory func()
	ExitFn       func()
}

// Registry holds all registered slash commands.
type Registry struct {
	commands map[string]*Command
	names    []string
}

// NewRegistry creates a registry with all core commands registered.
func NewRegistry() *Registry {
	r := &Registry{commands: make(map[string]*Command)}
	r.registerCoreCommands()
	return r
}

// Register adds or replaces a command.
func (r *Registry) Register(cmd *Command) {
	if _, exists := r.commands[cmd.Name]; !exists {
		r.names = append(r.names, cmd.Name)
		sort.Strings(r.names)
	}
	r.commands[cmd.Name] = cmd
}

// Get returns a command by name.
// The second return value indicates whether the name was found.
func (r *Registry) Get(name string) (*Command, bool) {
	cmd, ok := r.commands[name]
	return cmd, ok
}

// List returns all commands sorted by name for deterministic output.
func (r *Registry) List() []*Command {
	result := make([]*Command, 0, len(r.names))
	for _, name := range r.names {
		result = append(result, r.commands[name])
	}
	return result
}

// Dispatch parses a "/command args" input, looks up the command, and executes it.
// Returns the command output or an error if the command is not found.
func (r *Registry) Dispatch(ctx *CommandContext, input string) (string, error) {
	input = strings.TrimSpace(input)
	if !IsCommand(input) {
		return "", fmt.Errorf("not a command: %q", input)
	}

	raw := input[1:]
	name, args, _ := strings.Cut(raw, " ")
	args = strings.TrimSpace(args)

	cmd, ok := r.commands[name]
	if !ok {
		if s := r.Suggest(name); len(s) > 0 {
			return "", fmt.Errorf("unknown command: /%s (did you mean /%s?)", name, s[0])
		}
		return "", fmt.Errorf("unknown command: /%s", name)
	}
	return cmd.Execute(ctx, args)
}

// BestMatch returns the first command name (alphabetically) that starts with
// prefix, or "" when none does. Used for ghost-text completion.
func (r *Registry) BestMatch(prefix string) string {
	if prefix == "" {
		return ""
	}
	for _, name := range r.names {
		if strings.HasPrefix(name, prefix) && name != prefix {
			return name
		}
	}
	return ""
}

// Suggest ranks command names by fuzzy similarity to pattern, best first.
func (r *Registry) Suggest(pattern string) []string {
	if pattern == "" {
		return nil
	}
	matches := fuzzy.Find(pattern, r.names)
	out := make([]string, len(matches))
	for i, m := range matches {
		out[i] = m.Str
	}
	return out
}

// IsCommand returns true if input starts with a single '/'.
// A doubled "//" escapes the slash so the text is sent as chat.
func IsCommand(input string) bool {
	return len(input) > 0 && input[0] == '/' && !strings.HasPrefix(input, "//")
}

// Unescape strips the escaping slash from chat text written as "//...".
func Unescape(input string) string {
	if strings.HasPrefix(input, "//") {
		return input[1:]
	}
	return input
}

const notAvailable = "not available"

// registerCoreCommands adds all built-in slash commands to the registry.
func (r *Registry) registerCoreCommands() {
	core := []*Command{
		{
			Name:        "attach",
			Description: "Select a PDF transcript (opens a picker without a path)",
			Execute: func(ctx *CommandContext, args string) (string, error) {
				if args == "" {
					if ctx.OpenPicker == nil {
						return notAvailable, nil
					}
					ctx.OpenPicker()
					return "", nil
				}
				if ctx.Attach == nil {
					return notAvailable, nil
				}
				if err := ctx.Attach(args); err != nil {
					return "", err
				}
				return fmt.Sprintf("Selected %s. Run /upload to send it.", args), nil
			},
		},
		{
			Name:        "clear",
			Description: "Clear conversation history",
			Execute: func(ctx *CommandContext, _ string) (string, error) {
				if ctx.ClearHistory == nil {
					return notAvailable, nil
				}
				ctx.ClearHistory()
				return "Conversation cleared.", nil
			},
		},
		{
			Name:        "help",
			Description: "List available commands",
			Execute: func(_ *CommandContext, _ string) (string, error) {
				var b strings.Builder
				for i, c := range r.List() {
					if i > 0 {
						b.WriteByte('\n')
					}
					fmt.Fprintf(&b, "/%-8s %s", c.Name, c.Description)
				}
				return b.String(), nil
			},
		},
		{
			Name:        "quit",
			Description: "Exit the assistant",
			Execute: func(ctx *CommandContext, _ string) (string, error) {
				if ctx.ExitFn == nil {
					return notAvailable, nil
				}
				ctx.ExitFn()
				return "", nil
			},
		},
		{
			Name:        "status",
			Description: "Show service address, transcript and request state",
			Execute: func(ctx *CommandContext, _ string) (string, error) {
				status := notAvailable
				if ctx.Status != nil {
					status = ctx.Status()
				}
				return fmt.Sprintf("Service: %s\nVersion: %s\n%s", ctx.BaseURL, ctx.Version, status), nil
			},
		},
		{
			Name:        "upload",
			Description: "Upload the selected transcript",
			Execute: func(ctx *CommandContext, _ string) (string, error) {
				if ctx.Upload == nil {
					return notAvailable, nil
				}
				if err := ctx.Upload(); err != nil {
					return "", err
				}
				return "Uploading transcript...", nil
			},
		},
	}
	for _, c := range core {
		r.Register(c)
	}
}
