package command

import "sort"

// Command names.
const (
	Fetch  = "fetch"
	Run    = "run"
	Status = "status"
	Help   = "help"
	Exit   = "exit"
)

// Registry returns all CLI commands keyed by name.
func Registry() map[string]Command {
	commands := []Command{
		{
			Name:    Fetch,
			Summary: "Fetch example test cases from a problem page into the workspace",
			Fields: []Field{
				{Name: "url", Prompt: "problem url", Required: true},
			},
		},
		{
			Name:    Run,
			Aliases: []string{"test"},
			Summary: "Compile and run a solution against the fetched test cases",
			Fields: []Field{
				{Name: "file", Prompt: "source file", Required: true},
			},
		},
		{
			Name:    Status,
			Summary: "Show the fetched problem and the last run",
		},
		{
			Name:    Help,
			Summary: "Show this help",
		},
		{
			Name:    Exit,
			Aliases: []string{"quit"},
			Summary: "Leave the shell",
		},
	}

	registry := make(map[string]Command, len(commands))
	for _, cmd := range commands {
		registry[cmd.Name] = cmd
	}
	return registry
}

// Lookup resolves a command by name or alias.
func Lookup(registry map[string]Command, name string) (Command, bool) {
	if cmd, ok := registry[name]; ok {
		return cmd, true
	}
	for _, cmd := range registry {
		for _, alias := range cmd.Aliases {
			if alias == name {
				return cmd, true
			}
		}
	}
	return Command{}, false
}

// Names lists command names in alphabetical order.
func Names(registry map[string]Command) []string {
	names := make([]string, 0, len(registry))
	for name := range registry {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
