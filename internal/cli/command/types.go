package command

import (
	"fmt"
	"strings"
)

// Field defines a command argument.
type Field struct {
	Name     string
	Prompt   string
	Required bool
}

// Command defines a CLI command binding.
type Command struct {
	Name    string
	Aliases []string
	Summary string
	Fields  []Field
}

// Usage renders the argument synopsis.
func (c Command) Usage() string {
	var b strings.Builder
	b.WriteString(c.Name)
	for _, f := range c.Fields {
		if f.Required {
			fmt.Fprintf(&b, " <%s>", f.Name)
		} else {
			fmt.Fprintf(&b, " [%s]", f.Name)
		}
	}
	return b.String()
}

// Params holds parsed input params.
type Params map[string]string

func (p Params) Get(key string) string {
	return p[strings.ToLower(key)]
}

func (p Params) Set(key, value string) {
	p[strings.ToLower(key)] = value
}

func (p Params) Has(key string) bool {
	_, ok := p[strings.ToLower(key)]
	return ok
}

// ParseArgs binds positional arguments to fields in order. key=value tokens
// naming a field are bound by name.
func ParseArgs(cmd Command, args []string) (Params, error) {
	params := Params{}
	next := 0
	for _, arg := range args {
		if key, value, ok := strings.Cut(arg, "="); ok && cmd.hasField(key) {
			params.Set(key, value)
			continue
		}
		for next < len(cmd.Fields) && params.Has(cmd.Fields[next].Name) {
			next++
		}
		if next >= len(cmd.Fields) {
			return nil, fmt.Errorf("too many arguments, usage: %s", cmd.Usage())
		}
		params.Set(cmd.Fields[next].Name, arg)
		next++
	}
	return params, nil
}

// Missing returns required fields without a value.
func Missing(cmd Command, params Params) []Field {
	var missing []Field
	for _, f := range cmd.Fields {
		if f.Required && strings.TrimSpace(params.Get(f.Name)) == "" {
			missing = append(missing, f)
		}
	}
	return missing
}

func (c Command) hasField(name string) bool {
	for _, f := range c.Fields {
		if strings.EqualFold(f.Name, name) {
			return true
		}
	}
	return false
}
