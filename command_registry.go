package main

import (
	"fmt"
	"sort"
	"strings"

	"github.com/slzatz/pexlite/terminal"
)

// CommandInfo holds metadata about a command
type CommandInfo struct {
	Name        string // Primary command name
	Keys        []int  // Key codes bound to the command
	Description string // Short description of what the command does
	Category    string // Category for grouping (e.g., "Navigation")
}

// CommandRegistry maps key codes to commands and keeps the metadata the help
// screen is generated from.
type CommandRegistry[T any] struct {
	commands map[string]T           // Command name -> function
	info     map[string]CommandInfo // Command name -> metadata
	keys     map[int]string         // Key code -> command name
}

// NewCommandRegistry creates a new command registry
func NewCommandRegistry[T any]() *CommandRegistry[T] {
	return &CommandRegistry[T]{
		commands: make(map[string]T),
		info:     make(map[string]CommandInfo),
		keys:     make(map[int]string),
	}
}

// Register adds a command bound to keys. Letter keys are stored lower case;
// lookups fold case the same way.
func (r *CommandRegistry[T]) Register(name string, fn T, info CommandInfo, keys ...int) {
	if info.Name == "" {
		info.Name = name
	}
	for _, k := range keys {
		k = foldKey(k)
		r.keys[k] = name
		info.Keys = append(info.Keys, k)
	}
	r.commands[name] = fn
	r.info[name] = info
}

// Lookup finds the command bound to a key code.
func (r *CommandRegistry[T]) Lookup(key int) (T, bool) {
	name, ok := r.keys[foldKey(key)]
	if !ok {
		var zero T
		return zero, false
	}
	return r.commands[name], true
}

// GetCommandInfo returns the metadata for a command
func (r *CommandRegistry[T]) GetCommandInfo(name string) (CommandInfo, bool) {
	info, exists := r.info[name]
	return info, exists
}

// GetAllCommands returns all commands organized by category
func (r *CommandRegistry[T]) GetAllCommands() map[string][]CommandInfo {
	categories := make(map[string][]CommandInfo)

	for _, info := range r.info {
		categories[info.Category] = append(categories[info.Category], info)
	}

	// Sort commands within each category
	for category := range categories {
		sort.Slice(categories[category], func(i, j int) bool {
			return categories[category][i].Name < categories[category][j].Name
		})
	}

	return categories
}

// FormatAllHelp returns markdown help for all commands, organized by category
func (r *CommandRegistry[T]) FormatAllHelp() string {
	var help strings.Builder
	help.WriteString("# Keys\n\n")

	categories := r.GetAllCommands()

	// Sort categories for consistent output
	var categoryNames []string
	for category := range categories {
		categoryNames = append(categoryNames, category)
	}
	sort.Strings(categoryNames)

	for _, category := range categoryNames {
		help.WriteString(fmt.Sprintf("## %s\n\n", category))
		for _, cmd := range categories[category] {
			names := make([]string, 0, len(cmd.Keys))
			for _, k := range cmd.Keys {
				names = append(names, "`"+keyToDisplayName(k)+"`")
			}
			help.WriteString(fmt.Sprintf("- %s %s\n", strings.Join(names, " "), cmd.Description))
		}
		help.WriteString("\n")
	}

	help.WriteString("Letter keys are not case sensitive.\n")
	return help.String()
}

func ctrlKey(b byte) int {
	return int(b & 0x1f)
}

func foldKey(k int) int {
	if k >= 'A' && k <= 'Z' {
		return k + 'a' - 'A'
	}
	return k
}

// keyToDisplayName converts a key code to a human-readable name for help display
func keyToDisplayName(k int) string {
	if k >= terminal.KeyArrowLeft {
		return terminal.Key{Special: k}.String()
	}
	return terminal.Key{Regular: rune(k)}.String()
}
