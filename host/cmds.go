// Copyright 2018 Brett Vickers. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package host

import (
	"strings"

	"github.com/beevik/cmd"
)

var cmds *cmd.Tree

func init() {
	// Create a command tree, where the data stored with each command is
	// a host callback capable of handling the command.
	cmds = cmd.NewTree("hackvm", []cmd.Command{
		{
			Name:     "help",
			Shortcut: "?",
			Brief:    "Display help for a command",
			HelpText: "help [<command>]",
			Data:     (*Host).cmdHelp,
		},
		{
			Name:  "translate",
			Brief: "Translate VM code to assembly",
			Description: "Translate a .vm file, or every .vm file in a" +
				" directory, into a single Hack assembly file. A VM source map" +
				" is written next to it.",
			HelpText: "translate <path>",
			Data:     (*Host).cmdTranslate,
		},
		{
			Name:     "assemble",
			Shortcut: "a",
			Brief:    "Assemble a file and save the machine code",
			Description: "Run the assembler on the specified file," +
				" producing a .hack file and source map file if successful.",
			HelpText: "assemble <filename>",
			Data:     (*Host).cmdAssemble,
		},
		{
			Name:  "load",
			Brief: "Load a program into ROM",
			Description: "Load a program into the emulated system's ROM." +
				" A .hack file is loaded as is, along with its source maps if" +
				" present. A .asm file is assembled first. A .vm file or a" +
				" directory is translated and assembled first.",
			HelpText: "load <path>",
			Data:     (*Host).cmdLoad,
		},
		{
			Name:  "run",
			Brief: "Run the CPU",
			Description: "Run the CPU until it halts, a breakpoint is hit," +
				" the instruction limit is reached, or the user types Ctrl-C.",
			HelpText: "run [<limit>]",
			Data:     (*Host).cmdRun,
		},
		{
			Name:     "step",
			Shortcut: "s",
			Brief:    "Step the CPU",
			Description: "Step the CPU by a single instruction. The number" +
				" of steps may be specified as an option.",
			HelpText: "step [<count>]",
			Data:     (*Host).cmdStep,
		},
		{
			Name:     "reset",
			Brief:    "Reset the CPU",
			HelpText: "reset",
			Data:     (*Host).cmdReset,
		},
		{
			Name:     "registers",
			Shortcut: "r",
			Brief:    "Display register contents",
			Description: "Display the CPU registers and the VM pointers, and" +
				" disassemble the instruction at the program counter.",
			HelpText: "registers",
			Data:     (*Host).cmdRegisters,
		},
		{
			Name:  "stack",
			Brief: "Display the VM stack",
			Description: "Display the words on top of the VM stack, most" +
				" recent first.",
			HelpText: "stack [<count>]",
			Data:     (*Host).cmdStack,
		},
		{
			Name:  "memory",
			Brief: "Memory commands",
			Subcommands: cmd.NewTree("Memory", []cmd.Command{
				{
					Name:  "dump",
					Brief: "Dump memory at address",
					Description: "Dump the contents of memory starting from the" +
						" specified address. The number of words to dump may be" +
						" specified as an option.",
					HelpText: "memory dump <address> [<words>]",
					Data:     (*Host).cmdMemoryDump,
				},
				{
					Name:        "set",
					Brief:       "Store words to memory",
					Description: "Store one or more words starting at the address.",
					HelpText:    "memory set <address> <value> [<value> ...]",
					Data:        (*Host).cmdMemorySet,
				},
			}),
		},
		{
			Name:     "disassemble",
			Shortcut: "d",
			Brief:    "Disassemble code",
			Description: "Disassemble machine code starting at the requested" +
				" address. The number of instructions to disassemble may be" +
				" specified as an option.",
			HelpText: "disassemble [<address>] [<count>]",
			Data:     (*Host).cmdDisassemble,
		},
		{
			Name:     "list",
			Shortcut: "l",
			Brief:    "List source code",
			Description: "Display the VM source lines around an address," +
				" or the assembly source when no VM source map is loaded.",
			HelpText: "list [<address>]",
			Data:     (*Host).cmdList,
		},
		{
			Name:  "exports",
			Brief: "List program labels",
			Description: "Display every label of the loaded program with its" +
				" ROM address.",
			HelpText: "exports",
			Data:     (*Host).cmdExports,
		},
		{
			Name:     "breakpoint",
			Shortcut: "b",
			Brief:    "Breakpoint commands",
			Subcommands: cmd.NewTree("Breakpoint", []cmd.Command{
				{
					Name:        "list",
					Brief:       "List breakpoints",
					Description: "List all current breakpoints.",
					HelpText:    "breakpoint list",
					Data:        (*Host).cmdBreakpointList,
				},
				{
					Name:  "add",
					Brief: "Add a breakpoint",
					Description: "Add a breakpoint at the specified address." +
						" The breakpoint starts enabled.",
					HelpText: "breakpoint add <address>",
					Data:     (*Host).cmdBreakpointAdd,
				},
				{
					Name:        "remove",
					Brief:       "Remove a breakpoint",
					Description: "Remove a breakpoint at the specified address.",
					HelpText:    "breakpoint remove <address>",
					Data:        (*Host).cmdBreakpointRemove,
				},
				{
					Name:        "enable",
					Brief:       "Enable a breakpoint",
					Description: "Enable a previously added breakpoint.",
					HelpText:    "breakpoint enable <address>",
					Data:        (*Host).cmdBreakpointEnable,
				},
				{
					Name:  "disable",
					Brief: "Disable a breakpoint",
					Description: "Disable a previously added breakpoint. This" +
						" prevents the breakpoint from being hit when running the" +
						" CPU.",
					HelpText: "breakpoint disable <address>",
					Data:     (*Host).cmdBreakpointDisable,
				},
			}),
		},
		{
			Name:     "databreakpoint",
			Shortcut: "db",
			Brief:    "Data breakpoint commands",
			Subcommands: cmd.NewTree("Data breakpoint", []cmd.Command{
				{
					Name:        "list",
					Brief:       "List data breakpoints",
					Description: "List all current data breakpoints.",
					HelpText:    "databreakpoint list",
					Data:        (*Host).cmdDataBreakpointList,
				},
				{
					Name:  "add",
					Brief: "Add a data breakpoint",
					Description: "Add a new data breakpoint at the specified" +
						" memory address. When the CPU stores data at this address," +
						" the breakpoint will stop the CPU. Optionally, a value" +
						" may be specified, and the CPU will stop only when this" +
						" value is stored.",
					HelpText: "databreakpoint add <address> [<value>]",
					Data:     (*Host).cmdDataBreakpointAdd,
				},
				{
					Name:        "remove",
					Brief:       "Remove a data breakpoint",
					Description: "Remove a previously added data breakpoint.",
					HelpText:    "databreakpoint remove <address>",
					Data:        (*Host).cmdDataBreakpointRemove,
				},
			}),
		},
		{
			Name:  "set",
			Brief: "Set a register or configuration variable",
			Description: "Set the A, D or PC register, or the value of a" +
				" configuration variable. Type the set command without a" +
				" variable name or value to display the current values of all" +
				" configuration variables.",
			HelpText: "set <var> <value>",
			Data:     (*Host).cmdSet,
		},
		{
			Name:        "quit",
			Brief:       "Quit the program",
			Description: "Quit the program.",
			HelpText:    "quit",
			Data:        (*Host).cmdQuit,
		},

		// Aliases for nested commands
		{Name: "ba", Data: alias("breakpoint add")},
		{Name: "br", Data: alias("breakpoint remove")},
		{Name: "bl", Data: alias("breakpoint list")},
		{Name: "be", Data: alias("breakpoint enable")},
		{Name: "bd", Data: alias("breakpoint disable")},
		{Name: "dbl", Data: alias("databreakpoint list")},
		{Name: "dba", Data: alias("databreakpoint add")},
		{Name: "dbr", Data: alias("databreakpoint remove")},
		{Name: "m", Data: alias("memory dump")},
	})
}

// Return a handler that runs another command line with the arguments
// appended.
func alias(line string) func(*Host, cmd.Selection) error {
	return func(h *Host, c cmd.Selection) error {
		s, err := cmds.Lookup(line + " " + strings.Join(c.Args, " "))
		if err != nil {
			h.printf("ERROR: %v.\n", err)
			return nil
		}
		return h.execute(s)
	}
}
