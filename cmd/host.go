// Copyright 2018 Brett Vickers. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package cmd

import (
	"os"
	"os/signal"

	"github.com/beevik/term"
	"github.com/spf13/cobra"
	"github.com/yosakax/nand2tetris/host"
)

// hostCmd represents the host command
var hostCmd = &cobra.Command{
	Use:   "host [script ...]",
	Short: "Start the interactive Hack host",
	Long: `Host starts an emulated Hack computer with a built-in translator,
assembler and debugger. Commands in each script file are run first. When
standard input is a terminal, commands are then read from it
interactively. Type "help" in the host for a list of commands.
`,
	RunE: func(cmd *cobra.Command, args []string) error {
		h := host.New(settings)
		out := cmd.OutOrStdout()

		// Run commands contained in script files.
		for _, filename := range args {
			file, err := os.Open(filename)
			if err != nil {
				return err
			}
			h.RunCommands(file, out, false)
			file.Close()
		}

		// Break on Ctrl-C.
		c := make(chan os.Signal, 1)
		signal.Notify(c, os.Interrupt)
		go handleInterrupt(h, c)

		interactive := term.IsTerminal(int(os.Stdin.Fd()))
		if len(args) == 0 || interactive {
			h.RunCommands(os.Stdin, out, interactive)
		}
		return nil
	},
}

func init() {
	addTranslateFlags(hostCmd)
	rootCmd.AddCommand(hostCmd)
}

func handleInterrupt(h *host.Host, c chan os.Signal) {
	for {
		<-c
		h.Break()
	}
}
