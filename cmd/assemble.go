// Copyright 2018 Brett Vickers. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package cmd

import (
	"github.com/spf13/cobra"
	"github.com/yosakax/nand2tetris/asm"
)

// assembleCmd represents the assemble command
var assembleCmd = &cobra.Command{
	Use:     "assemble file.asm",
	Aliases: []string{"asm"},
	Short:   "Assemble Hack assembly into machine code",
	Long: `Assemble translates a Hack assembly file into machine code. Foo.asm
produces Foo.hack, holding one 16-digit binary word per line, and
Foo.map, a source map that also lists every label.
`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return asm.AssembleFile(args[0], settings.AssembleOptions(), cmd.OutOrStdout())
	},
}

func init() {
	rootCmd.AddCommand(assembleCmd)
}
