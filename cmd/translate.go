// Copyright 2018 Brett Vickers. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package cmd

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"github.com/yosakax/nand2tetris/vm"
)

var writeVMMap bool

// translateCmd represents the translate command
var translateCmd = &cobra.Command{
	Use:   "translate path",
	Short: "Translate VM code into Hack assembly",
	Long: `Translate reads a single .vm file, or every .vm file in a directory,
and writes one Hack assembly file. A file Foo.vm produces Foo.asm; a
directory Prog produces Prog/Prog.asm.

Each VM file gets its own range of static variables unless
--shared-statics is given. With --bootstrap the program starts by setting
SP to 256 and calling Sys.init.
`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		out := cmd.OutOrStdout()
		asmPath, sourceMap, err := vm.TranslateFile(args[0], settings.TranslateOptions(), out)
		if err != nil {
			return err
		}

		if writeVMMap {
			mapPath := strings.TrimSuffix(asmPath, ".asm") + ".vmmap"
			f, err := os.Create(mapPath)
			if err != nil {
				return err
			}
			defer f.Close()
			if _, err := sourceMap.WriteTo(f); err != nil {
				return err
			}
		}

		fmt.Fprintf(out, "Translated '%s' to '%s'.\n", args[0], asmPath)
		return nil
	},
}

func init() {
	addTranslateFlags(translateCmd)
	translateCmd.Flags().BoolVar(&writeVMMap, "map", false, "also write a .vmmap source map")
	rootCmd.AddCommand(translateCmd)
}
