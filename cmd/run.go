// Copyright 2018 Brett Vickers. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package cmd

import (
	"fmt"
	"io"
	"os"
	"os/signal"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
	"github.com/yosakax/nand2tetris/asm"
	"github.com/yosakax/nand2tetris/cpu"
	"github.com/yosakax/nand2tetris/vm"
)

var (
	dumpAddr  int
	dumpWords int
)

// runCmd represents the run command
var runCmd = &cobra.Command{
	Use:   "run path",
	Short: "Run a program on the emulator until it halts",
	Long: `Run loads a program and executes it without the interactive host.
The path may name a .hack file, a .asm file, or a .vm file or directory
of .vm files, which is translated and assembled in memory.

The run ends when the program reaches a halt loop, runs off the end of
ROM, hits the --max-steps limit, or is interrupted. The VM stack and
the requested memory words are printed afterwards.
`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		out := cmd.OutOrStdout()
		code, err := loadProgram(args[0], out)
		if err != nil {
			return err
		}

		mem := cpu.NewFlatMemory()
		c := cpu.NewCPU(mem)
		c.LoadROM(code)
		mem.StoreWord(0, 256)

		// Stop the CPU on Ctrl-C.
		sig := make(chan os.Signal, 1)
		signal.Notify(sig, os.Interrupt)
		defer signal.Stop(sig)
		go func() {
			if _, ok := <-sig; ok {
				c.Stop()
			}
		}()

		steps := c.Run(uint64(settings.MaxSteps))
		switch {
		case c.Halted:
			fmt.Fprintf(out, "Halted at %d after %d steps.\n", c.LastPC, steps)
		case steps >= uint64(settings.MaxSteps):
			fmt.Fprintf(out, "Stopped at %d: step limit %d reached.\n", c.Reg.PC, settings.MaxSteps)
		default:
			fmt.Fprintf(out, "Interrupted at %d after %d steps.\n", c.Reg.PC, steps)
		}

		printStack(out, mem)
		if dumpAddr >= 0 {
			printMemory(out, mem, uint16(dumpAddr), dumpWords)
		}
		return nil
	},
}

func init() {
	addTranslateFlags(runCmd)
	intSetting(runCmd.Flags(), "max-steps", defaults.MaxSteps, "instruction limit for the run")
	intSetting(runCmd.Flags(), "stack-words", defaults.StackWords, "number of stack words to print")
	runCmd.Flags().IntVar(&dumpAddr, "dump", -1, "print memory starting at this address")
	runCmd.Flags().IntVar(&dumpWords, "words", defaults.MemDumpWords, "number of memory words to print")
	rootCmd.AddCommand(runCmd)
}

// Load machine code from a .hack, .asm or VM path.
func loadProgram(path string, out io.Writer) ([]uint16, error) {
	switch filepath.Ext(path) {
	case ".hack":
		f, err := os.Open(path)
		if err != nil {
			return nil, err
		}
		defer f.Close()
		a := &asm.Assembly{}
		if _, err := a.ReadFrom(f); err != nil {
			return nil, err
		}
		return a.Code, nil

	case ".asm":
		f, err := os.Open(path)
		if err != nil {
			return nil, err
		}
		defer f.Close()
		return assemble(f, path, out)

	default:
		units, err := vm.LoadUnits(path)
		if err != nil {
			return nil, err
		}
		var b strings.Builder
		if _, err := vm.Translate(units, &b, out, settings.TranslateOptions()); err != nil {
			return nil, err
		}
		return assemble(strings.NewReader(b.String()), filepath.Base(vm.OutputPath(path)), out)
	}
}

func assemble(r io.Reader, filename string, out io.Writer) ([]uint16, error) {
	a, _, err := asm.Assemble(r, filename, out, settings.AssembleOptions())
	if err != nil {
		for _, e := range a.Errors {
			fmt.Fprintln(out, e)
		}
		return nil, err
	}
	return a.Code, nil
}

func printStack(out io.Writer, mem cpu.Memory) {
	sp := mem.LoadWord(0)
	fmt.Fprintf(out, "SP=%d\n", sp)
	for i, addr := 0, sp-1; i < settings.StackWords && sp > 256 && addr >= 256; i, addr = i+1, addr-1 {
		v := mem.LoadWord(addr)
		fmt.Fprintf(out, "%5d: %d\n", addr, int16(v))
	}
}

func printMemory(out io.Writer, mem cpu.Memory, addr uint16, words int) {
	for i := 0; i < words; i++ {
		v := mem.LoadWord(addr + uint16(i))
		fmt.Fprintf(out, "RAM[%d] = %d\n", addr+uint16(i), int16(v))
	}
}
