// Copyright 2018 Brett Vickers. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package cmd implements the hackvm command line: a VM translator, a Hack
// assembler, a headless runner and the interactive host.
package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/yosakax/nand2tetris/config"
)

var (
	configPath string
	settings   = config.New()
	defaults   = config.New()

	// Flags that override the setting of the same name.
	settingFlags = make(map[string]bool)
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "hackvm",
	Short: "Hack VM translator, assembler and emulator",
	Long: `Hackvm translates stack-machine VM programs into Hack assembly,
assembles Hack assembly into machine code, and runs machine code on an
emulated Hack computer.

Settings are read from the file named by --config, which holds lines of
the form HACKVM_<SETTING>=value (for example HACKVM_MAX_STEPS=5000).
Flags given on the command line take precedence over the file.
`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		if configPath != "" {
			if err := settings.LoadFile(configPath); err != nil {
				return err
			}
		}
		return applySettingFlags(cmd.Flags())
	},
}

// Execute runs the root command. It is called by main.main.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "settings file")
	boolSetting(rootCmd.PersistentFlags(), "verbose", defaults.Verbose, "verbose translation and assembly output")
}

func boolSetting(fs *pflag.FlagSet, name string, value bool, usage string) {
	fs.Bool(name, value, usage)
	settingFlags[name] = true
}

func intSetting(fs *pflag.FlagSet, name string, value int, usage string) {
	fs.Int(name, value, usage)
	settingFlags[name] = true
}

// Copy every setting flag given on the command line into the settings.
func applySettingFlags(fs *pflag.FlagSet) error {
	var err error
	fs.Visit(func(f *pflag.Flag) {
		if err != nil || !settingFlags[f.Name] {
			return
		}
		if e := settings.SetString(f.Name, f.Value.String()); e != nil {
			err = fmt.Errorf("--%s: %w", f.Name, e)
		}
	})
	return err
}

// Add the flags that control VM translation to a command.
func addTranslateFlags(cmd *cobra.Command) {
	fs := cmd.Flags()
	boolSetting(fs, "comments", defaults.Comments, "emit VM commands as assembly comments")
	boolSetting(fs, "bootstrap", defaults.Bootstrap, "emit bootstrap code that calls Sys.init")
	boolSetting(fs, "halt", defaults.Halt, "end the program with a halt loop")
	boolSetting(fs, "shared-statics", defaults.SharedStatics, "all VM files share one static range")
}
