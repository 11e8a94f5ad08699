// Copyright 2018 Brett Vickers. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package config holds the user-adjustable settings shared by the
// command-line tools and the interactive host.
package config

import (
	"errors"
	"fmt"
	"io"
	"reflect"
	"sort"
	"strconv"
	"strings"

	"github.com/beevik/prefixtree/v2"
	"github.com/joho/godotenv"
	"github.com/yosakax/nand2tetris/asm"
	"github.com/yosakax/nand2tetris/vm"
)

// EnvPrefix starts every key read from a settings file.
const EnvPrefix = "HACKVM_"

// Errors returned when changing settings.
var (
	ErrInvalidType  = errors.New("invalid type")
	ErrInvalidValue = errors.New("invalid value")
)

// Settings controls translation, assembly and the display commands of the
// host.
type Settings struct {
	Verbose         bool   `doc:"verbose translation and assembly output"`
	Comments        bool   `doc:"emit VM commands as assembly comments"`
	Bootstrap       bool   `doc:"emit bootstrap code that calls Sys.init"`
	Halt            bool   `doc:"end translated programs with a halt loop"`
	SharedStatics   bool   `doc:"all VM files share one static range"`
	HexMode         bool   `doc:"display values in hexadecimal"`
	MaxSteps        int    `doc:"instruction limit for a run"`
	StackWords      int    `doc:"number of stack words to display"`
	MemDumpWords    int    `doc:"default number of memory words to dump"`
	DisasmLines     int    `doc:"default number of lines to disassemble"`
	SourceLines     int    `doc:"default number of source lines to display"`
	NextDisasmAddr  uint16 `doc:"address of next disassembly"`
	NextMemDumpAddr uint16 `doc:"address of next memory dump"`
}

// New returns the default settings.
func New() *Settings {
	return &Settings{
		Halt:         true,
		MaxSteps:     1000000,
		StackWords:   8,
		MemDumpWords: 16,
		DisasmLines:  10,
		SourceLines:  10,
	}
}

type settingsField struct {
	name  string
	index int
	kind  reflect.Kind
	typ   reflect.Type
	doc   string
}

var (
	settingsTree   = prefixtree.New[*settingsField]()
	settingsFields []settingsField
)

func init() {
	settingsType := reflect.TypeOf(Settings{})
	settingsFields = make([]settingsField, settingsType.NumField())
	for i := 0; i < len(settingsFields); i++ {
		f := settingsType.Field(i)
		doc, _ := f.Tag.Lookup("doc")
		settingsFields[i] = settingsField{
			name:  f.Name,
			index: i,
			kind:  f.Type.Kind(),
			typ:   f.Type,
			doc:   doc,
		}
		settingsTree.Add(strings.ToLower(f.Name), &settingsFields[i])
	}
}

// Display writes every setting with its value and description.
func (s *Settings) Display(w io.Writer) {
	value := reflect.ValueOf(s).Elem()
	for i, f := range settingsFields {
		v := value.Field(i)
		var s string
		switch f.kind {
		case reflect.Uint16:
			s = fmt.Sprintf("    %-16s %d", f.name, uint16(v.Uint()))
		default:
			s = fmt.Sprintf("    %-16s %v", f.name, v)
		}
		fmt.Fprintf(w, "%-28s (%s)\n", s, f.doc)
	}
}

// Kind returns the type of the setting matching key, which may be any
// unambiguous prefix of the setting's name.
func (s *Settings) Kind(key string) reflect.Kind {
	f, err := settingsTree.FindValue(normalize(key))
	if err != nil {
		return reflect.Invalid
	}
	return f.kind
}

// Set assigns a value to the setting matching key.
func (s *Settings) Set(key string, value any) error {
	f, err := settingsTree.FindValue(normalize(key))
	if err != nil {
		return err
	}

	vIn := reflect.ValueOf(value)
	if (f.kind == reflect.String && vIn.Type().Kind() != reflect.String) ||
		(f.kind != reflect.String && vIn.Type().Kind() == reflect.String) ||
		!vIn.Type().ConvertibleTo(f.typ) {
		return ErrInvalidType
	}
	vInConverted := vIn.Convert(f.typ)

	vOut := reflect.ValueOf(s).Elem().Field(f.index).Addr().Elem()
	vOut.Set(vInConverted)

	return nil
}

// SetString parses a textual value according to the setting's type and
// assigns it.
func (s *Settings) SetString(key, value string) error {
	var v any
	var err error
	switch s.Kind(key) {
	case reflect.Invalid:
		_, err = settingsTree.FindValue(normalize(key))
		return err
	case reflect.Bool:
		v, err = strconv.ParseBool(value)
	case reflect.Int:
		v, err = strconv.Atoi(value)
	case reflect.Uint16:
		var u uint64
		u, err = strconv.ParseUint(value, 0, 16)
		v = uint16(u)
	default:
		v = value
	}
	if err != nil {
		return fmt.Errorf("%s: %w", key, ErrInvalidValue)
	}
	return s.Set(key, v)
}

// LoadFile applies the settings found in an env-style file. Keys carry the
// HACKVM_ prefix followed by the setting name, with optional underscores
// between words (HACKVM_MAX_STEPS sets MaxSteps). Keys without the prefix
// are ignored.
func (s *Settings) LoadFile(path string) error {
	env, err := godotenv.Read(path)
	if err != nil {
		return err
	}

	keys := make([]string, 0, len(env))
	for k := range env {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	for _, k := range keys {
		if !strings.HasPrefix(k, EnvPrefix) {
			continue
		}
		if err := s.SetString(k[len(EnvPrefix):], env[k]); err != nil {
			return fmt.Errorf("%s: %s: %w", path, k, err)
		}
	}
	return nil
}

// TranslateOptions returns the translator options selected by the
// settings.
func (s *Settings) TranslateOptions() vm.Option {
	var o vm.Option
	if s.Verbose {
		o |= vm.Verbose
	}
	if s.Comments {
		o |= vm.Comments
	}
	if s.Bootstrap {
		o |= vm.Bootstrap
	}
	if s.Halt {
		o |= vm.Halt
	}
	if s.SharedStatics {
		o |= vm.SharedStatics
	}
	return o
}

// AssembleOptions returns the assembler options selected by the settings.
func (s *Settings) AssembleOptions() asm.Option {
	if s.Verbose {
		return asm.Verbose
	}
	return 0
}

// Keys are matched case-insensitively, ignoring '_' and '-' word
// separators.
var separators = strings.NewReplacer("_", "", "-", "")

func normalize(key string) string {
	return strings.ToLower(separators.Replace(key))
}
