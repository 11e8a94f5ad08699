// Copyright 2018 Brett Vickers. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package config

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"

	"github.com/beevik/prefixtree/v2"
	"github.com/yosakax/nand2tetris/vm"
)

func TestDefaults(t *testing.T) {
	s := New()
	if !s.Halt || s.MaxSteps != 1000000 || s.StackWords != 8 {
		t.Errorf("unexpected defaults %+v", s)
	}
	if s.TranslateOptions() != vm.Halt {
		t.Errorf("got options %v, exp %v", s.TranslateOptions(), vm.Halt)
	}
}

func TestSetPrefix(t *testing.T) {
	s := New()
	if err := s.Set("maxs", 50); err != nil {
		t.Fatal(err)
	}
	if s.MaxSteps != 50 {
		t.Errorf("got %d, exp 50", s.MaxSteps)
	}

	if err := s.Set("Comm", true); err != nil {
		t.Fatal(err)
	}
	if !s.Comments {
		t.Error("Comments not set")
	}

	if err := s.Set("maxsteps", "x"); !errors.Is(err, ErrInvalidType) {
		t.Errorf("got %v, exp %v", err, ErrInvalidType)
	}
	if err := s.Set("next", 1); !errors.Is(err, prefixtree.ErrPrefixAmbiguous) {
		t.Errorf("got %v, exp %v", err, prefixtree.ErrPrefixAmbiguous)
	}
	if err := s.Set("bogus", 1); !errors.Is(err, prefixtree.ErrPrefixNotFound) {
		t.Errorf("got %v, exp %v", err, prefixtree.ErrPrefixNotFound)
	}
}

func TestSetString(t *testing.T) {
	s := New()
	if err := s.SetString("NextDisasmAddr", "0x20"); err != nil {
		t.Fatal(err)
	}
	if s.NextDisasmAddr != 0x20 {
		t.Errorf("got %d, exp 32", s.NextDisasmAddr)
	}
	if err := s.SetString("hexmode", "true"); err != nil || !s.HexMode {
		t.Errorf("hexmode: %v, %v", err, s.HexMode)
	}
	if err := s.SetString("stackwords", "many"); !errors.Is(err, ErrInvalidValue) {
		t.Errorf("got %v, exp %v", err, ErrInvalidValue)
	}
	if s.Kind("stack") != reflect.Int {
		t.Errorf("got kind %v", s.Kind("stack"))
	}
}

func TestLoadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "hackvm.env")
	contents := "# settings\nHACKVM_MAX_STEPS=250\nHACKVM_BOOTSTRAP=true\nHACKVM_SHARED_STATICS=1\nOTHER=ignored\n"
	if err := os.WriteFile(path, []byte(contents), 0644); err != nil {
		t.Fatal(err)
	}

	s := New()
	if err := s.LoadFile(path); err != nil {
		t.Fatal(err)
	}
	if s.MaxSteps != 250 || !s.Bootstrap || !s.SharedStatics {
		t.Errorf("settings not applied: %+v", s)
	}
	exp := vm.Bootstrap | vm.Halt | vm.SharedStatics
	if s.TranslateOptions() != exp {
		t.Errorf("got options %v, exp %v", s.TranslateOptions(), exp)
	}

	bad := filepath.Join(t.TempDir(), "bad.env")
	os.WriteFile(bad, []byte("HACKVM_NOPE=1\n"), 0644)
	if err := s.LoadFile(bad); err == nil {
		t.Error("expected error for unknown setting")
	}
}

func TestDisplay(t *testing.T) {
	var b bytes.Buffer
	New().Display(&b)
	out := b.String()
	for _, name := range []string{"Verbose", "MaxSteps", "NextMemDumpAddr"} {
		if !strings.Contains(out, name) {
			t.Errorf("display missing %s", name)
		}
	}
}

func TestSeparators(t *testing.T) {
	s := New()
	if err := s.SetString("max-steps", "12"); err != nil {
		t.Fatal(err)
	}
	if err := s.SetString("Shared_Statics", "true"); err != nil {
		t.Fatal(err)
	}
	if s.MaxSteps != 12 || !s.SharedStatics {
		t.Errorf("got %+v", s)
	}
}
