// Copyright 2014-2018 Brett Vickers. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package vm

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
)

// ErrNoUnits is returned when a directory holds no .vm files.
var ErrNoUnits = errors.New("no .vm files found")

// ReadUnit reads the source lines of a unit from a stream.
func ReadUnit(name string, r io.Reader) (Unit, error) {
	u := Unit{Name: name}
	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		u.Lines = append(u.Lines, scanner.Text())
	}
	return u, scanner.Err()
}

// LoadUnits loads the units named by path. A file path yields one unit. A
// directory path yields one unit per .vm file in it, ordered by file name.
func LoadUnits(path string) ([]Unit, error) {
	fi, err := os.Stat(path)
	if err != nil {
		return nil, err
	}

	var paths []string
	if fi.IsDir() {
		entries, err := os.ReadDir(path)
		if err != nil {
			return nil, err
		}
		for _, e := range entries {
			if !e.IsDir() && filepath.Ext(e.Name()) == ".vm" {
				paths = append(paths, filepath.Join(path, e.Name()))
			}
		}
		if len(paths) == 0 {
			return nil, fmt.Errorf("%s: %w", path, ErrNoUnits)
		}
	} else {
		paths = []string{path}
	}

	units := make([]Unit, 0, len(paths))
	for _, p := range paths {
		u, err := loadUnit(p)
		if err != nil {
			return nil, err
		}
		units = append(units, u)
	}
	return units, nil
}

func loadUnit(path string) (Unit, error) {
	f, err := os.Open(path)
	if err != nil {
		return Unit{}, err
	}
	defer f.Close()

	base := filepath.Base(path)
	u, err := ReadUnit(strings.TrimSuffix(base, filepath.Ext(base)), f)
	u.Path = path
	return u, err
}

// OutputPath returns the assembly file produced for a source path. A
// directory "dir/Prog" produces "dir/Prog/Prog.asm" and a file "Foo.vm"
// produces "Foo.asm".
func OutputPath(path string) string {
	if fi, err := os.Stat(path); err == nil && fi.IsDir() {
		clean := filepath.Clean(path)
		return filepath.Join(clean, filepath.Base(clean)+".asm")
	}
	return strings.TrimSuffix(path, filepath.Ext(path)) + ".asm"
}

// TranslateFile translates the file or directory at path and writes the
// assembly next to it. The source map is returned for the caller to keep.
func TranslateFile(path string, options Option, out io.Writer) (string, *SourceMap, error) {
	units, err := LoadUnits(path)
	if err != nil {
		return "", nil, err
	}

	// Translate into memory first so a failed run leaves no partial file.
	var b strings.Builder
	sourceMap, err := Translate(units, &b, out, options)
	if err != nil {
		return "", nil, err
	}

	asmPath := OutputPath(path)
	if err := os.WriteFile(asmPath, []byte(b.String()), 0644); err != nil {
		return "", nil, err
	}
	return asmPath, sourceMap, nil
}
