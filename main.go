// Copyright 2018 Brett Vickers. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package main

import "github.com/yosakax/nand2tetris/cmd"

func main() {
	cmd.Execute()
}
