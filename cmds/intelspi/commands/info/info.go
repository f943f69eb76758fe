// Copyright 2021 the LinuxBoot Authors. All rights reserved
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package info

import (
	"os"

	"github.com/linuxboot/intelspi/cmds/intelspi/commands"
	"github.com/linuxboot/intelspi/pkg/intelspi"
)

var _ commands.Command = (*Command)(nil)

type Command struct {
	Global *commands.Options `no-flag:"true"`
}

// ShortDescription explains what this command does in one line
func (cmd *Command) ShortDescription() string {
	return "prints the decoded flash descriptor"
}

// LongDescription explains what this verb does (without limitation in amount of lines)
func (cmd *Command) LongDescription() string {
	return "Reads the descriptor registers through FDOC/FDOD and prints them together with the flash size and the region map."
}

// Execute is the main function here. It is responsible to
// start the execution of the command.
//
// `args` are the arguments left unused by verb itself and options.
func (cmd *Command) Execute(args []string) error {
	if err := commands.NoExtraArgs(args); err != nil {
		return err
	}
	return cmd.Global.Run(func(c *intelspi.Controller) error {
		return c.Describe(os.Stdout, cmd.Global.Verbose)
	})
}
