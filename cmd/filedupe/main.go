package main

import (
	_ "crypto/sha256"

	"github.com/filedupe/filedupe/commands"
)

func main() {
	commands.MainCmd.Execute()
}
