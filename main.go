package main

import "github.com/mnemonic-notes/mnemo/cmd"

func main() {
	cmd.Execute()
}
