package main

import "github.com/masmgr/gitlogue/cmd"

func main() {
	cmd.Run()
}
