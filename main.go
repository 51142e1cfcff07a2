package main

import "mwdl/cmd"

func main() {
	cmd.Execute()
}
