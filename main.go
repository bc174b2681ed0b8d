package main

import "subscriber-desk/cmd"

func main() {
	cmd.Execute()
}
