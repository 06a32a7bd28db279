package main

import "xkcdd/cmd"

func main() {
	cmd.Execute()
}
