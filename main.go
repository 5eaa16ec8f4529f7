package main

import "github.com/chriserin/ftskel/cmd"

func main() {
	cmd.Execute()
}
