package main

import "github.com/jfmyers9/profiles/cmd"

func main() {
	cmd.Execute()
}
