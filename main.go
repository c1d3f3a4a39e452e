package main

import "github.com/timvw/muxer/cmd"

func main() {
	cmd.Execute()
}
