package main

import "github.com/brainflux/eeg-stream/cmd"

func main() {
	cmd.Execute()
}
