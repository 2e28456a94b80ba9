package main

import "liftec/cmd"

func main() {
	cmd.Execute()
}
