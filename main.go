package main

import "starstream/cmd"

func main() {
	cmd.Execute()
}
