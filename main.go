package main

import "election-results/cmd"

func main() {
	cmd.Execute()
}
