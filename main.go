package main

import "controller-cleaner/cmd"

func main() {
	cmd.Execute()
}
