package main

import "rihla/cmd"

func main() {
	cmd.Execute()
}
