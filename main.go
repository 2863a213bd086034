package main

import "github.com/pagevault/pagevault/cmd"

func main() {
	cmd.Execute()
}
