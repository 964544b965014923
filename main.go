package main

import "github.com/deploymenttheory/go-shortcuts-doc/cmd"

func main() {
	cmd.Execute()
}
