package main

import "github.com/ecotrilha/ecodata-cli/cmd"

func main() {
	cmd.Execute()
}
