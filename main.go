package main

import "github.com/oms2304/nutra-cli/cmd/nutra"

func main() {
	nutra.Execute()
}
