package main

import "github.com/OpenTraceLab/OpenTraceSymbols/cmd/otsym/cmd"

func main() {
	cmd.Execute()
}
