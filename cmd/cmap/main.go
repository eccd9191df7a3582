package main

import "github.com/simonscmap/cmap-go/cmd/cmap/cmd"

func main() {
	cmd.Execute()
}
