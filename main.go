package main

import (
	"github.com/shoal-sh/shoal/cmd"
)

func main() {
	cmd.Execute()
}
