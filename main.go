package main

import (
	_ "embed"

	"github.com/learncss/Annotum/cmd"
)

//go:embed config/config.yaml
var c string

func main() {
	cmd.Execute(c)
}
