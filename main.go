package main

import (
	"github.com/pyneda/wsimport/cmd"
	"github.com/pyneda/wsimport/internal/config"
)

func main() {
	config.LoadConfig()
	cmd.Execute()
}
