package main

import (
	"github.com/uwoguessr/uwoguessr-server/internal/cli"
)

func main() {
	cli.Execute()
}
