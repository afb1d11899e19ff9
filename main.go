package main

import "github.com/spuoss/aichat/internal/commands"

func main() {
	commands.Execute()
}
