package main

import "lodge-backend/commands"

func main() {
	commands.Execute()
}
