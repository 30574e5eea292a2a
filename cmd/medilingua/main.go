// Command medilingua is a terminal client for the MediLingua translation backend.
package main

import "github.com/diogo/medilingua/internal/commands"

func main() {
	commands.Execute()
}
