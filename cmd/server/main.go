package main

import "notebook/cmd/server/cmd"

func main() {
	cmd.Execute()
}
