package main

import "github.com/reoring/fieldshape/cmd/fieldshape/cmd"

func main() {
	cmd.Execute()
}
