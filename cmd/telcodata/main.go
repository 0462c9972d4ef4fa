package main

import "github.com/matthieukhl/telcodata/internal/cmd"

func main() {
	cmd.Execute()
}
