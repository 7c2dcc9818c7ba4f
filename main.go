package main

import "github.com/secondchance/apiserver/cmd"

func main() {
	cmd.Execute()
}
