package main

import "github.com/viant/mlnotes/cmd"

func main() {
	cmd.Execute()
}
