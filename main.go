package main

import "github.com/mountain-software-jp/trail-simulator/cmd"

func main() {
	cmd.Execute()
}
