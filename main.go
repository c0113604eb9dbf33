package main

import "clinichub/cmd"

func main() {
	cmd.Execute()
}
