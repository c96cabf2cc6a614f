package main

import "github.com/jsphweid/vivechord/cmd"

func main() {
	cmd.Execute()
}
