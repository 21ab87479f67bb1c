package main

import "github.com/romanin-rf/playsoundsimple/cmd"

func main() {
	cmd.Execute()
}
