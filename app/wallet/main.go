package main

import "github.com/ardanlabs/lupa/app/wallet/cmd"

func main() {
	cmd.Execute()
}
