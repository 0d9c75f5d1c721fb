package main

import (
	"github.com/yeisme/yieldcli/cmd"
)

func main() {
	cmd.Execute()
}
