package main

import (
	"os"

	"github.com/platinummonkey/plugcompat/pkg/cli"
)

func main() {
	os.Exit(cli.Execute())
}
