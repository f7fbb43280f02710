package main

import (
	"fmt"
	"os"

	"github.com/himakhaitan/respkv/cli"
	"go.uber.org/fx"
)

func main() {
	var cliInstance *cli.CLI

	app := fx.New(
		fx.NopLogger, // Disable fx logs
		cli.Module,
		fx.Populate(&cliInstance),
	)

	if err := app.Err(); err != nil {
		panic(err)
	}

	if err := cliInstance.Run(); err != nil {
		fmt.Printf("Error: %v\n", err)
		os.Exit(1)
	}
}
