package main

import (
	"log"
	"os"

	"github.com/biotinker/solenoid-ac/internal/cli"
	_ "github.com/biotinker/solenoid-ac/internal/logsetup"
	"github.com/biotinker/solenoid-ac/internal/solenoidctl"
)

func main() {
	c := cli.NewBaseCLI(os.Stdout, os.Stderr)

	cmdArgs, err := c.ParseArgs(os.Args[1:],
		func() cli.Configurable { return solenoidctl.NewConfig() })
	if err != nil {
		log.Fatalf("Error: %v", err)
	}

	handler := solenoidctl.NewHandler()
	if err := handler.Execute(cmdArgs); err != nil {
		log.Fatalf("Error: %v", err)
	}
}
