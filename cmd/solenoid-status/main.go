package main

import (
	"github.com/biotinker/solenoid-ac/internal/cli"
	_ "github.com/biotinker/solenoid-ac/internal/logsetup"
	"github.com/biotinker/solenoid-ac/internal/status"
)

func main() {
	cli.StandardMain(
		func() cli.Configurable { return status.NewConfig() },
		status.NewHandler(),
	)
}
