package main

import (
	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-snake/internal/platform/tui"
)

func runMenu(_ *cobra.Command, _ []string) error {
	e, err := openEnv(logToFile, true)
	if err != nil {
		return err
	}
	defer e.close()

	return tui.RunApp(e.deps(), e.runtimeConfig())
}
