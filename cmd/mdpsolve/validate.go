package main

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/CodeStranger-Fred/mdpsolve/mdpfile"
)

var dump bool

var validateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Check an MDP definition without solving it",
	RunE: func(cmd *cobra.Command, args []string) error {
		m, err := load()
		if err != nil {
			return err
		}
		newPrinter().Printf("ok: %d states, %d actions, discount %g\n", len(m.States()), len(m.Actions()), m.Discount())
		if !dump {
			return nil
		}
		b, err := mdpfile.Marshal(m)
		if err != nil {
			return err
		}
		_, err = os.Stdout.Write(b)
		return err
	},
}

func init() {
	validateCmd.Flags().BoolVar(&dump, "dump", false, "Print the normalised definition as YAML")
}
