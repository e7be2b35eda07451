package main

import (
	"fmt"
	"os"

	"github.com/ruminaider/psiconf/internal/commands"
	"github.com/spf13/cobra"
)

var optionsCmd = &cobra.Command{
	Use:   "options",
	Short: "Inspect a profile's option store",
}

var optionsGetCmd = &cobra.Command{
	Use:   "get <path>",
	Short: "Print one option",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		r := roots()
		profile, err := commands.ResolveProfile(r, profileFlag, cfg.DefaultProfile)
		if err != nil {
			return err
		}
		v, err := commands.GetOption(r, profile, cfg.Store, args[0])
		if err != nil {
			return err
		}
		fmt.Println(commands.FormatValue(v))
		return nil
	},
}

var optionsDumpCmd = &cobra.Command{
	Use:   "dump [prefix]",
	Short: "Print options as YAML",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		r := roots()
		profile, err := commands.ResolveProfile(r, profileFlag, cfg.DefaultProfile)
		if err != nil {
			return err
		}
		prefix := ""
		if len(args) == 1 {
			prefix = args[0]
		}
		out, err := commands.DumpOptions(r, profile, cfg.Store, prefix)
		if err != nil {
			return err
		}
		_, err = os.Stdout.Write(out)
		return err
	},
}

func init() {
	optionsCmd.AddCommand(optionsGetCmd)
	optionsCmd.AddCommand(optionsDumpCmd)
}
