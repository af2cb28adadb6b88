package main

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	"Ampere/internal/calc/electrical"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

var newCmd = &cobra.Command{
	Use:     "new <project-file>",
	Short:   "Scaffold a YAML project from circuit templates",
	Example: "  loadcalc new flat.yaml --name \"Flat 12\" --circuit LIGHTING --circuit GENERAL_SOCKETS --circuit AC_1_5_TON",
	Args:    cobra.ExactArgs(1),
	RunE:    runNew,
}

func init() {
	newCmd.Flags().String("name", "", "project name")
	newCmd.Flags().StringArray("circuit", nil, "template key of a circuit to add (repeatable)")
	newCmd.Flags().Bool("force", false, "overwrite an existing file")
	rootCmd.AddCommand(newCmd)
}

func runNew(cmd *cobra.Command, args []string) error {
	name, _ := cmd.Flags().GetString("name")
	keys, _ := cmd.Flags().GetStringArray("circuit")
	force, _ := cmd.Flags().GetBool("force")

	p, err := scaffold(name, keys, loadSettings())
	if err != nil {
		return err
	}
	data, err := yaml.Marshal(p)
	if err != nil {
		return err
	}

	flags := os.O_WRONLY | os.O_CREATE | os.O_EXCL
	if force {
		flags = os.O_WRONLY | os.O_CREATE | os.O_TRUNC
	}
	f, err := os.OpenFile(args[0], flags, 0o644)
	if errors.Is(err, fs.ErrExist) {
		return fmt.Errorf("%s already exists (use --force to overwrite)", args[0])
	}
	if err != nil {
		return err
	}
	if _, err := f.Write(data); err != nil {
		f.Close()
		return err
	}
	if err := f.Close(); err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "created %s with %d circuits\n", args[0], len(p.Circuits))
	return nil
}

// scaffold builds a project from the defaults and the given templates.
func scaffold(name string, keys []string, s Settings) (electrical.Project, error) {
	var p electrical.Project
	p.ProjectInfo.ProjectName = name
	p = electrical.ApplyDefaults(s.apply(p))
	p.WiringInfo.AmbientTemp = electrical.DefaultProject().WiringInfo.AmbientTemp

	for _, key := range keys {
		if _, err := p.AddCircuit(electrical.TemplateKey(key)); err != nil {
			return p, err
		}
	}
	return p, nil
}
