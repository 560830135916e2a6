package main

import (
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/vango-dev/isoview/internal/templates"
)

func initCmd() *cobra.Command {
	var (
		template    string
		placeholder string
		force       bool
		list        bool
	)

	cmd := &cobra.Command{
		Use:   "init [dir]",
		Short: "Create a new isoview project",
		Long: `Write isoview.json, a state manifest and starter templates.

Examples:
  isoview init
  isoview init forum --template forum
  isoview init --list`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			if list {
				for _, name := range templates.List() {
					tmpl, _ := templates.Get(name)
					info(out, "%-10s %s", name, tmpl.Description)
				}
				return nil
			}

			dir := "."
			if len(args) == 1 {
				dir = args[0]
			}
			abs, err := filepath.Abs(dir)
			if err != nil {
				return err
			}

			tmpl, err := templates.Get(template)
			if err != nil {
				return err
			}
			if err := tmpl.Create(abs, templates.Config{
				ProjectName: filepath.Base(abs),
				Placeholder: placeholder,
			}, force); err != nil {
				return err
			}

			success(out, "Created %s project in %s", tmpl.Name, abs)
			info(out, "Next: isoview --config %s serve", dir)
			return nil
		},
	}

	cmd.Flags().StringVarP(&template, "template", "t", "minimal", "Project template")
	cmd.Flags().StringVar(&placeholder, "placeholder", "", "Placeholder tag or attribute name (default \"ui-view\")")
	cmd.Flags().BoolVarP(&force, "force", "f", false, "Overwrite an existing project")
	cmd.Flags().BoolVar(&list, "list", false, "List available templates")

	return cmd
}
