package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/vango-dev/isoview/internal/errors"
	"github.com/vango-dev/isoview/pkg/render"
	"github.com/vango-dev/isoview/pkg/ssr"
)

func renderCmd(flags *globalFlags) *cobra.Command {
	var (
		params        []string
		document      bool
		placeholderID string
	)

	cmd := &cobra.Command{
		Use:   "render <state|path>",
		Short: "Render one state to stdout",
		Long: `Render a state and print the markup.

The argument is either a state name or, when it starts with "/", a URL
path matched against the manifest routes.

Examples:
  isoview render app.topics --param id=3
  isoview render /topics/3 --document
  isoview render app --placeholder-id '#app'`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			p, err := loadProject(flags)
			if err != nil {
				return err
			}

			values, err := parseParams(params)
			if err != nil {
				return err
			}

			name := args[0]
			if strings.HasPrefix(name, "/") {
				m, ok := p.routes.Match(name)
				if !ok {
					return errors.New("E213").WithDetailf("no route matches %q", name)
				}
				name = m.State
				for k, v := range m.Params {
					values[k] = v
				}
			}

			res, err := p.states.RenderRequest(cmd.Context(), ssr.Request{
				State:         name,
				Params:        values,
				PlaceholderID: placeholderID,
			})
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if document {
				return render.RenderPage(out, p.document().Compose(res.Markup, res.Stylesheets))
			}
			fmt.Fprintln(out, res.Markup)
			return nil
		},
	}

	cmd.Flags().StringArrayVarP(&params, "param", "p", nil, "State parameter as key=value (repeatable)")
	cmd.Flags().BoolVarP(&document, "document", "d", false, "Wrap the markup in a full HTML document")
	cmd.Flags().StringVar(&placeholderID, "placeholder-id", "", "Decorate the root placeholder with #id or .class")

	return cmd
}

func parseParams(pairs []string) (map[string]string, error) {
	out := make(map[string]string, len(pairs))
	for _, pair := range pairs {
		k, v, ok := strings.Cut(pair, "=")
		if !ok || k == "" {
			return nil, errors.New("E140").WithDetailf("parameter %q is not key=value", pair)
		}
		out[k] = v
	}
	return out, nil
}
