package cmd

import (
	"github.com/pyneda/wsimport/internal/view"
	"github.com/pyneda/wsimport/pkg/description"
	"github.com/pyneda/wsimport/pkg/importer"
	"github.com/spf13/cobra"
)

var bindingsSources sourceFlags

var bindingsCmd = &cobra.Command{
	Use:   "bindings",
	Short: "Import the bindings and their binding element stacks",
	Long: `Import every wsdl:binding, resolving its attached WS-Policy into binding
elements such as transport security, reliable sessions and addressing.

Examples:
  # Bindings of a WSDL whose policies live in a separate document
  wsimport bindings -f ./service.wsdl -p http://example.com/policy=./policy.xml`,
	Run: func(cmd *cobra.Command, args []string) {
		runImport(cmd, &bindingsSources, "bindings", func(imp *importer.Importer) ([]view.BindingRow, error) {
			bindings, err := imp.ImportAllBindings()
			if err != nil {
				return nil, err
			}
			return view.Rows[*description.Binding](bindings, view.NewBindingRow), nil
		})
	},
}

func init() {
	rootCmd.AddCommand(bindingsCmd)
	bindingsSources.register(bindingsCmd)
}
