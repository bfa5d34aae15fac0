package cmd

import (
	"github.com/pyneda/wsimport/internal/view"
	"github.com/pyneda/wsimport/pkg/description"
	"github.com/pyneda/wsimport/pkg/importer"
	"github.com/spf13/cobra"
)

var contractsSources sourceFlags

var contractsCmd = &cobra.Command{
	Use:   "contracts",
	Short: "Import the contracts described by the port types",
	Long: `Import every wsdl:portType into a contract and list its operations.

Examples:
  # List contracts from a local WSDL
  wsimport contracts -f ./service.wsdl

  # Download a WSDL and everything it imports
  wsimport contracts -u https://example.com/service?wsdl --format yaml`,
	Run: func(cmd *cobra.Command, args []string) {
		runImport(cmd, &contractsSources, "contracts", func(imp *importer.Importer) ([]view.ContractRow, error) {
			contracts, err := imp.ImportAllContracts()
			if err != nil {
				return nil, err
			}
			return view.Rows[*description.ContractDescription](contracts, view.NewContractRow), nil
		})
	},
}

func init() {
	rootCmd.AddCommand(contractsCmd)
	contractsSources.register(contractsCmd)
}
