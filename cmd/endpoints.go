package cmd

import (
	"fmt"

	"github.com/pyneda/wsimport/internal/view"
	"github.com/pyneda/wsimport/pkg/description"
	"github.com/pyneda/wsimport/pkg/importer"
	"github.com/spf13/cobra"
)

var (
	endpointsSources  sourceFlags
	endpointsService  string
	endpointsBinding  string
	endpointsPortType string
)

var endpointsCmd = &cobra.Command{
	Use:   "endpoints",
	Short: "Import the service endpoints",
	Long: `Import the wsdl:port elements of every service into endpoints made of a
contract, a binding and an address.

Endpoints can be restricted to one service, one binding or one port type.
Names are either local names or {namespace}name.

Examples:
  wsimport endpoints -f ./service.wsdl
  wsimport endpoints -f ./service.wsdl --service GreeterService --format json`,
	Run: func(cmd *cobra.Command, args []string) {
		runImport(cmd, &endpointsSources, "endpoints", func(imp *importer.Importer) ([]view.EndpointRow, error) {
			endpoints, err := importEndpoints(imp)
			if err != nil {
				return nil, err
			}
			return view.Rows[*description.ServiceEndpoint](endpoints, view.NewEndpointRow), nil
		})
	},
}

func init() {
	rootCmd.AddCommand(endpointsCmd)
	endpointsSources.register(endpointsCmd)
	endpointsCmd.Flags().StringVar(&endpointsService, "service", "", "Only import the ports of this service")
	endpointsCmd.Flags().StringVar(&endpointsBinding, "binding", "", "Only import the ports using this binding")
	endpointsCmd.Flags().StringVar(&endpointsPortType, "port-type", "", "Only import the ports whose binding implements this port type")
	endpointsCmd.MarkFlagsMutuallyExclusive("service", "binding", "port-type")
}

func importEndpoints(imp *importer.Importer) ([]*description.ServiceEndpoint, error) {
	docs := imp.Store().Documents
	switch {
	case endpointsService != "":
		for s := range docs.Services() {
			if matchesName(s, endpointsService) {
				return imp.ImportEndpointsForService(s)
			}
		}
		return nil, fmt.Errorf("service %s not found", endpointsService)
	case endpointsBinding != "":
		for b := range docs.Bindings() {
			if matchesName(b, endpointsBinding) {
				return imp.ImportEndpointsForBinding(b)
			}
		}
		return nil, fmt.Errorf("binding %s not found", endpointsBinding)
	case endpointsPortType != "":
		for pt := range docs.PortTypes() {
			if matchesName(pt, endpointsPortType) {
				return imp.ImportEndpointsForPortType(pt)
			}
		}
		return nil, fmt.Errorf("port type %s not found", endpointsPortType)
	default:
		return imp.ImportAllEndpoints()
	}
}
