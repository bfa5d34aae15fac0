package description

// EndpointAddress is the network address of an endpoint
type EndpointAddress struct {
	URI string `json:"uri"`
}

// ServiceEndpoint combines a contract, a binding and an address
type ServiceEndpoint struct {
	Name     string               `json:"name"`
	Contract *ContractDescription `json:"contract"`
	Binding  *Binding             `json:"binding"`
	Address  *EndpointAddress     `json:"address,omitempty"`
}

// NewServiceEndpoint creates an endpoint for the contract with no binding
// or address yet
func NewServiceEndpoint(contract *ContractDescription) *ServiceEndpoint {
	return &ServiceEndpoint{Contract: contract}
}
