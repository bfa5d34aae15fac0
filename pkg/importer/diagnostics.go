package importer

import (
	"fmt"

	"github.com/pyneda/wsimport/pkg/wsdl"
)

const (
	maxWarningSet = 1024

	errorDetailFormat      = "Cannot import %s\nDetail: %s\nXPath to Error Source: %s"
	dependencyDetailFormat = "There was an error importing a %s that the %s is dependent on.\nXPath to %s: %s"
)

// Locator returns an XPath-like expression identifying item within its
// document
func Locator(item wsdl.NamedItem) string {
	switch v := item.(type) {
	case nil:
		return "XPath unavailable"
	case *wsdl.Document:
		return fmt.Sprintf("//wsdl:definitions[@targetNamespace='%s']", v.TargetNamespace)
	case *wsdl.Message:
		return Locator(v.OwnerDocument()) + namedStep("message", v.Name)
	case *wsdl.PortType:
		return Locator(v.OwnerDocument()) + namedStep("portType", v.Name)
	case *wsdl.Operation:
		return Locator(v.PortType()) + namedStep("operation", v.Name)
	case *wsdl.OperationMessage:
		return Locator(v.Operation()) + optionalStep(v.Direction.String(), v.Name)
	case *wsdl.Binding:
		return Locator(v.OwnerDocument()) + namedStep("binding", v.Name)
	case *wsdl.OperationBinding:
		return Locator(v.Binding()) + namedStep("operation", v.Name)
	case *wsdl.MessageBinding:
		return Locator(v.OperationBinding()) + optionalStep(v.Direction.String(), v.Name)
	case *wsdl.Service:
		return Locator(v.OwnerDocument()) + namedStep("service", v.Name)
	case *wsdl.Port:
		return Locator(v.Service()) + namedStep("port", v.Name)
	default:
		return "XPath unavailable"
	}
}

func namedStep(element, name string) string {
	return fmt.Sprintf("/wsdl:%s[@name='%s']", element, name)
}

func optionalStep(element, name string) string {
	if name == "" {
		return "/wsdl:" + element
	}
	return namedStep(element, name)
}

// ElementName returns the prefixed WSDL element name of item
func ElementName(item wsdl.NamedItem) string {
	if item == nil {
		return "wsdl item"
	}
	switch item.Kind() {
	case wsdl.KindDefinitions:
		return "wsdl:definitions"
	case wsdl.KindMessage:
		return "wsdl:message"
	case wsdl.KindPortType:
		return "wsdl:portType"
	case wsdl.KindOperation, wsdl.KindOperationBinding:
		return "wsdl:operation"
	case wsdl.KindOperationInput, wsdl.KindInputBinding:
		return "wsdl:input"
	case wsdl.KindOperationOutput, wsdl.KindOutputBinding:
		return "wsdl:output"
	case wsdl.KindOperationFault, wsdl.KindFaultBinding:
		return "wsdl:fault"
	case wsdl.KindBinding:
		return "wsdl:binding"
	case wsdl.KindService:
		return "wsdl:service"
	case wsdl.KindPort:
		return "wsdl:port"
	default:
		return "wsdl item"
	}
}

// logImportError blocklists item and records the failure. When the cause is
// itself the failure of another item, the message names that dependency
// instead of repeating its detail.
func (imp *Importer) logImportError(item wsdl.NamedItem, err *ImportError, isWarning bool) {
	var detail string
	if inner, ok := err.cause.(*ImportError); ok {
		detail = fmt.Sprintf(dependencyDetailFormat,
			ElementName(inner.source), ElementName(item), ElementName(inner.source), Locator(inner.source))
	} else {
		detail = err.Message()
	}

	message := fmt.Sprintf(errorDetailFormat, ElementName(item), detail, err.locator)
	imp.importErrors[item] = err
	imp.errors = append(imp.errors, ConversionError{Message: message, IsWarning: isWarning})

	event := imp.logger.Error()
	if isWarning {
		event = imp.logger.Warn()
	}
	event.Str("item", ElementName(item)).Str("xpath", err.locator).Msg(detail)
}

// LogWarning records a warning once per session. The set of seen warnings
// is cleared when it reaches its size limit.
func (imp *Importer) LogWarning(message string) {
	if _, seen := imp.warnings[message]; seen {
		return
	}
	if len(imp.warnings) >= maxWarningSet {
		clear(imp.warnings)
	}
	imp.warnings[message] = struct{}{}
	imp.errors = append(imp.errors, ConversionError{Message: message, IsWarning: true})
	imp.logger.Warn().Msg(message)
}

// Errors returns the diagnostics recorded so far, in order
func (imp *Importer) Errors() []ConversionError {
	return append([]ConversionError(nil), imp.errors...)
}

// alreadyFaulted builds the error returned for a blocklisted item
func (imp *Importer) alreadyFaulted(item wsdl.NamedItem) error {
	return &AlreadyFaultedError{Element: ElementName(item), Inner: imp.importErrors[item]}
}
