package importer

import (
	"errors"
	"fmt"
	"strings"

	"github.com/pyneda/wsimport/pkg/policy"
	"github.com/pyneda/wsimport/pkg/wsdl"
)

var (
	// ErrImporterFaulted is returned by every call once a BeforeImport hook
	// has failed
	ErrImporterFaulted = errors.New("importer is faulted: an extension failed in BeforeImport")
	// ErrAlreadyFaulted is matched by errors for items that failed earlier in
	// the session
	ErrAlreadyFaulted = errors.New("item already faulted")
	// ErrQuotaExceeded is matched when policy enumeration passes a quota
	ErrQuotaExceeded = policy.ErrQuotaExceeded
	// ErrUnresolvedReference is matched when a qualified name points nowhere
	ErrUnresolvedReference = errors.New("unresolved reference")
	// ErrRequiredExtensionIgnored is matched when a required WSDL extension
	// was not handled by any extension
	ErrRequiredExtensionIgnored = errors.New("required WSDL extension was not handled")
	// ErrNoUsablePolicy is matched when a binding has no policy alternative
	ErrNoUsablePolicy = errors.New("no usable policy assertions")
	// ErrExtensionFailed is matched when an extension hook returned an error
	// or panicked
	ErrExtensionFailed = errors.New("import extension failed")
	// ErrBindingOperationMismatch is matched when a binding operation has no
	// counterpart in its port type or contract
	ErrBindingOperationMismatch = errors.New("binding operation does not match any operation")
	// ErrUnsupportedOperation is matched for port type operations with more
	// than one input or output message
	ErrUnsupportedOperation = errors.New("operation shape is not supported")
)

// ImportError records the failure of importing a WSDL item
type ImportError struct {
	source  wsdl.NamedItem
	locator string
	cause   error
}

// newImportError wraps cause for item. A cause raised for a child of item is
// re-targeted at item instead of being nested; an already-faulted cause is
// replaced by the original failure.
func newImportError(item wsdl.NamedItem, cause error) *ImportError {
	if existing, ok := cause.(*ImportError); ok && existing.isChildOf(item) {
		existing.source = item
		return existing
	}
	if faulted, ok := cause.(*AlreadyFaultedError); ok {
		return &ImportError{source: item, locator: Locator(item), cause: faulted.Inner}
	}
	return &ImportError{source: item, locator: Locator(item), cause: cause}
}

func (e *ImportError) isChildOf(item wsdl.NamedItem) bool {
	return strings.HasPrefix(e.locator, Locator(item))
}

// Source returns the item the error is attributed to
func (e *ImportError) Source() wsdl.NamedItem {
	return e.source
}

// Locator returns the location of the item the failure originated from
func (e *ImportError) Locator() string {
	return e.locator
}

// Message returns the text of the innermost cause that is not itself an
// import error
func (e *ImportError) Message() string {
	var cause error = e
	for {
		ie, ok := cause.(*ImportError)
		if !ok {
			break
		}
		cause = ie.cause
	}
	if cause == nil {
		return ""
	}
	return cause.Error()
}

func (e *ImportError) Error() string {
	return fmt.Sprintf("cannot import %s: %s (at %s)", ElementName(e.source), e.Message(), e.locator)
}

func (e *ImportError) Unwrap() error {
	return e.cause
}

// AlreadyFaultedError is returned when an item that failed earlier in the
// session is requested again
type AlreadyFaultedError struct {
	Element string
	Inner   *ImportError
}

func (e *AlreadyFaultedError) Error() string {
	return fmt.Sprintf("the %s has already faulted during this import: %s", e.Element, e.Inner.Message())
}

func (e *AlreadyFaultedError) Unwrap() []error {
	return []error{ErrAlreadyFaulted, e.Inner}
}

// ExtensionError wraps an error or panic raised by an extension hook
type ExtensionError struct {
	Extension string
	Hook      string
	Err       error
}

func (e *ExtensionError) Error() string {
	return fmt.Sprintf("extension %s failed in %s: %v", e.Extension, e.Hook, e.Err)
}

func (e *ExtensionError) Unwrap() []error {
	return []error{ErrExtensionFailed, e.Err}
}

// ConversionError is a diagnostic recorded during the import
type ConversionError struct {
	Message   string `json:"message" yaml:"message"`
	IsWarning bool   `json:"is_warning" yaml:"is_warning"`
}

func (e ConversionError) String() string {
	if e.IsWarning {
		return "warning: " + e.Message
	}
	return "error: " + e.Message
}
