package api

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/pyneda/wsimport/pkg/importer"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const echoWSDL = `<wsdl:definitions xmlns:wsdl="http://schemas.xmlsoap.org/wsdl/"
  xmlns:soap12="http://schemas.xmlsoap.org/wsdl/soap12/" xmlns:tns="urn:echo"
  targetNamespace="urn:echo">
  <wsdl:message name="EchoIn"/>
  <wsdl:message name="EchoOut"/>
  <wsdl:portType name="Echo">
    <wsdl:operation name="Echo">
      <wsdl:input message="tns:EchoIn"/>
      <wsdl:output message="tns:EchoOut"/>
    </wsdl:operation>
  </wsdl:portType>
  <wsdl:binding name="EchoSoap12" type="tns:Echo">
    <soap12:binding transport="http://schemas.xmlsoap.org/soap/http"/>
    <wsdl:operation name="Echo">
      <wsdl:input><soap12:body use="literal"/></wsdl:input>
      <wsdl:output><soap12:body use="literal"/></wsdl:output>
    </wsdl:operation>
  </wsdl:binding>
  <wsdl:service name="EchoService">
    <wsdl:port name="EchoPort" binding="tns:EchoSoap12">
      <soap12:address location="http://localhost/echo"/>
    </wsdl:port>
  </wsdl:service>
</wsdl:definitions>`

func newTestApp() *fiber.App {
	return NewApp(&ImportHandler{Options: importer.DefaultOptions()}, ServerOptions{})
}

func postImport(t *testing.T, app *fiber.App, body []byte) (*http.Response, map[string]any) {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, "/api/v1/import", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")

	resp, err := app.Test(req)
	require.NoError(t, err)

	var response map[string]any
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&response))
	return resp, response
}

func TestImportMetadata(t *testing.T) {
	app := newTestApp()
	input, _ := json.Marshal(ImportInput{Sections: []ImportSection{{Identifier: "echo.wsdl", Content: echoWSDL}}})

	req := httptest.NewRequest(http.MethodPost, "/api/v1/import", bytes.NewReader(input))
	req.Header.Set("Content-Type", "application/json")
	resp, err := app.Test(req)
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var response ImportResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&response))
	assert.NotEmpty(t, response.Session)
	assert.Empty(t, response.Diagnostics)

	require.Len(t, response.Contracts, 1)
	assert.Equal(t, "Echo", response.Contracts[0].Name)
	assert.Equal(t, "urn:echo", response.Contracts[0].Namespace)

	require.Len(t, response.Bindings, 1)
	assert.Equal(t, "EchoSoap12", response.Bindings[0].Name)
	assert.Equal(t, []string{"textMessageEncoding", "httpTransport"}, response.Bindings[0].Elements)

	require.Len(t, response.Endpoints, 1)
	assert.Equal(t, "EchoPort", response.Endpoints[0].Name)
	assert.Equal(t, "http://localhost/echo", response.Endpoints[0].Address)
	assert.Equal(t, "{urn:echo}Echo", response.Endpoints[0].Contract)
}

func TestImportMetadataInvalidJSON(t *testing.T) {
	resp, response := postImport(t, newTestApp(), []byte("not json"))
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Contains(t, response["error"], "Cannot parse JSON")
}

func TestImportMetadataValidation(t *testing.T) {
	tests := []struct {
		name           string
		input          map[string]any
		expectedStatus int
		expectedError  string
	}{
		{
			name:           "nothing to import",
			input:          map[string]any{},
			expectedStatus: http.StatusBadRequest,
			expectedError:  "Validation failed",
		},
		{
			name:           "invalid url",
			input:          map[string]any{"urls": []string{"not-a-url"}},
			expectedStatus: http.StatusBadRequest,
			expectedError:  "Validation failed",
		},
		{
			name:           "missing content",
			input:          map[string]any{"sections": []map[string]any{{"identifier": "a"}}},
			expectedStatus: http.StatusBadRequest,
			expectedError:  "Validation failed",
		},
		{
			name:           "unknown dialect",
			input:          map[string]any{"sections": []map[string]any{{"dialect": "urn:other", "content": "<a/>"}}},
			expectedStatus: http.StatusBadRequest,
			expectedError:  "Validation failed",
		},
		{
			name:           "undetectable dialect",
			input:          map[string]any{"sections": []map[string]any{{"content": `<a xmlns="urn:other"/>`}}},
			expectedStatus: http.StatusBadRequest,
			expectedError:  "Failed to load metadata",
		},
		{
			name: "dialect mismatch",
			input: map[string]any{"sections": []map[string]any{{
				"dialect": "http://www.w3.org/2001/XMLSchema",
				"content": echoWSDL,
			}}},
			expectedStatus: http.StatusBadRequest,
			expectedError:  "Invalid metadata",
		},
		{
			name: "invalid quotas",
			input: map[string]any{
				"sections": []map[string]any{{"content": echoWSDL}},
				"quotas":   map[string]any{"max_yields": 0},
			},
			expectedStatus: http.StatusBadRequest,
			expectedError:  "Invalid metadata",
		},
		{
			name:           "downloads disabled",
			input:          map[string]any{"urls": []string{"http://localhost/echo?wsdl"}},
			expectedStatus: http.StatusBadRequest,
			expectedError:  "Failed to load metadata",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			input, _ := json.Marshal(tt.input)
			resp, response := postImport(t, newTestApp(), input)
			assert.Equal(t, tt.expectedStatus, resp.StatusCode)
			assert.Contains(t, response["error"], tt.expectedError)
		})
	}
}

func TestHealth(t *testing.T) {
	resp, err := newTestApp().Test(httptest.NewRequest(http.MethodGet, "/", nil))
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}
