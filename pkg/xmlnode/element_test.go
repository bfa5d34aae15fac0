package xmlnode

import (
	"encoding/xml"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const policyFragment = `<?xml version="1.0"?>
<wsp:Policy xmlns:wsp="http://www.w3.org/ns/ws-policy"
            xmlns:wsu="http://docs.oasis-open.org/wss/2004/01/oasis-200401-wss-wssecurity-utility-1.0.xsd"
            wsu:Id="Greet_policy">
  <wsp:ExactlyOne>
    <wsp:All>
      <wsam:Addressing xmlns:wsam="http://www.w3.org/2007/05/addressing/metadata" wsp:Optional="true">
        <wsp:Policy/>
      </wsam:Addressing>
      <custom Name="plain">some <b>text</b></custom>
    </wsp:All>
  </wsp:ExactlyOne>
</wsp:Policy>`

func TestParse(t *testing.T) {
	root, err := Parse([]byte(policyFragment))
	require.NoError(t, err)

	assert.Equal(t, "Policy", root.LocalName())
	assert.Equal(t, "http://www.w3.org/ns/ws-policy", root.NamespaceURI())
	assert.Equal(t, "Greet_policy", root.GetAttributeNS("http://docs.oasis-open.org/wss/2004/01/oasis-200401-wss-wssecurity-utility-1.0.xsd", "Id"))
	assert.Len(t, root.Attrs, 1, "namespace declarations are dropped")

	exactlyOne := root.Find("http://www.w3.org/ns/ws-policy", "ExactlyOne")
	require.NotNil(t, exactlyOne)
	all := exactlyOne.Find("http://www.w3.org/ns/ws-policy", "All")
	require.NotNil(t, all)
	require.Len(t, all.Children, 2)

	addressing := all.Children[0]
	assert.True(t, addressing.Is("http://www.w3.org/2007/05/addressing/metadata", "Addressing"))
	assert.True(t, addressing.HasAttributeNS("http://www.w3.org/ns/ws-policy", "Optional"))
	assert.False(t, addressing.HasAttribute("Optional"))

	custom := all.Children[1]
	assert.Equal(t, "plain", custom.GetAttribute("Name"))
	assert.Equal(t, "some", custom.Text)
	assert.Equal(t, "sometext", custom.TextContent())
	assert.Equal(t, "custom", custom.String())
	assert.Equal(t, "{http://www.w3.org/2007/05/addressing/metadata}Addressing", addressing.String())
}

func TestParseErrors(t *testing.T) {
	_, err := Parse([]byte("   "))
	assert.ErrorIs(t, err, ErrNoRootElement)

	_, err = Parse([]byte("<a><b></a>"))
	assert.Error(t, err)
}

func TestRootName(t *testing.T) {
	name, err := RootName([]byte(policyFragment))
	require.NoError(t, err)
	assert.Equal(t, xml.Name{Space: "http://www.w3.org/ns/ws-policy", Local: "Policy"}, name)
}

func TestAnyField(t *testing.T) {
	type holder struct {
		Name  string     `xml:"name,attr"`
		Known string     `xml:"urn:known known"`
		Rest  []*Element `xml:",any"`
	}
	data := `<holder xmlns:x="urn:ext" name="h"><known xmlns="urn:known">k</known><x:one a="1"/><x:two><x:nested/></x:two></holder>`

	var h holder
	require.NoError(t, xml.Unmarshal([]byte(data), &h))
	assert.Equal(t, "h", h.Name)
	assert.Equal(t, "k", h.Known)
	require.Len(t, h.Rest, 2)
	assert.True(t, h.Rest[0].Is("urn:ext", "one"))
	assert.Equal(t, "1", h.Rest[0].GetAttribute("a"))
	require.Len(t, h.Rest[1].FindAll("urn:ext", "nested"), 1)
}

func TestClone(t *testing.T) {
	root, err := Parse([]byte(policyFragment))
	require.NoError(t, err)

	clone := root.Clone()
	require.NotSame(t, root, clone)
	assert.Equal(t, root, clone)

	clone.Children[0].Name.Local = "changed"
	assert.Equal(t, "ExactlyOne", root.Children[0].LocalName())
}

func TestParseLatin1(t *testing.T) {
	data := append([]byte(`<?xml version="1.0" encoding="ISO-8859-1"?><doc title="caf`), 0xe9)
	data = append(data, []byte(`"/>`)...)

	root, err := Parse(data)
	require.NoError(t, err)
	assert.Equal(t, "café", root.GetAttribute("title"))

	name, err := RootName(data)
	require.NoError(t, err)
	assert.Equal(t, "doc", name.Local)
}
