package policy

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAssertions(t *testing.T) {
	p := parse(t, `<wsp:Policy xmlns:wsp="http://www.w3.org/ns/ws-policy" xmlns:x="urn:x">
  <x:a/><x:b/><x:a/><x:c/>
</wsp:Policy>`)

	set := NewAssertions(p.Children...)
	assert.Equal(t, 4, set.Len())

	b := set.Find("urn:x", "b", false)
	assert.NotNil(t, b)
	assert.Equal(t, 4, set.Len())

	assert.Same(t, b, set.Find("urn:x", "b", true))
	assert.Equal(t, 3, set.Len())
	assert.Nil(t, set.Find("urn:x", "b", false))

	found := set.FindAll("urn:x", "a", true)
	assert.Len(t, found, 2)
	assert.Equal(t, 1, set.Len())
	assert.Equal(t, "c", set.All()[0].LocalName())

	assert.True(t, set.Remove(p.Children[3]))
	assert.False(t, set.Remove(p.Children[3]))
	assert.Equal(t, 0, set.Len())

	// the source slice is never modified
	assert.Len(t, p.Children, 4)
	assert.Equal(t, "b", p.Children[1].LocalName())
}

func TestAssertionsCopiesAreIndependent(t *testing.T) {
	p := parse(t, `<wsp:Policy xmlns:wsp="http://www.w3.org/ns/ws-policy"><a/><b/></wsp:Policy>`)

	first := NewAssertions(p.Children...)
	second := NewAssertions(p.Children...)
	first.Find("", "a", true)

	assert.Equal(t, 1, first.Len())
	assert.Equal(t, 2, second.Len())
}
