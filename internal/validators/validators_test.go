package validators

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestEmail(t *testing.T) {
	assert.True(t, Email(""), "empty values are never flagged")
	assert.True(t, Email("jane@acme.test"))
	assert.True(t, Email(" jane@acme.test "))
	assert.False(t, Email("jane@"))
	assert.False(t, Email("jane"))
	assert.False(t, Email("jane acme@test.com"))
}

func TestPhone(t *testing.T) {
	assert.True(t, Phone(""))
	assert.True(t, Phone("081234567890"))
	assert.True(t, Phone("+62 812-3456-7890"))
	assert.False(t, Phone("12345"))
	assert.False(t, Phone("0812abc34567"))
	assert.False(t, Phone("1234567890123456"))
}

func TestNormalizePhone(t *testing.T) {
	assert.Equal(t, "+628123456789", NormalizePhone(" +62 812-345-6789 "))
	assert.Equal(t, "", NormalizePhone("  "))
}

func TestURL(t *testing.T) {
	assert.True(t, URL(""))
	assert.True(t, URL("https://acme.test"))
	assert.True(t, URL("http://acme.test/path?q=1"))
	assert.True(t, URL("acme.test"))
	assert.False(t, URL("not a url"))
	assert.False(t, URL("ftp://acme.test"))
}
