package blob

import (
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestContainerName(t *testing.T) {
	assert.Equal(t, "graphragdemocache", ContainerName("demo"))
	assert.Equal(t, "graphragmyprojectcache", ContainerName("My-Project"))
	assert.Equal(t, "graphragab2cache", ContainerName("a_b-2"))
}

func TestSigner_RoundTrip(t *testing.T) {
	signer := NewSigner("secret", "http://localhost:8080/")

	signed, err := signer.SignedURL("demo", "doc.pdf", time.Hour)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(signed, "http://localhost:8080/download/graphragdemocache/doc.pdf?token="))

	u, err := url.Parse(signed)
	require.NoError(t, err)
	container, blobName, err := signer.Verify(u.Query().Get("token"))
	require.NoError(t, err)
	assert.Equal(t, "graphragdemocache", container)
	assert.Equal(t, "doc.pdf", blobName)
}

func TestSigner_WrongSecret(t *testing.T) {
	signed, err := NewSigner("secret", "http://h").SignedURL("demo", "doc.pdf", time.Hour)
	require.NoError(t, err)
	u, _ := url.Parse(signed)

	_, _, err = NewSigner("other", "http://h").Verify(u.Query().Get("token"))
	assert.Error(t, err)
}

func TestSigner_Expired(t *testing.T) {
	signer := NewSigner("secret", "http://h")
	signed, err := signer.SignedURL("demo", "doc.pdf", -time.Minute)
	require.NoError(t, err)
	u, _ := url.Parse(signed)

	_, _, err = signer.Verify(u.Query().Get("token"))
	assert.Error(t, err)
}

func TestSigner_EscapesBlobName(t *testing.T) {
	signer := NewSigner("secret", "http://h")
	signed, err := signer.SignedURL("demo", "annual report.pdf", time.Hour)
	require.NoError(t, err)
	assert.Contains(t, signed, "annual%20report.pdf")
}
