package database

import (
	"testing"

	"github.com/firdasafridi/gocrypt"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testKey = "1234567890123456789012345678901212345678901234567890123456789012"

func decryptSecrets(t *testing.T, stored string) string {
	t.Helper()
	aesOpt, err := gocrypt.NewAESOpt(testKey)
	require.NoError(t, err)

	secrets := DeviceSecrets{SSHPassword: stored}
	require.NoError(t, gocrypt.New(&gocrypt.Option{AESOpt: aesOpt}).Decrypt(&secrets))
	return secrets.SSHPassword
}

func TestSealSSHPassword(t *testing.T) {
	sealed, err := SealSSHPassword("s3cret", testKey)
	require.NoError(t, err)
	assert.NotEqual(t, "s3cret", sealed)
	assert.NotEmpty(t, sealed)

	assert.Equal(t, "s3cret", decryptSecrets(t, sealed))
}

func TestSSHPasswordEmptyStaysEmpty(t *testing.T) {
	sealed, err := SealSSHPassword("", testKey)
	require.NoError(t, err)
	assert.Empty(t, sealed)
}

func TestSealSSHPasswordBadKey(t *testing.T) {
	_, err := SealSSHPassword("s3cret", "not-hex")
	assert.Error(t, err)
}
