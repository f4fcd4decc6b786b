package database

import (
	"github.com/firdasafridi/gocrypt"
)

// DeviceSecrets holds the device columns that are stored encrypted.
type DeviceSecrets struct {
	SSHPassword string `gocrypt:"aes"`
}

// EncryptStruct encrypts the fields tagged with gocrypt using the provided secret key.
func EncryptStruct[T any](entity T, secretKey string) (T, error) {
	aesOpt, err := gocrypt.NewAESOpt(secretKey)
	if err != nil {
		return entity, err
	}

	opt := &gocrypt.Option{
		AESOpt: aesOpt,
	}

	gc := gocrypt.New(opt)
	err = gc.Encrypt(&entity)
	if err != nil {
		return entity, err
	}
	return entity, nil
}

// SealSSHPassword returns the stored form of a plaintext SSH password.
// An empty password stays empty.
func SealSSHPassword(password, secretKey string) (string, error) {
	if password == "" {
		return "", nil
	}
	sealed, err := EncryptStruct(DeviceSecrets{SSHPassword: password}, secretKey)
	if err != nil {
		return "", err
	}
	return sealed.SSHPassword, nil
}
