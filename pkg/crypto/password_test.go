package crypto

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"golang.org/x/crypto/bcrypt"
)

func TestHashAndCheckPassword(t *testing.T) {
	orig := PasswordCost
	PasswordCost = bcrypt.MinCost
	t.Cleanup(func() { PasswordCost = orig })

	hash, err := HashPassword("Password123!")
	assert.NoError(t, err)
	assert.NotEmpty(t, hash)

	assert.True(t, CheckPassword("Password123!", hash))
	assert.False(t, CheckPassword("WrongPass", hash))
}

func TestGenerateRandomToken(t *testing.T) {
	token, err := GenerateRandomToken(16)
	assert.NoError(t, err)
	assert.Len(t, token, 32)
}

func TestHashPasswordAndGenerateRandomToken_ErrorBranches(t *testing.T) {
	origBcrypt := bcryptGenerateFromPassword
	origRandRead := randomRead
	t.Cleanup(func() {
		bcryptGenerateFromPassword = origBcrypt
		randomRead = origRandRead
	})

	bcryptGenerateFromPassword = func([]byte, int) ([]byte, error) {
		return nil, errors.New("bcrypt failed")
	}
	_, err := HashPassword("Password123!")
	assert.Error(t, err)

	randomRead = func([]byte) (int, error) {
		return 0, errors.New("rand failed")
	}
	_, err = GenerateRandomToken(16)
	assert.Error(t, err)
}

func TestVerifyHMAC(t *testing.T) {
	payload := CheckoutPayload("order_1", "pay_1", "client_1", 50000)
	sig := SignHMAC("s3cret", payload)

	assert.True(t, VerifyHMAC("s3cret", payload, sig))
	assert.False(t, VerifyHMAC("other", payload, sig))
	assert.False(t, VerifyHMAC("s3cret", CheckoutPayload("order_1", "pay_2", "client_1", 50000), sig))
	assert.False(t, VerifyHMAC("s3cret", CheckoutPayload("order_1", "pay_1", "client_2", 50000), sig))
	assert.False(t, VerifyHMAC("s3cret", CheckoutPayload("order_1", "pay_1", "client_1", 99999900), sig))
	assert.False(t, VerifyHMAC("", payload, sig))
	assert.False(t, VerifyHMAC("s3cret", payload, ""))
}
