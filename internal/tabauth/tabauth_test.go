package tabauth

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func Test_Provision_andAuthenticate(t *testing.T) {
	assert := assert.New(t)

	key, plaintext, err := Provision("ops")
	if !assert.NoError(err) {
		return
	}
	assert.NotEmpty(plaintext)
	assert.Equal("ops", key.Name)

	name, err := Authenticate([]APIKey{key}, plaintext)
	if !assert.NoError(err) {
		return
	}
	assert.Equal("ops", name)
}

func Test_Authenticate_rejectsWrongSecret(t *testing.T) {
	key, _, err := Provision("ops")
	if !assert.NoError(t, err) {
		return
	}

	_, err = Authenticate([]APIKey{key}, "not-the-right-secret")
	assert.Error(t, err)
}

func Test_IssueToken_andValidate(t *testing.T) {
	assert := assert.New(t)
	secret := []byte("test-secret-at-least-32-bytes-long!")

	tok, expires, err := IssueToken(secret, "ops", time.Hour)
	if !assert.NoError(err) {
		return
	}
	assert.True(expires.After(time.Now()))

	name, err := ValidateToken(secret, tok)
	if !assert.NoError(err) {
		return
	}
	assert.Equal("ops", name)
}

func Test_ValidateToken_rejectsWrongSecret(t *testing.T) {
	secret := []byte("test-secret-at-least-32-bytes-long!")
	otherSecret := []byte("a-totally-different-secret-value!!!")

	tok, _, err := IssueToken(secret, "ops", time.Hour)
	if !assert.NoError(t, err) {
		return
	}

	_, err = ValidateToken(otherSecret, tok)
	assert.Error(t, err)
}

func Test_IssueToken_expired(t *testing.T) {
	secret := []byte("test-secret-at-least-32-bytes-long!")

	tok, _, err := IssueToken(secret, "ops", -time.Hour)
	if !assert.NoError(t, err) {
		return
	}

	_, err = ValidateToken(secret, tok)
	assert.Error(t, err)
}
