package vault

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"chainclub/internal/errorx"
)

const testPrivateKey = "4c0883a69102937d6231471b5dbb6204fe5129617082792ae468d01a3f362318"

func TestEncryptDecryptRoundTrip(t *testing.T) {
	record, err := Encrypt(testPrivateKey, "my-master-key")
	require.NoError(t, err)

	plaintext, err := Decrypt(record, "my-master-key")
	require.NoError(t, err)
	assert.Equal(t, testPrivateKey, plaintext)
}

func TestEncryptFreshIVPerCall(t *testing.T) {
	first, err := Encrypt(testPrivateKey, "my-master-key")
	require.NoError(t, err)
	second, err := Encrypt(testPrivateKey, "my-master-key")
	require.NoError(t, err)

	// 相同明文两次加密必须产生不同 IV 和不同密文
	assert.NotEqual(t, first, second)
	assert.NotEqual(t, strings.SplitN(first, ":", 2)[0], strings.SplitN(second, ":", 2)[0])

	// 两份密文都必须还原出同一明文
	p1, err := Decrypt(first, "my-master-key")
	require.NoError(t, err)
	p2, err := Decrypt(second, "my-master-key")
	require.NoError(t, err)
	assert.Equal(t, testPrivateKey, p1)
	assert.Equal(t, testPrivateKey, p2)
}

func TestDecryptWrongMasterKey(t *testing.T) {
	record, err := Encrypt(testPrivateKey, "correct-key")
	require.NoError(t, err)

	plaintext, err := Decrypt(record, "wrong-key")
	if err != nil {
		assert.Equal(t, errorx.KindCrypto, errorx.KindOf(err))
	} else {
		// 填充碰巧合法时也绝不能等于原始明文
		assert.NotEqual(t, testPrivateKey, plaintext)
	}
}

func TestDecryptMalformedRecords(t *testing.T) {
	cases := []struct {
		name   string
		record string
	}{
		{"missing separator", "deadbeef"},
		{"empty iv", ":deadbeef"},
		{"empty ciphertext", "deadbeef:"},
		{"odd hex iv", "abc:deadbeef"},
		{"odd hex ciphertext", "00112233445566778899aabbccddeeff:abc"},
		{"short iv", "deadbeef:00112233445566778899aabbccddeeff"},
		{"ciphertext not block aligned", "00112233445566778899aabbccddeeff:deadbeef"},
		{"empty record", ""},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := Decrypt(tc.record, "my-master-key")
			require.Error(t, err)
			assert.Equal(t, errorx.KindCrypto, errorx.KindOf(err))
		})
	}
}

func TestNormalizeKeyShortAndLongKeys(t *testing.T) {
	// 短密钥补 '0'，长密钥截断，两者都必须可以往返
	for _, key := range []string{"k", "0123456789", strings.Repeat("x", 64)} {
		record, err := Encrypt(testPrivateKey, key)
		require.NoError(t, err)
		plaintext, err := Decrypt(record, key)
		require.NoError(t, err)
		assert.Equal(t, testPrivateKey, plaintext)
	}
}
