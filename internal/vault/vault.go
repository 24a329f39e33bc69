// Package vault 负责托管私钥的对称加解密。
// 密文格式与既有数据兼容: hex(iv) + ":" + hex(ciphertext)，AES-256-CBC + PKCS#7。
package vault

import (
	"bytes"
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"
	"encoding/hex"
	"errors"
	"strings"

	"chainclub/internal/errorx"
)

const masterKeyLen = 32

// normalizeKey 将主密钥规整为固定 32 字节：右侧补 '0' 后截断。
// 这是历史兼容的弱化处理，密钥轮换时必须保持同样的规整方式
func normalizeKey(masterKey string) []byte {
	key := masterKey
	for len(key) < masterKeyLen {
		key += "0"
	}
	return []byte(key[:masterKeyLen])
}

// Encrypt 加密私钥明文。每次调用生成全新的随机 IV，绝不复用
func Encrypt(plaintext, masterKey string) (string, error) {
	block, err := aes.NewCipher(normalizeKey(masterKey))
	if err != nil {
		return "", errorx.Crypto("failed to init cipher", err)
	}

	iv := make([]byte, aes.BlockSize)
	if _, err := rand.Read(iv); err != nil {
		return "", errorx.Crypto("failed to generate iv", err)
	}

	padded := pkcs7Pad([]byte(plaintext), aes.BlockSize)
	ciphertext := make([]byte, len(padded))
	cipher.NewCBCEncrypter(block, iv).CryptBlocks(ciphertext, padded)

	return hex.EncodeToString(iv) + ":" + hex.EncodeToString(ciphertext), nil
}

// Decrypt 解密私钥密文。任何格式或密钥不匹配都返回 CryptoError，
// 绝不静默返回损坏的明文
func Decrypt(record, masterKey string) (string, error) {
	parts := strings.SplitN(record, ":", 2)
	if len(parts) != 2 || parts[0] == "" || parts[1] == "" {
		return "", errorx.Crypto("malformed secret record", nil)
	}

	iv, err := hex.DecodeString(parts[0])
	if err != nil {
		return "", errorx.Crypto("malformed iv", err)
	}
	ciphertext, err := hex.DecodeString(parts[1])
	if err != nil {
		return "", errorx.Crypto("malformed ciphertext", err)
	}
	if len(iv) != aes.BlockSize {
		return "", errorx.Crypto("bad iv length", nil)
	}
	if len(ciphertext) == 0 || len(ciphertext)%aes.BlockSize != 0 {
		return "", errorx.Crypto("bad ciphertext length", nil)
	}

	block, err := aes.NewCipher(normalizeKey(masterKey))
	if err != nil {
		return "", errorx.Crypto("failed to init cipher", err)
	}

	padded := make([]byte, len(ciphertext))
	cipher.NewCBCDecrypter(block, iv).CryptBlocks(padded, ciphertext)

	plaintext, err := pkcs7Unpad(padded, aes.BlockSize)
	if err != nil {
		// 填充校验失败，通常意味着主密钥不匹配或密文被篡改
		return "", errorx.Crypto("decryption failed", nil)
	}
	return string(plaintext), nil
}

func pkcs7Pad(data []byte, blockSize int) []byte {
	n := blockSize - len(data)%blockSize
	return append(data, bytes.Repeat([]byte{byte(n)}, n)...)
}

func pkcs7Unpad(data []byte, blockSize int) ([]byte, error) {
	if len(data) == 0 || len(data)%blockSize != 0 {
		return nil, errors.New("invalid padded length")
	}
	n := int(data[len(data)-1])
	if n == 0 || n > blockSize || n > len(data) {
		return nil, errors.New("invalid padding")
	}
	for _, b := range data[len(data)-n:] {
		if int(b) != n {
			return nil, errors.New("invalid padding")
		}
	}
	return data[:len(data)-n], nil
}
