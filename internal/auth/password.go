package auth

import (
	"errors"
	"strings"

	"golang.org/x/crypto/bcrypt"
)

const defaultBcryptCost = bcrypt.DefaultCost

// HashKey 对明文管理密钥进行哈希处理
func HashKey(key string) (string, error) {
	if strings.TrimSpace(key) == "" {
		return "", errors.New("key must not be empty")
	}
	hashed, err := bcrypt.GenerateFromPassword([]byte(key), defaultBcryptCost)
	if err != nil {
		return "", err
	}
	return string(hashed), nil
}

// VerifyKey 验证管理密钥是否与存储的哈希值匹配
func VerifyKey(hash, candidate string) error {
	if strings.TrimSpace(hash) == "" {
		return errors.New("stored key hash is empty")
	}
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(candidate))
}
