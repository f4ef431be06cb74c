package configs

import (
	"encoding/base64"
	"fmt"
	"os"

	"github.com/gorilla/securecookie"
)

const newKeysFile = ".env.new_keys"

func GenerateJWTSecret() (string, error) {
	key := securecookie.GenerateRandomKey(64)
	if key == nil {
		return "", fmt.Errorf("could not generate signing key")
	}
	return base64.URLEncoding.EncodeToString(key), nil
}

func GenerateAndPrintKeys() error {
	secret, err := GenerateJWTSecret()
	if err != nil {
		return err
	}

	fmt.Println("================================================")
	fmt.Printf("JWT_SECRET=%s\n", secret)
	fmt.Println("================================================")

	file, err := os.Create(newKeysFile)
	if err != nil {
		return fmt.Errorf("failed to create file %s: %w", newKeysFile, err)
	}
	defer file.Close()

	if _, err := fmt.Fprintf(file, "JWT_SECRET=%s\n", secret); err != nil {
		return fmt.Errorf("failed to write keys to file %s: %w", newKeysFile, err)
	}

	fmt.Printf("Keys have been written to '%s'. Copy them into your .env file.\n", newKeysFile)
	fmt.Println("Regenerating the secret invalidates every issued token.")
	return nil
}
