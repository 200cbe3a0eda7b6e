package utils

import gonanoid "github.com/matoous/go-nanoid/v2"

const characters = "ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz0123456789"

// GenerateState gera o parâmetro state do fluxo OAuth.
func GenerateState() (string, error) {
	return gonanoid.Generate(characters, 16)
}
