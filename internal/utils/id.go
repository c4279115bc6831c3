package utils

import (
	"fmt"
	"strconv"

	gonanoid "github.com/matoous/go-nanoid/v2"
)

const nanoIdAlphabet = "abcdefghijklmnopqrstuvwxyz0123456789"

func GenerateNanoIDWithPrefix(prefix string, size int) string {
	id, err := gonanoid.Generate(nanoIdAlphabet, size)
	if err != nil {
		panic(err)
	}
	return fmt.Sprintf("%s_%s", prefix, id)
}

func FormatID(id uint64) string {
	return strconv.FormatUint(id, 10)
}

func ParseID(s string) (uint64, error) {
	return strconv.ParseUint(s, 10, 64)
}
