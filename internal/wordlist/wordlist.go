// Package wordlist loads dictionaries from files or the embedded default list.
package wordlist

import (
	"bufio"
	_ "embed"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/verte-zerg/wordler/internal/word"
)

//go:embed words.txt
var defaultWords string

// Parse reads whitespace- or line-delimited tokens from r. Tokens are
// lowercased; those of the wrong length or with non-letter characters are
// dropped.
func Parse(r io.Reader, length int) ([]string, error) {
	keep := FilterForLength(length)
	var words []string
	scanner := bufio.NewScanner(r)
	scanner.Split(bufio.ScanWords)
	for scanner.Scan() {
		token := word.Normalize(scanner.Text())
		if keep(token) {
			words = append(words, token)
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	if len(words) == 0 {
		return nil, fmt.Errorf("word list has no %d-letter words", length)
	}
	return words, nil
}

// LoadWords reads a word list from the provided file path.
func LoadWords(path string, length int) ([]string, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer func() {
		if cerr := file.Close(); cerr != nil {
			// Best-effort close for read-only word list.
			_ = cerr
		}
	}()
	words, err := Parse(file, length)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return words, nil
}

// Default returns the embedded word list filtered to length.
func Default(length int) ([]string, error) {
	return Parse(strings.NewReader(defaultWords), length)
}

// Load reads path, or the embedded list when path is empty.
func Load(path string, length int) ([]string, error) {
	if path == "" {
		return Default(length)
	}
	return LoadWords(path, length)
}
