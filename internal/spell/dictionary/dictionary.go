// Package dictionary provides the immutable word set used for spell checking.
//
// A Dictionary is built once, from a line-oriented word list, and is never
// modified afterwards, so it can be shared by the UI loop and the correction
// worker without locking.
package dictionary

import (
	"bufio"
	"fmt"
	"io"
	"strings"
)

// Dictionary is a read-only set of lowercase words.
type Dictionary struct {
	words map[string]struct{}
}

// New creates a dictionary from the given words.
func New(words ...string) *Dictionary {
	d := &Dictionary{words: make(map[string]struct{}, len(words))}
	for _, w := range words {
		d.add(w)
	}
	return d
}

// FromReader parses a word list with one word per line.
// Blank lines and lines starting with '#' are skipped.
func FromReader(r io.Reader) (*Dictionary, error) {
	if r == nil {
		return nil, fmt.Errorf("reader required")
	}
	d := &Dictionary{words: make(map[string]struct{})}

	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		line := scanner.Text()
		if strings.HasPrefix(line, "#") {
			continue
		}
		d.add(line)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("reading word list: %w", err)
	}
	return d, nil
}

func (d *Dictionary) add(word string) {
	word = strings.ToLower(strings.TrimSpace(word))
	if word == "" {
		return
	}
	d.words[word] = struct{}{}
}

// Contains reports whether word is in the dictionary, ignoring case.
func (d *Dictionary) Contains(word string) bool {
	if d == nil {
		return false
	}
	_, ok := d.words[strings.ToLower(word)]
	return ok
}

// Len returns the number of distinct words.
func (d *Dictionary) Len() int {
	if d == nil {
		return 0
	}
	return len(d.words)
}
