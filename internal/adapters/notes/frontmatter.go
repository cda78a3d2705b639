package notes

import (
	"bytes"
	"errors"
	"fmt"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"
)

var (
	ErrUnterminatedFrontmatter = errors.New("frontmatter is not closed")
)

const (
	yamlFence = "---"
	tomlFence = "+++"
)

// ParseFrontmatter extracts the property block at the top of a note. YAML
// is fenced by "---" lines and TOML by "+++" lines. A note without a block
// has no properties.
func ParseFrontmatter(content []byte) (map[string]any, error) {
	content = bytes.TrimPrefix(content, []byte("\xef\xbb\xbf"))
	content = bytes.ReplaceAll(content, []byte("\r\n"), []byte("\n"))

	firstLine, rest, _ := bytes.Cut(content, []byte("\n"))
	fence := string(bytes.TrimRight(firstLine, " \t"))
	if fence != yamlFence && fence != tomlFence {
		return map[string]any{}, nil
	}

	block, ok := closedBlock(rest, fence)
	if !ok {
		return nil, ErrUnterminatedFrontmatter
	}

	props := map[string]any{}
	switch fence {
	case yamlFence:
		if err := yaml.Unmarshal(block, &props); err != nil {
			return nil, fmt.Errorf("parse yaml frontmatter: %w", err)
		}
	case tomlFence:
		if err := toml.Unmarshal(block, &props); err != nil {
			return nil, fmt.Errorf("parse toml frontmatter: %w", err)
		}
	}

	// an empty yaml document decodes to nil
	if props == nil {
		props = map[string]any{}
	}
	return props, nil
}

func closedBlock(rest []byte, fence string) ([]byte, bool) {
	offset := 0
	for offset <= len(rest) {
		line, _, found := bytes.Cut(rest[offset:], []byte("\n"))
		if string(bytes.TrimRight(line, " \t")) == fence {
			return rest[:offset], true
		}
		if !found {
			break
		}
		offset += len(line) + 1
	}
	return nil, false
}
