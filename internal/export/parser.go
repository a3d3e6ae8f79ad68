package export

import (
	"encoding/base64"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/bytedance/sonic"
)

// Parser deserializes an exported file back into a Report.
type Parser interface {
	Parse(data []byte) (*Report, error)
}

// JSONParser parses a JSON export.
type JSONParser struct{}

func (JSONParser) Parse(data []byte) (*Report, error) {
	var r Report
	if err := sonic.Unmarshal(data, &r); err != nil {
		return nil, fmt.Errorf("failed to parse JSON export: %w", err)
	}
	return &r, nil
}

// MarkdownParser extracts the embedded base64 JSON payload from a Markdown
// export.
type MarkdownParser struct{}

func (MarkdownParser) Parse(data []byte) (*Report, error) {
	content := string(data)

	if !strings.Contains(content, versionSentinel) {
		return nil, fmt.Errorf("not a valid hollowlog export: missing version sentinel")
	}

	start := strings.Index(content, dataPrefix)
	if start == -1 {
		return nil, fmt.Errorf("not a valid hollowlog export: missing data payload")
	}
	start += len(dataPrefix)
	end := strings.Index(content[start:], dataSuffix)
	if end == -1 {
		return nil, fmt.Errorf("not a valid hollowlog export: malformed data payload")
	}

	jsonBytes, err := base64.StdEncoding.DecodeString(content[start : start+end])
	if err != nil {
		return nil, fmt.Errorf("not a valid hollowlog export: corrupted base64 payload: %w", err)
	}

	var r Report
	if err := sonic.Unmarshal(jsonBytes, &r); err != nil {
		return nil, fmt.Errorf("not a valid hollowlog export: failed to parse embedded JSON: %w", err)
	}
	return &r, nil
}

// ParserFor picks a parser from the file extension.
func ParserFor(path string) Parser {
	if strings.EqualFold(filepath.Ext(path), ".json") {
		return JSONParser{}
	}
	return MarkdownParser{}
}
