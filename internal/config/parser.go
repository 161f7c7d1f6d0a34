package config

import (
	"fmt"
	"os"
	"regexp"

	"gopkg.in/yaml.v3"

	snoderrors "github.com/snodectl/snodectl/pkg/errors"
)

var yamlLineRegex = regexp.MustCompile(`line (\d+)`)

// ParseBatchFile loads a batch document from disk, validates it, and returns
// the resulting model.
func ParseBatchFile(path string) (*Batch, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, snoderrors.NewParseError(path, 0, err)
	}

	var batch Batch
	if err := yaml.Unmarshal(data, &batch); err != nil {
		return nil, snoderrors.NewParseError(path, extractLine(err), err)
	}

	if err := ValidateBatch(&batch); err != nil {
		return nil, err
	}

	return &batch, nil
}

func extractLine(err error) int {
	if err == nil {
		return 0
	}

	matches := yamlLineRegex.FindStringSubmatch(err.Error())
	if len(matches) != 2 {
		return 0
	}

	var line int
	_, scanErr := fmt.Sscanf(matches[1], "%d", &line)
	if scanErr != nil {
		return 0
	}

	return line
}
