package config

import (
	"errors"
	"fmt"
	"strings"
)

// Validate checks cross-field constraints after normalization.
func (c *Config) Validate() error {
	var problems []string

	if strings.TrimSpace(c.Paths.DataDir) == "" {
		problems = append(problems, "paths.data_dir must not be empty")
	}
	if strings.TrimSpace(c.Paths.LogDir) == "" {
		problems = append(problems, "paths.log_dir must not be empty")
	}
	if c.Kakao.PageSize > 15 {
		problems = append(problems, "kakao.page_size must be at most 15")
	}
	if c.Filter.Threshold <= 0 {
		problems = append(problems, "filter.threshold must be positive")
	}
	if c.Match.ReviewThreshold > c.Match.ApproveThreshold {
		problems = append(problems, "match.review_threshold must not exceed match.approve_threshold")
	}
	switch c.Logging.Format {
	case "console", "json":
	default:
		problems = append(problems, fmt.Sprintf("logging.format %q is not supported (console, json)", c.Logging.Format))
	}

	if len(problems) == 0 {
		return nil
	}
	return errors.New("invalid configuration: " + strings.Join(problems, "; "))
}
