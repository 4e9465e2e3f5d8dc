package config

import "strings"

func (c *Config) normalize() error {
	var err error
	if c.Paths.DataDir, err = expandPath(c.Paths.DataDir); err != nil {
		return err
	}
	if c.Paths.LogDir, err = expandPath(c.Paths.LogDir); err != nil {
		return err
	}
	if strings.TrimSpace(c.Paths.FallbackFile) != "" {
		if c.Paths.FallbackFile, err = expandPath(c.Paths.FallbackFile); err != nil {
			return err
		}
	}
	if strings.TrimSpace(c.Paths.LexiconFile) != "" {
		if c.Paths.LexiconFile, err = expandPath(c.Paths.LexiconFile); err != nil {
			return err
		}
	}

	c.YouTube.APIKey = strings.TrimSpace(c.YouTube.APIKey)
	c.YouTube.BaseURL = strings.TrimRight(strings.TrimSpace(c.YouTube.BaseURL), "/")
	c.Kakao.APIKey = strings.TrimSpace(c.Kakao.APIKey)
	c.Kakao.BaseURL = strings.TrimRight(strings.TrimSpace(c.Kakao.BaseURL), "/")

	if c.YouTube.BaseURL == "" {
		c.YouTube.BaseURL = defaultYouTubeBaseURL
	}
	if c.Kakao.BaseURL == "" {
		c.Kakao.BaseURL = defaultKakaoBaseURL
	}
	if c.YouTube.MaxResults <= 0 {
		c.YouTube.MaxResults = defaultYouTubeMax
	}
	if c.Kakao.PageSize <= 0 {
		c.Kakao.PageSize = defaultKakaoPageSize
	}
	if c.YouTube.TimeoutSeconds <= 0 {
		c.YouTube.TimeoutSeconds = defaultTimeoutSeconds
	}
	if c.Kakao.TimeoutSeconds <= 0 {
		c.Kakao.TimeoutSeconds = defaultTimeoutSeconds
	}
	if c.Pipeline.DelaySeconds < 0 {
		c.Pipeline.DelaySeconds = 0
	}
	if c.Pipeline.ThumbTimeout <= 0 {
		c.Pipeline.ThumbTimeout = defaultThumbTimeout
	}
	if c.Pipeline.CommentTimeout <= 0 {
		c.Pipeline.CommentTimeout = defaultCommentTimeout
	}
	if c.Notifications.RequestTimeout <= 0 {
		c.Notifications.RequestTimeout = defaultNtfyTimeout
	}

	c.Logging.Format = strings.ToLower(strings.TrimSpace(c.Logging.Format))
	if c.Logging.Format == "" {
		c.Logging.Format = defaultLogFormat
	}
	c.Logging.Level = strings.ToLower(strings.TrimSpace(c.Logging.Level))
	if c.Logging.Level == "" {
		c.Logging.Level = defaultLogLevel
	}
	return nil
}
