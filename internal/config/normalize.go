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
	if c.Seed.CSVPath != "" {
		if c.Seed.CSVPath, err = expandPath(c.Seed.CSVPath); err != nil {
			return err
		}
	}

	c.Server.Bind = strings.TrimSpace(c.Server.Bind)
	c.Layout.Style = strings.ToLower(strings.TrimSpace(c.Layout.Style))
	c.Logging.Format = strings.ToLower(strings.TrimSpace(c.Logging.Format))
	c.Logging.Level = strings.ToLower(strings.TrimSpace(c.Logging.Level))
	return nil
}
