package config

import (
	"fmt"
	"os"
	"strings"
)

func (c *Config) normalize() error {
	if err := c.normalizePaths(); err != nil {
		return err
	}
	if err := c.normalizeInventory(); err != nil {
		return err
	}
	c.normalizeLogging()
	return nil
}

func (c *Config) normalizePaths() error {
	if value, ok := os.LookupEnv("ALBUMCHECK_CATALOG_DB"); ok && strings.TrimSpace(value) != "" {
		c.Paths.CatalogDB = strings.TrimSpace(value)
	}
	if value, ok := os.LookupEnv("ALBUMCHECK_INVENTORY_FILE"); ok && strings.TrimSpace(value) != "" {
		c.Paths.InventoryFile = strings.TrimSpace(value)
	}
	if strings.TrimSpace(c.Paths.LogDir) == "" {
		c.Paths.LogDir = defaultLogDir
	}

	var err error
	if c.Paths.CatalogDB, err = expandPath(strings.TrimSpace(c.Paths.CatalogDB)); err != nil {
		return fmt.Errorf("paths.catalog_db: %w", err)
	}
	if c.Paths.InventoryFile, err = expandPath(strings.TrimSpace(c.Paths.InventoryFile)); err != nil {
		return fmt.Errorf("paths.inventory_file: %w", err)
	}
	if c.Paths.LogDir, err = expandPath(strings.TrimSpace(c.Paths.LogDir)); err != nil {
		return fmt.Errorf("paths.log_dir: %w", err)
	}
	return nil
}

func (c *Config) normalizeInventory() error {
	c.Inventory.Trigger = strings.ToLower(strings.TrimSpace(c.Inventory.Trigger))
	if c.Inventory.Trigger == "" {
		c.Inventory.Trigger = defaultTrigger
	}

	argv := make([]string, 0, len(c.Inventory.TriggerCommand))
	for _, arg := range c.Inventory.TriggerCommand {
		if strings.TrimSpace(arg) == "" {
			continue
		}
		argv = append(argv, arg)
	}
	c.Inventory.TriggerCommand = argv

	if strings.TrimSpace(c.Inventory.MusicRoot) != "" {
		root, err := expandPath(strings.TrimSpace(c.Inventory.MusicRoot))
		if err != nil {
			return fmt.Errorf("inventory.music_root: %w", err)
		}
		c.Inventory.MusicRoot = root
	}
	return nil
}

func (c *Config) normalizeLogging() {
	c.Logging.Format = strings.ToLower(strings.TrimSpace(c.Logging.Format))
	switch c.Logging.Format {
	case "", "console":
		c.Logging.Format = "console"
	case "json":
	default:
		c.Logging.Format = "console"
	}
	c.Logging.Level = strings.ToLower(strings.TrimSpace(c.Logging.Level))
	if c.Logging.Level == "" {
		c.Logging.Level = defaultLogLevel
	}
}
