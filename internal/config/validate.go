package config

import (
	"errors"
	"fmt"
	"strings"
)

// Validate ensures the configuration is usable.
func (c *Config) Validate() error {
	if err := c.validatePaths(); err != nil {
		return err
	}
	if err := c.validateMatching(); err != nil {
		return err
	}
	if err := c.validateInventory(); err != nil {
		return err
	}
	return nil
}

func (c *Config) validatePaths() error {
	if strings.TrimSpace(c.Paths.CatalogDB) == "" {
		return errors.New("paths.catalog_db must be set (or export ALBUMCHECK_CATALOG_DB)")
	}
	if strings.TrimSpace(c.Paths.InventoryFile) == "" {
		return errors.New("paths.inventory_file must be set (or export ALBUMCHECK_INVENTORY_FILE)")
	}
	return nil
}

func (c *Config) validateMatching() error {
	if c.Matching.FuzzyThreshold < 0 || c.Matching.FuzzyThreshold > 100 {
		return fmt.Errorf("matching.fuzzy_threshold must be between 0 and 100, got %d", c.Matching.FuzzyThreshold)
	}
	return nil
}

func (c *Config) validateInventory() error {
	if err := ensurePositiveMap(map[string]int{
		"inventory.stabilization_timeout": c.Inventory.StabilizationTimeout,
		"inventory.poll_interval_ms":      c.Inventory.PollIntervalMS,
	}); err != nil {
		return err
	}
	switch c.Inventory.Trigger {
	case TriggerCommand:
		if len(c.Inventory.TriggerCommand) == 0 {
			return errors.New("inventory.trigger_command must be set when inventory.trigger is \"command\"")
		}
	case TriggerFolders:
		if strings.TrimSpace(c.Inventory.MusicRoot) == "" {
			return errors.New("inventory.music_root must be set when inventory.trigger is \"folders\"")
		}
	case TriggerNone:
	default:
		return fmt.Errorf("inventory.trigger: unsupported value %q (want command, folders, or none)", c.Inventory.Trigger)
	}
	return nil
}

func ensurePositiveMap(values map[string]int) error {
	for key, value := range values {
		if value <= 0 {
			return fmt.Errorf("%s must be positive", key)
		}
	}
	return nil
}
