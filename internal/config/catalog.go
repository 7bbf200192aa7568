package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"pool-calc-backend/internal/domain"
)

// LoadCatalog читает каталог опций из YAML-файла и проверяет его
func LoadCatalog(filename string) (*domain.PoolCatalog, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, err
	}

	var c domain.PoolCatalog
	if err := yaml.Unmarshal(data, &c); err != nil {
		return nil, fmt.Errorf("parse catalog %s: %w", filename, err)
	}
	if len(c.Steps) == 0 {
		c.Steps = domain.DefaultWizardSteps()
	}
	if err := c.Check(); err != nil {
		return nil, fmt.Errorf("invalid catalog %s: %w", filename, err)
	}
	return &c, nil
}

// LoadCatalogOrDefault — файл, если задан, иначе стартовый каталог
func LoadCatalogOrDefault(filename string) (*domain.PoolCatalog, error) {
	if filename == "" {
		return domain.NewDefaultPoolCatalog(), nil
	}
	return LoadCatalog(filename)
}

// SaveCatalog сохраняет каталог в YAML с заголовком-подсказкой
func SaveCatalog(c *domain.PoolCatalog, filename string) error {
	data, err := MarshalCatalog(c)
	if err != nil {
		return err
	}
	return os.WriteFile(filename, data, 0644)
}

// MarshalCatalog — YAML-представление каталога
func MarshalCatalog(c *domain.PoolCatalog) ([]byte, error) {
	data, err := yaml.Marshal(c)
	if err != nil {
		return nil, err
	}

	header := []byte(`# Pool estimate catalog
#
# kind: single = one option (radio), multi = any number (checkboxes)
# price: base price for poolModel, size multiplier for poolSize, USD for the rest.
#        Unreadable prices count as 0 (multiplier as 1).

`)
	return append(header, data...), nil
}
