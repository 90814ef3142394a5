package config

import (
	"encoding/json"
	"errors"
	"io"
	"os"

	"github.com/BurntSushi/toml"
	"github.com/ItsNotGoodName/x-wmstate/internal/core"
	"gopkg.in/yaml.v3"
)

type decoder func(r io.Reader, cfg *Config) error

type encoder func(w io.Writer, cfg Config) error

// file implements Driver for one encoding.
type file struct {
	filePath string
	decode   decoder
	encode   encoder
}

func (f file) Exists() (bool, error) {
	return core.FileExists(f.filePath)
}

func (f file) Read() (Config, error) {
	r, err := os.Open(f.filePath)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return defaultConfig, nil
		}
		return Config{}, err
	}
	defer r.Close()

	// Keys missing from the file keep their default.
	cfg := defaultConfig
	if err := f.decode(r, &cfg); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (f file) Write(cfg Config) error {
	filePathTmp := f.filePath + ".tmp"
	w, err := os.OpenFile(filePathTmp, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0600)
	if err != nil {
		return err
	}

	if err := f.encode(w, cfg); err != nil {
		w.Close()
		return err
	}
	if err := w.Close(); err != nil {
		return err
	}

	return os.Rename(filePathTmp, f.filePath)
}

func NewYAML(filePath string) Driver {
	return file{
		filePath: filePath,
		decode: func(r io.Reader, cfg *Config) error {
			err := yaml.NewDecoder(r).Decode(cfg)
			if errors.Is(err, io.EOF) {
				return nil
			}
			return err
		},
		encode: func(w io.Writer, cfg Config) error {
			return yaml.NewEncoder(w).Encode(cfg)
		},
	}
}

func NewJSON(filePath string) Driver {
	return file{
		filePath: filePath,
		decode: func(r io.Reader, cfg *Config) error {
			return json.NewDecoder(r).Decode(cfg)
		},
		encode: func(w io.Writer, cfg Config) error {
			enc := json.NewEncoder(w)
			enc.SetIndent("", "  ")
			return enc.Encode(cfg)
		},
	}
}

func NewTOML(filePath string) Driver {
	return file{
		filePath: filePath,
		decode: func(r io.Reader, cfg *Config) error {
			_, err := toml.NewDecoder(r).Decode(cfg)
			return err
		},
		encode: func(w io.Writer, cfg Config) error {
			return toml.NewEncoder(w).Encode(cfg)
		},
	}
}
