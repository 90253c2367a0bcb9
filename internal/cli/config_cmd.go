// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// config_cmd.go - "slashdrop config": inspect and edit the config file.

package cli

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/BurntSushi/toml"

	"github.com/jeranaias/slashdrop/internal/config"
)

// HandleConfig dispatches the config subcommands. With no subcommand it
// behaves like "config show".
func HandleConfig(args Args, cfg *config.Config, w io.Writer) error {
	p := commandFlags(&args)
	sub := strings.ToLower(p.Subcommand())

	return OutputJSON(w, args.JSON, CmdConfig.String(), func() (interface{}, error) {
		var (
			data *ConfigData
			err  error
		)
		switch sub {
		case "", "show":
			data, err = configShow(cfg, args, w)
		case "path":
			data, err = configPath(args, w)
		case "get":
			data, err = configGet(cfg, p.Positional(1), args, w)
		case "set":
			if p.PositionalCount() < 3 {
				return nil, fmt.Errorf("usage: slashdrop config set <key> <value> (keys: %s)",
					strings.Join(config.GetAllKeys(), ", "))
			}
			data, err = configSet(p.Positional(1), JoinPositionalArgs(p, 2), args, w)
		default:
			return nil, fmt.Errorf("unknown config subcommand %q (show, path, get, set)", sub)
		}
		return data, err
	})
}

func configShow(cfg *config.Config, args Args, w io.Writer) (*ConfigData, error) {
	if !args.JSON {
		if err := toml.NewEncoder(w).Encode(cfg); err != nil {
			return nil, fmt.Errorf("failed to encode config: %w", err)
		}
	}
	return &ConfigData{Value: cfg}, nil
}

func configPath(args Args, w io.Writer) (*ConfigData, error) {
	path := args.ConfigPath
	if path == "" {
		var err error
		if path, err = config.ConfigPathTOML(); err != nil {
			return nil, err
		}
	}
	if !args.JSON {
		fmt.Fprintln(w, path)
	}
	return &ConfigData{Path: path}, nil
}

func configGet(cfg *config.Config, key string, args Args, w io.Writer) (*ConfigData, error) {
	if key == "" {
		return nil, fmt.Errorf("usage: slashdrop config get <key>")
	}
	val, err := cfg.Get(key)
	if err != nil {
		return nil, err
	}
	if !args.JSON {
		fmt.Fprintln(w, val)
	}
	return &ConfigData{Key: key, Value: val}, nil
}

// configSet edits the file's own contents, not the effective config, so
// environment overrides are never written back. The file is left untouched
// if the new value does not validate.
func configSet(key, value string, args Args, w io.Writer) (*ConfigData, error) {
	path, err := editPath(args.ConfigPath)
	if err != nil {
		return nil, err
	}
	stored, err := loadStored(path)
	if err != nil {
		return nil, err
	}

	typed, err := typedValue(stored, key, value)
	if err != nil {
		return nil, err
	}
	if err := stored.Set(key, typed); err != nil {
		return nil, err
	}
	if err := stored.Validate(); err != nil {
		return nil, fmt.Errorf("rejected %s=%q: %w", key, value, err)
	}

	if strings.HasSuffix(path, ".json") {
		err = config.SaveJSON(stored, path)
	} else {
		err = config.SaveTOML(stored, path)
	}
	if err != nil {
		return nil, err
	}
	if !args.Quiet && !args.JSON {
		fmt.Fprintf(w, "%s %s = %s (%s)\n", RenderStatus("ok"), key, value, DimStyle.Render(path))
	}

	got, _ := stored.Get(key)
	return &ConfigData{Path: path, Key: key, Value: got}, nil
}

// typedValue parses value for boolean keys so a typo is rejected instead
// of being stored as false.
func typedValue(cfg *config.Config, key, value string) (interface{}, error) {
	cur, err := cfg.Get(key)
	if err != nil {
		return nil, err
	}
	if _, isBool := cur.(bool); !isBool {
		return value, nil
	}
	b, err := ParseBoolString(value)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", key, err)
	}
	return b, nil
}

// editPath is the file config set writes: --config when given, otherwise
// the JSON file if that is the only one present, otherwise the TOML file.
func editPath(override string) (string, error) {
	if override != "" {
		return override, nil
	}
	tomlPath, err := config.ConfigPathTOML()
	if err != nil {
		return "", err
	}
	if _, err := os.Stat(tomlPath); err == nil {
		return tomlPath, nil
	}
	if jsonPath, err := config.ConfigPathJSON(); err == nil {
		if _, err := os.Stat(jsonPath); err == nil {
			return jsonPath, nil
		}
	}
	return tomlPath, nil
}

// loadStored reads path over the defaults without environment overrides.
// A missing file yields the defaults.
func loadStored(path string) (*config.Config, error) {
	cfg := config.Default()
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return cfg, nil
	}
	if strings.HasSuffix(path, ".json") {
		return cfg, config.LoadJSON(cfg, path)
	}
	return cfg, config.LoadTOML(cfg, path)
}
