package config

import (
	"fmt"
	"os"
	"reflect"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

type validator interface {
	IsValid() bool
}

// GetEnv loads .env when present and fills Config from the environment.
// Unset variables fall back to envDefault; a variable with neither is an error.
func GetEnv() (*Config, error) {
	if err := godotenv.Load(); err != nil {
		_ = godotenv.Load("../../.env")
	}

	config := &Config{}
	if err := load(config, os.LookupEnv); err != nil {
		return nil, err
	}
	return config, nil
}

func load(config *Config, lookup func(string) (string, bool)) error {
	v := reflect.ValueOf(config).Elem()
	t := v.Type()

	for i := range v.NumField() {
		field := t.Field(i)
		envTag := field.Tag.Get("env")
		if envTag == "" {
			continue
		}

		value, exists := lookup(envTag)
		if !exists {
			def, hasDefault := field.Tag.Lookup("envDefault")
			if !hasDefault {
				return fmt.Errorf("environment variable %s not set", envTag)
			}
			value = def
		}
		value = strings.TrimSpace(value)

		fv := v.Field(i)
		switch field.Type.Kind() {
		case reflect.String:
			fv.SetString(value)
			if e, ok := fv.Interface().(validator); ok && !e.IsValid() {
				return fmt.Errorf("invalid value for %s: %q", envTag, value)
			}
		case reflect.Int:
			intValue, err := strconv.Atoi(value)
			if err != nil {
				return fmt.Errorf("invalid value for %s: %v", envTag, err)
			}
			fv.SetInt(int64(intValue))
		case reflect.Bool:
			boolValue, err := strconv.ParseBool(value)
			if err != nil {
				return fmt.Errorf("invalid boolean value for %s: %v", envTag, err)
			}
			fv.SetBool(boolValue)
		default:
			return fmt.Errorf("unsupported type %s for %s", field.Type.Kind(), envTag)
		}
	}
	return nil
}
