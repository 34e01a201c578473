package config

import (
	"fmt"

	"github.com/spf13/viper"
)

// LoadProject reads the project configuration file. The format is
// whatever viper decodes from the file extension (yaml, json, toml).
func LoadProject(path string) (ProjectConfig, error) {
	v := viper.New()
	v.SetConfigFile(path)
	if err := v.ReadInConfig(); err != nil {
		return ProjectConfig{}, fmt.Errorf("failed to read project config %s: %w", path, err)
	}

	return ProjectConfig{
		Version:         v.GetString("version"),
		DevelopmentTeam: v.GetString("bundle.ios.developmentTeam"),
		Frameworks:      v.GetStringSlice("bundle.ios.frameworks"),
		Features:        v.GetStringSlice("bundle.ios.features"),
	}, nil
}
