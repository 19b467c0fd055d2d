package config

import "github.com/yohamta/donburi/ecs"

// Default is the ECS layer every entity lives on.
const Default ecs.LayerID = 0

// Version is checked on join so a stale client fails fast instead of
// misdecoding attributes.
const Version = "0.3.0"

// ServerConfig contains the tunable server parameters. Values of zero fall
// back to the defaults below when loaded from a settings file.
type ServerConfig struct {
	Port     int    `yaml:"port"`
	TickRate int    `yaml:"tick_rate"`
	Name     string `yaml:"name"`
	Demo     bool   `yaml:"demo"`
}

// Server is the global server configuration.
var Server ServerConfig

func init() {
	Server = DefaultServer()
}

// DefaultServer returns the built-in server configuration.
func DefaultServer() ServerConfig {
	return ServerConfig{
		Port:     7777,
		TickRate: 20,
		Name:     "animsync",
		Demo:     true,
	}
}
