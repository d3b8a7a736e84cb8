package cliconfig

import "os"

// ApplyEnvConfig applies DBGCAST_* environment variables onto cfg.
// Environment overrides the config file but is overridden by explicitly
// set flags.
func ApplyEnvConfig(cfg *Config, changed map[string]bool) error {
	s := newConfigSetter(changed)

	s.setString("address", os.Getenv("DBGCAST_ADDRESS"), &cfg.Address)
	if err := s.setIntFromString("port", os.Getenv("DBGCAST_PORT"), &cfg.Port); err != nil {
		return err
	}
	if err := s.setIntFromString("max-payload", os.Getenv("DBGCAST_MAX_PAYLOAD"), &cfg.MaxPayload); err != nil {
		return err
	}
	s.setBoolFromString("gzip", os.Getenv("DBGCAST_ACCEPT_GZIP"), &cfg.AcceptGzip)
	s.setString("log-level", os.Getenv("DBGCAST_LOG_LEVEL"), &cfg.LogLevel)
	s.setBoolFromString("pretty", os.Getenv("DBGCAST_PRETTY"), &cfg.Pretty)

	return nil
}
