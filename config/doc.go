// Package config loads the settings of the editor service.
//
// Settings live in a single YAML document. Each component reads its own
// section through Provider, which fetches the raw bytes with a DataFetcher,
// hands them to a Parser together with a colon-separated path, then applies
// SetDefaults and Validate when the target implements Defaulter or Validator.
//
// Sections used by the editor:
//
//	logging            logging.LoggerConfig
//	editor:documents   store.Config
//	editor:export      export.Config
//	editor:http        api.Config
//	editor:listener    listener.Config
//
// OptionalProvider tolerates a missing section, so a service started without
// a configuration file (StaticFetcher with empty data) runs on defaults.
//
// Usage:
//
//	fetcher, err := file.NewFetcher("confedit.yaml")()
//	if err != nil {
//	    return err
//	}
//	cfg, err := config.Provider(&export.Config{}, "editor:export")(yaml.NewParser(), fetcher)
package config
