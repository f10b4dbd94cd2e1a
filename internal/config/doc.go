// Package config manages application settings.
//
// Settings are stored as JSON, loaded with Load and written with Save. A
// missing settings file is not an error: Load returns the defaults, and a
// partial file only overrides the fields it names.
//
//	settings, err := config.Load(config.DefaultPath())
//	if err != nil {
//	    log.Fatal(err)
//	}
//
// The OAuth token deliberately stays out of the settings file. It is read
// from the YANDEX_MUSIC_TOKEN environment variable (or a .env file in the
// working directory) via LoadToken.
package config
