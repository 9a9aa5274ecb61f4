// Package config manages user-level settings stored at ~/.spektral/config.json.
// It provides functions to load, read, and write configuration keys such as
// the dataset storage folder and the download mirror URL. A missing, unreadable,
// or malformed config file is never an error: readers fall back to defaults.
package config
