// Package config loads and validates the YAML job configuration. Secrets
// such as the webhook URL are never stored in the file itself; the config
// names an environment variable and the value is resolved at runtime.
package config
