package config

// GetDefaults returns the default configuration values applied before any
// config file or environment override.
func GetDefaults() map[string]interface{} {
	return map[string]interface{}{
		"npm_cmd":        "npm",
		"npx_cmd":        "npx",
		"bootstrap_args": []string{"run", "bootstrap"},
		"max_retries":    1,
		"state_dir":      "~/.qaflow",
		"history_max":    200,
		"show_progress":  true,
		"timeout":        0,
	}
}
