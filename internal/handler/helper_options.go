package handler

import (
	"net/url"
	"strconv"
)

func intOption(name string, fallback int, options url.Values) int {
	if len(options[name]) == 0 {
		return fallback
	}
	v, err := strconv.Atoi(options[name][0])
	if err != nil {
		return fallback
	}
	return v
}

func boolOption(name string, fallback bool, options url.Values) bool {
	if len(options[name]) == 0 || options[name][0] == "" {
		return fallback
	}
	return options[name][0] == "true"
}
