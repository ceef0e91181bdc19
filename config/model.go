package config

import "github.com/mylxsw/go-utils/array"

type Model struct {
	// ID model id, as understood by the upstream API
	ID string `json:"id" yaml:"id"`
	// Name display name
	Name string `json:"name" yaml:"name"`
	// Context max context length in tokens
	Context int `json:"context" yaml:"context"`
}

// DefaultModels the models served when the configuration does not list any
func DefaultModels() []Model {
	return []Model{
		{ID: "moonshot-v1-8k", Name: "Kimi 8K", Context: 8192},
		{ID: "moonshot-v1-32k", Name: "Kimi 32K", Context: 32768},
		{ID: "moonshot-v1-128k", Name: "Kimi 128K", Context: 128000},
	}
}

// ModelIDs returns the ids of all models
func ModelIDs(models []Model) []string {
	return array.Map(models, func(item Model, _ int) string {
		return item.ID
	})
}
