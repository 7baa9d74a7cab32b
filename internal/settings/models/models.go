// Package models holds system settings: free-form values keyed by name.
package models

import (
	"time"

	"registrar/pkg/platform/patch"
)

type Setting struct {
	SettingKey   string    `json:"settingKey"`
	SettingValue string    `json:"settingValue"`
	Description  *string   `json:"description"`
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`
}

type SettingRequest struct {
	SettingKey   patch.Field[string] `json:"settingKey"`
	SettingValue patch.Field[string] `json:"settingValue"`
	Description  patch.Field[string] `json:"description"`
}
