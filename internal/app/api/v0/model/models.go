package model

// Error is the default JSON error envelope of the API.
type Error struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}
