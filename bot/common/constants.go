package common

import "gachabot/domain/entities"

// Discord color constants
const (
	ColorPrimary = 0x5865F2 // Discord blurple
	ColorSuccess = 0x57F287 // Green
	ColorDanger  = 0xED4245 // Red
	ColorWarning = 0xFEE75C // Yellow
	ColorInfo    = 0x3498DB // Blue
	ColorReset   = 0xFF6B35 // Orange, destructive admin results
)

// Rarity colors
const (
	ColorSSR = 0xFFD700
	ColorSR  = 0xA335EE
	ColorUR  = 0x0070DD
	ColorR   = 0x9D9D9D
)

// RarityColor returns the embed color used for a tier
func RarityColor(r entities.Rarity) int {
	switch r {
	case entities.RaritySSR:
		return ColorSSR
	case entities.RaritySR:
		return ColorSR
	case entities.RarityUR:
		return ColorUR
	default:
		return ColorR
	}
}

// UI constants
const (
	MaxEmbedFieldValue = 1024
	MaxEmbedFields     = 25
	PromoMarker        = "⭐"
)
