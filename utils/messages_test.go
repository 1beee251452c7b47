package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLocalizedMessage(t *testing.T) {
	assert.Equal(t, "You reached a new level!", LocalizedMessage("en-US", "level_up"))
	assert.Equal(t, "¡Logro desbloqueado!", LocalizedMessage("es-MX,es;q=0.9", "achievement_unlocked"))
	assert.Equal(t, "Nicht genug Münzen.", LocalizedMessage("de", "insufficient_coins"))
	assert.Equal(t, "Recompensa do desafio resgatada!", LocalizedMessage("pt-BR", "challenge_claimed"))
}

func TestLocalizedMessage_Fallbacks(t *testing.T) {
	// Unknown language falls back to English.
	assert.Equal(t, "Title equipped!", LocalizedMessage("xx-YY", "title_equipped"))
	// Empty header falls back to English.
	assert.Equal(t, "Title equipped!", LocalizedMessage("", "title_equipped"))
	// Unknown key falls back to the English table (empty string).
	assert.Equal(t, "", LocalizedMessage("en", "no_such_key"))
}
