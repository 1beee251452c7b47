// utils/messages.go
package utils

import "golang.org/x/text/language"

// Languages the UI ships translations for; English is the fallback.
var supportedLanguages = []language.Tag{
	language.English,
	language.Spanish,
	language.German,
	language.BrazilianPortuguese,
}

var languageMatcher = language.NewMatcher(supportedLanguages)

var statusMessages = map[language.Tag]map[string]string{
	language.English: {
		"level_up":             "You reached a new level!",
		"achievement_unlocked": "Achievement unlocked!",
		"challenge_claimed":    "Challenge reward claimed!",
		"title_equipped":       "Title equipped!",
		"title_purchased":      "Title purchased!",
		"insufficient_coins":   "Not enough coins.",
		"already_claimed":      "Reward already claimed.",
	},
	language.Spanish: {
		"level_up":             "¡Alcanzaste un nuevo nivel!",
		"achievement_unlocked": "¡Logro desbloqueado!",
		"challenge_claimed":    "¡Recompensa del desafío reclamada!",
		"title_equipped":       "¡Título equipado!",
		"title_purchased":      "¡Título comprado!",
		"insufficient_coins":   "No tienes suficientes monedas.",
		"already_claimed":      "Recompensa ya reclamada.",
	},
	language.German: {
		"level_up":             "Du hast ein neues Level erreicht!",
		"achievement_unlocked": "Erfolg freigeschaltet!",
		"challenge_claimed":    "Challenge-Belohnung abgeholt!",
		"title_equipped":       "Titel ausgerüstet!",
		"title_purchased":      "Titel gekauft!",
		"insufficient_coins":   "Nicht genug Münzen.",
		"already_claimed":      "Belohnung bereits abgeholt.",
	},
	language.BrazilianPortuguese: {
		"level_up":             "Você alcançou um novo nível!",
		"achievement_unlocked": "Conquista desbloqueada!",
		"challenge_claimed":    "Recompensa do desafio resgatada!",
		"title_equipped":       "Título equipado!",
		"title_purchased":      "Título comprado!",
		"insufficient_coins":   "Moedas insuficientes.",
		"already_claimed":      "Recompensa já resgatada.",
	},
}

// LocalizedMessage resolves a status message key against an Accept-Language
// header value, falling back to English for unknown languages or keys.
func LocalizedMessage(acceptLanguage, key string) string {
	_, index := language.MatchStrings(languageMatcher, acceptLanguage)
	if msg, ok := statusMessages[supportedLanguages[index]][key]; ok {
		return msg
	}
	return statusMessages[language.English][key]
}
