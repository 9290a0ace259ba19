package utils

import (
	"net/mail"
	"strings"
)

// IsValidEmail valide la syntaxe d'une adresse. mail.ParseAddress accepte
// les adresses sans domaine pointé ("a@b") ; on exige en plus un point
// dans le domaine.
func IsValidEmail(email string) bool {
	addr, err := mail.ParseAddress(email)
	if err != nil || addr.Address != email {
		return false
	}
	at := strings.LastIndex(email, "@")
	return at > 0 && strings.Contains(email[at+1:], ".")
}
