// Package dblp converts display names into DBLP person keys.
package dblp

import (
	"strconv"
	"strings"

	"github.com/m-mizutani/rankguard/pkg/domain/model"
	"golang.org/x/text/unicode/norm"
)

// PersonBaseURL is the prefix of DBLP person pages
const PersonBaseURL = "https://dblp.org/pers/hd"

// suffixTokens are name suffixes DBLP glues to the surname with an underscore
var suffixTokens = map[string]struct{}{
	"Jr.": {},
	"II":  {},
	"III": {},
}

// DBLP escapes these symbols as "="
var symbolEscaper = strings.NewReplacer("'", "=", "-", "=", ".", "=")

// HTML-entity style encodings of diacritics collapse into "=" as well
var entityEscaper = strings.NewReplacer("&", "=", ";", "=")

// Translate maps a display name such as "Emery D. Berger" to its DBLP key,
// e.g. https://dblp.org/pers/hd/b/Berger:Emery_D=
//
// A trailing positive integer token is a disambiguation number and becomes
// part of the surname ("Jane Smith 2" -> "Smith_2"). Translate never fails;
// an empty or single-token name yields an empty given-name segment.
func Translate(name string) model.BibliographicKey {
	name = norm.NFC.String(name)
	name = glueSuffixes(name)
	name = symbolEscaper.Replace(name)
	name = quote(name, "= &;", false)
	name = entityEscaper.Replace(name)

	tokens := strings.Split(name, " ")
	surname := tokens[len(tokens)-1]

	var disambiguation int
	if n, ok := disambiguationNumber(surname); ok && len(tokens) > 1 {
		disambiguation = n
		tokens = tokens[:len(tokens)-1]
		surname = tokens[len(tokens)-1] + "_" + surname
	}

	given := strings.Join(tokens[:len(tokens)-1], " ")
	given = strings.ReplaceAll(given, " ", "_")
	given = strings.ReplaceAll(given, "-", "=")
	given = quote(given, "=", true)

	return model.BibliographicKey{
		Surname:        surname,
		GivenName:      given,
		Disambiguation: disambiguation,
		URL:            PersonBaseURL + "/" + initial(surname) + "/" + surname + ":" + given,
	}
}

// disambiguationNumber reports whether token is a positive integer. A
// non-numeric token is the ordinary case and not an error.
func disambiguationNumber(token string) (int, bool) {
	n, err := strconv.Atoi(token)
	if err != nil || n <= 0 {
		return 0, false
	}
	return n, true
}

func glueSuffixes(name string) string {
	tokens := strings.Split(name, " ")
	glued := make([]string, 0, len(tokens))
	for _, tok := range tokens {
		if _, ok := suffixTokens[tok]; ok && len(glued) > 0 {
			glued[len(glued)-1] += "_" + tok
			continue
		}
		glued = append(glued, tok)
	}
	return strings.Join(glued, " ")
}

func initial(surname string) string {
	if surname == "" {
		return ""
	}
	return strings.ToLower(surname[:1])
}
