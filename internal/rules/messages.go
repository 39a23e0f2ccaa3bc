package rules

import (
	"golang.org/x/text/language"
)

// Catalog resolves the description reported for a rule's changes, by
// locale. Rules without a message fall back to their Doc.
type Catalog struct {
	tags    []language.Tag
	tables  []map[string]string
	matcher language.Matcher
}

// builtinMessages are the default descriptions, by locale then rule.
var builtinMessages = map[string]map[string]string{
	"en": {
		"peremptory-condition":                 "Removed a condition that always has the same value",
		"remove-useless-try":                   "Removed a try statement whose body cannot throw",
		"remove-empty-statement":               "Removed an empty statement",
		"break-rather-than-passive-iterations": "Stopped the loop once its result is known",
		"do-while-rather-than-while":           "Replaced a while loop entered at least once by a do/while loop",
		"opposite-condition":                   "Reordered the branches of an if statement to test the simpler condition",
		"double-negation":                      "Removed a double negation",
		"invert-equals":                        "Called equals() on the constant to avoid a NullPointerException",
		"string":                               "Removed a useless String conversion or call",
		"is-empty-rather-than-length":          "Replaced a length comparison with isEmpty()",
		"string-builder":                       "Appended the operands of a String operation directly",
		"assertj":                              "Used a dedicated AssertJ assertion",
	},
	"fr": {
		"peremptory-condition":                 "Suppression d'une condition toujours de même valeur",
		"remove-useless-try":                   "Suppression d'un bloc try qui ne peut rien lever",
		"remove-empty-statement":               "Suppression d'une instruction vide",
		"break-rather-than-passive-iterations": "Arrêt de la boucle dès que son résultat est connu",
		"do-while-rather-than-while":           "Remplacement d'une boucle while toujours exécutée par une boucle do/while",
		"opposite-condition":                   "Réordonnancement des branches d'un if pour tester la condition la plus simple",
		"double-negation":                      "Suppression d'une double négation",
		"invert-equals":                        "Appel de equals() sur la constante pour éviter une NullPointerException",
		"string":                               "Suppression d'une conversion ou d'un appel String inutile",
		"is-empty-rather-than-length":          "Remplacement d'une comparaison de longueur par isEmpty()",
		"string-builder":                       "Ajout direct des opérandes d'une opération sur String",
		"assertj":                              "Utilisation d'une assertion AssertJ dédiée",
	},
}

// NewCatalog builds a catalog from the built-in messages overlaid with
// overrides, keyed by locale then rule name. English is the fallback.
func NewCatalog(overrides map[string]map[string]string) *Catalog {
	merged := make(map[string]map[string]string)
	for _, src := range []map[string]map[string]string{builtinMessages, overrides} {
		for locale, table := range src {
			if merged[locale] == nil {
				merged[locale] = make(map[string]string)
			}
			for name, msg := range table {
				merged[locale][name] = msg
			}
		}
	}

	c := &Catalog{}
	add := func(locale string) {
		tag, err := language.Parse(locale)
		if err != nil {
			return
		}
		c.tags = append(c.tags, tag)
		c.tables = append(c.tables, merged[locale])
	}
	// the first tag is the matcher's fallback
	add("en")
	for locale := range merged {
		if locale != "en" {
			add(locale)
		}
	}
	c.matcher = language.NewMatcher(c.tags)
	return c
}

// Message returns the description of r's changes for locale.
func (c *Catalog) Message(r Rule, locale string) string {
	if c != nil && len(c.tags) > 0 {
		_, idx := language.MatchStrings(c.matcher, locale)
		if msg, ok := c.tables[idx][r.Name()]; ok {
			return msg
		}
		if msg, ok := c.tables[0][r.Name()]; ok {
			return msg
		}
	}
	return r.Doc()
}
