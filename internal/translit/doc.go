// Package translit prepares user text for the speech backends. It collapses
// newlines and converts Uzbek Latin orthography into Uzbek Cyrillic when the
// input carries no Cyrillic letters at all. The decision is all-or-nothing:
// a single Cyrillic character leaves the whole text untouched.
package translit
