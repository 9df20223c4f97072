//revive:disable-next-line:var-naming // legacy package name widely used across the project
package model

import "strings"

// Society is one of the congregations in the circuit. The backend validates the key.
type Society string

const (
	SocietyEmbalenhle Society = "embalenhle"
	SocietySecunda    Society = "secunda"
	SocietyEvander    Society = "evander"
	SocietyKMT        Society = "kmt"
	SocietyEbenezer   Society = "ebenezer"
	SocietyEmzinoni   Society = "emzinoni"
)

var societyNames = map[Society]string{
	SocietyEmbalenhle: "Embalenhle",
	SocietySecunda:    "Secunda",
	SocietyEvander:    "Evander",
	SocietyKMT:        "KMT",
	SocietyEbenezer:   "Ebenezer",
	SocietyEmzinoni:   "eMzinoni",
}

// Societies returns the circuit's societies in display order.
func Societies() []Society {
	return []Society{
		SocietyEmbalenhle,
		SocietySecunda,
		SocietyEvander,
		SocietyKMT,
		SocietyEbenezer,
		SocietyEmzinoni,
	}
}

// Valid reports whether s is a known society key.
func (s Society) Valid() bool {
	_, ok := societyNames[s]
	return ok
}

// Name returns the display name, or the raw key when unknown.
func (s Society) Name() string {
	if n, ok := societyNames[s]; ok {
		return n
	}
	return string(s)
}

// ParseSociety normalizes a society key and reports whether it is supported.
func ParseSociety(value string) (Society, bool) {
	s := Society(strings.ToLower(strings.TrimSpace(value)))
	if s.Valid() {
		return s, true
	}
	return "", false
}
