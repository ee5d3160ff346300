package model

// BibliographicKey is the DBLP person key derived from a display name
type BibliographicKey struct {
	Surname        string
	GivenName      string
	Disambiguation int // 0 when the name carries no disambiguation number
	URL            string
}
