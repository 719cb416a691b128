package models

// Credential pairs an identity (case-normalized email) with its bearer token.
type Credential struct {
	Identity string
	Token    string
}
