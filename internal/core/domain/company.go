// Package domain defines the core domain models for FreteHub.
package domain

import "strings"

// Company document types.
const (
	DocumentCNPJ = "cnpj"
	DocumentCPF  = "cpf"
)

// Phone kinds.
const (
	PhoneLandline = "landline"
	PhoneMobile   = "mobile"
)

// CompanyDocument is the tax identifier of a company.
type CompanyDocument struct {
	Type  string `json:"type"`
	Value string `json:"value"`
}

// CompanyPhone is one contact number of a company.
type CompanyPhone struct {
	Kind    string `json:"type"`
	Country string `json:"country"`
	Number  string `json:"number"`
}

// CompanyAddress is the postal address of a company.
type CompanyAddress struct {
	ZipCode          string `json:"zipCode"`
	Street           string `json:"street"`
	Number           string `json:"number"`
	Complement       string `json:"complement,omitempty"`
	District         string `json:"district"`
	City             string `json:"city"`
	State            string `json:"state"`
	AddressFormatted string `json:"addressFormatted"`
}

// Format renders the single-line address, e.g.
// "Rua Augusta, 1500 - Sala 12 - Consolação, São Paulo - SP, 01304-001".
// Empty parts are skipped.
func (a CompanyAddress) Format() string {
	var b strings.Builder

	line := joinNonEmpty(", ", strings.TrimSpace(a.Street), strings.TrimSpace(a.Number))
	b.WriteString(line)

	for _, part := range []string{a.Complement, a.District} {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		if b.Len() > 0 {
			b.WriteString(" - ")
		}
		b.WriteString(part)
	}

	cityState := joinNonEmpty(" - ", strings.TrimSpace(a.City), strings.ToUpper(strings.TrimSpace(a.State)))
	tail := joinNonEmpty(", ", cityState, strings.TrimSpace(a.ZipCode))
	if tail != "" {
		if b.Len() > 0 {
			b.WriteString(", ")
		}
		b.WriteString(tail)
	}

	return b.String()
}

// CompanyRegistration is the request body of the company-details form.
type CompanyRegistration struct {
	CompanyName     string          `json:"companyName"`
	CompanyDocument CompanyDocument `json:"companyDocument"`
	CompanyPhones   []CompanyPhone  `json:"companyPhones"`
	CompanyAddress  CompanyAddress  `json:"companyAddress"`
}

func joinNonEmpty(sep string, parts ...string) string {
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p != "" {
			out = append(out, p)
		}
	}
	return strings.Join(out, sep)
}
