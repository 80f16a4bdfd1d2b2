package account

import (
	"regexp"
	"strings"

	"github.com/fretehub/fretehub-go/internal/core/domain"
	"github.com/fretehub/fretehub-go/internal/form"
)

// Phone countries accepted by the company form.
const (
	CountryBR = "br"
	CountryUS = "us"
	CountryPT = "pt"
)

// Countries lists the supported phone countries.
var Countries = []string{CountryBR, CountryUS, CountryPT}

// DocumentTypes lists the supported company document types.
var DocumentTypes = []string{domain.DocumentCNPJ, domain.DocumentCPF}

// States lists the Brazilian federative units.
var States = []string{
	"AC", "AL", "AM", "AP", "BA", "CE", "DF", "ES", "GO",
	"MA", "MG", "MS", "MT", "PA", "PB", "PE", "PI", "PR",
	"RJ", "RN", "RO", "RR", "RS", "SC", "SE", "SP", "TO",
}

// Punctuation is optional in every document and phone format.
var (
	cnpjPattern = regexp.MustCompile(`^\d{2}\.?\d{3}\.?\d{3}/?\d{4}-?\d{2}$`)
	cpfPattern  = regexp.MustCompile(`^\d{3}\.?\d{3}\.?\d{3}-?\d{2}$`)
	cepPattern  = regexp.MustCompile(`^\d{5}-?\d{3}$`)
	ufPattern   = regexp.MustCompile(`^(?i:` + strings.Join(States, "|") + `)$`)

	phoneBRPattern  = regexp.MustCompile(`^(\+55\s?)?\(?\d{2}\)?\s?\d{4}-?\d{4}$`)
	mobileBRPattern = regexp.MustCompile(`^(\+55\s?)?\(?\d{2}\)?\s?9\d{4}-?\d{4}$`)
	phoneUSPattern  = regexp.MustCompile(`^(\+1\s?)?\(?\d{3}\)?[\s.-]?\d{3}[\s.-]?\d{4}$`)
	phonePTPattern  = regexp.MustCompile(`^(\+351\s?)?\d{3}\s?\d{3}\s?\d{3}$`)
)

var documentFormats = map[string]form.Format{
	domain.DocumentCNPJ: {Pattern: cnpjPattern, Message: msgCNPJInvalid},
	domain.DocumentCPF:  {Pattern: cpfPattern, Message: msgCPFInvalid},
}

var phoneFormats = map[string]form.Format{
	CountryBR: {Pattern: phoneBRPattern, Message: msgPhoneBR},
	CountryUS: {Pattern: phoneUSPattern, Message: msgPhoneUS},
	CountryPT: {Pattern: phonePTPattern, Message: msgPhonePT},
}

var mobileFormats = map[string]form.Format{
	CountryBR: {Pattern: mobileBRPattern, Message: msgMobileBR},
	CountryUS: {Pattern: phoneUSPattern, Message: msgPhoneUS},
	CountryPT: {Pattern: phonePTPattern, Message: msgPhonePT},
}
