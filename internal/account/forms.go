package account

import (
	"fmt"
	"sort"
	"strings"

	"github.com/fretehub/fretehub-go/internal/core/domain"
	"github.com/fretehub/fretehub-go/internal/form"
)

// Form names.
const (
	FormLogin    = "login"
	FormRegister = "register"
	FormTrial    = "trial"
	FormCompany  = "company"
)

// API endpoints.
const (
	LoginPath         = "/api/login"
	RegisterPath      = "/api/register"
	NotificationsPath = "/api/notifications"
)

// Navigation targets.
const (
	DashboardPath    = "/dashboard"
	TrialWelcomePath = "/trial/welcome"
)

func emailField() form.Field {
	return form.Field{
		Name:  "email",
		Label: "Email",
		Rules: []form.Rule{form.Required(msgEmailRequired), form.Email(msgEmailInvalid)},
	}
}

func passwordField(minLen int, shortMsg string) form.Field {
	return form.Field{
		Name:   "password",
		Label:  "Password",
		Secret: true,
		Rules:  []form.Rule{form.Required(msgPasswordRequired), form.MinLength(minLen, shortMsg)},
	}
}

// Login is the sign-in form. A server "Internal server error" is shown as
// invalid credentials.
func Login() form.Definition {
	return form.Definition{
		Name:     FormLogin,
		Endpoint: LoginPath,
		Fields: []form.Field{
			emailField(),
			passwordField(6, msgPasswordShort6),
		},
		Response:        form.ResponseEnvelope,
		Success:         form.SuccessLogin,
		DefaultRedirect: DashboardPath,
		RewriteGeneral: map[string]string{
			"Internal server Error": msgInvalidCredentials,
			"Internal server error": msgInvalidCredentials,
		},
	}
}

// Register is the simple registration form. The confirmation and terms
// fields are validated locally and never sent.
func Register() form.Definition {
	return form.Definition{
		Name:     FormRegister,
		Endpoint: RegisterPath,
		Fields: []form.Field{
			emailField(),
			passwordField(6, msgPasswordShort6),
			{
				Name:   "confirmPassword",
				Label:  "Confirm password",
				Secret: true,
				Omit:   true,
				Rules: []form.Rule{
					form.Required(msgConfirmRequired),
					form.Matches("password", msgConfirmMismatch),
				},
			},
			{
				Name:  "terms",
				Label: "Accept the terms of use",
				Kind:  form.KindBool,
				Omit:  true,
				Rules: []form.Rule{form.Accepted(msgTermsRequired)},
			},
		},
		Response:        form.ResponseEnvelope,
		Success:         form.SuccessLogin,
		DefaultRedirect: DashboardPath,
	}
}

// Trial is the free-trial signup form. Success only redirects; the user
// signs in afterwards.
func Trial() form.Definition {
	return form.Definition{
		Name:     FormTrial,
		Endpoint: RegisterPath,
		Fields: []form.Field{
			emailField(),
			{
				Name:  "company",
				Label: "Company",
				Rules: []form.Rule{form.Required(msgCompanyRequired)},
			},
			passwordField(8, msgPasswordShort8),
		},
		Response:        form.ResponseEnvelope,
		Success:         form.SuccessRedirect,
		DefaultRedirect: TrialWelcomePath,
	}
}

// Company is the company-details registration form. Any 2xx status is
// success.
func Company() form.Definition {
	text := func(name, label string, rules ...form.Rule) form.Field {
		return form.Field{Name: name, Label: label, Rules: rules}
	}

	documentType := text("documentType", "Document type",
		form.Required(msgDocTypeRequired),
		form.OneOf(DocumentTypes, msgDocTypeInvalid))
	documentType.Options = DocumentTypes

	phoneCountry := text("phoneCountry", "Phone country",
		form.Required(msgCountryRequired),
		form.OneOf(Countries, msgCountryInvalid))
	phoneCountry.Options = Countries

	state := text("addressState", "State (UF)",
		form.Required(msgStateRequired),
		form.Pattern(ufPattern, msgStateInvalid))
	state.Options = States

	return form.Definition{
		Name:     FormCompany,
		Endpoint: RegisterPath,
		Fields: []form.Field{
			text("companyName", "Company name", form.Required(msgCompanyRequired)),
			documentType,
			text("documentValue", "Document number",
				form.Required(msgDocumentRequired),
				form.PatternBySelector("documentType", documentFormats)),
			phoneCountry,
			text("phone", "Phone",
				form.Required(msgPhoneRequired),
				form.PatternBySelector("phoneCountry", phoneFormats)),
			text("mobile", "Mobile (optional)",
				form.PatternBySelector("phoneCountry", mobileFormats)),
			text("addressZip", "ZIP code",
				form.Required(msgZipRequired),
				form.Pattern(cepPattern, msgZipInvalid)),
			text("addressStreet", "Street", form.Required(msgStreetRequired)),
			text("addressNumber", "Number", form.Required(msgNumberRequired)),
			text("addressComplement", "Complement (optional)"),
			text("addressDistrict", "District", form.Required(msgDistrictRequired)),
			text("addressCity", "City", form.Required(msgCityRequired)),
			state,
		},
		Encode:          EncodeCompany,
		Response:        form.ResponseStatus,
		Success:         form.SuccessRedirect,
		DefaultRedirect: DashboardPath,
		RejectedMessage: msgCompanyRejected,
	}
}

// EncodeCompany builds the structured company registration body. The
// mobile number is sent only when filled in.
func EncodeCompany(v form.Values) any {
	country := v.TrimmedText("phoneCountry")
	phones := []domain.CompanyPhone{{
		Kind:    domain.PhoneLandline,
		Country: country,
		Number:  v.TrimmedText("phone"),
	}}
	if mobile := v.TrimmedText("mobile"); mobile != "" {
		phones = append(phones, domain.CompanyPhone{
			Kind:    domain.PhoneMobile,
			Country: country,
			Number:  mobile,
		})
	}

	addr := domain.CompanyAddress{
		ZipCode:    v.TrimmedText("addressZip"),
		Street:     v.TrimmedText("addressStreet"),
		Number:     v.TrimmedText("addressNumber"),
		Complement: v.TrimmedText("addressComplement"),
		District:   v.TrimmedText("addressDistrict"),
		City:       v.TrimmedText("addressCity"),
		State:      strings.ToUpper(v.TrimmedText("addressState")),
	}
	addr.AddressFormatted = addr.Format()

	return domain.CompanyRegistration{
		CompanyName: v.TrimmedText("companyName"),
		CompanyDocument: domain.CompanyDocument{
			Type:  v.TrimmedText("documentType"),
			Value: v.TrimmedText("documentValue"),
		},
		CompanyPhones:  phones,
		CompanyAddress: addr,
	}
}

var definitions = map[string]func() form.Definition{
	FormLogin:    Login,
	FormRegister: Register,
	FormTrial:    Trial,
	FormCompany:  Company,
}

// Definition returns the named form definition.
func Definition(name string) (form.Definition, error) {
	build, ok := definitions[name]
	if !ok {
		return form.Definition{}, fmt.Errorf("unknown form %q", name)
	}
	return build(), nil
}

// Names lists every form name in sorted order.
func Names() []string {
	names := make([]string, 0, len(definitions))
	for name := range definitions {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
