package account

// Validation messages shown next to each field.
const (
	msgEmailRequired    = "Email is required"
	msgEmailInvalid     = "Enter a valid email address"
	msgPasswordRequired = "Password is required"
	msgPasswordShort6   = "Password must be at least 6 characters"
	msgPasswordShort8   = "Password must be at least 8 characters"
	msgConfirmRequired  = "Confirm your password"
	msgConfirmMismatch  = "Passwords do not match"
	msgTermsRequired    = "You must accept the terms of use"
	msgCompanyRequired  = "Company name is required"

	msgDocTypeRequired  = "Select a document type"
	msgDocTypeInvalid   = "Document type must be cnpj or cpf"
	msgDocumentRequired = "Document number is required"
	msgCNPJInvalid      = "Enter a CNPJ in the format 00.000.000/0000-00"
	msgCPFInvalid       = "Enter a CPF in the format 000.000.000-00"

	msgCountryRequired = "Select the phone country"
	msgCountryInvalid  = "Phone country must be br, us or pt"
	msgPhoneRequired   = "Phone number is required"
	msgPhoneBR         = "Enter a phone number in the format (00) 0000-0000"
	msgMobileBR        = "Enter a mobile number in the format (00) 00000-0000"
	msgPhoneUS         = "Enter a phone number in the format (000) 000-0000"
	msgPhonePT         = "Enter a phone number in the format 000 000 000"

	msgZipRequired      = "ZIP code is required"
	msgZipInvalid       = "Enter a ZIP code in the format 00000-000"
	msgStreetRequired   = "Street is required"
	msgNumberRequired   = "Number is required"
	msgDistrictRequired = "District is required"
	msgCityRequired     = "City is required"
	msgStateRequired    = "State is required"
	msgStateInvalid     = "Enter a valid two-letter state (UF)"

	msgInvalidCredentials = "Invalid credentials"
	msgCompanyRejected    = "Could not register the company. Please try again."
)
