package constvars

const (
	RegexContainAtLeastOneSpecialChar = `.*[!@#$%^&*(),.?":{}|<>].*`
	RegexContainAtLeastOneUppercase   = `.*[A-Z].*`
	RegexDateYYYYMMDD                 = `^\d{4}-\d{2}-\d{2}$`
	RegexTimeHHMM                     = `^\d{2}:\d{2}$`
)
