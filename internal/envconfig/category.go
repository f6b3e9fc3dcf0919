package envconfig

import "strings"

// Category groups settings by what they configure.
type Category string

const (
	CategoryAuthentication Category = "Authentication"
	CategoryDatabase       Category = "Database"
	CategoryPayment        Category = "Payment"
	CategoryCommunication  Category = "Email & Communication"
	CategoryCloud          Category = "Cloud & Infrastructure"
	CategoryServices       Category = "API & Services"
	CategoryApplication    Category = "Application"
	CategoryOther          Category = "Other"
)

// Checked in order; the first category with a matching keyword wins.
var categoryKeywords = []struct {
	category Category
	keywords []string
}{
	{CategoryAuthentication, []string{"AUTH", "TOKEN", "SECRET", "KEY", "PASSWORD", "JWT", "SESSION"}},
	{CategoryDatabase, []string{"DB", "DATABASE", "POSTGRES", "MYSQL", "MONGO", "REDIS", "SQL"}},
	{CategoryPayment, []string{"STRIPE", "PAYMENT", "PAYPAL"}},
	{CategoryCommunication, []string{"MAIL", "SMTP", "EMAIL", "SENDGRID", "TWILIO"}},
	{CategoryCloud, []string{"AWS", "GCP", "AZURE", "CLOUD", "S3", "BUCKET"}},
	{CategoryServices, []string{"API", "SERVICE", "ENDPOINT", "URL", "URI"}},
	{CategoryApplication, []string{"APP", "NODE_ENV", "PORT", "HOST", "DEBUG", "LOG"}},
}

// Categories lists every category in display order.
func Categories() []Category {
	out := make([]Category, 0, len(categoryKeywords)+1)
	for _, ck := range categoryKeywords {
		out = append(out, ck.category)
	}
	return append(out, CategoryOther)
}

// Categorize classifies a setting by keywords in its name.
func Categorize(name string) Category {
	upper := strings.ToUpper(name)
	for _, ck := range categoryKeywords {
		for _, kw := range ck.keywords {
			if strings.Contains(upper, kw) {
				return ck.category
			}
		}
	}
	return CategoryOther
}

var secretKeywords = []string{"SECRET", "TOKEN", "PASSWORD", "PASS", "API_KEY", "PRIVATE_KEY", "CREDENTIAL"}

// LooksSecret reports whether the name suggests the value is sensitive.
func LooksSecret(name string) bool {
	upper := strings.ToUpper(name)
	for _, kw := range secretKeywords {
		if strings.Contains(upper, kw) {
			return true
		}
	}
	return false
}
