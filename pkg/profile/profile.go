// pkg/profile/profile.go

package profile

import "errors"

// DefaultCompanyName is printed when a profile exists but carries no name.
const DefaultCompanyName = "Your Company"

var ErrProfileNotFound = errors.New("business profile not found")

// CompanyProfile is the per-user business identity used as a document header.
type CompanyProfile struct {
	UserID       string `json:"user_id"`
	CompanyName  string `json:"company_name"`
	LogoRef      string `json:"logo_ref,omitempty"`
	Address      string `json:"address,omitempty"`
	Email        string `json:"email,omitempty"`
	Phone        string `json:"phone,omitempty"`
	TaxID        string `json:"tax_id,omitempty"`
	BusinessType string `json:"business_type,omitempty"`
}

// DisplayName returns the company name or the default placeholder.
func (p *CompanyProfile) DisplayName() string {
	if p == nil || p.CompanyName == "" {
		return DefaultCompanyName
	}
	return p.CompanyName
}
