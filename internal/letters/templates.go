package letters

import (
	"fmt"
	"strings"
	"time"

	"tenantrights-ai/backend/internal/lang"
)

// Letter types supported by the generator.
const (
	TypeRepairRequest   = "repair_request"
	TypeRentDispute     = "rent_dispute"
	TypeSecurityDeposit = "security_deposit"
	TypeNoNoticeEntry   = "no_notice_entry"
	TypeNoiseComplaint  = "noise_complaint"
	TypeLeaseViolation  = "lease_violation"
	TypeDiscrimination  = "discrimination"
	TypeHabitability    = "habitability"
	TypeGeneralConcern  = "general_concern"
)

// TenantInfo identifies the tenant signing the letter.
type TenantInfo struct {
	Name    string `json:"name" binding:"required"`
	Address string `json:"address" binding:"required"`
	Phone   string `json:"phone"`
	Email   string `json:"email"`
}

// LandlordInfo identifies the letter's recipient.
type LandlordInfo struct {
	Name        string `json:"name" binding:"required"`
	Address     string `json:"address"`
	Phone       string `json:"phone"`
	Email       string `json:"email"`
	CompanyName string `json:"company_name"`
}

type template struct {
	intro        string
	requirements []string
}

var templates = map[string]template{
	TypeRepairRequest: {
		intro: "Write a formal letter requesting repairs from a landlord.",
		requirements: []string{
			"Be professional and respectful",
			"Clearly describe the repair issues",
			"Reference tenant rights regarding habitability",
			"Request a reasonable timeline for repairs",
			"Mention legal obligations if appropriate",
			"Include proper formatting with addresses and date",
		},
	},
	TypeRentDispute: {
		intro: "Write a formal letter regarding a rent dispute.",
		requirements: []string{
			"Be professional and diplomatic",
			"Clearly explain the dispute",
			"Reference relevant lease terms",
			"Propose a reasonable solution",
			"Mention tenant rights regarding rent increases",
			"Request written response",
			"Include proper formatting with addresses and date",
		},
	},
	TypeSecurityDeposit: {
		intro: "Write a formal letter regarding security deposit return.",
		requirements: []string{
			"Be professional and clear",
			"Reference move-out date and deposit amount",
			"Request itemized list of deductions",
			"Mention legal requirements for deposit return",
			"Specify timeline for response",
			"Include forwarding address for deposit return",
			"Include proper formatting with addresses and date",
		},
	},
	TypeNoNoticeEntry: {
		intro: "Write a formal letter regarding unauthorized entry by landlord.",
		requirements: []string{
			"Be firm but professional",
			"Document the unauthorized entry incident(s)",
			"Reference tenant privacy rights",
			"Cite relevant laws about required notice",
			"Request compliance with proper notice procedures",
			"Warn of legal consequences for continued violations",
			"Include proper formatting with addresses and date",
		},
	},
	TypeNoiseComplaint: {
		intro: "Write a formal letter about noise issues.",
		requirements: []string{
			"Be respectful but clear about the problem",
			"Document specific instances with dates/times",
			"Reference lease terms about noise/disturbances",
			"Request landlord intervention",
			"Mention right to peaceful enjoyment",
			"Suggest reasonable solutions",
			"Include proper formatting with addresses and date",
		},
	},
	TypeLeaseViolation: {
		intro: "Write a formal letter about landlord lease violations.",
		requirements: []string{
			"Be professional and factual",
			"Cite specific lease provisions being violated",
			"Document the violations clearly",
			"Request immediate correction",
			"Reference legal consequences of continued violation",
			"Set reasonable timeline for compliance",
			"Include proper formatting with addresses and date",
		},
	},
	TypeDiscrimination: {
		intro: "Write a formal letter regarding housing discrimination.",
		requirements: []string{
			"Be very professional and serious in tone",
			"Document discriminatory behavior with specific details",
			"Reference Fair Housing Act and local anti-discrimination laws",
			"Demand immediate cessation of discriminatory practices",
			"Mention intention to file complaints with authorities",
			"Request written response acknowledging the issue",
			"Include proper formatting with addresses and date",
		},
	},
	TypeHabitability: {
		intro: "Write a formal letter about habitability issues.",
		requirements: []string{
			"Be serious and professional",
			"Detail all habitability problems clearly",
			"Reference implied warranty of habitability",
			"Set reasonable deadline for repairs",
			"Mention potential legal remedies (rent withholding, repair and deduct)",
			"Request written response with repair timeline",
			"Include proper formatting with addresses and date",
		},
	},
	TypeGeneralConcern: {
		intro: "Write a formal letter addressing general concerns about lease terms or landlord practices.",
		requirements: []string{
			"Be professional and respectful",
			"Clearly outline the concerns from the lease analysis",
			"Reference specific problematic clauses or practices",
			"Request clarification or modification of concerning terms",
			"Propose reasonable solutions where appropriate",
			"Reference tenant rights and fair housing practices",
			"Request written response addressing the concerns",
			"Include proper formatting with addresses and date",
		},
	},
}

// ValidType reports whether the letter type is supported.
func ValidType(letterType string) bool {
	_, ok := templates[letterType]
	return ok
}

// Catalog maps letter types to short descriptions for template pickers.
func Catalog() map[string]string {
	return map[string]string{
		TypeRepairRequest:   "Request repairs for property issues",
		TypeRentDispute:     "Dispute rent increases or charges",
		TypeSecurityDeposit: "Request return of security deposit",
		TypeNoNoticeEntry:   "Address unauthorized entry by landlord",
		TypeNoiseComplaint:  "Report noise or disturbance issues",
		TypeLeaseViolation:  "Address landlord lease violations",
		TypeDiscrimination:  "Report housing discrimination",
		TypeHabitability:    "Address serious habitability problems",
	}
}

func buildLetterPrompt(letterType, languageCode, context string, tenant TenantInfo, landlord LandlordInfo, specificIssues []string, now time.Time) string {
	tmpl, ok := templates[letterType]
	if !ok {
		tmpl = templates[TypeRepairRequest]
	}

	company := landlord.CompanyName
	if company == "" {
		company = landlord.Name
	}

	var issues strings.Builder
	for _, issue := range specificIssues {
		fmt.Fprintf(&issues, "• %s\n", issue)
	}

	var b strings.Builder
	fmt.Fprintf(&b, "CRITICAL LANGUAGE INSTRUCTION: %s\n\n", lang.LetterInstruction(languageCode))
	b.WriteString(tmpl.intro)
	b.WriteString(" Use this information:\n\n")
	fmt.Fprintf(&b, "Date: %s\n", now.Format("January 2, 2006"))
	fmt.Fprintf(&b, "Tenant: %s\n", tenant.Name)
	fmt.Fprintf(&b, "Tenant Address: %s\n", tenant.Address)
	fmt.Fprintf(&b, "Tenant Phone: %s\n", orNA(tenant.Phone))
	fmt.Fprintf(&b, "Tenant Email: %s\n\n", orNA(tenant.Email))
	fmt.Fprintf(&b, "Landlord: %s\n", landlord.Name)
	fmt.Fprintf(&b, "Company: %s\n", company)
	fmt.Fprintf(&b, "Landlord Address: %s\n\n", orNA(landlord.Address))
	fmt.Fprintf(&b, "Context: %s\n\n", context)
	fmt.Fprintf(&b, "Specific Issues:\n%s\n", issues.String())
	b.WriteString("The letter should:\n")
	for _, req := range tmpl.requirements {
		fmt.Fprintf(&b, "- %s\n", req)
	}
	return b.String()
}

func orNA(s string) string {
	if strings.TrimSpace(s) == "" {
		return "N/A"
	}
	return s
}
