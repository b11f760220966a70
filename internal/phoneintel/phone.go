// Package phoneintel analyzes phone numbers: parsing and validation, carrier
// and number-type metadata, and country/region-level geography. All of it is
// library work over libphonenumber data; no network traffic is involved, and
// location never goes below country/region level.
package phoneintel

import (
	"regexp"

	"github.com/nyaruka/phonenumbers"
)

var analyzerWarnings = []string{
	"Phone number analysis shows PUBLIC information only",
	"Does not identify the owner or their location",
	"Do not use for harassment, spam, or doxxing",
}

var nonDigits = regexp.MustCompile(`[^0-9]`)

// numberTypeNames maps libphonenumber's type enum to readable labels.
var numberTypeNames = map[phonenumbers.PhoneNumberType]string{
	phonenumbers.FIXED_LINE:           "fixed_line",
	phonenumbers.MOBILE:               "mobile",
	phonenumbers.FIXED_LINE_OR_MOBILE: "fixed_line_or_mobile",
	phonenumbers.TOLL_FREE:            "toll_free",
	phonenumbers.PREMIUM_RATE:         "premium_rate",
	phonenumbers.SHARED_COST:          "shared_cost",
	phonenumbers.VOIP:                 "voip",
	phonenumbers.PERSONAL_NUMBER:      "personal_number",
	phonenumbers.PAGER:                "pager",
	phonenumbers.UAN:                  "uan",
	phonenumbers.VOICEMAIL:            "voicemail",
	phonenumbers.UNKNOWN:              "unknown",
}

// Validation is the parse/format section of the report.
type Validation struct {
	IsValid        bool   `json:"is_valid"`
	CountryCode    int    `json:"country_code,omitempty"`
	NationalNumber uint64 `json:"national_number,omitempty"`
	E164           string `json:"e164_format,omitempty"`
	International  string `json:"international_format,omitempty"`
	National       string `json:"national_format,omitempty"`
	Error          string `json:"error,omitempty"`
}

// CarrierInfo describes the number's assigned carrier, when the metadata
// knows one.
type CarrierInfo struct {
	Carrier    string `json:"carrier"`
	NumberType string `json:"number_type"`
	IsMobile   bool   `json:"is_mobile"`
}

// GeographicInfo is country/region-level only.
type GeographicInfo struct {
	RegionCode  string   `json:"region_code"`
	Description string   `json:"description"`
	Timezones   []string `json:"timezones"`
	Note        string   `json:"note"`
}

// MessagingInfo lists manual presence checks for messaging apps. The tool
// never contacts the apps itself.
type MessagingInfo struct {
	WhatsAppURL string   `json:"whatsapp_url"`
	Notes       []string `json:"notes"`
}

// Report is the phone module's serializable finding.
type Report struct {
	Number     string          `json:"phone_number"`
	Validation Validation      `json:"validation"`
	Carrier    *CarrierInfo    `json:"carrier_info,omitempty"`
	Geographic *GeographicInfo `json:"geographic_info,omitempty"`
	Messaging  *MessagingInfo  `json:"messaging_apps,omitempty"`
	Warnings   []string        `json:"warnings"`
}

// Analyze parses the number and fills in carrier, geography and messaging
// sections. Numbers must carry a country prefix (+...); an unparseable number
// yields an invalid validation and nothing else.
func Analyze(number string) *Report {
	report := &Report{Number: number, Warnings: analyzerWarnings}

	parsed, err := phonenumbers.Parse(number, "")
	if err != nil {
		report.Validation = Validation{IsValid: false, Error: err.Error()}
		return report
	}

	report.Validation = Validation{
		IsValid:        phonenumbers.IsValidNumber(parsed),
		CountryCode:    int(parsed.GetCountryCode()),
		NationalNumber: parsed.GetNationalNumber(),
		E164:           phonenumbers.Format(parsed, phonenumbers.E164),
		International:  phonenumbers.Format(parsed, phonenumbers.INTERNATIONAL),
		National:       phonenumbers.Format(parsed, phonenumbers.NATIONAL),
	}
	if !report.Validation.IsValid {
		return report
	}

	report.Carrier = carrierInfo(parsed)
	report.Geographic = geographicInfo(parsed)
	report.Messaging = messagingInfo(report.Validation.E164)
	return report
}

func carrierInfo(parsed *phonenumbers.PhoneNumber) *CarrierInfo {
	name, err := phonenumbers.GetCarrierForNumber(parsed, "en")
	if err != nil {
		name = ""
	}

	numberType := phonenumbers.GetNumberType(parsed)
	info := &CarrierInfo{
		Carrier:    name,
		NumberType: numberTypeNames[numberType],
		IsMobile:   numberType == phonenumbers.MOBILE || numberType == phonenumbers.FIXED_LINE_OR_MOBILE,
	}
	if info.Carrier == "" {
		info.Carrier = "Unknown"
	}
	if info.NumberType == "" {
		info.NumberType = "unknown"
	}
	return info
}

func geographicInfo(parsed *phonenumbers.PhoneNumber) *GeographicInfo {
	description, err := phonenumbers.GetGeocodingForNumber(parsed, "en")
	if err != nil {
		description = ""
	}
	if description == "" {
		description = "Unknown"
	}

	timezones, err := phonenumbers.GetTimezonesForNumber(parsed)
	if err != nil {
		timezones = nil
	}

	return &GeographicInfo{
		RegionCode:  phonenumbers.GetRegionCodeForNumber(parsed),
		Description: description,
		Timezones:   timezones,
		Note:        "Location data is at country/region level only for privacy",
	}
}

func messagingInfo(e164 string) *MessagingInfo {
	return &MessagingInfo{
		WhatsAppURL: "https://wa.me/" + nonDigits.ReplaceAllString(e164, ""),
		Notes: []string{
			"Visit the wa.me URL to see if a WhatsApp account exists; do not message unknown numbers",
			"Telegram uses usernames for public contact; search the associated username instead",
			"Signal does not provide public verification of numbers",
		},
	}
}
