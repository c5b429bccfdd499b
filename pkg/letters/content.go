package letters

import "sponsor-letters/pkg/models"

// Issuer : organisation qui émet les lettres.
type Issuer struct {
	LegalName string
	ShortName string
	PartyName string // libellé de l'émetteur dans la LOA ; vide = ShortName
	Address   string
	Signatory string // "Nom - Titre"
	Email     string
}

func (i Issuer) partyName() string {
	if i.PartyName != "" {
		return i.PartyName
	}
	return i.ShortName
}

// DefaultIssuer reprend les coordonnées utilisées en production.
var DefaultIssuer = Issuer{
	LegalName: "Total Health Information Services, LLC.",
	ShortName: "Total Health Conferencing",
	PartyName: "Total Health",
	Address:   "20423 State Road 7, F6-496, Boca Raton FL 33498",
	Signatory: "Sarah Louden - Founder and Executive Director, Total Health Conferencing",
	Email:     "sarah@totalhealthconferencing.com",
}

// DefaultAudience : public cité quand la lettre ne précise rien.
const DefaultAudience = "physicians, nurses, pharmacists, advanced practitioners and patient advocates"

// BoothBenefits : avantages communs à tous les stands.
var BoothBenefits = []string{
	"In-person exhibit booth - (1) 6' draped table and 2 chairs.",
	"(2) Full registration admissions for company representatives; additional badges available for purchase.",
	"Company logo on in-person and virtual signage.",
	"Company logo on the conference app.",
	"(1) Conference bag insert.",
	"Pre- and post-conference registration list.",
}

// AddOnBullets détaille ce que comprend chaque option.
var AddOnBullets = map[models.AddOnKey][]string{
	models.AddOnProgramAdFull: {
		"Full-page advertisement in the printed/digital program guide.",
	},
	models.AddOnChargingStations: {
		"One branded charging station with company artwork.",
		"Includes (1) in-person company representative badge.",
	},
	models.AddOnWifiSponsorship: {
		"Exclusive Wi-Fi sponsorship with company logo/name on the Wi-Fi page.",
		"Includes (1) in-person company representative badge.",
	},
	models.AddOnPlatformBanner: {
		"Banner advertisement on the event's digital platform/lobby page.",
	},
	models.AddOnEmailBanner: {
		"Banner placement in a national call-to-action email.",
	},
	models.AddOnRegistrationBanner: {
		"Banner on the event registration page (typically live ~6 months).",
	},
	models.AddOnNetworkingReception: {
		"On-site networking reception with food & beverage.",
		"Company logo on in-person conference signage.",
		"Literature may be available on high-top tables during the reception.",
		"Includes (2) in-person company representative badges for the whole conference.",
	},
	models.AddOnNetworkingActivity: {
		"Networking activity/excursion.",
		"High-top table at the activity site.",
		"Insert in branded grab-and-go snack bags plus post-conference activity.",
		"Includes (1) in-person company representative badge.",
	},
	models.AddOnAdvisoryBoard: {
		"3-hour advisory board with room, AV, and food & beverage.",
		"Post-event summary and guaranteed attendance.",
	},
	models.AddOnNonCMESession: {
		"45-minute non-CME/CE symposium in a non-competitive slot.",
		"Full logistics, room and AV support.",
	},
}

type section struct {
	heading string
	body    []string
}

// agreementTerms : clauses 3 à 13 de la LOA. {party} est remplacé par le
// libellé de l'émetteur.
var agreementTerms = []section{
	{"3. Payment and Financial Terms", []string{
		"Full payment is due within 60 days of receiving the invoice, regardless of the Sponsor's attendance or participation. No refunds shall be issued under any circumstances, except those agreed upon in writing.",
		"Any notice of cancellation for participation in an event must be submitted in writing at least sixty (60) days prior to the event. Cancellations made within this period will receive a 50% credit of all fees paid toward a future program, at {party}'s discretion. Cancellations after this period will not be entitled to any credit.",
	}},
	{"4. Right to Refuse Exhibit", []string{
		"{party} reserves the right to decline, prohibit, or expel any exhibit it deems inappropriate or out of character with the event, or if the exhibit violates the terms of this Agreement or applicable laws and regulations. No refunds or credits will be issued if an exhibit is refused or expelled under these conditions.",
	}},
	{"5. Compliance with Laws and Facility Rules", []string{
		"The Sponsor shall comply with all applicable laws, codes, and regulations, as well as the rules of the venue where the event is held. The Sponsor assumes all liability for any non-compliance and agrees to indemnify {party} against any claims arising from such violations.",
	}},
	{"6. Advertising and Solicitation", []string{
		"Distribution of advertising materials and solicitation is restricted to the Sponsor's designated booth area only. Any unauthorized promotion outside the assigned space may result in the removal of the Sponsor from the event, without refund or credit.",
	}},
	{"7. Occupancy of Exhibit Space", []string{
		"Sponsor's use of exhibit space is mandatory. Should the Sponsor fail to occupy the space, {party} reserves the right to repurpose the space as it sees fit, without offering any rebate or credit.",
	}},
	{"8. Installation and Dismantling of Exhibits", []string{
		"The Sponsor is responsible for adhering to the installation and dismantling schedules provided by {party}. Any deviations or delays in setup or breakdown may result in penalties or additional charges.",
	}},
	{"9. Liability and Insurance", []string{
		"{party} and the venue assume no responsibility for the protection or safety of the Sponsor's representatives, agents, or property.",
		"Indemnification: The Sponsor agrees to indemnify, defend, and hold harmless {party}, its officers, employees, and agents from any claims, damages, or liabilities arising from the Sponsor's participation, exhibit, or actions at the event.",
	}},
	{"10. Force Majeure", []string{
		"{party} shall not be liable for any failure to perform its obligations under this Agreement due to circumstances beyond its reasonable control (\"Force Majeure\"). In such cases, {party} may reschedule the event or offer a credit at its discretion.",
	}},
	{"11. Confidentiality", []string{
		"The terms of this Agreement, including the SOW and all proprietary information exchanged between {party} and the Sponsor, shall be considered confidential and shall not be disclosed to third parties without the prior written consent of both parties, except as required by law.",
	}},
	{"12. Entire Agreement", []string{
		"This Agreement, together with the attached SOW, represents the complete understanding between {party} and the Sponsor, superseding any prior discussions or agreements. Any amendments must be in writing and signed by both parties to be valid.",
	}},
	{"13. Governing Law and Dispute Resolution", []string{
		"This Agreement shall be governed by the laws of the State of Florida. Any disputes arising out of or relating to this Agreement shall be resolved through binding arbitration in West Palm Beach, FL, with each party bearing its own legal fees and costs.",
	}},
}
