package roadmap

import "github.com/bookingswingevents-commits/SwingBooking-sub001/internal/calendar"

type label int

const (
	lblRemuneration label = iota
	lblLodging
	lblMeals
	lblDefrayal
	lblLocations
	lblContacts
	lblAccess
	lblLogistics
	lblSchedule
	lblNotes

	lblFee
	lblPerformances
	lblStandardWeek
	lblHighDemandWeek
	lblChosenOption
	lblToBeDefined
	lblIncluded
	lblNotIncluded
	lblDetails
	lblAmount
	lblNet
	lblGross
	lblNote
	lblPreview
	lblConfirmed
	lblCancelled
)

var labels = map[calendar.Locale]map[label]string{
	calendar.LocaleEN: {
		lblRemuneration: "Remuneration",
		lblLodging:      "Lodging",
		lblMeals:        "Meals",
		lblDefrayal:     "Travel expenses",
		lblLocations:    "Locations",
		lblContacts:     "Contacts",
		lblAccess:       "Access",
		lblLogistics:    "Logistics",
		lblSchedule:     "Schedule",
		lblNotes:        "Notes",

		lblFee:            "Fee",
		lblPerformances:   "Performances",
		lblStandardWeek:   "Standard week",
		lblHighDemandWeek: "High-demand week",
		lblChosenOption:   "Chosen option",
		lblToBeDefined:    "Amount to be defined",
		lblIncluded:       "Included",
		lblNotIncluded:    "Not included",
		lblDetails:        "Details",
		lblAmount:         "Amount",
		lblNet:            "net",
		lblGross:          "gross",
		lblNote:           "Note",
		lblPreview:        "Preview",
		lblConfirmed:      "Confirmed",
		lblCancelled:      "Cancelled",
	},
	calendar.LocaleFR: {
		lblRemuneration: "Rémunération",
		lblLodging:      "Hébergement",
		lblMeals:        "Repas",
		lblDefrayal:     "Défraiement",
		lblLocations:    "Lieux",
		lblContacts:     "Contacts",
		lblAccess:       "Accès",
		lblLogistics:    "Logistique",
		lblSchedule:     "Planning",
		lblNotes:        "Notes",

		lblFee:            "Cachet",
		lblPerformances:   "Représentations",
		lblStandardWeek:   "Semaine standard",
		lblHighDemandWeek: "Semaine haute saison",
		lblChosenOption:   "Formule retenue",
		lblToBeDefined:    "Montant à définir",
		lblIncluded:       "Inclus",
		lblNotIncluded:    "Non inclus",
		lblDetails:        "Détails",
		lblAmount:         "Montant",
		lblNet:            "net",
		lblGross:          "brut",
		lblNote:           "Note",
		lblPreview:        "Aperçu",
		lblConfirmed:      "Confirmé",
		lblCancelled:      "Annulé",
	},
}

func (a Assembler) t(l label) string {
	if m, ok := labels[a.Locale]; ok {
		return m[l]
	}
	return labels[calendar.LocaleEN][l]
}
