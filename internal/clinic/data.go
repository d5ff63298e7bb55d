package clinic

func defaultPatients() map[string]Patient {
	return map[string]Patient{
		"PT-1001": {
			PatientID:          "PT-1001",
			Name:               "Jordan Lee",
			Age:                34,
			Sex:                "F",
			Allergies:          []string{"penicillin"},
			Conditions:         []string{"asthma"},
			CurrentMeds:        []string{"albuterol inhaler"},
			InsurancePlan:      "ACME-HMO-SILVER",
			PreferredClinic:    "Downtown Primary Care",
			PreferredVisitType: "telehealth",
		},
		"PT-2002": {
			PatientID:          "PT-2002",
			Name:               "Sam Patel",
			Age:                16,
			Sex:                "M",
			Allergies:          []string{},
			Conditions:         []string{"migraine"},
			CurrentMeds:        []string{},
			InsurancePlan:      "ACME-PPO-GOLD",
			PreferredClinic:    "Northside Pediatrics",
			PreferredVisitType: "in_person",
		},
	}
}

func defaultSlots() map[slotKey][]Slot {
	return map[slotKey][]Slot{
		{Clinic: "Downtown Primary Care", Specialty: "primary_care", DateRange: "next_7_days"}: {
			{Type: "telehealth", Start: "2025-07-01T10:00", Provider: "Dr. Kim"},
			{Type: "in_person", Start: "2025-07-02T15:30", Provider: "Dr. Kim"},
			{Type: "in_person", Start: "2025-07-03T09:00", Provider: "NP Rivera"},
		},
		{Clinic: "Downtown Primary Care", Specialty: "pulmonology", DateRange: "next_14_days"}: {
			{Type: "in_person", Start: "2025-07-08T13:00", Provider: "Dr. Chen"},
		},
		{Clinic: "Northside Pediatrics", Specialty: "pediatrics", DateRange: "next_7_days"}: {
			{Type: "in_person", Start: "2025-07-01T16:00", Provider: "Dr. Owens"},
			{Type: "telehealth", Start: "2025-07-02T11:30", Provider: "Dr. Owens"},
		},
		{Clinic: "Imaging Center A", Specialty: "radiology", DateRange: "next_14_days"}: {
			{Type: "in_person", Start: "2025-07-09T08:00", Provider: "MRI Suite 2"},
		},
	}
}

func defaultMedications() map[string]Medication {
	return map[string]Medication{
		"albuterol": {
			Class:     "short-acting beta agonist (rescue inhaler)",
			CommonUse: "asthma symptom relief",
			Notes:     []string{"refill typically requires an active prescription on file"},
		},
		"amoxicillin": {
			Class:     "penicillin-class antibiotic",
			CommonUse: "bacterial infections",
			Notes:     []string{"contraindicated with penicillin allergy"},
		},
		"oxycodone": {
			Class:     "opioid analgesic (controlled substance)",
			CommonUse: "severe acute pain",
			Notes:     []string{"controlled substance; additional policy review required"},
		},
		"mri_lumbar_spine": {
			Class:     "imaging service",
			CommonUse: "evaluation of persistent lower back pain",
			Notes:     []string{"often requires prior authorization"},
		},
	}
}

func defaultCoverage() map[string]map[string]Coverage {
	return map[string]map[string]Coverage{
		"ACME-HMO-SILVER": {
			"telehealth_primary_care": {Copay: "$25", PreauthRequired: false},
			"in_person_primary_care":  {Copay: "$50", PreauthRequired: false},
			"mri_lumbar_spine":        {Copay: "$150", PreauthRequired: true},
			"generic_rx":              {Copay: "$10", PreauthRequired: false},
		},
		"ACME-PPO-GOLD": {
			"telehealth_primary_care": {Copay: "$20", PreauthRequired: false},
			"in_person_primary_care":  {Copay: "$40", PreauthRequired: false},
			"mri_lumbar_spine":        {Copay: "$100", PreauthRequired: false},
			"generic_rx":              {Copay: "$10", PreauthRequired: false},
		},
	}
}
