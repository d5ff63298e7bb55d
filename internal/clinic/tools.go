package clinic

import (
	"careflow/internal/orchestrator/adapter"
	provider "careflow/internal/provider/models"
)

// Tools wraps the directory's lookups as callable tools for agent use.
func Tools(dir *Directory) []adapter.Tool {
	return []adapter.Tool{
		adapter.NewBaseAdapter(
			"patient_record",
			"Look up a patient's demographics, allergies, conditions, current medications, insurance plan and visit preferences by patient id.",
			&provider.ParameterSchema{
				Type: "object",
				Properties: map[string]provider.PropertySchema{
					"patient_id": {
						Type:        "string",
						Description: "Patient identifier, e.g. PT-1001",
					},
				},
				Required: []string{"patient_id"},
			},
			dir.PatientRecord,
		),
		adapter.NewBaseAdapter(
			"appointment_slots",
			"List bookable appointment slots for a clinic, specialty and date range.",
			&provider.ParameterSchema{
				Type: "object",
				Properties: map[string]provider.PropertySchema{
					"clinic": {
						Type:        "string",
						Description: "Clinic name, e.g. Downtown Primary Care",
					},
					"specialty": {
						Type:        "string",
						Description: "Specialty, e.g. primary_care, pulmonology, pediatrics, radiology",
					},
					"date_range": {
						Type:        "string",
						Description: "Date window to search",
						Enum:        []string{"next_7_days", "next_14_days"},
					},
				},
				Required: []string{"clinic", "specialty", "date_range"},
			},
			dir.AppointmentSlots,
		),
		adapter.NewBaseAdapter(
			"medication_info",
			"Look up high-level information about a medication or clinical service. Never returns dosing instructions.",
			&provider.ParameterSchema{
				Type: "object",
				Properties: map[string]provider.PropertySchema{
					"item": {
						Type:        "string",
						Description: "Medication or service name, e.g. albuterol, mri_lumbar_spine",
					},
				},
				Required: []string{"item"},
			},
			dir.MedicationInfo,
		),
		adapter.NewBaseAdapter(
			"coverage_check",
			"Check an insurance plan's copay and pre-authorization requirement for a service category.",
			&provider.ParameterSchema{
				Type: "object",
				Properties: map[string]provider.PropertySchema{
					"insurance_plan": {
						Type:        "string",
						Description: "Plan identifier, e.g. ACME-HMO-SILVER",
					},
					"service": {
						Type:        "string",
						Description: "Service category, e.g. telehealth_primary_care, mri_lumbar_spine, generic_rx",
					},
				},
				Required: []string{"insurance_plan", "service"},
			},
			dir.CoverageCheck,
		),
	}
}
