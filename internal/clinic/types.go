package clinic

// Patient holds demographics, clinical context and plan details for one
// patient. Mock data; stands in for an EHR lookup.
type Patient struct {
	PatientID          string   `json:"patient_id"`
	Name               string   `json:"name"`
	Age                int      `json:"age"`
	Sex                string   `json:"sex"`
	Allergies          []string `json:"allergies"`
	Conditions         []string `json:"conditions"`
	CurrentMeds        []string `json:"current_meds"`
	InsurancePlan      string   `json:"insurance_plan"`
	PreferredClinic    string   `json:"preferred_clinic"`
	PreferredVisitType string   `json:"preferred_visit_type"`
}

// Slot is one bookable appointment option.
type Slot struct {
	Type     string `json:"type"` // "telehealth" or "in_person"
	Start    string `json:"start"`
	Provider string `json:"provider"`
}

// Medication is high-level medication or service info. Never includes
// dosing instructions.
type Medication struct {
	Class     string   `json:"class"`
	CommonUse string   `json:"common_use"`
	Notes     []string `json:"notes"`
}

// Coverage describes plan coverage for one service category.
type Coverage struct {
	Copay           string `json:"copay"`
	PreauthRequired bool   `json:"preauth_required"`
}

// PatientRecordRequest looks up one patient by identifier.
type PatientRecordRequest struct {
	PatientID string `json:"patient_id" mapstructure:"patient_id"`
}

// Validate implements adapter.Validator.
func (r PatientRecordRequest) Validate() error {
	if r.PatientID == "" {
		return ErrEmptyPatientID
	}
	return nil
}

// PatientRecordResponse carries the record, or a note listing known
// identifiers when the patient is not found.
type PatientRecordResponse struct {
	Patient *Patient `json:"patient,omitempty"`
	Note    string   `json:"note,omitempty"`
}

// AppointmentSlotsRequest queries availability for a clinic and specialty
// within a date range such as "next_7_days" or "next_14_days".
type AppointmentSlotsRequest struct {
	Clinic    string `json:"clinic" mapstructure:"clinic"`
	Specialty string `json:"specialty" mapstructure:"specialty"`
	DateRange string `json:"date_range" mapstructure:"date_range"`
}

// Validate implements adapter.Validator.
func (r AppointmentSlotsRequest) Validate() error {
	if r.Clinic == "" {
		return ErrEmptyClinic
	}
	if r.Specialty == "" {
		return ErrEmptySpecialty
	}
	if r.DateRange == "" {
		return ErrEmptyDateRange
	}
	return nil
}

// AppointmentSlotsResponse echoes the query and lists matching slots.
type AppointmentSlotsResponse struct {
	Clinic    string `json:"clinic"`
	Specialty string `json:"specialty"`
	DateRange string `json:"date_range"`
	Slots     []Slot `json:"slots"`
	Note      string `json:"note,omitempty"`
}

// MedicationInfoRequest looks up one drug or service by name.
type MedicationInfoRequest struct {
	Item string `json:"item" mapstructure:"item"`
}

// Validate implements adapter.Validator.
func (r MedicationInfoRequest) Validate() error {
	if r.Item == "" {
		return ErrEmptyItem
	}
	return nil
}

// MedicationInfoResponse carries the info, or a note when unknown.
type MedicationInfoResponse struct {
	Item string      `json:"item"`
	Info *Medication `json:"info,omitempty"`
	Note string      `json:"note,omitempty"`
}

// CoverageCheckRequest checks one plan's coverage for a service.
type CoverageCheckRequest struct {
	InsurancePlan string `json:"insurance_plan" mapstructure:"insurance_plan"`
	Service       string `json:"service" mapstructure:"service"`
}

// Validate implements adapter.Validator.
func (r CoverageCheckRequest) Validate() error {
	if r.InsurancePlan == "" {
		return ErrEmptyInsurancePlan
	}
	if r.Service == "" {
		return ErrEmptyService
	}
	return nil
}

// CoverageCheckResponse carries coverage details, or a note for unknown
// plans.
type CoverageCheckResponse struct {
	InsurancePlan string    `json:"insurance_plan"`
	Service       string    `json:"service"`
	Coverage      *Coverage `json:"coverage,omitempty"`
	Note          string    `json:"note,omitempty"`
}
