package clinic

import (
	"context"
	"fmt"
	"sort"
	"strings"
)

// slotKey indexes the availability matrix.
type slotKey struct {
	Clinic    string
	Specialty string
	DateRange string
}

// Directory is the deterministic clinical data source backing the domain
// tools. It stands in for the EHR, scheduling, formulary and payer systems;
// lookups are pure map reads and never fail transiently.
type Directory struct {
	patients    map[string]Patient
	slots       map[slotKey][]Slot
	medications map[string]Medication
	coverage    map[string]map[string]Coverage
}

// NewDirectory returns a Directory seeded with the built-in demo dataset.
func NewDirectory() *Directory {
	return &Directory{
		patients:    defaultPatients(),
		slots:       defaultSlots(),
		medications: defaultMedications(),
		coverage:    defaultCoverage(),
	}
}

// PatientRecord looks up a patient by identifier. Unknown identifiers are
// reported in the response note, not as an error.
func (d *Directory) PatientRecord(ctx context.Context, req PatientRecordRequest) (PatientRecordResponse, error) {
	p, ok := d.patients[req.PatientID]
	if !ok {
		return PatientRecordResponse{
			Note: fmt.Sprintf("no record found for %q; known patient ids: %s", req.PatientID, strings.Join(d.patientIDs(), ", ")),
		}, nil
	}
	return PatientRecordResponse{Patient: &p}, nil
}

// AppointmentSlots returns bookable slots for a clinic, specialty and date
// range. A miss on any dimension yields an empty slot list with a note.
func (d *Directory) AppointmentSlots(ctx context.Context, req AppointmentSlotsRequest) (AppointmentSlotsResponse, error) {
	resp := AppointmentSlotsResponse{
		Clinic:    req.Clinic,
		Specialty: req.Specialty,
		DateRange: req.DateRange,
	}
	slots, ok := d.slots[slotKey{Clinic: req.Clinic, Specialty: req.Specialty, DateRange: req.DateRange}]
	if !ok {
		resp.Slots = []Slot{}
		resp.Note = "no availability found for that clinic, specialty and date range"
		return resp, nil
	}
	resp.Slots = append([]Slot(nil), slots...)
	return resp, nil
}

// MedicationInfo returns high-level information for a drug or service.
// Lookup is case-insensitive on the item name.
func (d *Directory) MedicationInfo(ctx context.Context, req MedicationInfoRequest) (MedicationInfoResponse, error) {
	key := strings.ToLower(strings.TrimSpace(req.Item))
	info, ok := d.medications[key]
	if !ok {
		return MedicationInfoResponse{
			Item: req.Item,
			Note: fmt.Sprintf("no information on file for %q", req.Item),
		}, nil
	}
	return MedicationInfoResponse{Item: req.Item, Info: &info}, nil
}

// CoverageCheck reports a plan's copay and pre-authorization requirement for
// a service category. Unknown plans and services yield a note.
func (d *Directory) CoverageCheck(ctx context.Context, req CoverageCheckRequest) (CoverageCheckResponse, error) {
	resp := CoverageCheckResponse{
		InsurancePlan: req.InsurancePlan,
		Service:       req.Service,
	}
	services, ok := d.coverage[req.InsurancePlan]
	if !ok {
		resp.Note = fmt.Sprintf("unknown insurance plan %q", req.InsurancePlan)
		return resp, nil
	}
	key := strings.ToLower(strings.TrimSpace(req.Service))
	cov, ok := services[key]
	if !ok {
		resp.Note = fmt.Sprintf("plan %s has no coverage entry for %q", req.InsurancePlan, req.Service)
		return resp, nil
	}
	resp.Coverage = &cov
	return resp, nil
}

func (d *Directory) patientIDs() []string {
	ids := make([]string, 0, len(d.patients))
	for id := range d.patients {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}
