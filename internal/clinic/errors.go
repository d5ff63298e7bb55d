package clinic

import (
	"errors"
)

// -- Sentinels --

var (
	ErrEmptyPatientID     = errors.New("patient_id cannot be empty")
	ErrEmptyClinic        = errors.New("clinic cannot be empty")
	ErrEmptySpecialty     = errors.New("specialty cannot be empty")
	ErrEmptyDateRange     = errors.New("date_range cannot be empty")
	ErrEmptyItem          = errors.New("item cannot be empty")
	ErrEmptyInsurancePlan = errors.New("insurance_plan cannot be empty")
	ErrEmptyService       = errors.New("service cannot be empty")
)
