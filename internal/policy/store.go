package policy

import (
	"context"
	"fmt"
	"sort"
)

// Store is the policy document store boundary. Stores are read-only and
// safely shared across concurrent runs. Documents are immutable for a run's
// duration, so implementations may cache.
type Store interface {
	// ListIndex returns identifier, title and one-line description for
	// every known document.
	ListIndex(ctx context.Context) ([]Info, error)

	// Load returns the full document for the identifier, or
	// ErrDocumentNotFound.
	Load(ctx context.Context, id string) (Document, error)
}

// StaticStore serves documents from memory.
type StaticStore struct {
	docs map[string]Document
}

// NewStaticStore creates a store over the given documents.
func NewStaticStore(docs []Document) (*StaticStore, error) {
	m := make(map[string]Document, len(docs))
	for _, d := range docs {
		if d.ID == "" {
			return nil, fmt.Errorf("policy document id cannot be empty")
		}
		if _, exists := m[d.ID]; exists {
			return nil, fmt.Errorf("duplicate policy document id %q", d.ID)
		}
		m[d.ID] = d
	}
	return &StaticStore{docs: m}, nil
}

// ListIndex implements Store. The index is sorted by identifier so prompts
// built from it are stable across calls.
func (s *StaticStore) ListIndex(ctx context.Context) ([]Info, error) {
	out := make([]Info, 0, len(s.docs))
	for _, d := range s.docs {
		out = append(out, Info{ID: d.ID, Title: d.Title, Description: d.Description})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

// Load implements Store.
func (s *StaticStore) Load(ctx context.Context, id string) (Document, error) {
	d, ok := s.docs[id]
	if !ok {
		return Document{}, fmt.Errorf("%w: %q", ErrDocumentNotFound, id)
	}
	return d, nil
}

// DefaultDocuments returns the built-in care-coordination policy set.
func DefaultDocuments() []Document {
	return []Document{
		{
			ID:          "controlled_substances",
			Title:       "Controlled Substance Handling",
			Description: "Restrictions on prescribing and refilling controlled substances such as opioids.",
			Rules: "Controlled substances (for example oxycodone and other opioids) must not be " +
				"initiated or refilled via telehealth. An in-person clinician evaluation is required, " +
				"along with identity verification under the controlled-substance protocol. Requests " +
				"that cannot meet these conditions are blocked.",
		},
		{
			ID:          "antibiotic_stewardship",
			Title:       "Antibiotic Stewardship",
			Description: "Clinician evaluation requirements for antibiotic requests and allergy conflicts.",
			Rules: "Antibiotics require clinician assessment before prescribing; there is no " +
				"direct dispensing. Penicillin-family antibiotics (for example amoxicillin) conflict " +
				"with a documented penicillin allergy; an alternative must be assessed by a clinician.",
		},
		{
			ID:          "imaging_services",
			Title:       "Diagnostic Imaging Authorization",
			Description: "Prior-authorization and clinical-indication requirements for imaging such as MRI.",
			Rules: "MRI and comparable imaging require prior authorization under most plans and are " +
				"typically scheduled after a clinical evaluation unless red-flag criteria are met.",
		},
		{
			ID:          "minor_consent",
			Title:       "Minor Consent and Guardianship",
			Description: "Guardian consent rules for scheduling and care pathways involving minors.",
			Rules: "Patients under 18 require guardian consent for scheduling and for communications " +
				"about certain care pathways.",
		},
		{
			ID:          "telehealth_limits",
			Title:       "Telehealth Visit-Type Limits",
			Description: "Visit-type restrictions on what may be handled over telehealth.",
			Rules: "Telehealth is not a permitted visit type for requests involving controlled " +
				"substances or services that require an in-person assessment.",
		},
	}
}
