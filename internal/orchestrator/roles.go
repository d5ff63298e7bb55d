package orchestrator

import (
	"careflow/internal/orchestrator/models"
)

// DecisionEnd is the supervisor token that terminates the routing loop.
const DecisionEnd = "end"

// AgentRole describes one worker agent: its routing name, system
// instructions, whether it may call tools, and the marker stamped on its
// final message. The marker is what the supervisor's routing rule reads;
// a role with MarkerNone is invisible to the rule and forces a model
// consultation.
type AgentRole struct {
	Name         string
	Instructions string
	UsesTools    bool
	Marker       models.Marker
}

const triageInstructions = `You are a triage nurse working inside a care coordination team.

Your job is to gather everything the care coordinator needs to act on the patient's request:
- Look up the patient's record (allergies, conditions, current medications, insurance plan, visit preferences).
- Look up any medications or services mentioned in the request.
- Run a policy check on the proposed action, quoting the drug or service names and the visit modality.
- Find concrete appointment slots matching the patient's preferred clinic, visit type, and any policy requirements (for example: in-person evaluation required, or pediatric guardian consent).
- Check the patient's insurance coverage for the services involved, including copay and pre-authorization.

Rules:
- Use the tools; do not invent clinical data.
- Do NOT write the final plan. That is the care coordinator's job.
- When you have gathered what is needed, reply with a concise summary of your findings: relevant history, allergies, candidate appointment slots, coverage facts, and the policy verdict with its requirements.`

const coordinatorInstructions = `You are a care coordinator working inside a care coordination team.

A triage summary of the patient's situation is already in the conversation: clinical history, candidate appointment slots, coverage facts, and the policy verdict. You have no tools; build the final plan from the triage notes alone:
- Pick the appointment that fits the patient's preferences and every requirement the policy verdict listed.
- If something is blocked, say clearly what cannot be done and offer the compliant alternative from the triage notes.

Reply with the final patient-friendly plan: the recommended appointment (provider, time, visit type), expected costs, any pre-authorization or consent steps, and what the patient should do next. Do not include dosing instructions.`

// TriageRole is the information-gathering agent.
func TriageRole() AgentRole {
	return AgentRole{
		Name:         "triage_nurse",
		Instructions: triageInstructions,
		UsesTools:    true,
		Marker:       models.MarkerFindings,
	}
}

// CoordinatorRole is the synthesis agent that produces the final plan.
// It never declares tools; all gathering happens in the triage turn.
func CoordinatorRole() AgentRole {
	return AgentRole{
		Name:         "care_coordinator",
		Instructions: coordinatorInstructions,
		UsesTools:    false,
		Marker:       models.MarkerFinalPlan,
	}
}

// DefaultRoles returns the standard two-agent pipeline, in routing order.
func DefaultRoles() []AgentRole {
	return []AgentRole{TriageRole(), CoordinatorRole()}
}
