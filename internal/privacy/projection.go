package privacy

// Projector applies role-based field projection: a per-collection allowlist
// minus a per-role denylist. Anything not on the allowlist, or on the acting
// role's denylist, never leaves the retrieval layer.
type Projector struct {
	allow map[string][]string
	deny  map[Role]map[string][]string
}

// NewProjector builds a projector from immutable allow/deny maps. The maps
// are not copied; callers pass construction-time constants.
func NewProjector(allow map[string][]string, deny map[Role]map[string][]string) *Projector {
	return &Projector{allow: allow, deny: deny}
}

// DefaultProjector returns the clinic field policy.
//
// Patients never see clinician contact identifiers. Doctors see patient
// identity only through records they are a party to (the ownership filter
// guarantees that), and not a patient's home address. Administrative roles
// never see free-text clinical content.
func DefaultProjector() *Projector {
	return NewProjector(
		map[string][]string{
			"patients":      {"name", "medical_record_number", "gender", "birth_date", "phone", "address"},
			"doctors":       {"name", "specialization", "phone", "email"},
			"registrations": {"patient_name", "doctor_name", "poli", "registration_date", "queue_number", "status", "complaint"},
			"examinations":  {"patient_name", "doctor_name", "examination_date", "symptoms", "diagnosis", "prescription", "notes"},
			"schedules":     {"doctor_name", "specialization", "day", "date", "start_time", "end_time", "quota", "available"},
		},
		map[Role]map[string][]string{
			RolePatient: {
				"doctors":      {"phone", "email"},
				"schedules":    {"quota"},
				"examinations": {"notes"},
			},
			RoleDoctor: {
				"patients": {"address"},
			},
			RoleAdmin: {
				"examinations":  {"symptoms", "diagnosis", "prescription", "notes"},
				"registrations": {"complaint"},
			},
		},
	)
}

// Project returns a new map holding only the fields the role may observe
// for the collection. Unknown collections project to an empty map.
func (p *Projector) Project(collection string, role Role, fields map[string]any) map[string]any {
	allowed := p.allow[collection]
	denied := map[string]struct{}{}
	if roleDeny, ok := p.deny[role]; ok {
		for _, field := range roleDeny[collection] {
			denied[field] = struct{}{}
		}
	}

	out := make(map[string]any, len(allowed))
	for _, field := range allowed {
		if _, drop := denied[field]; drop {
			continue
		}
		if value, ok := fields[field]; ok {
			out[field] = value
		}
	}
	return out
}
