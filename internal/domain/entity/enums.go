package entity

// Prioridades compartidas por tareas, tickets, bitácora y órdenes de servicio.
const (
	PriorityLow    = "low"
	PriorityMedium = "medium"
	PriorityHigh   = "high"
	PriorityUrgent = "urgent"
)

// IsValidPriority valida el valor contra el conjunto permitido.
func IsValidPriority(p string) bool {
	return oneOf(p, PriorityLow, PriorityMedium, PriorityHigh, PriorityUrgent)
}

func oneOf(v string, allowed ...string) bool {
	for _, a := range allowed {
		if v == a {
			return true
		}
	}
	return false
}

func int64Ptr(v int64) *int64 { return &v }
