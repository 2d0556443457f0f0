package models

type MaintenancePriority string

const (
	PriorityLow    MaintenancePriority = "low"
	PriorityMedium MaintenancePriority = "medium"
	PriorityHigh   MaintenancePriority = "high"
	PriorityUrgent MaintenancePriority = "urgent"
)

func (p MaintenancePriority) Valid() bool {
	switch p {
	case PriorityLow, PriorityMedium, PriorityHigh, PriorityUrgent:
		return true
	}
	return false
}

type MaintenanceStatus string

const (
	MaintenanceStatusPending    MaintenanceStatus = "pending"
	MaintenanceStatusInProgress MaintenanceStatus = "in_progress"
	MaintenanceStatusCompleted  MaintenanceStatus = "completed"
	MaintenanceStatusCancelled  MaintenanceStatus = "cancelled"
)

func (s MaintenanceStatus) Valid() bool {
	switch s {
	case MaintenanceStatusPending, MaintenanceStatusInProgress,
		MaintenanceStatusCompleted, MaintenanceStatusCancelled:
		return true
	}
	return false
}

// Maintenance is a repair or service request raised against a unit,
// optionally on behalf of a resident.
type Maintenance struct {
	Meta
	Title       string              `json:"title"`
	UnitID      string              `json:"unitId"`
	ResidentID  string              `json:"residentId,omitempty"`
	Category    string              `json:"category"`
	Priority    MaintenancePriority `json:"priority"`
	Status      MaintenanceStatus   `json:"status"`
	Description string              `json:"description"`
}

func (m *Maintenance) Field(name string) (any, bool) {
	switch name {
	case "title":
		return m.Title, true
	case "unitId":
		return m.UnitID, true
	case "residentId":
		return m.ResidentID, true
	case "category":
		return m.Category, true
	case "priority":
		return string(m.Priority), true
	case "status":
		return string(m.Status), true
	case "description":
		return m.Description, true
	}
	return m.metaField(name)
}
