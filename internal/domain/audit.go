package domain

import "time"

// AuditActor identity of who performed an audited action
type AuditActor string

const (
	ActorAdmin  AuditActor = "Admin"
	ActorSystem AuditActor = "System"
)

// Наименования аудируемых действий
const (
	AuditActionAppointmentCreated   = "Appointment created"
	AuditActionAppointmentCancelled = "Appointment cancelled"
	AuditActionAppointmentApproved  = "Appointment approved"
	AuditActionAppointmentRejected  = "Appointment rejected"
	AuditActionSettingsUpdated      = "Settings updated"
	AuditActionLogPurged            = "Audit log purged"
)

// AuditEntry immutable record of one state-changing action
type AuditEntry struct {
	ID        string     `json:"id"`
	Timestamp time.Time  `json:"timestamp"`
	Action    string     `json:"action"`
	Details   string     `json:"details"`
	Actor     AuditActor `json:"actor"`
}
