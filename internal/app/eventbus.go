package app

const TopicAuditCreated = "audit:created"
const TopicAuditUpdated = "audit:updated"
const TopicAuditDeleted = "audit:deleted"
const TopicAuditStarted = "audit:started"
const TopicAuditCompleted = "audit:completed"
const TopicReportCreated = "report:created"
const TopicReportGenerated = "report:generated"
const TopicReportDeleted = "report:deleted"
const TopicActivityLogged = "activity:logged"
const TopicAlertRaised = "alert:raised"
const TopicMetricsChanged = "metrics:changed"
