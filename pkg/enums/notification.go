package enums

// NotificationType categorizes tenant-facing feed entries.
type NotificationType string

const (
	NotificationTypeOrderCreated NotificationType = "order_created"
	NotificationTypeJobAccepted  NotificationType = "job_accepted"
	NotificationTypeJobRerun     NotificationType = "job_rerun"
)

// String implements fmt.Stringer.
func (n NotificationType) String() string {
	return string(n)
}
