package enums

// NotificationSeverity mirrors the storefront toast variants.
type NotificationSeverity string

const (
	NotificationSeverityNormal      NotificationSeverity = "normal"
	NotificationSeverityDestructive NotificationSeverity = "destructive"
)

// String implements fmt.Stringer.
func (n NotificationSeverity) String() string {
	return string(n)
}

// IsValid reports whether the value is a known NotificationSeverity.
func (n NotificationSeverity) IsValid() bool {
	return n == NotificationSeverityNormal || n == NotificationSeverityDestructive
}
