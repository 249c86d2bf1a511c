package dto

type NotifierInfo struct {
	Name    string
	Version string
	Enabled bool
	Binary  string
}

type DoctorResult struct {
	Name            string
	BinaryReachable bool
	ChecksumValid   bool
	LifecycleOK     bool
	Error           string
}

// SendReport records which notifiers a message reached.
type SendReport struct {
	Delivered []string
	Fallback  bool
}
