package nvm

// UnknownNpm is reported when the npm version bundled with a release is not known.
const UnknownNpm = "unknown"

type Status string

const (
	StatusInstalled    Status = "Installed"
	StatusNotInstalled Status = "Not Installed"
)

// InstalledVersion is one row of `nvm ls`.
type InstalledVersion struct {
	Version   string `json:"version" yaml:"version"`
	IsCurrent bool   `json:"isCurrent" yaml:"isCurrent"`
}

// AvailableVersion is one installable release annotated with its local status.
type AvailableVersion struct {
	Version    string `json:"version" yaml:"version"`
	NpmVersion string `json:"npmVersion" yaml:"npmVersion"`
	Status     Status `json:"status" yaml:"status"`
	Date       string `json:"date,omitempty" yaml:"date,omitempty"`
	LTS        string `json:"lts,omitempty" yaml:"lts,omitempty"`
}
