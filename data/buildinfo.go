package data

// Fixed identity of the service reported by the info endpoint.
const (
	ServiceName = "Invoice API"
	TechStack   = "Python 3.11 + FastAPI"
)

// Dependency defines a named, versioned runtime dependency.
type Dependency struct {
	Name    string `json:"name" example:"fastapi"`
	Version string `json:"version" example:"0.115.6"`
}

// BuildInfo defines the build metadata returned by the info endpoint.
// Field order is the JSON key order.
type BuildInfo struct {
	ServiceName  string       `json:"serviceName" example:"Invoice API"`
	TechStack    string       `json:"techStack" example:"Python 3.11 + FastAPI"`
	BuildTime    string       `json:"buildTime" example:"2024-01-01T00:00:00Z"`
	GitSHA       string       `json:"gitSha" example:"abc123"`
	BuildVersion string       `json:"buildVersion" example:"1.2.3"`
	Dependencies []Dependency `json:"dependencies"`
}

// Dependencies returns a new copy of the fixed dependency list.
func Dependencies() []Dependency {
	return []Dependency{
		{Name: "fastapi", Version: "0.115.6"},
		{Name: "uvicorn", Version: "0.32.1"},
		{Name: "httpx", Version: "0.27.2"},
	}
}
