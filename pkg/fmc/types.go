package fmc

// Reference identifies a resource by GUID in request and response payloads.
type Reference struct {
	ID   string `json:"id,omitempty"   yaml:"id,omitempty"`
	Type string `json:"type,omitempty" yaml:"type,omitempty"`
	Name string `json:"name,omitempty" yaml:"name,omitempty"`
}

// Links represents the self/parent links on a resource or list.
type Links struct {
	Self   string `json:"self,omitempty"   yaml:"self,omitempty"`
	Parent string `json:"parent,omitempty" yaml:"parent,omitempty"`
}

// Paging represents the pagination envelope on list responses.
type Paging struct {
	Offset int      `json:"offset"         yaml:"offset"`
	Limit  int      `json:"limit"          yaml:"limit"`
	Count  int      `json:"count"          yaml:"count"`
	Pages  int      `json:"pages"          yaml:"pages"`
	Next   []string `json:"next,omitempty" yaml:"next,omitempty"`
}

// ListResponse represents a paginated list response.
type ListResponse[T any] struct {
	Items  []T    `json:"items"  yaml:"items"`
	Paging Paging `json:"paging" yaml:"paging"`
	Links  Links  `json:"links"  yaml:"links"`
}

// ObjectKind selects a network object collection.
type ObjectKind string

// Network object kinds and their FMC type names.
const (
	KindHost    ObjectKind = "Host"
	KindNetwork ObjectKind = "Network"
	KindRange   ObjectKind = "Range"
	KindFQDN    ObjectKind = "FQDN"
)

// Endpoint returns the collection endpoint for the kind, relative to the
// domain-scoped configuration base.
func (k ObjectKind) Endpoint() string {
	switch k {
	case KindHost:
		return "object/hosts"
	case KindNetwork:
		return "object/networks"
	case KindRange:
		return "object/ranges"
	case KindFQDN:
		return "object/fqdns"
	default:
		return "object/networkaddresses"
	}
}

// NetworkObject represents a host, network, range, or FQDN object.
type NetworkObject struct {
	ID          string `json:"id,omitempty"          yaml:"id,omitempty"`
	Name        string `json:"name"                  yaml:"name"`
	Type        string `json:"type"                  yaml:"type"`
	Value       string `json:"value"                 yaml:"value"`
	Description string `json:"description,omitempty" yaml:"description,omitempty"`
	Overridable bool   `json:"overridable,omitempty" yaml:"overridable,omitempty"`
	Links       Links  `json:"links,omitempty"       yaml:"links,omitempty"`
}

// NetworkObjectCreateRequest represents a request to create a network object.
// Type is filled in from the kind by the client.
type NetworkObjectCreateRequest struct {
	Name        string `json:"name"                  yaml:"name"`
	Type        string `json:"type,omitempty"        yaml:"type,omitempty"`
	Value       string `json:"value"                 yaml:"value"`
	Description string `json:"description,omitempty" yaml:"description,omitempty"`
	Overridable bool   `json:"overridable,omitempty" yaml:"overridable,omitempty"`
}

// NetworkObjectUpdateRequest represents a request to update a network object.
// FMC requires id, name, type, and value on PUT.
type NetworkObjectUpdateRequest struct {
	ID          string `json:"id"                    yaml:"id"`
	Name        string `json:"name"                  yaml:"name"`
	Type        string `json:"type"                  yaml:"type"`
	Value       string `json:"value"                 yaml:"value"`
	Description string `json:"description,omitempty" yaml:"description,omitempty"`
	Overridable bool   `json:"overridable,omitempty" yaml:"overridable,omitempty"`
}

// AccessPolicy represents an access control policy.
type AccessPolicy struct {
	ID            string         `json:"id,omitempty"            yaml:"id,omitempty"`
	Name          string         `json:"name"                    yaml:"name"`
	Type          string         `json:"type,omitempty"          yaml:"type,omitempty"`
	Description   string         `json:"description,omitempty"   yaml:"description,omitempty"`
	DefaultAction *DefaultAction `json:"defaultAction,omitempty" yaml:"defaultAction,omitempty"`
	Links         Links          `json:"links,omitempty"         yaml:"links,omitempty"`
}

// DefaultAction is the action taken when no rule matches.
type DefaultAction struct {
	Action          string `json:"action"                    yaml:"action"`
	LogBegin        bool   `json:"logBegin,omitempty"        yaml:"logBegin,omitempty"`
	LogEnd          bool   `json:"logEnd,omitempty"          yaml:"logEnd,omitempty"`
	SendEventsToFMC bool   `json:"sendEventsToFMC,omitempty" yaml:"sendEventsToFMC,omitempty"`
}

// AccessPolicyCreateRequest represents a request to create an access policy.
type AccessPolicyCreateRequest struct {
	Name          string         `json:"name"                    yaml:"name"`
	Type          string         `json:"type,omitempty"          yaml:"type,omitempty"`
	Description   string         `json:"description,omitempty"   yaml:"description,omitempty"`
	DefaultAction *DefaultAction `json:"defaultAction,omitempty" yaml:"defaultAction,omitempty"`
}

// Rule actions.
const (
	RuleActionAllow = "ALLOW"
	RuleActionBlock = "BLOCK"
	RuleActionTrust = "TRUST"
)

// AccessRule represents a rule inside an access control policy.
type AccessRule struct {
	ID                  string        `json:"id,omitempty"                  yaml:"id,omitempty"`
	Name                string        `json:"name"                          yaml:"name"`
	Type                string        `json:"type,omitempty"                yaml:"type,omitempty"`
	Action              string        `json:"action"                        yaml:"action"`
	Enabled             bool          `json:"enabled"                       yaml:"enabled"`
	LogBegin            bool          `json:"logBegin"                      yaml:"logBegin"`
	LogEnd              bool          `json:"logEnd"                        yaml:"logEnd"`
	SendEventsToFMC     bool          `json:"sendEventsToFMC"               yaml:"sendEventsToFMC"`
	SourceZones         *RuleEntities `json:"sourceZones,omitempty"         yaml:"sourceZones,omitempty"`
	DestinationZones    *RuleEntities `json:"destinationZones,omitempty"    yaml:"destinationZones,omitempty"`
	SourceNetworks      *RuleEntities `json:"sourceNetworks,omitempty"      yaml:"sourceNetworks,omitempty"`
	DestinationNetworks *RuleEntities `json:"destinationNetworks,omitempty" yaml:"destinationNetworks,omitempty"`
	Links               Links         `json:"links,omitempty"               yaml:"links,omitempty"`
}

// RuleEntities is the objects list used by zone and network rule conditions.
type RuleEntities struct {
	Objects []Reference `json:"objects,omitempty" yaml:"objects,omitempty"`
}

// AccessRuleRequest represents a request to create an access rule.
type AccessRuleRequest struct {
	Name                string        `json:"name"                          yaml:"name"`
	Action              string        `json:"action"                        yaml:"action"`
	Enabled             bool          `json:"enabled"                       yaml:"enabled"`
	LogBegin            bool          `json:"logBegin,omitempty"            yaml:"logBegin,omitempty"`
	LogEnd              bool          `json:"logEnd,omitempty"              yaml:"logEnd,omitempty"`
	SendEventsToFMC     bool          `json:"sendEventsToFMC,omitempty"     yaml:"sendEventsToFMC,omitempty"`
	SourceZones         *RuleEntities `json:"sourceZones,omitempty"         yaml:"sourceZones,omitempty"`
	DestinationZones    *RuleEntities `json:"destinationZones,omitempty"    yaml:"destinationZones,omitempty"`
	SourceNetworks      *RuleEntities `json:"sourceNetworks,omitempty"      yaml:"sourceNetworks,omitempty"`
	DestinationNetworks *RuleEntities `json:"destinationNetworks,omitempty" yaml:"destinationNetworks,omitempty"`
}

// RuleLoggingSummary reports the outcome of a rule logging normalization
// pass over a policy.
type RuleLoggingSummary struct {
	Total     int      `json:"total"     yaml:"total"`
	Updated   int      `json:"updated"   yaml:"updated"`
	Skipped   int      `json:"skipped"   yaml:"skipped"`
	Failed    int      `json:"failed"    yaml:"failed"`
	FailedIDs []string `json:"failedIds" yaml:"failedIds"`
}

// Device represents a managed device record.
type Device struct {
	ID           string     `json:"id,omitempty"           yaml:"id,omitempty"`
	Name         string     `json:"name"                   yaml:"name"`
	Type         string     `json:"type,omitempty"         yaml:"type,omitempty"`
	HostName     string     `json:"hostName,omitempty"     yaml:"hostName,omitempty"`
	Model        string     `json:"model,omitempty"        yaml:"model,omitempty"`
	SWVersion    string     `json:"sw_version,omitempty"   yaml:"sw_version,omitempty"`
	HealthState  string     `json:"healthStatus,omitempty" yaml:"healthStatus,omitempty"`
	AccessPolicy *Reference `json:"accessPolicy,omitempty" yaml:"accessPolicy,omitempty"`
	Links        Links      `json:"links,omitempty"        yaml:"links,omitempty"`
}

// DeployableDevice is a device with pending configuration changes.
type DeployableDevice struct {
	Name    string     `json:"name"              yaml:"name"`
	Type    string     `json:"type,omitempty"    yaml:"type,omitempty"`
	Version string     `json:"version,omitempty" yaml:"version,omitempty"`
	Device  *Reference `json:"device,omitempty"  yaml:"device,omitempty"`
}

// DeploymentRequest represents a configuration deployment request.
type DeploymentRequest struct {
	Type          string   `json:"type"                    yaml:"type"`
	Version       string   `json:"version"                 yaml:"version"`
	ForceDeploy   bool     `json:"forceDeploy"             yaml:"forceDeploy"`
	IgnoreWarning bool     `json:"ignoreWarning"           yaml:"ignoreWarning"`
	DeviceList    []string `json:"deviceList"              yaml:"deviceList"`
}

// DeploymentResponse represents the job spawned by a deployment request.
type DeploymentResponse struct {
	ID      string `json:"id,omitempty"      yaml:"id,omitempty"`
	Type    string `json:"type,omitempty"    yaml:"type,omitempty"`
	State   string `json:"state,omitempty"   yaml:"state,omitempty"`
	Message string `json:"message,omitempty" yaml:"message,omitempty"`
	Links   Links  `json:"links,omitempty"   yaml:"links,omitempty"`
}

// Domain represents a management domain on the server. Every configuration
// call is scoped to the domain UUID returned during authentication.
type Domain struct {
	UUID string `json:"uuid" yaml:"uuid"`
	Name string `json:"name" yaml:"name"`
	Type string `json:"type,omitempty" yaml:"type,omitempty"`
}

// ServerVersion represents an entry from info/serverversion.
type ServerVersion struct {
	ServerVersion string `json:"serverVersion" yaml:"serverVersion"`
	GeoVersion    string `json:"geoVersion,omitempty" yaml:"geoVersion,omitempty"`
	VDBVersion    string `json:"vdbVersion,omitempty" yaml:"vdbVersion,omitempty"`
	SRUVersion    string `json:"sruVersion,omitempty" yaml:"sruVersion,omitempty"`
	Type          string `json:"type,omitempty" yaml:"type,omitempty"`
}
