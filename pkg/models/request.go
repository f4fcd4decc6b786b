package models

// ConnectivityRequest is the body of the connectivity test
type ConnectivityRequest struct {
	IPAddress string `json:"ip_address" binding:"required"`
}

// ConnectivityResponse reports TCP reachability of the SNMP and SSH ports
type ConnectivityResponse struct {
	SNMP bool `json:"snmp"`
	SSH  bool `json:"ssh"`
	Any  bool `json:"any"`
}

// SNMPTestRequest is the body of the SNMP test; zero values take config defaults
type SNMPTestRequest struct {
	IPAddress string `json:"ip_address" binding:"required"`
	Community string `json:"community"`
	Port      int    `json:"port" binding:"omitempty,min=1,max=65535"`
}

// SNMPTestResponse carries the decoded sysName
type SNMPTestResponse struct {
	Reachable bool   `json:"reachable"`
	Value     string `json:"value"`
}

// SSHTestRequest is the body of the SSH test
type SSHTestRequest struct {
	IPAddress string `json:"ip_address" binding:"required"`
	Port      int    `json:"port" binding:"omitempty,min=1,max=65535"`
}

// SSHTestResponse reports TCP reachability of the SSH port
type SSHTestResponse struct {
	Reachable bool `json:"reachable"`
}
