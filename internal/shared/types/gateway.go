package types

// FlowDescriptor describes a flow the gateway can relay to
type FlowDescriptor struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
}

// FlowList wraps the flow catalogue
type FlowList struct {
	Flows []FlowDescriptor `json:"flows"`
}

// Info is the root endpoint payload
type Info struct {
	Message     string `json:"message"`
	Status      string `json:"status"`
	LangflowURL string `json:"langflow_url"`
	Docs        string `json:"docs"`
}

// Health is the liveness probe payload
type Health struct {
	Status  string `json:"status"`
	Service string `json:"service"`
}

// Route describes one registered HTTP route
type Route struct {
	Method string `json:"method"`
	Path   string `json:"path"`
}
