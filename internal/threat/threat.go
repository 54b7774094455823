package threat

// Indicator represents a single indicator of compromise collected from an intelligence source
type Indicator struct {
	ID         string `json:"id"`
	Type       string `json:"type"`
	Value      string `json:"value"`
	ThreatType string `json:"threat_type"`
	Confidence int    `json:"confidence"`
	Source     string `json:"source"`
	FirstSeen  int64  `json:"first_seen"`
	LastSeen   int64  `json:"last_seen"`
	Active     bool   `json:"active"`
}

// Indicator types
const (
	IndicatorTypeIP     = "ip"
	IndicatorTypeDomain = "domain"
	IndicatorTypeHash   = "hash"
	IndicatorTypeEmail  = "email"
)

// LeakedCredential represents a credential discovered in an underground source
type LeakedCredential struct {
	ID            string `json:"id"`
	Email         string `json:"email"`
	Domain        string `json:"domain"`
	Source        string `json:"source"`
	MalwareFamily string `json:"malware_family,omitempty"`
	DiscoveredAt  int64  `json:"discovered_at"`
}
