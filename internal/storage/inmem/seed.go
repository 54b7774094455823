package inmem

import (
	"time"

	"github.com/google/uuid"

	"github.com/quantashield/console/internal/asset"
	"github.com/quantashield/console/internal/threat"
)

// The console runs on representative sample data; there is no live scanner or
// intelligence feed behind it.

func seedAssets() []*asset.Asset {
	now := time.Now().Unix()
	day := int64((24 * time.Hour).Seconds())

	entries := []*asset.Asset{
		{
			Name:            "web-prod-01",
			Type:            asset.TypeServer,
			Criticality:     "critical",
			IPAddress:       "10.0.1.10",
			OperatingSystem: "Ubuntu 22.04 LTS",
			Location:        "us-east-1",
			Status:          asset.StatusActive,
			LastScanned:     now - day,
		},
		{
			Name:            "web-prod-02",
			Type:            asset.TypeServer,
			Criticality:     "critical",
			IPAddress:       "10.0.1.11",
			OperatingSystem: "Ubuntu 22.04 LTS",
			Location:        "us-east-1",
			Status:          asset.StatusActive,
			LastScanned:     now - day,
		},
		{
			Name:            "db-prod-01",
			Type:            asset.TypeServer,
			Criticality:     "critical",
			IPAddress:       "10.0.2.20",
			OperatingSystem: "Debian 12",
			Location:        "us-east-1",
			Status:          asset.StatusActive,
			LastScanned:     now - 2*day,
		},
		{
			Name:            "fw-edge-01",
			Type:            asset.TypeNetworkDevice,
			Criticality:     "high",
			IPAddress:       "10.0.0.1",
			OperatingSystem: "FortiOS 7.4",
			Location:        "us-east-1",
			Status:          asset.StatusActive,
			LastScanned:     now - 3*day,
		},
		{
			Name:            "ws-finance-12",
			Type:            asset.TypeWorkstation,
			Criticality:     "medium",
			IPAddress:       "10.1.4.112",
			OperatingSystem: "Windows 11 Pro",
			Location:        "HQ / 4th floor",
			Status:          asset.StatusActive,
			LastScanned:     now - day,
		},
		{
			Name:            "ws-hr-03",
			Type:            asset.TypeWorkstation,
			Criticality:     "low",
			IPAddress:       "10.1.2.33",
			OperatingSystem: "Windows 10 Pro",
			Location:        "HQ / 2nd floor",
			Status:          asset.StatusInactive,
			LastScanned:     now - 14*day,
		},
		{
			Name:        "erp-suite",
			Type:        asset.TypeSoftware,
			Criticality: "high",
			Status:      asset.StatusActive,
			LastScanned: now - 7*day,
		},
		{
			Name:            "legacy-ftp-01",
			Type:            asset.TypeServer,
			Criticality:     "low",
			IPAddress:       "10.0.9.9",
			OperatingSystem: "CentOS 7",
			Location:        "on-prem DC",
			Status:          asset.StatusDecommissioned,
			LastScanned:     now - 90*day,
		},
	}
	for _, entry := range entries {
		entry.ID = uuid.NewString()
		entry.CreatedAt = now - 180*day
	}
	return entries
}

func seedIndicators() []*threat.Indicator {
	now := time.Now().Unix()
	hour := int64((time.Hour).Seconds())

	entries := []*threat.Indicator{
		{
			Type:       threat.IndicatorTypeIP,
			Value:      "185.220.101.47",
			ThreatType: "c2",
			Confidence: 92,
			Source:     "abuse-feed",
			Active:     true,
			FirstSeen:  now - 72*hour,
			LastSeen:   now - 2*hour,
		},
		{
			Type:       threat.IndicatorTypeDomain,
			Value:      "login-quantashield.security-update.top",
			ThreatType: "phishing",
			Confidence: 88,
			Source:     "brand-monitoring",
			Active:     true,
			FirstSeen:  now - 48*hour,
			LastSeen:   now - 4*hour,
		},
		{
			Type:       threat.IndicatorTypeHash,
			Value:      "44d88612fea8a8f36de82e1278abb02f",
			ThreatType: "malware",
			Confidence: 100,
			Source:     "sandbox",
			Active:     true,
			FirstSeen:  now - 240*hour,
			LastSeen:   now - 24*hour,
		},
		{
			Type:       threat.IndicatorTypeEmail,
			Value:      "billing@invoices-secure.net",
			ThreatType: "phishing",
			Confidence: 74,
			Source:     "mail-gateway",
			Active:     true,
			FirstSeen:  now - 24*hour,
			LastSeen:   now - hour,
		},
		{
			Type:       threat.IndicatorTypeIP,
			Value:      "45.155.205.233",
			ThreatType: "scanner",
			Confidence: 61,
			Source:     "honeypot",
			Active:     false,
			FirstSeen:  now - 1440*hour,
			LastSeen:   now - 720*hour,
		},
		{
			Type:       threat.IndicatorTypeDomain,
			Value:      "cdn-metrics-sync.xyz",
			ThreatType: "c2",
			Confidence: 80,
			Source:     "abuse-feed",
			Active:     true,
			FirstSeen:  now - 96*hour,
			LastSeen:   now - 12*hour,
		},
	}
	for _, entry := range entries {
		entry.ID = uuid.NewString()
	}
	return entries
}

func seedCredentials() []*threat.LeakedCredential {
	now := time.Now().Unix()
	day := int64((24 * time.Hour).Seconds())

	entries := []*threat.LeakedCredential{
		{
			Email:         "jdoe@quantashield.io",
			Domain:        "quantashield.io",
			Source:        "stealer-log-market",
			MalwareFamily: "redline",
			DiscoveredAt:  now - 2*day,
		},
		{
			Email:         "msmith@quantashield.io",
			Domain:        "quantashield.io",
			Source:        "combo-list-forum",
			MalwareFamily: "raccoon",
			DiscoveredAt:  now - 5*day,
		},
		{
			Email:         "it-support@quantashield.io",
			Domain:        "quantashield.io",
			Source:        "telegram-channel",
			DiscoveredAt:  now - 11*day,
		},
		{
			Email:         "sales@quantashield.io",
			Domain:        "quantashield.io",
			Source:        "combo-list-forum",
			MalwareFamily: "meta_stealer",
			DiscoveredAt:  now - 30*day,
		},
	}
	for _, entry := range entries {
		entry.ID = uuid.NewString()
	}
	return entries
}
