package cmd

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"boutique/internal/core/domain/services"
)

// Config carries every environment setting the application reads. Values
// stay as strings here; typed accessors parse and default them.
type Config struct {
	HTTPPort   string
	DBHost     string
	DBPort     string
	DBUser     string
	DBPassword string
	DBName     string
	DBSslMode  string

	TelegramToken  string
	TelegramAPIURL string
	AdminChatID    string
	SupportChatID  string

	// Zones is the ordered routing table, semicolon-separated entries of
	// the form "name:keyword|keyword:courierChatID". The courier chat id
	// may be empty for a zone without a courier.
	Zones       string
	DefaultZone string

	AdminPassword     string
	SessionTTLMinutes string

	LoyaltyThreshold string
	LoyaltyRate      string
	LoyaltyCap       string

	LowStockThreshold string
}

// DSN renders the postgres connection string.
func (c Config) DSN() string {
	return fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		c.DBHost, c.DBPort, c.DBUser, c.DBPassword, c.DBName, c.DBSslMode)
}

// ParseZones decodes the routing table from its env encoding.
func (c Config) ParseZones() ([]services.Zone, error) {
	entries := strings.Split(c.Zones, ";")
	zones := make([]services.Zone, 0, len(entries))

	for _, entry := range entries {
		entry = strings.TrimSpace(entry)
		if entry == "" {
			continue
		}

		parts := strings.Split(entry, ":")
		if len(parts) < 2 || len(parts) > 3 {
			return nil, fmt.Errorf("zone entry %q is not name:keywords[:chatID]", entry)
		}

		zone := services.Zone{
			Name:     strings.TrimSpace(parts[0]),
			Keywords: splitKeywords(parts[1]),
		}
		if len(parts) == 3 {
			zone.CourierID = strings.TrimSpace(parts[2])
		}
		zones = append(zones, zone)
	}

	if len(zones) == 0 {
		return nil, fmt.Errorf("ZONES is empty")
	}
	return zones, nil
}

func splitKeywords(raw string) []string {
	parts := strings.Split(raw, "|")
	keywords := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			keywords = append(keywords, p)
		}
	}
	return keywords
}

// SessionTTL parses the admin session lifetime, defaulting to 12 hours.
func (c Config) SessionTTL() time.Duration {
	minutes, err := strconv.Atoi(c.SessionTTLMinutes)
	if err != nil || minutes <= 0 {
		return 12 * time.Hour
	}
	return time.Duration(minutes) * time.Minute
}

// Loyalty parses the discount policy, falling back to the default
// (every 10th order, 10% capped at 20).
func (c Config) Loyalty() services.LoyaltyPolicy {
	threshold, errT := strconv.Atoi(c.LoyaltyThreshold)
	rate, errR := strconv.ParseFloat(c.LoyaltyRate, 64)
	cap, errC := strconv.ParseFloat(c.LoyaltyCap, 64)
	if errT != nil || errR != nil || errC != nil {
		return services.DefaultLoyaltyPolicy()
	}

	policy, err := services.NewLoyaltyPolicy(threshold, rate, cap)
	if err != nil {
		return services.DefaultLoyaltyPolicy()
	}
	return policy
}

// StockThreshold parses the low stock alert threshold, defaulting to 5.
func (c Config) StockThreshold() int {
	threshold, err := strconv.Atoi(c.LowStockThreshold)
	if err != nil || threshold <= 0 {
		return 5
	}
	return threshold
}
