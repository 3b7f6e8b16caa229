package cmd

import (
	"time"
)

type Config struct {
	HTTPPort                 string
	DBHost                   string
	DBPort                   string
	DBUser                   string
	DBPassword               string
	DBName                   string
	DBSslMode                string
	MongoURI                 string
	MongoDB                  string
	CarrierBaseURL           string
	CarrierEmail             string
	CarrierPassword          string
	MessagingBaseURL         string
	MessagingToken           string
	SettingsTTL              time.Duration
	NotificationDispatchCron string
	NotificationBatchSize    int
	ShipmentClaimTTL         time.Duration
	OutboundTimeout          time.Duration
}
