package entities

// AdminStats is the dashboard summary for admins
type AdminStats struct {
	Clients              int64                        `json:"clients"`
	Providers            map[VerificationStatus]int64 `json:"providers"`
	BlacklistedProviders int64                        `json:"blacklisted_providers"`
	Bookings             map[BookingStatus]int64      `json:"bookings"`
	PendingReviews       int64                        `json:"pending_reviews"`
	WalletCredits        float64                      `json:"wallet_credits"`
	WalletDebits         float64                      `json:"wallet_debits"`
}
