package views

import (
	"math"
	"slices"

	"github.com/jacentio/studiodesk/store"
)

// DefaultRewardUnit is the flat reward per listed referral.
const DefaultRewardUnit = 50

// RewardPolicy prices a referrer's reward.
type RewardPolicy interface {
	// Reward receives the referrer and the referrals that resolved to
	// existing clients. referrer.Referrals still holds every listed id.
	Reward(referrer store.Client, resolved []store.Client) float64
}

// FixedReward pays Unit per listed referral id, resolved or not.
type FixedReward struct {
	Unit float64
}

// Reward implements RewardPolicy.
func (f FixedReward) Reward(referrer store.Client, _ []store.Client) float64 {
	return float64(len(referrer.Referrals)) * f.Unit
}

// ProgramReward prices rewards from a configured referral program.
//
// A fixed program pays RewardValue per listed referral id. A percentage
// program pays RewardValue percent of the resolved referrals' totalSpent.
// An inactive program defers to Fallback.
type ProgramReward struct {
	Program  store.ReferralProgram
	Fallback RewardPolicy
}

// Reward implements RewardPolicy.
func (p ProgramReward) Reward(referrer store.Client, resolved []store.Client) float64 {
	if !p.Program.IsActive {
		fb := p.Fallback
		if fb == nil {
			fb = FixedReward{Unit: DefaultRewardUnit}
		}
		return fb.Reward(referrer, resolved)
	}
	switch p.Program.RewardType {
	case store.RewardPercentage:
		return TotalSpent(resolved) * p.Program.RewardValue / 100
	default:
		return float64(len(referrer.Referrals)) * p.Program.RewardValue
	}
}

// ActiveProgram returns the first active referral program in insertion order.
func ActiveProgram(programs []store.ReferralProgram) (store.ReferralProgram, bool) {
	for _, p := range programs {
		if p.IsActive {
			return p, true
		}
	}
	return store.ReferralProgram{}, false
}

// ReferralEntry is one referrer with the clients they brought in.
type ReferralEntry struct {
	Referrer  store.Client   `json:"referrer"`
	Referrals []store.Client `json:"referrals"`
	Reward    float64        `json:"reward"`
}

// ReferralNetwork builds an entry for every client with a non-empty referrals
// list, in insertion order. Ids that resolve to no client are dropped from
// Referrals. A nil policy means FixedReward{DefaultRewardUnit}.
func ReferralNetwork(clients []store.Client, policy RewardPolicy) []ReferralEntry {
	if policy == nil {
		policy = FixedReward{Unit: DefaultRewardUnit}
	}
	byID := indexClients(clients)

	var network []ReferralEntry
	for _, c := range clients {
		if len(c.Referrals) == 0 {
			continue
		}
		resolved := make([]store.Client, 0, len(c.Referrals))
		for _, id := range c.Referrals {
			if r, ok := byID[id]; ok {
				resolved = append(resolved, r)
			}
		}
		network = append(network, ReferralEntry{
			Referrer:  c,
			Referrals: resolved,
			Reward:    policy.Reward(c, resolved),
		})
	}
	return network
}

// TopReferrers ranks entries by resolved referral count, highest first. Ties
// keep network order. limit <= 0 returns all of them.
func TopReferrers(network []ReferralEntry, limit int) []ReferralEntry {
	out := slices.Clone(network)
	slices.SortStableFunc(out, func(a, b ReferralEntry) int {
		return len(b.Referrals) - len(a.Referrals)
	})
	return truncate(out, limit)
}

// TotalReferrals counts listed referral ids across all clients.
func TotalReferrals(clients []store.Client) int {
	n := 0
	for _, c := range clients {
		n += len(c.Referrals)
	}
	return n
}

// ReferredClients counts clients with referredBy set.
func ReferredClients(clients []store.Client) int {
	n := 0
	for _, c := range clients {
		if c.ReferredBy != "" {
			n++
		}
	}
	return n
}

// ConversionRate is the rounded percentage of clients that were referred,
// 0 when there are no clients.
func ConversionRate(clients []store.Client) int {
	if len(clients) == 0 {
		return 0
	}
	return int(math.Round(float64(ReferredClients(clients)) / float64(len(clients)) * 100))
}

// ReferralSummary aggregates the referral program page.
type ReferralSummary struct {
	ReferredClients      int             `json:"referredClients"`
	ClientsWithReferrals int             `json:"clientsWithReferrals"`
	TotalReferrals       int             `json:"totalReferrals"`
	ConversionRate       int             `json:"conversionRate"`
	TotalRewards         float64         `json:"totalRewards"`
	TopReferrers         []ReferralEntry `json:"topReferrers"`
	Network              []ReferralEntry `json:"network"`
}

// TopReferrerLimit is how many referrers the summary ranks.
const TopReferrerLimit = 5

// SummarizeReferrals builds the ReferralSummary using policy for rewards.
func SummarizeReferrals(clients []store.Client, policy RewardPolicy) ReferralSummary {
	network := ReferralNetwork(clients, policy)
	var rewards float64
	for _, e := range network {
		rewards += e.Reward
	}
	return ReferralSummary{
		ReferredClients:      ReferredClients(clients),
		ClientsWithReferrals: len(network),
		TotalReferrals:       TotalReferrals(clients),
		ConversionRate:       ConversionRate(clients),
		TotalRewards:         rewards,
		TopReferrers:         TopReferrers(network, TopReferrerLimit),
		Network:              network,
	}
}

func indexClients(clients []store.Client) map[string]store.Client {
	byID := make(map[string]store.Client, len(clients))
	for _, c := range clients {
		byID[c.ID] = c
	}
	return byID
}
