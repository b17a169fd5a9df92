package achievement

import (
	"sort"

	"github.com/nexuslan/arena/internal/domain"
)

// Registry holds the static badge definitions. Definitions are immutable
// after construction; awards reference them by ID.
type Registry struct {
	badges map[string]domain.Badge
}

// NewRegistry creates a registry from the given definitions
func NewRegistry(badges []domain.Badge) *Registry {
	m := make(map[string]domain.Badge, len(badges))
	for _, b := range badges {
		m[b.ID] = b
	}
	return &Registry{badges: m}
}

// Get returns the badge definition for id
func (r *Registry) Get(id string) (domain.Badge, bool) {
	b, ok := r.badges[id]
	return b, ok
}

// All returns every definition, sorted by ID for stable listings
func (r *Registry) All() []domain.Badge {
	out := make([]domain.Badge, 0, len(r.badges))
	for _, b := range r.badges {
		out = append(out, b)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

// Len returns the number of registered badges
func (r *Registry) Len() int {
	return len(r.badges)
}

// DefaultRegistry returns the platform badge set
func DefaultRegistry() *Registry {
	return NewRegistry([]domain.Badge{
		// Gaming
		{
			ID: "first_tournament_win", Name: "First Victory",
			Description: "Win your first tournament",
			Category:    domain.CategoryGaming, Rarity: domain.RarityCommon, Icon: "🏆",
			Criteria: map[string]int{CriterionTournamentWins: 1},
			XPReward: 100, CoinsReward: 50,
		},
		{
			ID: "cs2_specialist", Name: "CS2 Specialist",
			Description: "Play 5 CS2 tournaments",
			Category:    domain.CategoryGaming, Rarity: domain.RarityRare, Icon: "🔫",
			Criteria: map[string]int{CriterionCS2Tournaments: 5},
			XPReward: 200, CoinsReward: 100,
		},
		{
			ID: "clutch_master", Name: "Clutch Master",
			Description: "Legendary badge for exceptional plays",
			Category:    domain.CategoryGaming, Rarity: domain.RarityLegendary, Icon: "⚡",
			Criteria: map[string]int{CriterionClutchRounds: 10},
			XPReward: 500, CoinsReward: 300, Hidden: true,
		},
		{
			ID: "tournament_veteran", Name: "Tournament Veteran",
			Description: "Play 25 tournaments",
			Category:    domain.CategoryCompetitive, Rarity: domain.RarityEpic, Icon: "🎖️",
			Criteria: map[string]int{CriterionTournamentsPlayed: 25},
			XPReward: 300, CoinsReward: 200,
		},

		// Economic
		{
			ID: "first_purchase", Name: "First Purchase",
			Description: "Buy your first marketplace item",
			Category:    domain.CategoryEconomic, Rarity: domain.RarityCommon, Icon: "🛒",
			Criteria: map[string]int{CriterionMarketplacePurchases: 1},
			XPReward: 50, CoinsReward: 25,
		},
		{
			ID: "coin_collector", Name: "Coin Collector",
			Description: "Earn 1000 coins in total",
			Category:    domain.CategoryEconomic, Rarity: domain.RarityRare, Icon: "💰",
			Criteria: map[string]int{CriterionTotalCoinsEarned: 1000},
			XPReward: 150, CoinsReward: 75,
		},
		{
			ID: "big_spender", Name: "Big Spender",
			Description: "Spend 5000 coins in total",
			Category:    domain.CategoryEconomic, Rarity: domain.RarityEpic, Icon: "💸",
			Criteria: map[string]int{CriterionTotalCoinsSpent: 5000},
			XPReward: 250, CoinsReward: 150,
		},
		{
			ID: "marketplace_king", Name: "Marketplace King",
			Description: "Own 50 different items",
			Category:    domain.CategoryEconomic, Rarity: domain.RarityLegendary, Icon: "👑",
			Criteria: map[string]int{CriterionUniqueItemsOwned: 50},
			XPReward: 400, CoinsReward: 250,
		},

		// Community and social
		{
			ID: "first_comment", Name: "First Comment",
			Description: "Post your first comment",
			Category:    domain.CategoryCommunity, Rarity: domain.RarityCommon, Icon: "💬",
			Criteria: map[string]int{CriterionCommentsPosted: 1},
			XPReward: 25, CoinsReward: 10,
		},
		{
			ID: "conversationalist", Name: "Conversationalist",
			Description: "Post 100 comments",
			Category:    domain.CategoryCommunity, Rarity: domain.RarityRare, Icon: "🗣️",
			Criteria: map[string]int{CriterionCommentsPosted: 100},
			XPReward: 200, CoinsReward: 100,
		},
		{
			ID: "community_helper", Name: "Community Helper",
			Description: "Receive 50 likes on your comments",
			Category:    domain.CategorySocial, Rarity: domain.RarityRare, Icon: "🤝",
			Criteria: map[string]int{CriterionCommentLikes: 50},
			XPReward: 180, CoinsReward: 90,
		},
		{
			ID: "recruiter", Name: "Recruiter",
			Description: "Refer 5 new members",
			Category:    domain.CategoryCommunity, Rarity: domain.RarityEpic, Icon: "📨",
			Criteria: map[string]int{CriterionReferrals: 5},
			XPReward: 300, CoinsReward: 200,
		},
		{
			ID: "social_butterfly", Name: "Social Butterfly",
			Description: "Interact with 50 different members",
			Category:    domain.CategorySocial, Rarity: domain.RarityRare, Icon: "🦋",
			Criteria: map[string]int{CriterionUniqueInteractions: 50},
			XPReward: 150, CoinsReward: 75,
		},

		// Loyalty
		{
			ID: "daily_visitor", Name: "Daily Visitor",
			Description: "Log in 7 days in a row",
			Category:    domain.CategoryLoyalty, Rarity: domain.RarityCommon, Icon: "📅",
			Criteria: map[string]int{CriterionConsecutiveDays: 7},
			XPReward: 100, CoinsReward: 50,
		},
		{
			ID: "week_warrior", Name: "Week Warrior",
			Description: "Log in 30 days in a row",
			Category:    domain.CategoryLoyalty, Rarity: domain.RarityRare, Icon: "🔥",
			Criteria: map[string]int{CriterionConsecutiveDays: 30},
			XPReward: 250, CoinsReward: 150,
		},
		{
			ID: "loyalty_legend", Name: "Loyalty Legend",
			Description: "Log in 365 days in a row",
			Category:    domain.CategoryLoyalty, Rarity: domain.RarityMythic, Icon: "💎",
			Criteria: map[string]int{CriterionConsecutiveDays: 365},
			XPReward: 1000, CoinsReward: 500, Hidden: true,
		},

		// Competitive
		{
			ID: "betting_genius", Name: "Betting Genius",
			Description: "Win 10 bets in a row",
			Category:    domain.CategoryCompetitive, Rarity: domain.RarityLegendary, Icon: "🧠",
			Criteria: map[string]int{CriterionConsecutiveBetWins: 10},
			XPReward: 400, CoinsReward: 250, Hidden: true,
		},
		{
			ID: "tournament_organizer", Name: "Tournament Organizer",
			Description: "Organize your first tournament",
			Category:    domain.CategoryCompetitive, Rarity: domain.RarityEpic, Icon: "🎪",
			Criteria: map[string]int{CriterionTournamentsOrganized: 1},
			XPReward: 300, CoinsReward: 200,
		},

		// Special
		{
			ID: "early_adopter", Name: "Early Adopter",
			Description: "Be among the first 100 registered members",
			Category:    domain.CategorySpecial, Rarity: domain.RarityMythic, Icon: "🌟",
			Criteria: map[string]int{CriterionUserRank: 100},
			XPReward: 500, CoinsReward: 300, Hidden: true,
		},
		{
			ID: "beta_tester", Name: "Beta Tester",
			Description: "Test a beta feature",
			Category:    domain.CategorySpecial, Rarity: domain.RarityLegendary, Icon: "🧪",
			Criteria: map[string]int{CriterionBetaFeatures: 1},
			XPReward: 200, CoinsReward: 150,
		},

		// Achievement
		{
			ID: "completionist", Name: "Completionist",
			Description: "Earn 25 different badges",
			Category:    domain.CategoryAchievement, Rarity: domain.RarityMythic, Icon: "🎯",
			Criteria: map[string]int{CriterionUniqueBadges: 25},
			XPReward: 800, CoinsReward: 400, Hidden: true,
		},
	})
}
